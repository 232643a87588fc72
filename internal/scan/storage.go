// Package scan orchestrates the scoring pipeline: findings intake, concurrent
// per-domain scoring, atomic score commits, and history tracking.
package scan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// ArchiveClient abstracts blob storage for raw collector payloads and
// committed score documents, kept for evidence retention and audits.
type ArchiveClient interface {
	PutPayload(ctx context.Context, vendorID, scanID string, data []byte) error
	GetPayload(ctx context.Context, vendorID, scanID string) ([]byte, error)
	PutScore(ctx context.Context, vendorID, scanID string, data []byte) error
	GetScore(ctx context.Context, vendorID, scanID string) ([]byte, error)
}

// LocalArchive implements ArchiveClient using the local filesystem.
// Useful for development and testing.
type LocalArchive struct {
	BaseDir string
}

// NewLocalArchive creates a LocalArchive rooted at the given directory.
func NewLocalArchive(baseDir string) *LocalArchive {
	return &LocalArchive{BaseDir: baseDir}
}

func (s *LocalArchive) path(vendorID, kind, id string) string {
	return filepath.Join(s.BaseDir, vendorID, kind, id+".json")
}

func (s *LocalArchive) put(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// PutPayload stores a raw collector payload.
func (s *LocalArchive) PutPayload(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(s.path(vendorID, "payloads", scanID), data)
}

// GetPayload retrieves a raw collector payload.
func (s *LocalArchive) GetPayload(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return os.ReadFile(s.path(vendorID, "payloads", scanID))
}

// PutScore stores a committed score document.
func (s *LocalArchive) PutScore(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(s.path(vendorID, "scores", scanID), data)
}

// GetScore retrieves a committed score document.
func (s *LocalArchive) GetScore(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return os.ReadFile(s.path(vendorID, "scores", scanID))
}
