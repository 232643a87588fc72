package scan

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalArchivePutGetPayload(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalArchive(dir)
	ctx := context.Background()

	data := []byte(`{"D1":{"findings":[]}}`)
	if err := s.PutPayload(ctx, "vendor1", "scan1", data); err != nil {
		t.Fatalf("PutPayload: %v", err)
	}

	got, err := s.GetPayload(ctx, "vendor1", "scan1")
	if err != nil {
		t.Fatalf("GetPayload: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetPayload = %q, want %q", got, data)
	}

	// Verify file path layout
	expectedPath := filepath.Join(dir, "vendor1", "payloads", "scan1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalArchivePutGetScore(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalArchive(dir)
	ctx := context.Background()

	data := []byte(`{"global_score":770,"grade":"B"}`)
	if err := s.PutScore(ctx, "vendor1", "scan1", data); err != nil {
		t.Fatalf("PutScore: %v", err)
	}

	got, err := s.GetScore(ctx, "vendor1", "scan1")
	if err != nil {
		t.Fatalf("GetScore: %v", err)
	}
	if string(got) != string(data) {
		t.Errorf("GetScore = %q, want %q", got, data)
	}

	expectedPath := filepath.Join(dir, "vendor1", "scores", "scan1.json")
	if _, err := os.Stat(expectedPath); err != nil {
		t.Errorf("expected file at %s: %v", expectedPath, err)
	}
}

func TestLocalArchiveGetNotFound(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalArchive(dir)
	ctx := context.Background()

	if _, err := s.GetPayload(ctx, "vendor1", "missing"); err == nil {
		t.Error("expected error for missing payload")
	}
	if _, err := s.GetScore(ctx, "vendor1", "missing"); err == nil {
		t.Error("expected error for missing score")
	}
}
