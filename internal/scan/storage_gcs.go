package scan

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSArchive implements ArchiveClient using Google Cloud Storage.
type GCSArchive struct {
	client *gcs.Client
	bucket string
}

// NewGCSArchive creates a GCS-backed ArchiveClient.
// It uses Application Default Credentials (works with Workload Identity, SA keys, gcloud auth).
func NewGCSArchive(ctx context.Context, bucket string) (*GCSArchive, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSArchive{client: client, bucket: bucket}, nil
}

func (s *GCSArchive) key(vendorID, kind, id string) string {
	return vendorID + "/" + kind + "/" + id + ".json"
}

func (s *GCSArchive) put(ctx context.Context, key string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSArchive) get(ctx context.Context, key string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", key, err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

func (s *GCSArchive) PutPayload(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(ctx, s.key(vendorID, "payloads", scanID), data)
}

func (s *GCSArchive) GetPayload(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return s.get(ctx, s.key(vendorID, "payloads", scanID))
}

func (s *GCSArchive) PutScore(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(ctx, s.key(vendorID, "scores", scanID), data)
}

func (s *GCSArchive) GetScore(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return s.get(ctx, s.key(vendorID, "scores", scanID))
}
