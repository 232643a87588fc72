package scan

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Config holds configuration for the S3 archive backend.
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// S3Archive implements ArchiveClient using AWS S3 (or S3-compatible stores
// like MinIO).
type S3Archive struct {
	client *s3.Client
	bucket string
}

// NewS3Archive creates an S3-backed ArchiveClient.
func NewS3Archive(ctx context.Context, cfg S3Config) (*S3Archive, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var s3Opts []func(*s3.Options)
	if cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	}

	client := s3.NewFromConfig(awsCfg, s3Opts...)
	return &S3Archive{client: client, bucket: cfg.Bucket}, nil
}

func (s *S3Archive) key(vendorID, kind, id string) string {
	return vendorID + "/" + kind + "/" + id + ".json"
}

func (s *S3Archive) put(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3Archive) get(ctx context.Context, key string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 get %s: %w", key, err)
	}
	defer out.Body.Close()
	return io.ReadAll(out.Body)
}

func (s *S3Archive) PutPayload(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(ctx, s.key(vendorID, "payloads", scanID), data)
}

func (s *S3Archive) GetPayload(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return s.get(ctx, s.key(vendorID, "payloads", scanID))
}

func (s *S3Archive) PutScore(ctx context.Context, vendorID, scanID string, data []byte) error {
	return s.put(ctx, s.key(vendorID, "scores", scanID), data)
}

func (s *S3Archive) GetScore(ctx context.Context, vendorID, scanID string) ([]byte, error) {
	return s.get(ctx, s.key(vendorID, "scores", scanID))
}
