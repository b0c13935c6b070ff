// Package minio provides the MinIO-backed ObjectStore implementation.
// PutObject replaces the whole object in one operation, which gives the
// atomic-overwrite guarantee the index persist relies on.
package minio

import (
	"bytes"
	"context"
	"fmt"
	"io"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/regsync-labs/regsync-cli/internal/core/domain"
	"github.com/regsync-labs/regsync-cli/internal/core/ports/driven"
	"github.com/regsync-labs/regsync-cli/internal/logger"
)

// noSuchKey is the S3 error code for a missing object.
const noSuchKey = "NoSuchKey"

// Ensure Store implements the interface.
var _ driven.ObjectStore = (*Store)(nil)

// Config holds the MinIO connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Region    string
	Secure    bool
	Bucket    string
}

// Store is a MinIO-backed implementation of driven.ObjectStore.
type Store struct {
	client *miniogo.Client
	bucket string
}

// NewStore connects to MinIO and ensures the configured bucket exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := miniogo.New(cfg.Endpoint, &miniogo.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.Secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.Endpoint, err)
	}

	s := &Store{client: client, bucket: cfg.Bucket}
	if err := s.ensureBucket(ctx, cfg.Region); err != nil {
		return nil, err
	}
	return s, nil
}

// ensureBucket creates the bucket when it does not exist yet.
func (s *Store) ensureBucket(ctx context.Context, region string) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("%w: check bucket %s: %v", domain.ErrTransport, s.bucket, err)
	}
	if exists {
		return nil
	}

	logger.Info("Bucket %s does not exist, creating it", s.bucket)
	if err := s.client.MakeBucket(ctx, s.bucket, miniogo.MakeBucketOptions{Region: region}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

// Put writes data at key with the given content type.
func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		miniogo.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("%w: put %s: %v", domain.ErrStoreWrite, key, err)
	}
	return nil
}

// Get reads the object at key.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, miniogo.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: get %s: %v", domain.ErrTransport, key, err)
	}
	defer obj.Close()

	// GetObject is lazy; missing keys surface on the first read.
	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, key)
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrTransport, key, err)
	}
	return data, nil
}

// Exists reports whether an object is stored at key.
func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, miniogo.StatObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("%w: stat %s: %v", domain.ErrTransport, key, err)
	}
	return true, nil
}

// isNotFound reports whether a MinIO error means the object is absent.
func isNotFound(err error) bool {
	return miniogo.ToErrorResponse(err).Code == noSuchKey
}
