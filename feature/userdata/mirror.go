package userdata

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"torch-calculator/core/storage"

	"github.com/minio/minio-go/v7"
)

// Mirror receives a copy of every document written to disk.
type Mirror interface {
	Put(ctx context.Context, data []byte) error
}

// BucketMirror uploads the document to an S3-compatible bucket.
type BucketMirror struct {
	client  storage.Client
	bucket  string
	object  string
	timeout time.Duration

	mu    sync.Mutex
	ready bool
}

// NewBucketMirror creates a mirror writing to cfg.Bucket/cfg.Object.
func NewBucketMirror(client storage.Client, cfg storage.Config) *BucketMirror {
	object := cfg.Object
	if object == "" {
		object = FileName
	}
	return &BucketMirror{
		client:  client,
		bucket:  cfg.Bucket,
		object:  object,
		timeout: cfg.Timeout(),
	}
}

// Put uploads data, creating the bucket on first use.
func (m *BucketMirror) Put(ctx context.Context, data []byte) error {
	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.ensureBucket(ctx); err != nil {
		return err
	}

	_, err := m.client.PutObject(ctx, m.bucket, m.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json; charset=utf-8",
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", m.object, err)
	}
	return nil
}

func (m *BucketMirror) ensureBucket(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ready {
		return nil
	}

	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", m.bucket, err)
		}
	}
	m.ready = true
	return nil
}
