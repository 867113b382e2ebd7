// Package imagestore uploads shop and comment images to S3-compatible
// object storage and returns public URLs.
package imagestore

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MaxImageBytes is the upload ceiling enforced at the handler (5MB).
const MaxImageBytes = 5 * 1024 * 1024

// Store uploads image bytes and returns a publicly reachable URL.
type Store interface {
	Upload(ctx context.Context, ownerKey string, r io.Reader, size int64, contentType string) (string, error)
}

// MinioStore implements Store for MinIO/S3 compatible storage.
type MinioStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewMinioStore connects to the object store and ensures the bucket
// exists. publicBaseURL is the CDN or gateway prefix under which
// uploaded objects are served.
func NewMinioStore(endpoint, accessKey, secretKey, bucket, publicBaseURL string, useSSL bool) (*MinioStore, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &MinioStore{
		client:        client,
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}, nil
}

// Upload stores the image under <ownerKey>/<uuid>.<ext> and returns its
// public URL.
func (m *MinioStore) Upload(ctx context.Context, ownerKey string, r io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%s.%s", ownerKey, uuid.New().String(), extForContentType(contentType))

	_, err := m.client.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: "max-age=3600",
	})
	if err != nil {
		return "", fmt.Errorf("put object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", m.publicBaseURL, m.bucket, key), nil
}

func extForContentType(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
