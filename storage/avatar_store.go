package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	apperrors "skycast.app/errors"
)

// AvatarStoreInterface uploads and removes user profile pictures.
type AvatarStoreInterface interface {
	Upload(ctx context.Context, userID uint, data io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectURL string) error
}

// AvatarStore keeps profile pictures in a MinIO bucket and hands out
// public URLs of the form <publicURL>/<bucket>/<object key>.
type AvatarStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

type AvatarStoreConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

func NewAvatarStore(config AvatarStoreConfig) (*AvatarStore, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(config.AccessKey, config.SecretKey, ""),
		Secure: config.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, config.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, config.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		slog.Info("created avatar bucket", "bucket", config.Bucket)
	}

	return &AvatarStore{
		client:    client,
		bucket:    config.Bucket,
		publicURL: strings.TrimSuffix(config.PublicURL, "/"),
	}, nil
}

func (s *AvatarStore) Upload(ctx context.Context, userID uint, data io.Reader, size int64, contentType string) (string, error) {
	key := fmt.Sprintf("users/%d/%s%s", userID, uuid.NewString(), extensionFor(contentType))

	_, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", apperrors.NewStorageError("failed to upload profile picture", err)
	}

	slog.Debug("uploaded profile picture", "bucket", s.bucket, "key", key)
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key), nil
}

// Delete removes the object behind a URL previously returned by Upload.
// URLs pointing outside the store's bucket are ignored.
func (s *AvatarStore) Delete(ctx context.Context, objectURL string) error {
	key, ok := s.objectKey(objectURL)
	if !ok {
		return nil
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return apperrors.NewStorageError("failed to delete profile picture", err)
	}
	return nil
}

func (s *AvatarStore) objectKey(objectURL string) (string, bool) {
	prefix := fmt.Sprintf("%s/%s/", s.publicURL, s.bucket)
	if !strings.HasPrefix(objectURL, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(objectURL, prefix)
	return key, key != ""
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ""
	}
}
