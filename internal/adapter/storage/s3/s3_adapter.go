package s3

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// S3Storage implements domain.BlobStore on MinIO.
type S3Storage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewS3Storage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *zap.Logger) (*S3Storage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client for %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errExists := client.BucketExists(context.Background(), bucketName)
		if errExists != nil || !exists {
			return nil, fmt.Errorf("make/verify bucket %s: %v (exists check: %v)", bucketName, err, errExists)
		}
	}
	log.Info("image storage ready", zap.String("endpoint", endpoint), zap.String("bucket", bucketName))

	return &S3Storage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

// Upload stores the image under a collision-resistant key (upload timestamp
// plus the sanitized original filename) and returns its retrieval URL.
func (s *S3Storage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("photos/%d-%s", time.Now().UnixNano(), sanitizeFileName(originalFileName))

	s.logger.Debug("uploading image",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectKey),
		zap.Int("size_bytes", len(data)))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: http.DetectContentType(data),
	})
	if err != nil {
		s.logger.Error("PutObject failed", zap.String("object_key", objectKey), zap.Error(err))
		return "", fmt.Errorf("upload object %s: %w", objectKey, err)
	}

	// EndpointURL carries the scheme matching the Secure option.
	fileURL := fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey)
	s.logger.Info("image uploaded", zap.String("url", fileURL))
	return fileURL, nil
}

// sanitizeFileName strips any path component and replaces characters that do
// not belong in an object key.
func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "upload"
	}
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, base)
	return base
}
