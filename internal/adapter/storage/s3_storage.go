package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Chandan-Choubey/Export-Csv/internal/config"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Storage хранилище копий архивов на базе S3/MinIO
type S3Storage struct {
	client        *minio.Client
	bucket        string
	presignExpiry time.Duration
}

// NewS3Storage создаёт новый экземпляр S3Storage
func NewS3Storage(ctx context.Context, cfg config.S3Config) (*S3Storage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	// Проверяем/создаём bucket
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return &S3Storage{
		client:        client,
		bucket:        cfg.Bucket,
		presignExpiry: cfg.PresignExpiry,
	}, nil
}

// ObjectKey ключ архива: year/month/day/export-id/filename
func ObjectKey(now time.Time, exportID uuid.UUID, fileName string) string {
	return path.Join(
		now.Format("2006"),
		now.Format("01"),
		now.Format("02"),
		exportID.String(),
		fileName,
	)
}

// Upload загружает архив в S3 и возвращает ключ
func (s *S3Storage) Upload(ctx context.Context, exportID uuid.UUID, fileName string, contentType string, reader io.Reader, size int64) (string, error) {
	fileKey := ObjectKey(time.Now().UTC(), exportID, fileName)

	_, err := s.client.PutObject(ctx, s.bucket, fileKey, reader, size, minio.PutObjectOptions{
		ContentType:        contentType,
		ContentDisposition: fmt.Sprintf("attachment; filename=%q", fileName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	return fileKey, nil
}

// GetURL возвращает presigned URL для скачивания архива
func (s *S3Storage) GetURL(ctx context.Context, fileKey string) (string, error) {
	url, err := s.client.PresignedGetObject(ctx, s.bucket, fileKey, s.presignExpiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}

	return url.String(), nil
}
