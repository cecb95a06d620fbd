package services

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Store кладёт изображения в бакет Amazon S3 или совместимого API.
type S3Store struct {
	uploader  *manager.Uploader
	bucket    string
	keyPrefix string
}

// NewS3Store создает хранилище поверх клиента S3.
func NewS3Store(client *s3.Client, bucket, keyPrefix string) *S3Store {
	return &S3Store{
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
	}
}

// Save загружает файл в бакет и возвращает URI объекта.
func (s *S3Store) Save(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	const op = "uploads.S3Store.Save"

	if s.bucket == "" {
		return "", fmt.Errorf("%s: storage bucket is required", op)
	}

	key := filename
	if s.keyPrefix != "" {
		key = s.keyPrefix + "/" + filename
	}

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        r,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPrivate,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return fmt.Sprintf("s3://%s/%s", s.bucket, key), nil
}
