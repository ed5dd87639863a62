// Package storage holds the blob stores for customer documents.
package storage

import (
	"context"
	"errors"
	"evaluation_orders/internal/infrastructure/logger"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

var ErrEmptyPath = errors.New("empty object path")

// s3API is the subset of *s3.Client used here; tests swap it.
type s3API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type S3Storage struct {
	client  s3API
	bucket  string
	baseURL string
	log     *zap.Logger
}

// NewS3Storage stores objects in bucket. baseURL prefixes public links; when
// empty the virtual-hosted bucket URL is used.
func NewS3Storage(client *s3.Client, bucket, region, baseURL string, log *zap.Logger) *S3Storage {
	return newS3Storage(client, bucket, region, baseURL, log)
}

func newS3Storage(client s3API, bucket, region, baseURL string, log *zap.Logger) *S3Storage {
	if baseURL == "" {
		baseURL = "https://" + bucket + ".s3." + region + ".amazonaws.com"
	}
	return &S3Storage{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/"), log: logger.OrNop(log)}
}

func (s *S3Storage) Upload(ctx context.Context, path string, body io.Reader, size int64, contentType string) (string, error) {
	if path == "" {
		return "", ErrEmptyPath
	}
	in := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(path),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := s.client.PutObject(ctx, in); err != nil {
		s.log.Error("[storage][s3] put failed", zap.String("path", path), zap.Error(err))
		return "", err
	}
	s.log.Debug("[storage][s3] put", zap.String("path", path), zap.Int64("size", size))
	return path, nil
}

func (s *S3Storage) Remove(ctx context.Context, path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		s.log.Warn("[storage][s3] delete failed", zap.String("path", path), zap.Error(err))
	}
	return err
}

func (s *S3Storage) PublicURL(path string) string {
	return publicURL(s.baseURL, path)
}

func publicURL(base, path string) string {
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return base + "/" + strings.Join(segments, "/")
}
