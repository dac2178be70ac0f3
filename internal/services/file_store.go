package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"stagefront/internal/config"
)

// StoredFile is the result of an upload: a public URL for rendering and the
// object key used later for deletion.
type StoredFile struct {
	URL string `json:"url"`
	Key string `json:"key"`
}

// FileStore abstracts blob storage. Delete is deliberately best-effort and
// returns nothing: file cleanup must never fail or roll back the database
// write it follows, so failures stop here and get logged.
type FileStore interface {
	Store(ctx context.Context, body io.Reader, filename string) (*StoredFile, error)
	Delete(ctx context.Context, keys ...string)
}

type s3FileStore struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
	log           zerolog.Logger
}

func NewS3FileStore(cfg *config.S3Config, log zerolog.Logger) FileStore {
	return &s3FileStore{
		client:        cfg.Client,
		uploader:      manager.NewUploader(cfg.Client),
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		log:           log,
	}
}

func (s *s3FileStore) Store(ctx context.Context, body io.Reader, filename string) (*StoredFile, error) {
	key := filepath.Join("uploads", uuid.New().String()+filepath.Ext(filename))

	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   body,
	})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", filename, err)
	}

	return &StoredFile{
		URL: s.publicBaseURL + "/" + key,
		Key: key,
	}, nil
}

func (s *s3FileStore) Delete(ctx context.Context, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(key),
		})
		if err != nil {
			s.log.Warn().Err(err).Str("key", key).Msg("failed to delete stored file")
		}
	}
}
