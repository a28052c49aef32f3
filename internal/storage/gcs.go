package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	gcs "cloud.google.com/go/storage"
)

// GCSStore uploads objects to a public Google Cloud Storage bucket.
type GCSStore struct {
	cl         *gcs.Client
	bucketName string
	uploadPath string
}

func NewGCSStore(ctx context.Context, bucketName string) (*GCSStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("creating storage client: %w", err)
	}
	return &GCSStore{
		cl:         client,
		bucketName: bucketName,
		uploadPath: "images/",
	}, nil
}

func (s *GCSStore) Save(ctx context.Context, originalName string, r io.Reader) (*StoredObject, error) {
	ctx, cancel := context.WithTimeout(ctx, 50*time.Second)
	defer cancel()

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	ext := filepath.Ext(originalName)
	objectPath := s.uploadPath + timestamp + "_" + sanitizeName(originalName) + ext

	wc := s.cl.Bucket(s.bucketName).Object(objectPath).NewWriter(ctx)
	if _, err := io.Copy(wc, r); err != nil {
		return nil, fmt.Errorf("io.Copy: %w", err)
	}
	if err := wc.Close(); err != nil {
		return nil, fmt.Errorf("Writer.Close: %w", err)
	}

	return &StoredObject{
		Ref: objectPath,
		URL: fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, objectPath),
	}, nil
}

func (s *GCSStore) Remove(ctx context.Context, ref string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.cl.Bucket(s.bucketName).Object(ref).Delete(ctx)
}
