package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStore writes files under a date-partitioned directory and serves them
// from a static URL prefix.
type LocalStore struct {
	baseDir    string
	staticBase string
}

func NewLocalStore(baseDir, staticBase string) *LocalStore {
	return &LocalStore{baseDir: baseDir, staticBase: strings.TrimRight(staticBase, "/")}
}

func (s *LocalStore) Save(ctx context.Context, originalName string, r io.Reader) (*StoredObject, error) {
	now := time.Now()
	relDir := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())
	absDir := filepath.Join(s.baseDir, relDir)
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return nil, fmt.Errorf("creating upload directory: %w", err)
	}

	ext := filepath.Ext(originalName)
	filename := fmt.Sprintf("%s_%s%s", uuid.New().String(), sanitizeName(originalName), ext)

	absPath := filepath.Join(absDir, filename)
	dst, err := os.Create(absPath)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		_ = os.Remove(absPath)
		return nil, fmt.Errorf("writing file: %w", err)
	}

	relPath := filepath.Join(relDir, filename)
	return &StoredObject{
		Ref: relPath,
		URL: s.staticBase + "/" + strings.ReplaceAll(relPath, "\\", "/"),
	}, nil
}

func (s *LocalStore) Remove(ctx context.Context, ref string) error {
	return os.Remove(filepath.Join(s.baseDir, ref))
}

// BaseDir exposes the uploads root for static file serving.
func (s *LocalStore) BaseDir() string { return s.baseDir }
