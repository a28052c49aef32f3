package storage

import (
	"context"
	"io"
	"path/filepath"
	"strings"
)

// StoredObject describes one persisted binary.
type StoredObject struct {
	// Ref is the backend-internal reference (relative disk path, object path).
	Ref string
	// URL is the durable public location recorded in image metadata.
	URL string
}

// ObjectStore persists uploaded binaries and returns their durable URL.
type ObjectStore interface {
	Save(ctx context.Context, originalName string, r io.Reader) (*StoredObject, error)
	Remove(ctx context.Context, ref string) error
}

func sanitizeName(name string) string {
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return '_'
	}, name)
	if len(name) > 40 {
		name = name[:40]
	}
	if name == "" {
		return "file"
	}
	return name
}
