package uploader

import (
	"context"
	"fmt"
)

// Result is the transport's completion payload.
type Result struct {
	URL      string
	FileName string
}

// Transport performs the binary transfer. Implementations must complete at
// most once per call: either a Result or an error, never both.
type Transport interface {
	Upload(ctx context.Context, filePath string, meta Metadata) (*Result, error)
}

// TransportError marks a failure reported by the remote upload service.
// It is surfaced to the user and never retried automatically.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upload transport: %v", e.Cause)
}

func (e *TransportError) Unwrap() error { return e.Cause }
