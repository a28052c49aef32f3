package uploader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	mu      sync.Mutex
	calls   int
	release chan struct{} // blocks Upload until closed, when non-nil
	result  *Result
	err     error
}

func (t *fakeTransport) Upload(ctx context.Context, filePath string, meta Metadata) (*Result, error) {
	t.mu.Lock()
	t.calls++
	release := t.release
	t.mu.Unlock()

	if release != nil {
		<-release
	}
	return t.result, t.err
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func writeTempFile(t *testing.T, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func pngFile(t *testing.T) string {
	t.Helper()
	return writeTempFile(t, "page.png", []byte("\x89PNG\r\n\x1a\n"+strings.Repeat("x", 64)))
}

func validMetadata() Metadata {
	return Metadata{
		ImageName:   "Cat Art Collection",
		Description: "A hand-drawn cat illustration in manga style.",
	}
}

func TestSession_SelectFileAcceptsImage(t *testing.T) {
	s := NewSession(&fakeTransport{}, Callbacks{})
	path := pngFile(t)

	require.NoError(t, s.SelectFile(path))
	assert.Equal(t, StatusSelecting, s.Status())
	assert.Equal(t, path, s.PreviewPath())
}

func TestSession_SelectFileRejectsNonImage(t *testing.T) {
	transport := &fakeTransport{}
	s := NewSession(transport, Callbacks{})

	err := s.SelectFile(writeTempFile(t, "notes.txt", []byte("just some plain text")))
	require.ErrorIs(t, err, ErrNotAnImage)
	assert.Equal(t, StatusIdle, s.Status())
	assert.Empty(t, s.PreviewPath())
	assert.Zero(t, transport.callCount())
}

func TestSession_SubmitWithoutSelection(t *testing.T) {
	transport := &fakeTransport{}
	s := NewSession(transport, Callbacks{})

	err := s.Submit(context.Background(), validMetadata())
	require.ErrorIs(t, err, ErrNoFileSelected)
	assert.Zero(t, transport.callCount())
}

func TestSession_SubmitRejectsInvalidMetadata(t *testing.T) {
	transport := &fakeTransport{}
	s := NewSession(transport, Callbacks{})
	require.NoError(t, s.SelectFile(pngFile(t)))

	err := s.Submit(context.Background(), Metadata{ImageName: "Cat", Description: "too short"})

	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, "image_name")
	assert.Contains(t, fe, "description")
	assert.Zero(t, transport.callCount())
	assert.Equal(t, StatusSelecting, s.Status())
}

func TestSession_SubmitCompletes(t *testing.T) {
	transport := &fakeTransport{result: &Result{URL: "/static/uploads/page.png", FileName: "page.png"}}

	var began bool
	var got *Result
	s := NewSession(transport, Callbacks{
		OnBegin:    func() { began = true },
		OnComplete: func(r *Result) { got = r },
		OnError:    func(err error) { t.Errorf("unexpected error callback: %v", err) },
	})

	require.NoError(t, s.SelectFile(pngFile(t)))
	require.NoError(t, s.Submit(context.Background(), validMetadata()))
	s.Wait()

	assert.True(t, began)
	require.NotNil(t, got)
	assert.Equal(t, "page.png", got.FileName)
	assert.Equal(t, 1, transport.callCount())

	// terminal event observed, session is clear for the next attempt
	assert.Equal(t, StatusIdle, s.Status())
	assert.Empty(t, s.PreviewPath())
}

func TestSession_SubmitReportsTransportFailure(t *testing.T) {
	cause := errors.New("connection refused")
	transport := &fakeTransport{err: &TransportError{Cause: cause}}

	var got error
	s := NewSession(transport, Callbacks{
		OnComplete: func(*Result) { t.Error("unexpected complete callback") },
		OnError:    func(err error) { got = err },
	})

	require.NoError(t, s.SelectFile(pngFile(t)))
	require.NoError(t, s.Submit(context.Background(), validMetadata()))
	s.Wait()

	var terr *TransportError
	require.ErrorAs(t, got, &terr)
	assert.Equal(t, StatusIdle, s.Status())
}

func TestSession_SubmitWhileUploadingIsNoOp(t *testing.T) {
	release := make(chan struct{})
	transport := &fakeTransport{release: release, result: &Result{FileName: "page.png"}}
	s := NewSession(transport, Callbacks{})

	require.NoError(t, s.SelectFile(pngFile(t)))
	require.NoError(t, s.Submit(context.Background(), validMetadata()))
	assert.Equal(t, StatusUploading, s.Status())

	// a second submit and a re-selection are both swallowed mid-flight
	require.NoError(t, s.Submit(context.Background(), validMetadata()))
	require.NoError(t, s.SelectFile(writeTempFile(t, "other.txt", []byte("plain text"))))

	close(release)
	s.Wait()
	assert.Equal(t, 1, transport.callCount())
}
