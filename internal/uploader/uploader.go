package uploader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"
	"unicode/utf8"
)

// User-facing messages, kept verbatim with the gallery client.
var (
	ErrNotAnImage     = errors.New("Please select a valid image file")
	ErrNoFileSelected = errors.New("No File Selected!")
)

// FieldErrors carries per-field validation messages; submission with any
// field error never invokes the transport.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(parts, "; ")
}

// Callbacks is the terminal-event contract of one upload attempt. OnBegin is
// informational and fires before the transport call resolves; exactly one of
// OnComplete and OnError follows. Nil members are skipped.
type Callbacks struct {
	OnBegin    func()
	OnComplete func(*Result)
	OnError    func(error)
}

// Session owns one upload dialog's state: the selected file, the pending
// form fields and the lifecycle status. It is not shared across dialogs.
// At most one upload is in flight; Submit during Uploading is a no-op.
type Session struct {
	transport Transport
	callbacks Callbacks

	mu          sync.Mutex
	status      Status
	filePath    string
	previewPath string
	done        chan struct{}
}

func NewSession(transport Transport, callbacks Callbacks) *Session {
	return &Session{
		transport: transport,
		callbacks: callbacks,
		status:    StatusIdle,
	}
}

func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// PreviewPath returns the local preview reference for the selected file, or
// "" when nothing is selected.
func (s *Session) PreviewPath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.previewPath
}

// SelectFile accepts a candidate file only when its sniffed media type is
// image/*. On rejection the session resets to Idle and the warning is
// returned; the transport is never involved.
func (s *Session) SelectFile(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusUploading {
		return nil // selection is frozen while an upload is in flight
	}

	ok, err := isImageFile(path)
	if err != nil || !ok {
		s.status = StatusIdle
		s.filePath = ""
		s.previewPath = ""
		if err != nil {
			return fmt.Errorf("%w: %v", ErrNotAnImage, err)
		}
		return ErrNotAnImage
	}

	s.status = StatusSelecting
	s.filePath = path
	s.previewPath = path
	return nil
}

// Submit validates the form fields and, when everything holds, hands the
// file to the transport. Validation failures return immediately with
// field-level messages and no transport call. The transfer itself runs
// asynchronously; use the callbacks or Wait for the terminal event.
func (s *Session) Submit(ctx context.Context, meta Metadata) error {
	s.mu.Lock()

	if s.status == StatusUploading {
		s.mu.Unlock()
		return nil // idempotent guard, not a queue
	}

	if s.filePath == "" {
		s.mu.Unlock()
		return ErrNoFileSelected
	}

	s.status = StatusValidating
	if fe := validateMetadata(meta); len(fe) > 0 {
		s.status = StatusSelecting
		s.mu.Unlock()
		return fe
	}

	s.status = StatusUploading
	filePath := s.filePath
	s.done = make(chan struct{})
	done := s.done
	s.mu.Unlock()

	if s.callbacks.OnBegin != nil {
		s.callbacks.OnBegin()
	}

	go func() {
		defer close(done)

		result, err := s.transport.Upload(ctx, filePath, meta)

		s.mu.Lock()
		if err != nil {
			s.status = StatusFailed
		} else {
			s.status = StatusComplete
		}
		s.mu.Unlock()

		if err != nil {
			if s.callbacks.OnError != nil {
				s.callbacks.OnError(err)
			}
		} else if s.callbacks.OnComplete != nil {
			s.callbacks.OnComplete(result)
		}

		// terminal state observed; clear the session for the next attempt
		s.mu.Lock()
		s.status = StatusIdle
		s.filePath = ""
		s.previewPath = ""
		s.mu.Unlock()
	}()

	return nil
}

// Wait blocks until the in-flight upload (if any) reaches its terminal
// callback.
func (s *Session) Wait() {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done != nil {
		<-done
	}
}

func validateMetadata(meta Metadata) FieldErrors {
	fe := make(FieldErrors)

	nameLen := utf8.RuneCountInString(meta.ImageName)
	if nameLen < imageNameMinLen {
		fe["image_name"] = fmt.Sprintf("Image Name must be at least %d characters long", imageNameMinLen)
	} else if nameLen > imageNameMaxLen {
		fe["image_name"] = fmt.Sprintf("Image Name must be at most %d characters long", imageNameMaxLen)
	}

	descLen := utf8.RuneCountInString(meta.Description)
	if descLen < descriptionMinLen {
		fe["description"] = fmt.Sprintf("Description must be at least %d characters long", descriptionMinLen)
	} else if descLen > descriptionMaxLen {
		fe["description"] = fmt.Sprintf("Description must be at most %d characters long", descriptionMaxLen)
	}

	if len(fe) == 0 {
		return nil
	}
	return fe
}

// isImageFile sniffs the file's leading bytes; the extension is not trusted.
func isImageFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && n == 0 {
		return false, err
	}

	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	return strings.HasPrefix(mimeType, "image/"), nil
}
