package upload

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"mangavault/internal/domain/gallery"
	"mangavault/internal/identity"
	"mangavault/internal/storage"
)

const (
	// MaxFileSize matches the transport's 4 MB image cap.
	MaxFileSize = 4 * 1024 * 1024

	ImageNameMinLen   = 5
	ImageNameMaxLen   = 50
	DescriptionMinLen = 10
	DescriptionMaxLen = 200
)

// Snapshot fallbacks when the identity provider cannot resolve the uploader.
const (
	fallbackEmail       = "unknown"
	fallbackDisplayName = "Anonymous"
)

// Metadata is the validated side-channel payload submitted with the file.
type Metadata struct {
	ImageName   string
	Description string
}

// Service is the server half of the upload transport: it accepts the binary,
// writes it to the object store and persists the metadata row exactly once
// per completed transfer.
type Service struct {
	gallery  *gallery.Service
	provider identity.Provider
	store    storage.ObjectStore
}

func NewService(g *gallery.Service, provider identity.Provider, store storage.ObjectStore) *Service {
	return &Service{gallery: g, provider: provider, store: store}
}

// ValidateMetadata checks the user-supplied fields against the form bounds.
func ValidateMetadata(meta Metadata) *ValidationError {
	fields := make(map[string]string)

	nameLen := utf8.RuneCountInString(meta.ImageName)
	if nameLen < ImageNameMinLen {
		fields["image_name"] = fmt.Sprintf("Image Name must be at least %d characters long", ImageNameMinLen)
	} else if nameLen > ImageNameMaxLen {
		fields["image_name"] = fmt.Sprintf("Image Name must be at most %d characters long", ImageNameMaxLen)
	}

	descLen := utf8.RuneCountInString(meta.Description)
	if descLen < DescriptionMinLen {
		fields["description"] = fmt.Sprintf("Description must be at least %d characters long", DescriptionMinLen)
	} else if descLen > DescriptionMaxLen {
		fields["description"] = fmt.Sprintf("Description must be at most %d characters long", DescriptionMaxLen)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}

// Upload runs the full pipeline: validate, store the binary, snapshot the
// uploader's identity and record the metadata.
func (s *Service) Upload(ctx context.Context, userID string, fileHeader *multipart.FileHeader, meta Metadata) (*gallery.ImageRecord, error) {
	if verr := ValidateMetadata(meta); verr != nil {
		return nil, verr
	}

	if fileHeader.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fileHeader.Size > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	// sniff the first 512 bytes; extension alone is not trusted
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	mimeType := strings.Split(http.DetectContentType(buf[:n]), ";")[0]
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, ErrInvalidMimeType
	}

	if seeker, ok := file.(io.Seeker); ok {
		_, _ = seeker.Seek(0, io.SeekStart)
	}

	obj, err := s.store.Save(ctx, fileHeader.Filename, file)
	if err != nil {
		return nil, fmt.Errorf("storing file: %w", err)
	}

	email, displayName := s.snapshotIdentity(ctx, userID)

	rec, err := s.gallery.RecordUpload(ctx, gallery.RecordUploadParams{
		OwnerID:          userID,
		OwnerEmail:       email,
		OwnerDisplayName: displayName,
		FileName:         fileHeader.Filename,
		ImageName:        meta.ImageName,
		Description:      meta.Description,
		ImageURL:         obj.URL,
		StorageRef:       obj.Ref,
	})
	if err != nil {
		// roll the binary back so a failed insert leaves no orphan object
		if rmErr := s.store.Remove(ctx, obj.Ref); rmErr != nil {
			log.Printf("upload: rollback of stored object failed ref=%s error=%v", obj.Ref, rmErr)
		}
		return nil, err
	}

	return rec, nil
}

// snapshotIdentity resolves the uploader's profile for denormalization.
// Resolution failures degrade to placeholders rather than failing the upload.
func (s *Service) snapshotIdentity(ctx context.Context, userID string) (email, displayName string) {
	email, displayName = fallbackEmail, fallbackDisplayName

	profile, err := s.provider.GetUser(ctx, userID)
	if err != nil {
		log.Printf("upload: identity snapshot failed user_id=%s error=%v", userID, err)
		return email, displayName
	}

	if e := profile.PrimaryEmail(); e != "" {
		email = e
	}
	if profile.FirstName != "" {
		displayName = profile.FirstName
	}
	return email, displayName
}
