package gallery

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"mangavault/internal/identity"
	"mangavault/internal/storage"
)

// UnknownUploader is the display-name fallback when an identity lookup fails.
const UnknownUploader = "Unknown"

type Service struct {
	repo     Repository
	provider identity.Provider
	store    storage.ObjectStore
	hub      *Hub // nil when the refresh feed is disabled
}

func NewService(repo Repository, provider identity.Provider, store storage.ObjectStore, hub *Hub) *Service {
	return &Service{repo: repo, provider: provider, store: store, hub: hub}
}

// RecordUpload persists one ImageRecord for a completed transport upload.
// Called exactly once per completion; the transport's at-most-once completion
// guarantee stands in for deduplication.
func (s *Service) RecordUpload(ctx context.Context, p RecordUploadParams) (*ImageRecord, error) {
	if p.OwnerID == "" {
		return nil, fmt.Errorf("%w: missing owner", ErrInvalidRecord)
	}
	if p.ImageURL == "" {
		return nil, fmt.Errorf("%w: missing image url", ErrInvalidRecord)
	}

	rec := &ImageRecord{
		OwnerID:          p.OwnerID,
		OwnerEmail:       p.OwnerEmail,
		OwnerDisplayName: p.OwnerDisplayName,
		FileName:         p.FileName,
		ImageName:        p.ImageName,
		Description:      p.Description,
		ImageURL:         p.ImageURL,
		StorageRef:       p.StorageRef,
		CreatedAt:        time.Now(),
	}

	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}

	s.notifyChanged()
	return rec, nil
}

// List returns records matching the filter, each enriched with the uploader's
// live display name. Lookups run concurrently, one per record; a failed or
// slow lookup degrades only its own record to the "Unknown" placeholder.
func (s *Service) List(ctx context.Context, f Filter) ([]ImageView, error) {
	records, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	views := make([]ImageView, len(records))

	var wg sync.WaitGroup
	for i := range records {
		views[i] = ImageView{ImageRecord: records[i], UploaderName: UnknownUploader}

		wg.Add(1)
		go func(i int, ownerID string) {
			defer wg.Done()
			profile, err := s.provider.GetUser(ctx, ownerID)
			if err != nil {
				log.Printf("gallery: identity lookup failed owner_id=%s error=%v", ownerID, err)
				return
			}
			if name := profile.FullName(); name != "" {
				views[i].UploaderName = name
			}
		}(i, records[i].OwnerID)
	}
	wg.Wait()

	return views, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*ImageRecord, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveUploaderName serves the detail modal's lazy lookup. Unlike listing
// enrichment, a failure here propagates to the caller.
func (s *Service) ResolveUploaderName(ctx context.Context, userID string) (string, error) {
	profile, err := s.provider.GetUser(ctx, userID)
	if err != nil {
		return "", err
	}
	name := profile.FullName()
	if name == "" {
		name = UnknownUploader
	}
	return name, nil
}

// Delete removes an owned record and best-effort removes the stored binary.
func (s *Service) Delete(ctx context.Context, id int64, ownerID string) error {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.OwnerID != ownerID {
		return ErrNotOwner
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if rec.StorageRef != "" && s.store != nil {
		if err := s.store.Remove(ctx, rec.StorageRef); err != nil {
			log.Printf("gallery: removing stored object failed ref=%s error=%v", rec.StorageRef, err)
		}
	}

	s.notifyChanged()
	return nil
}

func (s *Service) notifyChanged() {
	if s.hub != nil {
		s.hub.BroadcastUpdated()
	}
}
