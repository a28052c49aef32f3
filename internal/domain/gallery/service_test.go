package gallery

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"mangavault/internal/identity"
	"mangavault/internal/storage"
)

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Create(ctx context.Context, rec *ImageRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *mockRepo) GetByID(ctx context.Context, id int64) (*ImageRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ImageRecord), args.Error(1)
}

func (m *mockRepo) List(ctx context.Context, f Filter) ([]ImageRecord, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ImageRecord), args.Error(1)
}

func (m *mockRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// stubProvider resolves a fixed set of profiles; everything else errors.
type stubProvider struct {
	profiles map[string]*identity.Profile
}

func (p *stubProvider) GetUser(ctx context.Context, id string) (*identity.Profile, error) {
	if profile, ok := p.profiles[id]; ok {
		return profile, nil
	}
	return nil, identity.ErrUserNotFound
}

type stubStore struct {
	removed []string
}

func (s *stubStore) Save(ctx context.Context, name string, r io.Reader) (*storage.StoredObject, error) {
	return nil, errors.New("not used")
}

func (s *stubStore) Remove(ctx context.Context, ref string) error {
	s.removed = append(s.removed, ref)
	return nil
}

func TestService_ListEnrichesEachRecord(t *testing.T) {
	repo := new(mockRepo)
	provider := &stubProvider{profiles: map[string]*identity.Profile{
		"u1": {ID: "u1", FirstName: "Mika", LastName: "Tan"},
	}}

	repo.On("List", mock.Anything, Filter{}).Return([]ImageRecord{
		{ID: 1, OwnerID: "u1", ImageName: "Cat Art"},
		{ID: 2, OwnerID: "u2", ImageName: "Dog Art"},
	}, nil)

	service := NewService(repo, provider, nil, nil)

	views, err := service.List(context.Background(), Filter{})
	assert.NoError(t, err)
	assert.Len(t, views, 2)

	assert.Equal(t, "Mika Tan", views[0].UploaderName)
	// u2 is unresolvable; its record survives with the placeholder
	assert.Equal(t, UnknownUploader, views[1].UploaderName)
	assert.Equal(t, int64(2), views[1].ID)

	repo.AssertExpectations(t)
}

func TestService_ListPropagatesPersistenceFailure(t *testing.T) {
	repo := new(mockRepo)
	repo.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	service := NewService(repo, &stubProvider{}, nil, nil)

	_, err := service.List(context.Background(), Filter{})
	assert.Error(t, err)
}

func TestService_RecordUploadRequiresOwnerAndURL(t *testing.T) {
	repo := new(mockRepo)
	service := NewService(repo, &stubProvider{}, nil, nil)

	_, err := service.RecordUpload(context.Background(), RecordUploadParams{
		ImageURL: "/static/uploads/x.jpg",
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	_, err = service.RecordUpload(context.Background(), RecordUploadParams{
		OwnerID: "u1",
	})
	assert.ErrorIs(t, err, ErrInvalidRecord)

	// the repository is never reached for invalid params
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_RecordUploadPersistsOnce(t *testing.T) {
	repo := new(mockRepo)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	service := NewService(repo, &stubProvider{}, nil, nil)

	rec, err := service.RecordUpload(context.Background(), RecordUploadParams{
		OwnerID:          "u1",
		OwnerEmail:       "mika@example.com",
		OwnerDisplayName: "Mika",
		FileName:         "cat.jpg",
		ImageName:        "Cat Art",
		Description:      "A hand-drawn cat in manga style.",
		ImageURL:         "/static/uploads/cat.jpg",
	})
	assert.NoError(t, err)
	assert.Equal(t, "u1", rec.OwnerID)
	assert.False(t, rec.CreatedAt.IsZero())

	repo.AssertExpectations(t)
}

func TestService_DeleteRejectsNonOwner(t *testing.T) {
	repo := new(mockRepo)
	repo.On("GetByID", mock.Anything, int64(1)).Return(&ImageRecord{ID: 1, OwnerID: "u1"}, nil)

	service := NewService(repo, &stubProvider{}, nil, nil)

	err := service.Delete(context.Background(), 1, "u2")
	assert.ErrorIs(t, err, ErrNotOwner)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestService_DeleteRemovesRecordAndObject(t *testing.T) {
	repo := new(mockRepo)
	store := &stubStore{}

	repo.On("GetByID", mock.Anything, int64(1)).Return(&ImageRecord{
		ID: 1, OwnerID: "u1", StorageRef: "2026/01/01/cat.jpg",
	}, nil)
	repo.On("Delete", mock.Anything, int64(1)).Return(nil)

	service := NewService(repo, &stubProvider{}, store, nil)

	err := service.Delete(context.Background(), 1, "u1")
	assert.NoError(t, err)
	assert.Equal(t, []string{"2026/01/01/cat.jpg"}, store.removed)

	repo.AssertExpectations(t)
}

func TestService_ResolveUploaderName(t *testing.T) {
	provider := &stubProvider{profiles: map[string]*identity.Profile{
		"u1": {ID: "u1", FirstName: "Mika", LastName: "Tan"},
	}}
	service := NewService(new(mockRepo), provider, nil, nil)

	name, err := service.ResolveUploaderName(context.Background(), "u1")
	assert.NoError(t, err)
	assert.Equal(t, "Mika Tan", name)

	_, err = service.ResolveUploaderName(context.Background(), "ghost")
	assert.ErrorIs(t, err, identity.ErrUserNotFound)
}
