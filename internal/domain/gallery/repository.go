package gallery

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, rec *ImageRecord) error
	GetByID(ctx context.Context, id int64) (*ImageRecord, error)
	List(ctx context.Context, f Filter) ([]ImageRecord, error)
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rec *ImageRecord) error {
	err := r.db.WithContext(ctx).Create(rec).Error
	if err != nil {
		var pgErr *pgconn.PgError
		// 23xxx: integrity constraint violations
		if errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, "23") {
			return ErrInvalidRecord
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*ImageRecord, error) {
	var rec ImageRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrImageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List applies the structured filter: exact owner match, then case-insensitive
// substring match of the search term against the denormalized owner name or
// email. Result order is the underlying query order.
func (r *repository) List(ctx context.Context, f Filter) ([]ImageRecord, error) {
	q := r.db.WithContext(ctx).Model(&ImageRecord{})

	if f.OwnerID != "" {
		q = q.Where("owner_id = ?", f.OwnerID)
	}
	if term := strings.TrimSpace(f.Search); term != "" {
		pattern := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(owner_display_name) LIKE ? OR LOWER(owner_email) LIKE ?", pattern, pattern)
	}

	var records []ImageRecord
	if err := q.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&ImageRecord{}).Error
}
