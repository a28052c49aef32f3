package gallery

import "time"

// ImageRecord is one uploaded image and its metadata. Owner fields are a
// denormalized snapshot of the uploader's identity taken at upload time; the
// live display name is resolved again at read time (see Service.List).
// Records are created once on upload completion and never updated in place.
type ImageRecord struct {
	ID               int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	OwnerID          string    `gorm:"column:owner_id;index;not null" json:"userId"`
	OwnerEmail       string    `gorm:"column:owner_email" json:"email"`
	OwnerDisplayName string    `gorm:"column:owner_display_name" json:"name"`
	FileName         string    `gorm:"column:file_name" json:"fileName"`
	ImageName        string    `gorm:"column:image_name" json:"imageName"`
	Description      string    `gorm:"column:description" json:"description"`
	ImageURL         string    `gorm:"column:image_url;not null" json:"imageUrl"`
	StorageRef       string    `gorm:"column:storage_ref" json:"-"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (ImageRecord) TableName() string { return "images" }
