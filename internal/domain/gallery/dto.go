package gallery

// Filter is the structured listing criteria. Zero values mean "no filter";
// with neither field set the listing returns every record (no pagination).
type Filter struct {
	OwnerID string
	Search  string
}

// ImageView is an ImageRecord enriched with the uploader's display name as
// resolved from the identity provider at read time.
type ImageView struct {
	ImageRecord
	UploaderName string `json:"uploaderName"`
}

// SearchRequest is the body of POST /images.
type SearchRequest struct {
	Name string `json:"name" binding:"required"`
}

// RecordUploadParams carries the metadata persisted on upload completion.
type RecordUploadParams struct {
	OwnerID          string
	OwnerEmail       string
	OwnerDisplayName string
	FileName         string
	ImageName        string
	Description      string
	ImageURL         string
	StorageRef       string
}
