package uploader

// Status is the upload session's lifecycle state.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSelecting  Status = "selecting"
	StatusValidating Status = "validating"
	StatusUploading  Status = "uploading"
	StatusComplete   Status = "complete"
	StatusFailed     Status = "failed"
)

// Metadata is the form payload submitted alongside the file. Bounds mirror
// the server's; the client validates first so invalid input never reaches
// the transport.
type Metadata struct {
	ImageName   string
	Description string
}

const (
	imageNameMinLen   = 5
	imageNameMaxLen   = 50
	descriptionMinLen = 10
	descriptionMaxLen = 200
)
