package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"mangavault/internal/middleware"
	"mangavault/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Upload handles POST /uploads: multipart "file" plus the metadata fields.
func (h *Handler) Upload(c *gin.Context) {
	userID := middleware.UserID(c)
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "NO_FILE", "no file provided")
		return
	}

	meta := Metadata{
		ImageName:   c.PostForm("image_name"),
		Description: c.PostForm("description"),
	}

	rec, err := h.service.Upload(c.Request.Context(), userID, fileHeader, meta)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid metadata", verr.Fields)
		case errors.Is(err, ErrEmptyFile), errors.Is(err, ErrInvalidMimeType):
			response.Error(c, http.StatusBadRequest, "INVALID_FILE", err.Error())
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		default:
			c.Error(err) // surfaces in the request error log
			response.Error(c, http.StatusInternalServerError, "UPLOAD_FAILED", "upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, rec)
}
