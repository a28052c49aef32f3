package gallery

import (
	"log"
	"net/http"
	"strconv"

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

// List handles GET /images?userId=&search=.
// Response shape follows the established client contract: {"images": [...]}
// on success, {"error": "..."} with 500 on persistence failure.
func (h *Handler) List(c *gin.Context) {
	f := Filter{
		OwnerID: c.Query("userId"),
		Search:  c.Query("search"),
	}

	views, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		log.Printf("gallery: listing failed filter=%+v error=%v", f, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": views})
}

// SearchByName handles POST /images with a {name} body; the name is applied
// as the search term under the same listing contract as List.
func (h *Handler) SearchByName(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	views, err := h.service.List(c.Request.Context(), Filter{Search: req.Name})
	if err != nil {
		log.Printf("gallery: search failed name=%q error=%v", req.Name, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load images"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"images": views})
}

// GetByID handles GET /images/:id for the detail modal.
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "image id must be numeric")
		return
	}

	rec, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		switch err {
		case ErrImageNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "image not found")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "failed to load image")
		}
		return
	}

	response.Success(c, http.StatusOK, rec)
}

// UploaderName handles GET /user/:id, the modal's lazy uploader resolution.
// Shape: {"fullName": "..."} or {"error": "..."}.
func (h *Handler) UploaderName(c *gin.Context) {
	name, err := h.service.ResolveUploaderName(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "failed to resolve user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"fullName": name})
}

// Delete handles DELETE /images/:id (owner only).
func (h *Handler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "image id must be numeric")
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		switch err {
		case ErrImageNotFound:
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "image not found")
		case ErrNotOwner:
			response.Error(c, http.StatusForbidden, "FORBIDDEN", "you do not own this image")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "delete failed")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": id})
}
