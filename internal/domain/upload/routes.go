package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes registers the upload intake under the protected group.
func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.POST("/uploads", h.Upload)
}
