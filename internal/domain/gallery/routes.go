package gallery

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes registers the listing and resolution endpoints.
func RegisterPublicRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/images", h.List)
	r.POST("/images", h.SearchByName)
	r.GET("/images/:id", h.GetByID)
	r.GET("/user/:id", h.UploaderName)
}

// RegisterProtectedRoutes registers the owner-scoped endpoints.
func RegisterProtectedRoutes(r *gin.RouterGroup, h *Handler) {
	r.DELETE("/images/:id", h.Delete)
}
