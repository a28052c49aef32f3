package account

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mangavault/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	a, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrEmailAlreadyExists:
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "registration failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, AuthResponse{Token: token, Account: a})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	a, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		switch err {
		case ErrInvalidCredentials:
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL", "login failed")
		}
		return
	}

	response.Success(c, http.StatusOK, AuthResponse{Token: token, Account: a})
}
