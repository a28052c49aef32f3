package gallery

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"mangavault/internal/database"
	"mangavault/internal/identity"
	"mangavault/internal/middleware"
	jwtsvc "mangavault/internal/pkg/jwt"
)

func setupGalleryRouter(t *testing.T) (*gin.Engine, Repository, *jwtsvc.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&ImageRecord{}))

	repo := NewRepository(db)
	provider := &stubProvider{profiles: map[string]*identity.Profile{
		"u1": {ID: "u1", FirstName: "Mika", LastName: "Tan"},
		"u2": {ID: "u2", FirstName: "Leon"},
	}}

	service := NewService(repo, provider, nil, nil)
	handler := NewHandler(service)

	j := jwtsvc.New("test-secret", time.Hour)

	router := gin.New()
	v1 := router.Group("/api/v1")
	RegisterPublicRoutes(v1, handler)

	protected := v1.Group("/")
	protected.Use(middleware.Auth(j))
	RegisterProtectedRoutes(protected, handler)

	return router, repo, j
}

func performJSON(router *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type listingBody struct {
	Images []ImageView `json:"images"`
	Error  string      `json:"error"`
}

func TestHandler_ListFiltersByOwner(t *testing.T) {
	router, repo, _ := setupGalleryRouter(t)

	seedRecord(t, repo, "u1", "Mika", "mika@example.com", "Cat Art")
	seedRecord(t, repo, "u2", "Leon", "leon@example.com", "Dog Art")

	resp := performJSON(router, http.MethodGet, "/api/v1/images?userId=u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body listingBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Images, 1)
	require.Equal(t, "Cat Art", body.Images[0].ImageName)
	require.Equal(t, "Mika Tan", body.Images[0].UploaderName)
}

func TestHandler_SearchByNamePost(t *testing.T) {
	router, repo, _ := setupGalleryRouter(t)

	seedRecord(t, repo, "u1", "Mika", "mika@example.com", "Cat Art")
	seedRecord(t, repo, "u2", "Leon", "leon@example.com", "Dog Art")

	resp := performJSON(router, http.MethodPost, "/api/v1/images", map[string]string{"name": "leon"}, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body listingBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Images, 1)
	require.Equal(t, "Dog Art", body.Images[0].ImageName)
}

func TestHandler_SearchByNameRequiresName(t *testing.T) {
	router, _, _ := setupGalleryRouter(t)

	resp := performJSON(router, http.MethodPost, "/api/v1/images", map[string]string{}, "")
	require.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHandler_UploaderName(t *testing.T) {
	router, _, _ := setupGalleryRouter(t)

	resp := performJSON(router, http.MethodGet, "/api/v1/user/u1", nil, "")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Equal(t, "Mika Tan", body.FullName)
}

func TestHandler_UploaderNameUnknownUser(t *testing.T) {
	router, _, _ := setupGalleryRouter(t)

	resp := performJSON(router, http.MethodGet, "/api/v1/user/ghost", nil, "")
	require.Equal(t, http.StatusNotFound, resp.Code)

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.NotEmpty(t, body.Error)
}

func TestHandler_DeleteRequiresAuth(t *testing.T) {
	router, repo, _ := setupGalleryRouter(t)

	rec := seedRecord(t, repo, "u1", "Mika", "mika@example.com", "Cat Art")

	resp := performJSON(router, http.MethodDelete, "/api/v1/images/1", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.Code)

	// record untouched
	_, err := repo.GetByID(context.Background(), rec.ID)
	require.NoError(t, err)
}

func TestHandler_DeleteOwnerOnly(t *testing.T) {
	router, repo, j := setupGalleryRouter(t)

	rec := seedRecord(t, repo, "u1", "Mika", "mika@example.com", "Cat Art")

	otherToken, err := j.GenerateToken("u2", "leon@example.com")
	require.NoError(t, err)

	resp := performJSON(router, http.MethodDelete, "/api/v1/images/1", nil, otherToken)
	require.Equal(t, http.StatusForbidden, resp.Code)

	ownerToken, err := j.GenerateToken("u1", "mika@example.com")
	require.NoError(t, err)

	resp = performJSON(router, http.MethodDelete, "/api/v1/images/1", nil, ownerToken)
	require.Equal(t, http.StatusOK, resp.Code)

	_, err = repo.GetByID(context.Background(), rec.ID)
	require.ErrorIs(t, err, ErrImageNotFound)
}
