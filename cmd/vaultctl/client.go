package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// apiClient wraps the gallery API's JSON endpoints. Uploads go through the
// uploader package instead; see upload.go.
type apiClient struct {
	baseURL string
	token   string
	client  *http.Client
}

func newAPIClient(cfg *cliConfig) *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(cfg.ServerURL, "/"),
		token:   cfg.Token,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type imageView struct {
	ID           int64     `json:"id"`
	UserID       string    `json:"userId"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	FileName     string    `json:"fileName"`
	ImageName    string    `json:"imageName"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UploaderName string    `json:"uploaderName"`
}

type authPayload struct {
	Token   string `json:"token"`
	Account struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"account"`
}

func (c *apiClient) register(ctx context.Context, email, firstName, lastName, password string) (*authPayload, error) {
	body := map[string]string{
		"email":      email,
		"first_name": firstName,
		"last_name":  lastName,
		"password":   password,
	}
	var out struct {
		Data authPayload `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/register", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *apiClient) login(ctx context.Context, email, password string) (*authPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var out struct {
		Data authPayload `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/v1/auth/login", body, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *apiClient) listImages(ctx context.Context, userID, search string) ([]imageView, error) {
	q := url.Values{}
	if userID != "" {
		q.Set("userId", userID)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/api/v1/images"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out struct {
		Images []imageView `json:"images"`
		Error  string      `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Error != "" {
		return nil, fmt.Errorf("%s", out.Error)
	}
	return out.Images, nil
}

func (c *apiClient) getImage(ctx context.Context, id string) (*imageView, error) {
	var out struct {
		Data imageView `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/images/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

func (c *apiClient) uploaderName(ctx context.Context, userID string) (string, error) {
	var out struct {
		FullName string `json:"fullName"`
		Error    string `json:"error"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/v1/user/"+url.PathEscape(userID), nil, &out); err != nil {
		return "", err
	}
	if out.Error != "" {
		return "", fmt.Errorf("%s", out.Error)
	}
	return out.FullName, nil
}

func (c *apiClient) deleteImage(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/v1/images/"+url.PathEscape(id), nil, nil)
}

func (c *apiClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error.Message != "" {
			return fmt.Errorf("%s", envelope.Error.Message)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
