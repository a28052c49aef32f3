package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// HTTPTransport uploads to the gallery API's multipart intake endpoint.
type HTTPTransport struct {
	baseURL string
	token   string
	client  *http.Client
}

func NewHTTPTransport(baseURL, token string) *HTTPTransport {
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		// no client timeout: a stalled transfer stays Uploading (accepted gap)
		client: &http.Client{},
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		ImageURL string `json:"imageUrl"`
		FileName string `json:"fileName"`
	} `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (t *HTTPTransport) Upload(ctx context.Context, filePath string, meta Metadata) (*Result, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &TransportError{Cause: err}
	}
	_ = mw.WriteField("image_name", meta.ImageName)
	_ = mw.WriteField("description", meta.Description)
	if err := mw.Close(); err != nil {
		return nil, &TransportError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/api/v1/uploads", &body)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &TransportError{Cause: fmt.Errorf("decoding response: %w", err)}
	}

	if resp.StatusCode != http.StatusCreated || !parsed.Success {
		msg := parsed.Error.Message
		if msg == "" {
			msg = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return nil, &TransportError{Cause: fmt.Errorf("%s", msg)}
	}

	return &Result{
		URL:      parsed.Data.ImageURL,
		FileName: parsed.Data.FileName,
	}, nil
}
