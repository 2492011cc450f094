// Package imagekit is the client for the external image pipeline. Uploaded
// blog images are stored by ImageKit and served through its CDN with an
// optimizing transform applied.
package imagekit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"inkwell/internal/config"
)

// DefaultUploadURL is the ImageKit upload API endpoint.
const DefaultUploadURL = "https://upload.imagekit.io/api/v1/files/upload"

// Uploader stores image bytes and returns a stable public URL.
type Uploader interface {
	Store(ctx context.Context, data []byte, fileName string) (string, error)
}

// Client talks to the ImageKit upload API.
type Client struct {
	uploadURL   string
	urlEndpoint string
	privateKey  string
	httpClient  *http.Client
}

// NewClient creates an ImageKit client from configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		uploadURL:   DefaultUploadURL,
		urlEndpoint: strings.TrimRight(cfg.ImageKitEndpoint, "/"),
		privateKey:  cfg.ImageKitKey,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
}

// NewClientWithUploadURL creates a client pointed at a custom upload endpoint.
// Used by tests.
func NewClientWithUploadURL(cfg *config.Config, uploadURL string) *Client {
	c := NewClient(cfg)
	c.uploadURL = uploadURL
	return c
}

type uploadResponse struct {
	FilePath string `json:"filePath"`
	URL      string `json:"url"`
}

// Store uploads the image into the /blogs/ folder and returns the CDN URL
// with the webp/quality/width transform the public site serves. The stored
// name gets a random prefix so repeated uploads of the same file never
// collide.
func (c *Client) Store(ctx context.Context, data []byte, fileName string) (string, error) {
	storedName := uuid.NewString() + "-" + fileName

	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", storedName)
	if err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}
	if err := w.WriteField("fileName", storedName); err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}
	if err := w.WriteField("folder", "/blogs/"); err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &body)
	if err != nil {
		return "", fmt.Errorf("imagekit: build request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.SetBasicAuth(c.privateKey, "")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("imagekit: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("imagekit: upload returned %d: %s", resp.StatusCode, detail)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("imagekit: decode response: %w", err)
	}
	if parsed.FilePath == "" {
		return "", fmt.Errorf("imagekit: upload response missing filePath")
	}

	return c.transformedURL(parsed.FilePath), nil
}

// transformedURL builds the delivery URL with quality auto, webp format and
// a 1280px width cap.
func (c *Client) transformedURL(filePath string) string {
	return fmt.Sprintf("%s/tr:q-auto,f-webp,w-1280%s", c.urlEndpoint, filePath)
}
