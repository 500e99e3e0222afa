// Package hosting uploads rendered meme images to an external image host.
package hosting

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"memeverse/internal/models"
	"memeverse/internal/observability"
)

const maxResponseBytes = 1 << 20 // 1MB

// Host uploads image bytes and returns the public URL they are served from.
type Host interface {
	Upload(ctx context.Context, image []byte) (string, error)
}

// HTTPHost uploads images to an imgbb-compatible hosting API.
type HTTPHost struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHTTPHost returns an HTTPHost for the given upload endpoint and API key.
func NewHTTPHost(endpoint, apiKey string) *HTTPHost {
	return &HTTPHost{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type uploadResponse struct {
	Success bool `json:"success"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the image as a base64-encoded multipart form field and returns
// the hosted URL. The request is attempted exactly once; callers decide
// whether a failed upload is retried.
func (h *HTTPHost) Upload(ctx context.Context, image []byte) (string, error) {
	if len(image) == 0 {
		return "", models.NewValidationError("image payload is empty")
	}

	ctx, span := observability.TraceOutboundCall(ctx, "image_host", "upload")
	defer span.End()

	var body strings.Builder
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("image", base64.StdEncoding.EncodeToString(image)); err != nil {
		return "", models.NewInternalError(fmt.Errorf("build upload form: %w", err))
	}
	if err := writer.WriteField("key", h.apiKey); err != nil {
		return "", models.NewInternalError(fmt.Errorf("build upload form: %w", err))
	}
	if err := writer.Close(); err != nil {
		return "", models.NewInternalError(fmt.Errorf("build upload form: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, strings.NewReader(body.String()))
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("build upload request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return "", models.NewNetworkError("Image host unreachable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", models.NewNetworkError("Failed to read image host response", err)
	}

	var parsed uploadResponse
	if err := json.Unmarshal(payload, &parsed); err != nil {
		return "", models.NewParseError("Unexpected image host response shape", err)
	}

	if !parsed.Success || resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := parsed.Error.Message
		if message == "" {
			message = fmt.Sprintf("image host returned status %d", resp.StatusCode)
		}
		return "", models.NewHostingError(message)
	}

	if parsed.Data.URL == "" {
		return "", models.NewParseError("Image host response missing url", nil)
	}
	return parsed.Data.URL, nil
}
