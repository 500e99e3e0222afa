// Package memesource fetches the meme batch from the remote meme API and
// normalizes it into the internal record shape.
package memesource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"memeverse/internal/models"
	"memeverse/internal/observability"
)

// DefaultTimeout bounds a single fetch so a hung upstream never blocks a
// caller indefinitely.
const DefaultTimeout = 10 * time.Second

// RemoteMeme is the shape the meme API returns for a single meme.
type RemoteMeme struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Source retrieves the raw meme batch. The remote offers no ordering or
// freshness control; every call returns whatever the API currently serves.
type Source interface {
	FetchMemes(ctx context.Context) ([]RemoteMeme, error)
}

// HTTPSource implements Source against the meme API's single GET endpoint.
type HTTPSource struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPSource creates an HTTPSource for the given endpoint URL.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

type memeAPIResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Memes []RemoteMeme `json:"memes"`
	} `json:"data"`
}

// FetchMemes performs the GET and decodes {data:{memes:[...]}}. Cancellation
// of ctx aborts the request; the caller's view lifetime bounds the fetch.
func (s *HTTPSource) FetchMemes(ctx context.Context) ([]RemoteMeme, error) {
	ctx, span := observability.TraceOutboundCall(ctx, "meme_api", "fetch_memes")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL, nil)
	if err != nil {
		return nil, models.NewNetworkError("Failed to build meme API request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		observability.RecordErrorInContext(ctx, err)
		return nil, models.NewNetworkError("Meme API request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, models.NewNetworkError(
			fmt.Sprintf("Meme API returned status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return nil, models.NewNetworkError("Failed to read meme API response", err)
	}

	var decoded memeAPIResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, models.NewParseError("Unexpected meme API response shape", err)
	}
	if decoded.Data.Memes == nil {
		return nil, models.NewParseError("Meme API response missing data.memes", nil)
	}

	return decoded.Data.Memes, nil
}
