package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"memeverse/internal/config"
	"memeverse/internal/memesource"
	"memeverse/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"memeverse/internal/models"
)

// sourceStub is a memesource.Source backed by a function field.
type sourceStub struct {
	fetchFn func(ctx context.Context) ([]memesource.RemoteMeme, error)
}

func (s *sourceStub) FetchMemes(ctx context.Context) ([]memesource.RemoteMeme, error) {
	return s.fetchFn(ctx)
}

// hostStub is a hosting.Host backed by a function field.
type hostStub struct {
	uploadFn func(ctx context.Context, image []byte) (string, error)
}

func (s *hostStub) Upload(ctx context.Context, image []byte) (string, error) {
	return s.uploadFn(ctx, image)
}

func defaultSource() *sourceStub {
	return &sourceStub{fetchFn: func(_ context.Context) ([]memesource.RemoteMeme, error) {
		return []memesource.RemoteMeme{
			{ID: "m1", Name: "drake", URL: "https://example.com/drake.jpg"},
			{ID: "m2", Name: "distracted boyfriend", URL: "https://example.com/db.jpg"},
			{ID: "m3", Name: "this is fine", URL: "https://example.com/fine.jpg"},
		}, nil
	}}
}

func defaultHost() *hostStub {
	return &hostStub{uploadFn: func(_ context.Context, _ []byte) (string, error) {
		return "https://i.ibb.co/test/meme.jpg", nil
	}}
}

// setupTestServer builds a Server over sqlite :memory: with stubbed outbound
// clients and returns the Fiber app wired with its routes.
func setupTestServer(t *testing.T, source *sourceStub, host *hostStub) (*Server, *fiber.App) {
	t.Helper()
	t.Setenv("APP_ENV", "test")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.KVEntry{}))

	cfg := &config.Config{Env: "test"}
	if source == nil {
		source = defaultSource()
	}
	if host == nil {
		host = defaultHost()
	}

	srv, err := NewServerWithDeps(cfg, db, nil, source, host)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupRoutes(app)
	return srv, app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	payload, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, payload
}

func testPNG(t *testing.T) []byte {
	return testutil.PNG(t, 64, 48)
}

// multipartUpload builds a multipart body with an image file and form fields.
func multipartUpload(t *testing.T, image []byte, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if image != nil {
		part, err := writer.CreateFormFile("image", "meme.png")
		require.NoError(t, err)
		_, err = part.Write(image)
		require.NoError(t, err)
	}
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}
