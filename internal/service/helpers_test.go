package service

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"memeverse/internal/feed"
	"memeverse/internal/memesource"
	"memeverse/internal/store"
)

// mapKV is an in-memory store.KV for service tests.
type mapKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newMapKV() *mapKV {
	return &mapKV{data: make(map[string]string)}
}

func (m *mapKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapKV) Update(_ context.Context, key string, fn func(string) (string, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	next, err := fn(m.data[key])
	if err != nil {
		return err
	}
	m.data[key] = next
	return nil
}

func (m *mapKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

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

// rendererStub is a CaptionRenderer backed by a function field.
type rendererStub struct {
	renderFn func(src []byte, topText, bottomText string) ([]byte, error)
}

func (s *rendererStub) Render(src []byte, topText, bottomText string) ([]byte, error) {
	return s.renderFn(src, topText, bottomText)
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func remoteMemes(names ...string) []memesource.RemoteMeme {
	remote := make([]memesource.RemoteMeme, 0, len(names))
	for i, name := range names {
		remote = append(remote, memesource.RemoteMeme{
			ID:   string(rune('a' + i)),
			Name: name,
			URL:  "https://example.com/" + name + ".jpg",
		})
	}
	return remote
}

// newTestMemeService wires a MemeService over in-memory fakes with seeded
// randomness. The returned Interactions shares the same KV.
func newTestMemeService(t *testing.T, fetchFn func(ctx context.Context) ([]memesource.RemoteMeme, error)) (*MemeService, *store.Interactions) {
	t.Helper()
	interactions := store.NewInteractions(newMapKV())
	svc := NewMemeService(
		&sourceStub{fetchFn: fetchFn},
		memesource.NewNormalizer(rand.NewSource(1), fixedNow),
		feed.NewComposer(rand.NewSource(1)),
		interactions,
	)
	return svc, interactions
}
