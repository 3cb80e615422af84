package photos

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"evmaint_backend/platform/logger"
)

type renderCfg struct {
	uploads string
	public  string
	baseURL string
	headers map[string]string
}

func (c renderCfg) GetUploadsDir() string               { return c.uploads }
func (c renderCfg) GetPublicDir() string                { return c.public }
func (c renderCfg) GetFontsDir() string                 { return "" }
func (c renderCfg) GetPhotosBaseURL() string            { return c.baseURL }
func (c renderCfg) GetPhotosHeaders() map[string]string { return c.headers }
func (c renderCfg) IsPDFDebug() bool                    { return false }

func testLogger() *logger.Logger {
	return logger.New("development", false)
}

func TestResolvePrefersUploadsOverHTTP(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	uploads := t.TempDir()
	dir := filepath.Join(uploads, "photos")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "a.jpg"), []byte("local"), 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(renderCfg{uploads: uploads, baseURL: srv.URL}, testLogger())
	data, ok := r.Resolve(context.Background(), "uploads/photos/a.jpg")
	if !ok {
		t.Fatal("expected photo to resolve")
	}
	if string(data) != "local" {
		t.Fatalf("expected local file contents, got %q", data)
	}
	if hits.Load() != 0 {
		t.Fatalf("HTTP fallback must not be used when the file exists locally, got %d hits", hits.Load())
	}
}

func TestResolveFallsBackToHTTPWithHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte("remote"))
	}))
	defer srv.Close()

	r := NewResolver(renderCfg{
		uploads: t.TempDir(),
		baseURL: srv.URL,
		headers: map[string]string{"X-Api-Key": "secret"},
	}, testLogger())

	data, ok := r.Resolve(context.Background(), "photos/missing.jpg")
	if !ok {
		t.Fatal("expected HTTP fallback to resolve")
	}
	if string(data) != "remote" {
		t.Fatalf("expected remote contents, got %q", data)
	}
}

func TestResolveMissReturnsFalse(t *testing.T) {
	r := NewResolver(renderCfg{uploads: t.TempDir()}, testLogger())
	if _, ok := r.Resolve(context.Background(), "uploads/nope.jpg"); ok {
		t.Fatal("expected miss")
	}
	if _, ok := r.Resolve(context.Background(), ""); ok {
		t.Fatal("empty url must miss")
	}
}

func TestRelativePathStripsSchemeAndHost(t *testing.T) {
	tests := []struct{ in, want string }{
		{"http://host/uploads/a.jpg", "uploads/a.jpg"},
		{"https://host:8080/x/y.png", "x/y.png"},
		{"/uploads/a.jpg", "uploads/a.jpg"},
		{"uploads/a.jpg", "uploads/a.jpg"},
		{"http://hostonly", ""},
	}
	for _, tt := range tests {
		if got := relativePath(tt.in); got != tt.want {
			t.Fatalf("relativePath(%q) = %q, expected %q", tt.in, got, tt.want)
		}
	}
}

func TestCacheMemoizesMisses(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	cache := NewCache(NewResolver(renderCfg{uploads: t.TempDir(), baseURL: srv.URL}, testLogger()))
	for i := 0; i < 3; i++ {
		if _, ok := cache.Get(context.Background(), "gone.jpg"); ok {
			t.Fatal("expected miss")
		}
	}
	if hits.Load() != 1 {
		t.Fatalf("expected 1 probe for a cached miss, got %d", hits.Load())
	}
}

func TestWarmPopulatesCache(t *testing.T) {
	uploads := t.TempDir()
	if err := os.WriteFile(filepath.Join(uploads, "a.jpg"), []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}

	cache := NewCache(NewResolver(renderCfg{uploads: uploads}, testLogger()))
	cache.Warm(context.Background(), []string{"uploads/a.jpg", "uploads/a.jpg", "", "uploads/missing.jpg"})

	if _, ok := cache.Get(context.Background(), "uploads/a.jpg"); !ok {
		t.Fatal("expected warmed entry to hit")
	}
	if _, ok := cache.Get(context.Background(), "uploads/missing.jpg"); ok {
		t.Fatal("expected warmed miss to stay a miss")
	}
}
