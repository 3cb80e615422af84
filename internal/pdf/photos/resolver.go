// Package photos resolves stored photo references to image bytes, corrects
// their orientation from EXIF metadata, and memoizes the result for the
// duration of one report render.
package photos

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"evmaint_backend/platform/config"
	"evmaint_backend/platform/logger"
)

// httpTimeout bounds the legacy HTTP fallback so a dead photo host cannot
// hang a render.
const httpTimeout = 5 * time.Second

// maxPhotoBytes caps one downloaded photo.
const maxPhotoBytes = 20 << 20

// Resolver locates photo files for report rendering. Resolution order:
// absolute filesystem path, the uploads tree, the public assets tree, and
// finally an HTTP download when a base URL is configured.
type Resolver struct {
	uploadsDir string
	publicDir  string
	baseURL    string
	headers    map[string]string
	client     *http.Client
	log        *logger.Logger
}

func NewResolver(cfg config.RenderConfig, log *logger.Logger) *Resolver {
	return &Resolver{
		uploadsDir: cfg.GetUploadsDir(),
		publicDir:  cfg.GetPublicDir(),
		baseURL:    strings.TrimRight(cfg.GetPhotosBaseURL(), "/"),
		headers:    cfg.GetPhotosHeaders(),
		client:     &http.Client{Timeout: httpTimeout},
		log:        log.WithComponent("photos"),
	}
}

// Resolve returns the raw bytes for a photo reference, or false when no
// source yields the file. It never returns an error: a missing photo renders
// as a placeholder, not a failed report.
func (r *Resolver) Resolve(ctx context.Context, url string) ([]byte, bool) {
	if url == "" {
		return nil, false
	}

	if filepath.IsAbs(url) {
		if data, err := os.ReadFile(url); err == nil {
			r.log.Debug("photo resolved", "source", "absolute", "url", url)
			return data, true
		}
	}

	rel := strings.TrimPrefix(strings.TrimPrefix(relativePath(url), "uploads/"), "/")
	if r.uploadsDir != "" && rel != "" {
		path := filepath.Join(r.uploadsDir, filepath.FromSlash(rel))
		if data, err := os.ReadFile(path); err == nil {
			r.log.Debug("photo resolved", "source", "uploads", "path", path)
			return data, true
		}
	}

	if dir := r.locatePublicDir(); dir != "" && rel != "" {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if data, err := os.ReadFile(path); err == nil {
			r.log.Debug("photo resolved", "source", "public", "path", path)
			return data, true
		}
	}

	if data, ok := r.download(ctx, url); ok {
		return data, true
	}

	r.log.Debug("photo unresolved", "url", url)
	return nil, false
}

// relativePath strips a scheme+host from a URL, leaving the path component.
func relativePath(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		rest := url[i+3:]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			return rest[j+1:]
		}
		return ""
	}
	return strings.TrimPrefix(url, "/")
}

// locatePublicDir returns the configured public directory, or walks up from
// the working directory looking for a folder literally named "public".
func (r *Resolver) locatePublicDir() string {
	if r.publicDir != "" {
		return r.publicDir
	}

	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		candidate := filepath.Join(dir, "public")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

func (r *Resolver) download(ctx context.Context, url string) ([]byte, bool) {
	target := url
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		if r.baseURL == "" {
			return nil, false
		}
		target = fmt.Sprintf("%s/%s", r.baseURL, strings.TrimPrefix(url, "/"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, false
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		r.log.Debug("photo download failed", "url", target, "error", err)
		return nil, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		r.log.Debug("photo download rejected", "url", target, "status", resp.StatusCode)
		return nil, false
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	r.log.Debug("photo resolved", "source", "http", "url", target)
	return data, true
}
