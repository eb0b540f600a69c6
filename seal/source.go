// Package seal loads the decorative stamp images composited onto loan reports.
package seal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"loan-report/domain"
	"loan-report/repository"
)

// maxImageBytes caps a single seal. Larger images are rejected, not truncated.
const maxImageBytes = 8 << 20

func tooLarge(name string) error {
	return fmt.Errorf("%w: %s: too large (limit %d bytes)", domain.ErrImageLoad, name, maxImageBytes)
}

// Source returns the raw bytes of a named seal image.
type Source interface {
	Open(ctx context.Context, name string) ([]byte, error)
}

// FileSource reads seals from a directory on disk.
type FileSource struct {
	Dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{Dir: dir}
}

func (s *FileSource) Open(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := filepath.Join(s.Dir, filepath.Clean("/"+name))
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}
	if info.Size() > maxImageBytes {
		return nil, tooLarge(name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}
	return data, nil
}

// HTTPSource fetches seals relative to a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &HTTPSource{BaseURL: baseURL, Client: client}
}

func (s *HTTPSource) Open(ctx context.Context, name string) ([]byte, error) {
	target, err := url.JoinPath(s.BaseURL, strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s: unexpected status %d", domain.ErrImageLoad, name, resp.StatusCode)
	}

	// Leer un byte de más para detectar imágenes truncadas
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrImageLoad, name, err)
	}
	if len(data) > maxImageBytes {
		return nil, tooLarge(name)
	}
	return data, nil
}

// CachedSource keeps successfully loaded seals in a cache.
type CachedSource struct {
	next  Source
	cache repository.CacheRepository
	ttl   time.Duration
}

func NewCachedSource(next Source, cache repository.CacheRepository, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, cache: cache, ttl: ttl}
}

func (s *CachedSource) Open(ctx context.Context, name string) ([]byte, error) {
	key := "seal:" + name
	if data, ok := s.cache.Get(ctx, key); ok {
		return data, nil
	}

	data, err := s.next.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	// a failed cache write only costs a reload next time
	_ = s.cache.Set(ctx, key, data, s.ttl)
	return data, nil
}
