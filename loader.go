package banana

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	// Decoders available to the resource cache.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader opens the bytes behind a normalized image key. Open is called from
// decode worker goroutines and must be safe for concurrent use.
type Loader interface {
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// DefaultLoader resolves http and https URLs over the network, file: URLs
// and plain paths from the filesystem, and data: URIs inline.
type DefaultLoader struct {
	// FS, if set, serves plain paths instead of the OS filesystem.
	FS fs.FS
	// Client is used for http and https. nil uses http.DefaultClient.
	Client *http.Client
}

// Open implements Loader.
func (l DefaultLoader) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(key, "data:"):
		data, err := decodeDataURI(key)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case strings.HasPrefix(key, "http://"), strings.HasPrefix(key, "https://"):
		return l.openHTTP(ctx, key)
	case strings.HasPrefix(key, "file:"):
		u, err := url.Parse(key)
		if err != nil {
			return nil, fmt.Errorf("banana: bad file URL %q: %w", key, err)
		}
		return l.openPath(u.Path)
	default:
		return l.openPath(key)
	}
}

func (l DefaultLoader) openHTTP(ctx context.Context, key string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, err
	}
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("banana: GET %s: %s", key, resp.Status)
	}
	return resp.Body, nil
}

func (l DefaultLoader) openPath(p string) (io.ReadCloser, error) {
	if l.FS != nil {
		return l.FS.Open(strings.TrimPrefix(p, "/"))
	}
	return os.Open(p)
}

// decodeDataURI decodes "data:[<mediatype>][;base64],<data>".
func decodeDataURI(uri string) ([]byte, error) {
	header, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("banana: data URI has no payload")
	}
	if strings.HasSuffix(header, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("banana: data URI: %w", err)
		}
		return data, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("banana: data URI: %w", err)
	}
	return []byte(s), nil
}

// MemoryLoader serves image bytes from memory, keyed by normalized key.
// It is useful for tests and for assets embedded in the binary.
type MemoryLoader map[string][]byte

// Open implements Loader.
func (m MemoryLoader) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("banana: %q: %w", key, fs.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Loaders tries each loader in order and moves on only when one reports
// fs.ErrNotExist. Any other error is returned as is.
type Loaders []Loader

// Open implements Loader.
func (ls Loaders) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	err := fmt.Errorf("banana: %q: %w", key, fs.ErrNotExist)
	for _, l := range ls {
		if l == nil {
			continue
		}
		var rc io.ReadCloser
		rc, err = l.Open(ctx, key)
		if err == nil || !errors.Is(err, fs.ErrNotExist) {
			return rc, err
		}
	}
	return nil, err
}
