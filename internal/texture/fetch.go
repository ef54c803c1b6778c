package texture

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// maxPhotoBytes bounds a single photo download or file read.
const maxPhotoBytes = 32 << 20

// Fetcher returns the raw bytes behind a source.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) ([]byte, error)
}

// HTTPFetcher fetches remote sources over HTTP and reads local ones from disk.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a bounded request timeout.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{Client: &http.Client{Timeout: 30 * time.Second}}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, src Source) ([]byte, error) {
	if src.Kind == Local {
		data, err := os.ReadFile(src.Ref)
		if err != nil {
			return nil, fmt.Errorf("texture: read %s: %w", src.Ref, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.Ref, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: request %s: %w", src.Ref, err)
	}
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: fetch %s: %w", src.Ref, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture: fetch %s: status %d", src.Ref, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, fmt.Errorf("texture: fetch %s: %w", src.Ref, err)
	}
	return data, nil
}
