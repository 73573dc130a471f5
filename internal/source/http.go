package source

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"
)

// HTTPSource fetches frames from a static asset host.
type HTTPSource struct {
	client *http.Client
	urls   []string
}

func NewHTTPSource(base, ext string, n int, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &HTTPSource{
		client: &http.Client{Timeout: timeout},
		urls:   Paths(base, ext, n),
	}
}

func (s *HTTPSource) Len() int {
	return len(s.urls)
}

func (s *HTTPSource) Fetch(ctx context.Context, index int) (image.Image, error) {
	if err := checkIndex(index, len(s.urls)); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.urls[index], nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s: %s", s.urls[index], resp.Status)
	}

	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.urls[index], err)
	}
	return img, nil
}

func (s *HTTPSource) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
