package ticket

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resty.dev/v3"
)

// Gotenberg converts rendered HTML into PDF bytes through a Gotenberg
// instance.
type Gotenberg struct {
	http *resty.Client
}

// NewGotenberg constructs a converter client for the given base URL.
func NewGotenberg(baseURL string, timeout time.Duration) *Gotenberg {
	return &Gotenberg{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout),
	}
}

// Close releases the underlying transport resources.
func (g *Gotenberg) Close() error {
	g.http.Close()
	return nil
}

// Ping checks whether the conversion service is reachable.
func (g *Gotenberg) Ping(ctx context.Context) error {
	res, err := g.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return err
	}
	if !res.IsSuccess() {
		return fmt.Errorf("gotenberg returned status %d", res.StatusCode())
	}
	return nil
}

// RenderHTML converts raw HTML into a PDF document.
func (g *Gotenberg) RenderHTML(ctx context.Context, html string) ([]byte, error) {
	res, err := g.http.R().
		SetContext(ctx).
		SetFileReader("files", "index.html", strings.NewReader(html)).
		Post("/forms/chromium/convert/html")
	if err != nil {
		return nil, err
	}
	if !res.IsSuccess() {
		return nil, fmt.Errorf("render failed with status %d", res.StatusCode())
	}
	return res.Bytes(), nil
}
