package parser

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// MaxDocumentSize is the largest document the fetcher will download.
const MaxDocumentSize = 100 << 20 // 100 MiB

// Fetcher downloads documents over HTTP with conservative timeouts.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with a 120s total request budget and a 30s
// connect timeout.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: 120 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 30 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout:   30 * time.Second,
				ResponseHeaderTimeout: 60 * time.Second,
				MaxIdleConns:          10,
			},
		},
	}
}

// Fetch downloads the document at url and returns its bytes and the
// Content-Type header. Downloads larger than MaxDocumentSize are rejected.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "hackrx-document-fetcher/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetching document: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetching document: unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > MaxDocumentSize {
		return nil, "", fmt.Errorf("document too large: %d bytes", resp.ContentLength)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("reading document body: %w", err)
	}
	if len(data) > MaxDocumentSize {
		return nil, "", fmt.Errorf("document too large: exceeds %d bytes", MaxDocumentSize)
	}

	return data, resp.Header.Get("Content-Type"), nil
}
