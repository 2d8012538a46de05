package llm

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"
)

// maxImageSize caps a single downloaded image
const maxImageSize = 10 * 1024 * 1024

// ImageFetcher downloads post images for providers that need them inline
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (Image, error)
}

// HTTPImageFetcher fetches images with plain GET requests
type HTTPImageFetcher struct {
	Client *http.Client
}

// Fetch downloads url and sniffs its mime type, image/jpeg is assumed when sniffing is inconclusive
func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) (Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return Image{}, fmt.Errorf("create image request: %w", err)
	}
	addImageHeaders(req)
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Image{}, fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return Image{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return Image{}, fmt.Errorf("empty image %s", url)
	}

	mime := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(mime, "image/") {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		mime = "image/jpeg"
	}
	if i := strings.Index(mime, ";"); i > 0 {
		mime = strings.TrimSpace(mime[:i])
	}
	return Image{URL: url, MIME: mime, Data: data}, nil
}

// fetchImages loads up to limit images concurrently, keeping the input order.
// Images that fail to download are logged and dropped.
func fetchImages(ctx context.Context, fetcher ImageFetcher, urls []string, limit int) []Image {
	if len(urls) > limit {
		urls = urls[:limit]
	}
	loaded := make([]Image, len(urls))
	var g errgroup.Group
	for i, u := range urls {
		g.Go(func() error {
			img, err := fetcher.Fetch(ctx, u)
			if err != nil {
				lgr.Printf("[WARN] skip image %s: %v", u, err)
				return nil
			}
			loaded[i] = img
			return nil
		})
	}
	_ = g.Wait()

	res := make([]Image, 0, len(loaded))
	for _, img := range loaded {
		if len(img.Data) > 0 {
			res = append(res, img)
		}
	}
	return res
}
