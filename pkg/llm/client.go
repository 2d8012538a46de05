// Package llm talks to chat completion providers. It adapts provider-neutral requests into the
// openai, anthropic and gemini wire protocols, retries vision requests rejected by text-only models,
// decodes streaming responses and normalizes raw completions into reply candidates.
package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/replyscope/pkg/domain"
)

// DefaultMaxImages is how many post images are sent with a vision request
const DefaultMaxImages = 2

// Options configures the Client
type Options struct {
	HTTPClient *http.Client  // optional, built from Timeout when nil
	Timeout    time.Duration // per request, including the streamed body
	Images     ImageFetcher  // optional, HTTPImageFetcher when nil
	MaxImages  int           // optional, DefaultMaxImages when zero
}

// Client sends completion requests to the provider selected by the active config
type Client struct {
	http      *http.Client
	images    ImageFetcher
	maxImages int
}

// NewClient makes a Client with defaults applied
func NewClient(opts Options) *Client {
	res := &Client{http: opts.HTTPClient, images: opts.Images, maxImages: opts.MaxImages}
	if res.http == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 60 * time.Second
		}
		res.http = &http.Client{Timeout: timeout}
	}
	if res.images == nil {
		res.images = &HTTPImageFetcher{Client: res.http}
	}
	if res.maxImages <= 0 {
		res.maxImages = DefaultMaxImages
	}
	return res
}

// Complete sends a buffered request and returns the completion text.
// A request with images goes out as a vision request first. If the provider rejects it in a way
// that looks like missing vision support, it is retried exactly once without images.
func (c *Client) Complete(ctx context.Context, cfg domain.Config, req Request) (string, error) {
	if cfg.APIKey == "" {
		return "", ErrNoAPIKey
	}
	provider, err := ProviderFor(cfg.RequestFormat)
	if err != nil {
		return "", err
	}

	req = c.prepareImages(ctx, provider, req)
	text, err := c.send(ctx, provider, cfg, req)
	if err == nil {
		return text, nil
	}

	var visionErr *VisionUnsupportedError
	if len(req.Images) == 0 || !errors.As(err, &visionErr) {
		return "", err
	}
	lgr.Printf("[WARN] model %s rejected images (%v), retrying text only", cfg.Model, visionErr.ProtocolError)
	// without images a second rejection comes back as a plain ProtocolError
	return c.send(ctx, provider, cfg, req.withoutImages())
}

// Stream sends a streaming request and returns the normalized replies once the stream ends.
// onProgress receives the accumulated raw text after each fragment. Streaming is text only.
func (c *Client) Stream(ctx context.Context, cfg domain.Config, req Request, onProgress func(string)) ([]domain.Reply, error) {
	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	provider, err := ProviderFor(cfg.RequestFormat)
	if err != nil {
		return nil, err
	}

	httpReq, err := provider.NewRequest(ctx, cfg, req.withoutImages(), true)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, newTransportError(err, cfg.APIKey)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return nil, newProtocolError(resp.StatusCode, body)
	}

	text, err := DecodeStream(resp.Body, provider.Delta, onProgress)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, &ContentError{Reason: "empty stream"}
	}
	lgr.Printf("[DEBUG] streamed %d bytes from %s", len(text), cfg.Model)
	return Normalize(text), nil
}

// prepareImages trims images to the configured limit and downloads them for providers
// that need inline data. Images that failed to download are dropped.
func (c *Client) prepareImages(ctx context.Context, provider Provider, req Request) Request {
	if len(req.Images) == 0 {
		return req
	}
	if len(req.Images) > c.maxImages {
		req.Images = req.Images[:c.maxImages]
	}
	if !provider.InlineImages() {
		return req
	}
	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		urls = append(urls, img.URL)
	}
	req.Images = fetchImages(ctx, c.images, urls, c.maxImages)
	return req
}

// send performs one buffered round trip
func (c *Client) send(ctx context.Context, provider Provider, cfg domain.Config, req Request) (string, error) {
	httpReq, err := provider.NewRequest(ctx, cfg, req, false)
	if err != nil {
		return "", err
	}
	started := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", newTransportError(err, cfg.APIKey)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		perr := newProtocolError(resp.StatusCode, body)
		if len(req.Images) > 0 {
			return "", asVisionUnsupported(perr, body)
		}
		return "", perr
	}

	text, err := provider.Text(body)
	if err != nil {
		return "", &ContentError{Reason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		return "", &ContentError{Reason: "empty completion"}
	}
	lgr.Printf("[DEBUG] %s completion from %s in %v, %d images", cfg.RequestFormat, cfg.Model, time.Since(started), len(req.Images))
	return text, nil
}
