package llm

import (
	"context"
	"fmt"
	"net/http"

	"github.com/umputun/replyscope/pkg/domain"
)

// Request is a provider-neutral completion request
type Request struct {
	System      string
	User        string
	Images      []Image
	Temperature float32
	MaxTokens   int
}

// Image is a post image, URL is always set, Data and MIME only after it was loaded
type Image struct {
	URL  string
	MIME string
	Data []byte
}

// Provider translates requests into one wire protocol and extracts text from its responses
type Provider interface {
	// NewRequest builds the http request, stream selects the incremental variant
	NewRequest(ctx context.Context, cfg domain.Config, req Request, stream bool) (*http.Request, error)
	// Text extracts the completion text from a buffered response body
	Text(body []byte) (string, error)
	// Delta extracts the incremental text from a single stream frame
	Delta(frame []byte) (string, error)
	// InlineImages reports whether images must be sent as base64 data instead of urls
	InlineImages() bool
}

// ProviderFor returns the provider implementation for a request format
func ProviderFor(format domain.RequestFormat) (Provider, error) {
	switch format {
	case domain.FormatOpenAI:
		return openaiProvider{}, nil
	case domain.FormatAnthropic:
		return anthropicProvider{}, nil
	case domain.FormatGemini:
		return geminiProvider{}, nil
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unsupported request format %q", format)}
	}
}

// withoutImages returns a copy of the request with images stripped
func (r Request) withoutImages() Request {
	r.Images = nil
	return r
}

// loadedImages returns images that carry data
func (r Request) loadedImages() []Image {
	res := make([]Image, 0, len(r.Images))
	for _, img := range r.Images {
		if len(img.Data) > 0 {
			res = append(res, img)
		}
	}
	return res
}
