package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"google.golang.org/genai"

	"github.com/umputun/replyscope/pkg/domain"
)

// geminiProvider speaks the generateContent protocol with the key passed in the url.
// Wire payloads reuse the genai SDK content types.
type geminiProvider struct{}

type geminiRequest struct {
	Contents         []*genai.Content        `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

func (geminiProvider) InlineImages() bool { return true }

// NewRequest sends system and user text as one part, images are prepended to it
func (geminiProvider) NewRequest(ctx context.Context, cfg domain.Config, req Request, stream bool) (*http.Request, error) {
	text := req.User
	if req.System != "" {
		text = req.System + "\n\n" + req.User
	}

	images := req.loadedImages()
	parts := make([]*genai.Part, 0, len(images)+1)
	for i := len(images) - 1; i >= 0; i-- {
		parts = append(parts, genai.NewPartFromBytes(images[i].Data, images[i].MIME))
	}
	parts = append(parts, genai.NewPartFromText(text))

	body := geminiRequest{Contents: []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}}
	if req.Temperature > 0 || req.MaxTokens > 0 {
		body.GenerationConfig = &geminiGenerationConfig{Temperature: req.Temperature, MaxOutputTokens: req.MaxTokens}
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", cfg.APIBaseURL, cfg.Model, url.QueryEscape(cfg.APIKey))
	if stream {
		endpoint = fmt.Sprintf("%s/v1beta/models/%s:streamGenerateContent?alt=sse&key=%s", cfg.APIBaseURL, cfg.Model, url.QueryEscape(cfg.APIKey))
	}
	return newJSONRequest(ctx, endpoint, body, nil)
}

func (geminiProvider) Text(body []byte) (string, error) {
	return geminiFirstText(body)
}

func (geminiProvider) Delta(frame []byte) (string, error) {
	return geminiFirstText(frame)
}

// geminiFirstText returns candidates[0].content.parts[0].text
func geminiFirstText(data []byte) (string, error) {
	var resp genai.GenerateContentResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil || resp.Candidates[0].Content == nil {
		return "", nil
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 || parts[0] == nil {
		return "", nil
	}
	return parts[0].Text, nil
}
