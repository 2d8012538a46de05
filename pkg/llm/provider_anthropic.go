package llm

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/umputun/replyscope/pkg/domain"
)

const (
	anthropicVersion   = "2023-06-01"
	anthropicMaxTokens = 2048
)

// anthropicProvider speaks the messages protocol, {base}/v1/messages
type anthropicProvider struct{}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Messages    []anthropicMessage `json:"messages"`
	Temperature float32            `json:"temperature,omitempty"`
	Stream      bool               `json:"stream,omitempty"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string or []anthropicBlock
}

type anthropicBlock struct {
	Type   string                `json:"type"`
	Text   string                `json:"text,omitempty"`
	Source *anthropicImageSource `json:"source,omitempty"`
}

type anthropicImageSource struct {
	Type      string `json:"type"`
	MediaType string `json:"media_type"`
	Data      string `json:"data"`
}

type anthropicResponse struct {
	Content []anthropicBlock `json:"content"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type anthropicEvent struct {
	Type  string `json:"type"`
	Delta *struct {
		Type string `json:"type"`
		Text string `json:"text,omitempty"`
	} `json:"delta,omitempty"`
}

func (anthropicProvider) InlineImages() bool { return true }

// NewRequest prepends the system prompt to the user text, some proxies reject the system field
func (anthropicProvider) NewRequest(ctx context.Context, cfg domain.Config, req Request, stream bool) (*http.Request, error) {
	text := req.User
	if req.System != "" {
		text = req.System + "\n\n---\n\n" + req.User
	}

	var content any = text
	if images := req.loadedImages(); len(images) > 0 {
		blocks := make([]anthropicBlock, 0, len(images)+1)
		for _, img := range images {
			blocks = append(blocks, anthropicBlock{
				Type:   "image",
				Source: &anthropicImageSource{Type: "base64", MediaType: img.MIME, Data: base64.StdEncoding.EncodeToString(img.Data)},
			})
		}
		blocks = append(blocks, anthropicBlock{Type: "text", Text: text})
		content = blocks
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = anthropicMaxTokens
	}
	body := anthropicRequest{
		Model:       cfg.Model,
		MaxTokens:   maxTokens,
		Messages:    []anthropicMessage{{Role: "user", Content: content}},
		Temperature: req.Temperature,
		Stream:      stream,
	}

	headers := map[string]string{"x-api-key": cfg.APIKey, "anthropic-version": anthropicVersion}
	if stream {
		headers["Accept"] = "text/event-stream"
	}
	return newJSONRequest(ctx, cfg.APIBaseURL+"/v1/messages", body, headers)
}

func (anthropicProvider) Text(body []byte) (string, error) {
	var resp anthropicResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if resp.Error != nil {
		return "", fmt.Errorf("api error: %s", resp.Error.Message)
	}
	if len(resp.Content) == 0 {
		return "", nil
	}
	return resp.Content[0].Text, nil
}

func (anthropicProvider) Delta(frame []byte) (string, error) {
	var evt anthropicEvent
	if err := json.Unmarshal(frame, &evt); err != nil {
		return "", fmt.Errorf("decode event: %w", err)
	}
	if evt.Delta == nil {
		return "", nil
	}
	return evt.Delta.Text, nil
}
