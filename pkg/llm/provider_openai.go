package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/replyscope/pkg/domain"
)

// openaiProvider speaks the chat completions protocol, {base}/v1/chat/completions
type openaiProvider struct{}

func (openaiProvider) InlineImages() bool { return false }

func (openaiProvider) NewRequest(ctx context.Context, cfg domain.Config, req Request, stream bool) (*http.Request, error) {
	user := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser}
	if len(req.Images) > 0 {
		parts := []openai.ChatMessagePart{{Type: openai.ChatMessagePartTypeText, Text: req.User}}
		for _, img := range req.Images {
			parts = append(parts, openai.ChatMessagePart{
				Type:     openai.ChatMessagePartTypeImageURL,
				ImageURL: &openai.ChatMessageImageURL{URL: img.URL},
			})
		}
		user.MultiContent = parts
	} else {
		user.Content = req.User
	}

	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, user)

	body := openai.ChatCompletionRequest{
		Model:       cfg.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stream:      stream,
	}

	headers := map[string]string{"Authorization": "Bearer " + cfg.APIKey}
	return newJSONRequest(ctx, cfg.APIBaseURL+"/v1/chat/completions", body, headers)
}

func (openaiProvider) Text(body []byte) (string, error) {
	var resp openai.ChatCompletionResponse
	if err := unmarshalEnveloped(body, &resp); err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (openaiProvider) Delta(frame []byte) (string, error) {
	var chunk openai.ChatCompletionStreamResponse
	if err := unmarshalEnveloped(frame, &chunk); err != nil {
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

// unmarshalEnveloped decodes data into dst, tolerating proxies that wrap the
// payload as {"code": 0, "data": {...}}
func unmarshalEnveloped(data []byte, dst any) error {
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	payload := data
	if len(env.Data) > 0 && env.Data[0] == '{' {
		payload = env.Data
	}
	if err := json.Unmarshal(payload, dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newJSONRequest builds a POST request with a JSON body and extra headers
func newJSONRequest(ctx context.Context, url string, body any, headers map[string]string) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req, nil
}
