package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatForModel(t *testing.T) {
	tests := []struct {
		model string
		want  RequestFormat
	}{
		{"claude-sonnet-4-5-20250929", FormatAnthropic},
		{"Claude-3-Haiku", FormatAnthropic},
		{"gemini-3-pro-preview", FormatGemini},
		{"gpt-4o", FormatOpenAI},
		{"deepseek-chat", FormatOpenAI},
		{"", FormatOpenAI},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatForModel(tt.model))
		})
	}
}

func TestConfig_WithChannel(t *testing.T) {
	base := DefaultConfig()
	base.AutoSend = true

	cfg := base.WithChannel(Channel{ID: "c1", APIBaseURL: "https://proxy.example.com/", APIKey: "k", Model: "gemini-pro"})
	assert.Equal(t, FormatGemini, cfg.RequestFormat, "format derived from model when missing")
	assert.Equal(t, "https://proxy.example.com", cfg.APIBaseURL)
	assert.Equal(t, "k", cfg.APIKey)
	assert.True(t, cfg.AutoSend, "session fields kept")
	assert.Equal(t, base.Persona, cfg.Persona)

	cfg = base.WithChannel(Channel{RequestFormat: FormatOpenAI, Model: "claude-3-opus"})
	assert.Equal(t, FormatOpenAI, cfg.RequestFormat, "explicit format kept")
}

func TestHistoryEntry_Edited(t *testing.T) {
	assert.False(t, HistoryEntry{Original: "a", Final: "a"}.Edited())
	assert.False(t, HistoryEntry{Original: "a", Final: ""}.Edited())
	assert.True(t, HistoryEntry{Original: "a", Final: "b"}.Edited())
}
