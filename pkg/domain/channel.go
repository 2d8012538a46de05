package domain

import "strings"

// RequestFormat is the wire protocol a provider speaks
type RequestFormat string

// supported request formats
const (
	FormatOpenAI    RequestFormat = "openai"
	FormatAnthropic RequestFormat = "anthropic"
	FormatGemini    RequestFormat = "gemini"
)

// Valid reports whether the format is one of the supported protocols
func (f RequestFormat) Valid() bool {
	switch f {
	case FormatOpenAI, FormatAnthropic, FormatGemini:
		return true
	}
	return false
}

// FormatForModel derives the request format from a model name.
// Anything that is not recognizably claude or gemini is treated as openai-compatible.
func FormatForModel(model string) RequestFormat {
	m := strings.ToLower(model)
	switch {
	case strings.Contains(m, "claude"):
		return FormatAnthropic
	case strings.Contains(m, "gemini"):
		return FormatGemini
	default:
		return FormatOpenAI
	}
}

// Channel is a saved provider configuration the user can switch between
type Channel struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	RequestFormat RequestFormat `json:"request_format"`
	APIBaseURL    string        `json:"api_base_url"`
	APIKey        string        `json:"api_key"`
	Model         string        `json:"model"`
	ModelList     []string      `json:"model_list,omitempty"`
}

// Config is the effective generation target derived from the active channel plus session fields
type Config struct {
	RequestFormat RequestFormat `json:"request_format"`
	APIBaseURL    string        `json:"api_base_url"`
	APIKey        string        `json:"api_key"`
	Model         string        `json:"model"`
	ModelList     []string      `json:"model_list,omitempty"`
	Persona       string        `json:"persona"`
	AutoSend      bool          `json:"auto_send"`
}

// DefaultConfig is used until the user saves or activates a channel
func DefaultConfig() Config {
	return Config{
		RequestFormat: FormatOpenAI,
		APIBaseURL:    "https://api.openai.com",
		Model:         "gpt-3.5-turbo",
		Persona:       "幽默风趣",
	}
}

// WithChannel returns the config with channel fields applied, keeping session fields
func (c Config) WithChannel(ch Channel) Config {
	res := c
	res.RequestFormat = ch.RequestFormat
	res.APIBaseURL = ch.APIBaseURL
	res.APIKey = ch.APIKey
	res.Model = ch.Model
	res.ModelList = ch.ModelList
	return res.Normalize()
}

// Normalize fills the request format from the model name when it is missing or unknown
// and strips the trailing slash from the base url.
func (c Config) Normalize() Config {
	if !c.RequestFormat.Valid() {
		c.RequestFormat = FormatForModel(c.Model)
	}
	c.APIBaseURL = strings.TrimRight(c.APIBaseURL, "/")
	return c
}
