package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=HTTP server timeout including streaming responses"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:replyscope.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=1,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=1,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=Provider access and sampling settings"`

	Memory MemoryConfig `yaml:"memory" json:"memory" jsonschema:"description=Learning memory settings"`

	Cache struct {
		MaxEntries int `yaml:"max_entries" json:"max_entries" jsonschema:"default=50,minimum=1,description=Maximum number of posts with cached replies"`
	} `yaml:"cache" json:"cache" jsonschema:"description=Reply cache settings"`
}

// ChannelConfig is the provider used until a channel is saved and activated through the API
type ChannelConfig struct {
	RequestFormat string   `yaml:"request_format" json:"request_format" jsonschema:"enum=openai,enum=anthropic,enum=gemini,description=Wire protocol derived from the model name if empty"`
	APIBaseURL    string   `yaml:"api_base_url" json:"api_base_url" jsonschema:"default=https://api.openai.com,description=Provider base URL"`
	APIKey        string   `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model         string   `yaml:"model" json:"model" jsonschema:"default=gpt-3.5-turbo,description=Model name"`
	ModelList     []string `yaml:"model_list" json:"model_list" jsonschema:"description=Models offered for quick switching"`
	Persona       string   `yaml:"persona" json:"persona" jsonschema:"default=幽默风趣,description=Persona used by quick replies"`
}

// TemperatureConfig holds the sampling temperature per kind of provider call
type TemperatureConfig struct {
	Generation     float64 `yaml:"generation" json:"generation" jsonschema:"default=0.8,minimum=0,maximum=2"`
	Classification float64 `yaml:"classification" json:"classification" jsonschema:"default=0.1,minimum=0,maximum=2"`
	Summary        float64 `yaml:"summary" json:"summary" jsonschema:"default=0.5,minimum=0,maximum=2"`
	Analysis       float64 `yaml:"analysis" json:"analysis" jsonschema:"default=0.5,minimum=0,maximum=2"`
	Translation    float64 `yaml:"translation" json:"translation" jsonschema:"default=0.3,minimum=0,maximum=2"`
	QuickReply     float64 `yaml:"quick_reply" json:"quick_reply" jsonschema:"default=0.7,minimum=0,maximum=2"`
}

// MaxTokensConfig holds the response token limit per kind of provider call
type MaxTokensConfig struct {
	Generation     int `yaml:"generation" json:"generation" jsonschema:"default=2048,minimum=1"`
	Classification int `yaml:"classification" json:"classification" jsonschema:"default=50,minimum=1"`
	Summary        int `yaml:"summary" json:"summary" jsonschema:"default=200,minimum=1"`
	Analysis       int `yaml:"analysis" json:"analysis" jsonschema:"default=200,minimum=1"`
	Translation    int `yaml:"translation" json:"translation" jsonschema:"default=500,minimum=1"`
	QuickReply     int `yaml:"quick_reply" json:"quick_reply" jsonschema:"default=1024,minimum=1"`
}

// LLMConfig holds provider access and sampling settings
type LLMConfig struct {
	Timeout        time.Duration     `yaml:"timeout" json:"timeout" jsonschema:"default=60s,description=Provider request timeout"`
	BaseLanguage   string            `yaml:"base_language" json:"base_language" jsonschema:"default=zh,description=Language translations are made in"`
	MaxImages      int               `yaml:"max_images" json:"max_images" jsonschema:"default=2,minimum=0,maximum=4,description=Maximum number of post images sent to the provider"`
	DefaultChannel ChannelConfig     `yaml:"default_channel" json:"default_channel" jsonschema:"description=Provider used before a channel is activated"`
	Temperature    TemperatureConfig `yaml:"temperature" json:"temperature" jsonschema:"description=Temperature per call kind"`
	MaxTokens      MaxTokensConfig   `yaml:"max_tokens" json:"max_tokens" jsonschema:"description=Maximum tokens per call kind"`
}

// MemoryConfig holds learning memory settings
type MemoryConfig struct {
	MaxHistory       int           `yaml:"max_history" json:"max_history" jsonschema:"default=50,minimum=1,description=Sent replies kept per domain"`
	SummaryThreshold int           `yaml:"summary_threshold" json:"summary_threshold" jsonschema:"default=5,minimum=1,description=New sent replies that trigger a style summary"`
	SummaryTimeout   time.Duration `yaml:"summary_timeout" json:"summary_timeout" jsonschema:"default=60s,description=Time limit for a background summarization"`
	SweepInterval    time.Duration `yaml:"sweep_interval" json:"sweep_interval" jsonschema:"default=30m,description=How often domains with pending summaries are summarized"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.setDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns the configuration used when no config file is given
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

func (c *Config) setDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 60 * time.Second
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:replyscope.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 1
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 1
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for LLM
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 60 * time.Second
	}
	if c.LLM.BaseLanguage == "" {
		c.LLM.BaseLanguage = "zh"
	}
	if c.LLM.MaxImages == 0 {
		c.LLM.MaxImages = 2
	}
	def := domain.DefaultConfig()
	if c.LLM.DefaultChannel.APIBaseURL == "" {
		c.LLM.DefaultChannel.APIBaseURL = def.APIBaseURL
	}
	if c.LLM.DefaultChannel.Model == "" {
		c.LLM.DefaultChannel.Model = def.Model
	}
	if c.LLM.DefaultChannel.Persona == "" {
		c.LLM.DefaultChannel.Persona = def.Persona
	}
	c.LLM.Temperature.setDefaults()
	c.LLM.MaxTokens.setDefaults()

	// set defaults for memory and cache
	if c.Memory.MaxHistory == 0 {
		c.Memory.MaxHistory = 50
	}
	if c.Memory.SummaryThreshold == 0 {
		c.Memory.SummaryThreshold = 5
	}
	if c.Memory.SummaryTimeout == 0 {
		c.Memory.SummaryTimeout = 60 * time.Second
	}
	if c.Memory.SweepInterval == 0 {
		c.Memory.SweepInterval = 30 * time.Minute
	}
	if c.Cache.MaxEntries == 0 {
		c.Cache.MaxEntries = 50
	}
}

func (t *TemperatureConfig) setDefaults() {
	if t.Generation == 0 {
		t.Generation = 0.8
	}
	if t.Classification == 0 {
		t.Classification = 0.1
	}
	if t.Summary == 0 {
		t.Summary = 0.5
	}
	if t.Analysis == 0 {
		t.Analysis = 0.5
	}
	if t.Translation == 0 {
		t.Translation = 0.3
	}
	if t.QuickReply == 0 {
		t.QuickReply = 0.7
	}
}

func (m *MaxTokensConfig) setDefaults() {
	if m.Generation == 0 {
		m.Generation = 2048
	}
	if m.Classification == 0 {
		m.Classification = 50
	}
	if m.Summary == 0 {
		m.Summary = 200
	}
	if m.Analysis == 0 {
		m.Analysis = 200
	}
	if m.Translation == 0 {
		m.Translation = 500
	}
	if m.QuickReply == 0 {
		m.QuickReply = 1024
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	// validate LLM config
	if f := cfg.LLM.DefaultChannel.RequestFormat; f != "" && !domain.RequestFormat(f).Valid() {
		return fmt.Errorf("llm.default_channel.request_format %q is not supported", f)
	}
	if _, ok := catalog.Languages[cfg.LLM.BaseLanguage]; !ok || cfg.LLM.BaseLanguage == "auto" {
		return fmt.Errorf("llm.base_language %q is not supported", cfg.LLM.BaseLanguage)
	}
	if cfg.LLM.MaxImages < 0 || cfg.LLM.MaxImages > 4 {
		return fmt.Errorf("llm.max_images must be between 0 and 4")
	}
	t := cfg.LLM.Temperature
	for name, v := range map[string]float64{"generation": t.Generation, "classification": t.Classification,
		"summary": t.Summary, "analysis": t.Analysis, "translation": t.Translation, "quick_reply": t.QuickReply} {
		if v < 0 || v > 2 {
			return fmt.Errorf("llm.temperature.%s must be between 0 and 2", name)
		}
	}
	if cfg.LLM.Timeout < time.Second {
		return fmt.Errorf("llm timeout must be at least 1 second")
	}

	// validate memory and cache config
	if cfg.Memory.MaxHistory < 1 {
		return fmt.Errorf("memory.max_history must be at least 1")
	}
	if cfg.Memory.SummaryThreshold < 1 {
		return fmt.Errorf("memory.summary_threshold must be at least 1")
	}
	if cfg.Cache.MaxEntries < 1 {
		return fmt.Errorf("cache.max_entries must be at least 1")
	}

	return nil
}

// DefaultChannel returns the provider config used before any channel is activated
func (c *Config) DefaultChannel() domain.Config {
	ch := c.LLM.DefaultChannel
	return domain.Config{
		RequestFormat: domain.RequestFormat(ch.RequestFormat),
		APIBaseURL:    ch.APIBaseURL,
		APIKey:        ch.APIKey,
		Model:         ch.Model,
		ModelList:     ch.ModelList,
		Persona:       ch.Persona,
	}.Normalize()
}

// ConnMaxLifetime returns the database connection lifetime as a duration
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.Database.ConnMaxLifetime) * time.Second
}

// GetServerConfig returns server listen address and timeout
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
