// Package classifier assigns a topic domain to a post. A keyword cascade over the domain catalog
// runs first, the provider is asked only when no keyword matches or a re-classification is forced.
// Results are cached per post fingerprint for the lifetime of the classifier.
package classifier

import (
	"context"
	"strings"
	"sync"
	"unicode"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/singleflight"

	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/fingerprint"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/prompt"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer
//go:generate moq -out mocks/config_source.go -pkg mocks -skip-ensure -fmt goimports . ConfigSource

// Completer sends a buffered completion request
type Completer interface {
	Complete(ctx context.Context, cfg domain.Config, req llm.Request) (string, error)
}

// ConfigSource provides the active provider config
type ConfigSource interface {
	Active() domain.Config
}

// Params for the classification call
type Params struct {
	Temperature float32
	MaxTokens   int
}

// Classifier maps post text to a domain id
type Classifier struct {
	domains []domain.DomainCategory
	llm     Completer
	configs ConfigSource
	params  Params

	mu    sync.Mutex
	cache map[string]string // fingerprint -> domain id
	group singleflight.Group
}

// New makes a classifier over an ordered domain catalog, general must be the catch-all entry
func New(domains []domain.DomainCategory, completer Completer, configs ConfigSource, params Params) *Classifier {
	if params.Temperature == 0 {
		params.Temperature = 0.1
	}
	if params.MaxTokens == 0 {
		params.MaxTokens = 50
	}
	return &Classifier{
		domains: domains,
		llm:     completer,
		configs: configs,
		params:  params,
		cache:   make(map[string]string),
	}
}

// Classify returns the domain id for text. Cached results are reused unless force is set,
// force skips the keyword stage and asks the provider. Never fails, general is the fallback.
func (c *Classifier) Classify(ctx context.Context, text string, force bool) string {
	if strings.TrimSpace(text) == "" {
		return domain.GeneralDomain
	}
	fp := fingerprint.Of(text)

	if !force {
		c.mu.Lock()
		cached, ok := c.cache[fp]
		c.mu.Unlock()
		if ok {
			return cached
		}
		if id, ok := c.ByKeywords(text); ok {
			lgr.Printf("[DEBUG] domain %s by keywords for %s", id, fp)
			c.store(fp, id)
			return id
		}
	}

	key := fp
	if force {
		key = "force:" + fp
	}
	res, _, _ := c.group.Do(key, func() (any, error) {
		id := c.byAI(ctx, text)
		c.store(fp, id)
		return id, nil
	})
	return res.(string)
}

// ByKeywords runs the keyword stage only. The first catalog domain with a matching keyword wins.
func (c *Classifier) ByKeywords(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	lower := strings.ToLower(text)
	for _, d := range c.domains {
		if d.ID == domain.GeneralDomain {
			continue
		}
		for _, kw := range d.Keywords {
			if containsKeyword(lower, strings.ToLower(kw)) {
				return d.ID, true
			}
		}
	}
	return "", false
}

// ClearCache drops all cached classifications
func (c *Classifier) ClearCache() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
}

// Cached returns the cached domain for text, if any
func (c *Classifier) Cached(text string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.cache[fingerprint.Of(text)]
	return id, ok
}

func (c *Classifier) store(fp, id string) {
	c.mu.Lock()
	c.cache[fp] = id
	c.mu.Unlock()
}

// byAI asks the provider for a domain id. Any failure or unknown answer maps to general.
func (c *Classifier) byAI(ctx context.Context, text string) string {
	cfg := c.configs.Active()
	if cfg.APIKey == "" {
		return domain.GeneralDomain
	}

	p := prompt.Classification(text, c.domains)
	answer, err := c.llm.Complete(ctx, cfg, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
	})
	if err != nil {
		lgr.Printf("[WARN] ai classification failed: %v", err)
		return domain.GeneralDomain
	}

	id := normalizeAnswer(answer)
	for _, d := range c.domains {
		if d.ID == id {
			lgr.Printf("[DEBUG] domain %s by ai", id)
			return id
		}
	}
	lgr.Printf("[WARN] ai classification returned unknown domain %q", answer)
	return domain.GeneralDomain
}

// normalizeAnswer lower-cases the answer and keeps ascii letters only
func normalizeAnswer(s string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		if r >= 'a' && r <= 'z' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

// containsKeyword matches ascii keywords on token boundaries and everything else as a substring.
// Both arguments are expected in lower case.
func containsKeyword(text, kw string) bool {
	if kw == "" {
		return false
	}
	if !isASCIIWord(kw) {
		return strings.Contains(text, kw)
	}
	for start := 0; start <= len(text)-len(kw); {
		i := strings.Index(text[start:], kw)
		if i < 0 {
			return false
		}
		i += start
		end := i + len(kw)
		if (i == 0 || !isASCIIAlnum(text[i-1])) && (end == len(text) || !isASCIIAlnum(text[end])) {
			return true
		}
		start = i + 1
	}
	return false
}

// isASCIIWord reports whether kw consists of ascii characters only
func isASCIIWord(kw string) bool {
	for _, r := range kw {
		if r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

func isASCIIAlnum(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
