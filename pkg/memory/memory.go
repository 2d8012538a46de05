// Package memory keeps the per-domain learning memory: a bounded history of what the user
// finally sent for each suggested reply, and an AI-made summary of the user's style.
//
// Recording a send may start a detached summarization once enough new entries were collected
// since the last summary. Summarization failures are logged and never reach the caller.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/prompt"
)

//go:generate moq -out mocks/completer.go -pkg mocks -skip-ensure -fmt goimports . Completer
//go:generate moq -out mocks/config_source.go -pkg mocks -skip-ensure -fmt goimports . ConfigSource

// storage keys
const (
	historyKey       = "replyHistoryByDomain"
	summaryKey       = "historySummaryByDomain"
	legacyHistoryKey = "replyHistory"
)

const (
	defaultMaxHistory     = 50
	defaultThreshold      = 5
	defaultSummaryTimeout = 60 * time.Second
	excerptLen            = 100
	minSummaryHistory     = 3
	minSummaryEdited      = 2
	maxSummarySamples     = 10
)

// ErrNotEnoughSamples is returned by Summarize when the history is too short or has too few edits
var ErrNotEnoughSamples = errors.New("not enough edited replies to summarize")

// Store is the durable key/value storage
type Store interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Completer sends a buffered completion request
type Completer interface {
	Complete(ctx context.Context, cfg domain.Config, req llm.Request) (string, error)
}

// ConfigSource provides the active provider config
type ConfigSource interface {
	Active() domain.Config
}

// Config holds dependencies and limits for Manager
type Config struct {
	Store            Store
	Completer        Completer
	Configs          ConfigSource
	MaxHistory       int           // entries kept per domain, 50 if zero
	SummaryThreshold int           // new entries since the last summary that trigger a new one, 5 if zero
	SummaryTimeout   time.Duration // limit for a detached summarization, 60s if zero
	Temperature      float32
	MaxTokens        int
}

// Manager is the learning memory. All state changes happen under one mutex,
// provider calls are made outside of it.
type Manager struct {
	store     Store
	completer Completer
	configs   ConfigSource

	maxHistory     int
	threshold      int
	summaryTimeout time.Duration
	temperature    float32
	maxTokens      int
	now            func() time.Time

	mu        sync.Mutex
	history   map[string][]domain.HistoryEntry
	summaries map[string]domain.StyleSummary
	running   map[string]bool // domains with a detached summarization in flight
	wg        sync.WaitGroup
}

// New makes a Manager with defaults applied. Call Load to restore persisted state.
func New(cfg Config) *Manager {
	res := &Manager{
		store:          cfg.Store,
		completer:      cfg.Completer,
		configs:        cfg.Configs,
		maxHistory:     cfg.MaxHistory,
		threshold:      cfg.SummaryThreshold,
		summaryTimeout: cfg.SummaryTimeout,
		temperature:    cfg.Temperature,
		maxTokens:      cfg.MaxTokens,
		now:            time.Now,
		history:        map[string][]domain.HistoryEntry{},
		summaries:      map[string]domain.StyleSummary{},
		running:        map[string]bool{},
	}
	if res.maxHistory <= 0 {
		res.maxHistory = defaultMaxHistory
	}
	if res.threshold <= 0 {
		res.threshold = defaultThreshold
	}
	if res.summaryTimeout <= 0 {
		res.summaryTimeout = defaultSummaryTimeout
	}
	if res.temperature == 0 {
		res.temperature = 0.5
	}
	if res.maxTokens == 0 {
		res.maxTokens = 200
	}
	return res
}

// legacyEntry is the flat history format kept before history was split by domain
type legacyEntry struct {
	Original     string `json:"original"`
	Final        string `json:"final"`
	TweetContext string `json:"tweetContext"`
	Timestamp    int64  `json:"timestamp"` // unix millis
}

// Load restores history and summaries. A legacy flat history is moved into the general
// domain once and then cleared.
func (m *Manager) Load(ctx context.Context) error {
	history := map[string][]domain.HistoryEntry{}
	if _, err := m.store.Get(ctx, historyKey, &history); err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	summaries := map[string]domain.StyleSummary{}
	if _, err := m.store.Get(ctx, summaryKey, &summaries); err != nil {
		return fmt.Errorf("load summaries: %w", err)
	}

	var legacy []legacyEntry
	if _, err := m.store.Get(ctx, legacyHistoryKey, &legacy); err != nil {
		lgr.Printf("[WARN] can't read legacy history, skipped: %v", err)
		legacy = nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.history, m.summaries = history, summaries

	if len(legacy) == 0 {
		return nil
	}
	migrated := make([]domain.HistoryEntry, 0, len(legacy)+len(history[domain.GeneralDomain]))
	for _, e := range legacy {
		migrated = append(migrated, domain.HistoryEntry{
			Original:    e.Original,
			Final:       e.Final,
			PostExcerpt: excerpt(e.TweetContext),
			Timestamp:   time.UnixMilli(e.Timestamp),
		})
	}
	migrated = append(migrated, history[domain.GeneralDomain]...)
	if len(migrated) > m.maxHistory {
		migrated = migrated[:m.maxHistory]
	}
	m.history[domain.GeneralDomain] = migrated

	if err := m.store.Set(ctx, historyKey, m.history); err != nil {
		return fmt.Errorf("save migrated history: %w", err)
	}
	if err := m.store.Set(ctx, legacyHistoryKey, []legacyEntry{}); err != nil {
		return fmt.Errorf("clear legacy history: %w", err)
	}
	lgr.Printf("[INFO] migrated %d legacy history entries to %s", len(legacy), domain.GeneralDomain)
	return nil
}

// Record prepends a sent reply to the domain history and persists it. When enough entries were
// added since the last summary, a detached summarization is started. It doesn't use ctx and
// outlives the caller, Wait blocks until it is done.
func (m *Manager) Record(ctx context.Context, domainID, original, final, postExcerpt string) error {
	if domainID == "" {
		domainID = domain.GeneralDomain
	}
	entry := domain.HistoryEntry{Original: original, Final: final, PostExcerpt: excerpt(postExcerpt), Timestamp: m.now()}

	m.mu.Lock()
	history := append([]domain.HistoryEntry{entry}, m.history[domainID]...)
	if len(history) > m.maxHistory {
		history = history[:m.maxHistory]
	}
	m.history[domainID] = history

	err := m.store.Set(ctx, historyKey, m.history)

	sinceSummary := len(history) - m.summaries[domainID].HistoryCount
	trigger := sinceSummary >= m.threshold && !m.running[domainID]
	if trigger {
		m.running[domainID] = true
		m.wg.Add(1)
	}
	m.mu.Unlock()

	if trigger {
		lgr.Printf("[DEBUG] %d new entries in %s since last summary, summarizing", sinceSummary, domainID)
		go m.summarizeDetached(domainID)
	}

	if err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	return nil
}

func (m *Manager) summarizeDetached(domainID string) {
	defer m.wg.Done()
	defer func() {
		m.mu.Lock()
		delete(m.running, domainID)
		m.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), m.summaryTimeout)
	defer cancel()

	if _, err := m.Summarize(ctx, domainID); err != nil {
		if errors.Is(err, ErrNotEnoughSamples) {
			lgr.Printf("[DEBUG] skip summary for %s: %v", domainID, err)
			return
		}
		lgr.Printf("[WARN] failed to summarize %s history: %v", domainID, err)
	}
}

// Summarize asks the provider for a style description of the domain history. It needs at least
// 3 entries with 2 of them edited. On success the summary is replaced and persisted,
// on failure the previous summary is kept.
func (m *Manager) Summarize(ctx context.Context, domainID string) (string, error) {
	samples, total := m.editedFinals(domainID, maxSummarySamples)
	if total < minSummaryHistory || len(samples) < minSummaryEdited {
		return "", ErrNotEnoughSamples
	}

	cfg := m.configs.Active()
	if cfg.APIKey == "" {
		return "", llm.ErrNoAPIKey
	}

	p := prompt.StyleSummary(catalog.Domain(domainID).Name, samples)
	text, err := m.completer.Complete(ctx, cfg, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: m.temperature,
		MaxTokens:   m.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("summarize %s: %w", domainID, err)
	}
	summary := strings.TrimSpace(text)
	if summary == "" {
		return "", &llm.ContentError{Reason: "empty summary"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.summaries[domainID] = domain.StyleSummary{
		Summary:      summary,
		HistoryCount: len(m.history[domainID]),
		LastUpdated:  m.now(),
	}
	if err := m.store.Set(ctx, summaryKey, m.summaries); err != nil {
		return summary, fmt.Errorf("save summary: %w", err)
	}
	lgr.Printf("[INFO] updated style summary for %s", domainID)
	return summary, nil
}

// LearnedPatterns returns the prompt fragment describing the user's style in a domain.
// The summary is preferred, otherwise up to 3 recent edited replies are used once the
// history has at least 3 entries. Empty when nothing was learned yet.
func (m *Manager) LearnedPatterns(domainID string) string {
	m.mu.Lock()
	summary := m.summaries[domainID].Summary
	m.mu.Unlock()

	if summary != "" {
		return prompt.Learned(catalog.Domain(domainID).Name, summary)
	}
	samples, total := m.editedFinals(domainID, maxSummarySamples)
	if total < minSummaryHistory {
		return ""
	}
	return prompt.LearnedSamples(samples)
}

// Status reports learning progress for a domain
func (m *Manager) Status(domainID string) domain.SummaryStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, count := m.summaries[domainID], len(m.history[domainID])
	if s.Summary == "" {
		return domain.SummaryStatus{HistoryCount: count}
	}
	return domain.SummaryStatus{HasSummary: true, Summary: s.Summary, LastUpdated: s.LastUpdated, HistoryCount: count}
}

// Pending returns domains with enough new entries since their last summary and no
// summarization in flight, sorted by id
func (m *Manager) Pending() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := []string{}
	for domainID, history := range m.history {
		if m.running[domainID] {
			continue
		}
		if len(history)-m.summaries[domainID].HistoryCount >= m.threshold {
			res = append(res, domainID)
		}
	}
	sort.Strings(res)
	return res
}

// History returns a copy of the domain history, newest first
func (m *Manager) History(domainID string) []domain.HistoryEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	res := make([]domain.HistoryEntry, len(m.history[domainID]))
	copy(res, m.history[domainID])
	return res
}

// Flush persists history and summaries
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.Set(ctx, historyKey, m.history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	if err := m.store.Set(ctx, summaryKey, m.summaries); err != nil {
		return fmt.Errorf("save summaries: %w", err)
	}
	return nil
}

// Wait blocks until detached summarizations are done
func (m *Manager) Wait() {
	m.wg.Wait()
}

// editedFinals returns up to limit most recent edited finals and the total history length
func (m *Manager) editedFinals(domainID string, limit int) (samples []string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	history := m.history[domainID]
	for _, h := range history {
		if !h.Edited() {
			continue
		}
		samples = append(samples, h.Final)
		if len(samples) == limit {
			break
		}
	}
	return samples, len(history)
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLen {
		return s
	}
	return string([]rune(s)[:excerptLen])
}
