package classifier

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/classifier/mocks"
	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/llm"
)

func activeConfig(key string) *mocks.ConfigSourceMock {
	return &mocks.ConfigSourceMock{ActiveFunc: func() domain.Config {
		return domain.Config{RequestFormat: domain.FormatOpenAI, APIKey: key, Model: "gpt-4o"}
	}}
}

func TestClassifier_ByKeywords(t *testing.T) {
	c := New(catalog.Domains, &mocks.CompleterMock{}, activeConfig("k"), Params{})

	tbl := []struct {
		text  string
		want  string
		match bool
	}{
		{"AI大模型又有新进展", "ai", true},
		{"what is the best llm today?", "ai", true},
		{"ChatGPT wrote this", "ai", true},
		{"she said nothing", "", false},
		{"I fell in love again", "emotion", true},
		{"new iPhone is out", "tech", true},
		{"the stock market crashed", "finance", true},
		{"今晚吃火锅", "food", true},
		{"NBA finals tonight", "sports", true},
		{"startups galore", "", false},
		{"a crypto winter", "tech", true},
		{"games are fun", "", false},
		{"the game is on", "sports", true},
		{"playing with an ai agent", "ai", true},
		{"", "", false},
		{"just a regular day", "", false},
	}

	for _, tt := range tbl {
		t.Run(tt.text, func(t *testing.T) {
			id, ok := c.ByKeywords(tt.text)
			assert.Equal(t, tt.match, ok)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestClassifier_ByKeywordsOrder(t *testing.T) {
	c := New(catalog.Domains, &mocks.CompleterMock{}, activeConfig("k"), Params{})
	// both ai and finance keywords, ai is declared first
	id, ok := c.ByKeywords("invest in AI")
	require.True(t, ok)
	assert.Equal(t, "ai", id)
}

func TestClassifier_ClassifyKeywordMatchSkipsProvider(t *testing.T) {
	completer := &mocks.CompleterMock{CompleteFunc: func(context.Context, domain.Config, llm.Request) (string, error) {
		return "finance", nil
	}}
	c := New(catalog.Domains, completer, activeConfig("k"), Params{})

	assert.Equal(t, "ai", c.Classify(context.Background(), "AI大模型又有新进展", false))
	assert.Equal(t, "ai", c.Classify(context.Background(), "AI大模型又有新进展", false))
	assert.Empty(t, completer.CompleteCalls())
}

func TestClassifier_ClassifyAI(t *testing.T) {
	completer := &mocks.CompleterMock{CompleteFunc: func(_ context.Context, _ domain.Config, req llm.Request) (string, error) {
		assert.Contains(t, req.System, "只返回领域ID")
		assert.InDelta(t, 0.1, req.Temperature, 0.001)
		assert.Equal(t, 50, req.MaxTokens)
		return "  Politics.\n", nil
	}}
	c := New(catalog.Domains, completer, activeConfig("k"), Params{})

	text := "parliament votes on the new budget tomorrow"
	assert.Equal(t, "politics", c.Classify(context.Background(), text, false))
	assert.Equal(t, "politics", c.Classify(context.Background(), text, false), "second call is cached")
	assert.Len(t, completer.CompleteCalls(), 1)

	cached, ok := c.Cached(text)
	require.True(t, ok)
	assert.Equal(t, "politics", cached)

	c.ClearCache()
	_, ok = c.Cached(text)
	assert.False(t, ok)
	assert.Equal(t, "politics", c.Classify(context.Background(), text, false))
	assert.Len(t, completer.CompleteCalls(), 2)
}

func TestClassifier_ClassifyForce(t *testing.T) {
	completer := &mocks.CompleterMock{CompleteFunc: func(context.Context, domain.Config, llm.Request) (string, error) {
		return "finance", nil
	}}
	c := New(catalog.Domains, completer, activeConfig("k"), Params{})

	text := "AI stocks are up"
	assert.Equal(t, "ai", c.Classify(context.Background(), text, false))
	assert.Equal(t, "finance", c.Classify(context.Background(), text, true), "force skips keywords and cache")
	assert.Equal(t, "finance", c.Classify(context.Background(), text, false), "forced result replaces cache")
	assert.Len(t, completer.CompleteCalls(), 1)
}

func TestClassifier_ClassifyFallbacks(t *testing.T) {
	tbl := []struct {
		name   string
		answer string
		err    error
	}{
		{name: "unknown id", answer: "astrology"},
		{name: "empty", answer: ""},
		{name: "protocol error", err: &llm.ProtocolError{Status: 500, Body: "oops"}},
		{name: "transport error", err: &llm.TransportError{Err: errors.New("refused")}},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			completer := &mocks.CompleterMock{CompleteFunc: func(context.Context, domain.Config, llm.Request) (string, error) {
				return tt.answer, tt.err
			}}
			c := New(catalog.Domains, completer, activeConfig("k"), Params{})
			assert.Equal(t, domain.GeneralDomain, c.Classify(context.Background(), "nothing to see here", false))
			assert.Len(t, completer.CompleteCalls(), 1, "no retries")
		})
	}
}

func TestClassifier_ClassifyNoKey(t *testing.T) {
	completer := &mocks.CompleterMock{}
	c := New(catalog.Domains, completer, activeConfig(""), Params{})

	assert.Equal(t, domain.GeneralDomain, c.Classify(context.Background(), "nothing to see here", false))
	assert.Equal(t, domain.GeneralDomain, c.Classify(context.Background(), "", true))
	assert.Empty(t, completer.CompleteCalls())
}

func TestClassifier_ClassifyConcurrentCollapsed(t *testing.T) {
	release := make(chan struct{})
	completer := &mocks.CompleterMock{CompleteFunc: func(context.Context, domain.Config, llm.Request) (string, error) {
		<-release
		return "food", nil
	}}
	c := New(catalog.Domains, completer, activeConfig("k"), Params{})

	var wg sync.WaitGroup
	results := make([]string, 5)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = c.Classify(context.Background(), "dinner plans for tonight", false)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "food", r)
	}
	assert.LessOrEqual(t, len(completer.CompleteCalls()), 5)
	assert.Equal(t, "food", c.Classify(context.Background(), "dinner plans for tonight", false))
}

func TestContainsKeyword(t *testing.T) {
	tbl := []struct {
		text, kw string
		want     bool
	}{
		{"ai news", "ai", true},
		{"said", "ai", false},
		{"ai大模型", "ai", true},
		{"(ai)", "ai", true},
		{"openai", "ai", false},
		{"faith and ai", "ai", true},
		{"the ai agent is here", "ai agent", true},
		{"ai agents", "ai agent", false},
		{"人工智能来了", "人工智能", true},
		{"x", "", false},
		{"gpt-4o", "gpt", true},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.want, containsKeyword(tt.text, tt.kw), "%q in %q", tt.kw, tt.text)
	}
}

func TestNormalizeAnswer(t *testing.T) {
	assert.Equal(t, "ai", normalizeAnswer(" AI\n"))
	assert.Equal(t, "entertainment", normalizeAnswer("`entertainment`"))
	assert.Equal(t, "", normalizeAnswer("领域"))
}
