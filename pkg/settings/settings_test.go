package settings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.Open(context.Background(), store.Config{DSN: ":memory:", MaxOpenConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	return st
}

type failingStore struct{}

func (failingStore) Get(context.Context, string, any) (bool, error) { return false, nil }
func (failingStore) Set(context.Context, string, any) error         { return errors.New("disk full") }

func TestManager_Defaults(t *testing.T) {
	m := New(openStore(t), domain.Config{})
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, domain.DefaultConfig(), m.Active())
	assert.Empty(t, m.Channels())
	assert.Empty(t, m.ActiveChannelID())
	assert.Equal(t, domain.DefaultGenSettings(), m.GenSettings())
	assert.Len(t, m.Styles(), len(catalog.Styles))
	assert.Len(t, m.Strategies(), len(catalog.Strategies))
}

func TestManager_DefaultsFromConfig(t *testing.T) {
	m := New(openStore(t), domain.Config{APIBaseURL: "https://api.anthropic.com/", APIKey: "k", Model: "claude-3-5-sonnet"})
	cfg := m.Active()
	assert.Equal(t, domain.FormatAnthropic, cfg.RequestFormat, "format derived from model")
	assert.Equal(t, "https://api.anthropic.com", cfg.APIBaseURL)
	assert.Equal(t, "幽默风趣", cfg.Persona)
}

func TestManager_Channels(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})
	require.NoError(t, m.SetSession(ctx, "冷静理性", true))

	gem, err := m.SaveChannel(ctx, domain.Channel{Name: "gemini", APIBaseURL: "https://generativelanguage.googleapis.com/",
		APIKey: "g-key", Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	assert.NotEmpty(t, gem.ID)
	assert.Equal(t, domain.FormatGemini, gem.RequestFormat)
	assert.Equal(t, "https://generativelanguage.googleapis.com", gem.APIBaseURL)

	oai, err := m.SaveChannel(ctx, domain.Channel{Name: "openai", RequestFormat: domain.FormatOpenAI,
		APIBaseURL: "https://api.openai.com", APIKey: "o-key", Model: "gpt-4o", ModelList: []string{"gpt-4o", "gpt-4o-mini"}})
	require.NoError(t, err)
	assert.NotEqual(t, gem.ID, oai.ID)

	cfg, err := m.Activate(ctx, gem.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatGemini, cfg.RequestFormat)
	assert.Equal(t, "g-key", cfg.APIKey)
	assert.Equal(t, "冷静理性", cfg.Persona, "session fields kept")
	assert.True(t, cfg.AutoSend)
	assert.Equal(t, cfg, m.Active())
	assert.Equal(t, gem.ID, m.ActiveChannelID())

	// update in place keeps order
	gem.Name = "gemini main"
	_, err = m.SaveChannel(ctx, gem)
	require.NoError(t, err)
	chs := m.Channels()
	require.Len(t, chs, 2)
	assert.Equal(t, "gemini main", chs[0].Name)

	// restored from the store
	m2 := New(st, domain.Config{})
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, chs, m2.Channels())
	assert.Equal(t, gem.ID, m2.ActiveChannelID())
	assert.Equal(t, cfg, m2.Active())

	// deleting the active channel clears the active id, config stays
	require.NoError(t, m.DeleteChannel(ctx, gem.ID))
	assert.Empty(t, m.ActiveChannelID())
	assert.Equal(t, "g-key", m.Active().APIKey)
	assert.Len(t, m.Channels(), 1)

	require.NoError(t, m.DeleteChannel(ctx, oai.ID))
	assert.Empty(t, m.Channels())

	err = m.DeleteChannel(ctx, "nope")
	require.ErrorIs(t, err, ErrChannelNotFound)
	_, err = m.Activate(ctx, "nope")
	require.ErrorIs(t, err, ErrChannelNotFound)
}

func TestManager_ActivateEmptyFormatUsesModel(t *testing.T) {
	ctx := context.Background()
	m := New(openStore(t), domain.Config{})
	ch, err := m.SaveChannel(ctx, domain.Channel{ID: "fixed", Name: "proxy", RequestFormat: "bogus",
		APIBaseURL: "https://proxy.example.com", APIKey: "k", Model: "claude-3-haiku"})
	require.NoError(t, err)
	assert.Equal(t, "fixed", ch.ID)
	assert.Equal(t, domain.FormatAnthropic, ch.RequestFormat)

	cfg, err := m.Activate(ctx, "fixed")
	require.NoError(t, err)
	assert.Equal(t, domain.FormatAnthropic, cfg.RequestFormat)
}

func TestManager_SaveActiveChannelUpdatesConfig(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})
	require.NoError(t, m.SetSession(ctx, "冷静理性", true))

	ch, err := m.SaveChannel(ctx, domain.Channel{Name: "main", APIBaseURL: "https://api.openai.com", APIKey: "old-key", Model: "gpt-4o"})
	require.NoError(t, err)
	_, err = m.Activate(ctx, ch.ID)
	require.NoError(t, err)

	ch.APIKey, ch.Model, ch.RequestFormat = "new-key", "claude-3-5-sonnet", ""
	ch.APIBaseURL = "https://api.anthropic.com/"
	_, err = m.SaveChannel(ctx, ch)
	require.NoError(t, err)

	cfg := m.Active()
	assert.Equal(t, "new-key", cfg.APIKey)
	assert.Equal(t, "claude-3-5-sonnet", cfg.Model)
	assert.Equal(t, domain.FormatAnthropic, cfg.RequestFormat)
	assert.Equal(t, "https://api.anthropic.com", cfg.APIBaseURL)
	assert.Equal(t, "冷静理性", cfg.Persona, "session fields kept")
	assert.True(t, cfg.AutoSend)

	m2 := New(st, domain.Config{})
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, cfg, m2.Active(), "config persisted with the channel")

	// saving an inactive channel leaves the config alone
	_, err = m.SaveChannel(ctx, domain.Channel{Name: "other", APIBaseURL: "https://api.openai.com", APIKey: "other-key", Model: "gpt-4o"})
	require.NoError(t, err)
	assert.Equal(t, cfg, m.Active())
}

func TestManager_SelectModel(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})

	_, err := m.SelectModel(ctx, "gpt-4o")
	require.ErrorIs(t, err, ErrUnknownModel, "default config has no model list")

	ch, err := m.SaveChannel(ctx, domain.Channel{Name: "main", APIBaseURL: "https://api.openai.com", APIKey: "k",
		Model: "gpt-4o", ModelList: []string{"gpt-4o", "gpt-4o-mini"}})
	require.NoError(t, err)
	_, err = m.Activate(ctx, ch.ID)
	require.NoError(t, err)

	cfg, err := m.SelectModel(ctx, " gpt-4o-mini ")
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", cfg.Model)
	assert.Equal(t, domain.FormatOpenAI, cfg.RequestFormat)
	assert.Equal(t, cfg, m.Active())
	assert.Equal(t, "gpt-4o-mini", m.Channels()[0].Model, "active channel follows")

	_, err = m.SelectModel(ctx, "claude-3-haiku")
	require.ErrorIs(t, err, ErrUnknownModel)
	_, err = m.SelectModel(ctx, "")
	require.ErrorIs(t, err, ErrUnknownModel)
	assert.Equal(t, "gpt-4o-mini", m.Active().Model)

	m2 := New(st, domain.Config{})
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, "gpt-4o-mini", m2.Active().Model)
	assert.Equal(t, "gpt-4o-mini", m2.Channels()[0].Model)
}

func TestManager_DomainStyles(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})

	assert.Equal(t, catalog.DefaultDomainStyles["ai"], m.DomainStyle("ai"))

	got, err := m.SaveDomainStyle(ctx, "ai", domain.DomainStyle{Style: "humor"})
	require.NoError(t, err)
	want := catalog.DefaultDomainStyles["ai"]
	want.Style = "humor"
	assert.Equal(t, want, got)
	assert.Equal(t, want, m.DomainStyle("ai"))

	got, err = m.SaveDomainStyle(ctx, "ai", domain.DomainStyle{Length: "short"})
	require.NoError(t, err)
	want.Length = "short"
	assert.Equal(t, want, got, "partial save merges over the previous override")

	m2 := New(st, domain.Config{})
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, want, m2.DomainStyle("ai"))
	assert.Equal(t, map[string]domain.DomainStyle{"ai": want}, m2.Overrides())

	require.NoError(t, m2.ResetDomainStyle(ctx, "ai"))
	assert.Equal(t, catalog.DefaultDomainStyles["ai"], m2.DomainStyle("ai"))
	assert.Empty(t, m2.Overrides())
}

func TestManager_CustomOptions(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})
	fixed := time.UnixMilli(1700000000000)
	m.now = func() time.Time { return fixed }

	s1, err := m.AddCustomStyle(ctx, "  阴阳怪气 ")
	require.NoError(t, err)
	assert.Equal(t, domain.Option{ID: "custom_style_1700000000000", Name: "阴阳怪气", Custom: true}, s1)

	st1, err := m.AddCustomStrategy(ctx, "提问反问")
	require.NoError(t, err)
	assert.Equal(t, domain.Option{ID: "custom_strategy_1700000000001", Name: "提问反问", Desc: "提问反问", Custom: true}, st1,
		"ids stay unique within one clock tick")

	_, err = m.AddCustomStyle(ctx, " ")
	require.ErrorIs(t, err, ErrEmptyName)

	styles := m.Styles()
	require.Len(t, styles, len(catalog.Styles)+1)
	assert.Equal(t, s1, styles[len(styles)-1])
	assert.Equal(t, []domain.Option{st1}, m.CustomStrategies())

	// reload keeps ids increasing past the stored ones
	m2 := New(st, domain.Config{})
	m2.now = func() time.Time { return fixed }
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, []domain.Option{s1}, m2.CustomStyles())
	s2, err := m2.AddCustomStyle(ctx, "反讽")
	require.NoError(t, err)
	assert.Equal(t, "custom_style_1700000000002", s2.ID)

	require.NoError(t, m2.RemoveCustomStyle(ctx, s1.ID))
	assert.Equal(t, []domain.Option{s2}, m2.CustomStyles())
	require.ErrorIs(t, m2.RemoveCustomStyle(ctx, s1.ID), ErrOptionNotFound)
	require.NoError(t, m2.RemoveCustomStrategy(ctx, st1.ID))
	assert.Empty(t, m2.CustomStrategies())
	require.ErrorIs(t, m2.RemoveCustomStrategy(ctx, st1.ID), ErrOptionNotFound)
}

func TestManager_GenSettings(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{})

	got, err := m.SaveGenSettings(ctx, domain.GenSettings{Count: 5, Lang: "en"})
	require.NoError(t, err)
	assert.Equal(t, domain.GenSettings{Count: 5, Length: "medium", Style: "engage", Strategy: "default", Lang: "en"}, got)

	m2 := New(st, domain.Config{})
	require.NoError(t, m2.Load(ctx))
	assert.Equal(t, got, m2.GenSettings())
}

func TestManager_StoreErrors(t *testing.T) {
	ctx := context.Background()
	m := New(failingStore{}, domain.Config{})

	_, err := m.SaveChannel(ctx, domain.Channel{Name: "x", Model: "gpt-4o"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, m.Channels(), 1, "in-memory state updated even when persisting fails")

	_, err = m.SaveGenSettings(ctx, domain.GenSettings{Count: 2})
	require.Error(t, err)
	require.Error(t, m.Flush(ctx))
}

func TestManager_Flush(t *testing.T) {
	st := openStore(t)
	ctx := context.Background()
	m := New(st, domain.Config{APIKey: "k"})
	require.NoError(t, m.Flush(ctx))

	var cfg domain.Config
	ok, err := st.Get(ctx, configKey, &cfg)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "k", cfg.APIKey)
}
