package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/memory"
	"github.com/umputun/replyscope/pkg/settings"
	"github.com/umputun/replyscope/server/mocks"
)

func channelSettings() *mocks.SettingsMock {
	channels := []domain.Channel{
		{ID: "c1", Name: "openai", RequestFormat: domain.FormatOpenAI, APIBaseURL: "https://api.openai.com",
			APIKey: "sk-1234567890abcd", Model: "gpt-4o"},
		{ID: "c2", Name: "claude", RequestFormat: domain.FormatAnthropic, APIBaseURL: "https://api.anthropic.com",
			APIKey: "short", Model: "claude-3-haiku"},
	}
	return &mocks.SettingsMock{
		ChannelsFunc:        func() []domain.Channel { return channels },
		ActiveChannelIDFunc: func() string { return "c2" },
		SaveChannelFunc: func(_ context.Context, ch domain.Channel) (domain.Channel, error) {
			if ch.ID == "" {
				ch.ID = "new-id"
			}
			return ch, nil
		},
	}
}

func TestServer_listChannelsHandler(t *testing.T) {
	srv := testServer(t, &mocks.EngineMock{}, channelSettings())

	w := serve(t, srv, http.MethodGet, "/api/v1/channels", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Channels []channelView `json:"channels"`
		ActiveID string        `json:"active_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "c2", resp.ActiveID)
	require.Len(t, resp.Channels, 2)
	assert.Equal(t, "sk-****abcd", resp.Channels[0].APIKey)
	assert.False(t, resp.Channels[0].Active)
	assert.Equal(t, "****", resp.Channels[1].APIKey)
	assert.True(t, resp.Channels[1].Active)
}

func TestServer_saveChannelHandler(t *testing.T) {
	t.Run("new channel", func(t *testing.T) {
		st := channelSettings()
		srv := testServer(t, &mocks.EngineMock{}, st)
		w := serve(t, srv, http.MethodPost, "/api/v1/channels",
			`{"name":" gemini ","api_base_url":"https://generativelanguage.googleapis.com","api_key":"AIza-new-key-0001","model":"gemini-1.5-pro"}`)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var saved domain.Channel
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
		assert.Equal(t, "new-id", saved.ID)
		assert.Equal(t, "AIz****0001", saved.APIKey)

		ch := st.SaveChannelCalls()[0].Ch
		assert.Equal(t, "gemini", ch.Name)
		assert.Equal(t, "AIza-new-key-0001", ch.APIKey, "full key is stored")
	})

	t.Run("masked key keeps stored key", func(t *testing.T) {
		st := channelSettings()
		srv := testServer(t, &mocks.EngineMock{}, st)
		w := serve(t, srv, http.MethodPost, "/api/v1/channels",
			`{"id":"c1","name":"openai 2","api_base_url":"https://api.openai.com","api_key":"sk-****abcd","model":"gpt-4o-mini"}`)
		require.Equal(t, http.StatusOK, w.Code)
		ch := st.SaveChannelCalls()[0].Ch
		assert.Equal(t, "sk-1234567890abcd", ch.APIKey)
		assert.Equal(t, "gpt-4o-mini", ch.Model)
	})

	t.Run("empty key for unknown id", func(t *testing.T) {
		st := channelSettings()
		srv := testServer(t, &mocks.EngineMock{}, st)
		w := serve(t, srv, http.MethodPost, "/api/v1/channels",
			`{"id":"zz","api_base_url":"https://api.openai.com","api_key":"sk-****abcd","model":"gpt-4o"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, st.SaveChannelCalls()[0].Ch.APIKey)
	})

	tbl := []struct {
		name, body, err string
	}{
		{"no model", `{"api_base_url":"https://api.openai.com"}`, "model is required"},
		{"bad url", `{"api_base_url":"api.openai.com","model":"gpt-4o"}`, "invalid api base url"},
		{"bad format", `{"api_base_url":"https://x.com","model":"m","request_format":"cohere"}`, "unknown request format"},
		{"bad json", `[`, "invalid request body"},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			st := channelSettings()
			w := serve(t, testServer(t, &mocks.EngineMock{}, st), http.MethodPost, "/api/v1/channels", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.err)
			assert.Empty(t, st.SaveChannelCalls())
		})
	}
}

func TestServer_deleteChannelHandler(t *testing.T) {
	st := &mocks.SettingsMock{DeleteChannelFunc: func(_ context.Context, id string) error {
		if id != "c1" {
			return fmt.Errorf("delete channel %s: %w", id, settings.ErrChannelNotFound)
		}
		return nil
	}}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodDelete, "/api/v1/channels/c1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(t, srv, http.MethodDelete, "/api/v1/channels/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "channel not found")
}

func TestServer_activateChannelHandler(t *testing.T) {
	st := &mocks.SettingsMock{ActivateFunc: func(_ context.Context, id string) (domain.Config, error) {
		if id != "c1" {
			return domain.Config{}, settings.ErrChannelNotFound
		}
		return domain.Config{RequestFormat: domain.FormatAnthropic, APIKey: "sk-ant-0123456789", Model: "claude-3-haiku",
			Persona: "幽默风趣"}, nil
	}}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodPost, "/api/v1/channels/c1/activate", "")
	require.Equal(t, http.StatusOK, w.Code)
	var cfg domain.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, "sk-****6789", cfg.APIKey)
	assert.Equal(t, "claude-3-haiku", cfg.Model)
	assert.Equal(t, "幽默风趣", cfg.Persona)

	w = serve(t, srv, http.MethodPost, "/api/v1/channels/c9/activate", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_configHandlers(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.APIKey = "sk-abcdefghijkl"
	st := &mocks.SettingsMock{
		ActiveFunc: func() domain.Config { return cfg },
		SetSessionFunc: func(_ context.Context, persona string, autoSend bool) error {
			if persona != "" {
				cfg.Persona = persona
			}
			cfg.AutoSend = autoSend
			return nil
		},
	}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodGet, "/api/v1/config", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "sk-****ijkl", got.APIKey)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)

	w = serve(t, srv, http.MethodPut, "/api/v1/config/session", `{"persona":"<b>冷静理性</b>","auto_send":true}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "冷静理性", got.Persona)
	assert.True(t, got.AutoSend)
	assert.Equal(t, "冷静理性", st.SetSessionCalls()[0].Persona)
}

func TestServer_selectModelHandler(t *testing.T) {
	st := &mocks.SettingsMock{
		SelectModelFunc: func(_ context.Context, model string) (domain.Config, error) {
			if model != "gpt-4o-mini" {
				return domain.Config{}, fmt.Errorf("select model %q: %w", model, settings.ErrUnknownModel)
			}
			return domain.Config{RequestFormat: domain.FormatOpenAI, APIKey: "sk-abcdefghijkl", Model: model,
				ModelList: []string{"gpt-4o", "gpt-4o-mini"}}, nil
		},
	}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodPut, "/api/v1/config/model", `{"model":"gpt-4o-mini"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.Config
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, "sk-****ijkl", got.APIKey)

	w = serve(t, srv, http.MethodPut, "/api/v1/config/model", `{"model":"claude-3-haiku"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not in the model list")

	w = serve(t, srv, http.MethodPut, "/api/v1/config/model", `{bad`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, st.SelectModelCalls(), 2)
}

func TestServer_listDomainsHandler(t *testing.T) {
	st := &mocks.SettingsMock{
		OverridesFunc: func() map[string]domain.DomainStyle {
			return map[string]domain.DomainStyle{"sports": {Style: "humor", Strategy: "default", Length: "short"}}
		},
		DomainStyleFunc: func(id string) domain.DomainStyle {
			if id == "sports" {
				return domain.DomainStyle{Style: "humor", Strategy: "default", Length: "short"}
			}
			return catalog.DefaultDomainStyles[id]
		},
	}
	eng := &mocks.EngineMock{LearningStatusFunc: func(id string) domain.SummaryStatus {
		if id == "sports" {
			return domain.SummaryStatus{HasSummary: true, Summary: "短句", HistoryCount: 6}
		}
		return domain.SummaryStatus{}
	}}
	srv := testServer(t, eng, st)

	w := serve(t, srv, http.MethodGet, "/api/v1/domains", "")
	require.Equal(t, http.StatusOK, w.Code)
	var res []domainView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res, len(catalog.Domains))

	for _, d := range res {
		if d.ID != "sports" {
			assert.False(t, d.Overridden, d.ID)
			assert.Equal(t, d.Default, d.Style, d.ID)
			continue
		}
		assert.True(t, d.Overridden)
		assert.Equal(t, "humor", d.Style.Style)
		assert.Equal(t, catalog.DefaultDomainStyles["sports"], d.Default)
		assert.Equal(t, 6, d.Learning.HistoryCount)
		assert.Equal(t, "短句", d.Learning.Summary)
	}
	assert.Equal(t, domain.GeneralDomain, res[len(res)-1].ID)
}

func TestServer_domainStyleHandlers(t *testing.T) {
	st := &mocks.SettingsMock{
		DomainStyleFunc: func(id string) domain.DomainStyle { return catalog.DefaultDomainStyles[id] },
		SaveDomainStyleFunc: func(_ context.Context, id string, s domain.DomainStyle) (domain.DomainStyle, error) {
			res := catalog.DefaultDomainStyles[id]
			if s.Style != "" {
				res.Style = s.Style
			}
			return res, nil
		},
		ResetDomainStyleFunc: func(context.Context, string) error { return nil },
		StylesFunc: func() []domain.Option {
			return append(append([]domain.Option{}, catalog.Styles...), domain.Option{ID: "custom_style_1", Name: "阴阳怪气", Custom: true})
		},
		StrategiesFunc: func() []domain.Option { return catalog.Strategies },
	}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodGet, "/api/v1/domains/ai/style", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.DomainStyle
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, catalog.DefaultDomainStyles["ai"], got)

	w = serve(t, srv, http.MethodGet, "/api/v1/domains/cooking/style", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "unknown domain")

	w = serve(t, srv, http.MethodPut, "/api/v1/domains/ai/style", `{"style":"custom_style_1"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "custom_style_1", got.Style)
	assert.Equal(t, catalog.DefaultDomainStyles["ai"].Strategy, got.Strategy)

	for _, body := range []string{`{"style":"nope"}`, `{"strategy":"nope"}`, `{"length":"huge"}`, `{`} {
		w = serve(t, srv, http.MethodPut, "/api/v1/domains/ai/style", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Len(t, st.SaveDomainStyleCalls(), 1)

	w = serve(t, srv, http.MethodDelete, "/api/v1/domains/ai/style", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ai", st.ResetDomainStyleCalls()[0].DomainID)
}

func TestServer_summaryHandlers(t *testing.T) {
	eng := &mocks.EngineMock{
		LearningStatusFunc: func(string) domain.SummaryStatus {
			return domain.SummaryStatus{HasSummary: true, Summary: "爱用反问", HistoryCount: 8}
		},
		SummarizeFunc: func(_ context.Context, id string) (string, error) {
			if id == "food" {
				return "", fmt.Errorf("summarize: %w", memory.ErrNotEnoughSamples)
			}
			return "爱用反问", nil
		},
	}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodGet, "/api/v1/domains/tech/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var status domain.SummaryStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "爱用反问", status.Summary)

	w = serve(t, srv, http.MethodPost, "/api/v1/domains/tech/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tech", eng.SummarizeCalls()[0].DomainID)

	w = serve(t, srv, http.MethodPost, "/api/v1/domains/food/summary", "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(t, srv, http.MethodPost, "/api/v1/domains/xyz/summary", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, eng.SummarizeCalls(), 2)
}

func TestServer_optionHandlers(t *testing.T) {
	st := &mocks.SettingsMock{
		StylesFunc:     func() []domain.Option { return catalog.Styles },
		StrategiesFunc: func() []domain.Option { return catalog.Strategies },
		AddCustomStyleFunc: func(_ context.Context, name string) (domain.Option, error) {
			if name == "" {
				return domain.Option{}, settings.ErrEmptyName
			}
			return domain.Option{ID: "custom_style_1", Name: name, Custom: true}, nil
		},
		AddCustomStrategyFunc: func(_ context.Context, name string) (domain.Option, error) {
			return domain.Option{ID: "custom_strategy_2", Name: name, Desc: name, Custom: true}, nil
		},
		RemoveCustomStyleFunc: func(_ context.Context, id string) error {
			if id != "custom_style_1" {
				return settings.ErrOptionNotFound
			}
			return nil
		},
		RemoveCustomStrategyFunc: func(context.Context, string) error { return nil },
	}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodGet, "/api/v1/styles", "")
	require.Equal(t, http.StatusOK, w.Code)
	var opts []domain.Option
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, catalog.Styles, opts)

	w = serve(t, srv, http.MethodGet, "/api/v1/strategies", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opts))
	assert.Equal(t, catalog.Strategies, opts)

	w = serve(t, srv, http.MethodPost, "/api/v1/styles", `{"name":"<i>阴阳怪气</i>"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "阴阳怪气", st.AddCustomStyleCalls()[0].Name)

	w = serve(t, srv, http.MethodPost, "/api/v1/styles", `{"name":"  "}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(t, srv, http.MethodPost, "/api/v1/strategies", `{"name":"先夸后批"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var opt domain.Option
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &opt))
	assert.Equal(t, "先夸后批", opt.Desc)

	w = serve(t, srv, http.MethodDelete, "/api/v1/styles/custom_style_1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(t, srv, http.MethodDelete, "/api/v1/styles/engage", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = serve(t, srv, http.MethodDelete, "/api/v1/strategies/custom_strategy_2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestServer_genSettingsHandlers(t *testing.T) {
	gs := domain.DefaultGenSettings()
	st := &mocks.SettingsMock{
		GenSettingsFunc: func() domain.GenSettings { return gs },
		SaveGenSettingsFunc: func(_ context.Context, s domain.GenSettings) (domain.GenSettings, error) {
			if s.Count > 0 {
				gs.Count = s.Count
			}
			if s.Lang != "" {
				gs.Lang = s.Lang
			}
			return gs, nil
		},
		StylesFunc:     func() []domain.Option { return catalog.Styles },
		StrategiesFunc: func() []domain.Option { return catalog.Strategies },
	}
	srv := testServer(t, &mocks.EngineMock{}, st)

	w := serve(t, srv, http.MethodGet, "/api/v1/settings/generation", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":3,"length":"medium","style":"engage","strategy":"default","lang":"auto"}`, w.Body.String())

	w = serve(t, srv, http.MethodPut, "/api/v1/settings/generation", `{"count":5,"lang":"ja"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var got domain.GenSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, 5, got.Count)
	assert.Equal(t, "ja", got.Lang)
	assert.Equal(t, "medium", got.Length)

	for _, body := range []string{`{"count":11}`, `{"count":-1}`, `{"lang":"xx"}`, `{"length":"tiny"}`, `{"style":"nope"}`} {
		w = serve(t, srv, http.MethodPut, "/api/v1/settings/generation", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}
	assert.Len(t, st.SaveGenSettingsCalls(), 1)
}

func TestMaskKey(t *testing.T) {
	tbl := []struct {
		in, out string
	}{
		{"", ""},
		{"short", "****"},
		{"12345678", "****"},
		{"sk-1234567890abcd", "sk-****abcd"},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.out, maskKey(tt.in), tt.in)
	}
}
