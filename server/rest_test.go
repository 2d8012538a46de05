package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/engine"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/memory"
	"github.com/umputun/replyscope/pkg/settings"
	"github.com/umputun/replyscope/server/mocks"
)

func strPtr(s string) *string { return &s }

func TestServer_statusHandler(t *testing.T) {
	st := &mocks.SettingsMock{ActiveFunc: func() domain.Config {
		return domain.Config{RequestFormat: domain.FormatGemini, Model: "gemini-pro", APIKey: "key"}
	}}
	srv := New(testConfig(), &mocks.EngineMock{}, st, "1.2.3", false)

	w := serve(t, srv, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var status map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, "ok", status["status"])
	assert.Equal(t, "1.2.3", status["version"])
	assert.Equal(t, "gemini-pro", status["model"])
	assert.Equal(t, "gemini", status["request_format"])
	assert.Equal(t, true, status["key_configured"])
	assert.NotEmpty(t, status["time"])
}

func TestServer_classifyHandler(t *testing.T) {
	eng := &mocks.EngineMock{OpenPanelFunc: func(_ context.Context, text string, force bool) engine.Panel {
		return engine.Panel{Domain: "sports", Style: domain.DomainStyle{Style: "engage"}, Settings: domain.DefaultGenSettings()}
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/classify", `{"text":"<b>NBA</b> &amp; finals","force":true}`)
	require.Equal(t, http.StatusOK, w.Code)

	var panel engine.Panel
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &panel))
	assert.Equal(t, "sports", panel.Domain)
	assert.Equal(t, 3, panel.Settings.Count)

	require.Len(t, eng.OpenPanelCalls(), 1)
	assert.Equal(t, "NBA & finals", eng.OpenPanelCalls()[0].Text)
	assert.True(t, eng.OpenPanelCalls()[0].Force)

	w = serve(t, srv, http.MethodPost, "/api/v1/classify", `{"text":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid request body")
}

func TestServer_generateHandler(t *testing.T) {
	eng := &mocks.EngineMock{GenerateFunc: func(_ context.Context, req domain.GenerationRequest) (engine.Result, error) {
		return engine.Result{Domain: "ai", Suggestions: []engine.Suggestion{
			{Reply: domain.Reply{Text: "r1", Translation: strPtr("t1")}, Context: domain.SendContext{Original: "r1", DomainID: "ai"}},
		}}, nil
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	body := `{"text":"<script>x()</script>AI news","images":["https://a.com/1.png","javascript:alert(1)","/rel.png","http://b.com/2.jpg"],
		"style":"humor","count":2,"comment_analysis":{"summary":"<i>mostly positive</i>"}}`
	w := serve(t, srv, http.MethodPost, "/api/v1/generate", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res engine.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "ai", res.Domain)
	require.Len(t, res.Suggestions, 1)
	assert.Equal(t, "r1", res.Suggestions[0].Text)
	assert.Equal(t, "t1", *res.Suggestions[0].Translation)
	assert.Equal(t, "ai", res.Suggestions[0].Context.DomainID)

	require.Len(t, eng.GenerateCalls(), 1)
	req := eng.GenerateCalls()[0].Req
	assert.Equal(t, "AI news", req.Text)
	assert.Equal(t, []string{"https://a.com/1.png", "http://b.com/2.jpg"}, req.Images)
	assert.Equal(t, "humor", req.Style)
	assert.Equal(t, 2, req.Count)
	assert.Equal(t, "mostly positive", req.CommentAnalysis.Summary)
}

func TestServer_generateHandlerErrors(t *testing.T) {
	tbl := []struct {
		name string
		err  error
		code int
	}{
		{"empty post", engine.ErrEmptyPost, http.StatusBadRequest},
		{"no key", llm.ErrNoAPIKey, http.StatusBadRequest},
		{"protocol", fmt.Errorf("generate: %w", &llm.ProtocolError{Status: 401, Body: "bad key"}), http.StatusBadGateway},
		{"transport", &llm.TransportError{Err: errors.New("connection refused")}, http.StatusBadGateway},
		{"content", &llm.ContentError{Reason: "no replies"}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			eng := &mocks.EngineMock{GenerateFunc: func(context.Context, domain.GenerationRequest) (engine.Result, error) {
				return engine.Result{}, tt.err
			}}
			w := serve(t, testServer(t, eng, &mocks.SettingsMock{}), http.MethodPost, "/api/v1/generate", `{"text":"x"}`)
			assert.Equal(t, tt.code, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.err.Error(), resp["error"])
		})
	}

	eng := &mocks.EngineMock{}
	w := serve(t, testServer(t, eng, &mocks.SettingsMock{}), http.MethodPost, "/api/v1/generate", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, eng.GenerateCalls())
}

// sseEvent is a parsed server-sent event
type sseEvent struct {
	name string
	data string
}

func parseEvents(t *testing.T, body string) []sseEvent {
	t.Helper()
	var res []sseEvent
	for _, block := range strings.Split(strings.TrimSpace(body), "\n\n") {
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.data = strings.TrimPrefix(line, "data: ")
			}
		}
		res = append(res, ev)
	}
	return res
}

func TestServer_generateStreamHandler(t *testing.T) {
	eng := &mocks.EngineMock{GenerateStreamFunc: func(_ context.Context, req domain.GenerationRequest,
		onProgress func(string)) (engine.Result, error) {
		onProgress("r1")
		onProgress("r1---r2")
		return engine.Result{Domain: "tech", Suggestions: []engine.Suggestion{{Reply: domain.Reply{Text: "r1"}}, {Reply: domain.Reply{Text: "r2"}}}}, nil
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/generate/stream", `{"text":"new GPU released"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Equal(t, "no-cache", w.Header().Get("Cache-Control"))

	events := parseEvents(t, w.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, sseEvent{name: "progress", data: `{"text":"r1"}`}, events[0])
	assert.Equal(t, sseEvent{name: "progress", data: `{"text":"r1---r2"}`}, events[1])
	assert.Equal(t, "result", events[2].name)

	var res engine.Result
	require.NoError(t, json.Unmarshal([]byte(events[2].data), &res))
	assert.Equal(t, "tech", res.Domain)
	assert.Len(t, res.Suggestions, 2)
	assert.Equal(t, "new GPU released", eng.GenerateStreamCalls()[0].Req.Text)
}

func TestServer_generateStreamHandlerError(t *testing.T) {
	eng := &mocks.EngineMock{GenerateStreamFunc: func(_ context.Context, _ domain.GenerationRequest,
		onProgress func(string)) (engine.Result, error) {
		onProgress("partial")
		return engine.Result{}, &llm.ProtocolError{Status: 500, Body: "oops"}
	}}
	w := serve(t, testServer(t, eng, &mocks.SettingsMock{}), http.MethodPost, "/api/v1/generate/stream", `{"text":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)

	events := parseEvents(t, w.Body.String())
	require.Len(t, events, 2)
	assert.Equal(t, "progress", events[0].name)
	assert.Equal(t, "error", events[1].name)

	var resp map[string]any
	require.NoError(t, json.Unmarshal([]byte(events[1].data), &resp))
	assert.InDelta(t, float64(http.StatusBadGateway), resp["status"], 0.001)
	assert.Contains(t, resp["error"], "oops")

	w = serve(t, testServer(t, eng, &mocks.SettingsMock{}), http.MethodPost, "/api/v1/generate/stream", `{`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
}

func TestServer_analyzeHandler(t *testing.T) {
	eng := &mocks.EngineMock{AnalyzeCommentsFunc: func(_ context.Context, post string, replies []domain.CommentReply) *domain.CommentAnalysis {
		if len(replies) == 0 {
			return nil
		}
		return &domain.CommentAnalysis{Summary: "supportive", TopReplies: replies}
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/analyze",
		`{"text":"post","replies":[{"text":"<a href='x'>great point here</a>","likes":7}]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Analysis *domain.CommentAnalysis `json:"analysis"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Analysis)
	assert.Equal(t, "supportive", resp.Analysis.Summary)
	assert.Equal(t, []domain.CommentReply{{Text: "great point here", Likes: 7}}, eng.AnalyzeCommentsCalls()[0].Replies)

	w = serve(t, srv, http.MethodPost, "/api/v1/analyze", `{"text":"post"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"analysis":null}`, w.Body.String())
}

func TestServer_translateHandler(t *testing.T) {
	eng := &mocks.EngineMock{TranslateFunc: func(_ context.Context, text string) *string {
		if text == "已经是中文" {
			return nil
		}
		return strPtr("翻译结果")
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/translate", `{"text":"hello"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"translation":"翻译结果"}`, w.Body.String())

	w = serve(t, srv, http.MethodPost, "/api/v1/translate", `{"text":"已经是中文"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"translation":null}`, w.Body.String())
}

func TestServer_quickReplyHandler(t *testing.T) {
	eng := &mocks.EngineMock{QuickReplyFunc: func(_ context.Context, post string) (string, error) {
		if post == "" {
			return "", engine.ErrEmptyPost
		}
		return "nice one", nil
	}}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/quick-reply", `{"text":"some post"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"text":"nice one"}`, w.Body.String())

	w = serve(t, srv, http.MethodPost, "/api/v1/quick-reply", `{"text":"<p></p>"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestServer_sentHandler(t *testing.T) {
	eng := &mocks.EngineMock{
		RecordSendFunc: func(context.Context, domain.SendContext, string) error { return nil },
		LearningStatusFunc: func(domainID string) domain.SummaryStatus {
			return domain.SummaryStatus{HistoryCount: 4}
		},
	}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodPost, "/api/v1/sent",
		`{"context":{"original":"orig","post_excerpt":"<b>post</b>","domain_id":"food"},"final":"edited <br>"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"has_summary":false,"history_count":4}`, w.Body.String())

	require.Len(t, eng.RecordSendCalls(), 1)
	call := eng.RecordSendCalls()[0]
	assert.Equal(t, domain.SendContext{Original: "orig", PostExcerpt: "post", DomainID: "food"}, call.Sc)
	assert.Equal(t, "edited", call.Final)
	assert.Equal(t, "food", eng.LearningStatusCalls()[0].DomainID)

	// missing domain reports the general domain
	w = serve(t, srv, http.MethodPost, "/api/v1/sent", `{"context":{"original":"orig"}}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, domain.GeneralDomain, eng.LearningStatusCalls()[1].DomainID)

	w = serve(t, srv, http.MethodPost, "/api/v1/sent", `{"context":{},"final":"x"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	eng.RecordSendFunc = func(context.Context, domain.SendContext, string) error { return errors.New("disk full") }
	w = serve(t, srv, http.MethodPost, "/api/v1/sent", `{"context":{"original":"orig"}}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestServer_clearCacheHandler(t *testing.T) {
	eng := &mocks.EngineMock{ClearCacheFunc: func(context.Context) error { return nil }}
	srv := testServer(t, eng, &mocks.SettingsMock{})

	w := serve(t, srv, http.MethodDelete, "/api/v1/cache", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Len(t, eng.ClearCacheCalls(), 1)

	eng.ClearCacheFunc = func(context.Context) error { return errors.New("locked") }
	w = serve(t, srv, http.MethodDelete, "/api/v1/cache", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorStatus(t *testing.T) {
	tbl := []struct {
		err  error
		code int
	}{
		{engine.ErrEmptyPost, http.StatusBadRequest},
		{fmt.Errorf("wrapped: %w", llm.ErrNoAPIKey), http.StatusBadRequest},
		{settings.ErrEmptyName, http.StatusBadRequest},
		{fmt.Errorf("select model x: %w", settings.ErrUnknownModel), http.StatusBadRequest},
		{fmt.Errorf("activate x: %w", settings.ErrChannelNotFound), http.StatusNotFound},
		{settings.ErrOptionNotFound, http.StatusNotFound},
		{memory.ErrNotEnoughSamples, http.StatusConflict},
		{&llm.VisionUnsupportedError{ProtocolError: &llm.ProtocolError{Status: 400}}, http.StatusBadGateway},
		{&llm.TransportError{Err: context.DeadlineExceeded}, http.StatusBadGateway},
		{&llm.ContentError{Reason: "empty"}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.code, errorStatus(tt.err), tt.err.Error())
	}
}

func TestServer_sanitize(t *testing.T) {
	srv := testServer(t, &mocks.EngineMock{}, &mocks.SettingsMock{})
	tbl := []struct {
		in, out string
	}{
		{"plain text", "plain text"},
		{"  <b>bold</b> move ", "bold move"},
		{"<script>alert(1)</script>safe", "safe"},
		{"Q&amp;A <3 &lt;tag&gt;", "Q&A <3 <tag>"},
		{"AI大模型<br/>又有新进展", "AI大模型又有新进展"},
	}
	for _, tt := range tbl {
		assert.Equal(t, tt.out, srv.sanitize(tt.in), tt.in)
	}
}

func TestImageURLs(t *testing.T) {
	res := imageURLs([]string{" https://pbs.example.com/media/a.jpg ", "ftp://x/y.png", "data:image/png;base64,AAA", "", "http://h/p?q=1"})
	assert.Equal(t, []string{"https://pbs.example.com/media/a.jpg", "http://h/p?q=1"}, res)
	assert.Empty(t, imageURLs(nil))
}

func TestWriteEvent(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, writeEvent(&sb, "progress", map[string]string{"text": "a\nb"}))
	assert.Equal(t, "event: progress\ndata: {\"text\":\"a\\nb\"}\n\n", sb.String())

	err := writeEvent(&sb, "bad", map[string]any{"ch": make(chan int)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "marshal bad event")
}

func TestRenderError(t *testing.T) {
	w := httptest.NewRecorder()
	renderError(w, nil, nil, http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"unknown error"}`, w.Body.String())
}

func TestServer_statusTime(t *testing.T) {
	st := &mocks.SettingsMock{ActiveFunc: func() domain.Config { return domain.DefaultConfig() }}
	w := serve(t, testServer(t, &mocks.EngineMock{}, st), http.MethodGet, "/api/v1/status", "")
	var status struct {
		Time          time.Time `json:"time"`
		KeyConfigured bool      `json:"key_configured"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.WithinDuration(t, time.Now(), status.Time, time.Minute)
	assert.False(t, status.KeyConfigured)
}
