package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/engine"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/memory"
	"github.com/umputun/replyscope/pkg/settings"
)

type classifyRequest struct {
	Text  string `json:"text"`
	Force bool   `json:"force"`
}

type analyzeRequest struct {
	Text    string                `json:"text"`
	Replies []domain.CommentReply `json:"replies"`
}

type textRequest struct {
	Text string `json:"text"`
}

type sentRequest struct {
	Context domain.SendContext `json:"context"`
	Final   string             `json:"final"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.settings.Active()
	status := map[string]interface{}{
		"status":         "ok",
		"version":        s.version,
		"time":           time.Now().UTC(),
		"model":          cfg.Model,
		"request_format": cfg.RequestFormat,
		"key_configured": cfg.APIKey != "",
	}
	renderJSON(w, r, http.StatusOK, status)
}

// classifyHandler detects the post domain and returns the initial panel state
func (s *Server) classifyHandler(w http.ResponseWriter, r *http.Request) {
	var req classifyRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	panel := s.engine.OpenPanel(r.Context(), s.sanitize(req.Text), req.Force)
	renderJSON(w, r, http.StatusOK, panel)
}

// generateHandler makes candidate replies with a buffered provider call
func (s *Server) generateHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGeneration(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	res, err := s.engine.Generate(r.Context(), req)
	if err != nil {
		log.Printf("[WARN] failed to generate replies: %v", err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// generateStreamHandler makes candidate replies and reports the accumulated text as SSE progress events.
// The last event is either result or error.
func (s *Server) generateStreamHandler(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGeneration(r)
	if err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	send := func(event string, data any) {
		if err := writeEvent(w, event, data); err != nil {
			log.Printf("[DEBUG] can't write %s event: %v", event, err)
			return
		}
		_ = rc.Flush() // not every wrapped writer supports flushing
	}

	res, err := s.engine.GenerateStream(r.Context(), req, func(acc string) {
		if r.Context().Err() != nil {
			return
		}
		send("progress", map[string]string{"text": acc})
	})
	if err != nil {
		log.Printf("[WARN] failed to stream replies: %v", err)
		send("error", map[string]any{"error": err.Error(), "status": errorStatus(err)})
		return
	}
	send("result", res)
}

// analyzeHandler summarizes the comment section of a post, analysis is null when nothing was analyzed
func (s *Server) analyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	replies := make([]domain.CommentReply, 0, len(req.Replies))
	for _, c := range req.Replies {
		replies = append(replies, domain.CommentReply{Text: s.sanitize(c.Text), Likes: c.Likes})
	}
	analysis := s.engine.AnalyzeComments(r.Context(), s.sanitize(req.Text), replies)
	renderJSON(w, r, http.StatusOK, map[string]any{"analysis": analysis})
}

// translateHandler translates text to the base language, translation is null for CJK text or on failure
func (s *Server) translateHandler(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	translation := s.engine.Translate(r.Context(), s.sanitize(req.Text))
	renderJSON(w, r, http.StatusOK, map[string]any{"translation": translation})
}

// quickReplyHandler makes a single persona-based reply
func (s *Server) quickReplyHandler(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	text, err := s.engine.QuickReply(r.Context(), s.sanitize(req.Text))
	if err != nil {
		log.Printf("[WARN] failed to make quick reply: %v", err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, map[string]string{"text": text})
}

// sentHandler records what the user finally sent for a suggestion
func (s *Server) sentHandler(w http.ResponseWriter, r *http.Request) {
	var req sentRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	sc := domain.SendContext{
		Original:    s.sanitize(req.Context.Original),
		PostExcerpt: s.sanitize(req.Context.PostExcerpt),
		DomainID:    req.Context.DomainID,
	}
	if sc.Original == "" {
		renderError(w, r, errors.New("original reply is required"), http.StatusBadRequest)
		return
	}
	if err := s.engine.RecordSend(r.Context(), sc, s.sanitize(req.Final)); err != nil {
		log.Printf("[ERROR] failed to record sent reply: %v", err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	domainID := sc.DomainID
	if domainID == "" {
		domainID = domain.GeneralDomain
	}
	renderJSON(w, r, http.StatusOK, s.engine.LearningStatus(domainID))
}

// clearCacheHandler drops cached replies and classifications
func (s *Server) clearCacheHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.ClearCache(r.Context()); err != nil {
		log.Printf("[ERROR] failed to clear cache: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeGeneration reads a generation request, strips markup from the post text
// and drops image urls that are not absolute http(s)
func (s *Server) decodeGeneration(r *http.Request) (domain.GenerationRequest, error) {
	var req domain.GenerationRequest
	if err := decodeJSON(r, &req); err != nil {
		return req, err
	}
	req.Text = s.sanitize(req.Text)
	req.Images = imageURLs(req.Images)
	if req.CommentAnalysis != nil {
		req.CommentAnalysis.Summary = s.sanitize(req.CommentAnalysis.Summary)
	}
	return req, nil
}

// sanitize strips all markup, entities are unescaped back since the text goes into prompts, not html
func (s *Server) sanitize(text string) string {
	return strings.TrimSpace(html.UnescapeString(s.policy.Sanitize(text)))
}

func imageURLs(urls []string) []string {
	res := make([]string, 0, len(urls))
	for _, u := range urls {
		parsed, err := url.Parse(strings.TrimSpace(u))
		if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			continue
		}
		res = append(res, parsed.String())
	}
	return res
}

// errorStatus maps engine and provider errors to http status codes
func errorStatus(err error) int {
	var cfgErr *llm.ConfigError
	var protoErr *llm.ProtocolError
	var transportErr *llm.TransportError
	var contentErr *llm.ContentError
	switch {
	case errors.As(err, &cfgErr), errors.Is(err, engine.ErrEmptyPost), errors.Is(err, settings.ErrEmptyName),
		errors.Is(err, settings.ErrUnknownModel):
		return http.StatusBadRequest
	case errors.Is(err, settings.ErrChannelNotFound), errors.Is(err, settings.ErrOptionNotFound):
		return http.StatusNotFound
	case errors.Is(err, memory.ErrNotEnoughSamples):
		return http.StatusConflict
	case errors.As(err, &protoErr), errors.As(err, &transportErr), errors.As(err, &contentErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeEvent(w io.Writer, event string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, payload); err != nil {
		return fmt.Errorf("write %s event: %w", event, err)
	}
	return nil
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
