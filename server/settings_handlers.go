package server

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
)

const maskedKeyMark = "****"

type channelView struct {
	domain.Channel
	Active bool `json:"active"`
}

type domainView struct {
	ID         string               `json:"id"`
	Name       string               `json:"name"`
	Style      domain.DomainStyle   `json:"style"`
	Default    domain.DomainStyle   `json:"default"`
	Overridden bool                 `json:"overridden"`
	Learning   domain.SummaryStatus `json:"learning"`
}

type sessionRequest struct {
	Persona  string `json:"persona"`
	AutoSend bool   `json:"auto_send"`
}

type modelRequest struct {
	Model string `json:"model"`
}

type nameRequest struct {
	Name string `json:"name"`
}

// listChannelsHandler returns saved channels with masked keys
func (s *Server) listChannelsHandler(w http.ResponseWriter, r *http.Request) {
	activeID := s.settings.ActiveChannelID()
	channels := s.settings.Channels()
	res := make([]channelView, 0, len(channels))
	for _, ch := range channels {
		ch.APIKey = maskKey(ch.APIKey)
		res = append(res, channelView{Channel: ch, Active: ch.ID == activeID})
	}
	renderJSON(w, r, http.StatusOK, map[string]any{"channels": res, "active_id": activeID})
}

// saveChannelHandler creates a channel or replaces the one with the same id.
// An empty or masked key keeps the key already stored for that channel.
func (s *Server) saveChannelHandler(w http.ResponseWriter, r *http.Request) {
	var ch domain.Channel
	if err := decodeJSON(r, &ch); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	ch.Name = strings.TrimSpace(ch.Name)
	ch.Model = strings.TrimSpace(ch.Model)
	if ch.Model == "" {
		renderError(w, r, errors.New("model is required"), http.StatusBadRequest)
		return
	}
	if err := validateBaseURL(ch.APIBaseURL); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if ch.RequestFormat != "" && !ch.RequestFormat.Valid() {
		renderError(w, r, fmt.Errorf("unknown request format %q", ch.RequestFormat), http.StatusBadRequest)
		return
	}
	if ch.ID != "" && (ch.APIKey == "" || strings.Contains(ch.APIKey, maskedKeyMark)) {
		ch.APIKey = ""
		for _, existing := range s.settings.Channels() {
			if existing.ID == ch.ID {
				ch.APIKey = existing.APIKey
				break
			}
		}
	}

	saved, err := s.settings.SaveChannel(r.Context(), ch)
	if err != nil {
		log.Printf("[ERROR] failed to save channel %q: %v", ch.Name, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	saved.APIKey = maskKey(saved.APIKey)
	renderJSON(w, r, http.StatusOK, saved)
}

// deleteChannelHandler removes a saved channel
func (s *Server) deleteChannelHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.DeleteChannel(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// activateChannelHandler makes the channel the generation target and returns the new config
func (s *Server) activateChannelHandler(w http.ResponseWriter, r *http.Request) {
	cfg, err := s.settings.Activate(r.Context(), r.PathValue("id"))
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	log.Printf("[INFO] activated channel %s, model %s", r.PathValue("id"), cfg.Model)
	cfg.APIKey = maskKey(cfg.APIKey)
	renderJSON(w, r, http.StatusOK, cfg)
}

// getConfigHandler returns the active config with a masked key
func (s *Server) getConfigHandler(w http.ResponseWriter, r *http.Request) {
	cfg := s.settings.Active()
	cfg.APIKey = maskKey(cfg.APIKey)
	renderJSON(w, r, http.StatusOK, cfg)
}

// updateSessionHandler changes persona and auto-send, an empty persona keeps the current one
func (s *Server) updateSessionHandler(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.settings.SetSession(r.Context(), s.sanitize(req.Persona), req.AutoSend); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	s.getConfigHandler(w, r)
}

// selectModelHandler switches to another model from the model list of the active config
func (s *Server) selectModelHandler(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	cfg, err := s.settings.SelectModel(r.Context(), req.Model)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	cfg.APIKey = maskKey(cfg.APIKey)
	renderJSON(w, r, http.StatusOK, cfg)
}

// listDomainsHandler returns every domain with its effective style and learning progress
func (s *Server) listDomainsHandler(w http.ResponseWriter, r *http.Request) {
	overrides := s.settings.Overrides()
	res := make([]domainView, 0, len(catalog.Domains))
	for _, d := range catalog.Domains {
		_, overridden := overrides[d.ID]
		res = append(res, domainView{
			ID:         d.ID,
			Name:       d.Name,
			Style:      s.settings.DomainStyle(d.ID),
			Default:    catalog.DefaultDomainStyles[d.ID],
			Overridden: overridden,
			Learning:   s.engine.LearningStatus(d.ID),
		})
	}
	renderJSON(w, r, http.StatusOK, res)
}

// getDomainStyleHandler returns the effective style of a domain
func (s *Server) getDomainStyleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := domainParam(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, s.settings.DomainStyle(id))
}

// saveDomainStyleHandler merges non-empty fields over the effective style of a domain
func (s *Server) saveDomainStyleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := domainParam(w, r)
	if !ok {
		return
	}
	var st domain.DomainStyle
	if err := decodeJSON(r, &st); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if err := s.validateStyle(st); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	merged, err := s.settings.SaveDomainStyle(r.Context(), id, st)
	if err != nil {
		log.Printf("[ERROR] failed to save style of %s: %v", id, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, merged)
}

// resetDomainStyleHandler drops the override, the built-in default applies again
func (s *Server) resetDomainStyleHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := domainParam(w, r)
	if !ok {
		return
	}
	if err := s.settings.ResetDomainStyle(r.Context(), id); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, s.settings.DomainStyle(id))
}

// getSummaryHandler returns learning progress of a domain
func (s *Server) getSummaryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := domainParam(w, r)
	if !ok {
		return
	}
	renderJSON(w, r, http.StatusOK, s.engine.LearningStatus(id))
}

// summarizeHandler refreshes the style summary of a domain now
func (s *Server) summarizeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := domainParam(w, r)
	if !ok {
		return
	}
	if _, err := s.engine.Summarize(r.Context(), id); err != nil {
		log.Printf("[WARN] failed to summarize %s: %v", id, err)
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, s.engine.LearningStatus(id))
}

func (s *Server) listStylesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.settings.Styles())
}

func (s *Server) addStyleHandler(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	opt, err := s.settings.AddCustomStyle(r.Context(), s.sanitize(req.Name))
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, opt)
}

func (s *Server) removeStyleHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.RemoveCustomStyle(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listStrategiesHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.settings.Strategies())
}

func (s *Server) addStrategyHandler(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := decodeJSON(r, &req); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	opt, err := s.settings.AddCustomStrategy(r.Context(), s.sanitize(req.Name))
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusCreated, opt)
}

func (s *Server) removeStrategyHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.settings.RemoveCustomStrategy(r.Context(), r.PathValue("id")); err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getGenSettingsHandler(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, r, http.StatusOK, s.settings.GenSettings())
}

// saveGenSettingsHandler merges non-zero fields over the stored panel settings
func (s *Server) saveGenSettingsHandler(w http.ResponseWriter, r *http.Request) {
	var gs domain.GenSettings
	if err := decodeJSON(r, &gs); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	if gs.Count < 0 || gs.Count > 10 {
		renderError(w, r, fmt.Errorf("count %d out of range 1-10", gs.Count), http.StatusBadRequest)
		return
	}
	if _, ok := catalog.Languages[gs.Lang]; gs.Lang != "" && !ok {
		renderError(w, r, fmt.Errorf("unknown language %q", gs.Lang), http.StatusBadRequest)
		return
	}
	if err := s.validateStyle(domain.DomainStyle{Style: gs.Style, Strategy: gs.Strategy, Length: gs.Length}); err != nil {
		renderError(w, r, err, http.StatusBadRequest)
		return
	}
	res, err := s.settings.SaveGenSettings(r.Context(), gs)
	if err != nil {
		renderError(w, r, err, errorStatus(err))
		return
	}
	renderJSON(w, r, http.StatusOK, res)
}

// validateStyle checks that non-empty fields refer to known options, custom ones included
func (s *Server) validateStyle(st domain.DomainStyle) error {
	if _, ok := catalog.Lengths[st.Length]; st.Length != "" && !ok {
		return fmt.Errorf("unknown length %q", st.Length)
	}
	if st.Style != "" && !hasOption(s.settings.Styles(), st.Style) {
		return fmt.Errorf("unknown style %q", st.Style)
	}
	if st.Strategy != "" && !hasOption(s.settings.Strategies(), st.Strategy) {
		return fmt.Errorf("unknown strategy %q", st.Strategy)
	}
	return nil
}

// domainParam extracts the domain id from the path, renders 404 for ids outside the catalog
func domainParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !catalog.IsKnownDomain(id) {
		renderError(w, r, fmt.Errorf("unknown domain %q", id), http.StatusNotFound)
		return "", false
	}
	return id, true
}

func hasOption(opts []domain.Option, id string) bool {
	for _, o := range opts {
		if o.ID == id {
			return true
		}
	}
	return false
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("invalid api base url %q", raw)
	}
	return nil
}

// maskKey keeps the first 3 and last 4 characters of a key
func maskKey(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return maskedKeyMark
	}
	return key[:3] + maskedKeyMark + key[len(key)-4:]
}
