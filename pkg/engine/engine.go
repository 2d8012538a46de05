// Package engine orchestrates reply generation: it classifies the post, resolves the domain style,
// builds the prompt with learned patterns, calls the provider and caches the normalized replies.
// It also records what the user finally sent, feeding the learning memory.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/replyscope/pkg/domain"
	"github.com/umputun/replyscope/pkg/fingerprint"
	"github.com/umputun/replyscope/pkg/llm"
	"github.com/umputun/replyscope/pkg/prompt"
)

//go:generate moq -out mocks/llm.go -pkg mocks -skip-ensure -fmt goimports . LLM

const (
	maxPostImages     = 4
	minCommentLen     = 10
	maxCommentReplies = 5
	excerptLen        = 100
)

// ErrEmptyPost is returned when a post has neither text nor images
var ErrEmptyPost = errors.New("post has no text and no images")

// LLM sends completion requests to the configured provider
type LLM interface {
	Complete(ctx context.Context, cfg domain.Config, req llm.Request) (string, error)
	Stream(ctx context.Context, cfg domain.Config, req llm.Request, onProgress func(string)) ([]domain.Reply, error)
}

// Classifier maps post text to a domain id
type Classifier interface {
	Classify(ctx context.Context, text string, force bool) string
	ClearCache()
}

// Settings provides the active config, domain styles, custom catalogs and panel settings
type Settings interface {
	Active() domain.Config
	DomainStyle(domainID string) domain.DomainStyle
	GenSettings() domain.GenSettings
	CustomStyles() []domain.Option
	CustomStrategies() []domain.Option
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
}

// Memory is the per-domain learning memory
type Memory interface {
	Record(ctx context.Context, domainID, original, final, postExcerpt string) error
	LearnedPatterns(domainID string) string
	Summarize(ctx context.Context, domainID string) (string, error)
	Status(domainID string) domain.SummaryStatus
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
	Wait()
}

// Cache keeps generated replies per post fingerprint
type Cache interface {
	Get(fp string) ([]domain.Reply, bool)
	Put(ctx context.Context, fp string, replies []domain.Reply) error
	Clear(ctx context.Context) error
	Load(ctx context.Context) error
	Flush(ctx context.Context) error
}

// Sampling is the temperature and token limit of one kind of provider call
type Sampling struct {
	Temperature float32
	MaxTokens   int
}

// Params tune provider calls, zero values get defaults
type Params struct {
	Generation  Sampling // 0.8, 2048
	Analysis    Sampling // 0.5, 200
	Translation Sampling // 0.3, 500
	QuickReply  Sampling // 0.7, 1024
	BaseLang    string   // language translations are made in, prompt.DefaultBaseLang if empty
}

// Deps are the collaborators of the engine
type Deps struct {
	LLM        LLM
	Classifier Classifier
	Settings   Settings
	Memory     Memory
	Cache      Cache
}

// Engine is the reply generation service, safe for concurrent use
type Engine struct {
	Deps
	params Params
}

// Panel is the state of the generation panel for a post, the domain style is the initial selection
type Panel struct {
	Domain   string               `json:"domain"`
	Style    domain.DomainStyle   `json:"style"`
	Settings domain.GenSettings   `json:"settings"`
	Cached   []domain.Reply       `json:"cached,omitempty"`
	Learning domain.SummaryStatus `json:"learning"`
}

// Suggestion is a generated reply with the context echoed back when it is sent
type Suggestion struct {
	domain.Reply
	Context domain.SendContext `json:"context"`
}

// Result of a generation
type Result struct {
	Domain      string             `json:"domain"`
	Style       domain.DomainStyle `json:"style"`
	Suggestions []Suggestion       `json:"suggestions"`
}

// Replies returns the plain replies of the result
func (r Result) Replies() []domain.Reply {
	res := make([]domain.Reply, 0, len(r.Suggestions))
	for _, s := range r.Suggestions {
		res = append(res, s.Reply)
	}
	return res
}

// New makes an Engine
func New(deps Deps, params Params) *Engine {
	params.Generation = withDefaults(params.Generation, 0.8, 2048)
	params.Analysis = withDefaults(params.Analysis, 0.5, 200)
	params.Translation = withDefaults(params.Translation, 0.3, 500)
	params.QuickReply = withDefaults(params.QuickReply, 0.7, 1024)
	if params.BaseLang == "" {
		params.BaseLang = prompt.DefaultBaseLang
	}
	return &Engine{Deps: deps, params: params}
}

func withDefaults(s Sampling, temperature float32, maxTokens int) Sampling {
	if s.Temperature == 0 {
		s.Temperature = temperature
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = maxTokens
	}
	return s
}

// Load restores persisted state of all components
func (e *Engine) Load(ctx context.Context) error {
	if err := e.Settings.Load(ctx); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if err := e.Memory.Load(ctx); err != nil {
		return fmt.Errorf("load memory: %w", err)
	}
	if err := e.Cache.Load(ctx); err != nil {
		return fmt.Errorf("load cache: %w", err)
	}
	return nil
}

// Flush waits for detached summarizations and persists all components
func (e *Engine) Flush(ctx context.Context) error {
	e.Memory.Wait()
	if err := e.Settings.Flush(ctx); err != nil {
		return fmt.Errorf("flush settings: %w", err)
	}
	if err := e.Memory.Flush(ctx); err != nil {
		return fmt.Errorf("flush memory: %w", err)
	}
	if err := e.Cache.Flush(ctx); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}
	return nil
}

// OpenPanel classifies the post and returns the initial panel state with cached replies if any
func (e *Engine) OpenPanel(ctx context.Context, text string, force bool) Panel {
	domainID := e.Classifier.Classify(ctx, text, force)
	res := Panel{
		Domain:   domainID,
		Style:    e.Settings.DomainStyle(domainID),
		Settings: e.Settings.GenSettings(),
		Learning: e.Memory.Status(domainID),
	}
	if cached, ok := e.cached(text); ok {
		res.Cached = cached
	}
	return res
}

// ClearCache drops cached replies and the session classification cache
func (e *Engine) ClearCache(ctx context.Context) error {
	e.Classifier.ClearCache()
	if err := e.Cache.Clear(ctx); err != nil {
		return fmt.Errorf("clear reply cache: %w", err)
	}
	return nil
}

// LearningStatus reports the learning progress of a domain
func (e *Engine) LearningStatus(domainID string) domain.SummaryStatus {
	return e.Memory.Status(domainID)
}

// Summarize refreshes the style summary of a domain now
func (e *Engine) Summarize(ctx context.Context, domainID string) (string, error) {
	return e.Memory.Summarize(ctx, domainID)
}

// Cached returns previously generated replies for the post text
func (e *Engine) Cached(text string) ([]domain.Reply, bool) {
	return e.cached(text)
}

func (e *Engine) cached(text string) ([]domain.Reply, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	return e.Cache.Get(fingerprint.Of(text))
}

// Generate makes count candidate replies for the post with a buffered provider call.
// Images are sent with the first attempt, the provider layer retries once without them
// if the model rejects images. Replies are cached by the post fingerprint.
func (e *Engine) Generate(ctx context.Context, req domain.GenerationRequest) (Result, error) {
	res, llmReq, err := e.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	lgr.Printf("[DEBUG] generate %d replies for %s, style %s, strategy %s, %d images",
		req.Count, res.Domain, res.Style.Style, res.Style.Strategy, len(llmReq.Images))

	text, err := e.LLM.Complete(ctx, e.Settings.Active(), llmReq)
	if err != nil {
		return Result{}, fmt.Errorf("generate replies: %w", err)
	}
	return e.finish(ctx, req, res, llm.Normalize(text))
}

// GenerateStream is Generate with incremental progress. onProgress gets the accumulated raw text.
// Streaming is text-only; on a transport failure the buffered path with images is used instead.
func (e *Engine) GenerateStream(ctx context.Context, req domain.GenerationRequest, onProgress func(string)) (Result, error) {
	res, llmReq, err := e.prepare(ctx, req)
	if err != nil {
		return Result{}, err
	}
	cfg := e.Settings.Active()

	replies, err := e.LLM.Stream(ctx, cfg, llmReq, onProgress)
	if err != nil {
		if !llm.IsRetryableStreamError(err) || ctx.Err() != nil {
			return Result{}, fmt.Errorf("stream replies: %w", err)
		}
		lgr.Printf("[WARN] stream failed, falling back to buffered generation: %v", err)
		text, cerr := e.LLM.Complete(ctx, cfg, llmReq)
		if cerr != nil {
			return Result{}, fmt.Errorf("generate replies: %w", cerr)
		}
		replies = llm.Normalize(text)
	}
	return e.finish(ctx, req, res, replies)
}

// prepare resolves the domain and style and builds the provider request
func (e *Engine) prepare(ctx context.Context, req domain.GenerationRequest) (Result, llm.Request, error) {
	if strings.TrimSpace(req.Text) == "" && len(req.Images) == 0 {
		return Result{}, llm.Request{}, ErrEmptyPost
	}

	domainID := req.Domain
	if domainID == "" {
		domainID = e.Classifier.Classify(ctx, req.Text, false)
	}

	gen := e.Settings.GenSettings()
	st := e.Settings.DomainStyle(domainID)
	if req.Style != "" {
		st.Style = req.Style
	}
	if req.Strategy != "" {
		st.Strategy = req.Strategy
	}
	if req.Length != "" {
		st.Length = req.Length
	}
	count, lang := req.Count, req.Lang
	if count <= 0 {
		count = gen.Count
	}
	if lang == "" {
		lang = gen.Lang
	}

	images := req.Images
	if len(images) > maxPostImages {
		images = images[:maxPostImages]
	}

	p := prompt.Build(prompt.Params{
		Text:             req.Text,
		HasImages:        len(images) > 0,
		Style:            st.Style,
		Strategy:         st.Strategy,
		Length:           st.Length,
		Lang:             lang,
		Count:            count,
		Domain:           domainID,
		LearnedPatterns:  e.Memory.LearnedPatterns(domainID),
		Analysis:         req.CommentAnalysis,
		BaseLang:         e.params.BaseLang,
		CustomStyles:     e.Settings.CustomStyles(),
		CustomStrategies: e.Settings.CustomStrategies(),
	})

	llmReq := llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: e.params.Generation.Temperature,
		MaxTokens:   e.params.Generation.MaxTokens,
	}
	for _, u := range images {
		llmReq.Images = append(llmReq.Images, llm.Image{URL: u})
	}
	return Result{Domain: domainID, Style: st}, llmReq, nil
}

// finish caches the replies and attaches send contexts
func (e *Engine) finish(ctx context.Context, req domain.GenerationRequest, res Result, replies []domain.Reply) (Result, error) {
	if len(replies) == 0 {
		return Result{}, &llm.ContentError{Reason: "no usable replies in response"}
	}
	if strings.TrimSpace(req.Text) != "" {
		if err := e.Cache.Put(ctx, fingerprint.Of(req.Text), replies); err != nil {
			lgr.Printf("[WARN] failed to cache replies: %v", err)
		}
	}

	postExcerpt := excerpt(req.Text)
	res.Suggestions = make([]Suggestion, 0, len(replies))
	for _, r := range replies {
		res.Suggestions = append(res.Suggestions, Suggestion{
			Reply:   r,
			Context: domain.SendContext{Original: r.Text, PostExcerpt: postExcerpt, DomainID: res.Domain},
		})
	}
	lgr.Printf("[INFO] generated %d replies for %s", len(replies), res.Domain)
	return res, nil
}

// AnalyzeComments summarizes the comment section of a post. Replies of 10 runes or less are
// ignored, the 5 most liked are sent. Returns nil without an api key, without replies or when
// the provider call fails.
func (e *Engine) AnalyzeComments(ctx context.Context, post string, replies []domain.CommentReply) *domain.CommentAnalysis {
	top := TopComments(replies, maxCommentReplies)
	cfg := e.Settings.Active()
	if cfg.APIKey == "" || len(top) == 0 {
		return nil
	}

	p := prompt.CommentAnalysis(post, top)
	text, err := e.LLM.Complete(ctx, cfg, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: e.params.Analysis.Temperature,
		MaxTokens:   e.params.Analysis.MaxTokens,
	})
	if err != nil {
		lgr.Printf("[WARN] comment analysis failed: %v", err)
		return nil
	}
	summary := strings.TrimSpace(text)
	if summary == "" {
		return nil
	}
	return &domain.CommentAnalysis{Summary: summary, TopReplies: top}
}

// TopComments drops replies of minCommentLen runes or less and returns up to limit replies
// ordered by likes, ties keep the page order
func TopComments(replies []domain.CommentReply, limit int) []domain.CommentReply {
	res := make([]domain.CommentReply, 0, len(replies))
	for _, r := range replies {
		r.Text = strings.TrimSpace(r.Text)
		if utf8.RuneCountInString(r.Text) <= minCommentLen {
			continue
		}
		res = append(res, r)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].Likes > res[j].Likes })
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}

// Translate translates text into the base language. Returns nil when the text already contains
// CJK characters, without an api key or when the provider call fails.
func (e *Engine) Translate(ctx context.Context, text string) *string {
	cfg := e.Settings.Active()
	if cfg.APIKey == "" || strings.TrimSpace(text) == "" || containsCJK(text) {
		return nil
	}
	p := prompt.Translation(text, e.params.BaseLang)
	res, err := e.LLM.Complete(ctx, cfg, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: e.params.Translation.Temperature,
		MaxTokens:   e.params.Translation.MaxTokens,
	})
	if err != nil {
		lgr.Printf("[WARN] translation failed: %v", err)
		return nil
	}
	res = strings.TrimSpace(res)
	if res == "" {
		return nil
	}
	return &res
}

// QuickReply makes a single reply in the language of the post, written as the configured persona
func (e *Engine) QuickReply(ctx context.Context, post string) (string, error) {
	if strings.TrimSpace(post) == "" {
		return "", ErrEmptyPost
	}
	cfg := e.Settings.Active()
	p := prompt.QuickReply(post, cfg.Persona)
	text, err := e.LLM.Complete(ctx, cfg, llm.Request{
		System:      p.System,
		User:        p.User,
		Temperature: e.params.QuickReply.Temperature,
		MaxTokens:   e.params.QuickReply.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("quick reply: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// RecordSend stores what the user sent for a suggestion, final may differ from the suggestion
func (e *Engine) RecordSend(ctx context.Context, sc domain.SendContext, final string) error {
	if strings.TrimSpace(final) == "" {
		final = sc.Original
	}
	if err := e.Memory.Record(ctx, sc.DomainID, sc.Original, final, sc.PostExcerpt); err != nil {
		return fmt.Errorf("record send: %w", err)
	}
	return nil
}

func containsCJK(s string) bool {
	for _, r := range s {
		if r >= 0x4e00 && r <= 0x9fff {
			return true
		}
	}
	return false
}

func excerpt(s string) string {
	if utf8.RuneCountInString(s) <= excerptLen {
		return s
	}
	return string([]rune(s)[:excerptLen])
}
