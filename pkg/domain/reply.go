package domain

import "time"

// GeneralDomain is the catch-all domain id used when nothing else matches
const GeneralDomain = "general"

// TranslationTag prefixes the translation appended to a generated reply
const TranslationTag = "[翻译]"

// DomainCategory describes a topical category a post can be assigned to
type DomainCategory struct {
	ID       string
	Name     string
	Keywords []string
}

// DomainStyle is the style/strategy/length triple used to generate replies for a domain.
// Empty fields in an override mean "use the default".
type DomainStyle struct {
	Style    string `json:"style,omitempty"`
	Strategy string `json:"strategy,omitempty"`
	Length   string `json:"length,omitempty"`
}

// CommentReply is a sibling reply scraped from the page
type CommentReply struct {
	Text  string `json:"text"`
	Likes int    `json:"likes"`
}

// CommentAnalysis summarizes the comment section of a post
type CommentAnalysis struct {
	Summary    string         `json:"summary"`
	TopReplies []CommentReply `json:"top_replies"`
}

// GenerationRequest is the provider-neutral description of what to generate
type GenerationRequest struct {
	Text            string           `json:"text"`
	Images          []string         `json:"images,omitempty"`
	Style           string           `json:"style"`
	Strategy        string           `json:"strategy"`
	Length          string           `json:"length"`
	Lang            string           `json:"lang"`
	Count           int              `json:"count"`
	Domain          string           `json:"domain"`
	CommentAnalysis *CommentAnalysis `json:"comment_analysis,omitempty"`
}

// Reply is a single normalized candidate reply
type Reply struct {
	Text        string  `json:"text"`
	Translation *string `json:"translation"`
}

// HistoryEntry records what the user finally sent for a suggested reply
type HistoryEntry struct {
	Original    string    `json:"original"`
	Final       string    `json:"final"`
	PostExcerpt string    `json:"post_excerpt"`
	Timestamp   time.Time `json:"timestamp"`
}

// Edited reports whether the user changed the suggestion before sending
func (h HistoryEntry) Edited() bool {
	return h.Final != "" && h.Final != h.Original
}

// StyleSummary is the AI-produced description of the user's reply style in a domain
type StyleSummary struct {
	Summary      string    `json:"summary"`
	HistoryCount int       `json:"history_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

// SummaryStatus reports learning progress for a domain
type SummaryStatus struct {
	HasSummary   bool      `json:"has_summary"`
	Summary      string    `json:"summary,omitempty"`
	LastUpdated  time.Time `json:"last_updated,omitzero"`
	HistoryCount int       `json:"history_count"`
}

// CacheEntry holds generated replies for a post fingerprint
type CacheEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Replies     []Reply   `json:"replies"`
	Timestamp   time.Time `json:"timestamp"`
}

// SendContext is handed to the editor collaborator with a suggestion and echoed back on send
type SendContext struct {
	Original    string `json:"original"`
	PostExcerpt string `json:"post_excerpt"`
	DomainID    string `json:"domain_id"`
}

// Option is a selectable style or strategy
type Option struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Desc   string `json:"desc,omitempty"`
	Custom bool   `json:"custom,omitempty"`
}

// GenSettings are the last used generation panel settings
type GenSettings struct {
	Count    int    `json:"count"`
	Length   string `json:"length"`
	Style    string `json:"style"`
	Strategy string `json:"strategy"`
	Lang     string `json:"lang"`
}

// DefaultGenSettings returns generation settings used before the user picks anything
func DefaultGenSettings() GenSettings {
	return GenSettings{Count: 3, Length: "medium", Style: "engage", Strategy: "default", Lang: "auto"}
}
