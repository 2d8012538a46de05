package llm

import (
	"regexp"
	"strings"

	"github.com/umputun/replyscope/pkg/domain"
)

// maxReplyLen drops segments that are too long to be a reply, usually a sign
// the model ignored the delimiter instructions
const maxReplyLen = 800

var (
	delimiterRe   = regexp.MustCompile(`-{3,}`)
	translationRe = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(domain.TranslationTag) + `\s*(.+?)\s*$`)
)

// Normalize splits raw model output into candidate replies. Segments are separated by runs of
// three or more hyphens; empty segments and segments over maxReplyLen characters are dropped.
// A trailing "[翻译] ..." block becomes the reply translation.
func Normalize(raw string) []domain.Reply {
	res := []domain.Reply{}
	for _, seg := range delimiterRe.Split(raw, -1) {
		seg = strings.TrimSpace(seg)
		if seg == "" || len([]rune(seg)) >= maxReplyLen {
			continue
		}
		res = append(res, parseReply(seg))
	}
	return res
}

func parseReply(seg string) domain.Reply {
	loc := translationRe.FindStringSubmatchIndex(seg)
	if loc == nil {
		return domain.Reply{Text: seg}
	}
	translation := strings.TrimSpace(seg[loc[2]:loc[3]])
	return domain.Reply{Text: strings.TrimSpace(seg[:loc[0]]), Translation: &translation}
}
