package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/umputun/replyscope/pkg/domain"
)

func strPtr(s string) *string { return &s }

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []domain.Reply
	}{
		{
			name: "reply with translation",
			raw:  "A --- B [翻译] 你好",
			want: []domain.Reply{{Text: "A"}, {Text: "B", Translation: strPtr("你好")}},
		},
		{
			name: "plain list",
			raw:  "r1---r2---r3",
			want: []domain.Reply{{Text: "r1"}, {Text: "r2"}, {Text: "r3"}},
		},
		{
			name: "long hyphen runs and blank segments",
			raw:  "\n first \n------\n\n---\n second\n",
			want: []domain.Reply{{Text: "first"}, {Text: "second"}},
		},
		{
			name: "multiline translation",
			raw:  "Great point!\n[翻译] 说得好！\n第二行",
			want: []domain.Reply{{Text: "Great point!", Translation: strPtr("说得好！\n第二行")}},
		},
		{
			name: "single hyphen is not a delimiter",
			raw:  "well-known - fact",
			want: []domain.Reply{{Text: "well-known - fact"}},
		},
		{
			name: "empty",
			raw:  "",
			want: []domain.Reply{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.raw))
		})
	}
}

func TestNormalize_DropsOversized(t *testing.T) {
	long := strings.Repeat("长", maxReplyLen)
	res := Normalize("ok---" + long + "---fine")
	require.Len(t, res, 2)
	assert.Equal(t, "ok", res[0].Text)
	assert.Equal(t, "fine", res[1].Text)
}

func TestNormalize_Property(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "count")
		parts := make([]string, n)
		for i := range parts {
			parts[i] = rapid.StringMatching(`[a-zA-Z0-9 ,.!?]{1,40}`).Draw(rt, "part")
		}
		res := Normalize(strings.Join(parts, "\n---\n"))
		for _, r := range res {
			assert.NotEmpty(rt, r.Text)
			assert.Nil(rt, r.Translation)
			assert.Equal(rt, strings.TrimSpace(r.Text), r.Text)
		}
		assert.LessOrEqual(rt, len(res), n)
	})
}
