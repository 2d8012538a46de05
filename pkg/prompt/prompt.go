// Package prompt builds the system and user texts sent to providers. Every provider receives
// the same text, wire formatting is left to the llm package.
package prompt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/umputun/replyscope/pkg/catalog"
	"github.com/umputun/replyscope/pkg/domain"
)

// DefaultBaseLang is the language translations are produced in
const DefaultBaseLang = "zh"

const (
	classifyTextLimit = 300
	maxAnalysisSample = 3
	maxSummarySamples = 10
	maxRawSamples     = 3
)

// Prompt is a provider-neutral prompt pair
type Prompt struct {
	System string
	User   string
}

// Params describe a reply generation request
type Params struct {
	Text             string
	HasImages        bool
	Style            string
	Strategy         string
	Length           string
	Lang             string
	Count            int
	Domain           string
	LearnedPatterns  string // fragment made by Learned or LearnedSamples
	Analysis         *domain.CommentAnalysis
	BaseLang         string          // DefaultBaseLang if empty
	CustomStyles     []domain.Option // looked up after the built-in styles
	CustomStrategies []domain.Option // looked up after the built-in strategies
}

// Build makes the generation prompt. Unknown style, strategy, length or language ids
// fall back to the built-in defaults.
func Build(p Params) Prompt {
	baseLang := p.BaseLang
	if baseLang == "" {
		baseLang = DefaultBaseLang
	}
	count := p.Count
	if count <= 0 {
		count = 1
	}

	var sb strings.Builder
	sb.WriteString("你是一个社交媒体高手，擅长写出吸引人的回复。\n")
	fmt.Fprintf(&sb, "风格要求：%s\n", optionText(p.Style, catalog.Styles, p.CustomStyles))
	fmt.Fprintf(&sb, "语言要求：%s\n", lookup(catalog.Languages, p.Lang, "auto"))
	fmt.Fprintf(&sb, "字数要求：%s\n", lookup(catalog.Lengths, p.Length, "medium"))
	fmt.Fprintf(&sb, "回复策略：%s\n", optionText(p.Strategy, catalog.Strategies, p.CustomStrategies))
	sb.WriteString("回复不要像机器人，要有个性和真实感。")

	if p.Domain != "" && p.Domain != domain.GeneralDomain {
		d := catalog.Domain(p.Domain)
		fmt.Fprintf(&sb, "\n\n这是一条关于【%s】领域的推文。%s", d.Name, catalog.DomainGuidance[d.ID])
	}

	sb.WriteString(p.LearnedPatterns)

	if a := p.Analysis; a != nil {
		if a.Summary != "" {
			fmt.Fprintf(&sb, "\n\n评论区热评总结：%s", a.Summary)
		}
		if len(a.TopReplies) > 0 {
			top := a.TopReplies
			if len(top) > maxAnalysisSample {
				top = top[:maxAnalysisSample]
			}
			quoted := make([]string, 0, len(top))
			for _, r := range top {
				quoted = append(quoted, fmt.Sprintf("%q", r.Text))
			}
			fmt.Fprintf(&sb, "\n热门评论示例：%s", strings.Join(quoted, "；"))
		}
	}

	if p.HasImages {
		sb.WriteString("\n注意：推文包含图片，请结合图片内容生成回复。")
	}

	if p.Lang != baseLang {
		name := languageName(baseLang)
		fmt.Fprintf(&sb, "\n如果回复语言不是%s，请在每条回复后附加%s翻译，格式为：\n回复内容\n%s %s翻译", name, name, domain.TranslationTag, name)
	}

	text := p.Text
	if strings.TrimSpace(text) == "" {
		text = "[无文字，请根据图片内容回复]"
	}
	user := fmt.Sprintf("请为以下推文生成 %d 条不同的回复，每条回复用 --- 分隔：\n\n推文内容：%s\n\n请直接给出 %d 条回复，用 --- 分隔：",
		count, text, count)

	return Prompt{System: sb.String(), User: user}
}

// Classification asks for a single domain id out of domains, general is skipped
func Classification(text string, domains []domain.DomainCategory) Prompt {
	list := make([]string, 0, len(domains))
	for _, d := range domains {
		if d.ID == domain.GeneralDomain {
			continue
		}
		list = append(list, d.ID+": "+d.Name)
	}
	return Prompt{
		System: fmt.Sprintf("你是一个推文分类专家。请将推文分类到以下领域之一：%s。只返回领域ID（如 ai, emotion, politics 等），不要其他内容。",
			strings.Join(list, ", ")),
		User: "推文内容：" + truncateRunes(text, classifyTextLimit),
	}
}

// StyleSummary asks for a 2-3 sentence description of the user's style, at most 10 samples are used
func StyleSummary(domainName string, samples []string) Prompt {
	if len(samples) > maxSummarySamples {
		samples = samples[:maxSummarySamples]
	}
	return Prompt{
		System: fmt.Sprintf("你是一个风格分析专家。请分析用户在%s领域的回复风格，总结为2-3句话的风格描述。\n"+
			"描述应该包括：语气特点、常用表达方式、情感倾向等。不要列举具体回复，只给出总结性描述。", domainName),
		User: "用户的历史回复样本：\n" + numbered(samples) + "\n\n请用2-3句话总结这个用户的回复风格：",
	}
}

// CommentAnalysis asks for a one sentence summary of the comment section
func CommentAnalysis(post string, top []domain.CommentReply) Prompt {
	lines := make([]string, 0, len(top))
	for i, r := range top {
		lines = append(lines, fmt.Sprintf("%d. [%d赞] %s", i+1, r.Likes, r.Text))
	}
	return Prompt{
		System: "你是一个社交媒体分析专家。请简洁分析以下热门评论的主要观点。",
		User:   fmt.Sprintf("原推文：%s\n\n热门评论：\n%s\n\n请用一句话总结评论区的主要观点/情绪：", post, strings.Join(lines, "\n")),
	}
}

// Translation asks to translate text into baseLang and return nothing else
func Translation(text, baseLang string) Prompt {
	if baseLang == "" {
		baseLang = DefaultBaseLang
	}
	return Prompt{
		System: fmt.Sprintf("你是一个翻译专家。请将以下文本翻译成%s，只返回翻译结果，不要添加任何解释。", languageName(baseLang)),
		User:   text,
	}
}

// QuickReply asks for a single reply in the language of the post, written as persona
func QuickReply(post, persona string) Prompt {
	return Prompt{
		System: "You are a helpful social media assistant.\n" +
			"Analyze the tweet (Language, Type) and write a reply in the SAME LANGUAGE.\n" +
			"Persona: " + persona + ".\n" +
			"Keep it natural, concise, and engaging. No robot sound.",
		User: fmt.Sprintf("Context: %q\n\nReply:", post),
	}
}

// Learned formats a style summary as a learned-patterns fragment
func Learned(domainName, summary string) string {
	return fmt.Sprintf("\n\n用户在%s领域的回复风格特点：%s", domainName, summary)
}

// LearnedSamples formats up to 3 edited replies as a learned-patterns fragment, empty for no samples
func LearnedSamples(samples []string) string {
	if len(samples) == 0 {
		return ""
	}
	if len(samples) > maxRawSamples {
		samples = samples[:maxRawSamples]
	}
	return "\n\n用户的历史回复风格参考（请模仿这种风格）:\n" + numbered(samples)
}

func numbered(items []string) string {
	lines := make([]string, 0, len(items))
	for i, s := range items {
		lines = append(lines, fmt.Sprintf("%d. %q", i+1, s))
	}
	return strings.Join(lines, "\n")
}

// optionText returns the prompt instruction for id, custom options only carry a name
func optionText(id string, builtin, custom []domain.Option) string {
	for _, opts := range [][]domain.Option{builtin, custom} {
		for _, o := range opts {
			if o.ID != id {
				continue
			}
			if o.Desc != "" {
				return o.Desc
			}
			return o.Name
		}
	}
	return builtin[0].Desc
}

func lookup(m map[string]string, key, fallback string) string {
	if v, ok := m[key]; ok {
		return v
	}
	return m[fallback]
}

func languageName(lang string) string {
	if lang == "zh" {
		return "中文"
	}
	if name, ok := catalog.Languages[lang]; ok {
		return name
	}
	return lang
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
