// Package catalog holds the built-in vocabularies: domain categories with their keywords,
// default per-domain styles, domain guidance, and the style/strategy/length/language options
// the prompt builder understands.
package catalog

import "github.com/umputun/replyscope/pkg/domain"

// Domains is the fixed, ordered domain catalog. Order matters: the keyword classifier
// picks the first category with a match. The catch-all general category is last and has no keywords.
var Domains = []domain.DomainCategory{
	{ID: "ai", Name: "AI/科技", Keywords: []string{"AI", "GPT", "LLM", "ChatGPT", "Claude", "Gemini", "人工智能", "机器学习",
		"deep learning", "neural", "transformer", "OpenAI", "Anthropic", "大模型", "AGI", "AI agent"}},
	{ID: "emotion", Name: "情感", Keywords: []string{"情感", "爱情", "心理", "治愈", "感情", "恋爱", "分手", "孤独", "幸福", "温暖",
		"love", "relationship", "feeling", "heart", "鸡汤", "人生", "生活感悟"}},
	{ID: "politics", Name: "政治", Keywords: []string{"政治", "政策", "选举", "政府", "总统", "Trump", "Biden", "民主", "共和",
		"election", "vote", "congress", "国会", "法案", "policy"}},
	{ID: "tech", Name: "科技产品", Keywords: []string{"iPhone", "Android", "Apple", "Google", "Microsoft", "手机", "电脑", "软件",
		"App", "startup", "创业", "SaaS", "web3", "crypto", "blockchain", "区块链"}},
	{ID: "finance", Name: "财经", Keywords: []string{"股票", "投资", "经济", "金融", "stock", "invest", "market", "trading", "基金",
		"ETF", "理财", "Fed", "美联储", "GDP", "通胀", "inflation"}},
	{ID: "entertainment", Name: "娱乐", Keywords: []string{"电影", "音乐", "明星", "综艺", "movie", "music", "celebrity", "演唱会",
		"专辑", "Netflix", "剧", "show", "偶像", "粉丝", "fan"}},
	{ID: "sports", Name: "体育", Keywords: []string{"足球", "篮球", "体育", "比赛", "NBA", "FIFA", "football", "soccer", "basketball",
		"世界杯", "奥运", "Olympics", "运动员", "player", "game"}},
	{ID: "food", Name: "美食", Keywords: []string{"美食", "餐厅", "烹饪", "食物", "food", "recipe", "cooking", "restaurant", "好吃",
		"菜谱", "火锅", "咖啡", "coffee", "茶", "甜点"}},
	{ID: domain.GeneralDomain, Name: "通用"},
}

// DefaultDomainStyles are the built-in per-domain styles
var DefaultDomainStyles = map[string]domain.DomainStyle{
	"ai":                 {Style: "pro", Strategy: "unique", Length: "medium"},
	"emotion":            {Style: "warm", Strategy: "agree", Length: "medium"},
	"politics":           {Style: "sharp", Strategy: "balance", Length: "long"},
	"tech":               {Style: "pro", Strategy: "unique", Length: "medium"},
	"finance":            {Style: "pro", Strategy: "balance", Length: "long"},
	"entertainment":      {Style: "humor", Strategy: "engage", Length: "short"},
	"sports":             {Style: "engage", Strategy: "agree", Length: "short"},
	"food":               {Style: "warm", Strategy: "engage", Length: "short"},
	domain.GeneralDomain: {Style: "engage", Strategy: "default", Length: "medium"},
}

// DomainGuidance adds domain-specific instructions to the generation prompt
var DomainGuidance = map[string]string{
	"ai":            "请展现对AI技术的理解，可以提及相关技术概念、产品或趋势。",
	"emotion":       "请展现同理心和情感共鸣，语气要给人温暖感。",
	"politics":      "保持客观理性，避免过于极端的立场，但可以有自己的观点。",
	"tech":          "可以提及具体的产品功能、使用体验或行业趋势。",
	"finance":       "可以提及市场分析、投资观点，但避免不当投资建议。",
	"entertainment": "保持轻松有趣，可以表达对明星/作品的喜爱或看法。",
	"sports":        "展现对运动/比赛的热情，可以评价表现或预测结果。",
	"food":          "展现对美食的欣赏，可以分享味道感受或推荐。",
}

// Styles are the built-in reply styles, Desc is the prompt instruction
var Styles = []domain.Option{
	{ID: "engage", Name: "吸引关注", Desc: "吸引人注意，增加互动和曝光，让人想点赞转发"},
	{ID: "humor", Name: "幽默搞笑", Desc: "幽默搞笑，轻松有趣"},
	{ID: "pro", Name: "专业严谨", Desc: "专业严谨，有深度"},
	{ID: "sharp", Name: "犀利毒舌", Desc: "犀利毒舌，观点独特"},
	{ID: "warm", Name: "暖心治愈", Desc: "暖心治愈，温暖鼓励"},
}

// Strategies are the built-in rhetorical strategies, Desc is the prompt instruction
var Strategies = []domain.Option{
	{ID: "default", Name: "默认", Desc: "自然回复，根据推文内容自由发挥"},
	{ID: "agree", Name: "同意", Desc: "赞同评论区的主流观点，表达共鸣和支持"},
	{ID: "unique", Name: "新观点", Desc: "提出独特的新观点或新角度，吸引关注"},
	{ID: "balance", Name: "平衡", Desc: "客观分析，提供平衡的多角度看法"},
	{ID: "challenge", Name: "反驳", Desc: "提出不同意见，友善地挑战主流观点"},
}

// Lengths maps length ids to prompt instructions
var Lengths = map[string]string{
	"short":  "简短精炼，不超过30字",
	"medium": "适中长度，30-80字",
	"long":   "详细一些，80-150字",
}

// Languages maps reply language ids to prompt instructions
var Languages = map[string]string{
	"auto": "与原推文相同的语言",
	"zh":   "中文",
	"en":   "English",
	"ja":   "日本語",
	"ko":   "한국어",
}

// Domain returns the category for id, falling back to general for unknown ids
func Domain(id string) domain.DomainCategory {
	for _, d := range Domains {
		if d.ID == id {
			return d
		}
	}
	return Domains[len(Domains)-1]
}

// IsKnownDomain reports whether id is in the catalog
func IsKnownDomain(id string) bool {
	for _, d := range Domains {
		if d.ID == id {
			return true
		}
	}
	return false
}
