// Package fingerprint derives short, stable cache keys from free text.
//
// Keys match the ones persisted by earlier versions of the reply cache: a 31-multiplier int32 hash
// over the first PrefixLen UTF-16 code units, prefixed with "tweet_". Texts that differ only after
// the prefix share a fingerprint.
package fingerprint

import (
	"strconv"
	"unicode/utf16"
)

// PrefixLen is the number of leading UTF-16 code units that are hashed
const PrefixLen = 100

// Of returns the fingerprint of text. It is pure and never fails.
func Of(text string) string {
	runes := make([]rune, 0, PrefixLen)
	for _, r := range text {
		if len(runes) == PrefixLen {
			break
		}
		runes = append(runes, r)
	}
	units := utf16.Encode(runes)
	if len(units) > PrefixLen {
		units = units[:PrefixLen]
	}

	var h int32
	for _, u := range units {
		h = h*31 + int32(u)
	}
	return "tweet_" + strconv.FormatInt(int64(h), 10)
}
