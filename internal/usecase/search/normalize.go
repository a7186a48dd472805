package search

import (
	"regexp"
	"strconv"
	"strings"
)

// abbreviations maps token shorthand to canonical forms.
var abbreviations = map[string]string{
	"bed":       "bedroom",
	"beds":      "bedroom",
	"bedroom":   "bedroom",
	"bedrooms":  "bedroom",
	"br":        "bedroom",
	"bath":      "bathroom",
	"baths":     "bathroom",
	"bathroom":  "bathroom",
	"bathrooms": "bathroom",
	"ba":        "bathroom",
}

var (
	thousandsComma = regexp.MustCompile(`(\d),(\d)`)
	kNumber        = regexp.MustCompile(`^(\d+(?:\.\d+)?)k$`)
	kRange         = regexp.MustCompile(`^(\d+(?:\.\d+)?)k-(\d+(?:\.\d+)?)k$`)
)

// normalize lowercases a raw query, strips punctuation except currency and
// number markers, expands known abbreviations and k-suffixed amounts, and
// collapses whitespace. It returns the normalized tokens plus the full
// lowercase text for substring fallback. An empty query normalizes to an
// empty token list; nothing downstream may fail on it.
func normalize(raw string) (tokens []string, lowered string) {
	lowered = strings.ToLower(raw)

	cleaned := thousandsComma.ReplaceAllString(lowered, "$1$2")
	cleaned = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == '$' || r == '.' || r == '-':
			return r
		default:
			return ' '
		}
	}, cleaned)

	for _, field := range strings.Fields(cleaned) {
		tok := normalizeToken(field)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens, lowered
}

func normalizeToken(tok string) string {
	tok = strings.TrimPrefix(tok, "$")
	tok = strings.Trim(tok, ".-")
	if tok == "" {
		return ""
	}

	if m := kRange.FindStringSubmatch(tok); m != nil {
		return expandK(m[1]) + "-" + expandK(m[2])
	}
	if m := kNumber.FindStringSubmatch(tok); m != nil {
		return expandK(m[1])
	}
	if canonical, ok := abbreviations[tok]; ok {
		return canonical
	}
	return tok
}

// expandK multiplies a "500" or "1.5" amount by 1000.
func expandK(num string) string {
	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return num
	}
	return strconv.Itoa(int(f * 1000))
}
