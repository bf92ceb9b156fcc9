package chat

import (
	"encoding/json"
	"regexp"
	"strings"
)

// The assistant models behind the widget are small and chatty: they leak
// control tokens, chain-of-thought tags, markdown noise and emoji. Sanitize
// reduces a raw (possibly partial) completion to plain display text. It is
// pure and safe to re-run on the growing buffer after every stream fragment.

const (
	maxBullets   = 5
	maxLines     = 8
	maxChars     = 700
	minCutOffset = 200
)

var (
	jsonBlockRe     = regexp.MustCompile(`\{[\s\S]*\}`)
	controlTokenRe  = regexp.MustCompile(`<\|.*?\|>`)
	markdownNoiseRe = regexp.MustCompile("[|*_`#>]+")
	metaLineRe      = regexp.MustCompile(`(?i)(^\s*to=\w+)|(^\s*commentary\b)|(^\s*channel\b)|(^\s*analysis\b)|\|channel\|`)
	htmlBreakRe     = regexp.MustCompile(`(?i)<br\s*/?>\s*`)
	blankRunRe      = regexp.MustCompile(`\n{3,}`)

	thinkBlockRe   = regexp.MustCompile(`(?is)<think[^>]*>.*?</think>`)
	analysisRe     = regexp.MustCompile(`(?is)<analysis[^>]*>.*?</analysis>`)
	reflectionRe   = regexp.MustCompile(`(?is)<reflection[^>]*>.*?</reflection>`)
	openThinkRe    = regexp.MustCompile(`(?is)<think[^>]*>.*$`)
	openAnalysisRe = regexp.MustCompile(`(?is)<analysis[^>]*>.*$`)
	openReflectRe  = regexp.MustCompile(`(?is)<reflection[^>]*>.*$`)
	strayTagRe     = regexp.MustCompile(`(?i)</?(think|analysis|reflection)[^>]*>`)

	zeroWidthRe = regexp.MustCompile("[​-‏‪-‮⁠-⁯\uFEFF]")

	repeatedBangRe  = regexp.MustCompile(`!{2,}`)
	repeatedQueryRe = regexp.MustCompile(`\?{2,}`)
	repeatedDotRe   = regexp.MustCompile(`\.{2,}`)

	disclaimerRe = regexp.MustCompile(`(?i)(Là một AI|Với tư cách là một AI)[^.]*\.`)
	refusalRe    = regexp.MustCompile(`(?i)(Tôi không thể cung cấp|Tôi không có khả năng)[^.]*\.`)

	bulletLineRe = regexp.MustCompile(`^\s*-\s+`)

	quoteReplacer = strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"–", "-", "—", "-", "―", "-",
		"•", "- ", "▪", "- ", "◦", "- ", "·", "- ",
	)
)

// Sanitize cleans one raw completion for display.
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	s := raw

	// Some models wrap the answer in {"response": "..."} despite being told
	// not to. Unwrap it when present.
	if match := jsonBlockRe.FindString(s); match != "" {
		var parsed map[string]any
		if err := json.Unmarshal([]byte(match), &parsed); err == nil {
			if response, ok := parsed["response"].(string); ok {
				return strings.TrimSpace(response)
			}
			if message, ok := parsed["message"].(string); ok {
				return strings.TrimSpace(message)
			}
		}
	}

	s = controlTokenRe.ReplaceAllString(s, "")

	// Chain-of-thought blocks, including a still-open one mid-stream. These
	// must go before the markdown strip or the tag brackets get mangled.
	s = thinkBlockRe.ReplaceAllString(s, "")
	s = analysisRe.ReplaceAllString(s, "")
	s = reflectionRe.ReplaceAllString(s, "")
	s = openThinkRe.ReplaceAllString(s, "")
	s = openAnalysisRe.ReplaceAllString(s, "")
	s = openReflectRe.ReplaceAllString(s, "")
	s = strayTagRe.ReplaceAllString(s, "")

	s = htmlBreakRe.ReplaceAllString(s, "\n")
	s = markdownNoiseRe.ReplaceAllString(s, "")
	s = dropMetaLines(s)
	s = strings.TrimSpace(blankRunRe.ReplaceAllString(s, "\n\n"))

	s = quoteReplacer.Replace(s)
	s = zeroWidthRe.ReplaceAllString(s, "")
	s = stripEmoji(s)

	s = repeatedBangRe.ReplaceAllString(s, "!")
	s = repeatedQueryRe.ReplaceAllString(s, "?")
	s = repeatedDotRe.ReplaceAllString(s, ".")

	s = disclaimerRe.ReplaceAllString(s, "")
	s = refusalRe.ReplaceAllString(s, "")

	s = limitBullets(s)
	s = dedupeLines(s)
	s = capLines(s)
	s = capChars(s)
	return s
}

func dropMetaLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if metaLineRe.MatchString(strings.TrimSuffix(line, "\r")) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// stripEmoji removes pictographic runes plus variation selectors and the
// joiner used to compose them. Covers the common emoji planes rather than
// the full Unicode property.
func stripEmoji(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == 0xFE0F || r == 0x200D:
			return -1
		case r >= 0x1F000 && r <= 0x1FAFF: // mahjong through symbols-extended
			return -1
		case r >= 0x2600 && r <= 0x27BF: // misc symbols and dingbats
			return -1
		case r >= 0x2190 && r <= 0x21FF: // arrows
			return -1
		case r >= 0x2B00 && r <= 0x2BFF: // misc symbols and arrows
			return -1
		}
		return r
	}, s)
}

func limitBullets(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	bullets := 0
	for _, line := range lines {
		if bulletLineRe.MatchString(line) {
			if bullets >= maxBullets {
				continue
			}
			bullets++
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func dedupeLines(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	seen := make(map[string]bool, len(lines))
	for _, line := range lines {
		key := strings.TrimSpace(line)
		if key != "" {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

func capLines(s string) string {
	lines := strings.Split(s, "\n")
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return strings.Join(lines, "\n")
}

// capChars truncates rambling answers, preferring to cut at the end of a
// sentence or line when one falls late enough in the text.
func capChars(s string) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	cut := string(runes[:maxChars])
	last := lastAnyIndex(cut, ". ", "\n", "; ")
	if last > minCutOffset {
		cut = cut[:last+1]
	}
	return strings.TrimSpace(cut)
}

func lastAnyIndex(s string, seps ...string) int {
	last := -1
	for _, sep := range seps {
		if i := strings.LastIndex(s, sep); i > last {
			last = i
		}
	}
	return last
}
