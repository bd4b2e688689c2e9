package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// tokenSplitPattern matches non-alphanumeric character sequences for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9]+`)

// stopwords are common terms excluded from keyword ranking. The list is small
// on purpose: titles are short and over-filtering empties them.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"what": {}, "how": {}, "why": {}, "your": {}, "you": {}, "this": {},
	"that": {}, "are": {}, "part": {}, "episode": {}, "tutorial": {},
	"introduction": {}, "intro": {}, "video": {}, "beginners": {},
	"complete": {}, "full": {}, "course": {}, "guide": {}, "lesson": {},
}

// Tokenize splits text into lowercase tokens, filtering tokens shorter than
// three characters.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, token := range raw {
		token = strings.TrimSpace(token)
		if len(token) < 3 {
			continue
		}
		terms = append(terms, token)
	}
	return terms
}

// TopKeywords ranks the non-stopword tokens across the supplied texts by
// frequency and returns up to limit of them. Ties break alphabetically so the
// result is deterministic. The original casing of the first occurrence is
// preserved for display.
func TopKeywords(texts []string, limit int) []string {
	if limit <= 0 {
		return nil
	}
	counts := make(map[string]int)
	display := make(map[string]string)
	for _, text := range texts {
		for _, word := range strings.Fields(text) {
			token := strings.ToLower(strings.Trim(word, ".,!?:;()[]{}\"'"))
			token = tokenSplitPattern.ReplaceAllString(token, "")
			if len(token) < 3 {
				continue
			}
			if _, skip := stopwords[token]; skip {
				continue
			}
			counts[token]++
			if _, ok := display[token]; !ok {
				display[token] = strings.Trim(word, ".,!?:;()[]{}\"'")
			}
		}
	}
	if len(counts) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(counts))
	for token := range counts {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if len(tokens) > limit {
		tokens = tokens[:limit]
	}

	keywords := make([]string, 0, len(tokens))
	for _, token := range tokens {
		keywords = append(keywords, display[token])
	}
	return keywords
}

// Truncate cuts text to at most limit bytes with a plain prefix cut. It never
// splits a UTF-8 rune.
func Truncate(text string, limit int) string {
	if limit <= 0 || len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}
