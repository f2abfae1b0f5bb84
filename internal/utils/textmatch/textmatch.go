// Package textmatch implements the keyword matching used to pick a reply
// sentence out of a client's admin info text. It is deliberately simple:
// no stemming, no synonyms, no embeddings. A message is reduced to its
// significant words and each sentence is scored by how many of those words
// it contains as substrings.
package textmatch

import "strings"

// DefaultStopWords is the closed list of words that carry no matching
// signal: articles, common auxiliary verbs, prepositions and WH-words.
var DefaultStopWords = []string{
	"is", "are", "am", "was", "the", "a", "an", "of", "to", "in", "on",
	"for", "with", "does", "do", "did", "how", "why", "when",
}

// Config carries the injectable knobs so tests can substitute fixtures.
type Config struct {
	StopWords []string
}

func NewConfig() Config {
	return Config{StopWords: DefaultStopWords}
}

func (c Config) stopSet() map[string]struct{} {
	set := make(map[string]struct{}, len(c.StopWords))
	for _, w := range c.StopWords {
		set[w] = struct{}{}
	}
	return set
}

// A word character is exactly [0-9A-Za-z_]. Multi-byte letters split
// tokens: "café" tokenizes to "caf".
func isWordRune(r rune) bool {
	return r == '_' ||
		'a' <= r && r <= 'z' ||
		'A' <= r && r <= 'Z' ||
		'0' <= r && r <= '9'
}

// Normalize lowercases the message, splits it on runs of non-word
// characters and drops empty tokens, stop words and duplicates. Order of
// first occurrence is preserved. A blank message yields no tokens, which
// callers must treat as "no reliable match possible".
func Normalize(text string, cfg Config) []string {
	stop := cfg.stopSet()
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, w := range fields {
		if _, skip := stop[w]; skip {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		tokens = append(tokens, w)
	}
	return tokens
}

// SplitSentences segments a knowledge block on sentence-terminal
// punctuation, trimming whitespace and discarding empty pieces. The split
// is naive on purpose: abbreviations and decimal numbers over-segment
// ("Ver. 2.5" becomes two pieces) and downstream behavior depends on that
// staying true. Document order is preserved because it breaks score ties.
func SplitSentences(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	sentences := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			sentences = append(sentences, s)
		}
	}
	return sentences
}

// BestMatch scores every sentence against the token set and returns the
// highest-scoring one together with its score. A sentence scores one point
// per distinct token it contains anywhere as a substring ("cat" matches
// inside "category"). Replacement happens only on a strict improvement, so
// equal scores keep the earliest sentence. A zero score means no token
// matched at all; callers fall back to the client's fallback text.
func BestMatch(tokens []string, sentences []string) (string, int) {
	var best string
	bestScore := 0

	for _, sentence := range sentences {
		lower := strings.ToLower(sentence)
		score := 0
		for _, tok := range tokens {
			if strings.Contains(lower, tok) {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			best = sentence
		}
	}
	return best, bestScore
}

// Reply runs the whole pipeline: normalize the message, split the
// knowledge block, pick the best sentence, fall back when nothing scored.
func Reply(message, adminInfo, fallback string, cfg Config) string {
	tokens := Normalize(message, cfg)
	if len(tokens) == 0 {
		return fallback
	}
	best, score := BestMatch(tokens, SplitSentences(adminInfo))
	if score == 0 {
		return fallback
	}
	return best
}
