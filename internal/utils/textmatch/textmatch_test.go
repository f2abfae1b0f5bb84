package textmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cfg := NewConfig()

	t.Run("lowercases and drops stop words", func(t *testing.T) {
		tokens := Normalize("What is your return policy?", cfg)
		assert.Equal(t, []string{"what", "your", "return", "policy"}, tokens)
	})

	t.Run("deduplicates preserving first-seen order", func(t *testing.T) {
		tokens := Normalize("ship ship it, SHIP it now", cfg)
		assert.Equal(t, []string{"ship", "it", "now"}, tokens)
	})

	t.Run("blank input yields no tokens", func(t *testing.T) {
		assert.Empty(t, Normalize("", cfg))
		assert.Empty(t, Normalize("   \t\n", cfg))
	})

	t.Run("stop-words-only input yields no tokens", func(t *testing.T) {
		assert.Empty(t, Normalize("how does the", cfg))
	})

	t.Run("word class is ascii only", func(t *testing.T) {
		// Multi-byte letters are separators, not word characters.
		assert.Equal(t, []string{"caf"}, Normalize("café", cfg))
		assert.Equal(t, []string{"caf", "au", "lait"}, Normalize("café au lait", cfg))
	})

	t.Run("splits on punctuation runs", func(t *testing.T) {
		tokens := Normalize("hello---world!!foo..bar", cfg)
		assert.Equal(t, []string{"hello", "world", "foo", "bar"}, tokens)
	})

	t.Run("injected stop words override the default list", func(t *testing.T) {
		custom := Config{StopWords: []string{"hello"}}
		tokens := Normalize("hello the world", custom)
		assert.Equal(t, []string{"the", "world"}, tokens)
	})
}

func TestSplitSentences(t *testing.T) {
	t.Run("splits on terminal punctuation and trims", func(t *testing.T) {
		got := SplitSentences("We ship worldwide. Returns are accepted within 30 days. Support is available 24/7.")
		assert.Equal(t, []string{
			"We ship worldwide",
			"Returns are accepted within 30 days",
			"Support is available 24/7",
		}, got)
	})

	t.Run("empty block yields nothing", func(t *testing.T) {
		assert.Empty(t, SplitSentences(""))
		assert.Empty(t, SplitSentences(" . ! ? "))
	})

	t.Run("over-segments abbreviations and decimals", func(t *testing.T) {
		// The naive split is load-bearing; this pins it down.
		got := SplitSentences("Ver. 2.5 is supported")
		assert.Equal(t, []string{"Ver", "2", "5 is supported"}, got)
	})
}

func TestBestMatch(t *testing.T) {
	t.Run("counts distinct tokens by substring containment", func(t *testing.T) {
		best, score := BestMatch([]string{"cat"}, []string{"all categories listed"})
		assert.Equal(t, "all categories listed", best)
		assert.Equal(t, 1, score)
	})

	t.Run("ties keep the earliest sentence", func(t *testing.T) {
		sentences := []string{"we ship fast", "we ship slow"}
		best, score := BestMatch([]string{"ship", "we"}, sentences)
		assert.Equal(t, "we ship fast", best)
		assert.Equal(t, 2, score)
	})

	t.Run("zero score when nothing matches", func(t *testing.T) {
		best, score := BestMatch([]string{"xyz"}, []string{"We ship worldwide"})
		assert.Equal(t, 0, score)
		assert.Equal(t, "", best)
	})

	t.Run("truncated non-ascii token still matches", func(t *testing.T) {
		best, score := BestMatch(Normalize("café?", NewConfig()), []string{"Our caf serves espresso"})
		assert.Equal(t, "Our caf serves espresso", best)
		assert.Equal(t, 1, score)
	})

	t.Run("returned sentence keeps original casing", func(t *testing.T) {
		best, _ := BestMatch([]string{"returns"}, []string{"Returns are accepted"})
		assert.Equal(t, "Returns are accepted", best)
	})
}

func TestReply(t *testing.T) {
	cfg := NewConfig()
	adminInfo := "We ship worldwide. Returns are accepted within 30 days. Support is available 24/7."
	fallback := "Sorry, I don't understand."

	t.Run("return policy question matches the returns sentence", func(t *testing.T) {
		got := Reply("What is your return policy?", adminInfo, fallback, cfg)
		assert.Equal(t, "Returns are accepted within 30 days", got)
	})

	t.Run("unmatched message falls back", func(t *testing.T) {
		got := Reply("xyz", adminInfo, fallback, cfg)
		assert.Equal(t, fallback, got)
	})

	t.Run("blank message falls back without scoring", func(t *testing.T) {
		got := Reply("   ", adminInfo, fallback, cfg)
		assert.Equal(t, fallback, got)
	})

	t.Run("stop-words-only message falls back", func(t *testing.T) {
		got := Reply("how does the", adminInfo, fallback, cfg)
		assert.Equal(t, fallback, got)
	})
}
