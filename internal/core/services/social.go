package services

import (
	"regexp"
	"strings"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

var (
	wordPattern = regexp.MustCompile(`[a-z0-9]+`)
	turnPattern = regexp.MustCompile(`(?i)\[(user|assistant|system)\]\s*`)
)

// tokenizeWords splits text into lowercase alphanumeric runs, the same
// tokenization the ranking engine uses.
func tokenizeWords(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

// conversationTurn is one role-attributed span of a conversation dump.
type conversationTurn struct {
	role    string
	content string
}

// parseTurns splits text on [user]/[assistant]/[system] role markers.
// Text before the first marker is ignored; empty turns are dropped.
func parseTurns(text string) []conversationTurn {
	marks := turnPattern.FindAllStringSubmatchIndex(text, -1)
	var turns []conversationTurn
	for i, m := range marks {
		end := len(text)
		if i+1 < len(marks) {
			end = marks[i+1][0]
		}
		content := strings.TrimSpace(text[m[1]:end])
		if content == "" {
			continue
		}
		turns = append(turns, conversationTurn{
			role:    strings.ToLower(text[m[2]:m[3]]),
			content: content,
		})
	}
	return turns
}

// meanTurnLength is the engagement signal: average content length per
// parsed turn, 0 when the text has no role markers.
func meanTurnLength(turns []conversationTurn) float64 {
	if len(turns) == 0 {
		return 0
	}
	var total int
	for _, t := range turns {
		total += len(t.content)
	}
	return float64(total) / float64(len(turns))
}

// sentiment scores text in [-1, 1] by keyword counting against the
// configured lexicon: (positive - negative) / (positive + negative).
func sentiment(text string, cfg domain.GraphConfig) float64 {
	words := tokenizeWords(text)
	if len(words) == 0 {
		return 0
	}
	positive := make(map[string]struct{}, len(cfg.PositiveWords))
	for _, w := range cfg.PositiveWords {
		positive[w] = struct{}{}
	}
	negative := make(map[string]struct{}, len(cfg.NegativeWords))
	for _, w := range cfg.NegativeWords {
		negative[w] = struct{}{}
	}

	var pos, neg int
	for _, w := range words {
		if _, ok := positive[w]; ok {
			pos++
		}
		if _, ok := negative[w]; ok {
			neg++
		}
	}
	if pos+neg == 0 {
		return 0
	}
	return float64(pos-neg) / float64(pos+neg)
}

// socialDelta computes the relationship gradient from an older document
// to a newer one. Positive means strengthening (inward fade), negative
// cooling (outward fade). The engagement and sentiment signals are
// combined by the configured weights and the result clamped to [-1, 1].
func socialDelta(older, newer string, cfg domain.GraphConfig) float64 {
	engOlder := meanTurnLength(parseTurns(older))
	engNewer := meanTurnLength(parseTurns(newer))

	var engDelta float64
	if engOlder+engNewer > 0 {
		engDelta = (engNewer - engOlder) / (engNewer + engOlder)
	}

	sentDelta := (sentiment(newer, cfg) - sentiment(older, cfg)) / 2

	raw := cfg.EngagementWeight*engDelta + cfg.SentimentWeight*sentDelta
	if raw > 1 {
		return 1
	}
	if raw < -1 {
		return -1
	}
	return raw
}
