package domain

import "fmt"

// Default tuning values. These match the reference behaviour of the
// engine and are used wherever the store configuration leaves a field
// unset.
const (
	// DefaultTopK is the bounded number of strongest semantic
	// neighbours retained per document.
	DefaultTopK = 5

	// DefaultMinScore is the minimum similarity a candidate must reach
	// to become a semantic neighbour.
	DefaultMinScore = 0.01

	// DefaultEngagementWeight and DefaultSentimentWeight combine the
	// two social signals into a single delta.
	DefaultEngagementWeight = 0.6
	DefaultSentimentWeight  = 0.4

	// DefaultBM25K1 is the term-frequency saturation constant.
	DefaultBM25K1 = 1.5

	// DefaultBM25B is the document-length normalization constant.
	DefaultBM25B = 0.75
)

// DefaultPositiveWords and DefaultNegativeWords form the built-in
// sentiment lexicon. Both are replaceable through configuration.
var (
	DefaultPositiveWords = []string{
		"thanks", "thank", "great", "good", "awesome", "excellent",
		"love", "appreciate", "happy", "glad", "wonderful", "nice",
		"agree", "yes", "perfect", "beautiful", "amazing", "helpful",
	}
	DefaultNegativeWords = []string{
		"bad", "wrong", "hate", "disagree", "no", "never", "terrible",
		"awful", "frustrated", "angry", "annoying", "disappointed",
		"confused", "fail", "error", "broken",
	}
)

// GraphConfig tunes honeycomb link computation.
type GraphConfig struct {
	// TopK caps each document's semantic neighbour list.
	TopK int

	// MinScore is the similarity threshold for semantic links.
	MinScore float64

	// EngagementWeight and SentimentWeight combine the two social
	// signals into the link delta. They should sum to 1.
	EngagementWeight float64
	SentimentWeight  float64

	// PositiveWords and NegativeWords are the sentiment lexicon.
	PositiveWords []string
	NegativeWords []string
}

// SearchConfig tunes the default BM25 ranking engine.
type SearchConfig struct {
	// K1 is the term-frequency saturation constant.
	K1 float64

	// B is the document-length normalization constant.
	B float64
}

// Config is the store-level configuration.
type Config struct {
	Graph  GraphConfig
	Search SearchConfig
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Graph: GraphConfig{
			TopK:             DefaultTopK,
			MinScore:         DefaultMinScore,
			EngagementWeight: DefaultEngagementWeight,
			SentimentWeight:  DefaultSentimentWeight,
			PositiveWords:    DefaultPositiveWords,
			NegativeWords:    DefaultNegativeWords,
		},
		Search: SearchConfig{
			K1: DefaultBM25K1,
			B:  DefaultBM25B,
		},
	}
}

// Validate checks the configuration for values the engine cannot
// operate with.
func (c Config) Validate() error {
	if c.Graph.TopK < 1 {
		return fmt.Errorf("graph top_k must be at least 1, got %d", c.Graph.TopK)
	}
	if c.Graph.MinScore < 0 {
		return fmt.Errorf("graph min_score must not be negative, got %g", c.Graph.MinScore)
	}
	if c.Graph.EngagementWeight < 0 || c.Graph.SentimentWeight < 0 {
		return fmt.Errorf("social weights must not be negative")
	}
	if c.Graph.EngagementWeight+c.Graph.SentimentWeight == 0 {
		return fmt.Errorf("at least one social weight must be positive")
	}
	if c.Search.K1 <= 0 {
		return fmt.Errorf("search k1 must be positive, got %g", c.Search.K1)
	}
	if c.Search.B < 0 || c.Search.B > 1 {
		return fmt.Errorf("search b must be in [0, 1], got %g", c.Search.B)
	}
	return nil
}
