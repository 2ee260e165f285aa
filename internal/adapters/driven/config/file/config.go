package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// fileConfig mirrors domain.Config with TOML tags. Pointer fields
// distinguish "unset" from zero, so a partial file only overrides the
// values it names.
type fileConfig struct {
	Graph struct {
		TopK             *int     `toml:"top_k"`
		MinScore         *float64 `toml:"min_score"`
		EngagementWeight *float64 `toml:"engagement_weight"`
		SentimentWeight  *float64 `toml:"sentiment_weight"`
		PositiveWords    []string `toml:"positive_words"`
		NegativeWords    []string `toml:"negative_words"`
	} `toml:"graph"`
	Search struct {
		K1 *float64 `toml:"k1"`
		B  *float64 `toml:"b"`
	} `toml:"search"`
}

// Path returns the configuration file path for a store root.
func Path(root string) string {
	return filepath.Join(root, "config.toml")
}

// Load reads <root>/config.toml, applies it over the defaults, and
// validates the result. A missing file returns the defaults unchanged.
func Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(Path(root))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	if fc.Graph.TopK != nil {
		cfg.Graph.TopK = *fc.Graph.TopK
	}
	if fc.Graph.MinScore != nil {
		cfg.Graph.MinScore = *fc.Graph.MinScore
	}
	if fc.Graph.EngagementWeight != nil {
		cfg.Graph.EngagementWeight = *fc.Graph.EngagementWeight
	}
	if fc.Graph.SentimentWeight != nil {
		cfg.Graph.SentimentWeight = *fc.Graph.SentimentWeight
	}
	if fc.Graph.PositiveWords != nil {
		cfg.Graph.PositiveWords = fc.Graph.PositiveWords
	}
	if fc.Graph.NegativeWords != nil {
		cfg.Graph.NegativeWords = fc.Graph.NegativeWords
	}
	if fc.Search.K1 != nil {
		cfg.Search.K1 = *fc.Search.K1
	}
	if fc.Search.B != nil {
		cfg.Search.B = *fc.Search.B
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
