// Package bm25 is the built-in full-text ranking engine: cosine
// similarity over BM25-weighted term-frequency vectors.
//
// Document-side term weights use Okapi BM25 saturation and length
// normalization; query-side weights are IDF-scaled raw frequencies.
// The cosine keeps scores in [0, 1], which makes the same ranking
// function usable both for search and as the semantic-link similarity
// metric with a fixed threshold.
//
// Tokenization is lowercase alphanumeric runs with no stemming and no
// stopword removal, so ranking is deterministic and language-agnostic.
// Corpus statistics are maintained incrementally as documents are
// indexed or removed; they are rebuilt from the archive on store open
// and never persisted.
package bm25
