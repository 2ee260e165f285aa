package bm25

import (
	"context"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.SearchEngine = (*Engine)(nil)

// tokenPattern splits text into alphanumeric runs.
var tokenPattern = regexp.MustCompile(`[a-z0-9]+`)

// Tokenize splits text into lowercase alphanumeric tokens.
func Tokenize(text string) []string {
	return tokenPattern.FindAllString(strings.ToLower(text), -1)
}

// Engine is an in-memory BM25-weighted cosine ranking engine. It is
// safe for concurrent use, though the store's single-writer model means
// writes never actually race.
type Engine struct {
	mu sync.RWMutex

	k1 float64
	b  float64

	// termFreqs[id][term] is the term frequency in document id.
	termFreqs map[string]map[string]int

	// docLens[id] is the token count of document id.
	docLens map[string]int

	// docFreq[term] is the number of documents containing term.
	docFreq map[string]int

	// totalLen is the sum of all document lengths.
	totalLen int
}

// New creates an engine with the given Okapi constants. Values of zero
// or below select the defaults (k1 = 1.5, b = 0.75).
func New(k1, b float64) *Engine {
	if k1 <= 0 {
		k1 = domain.DefaultBM25K1
	}
	if b <= 0 {
		b = domain.DefaultBM25B
	}
	return &Engine{
		k1:        k1,
		b:         b,
		termFreqs: make(map[string]map[string]int),
		docLens:   make(map[string]int),
		docFreq:   make(map[string]int),
	}
}

// Index adds or updates a document.
func (e *Engine) Index(_ context.Context, id, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drop(id)

	tokens := Tokenize(text)
	freqs := make(map[string]int, len(tokens))
	for _, t := range tokens {
		freqs[t]++
	}
	for t := range freqs {
		e.docFreq[t]++
	}
	e.termFreqs[id] = freqs
	e.docLens[id] = len(tokens)
	e.totalLen += len(tokens)
	return nil
}

// Remove deletes a document. Removing an unknown id is a no-op.
func (e *Engine) Remove(_ context.Context, id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.drop(id)
	return nil
}

// drop retracts a document's contribution to the corpus statistics.
// Caller must hold the write lock.
func (e *Engine) drop(id string) {
	freqs, ok := e.termFreqs[id]
	if !ok {
		return
	}
	for t := range freqs {
		if e.docFreq[t] <= 1 {
			delete(e.docFreq, t)
		} else {
			e.docFreq[t]--
		}
	}
	e.totalLen -= e.docLens[id]
	delete(e.termFreqs, id)
	delete(e.docLens, id)
}

// Search ranks indexed documents against the query, descending by
// score with ties broken by ascending id. k <= 0 means no limit.
func (e *Engine) Search(_ context.Context, query string, k int) ([]driven.SearchHit, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	queryTokens := Tokenize(query)
	if len(queryTokens) == 0 || len(e.termFreqs) == 0 {
		return nil, nil
	}

	n := float64(len(e.termFreqs))
	avgLen := float64(e.totalLen) / n

	idf := func(term string) float64 {
		df := float64(e.docFreq[term])
		return math.Log(1 + (n-df+0.5)/(df+0.5))
	}

	// Query-side weights: IDF-scaled term frequencies. Terms absent
	// from the corpus cannot match anything and are left out.
	queryFreqs := make(map[string]int, len(queryTokens))
	for _, t := range queryTokens {
		if _, ok := e.docFreq[t]; ok {
			queryFreqs[t]++
		}
	}
	if len(queryFreqs) == 0 {
		return nil, nil
	}
	queryWeights := make(map[string]float64, len(queryFreqs))
	var queryNorm float64
	for t, freq := range queryFreqs {
		w := idf(t) * float64(freq)
		queryWeights[t] = w
		queryNorm += w * w
	}
	queryNorm = math.Sqrt(queryNorm)

	var hits []driven.SearchHit
	for id, freqs := range e.termFreqs {
		docLen := float64(e.docLens[id])

		var dot, docNorm float64
		for t, freq := range freqs {
			w := idf(t) * e.saturate(float64(freq), docLen, avgLen)
			docNorm += w * w
			if qw, ok := queryWeights[t]; ok {
				dot += qw * w
			}
		}
		if dot == 0 || docNorm == 0 {
			continue
		}
		hits = append(hits, driven.SearchHit{
			ID:    id,
			Score: dot / (queryNorm * math.Sqrt(docNorm)),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ID < hits[j].ID
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// saturate is the Okapi BM25 term-frequency saturation with document
// length normalization.
func (e *Engine) saturate(freq, docLen, avgLen float64) float64 {
	return freq * (e.k1 + 1) / (freq + e.k1*(1-e.b+e.b*docLen/avgLen))
}
