package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"math"
	"regexp"
	"sort"
	"time"
)

// DateFormat is the calendar-date key format used throughout the store.
const DateFormat = "2006-01-02"

var datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidDate reports whether s is a well-formed YYYY-MM-DD date string.
func ValidDate(s string) bool {
	if !datePattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}

// ComputeHash returns the chain hash for a document: the hex SHA-256
// digest of the previous document's hash concatenated with the content.
// prevHash is the empty string for the genesis document.
func ComputeHash(prevHash, content string) string {
	sum := sha256.Sum256([]byte(prevHash + content))
	return hex.EncodeToString(sum[:])
}

// RoundScore rounds a similarity score or social delta to four
// decimal places so that persisted link values are stable across
// recomputation and serialization.
func RoundScore(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// TemporalLinks holds the previous/next pointers in the chronological
// chain. An empty string means "no such neighbour".
type TemporalLinks struct {
	Prev string
	Next string
}

// SemanticNeighbor is a single semantic link to another document.
type SemanticNeighbor struct {
	Target string
	Score  float64
}

// SocialLink records the relationship gradient against another document.
// A positive delta is an inward fade (strengthening), a negative delta
// an outward fade (cooling). Zero deltas are never recorded.
type SocialLink struct {
	Target string
	Delta  float64
}

// SocialLinks holds the social link set of a document. The strengthened
// and cooled classifications are derived from the sign of each delta,
// never stored independently.
type SocialLinks struct {
	Links []SocialLink
}

// Strengthened returns the targets whose relationship deepened
// (inward fade), in stored order.
func (s SocialLinks) Strengthened() []string {
	var out []string
	for _, l := range s.Links {
		if l.Delta > 0 {
			out = append(out, l.Target)
		}
	}
	return out
}

// Cooled returns the targets whose relationship cooled (outward fade),
// in stored order.
func (s SocialLinks) Cooled() []string {
	var out []string
	for _, l := range s.Links {
		if l.Delta < 0 {
			out = append(out, l.Target)
		}
	}
	return out
}

// Document is one day's archived conversation record. Content, Hash and
// PrevHash are immutable once the document is created; only the link
// fields may be amended by later rollups.
type Document struct {
	// Date is the calendar-date key (YYYY-MM-DD), unique within a store.
	Date string

	// Content is the full concatenated text for the day.
	Content string

	// Hash is the hex SHA-256 of PrevHash + Content.
	Hash string

	// PrevHash is the predecessor's Hash, empty for the genesis document.
	PrevHash string

	// Metadata is caller-supplied and opaque to the engine.
	Metadata map[string]any

	// Temporal, Semantic and Social form the honeycomb link structure.
	Temporal TemporalLinks
	Semantic []SemanticNeighbor
	Social   SocialLinks

	// SimilarityScore is set on documents returned from a search call.
	// It is transient and never persisted.
	SimilarityScore *float64
}

// Neighbor returns the semantic link to target, if present.
func (d *Document) Neighbor(target string) (SemanticNeighbor, bool) {
	for _, n := range d.Semantic {
		if n.Target == target {
			return n, true
		}
	}
	return SemanticNeighbor{}, false
}

// AttachNeighbor inserts or updates the semantic link to target with the
// given score, keeping the list sorted descending by score (ties by
// ascending target date) and capped at topK entries. When the cap is
// exceeded the lowest-scoring entry is evicted, ties broken by evicting
// the earliest target date. Returns the evicted target, or "" if nothing
// was evicted. The evicted target may be the one just attached, in which
// case the link does not form.
func (d *Document) AttachNeighbor(target string, score float64, topK int) string {
	score = RoundScore(score)
	d.RemoveNeighbor(target)
	d.Semantic = append(d.Semantic, SemanticNeighbor{Target: target, Score: score})
	sort.SliceStable(d.Semantic, func(i, j int) bool {
		if d.Semantic[i].Score != d.Semantic[j].Score {
			return d.Semantic[i].Score > d.Semantic[j].Score
		}
		return d.Semantic[i].Target < d.Semantic[j].Target
	})
	if topK <= 0 || len(d.Semantic) <= topK {
		return ""
	}

	// Deterministic eviction: lowest score first, earliest date on ties.
	evict := 0
	for i := 1; i < len(d.Semantic); i++ {
		n, low := d.Semantic[i], d.Semantic[evict]
		if n.Score < low.Score || (n.Score == low.Score && n.Target < low.Target) {
			evict = i
		}
	}
	evicted := d.Semantic[evict].Target
	d.Semantic = append(d.Semantic[:evict], d.Semantic[evict+1:]...)
	return evicted
}

// RemoveNeighbor drops the semantic link to target. Reports whether a
// link was removed.
func (d *Document) RemoveNeighbor(target string) bool {
	for i, n := range d.Semantic {
		if n.Target == target {
			d.Semantic = append(d.Semantic[:i], d.Semantic[i+1:]...)
			return true
		}
	}
	return false
}

// SetSocialLink records the relationship delta against target, replacing
// any previous entry for the same target so recomputation never
// duplicates a pair. Zero deltas remove the entry instead. Links are
// kept sorted by ascending target date for stable serialization.
func (d *Document) SetSocialLink(target string, delta float64) {
	delta = RoundScore(delta)
	for i, l := range d.Social.Links {
		if l.Target == target {
			if delta == 0 {
				d.Social.Links = append(d.Social.Links[:i], d.Social.Links[i+1:]...)
			} else {
				d.Social.Links[i].Delta = delta
			}
			return
		}
	}
	if delta == 0 {
		return
	}
	d.Social.Links = append(d.Social.Links, SocialLink{Target: target, Delta: delta})
	sort.Slice(d.Social.Links, func(i, j int) bool {
		return d.Social.Links[i].Target < d.Social.Links[j].Target
	})
}

// ClearLinks resets all three link sets. Used by full-corpus rebuild.
func (d *Document) ClearLinks() {
	d.Temporal = TemporalLinks{}
	d.Semantic = nil
	d.Social = SocialLinks{}
}
