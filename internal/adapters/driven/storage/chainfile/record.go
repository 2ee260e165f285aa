package chainfile

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// documentRecord is the persisted form of a domain.Document. The
// strengthened/cooled arrays are derived from the link deltas on every
// write; they are never read back as independent facts.
type documentRecord struct {
	Date     string         `json:"date"`
	Content  string         `json:"content"`
	Hash     string         `json:"hash"`
	PrevHash string         `json:"prev_hash,omitempty"`
	Metadata map[string]any `json:"metadata"`
	Temporal temporalRecord `json:"temporal"`
	Semantic semanticRecord `json:"semantic"`
	Social   socialRecord   `json:"social"`
}

type temporalRecord struct {
	Prev string `json:"prev,omitempty"`
	Next string `json:"next,omitempty"`
}

type semanticRecord struct {
	Neighbors []neighborRecord `json:"neighbors"`
}

type neighborRecord struct {
	Target string  `json:"target"`
	Score  float64 `json:"score"`
}

type socialRecord struct {
	Links        []socialLinkRecord `json:"links"`
	Strengthened []string           `json:"strengthened"`
	Cooled       []string           `json:"cooled"`
}

type socialLinkRecord struct {
	Target string  `json:"target"`
	Delta  float64 `json:"delta"`
}

// encodeDocument renders a document as its canonical persisted record:
// pretty-printed JSON with a trailing newline. Encoding the decoded
// form of a record reproduces it byte for byte.
func encodeDocument(doc *domain.Document) ([]byte, error) {
	rec := documentRecord{
		Date:     doc.Date,
		Content:  doc.Content,
		Hash:     doc.Hash,
		PrevHash: doc.PrevHash,
		Metadata: doc.Metadata,
		Temporal: temporalRecord{Prev: doc.Temporal.Prev, Next: doc.Temporal.Next},
		Semantic: semanticRecord{Neighbors: make([]neighborRecord, 0, len(doc.Semantic))},
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	for _, n := range doc.Semantic {
		rec.Semantic.Neighbors = append(rec.Semantic.Neighbors, neighborRecord{Target: n.Target, Score: n.Score})
	}
	rec.Social.Links = make([]socialLinkRecord, 0, len(doc.Social.Links))
	for _, l := range doc.Social.Links {
		rec.Social.Links = append(rec.Social.Links, socialLinkRecord{Target: l.Target, Delta: l.Delta})
	}
	rec.Social.Strengthened = doc.Social.Strengthened()
	if rec.Social.Strengthened == nil {
		rec.Social.Strengthened = []string{}
	}
	rec.Social.Cooled = doc.Social.Cooled()
	if rec.Social.Cooled == nil {
		rec.Social.Cooled = []string{}
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// decodeDocument reconstructs a document from its persisted record.
// Any parse failure is fatal for the record and surfaces as
// domain.ErrMalformedRecord; data is never skipped or guessed at.
func decodeDocument(data []byte) (*domain.Document, error) {
	var rec documentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	if rec.Date == "" || rec.Hash == "" {
		return nil, fmt.Errorf("%w: missing date or hash", domain.ErrMalformedRecord)
	}

	doc := &domain.Document{
		Date:     rec.Date,
		Content:  rec.Content,
		Hash:     rec.Hash,
		PrevHash: rec.PrevHash,
		Metadata: rec.Metadata,
		Temporal: domain.TemporalLinks{Prev: rec.Temporal.Prev, Next: rec.Temporal.Next},
	}
	if doc.Metadata == nil {
		doc.Metadata = map[string]any{}
	}
	for _, n := range rec.Semantic.Neighbors {
		doc.Semantic = append(doc.Semantic, domain.SemanticNeighbor{Target: n.Target, Score: n.Score})
	}
	for _, l := range rec.Social.Links {
		doc.Social.Links = append(doc.Social.Links, domain.SocialLink{Target: l.Target, Delta: l.Delta})
	}
	return doc, nil
}

// stagingRecord is one line of a staging file.
type stagingRecord struct {
	ID        string         `json:"id"`
	Timestamp time.Time      `json:"timestamp"`
	Text      string         `json:"text"`
	ByteSize  int            `json:"byte_size"`
	EstTokens int            `json:"est_tokens"`
	Metadata  map[string]any `json:"metadata"`
}

func encodeEntry(entry domain.StagedEntry) ([]byte, error) {
	rec := stagingRecord{
		ID:        entry.ID,
		Timestamp: entry.Timestamp,
		Text:      entry.Text,
		ByteSize:  entry.ByteSize,
		EstTokens: entry.EstTokens,
		Metadata:  entry.Metadata,
	}
	if rec.Metadata == nil {
		rec.Metadata = map[string]any{}
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func decodeEntry(line []byte) (domain.StagedEntry, error) {
	var rec stagingRecord
	if err := json.Unmarshal(line, &rec); err != nil {
		return domain.StagedEntry{}, fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}
	entry := domain.StagedEntry{
		ID:        rec.ID,
		Timestamp: rec.Timestamp,
		Text:      rec.Text,
		ByteSize:  rec.ByteSize,
		EstTokens: rec.EstTokens,
		Metadata:  rec.Metadata,
	}
	if entry.Metadata == nil {
		entry.Metadata = map[string]any{}
	}
	return entry, nil
}
