package chainfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

func TestDocumentRecordRoundTrip(t *testing.T) {
	doc := &domain.Document{
		Date:     "2024-01-02",
		Content:  "the day's conversation",
		Hash:     "aa11",
		PrevHash: "bb22",
		Metadata: map[string]any{"entry_count": float64(2)},
		Temporal: domain.TemporalLinks{Prev: "2024-01-01", Next: "2024-01-03"},
		Semantic: []domain.SemanticNeighbor{
			{Target: "2024-01-01", Score: 0.5},
			{Target: "2024-01-03", Score: 0.25},
		},
	}
	doc.Social.Links = []domain.SocialLink{
		{Target: "2024-01-01", Delta: 0.3},
		{Target: "2024-01-03", Delta: -0.2},
	}

	data, err := encodeDocument(doc)
	require.NoError(t, err)

	decoded, err := decodeDocument(data)
	require.NoError(t, err)
	assert.Equal(t, doc.Date, decoded.Date)
	assert.Equal(t, doc.Content, decoded.Content)
	assert.Equal(t, doc.Hash, decoded.Hash)
	assert.Equal(t, doc.PrevHash, decoded.PrevHash)
	assert.Equal(t, doc.Metadata, decoded.Metadata)
	assert.Equal(t, doc.Temporal, decoded.Temporal)
	assert.Equal(t, doc.Semantic, decoded.Semantic)
	assert.Equal(t, doc.Social.Links, decoded.Social.Links)

	// Encoding the decoded form reproduces the record byte for byte.
	again, err := encodeDocument(decoded)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestEncodeDocumentDerivesSocialClassification(t *testing.T) {
	doc := &domain.Document{Date: "2024-01-01", Content: "x", Hash: "h"}
	doc.Social.Links = []domain.SocialLink{
		{Target: "2024-01-02", Delta: 0.4},
		{Target: "2024-01-03", Delta: -0.1},
	}

	data, err := encodeDocument(doc)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, `"strengthened": [
      "2024-01-02"
    ]`)
	assert.Contains(t, text, `"cooled": [
      "2024-01-03"
    ]`)
}

func TestEncodeGenesisOmitsChainFields(t *testing.T) {
	doc := &domain.Document{Date: "2024-01-01", Content: "first", Hash: "h"}

	data, err := encodeDocument(doc)
	require.NoError(t, err)

	text := string(data)
	assert.NotContains(t, text, "prev_hash")
	assert.NotContains(t, text, `"prev"`)
	assert.NotContains(t, text, `"next"`)
}

func TestDecodeDocumentMalformed(t *testing.T) {
	_, err := decodeDocument([]byte("{not json"))
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	_, err = decodeDocument([]byte(`{"content": "no date or hash"}`))
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)
}
