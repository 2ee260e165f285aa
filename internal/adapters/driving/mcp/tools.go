package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/comb-labs/comb-cli/internal/core/domain"
)

// StageInput is the input schema for the stage tool.
type StageInput struct {
	Text string `json:"text" jsonschema:"the conversation dump to stage"`
	Date string `json:"date,omitempty" jsonschema:"staging date as YYYY-MM-DD (default today)"`
}

// StageOutput is the output schema for the stage tool.
type StageOutput struct {
	Staged    bool `json:"staged"`
	ByteSize  int  `json:"byte_size"`
	EstTokens int  `json:"est_tokens"`
}

// RollupInput is the input schema for the rollup tool.
type RollupInput struct {
	Date string `json:"date,omitempty" jsonschema:"rollup date as YYYY-MM-DD (default today)"`
}

// RollupOutput is the output schema for the rollup tool.
type RollupOutput struct {
	Archived      bool   `json:"archived"`
	Date          string `json:"date,omitempty"`
	Hash          string `json:"hash,omitempty"`
	SemanticLinks int    `json:"semantic_links"`
	SocialLinks   int    `json:"social_links"`
}

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query to find archived documents"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	Date    string  `json:"date"`
	Score   float64 `json:"score"`
	Content string  `json:"content"`
}

// RecallInput is the input schema for the recall tool.
type RecallInput struct {
	Limit         int   `json:"limit,omitempty" jsonschema:"archived documents to include (default 5)"`
	IncludeStaged *bool `json:"include_staged,omitempty" jsonschema:"include staged entries (default true)"`
}

// RecallOutput is the output schema for the recall tool.
type RecallOutput struct {
	Context string `json:"context"`
}

// BlinkInput is the input schema for the blink tool.
type BlinkInput struct {
	Text   string `json:"text" jsonschema:"the context flush to stage"`
	Rollup bool   `json:"rollup,omitempty" jsonschema:"roll up immediately after staging"`
}

// BlinkOutput is the output schema for the blink tool.
type BlinkOutput struct {
	Context string `json:"context"`
}

// VerifyInput is the input schema for the verify tool.
type VerifyInput struct {
	From string `json:"from,omitempty" jsonschema:"verify from this date forward (default genesis)"`
}

// VerifyOutput is the output schema for the verify tool.
type VerifyOutput struct {
	Valid      bool   `json:"valid"`
	FirstBreak string `json:"first_break,omitempty"`
	Checked    int    `json:"checked"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "stage",
		Description: "Stage a conversation dump for later rollup",
	}, s.handleStage)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "rollup",
		Description: "Roll staged entries into an immutable archived document",
	}, s.handleRollup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search archived documents by BM25-weighted similarity",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "recall",
		Description: "Reconstruct recent operational context",
	}, s.handleRecall)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "blink",
		Description: "Flush context for a restart and return the recall text",
	}, s.handleBlink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "verify",
		Description: "Verify hash-chain integrity",
	}, s.handleVerify)
}

// handleStage handles the stage tool invocation.
func (s *Server) handleStage(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input StageInput,
) (*mcp.CallToolResult, StageOutput, error) {
	if err := s.ports.Store.Stage(ctx, input.Text, nil, input.Date); err != nil {
		return nil, StageOutput{}, err
	}
	return nil, StageOutput{
		Staged:    true,
		ByteSize:  len(input.Text),
		EstTokens: domain.EstimateTokens(input.Text),
	}, nil
}

// handleRollup handles the rollup tool invocation.
func (s *Server) handleRollup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RollupInput,
) (*mcp.CallToolResult, RollupOutput, error) {
	doc, err := s.ports.Store.Rollup(ctx, input.Date)
	if err != nil {
		return nil, RollupOutput{}, err
	}
	if doc == nil {
		return nil, RollupOutput{Archived: false}, nil
	}
	return nil, RollupOutput{
		Archived:      true,
		Date:          doc.Date,
		Hash:          doc.Hash,
		SemanticLinks: len(doc.Semantic),
		SocialLinks:   len(doc.Social.Links),
	}, nil
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 10
	}

	docs, err := s.ports.Store.Search(ctx, input.Query, limit)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(docs)),
		Count:   len(docs),
	}
	for i, doc := range docs {
		score := 0.0
		if doc.SimilarityScore != nil {
			score = *doc.SimilarityScore
		}
		output.Results[i] = SearchResultOutput{
			Date:    doc.Date,
			Score:   score,
			Content: doc.Content,
		}
	}
	return nil, output, nil
}

// handleRecall handles the recall tool invocation.
func (s *Server) handleRecall(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RecallInput,
) (*mcp.CallToolResult, RecallOutput, error) {
	includeStaged := true
	if input.IncludeStaged != nil {
		includeStaged = *input.IncludeStaged
	}

	text, err := s.ports.Store.Recall(ctx, input.Limit, includeStaged)
	if err != nil {
		return nil, RecallOutput{}, err
	}
	return nil, RecallOutput{Context: text}, nil
}

// handleBlink handles the blink tool invocation.
func (s *Server) handleBlink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input BlinkInput,
) (*mcp.CallToolResult, BlinkOutput, error) {
	text, err := s.ports.Store.Blink(ctx, input.Text, input.Rollup)
	if err != nil {
		return nil, BlinkOutput{}, err
	}
	return nil, BlinkOutput{Context: text}, nil
}

// handleVerify handles the verify tool invocation.
func (s *Server) handleVerify(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input VerifyInput,
) (*mcp.CallToolResult, VerifyOutput, error) {
	report, err := s.ports.Store.Verify(ctx, input.From)
	if err != nil {
		return nil, VerifyOutput{}, err
	}
	return nil, VerifyOutput{
		Valid:      report.Valid,
		FirstBreak: report.FirstBreak,
		Checked:    report.Checked,
	}, nil
}
