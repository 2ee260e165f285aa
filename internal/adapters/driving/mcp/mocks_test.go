package mcp

import (
	"context"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driving"
)

// mockStore is a mock implementation of driving.Store.
type mockStore struct {
	doc    *domain.Document
	docs   []*domain.Document
	report *domain.VerifyReport
	stats  *driving.Stats
	recall string
	err    error

	stagedText string
	stagedDate string
}

func (m *mockStore) Stage(_ context.Context, text string, _ map[string]any, date string) error {
	m.stagedText = text
	m.stagedDate = date
	return m.err
}

func (m *mockStore) Rollup(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockStore) Search(_ context.Context, _ string, _ int) ([]*domain.Document, error) {
	return m.docs, m.err
}

func (m *mockStore) Get(_ context.Context, _ string) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockStore) Latest(_ context.Context) (*domain.Document, error) {
	return m.doc, m.err
}

func (m *mockStore) Walk(_ context.Context, _ string, _ driving.WalkDirection, _ int) ([]*domain.Document, error) {
	return m.docs, m.err
}

func (m *mockStore) Verify(_ context.Context, _ string) (*domain.VerifyReport, error) {
	return m.report, m.err
}

func (m *mockStore) Rebuild(_ context.Context) error {
	return m.err
}

func (m *mockStore) Stats(_ context.Context) (*driving.Stats, error) {
	return m.stats, m.err
}

func (m *mockStore) Recall(_ context.Context, _ int, _ bool) (string, error) {
	return m.recall, m.err
}

func (m *mockStore) Blink(_ context.Context, _ string, _ bool) (string, error) {
	return m.recall, m.err
}
