package chainfile

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/comb-labs/comb-cli/internal/core/domain"
	"github.com/comb-labs/comb-cli/internal/core/ports/driven"
)

// Ensure StagingLog implements the interface.
var _ driven.StagingLog = (*StagingLog)(nil)

// StagingLog is the file-backed daily staging buffer. One JSONL file
// per date under <root>/staging; every append writes one self-delimited
// record and flushes it, so a crash between appends never corrupts a
// previously written entry.
type StagingLog struct {
	dir string
}

// NewStagingLog creates (if needed) and opens the staging directory
// under the store root.
func NewStagingLog(root string) (*StagingLog, error) {
	dir := filepath.Join(root, "staging")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create staging dir: %w", err)
	}
	return &StagingLog{dir: dir}, nil
}

func (s *StagingLog) path(date string) string {
	return filepath.Join(s.dir, date+".jsonl")
}

// Append adds one entry to the date's staging buffer.
func (s *StagingLog) Append(_ context.Context, date, text string, metadata map[string]any) error {
	if !domain.ValidDate(date) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidDate, date)
	}

	entry := domain.StagedEntry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Text:      text,
		ByteSize:  len(text),
		EstTokens: domain.EstimateTokens(text),
		Metadata:  metadata,
	}
	line, err := encodeEntry(entry)
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}

	f, err := os.OpenFile(s.path(date), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open staging %s: %w", date, err)
	}
	if _, err := f.Write(line); err != nil {
		f.Close()
		return fmt.Errorf("append staging %s: %w", date, err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("flush staging %s: %w", date, err)
	}
	return f.Close()
}

// Read returns the date's entries in append order. No entries is an
// empty slice, not an error.
func (s *StagingLog) Read(_ context.Context, date string) ([]domain.StagedEntry, error) {
	data, err := os.ReadFile(s.path(date))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read staging %s: %w", date, err)
	}

	var entries []domain.StagedEntry
	for i, line := range bytes.Split(data, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		entry, err := decodeEntry(line)
		if err != nil {
			return nil, fmt.Errorf("staging %s line %d: %w", date, i+1, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Clear removes the date's staging buffer.
func (s *StagingLog) Clear(_ context.Context, date string) error {
	if err := os.Remove(s.path(date)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clear staging %s: %w", date, err)
	}
	return nil
}

// Dates returns the dates with staged entries, ascending.
func (s *StagingLog) Dates(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read staging dir: %w", err)
	}
	var dates []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".jsonl") {
			continue
		}
		date := strings.TrimSuffix(name, ".jsonl")
		if domain.ValidDate(date) {
			dates = append(dates, date)
		}
	}
	sort.Strings(dates)
	return dates, nil
}
