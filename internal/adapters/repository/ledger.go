package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/okian/squadcraft/internal/domain/model"
)

// Ledger is the append-only log of applied rating changes. When a path is
// set, every entry is also appended to a JSON-lines file.
type Ledger struct {
	mu      sync.RWMutex
	entries []model.RatingChange
	path    string
}

// NewLedger creates a ledger. An empty path keeps it in memory only.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Append records changes. Entries are never modified afterwards.
func (l *Ledger) Append(_ context.Context, changes ...model.RatingChange) error {
	if len(changes) == 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.path != "" {
		if err := appendLines(l.path, changes); err != nil {
			return fmt.Errorf("ledger append: %w", err)
		}
	}
	l.entries = append(l.entries, changes...)
	return nil
}

// List returns applied changes in append order, filtered to one player when
// playerID is not empty.
func (l *Ledger) List(_ context.Context, playerID string) []model.RatingChange {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]model.RatingChange, 0, len(l.entries))
	for _, c := range l.entries {
		if playerID == "" || c.PlayerID == playerID {
			out = append(out, c)
		}
	}
	return out
}

// Len is the number of recorded changes.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

func appendLines(path string, changes []model.RatingChange) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()

	var buf []byte
	for _, c := range changes {
		b, err := json.Marshal(c)
		if err != nil {
			return err
		}
		buf = append(buf, b...)
		buf = append(buf, '\n')
	}
	_, err = f.Write(buf)
	return err
}
