package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shhac/cogview/internal/domain"
)

// prependHistory puts entry first and drops anything past maxHistory.
func prependHistory(history []domain.HistoryEntry, entry domain.HistoryEntry) []domain.HistoryEntry {
	history = append([]domain.HistoryEntry{entry}, history...)
	if len(history) > maxHistory {
		history = history[:maxHistory]
	}
	return history
}

// limitHistory returns a copy of the first limit entries; limit <= 0 means all.
func limitHistory(history []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	n := len(history)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]domain.HistoryEntry, n)
	copy(out, history)
	return out
}

// AddHistoryEntry records a completed request, most recent first.
func (r *FileRepository) AddHistoryEntry(entry domain.HistoryEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.loadHistory()
	if err != nil {
		return err
	}
	if err := r.saveHistory(prependHistory(history, entry)); err != nil {
		return err
	}

	r.logger.Debug("saved history entry",
		slog.String("id", entry.ID),
		slog.String("service", string(entry.Service)),
		slog.String("status", entry.Status))
	return nil
}

// GetHistory returns up to limit entries, most recent first.
func (r *FileRepository) GetHistory(limit int) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history, err := r.loadHistory()
	if err != nil {
		return nil, err
	}
	return limitHistory(history, limit), nil
}

// ClearHistory removes history.json.
func (r *FileRepository) ClearHistory() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.removeFile(historyFile); err != nil {
		return err
	}
	r.logger.Debug("cleared history")
	return nil
}

func (r *FileRepository) loadHistory() ([]domain.HistoryEntry, error) {
	data, err := r.readFile(historyFile)
	if err != nil || data == nil {
		return nil, err
	}
	var history []domain.HistoryEntry
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("decode %s: %w", historyFile, err)
	}
	return history, nil
}

func (r *FileRepository) saveHistory(history []domain.HistoryEntry) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", historyFile, err)
	}
	return r.writeFile(historyFile, data)
}
