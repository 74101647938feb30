package domain

import "time"

// HistoryEntry represents a record of an executed API request
type HistoryEntry struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Service   ServiceKind   `json:"service"`
	Method    string        `json:"method"`
	Path      string        `json:"path"`
	Request   string        `json:"request,omitempty"`  // JSON request body
	Response  string        `json:"response,omitempty"` // Raw response body (for reference)
	Duration  time.Duration `json:"duration"`
	Status    string        `json:"status"`          // "success" or "error"
	Error     string        `json:"error,omitempty"` // Error message if failed
}
