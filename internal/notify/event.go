package notify

import "time"

// Event announces an enriched document.
type Event struct {
	RunID      string         `json:"run_id"`
	TSNumber   string         `json:"ts_number"`
	Source     string         `json:"source"`
	Output     string         `json:"output"`
	References int            `json:"references"`
	Edits      map[string]int `json:"edits,omitempty"` // per stage
	DurationMS int64          `json:"duration_ms"`
	Timestamp  time.Time      `json:"timestamp"`
}
