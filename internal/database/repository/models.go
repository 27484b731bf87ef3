package repository

import "time"

// ProgressEntry represents a progress_kv row.
type ProgressEntry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
