// Package history persists completed transcriptions in a local SQLite database.
package history

import "time"

// Entry is one completed transcription run.
type Entry struct {
	ID         string    `json:"id"`
	Filename   string    `json:"filename"`
	Method     string    `json:"method"`
	Model      string    `json:"model"`
	Format     string    `json:"format"`
	Timestamps bool      `json:"timestamps"`
	Text       string    `json:"text"`
	DurationMS int64     `json:"durationMs"`
	SizeBytes  int64     `json:"sizeBytes"`
	CreatedAt  time.Time `json:"createdAt"`
}
