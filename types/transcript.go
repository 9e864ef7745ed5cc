package types

import "time"

// TranscriptEntry is one observed channel message. Entries are append-only:
// they are written once when the message arrives and never mutated.
type TranscriptEntry struct {
	Timestamp   time.Time `db:"created_at"`
	ChannelName string    `db:"channel_name"`
	AuthorName  string    `db:"author_name"`
	Content     string    `db:"content"`
}

// Line renders the entry the way the summarizer consumes it.
func (e TranscriptEntry) Line() string {
	return "[" + e.Timestamp.UTC().Format(time.RFC3339) + "] " + e.ChannelName + " | " + e.AuthorName + ": " + e.Content
}
