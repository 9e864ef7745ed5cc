package database

import (
	"context"
	"time"

	"github.com/cyberstar-dev/soudan-bot/types"
	"github.com/pkg/errors"
)

// TranscriptWriter appends observed messages. The transcript is strictly
// append-only: there is no update or delete path anywhere in this package.
type TranscriptWriter interface {
	AppendTranscript(ctx context.Context, entry types.TranscriptEntry) error
}

// TranscriptReader reads entries back for summarization.
type TranscriptReader interface {
	TranscriptBetween(ctx context.Context, from, to time.Time) ([]types.TranscriptEntry, error)
	TranscriptSince(ctx context.Context, t time.Time) ([]types.TranscriptEntry, error)
}

// TranscriptStore combines both sides.
type TranscriptStore interface {
	TranscriptWriter
	TranscriptReader
}

var _ TranscriptStore = (*Postgres)(nil)

// AppendTranscript inserts one observed message.
func (p *Postgres) AppendTranscript(ctx context.Context, entry types.TranscriptEntry) error {
	query := "INSERT INTO transcript (created_at, channel_name, author_name, content) VALUES (:created_at, :channel_name, :author_name, :content)"
	_, err := p.connections.NamedExecContext(ctx, query, entry)
	if err != nil {
		return errors.Wrap(err, "error appending transcript entry")
	}
	return nil
}

// TranscriptBetween returns entries with from <= created_at <= to, oldest
// first.
func (p *Postgres) TranscriptBetween(ctx context.Context, from, to time.Time) ([]types.TranscriptEntry, error) {
	var entries []types.TranscriptEntry
	query := "SELECT created_at, channel_name, author_name, content FROM transcript WHERE created_at >= $1 AND created_at <= $2 ORDER BY created_at ASC"
	err := p.connections.SelectContext(ctx, &entries, query, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "error reading transcript range")
	}
	return entries, nil
}

// TranscriptSince returns entries newer than t, oldest first.
func (p *Postgres) TranscriptSince(ctx context.Context, t time.Time) ([]types.TranscriptEntry, error) {
	var entries []types.TranscriptEntry
	query := "SELECT created_at, channel_name, author_name, content FROM transcript WHERE created_at > $1 ORDER BY created_at ASC"
	err := p.connections.SelectContext(ctx, &entries, query, t)
	if err != nil {
		return nil, errors.Wrap(err, "error reading transcript since")
	}
	return entries, nil
}
