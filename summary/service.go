// Package summary runs the scheduled transcript digestion job and holds
// the rolling summary the prompt composer reads.
package summary

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/cyberstar-dev/soudan-bot/ai"
	"github.com/cyberstar-dev/soudan-bot/database"
	"github.com/cyberstar-dev/soudan-bot/logging"
	"github.com/cyberstar-dev/soudan-bot/metrics"
)

// Rolling is the shared holder for the latest log summary. Readers and the
// job goroutine may touch it concurrently.
type Rolling struct {
	mu        sync.RWMutex
	text      string
	updatedAt time.Time
}

// Current returns the latest summary, or "" when none has been produced.
func (r *Rolling) Current() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.text
}

// UpdatedAt returns when the summary was last refreshed.
func (r *Rolling) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

func (r *Rolling) set(text string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.text = text
	r.updatedAt = at
}

// Service periodically digests new transcript entries into the rolling
// summary. A failing or panicking run is contained and logged; the next
// tick runs normally.
type Service struct {
	rolling  *Rolling
	reader   database.TranscriptReader
	chatter  ai.Chatter
	interval time.Duration
	lastSeen time.Time
	logger   *logging.Logger
}

// NewService creates the job. interval must be positive.
func NewService(reader database.TranscriptReader, chatter ai.Chatter, interval time.Duration, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		rolling:  &Rolling{},
		reader:   reader,
		chatter:  chatter,
		interval: interval,
		lastSeen: time.Now().UTC(),
		logger:   logger,
	}
}

// Rolling exposes the holder for the router/composer.
func (s *Service) Rolling() *Rolling {
	return s.rolling
}

// Start runs the digestion loop until the context is canceled.
func (s *Service) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("summary service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.safeRun(ctx)
		}
	}
}

// safeRun contains panics so a bad run cannot take the bot down with it.
func (s *Service) safeRun(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.SummaryJobFailures.Add(1)
			s.logger.Error("summary job panicked", "panic", rec)
		}
	}()
	s.runOnce(ctx)
}

func (s *Service) runOnce(ctx context.Context) {
	metrics.SummaryJobRuns.Add(1)

	entries, err := s.reader.TranscriptSince(ctx, s.lastSeen)
	if err != nil {
		metrics.SummaryJobFailures.Add(1)
		s.logger.Error("summary job failed to read transcript", "error", err.Error())
		return
	}
	if len(entries) == 0 {
		s.logger.Debug("summary job found no new entries")
		return
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}

	text, err := s.chatter.Summarize(ctx, strings.Join(lines, "\n"))
	if err != nil {
		metrics.SummaryJobFailures.Add(1)
		s.logger.Error("summary job failed to summarize", "error", err.Error(), "entries", len(entries))
		return
	}

	now := time.Now().UTC()
	s.lastSeen = entries[len(entries)-1].Timestamp
	s.rolling.set(text, now)
	s.logger.Info("rolling summary refreshed", "entries", len(entries), "length", len(text))
}
