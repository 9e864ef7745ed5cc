package summary

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
	"github.com/cyberstar-dev/soudan-bot/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReader struct {
	entries []types.TranscriptEntry
	err     error
	since   time.Time
}

func (s *stubReader) TranscriptBetween(_ context.Context, _, _ time.Time) ([]types.TranscriptEntry, error) {
	return s.entries, s.err
}

func (s *stubReader) TranscriptSince(_ context.Context, t time.Time) ([]types.TranscriptEntry, error) {
	s.since = t
	return s.entries, s.err
}

type stubChatter struct {
	summary string
	err     error
	panics  bool
	calls   int
}

func (s *stubChatter) RespondWithPersona(context.Context, persona.Template, string, string) (string, error) {
	return "", nil
}

func (s *stubChatter) ClassifySearchIntent(context.Context, string) (bool, error) {
	return false, nil
}

func (s *stubChatter) AnswerFromSearch(context.Context, string, []serpapi.Result) (string, error) {
	return "", nil
}

func (s *stubChatter) Summarize(_ context.Context, _ string) (string, error) {
	s.calls++
	if s.panics {
		panic("summarizer exploded")
	}
	return s.summary, s.err
}

func TestRunOnceRefreshesRollingSummary(t *testing.T) {
	now := time.Now().UTC()
	reader := &stubReader{entries: []types.TranscriptEntry{
		{Timestamp: now.Add(-2 * time.Minute), ChannelName: "general", AuthorName: "a", Content: "one"},
		{Timestamp: now.Add(-1 * time.Minute), ChannelName: "general", AuthorName: "b", Content: "two"},
	}}
	chatter := &stubChatter{summary: "短い要約"}
	svc := NewService(reader, chatter, time.Minute, nil)

	svc.runOnce(context.Background())

	assert.Equal(t, "短い要約", svc.Rolling().Current())
	assert.False(t, svc.Rolling().UpdatedAt().IsZero())
	// next run only reads entries after the newest one seen
	assert.Equal(t, now.Add(-1*time.Minute), svc.lastSeen)
}

func TestRunOnceNoNewEntries(t *testing.T) {
	svc := NewService(&stubReader{}, &stubChatter{}, time.Minute, nil)
	svc.runOnce(context.Background())
	assert.Empty(t, svc.Rolling().Current())
}

func TestRunOnceSummarizeFailureKeepsOldSummary(t *testing.T) {
	now := time.Now().UTC()
	reader := &stubReader{entries: []types.TranscriptEntry{
		{Timestamp: now, ChannelName: "general", AuthorName: "a", Content: "one"},
	}}
	chatter := &stubChatter{err: errors.New("llm down")}
	svc := NewService(reader, chatter, time.Minute, nil)
	svc.rolling.set("前回の要約", now.Add(-time.Hour))

	svc.runOnce(context.Background())

	assert.Equal(t, "前回の要約", svc.Rolling().Current())
}

func TestSafeRunContainsPanic(t *testing.T) {
	now := time.Now().UTC()
	reader := &stubReader{entries: []types.TranscriptEntry{
		{Timestamp: now, ChannelName: "general", AuthorName: "a", Content: "one"},
	}}
	chatter := &stubChatter{panics: true}
	svc := NewService(reader, chatter, time.Minute, nil)

	require.NotPanics(t, func() {
		svc.safeRun(context.Background())
	})
}

func TestStartStopsOnContextCancel(t *testing.T) {
	svc := NewService(&stubReader{}, &stubChatter{}, time.Hour, nil)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- svc.Start(ctx)
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Start did not stop on cancel")
	}
}
