// Package router drives one invocation through the full pipeline: persona
// resolution, search-intent classification, optional snippet retrieval,
// prompt composition, and the final completion call.
package router

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cyberstar-dev/soudan-bot/ai"
	"github.com/cyberstar-dev/soudan-bot/database"
	"github.com/cyberstar-dev/soudan-bot/logging"
	"github.com/cyberstar-dev/soudan-bot/metrics"
	"github.com/cyberstar-dev/soudan-bot/persona"
	"github.com/cyberstar-dev/soudan-bot/serpapi"
	"github.com/cyberstar-dev/soudan-bot/types"
	"github.com/google/uuid"
)

// Canned user-facing messages.
const (
	GreetingMessage    = "こんにちは。ご相談やご依頼があれば、メッセージに続けてどうぞ。"
	NoResultsMessage   = "🔍 検索結果が見つかりませんでした。"
	SearchAnswerPrefix = "📄 要約回答：\n"
	SummaryPrefix      = "📋 要約：\n"
	NoLogsMessage      = "⚠️ 指定された期間内のログが見つかりませんでした。"
)

// ErrNoLogs means a summarize request matched no transcript entries. Like
// an empty search, it is informational rather than a failure.
var ErrNoLogs = errors.New("no transcript entries in range")

// Kind tags what produced a reply, mostly for tests and labeling.
type Kind string

const (
	KindGreeting  Kind = "greeting"
	KindPersona   Kind = "persona"
	KindSearch    Kind = "search"
	KindNoResults Kind = "no_results"
)

// Request is one inbound user invocation.
type Request struct {
	ChannelName string
	AuthorName  string
	Text        string
}

// Reply is the text to render back to the originating channel.
type Reply struct {
	Kind      Kind
	Text      string
	PersonaID string
}

// Searcher is the retrieval dependency; the serpapi client implements it.
type Searcher interface {
	Search(ctx context.Context, query string, count int) ([]serpapi.Result, error)
}

// SummarySource exposes the rolling log summary the composer appends to
// persona prompts. An empty string means no summary yet.
type SummarySource interface {
	Current() string
}

// Options tune routing behavior.
type Options struct {
	SearchResultCount int
	LLMTimeout        time.Duration
	SearchTimeout     time.Duration

	// ClassifierFailOpen degrades a classifier transport failure to
	// "no search needed" instead of failing the request. Off by default,
	// matching the original behavior.
	ClassifierFailOpen bool
}

// Router orchestrates one invocation at a time; independent invocations may
// run concurrently and share only the transcript store and read-only
// registry/summary.
type Router struct {
	registry   *persona.Registry
	chatter    ai.Chatter
	searcher   Searcher
	transcript database.TranscriptStore
	summary    SummarySource
	opts       Options
	logger     *logging.Logger
}

// New wires a router. summary may be nil when the rolling summary job is
// disabled.
func New(registry *persona.Registry, chatter ai.Chatter, searcher Searcher,
	transcript database.TranscriptStore, summary SummarySource,
	opts Options, logger *logging.Logger) *Router {
	if logger == nil {
		logger = logging.Default()
	}
	if opts.SearchResultCount <= 0 {
		opts.SearchResultCount = 30
	}
	if opts.LLMTimeout <= 0 {
		opts.LLMTimeout = 30 * time.Second
	}
	if opts.SearchTimeout <= 0 {
		opts.SearchTimeout = 15 * time.Second
	}
	return &Router{
		registry:   registry,
		chatter:    chatter,
		searcher:   searcher,
		transcript: transcript,
		summary:    summary,
		opts:       opts,
		logger:     logger,
	}
}

func (r *Router) contextBlock() string {
	if r.summary == nil {
		return ""
	}
	return r.summary.Current()
}

// record appends the inbound message to the transcript before any network
// call. Append failures are logged and counted, never fatal.
func (r *Router) record(ctx context.Context, req Request) {
	entry := types.TranscriptEntry{
		Timestamp:   time.Now().UTC(),
		ChannelName: req.ChannelName,
		AuthorName:  req.AuthorName,
		Content:     req.Text,
	}
	if err := r.transcript.AppendTranscript(ctx, entry); err != nil {
		metrics.TranscriptWriteFailures.Add(1)
		r.logger.Error("failed to append transcript", "error", err.Error(), "channel", req.ChannelName)
	}
}

// Handle routes one invocation to a reply. The pipeline within one request
// is strictly sequential: resolve, classify, search, compose, complete.
func (r *Router) Handle(ctx context.Context, req Request) (Reply, error) {
	requestID := uuid.New()
	text := strings.TrimSpace(req.Text)

	if text == "" {
		return Reply{Kind: KindGreeting, Text: GreetingMessage}, nil
	}

	r.record(ctx, req)

	tpl, cleaned := r.registry.Resolve(text)
	metrics.PersonaSelections.WithLabelValues(tpl.ID).Inc()
	r.logger.Debug("persona resolved", "requestID", requestID, "persona", tpl.ID)

	// An explicit persona selection always overrides search routing.
	if !tpl.IsDefault() {
		return r.respondWithPersona(ctx, tpl, cleaned, requestID)
	}

	needsSearch, err := r.classify(ctx, cleaned, requestID)
	if err != nil {
		return Reply{}, err
	}
	if !needsSearch {
		return r.respondWithPersona(ctx, tpl, cleaned, requestID)
	}
	return r.respondFromSearch(ctx, cleaned, requestID)
}

// HandleSearch skips the classifier and forces the search path. It backs
// the explicit web-search command.
func (r *Router) HandleSearch(ctx context.Context, req Request) (Reply, error) {
	requestID := uuid.New()
	query := strings.TrimSpace(req.Text)
	if query == "" {
		return Reply{Kind: KindGreeting, Text: GreetingMessage}, nil
	}
	r.record(ctx, req)
	return r.respondFromSearch(ctx, query, requestID)
}

func (r *Router) classify(ctx context.Context, text string, requestID uuid.UUID) (bool, error) {
	cctx, cancel := context.WithTimeout(ctx, r.opts.LLMTimeout)
	defer cancel()

	needsSearch, err := r.chatter.ClassifySearchIntent(cctx, text)
	if err != nil {
		metrics.ClassifierVerdicts.WithLabelValues("error").Inc()
		if r.opts.ClassifierFailOpen {
			r.logger.Warn("classifier failed, assuming no search needed", "error", err.Error(), "requestID", requestID)
			return false, nil
		}
		return false, fmt.Errorf("classifying search intent: %w", err)
	}
	if needsSearch {
		metrics.ClassifierVerdicts.WithLabelValues("search").Inc()
	} else {
		metrics.ClassifierVerdicts.WithLabelValues("direct").Inc()
	}
	return needsSearch, nil
}

func (r *Router) respondWithPersona(ctx context.Context, tpl persona.Template, text string, requestID uuid.UUID) (Reply, error) {
	cctx, cancel := context.WithTimeout(ctx, r.opts.LLMTimeout)
	defer cancel()

	resp, err := r.chatter.RespondWithPersona(cctx, tpl, text, r.contextBlock())
	if err != nil {
		return Reply{}, fmt.Errorf("persona completion: %w", err)
	}
	r.logger.Debug("persona reply generated", "requestID", requestID, "persona", tpl.ID, "length", len(resp))
	return Reply{Kind: KindPersona, Text: resp, PersonaID: tpl.ID}, nil
}

func (r *Router) respondFromSearch(ctx context.Context, query string, requestID uuid.UUID) (Reply, error) {
	sctx, cancel := context.WithTimeout(ctx, r.opts.SearchTimeout)
	defer cancel()

	results, err := r.searcher.Search(sctx, query, r.opts.SearchResultCount)
	if errors.Is(err, serpapi.ErrNoResults) {
		metrics.WebSearchNoResults.Add(1)
		r.logger.Info("search returned nothing usable", "requestID", requestID, "query", query)
		return Reply{Kind: KindNoResults, Text: NoResultsMessage}, nil
	}
	if err != nil {
		metrics.WebSearchFail.Add(1)
		return Reply{}, fmt.Errorf("web search: %w", err)
	}
	metrics.WebSearchSuccess.Add(1)

	cctx, cancel := context.WithTimeout(ctx, r.opts.LLMTimeout)
	defer cancel()

	answer, err := r.chatter.AnswerFromSearch(cctx, query, results)
	if err != nil {
		return Reply{}, fmt.Errorf("search-mode completion: %w", err)
	}
	r.logger.Debug("search reply generated", "requestID", requestID, "results", len(results))
	return Reply{Kind: KindSearch, Text: SearchAnswerPrefix + answer}, nil
}

// SummarizeRange digests the transcript between two instants. An empty
// range yields ErrNoLogs.
func (r *Router) SummarizeRange(ctx context.Context, from, to time.Time) (string, error) {
	entries, err := r.transcript.TranscriptBetween(ctx, from, to)
	if err != nil {
		return "", fmt.Errorf("reading transcript: %w", err)
	}
	if len(entries) == 0 {
		return "", ErrNoLogs
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, e.Line())
	}

	cctx, cancel := context.WithTimeout(ctx, r.opts.LLMTimeout)
	defer cancel()

	summary, err := r.chatter.Summarize(cctx, strings.Join(lines, "\n"))
	if err != nil {
		return "", fmt.Errorf("summarizing transcript: %w", err)
	}
	return summary, nil
}
