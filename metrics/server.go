package metrics

import (
	"expvar"
	"net/http"
	_ "net/http/pprof"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Expvar counters
	DiscordMessageReceived  = expvar.NewInt("discord_message_received")
	DiscordMessageSent      = expvar.NewInt("discord_message_sent")
	SuccessfulLLMGen        = expvar.NewInt("successful_llm_gen_count")
	EmptyLLMResponse        = expvar.NewInt("empty_llm_response_count")
	FailedLLMGen            = expvar.NewInt("failed_llm_gen_count")
	WebSearchSuccess        = expvar.NewInt("web_search_success_count")
	WebSearchNoResults      = expvar.NewInt("web_search_no_results_count")
	WebSearchFail           = expvar.NewInt("web_search_fail_count")
	TranscriptWriteFailures = expvar.NewInt("transcript_write_failures")
	SummaryJobRuns          = expvar.NewInt("summary_job_runs")
	SummaryJobFailures      = expvar.NewInt("summary_job_failures")

	// Prometheus metrics with labels
	CommandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_total",
			Help: "Total number of Discord commands invoked by command type",
		},
		[]string{"command"},
	)

	CommandErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_command_errors",
			Help: "Total number of Discord command errors by command type",
		},
		[]string{"command"},
	)

	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Duration of Discord command execution in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	ClassifierVerdicts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classifier_verdicts_total",
			Help: "Search-intent classifier outcomes (search, direct, error)",
		},
		[]string{"verdict"},
	)

	PersonaSelections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "persona_selections_total",
			Help: "Persona chosen per routed request",
		},
		[]string{"persona"},
	)
)

type Server struct {
	*http.Server
}

// SetupServer wires the expvar and prometheus collectors and returns an
// HTTP server exposing /metrics, /healthz, and pprof.
func SetupServer(addr string) *Server {
	// pprof is setup by importing the net/http/pprof package
	server := &http.Server{
		Addr:         addr,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	DiscordMessageReceived.Set(0)
	DiscordMessageSent.Set(0)
	SuccessfulLLMGen.Set(0)
	EmptyLLMResponse.Set(0)
	FailedLLMGen.Set(0)
	WebSearchSuccess.Set(0)
	WebSearchNoResults.Set(0)
	WebSearchFail.Set(0)
	TranscriptWriteFailures.Set(0)
	SummaryJobRuns.Set(0)
	SummaryJobFailures.Set(0)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewExpvarCollector(
			map[string]*prometheus.Desc{
				"discord_message_received":    prometheus.NewDesc("discord_message_received", "number of discord messages received", nil, nil),
				"discord_message_sent":        prometheus.NewDesc("discord_message_sent", "number of discord messages sent", nil, nil),
				"successful_llm_gen_count":    prometheus.NewDesc("successful_llm_gen_count", "number of times llm generated a valid response", nil, nil),
				"empty_llm_response_count":    prometheus.NewDesc("empty_llm_response_count", "number of times llm responded with an empty string", nil, nil),
				"failed_llm_gen_count":        prometheus.NewDesc("failed_llm_gen_count", "number of errors during llm generation", nil, nil),
				"web_search_success_count":    prometheus.NewDesc("web_search_success_count", "number of successful web searches", nil, nil),
				"web_search_no_results_count": prometheus.NewDesc("web_search_no_results_count", "number of web searches with zero usable results", nil, nil),
				"web_search_fail_count":       prometheus.NewDesc("web_search_fail_count", "number of failed web searches", nil, nil),
				"transcript_write_failures":   prometheus.NewDesc("transcript_write_failures", "number of transcript append failures", nil, nil),
				"summary_job_runs":            prometheus.NewDesc("summary_job_runs", "number of summary job executions", nil, nil),
				"summary_job_failures":        prometheus.NewDesc("summary_job_failures", "number of failed summary job executions", nil, nil),
			},
		),
		CommandTotal,
		CommandErrors,
		CommandDuration,
		ClassifierVerdicts,
		PersonaSelections,
	)

	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	http.HandleFunc("/healthz", healthzHandler)
	return &Server{server}
}

// healthzHandler returns a simple health check response
func healthzHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) Run() {
	_ = s.ListenAndServe()
}
