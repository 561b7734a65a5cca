package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		TournamentListings: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_tournament_listings_total",
			Help: "The total number of tournament list requests served.",
		}),
		PlayerStatsQueries: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_player_stats_queries_total",
			Help: "The total number of ranked player stats requests served.",
		}),
		OrphanedRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_orphaned_stat_rows_total",
			Help: "Stat rows dropped because their player or team could not be resolved.",
		}),
		RetrievalFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_retrieval_failures_total",
			Help: "The total number of reads that failed because the store could not be queried.",
		}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "mundialito_query_duration_seconds",
			Help:    "The duration of aggregation queries against the store.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "mundialito_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mundialito_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.TournamentListings,
		s.PlayerStatsQueries,
		s.OrphanedRows,
		s.RetrievalFailures,
		s.QueryDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncTournamentListings() {
	s.TournamentListings.Inc()
}

func (s *Service) IncPlayerStatsQueries() {
	s.PlayerStatsQueries.Inc()
}

func (s *Service) AddOrphanedRows(count int) {
	s.OrphanedRows.Add(float64(count))
}

func (s *Service) IncRetrievalFailures() {
	s.RetrievalFailures.Inc()
}

func (s *Service) ObserveQueryDuration(duration float64) {
	s.QueryDuration.Observe(duration)
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
