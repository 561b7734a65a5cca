package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
type Service struct {
	TournamentListings prometheus.Counter
	PlayerStatsQueries prometheus.Counter
	OrphanedRows       prometheus.Counter
	RetrievalFailures  prometheus.Counter
	QueryDuration      prometheus.Histogram
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
