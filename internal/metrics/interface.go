package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncTournamentListings()
	IncPlayerStatsQueries()
	AddOrphanedRows(count int)
	IncRetrievalFailures()
	ObserveQueryDuration(duration float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
