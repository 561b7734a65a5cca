package metrics

import "sync"

var _ Metrics = (*Mock)(nil)

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                 sync.Mutex
	tournamentListings int
	playerStatsQueries int
	orphanedRows       int
	retrievalFailures  int
	queryDurations     []float64
	slackNotifSent     int
	slackNotifFailed   int
	startupTime        float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		queryDurations: make([]float64, 0),
	}
}

func (m *Mock) IncTournamentListings() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentListings++
}

func (m *Mock) IncPlayerStatsQueries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playerStatsQueries++
}

func (m *Mock) AddOrphanedRows(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orphanedRows += count
}

func (m *Mock) IncRetrievalFailures() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.retrievalFailures++
}

func (m *Mock) ObserveQueryDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queryDurations = append(m.queryDurations, duration)
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// TournamentListings returns the number of times IncTournamentListings was called.
func (m *Mock) TournamentListings() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentListings
}

// PlayerStatsQueries returns the number of times IncPlayerStatsQueries was called.
func (m *Mock) PlayerStatsQueries() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playerStatsQueries
}

// OrphanedRows returns the total passed to AddOrphanedRows.
func (m *Mock) OrphanedRows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.orphanedRows
}

// RetrievalFailures returns the number of times IncRetrievalFailures was called.
func (m *Mock) RetrievalFailures() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.retrievalFailures
}

// QueryDurations returns a copy of every observed duration.
func (m *Mock) QueryDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.queryDurations...)
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
