package notifier

import (
	"sync"

	"github.com/mauv0809/mundialito/internal/league"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Call records
	SendLeaderboardCalls []struct {
		Tournament league.Tournament
		Stats      []league.PlayerStat
		DryRun     bool
	}

	// Spies
	SendLeaderboardFunc           func(tournament league.Tournament, stats []league.PlayerStat, dryRun bool) error
	FormatLeaderboardResponseFunc func(tournament league.Tournament, stats []league.PlayerStat) (any, error)
	FormatTournamentsResponseFunc func(tournaments []league.Tournament) (any, error)
	FormatUsageResponseFunc       func(usage string) (any, error)

	// Call records for format functions
	LastLeaderboardResponse any
	LastTournamentsResponse any
	LastUsageResponse       any
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = nil
	m.LastLeaderboardResponse = nil
	m.LastTournamentsResponse = nil
	m.LastUsageResponse = nil
}

func (m *Mock) SendLeaderboard(tournament league.Tournament, stats []league.PlayerStat, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendLeaderboardCalls = append(m.SendLeaderboardCalls, struct {
		Tournament league.Tournament
		Stats      []league.PlayerStat
		DryRun     bool
	}{tournament, stats, dryRun})
	if m.SendLeaderboardFunc != nil {
		return m.SendLeaderboardFunc(tournament, stats, dryRun)
	}
	return nil
}

func (m *Mock) FormatLeaderboardResponse(tournament league.Tournament, stats []league.PlayerStat) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatLeaderboardResponseFunc != nil {
		resp, err := m.FormatLeaderboardResponseFunc(tournament, stats)
		m.LastLeaderboardResponse = resp
		return resp, err
	}
	return nil, nil
}

func (m *Mock) FormatTournamentsResponse(tournaments []league.Tournament) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatTournamentsResponseFunc != nil {
		resp, err := m.FormatTournamentsResponseFunc(tournaments)
		m.LastTournamentsResponse = resp
		return resp, err
	}
	return nil, nil
}

func (m *Mock) FormatUsageResponse(usage string) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FormatUsageResponseFunc != nil {
		resp, err := m.FormatUsageResponseFunc(usage)
		m.LastUsageResponse = resp
		return resp, err
	}
	return nil, nil
}
