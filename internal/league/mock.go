package league

import (
	"context"
	"sync"
)

var _ ReadWriter = (*MockStore)(nil)

// MockStore is a mock implementation of the Store and Writer interfaces for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	ListTournamentsFunc       func(ctx context.Context) ([]Tournament, error)
	ListStatsByTournamentFunc func(ctx context.Context, tournamentID int) ([]PlayerTournamentStat, error)
	GetPlayersFunc            func(ctx context.Context, ids []int) (map[int]Player, error)
	GetTeamsFunc              func(ctx context.Context, ids []int) (map[int]Team, error)
	ImportTournamentFunc      func(ctx context.Context, imp TournamentImport) error

	ListTeamStatsByTournamentFunc func(ctx context.Context, tournamentID int) ([]TeamTournamentStat, error)
	ListAwardsByTournamentFunc    func(ctx context.Context, tournamentID int) ([]PlayerAward, error)

	// Call records
	ListStatsByTournamentCalls []int
	GetPlayersCalls            [][]int
	GetTeamsCalls              [][]int
	ImportTournamentCalls      []TournamentImport

	ListTeamStatsByTournamentCalls []int
	ListAwardsByTournamentCalls    []int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListStatsByTournamentCalls = nil
	m.GetPlayersCalls = nil
	m.GetTeamsCalls = nil
	m.ImportTournamentCalls = nil
	m.ListTeamStatsByTournamentCalls = nil
	m.ListAwardsByTournamentCalls = nil
}

func (m *MockStore) ListTournaments(ctx context.Context) ([]Tournament, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListTournamentsFunc != nil {
		return m.ListTournamentsFunc(ctx)
	}
	return []Tournament{}, nil
}

func (m *MockStore) ListStatsByTournament(ctx context.Context, tournamentID int) ([]PlayerTournamentStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListStatsByTournamentCalls = append(m.ListStatsByTournamentCalls, tournamentID)
	if m.ListStatsByTournamentFunc != nil {
		return m.ListStatsByTournamentFunc(ctx, tournamentID)
	}
	return []PlayerTournamentStat{}, nil
}

func (m *MockStore) GetPlayers(ctx context.Context, ids []int) (map[int]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetPlayersCalls = append(m.GetPlayersCalls, ids)
	if m.GetPlayersFunc != nil {
		return m.GetPlayersFunc(ctx, ids)
	}
	return map[int]Player{}, nil
}

func (m *MockStore) GetTeams(ctx context.Context, ids []int) (map[int]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetTeamsCalls = append(m.GetTeamsCalls, ids)
	if m.GetTeamsFunc != nil {
		return m.GetTeamsFunc(ctx, ids)
	}
	return map[int]Team{}, nil
}

func (m *MockStore) ImportTournament(ctx context.Context, imp TournamentImport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ImportTournamentCalls = append(m.ImportTournamentCalls, imp)
	if m.ImportTournamentFunc != nil {
		return m.ImportTournamentFunc(ctx, imp)
	}
	return nil
}

func (m *MockStore) ListTeamStatsByTournament(ctx context.Context, tournamentID int) ([]TeamTournamentStat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListTeamStatsByTournamentCalls = append(m.ListTeamStatsByTournamentCalls, tournamentID)
	if m.ListTeamStatsByTournamentFunc != nil {
		return m.ListTeamStatsByTournamentFunc(ctx, tournamentID)
	}
	return []TeamTournamentStat{}, nil
}

func (m *MockStore) ListAwardsByTournament(ctx context.Context, tournamentID int) ([]PlayerAward, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListAwardsByTournamentCalls = append(m.ListAwardsByTournamentCalls, tournamentID)
	if m.ListAwardsByTournamentFunc != nil {
		return m.ListAwardsByTournamentFunc(ctx, tournamentID)
	}
	return []PlayerAward{}, nil
}
