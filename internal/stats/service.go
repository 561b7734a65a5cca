package stats

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/metrics"
)

// ErrRetrieval marks a failure to query the entity store. The store's own
// error stays in the chain, so errors.Is works for both.
var ErrRetrieval = errors.New("retrieval failure")

// Service serves tournament listings, ranked player stats, team standings
// and awards.
// It keeps no state between calls; every call reads the store afresh.
type Service struct {
	store   league.Store
	metrics metrics.Metrics
}

// New creates a new stats Service.
func New(store league.Store, metrics metrics.Metrics) *Service {
	return &Service{
		store:   store,
		metrics: metrics,
	}
}

// ListTournaments returns every tournament ordered by ascending id.
func (s *Service) ListTournaments(ctx context.Context) ([]league.Tournament, error) {
	s.metrics.IncTournamentListings()

	tournaments, err := s.store.ListTournaments(ctx)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: listing tournaments: %w", ErrRetrieval, err)
	}
	if tournaments == nil {
		tournaments = []league.Tournament{}
	}

	slices.SortStableFunc(tournaments, func(a, b league.Tournament) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return tournaments, nil
}

// GetPlayerStats returns the ranked stats of every player in a tournament.
// Rows whose player or team cannot be resolved are left out. An unknown
// tournament yields an empty slice, not an error.
func (s *Service) GetPlayerStats(ctx context.Context, tournamentID int) ([]league.PlayerStat, error) {
	s.metrics.IncPlayerStatsQueries()
	start := time.Now()
	defer func() {
		s.metrics.ObserveQueryDuration(time.Since(start).Seconds())
	}()

	rows, err := s.store.ListStatsByTournament(ctx, tournamentID)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: stats for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}
	if len(rows) == 0 {
		log.FromContext(ctx).Debug("No stat rows for tournament", "tournamentID", tournamentID)
		return []league.PlayerStat{}, nil
	}

	playerIDs, teamIDs := referencedIDs(rows)
	players, err := s.store.GetPlayers(ctx, playerIDs)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: players for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}
	teams, err := s.store.GetTeams(ctx, teamIDs)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: teams for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}

	joined, orphaned := Join(rows, players, teams)
	if orphaned > 0 {
		log.FromContext(ctx).Debug("Dropped orphaned stat rows", "tournamentID", tournamentID, "count", orphaned)
		s.metrics.AddOrphanedRows(orphaned)
	}

	Rank(joined)
	return joined, nil
}

// GetTeamStats returns a tournament's team standings: most wins first, then
// most goals, then ascending team id. Rows whose team cannot be resolved are
// left out.
func (s *Service) GetTeamStats(ctx context.Context, tournamentID int) ([]league.TeamStat, error) {
	rows, err := s.store.ListTeamStatsByTournament(ctx, tournamentID)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: team stats for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}
	if len(rows) == 0 {
		return []league.TeamStat{}, nil
	}

	teamIDs := make([]int, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.TeamID)
	}
	teams, err := s.store.GetTeams(ctx, teamIDs)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: teams for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}

	standings := make([]league.TeamStat, 0, len(rows))
	orphaned := 0
	for _, row := range rows {
		team, ok := teams[row.TeamID]
		if !ok {
			orphaned++
			continue
		}
		standings = append(standings, league.TeamStat{
			TeamID:        row.TeamID,
			TeamName:      team.Name,
			TeamAbbr:      team.Abbreviation,
			TournamentID:  row.TournamentID,
			GamesPlayed:   row.GamesPlayed,
			GamesWon:      row.GamesWon,
			GamesDrawn:    row.GamesDrawn,
			GamesLost:     row.GamesLost,
			Goals:         row.Goals,
			Assists:       row.Assists,
			GoalsConceded: row.GoalsConceded,
			CleanSheets:   row.CleanSheets,
			IsChampion:    row.IsChampion,
		})
	}
	if orphaned > 0 {
		log.FromContext(ctx).Debug("Dropped orphaned team stat rows", "tournamentID", tournamentID, "count", orphaned)
		s.metrics.AddOrphanedRows(orphaned)
	}

	slices.SortStableFunc(standings, func(a, b league.TeamStat) int {
		return cmp.Or(
			cmp.Compare(b.GamesWon, a.GamesWon),
			cmp.Compare(b.Goals, a.Goals),
			cmp.Compare(a.TeamID, b.TeamID),
		)
	})
	return standings, nil
}

// GetAwards returns the players of a tournament who won at least one award,
// ordered by player id. Rows whose player cannot be resolved are left out.
func (s *Service) GetAwards(ctx context.Context, tournamentID int) ([]league.AwardStat, error) {
	rows, err := s.store.ListAwardsByTournament(ctx, tournamentID)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: awards for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}

	var playerIDs []int
	for _, row := range rows {
		if row.HasAny() {
			playerIDs = append(playerIDs, row.PlayerID)
		}
	}
	if len(playerIDs) == 0 {
		return []league.AwardStat{}, nil
	}
	players, err := s.store.GetPlayers(ctx, playerIDs)
	if err != nil {
		s.metrics.IncRetrievalFailures()
		return nil, fmt.Errorf("%w: players for tournament %d: %w", ErrRetrieval, tournamentID, err)
	}

	awards := make([]league.AwardStat, 0, len(playerIDs))
	orphaned := 0
	for _, row := range rows {
		if !row.HasAny() {
			continue
		}
		player, ok := players[row.PlayerID]
		if !ok {
			orphaned++
			continue
		}
		awards = append(awards, league.AwardStat{
			PlayerID:     row.PlayerID,
			PlayerName:   player.Name,
			TournamentID: row.TournamentID,
			IsMVP:        row.IsMVP,
			IsGoldenBoot: row.IsGoldenBoot,
			IsPlaymaker:  row.IsPlaymaker,
		})
	}
	if orphaned > 0 {
		log.FromContext(ctx).Debug("Dropped orphaned award rows", "tournamentID", tournamentID, "count", orphaned)
		s.metrics.AddOrphanedRows(orphaned)
	}

	slices.SortStableFunc(awards, func(a, b league.AwardStat) int {
		return cmp.Compare(a.PlayerID, b.PlayerID)
	})
	return awards, nil
}

// referencedIDs collects the distinct player and team ids of the rows, in first-seen order.
func referencedIDs(rows []league.PlayerTournamentStat) (playerIDs, teamIDs []int) {
	seenPlayers := make(map[int]struct{}, len(rows))
	seenTeams := make(map[int]struct{})
	for _, row := range rows {
		if _, ok := seenPlayers[row.PlayerID]; !ok {
			seenPlayers[row.PlayerID] = struct{}{}
			playerIDs = append(playerIDs, row.PlayerID)
		}
		if _, ok := seenTeams[row.TeamID]; !ok {
			seenTeams[row.TeamID] = struct{}{}
			teamIDs = append(teamIDs, row.TeamID)
		}
	}
	return playerIDs, teamIDs
}
