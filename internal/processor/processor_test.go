package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/metrics"
	"github.com/mauv0809/mundialito/internal/notifier"
	"github.com/mauv0809/mundialito/internal/pubsub"
	"github.com/mauv0809/mundialito/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededStore() *league.MockStore {
	store := league.NewMock()
	store.ListTournamentsFunc = func(ctx context.Context) ([]league.Tournament, error) {
		return []league.Tournament{{ID: 7, Name: "Mundialito 7", Date: "2025-07-12"}}, nil
	}
	store.ListStatsByTournamentFunc = func(ctx context.Context, tournamentID int) ([]league.PlayerTournamentStat, error) {
		return []league.PlayerTournamentStat{
			{PlayerID: 1, TournamentID: 7, TeamID: 70, Goals: 2},
			{PlayerID: 2, TournamentID: 7, TeamID: 70, Goals: 4},
		}, nil
	}
	store.GetPlayersFunc = func(ctx context.Context, ids []int) (map[int]league.Player, error) {
		return map[int]league.Player{1: {ID: 1, Name: "P1"}, 2: {ID: 2, Name: "P2"}}, nil
	}
	store.GetTeamsFunc = func(ctx context.Context, ids []int) (map[int]league.Team, error) {
		return map[int]league.Team{70: {ID: 70, TournamentID: 7, Name: "Verdes", Abbreviation: "VER"}}, nil
	}
	return store
}

func TestProcessor_AnnounceTournament(t *testing.T) {
	t.Run("sends ranked leaderboard with tournament name", func(t *testing.T) {
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(stats.New(seededStore(), metr), notif)

		err := p.AnnounceTournament(context.Background(), pubsub.TournamentImported{TournamentID: 7}, true)
		require.NoError(t, err)

		require.Len(t, notif.SendLeaderboardCalls, 1)
		call := notif.SendLeaderboardCalls[0]
		assert.Equal(t, "Mundialito 7", call.Tournament.Name)
		assert.True(t, call.DryRun)
		require.Len(t, call.Stats, 2)
		assert.Equal(t, "P2", call.Stats[0].PlayerName)
	})

	t.Run("falls back to event name for unlisted tournament", func(t *testing.T) {
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(stats.New(league.NewMock(), metr), notif)

		err := p.AnnounceTournament(context.Background(), pubsub.TournamentImported{TournamentID: 9, Name: "Winter Cup"}, false)
		require.NoError(t, err)

		require.Len(t, notif.SendLeaderboardCalls, 1)
		assert.Equal(t, league.Tournament{ID: 9, Name: "Winter Cup"}, notif.SendLeaderboardCalls[0].Tournament)
		assert.Empty(t, notif.SendLeaderboardCalls[0].Stats)
	})

	t.Run("retrieval failure skips notification", func(t *testing.T) {
		store := league.NewMock()
		store.ListStatsByTournamentFunc = func(ctx context.Context, tournamentID int) ([]league.PlayerTournamentStat, error) {
			return nil, errors.New("connection refused")
		}
		notif := notifier.NewMock()
		metr := metrics.NewMock()
		p := New(stats.New(store, metr), notif)

		err := p.AnnounceTournament(context.Background(), pubsub.TournamentImported{TournamentID: 7}, false)
		require.Error(t, err)
		assert.True(t, errors.Is(err, stats.ErrRetrieval))
		assert.Empty(t, notif.SendLeaderboardCalls)
	})

	t.Run("notifier failure is returned", func(t *testing.T) {
		notif := notifier.NewMock()
		notif.SendLeaderboardFunc = func(tournament league.Tournament, stats []league.PlayerStat, dryRun bool) error {
			return errors.New("channel_not_found")
		}
		metr := metrics.NewMock()
		p := New(stats.New(seededStore(), metr), notif)

		err := p.AnnounceTournament(context.Background(), pubsub.TournamentImported{TournamentID: 7}, false)
		require.Error(t, err)
		assert.False(t, errors.Is(err, stats.ErrRetrieval))
	})
}

func TestFindTournament(t *testing.T) {
	tournaments := []league.Tournament{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	assert.Equal(t, league.Tournament{ID: 2, Name: "B"}, FindTournament(tournaments, 2))
	assert.Equal(t, league.Tournament{ID: 3}, FindTournament(tournaments, 3))
}
