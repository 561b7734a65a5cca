package stats

import (
	"cmp"
	"slices"

	"github.com/mauv0809/mundialito/internal/league"
)

// Join inner-joins stat rows with their player and team, preserving row order.
// It returns the joined records and the number of rows dropped because the
// player or the team was missing.
func Join(rows []league.PlayerTournamentStat, players map[int]league.Player, teams map[int]league.Team) ([]league.PlayerStat, int) {
	joined := make([]league.PlayerStat, 0, len(rows))
	orphaned := 0
	for _, row := range rows {
		player, ok := players[row.PlayerID]
		if !ok {
			orphaned++
			continue
		}
		team, ok := teams[row.TeamID]
		if !ok {
			orphaned++
			continue
		}
		joined = append(joined, league.PlayerStat{
			PlayerID:      row.PlayerID,
			PlayerName:    player.Name,
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
			CleanSheets:   copyInt(row.CleanSheets),
			GoalsConceded: copyInt(row.GoalsConceded),
		})
	}
	return joined, orphaned
}

// Rank orders stats by goals then assists, both descending. Exact ties keep
// their incoming order.
func Rank(stats []league.PlayerStat) {
	slices.SortStableFunc(stats, func(a, b league.PlayerStat) int {
		if c := cmp.Compare(b.Goals, a.Goals); c != 0 {
			return c
		}
		return cmp.Compare(b.Assists, a.Assists)
	})
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	return league.IntPtr(*v)
}
