package importer

import (
	"fmt"
	"slices"

	"github.com/mauv0809/mundialito/internal/league"
)

// Aggregate folds per-game rows into one PlayerTournamentStat per player,
// one TeamTournamentStat per team and one PlayerAward per player.
// Exactly one tournament id may appear in rows and each player must play
// for a single team. name and date are passed through as given; the store
// decides what an empty value means.
func Aggregate(rows []GameRow, name, date string) (league.TournamentImport, error) {
	if len(rows) == 0 {
		return league.TournamentImport{}, fmt.Errorf("%w: no game rows", ErrInvalidCSV)
	}

	tournamentID := rows[0].TournamentID
	for _, row := range rows[1:] {
		if row.TournamentID != tournamentID {
			return league.TournamentImport{}, fmt.Errorf("%w: expected exactly one MundialitoId, found %d and %d", ErrInvalidCSV, tournamentID, row.TournamentID)
		}
	}

	stats := make(map[int]*league.PlayerTournamentStat)
	players := make(map[int]league.Player)
	teams := make(map[int]league.Team)
	awards := make(map[int]*league.PlayerAward)

	for _, row := range rows {
		stat, ok := stats[row.PlayerID]
		if !ok {
			stat = &league.PlayerTournamentStat{
				PlayerID:     row.PlayerID,
				TournamentID: tournamentID,
				TeamID:       row.TeamID,
			}
			stats[row.PlayerID] = stat
		} else if stat.TeamID != row.TeamID {
			return league.TournamentImport{}, fmt.Errorf("%w: player %d appears for teams %d and %d", ErrInvalidCSV, row.PlayerID, stat.TeamID, row.TeamID)
		}

		stat.GamesPlayed++
		switch row.Result {
		case "W":
			stat.GamesWon++
		case "D":
			stat.GamesDrawn++
		case "L":
			stat.GamesLost++
		}
		stat.Goals += row.Goals
		stat.Assists += row.Assists
		stat.CleanSheets = addOptional(stat.CleanSheets, row.CleanSheet)
		stat.GoalsConceded = addOptional(stat.GoalsConceded, row.GoalsConceded)

		award, ok := awards[row.PlayerID]
		if !ok {
			award = &league.PlayerAward{PlayerID: row.PlayerID, TournamentID: tournamentID}
			awards[row.PlayerID] = award
		}
		award.IsMVP = award.IsMVP || row.IsMVP
		award.IsGoldenBoot = award.IsGoldenBoot || row.IsGoldenBoot
		award.IsPlaymaker = award.IsPlaymaker || row.IsPlaymaker

		if _, ok := players[row.PlayerID]; !ok {
			players[row.PlayerID] = league.Player{ID: row.PlayerID, Name: row.PlayerName}
		}
		if _, ok := teams[row.TeamID]; !ok {
			teams[row.TeamID] = league.Team{
				ID:           row.TeamID,
				TournamentID: tournamentID,
				Name:         row.TeamName,
				Abbreviation: row.TeamAbbr,
			}
		}
	}

	imp := league.TournamentImport{
		Tournament: league.Tournament{ID: tournamentID, Name: name, Date: date},
		Players:    make([]league.Player, 0, len(players)),
		Teams:      make([]league.Team, 0, len(teams)),
		Stats:      make([]league.PlayerTournamentStat, 0, len(stats)),
		Awards:     make([]league.PlayerAward, 0, len(awards)),
	}
	for _, p := range players {
		imp.Players = append(imp.Players, p)
	}
	for _, t := range teams {
		imp.Teams = append(imp.Teams, t)
	}
	for _, s := range stats {
		imp.Stats = append(imp.Stats, *s)
	}
	for _, a := range awards {
		imp.Awards = append(imp.Awards, *a)
	}
	slices.SortFunc(imp.Players, func(a, b league.Player) int { return a.ID - b.ID })
	slices.SortFunc(imp.Teams, func(a, b league.Team) int { return a.ID - b.ID })
	slices.SortFunc(imp.Stats, func(a, b league.PlayerTournamentStat) int { return a.PlayerID - b.PlayerID })
	slices.SortFunc(imp.Awards, func(a, b league.PlayerAward) int { return a.PlayerID - b.PlayerID })
	imp.TeamStats = TeamStats(imp.Stats)
	return imp, nil
}

// TeamStats summarises player stats per team. Every player of a team plays
// the team's games, so games and results, goals conceded and clean sheets
// take the maximum across the team's players while goals and assists are
// summed. The teams with the most wins are champions; nobody is champion
// while no game has been won. The result is ordered by team id.
func TeamStats(stats []league.PlayerTournamentStat) []league.TeamTournamentStat {
	byTeam := make(map[int]*league.TeamTournamentStat)
	for _, st := range stats {
		ts, ok := byTeam[st.TeamID]
		if !ok {
			ts = &league.TeamTournamentStat{TeamID: st.TeamID, TournamentID: st.TournamentID}
			byTeam[st.TeamID] = ts
		}
		ts.GamesPlayed = max(ts.GamesPlayed, st.GamesPlayed)
		ts.GamesWon = max(ts.GamesWon, st.GamesWon)
		ts.GamesDrawn = max(ts.GamesDrawn, st.GamesDrawn)
		ts.GamesLost = max(ts.GamesLost, st.GamesLost)
		ts.Goals += st.Goals
		ts.Assists += st.Assists
		ts.GoalsConceded = maxOptional(ts.GoalsConceded, st.GoalsConceded)
		ts.CleanSheets = maxOptional(ts.CleanSheets, st.CleanSheets)
	}

	mostWins := 0
	teamStats := make([]league.TeamTournamentStat, 0, len(byTeam))
	for _, ts := range byTeam {
		mostWins = max(mostWins, ts.GamesWon)
		teamStats = append(teamStats, *ts)
	}
	for i := range teamStats {
		teamStats[i].IsChampion = mostWins > 0 && teamStats[i].GamesWon == mostWins
	}
	slices.SortFunc(teamStats, func(a, b league.TeamTournamentStat) int { return a.TeamID - b.TeamID })
	return teamStats
}

// maxOptional is the larger of two nullable counts, nil only while both are.
func maxOptional(a, b *int) *int {
	switch {
	case b == nil:
		return a
	case a == nil:
		return league.IntPtr(*b)
	default:
		return league.IntPtr(max(*a, *b))
	}
}

// addOptional sums two nullable counts. The result stays nil only while
// neither side has a value.
func addOptional(total, v *int) *int {
	if v == nil {
		return total
	}
	if total == nil {
		return league.IntPtr(*v)
	}
	return league.IntPtr(*total + *v)
}
