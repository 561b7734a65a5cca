package league

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/database"
)

// New creates a Store backed by an SQLite or Turso connection.
func New(db *sql.DB) ReadWriter {
	return NewWithDialect(db, database.DialectSQLite)
}

// NewWithDialect creates a Store for the given SQL dialect.
func NewWithDialect(db *sql.DB, dialect database.Dialect) ReadWriter {
	return &store{
		db:      db,
		dialect: dialect,
	}
}

// ListTournaments returns all tournaments ordered by id.
func (s *store) ListTournaments(ctx context.Context) ([]Tournament, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, date FROM tournaments ORDER BY id ASC")
	if err != nil {
		log.Error("Failed to query tournaments", "error", err)
		return nil, fmt.Errorf("querying tournaments: %w", err)
	}
	defer rows.Close()

	tournaments := []Tournament{}
	for rows.Next() {
		var t Tournament
		var name, date sql.NullString
		if err := rows.Scan(&t.ID, &name, &date); err != nil {
			return nil, fmt.Errorf("scanning tournament: %w", err)
		}
		t.Name = name.String
		t.Date = date.String
		tournaments = append(tournaments, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tournaments: %w", err)
	}
	return tournaments, nil
}

// ListStatsByTournament returns all stat rows recorded for a tournament.
func (s *store) ListStatsByTournament(ctx context.Context, tournamentID int) ([]PlayerTournamentStat, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT player_id, tournament_id, team_id,
			games_played, games_won, games_drawn, games_lost,
			goals, assists, clean_sheets, goals_conceded
		FROM player_tournament_stats
		WHERE tournament_id = ?
		ORDER BY player_id ASC
	`), tournamentID)
	if err != nil {
		log.Error("Failed to query player tournament stats", "error", err, "tournamentID", tournamentID)
		return nil, fmt.Errorf("querying stats for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	stats := []PlayerTournamentStat{}
	for rows.Next() {
		stat, err := scanStat(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning stat row: %w", err)
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stats: %w", err)
	}
	return stats, nil
}

func scanStat(scanner interface{ Scan(...any) error }) (PlayerTournamentStat, error) {
	var stat PlayerTournamentStat
	var cleanSheets, goalsConceded sql.NullInt64
	err := scanner.Scan(
		&stat.PlayerID, &stat.TournamentID, &stat.TeamID,
		&stat.GamesPlayed, &stat.GamesWon, &stat.GamesDrawn, &stat.GamesLost,
		&stat.Goals, &stat.Assists, &cleanSheets, &goalsConceded,
	)
	if err != nil {
		return stat, err
	}
	stat.CleanSheets = nullableInt(cleanSheets)
	stat.GoalsConceded = nullableInt(goalsConceded)
	return stat, nil
}

func nullableInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	return IntPtr(int(v.Int64))
}

func toNullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// GetPlayers retrieves the players with the given ids.
func (s *store) GetPlayers(ctx context.Context, ids []int) (map[int]Player, error) {
	players := make(map[int]Player, len(ids))
	if len(ids) == 0 {
		return players, nil
	}

	query := "SELECT id, name FROM players WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := s.db.QueryContext(ctx, s.rebind(query), ToAnySlice(ids)...)
	if err != nil {
		log.Error("Failed to query players", "error", err, "count", len(ids))
		return nil, fmt.Errorf("querying players: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.ID, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning player: %w", err)
		}
		players[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating players: %w", err)
	}
	return players, nil
}

// GetTeams retrieves the teams with the given ids.
func (s *store) GetTeams(ctx context.Context, ids []int) (map[int]Team, error) {
	teams := make(map[int]Team, len(ids))
	if len(ids) == 0 {
		return teams, nil
	}

	query := "SELECT id, tournament_id, name, abbreviation FROM teams WHERE id IN (" + placeholders(len(ids)) + ")"
	rows, err := s.db.QueryContext(ctx, s.rebind(query), ToAnySlice(ids)...)
	if err != nil {
		log.Error("Failed to query teams", "error", err, "count", len(ids))
		return nil, fmt.Errorf("querying teams: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t Team
		if err := rows.Scan(&t.ID, &t.TournamentID, &t.Name, &t.Abbreviation); err != nil {
			return nil, fmt.Errorf("scanning team: %w", err)
		}
		teams[t.ID] = t
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating teams: %w", err)
	}
	return teams, nil
}

// ImportTournament writes a tournament in a single transaction. Players and
// teams that already exist are left untouched, and a stored tournament name or
// date is only overwritten by a non-empty value. The tournament's player stats,
// team stats and awards are replaced.
func (s *store) ImportTournament(ctx context.Context, imp TournamentImport) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning import transaction: %w", err)
	}

	if err := s.importLocked(ctx, tx, imp); err != nil {
		tx.Rollback()
		log.Error("Import failed, rolled back", "error", err, "tournamentID", imp.Tournament.ID)
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing import: %w", err)
	}
	log.Info("Imported tournament", "tournamentID", imp.Tournament.ID, "players", len(imp.Players), "teams", len(imp.Teams), "stats", len(imp.Stats), "teamStats", len(imp.TeamStats), "awards", len(imp.Awards))
	return nil
}

func (s *store) importLocked(ctx context.Context, tx *sql.Tx, imp TournamentImport) error {
	t := imp.Tournament
	_, err := tx.ExecContext(ctx, s.rebind(`
		INSERT INTO tournaments (id, name, date) VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`), t.ID, t.Title(), t.Date)
	if err != nil {
		return fmt.Errorf("inserting tournament %d: %w", t.ID, err)
	}
	if t.Name != "" {
		if _, err := tx.ExecContext(ctx, s.rebind("UPDATE tournaments SET name = ? WHERE id = ?"), t.Name, t.ID); err != nil {
			return fmt.Errorf("updating name of tournament %d: %w", t.ID, err)
		}
	}
	if t.Date != "" {
		if _, err := tx.ExecContext(ctx, s.rebind("UPDATE tournaments SET date = ? WHERE id = ?"), t.Date, t.ID); err != nil {
			return fmt.Errorf("updating date of tournament %d: %w", t.ID, err)
		}
	}

	for _, p := range imp.Players {
		_, err := tx.ExecContext(ctx, s.rebind("INSERT INTO players (id, name) VALUES (?, ?) ON CONFLICT(id) DO NOTHING"), p.ID, p.Name)
		if err != nil {
			return fmt.Errorf("inserting player %d: %w", p.ID, err)
		}
	}

	for _, team := range imp.Teams {
		_, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO teams (id, tournament_id, name, abbreviation) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO NOTHING
		`), team.ID, team.TournamentID, team.Name, team.Abbreviation)
		if err != nil {
			return fmt.Errorf("inserting team %d: %w", team.ID, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM player_tournament_stats WHERE tournament_id = ?"), t.ID); err != nil {
		return fmt.Errorf("clearing stats for tournament %d: %w", t.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, s.rebind(`
		INSERT INTO player_tournament_stats
			(player_id, tournament_id, team_id,
			 games_played, games_won, games_drawn, games_lost,
			 goals, assists, clean_sheets, goals_conceded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`))
	if err != nil {
		return fmt.Errorf("preparing stats insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range imp.Stats {
		_, err := stmt.ExecContext(ctx,
			st.PlayerID, st.TournamentID, st.TeamID,
			st.GamesPlayed, st.GamesWon, st.GamesDrawn, st.GamesLost,
			st.Goals, st.Assists, toNullInt(st.CleanSheets), toNullInt(st.GoalsConceded),
		)
		if err != nil {
			return fmt.Errorf("inserting stats for player %d: %w", st.PlayerID, err)
		}
	}

	if err := s.replaceTeamStats(ctx, tx, t.ID, imp.TeamStats); err != nil {
		return err
	}
	return s.replaceAwards(ctx, tx, t.ID, imp.Awards)
}

func (s *store) replaceTeamStats(ctx context.Context, tx *sql.Tx, tournamentID int, teamStats []TeamTournamentStat) error {
	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM team_tournament_stats WHERE tournament_id = ?"), tournamentID); err != nil {
		return fmt.Errorf("clearing team stats for tournament %d: %w", tournamentID, err)
	}
	for _, ts := range teamStats {
		_, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO team_tournament_stats
				(team_id, tournament_id,
				 games_played, games_won, games_drawn, games_lost,
				 goals, assists, goals_conceded, clean_sheets, is_champion)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`),
			ts.TeamID, ts.TournamentID,
			ts.GamesPlayed, ts.GamesWon, ts.GamesDrawn, ts.GamesLost,
			ts.Goals, ts.Assists, toNullInt(ts.GoalsConceded), toNullInt(ts.CleanSheets), ts.IsChampion,
		)
		if err != nil {
			return fmt.Errorf("inserting team stats for team %d: %w", ts.TeamID, err)
		}
	}
	return nil
}

func (s *store) replaceAwards(ctx context.Context, tx *sql.Tx, tournamentID int, awards []PlayerAward) error {
	if _, err := tx.ExecContext(ctx, s.rebind("DELETE FROM player_awards WHERE tournament_id = ?"), tournamentID); err != nil {
		return fmt.Errorf("clearing awards for tournament %d: %w", tournamentID, err)
	}
	for _, a := range awards {
		_, err := tx.ExecContext(ctx, s.rebind(`
			INSERT INTO player_awards (player_id, tournament_id, is_mvp, is_golden_boot, is_playmaker)
			VALUES (?, ?, ?, ?, ?)
		`), a.PlayerID, a.TournamentID, a.IsMVP, a.IsGoldenBoot, a.IsPlaymaker)
		if err != nil {
			return fmt.Errorf("inserting awards for player %d: %w", a.PlayerID, err)
		}
	}
	return nil
}

// ListTeamStatsByTournament returns the team summaries recorded for a tournament.
func (s *store) ListTeamStatsByTournament(ctx context.Context, tournamentID int) ([]TeamTournamentStat, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT team_id, tournament_id,
			games_played, games_won, games_drawn, games_lost,
			goals, assists, goals_conceded, clean_sheets, is_champion
		FROM team_tournament_stats
		WHERE tournament_id = ?
		ORDER BY team_id ASC
	`), tournamentID)
	if err != nil {
		log.Error("Failed to query team tournament stats", "error", err, "tournamentID", tournamentID)
		return nil, fmt.Errorf("querying team stats for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	teamStats := []TeamTournamentStat{}
	for rows.Next() {
		var ts TeamTournamentStat
		var goalsConceded, cleanSheets sql.NullInt64
		err := rows.Scan(
			&ts.TeamID, &ts.TournamentID,
			&ts.GamesPlayed, &ts.GamesWon, &ts.GamesDrawn, &ts.GamesLost,
			&ts.Goals, &ts.Assists, &goalsConceded, &cleanSheets, &ts.IsChampion,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning team stat row: %w", err)
		}
		ts.GoalsConceded = nullableInt(goalsConceded)
		ts.CleanSheets = nullableInt(cleanSheets)
		teamStats = append(teamStats, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team stats: %w", err)
	}
	return teamStats, nil
}

// ListAwardsByTournament returns the award rows recorded for a tournament.
func (s *store) ListAwardsByTournament(ctx context.Context, tournamentID int) ([]PlayerAward, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(`
		SELECT player_id, tournament_id, is_mvp, is_golden_boot, is_playmaker
		FROM player_awards
		WHERE tournament_id = ?
		ORDER BY player_id ASC
	`), tournamentID)
	if err != nil {
		log.Error("Failed to query player awards", "error", err, "tournamentID", tournamentID)
		return nil, fmt.Errorf("querying awards for tournament %d: %w", tournamentID, err)
	}
	defer rows.Close()

	awards := []PlayerAward{}
	for rows.Next() {
		var a PlayerAward
		if err := rows.Scan(&a.PlayerID, &a.TournamentID, &a.IsMVP, &a.IsGoldenBoot, &a.IsPlaymaker); err != nil {
			return nil, fmt.Errorf("scanning award row: %w", err)
		}
		awards = append(awards, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating awards: %w", err)
	}
	return awards, nil
}

// rebind rewrites '?' placeholders into '$n' for Postgres.
func (s *store) rebind(query string) string {
	if s.dialect != database.DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

func ToAnySlice[T any](s []T) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}
