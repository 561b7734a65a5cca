package league

import "context"

// Store defines the read access the ranking core needs from the entity store.
type Store interface {
	// ListTournaments returns every tournament ordered by id ascending.
	ListTournaments(ctx context.Context) ([]Tournament, error)
	// ListStatsByTournament returns the tournament's stat rows ordered by player id ascending.
	ListStatsByTournament(ctx context.Context, tournamentID int) ([]PlayerTournamentStat, error)
	// GetPlayers and GetTeams look entities up by id. Unknown ids are absent from the result.
	GetPlayers(ctx context.Context, ids []int) (map[int]Player, error)
	GetTeams(ctx context.Context, ids []int) (map[int]Team, error)
	// ListTeamStatsByTournament returns the tournament's team summaries ordered by team id ascending.
	ListTeamStatsByTournament(ctx context.Context, tournamentID int) ([]TeamTournamentStat, error)
	// ListAwardsByTournament returns the tournament's award rows ordered by player id ascending.
	ListAwardsByTournament(ctx context.Context, tournamentID int) ([]PlayerAward, error)
}

// Writer is used by the ingestion path only.
type Writer interface {
	ImportTournament(ctx context.Context, imp TournamentImport) error
}

// ReadWriter is implemented by the SQL store.
type ReadWriter interface {
	Store
	Writer
}
