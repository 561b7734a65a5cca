package league

import (
	"database/sql"
	"fmt"

	"github.com/mauv0809/mundialito/internal/database"
)

// store handles all database reads and imports for tournaments.
type store struct {
	db      *sql.DB
	dialect database.Dialect
}

// Tournament is a single Mundialito edition. Name and Date are descriptive
// pass-through fields and may be empty.
type Tournament struct {
	ID   int    `json:"tournamentId"`
	Name string `json:"name,omitempty"`
	Date string `json:"date,omitempty"`
}

// DefaultTournamentName is the name given to tournaments imported without one.
func DefaultTournamentName(id int) string {
	return fmt.Sprintf("Mundialito %d", id)
}

// Title returns the tournament's name, or its default name when unnamed.
func (t Tournament) Title() string {
	if t.Name != "" {
		return t.Name
	}
	return DefaultTournamentName(t.ID)
}

// Team belongs to exactly one tournament.
type Team struct {
	ID           int
	TournamentID int
	Name         string
	Abbreviation string
}

// Player is a global identity, not scoped to a tournament.
type Player struct {
	ID   int
	Name string
}

// PlayerTournamentStat is the raw per-player, per-tournament stat row.
// CleanSheets and GoalsConceded are nil for seasons that never recorded them.
type PlayerTournamentStat struct {
	PlayerID      int
	TournamentID  int
	TeamID        int
	GamesPlayed   int
	GamesWon      int
	GamesDrawn    int
	GamesLost     int
	Goals         int
	Assists       int
	CleanSheets   *int
	GoalsConceded *int
}

// PlayerStat is a stat row joined with player and team identity, as served to clients.
type PlayerStat struct {
	PlayerID      int    `json:"playerId"`
	PlayerName    string `json:"playerName"`
	TeamID        int    `json:"teamId"`
	TeamName      string `json:"teamName"`
	TeamAbbr      string `json:"teamAbbr"`
	TournamentID  int    `json:"tournamentId"`
	GamesPlayed   int    `json:"gamesPlayed"`
	GamesWon      int    `json:"gamesWon"`
	GamesDrawn    int    `json:"gamesDrawn"`
	GamesLost     int    `json:"gamesLost"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	CleanSheets   *int   `json:"cleanSheets"`
	GoalsConceded *int   `json:"goalsConceded"`
}

// TeamTournamentStat is the per-team summary of a tournament. Every player of
// a team plays every game, so GP/W/D/L, conceded and clean sheets are the
// team's own; goals and assists are the players' sums.
type TeamTournamentStat struct {
	TeamID        int
	TournamentID  int
	GamesPlayed   int
	GamesWon      int
	GamesDrawn    int
	GamesLost     int
	Goals         int
	Assists       int
	GoalsConceded *int
	CleanSheets   *int
	IsChampion    bool
}

// PlayerAward records the individual honours a player won in a tournament.
type PlayerAward struct {
	PlayerID     int
	TournamentID int
	IsMVP        bool
	IsGoldenBoot bool
	IsPlaymaker  bool
}

// HasAny reports whether the player won at least one award.
func (a PlayerAward) HasAny() bool {
	return a.IsMVP || a.IsGoldenBoot || a.IsPlaymaker
}

// TeamStat is a team summary joined with team identity, as served to clients.
type TeamStat struct {
	TeamID        int    `json:"teamId"`
	TeamName      string `json:"teamName"`
	TeamAbbr      string `json:"teamAbbr"`
	TournamentID  int    `json:"tournamentId"`
	GamesPlayed   int    `json:"gamesPlayed"`
	GamesWon      int    `json:"gamesWon"`
	GamesDrawn    int    `json:"gamesDrawn"`
	GamesLost     int    `json:"gamesLost"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	GoalsConceded *int   `json:"goalsConceded"`
	CleanSheets   *int   `json:"cleanSheets"`
	IsChampion    bool   `json:"isChampion"`
}

// AwardStat is a player's awards joined with the player's name.
type AwardStat struct {
	PlayerID     int    `json:"playerId"`
	PlayerName   string `json:"playerName"`
	TournamentID int    `json:"tournamentId"`
	IsMVP        bool   `json:"isMvp"`
	IsGoldenBoot bool   `json:"isGoldenBoot"`
	IsPlaymaker  bool   `json:"isPlaymaker"`
}

// TournamentImport is everything the ingestion path writes for one tournament.
// An empty Tournament.Name or Tournament.Date leaves the stored value alone.
type TournamentImport struct {
	Tournament Tournament
	Players    []Player
	Teams      []Team
	Stats      []PlayerTournamentStat
	TeamStats  []TeamTournamentStat
	Awards     []PlayerAward
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}
