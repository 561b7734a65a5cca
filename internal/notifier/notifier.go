package notifier

import (
	"github.com/mauv0809/mundialito/internal/league"
)

// Notifier defines a high-level interface for presenting rankings outside the HTTP API.
// This decouples the rest of the application from the specific notification provider (e.g., Slack).
type Notifier interface {
	// Posts the leaderboard of a freshly imported tournament
	SendLeaderboard(tournament league.Tournament, stats []league.PlayerStat, dryRun bool) error

	// For formatting responses for slash commands
	FormatLeaderboardResponse(tournament league.Tournament, stats []league.PlayerStat) (any, error)
	FormatTournamentsResponse(tournaments []league.Tournament) (any, error)
	FormatUsageResponse(usage string) (any, error)
}
