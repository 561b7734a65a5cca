package processor

import (
	"context"

	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/notifier"
)

// Stats defines the read operations required by the processor.
// It is implemented by *stats.Service.
type Stats interface {
	ListTournaments(ctx context.Context) ([]league.Tournament, error)
	GetPlayerStats(ctx context.Context, tournamentID int) ([]league.PlayerStat, error)
}

// Notifier defines the notification operations required by the processor.
// This is an alias for the main notifier interface for decoupling.
type Notifier interface {
	notifier.Notifier
}
