package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/pubsub"
)

// New creates a new Processor.
func New(stats Stats, notifier Notifier) *Processor {
	return &Processor{
		stats:    stats,
		notifier: notifier,
	}
}

// AnnounceTournament posts the freshly imported tournament's leaderboard.
// Retrieval errors are returned unchanged so callers can tell them apart
// from notification failures.
func (p *Processor) AnnounceTournament(ctx context.Context, event pubsub.TournamentImported, dryRun bool) error {
	startTime := time.Now()
	log.FromContext(ctx).Info("Announcing tournament", "tournamentId", event.TournamentID, "statRows", event.StatRows, "dryRun", dryRun)

	playerStats, err := p.stats.GetPlayerStats(ctx, event.TournamentID)
	if err != nil {
		return err
	}

	tournament := p.LookupTournament(ctx, event.TournamentID)
	if tournament.Name == "" {
		tournament.Name = event.Name
	}
	if err := p.notifier.SendLeaderboard(tournament, playerStats, dryRun); err != nil {
		return fmt.Errorf("sending leaderboard for tournament %d: %w", event.TournamentID, err)
	}

	log.FromContext(ctx).Info("Tournament announced", "tournamentId", event.TournamentID, "players", len(playerStats), "duration_ms", time.Since(startTime).Milliseconds())
	return nil
}

// LookupTournament returns the listed tournament with the given id. When the
// listing fails or lacks the id, a Tournament carrying only the id is returned;
// the name is cosmetic.
func (p *Processor) LookupTournament(ctx context.Context, id int) league.Tournament {
	tournaments, err := p.stats.ListTournaments(ctx)
	if err != nil {
		log.FromContext(ctx).Warn("Could not resolve tournament name", "tournamentId", id, "error", err)
		return league.Tournament{ID: id}
	}
	return FindTournament(tournaments, id)
}

// FindTournament returns the tournament with the given id, or a bare
// Tournament carrying only the id.
func FindTournament(tournaments []league.Tournament, id int) league.Tournament {
	for _, t := range tournaments {
		if t.ID == id {
			return t
		}
	}
	return league.Tournament{ID: id}
}
