package importer

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/pubsub"
)

// New creates an Importer. publisher may be nil, in which case imports are
// not announced.
func New(writer league.Writer, publisher pubsub.PubSubClient, topic pubsub.EventType) *Importer {
	if topic == "" {
		topic = pubsub.EventTournamentImported
	}
	return &Importer{
		writer:    writer,
		publisher: publisher,
		topic:     topic,
	}
}

// ImportFile parses the staging file at path and writes it to the store.
func (i *Importer) ImportFile(ctx context.Context, path, name string) (league.TournamentImport, error) {
	f, err := os.Open(path)
	if err != nil {
		return league.TournamentImport{}, fmt.Errorf("opening staging file: %w", err)
	}
	defer f.Close()

	rows, err := ParseCSV(f)
	if err != nil {
		return league.TournamentImport{}, err
	}
	imp, err := Aggregate(rows, name, DateFromFilename(path))
	if err != nil {
		return league.TournamentImport{}, err
	}
	log.Info("Parsed staging file", "path", path, "tournament", imp.Tournament.ID, "games", len(rows), "players", len(imp.Stats))

	if err := i.Import(ctx, imp); err != nil {
		return league.TournamentImport{}, err
	}
	return imp, nil
}

// Import writes imp in one transaction and publishes a TournamentImported
// event. A failed publish is logged; the stored data is kept.
func (i *Importer) Import(ctx context.Context, imp league.TournamentImport) error {
	if err := i.writer.ImportTournament(ctx, imp); err != nil {
		return fmt.Errorf("importing tournament %d: %w", imp.Tournament.ID, err)
	}
	log.Info("Imported tournament", "tournament", imp.Tournament.ID, "name", imp.Tournament.Title(), "statRows", len(imp.Stats))

	if i.publisher == nil {
		return nil
	}
	event := pubsub.TournamentImported{
		TournamentID: imp.Tournament.ID,
		Name:         imp.Tournament.Title(),
		Players:      len(imp.Players),
		StatRows:     len(imp.Stats),
	}
	if err := i.publisher.SendMessage(i.topic, event); err != nil {
		log.Error("Failed to announce import", "tournament", imp.Tournament.ID, "error", err)
	}
	return nil
}
