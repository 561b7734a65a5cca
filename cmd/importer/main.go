package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/config"
	"github.com/mauv0809/mundialito/internal/database"
	"github.com/mauv0809/mundialito/internal/importer"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/pubsub"
	"github.com/spf13/cobra"
)

var (
	stagingDir   string
	tournamentID int
	name         string
	announce     bool
)

var rootCmd = &cobra.Command{
	Use:   "mundialito-importer [file]",
	Short: "Load a tournament staging CSV into the stats database",
	Long: `Reads a per-game staging CSV (mundialito_<id>_<date>.csv), aggregates it into
per-player tournament stats and replaces the tournament's rows in the database.
Pass the file directly, or --dir together with --tournament to locate it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVar(&stagingDir, "dir", ".", "Directory holding staging files")
	rootCmd.Flags().IntVar(&tournamentID, "tournament", 0, "Tournament id to look up in --dir")
	rootCmd.Flags().StringVar(&name, "name", "", "Tournament name (defaults to \"Mundialito <id>\")")
	rootCmd.Flags().BoolVar(&announce, "announce", true, "Publish a TournamentImported event when GCP_PROJECT is set")
}

func run(cmd *cobra.Command, args []string) error {
	path, err := resolvePath(args)
	if err != nil {
		return err
	}

	cfg := config.LoadForImport()
	log.SetLevel(cfg.ParseLevel())

	db, dialect, teardown, err := database.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer teardown()

	var publisher pubsub.PubSubClient
	if announce && cfg.PubSub.ProjectID != "" {
		publisher, err = pubsub.New(cmd.Context(), cfg.PubSub.ProjectID)
		if err != nil {
			return err
		}
		defer publisher.Close()
	}

	imp := importer.New(league.NewWithDialect(db, dialect), publisher, pubsub.EventType(cfg.PubSub.Topic))
	result, err := imp.ImportFile(cmd.Context(), path, name)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s (#%d): %d players, %d teams\n",
		result.Tournament.Title(), result.Tournament.ID, len(result.Players), len(result.Teams))
	return nil
}

func resolvePath(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if tournamentID == 0 {
		return "", fmt.Errorf("pass a staging file or --tournament")
	}
	return importer.FindStagingFile(stagingDir, tournamentID)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}
