package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamsCmd)
	rootCmd.AddCommand(awardsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/health")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List all tournaments",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/api/tournaments")
	},
}

var playersCmd = tournamentCommand("players", "Show the ranked player stats of a tournament")

var teamsCmd = tournamentCommand("teams", "Show the team standings of a tournament")

var awardsCmd = tournamentCommand("awards", "Show the award winners of a tournament")

// tournamentCommand builds a command that fetches /api/tournaments/<id>/<resource>.
func tournamentCommand(resource, short string) *cobra.Command {
	return &cobra.Command{
		Use:   resource + " <tournamentId>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("tournament id must be an integer: %w", err)
			}
			return performGetRequest(cmd.OutOrStdout(), fmt.Sprintf("/api/tournaments/%d/%s", id, resource))
		},
	}
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest(cmd.OutOrStdout(), "/metrics")
	},
}

func performGetRequest(out io.Writer, endpoint string) error {
	url := host + endpoint
	fmt.Fprintf(out, "Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Fprintf(out, "Status Code: %d\n", resp.StatusCode)
	fmt.Fprintln(out, "Response Body:")
	fmt.Fprintln(out, string(body))

	return nil
}
