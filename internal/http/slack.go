package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/processor"
	"github.com/slack-go/slack"
)

const (
	leaderboardUsage       = "Usage: `/leaderboard <tournamentId>`. Run `/leaderboard` without arguments to list tournaments."
	leaderboardUnavailable = "Tournament stats are temporarily unavailable, please try again in a moment."
)

// respondWithSlackMsg is a helper to format and write a Slack message as an HTTP response.
func respondWithSlackMsg(w http.ResponseWriter, msg any) {
	slackMsg, ok := msg.(slack.Message)
	if !ok {
		http.Error(w, "Invalid message format for Slack", http.StatusInternalServerError)
		log.Error("Failed to cast message to slack.Message")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(slackMsg); err != nil {
		log.Error("Failed to encode slack message to JSON", "error", err)
	}
}

// LeaderboardCommandHandler returns a handler for the /leaderboard Slack command.
// Without text it lists the tournaments; with a tournament id it shows that
// tournament's top scorers. Slack shows anything but a 200 as a bare
// dispatch failure, so lookup failures are answered with a message instead.
func (s *Server) LeaderboardCommandHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Error parsing form", http.StatusBadRequest)
			return
		}
		text := strings.TrimSpace(r.FormValue("text"))
		logger.Info("Received leaderboard command", "text", text, "user", r.FormValue("user_name"))

		tournaments, err := s.Stats.ListTournaments(r.Context())
		if err != nil {
			logger.Error("Failed to get tournaments", "error", err)
			s.respondWithSlackError(w, r)
			return
		}

		var msg any
		if text == "" {
			msg, err = s.Notifier.FormatTournamentsResponse(tournaments)
		} else if tournamentID, convErr := strconv.Atoi(text); convErr != nil {
			msg, err = s.Notifier.FormatUsageResponse(leaderboardUsage)
		} else {
			var playerStats []league.PlayerStat
			playerStats, err = s.Stats.GetPlayerStats(r.Context(), tournamentID)
			if err != nil {
				logger.Error("Failed to get player stats", "tournamentId", tournamentID, "error", err)
				s.respondWithSlackError(w, r)
				return
			}
			msg, err = s.Notifier.FormatLeaderboardResponse(processor.FindTournament(tournaments, tournamentID), playerStats)
		}
		if err != nil {
			http.Error(w, "Failed to format leaderboard", http.StatusInternalServerError)
			logger.Error("Failed to format leaderboard", "error", err)
			return
		}
		respondWithSlackMsg(w, msg)
	}
}

// respondWithSlackError answers a slash command whose data could not be
// loaded with a 200 and an explanatory message.
func (s *Server) respondWithSlackError(w http.ResponseWriter, r *http.Request) {
	msg, err := s.Notifier.FormatUsageResponse(leaderboardUnavailable)
	if err != nil {
		log.FromContext(r.Context()).Error("Failed to format error response", "error", err)
		http.Error(w, "Failed to format error response", http.StatusInternalServerError)
		return
	}
	respondWithSlackMsg(w, msg)
}
