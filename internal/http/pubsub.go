package http

import (
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/pubsub"
)

// TournamentImportedHandler receives TournamentImported events from a Pub/Sub
// push subscription and posts the tournament's leaderboard to Slack.
// Non-2xx responses make Pub/Sub redeliver, so only transient failures return them.
func (s *Server) TournamentImportedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.FromContext(r.Context())
		bodyBytes, err := io.ReadAll(r.Body)
		if err != nil {
			logger.Error("Failed to read request body", "error", err)
			http.Error(w, "Failed to read request body", http.StatusInternalServerError)
			return
		}
		logger.Debug("Received tournament imported message", "body", string(bodyBytes))

		var msg pushMessage
		if err := json.Unmarshal(bodyBytes, &msg); err != nil {
			logger.Error("Failed to unmarshal wrapper JSON", "error", err)
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}
		rawData, err := base64.StdEncoding.DecodeString(msg.Message.Data)
		if err != nil {
			logger.Error("Failed to decode base64 data", "error", err)
			http.Error(w, "Invalid base64 data", http.StatusBadRequest)
			return
		}
		var event pubsub.TournamentImported
		if err := s.pubsub.ProcessMessage(rawData, &event); err != nil {
			http.Error(w, "Invalid message payload", http.StatusBadRequest)
			return
		}
		logger.Info("Tournament imported", "tournamentId", event.TournamentID, "statRows", event.StatRows, "messageId", msg.Message.ID)

		if err := s.Processor.AnnounceTournament(r.Context(), event, isDryRunFromContext(r)); err != nil {
			logger.Error("Failed to announce tournament", "tournamentId", event.TournamentID, "error", err)
			http.Error(w, "Failed to announce tournament", statusFor(err))
			return
		}
		w.Write([]byte("OK"))
	}
}
