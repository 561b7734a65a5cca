package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/mauv0809/mundialito/internal/stats"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.FromContext(r.Context()).Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// ListTournamentsHandler serves every tournament in ascending id order.
func (s *Server) ListTournamentsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournaments, err := s.Stats.ListTournaments(r.Context())
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to list tournaments", "error", err)
			respondWithError(w, statusFor(err), "Failed to retrieve tournaments")
			return
		}
		respondWithJSON(w, http.StatusOK, tournaments)
	}
}

// PlayerStatsHandler serves the ranked player stats of one tournament.
// An unknown tournament yields an empty array.
func (s *Server) PlayerStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromPath(w, r)
		if !ok {
			return
		}

		playerStats, err := s.Stats.GetPlayerStats(r.Context(), tournamentID)
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to get player stats", "tournamentId", tournamentID, "error", err)
			respondWithError(w, statusFor(err), "Failed to retrieve player stats")
			return
		}
		respondWithJSON(w, http.StatusOK, playerStats)
	}
}

// TeamStatsHandler serves the team standings of one tournament.
func (s *Server) TeamStatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromPath(w, r)
		if !ok {
			return
		}

		standings, err := s.Stats.GetTeamStats(r.Context(), tournamentID)
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to get team stats", "tournamentId", tournamentID, "error", err)
			respondWithError(w, statusFor(err), "Failed to retrieve team stats")
			return
		}
		respondWithJSON(w, http.StatusOK, standings)
	}
}

// AwardsHandler serves the award winners of one tournament.
func (s *Server) AwardsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tournamentID, ok := tournamentIDFromPath(w, r)
		if !ok {
			return
		}

		awards, err := s.Stats.GetAwards(r.Context(), tournamentID)
		if err != nil {
			log.FromContext(r.Context()).Error("Failed to get awards", "tournamentId", tournamentID, "error", err)
			respondWithError(w, statusFor(err), "Failed to retrieve awards")
			return
		}
		respondWithJSON(w, http.StatusOK, awards)
	}
}

// tournamentIDFromPath parses the {tournamentId} route variable, answering
// 400 when it is not an integer.
func tournamentIDFromPath(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := mux.Vars(r)["tournamentId"]
	tournamentID, err := strconv.Atoi(raw)
	if err != nil {
		log.FromContext(r.Context()).Debug("Invalid tournament id", "tournamentId", raw)
		respondWithError(w, http.StatusBadRequest, fmt.Sprintf("tournamentId must be an integer, got %q", raw))
		return 0, false
	}
	return tournamentID, true
}

// statusFor maps core errors to HTTP status codes.
func statusFor(err error) int {
	if errors.Is(err, stats.ErrRetrieval) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func respondWithJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to write response", "error", err)
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: message})
}
