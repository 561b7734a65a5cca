package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mauv0809/mundialito/internal/config"
	"github.com/mauv0809/mundialito/internal/metrics"
	"github.com/mauv0809/mundialito/internal/notifier"
	"github.com/mauv0809/mundialito/internal/processor"
	"github.com/mauv0809/mundialito/internal/pubsub"
	"github.com/mauv0809/mundialito/internal/stats"
)

func NewServer(statsSvc *stats.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier, processor *processor.Processor, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Stats:          statsSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Processor:      processor,
		Router:         mux.NewRouter(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Slack endpoints additionally verify the request signature.
	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(s.HealthCheckHandler(), requestIDMiddleware, paramsMiddleware))

	api := s.Router.PathPrefix("/api").Subrouter()
	api.Handle("/tournaments", Chain(s.ListTournamentsHandler(), requestIDMiddleware, paramsMiddleware)).Methods(http.MethodGet)
	api.Handle("/tournaments/{tournamentId}/players", Chain(s.PlayerStatsHandler(), requestIDMiddleware, paramsMiddleware)).Methods(http.MethodGet)
	api.Handle("/tournaments/{tournamentId}/teams", Chain(s.TeamStatsHandler(), requestIDMiddleware, paramsMiddleware)).Methods(http.MethodGet)
	api.Handle("/tournaments/{tournamentId}/awards", Chain(s.AwardsHandler(), requestIDMiddleware, paramsMiddleware)).Methods(http.MethodGet)

	s.Router.Handle("/slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), requestIDMiddleware, paramsMiddleware, s.slackVerificationMiddleware)).Methods(http.MethodPost)
	s.Router.Handle("/pubsub/tournament-imported", Chain(s.TournamentImportedHandler(), requestIDMiddleware, paramsMiddleware)).Methods(http.MethodPost)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
