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

type Server struct {
	Stats          *stats.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Processor      *processor.Processor
	Router         *mux.Router
	pubsub         pubsub.PubSubClient
}

// errorResponse is the JSON body of every failed API request.
type errorResponse struct {
	Error string `json:"error"`
}

// pushMessage is the envelope Pub/Sub uses for push subscriptions.
type pushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID   string `json:"messageId"`
		Data string `json:"data"` // base64-encoded msgpack payload
	} `json:"message"`
}
