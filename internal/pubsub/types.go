package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventTournamentImported EventType = "tournament-imported"
)

// TournamentImported announces that a tournament's stats were (re)loaded.
type TournamentImported struct {
	TournamentID int    `msgpack:"tournament_id" json:"tournamentId"`
	Name         string `msgpack:"name" json:"name"`
	Players      int    `msgpack:"players" json:"players"`
	StatRows     int    `msgpack:"stat_rows" json:"statRows"`
}
