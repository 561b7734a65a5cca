package importer

import (
	"errors"

	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/pubsub"
)

// ErrInvalidCSV is returned for staging files that cannot be imported as-is.
var ErrInvalidCSV = errors.New("invalid staging csv")

// RequiredColumns are the staging columns the aggregation reads.
var RequiredColumns = []string{
	"PlayerId",
	"MundialitoId",
	"TeamId",
	"WL",
	"Goals",
	"Assists",
	"CleanSheet",
	"GoalsConceded",
	"PlayerName",
	"TeamName",
	"TeamAbbr",
}

// AwardColumns are optional staging columns flagging a player's awards. A
// missing column or empty cell reads as false.
var AwardColumns = []string{"IsMVP", "IsGoldenBoot", "IsPlaymaker"}

// GameRow is one player's line for one game in the staging file.
// CleanSheet and GoalsConceded are nil when the cell is empty.
type GameRow struct {
	PlayerID      int
	TournamentID  int
	TeamID        int
	Result        string
	Goals         int
	Assists       int
	CleanSheet    *int
	GoalsConceded *int
	PlayerName    string
	TeamName      string
	TeamAbbr      string
	IsMVP         bool
	IsGoldenBoot  bool
	IsPlaymaker   bool
}

// Importer loads staging files into the store and announces finished imports.
type Importer struct {
	writer    league.Writer
	publisher pubsub.PubSubClient
	topic     pubsub.EventType
}
