package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/metrics"
	"github.com/mauv0809/mundialito/internal/notifier"
	"github.com/slack-go/slack"
)

// maxLeaderboardRows caps how many players a leaderboard message lists.
const maxLeaderboardRows = 10

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts rankings to Slack.
type Notifier struct {
	api       slackClient
	channelID string
	metrics   metrics.Metrics
}

// NewNotifier creates a new Notifier.
func NewNotifier(token, channelID string, metrics metrics.Metrics) *Notifier {
	api := slack.New(token)
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		metrics:   metrics,
	}
}

func (s *Notifier) sendMessage(message slack.Message, dryRun bool) (string, string, error) {
	if dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)

	if err != nil {
		s.metrics.IncSlackNotifFailed()
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	s.metrics.IncSlackNotifSent()
	log.Info("Successfully sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

func (s *Notifier) SendLeaderboard(tournament league.Tournament, stats []league.PlayerStat, dryRun bool) error {
	msg := s.formatLeaderboard(tournament, stats)
	_, _, err := s.sendMessage(msg, dryRun)
	return err
}

// FormatLeaderboardResponse formats a leaderboard message for a slash command response.
func (s *Notifier) FormatLeaderboardResponse(tournament league.Tournament, stats []league.PlayerStat) (any, error) {
	return s.formatLeaderboard(tournament, stats), nil
}

// FormatTournamentsResponse formats the tournament list for a slash command response.
func (s *Notifier) FormatTournamentsResponse(tournaments []league.Tournament) (any, error) {
	return s.formatTournaments(tournaments), nil
}

// FormatUsageResponse formats a help message for a malformed slash command.
func (s *Notifier) FormatUsageResponse(usage string) (any, error) {
	text := slack.NewTextBlockObject("mrkdwn", usage, false, false)
	return slack.NewBlockMessage(slack.NewSectionBlock(text, nil, nil)), nil
}

// formatLeaderboard creates a Slack message listing the top scorers of a tournament.
func (s *Notifier) formatLeaderboard(tournament league.Tournament, stats []league.PlayerStat) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", fmt.Sprintf("🏆 %s Top Scorers 🏆", tournament.Title()), true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats recorded for this tournament.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	for i, stat := range stats {
		if i == maxLeaderboardRows {
			remaining := len(stats) - maxLeaderboardRows
			more := slack.NewTextBlockObject("plain_text", fmt.Sprintf("…and %d more", remaining), true, false)
			blocks = append(blocks, slack.NewContextBlock("", more))
			break
		}
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		playerText := fmt.Sprintf("%d. %s %s (%s)\n> Goals: %d | Assists: %d | Record: %d-%d-%d in %d | Clean sheets: %s | Conceded: %s",
			rank,
			medal,
			stat.PlayerName,
			stat.TeamAbbr,
			stat.Goals,
			stat.Assists,
			stat.GamesWon,
			stat.GamesDrawn,
			stat.GamesLost,
			stat.GamesPlayed,
			formatOptional(stat.CleanSheets),
			formatOptional(stat.GoalsConceded),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", playerText, true, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

// formatTournaments creates a Slack message listing every tournament.
func (s *Notifier) formatTournaments(tournaments []league.Tournament) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "⚽ Mundialitos ⚽", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(tournaments) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No tournaments yet.", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	lines := make([]string, 0, len(tournaments))
	for _, t := range tournaments {
		line := fmt.Sprintf("• #%d %s", t.ID, t.Title())
		if t.Date != "" {
			line += " (" + t.Date + ")"
		}
		lines = append(lines, line)
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	return slack.NewBlockMessage(blocks...)
}

// formatOptional renders metrics that older tournaments never recorded as "n/a".
func formatOptional(v *int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d", *v)
}
