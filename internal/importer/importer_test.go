package importer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mauv0809/mundialito/internal/database"
	"github.com/mauv0809/mundialito/internal/importer"
	"github.com/mauv0809/mundialito/internal/league"
	"github.com/mauv0809/mundialito/internal/metrics"
	"github.com/mauv0809/mundialito/internal/pubsub"
	"github.com/mauv0809/mundialito/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const staging = `PlayerId,MundialitoId,TeamId,WL,Goals,Assists,CleanSheet,GoalsConceded,PlayerName,TeamName,TeamAbbr,IsNewPlayer,IsNewTeam,IsMVP,IsGoldenBoot,IsPlaymaker
10,7,100,W,2,1,1,0,Ana,Los Tigres,TIG,True,True,True,True,False
11,7,101,L,0,0,0,2,Bruno,Las Aguilas,AGU,True,True,False,False,False
10,7,100,D,1,0,0,1,Ana,Los Tigres,TIG,False,False,False,False,False
11,7,101,D,1,3,0,1,Bruno,Las Aguilas,AGU,False,False,False,False,True
`

func writeStaging(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportFile_WritesAndAnnounces(t *testing.T) {
	store := league.NewMock()
	publisher := pubsub.NewMock("")
	imp := importer.New(store, publisher, "")

	path := writeStaging(t, "mundialito_7_2025-07-12.csv", staging)
	result, err := imp.ImportFile(context.Background(), path, "")
	require.NoError(t, err)

	assert.Equal(t, 7, result.Tournament.ID)
	assert.Equal(t, "2025-07-12", result.Tournament.Date)
	require.Len(t, store.ImportTournamentCalls, 1)
	assert.Equal(t, result, store.ImportTournamentCalls[0])

	require.Len(t, publisher.SendMessageCalls, 1)
	assert.Equal(t, string(pubsub.EventTournamentImported), publisher.SendMessageCalls[0].Topic)
	assert.Equal(t, pubsub.TournamentImported{TournamentID: 7, Name: "Mundialito 7", Players: 2, StatRows: 2}, publisher.SendMessageCalls[0].Data)
}

func TestImportFile_InvalidCSVWritesNothing(t *testing.T) {
	store := league.NewMock()
	publisher := pubsub.NewMock("")
	imp := importer.New(store, publisher, "")

	path := writeStaging(t, "mundialito_7.csv", "PlayerId,Goals\n1,2\n")
	_, err := imp.ImportFile(context.Background(), path, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, importer.ErrInvalidCSV))
	assert.Empty(t, store.ImportTournamentCalls)
	assert.Empty(t, publisher.SendMessageCalls)
}

func TestImport_StoreFailureSkipsAnnouncement(t *testing.T) {
	storeErr := errors.New("disk full")
	store := league.NewMock()
	store.ImportTournamentFunc = func(ctx context.Context, imp league.TournamentImport) error {
		return storeErr
	}
	publisher := pubsub.NewMock("")

	err := importer.New(store, publisher, "").Import(context.Background(), league.TournamentImport{Tournament: league.Tournament{ID: 7}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, storeErr))
	assert.Empty(t, publisher.SendMessageCalls)
}

func TestImport_PublishFailureKeepsImport(t *testing.T) {
	store := league.NewMock()
	publisher := pubsub.NewMock("")
	publisher.SendMessageFunc = func(topic pubsub.EventType, data any) error {
		return errors.New("topic not found")
	}

	err := importer.New(store, publisher, "custom-topic").Import(context.Background(), league.TournamentImport{Tournament: league.Tournament{ID: 7}})
	require.NoError(t, err)
	require.Len(t, publisher.SendMessageCalls, 1)
	assert.Equal(t, "custom-topic", publisher.SendMessageCalls[0].Topic)
}

func TestImportFile_RoundTripThroughStats(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()
	store := league.New(db)

	path := writeStaging(t, "mundialito_7_2025-07-12.csv", staging)
	_, err = importer.New(store, nil, "").ImportFile(context.Background(), path, "")
	require.NoError(t, err)

	svc := stats.New(store, metrics.NewMock())
	tournaments, err := svc.ListTournaments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []league.Tournament{{ID: 7, Name: "Mundialito 7", Date: "2025-07-12"}}, tournaments)

	ranked, err := svc.GetPlayerStats(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Ana", ranked[0].PlayerName)
	assert.Equal(t, 3, ranked[0].Goals)
	assert.Equal(t, 2, ranked[0].GamesPlayed)
	assert.Equal(t, "Bruno", ranked[1].PlayerName)
	assert.Equal(t, 3, ranked[1].Assists)
	require.NotNil(t, ranked[1].GoalsConceded)
	assert.Equal(t, 3, *ranked[1].GoalsConceded)

	standings, err := svc.GetTeamStats(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, standings, 2)
	assert.Equal(t, "Los Tigres", standings[0].TeamName)
	assert.True(t, standings[0].IsChampion)
	assert.Equal(t, 1, standings[0].GamesWon)
	assert.False(t, standings[1].IsChampion)

	awards, err := svc.GetAwards(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []league.AwardStat{
		{PlayerID: 10, PlayerName: "Ana", TournamentID: 7, IsMVP: true, IsGoldenBoot: true},
		{PlayerID: 11, PlayerName: "Bruno", TournamentID: 7, IsPlaymaker: true},
	}, awards)

	// Re-importing replaces rather than duplicates.
	_, err = importer.New(store, nil, "").ImportFile(context.Background(), path, "")
	require.NoError(t, err)
	ranked, err = svc.GetPlayerStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, ranked, 2)
	standings, err = svc.GetTeamStats(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, standings, 2)
}

func TestImportFile_ReimportKeepsTournamentName(t *testing.T) {
	db, teardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)
	defer teardown()
	store := league.New(db)
	imp := importer.New(store, nil, "")
	ctx := context.Background()

	_, err = imp.ImportFile(ctx, writeStaging(t, "mundialito_7_2025-07-12.csv", staging), "Winter Cup")
	require.NoError(t, err)

	// A corrected staging file without a date, imported without --name.
	_, err = imp.ImportFile(ctx, writeStaging(t, "mundialito_7.csv", staging), "")
	require.NoError(t, err)

	tournaments, err := store.ListTournaments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []league.Tournament{{ID: 7, Name: "Winter Cup", Date: "2025-07-12"}}, tournaments)
}
