package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RivalEdge/internal/domain/models"
	xlogger "RivalEdge/pkg/logger"
)

type fakeGateway struct {
	bootstrap    *models.Bootstrap
	fixtures     []models.FixtureRecord
	entry        *models.EntryInfo
	picks        *models.EntryPicks
	bootstrapErr error
	fixturesErr  error
	entryErr     error
	picksErr     error

	bootstrapCalls int
	picksCalls     int
}

func (f *fakeGateway) FetchBootstrap(ctx context.Context) (*models.Bootstrap, error) {
	f.bootstrapCalls++
	if f.bootstrapErr != nil {
		return nil, f.bootstrapErr
	}
	return f.bootstrap, nil
}

func (f *fakeGateway) FetchFixtures(ctx context.Context) ([]models.FixtureRecord, error) {
	if f.fixturesErr != nil {
		return nil, f.fixturesErr
	}
	return f.fixtures, nil
}

func (f *fakeGateway) FetchEntry(ctx context.Context, teamID int) (*models.EntryInfo, error) {
	if f.entryErr != nil {
		return nil, f.entryErr
	}
	return f.entry, nil
}

func (f *fakeGateway) FetchEntryPicks(ctx context.Context, teamID, gameweek int) (*models.EntryPicks, error) {
	f.picksCalls++
	if f.picksErr != nil {
		return nil, f.picksErr
	}
	return f.picks, nil
}

func (f *fakeGateway) FetchLeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	return &models.LeagueStandings{
		LeagueID:   leagueID,
		LeagueName: "Test League",
		Page:       page,
		Entries: []models.LeagueEntry{
			{EntryID: 7, TeamName: "My XI", Rank: 1, TotalPoints: 1200},
			{EntryID: 8, TeamName: "Rival XI", Rank: 2, TotalPoints: 1150},
		},
	}, nil
}

type noopMetrics struct{}

func (noopMetrics) RecordRefresh(bool, float64)    {}
func (noopMetrics) RecordSnapshotSize(int, int)    {}
func (noopMetrics) RecordGatewayError(string)      {}
func (noopMetrics) RecordAnalysis(string, float64) {}

func testLogger(t *testing.T) *xlogger.Logger {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)
	return log
}

func testBootstrap() *models.Bootstrap {
	return &models.Bootstrap{
		Players: []models.PlayerRecord{
			{ID: 1, Name: "Someone", Position: models.Midfielder, PositionName: "MID", TeamID: 1,
				Form: 4.0, PointsPerGame: 4.0, TotalPoints: 80, Cost: 70, Minutes: 900},
		},
		Teams: map[int]models.TeamRecord{
			1: {ID: 1, Name: "Arsenal", ShortName: "ARS"},
			2: {ID: 2, Name: "Chelsea", ShortName: "CHE"},
		},
		Events:          []models.GameweekEvent{{ID: 10, IsCurrent: true}},
		CurrentGameweek: 10,
	}
}

func testFixtures() []models.FixtureRecord {
	return []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 2, AwayDifficulty: 4},
	}
}

func TestRefreshStoresSnapshot(t *testing.T) {
	gw := &fakeGateway{bootstrap: testBootstrap(), fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	require.NoError(t, store.Refresh(context.Background()))

	snap := store.Current()
	require.NotNil(t, snap)
	assert.Len(t, snap.Players, 1)
	assert.Len(t, snap.Fixtures, 1)
	assert.Equal(t, 10, snap.CurrentGameweek)
}

func TestRefreshBootstrapFailure(t *testing.T) {
	gw := &fakeGateway{bootstrapErr: errors.New("boom")}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	err := store.Refresh(context.Background())
	require.Error(t, err)
	assert.Nil(t, store.Current())
}

func TestRefreshRejectsUnknownTeamReference(t *testing.T) {
	bootstrap := testBootstrap()
	bootstrap.Players[0].TeamID = 99
	gw := &fakeGateway{bootstrap: bootstrap, fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	require.Error(t, store.Refresh(context.Background()))
	assert.Nil(t, store.Current())
}

func TestEnsureLoadedRefreshesLazily(t *testing.T) {
	gw := &fakeGateway{bootstrap: testBootstrap(), fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	snap, err := store.EnsureLoaded(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, 1, gw.bootstrapCalls)

	// Fresh snapshot: no second fetch.
	_, err = store.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, gw.bootstrapCalls)
}

func TestEnsureLoadedServesStaleOnFailure(t *testing.T) {
	gw := &fakeGateway{bootstrap: testBootstrap(), fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Nanosecond)

	require.NoError(t, store.Refresh(context.Background()))
	time.Sleep(time.Millisecond)

	gw.bootstrapErr = errors.New("upstream down")
	snap, err := store.EnsureLoaded(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, snap)
}

func TestEnsureLoadedErrWhenNothingHeld(t *testing.T) {
	gw := &fakeGateway{bootstrapErr: errors.New("upstream down")}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	_, err := store.EnsureLoaded(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDataUnavailable)
}

func TestSnapshotDefaultsGameweek(t *testing.T) {
	bootstrap := testBootstrap()
	bootstrap.Events = []models.GameweekEvent{{ID: 10}}
	bootstrap.CurrentGameweek = 0
	gw := &fakeGateway{bootstrap: bootstrap, fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	require.NoError(t, store.Refresh(context.Background()))
	assert.Equal(t, 1, store.Current().CurrentGameweek)
}

func TestStatusReporting(t *testing.T) {
	gw := &fakeGateway{bootstrap: testBootstrap(), fixtures: testFixtures()}
	store := NewSnapshotStore(gw, noopMetrics{}, testLogger(t), time.Hour)

	assert.False(t, store.Status().Loaded)

	require.NoError(t, store.Refresh(context.Background()))
	status := store.Status()
	assert.True(t, status.Loaded)
	assert.Equal(t, 1, status.Players)
	assert.Equal(t, 1, status.Fixtures)
	assert.Equal(t, 10, status.CurrentGameweek)
}
