package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RivalEdge/internal/domain/models"
	"RivalEdge/internal/service/cache"
	"RivalEdge/internal/usecase"
	xlogger "RivalEdge/pkg/logger"
)

type stubGateway struct {
	failBootstrap bool
	failPicks     bool
}

func (s *stubGateway) FetchBootstrap(ctx context.Context) (*models.Bootstrap, error) {
	if s.failBootstrap {
		return nil, errors.New("upstream down")
	}
	return &models.Bootstrap{
		Players: []models.PlayerRecord{
			{ID: 1, Name: "Someone", Position: models.Midfielder, PositionName: "MID", TeamID: 1,
				TeamShort: "ARS", Form: 4.0, PointsPerGame: 4.0, TotalPoints: 80, Cost: 70, Minutes: 900},
			{ID: 2, Name: "Other", Position: models.Midfielder, PositionName: "MID", TeamID: 1,
				TeamShort: "ARS", Form: 2.0, PointsPerGame: 2.0, TotalPoints: 30, Cost: 50, Minutes: 400},
		},
		Teams: map[int]models.TeamRecord{
			1: {ID: 1, Name: "Arsenal", ShortName: "ARS"},
			2: {ID: 2, Name: "Chelsea", ShortName: "CHE"},
		},
		Events:          []models.GameweekEvent{{ID: 10, IsCurrent: true}},
		CurrentGameweek: 10,
	}, nil
}

func (s *stubGateway) FetchFixtures(ctx context.Context) ([]models.FixtureRecord, error) {
	return []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 2, AwayDifficulty: 4},
	}, nil
}

func (s *stubGateway) FetchEntry(ctx context.Context, teamID int) (*models.EntryInfo, error) {
	return &models.EntryInfo{ID: teamID, TeamName: "My XI"}, nil
}

func (s *stubGateway) FetchEntryPicks(ctx context.Context, teamID, gameweek int) (*models.EntryPicks, error) {
	if s.failPicks {
		return nil, errors.New("404")
	}
	return &models.EntryPicks{Picks: []models.SquadPick{{PlayerID: 1}}, Value: 1000, Bank: 10}, nil
}

func (s *stubGateway) FetchLeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	return &models.LeagueStandings{
		LeagueID:   leagueID,
		LeagueName: "Test League",
		Page:       page,
		Entries:    []models.LeagueEntry{{EntryID: 7, TeamName: "My XI", Rank: 1}},
	}, nil
}

type silentMetrics struct{}

func (silentMetrics) RecordRefresh(bool, float64)    {}
func (silentMetrics) RecordSnapshotSize(int, int)    {}
func (silentMetrics) RecordGatewayError(string)      {}
func (silentMetrics) RecordAnalysis(string, float64) {}

func newTestHandler(t *testing.T, gw *stubGateway) *AnalysisEchoHandler {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	require.NoError(t, err)

	params := usecase.DefaultParams()
	est := usecase.NewEstimator(params)
	store := usecase.NewSnapshotStore(gw, silentMetrics{}, log, time.Hour)
	analyzer := usecase.NewTeamAnalyzer(
		store, gw,
		usecase.NewRanker(est, params),
		usecase.NewAggregator(est, params),
		silentMetrics{},
		log,
		cache.NewTTLCache(),
		time.Minute,
	)
	return NewAnalysisEchoHandler(log, analyzer)
}

func doRequest(t *testing.T, h *AnalysisEchoHandler, method, target string) map[string]interface{} {
	t.Helper()
	e := echo.New()
	h.RegisterRoutes(e)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAnalyzeEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/teams/7/analysis")
	assert.Equal(t, float64(http.StatusOK), body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(7), data["team_id"])
	assert.Equal(t, float64(10), data["current_gameweek"])
}

func TestAnalyzeEndpointRejectsBadID(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/teams/0/analysis")
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestAnalyzeEndpointTeamNotFound(t *testing.T) {
	h := newTestHandler(t, &stubGateway{failPicks: true})

	body := doRequest(t, h, http.MethodGet, "/api/teams/999999/analysis")
	assert.Equal(t, float64(http.StatusNotFound), body["status"])
}

func TestAnalyzeEndpointDataUnavailable(t *testing.T) {
	h := newTestHandler(t, &stubGateway{failBootstrap: true})

	body := doRequest(t, h, http.MethodGet, "/api/teams/7/analysis")
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["status"])
}

func TestCompareEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/teams/7/compare/8")
	assert.Equal(t, float64(http.StatusOK), body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "head_to_head_advantages")
	assert.Contains(t, data, "position_comparisons")
}

func TestAlternativesEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/alternatives?position=MID&exclude=2")
	assert.Equal(t, float64(http.StatusOK), body["status"])

	data, ok := body["data"].([]interface{})
	require.True(t, ok)
	require.Len(t, data, 1)
	first, ok := data[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(1), first["id"])
}

func TestAlternativesEndpointRequiresPosition(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/alternatives")
	assert.Equal(t, float64(http.StatusBadRequest), body["status"])
}

func TestStandingsEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodGet, "/api/leagues/42/standings")
	assert.Equal(t, float64(http.StatusOK), body["status"])

	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(42), data["league_id"])
	assert.Equal(t, float64(1), data["page"])
}

func TestSnapshotStatusEndpoint(t *testing.T) {
	h := newTestHandler(t, &stubGateway{})

	body := doRequest(t, h, http.MethodPost, "/api/snapshot/refresh")
	assert.Equal(t, float64(http.StatusOK), body["status"])

	body = doRequest(t, h, http.MethodGet, "/api/snapshot/status")
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["loaded"])
}

func TestSnapshotRefreshFailure(t *testing.T) {
	h := newTestHandler(t, &stubGateway{failBootstrap: true})

	body := doRequest(t, h, http.MethodPost, "/api/snapshot/refresh")
	assert.Equal(t, float64(http.StatusServiceUnavailable), body["status"])
}
