package fplapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RivalEdge/internal/domain/models"
)

const bootstrapBody = `{
	"elements": [
		{
			"id": 1, "first_name": "Bukayo", "second_name": "Saka",
			"element_type": 3, "team": 1, "now_cost": 95, "cost_change_event": 1,
			"total_points": 120, "points_per_game": "6.3", "form": "7.2",
			"selected_by_percent": "45.1", "minutes": 1500
		},
		{
			"id": 2, "first_name": "New", "second_name": "Signing",
			"element_type": 4, "team": 2, "now_cost": 70,
			"total_points": 0, "points_per_game": "", "form": "-",
			"selected_by_percent": "0.3", "minutes": 0
		}
	],
	"teams": [
		{"id": 1, "name": "Arsenal", "short_name": "ARS"},
		{"id": 2, "name": "Chelsea", "short_name": "CHE"}
	],
	"events": [
		{"id": 9, "is_current": false, "finished": true},
		{"id": 10, "is_current": true, "finished": false}
	]
}`

const fixturesBody = `[
	{"event": 10, "team_h": 1, "team_a": 2, "team_h_difficulty": 2, "team_a_difficulty": 4, "finished": false},
	{"event": null, "team_h": 2, "team_a": 1, "team_h_difficulty": 3, "team_a_difficulty": 3, "finished": false}
]`

func testServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchBootstrapParsesStringNumerics(t *testing.T) {
	srv := testServer(t, map[string]string{"/bootstrap-static/": bootstrapBody})
	client := New(srv.URL)

	bootstrap, err := client.FetchBootstrap(context.Background())
	require.NoError(t, err)
	require.Len(t, bootstrap.Players, 2)

	saka := bootstrap.Players[0]
	assert.Equal(t, "Bukayo Saka", saka.Name)
	assert.Equal(t, models.Midfielder, saka.Position)
	assert.Equal(t, "MID", saka.PositionName)
	assert.Equal(t, "ARS", saka.TeamShort)
	assert.Equal(t, 95, saka.Cost)
	assert.InDelta(t, 9.5, saka.Price, 1e-9)
	assert.InDelta(t, 0.1, saka.PriceChange, 1e-9)
	assert.InDelta(t, 7.2, saka.Form, 1e-9)
	assert.InDelta(t, 6.3, saka.PointsPerGame, 1e-9)
	assert.InDelta(t, 45.1, saka.Ownership, 1e-9)

	// Empty and non-numeric stat strings parse to zero.
	signing := bootstrap.Players[1]
	assert.Equal(t, 0.0, signing.Form)
	assert.Equal(t, 0.0, signing.PointsPerGame)

	assert.Equal(t, 10, bootstrap.CurrentGameweek)
	assert.Len(t, bootstrap.Teams, 2)
}

func TestFetchBootstrapDefaultsGameweek(t *testing.T) {
	body := `{"elements": [], "teams": [], "events": [{"id": 1, "is_current": false}]}`
	srv := testServer(t, map[string]string{"/bootstrap-static/": body})
	client := New(srv.URL)

	bootstrap, err := client.FetchBootstrap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, bootstrap.CurrentGameweek)
}

func TestFetchFixturesNullEvent(t *testing.T) {
	srv := testServer(t, map[string]string{"/fixtures/": fixturesBody})
	client := New(srv.URL)

	fixtures, err := client.FetchFixtures(context.Background())
	require.NoError(t, err)
	require.Len(t, fixtures, 2)

	assert.Equal(t, 10, fixtures[0].Gameweek)
	assert.Equal(t, 2, fixtures[0].HomeDifficulty)
	assert.Equal(t, 4, fixtures[0].AwayDifficulty)
	// Unscheduled fixtures carry gameweek 0.
	assert.Equal(t, 0, fixtures[1].Gameweek)
}

func TestFetchEntry(t *testing.T) {
	body := `{
		"id": 7, "name": "My XI",
		"player_first_name": "Alex", "player_last_name": "Doe",
		"summary_overall_points": 1200, "summary_event_points": 60,
		"summary_overall_rank": 5000, "summary_total_transfers": 12
	}`
	srv := testServer(t, map[string]string{"/entry/7/": body})
	client := New(srv.URL)

	entry, err := client.FetchEntry(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "My XI", entry.TeamName)
	assert.Equal(t, "Alex Doe", entry.ManagerName)
	assert.Equal(t, 1200, entry.OverallPoints)
	assert.Equal(t, 12, entry.TotalTransfers)
}

func TestFetchEntryPicks(t *testing.T) {
	body := `{
		"entry_history": {"value": 1023, "bank": 25, "event_transfers_cost": 1},
		"picks": [
			{"element": 1, "position": 1, "multiplier": 2, "is_captain": true, "is_vice_captain": false}
		]
	}`
	srv := testServer(t, map[string]string{"/entry/7/event/10/picks/": body})
	client := New(srv.URL)

	picks, err := client.FetchEntryPicks(context.Background(), 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 1023, picks.Value)
	assert.Equal(t, 25, picks.Bank)
	assert.Equal(t, 1, picks.FreeTransfers)
	require.Len(t, picks.Picks, 1)
	assert.Equal(t, 1, picks.Picks[0].PlayerID)
	assert.True(t, picks.Picks[0].IsCaptain)
}

func TestFetchLeagueStandings(t *testing.T) {
	body := `{
		"league": {"id": 42, "name": "Office League"},
		"standings": {
			"has_next": true,
			"page": 1,
			"results": [
				{"entry": 7, "entry_name": "My XI", "player_name": "Alex Doe",
				 "rank": 1, "last_rank": 2, "total": 1200, "event_total": 60}
			]
		}
	}`
	srv := testServer(t, map[string]string{"/leagues-classic/42/standings/": body})
	client := New(srv.URL)

	standings, err := client.FetchLeagueStandings(context.Background(), 42, 1)
	require.NoError(t, err)
	assert.Equal(t, 42, standings.LeagueID)
	assert.Equal(t, "Office League", standings.LeagueName)
	assert.True(t, standings.HasNext)
	require.Len(t, standings.Entries, 1)
	assert.Equal(t, 7, standings.Entries[0].EntryID)
	assert.Equal(t, 2, standings.Entries[0].LastRank)
	assert.Equal(t, 1200, standings.Entries[0].TotalPoints)
}

func TestFetchEntryNotFound(t *testing.T) {
	srv := testServer(t, map[string]string{})
	client := New(srv.URL)

	_, err := client.FetchEntry(context.Background(), 404404)
	assert.Error(t, err)
}
