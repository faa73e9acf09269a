package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"RivalEdge/internal/domain/models"
)

func buildSnapshot(t *testing.T, players []models.PlayerRecord, fixtures []models.FixtureRecord, gw int) *models.Snapshot {
	t.Helper()
	teams := map[int]models.TeamRecord{
		1: {ID: 1, Name: "Arsenal", ShortName: "ARS"},
		2: {ID: 2, Name: "Chelsea", ShortName: "CHE"},
		3: {ID: 3, Name: "Liverpool", ShortName: "LIV"},
	}
	events := []models.GameweekEvent{
		{ID: gw, IsCurrent: true},
	}
	snap, err := models.NewSnapshot(players, teams, events, fixtures, gw)
	require.NoError(t, err)
	return snap
}

func TestDifficultyNeutralWithoutFixtures(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, nil, 10)

	assert.Equal(t, 3.0, est.Difficulty(snap, 1, 5))
}

func TestDifficultyIgnoresFinishedFixtures(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 9, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 5, AwayDifficulty: 5, Finished: true},
		{Gameweek: 10, HomeTeamID: 2, AwayTeamID: 1, HomeDifficulty: 4, AwayDifficulty: 2, Finished: false},
	}, 10)

	// Only the unfinished away fixture counts for team 1.
	assert.Equal(t, 2.0, est.Difficulty(snap, 1, 5))
}

func TestDifficultyHomeAdvantage(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 3, AwayDifficulty: 3},
	}, 10)

	// Team 1 plays at home and gets the discount; team 2 does not.
	assert.InDelta(t, 2.8, est.Difficulty(snap, 1, 5), 1e-9)
	assert.InDelta(t, 3.0, est.Difficulty(snap, 2, 5), 1e-9)
}

func TestDifficultyClampedToScale(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 1, AwayDifficulty: 5},
	}, 10)

	// 1 - 0.2 would dip below scale; clamp keeps it at 1.0.
	assert.Equal(t, 1.0, est.Difficulty(snap, 1, 5))
	assert.Equal(t, 5.0, est.Difficulty(snap, 2, 5))
}

func TestDifficultyHorizonTakesEarliestGameweeks(t *testing.T) {
	est := NewEstimator(DefaultParams())
	// Listed out of order; sorting must pick gameweeks 10 and 11.
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 12, HomeTeamID: 2, AwayTeamID: 1, HomeDifficulty: 1, AwayDifficulty: 5},
		{Gameweek: 10, HomeTeamID: 2, AwayTeamID: 1, HomeDifficulty: 1, AwayDifficulty: 2},
		{Gameweek: 11, HomeTeamID: 2, AwayTeamID: 1, HomeDifficulty: 1, AwayDifficulty: 4},
	}, 10)

	assert.InDelta(t, 3.0, est.Difficulty(snap, 1, 2), 1e-9)
}

func TestDifficultyWithinBounds(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 1, AwayDifficulty: 5},
		{Gameweek: 11, HomeTeamID: 3, AwayTeamID: 1, HomeDifficulty: 2, AwayDifficulty: 4},
		{Gameweek: 12, HomeTeamID: 1, AwayTeamID: 3, HomeDifficulty: 5, AwayDifficulty: 1},
	}, 10)

	for _, teamID := range []int{1, 2, 3} {
		d := est.Difficulty(snap, teamID, 5)
		assert.GreaterOrEqual(t, d, 1.0)
		assert.LessOrEqual(t, d, 5.0)
	}
}

func TestExpectedPointsMultipliers(t *testing.T) {
	est := NewEstimator(DefaultParams())
	player := models.PlayerRecord{Form: 5.0, PointsPerGame: 5.0}

	// Base is 0.6*5 + 0.4*5 = 5.0 over a 5 gameweek horizon.
	assert.InDelta(t, 30.0, est.ExpectedPoints(player, 2.0), 1e-9)
	assert.InDelta(t, 25.0, est.ExpectedPoints(player, 3.0), 1e-9)
	assert.InDelta(t, 20.0, est.ExpectedPoints(player, 4.5), 1e-9)
}

func TestExpectedPointsThresholdBoundaries(t *testing.T) {
	est := NewEstimator(DefaultParams())
	player := models.PlayerRecord{Form: 4.0, PointsPerGame: 5.0}
	base := 0.6*4.0 + 0.4*5.0

	assert.InDelta(t, base*1.2*5, est.ExpectedPoints(player, 2.5), 1e-9)
	assert.InDelta(t, base*1.0*5, est.ExpectedPoints(player, 2.6), 1e-9)
	assert.InDelta(t, base*1.0*5, est.ExpectedPoints(player, 3.9), 1e-9)
	assert.InDelta(t, base*0.8*5, est.ExpectedPoints(player, 4.0), 1e-9)
}

func TestExpectedPointsMonotoneInDifficulty(t *testing.T) {
	est := NewEstimator(DefaultParams())
	player := models.PlayerRecord{Form: 3.2, PointsPerGame: 4.1}

	easy := est.ExpectedPoints(player, 1.5)
	neutral := est.ExpectedPoints(player, 3.0)
	hard := est.ExpectedPoints(player, 4.8)

	assert.Greater(t, easy, neutral)
	assert.Greater(t, neutral, hard)
}

func TestExpectedPointsMonotoneInFormAndPPG(t *testing.T) {
	est := NewEstimator(DefaultParams())

	prev := 0.0
	for form := 0.0; form <= 10; form += 0.5 {
		got := est.ExpectedPoints(models.PlayerRecord{Form: form, PointsPerGame: 4.0}, 3.0)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}

	prev = 0.0
	for ppg := 0.0; ppg <= 10; ppg += 0.5 {
		got := est.ExpectedPoints(models.PlayerRecord{Form: 4.0, PointsPerGame: ppg}, 3.0)
		assert.GreaterOrEqual(t, got, prev)
		prev = got
	}
}

func TestExpectedPointsZeroStats(t *testing.T) {
	est := NewEstimator(DefaultParams())
	player := models.PlayerRecord{}

	assert.Equal(t, 0.0, est.ExpectedPoints(player, 2.0))
}

func TestExpectedPointsNextGW(t *testing.T) {
	est := NewEstimator(DefaultParams())
	player := models.PlayerRecord{Form: 5.0, PointsPerGame: 5.0}

	assert.InDelta(t, 6.0, est.ExpectedPointsNextGW(player, 2.0), 1e-9)
}

func TestDifficultyIsPure(t *testing.T) {
	est := NewEstimator(DefaultParams())
	snap := buildSnapshot(t, nil, []models.FixtureRecord{
		{Gameweek: 10, HomeTeamID: 1, AwayTeamID: 2, HomeDifficulty: 3, AwayDifficulty: 4},
	}, 10)

	first := est.Difficulty(snap, 1, 5)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, est.Difficulty(snap, 1, 5))
	}
}
