package service

import (
	"RivalEdge/internal/domain/models"
)

// DifficultyEstimator scores how hard a club's upcoming fixtures are,
// as a 1-5 average (lower is easier).
type DifficultyEstimator interface {
	Difficulty(snap *models.Snapshot, teamID, horizon int) float64
}

// PointsEstimator projects fantasy points for a player over the
// standard forward horizon given a fixture difficulty score.
type PointsEstimator interface {
	ExpectedPoints(player models.PlayerRecord, fixtureDifficulty float64) float64
	ExpectedPointsNextGW(player models.PlayerRecord, fixtureDifficulty float64) float64
}

// TransferRanker ranks candidate players and proposes squad upgrades.
type TransferRanker interface {
	TopAlternatives(snap *models.Snapshot, position models.Position, excludeIDs []int, limit int) []models.Candidate
	TransferPriorities(snap *models.Snapshot, picks []models.SquadPick, topK int) []models.TransferRecommendation
	CaptainSuggestions(snap *models.Snapshot, picks []models.SquadPick, limit int) []models.CaptainSuggestion
}

// SquadAggregator rolls per-player projections into squad summaries
// and head-to-head comparisons.
type SquadAggregator interface {
	SquadMetrics(snap *models.Snapshot, picks []models.SquadPick) models.SquadMetrics
	ComparePositions(snap *models.Snapshot, mine, rival []models.SquadPick) []models.PositionComparison
	HeadToHead(mine, rival models.TeamSummary, comparisons []models.PositionComparison) (map[string]string, []string)
}
