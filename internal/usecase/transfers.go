package usecase

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"RivalEdge/internal/domain/models"
	domsvc "RivalEdge/internal/domain/service"
)

// Ranker proposes candidate players and squad upgrades.
type Ranker struct {
	est    *Estimator
	params Params
}

func NewRanker(est *Estimator, params Params) *Ranker {
	return &Ranker{est: est, params: params}
}

// TopAlternatives ranks players of a position by expected points over the
// standard horizon. Excluded ids and players with no recorded minutes
// (unavailable or untracked) never appear. The sort is stable so ties
// keep snapshot order, which keeps results reproducible.
func (r *Ranker) TopAlternatives(snap *models.Snapshot, position models.Position, excludeIDs []int, limit int) []models.Candidate {
	excluded := make(map[int]struct{}, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = struct{}{}
	}

	var candidates []models.Candidate
	for _, p := range snap.Players {
		if p.Position != position || p.Minutes <= 0 {
			continue
		}
		if _, skip := excluded[p.ID]; skip {
			continue
		}
		fd := r.est.Difficulty(snap, p.TeamID, r.params.Horizon)
		candidates = append(candidates, models.Candidate{
			PlayerRecord:      p,
			FixtureDifficulty: fd,
			ExpectedPoints:    r.est.ExpectedPoints(p, fd),
			ValueRating:       valueRating(p),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].ExpectedPoints > candidates[j].ExpectedPoints
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}

// valueRating is season points per unit of cost, scaled by 10. The floor
// of 1 covers players whose price is unset in the feed.
func valueRating(p models.PlayerRecord) float64 {
	cost := p.Cost
	if cost < 1 {
		cost = 1
	}
	return float64(p.TotalPoints) / float64(cost) * 10
}

// TransferPriorities examines each held player and proposes replacements
// whose projected output beats the incumbent by more than the improvement
// threshold. The candidate pool excludes the whole current squad, not just
// the player being replaced, so a lateral swap with a benched teammate is
// never suggested.
func (r *Ranker) TransferPriorities(snap *models.Snapshot, picks []models.SquadPick, topK int) []models.TransferRecommendation {
	heldIDs := make([]int, 0, len(picks))
	for _, pick := range picks {
		heldIDs = append(heldIDs, pick.PlayerID)
	}

	var recommendations []models.TransferRecommendation
	for _, pick := range picks {
		player, ok := snap.PlayerByID(pick.PlayerID)
		if !ok {
			continue
		}

		fd := r.est.Difficulty(snap, player.TeamID, r.params.Horizon)
		expectedCurrent := r.est.ExpectedPoints(player, fd)

		alternatives := r.TopAlternatives(snap, player.Position, heldIDs, r.params.CandidatePool)
		var significant []models.Candidate
		for _, alt := range alternatives {
			if alt.ExpectedPoints > expectedCurrent+r.params.ImprovementThreshold {
				significant = append(significant, alt)
			}
		}
		if len(significant) == 0 {
			continue
		}

		best := significant[0]
		pointsGap := best.ExpectedPoints - expectedCurrent
		fixtureAdvantage := fd - best.FixtureDifficulty
		priority := pointsGap + fixtureAdvantage*r.params.FixtureAdvantageWeight

		carry := significant
		if len(carry) > r.params.CarryAlternatives {
			carry = carry[:r.params.CarryAlternatives]
		}

		recommendations = append(recommendations, models.TransferRecommendation{
			TransferOut: models.TransferOut{
				ID:            player.ID,
				Name:          player.Name,
				Team:          player.TeamShort,
				Position:      player.PositionName,
				TotalPoints:   player.TotalPoints,
				Form:          player.Form,
				PointsPerGame: player.PointsPerGame,
				Price:         player.Price,
			},
			TransferIn:    carry,
			PriorityScore: math.Round(priority*100) / 100,
			Reasoning:     r.reasoning(player, best, fd),
		})
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].PriorityScore > recommendations[j].PriorityScore
	})
	if len(recommendations) > topK {
		recommendations = recommendations[:topK]
	}
	return recommendations
}

// reasoning builds the rationale string from form, fixture, and point-gap
// clauses. When nothing specific applies the generic fallback is used; it
// is not an error state.
func (r *Ranker) reasoning(current models.PlayerRecord, alt models.Candidate, currentDifficulty float64) string {
	var reasons []string
	if alt.Form > current.Form+1 {
		reasons = append(reasons, fmt.Sprintf("Better recent form (%.1f vs %.1f)", alt.Form, current.Form))
	}
	if alt.FixtureDifficulty < currentDifficulty-0.5 {
		reasons = append(reasons, "Easier upcoming fixtures")
	}
	if alt.ExpectedPoints > 0 {
		gap := alt.ExpectedPoints - current.Form*float64(r.params.Horizon)
		reasons = append(reasons, fmt.Sprintf("Higher expected points (+%.1f)", gap))
	}
	if len(reasons) == 0 {
		return "Statistical upgrade recommended"
	}
	return strings.Join(reasons, "; ")
}

// CaptainSuggestions ranks held players by their single-gameweek
// projection, skipping anyone whose form is below the floor.
func (r *Ranker) CaptainSuggestions(snap *models.Snapshot, picks []models.SquadPick, limit int) []models.CaptainSuggestion {
	var suggestions []models.CaptainSuggestion
	for _, pick := range picks {
		player, ok := snap.PlayerByID(pick.PlayerID)
		if !ok {
			continue
		}
		if player.Form < r.params.CaptainMinForm {
			continue
		}
		fd := r.est.Difficulty(snap, player.TeamID, 1)
		suggestions = append(suggestions, models.CaptainSuggestion{
			ID:                   player.ID,
			Name:                 player.Name,
			Team:                 player.TeamShort,
			Position:             player.PositionName,
			Form:                 player.Form,
			PointsPerGame:        player.PointsPerGame,
			Price:                player.Price,
			FixtureDifficulty:    fd,
			ExpectedPointsNextGW: r.est.ExpectedPointsNextGW(player, fd),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].ExpectedPointsNextGW > suggestions[j].ExpectedPointsNextGW
	})
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	return suggestions
}

var _ domsvc.TransferRanker = (*Ranker)(nil)
