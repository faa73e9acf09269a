package usecase

import (
	"fmt"

	"RivalEdge/internal/domain/models"
	domsvc "RivalEdge/internal/domain/service"
)

// Aggregator rolls per-player projections into squad-level summaries and
// head-to-head comparisons.
type Aggregator struct {
	est    *Estimator
	params Params
}

func NewAggregator(est *Estimator, params Params) *Aggregator {
	return &Aggregator{est: est, params: params}
}

// SquadMetrics aggregates projections across a squad. Picks whose player
// id is absent from the snapshot are skipped silently; that is data lag,
// not an error. An empty squad yields neutral difficulty and zero totals.
func (a *Aggregator) SquadMetrics(snap *models.Snapshot, picks []models.SquadPick) models.SquadMetrics {
	players := make([]models.PlayerRecord, 0, len(picks))
	totalExpected := 0.0
	totalDifficulty := 0.0
	totalPoints := 0

	for _, pick := range picks {
		p, ok := snap.PlayerByID(pick.PlayerID)
		if !ok {
			continue
		}
		fd := a.est.Difficulty(snap, p.TeamID, a.params.Horizon)
		totalExpected += a.est.ExpectedPoints(p, fd)
		totalDifficulty += fd
		totalPoints += p.TotalPoints
		players = append(players, p)
	}

	m := models.SquadMetrics{
		Players:              players,
		TotalExpectedPoints:  totalExpected,
		AvgFixtureDifficulty: a.params.NeutralDifficulty,
	}
	if len(players) > 0 {
		n := float64(len(players))
		m.AvgFixtureDifficulty = totalDifficulty / n
		m.AvgPlayerPoints = float64(totalPoints) / n
	}
	return m
}

// TeamSummary combines entry info, squad money state, and squad metrics
// into the rollup consumers render directly. Feed money fields are in
// tenths of a million.
func (a *Aggregator) TeamSummary(info models.EntryInfo, picks models.EntryPicks, metrics models.SquadMetrics) models.TeamSummary {
	var top *models.TopPerformer
	for _, p := range metrics.Players {
		if top == nil || p.TotalPoints > top.TotalPoints {
			top = &models.TopPerformer{
				ID:          p.ID,
				Name:        p.Name,
				Team:        p.TeamShort,
				TotalPoints: p.TotalPoints,
				Price:       p.Price,
			}
		}
	}

	return models.TeamSummary{
		TeamID:              info.ID,
		TeamName:            info.TeamName,
		ManagerName:         info.ManagerName,
		TotalPoints:         info.OverallPoints,
		GameweekPoints:      info.GameweekPoints,
		OverallRank:         info.OverallRank,
		SquadValue:          float64(picks.Value) / 10.0,
		Bank:                float64(picks.Bank) / 10.0,
		TotalTransfers:      info.TotalTransfers,
		AvgPlayerPoints:     metrics.AvgPlayerPoints,
		TopPerformer:        top,
		ExpectedPointsNext5: metrics.TotalExpectedPoints,
		FixtureDifficulty:   metrics.AvgFixtureDifficulty,
	}
}

// ComparePositions classifies the advantage per position category.
// A category is omitted when either squad fields nobody there.
func (a *Aggregator) ComparePositions(snap *models.Snapshot, mine, rival []models.SquadPick) []models.PositionComparison {
	myGroups := a.groupByPosition(snap, mine)
	rivalGroups := a.groupByPosition(snap, rival)

	var comparisons []models.PositionComparison
	for _, pos := range models.Positions {
		myPlayers := myGroups[pos]
		rivalPlayers := rivalGroups[pos]
		if len(myPlayers) == 0 || len(rivalPlayers) == 0 {
			continue
		}

		myAvg := a.avgPoints(myPlayers)
		rivalAvg := a.avgPoints(rivalPlayers)
		myExpected := a.avgExpected(snap, myPlayers)
		rivalExpected := a.avgExpected(snap, rivalPlayers)

		diff := myAvg - rivalAvg
		expectedDiff := myExpected - rivalExpected
		var advantage string
		switch {
		case abs(diff) < 5 && abs(expectedDiff) < 5:
			advantage = "equal"
		case diff > 0 && expectedDiff > 0:
			advantage = "mine"
		case diff < 0 && expectedDiff < 0:
			advantage = "theirs"
		default:
			// Season points and projection disagree on the winner.
			advantage = "mixed"
		}

		comparisons = append(comparisons, models.PositionComparison{
			Position:         pos.Name(),
			MyAvgPoints:      myAvg,
			RivalAvgPoints:   rivalAvg,
			MyExpected:       myExpected,
			RivalExpected:    rivalExpected,
			Advantage:        advantage,
			PointsDifference: diff,
		})
	}
	return comparisons
}

func (a *Aggregator) groupByPosition(snap *models.Snapshot, picks []models.SquadPick) map[models.Position][]models.PlayerRecord {
	groups := make(map[models.Position][]models.PlayerRecord)
	for _, pick := range picks {
		if p, ok := snap.PlayerByID(pick.PlayerID); ok {
			groups[p.Position] = append(groups[p.Position], p)
		}
	}
	return groups
}

func (a *Aggregator) avgPoints(players []models.PlayerRecord) float64 {
	sum := 0
	for _, p := range players {
		sum += p.TotalPoints
	}
	return float64(sum) / float64(len(players))
}

func (a *Aggregator) avgExpected(snap *models.Snapshot, players []models.PlayerRecord) float64 {
	sum := 0.0
	for _, p := range players {
		fd := a.est.Difficulty(snap, p.TeamID, a.params.Horizon)
		sum += a.est.ExpectedPoints(p, fd)
	}
	return sum / float64(len(players))
}

// HeadToHead assigns each of the seven fixed dimensions to the side that
// wins it (lower is better only for rank and fixture difficulty) and
// generates the threshold-based insight sentences.
func (a *Aggregator) HeadToHead(mine, rival models.TeamSummary, comparisons []models.PositionComparison) (map[string]string, []string) {
	advantages := map[string]string{
		"overall_rank":      side(mine.OverallRank < rival.OverallRank),
		"total_points":      side(mine.TotalPoints > rival.TotalPoints),
		"gameweek_points":   side(mine.GameweekPoints > rival.GameweekPoints),
		"squad_value":       side(mine.SquadValue > rival.SquadValue),
		"bank_balance":      side(mine.Bank > rival.Bank),
		"upcoming_fixtures": side(mine.FixtureDifficulty < rival.FixtureDifficulty),
		"expected_points":   side(mine.ExpectedPointsNext5 > rival.ExpectedPointsNext5),
	}

	var insights []string

	pointsGap := mine.TotalPoints - rival.TotalPoints
	if abs(float64(pointsGap)) > 100 {
		leader := "You"
		if pointsGap < 0 {
			leader = "Your rival"
		}
		insights = append(insights, fmt.Sprintf("%s have a significant %d point lead this season", leader, absInt(pointsGap)))
	}

	gwGap := mine.GameweekPoints - rival.GameweekPoints
	if absInt(gwGap) > 20 {
		better := "You"
		best := mine.GameweekPoints
		if gwGap < 0 {
			better = "Your rival"
			best = rival.GameweekPoints
		}
		insights = append(insights, fmt.Sprintf("%s had the better gameweek (%d pts)", better, best))
	}

	if abs(mine.FixtureDifficulty-rival.FixtureDifficulty) > 0.5 {
		better := "You"
		if mine.FixtureDifficulty > rival.FixtureDifficulty {
			better = "Your rival"
		}
		insights = append(insights, fmt.Sprintf("%s have significantly easier upcoming fixtures", better))
	}

	myWins, rivalWins := 0, 0
	for _, pc := range comparisons {
		switch pc.Advantage {
		case "mine":
			myWins++
		case "theirs":
			rivalWins++
		}
	}
	if myWins > rivalWins {
		insights = append(insights, fmt.Sprintf("You have the stronger squad in %d out of %d positions", myWins, len(comparisons)))
	} else if rivalWins > myWins {
		insights = append(insights, fmt.Sprintf("Your rival has the stronger squad in %d out of %d positions", rivalWins, len(comparisons)))
	}

	if mine.TotalTransfers < rival.TotalTransfers {
		insights = append(insights, "You've been more transfer-efficient this season")
	} else if rival.TotalTransfers < mine.TotalTransfers {
		insights = append(insights, "Your rival has been more transfer-efficient this season")
	}

	return advantages, insights
}

// BudgetInsights summarizes spending headroom and free-transfer state.
func (a *Aggregator) BudgetInsights(bank float64, freeTransfers int) []string {
	var insights []string
	switch {
	case bank >= 5:
		insights = append(insights, fmt.Sprintf("Strong budget position (£%.1fM) allows premium upgrades", bank))
	case bank >= 2:
		insights = append(insights, fmt.Sprintf("Decent budget (£%.1fM) for mid-range improvements", bank))
	default:
		insights = append(insights, fmt.Sprintf("Tight budget (£%.1fM) - consider generating funds first", bank))
	}

	switch {
	case freeTransfers >= 2:
		insights = append(insights, fmt.Sprintf("Multiple free transfers (%d) available", freeTransfers))
	case freeTransfers == 1:
		insights = append(insights, "One free transfer - choose wisely")
	default:
		insights = append(insights, "No free transfers - changes will cost points")
	}
	return insights
}

func side(mineWins bool) string {
	if mineWins {
		return "mine"
	}
	return "theirs"
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

var _ domsvc.SquadAggregator = (*Aggregator)(nil)
