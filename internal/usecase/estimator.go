package usecase

import (
	"sort"

	"RivalEdge/internal/domain/models"
	domsvc "RivalEdge/internal/domain/service"
)

// Estimator computes fixture difficulty and expected points. It is pure:
// every result is a function of the snapshot passed in, nothing is cached.
type Estimator struct {
	params Params
}

func NewEstimator(params Params) *Estimator {
	return &Estimator{params: params}
}

type taggedFixture struct {
	difficulty float64
	isHome     bool
	gameweek   int
}

// Difficulty averages the clamped difficulty of the team's next `horizon`
// unfinished fixtures. Home fixtures get the home-advantage discount
// before clamping to [1, 5]. No qualifying fixtures yields the neutral 3.0.
func (e *Estimator) Difficulty(snap *models.Snapshot, teamID, horizon int) float64 {
	var team []taggedFixture
	for _, fx := range snap.Fixtures {
		if fx.Finished {
			continue
		}
		switch teamID {
		case fx.HomeTeamID:
			team = append(team, taggedFixture{difficulty: float64(fx.HomeDifficulty), isHome: true, gameweek: fx.Gameweek})
		case fx.AwayTeamID:
			team = append(team, taggedFixture{difficulty: float64(fx.AwayDifficulty), isHome: false, gameweek: fx.Gameweek})
		}
	}

	sort.SliceStable(team, func(i, j int) bool { return team[i].gameweek < team[j].gameweek })
	if len(team) > horizon {
		team = team[:horizon]
	}
	if len(team) == 0 {
		return e.params.NeutralDifficulty
	}

	sum := 0.0
	for _, f := range team {
		d := f.difficulty
		if f.isHome {
			d -= e.params.HomeAdvantage
		}
		sum += clamp(d, 1.0, 5.0)
	}
	return sum / float64(len(team))
}

// ExpectedPoints projects a player's points over the standard horizon.
// Missing form or points-per-game have already parsed to 0.
func (e *Estimator) ExpectedPoints(player models.PlayerRecord, fixtureDifficulty float64) float64 {
	base := e.params.FormWeight*player.Form + e.params.PPGWeight*player.PointsPerGame
	multiplier := 1.0
	if fixtureDifficulty <= e.params.EasyThreshold {
		multiplier = e.params.EasyMultiplier
	} else if fixtureDifficulty >= e.params.HardThreshold {
		multiplier = e.params.HardMultiplier
	}
	return base * multiplier * float64(e.params.Horizon)
}

// ExpectedPointsNextGW is the single-gameweek figure. It deliberately
// reuses the horizon formula divided back down so there is one formula.
func (e *Estimator) ExpectedPointsNextGW(player models.PlayerRecord, fixtureDifficulty float64) float64 {
	return e.ExpectedPoints(player, fixtureDifficulty) / float64(e.params.Horizon)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domsvc.DifficultyEstimator = (*Estimator)(nil)
var _ domsvc.PointsEstimator = (*Estimator)(nil)
