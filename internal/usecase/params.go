package usecase

// Params holds the engine's tunable constants. The defaults are the
// calibration the product shipped with; nothing here is derived, so they
// stay named and overridable rather than inlined.
type Params struct {
	// Horizon is the number of forward gameweeks standard projections cover.
	Horizon int
	// HomeAdvantage is subtracted from a home fixture's raw difficulty.
	HomeAdvantage float64
	// NeutralDifficulty is returned when a team has no qualifying fixtures.
	NeutralDifficulty float64

	// Fixture-run multipliers for expected points.
	EasyThreshold  float64
	HardThreshold  float64
	EasyMultiplier float64
	HardMultiplier float64

	// Expected-points base weights.
	FormWeight float64
	PPGWeight  float64

	// ImprovementThreshold is the minimum expected-points gain (over the
	// horizon) before a transfer is worth suggesting; smaller gaps are noise.
	ImprovementThreshold float64
	// FixtureAdvantageWeight scales fixture easing in the priority score.
	FixtureAdvantageWeight float64
	// CandidatePool is how many alternatives are fetched per held player.
	CandidatePool int
	// CarryAlternatives is how many qualifying candidates each
	// recommendation carries for user choice.
	CarryAlternatives int

	// CaptainMinForm filters out-of-form players from captain suggestions.
	CaptainMinForm float64
}

// DefaultParams returns the shipped calibration.
func DefaultParams() Params {
	return Params{
		Horizon:                5,
		HomeAdvantage:          0.2,
		NeutralDifficulty:      3.0,
		EasyThreshold:          2.5,
		HardThreshold:          4.0,
		EasyMultiplier:         1.2,
		HardMultiplier:         0.8,
		FormWeight:             0.6,
		PPGWeight:              0.4,
		ImprovementThreshold:   6.0,
		FixtureAdvantageWeight: 3.0,
		CandidatePool:          10,
		CarryAlternatives:      3,
		CaptainMinForm:         3.0,
	}
}
