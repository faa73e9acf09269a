package models

// Projection is a derived per-player figure, recomputed on every call.
type Projection struct {
	PlayerID          int     `json:"player_id"`
	FixtureDifficulty float64 `json:"fixture_difficulty"`
	ExpectedPoints    float64 `json:"expected_points"`
}

// Candidate is a ranked alternative produced by the transfer engine.
type Candidate struct {
	PlayerRecord
	FixtureDifficulty float64 `json:"fixture_difficulty_next_5"`
	ExpectedPoints    float64 `json:"expected_points_next_5"`
	ValueRating       float64 `json:"value_rating"`
}

// TransferOut describes the held player a recommendation replaces.
type TransferOut struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Team          string  `json:"team"`
	Position      string  `json:"position"`
	TotalPoints   int     `json:"total_points"`
	Form          float64 `json:"form"`
	PointsPerGame float64 `json:"points_per_game"`
	Price         float64 `json:"price"`
}

// TransferRecommendation pairs an outgoing player with ranked incoming
// candidates, a priority score, and a human-readable rationale.
type TransferRecommendation struct {
	TransferOut   TransferOut `json:"transfer_out"`
	TransferIn    []Candidate `json:"transfer_in"`
	PriorityScore float64     `json:"priority_score"`
	Reasoning     string      `json:"reasoning"`
}

// CaptainSuggestion ranks held players by next-gameweek projection.
type CaptainSuggestion struct {
	ID                   int     `json:"id"`
	Name                 string  `json:"name"`
	Team                 string  `json:"team"`
	Position             string  `json:"position"`
	Form                 float64 `json:"form"`
	PointsPerGame        float64 `json:"points_per_game"`
	Price                float64 `json:"price"`
	FixtureDifficulty    float64 `json:"fixture_difficulty_next_gw"`
	ExpectedPointsNextGW float64 `json:"expected_points_next_gw"`
}

// SquadMetrics aggregates projections over one squad.
type SquadMetrics struct {
	Players              []PlayerRecord `json:"players"`
	TotalExpectedPoints  float64        `json:"total_expected_points"`
	AvgFixtureDifficulty float64        `json:"avg_fixture_difficulty"`
	AvgPlayerPoints      float64        `json:"avg_player_points"`
}

// TopPerformer is the highest scoring player in a squad.
type TopPerformer struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	TotalPoints int     `json:"total_points"`
	Price       float64 `json:"price"`
}

// TeamSummary is the squad-level rollup consumers render directly.
type TeamSummary struct {
	TeamID              int           `json:"team_id"`
	TeamName            string        `json:"team_name"`
	ManagerName         string        `json:"manager_name"`
	TotalPoints         int           `json:"total_points"`
	GameweekPoints      int           `json:"gameweek_points"`
	OverallRank         int           `json:"overall_rank"`
	SquadValue          float64       `json:"squad_value"`
	Bank                float64       `json:"bank"`
	TotalTransfers      int           `json:"total_transfers"`
	AvgPlayerPoints     float64       `json:"average_player_points"`
	TopPerformer        *TopPerformer `json:"top_performer"`
	ExpectedPointsNext5 float64       `json:"squad_expected_points_next_5"`
	FixtureDifficulty   float64       `json:"squad_fixture_difficulty"`
}

// PositionComparison is one per-position head-to-head row.
// Advantage is one of "equal", "mine", "theirs", "mixed".
type PositionComparison struct {
	Position         string  `json:"position"`
	MyAvgPoints      float64 `json:"my_team_avg_points"`
	RivalAvgPoints   float64 `json:"rival_team_avg_points"`
	MyExpected       float64 `json:"my_team_expected"`
	RivalExpected    float64 `json:"rival_team_expected"`
	Advantage        string  `json:"advantage"`
	PointsDifference float64 `json:"difference"`
}

// TeamAnalysis is the full single-team analysis payload.
type TeamAnalysis struct {
	TeamID                  int                      `json:"team_id"`
	TeamSummary             TeamSummary              `json:"team_summary"`
	CurrentGameweek         int                      `json:"current_gameweek"`
	TransferRecommendations []TransferRecommendation `json:"transfer_recommendations"`
	CaptainSuggestions      []CaptainSuggestion      `json:"captain_suggestions"`
	BudgetInsights          []string                 `json:"budget_insights"`
	AnalysisTimestamp       string                   `json:"analysis_timestamp"`
}

// TeamComparison is the two-team head-to-head payload.
type TeamComparison struct {
	MyTeam              TeamSummary          `json:"my_team"`
	RivalTeam           TeamSummary          `json:"rival_team"`
	PositionComparisons []PositionComparison `json:"position_comparisons"`
	Advantages          map[string]string    `json:"head_to_head_advantages"`
	KeyInsights         []string             `json:"key_insights"`
	AnalysisTimestamp   string               `json:"analysis_timestamp"`
}

// SnapshotStatus reports reference data freshness for operators.
type SnapshotStatus struct {
	Loaded          bool    `json:"loaded"`
	Players         int     `json:"players"`
	Fixtures        int     `json:"fixtures"`
	CurrentGameweek int     `json:"current_gameweek"`
	AgeSeconds      float64 `json:"age_seconds"`
}
