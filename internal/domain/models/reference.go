package models

import (
	"fmt"
	"time"
)

// Position is the squad slot category a player is eligible for.
type Position int

const (
	Goalkeeper Position = 1
	Defender   Position = 2
	Midfielder Position = 3
	Forward    Position = 4
)

// Positions lists all categories in comparison order.
var Positions = []Position{Goalkeeper, Defender, Midfielder, Forward}

// Name returns the short position label used across API payloads.
func (p Position) Name() string {
	switch p {
	case Goalkeeper:
		return "GKP"
	case Defender:
		return "DEF"
	case Midfielder:
		return "MID"
	case Forward:
		return "FWD"
	default:
		return "UNK"
	}
}

// PositionFromName maps a short label back to its category.
func PositionFromName(name string) (Position, bool) {
	switch name {
	case "GKP":
		return Goalkeeper, true
	case "DEF":
		return Defender, true
	case "MID":
		return Midfielder, true
	case "FWD":
		return Forward, true
	default:
		return 0, false
	}
}

// PlayerRecord is one selectable participant within a snapshot.
// All numeric-as-string feed fields are parsed once at snapshot build;
// missing values become 0.
type PlayerRecord struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Position      Position `json:"-"`
	PositionName  string   `json:"position"`
	TeamID        int      `json:"team_id"`
	TeamShort     string   `json:"team"`
	Cost          int      `json:"-"` // feed units, tenths of a million
	Price         float64  `json:"price"`
	PriceChange   float64  `json:"price_change"`
	TotalPoints   int      `json:"total_points"`
	PointsPerGame float64  `json:"points_per_game"`
	Form          float64  `json:"form"`
	Ownership     float64  `json:"ownership"`
	Minutes       int      `json:"minutes"`
}

// TeamRecord is one league member club (not a user entry).
type TeamRecord struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

// FixtureRecord is one scheduled match with 1-5 difficulty ratings
// (lower is easier) for each side.
type FixtureRecord struct {
	Gameweek       int  `json:"gameweek"`
	HomeTeamID     int  `json:"home_team_id"`
	AwayTeamID     int  `json:"away_team_id"`
	HomeDifficulty int  `json:"home_difficulty"`
	AwayDifficulty int  `json:"away_difficulty"`
	Finished       bool `json:"finished"`
}

// GameweekEvent is one scoring period from the bootstrap feed.
type GameweekEvent struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	Finished  bool `json:"finished"`
}

// SquadPick is one player's inclusion in a user squad for a gameweek.
type SquadPick struct {
	PlayerID      int  `json:"player_id"`
	Slot          int  `json:"slot"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// EntryInfo is the basic account summary for a user team.
type EntryInfo struct {
	ID             int    `json:"id"`
	TeamName       string `json:"team_name"`
	ManagerName    string `json:"manager_name"`
	OverallPoints  int    `json:"overall_points"`
	GameweekPoints int    `json:"gameweek_points"`
	OverallRank    int    `json:"overall_rank"`
	TotalTransfers int    `json:"total_transfers"`
}

// EntryPicks is a user squad for one gameweek plus its money state.
// Value and Bank stay in feed units (tenths of a million).
type EntryPicks struct {
	Picks         []SquadPick `json:"picks"`
	Value         int         `json:"value"`
	Bank          int         `json:"bank"`
	FreeTransfers int         `json:"free_transfers"`
}

// LeagueEntry is one team's row in a mini-league table.
type LeagueEntry struct {
	EntryID        int    `json:"entry_id"`
	TeamName       string `json:"team_name"`
	ManagerName    string `json:"manager_name"`
	Rank           int    `json:"rank"`
	LastRank       int    `json:"last_rank"`
	TotalPoints    int    `json:"total_points"`
	GameweekPoints int    `json:"gameweek_points"`
}

// LeagueStandings is one page of a mini-league table.
type LeagueStandings struct {
	LeagueID   int           `json:"league_id"`
	LeagueName string        `json:"league_name"`
	Page       int           `json:"page"`
	HasNext    bool          `json:"has_next"`
	Entries    []LeagueEntry `json:"entries"`
}

// Bootstrap is the parsed reference payload from the remote feed:
// every player, every club, every scoring period.
type Bootstrap struct {
	Players         []PlayerRecord
	Teams           map[int]TeamRecord
	Events          []GameweekEvent
	CurrentGameweek int
}

// Snapshot is the reference data set the engine computes against.
// It is immutable once built; a refresh produces a new value and the
// store swaps a single pointer.
type Snapshot struct {
	Players         []PlayerRecord
	Teams           map[int]TeamRecord
	Events          []GameweekEvent
	Fixtures        []FixtureRecord
	CurrentGameweek int
	LoadedAt        time.Time

	byID map[int]*PlayerRecord
}

// NewSnapshot validates and indexes a freshly fetched data set.
func NewSnapshot(players []PlayerRecord, teams map[int]TeamRecord, events []GameweekEvent, fixtures []FixtureRecord, currentGW int) (*Snapshot, error) {
	if currentGW < 1 {
		currentGW = 1
	}
	byID := make(map[int]*PlayerRecord, len(players))
	for i := range players {
		p := &players[i]
		if _, ok := teams[p.TeamID]; !ok {
			return nil, fmt.Errorf("player %d references unknown team %d", p.ID, p.TeamID)
		}
		byID[p.ID] = p
	}
	return &Snapshot{
		Players:         players,
		Teams:           teams,
		Events:          events,
		Fixtures:        fixtures,
		CurrentGameweek: currentGW,
		LoadedAt:        time.Now(),
		byID:            byID,
	}, nil
}

// PlayerByID resolves a player reference. Stale picks can reference ids
// that left the feed, so a miss is a normal outcome the caller handles.
func (s *Snapshot) PlayerByID(id int) (PlayerRecord, bool) {
	p, ok := s.byID[id]
	if !ok {
		return PlayerRecord{}, false
	}
	return *p, true
}

// TeamByID resolves a club reference.
func (s *Snapshot) TeamByID(id int) (TeamRecord, bool) {
	t, ok := s.Teams[id]
	return t, ok
}

// TeamShortName returns the club short name or empty when unknown.
func (s *Snapshot) TeamShortName(id int) string {
	if t, ok := s.Teams[id]; ok {
		return t.ShortName
	}
	return ""
}

// Age reports how long ago the snapshot was loaded.
func (s *Snapshot) Age() time.Duration {
	return time.Since(s.LoadedAt)
}
