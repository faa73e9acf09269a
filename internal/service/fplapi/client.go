package fplapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"RivalEdge/internal/domain/models"
	drepo "RivalEdge/internal/domain/repository"
	"RivalEdge/internal/service/ratelimit"
	xhttp "RivalEdge/pkg/http"

	"github.com/sony/gobreaker"
)

const userAgent = "RivalEdge"

// Client implements the Gateway against the public fantasy REST API.
type Client struct {
	baseURL string
	client  *xhttp.Client
	limiter *ratelimit.Limiter
	breaker *gobreaker.CircuitBreaker

	rateCapacity float64
	ratePerSec   float64
}

// Option configures the Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client = xhttp.NewClient(xhttp.WithTimeout(d)) }
}

// WithRateLimit sets the token bucket for outbound requests.
func WithRateLimit(capacity, perSec float64) Option {
	return func(c *Client) {
		c.rateCapacity = capacity
		c.ratePerSec = perSec
	}
}

// New creates a Gateway backed by the remote API at baseURL.
func New(baseURL string, opts ...Option) drepo.Gateway {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		client:       xhttp.NewClient(xhttp.WithTimeout(30 * time.Second)),
		limiter:      ratelimit.New(),
		rateCapacity: 10,
		ratePerSec:   2,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "fantasy-api",
		MaxRequests: 3,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})
	return c
}

func (c *Client) get(ctx context.Context, path string, dest interface{}) error {
	if !c.limiter.Allow("fantasy-api", c.rateCapacity, c.ratePerSec) {
		return fmt.Errorf("fplapi: rate limited for %s", path)
	}
	_, err := c.breaker.Execute(func() (interface{}, error) {
		err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
			Method: xhttp.MethodGet,
			URL:    c.baseURL + path,
			Headers: map[string]string{
				"User-Agent": userAgent,
			},
		}, dest)
		if err != nil {
			return nil, fmt.Errorf("get %s: %w", path, err)
		}
		return nil, nil
	})
	return err
}

type bootstrapDTO struct {
	Elements []elementDTO `json:"elements"`
	Teams    []teamDTO    `json:"teams"`
	Events   []eventDTO   `json:"events"`
}

// The feed serializes several numeric stats as strings.
type elementDTO struct {
	ID                int    `json:"id"`
	FirstName         string `json:"first_name"`
	SecondName        string `json:"second_name"`
	ElementType       int    `json:"element_type"`
	Team              int    `json:"team"`
	NowCost           int    `json:"now_cost"`
	CostChangeEvent   int    `json:"cost_change_event"`
	TotalPoints       int    `json:"total_points"`
	PointsPerGame     string `json:"points_per_game"`
	Form              string `json:"form"`
	SelectedByPercent string `json:"selected_by_percent"`
	Minutes           int    `json:"minutes"`
}

type teamDTO struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
}

type eventDTO struct {
	ID        int  `json:"id"`
	IsCurrent bool `json:"is_current"`
	Finished  bool `json:"finished"`
}

type fixtureDTO struct {
	Event           *int `json:"event"`
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	Finished        bool `json:"finished"`
}

type entryDTO struct {
	ID                    int    `json:"id"`
	Name                  string `json:"name"`
	PlayerFirstName       string `json:"player_first_name"`
	PlayerLastName        string `json:"player_last_name"`
	SummaryOverallPoints  int    `json:"summary_overall_points"`
	SummaryEventPoints    int    `json:"summary_event_points"`
	SummaryOverallRank    int    `json:"summary_overall_rank"`
	SummaryTotalTransfers int    `json:"summary_total_transfers"`
}

type picksDTO struct {
	EntryHistory struct {
		Value              int `json:"value"`
		Bank               int `json:"bank"`
		EventTransfersCost int `json:"event_transfers_cost"`
	} `json:"entry_history"`
	Picks []pickDTO `json:"picks"`
}

type standingsDTO struct {
	League struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"league"`
	Standings struct {
		HasNext bool          `json:"has_next"`
		Page    int           `json:"page"`
		Results []standingDTO `json:"results"`
	} `json:"standings"`
}

type standingDTO struct {
	Entry      int    `json:"entry"`
	EntryName  string `json:"entry_name"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	Total      int    `json:"total"`
	EventTotal int    `json:"event_total"`
}

type pickDTO struct {
	Element       int  `json:"element"`
	Position      int  `json:"position"`
	Multiplier    int  `json:"multiplier"`
	IsCaptain     bool `json:"is_captain"`
	IsViceCaptain bool `json:"is_vice_captain"`
}

// FetchBootstrap retrieves and parses the full reference data set.
func (c *Client) FetchBootstrap(ctx context.Context) (*models.Bootstrap, error) {
	var dto bootstrapDTO
	if err := c.get(ctx, "/bootstrap-static/", &dto); err != nil {
		return nil, err
	}

	teams := make(map[int]models.TeamRecord, len(dto.Teams))
	for _, t := range dto.Teams {
		teams[t.ID] = models.TeamRecord{ID: t.ID, Name: t.Name, ShortName: t.ShortName}
	}

	players := make([]models.PlayerRecord, 0, len(dto.Elements))
	for _, e := range dto.Elements {
		pos := models.Position(e.ElementType)
		players = append(players, models.PlayerRecord{
			ID:            e.ID,
			Name:          strings.TrimSpace(e.FirstName + " " + e.SecondName),
			Position:      pos,
			PositionName:  pos.Name(),
			TeamID:        e.Team,
			Cost:          e.NowCost,
			Price:         float64(e.NowCost) / 10.0,
			PriceChange:   float64(e.CostChangeEvent) / 10.0,
			TotalPoints:   e.TotalPoints,
			PointsPerGame: safeFloat(e.PointsPerGame),
			Form:          safeFloat(e.Form),
			Ownership:     safeFloat(e.SelectedByPercent),
			Minutes:       e.Minutes,
		})
	}
	for i := range players {
		if t, ok := teams[players[i].TeamID]; ok {
			players[i].TeamShort = t.ShortName
		}
	}

	events := make([]models.GameweekEvent, 0, len(dto.Events))
	currentGW := 0
	for _, ev := range dto.Events {
		events = append(events, models.GameweekEvent{ID: ev.ID, IsCurrent: ev.IsCurrent, Finished: ev.Finished})
		if ev.IsCurrent && currentGW == 0 {
			currentGW = ev.ID
		}
	}
	if currentGW == 0 {
		currentGW = 1
	}

	return &models.Bootstrap{
		Players:         players,
		Teams:           teams,
		Events:          events,
		CurrentGameweek: currentGW,
	}, nil
}

// FetchFixtures retrieves the full fixture list.
func (c *Client) FetchFixtures(ctx context.Context) ([]models.FixtureRecord, error) {
	var dtos []fixtureDTO
	if err := c.get(ctx, "/fixtures/", &dtos); err != nil {
		return nil, err
	}
	fixtures := make([]models.FixtureRecord, 0, len(dtos))
	for _, f := range dtos {
		gw := 0
		if f.Event != nil {
			gw = *f.Event
		}
		fixtures = append(fixtures, models.FixtureRecord{
			Gameweek:       gw,
			HomeTeamID:     f.TeamH,
			AwayTeamID:     f.TeamA,
			HomeDifficulty: f.TeamHDifficulty,
			AwayDifficulty: f.TeamADifficulty,
			Finished:       f.Finished,
		})
	}
	return fixtures, nil
}

// FetchEntry retrieves the basic account summary for a user team.
func (c *Client) FetchEntry(ctx context.Context, teamID int) (*models.EntryInfo, error) {
	var dto entryDTO
	if err := c.get(ctx, fmt.Sprintf("/entry/%d/", teamID), &dto); err != nil {
		return nil, err
	}
	return &models.EntryInfo{
		ID:             dto.ID,
		TeamName:       dto.Name,
		ManagerName:    strings.TrimSpace(dto.PlayerFirstName + " " + dto.PlayerLastName),
		OverallPoints:  dto.SummaryOverallPoints,
		GameweekPoints: dto.SummaryEventPoints,
		OverallRank:    dto.SummaryOverallRank,
		TotalTransfers: dto.SummaryTotalTransfers,
	}, nil
}

// FetchEntryPicks retrieves the squad a user fielded for a gameweek.
func (c *Client) FetchEntryPicks(ctx context.Context, teamID, gameweek int) (*models.EntryPicks, error) {
	var dto picksDTO
	if err := c.get(ctx, fmt.Sprintf("/entry/%d/event/%d/picks/", teamID, gameweek), &dto); err != nil {
		return nil, err
	}
	picks := make([]models.SquadPick, 0, len(dto.Picks))
	for _, p := range dto.Picks {
		picks = append(picks, models.SquadPick{
			PlayerID:      p.Element,
			Slot:          p.Position,
			Multiplier:    p.Multiplier,
			IsCaptain:     p.IsCaptain,
			IsViceCaptain: p.IsViceCaptain,
		})
	}
	return &models.EntryPicks{
		Picks:         picks,
		Value:         dto.EntryHistory.Value,
		Bank:          dto.EntryHistory.Bank,
		FreeTransfers: dto.EntryHistory.EventTransfersCost,
	}, nil
}

// FetchLeagueStandings retrieves one page of a mini-league table.
func (c *Client) FetchLeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	if page < 1 {
		page = 1
	}
	var dto standingsDTO
	path := fmt.Sprintf("/leagues-classic/%d/standings/?page_standings=%d", leagueID, page)
	if err := c.get(ctx, path, &dto); err != nil {
		return nil, err
	}
	entries := make([]models.LeagueEntry, 0, len(dto.Standings.Results))
	for _, s := range dto.Standings.Results {
		entries = append(entries, models.LeagueEntry{
			EntryID:        s.Entry,
			TeamName:       s.EntryName,
			ManagerName:    s.PlayerName,
			Rank:           s.Rank,
			LastRank:       s.LastRank,
			TotalPoints:    s.Total,
			GameweekPoints: s.EventTotal,
		})
	}
	return &models.LeagueStandings{
		LeagueID:   dto.League.ID,
		LeagueName: dto.League.Name,
		Page:       dto.Standings.Page,
		HasNext:    dto.Standings.HasNext,
		Entries:    entries,
	}, nil
}

// safeFloat parses feed numerics that arrive as strings; anything
// unparseable is treated as 0, never as an error.
func safeFloat(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}
