package models

// Requests for analysis HTTP endpoints. Defined in domain for consistency and reuse.

type AnalyzeRequest struct {
	TeamID int `param:"id" json:"team_id" validate:"required,gt=0"`
}

type CompareRequest struct {
	TeamID  int `param:"id" json:"team_id" validate:"required,gt=0"`
	RivalID int `param:"rival" json:"rival_id" validate:"required,gt=0"`
}

type StandingsRequest struct {
	LeagueID int `param:"id" json:"league_id" validate:"required,gt=0"`
	Page     int `query:"page" json:"page" default:"1" validate:"gte=1"`
}

type AlternativesRequest struct {
	Position string `query:"position" json:"position" validate:"required,oneof=GKP DEF MID FWD"`
	Limit    int    `query:"limit" json:"limit" default:"5" validate:"gte=1,lte=50"`
	Exclude  string `query:"exclude" json:"exclude"` // comma-separated player ids
}
