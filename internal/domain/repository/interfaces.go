package repository

import (
	"context"

	"RivalEdge/internal/domain/models"
)

// Gateway fetches raw reference and entry data from the remote fantasy API.
// Pure I/O; no scoring logic lives here.
type Gateway interface {
	FetchBootstrap(ctx context.Context) (*models.Bootstrap, error)
	FetchFixtures(ctx context.Context) ([]models.FixtureRecord, error)
	FetchEntry(ctx context.Context, teamID int) (*models.EntryInfo, error)
	FetchEntryPicks(ctx context.Context, teamID, gameweek int) (*models.EntryPicks, error)
	FetchLeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error)
}

// Metrics records engine-level observations.
type Metrics interface {
	RecordRefresh(success bool, seconds float64)
	RecordSnapshotSize(players, fixtures int)
	RecordGatewayError(kind string)
	RecordAnalysis(op string, seconds float64)
}
