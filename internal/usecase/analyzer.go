package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"RivalEdge/internal/domain/models"
	drepo "RivalEdge/internal/domain/repository"
	icache "RivalEdge/internal/service/cache"
	xlogger "RivalEdge/pkg/logger"
)

// ErrTeamNotFound signals the remote API has no squad for the requested
// team and gameweek.
var ErrTeamNotFound = errors.New("team picks not found")

const timestampLayout = "2006-01-02 15:04:05"

// TeamAnalyzer orchestrates the engine: snapshot, per-team fetches,
// ranking, aggregation. Results are cached at the presentation boundary;
// the computations themselves stay pure and uncached.
type TeamAnalyzer struct {
	store   *SnapshotStore
	gateway drepo.Gateway
	ranker  *Ranker
	agg     *Aggregator
	metrics drepo.Metrics
	logger  *xlogger.Logger

	cache    icache.BytesCache
	cacheTTL time.Duration

	transferTopK int
	captainLimit int
}

func NewTeamAnalyzer(
	store *SnapshotStore,
	gateway drepo.Gateway,
	ranker *Ranker,
	agg *Aggregator,
	metrics drepo.Metrics,
	logger *xlogger.Logger,
	cache icache.BytesCache,
	cacheTTL time.Duration,
) *TeamAnalyzer {
	return &TeamAnalyzer{
		store:        store,
		gateway:      gateway,
		ranker:       ranker,
		agg:          agg,
		metrics:      metrics,
		logger:       logger,
		cache:        cache,
		cacheTTL:     cacheTTL,
		transferTopK: 5,
		captainLimit: 5,
	}
}

// Snapshots exposes the underlying store for status and manual refresh.
func (t *TeamAnalyzer) Snapshots() *SnapshotStore { return t.store }

// Ranker exposes alternative ranking for the alternatives endpoint.
func (t *TeamAnalyzer) Ranker() *Ranker { return t.ranker }

// AnalyzeTeam produces the full analysis payload for one team.
func (t *TeamAnalyzer) AnalyzeTeam(ctx context.Context, teamID int) (*models.TeamAnalysis, error) {
	start := time.Now()
	snap, err := t.store.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("analysis:team:%d:gw:%d", teamID, snap.CurrentGameweek)
	if cached, ok := t.fromCache(key); ok {
		var out models.TeamAnalysis
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	picks, err := t.gateway.FetchEntryPicks(ctx, teamID, snap.CurrentGameweek)
	if err != nil {
		t.metrics.RecordGatewayError("picks")
		return nil, fmt.Errorf("%w: team %d gameweek %d", ErrTeamNotFound, teamID, snap.CurrentGameweek)
	}

	info, err := t.gateway.FetchEntry(ctx, teamID)
	if err != nil {
		t.metrics.RecordGatewayError("entry")
		return nil, fmt.Errorf("fetch entry %d: %w", teamID, err)
	}

	metrics := t.agg.SquadMetrics(snap, picks.Picks)
	summary := t.agg.TeamSummary(*info, *picks, metrics)

	analysis := &models.TeamAnalysis{
		TeamID:                  teamID,
		TeamSummary:             summary,
		CurrentGameweek:         snap.CurrentGameweek,
		TransferRecommendations: t.ranker.TransferPriorities(snap, picks.Picks, t.transferTopK),
		CaptainSuggestions:      t.ranker.CaptainSuggestions(snap, picks.Picks, t.captainLimit),
		BudgetInsights:          t.agg.BudgetInsights(summary.Bank, picks.FreeTransfers),
		AnalysisTimestamp:       time.Now().Format(timestampLayout),
	}

	t.toCache(key, analysis)
	t.metrics.RecordAnalysis("analyze_team", time.Since(start).Seconds())
	return analysis, nil
}

// CompareTeams produces the head-to-head payload for two teams.
func (t *TeamAnalyzer) CompareTeams(ctx context.Context, myID, rivalID int) (*models.TeamComparison, error) {
	start := time.Now()
	snap, err := t.store.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("compare:%d:%d:gw:%d", myID, rivalID, snap.CurrentGameweek)
	if cached, ok := t.fromCache(key); ok {
		var out models.TeamComparison
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	mySummary, myPicks, err := t.summarize(ctx, snap, myID)
	if err != nil {
		return nil, err
	}
	rivalSummary, rivalPicks, err := t.summarize(ctx, snap, rivalID)
	if err != nil {
		return nil, err
	}

	comparisons := t.agg.ComparePositions(snap, myPicks, rivalPicks)
	advantages, insights := t.agg.HeadToHead(mySummary, rivalSummary, comparisons)

	comparison := &models.TeamComparison{
		MyTeam:              mySummary,
		RivalTeam:           rivalSummary,
		PositionComparisons: comparisons,
		Advantages:          advantages,
		KeyInsights:         insights,
		AnalysisTimestamp:   time.Now().Format(timestampLayout),
	}

	t.toCache(key, comparison)
	t.metrics.RecordAnalysis("compare_teams", time.Since(start).Seconds())
	return comparison, nil
}

// LeagueStandings returns one page of a mini-league table. Standings are
// cached under the current gameweek so tables stay stable between refreshes.
func (t *TeamAnalyzer) LeagueStandings(ctx context.Context, leagueID, page int) (*models.LeagueStandings, error) {
	snap, err := t.store.EnsureLoaded(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("league:%d:page:%d:gw:%d", leagueID, page, snap.CurrentGameweek)
	if cached, ok := t.fromCache(key); ok {
		var out models.LeagueStandings
		if err := json.Unmarshal(cached, &out); err == nil {
			return &out, nil
		}
	}

	standings, err := t.gateway.FetchLeagueStandings(ctx, leagueID, page)
	if err != nil {
		t.metrics.RecordGatewayError("standings")
		return nil, fmt.Errorf("fetch league %d standings: %w", leagueID, err)
	}

	t.toCache(key, standings)
	return standings, nil
}

func (t *TeamAnalyzer) summarize(ctx context.Context, snap *models.Snapshot, teamID int) (models.TeamSummary, []models.SquadPick, error) {
	picks, err := t.gateway.FetchEntryPicks(ctx, teamID, snap.CurrentGameweek)
	if err != nil {
		t.metrics.RecordGatewayError("picks")
		return models.TeamSummary{}, nil, fmt.Errorf("%w: team %d gameweek %d", ErrTeamNotFound, teamID, snap.CurrentGameweek)
	}
	info, err := t.gateway.FetchEntry(ctx, teamID)
	if err != nil {
		t.metrics.RecordGatewayError("entry")
		return models.TeamSummary{}, nil, fmt.Errorf("fetch entry %d: %w", teamID, err)
	}
	metrics := t.agg.SquadMetrics(snap, picks.Picks)
	return t.agg.TeamSummary(*info, *picks, metrics), picks.Picks, nil
}

func (t *TeamAnalyzer) fromCache(key string) ([]byte, bool) {
	if t.cache == nil || t.cacheTTL <= 0 {
		return nil, false
	}
	b, ok, err := t.cache.GetBytes(key)
	if err != nil {
		t.logger.Warn("analysis cache read failed", xlogger.Error(err))
		return nil, false
	}
	return b, ok
}

func (t *TeamAnalyzer) toCache(key string, v interface{}) {
	if t.cache == nil || t.cacheTTL <= 0 {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := t.cache.SetBytes(key, b, t.cacheTTL); err != nil {
		t.logger.Warn("analysis cache write failed", xlogger.Error(err))
	}
}
