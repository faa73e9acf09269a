package api

import (
	"errors"
	"strconv"
	"strings"

	"RivalEdge/internal/domain/models"
	"RivalEdge/internal/usecase"
	xhttp "RivalEdge/pkg/http"
	xlogger "RivalEdge/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AnalysisEchoHandler exposes the team analysis engine over HTTP.
type AnalysisEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.TeamAnalyzer
}

func NewAnalysisEchoHandler(logger *xlogger.Logger, analyzer *usecase.TeamAnalyzer) *AnalysisEchoHandler {
	return &AnalysisEchoHandler{logger: logger, analyzer: analyzer}
}

func (h *AnalysisEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/teams/:id/analysis", h.Analyze)
	g.GET("/teams/:id/compare/:rival", h.Compare)
	g.GET("/alternatives", h.Alternatives)
	g.GET("/leagues/:id/standings", h.Standings)
	g.GET("/snapshot/status", h.SnapshotStatus)
	g.POST("/snapshot/refresh", h.SnapshotRefresh)
}

func (h *AnalysisEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.AnalyzeTeam(c.Request().Context(), req.TeamID)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Compare(c echo.Context) error {
	req := &models.CompareRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.CompareTeams(c.Request().Context(), req.TeamID, req.RivalID)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Alternatives(c echo.Context) error {
	req := &models.AlternativesRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	position, ok := models.PositionFromName(req.Position)
	if !ok {
		return xhttp.BadRequestResponse(c, "unknown position")
	}

	snap, err := h.analyzer.Snapshots().EnsureLoaded(c.Request().Context())
	if err != nil {
		return h.analysisError(c, err)
	}

	res := h.analyzer.Ranker().TopAlternatives(snap, position, parseIDList(req.Exclude), req.Limit)
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) Standings(c echo.Context) error {
	req := &models.StandingsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.LeagueStandings(c.Request().Context(), req.LeagueID, req.Page)
	if err != nil {
		return h.analysisError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *AnalysisEchoHandler) SnapshotStatus(c echo.Context) error {
	return xhttp.SuccessResponse(c, h.analyzer.Snapshots().Status())
}

func (h *AnalysisEchoHandler) SnapshotRefresh(c echo.Context) error {
	if err := h.analyzer.Snapshots().Refresh(c.Request().Context()); err != nil {
		h.logger.Error("manual refresh failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError("reference data refresh failed").WithError(err))
	}
	return xhttp.SuccessResponse(c, h.analyzer.Snapshots().Status())
}

func (h *AnalysisEchoHandler) analysisError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrTeamNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()))
	case errors.Is(err, usecase.ErrDataUnavailable):
		h.logger.Error("reference data unavailable", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UnavailableError(err.Error()))
	default:
		h.logger.Error("analysis failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

// parseIDList parses a comma-separated id list, ignoring blanks and junk.
func parseIDList(s string) []int {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	ids := make([]int, 0, len(parts))
	for _, p := range parts {
		if id, err := strconv.Atoi(strings.TrimSpace(p)); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
