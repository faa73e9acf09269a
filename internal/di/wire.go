//go:build wireinject
// +build wireinject

package di

import (
	"RivalEdge/pkg/config"
	"RivalEdge/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Ambient
		ProvideLogger,
		ProvideMetrics,

		// Gateway
		ProvideGateway,

		// Engine
		ProvideParams,
		ProvideSnapshotStore,
		ProvideEstimator,
		ProvideRanker,
		ProvideAggregator,

		// Orchestration
		ProvideResultCache,
		ProvideTeamAnalyzer,

		// HTTP surface
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
