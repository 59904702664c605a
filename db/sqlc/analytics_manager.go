package sqlc

import (
	"context"

	"github.com/sqlc-dev/pqtype"
)

// AnalyticsManager counts games per server. A nil querier turns every
// call into a no-op so the game server runs without a database.
type AnalyticsManager struct {
	queries Querier
}

func NewAnalyticsManager(queries Querier) *AnalyticsManager {
	return &AnalyticsManager{queries: queries}
}

func (a *AnalyticsManager) Enabled() bool {
	return a != nil && a.queries != nil
}

func (a *AnalyticsManager) IncrementGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) error {
	if !a.Enabled() {
		return nil
	}
	return a.queries.IncrementGamesCreatedCount(ctx, serverIpNet)
}

// RecordGameResult counts a finished game from the human's point of view.
func (a *AnalyticsManager) RecordGameResult(ctx context.Context, serverIpNet pqtype.Inet, won bool) error {
	if !a.Enabled() {
		return nil
	}
	if won {
		return a.queries.IncrementGamesWonCount(ctx, serverIpNet)
	}
	return a.queries.IncrementGamesLostCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetGamesCreatedCount(ctx context.Context, serverIpNet pqtype.Inet) (int64, error) {
	if !a.Enabled() {
		return 0, nil
	}
	return a.queries.GetGamesCreatedCount(ctx, serverIpNet)
}

func (a *AnalyticsManager) GetAnalytics(ctx context.Context, serverIpNet pqtype.Inet) (GameServerAnalytic, error) {
	if !a.Enabled() {
		return GameServerAnalytic{ServerIp: serverIpNet}, nil
	}
	return a.queries.GetAnalytics(ctx, serverIpNet)
}
