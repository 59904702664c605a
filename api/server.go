package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/saeidalz13/battlesea/db/sqlc"
)

type respHealth struct {
	Status       string `json:"status"`
	Sessions     int    `json:"sessions"`
	Games        int    `json:"games"`
	GamesCreated int64  `json:"games_created"`
}

type respAnalytics struct {
	ServerIp     string `json:"server_ip"`
	GamesCreated int64  `json:"games_created"`
	GamesWon     int64  `json:"games_won"`
	GamesLost    int64  `json:"games_lost"`
}

// NewRouter serves the game socket plus two small JSON endpoints.
func NewRouter(rp RequestProcessor) http.Handler {
	r := chi.NewRouter()
	r.Get("/battlesea", rp.ServeHTTP)
	r.Get("/health", rp.handleHealth)
	r.Get("/analytics", rp.handleAnalytics)
	return r
}

// handleHealth stays up when the analytics store is not; the created
// count is then reported as 0.
func (rp RequestProcessor) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	created, err := rp.analytics.GetGamesCreatedCount(ctx, rp.serverInet())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		rp.logger.Warn().Err(err).Msg("failed to fetch games created count")
	}

	writeJSON(w, http.StatusOK, respHealth{
		Status:       "ok",
		Sessions:     rp.sessionManager.CountSessions(),
		Games:        rp.gameManager.CountGames(),
		GamesCreated: created,
	})
}

func (rp RequestProcessor) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), sqlc.QuerierCtxTimeout)
	defer cancel()

	row, err := rp.analytics.GetAnalytics(ctx, rp.serverInet())
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		rp.logger.Error().Err(err).Msg("failed to fetch analytics")
		http.Error(w, "could not fetch analytics", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, respAnalytics{
		ServerIp:     rp.ipnet.IP.String(),
		GamesCreated: row.GamesCreated,
		GamesWon:     row.GamesWon,
		GamesLost:    row.GamesLost,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
