package http

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"strings"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/poller"
	"gridiron-data-service/internal/timeutil"
)

// BoardSource reads the current in-memory boards.
type BoardSource interface {
	Board(league games.League) (games.Board, bool)
	Boards() []games.Board
	Game(id string) (games.Game, bool)
}

// HistorySource loads dated board snapshots.
type HistorySource interface {
	LoadBoard(league games.League, date string) (games.Board, error)
}

// Readiness reports the background refresh loop's health.
type Readiness interface {
	Status() poller.Status
}

// Refresher triggers an immediate refresh cycle.
type Refresher interface {
	RefreshNow(ctx context.Context)
}

// LineSource answers line-movement queries for a matchup.
type LineSource interface {
	Opening(league, awayTeam, homeTeam string) (odds.Movement, error)
	Movements(league, awayTeam, homeTeam string) ([]odds.Movement, error)
}

// HandlerConfig wires the handler's collaborators. History, Readiness,
// Refresher, and Lines are optional; their endpoints degrade gracefully
// when absent.
type HandlerConfig struct {
	Boards     BoardSource
	History    HistorySource
	Readiness  Readiness
	Refresher  Refresher
	Lines      LineSource
	AdminToken string
	Logger     *slog.Logger
}

// Handler wires HTTP routes to the aggregation service.
type Handler struct {
	boards     BoardSource
	history    HistorySource
	readiness  Readiness
	refresher  Refresher
	lines      LineSource
	adminToken string
	logger     *slog.Logger
}

// NewHandler constructs a Handler with defaults.
func NewHandler(cfg HandlerConfig) *Handler {
	return &Handler{
		boards:     cfg.Boards,
		history:    cfg.History,
		readiness:  cfg.Readiness,
		refresher:  cfg.Refresher,
		lines:      cfg.Lines,
		adminToken: cfg.AdminToken,
		logger:     cfg.Logger,
	}
}

// Health reports liveness.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, loggerFromRequest(r, h.logger))
}

// Ready reports whether the refresh loop has produced a recent board.
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromRequest(r, h.logger)
	if h.readiness == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, logger)
		return
	}

	status := h.readiness.Status()
	payload := map[string]any{
		"consecutiveFailures": status.ConsecutiveFailures,
		"lastSuccess":         status.LastSuccess,
	}
	if status.LastError != "" {
		payload["lastError"] = status.LastError
	}
	if !status.IsReady() {
		payload["status"] = "unavailable"
		writeJSON(w, nethttp.StatusServiceUnavailable, payload, logger)
		return
	}
	payload["status"] = "ok"
	writeJSON(w, nethttp.StatusOK, payload, logger)
}

// Boards returns every league's current board.
func (h *Handler) Boards(w nethttp.ResponseWriter, r *nethttp.Request) {
	boards := h.boards.Boards()
	writeJSON(w, nethttp.StatusOK, map[string]any{"boards": boards}, loggerFromRequest(r, h.logger))
}

// BoardByLeague returns one league's board, either the live one or a
// dated snapshot when ?date=YYYY-MM-DD is given.
func (h *Handler) BoardByLeague(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromRequest(r, h.logger)
	league := games.League(strings.ToUpper(r.PathValue("league")))
	if !league.Valid() {
		writeError(w, r, nethttp.StatusBadRequest, "unknown league", logger)
		return
	}

	if date := strings.TrimSpace(r.URL.Query().Get("date")); date != "" {
		h.historicalBoard(w, r, league, date)
		return
	}

	board, ok := h.boards.Board(league)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "no board for league", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, board, logger)
}

func (h *Handler) historicalBoard(w nethttp.ResponseWriter, r *nethttp.Request, league games.League, date string) {
	logger := loggerFromRequest(r, h.logger)
	if h.history == nil {
		writeError(w, r, nethttp.StatusNotFound, "snapshots not configured", logger)
		return
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		writeError(w, r, nethttp.StatusBadRequest, "invalid date format", logger)
		return
	}
	board, err := h.history.LoadBoard(league, date)
	if err != nil {
		writeError(w, r, nethttp.StatusNotFound, "no snapshot for date", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, board, logger)
}

// GameByID returns a specific game if present.
func (h *Handler) GameByID(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromRequest(r, h.logger)
	id := r.PathValue("id")
	if id == "" {
		writeError(w, r, nethttp.StatusBadRequest, "missing game id", logger)
		return
	}

	game, ok := h.boards.Game(id)
	if !ok {
		writeError(w, r, nethttp.StatusNotFound, "game not found", logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, game, logger)
}

// LineMovements returns the opening line and full movement history for
// a matchup, e.g. /lines/nfl?away=GB&home=CHI.
func (h *Handler) LineMovements(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromRequest(r, h.logger)
	if h.lines == nil {
		writeError(w, r, nethttp.StatusNotFound, "line history not configured", logger)
		return
	}

	league := games.League(strings.ToUpper(r.PathValue("league")))
	if !league.Valid() {
		writeError(w, r, nethttp.StatusBadRequest, "unknown league", logger)
		return
	}
	away := strings.TrimSpace(r.URL.Query().Get("away"))
	home := strings.TrimSpace(r.URL.Query().Get("home"))
	if away == "" || home == "" {
		writeError(w, r, nethttp.StatusBadRequest, "away and home teams required", logger)
		return
	}

	movements, err := h.lines.Movements(string(league), away, home)
	if err != nil {
		writeError(w, r, nethttp.StatusInternalServerError, "line history query failed", logger)
		return
	}
	if len(movements) == 0 {
		writeError(w, r, nethttp.StatusNotFound, "no lines recorded for matchup", logger)
		return
	}

	payload := map[string]any{
		"league":    league,
		"awayTeam":  away,
		"homeTeam":  home,
		"movements": movements,
	}
	if opening, err := h.lines.Opening(string(league), away, home); err == nil {
		payload["opening"] = opening
	}
	writeJSON(w, nethttp.StatusOK, payload, logger)
}

// AdminRefresh triggers an immediate board refresh. Guarded by the
// admin token; returns 401 when it is missing or wrong.
func (h *Handler) AdminRefresh(w nethttp.ResponseWriter, r *nethttp.Request) {
	logger := loggerFromRequest(r, h.logger)
	if !h.authorize(r) {
		logging.Warn(logger, "admin unauthorized", slog.String(logging.FieldPath, r.URL.Path))
		writeError(w, r, nethttp.StatusUnauthorized, "unauthorized", logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "refresh not configured", logger)
		return
	}

	h.refresher.RefreshNow(r.Context())

	boards := h.boards.Boards()
	total := 0
	for _, b := range boards {
		total += len(b.Games)
	}
	writeJSON(w, nethttp.StatusOK, map[string]any{
		"status": "ok",
		"boards": len(boards),
		"games":  total,
	}, logger)
	logging.Info(logger, "admin refresh complete",
		slog.Int("boards", len(boards)), slog.Int(logging.FieldCount, total))
}

func (h *Handler) authorize(r *nethttp.Request) bool {
	if h.adminToken == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.adminToken
}
