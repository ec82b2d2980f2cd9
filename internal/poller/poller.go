package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"gridiron-data-service/internal/domain/games"
	"gridiron-data-service/internal/domain/odds"
	"gridiron-data-service/internal/logging"
	"gridiron-data-service/internal/metrics"
)

const defaultInterval = 2 * time.Minute

// BoardFetcher builds the merged board for one league.
type BoardFetcher interface {
	FetchBoard(ctx context.Context, league games.League, week, season int) (games.Board, error)
}

// BoardStore receives each refreshed board.
type BoardStore interface {
	ReplaceBoard(board games.Board)
}

// SnapshotWriter persists board snapshots to disk.
type SnapshotWriter interface {
	WriteBoard(board games.Board) error
}

// LineRecorder persists each cycle's observed lines.
type LineRecorder interface {
	RecordBatch(movements []odds.Movement) error
}

// Poller refreshes every configured league on an interval, updating
// the in-memory store, snapshots, and line history.
type Poller struct {
	fetcher  BoardFetcher
	store    BoardStore
	writer   SnapshotWriter
	lines    LineRecorder
	leagues  []games.League
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the poller has had a recent success and is
// not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Config wires the poller's collaborators.
type Config struct {
	Fetcher  BoardFetcher
	Store    BoardStore
	Writer   SnapshotWriter
	Lines    LineRecorder
	Leagues  []games.League
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Interval time.Duration
}

// New constructs a Poller with sane defaults.
func New(cfg Config) *Poller {
	interval := cfg.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	leagues := cfg.Leagues
	if len(leagues) == 0 {
		leagues = []games.League{games.LeagueNFL, games.LeagueNCAAF}
	}
	return &Poller{
		fetcher:  cfg.Fetcher,
		store:    cfg.Store,
		writer:   cfg.Writer,
		lines:    cfg.Lines,
		leagues:  leagues,
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		interval: interval,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.ticker = time.NewTicker(p.interval)
	ticker := p.ticker
	p.startMu.Unlock()

	go func() {
		p.logInfo("poller started", logging.FieldDurationMS, p.interval.Milliseconds())
		// Initial refresh to warm data on boot.
		p.refreshAll(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-ticker.C:
				p.refreshAll(ctx)
			}
		}
	}()
}

// Stop halts the polling loop.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})
}

// RefreshNow runs one refresh cycle outside the schedule. The admin
// refresh endpoint uses this.
func (p *Poller) RefreshNow(ctx context.Context) {
	p.refreshAll(ctx)
}

func (p *Poller) refreshAll(ctx context.Context) {
	start := p.now()
	p.recordAttempt(start)

	failures := 0
	var lastErr error
	for _, league := range p.leagues {
		if err := p.refreshLeague(ctx, league); err != nil {
			failures++
			lastErr = err
		}
	}
	if failures == len(p.leagues) {
		p.recordFailure(lastErr, start)
		return
	}
	p.recordSuccess(start)
}

func (p *Poller) refreshLeague(ctx context.Context, league games.League) error {
	start := time.Now()
	board, err := p.fetcher.FetchBoard(ctx, league, 0, 0)
	if p.metrics != nil {
		p.metrics.RecordPollerCycle(string(league), time.Since(start), err)
	}
	if err != nil {
		p.logError("board refresh failed", err,
			logging.FieldLeague, string(league),
			logging.FieldDurationMS, time.Since(start).Milliseconds())
		return err
	}

	if p.store != nil {
		p.store.ReplaceBoard(board)
	}
	if p.writer != nil {
		if writeErr := p.writer.WriteBoard(board); writeErr != nil {
			p.logError("board snapshot write failed", writeErr, logging.FieldLeague, string(league))
		}
	}
	p.recordLines(board)

	p.logInfo("board refreshed",
		logging.FieldLeague, string(league),
		logging.FieldBatchID, board.BatchID,
		logging.FieldCount, len(board.Games),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
	return nil
}

func (p *Poller) recordLines(board games.Board) {
	if p.lines == nil {
		return
	}
	batch := collectLines(board)
	if len(batch) == 0 {
		return
	}
	if err := p.lines.RecordBatch(batch); err != nil {
		p.logError("line history write failed", err, logging.FieldLeague, string(board.League))
	}
}

func (p *Poller) stopTicker() {
	p.startMu.Lock()
	defer p.startMu.Unlock()
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Poller) logError(msg string, err error, args ...any) {
	if p.logger != nil {
		p.logger.Error(msg, append(args, "err", err)...)
	}
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// collectLines pulls the attached odds out of a board for history.
func collectLines(board games.Board) []odds.Movement {
	var batch []odds.Movement
	for _, g := range board.Games {
		if g.Odds != nil {
			batch = append(batch, *g.Odds)
		}
	}
	return batch
}
