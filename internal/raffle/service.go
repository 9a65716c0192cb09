package raffle

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/PirotRaffle_Go/internal/domain"
	"github.com/osse101/PirotRaffle_Go/internal/event"
	"github.com/osse101/PirotRaffle_Go/internal/logger"
	"github.com/osse101/PirotRaffle_Go/internal/metrics"
	"github.com/osse101/PirotRaffle_Go/internal/repository"
)

// Service defines the raffle engine operations
type Service interface {
	// Enter validates and commits a contribution to the open cycle
	Enter(ctx context.Context, participant string, amount int64) (*domain.Entry, error)
	// CloseCycle draws the cycle identified by cycleID and opens the next one.
	// uuid.Nil targets whichever cycle is currently open.
	CloseCycle(ctx context.Context, cycleID uuid.UUID) (*DrawResult, error)
	CurrentCycle(ctx context.Context) *domain.Cycle
	Chance(ctx context.Context, participant string) domain.ParticipantChance
	Chances(ctx context.Context) []domain.ParticipantChance
	// History returns winners newest first; limit <= 0 returns all
	History(ctx context.Context, limit int) []domain.WinnerRecord
	Prizes() []domain.Prize
	Snapshot(ctx context.Context) *Snapshot
	Shutdown(ctx context.Context) error
}

// DrawResult describes one completed rollover
type DrawResult struct {
	Closed *domain.Cycle        `json:"closed"`
	Winner *domain.WinnerRecord `json:"winner,omitempty"`
	Next   *domain.Cycle        `json:"next"`
}

// Config tunes the engine; zero values fall back to defaults
type Config struct {
	CycleDuration       time.Duration
	BalanceCheckTimeout time.Duration
	PersistTimeout      time.Duration
	Random              RandomSource
	Now                 func() time.Time
}

func (c Config) withDefaults() Config {
	if c.CycleDuration <= 0 {
		c.CycleDuration = DefaultCycleDuration
	}
	if c.BalanceCheckTimeout <= 0 {
		c.BalanceCheckTimeout = DefaultBalanceCheckTimeout
	}
	if c.PersistTimeout <= 0 {
		c.PersistTimeout = DefaultPersistTimeout
	}
	if c.Random == nil {
		c.Random = CryptoRandom
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

type service struct {
	repo     repository.Raffle
	catalog  Catalog
	balances BalanceReader
	eventBus event.Bus
	cfg      Config

	// mu is the single exclusion boundary for the active cycle and history
	mu      sync.Mutex
	cycle   *domain.Cycle
	history []domain.WinnerRecord

	wg sync.WaitGroup // in-flight operations, drained on shutdown
}

// NewService opens the first cycle with a random catalog prize. When repo is
// set, previously recorded winners are loaded into history and numbering
// continues after the highest stored cycle.
func NewService(repo repository.Raffle, catalog Catalog, balances BalanceReader, eventBus event.Bus, cfg Config) (Service, error) {
	s, err := newService(repo, catalog, balances, eventBus, cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PersistTimeout)
	defer cancel()

	var last int64
	if repo != nil {
		winners, err := repo.ListWinners(ctx, 0)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrContextLoadHistory, err)
		}
		s.history = winners
		if last, err = s.lastStoredNumber(ctx); err != nil {
			return nil, err
		}
	}

	prize, err := catalog.SelectRandom("")
	if err != nil {
		return nil, err
	}
	s.cycle = s.newCycle(last+1, prize)
	s.persistCycle(ctx, s.cycle)

	logger.FromContext(ctx).Info(LogMsgCycleOpened,
		"cycle_id", s.cycle.ID,
		"cycle_number", s.cycle.Number,
		"prize", prize.ID,
		"deadline", s.cycle.Deadline)

	return s, nil
}

// RestoreService rebuilds the engine from a snapshot. A cycle captured mid-draw
// is reopened so the draw runs again with the same entries. When repo is set
// the snapshot is reconciled with the store first.
func RestoreService(snap *Snapshot, repo repository.Raffle, catalog Catalog, balances BalanceReader, eventBus event.Bus, cfg Config) (Service, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	s, err := newService(repo, catalog, balances, eventBus, cfg)
	if err != nil {
		return nil, err
	}

	s.cycle = snap.Cycle.Clone()
	s.cycle.State = domain.CycleStateOpen
	s.history = append([]domain.WinnerRecord(nil), snap.History...)

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.PersistTimeout)
	defer cancel()

	if repo != nil {
		if err := s.reconcile(ctx); err != nil {
			return nil, err
		}
	}
	Recompute(s.cycle)
	s.persistCycle(ctx, s.cycle)

	logger.FromContext(ctx).Info(LogMsgRestoredFromSnapshot,
		"cycle_id", s.cycle.ID,
		"entries", len(s.cycle.Entries),
		"pool_total", s.cycle.PoolTotal,
		"history", len(s.history))

	return s, nil
}

// reconcile brings a restored snapshot up to date with the store. Stored
// winners are merged into history. A cycle the store shows as drawn, or one a
// later stored cycle has superseded, is never resumed: a fresh cycle opens
// instead. Otherwise entries committed after the snapshot are merged in.
func (s *service) reconcile(ctx context.Context) error {
	log := logger.FromContext(ctx)

	winners, err := s.repo.ListWinners(ctx, 0)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextLoadHistory, err)
	}
	s.history = mergeHistory(s.history, winners)

	finished, err := s.repo.CycleFinished(ctx, s.cycle.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextLoadCycles, err)
	}
	last, err := s.lastStoredNumber(ctx)
	if err != nil {
		return err
	}

	if finished || last > s.cycle.Number {
		prize, err := s.catalog.SelectRandom(s.cycle.Prize.ID)
		if err != nil {
			return err
		}
		log.Warn(LogMsgSnapshotCycleDrawn,
			"cycle_id", s.cycle.ID,
			"cycle_number", s.cycle.Number,
			"last_stored_number", last)
		s.cycle = s.newCycle(max(last, s.cycle.Number)+1, prize)
		return nil
	}

	stored, err := s.repo.ListEntries(ctx, s.cycle.ID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrContextLoadEntries, err)
	}
	known := make(map[uuid.UUID]struct{}, len(s.cycle.Entries))
	for _, e := range s.cycle.Entries {
		known[e.ID] = struct{}{}
	}
	recovered := 0
	for _, e := range stored {
		if _, ok := known[e.ID]; ok {
			continue
		}
		if err := appendEntry(s.cycle, e); err != nil {
			return err
		}
		recovered++
	}
	if recovered > 0 {
		slices.SortStableFunc(s.cycle.Entries, func(a, b domain.Entry) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		})
		log.Info(LogMsgEntriesRecovered, "cycle_id", s.cycle.ID, "recovered", recovered)
	}
	return nil
}

// lastStoredNumber is the highest cycle number known to the store or history.
// Must be called after history is loaded.
func (s *service) lastStoredNumber(ctx context.Context) (int64, error) {
	n, err := s.repo.MaxCycleNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrContextLoadCycles, err)
	}
	if k := len(s.history); k > 0 && s.history[k-1].CycleNumber > n {
		n = s.history[k-1].CycleNumber
	}
	return n, nil
}

// mergeHistory unions two winner lists by cycle, ordered by cycle number
func mergeHistory(a, b []domain.WinnerRecord) []domain.WinnerRecord {
	seen := make(map[uuid.UUID]struct{}, len(a)+len(b))
	out := make([]domain.WinnerRecord, 0, len(a)+len(b))
	for _, list := range [][]domain.WinnerRecord{b, a} {
		for _, w := range list {
			if _, ok := seen[w.CycleID]; ok {
				continue
			}
			seen[w.CycleID] = struct{}{}
			out = append(out, w)
		}
	}
	slices.SortStableFunc(out, func(x, y domain.WinnerRecord) int {
		return cmp.Compare(x.CycleNumber, y.CycleNumber)
	})
	return out
}

func newService(repo repository.Raffle, catalog Catalog, balances BalanceReader, eventBus event.Bus, cfg Config) (*service, error) {
	if catalog == nil || len(catalog.List()) == 0 {
		return nil, domain.ErrPrizeCatalogEmpty
	}
	return &service{
		repo:     repo,
		catalog:  catalog,
		balances: balances,
		eventBus: eventBus,
		cfg:      cfg.withDefaults(),
	}, nil
}

func (s *service) newCycle(number int64, prize domain.Prize) *domain.Cycle {
	// time.Now carries a monotonic reading, so Deadline comparisons are drift-free
	now := s.cfg.Now()
	return &domain.Cycle{
		ID:       uuid.New(),
		Number:   number,
		State:    domain.CycleStateOpen,
		Prize:    prize,
		Entries:  []domain.Entry{},
		OpenedAt: now,
		Deadline: now.Add(s.cfg.CycleDuration),
	}
}

// Enter implements the contribution gate. The external balance check runs
// without the lock. The commit re-validates the cap and re-checks the balance
// read against the participant's committed total under the lock, so a rollover
// or a concurrent entry by the same participant between the two is never missed.
func (s *service) Enter(ctx context.Context, participant string, amount int64) (*domain.Entry, error) {
	s.wg.Add(1)
	defer s.wg.Done()

	log := logger.FromContext(ctx)
	participant = strings.TrimSpace(participant)

	entry, share, poolTotal, cycleNumber, err := s.enter(ctx, participant, amount)
	if err != nil {
		metrics.EntriesRejected.WithLabelValues(rejectionReason(err)).Inc()
		log.Info(LogMsgEntryRejected, "participant", participant, "amount", amount, "error", err)
		return nil, err
	}

	log.Info(LogMsgEntryAccepted,
		"participant", participant,
		"amount", amount,
		"cycle_number", cycleNumber,
		"pool_total", poolTotal,
		"share", share)

	s.publish(ctx, event.NewEntryAcceptedEvent(*entry, cycleNumber, poolTotal, share))
	return entry, nil
}

func (s *service) enter(ctx context.Context, participant string, amount int64) (*domain.Entry, string, int64, int64, error) {
	if participant == "" {
		return nil, "", 0, 0, domain.ErrParticipantRequired
	}

	s.mu.Lock()
	cycleID := s.cycle.ID
	err := validateContribution(s.cycle, participant, amount)
	committed := s.cycle.ParticipantTotal(participant)
	s.mu.Unlock()
	if err != nil {
		return nil, "", 0, 0, err
	}

	// Committed contributions are reserved against the balance until settlement
	balance, err := checkBalance(ctx, s.balances, participant, committed+amount, s.cfg.BalanceCheckTimeout)
	if err != nil {
		return nil, "", 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// The caller may have walked away while the ledger answered
	if err := ctx.Err(); err != nil {
		return nil, "", 0, 0, err
	}
	if s.cycle.ID != cycleID {
		return nil, "", 0, 0, fmt.Errorf("%w: cycle rolled over during submission", domain.ErrCycleNotOpen)
	}
	if err := validateContribution(s.cycle, participant, amount); err != nil {
		return nil, "", 0, 0, err
	}
	if err := coversBalance(balance, s.cycle.ParticipantTotal(participant)+amount); err != nil {
		return nil, "", 0, 0, err
	}

	entry := domain.Entry{
		ID:          uuid.New(),
		CycleID:     s.cycle.ID,
		Participant: participant,
		Amount:      amount,
		CreatedAt:   s.cfg.Now(),
	}

	if s.repo != nil {
		// Detached from the caller: once the write starts its outcome decides the commit
		pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
		err := s.repo.InsertEntry(pctx, entry)
		cancel()
		if err != nil {
			metrics.PersistFailures.WithLabelValues("insert_entry").Inc()
			return nil, "", 0, 0, fmt.Errorf("%s: %w", ErrContextPersistEntry, err)
		}
	}

	if err := appendEntry(s.cycle, entry); err != nil {
		return nil, "", 0, 0, err
	}
	Recompute(s.cycle)

	committedEntry := s.cycle.Entries[len(s.cycle.Entries)-1]
	share := DisplayShare(ChanceOf(s.cycle, participant).Share)
	return &committedEntry, share, s.cycle.PoolTotal, s.cycle.Number, nil
}

// CloseCycle runs the OPEN -> DRAWING -> OPEN transition. Persistence happens
// between the two locked phases and never prevents the rollover.
func (s *service) CloseCycle(ctx context.Context, cycleID uuid.UUID) (*DrawResult, error) {
	s.wg.Add(1)
	defer s.wg.Done()

	start := time.Now()
	defer func() { metrics.DrawDuration.Observe(time.Since(start).Seconds()) }()

	log := logger.FromContext(ctx)

	// Phase 1: freeze the cycle and draw
	s.mu.Lock()
	if cycleID != uuid.Nil && s.cycle.ID != cycleID {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: cycle %s is no longer active", domain.ErrCycleNotOpen, cycleID)
	}
	if s.cycle.State != domain.CycleStateOpen {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: draw already in progress", domain.ErrCycleNotOpen)
	}
	s.cycle.State = domain.CycleStateDrawing
	closed := s.cycle.Clone()
	drawnAt := s.cfg.Now()
	winner, ok, err := Draw(closed, s.cfg.Random, drawnAt)
	s.mu.Unlock()

	if err != nil {
		log.Error(LogMsgDrawFailed, "cycle_id", closed.ID, "error", err)
		winner, ok = nil, false
	}

	// Phase 2: record the outcome
	s.persistDraw(ctx, closed, winner, drawnAt)

	// Phase 3: roll over
	s.mu.Lock()
	if ok {
		s.history = append(s.history, *winner)
	}
	prize, err := s.catalog.SelectRandom(closed.Prize.ID)
	if err != nil {
		// Keep the game running on the current prize rather than stall
		log.Error(LogMsgPrizeSelectFailed, "exclude", closed.Prize.ID, "error", err)
		prize = closed.Prize
	}
	s.cycle = s.newCycle(closed.Number+1, prize)
	next := s.cycle.Clone()
	s.mu.Unlock()

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	s.persistCycle(pctx, next)
	cancel()

	if ok {
		log.Info(LogMsgCycleDrawn,
			"cycle_id", closed.ID,
			"winner", winner.Participant,
			"prize", winner.PrizeID,
			"pool_total", closed.PoolTotal,
			"entries", len(closed.Entries))
		s.publish(ctx, event.NewCycleDrawnEvent(*winner, len(closed.Entries)))
	} else {
		log.Info(LogMsgCycleEmpty, "cycle_id", closed.ID, "prize", closed.Prize.ID)
	}

	log.Info(LogMsgCycleOpened,
		"cycle_id", next.ID,
		"cycle_number", next.Number,
		"prize", next.Prize.ID,
		"deadline", next.Deadline)
	s.publish(ctx, event.NewCycleRolledOverEvent(closed.ID, next, ok))

	return &DrawResult{Closed: closed, Winner: winner, Next: next}, nil
}

func (s *service) persistDraw(ctx context.Context, closed *domain.Cycle, winner *domain.WinnerRecord, closedAt time.Time) {
	if s.repo == nil {
		return
	}

	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()

	if err := s.writeDraw(pctx, closed, winner, closedAt); err != nil {
		metrics.PersistFailures.WithLabelValues("complete_cycle").Inc()
		logger.FromContext(ctx).Error(LogMsgPersistFailed,
			"operation", ErrContextPersistDraw,
			"cycle_id", closed.ID,
			"error", err)
	}
}

func (s *service) writeDraw(ctx context.Context, closed *domain.Cycle, winner *domain.WinnerRecord, closedAt time.Time) error {
	tx, err := s.repo.BeginRaffleTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)

	if err := tx.MarkCycleClosed(ctx, closed, closedAt); err != nil {
		return err
	}
	if winner != nil {
		if err := tx.InsertWinner(ctx, *winner); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (s *service) persistCycle(ctx context.Context, cycle *domain.Cycle) {
	if s.repo == nil {
		return
	}
	if err := s.repo.SaveCycle(ctx, cycle); err != nil {
		metrics.PersistFailures.WithLabelValues("save_cycle").Inc()
		logger.FromContext(ctx).Error(LogMsgPersistFailed,
			"operation", ErrContextPersistCycle,
			"cycle_id", cycle.ID,
			"error", err)
	}
}

func (s *service) publish(ctx context.Context, evt event.Event) {
	log := logger.FromContext(ctx)
	if s.eventBus == nil {
		log.Debug(LogMsgEventBusNil, "event_type", evt.Type)
		return
	}
	if err := s.eventBus.Publish(ctx, evt); err != nil {
		log.Warn(LogMsgPublishFailed, "event_type", evt.Type, "error", err)
	}
}

// CurrentCycle returns a copy of the active cycle
func (s *service) CurrentCycle(ctx context.Context) *domain.Cycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle.Clone()
}

// Chance returns a participant's aggregate win-share in the active cycle
func (s *service) Chance(ctx context.Context, participant string) domain.ParticipantChance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ChanceOf(s.cycle, strings.TrimSpace(participant))
}

// Chances returns every participant's aggregate win-share
func (s *service) Chances(ctx context.Context) []domain.ParticipantChance {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Chances(s.cycle)
}

// History implements Service
func (s *service) History(ctx context.Context, limit int) []domain.WinnerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.history)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.WinnerRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, s.history[i])
	}
	return out
}

// Prizes lists the catalog
func (s *service) Prizes() []domain.Prize {
	return s.catalog.List()
}

// Snapshot captures the active cycle and full history in append order
func (s *service) Snapshot(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Snapshot{
		Version: SnapshotVersion,
		TakenAt: s.cfg.Now(),
		Cycle:   s.cycle.Clone(),
		History: append([]domain.WinnerRecord{}, s.history...),
	}
}

// Shutdown waits for in-flight submissions and draws
func (s *service) Shutdown(ctx context.Context) error {
	logger.FromContext(ctx).Info(LogMsgShutdownWaiting)

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
