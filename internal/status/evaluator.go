package status

import (
	"context"
	"sync"
	"time"

	"fogon/internal/metrics"
	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// defaultPollInterval bounds the staleness of the cash-register signal;
// the backing store does not push change notifications for registers.
const defaultPollInterval = 30 * time.Second

// ScheduleSource loads the configured business hours for a tenant
type ScheduleSource interface {
	BusinessHours(ctx context.Context, tenantID uuid.UUID) (*models.WeeklySchedule, error)
}

// CashRegisterSource lists open till sessions for a branch
type CashRegisterSource interface {
	ListOpenByBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]models.CashRegister, error)
}

// Broadcaster pushes derived-status changes to connected dashboard clients
type Broadcaster interface {
	BroadcastToTenant(tenantID string, messageType string, data interface{})
}

type branchKey struct {
	tenantID uuid.UUID
	branchID uuid.UUID
}

type branchEntry struct {
	gen      uint64
	status   RestaurantStatus
	hasValue bool
}

// Evaluator derives the order-acceptance status per (tenant, branch) and
// keeps it current: on a fixed poll tick, on business-hours writes and on
// cash register open/close. Evaluations are tagged with a per-branch
// generation; a result computed under a superseded generation is discarded,
// so a stale asynchronous check can never overwrite a newer one.
type Evaluator struct {
	schedules    ScheduleSource
	registers    CashRegisterSource
	broadcaster  Broadcaster
	pollInterval time.Duration
	now          func() time.Time
	debug        bool

	mu      sync.Mutex
	entries map[branchKey]*branchEntry
}

// NewEvaluator creates a status evaluator
func NewEvaluator(schedules ScheduleSource, registers CashRegisterSource) *Evaluator {
	return &Evaluator{
		schedules:    schedules,
		registers:    registers,
		pollInterval: defaultPollInterval,
		now:          time.Now,
		entries:      make(map[branchKey]*branchEntry),
	}
}

// SetBroadcaster wires the websocket hub for status-changed pushes
func (e *Evaluator) SetBroadcaster(b Broadcaster) {
	e.broadcaster = b
}

// EnableDebug includes the schedule diagnostic in evaluated statuses
func (e *Evaluator) EnableDebug() {
	e.debug = true
}

// Evaluate computes the full composite status for a branch right now.
// All failures are absorbed into the derived status, never returned: a
// missing or unreadable schedule evaluates to closed-by-hours, and a failed
// register query blocks acceptance while being marked distinctly from a
// confirmed "no open register".
func (e *Evaluator) Evaluate(ctx context.Context, tenantID, branchID uuid.UUID) RestaurantStatus {
	in := Input{}

	schedule, err := e.schedules.BusinessHours(ctx, tenantID)
	if err != nil {
		log.Debug().Err(err).Str("tenant_id", tenantID.String()).Msg("Business hours not configured")
		schedule = nil
	}

	now := e.now()
	if schedule != nil && schedule.Timezone != "" {
		if loc, err := time.LoadLocation(schedule.Timezone); err == nil {
			now = now.In(loc)
		} else {
			log.Warn().Err(err).Str("timezone", schedule.Timezone).Msg("Invalid schedule timezone, using server time")
		}
	}

	within, diag := Match(schedule, now)
	in.IsWithinHours = within
	if e.debug {
		in.Diagnostic = &diag
	}

	registers, err := e.registers.ListOpenByBranch(ctx, tenantID, branchID)
	if err != nil {
		log.Error().Err(err).
			Str("tenant_id", tenantID.String()).
			Str("branch_id", branchID.String()).
			Msg("Cash register check failed")
		in.CheckFailed = true
	} else {
		in.HasCashRegister = len(registers) > 0
	}

	composed := Compose(in)
	metrics.StatusEvaluated(composed.StatusMessage)
	return composed
}

// Status returns the current cached status for a branch. On first sight of a
// branch there is nothing cached yet: a background evaluation is started and
// a loading status (acceptance denied) is returned until it lands.
func (e *Evaluator) Status(ctx context.Context, tenantID, branchID uuid.UUID) RestaurantStatus {
	key := branchKey{tenantID: tenantID, branchID: branchID}

	e.mu.Lock()
	entry, ok := e.entries[key]
	if !ok {
		entry = &branchEntry{}
		e.entries[key] = entry
	}
	if entry.hasValue {
		status := entry.status
		e.mu.Unlock()
		return status
	}
	gen := entry.gen
	e.mu.Unlock()

	go e.refresh(context.WithoutCancel(ctx), key, gen)

	return Compose(Input{IsLoading: true})
}

// Invalidate discards the cached status for a branch and recomputes it.
// Called when business hours are rewritten or a register opens/closes.
// Any evaluation still in flight for the branch is superseded.
func (e *Evaluator) Invalidate(tenantID, branchID uuid.UUID) {
	key := branchKey{tenantID: tenantID, branchID: branchID}

	e.mu.Lock()
	entry, ok := e.entries[key]
	if !ok {
		entry = &branchEntry{}
		e.entries[key] = entry
	}
	entry.gen++
	gen := entry.gen
	e.mu.Unlock()

	go e.refresh(context.Background(), key, gen)
}

// InvalidateTenant recomputes every tracked branch of a tenant, used when
// tenant-level configuration (business hours) changes
func (e *Evaluator) InvalidateTenant(tenantID uuid.UUID) {
	e.mu.Lock()
	keys := make([]branchKey, 0)
	for key, entry := range e.entries {
		if key.tenantID == tenantID {
			entry.gen++
			keys = append(keys, key)
		}
	}
	gens := make([]uint64, len(keys))
	for i, key := range keys {
		gens[i] = e.entries[key].gen
	}
	e.mu.Unlock()

	for i, key := range keys {
		go e.refresh(context.Background(), key, gens[i])
	}
}

// Start runs the periodic re-evaluation loop until the context is cancelled
func (e *Evaluator) Start(ctx context.Context) {
	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	log.Info().Dur("interval", e.pollInterval).Msg("Status evaluator poll loop started")

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Status evaluator poll loop stopped")
			return
		case <-ticker.C:
			e.pollAll(ctx)
		}
	}
}

func (e *Evaluator) pollAll(ctx context.Context) {
	e.mu.Lock()
	keys := make([]branchKey, 0, len(e.entries))
	gens := make([]uint64, 0, len(e.entries))
	for key, entry := range e.entries {
		keys = append(keys, key)
		gens = append(gens, entry.gen)
	}
	e.mu.Unlock()

	for i, key := range keys {
		e.refresh(ctx, key, gens[i])
	}
}

// refresh evaluates one branch and stores the result unless the branch
// generation advanced while the evaluation was in flight
func (e *Evaluator) refresh(ctx context.Context, key branchKey, gen uint64) {
	status := e.Evaluate(ctx, key.tenantID, key.branchID)

	e.mu.Lock()
	entry, ok := e.entries[key]
	if !ok || entry.gen != gen {
		e.mu.Unlock()
		log.Debug().
			Str("branch_id", key.branchID.String()).
			Msg("Discarding stale status evaluation")
		return
	}
	changed := !entry.hasValue || entry.status.StatusMessage != status.StatusMessage ||
		entry.status.CanAcceptOrders != status.CanAcceptOrders
	entry.status = status
	entry.hasValue = true
	e.mu.Unlock()

	if changed && e.broadcaster != nil {
		e.broadcaster.BroadcastToTenant(key.tenantID.String(), "status_changed", map[string]interface{}{
			"branch_id": key.branchID.String(),
			"status":    status,
		})
	}
}
