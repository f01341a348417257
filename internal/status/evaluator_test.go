package status

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fogon/pkg/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSchedules struct {
	mu       sync.Mutex
	schedule *models.WeeklySchedule
	err      error
}

func (f *fakeSchedules) BusinessHours(ctx context.Context, tenantID uuid.UUID) (*models.WeeklySchedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schedule, f.err
}

type fakeRegisters struct {
	mu   sync.Mutex
	regs []models.CashRegister
	err  error
}

func (f *fakeRegisters) ListOpenByBranch(ctx context.Context, tenantID, branchID uuid.UUID) ([]models.CashRegister, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regs, f.err
}

func (f *fakeRegisters) set(regs []models.CashRegister, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.regs = regs
	f.err = err
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (f *fakeBroadcaster) BroadcastToTenant(tenantID string, messageType string, data interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, messageType)
}

func (f *fakeBroadcaster) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

// openToday builds a schedule where 2025-06-02 (a Monday) is open 08:00-22:00
func openToday() *models.WeeklySchedule {
	return &models.WeeklySchedule{
		Days: []models.DaySchedule{
			{
				Day:       "monday",
				IsOpen:    true,
				Intervals: []models.TimeInterval{{Open: "08:00", Close: "22:00"}},
			},
		},
	}
}

func newTestEvaluator(schedules *fakeSchedules, registers *fakeRegisters, at time.Time) *Evaluator {
	ev := NewEvaluator(schedules, registers)
	ev.now = func() time.Time { return at }
	return ev
}

func TestEvaluateFullyOpen(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	s := ev.Evaluate(context.Background(), uuid.New(), uuid.New())

	assert.True(t, s.IsWithinHours)
	assert.True(t, s.HasCashRegister)
	assert.True(t, s.CanAcceptOrders)
	assert.Equal(t, "Abierto ahora", s.StatusMessage)
}

func TestEvaluateClosedByHours(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(23, 30))

	s := ev.Evaluate(context.Background(), uuid.New(), uuid.New())

	assert.False(t, s.IsWithinHours)
	assert.False(t, s.CanAcceptOrders)
	assert.Equal(t, "Cerrado por horario", s.StatusMessage)
}

func TestEvaluateClosedByCash(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	s := ev.Evaluate(context.Background(), uuid.New(), uuid.New())

	assert.True(t, s.IsWithinHours)
	assert.False(t, s.HasCashRegister)
	assert.False(t, s.CanAcceptOrders)
	assert.False(t, s.CheckFailed)
	assert.Equal(t, "Temporalmente no disponible", s.StatusMessage)
}

func TestEvaluateRegisterQueryFailure(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{err: errors.New("connection refused")}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	s := ev.Evaluate(context.Background(), uuid.New(), uuid.New())

	assert.False(t, s.HasCashRegister)
	assert.False(t, s.CanAcceptOrders)
	assert.True(t, s.CheckFailed, "query failure must be distinguishable from confirmed no-register")
}

func TestEvaluateMissingScheduleFailsSafe(t *testing.T) {
	schedules := &fakeSchedules{err: errors.New("record not found")}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	s := ev.Evaluate(context.Background(), uuid.New(), uuid.New())

	assert.False(t, s.IsWithinHours)
	assert.False(t, s.CanAcceptOrders)
	assert.Equal(t, "Cerrado por horario", s.StatusMessage)
}

func TestStatusReportsLoadingUntilFirstEvaluation(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	tenantID, branchID := uuid.New(), uuid.New()

	first := ev.Status(context.Background(), tenantID, branchID)
	assert.True(t, first.IsLoading)
	assert.False(t, first.CanAcceptOrders, "loading must deny acceptance")
	assert.Equal(t, "Verificando disponibilidad", first.StatusMessage)

	require.Eventually(t, func() bool {
		s := ev.Status(context.Background(), tenantID, branchID)
		return !s.IsLoading && s.CanAcceptOrders
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStaleEvaluationIsDiscarded(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))

	tenantID, branchID := uuid.New(), uuid.New()
	key := branchKey{tenantID: tenantID, branchID: branchID}

	ev.Status(context.Background(), tenantID, branchID)
	require.Eventually(t, func() bool {
		return !ev.Status(context.Background(), tenantID, branchID).IsLoading
	}, 2*time.Second, 10*time.Millisecond)

	// The register closes and the cache is invalidated; a refresh computed
	// under the superseded generation must not overwrite the newer result.
	registers.set(nil, nil)
	ev.Invalidate(tenantID, branchID)
	require.Eventually(t, func() bool {
		s := ev.Status(context.Background(), tenantID, branchID)
		return !s.IsLoading && !s.HasCashRegister
	}, 2*time.Second, 10*time.Millisecond)

	registers.set([]models.CashRegister{{Status: models.CashRegisterOpen}}, nil)
	ev.refresh(context.Background(), key, 0) // generation 0 is long superseded

	s := ev.Status(context.Background(), tenantID, branchID)
	assert.False(t, s.HasCashRegister, "stale evaluation must be discarded")
	assert.False(t, s.CanAcceptOrders)
}

func TestStatusChangeIsBroadcast(t *testing.T) {
	schedules := &fakeSchedules{schedule: openToday()}
	registers := &fakeRegisters{regs: []models.CashRegister{{Status: models.CashRegisterOpen}}}
	ev := newTestEvaluator(schedules, registers, monday(12, 0))
	broadcaster := &fakeBroadcaster{}
	ev.SetBroadcaster(broadcaster)

	tenantID, branchID := uuid.New(), uuid.New()
	ev.Status(context.Background(), tenantID, branchID)

	require.Eventually(t, func() bool {
		return broadcaster.count() == 1
	}, 2*time.Second, 10*time.Millisecond)

	// Unchanged re-evaluation stays silent
	ev.Invalidate(tenantID, branchID)
	require.Eventually(t, func() bool {
		return !ev.Status(context.Background(), tenantID, branchID).IsLoading
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, broadcaster.count())

	// Register closes, message changes, one more event
	registers.set(nil, nil)
	ev.Invalidate(tenantID, branchID)
	require.Eventually(t, func() bool {
		return broadcaster.count() == 2
	}, 2*time.Second, 10*time.Millisecond)
}
