package assistant

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/employee"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

// proposeTermination stages a pending action through a real dispatch and
// returns its confirmation id.
func stageTermination(t *testing.T, svc *Service, deps *dispatcherDeps, actor domain.Actor) uuid.UUID {
	t.Helper()

	deps.employees.ListFunc = func(_ context.Context, _ domain.EmployeeFilter) ([]*domain.Employee, error) {
		return staff([2]string{"John", "Smith"}), nil
	}

	results := svc.Dispatch(context.Background(), ActionContext{Actor: actor, Message: "terminate John Smith"})
	require.Len(t, results, 1)
	require.True(t, results[0].RequiresConfirmation)

	raw, ok := results[0].ConfirmationData["confirmation_id"].(string)
	require.True(t, ok)
	id, err := uuid.Parse(raw)
	require.NoError(t, err)
	return id
}

func TestConfirm_ExecutesProposedAction(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()
	actor := hrActor()

	var got employee.TerminateInput
	deps.employeeSvc.TerminateFunc = func(_ context.Context, input employee.TerminateInput) error {
		got = input
		return nil
	}

	id := stageTermination(t, svc, deps, actor)
	require.Equal(t, domain.PendingProposed, deps.pending.actions[id].State)

	ctx := ctxutil.WithActor(context.Background(), actor)
	res := svc.Confirm(ctx, id)

	assert.True(t, res.Success)
	assert.NotEqual(t, uuid.Nil, got.EmployeeID)
	assert.Equal(t, domain.PendingExecuted, deps.pending.actions[id].State)
}

func TestConfirm_SecondConfirmRejected(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()
	actor := hrActor()

	calls := 0
	deps.employeeSvc.TerminateFunc = func(_ context.Context, _ employee.TerminateInput) error {
		calls++
		return nil
	}

	id := stageTermination(t, svc, deps, actor)
	ctx := ctxutil.WithActor(context.Background(), actor)

	first := svc.Confirm(ctx, id)
	require.True(t, first.Success)

	second := svc.Confirm(ctx, id)
	assert.False(t, second.Success)
	assert.Equal(t, "already confirmed", second.Error)
	assert.Equal(t, 1, calls, "the action must run at most once")
}

func TestConfirm_ExpiredActionRefused(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()
	actor := hrActor()

	payload, err := json.Marshal(terminatePayload{EmployeeID: uuid.New(), EmployeeName: "John Smith"})
	require.NoError(t, err)

	stale := &domain.PendingAction{
		ID:        uuid.New(),
		ActorID:   actor.ID,
		Kind:      "employee.terminate",
		Payload:   payload,
		State:     domain.PendingProposed,
		CreatedAt: time.Now().UTC().Add(-time.Hour),
		ExpiresAt: time.Now().UTC().Add(-45 * time.Minute),
	}
	deps.pending.actions[stale.ID] = stale

	deps.employeeSvc.TerminateFunc = func(_ context.Context, _ employee.TerminateInput) error {
		t.Fatal("an expired action must not execute")
		return nil
	}

	ctx := ctxutil.WithActor(context.Background(), actor)
	res := svc.Confirm(ctx, stale.ID)

	assert.False(t, res.Success)
	assert.Equal(t, "confirmation expired", res.Error)
	assert.Equal(t, domain.PendingExpired, deps.pending.actions[stale.ID].State)
}

func TestConfirm_OtherActorsActionRefused(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	id := stageTermination(t, svc, deps, hrActor())

	intruder := hrActor()
	ctx := ctxutil.WithActor(context.Background(), intruder)
	res := svc.Confirm(ctx, id)

	assert.False(t, res.Success)
	assert.Equal(t, "actor mismatch", res.Error)
	assert.Equal(t, domain.PendingProposed, deps.pending.actions[id].State)
}

func TestConfirm_UnknownIDRefused(t *testing.T) {
	t.Parallel()
	svc, _ := newTestDispatcher()

	ctx := ctxutil.WithActor(context.Background(), hrActor())
	res := svc.Confirm(ctx, uuid.New())

	assert.False(t, res.Success)
	assert.Equal(t, "unknown confirmation id", res.Error)
}

// Executors are pure functions of their stored payload: replaying the
// same bytes yields two independent, identical executions.
func TestExecutor_ReplaysPayloadWithoutReparsing(t *testing.T) {
	t.Parallel()
	svc, deps := newTestDispatcher()

	var seen []employee.TerminateInput
	deps.employeeSvc.TerminateFunc = func(_ context.Context, input employee.TerminateInput) error {
		seen = append(seen, input)
		return nil
	}

	when := time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC)
	payload, err := json.Marshal(terminatePayload{
		EmployeeID:    uuid.New(),
		EmployeeName:  "John Smith",
		EffectiveDate: when,
	})
	require.NoError(t, err)

	first := svc.execTerminateEmployee(context.Background(), payload)
	second := svc.execTerminateEmployee(context.Background(), payload)

	assert.True(t, first.Success)
	assert.True(t, second.Success)
	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
	assert.Equal(t, when, seen[0].EffectiveDate)
}
