// Package sweep runs the periodic housekeeping pass: it expires stale
// pending confirmations and nags managers about equipment still checked
// out to terminated employees.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

type toolRepo interface {
	ListHeldByTerminated(ctx context.Context) ([]*domain.Tool, error)
}

type employeeRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error)
}

type pendingRepo interface {
	ExpireOlderThan(ctx context.Context, now time.Time) (int, error)
}

type notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Service is the housekeeping sweep. A single pass may run at a time;
// overlapping ticks are skipped, not queued.
type Service struct {
	tools     toolRepo
	employees employeeRepo
	pending   pendingRepo
	notify    notifier
	log       *slog.Logger

	busy atomic.Bool
}

// NewService creates a new sweep service.
func NewService(log *slog.Logger, tools toolRepo, employees employeeRepo, pending pendingRepo, notify notifier) *Service {
	return &Service{
		tools:     tools,
		employees: employees,
		pending:   pending,
		notify:    notify,
		log:       log.With("service", "sweep"),
	}
}

// Busy reports whether a sweep pass is currently running.
func (s *Service) Busy() bool {
	return s.busy.Load()
}

// Run ticks the sweep at the given interval until ctx is cancelled. One
// pass runs immediately on start.
func (s *Service) Run(ctx context.Context, interval time.Duration) {
	s.log.InfoContext(ctx, "sweep started", slog.Duration("interval", interval))

	s.RunOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.log.InfoContext(ctx, "sweep stopped")
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce performs one sweep pass. If a previous pass is still running
// the call is skipped and logged. Returns whether the pass ran.
func (s *Service) RunOnce(ctx context.Context) bool {
	if !s.busy.CompareAndSwap(false, true) {
		s.log.WarnContext(ctx, "sweep pass still running, tick skipped")
		return false
	}
	defer s.busy.Store(false)

	start := time.Now()
	expired := s.expireConfirmations(ctx)
	reminders := s.remindToolCollection(ctx)

	s.log.InfoContext(ctx, "sweep pass done",
		slog.Int("expired_confirmations", expired),
		slog.Int("reminders_sent", reminders),
		slog.Duration("took", time.Since(start)),
	)
	return true
}

func (s *Service) expireConfirmations(ctx context.Context) int {
	n, err := s.pending.ExpireOlderThan(ctx, time.Now().UTC())
	if err != nil {
		s.log.ErrorContext(ctx, "expire confirmations failed", slog.String("error", err.Error()))
		return 0
	}
	return n
}

// remindToolCollection emails each responsible manager one digest of the
// equipment their former reports still hold. Failures are logged per
// employee so one bad record cannot stop the rest of the pass.
func (s *Service) remindToolCollection(ctx context.Context) int {
	held, err := s.tools.ListHeldByTerminated(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "list outstanding tools failed", slog.String("error", err.Error()))
		return 0
	}
	if len(held) == 0 {
		return 0
	}

	byHolder := make(map[uuid.UUID][]*domain.Tool)
	for _, t := range held {
		if t.AssignedTo == nil {
			continue
		}
		byHolder[*t.AssignedTo] = append(byHolder[*t.AssignedTo], t)
	}

	holders := make([]uuid.UUID, 0, len(byHolder))
	for id := range byHolder {
		holders = append(holders, id)
	}
	sort.Slice(holders, func(i, j int) bool { return holders[i].String() < holders[j].String() })

	sent := 0
	for _, holderID := range holders {
		if s.remindOne(ctx, holderID, byHolder[holderID]) {
			sent++
		}
	}
	return sent
}

func (s *Service) remindOne(ctx context.Context, holderID uuid.UUID, tools []*domain.Tool) bool {
	emp, err := s.employees.GetByID(ctx, holderID)
	if err != nil {
		s.log.WarnContext(ctx, "load former employee failed",
			slog.String("employee_id", holderID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}
	if emp.ManagerID == nil {
		s.log.WarnContext(ctx, "no manager on record for tool reminder",
			slog.String("employee_id", holderID.String()),
		)
		return false
	}

	manager, err := s.employees.GetByID(ctx, *emp.ManagerID)
	if err != nil {
		s.log.WarnContext(ctx, "load manager failed",
			slog.String("manager_id", emp.ManagerID.String()),
			slog.String("error", err.Error()),
		)
		return false
	}

	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, fmt.Sprintf("%s (%s)", t.Name, t.AssetTag))
	}

	subject := fmt.Sprintf("Tool collection needed: %s", emp.FullName())
	body := fmt.Sprintf("%s is no longer employed and still holds: %s", emp.FullName(), strings.Join(names, ", "))
	if err := s.notify.Send(ctx, manager.Email, subject, body); err != nil {
		s.log.WarnContext(ctx, "tool collection reminder failed",
			slog.String("manager_email", manager.Email),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}
