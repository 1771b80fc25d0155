package assistant

import (
	"context"
	"strings"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// route is one row of the dispatch table: a trigger predicate, a
// permission gate and a handler. Rows are evaluated uniformly, in order.
type route struct {
	name      string
	trigger   func(msg string) bool
	permitted func(actor domain.Actor) bool
	handle    func(ctx context.Context, actx ActionContext, msg string) *ActionResult
}

// routes returns the dispatch table. Order is fixed and deterministic;
// every triggered, permitted row runs for every message.
func (s *Service) routes() []route {
	return []route{
		{
			name:      "employee",
			trigger:   anyKeyword("employee", "terminate", "staff", "who is", "headcount"),
			permitted: func(a domain.Actor) bool { return a.CanViewOwnData() },
			handle:    s.handleEmployee,
		},
		{
			name:      "pto",
			trigger:   anyKeyword("pto", "time off", "vacation", "sick day", "day off", "leave balance"),
			permitted: func(a domain.Actor) bool { return a.CanRequestPTO() },
			handle:    s.handlePTO,
		},
		{
			name:      "recruiting",
			trigger:   anyKeyword("candidate", "applicant", "pipeline", "interview", "screening"),
			permitted: domain.Actor.CanManageCandidates,
			handle:    s.handleRecruiting,
		},
		{
			name:      "document",
			trigger:   anyKeyword("document", "paperwork", "w4", "i9", "certification"),
			permitted: func(a domain.Actor) bool { return a.CanViewOwnData() },
			handle:    s.handleDocument,
		},
		{
			name:      "review",
			trigger:   anyKeyword("review", "performance", "evaluation"),
			permitted: domain.Actor.CanManageTeam,
			handle:    s.handleReview,
		},
		{
			name:      "tools",
			trigger:   anyKeyword("tool", "equipment", "ladder", "asset"),
			permitted: func(a domain.Actor) bool { return a.CanViewOwnData() },
			handle:    s.handleTools,
		},
		{
			name:      "territory",
			trigger:   anyKeyword("territory", "territories", "zip", "coverage"),
			permitted: domain.Actor.CanManageAgents,
			handle:    s.handleTerritory,
		},
		{
			name:      "contract",
			trigger:   anyKeyword("contract", "agreement", "sign"),
			permitted: func(a domain.Actor) bool { return a.CanManageEmployees() || a.CanManageAgents() },
			handle:    s.handleContract,
		},
	}
}

// anyKeyword builds a trigger matching any of the given substrings.
func anyKeyword(words ...string) func(string) bool {
	return func(msg string) bool {
		for _, w := range words {
			if strings.Contains(msg, w) {
				return true
			}
		}
		return false
	}
}
