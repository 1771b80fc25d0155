package assistant

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/pto"
)

var (
	requestPTORe = regexp.MustCompile(`(?:request|take|need|book)\s+(?:some\s+)?(?:pto|time off|vacation|a sick day|a day off)`)
	decidePTORe  = regexp.MustCompile(`(approve|deny)\s+(?:the\s+)?(?:pto|time off|vacation|leave)(?:\s+request)?(?:\s+for\s+([a-z][a-z .,'-]*))?`)
	balanceRe    = regexp.MustCompile(`(?:pto|vacation|leave)\s+balance|how (?:many|much) (?:pto|vacation)`)
)

type ptoCommand struct {
	op      string // request | decide | balance
	approve bool
	name    string
}

func parsePTOCommand(msg string) *ptoCommand {
	if m := decidePTORe.FindStringSubmatch(msg); m != nil {
		cmd := &ptoCommand{op: "decide", approve: m[1] == "approve"}
		if len(m) > 2 {
			cmd.name = cleanName(m[2])
		}
		return cmd
	}
	if balanceRe.MatchString(msg) {
		return &ptoCommand{op: "balance"}
	}
	if requestPTORe.MatchString(msg) {
		return &ptoCommand{op: "request"}
	}
	return nil
}

func (s *Service) handlePTO(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parsePTOCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "request":
		return s.requestPTO(ctx, actx, msg)
	case "balance":
		return s.ptoBalance(ctx, actx)
	case "decide":
		if !actx.Actor.CanManageTeam() {
			return nil
		}
		return s.decidePTO(ctx, cmd)
	}
	return nil
}

func (s *Service) requestPTO(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	start, end, ok := parseDateRange(msg, time.Now().UTC())
	if !ok {
		return clarify("When would you like to take time off? For example: \"next monday\" or \"from June 2 to June 6\".")
	}

	ptoType := domain.PTOVacation
	if strings.Contains(msg, "sick") {
		ptoType = domain.PTOSick
	} else if strings.Contains(msg, "unpaid") {
		ptoType = domain.PTOUnpaid
	} else if strings.Contains(msg, "personal") {
		ptoType = domain.PTOPersonal
	}

	req, err := s.deps.PTOSvc.Request(ctx, pto.RequestInput{
		EmployeeID: actx.Actor.ID,
		Type:       ptoType,
		StartDate:  start,
		EndDate:    end,
	})
	if err != nil {
		return failure("I couldn't submit that time-off request.", err.Error())
	}

	return success(fmt.Sprintf("Requested %.0f day(s) of %s from %s to %s. It's pending approval.",
		req.Days, req.Type, start.Format("Jan 2"), end.Format("Jan 2, 2006")), map[string]any{
		"request_id": req.ID.String(),
		"days":       req.Days,
		"type":       req.Type.String(),
		"start_date": start.Format("2006-01-02"),
		"end_date":   end.Format("2006-01-02"),
	})
}

func (s *Service) ptoBalance(ctx context.Context, actx ActionContext) *ActionResult {
	balance, err := s.deps.PTOSvc.Balance(ctx, actx.Actor.ID)
	if err != nil {
		return failure("I couldn't look up your balance.", err.Error())
	}
	return success(fmt.Sprintf("You have %.1f PTO day(s) remaining.", balance), map[string]any{
		"balance_days": balance,
	})
}

// decidePTO finds the pending request for the named employee and applies
// the decision. With no name, a single pending request is unambiguous.
func (s *Service) decidePTO(ctx context.Context, cmd *ptoCommand) *ActionResult {
	pending, err := s.deps.PTORequests.ListByStatus(ctx, domain.PTOPending)
	if err != nil {
		return failure("I couldn't list pending requests.", err.Error())
	}
	if len(pending) == 0 {
		return failure("There are no pending time-off requests.", "nothing pending")
	}

	target := pending
	if cmd.name != "" {
		res, err := s.resolveEmployee(ctx, cmd.name)
		if err != nil {
			return failure("I couldn't search employees right now.", err.Error())
		}
		switch res.Kind {
		case ResolutionAuto:
			target = target[:0:0]
			for _, r := range pending {
				if r.EmployeeID == res.Match.ID {
					target = append(target, r)
				}
			}
			if len(target) == 0 {
				return failure(fmt.Sprintf("%s has no pending time-off requests.", res.Match.Name), "nothing pending")
			}
		case ResolutionAmbiguous:
			return ambiguous(cmd.name, res.Suggestions)
		default:
			return notFound(cmd.name)
		}
	}
	if len(target) > 1 {
		return clarify(fmt.Sprintf("There are %d pending requests. Whose request should I act on?", len(target)))
	}

	req, err := s.deps.PTOSvc.Decide(ctx, pto.DecideInput{RequestID: target[0].ID, Approve: cmd.approve})
	if err != nil {
		return failure("I couldn't record that decision.", err.Error())
	}

	verb := "denied"
	if cmd.approve {
		verb = "approved"
	}
	return success(fmt.Sprintf("The request for %s to %s has been %s.",
		req.StartDate.Format("Jan 2"), req.EndDate.Format("Jan 2"), verb), map[string]any{
		"request_id": req.ID.String(),
		"status":     req.Status.String(),
	})
}
