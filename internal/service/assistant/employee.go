package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/employee"
)

var (
	terminateRe    = regexp.MustCompile(`terminate\s+(?:employee\s+)?([a-z][a-z .,'-]*)`)
	findEmployeeRe = regexp.MustCompile(`(?:find|look ?up|who is|show me)\s+(?:employee\s+)?([a-z][a-z .,'-]*)`)
	listEmployeeRe = regexp.MustCompile(`(?:list|show)\s+(?:all\s+)?(?:employees|staff)|headcount`)
)

type employeeCommand struct {
	op   string // find | list | terminate
	name string
}

func parseEmployeeCommand(msg string) *employeeCommand {
	if m := terminateRe.FindStringSubmatch(msg); m != nil {
		return &employeeCommand{op: "terminate", name: cleanName(m[1])}
	}
	if listEmployeeRe.MatchString(msg) {
		return &employeeCommand{op: "list"}
	}
	if m := findEmployeeRe.FindStringSubmatch(msg); m != nil {
		return &employeeCommand{op: "find", name: cleanName(m[1])}
	}
	return nil
}

func (s *Service) handleEmployee(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseEmployeeCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "find":
		return s.findEmployee(ctx, cmd.name)
	case "list":
		return s.listEmployees(ctx, msg)
	case "terminate":
		if !actx.Actor.CanManageEmployees() {
			s.log.DebugContext(ctx, "terminate skipped, permission denied",
				slog.String("actor_id", actx.Actor.ID.String()))
			return nil
		}
		return s.proposeTermination(ctx, actx, cmd.name, msg)
	}
	return nil
}

func (s *Service) findEmployee(ctx context.Context, name string) *ActionResult {
	if name == "" {
		return clarify("Which employee are you looking for?")
	}

	res, err := s.resolveEmployee(ctx, name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		emp, err := s.deps.Employees.GetByID(ctx, res.Match.ID)
		if err != nil {
			return failure("I couldn't load that employee.", err.Error())
		}
		return success(fmt.Sprintf("%s is a %s in %s.", emp.FullName(), emp.Role, emp.Department), map[string]any{
			"employee_id": emp.ID.String(),
			"name":        emp.FullName(),
			"email":       emp.Email,
			"role":        emp.Role.String(),
			"department":  emp.Department.String(),
			"status":      emp.Status.String(),
		})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		return notFound(name)
	}
}

func (s *Service) listEmployees(ctx context.Context, msg string) *ActionResult {
	filter := domain.ActiveEmployees()
	filter.Department = parseDepartment(msg)

	emps, err := s.deps.Employees.List(ctx, filter)
	if err != nil {
		return failure("I couldn't list employees right now.", err.Error())
	}

	names := make([]string, 0, len(emps))
	for _, e := range emps {
		names = append(names, e.FullName())
	}

	scope := "active employees"
	if filter.Department != nil {
		scope = fmt.Sprintf("active employees in %s", *filter.Department)
	}
	return success(fmt.Sprintf("There are %d %s.", len(emps), scope), map[string]any{
		"count": len(emps),
		"names": names,
	})
}

func (s *Service) proposeTermination(ctx context.Context, actx ActionContext, name, msg string) *ActionResult {
	if name == "" {
		return clarify("Who should be terminated?")
	}

	res, err := s.resolveEmployee(ctx, name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		effective := time.Now().UTC()
		if d, ok := parseDate(msg, effective); ok {
			effective = d
		}
		return s.propose(ctx, actx, "employee.terminate",
			fmt.Sprintf("Terminate %s effective %s? Please confirm.", res.Match.Name, effective.Format("Jan 2, 2006")),
			map[string]any{
				"employee_id":    res.Match.ID.String(),
				"employee_name":  res.Match.Name,
				"effective_date": effective.Format(time.RFC3339),
			})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		return notFound(name)
	}
}

type terminatePayload struct {
	EmployeeID    uuid.UUID `json:"employee_id"`
	EmployeeName  string    `json:"employee_name"`
	EffectiveDate time.Time `json:"effective_date"`
}

func (s *Service) execTerminateEmployee(ctx context.Context, payload []byte) ActionResult {
	var p terminatePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return *failure("That termination payload is unreadable.", err.Error())
	}

	err := s.deps.EmployeeSvc.Terminate(ctx, employee.TerminateInput{
		EmployeeID:    p.EmployeeID,
		EffectiveDate: p.EffectiveDate,
	})
	if err != nil {
		return *failure(fmt.Sprintf("I couldn't terminate %s.", fallbackName(p.EmployeeName)), err.Error())
	}

	return *success(fmt.Sprintf("%s has been terminated effective %s.",
		fallbackName(p.EmployeeName), p.EffectiveDate.Format("Jan 2, 2006")), map[string]any{
		"employee_id": p.EmployeeID.String(),
	})
}

func fallbackName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "that employee"
	}
	return name
}
