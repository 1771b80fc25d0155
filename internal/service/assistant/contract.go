package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/contract"
)

var (
	issueContractRe  = regexp.MustCompile(`(?:send|issue)\s+(?:a\s+)?(?:([a-z]+)\s+)?contract\s+to\s+([a-z][a-z .,'-]*)`)
	signedContractRe = regexp.MustCompile(`(?:mark\s+)?(?:the\s+)?contract\s+(?:for|of)\s+([a-z][a-z .,'-]*?)\s+(?:as\s+)?signed|([a-z][a-z .,'-]*?)\s+signed\s+(?:the|their)\s+contract`)
	voidContractRe   = regexp.MustCompile(`void\s+(?:the\s+)?contract\s+(?:for|of)\s+([a-z][a-z .,'-]*)`)
)

type contractCommand struct {
	op    string // issue | signed | void
	name  string
	ctype domain.ContractType
}

func parseContractCommand(msg string) *contractCommand {
	if m := issueContractRe.FindStringSubmatch(msg); m != nil {
		ctype := domain.ContractEmployment
		switch strings.TrimSpace(m[1]) {
		case "subcontractor":
			ctype = domain.ContractSubcontractor
		case "commission":
			ctype = domain.ContractCommission
		}
		return &contractCommand{op: "issue", name: cleanName(m[2]), ctype: ctype}
	}
	if m := voidContractRe.FindStringSubmatch(msg); m != nil {
		return &contractCommand{op: "void", name: cleanName(m[1])}
	}
	if m := signedContractRe.FindStringSubmatch(msg); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		return &contractCommand{op: "signed", name: cleanName(name)}
	}
	return nil
}

func (s *Service) handleContract(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseContractCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "issue":
		return s.proposeContract(ctx, actx, cmd)
	case "signed":
		return s.markContractSigned(ctx, cmd.name)
	case "void":
		return s.voidContract(ctx, cmd.name)
	}
	return nil
}

// proposeContract stages issuance behind a confirmation: sending an
// agreement is outward-facing and hard to take back.
func (s *Service) proposeContract(ctx context.Context, actx ActionContext, cmd *contractCommand) *ActionResult {
	if cmd.name == "" {
		return clarify("Who should receive the contract?")
	}

	res, err := s.resolveEmployee(ctx, cmd.name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		return s.propose(ctx, actx, "contract.issue",
			fmt.Sprintf("Send a %s contract to %s? Please confirm.", cmd.ctype, res.Match.Name),
			map[string]any{
				"employee_id":   res.Match.ID.String(),
				"employee_name": res.Match.Name,
				"contract_type": cmd.ctype.String(),
			})
	case ResolutionAmbiguous:
		return ambiguous(cmd.name, res.Suggestions)
	default:
		return notFound(cmd.name)
	}
}

type issueContractPayload struct {
	EmployeeID   uuid.UUID           `json:"employee_id"`
	EmployeeName string              `json:"employee_name"`
	ContractType domain.ContractType `json:"contract_type"`
}

func (s *Service) execIssueContract(ctx context.Context, payload []byte) ActionResult {
	var p issueContractPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return *failure("That contract payload is unreadable.", err.Error())
	}

	c, err := s.deps.ContractSvc.Issue(ctx, contract.IssueInput{
		EmployeeID: &p.EmployeeID,
		Type:       p.ContractType,
	})
	if err != nil {
		return *failure(fmt.Sprintf("I couldn't issue a contract to %s.", fallbackName(p.EmployeeName)), err.Error())
	}
	return *success(fmt.Sprintf("A %s contract has been sent to %s.", c.Type, fallbackName(p.EmployeeName)), map[string]any{
		"contract_id": c.ID.String(),
		"status":      c.Status.String(),
	})
}

// latestOpenContract finds the employee's most recent contract in the
// given status.
func (s *Service) latestOpenContract(ctx context.Context, employeeID uuid.UUID, status domain.ContractStatus) (*domain.Contract, error) {
	contracts, err := s.deps.Contracts.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	for _, c := range contracts {
		if c.Status == status {
			return c, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *Service) markContractSigned(ctx context.Context, name string) *ActionResult {
	res, err := s.resolveEmployee(ctx, name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		c, err := s.latestOpenContract(ctx, res.Match.ID, domain.ContractSent)
		if err != nil {
			return failure(fmt.Sprintf("%s has no contract awaiting signature.", res.Match.Name), err.Error())
		}
		signed, err := s.deps.ContractSvc.MarkSigned(ctx, c.ID)
		if err != nil {
			return failure("I couldn't mark that contract signed.", err.Error())
		}
		return success(fmt.Sprintf("%s's %s contract is signed.", res.Match.Name, signed.Type), map[string]any{
			"contract_id": signed.ID.String(),
			"status":      signed.Status.String(),
		})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		return notFound(name)
	}
}

func (s *Service) voidContract(ctx context.Context, name string) *ActionResult {
	res, err := s.resolveEmployee(ctx, name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		c, err := s.latestOpenContract(ctx, res.Match.ID, domain.ContractSent)
		if err != nil {
			return failure(fmt.Sprintf("%s has no open contract to void.", res.Match.Name), err.Error())
		}
		voided, err := s.deps.ContractSvc.Void(ctx, c.ID)
		if err != nil {
			return failure("I couldn't void that contract.", err.Error())
		}
		return success(fmt.Sprintf("%s's contract has been voided.", res.Match.Name), map[string]any{
			"contract_id": voided.ID.String(),
			"status":      voided.Status.String(),
		})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		return notFound(name)
	}
}
