package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	assignToolRe = regexp.MustCompile(`(?:assign|give|hand)\s+(?:the\s+)?([a-z0-9 .,'-]+?)\s+to\s+([a-z][a-z .,'-]*)`)
	lostToolRe   = regexp.MustCompile(`(?:report\s+)?(?:the\s+)?([a-z0-9 .,'-]+?)\s+(?:is\s+|as\s+)?lost`)
	whoseToolsRe = regexp.MustCompile(`(?:what\s+)?(?:tools?|equipment)\s+does\s+([a-z][a-z .,'-]*?)\s+have`)
	myToolsRe    = regexp.MustCompile(`my\s+(?:tools?|equipment)`)
)

type toolsCommand struct {
	op       string // assign | lost | list | mine
	toolName string
	name     string
}

func parseToolsCommand(msg string) *toolsCommand {
	if m := whoseToolsRe.FindStringSubmatch(msg); m != nil {
		return &toolsCommand{op: "list", name: cleanName(m[1])}
	}
	if myToolsRe.MatchString(msg) {
		return &toolsCommand{op: "mine"}
	}
	if m := assignToolRe.FindStringSubmatch(msg); m != nil {
		return &toolsCommand{op: "assign", toolName: strings.TrimSpace(m[1]), name: cleanName(m[2])}
	}
	if m := lostToolRe.FindStringSubmatch(msg); m != nil {
		return &toolsCommand{op: "lost", toolName: strings.TrimSpace(m[1])}
	}
	return nil
}

func (s *Service) handleTools(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseToolsCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "mine":
		return s.listHeldTools(ctx, actx.Actor.ID, "You")
	case "list":
		if !actx.Actor.CanManageTeam() {
			return nil
		}
		res, err := s.resolveEmployee(ctx, cmd.name)
		if err != nil {
			return failure("I couldn't search employees right now.", err.Error())
		}
		switch res.Kind {
		case ResolutionAuto:
			return s.listHeldTools(ctx, res.Match.ID, res.Match.Name)
		case ResolutionAmbiguous:
			return ambiguous(cmd.name, res.Suggestions)
		default:
			return notFound(cmd.name)
		}
	case "assign":
		if !actx.Actor.CanManageTeam() {
			return nil
		}
		return s.proposeToolAssignment(ctx, actx, cmd)
	case "lost":
		if !actx.Actor.CanManageTeam() {
			return nil
		}
		return s.reportToolLost(ctx, cmd.toolName)
	}
	return nil
}

func (s *Service) listHeldTools(ctx context.Context, employeeID uuid.UUID, who string) *ActionResult {
	tools, err := s.deps.ToolingSvc.ListForEmployee(ctx, employeeID)
	if err != nil {
		return failure(fmt.Sprintf("I couldn't list tools for %s.", who), err.Error())
	}

	entries := make([]map[string]any, 0, len(tools))
	for _, t := range tools {
		entries = append(entries, map[string]any{
			"id":        t.ID.String(),
			"name":      t.Name,
			"asset_tag": t.AssetTag,
		})
	}
	verb := "has"
	if who == "You" {
		verb = "have"
	}
	return success(fmt.Sprintf("%s %s %d tool(s) checked out.", who, verb, len(tools)), map[string]any{
		"count": len(tools),
		"tools": entries,
	})
}

// findTool matches a spoken tool reference against inventory by asset
// tag first, then by name similarity.
func (s *Service) findTool(ctx context.Context, ref string) (uuid.UUID, string, *ActionResult) {
	if t, err := s.deps.Tools.GetByAssetTag(ctx, ref); err == nil {
		return t.ID, fmt.Sprintf("%s (%s)", t.Name, t.AssetTag), nil
	}

	tools, err := s.deps.Tools.List(ctx, nil)
	if err != nil {
		return uuid.Nil, "", failure("I couldn't search the tool inventory.", err.Error())
	}

	var bestID uuid.UUID
	var bestLabel string
	bestScore := 0.0
	for _, t := range tools {
		if sc := Score(ref, t.Name); sc > bestScore {
			bestScore = sc
			bestID = t.ID
			bestLabel = fmt.Sprintf("%s (%s)", t.Name, t.AssetTag)
		}
	}
	if bestScore < s.cfg.MatchThreshold {
		return uuid.Nil, "", failure(fmt.Sprintf("I couldn't find a tool matching %q.", ref), "no tool match")
	}
	return bestID, bestLabel, nil
}

// proposeToolAssignment stages the hand-off behind a confirmation since
// it pairs a specific tool with a specific person.
func (s *Service) proposeToolAssignment(ctx context.Context, actx ActionContext, cmd *toolsCommand) *ActionResult {
	toolID, toolLabel, fail := s.findTool(ctx, cmd.toolName)
	if fail != nil {
		return fail
	}

	res, err := s.resolveEmployee(ctx, cmd.name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		return s.propose(ctx, actx, "tools.assign",
			fmt.Sprintf("Assign %s to %s? Please confirm.", toolLabel, res.Match.Name),
			map[string]any{
				"tool_id":       toolID.String(),
				"tool_label":    toolLabel,
				"employee_id":   res.Match.ID.String(),
				"employee_name": res.Match.Name,
			})
	case ResolutionAmbiguous:
		return ambiguous(cmd.name, res.Suggestions)
	default:
		return notFound(cmd.name)
	}
}

type assignToolPayload struct {
	ToolID       uuid.UUID `json:"tool_id"`
	ToolLabel    string    `json:"tool_label"`
	EmployeeID   uuid.UUID `json:"employee_id"`
	EmployeeName string    `json:"employee_name"`
}

func (s *Service) execAssignTool(ctx context.Context, payload []byte) ActionResult {
	var p assignToolPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return *failure("That assignment payload is unreadable.", err.Error())
	}

	tool, err := s.deps.ToolingSvc.Assign(ctx, p.ToolID, p.EmployeeID)
	if err != nil {
		return *failure(fmt.Sprintf("I couldn't assign %s.", p.ToolLabel), err.Error())
	}
	return *success(fmt.Sprintf("%s is now assigned to %s.", p.ToolLabel, fallbackName(p.EmployeeName)), map[string]any{
		"tool_id":     tool.ID.String(),
		"employee_id": p.EmployeeID.String(),
	})
}

func (s *Service) reportToolLost(ctx context.Context, ref string) *ActionResult {
	toolID, toolLabel, fail := s.findTool(ctx, ref)
	if fail != nil {
		return fail
	}

	tool, err := s.deps.ToolingSvc.ReportLost(ctx, toolID)
	if err != nil {
		return failure(fmt.Sprintf("I couldn't mark %s lost.", toolLabel), err.Error())
	}
	return success(fmt.Sprintf("%s has been marked lost.", toolLabel), map[string]any{
		"tool_id": tool.ID.String(),
		"status":  tool.Status.String(),
	})
}
