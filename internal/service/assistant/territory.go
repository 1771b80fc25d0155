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
	assignTerritoryRe = regexp.MustCompile(`(?:assign|give)\s+(?:the\s+)?([a-z0-9 .,'-]+?)\s+territory\s+to\s+([a-z][a-z .,'-]*)`)
	listTerritoriesRe = regexp.MustCompile(`(?:list|show)\s+(?:all\s+)?territories|territory\s+coverage`)
	uncoveredRe       = regexp.MustCompile(`(?:uncovered|unassigned|open)\s+territor`)
)

type territoryCommand struct {
	op            string // assign | list | uncovered
	territoryName string
	repName       string
}

func parseTerritoryCommand(msg string) *territoryCommand {
	if m := assignTerritoryRe.FindStringSubmatch(msg); m != nil {
		return &territoryCommand{
			op:            "assign",
			territoryName: strings.TrimSpace(m[1]),
			repName:       cleanName(m[2]),
		}
	}
	if uncoveredRe.MatchString(msg) {
		return &territoryCommand{op: "uncovered"}
	}
	if listTerritoriesRe.MatchString(msg) {
		return &territoryCommand{op: "list"}
	}
	return nil
}

func (s *Service) handleTerritory(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseTerritoryCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "list":
		return s.listTerritories(ctx, false)
	case "uncovered":
		return s.listTerritories(ctx, true)
	case "assign":
		return s.proposeTerritoryAssignment(ctx, actx, cmd)
	}
	return nil
}

func (s *Service) listTerritories(ctx context.Context, uncoveredOnly bool) *ActionResult {
	terrs, err := s.deps.Territories.List(ctx)
	if err != nil {
		return failure("I couldn't list territories right now.", err.Error())
	}

	entries := make([]map[string]any, 0, len(terrs))
	for _, t := range terrs {
		if uncoveredOnly && t.IsCovered() {
			continue
		}
		entry := map[string]any{
			"id":     t.ID.String(),
			"name":   t.Name,
			"region": t.Region,
		}
		if t.RepID != nil {
			entry["rep_id"] = t.RepID.String()
		}
		entries = append(entries, entry)
	}

	scope := "territories"
	if uncoveredOnly {
		scope = "uncovered territories"
	}
	return success(fmt.Sprintf("There are %d %s.", len(entries), scope), map[string]any{
		"count":       len(entries),
		"territories": entries,
	})
}

func (s *Service) proposeTerritoryAssignment(ctx context.Context, actx ActionContext, cmd *territoryCommand) *ActionResult {
	terr, err := s.deps.Territories.GetByName(ctx, cmd.territoryName)
	if err != nil {
		return failure(fmt.Sprintf("I couldn't find a territory named %q.", cmd.territoryName), err.Error())
	}

	res, err := s.resolveEmployee(ctx, cmd.repName)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		return s.propose(ctx, actx, "territory.assign",
			fmt.Sprintf("Assign the %s territory to %s? Please confirm.", terr.Name, res.Match.Name),
			map[string]any{
				"territory_id":   terr.ID.String(),
				"territory_name": terr.Name,
				"rep_id":         res.Match.ID.String(),
				"rep_name":       res.Match.Name,
			})
	case ResolutionAmbiguous:
		return ambiguous(cmd.repName, res.Suggestions)
	default:
		return notFound(cmd.repName)
	}
}

type assignTerritoryPayload struct {
	TerritoryID   uuid.UUID `json:"territory_id"`
	TerritoryName string    `json:"territory_name"`
	RepID         uuid.UUID `json:"rep_id"`
	RepName       string    `json:"rep_name"`
}

func (s *Service) execAssignTerritory(ctx context.Context, payload []byte) ActionResult {
	var p assignTerritoryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return *failure("That territory payload is unreadable.", err.Error())
	}

	terr, err := s.deps.TerritorySvc.AssignRep(ctx, p.TerritoryID, &p.RepID)
	if err != nil {
		return *failure(fmt.Sprintf("I couldn't assign the %s territory.", p.TerritoryName), err.Error())
	}
	return *success(fmt.Sprintf("The %s territory is now covered by %s.", terr.Name, fallbackName(p.RepName)), map[string]any{
		"territory_id": terr.ID.String(),
		"rep_id":       p.RepID.String(),
	})
}
