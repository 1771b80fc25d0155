package assistant

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

var (
	listDocsRe = regexp.MustCompile(`(?:documents?|paperwork)\s+(?:for|of)\s+([a-z][a-z .,'-]*)|what\s+(?:documents?|paperwork)\s+does\s+([a-z][a-z .,'-]*?)\s+have`)
	myDocsRe   = regexp.MustCompile(`my\s+(?:documents?|paperwork)`)
)

type documentCommand struct {
	op   string // list | mine
	name string
}

func parseDocumentCommand(msg string) *documentCommand {
	if myDocsRe.MatchString(msg) {
		return &documentCommand{op: "mine"}
	}
	if m := listDocsRe.FindStringSubmatch(msg); m != nil {
		name := m[1]
		if name == "" {
			name = m[2]
		}
		return &documentCommand{op: "list", name: cleanName(name)}
	}
	return nil
}

func (s *Service) handleDocument(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseDocumentCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "mine":
		return s.listDocuments(ctx, actx.Actor.ID, actx.Actor.FullName())
	case "list":
		if !actx.Actor.CanManageTeam() {
			return nil
		}
		if cmd.name == "" {
			return clarify("Whose documents should I look up?")
		}
		res, err := s.resolveEmployee(ctx, cmd.name)
		if err != nil {
			return failure("I couldn't search employees right now.", err.Error())
		}
		switch res.Kind {
		case ResolutionAuto:
			return s.listDocuments(ctx, res.Match.ID, res.Match.Name)
		case ResolutionAmbiguous:
			return ambiguous(cmd.name, res.Suggestions)
		default:
			return notFound(cmd.name)
		}
	}
	return nil
}

func (s *Service) listDocuments(ctx context.Context, employeeID uuid.UUID, name string) *ActionResult {
	docs, err := s.deps.DocumentSvc.ListForEmployee(ctx, employeeID)
	if err != nil {
		return failure(fmt.Sprintf("I couldn't list documents for %s.", name), err.Error())
	}

	entries := make([]map[string]any, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, map[string]any{
			"id":    d.ID.String(),
			"type":  d.Type.String(),
			"title": d.Title,
		})
	}
	return success(fmt.Sprintf("%s has %d document(s) on file.", name, len(docs)), map[string]any{
		"count":     len(docs),
		"documents": entries,
	})
}
