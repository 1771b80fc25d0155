package assistant

import (
	"context"
	"fmt"
	"regexp"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/recruiting"
)

var (
	advanceRe       = regexp.MustCompile(`(?:move|advance|promote)\s+(?:candidate\s+)?([a-z][a-z .,'-]*?)\s+to\s+(?:the\s+)?([a-z]+)`)
	rejectRe        = regexp.MustCompile(`reject\s+(?:candidate\s+)?([a-z][a-z .,'-]*)`)
	candidateNoteRe = regexp.MustCompile(`(?:add\s+(?:a\s+)?note|note)\s+(?:on|for|about)\s+(?:candidate\s+)?([a-z][a-z .,'-]*?)\s*:\s*(.+)`)
	listCandsRe     = regexp.MustCompile(`(?:list|show)\s+(?:all\s+)?(?:candidates|applicants)|who is in the pipeline`)
)

type recruitingCommand struct {
	op    string // advance | reject | note | list
	name  string
	stage domain.PipelineStage
	note  string
}

func parseRecruitingCommand(msg string) *recruitingCommand {
	if m := candidateNoteRe.FindStringSubmatch(msg); m != nil {
		return &recruitingCommand{op: "note", name: cleanName(m[1]), note: m[2]}
	}
	if m := advanceRe.FindStringSubmatch(msg); m != nil {
		if stage := parseStage(m[2]); stage != nil {
			return &recruitingCommand{op: "advance", name: cleanName(m[1]), stage: *stage}
		}
	}
	if m := rejectRe.FindStringSubmatch(msg); m != nil {
		return &recruitingCommand{op: "reject", name: cleanName(m[1])}
	}
	if listCandsRe.MatchString(msg) {
		return &recruitingCommand{op: "list"}
	}
	return nil
}

func (s *Service) handleRecruiting(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseRecruitingCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "list":
		return s.listCandidates(ctx, msg)
	case "advance":
		return s.advanceCandidate(ctx, cmd.name, cmd.stage)
	case "reject":
		return s.advanceCandidate(ctx, cmd.name, domain.StageRejected)
	case "note":
		return s.noteCandidate(ctx, cmd)
	}
	return nil
}

func (s *Service) listCandidates(ctx context.Context, msg string) *ActionResult {
	stage := parseStage(msg)
	cands, err := s.deps.Candidates.List(ctx, stage)
	if err != nil {
		return failure("I couldn't list candidates right now.", err.Error())
	}

	entries := make([]map[string]any, 0, len(cands))
	for _, c := range cands {
		entries = append(entries, map[string]any{
			"id":       c.ID.String(),
			"name":     c.FullName(),
			"position": c.Position,
			"stage":    c.Stage.String(),
		})
	}

	scope := "candidates"
	if stage != nil {
		scope = fmt.Sprintf("candidates in %s", *stage)
	}
	return success(fmt.Sprintf("There are %d %s.", len(cands), scope), map[string]any{
		"count":      len(cands),
		"candidates": entries,
	})
}

// advanceCandidate resolves the name against the pipeline and applies a
// stage change. When nothing matches, the candidates already in the
// requested stage are surfaced as a hint instead of a bare error.
func (s *Service) advanceCandidate(ctx context.Context, name string, stage domain.PipelineStage) *ActionResult {
	if name == "" {
		return clarify("Which candidate do you mean?")
	}

	res, all, err := s.resolveCandidate(ctx, name, nil)
	if err != nil {
		return failure("I couldn't search candidates right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		cand, err := s.deps.RecruitingSvc.AdvanceStage(ctx, recruiting.AdvanceStageInput{
			CandidateID: res.Match.ID,
			Stage:       stage,
		})
		if err != nil {
			return failure(fmt.Sprintf("I couldn't move %s to %s.", res.Match.Name, stage), err.Error())
		}
		return success(fmt.Sprintf("%s is now in %s.", cand.FullName(), cand.Stage), map[string]any{
			"candidate_id": cand.ID.String(),
			"stage":        cand.Stage.String(),
		})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		inStage := make([]string, 0)
		for _, c := range all {
			if c.Stage == stage {
				inStage = append(inStage, c.FullName())
			}
		}
		result := notFound(name)
		if len(inStage) > 0 {
			result.Data = map[string]any{"candidates_in_stage": inStage}
		}
		return result
	}
}

func (s *Service) noteCandidate(ctx context.Context, cmd *recruitingCommand) *ActionResult {
	res, _, err := s.resolveCandidate(ctx, cmd.name, nil)
	if err != nil {
		return failure("I couldn't search candidates right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		note, err := s.deps.RecruitingSvc.AddNote(ctx, recruiting.AddNoteInput{
			CandidateID: res.Match.ID,
			Text:        cmd.note,
		})
		if err != nil {
			return failure(fmt.Sprintf("I couldn't add a note for %s.", res.Match.Name), err.Error())
		}
		return success(fmt.Sprintf("Note added for %s.", res.Match.Name), map[string]any{
			"note_id":      note.ID.String(),
			"candidate_id": note.CandidateID.String(),
		})
	case ResolutionAmbiguous:
		return ambiguous(cmd.name, res.Suggestions)
	default:
		return notFound(cmd.name)
	}
}
