package assistant

import (
	"fmt"
	"strings"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// Shared result shaping for the domain handlers.

func suggestionData(matches []FuzzyMatch) []map[string]any {
	out := make([]map[string]any, 0, len(matches))
	for _, m := range matches {
		out = append(out, map[string]any{
			"id":         m.ID.String(),
			"name":       m.Name,
			"score":      m.Score,
			"match_type": string(m.MatchType),
		})
	}
	return out
}

// ambiguous phrases a disambiguation set as a question the actor can
// answer in their next message.
func ambiguous(who string, matches []FuzzyMatch) *ActionResult {
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, m.Name)
	}
	return &ActionResult{
		Success:              false,
		Message:              fmt.Sprintf("I found several people matching %q: %s. Who did you mean?", who, strings.Join(names, ", ")),
		RequiresConfirmation: true,
		ConfirmationData: map[string]any{
			"suggestions": suggestionData(matches),
		},
	}
}

func notFound(what string) *ActionResult {
	return failure(fmt.Sprintf("I couldn't find anyone matching %q.", what), "no match above threshold")
}

// cleanName trims a captured name fragment: trailing punctuation, filler
// words and anything after a clause boundary.
func cleanName(raw string) string {
	name := strings.TrimSpace(raw)
	for _, cut := range []string{" effective ", " starting ", " on ", " for ", " from ", " about ", " and ", " please"} {
		if i := strings.Index(name, cut); i >= 0 {
			name = name[:i]
		}
	}
	return strings.Trim(name, " .,!?")
}

// parseDepartment finds a department mention in a message.
func parseDepartment(msg string) *domain.Department {
	for _, d := range []domain.Department{
		domain.DepartmentSales,
		domain.DepartmentProduction,
		domain.DepartmentOffice,
		domain.DepartmentRecruiting,
		domain.DepartmentHR,
	} {
		if containsWord(msg, strings.ToLower(string(d))) {
			dept := d
			return &dept
		}
	}
	return nil
}

// parseStage finds a pipeline stage mention in a message.
func parseStage(msg string) *domain.PipelineStage {
	for _, st := range []domain.PipelineStage{
		domain.StageScreening,
		domain.StageInterview,
		domain.StageApplied,
		domain.StageOffer,
		domain.StageHired,
		domain.StageRejected,
	} {
		if containsWord(msg, strings.ToLower(string(st))) {
			stage := st
			return &stage
		}
	}
	return nil
}
