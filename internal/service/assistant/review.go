package assistant

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/internal/service/review"
)

var (
	bulkReviewRe     = regexp.MustCompile(`(?:schedule|set up)\s+(?:performance\s+)?reviews\s+for\s+(?:the\s+)?([a-z]+)(?:\s+department|\s+team)?`)
	scheduleReviewRe = regexp.MustCompile(`(?:schedule|set up)\s+(?:a\s+)?(?:performance\s+)?review\s+(?:for|with)\s+([a-z][a-z .,'-]*)`)
	completeReviewRe = regexp.MustCompile(`(?:complete|finish|close)\s+(?:the\s+)?review\s+for\s+([a-z][a-z .,'-]*?)(?:\s+(?:with\s+)?rating\s+(\d))?$`)
	openReviewsRe    = regexp.MustCompile(`my\s+(?:open\s+)?reviews|reviews?\s+(?:am i|do i)\s`)
)

type reviewCommand struct {
	op     string // schedule | bulk | complete | open
	name   string
	dept   *domain.Department
	rating int
}

func parseReviewCommand(msg string) *reviewCommand {
	if m := bulkReviewRe.FindStringSubmatch(msg); m != nil {
		if dept := parseDepartment(m[1]); dept != nil {
			return &reviewCommand{op: "bulk", dept: dept}
		}
	}
	if m := completeReviewRe.FindStringSubmatch(msg); m != nil {
		rating := 0
		if m[2] != "" {
			rating, _ = strconv.Atoi(m[2])
		}
		return &reviewCommand{op: "complete", name: cleanName(m[1]), rating: rating}
	}
	if m := scheduleReviewRe.FindStringSubmatch(msg); m != nil {
		return &reviewCommand{op: "schedule", name: cleanName(m[1])}
	}
	if openReviewsRe.MatchString(msg) {
		return &reviewCommand{op: "open"}
	}
	return nil
}

func (s *Service) handleReview(ctx context.Context, actx ActionContext, msg string) *ActionResult {
	cmd := parseReviewCommand(msg)
	if cmd == nil {
		return nil
	}

	switch cmd.op {
	case "open":
		return s.listOpenReviews(ctx)
	case "schedule":
		return s.scheduleReview(ctx, cmd.name, msg)
	case "bulk":
		return s.proposeBulkReviews(ctx, actx, *cmd.dept, msg)
	case "complete":
		return s.completeReview(ctx, cmd)
	}
	return nil
}

func (s *Service) listOpenReviews(ctx context.Context) *ActionResult {
	reviews, err := s.deps.ReviewSvc.ListOpenForReviewer(ctx)
	if err != nil {
		return failure("I couldn't list your reviews.", err.Error())
	}

	entries := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		entries = append(entries, map[string]any{
			"id":            r.ID.String(),
			"employee_id":   r.EmployeeID.String(),
			"period":        r.Period,
			"scheduled_for": r.ScheduledFor.Format("2006-01-02"),
		})
	}
	return success(fmt.Sprintf("You have %d open review(s).", len(reviews)), map[string]any{
		"count":   len(reviews),
		"reviews": entries,
	})
}

func (s *Service) scheduleReview(ctx context.Context, name, msg string) *ActionResult {
	if name == "" {
		return clarify("Whose review should I schedule?")
	}

	when, ok := parseDate(msg, time.Now().UTC())
	if !ok {
		return clarify("When should the review take place? For example: \"next friday\" or \"Dec 15\".")
	}

	res, err := s.resolveEmployee(ctx, name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		rv, err := s.deps.ReviewSvc.Schedule(ctx, review.ScheduleInput{
			EmployeeID:   res.Match.ID,
			Period:       currentPeriod(when),
			ScheduledFor: when,
		})
		if err != nil {
			return failure(fmt.Sprintf("I couldn't schedule a review for %s.", res.Match.Name), err.Error())
		}
		return success(fmt.Sprintf("Review for %s scheduled on %s.", res.Match.Name, when.Format("Jan 2, 2006")), map[string]any{
			"review_id":     rv.ID.String(),
			"scheduled_for": when.Format("2006-01-02"),
		})
	case ResolutionAmbiguous:
		return ambiguous(name, res.Suggestions)
	default:
		return notFound(name)
	}
}

// proposeBulkReviews stages a department-wide scheduling action behind a
// confirmation, since it touches many records at once.
func (s *Service) proposeBulkReviews(ctx context.Context, actx ActionContext, dept domain.Department, msg string) *ActionResult {
	when, ok := parseDate(msg, time.Now().UTC())
	if !ok {
		return clarify("When should the reviews take place?")
	}

	return s.propose(ctx, actx, "review.bulk_create",
		fmt.Sprintf("Schedule reviews for everyone in %s on %s? Please confirm.", dept, when.Format("Jan 2, 2006")),
		map[string]any{
			"department":    dept.String(),
			"period":        currentPeriod(when),
			"scheduled_for": when.Format(time.RFC3339),
		})
}

type bulkReviewPayload struct {
	Department   domain.Department `json:"department"`
	Period       string            `json:"period"`
	ScheduledFor time.Time         `json:"scheduled_for"`
}

func (s *Service) execBulkReviews(ctx context.Context, payload []byte) ActionResult {
	var p bulkReviewPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return *failure("That review payload is unreadable.", err.Error())
	}

	count, err := s.deps.ReviewSvc.ScheduleForDepartment(ctx, p.Department, p.Period, p.ScheduledFor)
	if err != nil {
		return *failure(fmt.Sprintf("I couldn't schedule reviews for %s.", p.Department), err.Error())
	}
	return *success(fmt.Sprintf("Scheduled %d review(s) for %s on %s.",
		count, p.Department, p.ScheduledFor.Format("Jan 2, 2006")), map[string]any{
		"count":      count,
		"department": p.Department.String(),
	})
}

func (s *Service) completeReview(ctx context.Context, cmd *reviewCommand) *ActionResult {
	if cmd.rating < 1 || cmd.rating > 5 {
		return clarify("What rating (1-5) should I record for that review?")
	}

	res, err := s.resolveEmployee(ctx, cmd.name)
	if err != nil {
		return failure("I couldn't search employees right now.", err.Error())
	}

	switch res.Kind {
	case ResolutionAuto:
		open, err := s.deps.ReviewSvc.ListForEmployee(ctx, res.Match.ID)
		if err != nil {
			return failure("I couldn't load that employee's reviews.", err.Error())
		}
		var scheduled *domain.Review
		for _, r := range open {
			if r.Status == domain.ReviewScheduled {
				scheduled = r
				break
			}
		}
		if scheduled == nil {
			return failure(fmt.Sprintf("%s has no open review to complete.", res.Match.Name), "no scheduled review")
		}

		rv, err := s.deps.ReviewSvc.Complete(ctx, review.CompleteInput{
			ReviewID: scheduled.ID,
			Rating:   cmd.rating,
		})
		if err != nil {
			return failure(fmt.Sprintf("I couldn't complete the review for %s.", res.Match.Name), err.Error())
		}
		return success(fmt.Sprintf("Review for %s completed with rating %d.", res.Match.Name, cmd.rating), map[string]any{
			"review_id": rv.ID.String(),
			"rating":    cmd.rating,
		})
	case ResolutionAmbiguous:
		return ambiguous(cmd.name, res.Suggestions)
	default:
		return notFound(cmd.name)
	}
}

// currentPeriod formats a date's quarter as e.g. "2026-Q3".
func currentPeriod(t time.Time) string {
	q := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%d-Q%d", t.Year(), q)
}
