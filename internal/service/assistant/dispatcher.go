package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Exact-match phrases that short-circuit dispatch with an empty result
// list. No domain handler runs for these.
var greetings = map[string]struct{}{
	"hi":             {},
	"hello":          {},
	"hey":            {},
	"yo":             {},
	"good morning":   {},
	"good afternoon": {},
	"good evening":   {},
	"thanks":         {},
	"thank you":      {},
}

// Dispatch scans one message against every domain route in fixed order
// and returns the accumulated results. Domains are independent: a
// failure or confirmation request in one never blocks another. Nothing
// escapes as a panic or error.
func (s *Service) Dispatch(ctx context.Context, actx ActionContext) []ActionResult {
	msg := strings.ToLower(strings.TrimSpace(actx.Message))
	msg = strings.Trim(msg, "!.?")

	if _, ok := greetings[msg]; ok {
		return []ActionResult{}
	}

	if !actx.Actor.IsValid() {
		return []ActionResult{{
			Success: false,
			Message: "I can't process that request.",
			Error:   "actor context is malformed: missing id or role",
		}}
	}

	results := make([]ActionResult, 0, 2)
	for _, rt := range s.routes() {
		if !rt.trigger(msg) {
			continue
		}
		if !rt.permitted(actx.Actor) {
			s.log.DebugContext(ctx, "route skipped, permission denied",
				slog.String("route", rt.name),
				slog.String("actor_id", actx.Actor.ID.String()),
				slog.String("role", actx.Actor.Role.String()),
			)
			continue
		}
		if res := s.runRoute(ctx, rt, actx, msg); res != nil {
			results = append(results, *res)
		}
	}
	return results
}

// runRoute executes one route, converting panics into failure results so
// a broken handler cannot take down the rest of the scan.
func (s *Service) runRoute(ctx context.Context, rt route, actx ActionContext, msg string) (res *ActionResult) {
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "route panic",
				slog.String("route", rt.name),
				slog.Any("panic", r),
			)
			res = failure("Something went wrong handling that request.", fmt.Sprintf("%s: %v", rt.name, r))
		}
	}()
	return rt.handle(ctx, actx, msg)
}
