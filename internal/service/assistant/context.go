package assistant

import (
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

// ActionContext is everything the dispatcher knows about one inbound
// message: who is asking and what they wrote. Built per message, never
// persisted.
type ActionContext struct {
	Actor   domain.Actor
	Message string
}
