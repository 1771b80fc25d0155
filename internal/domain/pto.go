package domain

import (
	"time"

	"github.com/google/uuid"
)

// PTORequest is a request for paid (or unpaid) time off.
type PTORequest struct {
	ID         uuid.UUID
	EmployeeID uuid.UUID
	Type       PTOType
	StartDate  time.Time
	EndDate    time.Time
	Days       float64
	Status     PTOStatus
	Reason     *string
	DecidedBy  *uuid.UUID
	DecidedAt  *time.Time
	CreatedAt  time.Time
}

// IsDecided reports whether the request has been approved or denied.
func (p *PTORequest) IsDecided() bool {
	return p.Status == PTOApproved || p.Status == PTODenied
}

// BusinessDays counts weekdays in [start, end] inclusive.
// Used to compute the Days field when a request is created.
func BusinessDays(start, end time.Time) float64 {
	if end.Before(start) {
		return 0
	}
	days := 0.0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}
