package domain

import (
	"time"

	"github.com/google/uuid"
)

// Contract is an agreement issued to an employee or a candidate.
// Exactly one of EmployeeID / CandidateID is set.
type Contract struct {
	ID          uuid.UUID
	EmployeeID  *uuid.UUID
	CandidateID *uuid.UUID
	Type        ContractType
	Status      ContractStatus
	SentAt      *time.Time
	SignedAt    *time.Time
	VoidedAt    *time.Time
	CreatedAt   time.Time
}

// CanSign reports whether the contract is in a signable state.
func (c *Contract) CanSign() bool {
	return c.Status == ContractSent
}

// CanVoid reports whether the contract can still be voided.
func (c *Contract) CanVoid() bool {
	return c.Status == ContractDraft || c.Status == ContractSent
}
