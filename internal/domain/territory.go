package domain

import (
	"time"

	"github.com/google/uuid"
)

// Territory is a sales territory assignable to one agent at a time.
type Territory struct {
	ID        uuid.UUID
	Name      string
	Region    string
	ZipCodes  []string
	RepID     *uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCovered reports whether the territory has an assigned rep.
func (t *Territory) IsCovered() bool {
	return t.RepID != nil
}
