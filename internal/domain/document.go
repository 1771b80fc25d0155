package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a file record attached to an employee. The binary itself
// lives in external storage; only the metadata is tracked here.
type Document struct {
	ID          uuid.UUID
	EmployeeID  uuid.UUID
	Type        DocumentType
	Title       string
	StoragePath string
	UploadedBy  uuid.UUID
	CreatedAt   time.Time
}
