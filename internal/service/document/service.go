// Package document manages employee document metadata.
package document

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/pkg/ctxutil"
)

type documentRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Document, error)
	Create(ctx context.Context, d *domain.Document) (*domain.Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service provides document metadata operations.
type Service struct {
	documents documentRepo
	log       *slog.Logger
}

// NewService creates a new Document service.
func NewService(log *slog.Logger, documents documentRepo) *Service {
	return &Service{
		documents: documents,
		log:       log.With("service", "document"),
	}
}

// AddInput holds the parameters for attaching a document.
type AddInput struct {
	EmployeeID  uuid.UUID
	Type        domain.DocumentType
	Title       string
	StoragePath string
}

// Validate checks all fields and collects all errors.
func (i AddInput) Validate() error {
	var errs []domain.FieldError

	if i.EmployeeID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "employee_id", Message: "required"})
	}
	if !i.Type.IsValid() {
		errs = append(errs, domain.FieldError{Field: "type", Message: "unknown type"})
	}
	if strings.TrimSpace(i.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if strings.TrimSpace(i.StoragePath) == "" {
		errs = append(errs, domain.FieldError{Field: "storage_path", Message: "required"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// Add records document metadata for an employee.
func (s *Service) Add(ctx context.Context, input AddInput) (*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:          uuid.New(),
		EmployeeID:  input.EmployeeID,
		Type:        input.Type,
		Title:       strings.TrimSpace(input.Title),
		StoragePath: strings.TrimSpace(input.StoragePath),
		UploadedBy:  actor.ID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.documents.Create(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("add document: %w", err)
	}

	s.log.InfoContext(ctx, "document added",
		slog.String("document_id", created.ID.String()),
		slog.String("employee_id", input.EmployeeID.String()),
	)

	return created, nil
}

// Get returns a document record. Actors may read their own documents.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	doc, err := s.documents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get document: %w", err)
	}
	if doc.EmployeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}
	return doc, nil
}

// ListForEmployee returns all documents attached to an employee.
func (s *Service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]*domain.Document, error) {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if employeeID != actor.ID && !actor.CanManageTeam() {
		return nil, domain.ErrForbidden
	}

	docs, err := s.documents.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, ok := ctxutil.ActorFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}
	if !actor.CanManageEmployees() {
		return domain.ErrForbidden
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	s.log.InfoContext(ctx, "document deleted", slog.String("document_id", id.String()))
	return nil
}
