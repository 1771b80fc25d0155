// Package employee implements the employee repository using PostgreSQL.
package employee

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
)

const table = "employees"

var columns = []string{
	"id", "first_name", "last_name", "email", "phone",
	"role", "department", "status", "manager_id",
	"hire_date", "termination_date", "pto_balance_days",
	"created_at", "updated_at",
}

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides employee persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new employee repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an employee by primary key.
// Returns domain.ErrNotFound if no such employee exists.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Employee, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", id)
	}
	return e, nil
}

// GetByEmail returns an employee by email address.
func (r *Repo) GetByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	query, args, err := qb.Select(columns...).From(table).Where(sq.Eq{"email": email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	e, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", uuid.Nil)
	}
	return e, nil
}

// List returns employees matching the filter, ordered by last name.
func (r *Repo) List(ctx context.Context, f domain.EmployeeFilter) ([]*domain.Employee, error) {
	b := qb.Select(columns...).From(table).OrderBy("last_name ASC", "first_name ASC")
	if f.Department != nil {
		b = b.Where(sq.Eq{"department": *f.Department})
	}
	if f.Status != nil {
		b = b.Where(sq.Eq{"status": *f.Status})
	}
	if f.ManagerID != nil {
		b = b.Where(sq.Eq{"manager_id": *f.ManagerID})
	}
	if f.Role != nil {
		b = b.Where(sq.Eq{"role": *f.Role})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	return collectEmployees(rows)
}

// GetAccountByEmail returns login credentials for an employee.
func (r *Repo) GetAccountByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query, args, err := qb.
		Select("employee_id", "email", "password_hash", "created_at", "updated_at").
		From("accounts").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var a domain.Account
	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	if err := row.Scan(&a.EmployeeID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "account", uuid.Nil)
	}
	return &a, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new employee and returns the persisted record.
func (r *Repo) Create(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query, args, err := qb.Insert(table).
		Columns(columns...).
		Values(e.ID, e.FirstName, e.LastName, e.Email, e.Phone,
			e.Role, e.Department, e.Status, e.ManagerID,
			e.HireDate, e.TerminationDate, e.PTOBalanceDays,
			e.CreatedAt, e.UpdatedAt).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	created, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", e.ID)
	}
	return created, nil
}

// Update rewrites the mutable fields of an employee record.
func (r *Repo) Update(ctx context.Context, e *domain.Employee) (*domain.Employee, error) {
	query, args, err := qb.Update(table).
		Set("first_name", e.FirstName).
		Set("last_name", e.LastName).
		Set("email", e.Email).
		Set("phone", e.Phone).
		Set("role", e.Role).
		Set("department", e.Department).
		Set("status", e.Status).
		Set("manager_id", e.ManagerID).
		Set("pto_balance_days", e.PTOBalanceDays).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": e.ID}).
		Suffix("RETURNING " + columnList()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	row := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...)
	updated, err := scanEmployee(row)
	if err != nil {
		return nil, postgres.MapError(err, "employee", e.ID)
	}
	return updated, nil
}

// Terminate marks an employee terminated as of the given date.
func (r *Repo) Terminate(ctx context.Context, id uuid.UUID, when time.Time) error {
	query, args, err := qb.Update(table).
		Set("status", domain.EmploymentTerminated).
		Set("termination_date", when).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "employee", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// AdjustPTOBalance adds delta (may be negative) to the stored balance.
func (r *Repo) AdjustPTOBalance(ctx context.Context, id uuid.UUID, delta float64) error {
	query, args, err := qb.Update(table).
		Set("pto_balance_days", sq.Expr("pto_balance_days + ?", delta)).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "employee", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("employee %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// UpsertAccount creates or replaces the login credentials for an employee.
func (r *Repo) UpsertAccount(ctx context.Context, a *domain.Account) error {
	query, args, err := qb.Insert("accounts").
		Columns("employee_id", "email", "password_hash", "created_at", "updated_at").
		Values(a.EmployeeID, a.Email, a.PasswordHash, a.CreatedAt, a.UpdatedAt).
		Suffix("ON CONFLICT (employee_id) DO UPDATE SET " +
			"email = EXCLUDED.email, password_hash = EXCLUDED.password_hash, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "account", a.EmployeeID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Scanning
// ---------------------------------------------------------------------------

func columnList() string {
	list := columns[0]
	for _, c := range columns[1:] {
		list += ", " + c
	}
	return list
}

func scanEmployee(row pgx.Row) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID, &e.FirstName, &e.LastName, &e.Email, &e.Phone,
		&e.Role, &e.Department, &e.Status, &e.ManagerID,
		&e.HireDate, &e.TerminationDate, &e.PTOBalanceDays,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func collectEmployees(rows pgx.Rows) ([]*domain.Employee, error) {
	var out []*domain.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate employees: %w", err)
	}
	return out, nil
}
