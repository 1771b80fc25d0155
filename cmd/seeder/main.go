// Command seeder bootstraps a fresh installation with a first admin
// account and, optionally, a demo roster for evaluation environments.
// It is intended to be run once against an empty database, not as part
// of the main server.
//
// Flags:
//
//	--admin-email     email for the initial admin login (required)
//	--admin-password  password for the initial admin login (required)
//	--demo            additionally create a small demo roster
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres"
	employeerepo "github.com/Roof-ER21/roof-hr-sub000/internal/adapter/postgres/employee"
	"github.com/Roof-ER21/roof-hr-sub000/internal/app"
	"github.com/Roof-ER21/roof-hr-sub000/internal/config"
	"github.com/Roof-ER21/roof-hr-sub000/internal/domain"
	"github.com/Roof-ER21/roof-hr-sub000/migrations"
)

func main() {
	adminEmail := flag.String("admin-email", "", "email for the initial admin login")
	adminPassword := flag.String("admin-password", "", "password for the initial admin login")
	demo := flag.Bool("demo", false, "additionally create a small demo roster")
	flag.Parse()

	if *adminEmail == "" || *adminPassword == "" {
		log.Fatal("--admin-email and --admin-password are required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, cfg.Database, migrations.FS); err != nil {
		logger.Error("apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo := employeerepo.New(pool)

	adminID, err := seedEmployee(ctx, repo, "System", "Admin", *adminEmail,
		domain.RoleAdmin, domain.DepartmentHR, nil)
	if err != nil {
		logger.Error("seed admin", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := seedAccount(ctx, repo, adminID, *adminEmail, *adminPassword); err != nil {
		logger.Error("seed admin account", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("admin account ready", slog.String("email", *adminEmail))

	if *demo {
		if err := seedDemoRoster(ctx, repo, adminID); err != nil {
			logger.Error("seed demo roster", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("demo roster created")
	}
}

func seedEmployee(ctx context.Context, repo *employeerepo.Repo,
	first, last, email string, role domain.Role, dept domain.Department,
	managerID *uuid.UUID,
) (uuid.UUID, error) {
	if existing, err := repo.GetByEmail(ctx, email); err == nil {
		return existing.ID, nil
	}

	now := time.Now().UTC()
	created, err := repo.Create(ctx, &domain.Employee{
		ID:             uuid.New(),
		FirstName:      first,
		LastName:       last,
		Email:          email,
		Role:           role,
		Department:     dept,
		Status:         domain.EmploymentActive,
		ManagerID:      managerID,
		HireDate:       now,
		PTOBalanceDays: 15,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return uuid.Nil, err
	}
	return created.ID, nil
}

func seedAccount(ctx context.Context, repo *employeerepo.Repo, employeeID uuid.UUID, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	return repo.UpsertAccount(ctx, &domain.Account{
		EmployeeID:   employeeID,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedDemoRoster(ctx context.Context, repo *employeerepo.Repo, adminID uuid.UUID) error {
	managerID, err := seedEmployee(ctx, repo, "Dana", "Ops", "dana@roofer.example",
		domain.RoleManager, domain.DepartmentSales, &adminID)
	if err != nil {
		return err
	}

	roster := []struct {
		first, last, email string
		role               domain.Role
		dept               domain.Department
	}{
		{"John", "Smith", "john.smith@roofer.example", domain.RoleAgent, domain.DepartmentSales},
		{"Sarah", "Chen", "sarah.chen@roofer.example", domain.RoleAgent, domain.DepartmentSales},
		{"David", "Chen", "david.chen@roofer.example", domain.RoleAgent, domain.DepartmentSales},
		{"Maria", "Lopez", "maria.lopez@roofer.example", domain.RoleRecruiter, domain.DepartmentRecruiting},
	}
	for _, r := range roster {
		if _, err := seedEmployee(ctx, repo, r.first, r.last, r.email, r.role, r.dept, &managerID); err != nil {
			return err
		}
	}
	return nil
}
