package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"

	"github.com/maplorix/jobboard-service/internal/auth"
	"github.com/maplorix/jobboard-service/internal/config"
	"github.com/maplorix/jobboard-service/internal/domain"
	"github.com/maplorix/jobboard-service/internal/observability"
	"github.com/maplorix/jobboard-service/internal/persistence"
	"github.com/maplorix/jobboard-service/internal/repository"
)

// cliEnv bundles the shared setup every command needs.
type cliEnv struct {
	cfg   *config.Config
	pg    *persistence.Postgres
	users repository.UserRepository
	jobs  repository.JobRepository
}

func setup(ctx context.Context) (*cliEnv, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		return nil, nil, err
	}
	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return nil, nil, err
	}
	if pg.PoolHandle() == nil {
		pg.Close()
		return nil, nil, errors.New("POSTGRES_DSN is required")
	}
	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			pg.Close()
			return nil, nil, err
		}
	}
	env := &cliEnv{
		cfg:   cfg,
		pg:    pg,
		users: repository.NewUserRepository(pg.PoolHandle()),
		jobs:  repository.NewJobRepository(pg.PoolHandle()),
	}
	cleanup := func() {
		pg.Close()
		_ = logger.Sync()
	}
	return env, cleanup, nil
}

func newCreateAdminCmd() *cobra.Command {
	var email, password, firstName, lastName string

	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an admin account, or promote and re-key an existing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			hash, err := auth.HashPassword(password, env.cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}

			existing, err := env.users.GetByEmail(ctx, email)
			if err == nil {
				existing.PasswordHash = hash
				existing.Role = domain.RoleAdmin
				existing.IsActive = true
				if err := env.users.Update(ctx, existing); err != nil {
					return err
				}
				fmt.Printf("updated existing user %s to admin\n", email)
				return nil
			}
			if err != pgx.ErrNoRows {
				return err
			}

			user := &domain.User{
				FirstName:    firstName,
				LastName:     lastName,
				Email:        email,
				PasswordHash: hash,
				Role:         domain.RoleAdmin,
				Department:   "Management",
				IsActive:     true,
			}
			if err := env.users.Create(ctx, user); err != nil {
				return err
			}
			fmt.Printf("created admin %s (%s)\n", email, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&firstName, "first-name", "Admin", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "User", "last name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newResetPasswordCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "reset-password",
		Short: "Set a new password for an existing account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			user, err := env.users.GetByEmail(ctx, email)
			if err != nil {
				if err == pgx.ErrNoRows {
					return fmt.Errorf("no user with email %s", email)
				}
				return err
			}

			hash, err := auth.HashPassword(password, env.cfg.Auth.BcryptCost)
			if err != nil {
				return err
			}
			user.PasswordHash = hash
			if err := env.users.Update(ctx, user); err != nil {
				return err
			}
			fmt.Printf("password updated for %s\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email address")
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedCmd() *cobra.Command {
	var ownerEmail string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert sample job postings owned by an existing user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			env, cleanup, err := setup(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			owner, err := env.users.GetByEmail(ctx, ownerEmail)
			if err != nil {
				if err == pgx.ErrNoRows {
					return fmt.Errorf("no user with email %s; run create-admin first", ownerEmail)
				}
				return err
			}

			for _, job := range sampleJobs(owner.ID) {
				job := job
				if err := env.jobs.Create(ctx, &job); err != nil {
					return err
				}
				fmt.Printf("seeded job %q (%s)\n", job.Title, job.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ownerEmail, "owner-email", "", "email of the user to own the seeded postings")
	_ = cmd.MarkFlagRequired("owner-email")
	return cmd
}

func sampleJobs(ownerID string) []domain.Job {
	deadline := time.Now().AddDate(0, 0, domain.DefaultDeadlineDays)
	min1, max1 := int64(900000), int64(1500000)
	min2, max2 := int64(600000), int64(1000000)
	return []domain.Job{
		{
			Title:               "Senior Backend Engineer",
			Company:             "Maplorix",
			Location:            "Bengaluru",
			Type:                domain.JobTypeFullTime,
			Category:            domain.CategoryTechnology,
			Experience:          domain.ExperienceSenior,
			Description:         "Design and operate the services behind our hiring platform.",
			Requirements:        "Go, PostgreSQL, Redis, production operations experience.",
			Salary:              domain.SalaryRange{Min: &min1, Max: &max1, Currency: "INR"},
			IsActive:            true,
			Featured:            true,
			PostedBy:            ownerID,
			ApplicationDeadline: deadline,
			Tags:                []string{"go", "postgresql", "redis"},
		},
		{
			Title:               "HR Operations Specialist",
			Company:             "Maplorix",
			Location:            "Remote",
			Type:                domain.JobTypeRemote,
			Category:            domain.CategoryHumanResources,
			Experience:          domain.ExperienceMid,
			Description:         "Run candidate pipelines and keep our hiring workflow humming.",
			Requirements:        "3+ years in HR operations or recruiting coordination.",
			Salary:              domain.SalaryRange{Min: &min2, Max: &max2, Currency: "INR"},
			IsActive:            true,
			Featured:            false,
			PostedBy:            ownerID,
			ApplicationDeadline: deadline,
			Tags:                []string{"hr", "recruiting"},
		},
	}
}
