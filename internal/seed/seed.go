package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/demirhan/taportal/internal/app/models"
	"github.com/demirhan/taportal/internal/app/repositories"
	"github.com/demirhan/taportal/internal/pkg/apperrors"
	"github.com/demirhan/taportal/internal/pkg/auth"
	"github.com/demirhan/taportal/internal/pkg/logger"
)

// CreateDefaultData seeds the reference data a fresh deployment needs:
// departments, the administrator account, and a welcome notice. Reruns are
// no-ops.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, adminPassword string) error {
	repos := repositories.NewRepositories(dbPool)

	var finalErr error

	departments := []struct {
		name string
		code string
	}{
		{"Computer Science", "CS"},
		{"Mathematics", "MATH"},
		{"Physics", "PHYS"},
		{"Electrical Engineering", "EE"},
	}
	for _, d := range departments {
		_, err := dbPool.Exec(ctx, `
			INSERT INTO departments (name, code)
			VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING
		`, d.name, d.code)
		if err != nil {
			logger.Error().Err(err).Str("code", d.code).Msg("Error seeding department")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := seedAdmin(ctx, repos, adminPassword); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if err := seedWelcomeNotice(ctx, dbPool); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func seedAdmin(ctx context.Context, repos *repositories.Repositories, password string) error {
	const adminUsername = "admin"

	exists, err := repos.UserRepository.UsernameExists(ctx, adminUsername)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		Username: adminUsername,
		Password: hashed,
		Email:    "admin@taportal.local",
		RoleType: models.RoleAdmin,
		IsActive: true,
	}
	if err := repos.UserRepository.Create(ctx, admin); err != nil {
		if apperrors.Is(err, apperrors.ErrStudentNoExists, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}

	logger.Info().Str("username", adminUsername).Msg("Administrator account created")
	return nil
}

func seedWelcomeNotice(ctx context.Context, dbPool *pgxpool.Pool) error {
	var count int
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM notices`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	_, err := dbPool.Exec(ctx, `
		INSERT INTO notices (title, content, publish_time, publisher)
		VALUES ($1, $2, $3, $4)
	`,
		"Portal open for the new academic year",
		"Assistantship postings for the new academic year are now published. Check the positions page for openings and deadlines.",
		time.Now(),
		"Graduate School Office",
	)
	return err
}
