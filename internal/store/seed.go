package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/oboard-go/internal/auth"
)

// Bootstrap admin credentials. The password is a fixed, documented initial
// value; operators are expected to change it after first login.
const (
	DefaultAdminUsername = "admin"
	DefaultAdminEmail    = "admin@example.com"
	DefaultAdminPassword = "admin123"
)

// Seed creates the bootstrap admin account if it does not exist yet.
// Safe to call on every startup.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)

	_, err := queries.GetUserByUsername(ctx, DefaultAdminUsername)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		Username:     DefaultAdminUsername,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		// A concurrent startup may have won the race; the constraint is the arbiter.
		if IsUniqueViolation(err) {
			slog.Info("admin user created concurrently, skipping seed")
			return nil
		}
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"username", user.Username,
	)

	return nil
}
