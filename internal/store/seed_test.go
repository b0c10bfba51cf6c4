package store

import (
	"context"
	"testing"

	"github.com/olegiv/oboard-go/internal/auth"
)

func TestSeed(t *testing.T) {
	db := testDB(t)

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	q := New(db)
	admin, err := q.GetUserByUsername(ctx, DefaultAdminUsername)
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}

	if !admin.IsAdmin {
		t.Error("seeded admin should have IsAdmin = true")
	}
	if admin.Email != DefaultAdminEmail {
		t.Errorf("Email = %q, want %q", admin.Email, DefaultAdminEmail)
	}
	ok, err := auth.CheckPassword(DefaultAdminPassword, admin.PasswordHash)
	if err != nil {
		t.Fatalf("CheckPassword: %v", err)
	}
	if !ok {
		t.Error("default password should verify against the seeded hash")
	}
}

func TestSeed_Idempotent(t *testing.T) {
	db := testDB(t)

	ctx := context.Background()
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	count, err := New(db).CountUsers(ctx)
	if err != nil {
		t.Fatalf("CountUsers: %v", err)
	}
	if count != 1 {
		t.Errorf("CountUsers = %d, want 1", count)
	}
}
