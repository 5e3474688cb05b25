package accountControllers

import (
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/KaushikiPachauri/HealthyMe-Pharmacy/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	// A pooled :memory: connection is a fresh empty database; keep one.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestSignupThenAuthenticate(t *testing.T) {
	db := openTestDB(t)

	user, err := Signup(db, "alice", "s3cret")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("signup returned zero user id")
	}
	if user.PasswordHash == "s3cret" {
		t.Fatal("password stored in plain text")
	}

	got, err := Authenticate(db, "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("authenticate returned user %d, want %d", got.ID, user.ID)
	}
}

func TestSignupTrimsUsername(t *testing.T) {
	db := openTestDB(t)

	user, err := Signup(db, "  bob  ", "pw")
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if user.Username != "bob" {
		t.Fatalf("username = %q, want %q", user.Username, "bob")
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	db := openTestDB(t)

	if _, err := Signup(db, "alice", "first"); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := Signup(db, "alice", "second"); !errors.Is(err, models.ErrDuplicateUsername) {
		t.Fatalf("second signup err = %v, want ErrDuplicateUsername", err)
	}
}

func TestSignupInvalidInput(t *testing.T) {
	db := openTestDB(t)

	cases := []struct{ username, password string }{
		{"", "pw"},
		{"   ", "pw"},
		{"alice", ""},
		{"alice", "   "},
	}
	for _, tc := range cases {
		if _, err := Signup(db, tc.username, tc.password); !errors.Is(err, models.ErrInvalidInput) {
			t.Errorf("Signup(%q, %q) err = %v, want ErrInvalidInput", tc.username, tc.password, err)
		}
	}
}

func TestAuthenticateFailures(t *testing.T) {
	db := openTestDB(t)

	if _, err := Signup(db, "alice", "s3cret"); err != nil {
		t.Fatalf("signup: %v", err)
	}

	if _, err := Authenticate(db, "alice", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := Authenticate(db, "nobody", "s3cret"); !errors.Is(err, models.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}
