package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"pulseboard/internal/db"
	"pulseboard/internal/services"
)

func TestRunAddUserCommandCreatesAccount(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pulseboard-cli-test.db")

	err := RunAddUserCommand(databasePath, "cli@example.com", "TestPassw0rd!", "CLI User", "cli", "admin")
	if err != nil {
		t.Fatalf("RunAddUserCommand: %v", err)
	}

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	accounts := services.NewAccountService(db.NewAccountRepository(database))

	account, err := accounts.Authenticate("cli@example.com", "TestPassw0rd!")
	if err != nil {
		t.Fatalf("expected created account to authenticate: %v", err)
	}
	if account.Role != "admin" {
		t.Fatalf("expected admin role, got %q", account.Role)
	}
}

func TestRunAddUserCommandRejectsWeakPassword(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pulseboard-cli-test.db")

	err := RunAddUserCommand(databasePath, "cli@example.com", "password", "", "", "")
	if err == nil {
		t.Fatalf("expected weak password to be rejected")
	}
	if !strings.Contains(err.Error(), "requirements") {
		t.Fatalf("expected policy error, got %v", err)
	}
}

func TestRunResetPasswordCommandFlagsForcedChange(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pulseboard-cli-test.db")

	if err := RunAddUserCommand(databasePath, "cli@example.com", "TestPassw0rd!", "", "", ""); err != nil {
		t.Fatalf("RunAddUserCommand: %v", err)
	}
	if err := RunResetPasswordCommand(databasePath, "cli@example.com"); err != nil {
		t.Fatalf("RunResetPasswordCommand: %v", err)
	}

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	accounts := services.NewAccountService(db.NewAccountRepository(database))

	account, err := accounts.FindByEmail("cli@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if !account.MustChangePassword {
		t.Fatalf("expected forced password change after reset")
	}
}

func TestRunResetPasswordCommandUnknownUser(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pulseboard-cli-test.db")

	err := RunResetPasswordCommand(databasePath, "nobody@example.com")
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestRunSeedCommandLoadsRecords(t *testing.T) {
	databasePath := filepath.Join(t.TempDir(), "pulseboard-cli-test.db")

	if err := RunSeedCommand(databasePath, 5, 3); err != nil {
		t.Fatalf("RunSeedCommand: %v", err)
	}

	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	repositories := db.NewRepositories(database)

	subjects, err := repositories.Ingestion.DistinctSubjects()
	if err != nil {
		t.Fatalf("DistinctSubjects: %v", err)
	}
	if len(subjects) != 5 {
		t.Fatalf("expected 5 seeded subjects, got %d", len(subjects))
	}

	if err := RunSeedCommand(databasePath, 0, 3); err == nil {
		t.Fatalf("expected error for non-positive subjects")
	}
}
