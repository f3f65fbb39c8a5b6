package cli

import (
	"errors"
	"fmt"

	"pulseboard/internal/db"
	"pulseboard/internal/services"
)

// RunResetPasswordCommand stores a temporary password for the account and
// flags it for forced change on next login.
func RunResetPasswordCommand(dbPath string, email string) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	accounts := services.NewAccountService(db.NewAccountRepository(database))
	account, err := accounts.FindByEmail(email)
	if err != nil {
		if errors.Is(err, services.ErrAccountNotFound) {
			return fmt.Errorf("user %s not found", email)
		}
		return fmt.Errorf("load user: %w", err)
	}

	temporaryPassword, err := accounts.IssueTemporaryPassword(account.ID)
	if err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	fmt.Println("✅ Password reset successful")
	fmt.Printf("Temporary password: %s\n", temporaryPassword)
	fmt.Println("User must change password on next login.")
	return nil
}
