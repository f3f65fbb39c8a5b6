package cli

import (
	"errors"
	"fmt"
	"os"

	"pulseboard/internal/db"
	"pulseboard/internal/services"
)

// RunAddUserCommand creates an account directly against the database. An
// empty password triggers an interactive no-echo prompt with confirmation.
func RunAddUserCommand(dbPath string, email string, password string, fullName string, nickname string, role string) error {
	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}

	if password == "" {
		password, err = promptNewPassword()
		if err != nil {
			return err
		}
	}

	accounts := services.NewAccountService(db.NewAccountRepository(database))
	account, err := accounts.CreateAccount(email, password, fullName, nickname, role)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	fmt.Println("✅ User created")
	fmt.Printf("  ID:        %d\n", account.ID)
	fmt.Printf("  Email:     %s\n", account.Email)
	fmt.Printf("  Full name: %s\n", account.FullName)
	fmt.Printf("  Nickname:  %s\n", account.Nickname)
	fmt.Printf("  Role:      %s\n", account.Role)
	return nil
}

func promptNewPassword() (string, error) {
	fmt.Print("Password: ")
	first, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	second, err := readPasswordNoEcho(os.Stdin)
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passwords do not match")
	}
	return string(first), nil
}
