package services

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"pulseboard/internal/models"
	"pulseboard/internal/security"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrAccountNotFound    = errors.New("account not found")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrInvalidRole        = errors.New("invalid role")
	ErrPasswordRejected   = errors.New("password does not meet the requirements")
)

const (
	temporaryPasswordLength   = 12
	temporaryPasswordAlphabet = "abcdefghijkmnpqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ23456789!@#$%*"
)

// AccountRepository is the persistence surface AccountService needs.
// *db.AccountRepository satisfies it.
type AccountRepository interface {
	FindByID(accountID uint) (models.Account, error)
	FindByNormalizedEmail(email string) (models.Account, error)
	ExistsByNormalizedEmail(email string) (bool, error)
	List() ([]models.Account, error)
	Create(account *models.Account) error
	UpdateProfile(accountID uint, fullName string, nickname string) error
	UpdatePassword(accountID uint, passwordHash string, mustChangePassword bool) error
	UpdateByID(accountID uint, updates map[string]any) error
	DeleteAccountAndRelatedData(accountID uint) error
}

type AccountService struct {
	accounts AccountRepository
	denylist PasswordDenylist
}

func NewAccountService(accounts AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// SetPasswordDenylist swaps the denylist used for password validation. The
// zero value keeps the built-in default.
func (service *AccountService) SetPasswordDenylist(denylist PasswordDenylist) {
	service.denylist = denylist
}

func (service *AccountService) validatePassword(password string) error {
	if result := ValidatePasswordWith(password, service.denylist); !result.IsValid {
		return fmt.Errorf("%w: %s", ErrPasswordRejected, strings.Join(result.Errors, "; "))
	}
	return nil
}

// NormalizeEmail lowercases and trims the address and rejects anything that
// does not parse as a mail address.
func NormalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", ErrInvalidEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// Authenticate verifies the credentials and returns the matching account.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (service *AccountService) Authenticate(email string, password string) (models.Account, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.Account{}, ErrInvalidCredentials
	}

	account, err := service.accounts.FindByNormalizedEmail(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.Account{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return models.Account{}, ErrInvalidCredentials
	}
	return account, nil
}

func (service *AccountService) FindByID(accountID uint) (models.Account, error) {
	account, err := service.accounts.FindByID(accountID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

func (service *AccountService) FindByEmail(email string) (models.Account, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.Account{}, err
	}
	account, err := service.accounts.FindByNormalizedEmail(normalized)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, ErrAccountNotFound
	}
	return account, err
}

func (service *AccountService) List() ([]models.Account, error) {
	return service.accounts.List()
}

// CreateAccount validates the email, role, and password policy, then stores
// the account with a bcrypt hash.
func (service *AccountService) CreateAccount(email string, password string, fullName string, nickname string, role string) (models.Account, error) {
	normalized, err := NormalizeEmail(email)
	if err != nil {
		return models.Account{}, err
	}
	if role == "" {
		role = models.RoleViewer
	}
	if role != models.RoleViewer && role != models.RoleAdmin {
		return models.Account{}, ErrInvalidRole
	}
	if err := service.validatePassword(password); err != nil {
		return models.Account{}, err
	}

	taken, err := service.accounts.ExistsByNormalizedEmail(normalized)
	if err != nil {
		return models.Account{}, err
	}
	if taken {
		return models.Account{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("hash password: %w", err)
	}

	account := models.Account{
		Email:        normalized,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(fullName),
		Nickname:     strings.TrimSpace(nickname),
		Role:         role,
	}
	if err := service.accounts.Create(&account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// UpdateAccount applies an admin edit. An empty password leaves the stored
// hash untouched; a non-empty one must pass the policy and clears any
// pending forced change.
func (service *AccountService) UpdateAccount(accountID uint, email string, password string, fullName string, nickname string) (models.Account, error) {
	account, err := service.FindByID(accountID)
	if err != nil {
		return models.Account{}, err
	}

	updates := map[string]any{
		"full_name": strings.TrimSpace(fullName),
		"nickname":  strings.TrimSpace(nickname),
	}

	if email != "" {
		normalized, err := NormalizeEmail(email)
		if err != nil {
			return models.Account{}, err
		}
		if normalized != account.Email {
			taken, err := service.accounts.ExistsByNormalizedEmail(normalized)
			if err != nil {
				return models.Account{}, err
			}
			if taken {
				return models.Account{}, ErrEmailTaken
			}
			updates["email"] = normalized
		}
	}

	if password != "" {
		if err := service.validatePassword(password); err != nil {
			return models.Account{}, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return models.Account{}, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
		updates["must_change_password"] = false
	}

	if err := service.accounts.UpdateByID(accountID, updates); err != nil {
		return models.Account{}, err
	}
	return service.FindByID(accountID)
}

func (service *AccountService) UpdateProfile(accountID uint, fullName string, nickname string) error {
	if _, err := service.FindByID(accountID); err != nil {
		return err
	}
	return service.accounts.UpdateProfile(accountID, strings.TrimSpace(fullName), strings.TrimSpace(nickname))
}

// ChangePassword verifies the current password before applying the new one.
func (service *AccountService) ChangePassword(accountID uint, currentPassword string, newPassword string) error {
	account, err := service.FindByID(accountID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(currentPassword)) != nil {
		return ErrInvalidCredentials
	}
	if err := service.validatePassword(newPassword); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return service.accounts.UpdatePassword(accountID, string(hash), false)
}

// SetPassword replaces the password without checking the current one. Used
// by the reset flow after the account has been verified.
func (service *AccountService) SetPassword(accountID uint, newPassword string, mustChange bool) error {
	if err := service.validatePassword(newPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return service.accounts.UpdatePassword(accountID, string(hash), mustChange)
}

// IssueTemporaryPassword stores a random password for the account and flags
// it for forced change on next login. The plaintext is returned once for
// out-of-band delivery.
func (service *AccountService) IssueTemporaryPassword(accountID uint) (string, error) {
	temporary, err := security.RandomString(temporaryPasswordLength, temporaryPasswordAlphabet)
	if err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(temporary), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	if err := service.accounts.UpdatePassword(accountID, string(hash), true); err != nil {
		return "", err
	}
	return temporary, nil
}

func (service *AccountService) DeleteAccount(accountID uint) error {
	if _, err := service.FindByID(accountID); err != nil {
		return err
	}
	return service.accounts.DeleteAccountAndRelatedData(accountID)
}
