package db

import (
	"pulseboard/internal/models"

	"gorm.io/gorm"
)

type AccountRepository struct {
	database *gorm.DB
}

func NewAccountRepository(database *gorm.DB) *AccountRepository {
	return &AccountRepository{database: database}
}

func (repo *AccountRepository) CountAccounts() (int64, error) {
	var count int64
	if err := repo.database.Model(&models.Account{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *AccountRepository) FindByID(accountID uint) (models.Account, error) {
	var account models.Account
	if err := repo.database.First(&account, accountID).Error; err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (repo *AccountRepository) FindByNormalizedEmail(email string) (models.Account, error) {
	var account models.Account
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&account).Error; err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (repo *AccountRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.Account{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *AccountRepository) List() ([]models.Account, error) {
	accounts := make([]models.Account, 0)
	if err := repo.database.Order("id ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (repo *AccountRepository) Create(account *models.Account) error {
	return repo.database.Create(account).Error
}

func (repo *AccountRepository) Save(account *models.Account) error {
	return repo.database.Save(account).Error
}

func (repo *AccountRepository) UpdateProfile(accountID uint, fullName string, nickname string) error {
	return repo.database.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]any{
		"full_name": fullName,
		"nickname":  nickname,
	}).Error
}

func (repo *AccountRepository) UpdatePassword(accountID uint, passwordHash string, mustChangePassword bool) error {
	return repo.database.Model(&models.Account{}).Where("id = ?", accountID).Updates(map[string]any{
		"password_hash":        passwordHash,
		"must_change_password": mustChangePassword,
	}).Error
}

func (repo *AccountRepository) UpdateByID(accountID uint, updates map[string]any) error {
	return repo.database.Model(&models.Account{}).Where("id = ?", accountID).Updates(updates).Error
}

func (repo *AccountRepository) DeleteAccountAndRelatedData(accountID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&models.AccountSettings{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Account{}, accountID).Error
	})
}
