package store

import (
	"context"
	"errors"

	"github.com/expensebud/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LinkedAccounts persists accounts linked through the upstream provider.
type LinkedAccounts struct {
	db *gorm.DB
}

func NewLinkedAccounts(db *gorm.DB) *LinkedAccounts {
	return &LinkedAccounts{db: db}
}

// Create persists a new linked account.
//
// If the user has already linked the upstream account,
// models.ErrDuplicateAccount is returned.
func (s *LinkedAccounts) Create(ctx context.Context, account *models.LinkedAccount) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(account).Error
}

// FindByUserAndAccountID returns the user's linked account for an upstream account ID.
// If there is none, it returns nil and no error.
func (s *LinkedAccounts) FindByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*models.LinkedAccount, error) {
	var account models.LinkedAccount
	err := s.db.WithContext(ctx).Where("user_id = ? AND account_id = ?", userID, accountID).First(&account).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Get returns a linked account of the user.
func (s *LinkedAccounts) Get(ctx context.Context, userID, id uuid.UUID) (models.LinkedAccount, error) {
	var account models.LinkedAccount
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&account, "id = ?", id).Error
	return account, err
}

// GetByID returns a linked account regardless of its owner.
//
// This is only meant for operator tooling where no user is authenticated.
func (s *LinkedAccounts) GetByID(ctx context.Context, id uuid.UUID) (models.LinkedAccount, error) {
	var account models.LinkedAccount
	err := s.db.WithContext(ctx).First(&account, "id = ?", id).Error
	return account, err
}

// List returns all linked accounts of the user.
func (s *LinkedAccounts) List(ctx context.Context, userID uuid.UUID) ([]models.LinkedAccount, error) {
	accounts := make([]models.LinkedAccount, 0)
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("institution_name ASC, created_at ASC").Find(&accounts).Error
	return accounts, err
}

// Remove deletes a linked account of the user and returns it so that
// the caller can revoke its credential.
func (s *LinkedAccounts) Remove(ctx context.Context, userID, id uuid.UUID) (models.LinkedAccount, error) {
	account, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.LinkedAccount{}, err
	}

	tx := s.db.WithContext(ctx).Delete(&account)
	if tx.Error != nil {
		return models.LinkedAccount{}, tx.Error
	}

	if tx.RowsAffected == 0 {
		return models.LinkedAccount{}, notFound(account)
	}

	return account, nil
}

// UpdateCursor stores the cursor of the last transaction sync.
func (s *LinkedAccounts) UpdateCursor(ctx context.Context, id uuid.UUID, cursor string) error {
	tx := s.db.WithContext(ctx).Model(&models.LinkedAccount{}).Where("id = ?", id).Update("cursor", cursor)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(models.LinkedAccount{})
	}

	return nil
}
