package store

import (
	"context"

	"github.com/expensebud/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserUpdate contains the editable fields of a user.
// Nil fields are left unchanged.
type UserUpdate struct {
	Username     *string
	PasswordHash *string
	FirstName    *string
	LastName     *string
	Email        *string
}

// Users persists users.
type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// Create persists a new user.
//
// If the username is taken, models.ErrUsernameNotUnique is returned.
func (s *Users) Create(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Users) Get(ctx context.Context, id uuid.UUID) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	return user, err
}

func (s *Users) GetByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "username = ?", username).Error
	return user, err
}

func (s *Users) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (models.User, error) {
	user, err := s.Get(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if update.Username != nil {
		user.Username = *update.Username
	}

	if update.PasswordHash != nil {
		user.Password = *update.PasswordHash
	}

	if update.FirstName != nil {
		user.FirstName = *update.FirstName
	}

	if update.LastName != nil {
		user.LastName = *update.LastName
	}

	if update.Email != nil {
		user.Email = *update.Email
	}

	err = s.db.WithContext(ctx).Save(&user).Error
	if err != nil {
		return models.User{}, err
	}

	return user, nil
}

// Delete deletes the user together with all resources they own.
func (s *Users) Delete(ctx context.Context, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Delete(&models.User{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(models.User{})
	}

	return nil
}
