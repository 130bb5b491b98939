package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ExpenseFilter contains the fields expenses can be filtered by.
type ExpenseFilter struct {
	CategoryID      int         // Zero matches all categories
	LinkedAccountID uuid.UUID   // uuid.Nil matches all accounts
	Month           types.Month // The zero month matches all dates
	Vendor          string      // Substring of the vendor
	Page
}

// ExpenseUpdate contains the manually editable fields of an expense.
// Nil fields are left unchanged.
type ExpenseUpdate struct {
	Amount      *decimal.Decimal
	Date        *time.Time
	Vendor      *string
	Description *string
	CategoryID  *int
}

// Expenses persists expenses.
type Expenses struct {
	db *gorm.DB
}

func NewExpenses(db *gorm.DB) *Expenses {
	return &Expenses{db: db}
}

// Create persists a new expense.
//
// If an expense with the same upstream transaction ID exists,
// models.ErrDuplicateTransaction is returned.
func (s *Expenses) Create(ctx context.Context, expense *models.Expense) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(expense).Error
}

// FindByTransactionID returns the expense imported from an upstream transaction.
// If there is none, it returns nil and no error.
func (s *Expenses) FindByTransactionID(ctx context.Context, transactionID string) (*models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).Where("transaction_id = ?", transactionID).First(&expense).Error
	if errors.Is(err, models.ErrResourceNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &expense, nil
}

// Get returns an expense of the user.
func (s *Expenses) Get(ctx context.Context, userID, id uuid.UUID) (models.Expense, error) {
	var expense models.Expense
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&expense, "id = ?", id).Error
	return expense, err
}

// List returns the user's expenses, newest first, together with
// the total number of expenses matching the filter.
func (s *Expenses) List(ctx context.Context, userID uuid.UUID, filter ExpenseFilter) ([]models.Expense, int64, error) {
	q := s.db.WithContext(ctx).Model(&models.Expense{}).Where("user_id = ?", userID)

	if filter.CategoryID != 0 {
		q = q.Where("category_id = ?", filter.CategoryID)
	}

	if filter.LinkedAccountID != uuid.Nil {
		q = q.Where("linked_account_id = ?", filter.LinkedAccountID)
	}

	if !filter.Month.IsZero() {
		q = q.Where("date >= ? AND date < ?", filter.Month.Time(), filter.Month.AddDate(0, 1).Time())
	}

	if filter.Vendor != "" {
		q = q.Where("vendor LIKE ?", fmt.Sprintf("%%%s%%", filter.Vendor))
	}

	// Make the query reusable for counting and fetching
	q = q.Session(&gorm.Session{})

	var total int64
	err := q.Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	expenses := make([]models.Expense, 0)
	err = filter.Page.apply(q.Order("date DESC, created_at DESC")).Find(&expenses).Error
	if err != nil {
		return nil, 0, err
	}

	return expenses, total, nil
}

// Update changes the manually editable fields of an expense.
//
// The upstream transaction ID and linked account of imported expenses
// cannot be changed.
func (s *Expenses) Update(ctx context.Context, userID, id uuid.UUID, update ExpenseUpdate) (models.Expense, error) {
	expense, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Expense{}, err
	}

	if update.Amount != nil {
		expense.Amount = *update.Amount
	}

	if update.Date != nil {
		expense.Date = *update.Date
	}

	if update.Vendor != nil {
		expense.Vendor = *update.Vendor
	}

	if update.Description != nil {
		expense.Description = update.Description
	}

	if update.CategoryID != nil {
		expense.CategoryID = *update.CategoryID
	}

	err = s.db.WithContext(ctx).Omit(clause.Associations).Save(&expense).Error
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// Delete deletes an expense of the user.
func (s *Expenses) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Expense{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(models.Expense{})
	}

	return nil
}
