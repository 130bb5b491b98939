package store

import (
	"context"

	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BudgetWithSpend is a budget together with the spend in its category.
type BudgetWithSpend struct {
	models.Budget
	Spent     decimal.Decimal
	Remaining decimal.Decimal
}

// Budgets persists budgets.
type Budgets struct {
	db *gorm.DB
}

func NewBudgets(db *gorm.DB) *Budgets {
	return &Budgets{db: db}
}

// Create persists a new budget.
//
// If the user already has a budget for the category,
// models.ErrBudgetAlreadyExists is returned.
func (s *Budgets) Create(ctx context.Context, budget *models.Budget) error {
	return s.db.WithContext(ctx).Omit(clause.Associations).Create(budget).Error
}

// Get returns a budget of the user.
func (s *Budgets) Get(ctx context.Context, userID, id uuid.UUID) (models.Budget, error) {
	var budget models.Budget
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&budget, "id = ?", id).Error
	return budget, err
}

// List returns the user's budgets ordered by category.
//
// With a non-empty list of categories, only budgets for these categories
// are returned.
func (s *Budgets) List(ctx context.Context, userID uuid.UUID, categories ...int) ([]models.Budget, error) {
	q := s.db.WithContext(ctx).Where("user_id = ?", userID)
	if len(categories) > 0 {
		q = q.Where("category_id IN ?", categories)
	}

	budgets := make([]models.Budget, 0)
	err := q.Order("category_id ASC").Find(&budgets).Error
	return budgets, err
}

// WithSpend adds the spend in the budget's category to the budget.
// If month is not the zero value, only expenses in that month are summed up.
func (s *Budgets) WithSpend(ctx context.Context, budget models.Budget, month types.Month) (BudgetWithSpend, error) {
	spent, err := budget.Spent(s.db.WithContext(ctx), month)
	if err != nil {
		return BudgetWithSpend{}, err
	}

	return BudgetWithSpend{
		Budget:    budget,
		Spent:     spent,
		Remaining: budget.Amount.Sub(spent),
	}, nil
}

// UpdateAmount changes the target amount of a budget.
func (s *Budgets) UpdateAmount(ctx context.Context, userID, id uuid.UUID, amount decimal.Decimal) (models.Budget, error) {
	budget, err := s.Get(ctx, userID, id)
	if err != nil {
		return models.Budget{}, err
	}

	budget.Amount = amount
	err = s.db.WithContext(ctx).Omit(clause.Associations).Save(&budget).Error
	if err != nil {
		return models.Budget{}, err
	}

	return budget, nil
}

// Delete deletes a budget of the user.
func (s *Budgets) Delete(ctx context.Context, userID, id uuid.UUID) error {
	tx := s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.Budget{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return notFound(models.Budget{})
	}

	return nil
}
