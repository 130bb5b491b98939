package models

import (
	"github.com/expensebud/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Budget is the amount a user plans to spend in a category.
type Budget struct {
	DefaultModel
	UserID     uuid.UUID       `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_budget_user_category" example:"9b5b2b3f-5a55-4a4b-9d4f-0c8f2dc5a17e"`
	User       User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	CategoryID int             `json:"categoryId" gorm:"not null;uniqueIndex:idx_budget_user_category" example:"2"`
	Category   Category        `json:"-"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:DECIMAL(12,2)" example:"250"`
}

func (b Budget) Self() string {
	return "Budget"
}

// BeforeSave ensures that the budget amount is positive.
func (b *Budget) BeforeSave(_ *gorm.DB) error {
	b.Amount = b.Amount.Round(2)
	if !b.Amount.IsPositive() {
		return ErrBudgetAmountNotPositive
	}

	return nil
}

// Spent returns the sum of all expenses of the budget's user in the
// budget's category.
//
// If month is not the zero value, only expenses in that month are summed up.
func (b Budget) Spent(db *gorm.DB, month types.Month) (decimal.Decimal, error) {
	var spent decimal.NullDecimal

	q := db.
		Table("expenses").
		Select("SUM(amount)").
		Where("user_id = ? AND category_id = ?", b.UserID, b.CategoryID)

	if !month.IsZero() {
		q = q.Where("date >= ? AND date < ?", month.Time(), month.AddDate(0, 1).Time())
	}

	err := q.Find(&spent).Error
	if err != nil {
		return decimal.Zero, err
	}

	// If no expenses are found, the value is nil
	if !spent.Valid {
		return decimal.Zero, nil
	}

	return spent.Decimal, nil
}
