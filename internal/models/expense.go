package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense is money spent by a user.
//
// Expenses are either entered manually or imported from a linked account.
// Imported expenses carry the upstream transaction ID, which is unique.
type Expense struct {
	DefaultModel
	UserID          uuid.UUID       `json:"userId" gorm:"type:uuid;index;not null" example:"9b5b2b3f-5a55-4a4b-9d4f-0c8f2dc5a17e"`
	User            User            `json:"-" gorm:"constraint:OnDelete:CASCADE"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:DECIMAL(12,2)" example:"12.50"`
	Date            time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
	Vendor          string          `json:"vendor" example:"Cafe"`
	Description     *string         `json:"description" example:"Flat white"`
	CategoryID      int             `json:"categoryId" gorm:"not null;default:7" example:"2"`
	Category        Category        `json:"-"`
	TransactionID   *string         `json:"transactionId" gorm:"uniqueIndex:idx_expense_transaction" example:"lPNjeW1nR6CDn5okmGQ6hEpMo4lLNoSrzqDje"` // Upstream transaction ID, null for manual expenses
	LinkedAccountID *uuid.UUID      `json:"linkedAccountId" gorm:"type:uuid" example:"2fd1e5b4-7a63-4a8b-98d3-3b2f6b6f5c1a"`
	LinkedAccount   *LinkedAccount  `json:"-" gorm:"constraint:OnDelete:SET NULL"`
}

func (e Expense) Self() string {
	return "Expense"
}

// Imported reports if the expense was created from an upstream transaction.
func (e Expense) Imported() bool {
	return e.TransactionID != nil
}

// AfterFind updates the timestamps to use UTC as timezone.
func (e *Expense) AfterFind(tx *gorm.DB) (err error) {
	err = e.DefaultModel.AfterFind(tx)
	if err != nil {
		return err
	}

	// Enforce dates to be in UTC
	e.Date = e.Date.In(time.UTC)
	return
}

// BeforeSave
//   - sets the timezone for the Date for UTC
//   - trims whitespace from string fields
//   - ensures the amount is positive and rounded to cents
func (e *Expense) BeforeSave(_ *gorm.DB) (err error) {
	e.Vendor = strings.TrimSpace(e.Vendor)
	if e.Vendor == "" {
		return ErrVendorEmpty
	}

	if e.Description != nil {
		d := strings.TrimSpace(*e.Description)
		if d == "" {
			e.Description = nil
		} else {
			e.Description = &d
		}
	}

	// Ensure that optional references are nil and not a pointer to a nil value
	if e.TransactionID != nil && strings.TrimSpace(*e.TransactionID) == "" {
		e.TransactionID = nil
	}

	if e.LinkedAccountID != nil && *e.LinkedAccountID == uuid.Nil {
		e.LinkedAccountID = nil
	}

	e.Amount = e.Amount.Round(2)
	if !e.Amount.IsPositive() {
		return ErrExpenseAmountNotPositive
	}

	if e.Date.IsZero() {
		e.Date = time.Now().In(time.UTC)
	} else {
		e.Date = e.Date.In(time.UTC)
	}

	return
}
