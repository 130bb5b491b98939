package store_test

import (
	"testing"
	"time"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestExpenseFindByTransactionID() {
	s := store.NewExpenses(suite.db)
	user := suite.createTestUser("finder")

	found, err := s.FindByTransactionID(suite.ctx, "t1")
	suite.Require().Nil(err)
	suite.Assert().Nil(found)

	transactionID := "t1"
	suite.Require().Nil(s.Create(suite.ctx, &models.Expense{UserID: user.ID, Vendor: "Cafe", Amount: decimal.NewFromInt(2), TransactionID: &transactionID}))

	found, err = s.FindByTransactionID(suite.ctx, "t1")
	suite.Require().Nil(err)
	suite.Require().NotNil(found)
	suite.Assert().Equal("Cafe", found.Vendor)

	err = s.Create(suite.ctx, &models.Expense{UserID: user.ID, Vendor: "Cafe", Amount: decimal.NewFromInt(2), TransactionID: &transactionID})
	suite.Assert().ErrorIs(err, models.ErrDuplicateTransaction)
}

func (suite *TestSuiteStandard) TestExpenseScopedByUser() {
	s := store.NewExpenses(suite.db)
	owner := suite.createTestUser("owner")
	intruder := suite.createTestUser("intruder")

	expense := models.Expense{UserID: owner.ID, Vendor: "Pharmacy", Amount: decimal.NewFromInt(8), CategoryID: int(category.Medical)}
	suite.Require().Nil(s.Create(suite.ctx, &expense))

	tests := []struct {
		name string
		fn   func() error
	}{
		{"Get", func() error { _, err := s.Get(suite.ctx, intruder.ID, expense.ID); return err }},
		{"Update", func() error {
			vendor := "Stolen"
			_, err := s.Update(suite.ctx, intruder.ID, expense.ID, store.ExpenseUpdate{Vendor: &vendor})
			return err
		}},
		{"Delete", func() error { return s.Delete(suite.ctx, intruder.ID, expense.ID) }},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.fn(), models.ErrResourceNotFound)
		})
	}

	expenses, total, err := s.List(suite.ctx, intruder.ID, store.ExpenseFilter{})
	suite.Require().Nil(err)
	suite.Assert().Len(expenses, 0)
	suite.Assert().Equal(int64(0), total)

	saved, err := s.Get(suite.ctx, owner.ID, expense.ID)
	suite.Require().Nil(err)
	suite.Assert().Equal("Pharmacy", saved.Vendor)
}

func (suite *TestSuiteStandard) TestExpenseList() {
	s := store.NewExpenses(suite.db)
	user := suite.createTestUser("lister")

	for _, e := range []models.Expense{
		{Vendor: "Cinema", CategoryID: int(category.Entertainment), Amount: decimal.NewFromInt(12), Date: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
		{Vendor: "Cafe Central", CategoryID: int(category.FoodAndDrink), Amount: decimal.NewFromInt(4), Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)},
		{Vendor: "Cafe Sperl", CategoryID: int(category.FoodAndDrink), Amount: decimal.NewFromInt(5), Date: time.Date(2024, 2, 12, 0, 0, 0, 0, time.UTC)},
	} {
		e.UserID = user.ID
		suite.Require().Nil(s.Create(suite.ctx, &e))
	}

	tests := []struct {
		name    string
		filter  store.ExpenseFilter
		vendors []string
		total   int64
	}{
		{"All, newest first", store.ExpenseFilter{}, []string{"Cafe Sperl", "Cafe Central", "Cinema"}, 3},
		{"Category", store.ExpenseFilter{CategoryID: int(category.Entertainment)}, []string{"Cinema"}, 1},
		{"Month", store.ExpenseFilter{Month: types.NewMonth(2024, 2)}, []string{"Cafe Sperl", "Cafe Central"}, 2},
		{"Vendor", store.ExpenseFilter{Vendor: "Cafe"}, []string{"Cafe Sperl", "Cafe Central"}, 2},
		{"Limit", store.ExpenseFilter{Page: store.Page{Limit: 1}}, []string{"Cafe Sperl"}, 3},
		{"Offset", store.ExpenseFilter{Page: store.Page{Offset: 2}}, []string{"Cinema"}, 3},
		{"Linked account", store.ExpenseFilter{LinkedAccountID: uuid.New()}, []string{}, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			expenses, total, err := s.List(suite.ctx, user.ID, tt.filter)
			assert.Nil(t, err)
			assert.Equal(t, tt.total, total)

			vendors := make([]string, 0)
			for _, e := range expenses {
				vendors = append(vendors, e.Vendor)
			}
			assert.Equal(t, tt.vendors, vendors)
		})
	}
}

func (suite *TestSuiteStandard) TestExpenseUpdate() {
	s := store.NewExpenses(suite.db)
	user := suite.createTestUser("updater")
	transactionID := "t-update"

	expense := models.Expense{UserID: user.ID, Vendor: "Cab", Amount: decimal.NewFromInt(20), TransactionID: &transactionID}
	suite.Require().Nil(s.Create(suite.ctx, &expense))

	vendor := "Yellow Cab"
	categoryID := int(category.Transportation)
	amount := decimal.RequireFromString("19.99")
	updated, err := s.Update(suite.ctx, user.ID, expense.ID, store.ExpenseUpdate{Vendor: &vendor, CategoryID: &categoryID, Amount: &amount})
	suite.Require().Nil(err)

	suite.Assert().Equal("Yellow Cab", updated.Vendor)
	suite.Assert().Equal(categoryID, updated.CategoryID)
	suite.Assert().True(amount.Equal(updated.Amount))
	suite.Require().NotNil(updated.TransactionID)
	suite.Assert().Equal("t-update", *updated.TransactionID)

	negative := decimal.NewFromInt(-1)
	_, err = s.Update(suite.ctx, user.ID, expense.ID, store.ExpenseUpdate{Amount: &negative})
	suite.Assert().ErrorIs(err, models.ErrExpenseAmountNotPositive)
}

func (suite *TestSuiteStandard) TestExpenseDelete() {
	s := store.NewExpenses(suite.db)
	user := suite.createTestUser("deleter")

	expense := models.Expense{UserID: user.ID, Vendor: "Kiosk", Amount: decimal.NewFromInt(1)}
	suite.Require().Nil(s.Create(suite.ctx, &expense))

	suite.Require().Nil(s.Delete(suite.ctx, user.ID, expense.ID))
	suite.Assert().ErrorIs(s.Delete(suite.ctx, user.ID, expense.ID), models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestExpenseDBClosed() {
	s := store.NewExpenses(suite.db)
	suite.CloseDB()

	_, err := s.FindByTransactionID(suite.ctx, "t1")
	suite.Assert().ErrorIs(err, models.ErrGeneral)

	_, _, err = s.List(suite.ctx, uuid.New(), store.ExpenseFilter{})
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
