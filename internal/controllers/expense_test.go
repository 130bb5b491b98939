package controllers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/controllers"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) createExpense(user registered, data controllers.ExpenseEditable) controllers.Expense {
	r := suite.request(http.MethodPost, user.path("/expenses"), data, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusCreated, &r)

	var response controllers.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)

	return response.Data
}

func (suite *TestSuiteStandard) TestCreateExpense() {
	user := suite.register("moss")

	expense := suite.createExpense(user, controllers.ExpenseEditable{
		Amount: decimal.NewFromFloat(4.2),
		Date:   time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		Vendor: "  Bakery ",
	})

	suite.Assert().Equal("Bakery", expense.Vendor)
	suite.Assert().Equal(int(category.Other), expense.CategoryID, "Manual expenses default to the Other category")
	suite.Assert().Nil(expense.TransactionID)
	suite.Assert().Nil(expense.LinkedAccountID)
	suite.Assert().Equal(user.ID, expense.UserID)
	suite.Assert().Equal(fmt.Sprintf("%s%s", apiURL, user.path("/expenses/%s", expense.ID)), expense.Links.Self)
}

func (suite *TestSuiteStandard) TestCreateExpenseFails() {
	user := suite.register("moss")

	tests := []struct {
		name   string
		body   any
		status int
		err    string
	}{
		{"Empty body", nil, http.StatusBadRequest, "the request body must not be empty"},
		{"Broken body", `{ "amount": "a lot" }`, http.StatusBadRequest, ""},
		{"Negative amount", controllers.ExpenseEditable{Amount: decimal.NewFromInt(-5), Vendor: "Shop"}, http.StatusBadRequest, models.ErrExpenseAmountNotPositive.Error()},
		{"Zero amount", controllers.ExpenseEditable{Vendor: "Shop"}, http.StatusBadRequest, models.ErrExpenseAmountNotPositive.Error()},
		{"No vendor", controllers.ExpenseEditable{Amount: decimal.NewFromInt(5)}, http.StatusBadRequest, models.ErrVendorEmpty.Error()},
		{"Unknown category", controllers.ExpenseEditable{Amount: decimal.NewFromInt(5), Vendor: "Shop", CategoryID: 8}, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodPost, user.path("/expenses"), tt.body, user.Token)
			test.AssertHTTPStatus(t, tt.status, &r)

			if tt.err != "" {
				suite.Assert().Equal(tt.err, test.DecodeError(t, r.Body.Bytes()))
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGetExpensesFilter() {
	user := suite.register("moss")

	suite.createExpense(user, controllers.ExpenseEditable{Amount: decimal.NewFromInt(10), Vendor: "Cinema", CategoryID: int(category.Entertainment), Date: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)})
	suite.createExpense(user, controllers.ExpenseEditable{Amount: decimal.NewFromInt(3), Vendor: "Cafe Central", CategoryID: int(category.FoodAndDrink), Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)})
	suite.createExpense(user, controllers.ExpenseEditable{Amount: decimal.NewFromInt(4), Vendor: "Cafe Sperl", CategoryID: int(category.FoodAndDrink), Date: time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)})

	// Expenses of other users are never listed
	other := suite.register("roy")
	suite.createExpense(other, controllers.ExpenseEditable{Amount: decimal.NewFromInt(1), Vendor: "Cafe Roy", CategoryID: int(category.FoodAndDrink)})

	tests := []struct {
		name    string
		query   string
		vendors []string
		total   int64
	}{
		{"All, newest first", "", []string{"Cafe Sperl", "Cafe Central", "Cinema"}, 3},
		{"Category", fmt.Sprintf("category=%d", category.FoodAndDrink), []string{"Cafe Sperl", "Cafe Central"}, 2},
		{"Month", "month=2024-02", []string{"Cinema"}, 1},
		{"Vendor substring, case insensitive", "vendor=cafe", []string{"Cafe Sperl", "Cafe Central"}, 2},
		{"Combined", "vendor=cafe&month=2024-03&category=2", []string{"Cafe Sperl", "Cafe Central"}, 2},
		{"Limit", "limit=1", []string{"Cafe Sperl"}, 3},
		{"Offset", "offset=2", []string{"Cinema"}, 3},
		{"No linked account matches", "account=" + uuid.NewString(), []string{}, 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodGet, user.path("/expenses?%s", tt.query), nil, user.Token)
			test.AssertHTTPStatus(t, http.StatusOK, &r)

			var response controllers.ExpenseListResponse
			test.DecodeResponse(t, &r, &response)

			vendors := make([]string, 0, len(response.Data))
			for _, e := range response.Data {
				vendors = append(vendors, e.Vendor)
			}

			suite.Assert().Equal(tt.vendors, vendors)
			suite.Assert().Equal(tt.total, response.Pagination.Total)
			suite.Assert().Equal(len(tt.vendors), response.Pagination.Count)
		})
	}
}

func (suite *TestSuiteStandard) TestGetExpensesInvalidQuery() {
	user := suite.register("moss")

	for _, query := range []string{"month=March", "account=not-a-uuid", "offset=-1", "category=food"} {
		r := suite.request(http.MethodGet, user.path("/expenses?%s", query), nil, user.Token)
		test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)
	}
}

func (suite *TestSuiteStandard) TestGetExpense() {
	moss := suite.register("moss")
	roy := suite.register("roy")
	expense := suite.createExpense(moss, controllers.ExpenseEditable{Amount: decimal.NewFromInt(10), Vendor: "Cinema"})

	r := suite.request(http.MethodGet, moss.path("/expenses/%s", expense.ID), nil, moss.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(expense.ID, response.Data.ID)

	// Another user cannot see the expense, even under their own path
	r = suite.request(http.MethodGet, roy.path("/expenses/%s", expense.ID), nil, roy.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)

	r = suite.request(http.MethodGet, moss.path("/expenses/not-a-uuid"), nil, moss.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusBadRequest, &r)

	r = suite.request(http.MethodGet, moss.path("/expenses/%s", uuid.New()), nil, moss.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestUpdateExpense() {
	user := suite.register("moss")
	expense := suite.createExpense(user, controllers.ExpenseEditable{Amount: decimal.NewFromInt(10), Vendor: "Cinema", Description: ptr("Popcorn")})

	r := suite.request(http.MethodPatch, user.path("/expenses/%s", expense.ID), map[string]any{
		"amount":     "12.34",
		"categoryId": int(category.Entertainment),
	}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusOK, &r)

	var response controllers.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.NewFromFloat(12.34).Equal(response.Data.Amount))
	suite.Assert().Equal(int(category.Entertainment), response.Data.CategoryID)
	suite.Assert().Equal("Cinema", response.Data.Vendor, "Fields not in the request must not change")
	suite.Assert().Equal("Popcorn", *response.Data.Description)
}

func (suite *TestSuiteStandard) TestUpdateExpenseFails() {
	moss := suite.register("moss")
	roy := suite.register("roy")
	expense := suite.createExpense(moss, controllers.ExpenseEditable{Amount: decimal.NewFromInt(10), Vendor: "Cinema"})

	tests := []struct {
		name   string
		user   registered
		body   any
		status int
	}{
		{"Set transaction ID", moss, map[string]any{"transactionId": "txn-1"}, http.StatusBadRequest},
		{"Unknown category", moss, map[string]any{"categoryId": 0}, http.StatusBadRequest},
		{"Negative amount", moss, map[string]any{"amount": "-1"}, http.StatusBadRequest},
		{"Empty vendor", moss, map[string]any{"vendor": " "}, http.StatusBadRequest},
		{"Broken body", moss, `{ "vendor": 3 }`, http.StatusBadRequest},
		{"Other user", roy, map[string]any{"vendor": "Theatre"}, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := suite.request(http.MethodPatch, tt.user.path("/expenses/%s", expense.ID), tt.body, tt.user.Token)
			test.AssertHTTPStatus(t, tt.status, &r)
		})
	}

	r := suite.request(http.MethodGet, moss.path("/expenses/%s", expense.ID), nil, moss.Token)
	var response controllers.ExpenseResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Cinema", response.Data.Vendor)
	suite.Assert().Nil(response.Data.TransactionID)
}

func (suite *TestSuiteStandard) TestDeleteExpense() {
	user := suite.register("moss")
	expense := suite.createExpense(user, controllers.ExpenseEditable{Amount: decimal.NewFromInt(10), Vendor: "Cinema"})

	r := suite.request(http.MethodDelete, user.path("/expenses/%s", expense.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)

	r = suite.request(http.MethodDelete, user.path("/expenses/%s", expense.ID), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNotFound, &r)
}

func (suite *TestSuiteStandard) TestExpensesDatabaseError() {
	user := suite.register("moss")
	suite.CloseDB()

	r := suite.request(http.MethodGet, user.path("/expenses"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &r)

	r = suite.request(http.MethodPost, user.path("/expenses"), controllers.ExpenseEditable{Amount: decimal.NewFromInt(1), Vendor: "Shop"}, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusInternalServerError, &r)
}

func (suite *TestSuiteStandard) TestExpenseOptions() {
	user := suite.register("moss")

	r := suite.request(http.MethodOptions, user.path("/expenses"), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	suite.Assert().Equal("GET, POST", r.Header().Get("allow"))

	r = suite.request(http.MethodOptions, user.path("/expenses/%s", uuid.New()), nil, user.Token)
	test.AssertHTTPStatus(suite.T(), http.StatusNoContent, &r)
	suite.Assert().Equal("GET, PATCH, DELETE", r.Header().Get("allow"))
}

func ptr[T any](v T) *T {
	return &v
}
