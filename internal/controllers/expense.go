package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/expensebud/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ExpenseLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/expenses/1dd0a3f0-8f0a-4f1e-8c4c-0f7f0b1e3a5c"` // The expense itself
}

// Expense is the API representation of an expense.
type Expense struct {
	models.Expense
	Links ExpenseLinks `json:"links"`
}

func newExpense(c *gin.Context, model models.Expense) Expense {
	return Expense{
		Expense: model,
		Links: ExpenseLinks{
			Self: fmt.Sprintf("%s/%s", userURL(c, model.UserID, "expenses"), model.ID),
		},
	}
}

type ExpenseEditable struct {
	Amount      decimal.Decimal `json:"amount" example:"12.50"`
	Date        time.Time       `json:"date" example:"2024-03-01T00:00:00Z"` // Defaults to the current time
	Vendor      string          `json:"vendor" example:"Cafe"`
	Description *string         `json:"description" example:"Flat white"`
	CategoryID  int             `json:"categoryId" example:"2"` // Defaults to the Other category
}

type ExpensePatch struct {
	Amount        *decimal.Decimal `json:"amount" example:"12.50"`
	Date          *time.Time       `json:"date" example:"2024-03-01T00:00:00Z"`
	Vendor        *string          `json:"vendor" example:"Cafe"`
	Description   *string          `json:"description" example:"Flat white"`
	CategoryID    *int             `json:"categoryId" example:"2"`
	TransactionID *string          `json:"transactionId" example:"lPNjeW1nR6CDn5okmGQ6hEpMo4lLNoSrzqDje"` // Cannot be changed, only accepted if equal to the current value
}

type ExpenseQueryFilter struct {
	Category int       `form:"category"` // Category ID
	Month    string    `form:"month"`    // YYYY-MM
	Vendor   string    `form:"vendor"`   // Substring of the vendor
	Account  uuid.UUID `form:"account"`  // Linked account ID
	Offset   int       `form:"offset"`
	Limit    int       `form:"limit"`
}

type ExpenseResponse struct {
	Data Expense `json:"data"`
}

type ExpenseListResponse struct {
	Data       []Expense   `json:"data"`       // List of expenses
	Pagination *Pagination `json:"pagination"` // Pagination information
}

// RegisterExpenseRoutes registers the routes for expenses with
// the RouterGroup that is passed.
func (co *Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	// Expense with ID
	{
		r.OPTIONS("/:expenseId", httputil.OptionsGetPatchDelete)
		r.GET("/:expenseId", co.GetExpense)
		r.PATCH("/:expenseId", co.UpdateExpense)
		r.DELETE("/:expenseId", co.DeleteExpense)
	}
}

// GetExpenses returns the user's expenses
//
//	@Summary		Get expenses
//	@Description	Returns a list of expenses, newest first
//	@Tags			Expenses
//	@Produce		json
//	@Success		200			{object}	ExpenseListResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			category	query		int		false	"Filter by category ID"
//	@Param			month		query		string	false	"Filter by month, formatted as YYYY-MM"
//	@Param			vendor		query		string	false	"Filter by vendor substring"
//	@Param			account		query		string	false	"Filter by linked account ID"
//	@Param			offset		query		uint	false	"The offset of the first expense returned. Defaults to 0."
//	@Param			limit		query		int		false	"Maximum number of expenses to return. Defaults to 50."
//	@Router			/v1/users/{userId}/expenses [get]
func (co *Controller) GetExpenses(c *gin.Context) {
	var filter ExpenseQueryFilter
	if err := c.ShouldBindQuery(&filter); err != nil || filter.Offset < 0 {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	month, err := types.ParseMonth(filter.Month)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return
	}

	limit := filter.Limit
	if limit == 0 {
		limit = store.DefaultLimit
	}

	expenses, total, err := co.Expenses.List(c.Request.Context(), currentUser(c), store.ExpenseFilter{
		CategoryID:      filter.Category,
		LinkedAccountID: filter.Account.UUID,
		Month:           month,
		Vendor:          filter.Vendor,
		Page: store.Page{
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		data = append(data, newExpense(c, e))
	}

	c.JSON(http.StatusOK, ExpenseListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  total,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// CreateExpense creates a manual expense
//
//	@Summary		Create expense
//	@Description	Creates a manually entered expense
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	ExpenseResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string			true	"ID formatted as string"
//	@Param			expense	body		ExpenseEditable	true	"Expense"
//	@Router			/v1/users/{userId}/expenses [post]
func (co *Controller) CreateExpense(c *gin.Context) {
	var data ExpenseEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.CategoryID == 0 {
		data.CategoryID = int(category.Other)
	}

	if err := validCategory(data.CategoryID); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	expense := models.Expense{
		UserID:      currentUser(c),
		Amount:      data.Amount,
		Date:        data.Date,
		Vendor:      data.Vendor,
		Description: data.Description,
		CategoryID:  data.CategoryID,
	}

	err := co.Expenses.Create(c.Request.Context(), &expense)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ExpenseResponse{Data: newExpense(c, expense)})
}

// GetExpense returns a specific expense
//
//	@Summary		Get expense
//	@Description	Returns a specific expense
//	@Tags			Expenses
//	@Produce		json
//	@Success		200			{object}	ExpenseResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			expenseId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/expenses/{expenseId} [get]
func (co *Controller) GetExpense(c *gin.Context) {
	id, ok := pathID(c, "expenseId")
	if !ok {
		return
	}

	expense, err := co.Expenses.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(c, expense)})
}

// UpdateExpense updates a specific expense
//
//	@Summary		Update expense
//	@Description	Updates an expense. Only values to be updated need to be specified. The transaction ID of imported expenses cannot be changed.
//	@Tags			Expenses
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	ExpenseResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string			true	"ID formatted as string"
//	@Param			expenseId	path		string			true	"ID formatted as string"
//	@Param			expense		body		ExpensePatch	true	"Expense"
//	@Router			/v1/users/{userId}/expenses/{expenseId} [patch]
func (co *Controller) UpdateExpense(c *gin.Context) {
	id, ok := pathID(c, "expenseId")
	if !ok {
		return
	}

	ctx := c.Request.Context()
	userID := currentUser(c)

	expense, err := co.Expenses.Get(ctx, userID, id)
	if err != nil {
		respondError(c, err)
		return
	}

	var data ExpensePatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if data.TransactionID != nil && (expense.TransactionID == nil || *expense.TransactionID != *data.TransactionID) {
		httputil.NewError(c, http.StatusBadRequest, errTransactionIDImmutable)
		return
	}

	if data.CategoryID != nil {
		if err := validCategory(*data.CategoryID); err != nil {
			httputil.NewError(c, http.StatusBadRequest, err)
			return
		}
	}

	expense, err = co.Expenses.Update(ctx, userID, id, store.ExpenseUpdate{
		Amount:      data.Amount,
		Date:        data.Date,
		Vendor:      data.Vendor,
		Description: data.Description,
		CategoryID:  data.CategoryID,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: newExpense(c, expense)})
}

// DeleteExpense deletes a specific expense
//
//	@Summary		Delete expense
//	@Description	Deletes an expense
//	@Tags			Expenses
//	@Success		204
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			expenseId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/expenses/{expenseId} [delete]
func (co *Controller) DeleteExpense(c *gin.Context) {
	id, ok := pathID(c, "expenseId")
	if !ok {
		return
	}

	err := co.Expenses.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
