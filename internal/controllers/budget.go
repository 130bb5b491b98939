package controllers

import (
	"fmt"
	"net/http"

	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BudgetLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/budgets/7c4b0d8e-0d2e-4f55-9d43-6d1d7f0c9b21"` // The budget itself
	Expenses string `json:"expenses" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/expenses?category=2"`                  // Expenses the spend is calculated from
}

// Budget is the API representation of a budget with its spend.
type Budget struct {
	models.Budget
	Month     *types.Month    `json:"month,omitempty" example:"2024-03"` // The month the spend is calculated for, all time if not set
	Spent     decimal.Decimal `json:"spent" example:"42.50"`
	Remaining decimal.Decimal `json:"remaining" example:"57.50"` // Negative when more than the budgeted amount was spent
	Links     BudgetLinks     `json:"links"`
}

func newBudget(c *gin.Context, b store.BudgetWithSpend, month types.Month) Budget {
	budget := Budget{
		Budget:    b.Budget,
		Spent:     b.Spent,
		Remaining: b.Remaining,
		Links: BudgetLinks{
			Self:     fmt.Sprintf("%s/%s", userURL(c, b.UserID, "budgets"), b.ID),
			Expenses: fmt.Sprintf("%s?category=%d", userURL(c, b.UserID, "expenses"), b.CategoryID),
		},
	}

	if !month.IsZero() {
		budget.Month = &month
		budget.Links.Expenses = fmt.Sprintf("%s&month=%s", budget.Links.Expenses, month)
	}

	return budget
}

type BudgetEditable struct {
	CategoryID int             `json:"categoryId" example:"2"`
	Amount     decimal.Decimal `json:"amount" example:"250"`
}

type BudgetPatch struct {
	Amount decimal.Decimal `json:"amount" example:"300"`
}

type BudgetResponse struct {
	Data Budget `json:"data"`
}

type BudgetListResponse struct {
	Data []Budget `json:"data"`
}

// RegisterBudgetRoutes registers the routes for budgets with
// the RouterGroup that is passed.
func (co *Controller) RegisterBudgetRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", co.GetBudgets)
		r.POST("", co.CreateBudget)
	}

	// Budget with ID
	{
		r.OPTIONS("/:budgetId", httputil.OptionsGetPatchDelete)
		r.GET("/:budgetId", co.GetBudget)
		r.PATCH("/:budgetId", co.UpdateBudget)
		r.DELETE("/:budgetId", co.DeleteBudget)
	}
}

// budgetsWithSpend returns all budgets of the user with their spend.
func (co *Controller) budgetsWithSpend(c *gin.Context, userID uuid.UUID, month types.Month) ([]Budget, error) {
	ctx := c.Request.Context()

	budgets, err := co.Budgets.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := make([]Budget, 0, len(budgets))
	for _, b := range budgets {
		withSpend, err := co.Budgets.WithSpend(ctx, b, month)
		if err != nil {
			return nil, err
		}

		data = append(data, newBudget(c, withSpend, month))
	}

	return data, nil
}

// GetBudgets returns the user's budgets
//
//	@Summary		Get budgets
//	@Description	Returns all budgets with the amount spent and remaining
//	@Tags			Budgets
//	@Produce		json
//	@Success		200		{object}	BudgetListResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Param			month	query		string	false	"Restrict the spend to a month, formatted as YYYY-MM"
//	@Router			/v1/users/{userId}/budgets [get]
func (co *Controller) GetBudgets(c *gin.Context) {
	month, ok := monthFromQuery(c)
	if !ok {
		return
	}

	data, err := co.budgetsWithSpend(c, currentUser(c), month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetListResponse{Data: data})
}

// CreateBudget creates a budget
//
//	@Summary		Create budget
//	@Description	Creates a budget for a category. There can only be one budget per category.
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		201		{object}	BudgetResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		409		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string			true	"ID formatted as string"
//	@Param			budget	body		BudgetEditable	true	"Budget"
//	@Router			/v1/users/{userId}/budgets [post]
func (co *Controller) CreateBudget(c *gin.Context) {
	var data BudgetEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if err := validCategory(data.CategoryID); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	budget := models.Budget{
		UserID:     currentUser(c),
		CategoryID: data.CategoryID,
		Amount:     data.Amount,
	}

	ctx := c.Request.Context()
	err := co.Budgets.Create(ctx, &budget)
	if err != nil {
		respondError(c, err)
		return
	}

	withSpend, err := co.Budgets.WithSpend(ctx, budget, types.Month{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, BudgetResponse{Data: newBudget(c, withSpend, types.Month{})})
}

// GetBudget returns a specific budget
//
//	@Summary		Get budget
//	@Description	Returns a specific budget with the amount spent and remaining
//	@Tags			Budgets
//	@Produce		json
//	@Success		200			{object}	BudgetResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			budgetId	path		string	true	"ID formatted as string"
//	@Param			month		query		string	false	"Restrict the spend to a month, formatted as YYYY-MM"
//	@Router			/v1/users/{userId}/budgets/{budgetId} [get]
func (co *Controller) GetBudget(c *gin.Context) {
	id, ok := pathID(c, "budgetId")
	if !ok {
		return
	}

	month, ok := monthFromQuery(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	budget, err := co.Budgets.Get(ctx, currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	withSpend, err := co.Budgets.WithSpend(ctx, budget, month)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, withSpend, month)})
}

// UpdateBudget updates a specific budget
//
//	@Summary		Update budget
//	@Description	Updates the amount of a budget
//	@Tags			Budgets
//	@Accept			json
//	@Produce		json
//	@Success		200			{object}	BudgetResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string		true	"ID formatted as string"
//	@Param			budgetId	path		string		true	"ID formatted as string"
//	@Param			budget		body		BudgetPatch	true	"Budget"
//	@Router			/v1/users/{userId}/budgets/{budgetId} [patch]
func (co *Controller) UpdateBudget(c *gin.Context) {
	id, ok := pathID(c, "budgetId")
	if !ok {
		return
	}

	var data BudgetPatch
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	ctx := c.Request.Context()
	budget, err := co.Budgets.UpdateAmount(ctx, currentUser(c), id, data.Amount)
	if err != nil {
		respondError(c, err)
		return
	}

	withSpend, err := co.Budgets.WithSpend(ctx, budget, types.Month{})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, BudgetResponse{Data: newBudget(c, withSpend, types.Month{})})
}

// DeleteBudget deletes a specific budget
//
//	@Summary		Delete budget
//	@Description	Deletes a budget
//	@Tags			Budgets
//	@Success		204
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			budgetId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/budgets/{budgetId} [delete]
func (co *Controller) DeleteBudget(c *gin.Context) {
	id, ok := pathID(c, "budgetId")
	if !ok {
		return
	}

	err := co.Budgets.Delete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
