package controllers

import (
	"net/http"

	"github.com/expensebud/backend/internal/auth"
	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// recentExpenses is the number of expenses included with the user.
const recentExpenses = 10

type UserLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09"`                   // The user itself
	Expenses   string `json:"expenses" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/expenses"`      // Expenses of the user
	Budgets    string `json:"budgets" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/budgets"`        // Budgets of the user
	MatchRules string `json:"matchRules" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/match-rules"` // Match rules of the user
	Accounts   string `json:"accounts" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/accounts"`      // Linked accounts of the user
}

// User is the API representation of a user.
type User struct {
	models.User
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	return User{
		User: model,
		Links: UserLinks{
			Self:       userURL(c, model.ID, ""),
			Expenses:   userURL(c, model.ID, "expenses"),
			Budgets:    userURL(c, model.ID, "budgets"),
			MatchRules: userURL(c, model.ID, "match-rules"),
			Accounts:   userURL(c, model.ID, "accounts"),
		},
	}
}

// UserDetail is a user with their budgets and most recent expenses.
type UserDetail struct {
	User
	Budgets        []Budget  `json:"budgets"`        // Budgets with the spend over all time
	RecentExpenses []Expense `json:"recentExpenses"` // The most recent expenses
}

type UserResponse struct {
	Data UserDetail `json:"data"`
}

type UserEditable struct {
	Username  *string `json:"username" example:"morre"`
	Password  *string `json:"password" example:"correct horse battery staple"`
	FirstName *string `json:"firstName" example:"Maurice"`
	LastName  *string `json:"lastName" example:"Moss"`
	Email     *string `json:"email" example:"moss@example.com"`
}

// RegisterUserRoutes registers the routes for users and all resources
// they own with the RouterGroup that is passed.
func (co *Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	user := r.Group("/:userId", auth.Authenticate(co.Tokens), auth.EnsureCorrectUser)
	{
		user.OPTIONS("", httputil.OptionsGetPatchDelete)
		user.GET("", co.GetUser)
		user.PATCH("", co.UpdateUser)
		user.DELETE("", co.DeleteUser)
	}

	co.RegisterExpenseRoutes(user.Group("/expenses"))
	co.RegisterBudgetRoutes(user.Group("/budgets"))
	co.RegisterMatchRuleRoutes(user.Group("/match-rules"))
	co.RegisterAccountRoutes(user.Group("/accounts"))
	co.RegisterLinkRoutes(user.Group("/link"))
}

// GetUser returns the authenticated user
//
//	@Summary		Get user
//	@Description	Returns the user with their budgets and most recent expenses
//	@Tags			Users
//	@Produce		json
//	@Success		200		{object}	UserResponse
//	@Failure		401		{object}	httputil.HTTPError
//	@Failure		403		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId} [get]
func (co *Controller) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := co.Users.Get(ctx, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	budgets, err := co.budgetsWithSpend(c, user.ID, types.Month{})
	if err != nil {
		respondError(c, err)
		return
	}

	expenses, _, err := co.Expenses.List(ctx, user.ID, store.ExpenseFilter{Page: store.Page{Limit: recentExpenses}})
	if err != nil {
		respondError(c, err)
		return
	}

	recent := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		recent = append(recent, newExpense(c, e))
	}

	c.JSON(http.StatusOK, UserResponse{Data: UserDetail{
		User:           newUser(c, user),
		Budgets:        budgets,
		RecentExpenses: recent,
	}})
}

// UpdateUser updates the authenticated user
//
//	@Summary		Update user
//	@Description	Updates the user. Only values to be updated need to be specified.
//	@Tags			Users
//	@Accept			json
//	@Produce		json
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	httputil.HTTPError
//	@Failure		401		{object}	httputil.HTTPError
//	@Failure		403		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string			true	"ID formatted as string"
//	@Param			user	body		UserEditable	true	"User"
//	@Router			/v1/users/{userId} [patch]
func (co *Controller) UpdateUser(c *gin.Context) {
	var data UserEditable
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	update := store.UserUpdate{
		Username:  data.Username,
		FirstName: data.FirstName,
		LastName:  data.LastName,
		Email:     data.Email,
	}

	if data.Password != nil {
		if *data.Password == "" {
			httputil.NewError(c, http.StatusBadRequest, errPasswordEmpty)
			return
		}

		hash, err := auth.HashPassword(*data.Password, co.BcryptCost)
		if err != nil {
			httputil.NewError(c, http.StatusBadRequest, err)
			return
		}
		update.PasswordHash = &hash
	}

	_, err := co.Users.Update(c.Request.Context(), currentUser(c), update)
	if err != nil {
		respondError(c, err)
		return
	}

	co.GetUser(c)
}

// DeleteUser deletes the authenticated user
//
//	@Summary		Delete user
//	@Description	Deletes the user with all their data. Credentials of linked accounts are revoked.
//	@Tags			Users
//	@Success		204
//	@Failure		401		{object}	httputil.HTTPError
//	@Failure		403		{object}	httputil.HTTPError
//	@Failure		404		{object}	httputil.HTTPError
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId} [delete]
func (co *Controller) DeleteUser(c *gin.Context) {
	ctx := c.Request.Context()
	id := currentUser(c)

	accounts, err := co.Accounts.List(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	err = co.Users.Delete(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	for _, account := range accounts {
		co.revoke(c, account)
	}

	log.Info().Str("user", id.String()).Int("linked_accounts", len(accounts)).Msg("deleted user")
	c.Status(http.StatusNoContent)
}
