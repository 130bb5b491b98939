// Package controllers implements the HTTP handlers of the API.
package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/expensebud/backend/internal/auth"
	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/importer"
	"github.com/expensebud/backend/internal/link"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

// Revoker revokes upstream credentials of deleted linked accounts.
type Revoker interface {
	Enqueue(ctx context.Context, accessToken string) error
}

// Controller holds everything the handlers need.
type Controller struct {
	Users      *store.Users
	Expenses   *store.Expenses
	Budgets    *store.Budgets
	Accounts   *store.LinkedAccounts
	MatchRules *store.MatchRules

	Session *link.Session
	Syncer  *importer.Syncer
	Revoker Revoker

	Tokens      *auth.Tokens
	BcryptCost  int
	AuthLimiter *rate.Limiter
}

var (
	errPasswordEmpty          = errors.New("the password must not be empty")
	errTransactionIDImmutable = errors.New("the transaction ID of an expense cannot be changed")
	errPublicTokenEmpty       = errors.New("the publicToken must be set")
	errAccountIDEmpty         = errors.New("the account.id must be set")
	errMatchEmpty             = errors.New("the match pattern must not be empty")
)

// status returns the appropriate HTTP status for an error.
func status(err error) int {
	switch {
	case errors.Is(err, models.ErrGeneral):
		return http.StatusInternalServerError
	case errors.Is(err, models.ErrResourceNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateAccount), errors.Is(err, models.ErrBudgetAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, upstream.ErrUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

// respondError aborts the request with the status for err.
func respondError(c *gin.Context, err error) {
	s := status(err)
	if s == http.StatusInternalServerError {
		httputil.InternalError(c, err)
		return
	}

	httputil.NewError(c, s, err)
}

// currentUser returns the ID of the authenticated user. The routes
// using it are guarded by auth.EnsureCorrectUser.
func currentUser(c *gin.Context) uuid.UUID {
	claims, _ := auth.CurrentUser(c)
	return claims.ID
}

// pathID parses a UUID path parameter.
// On failure, the error response is written.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := httputil.UUIDFromString(c, c.Param(name))
	return id, err == nil
}

// monthFromQuery parses the optional month query parameter.
// On failure, the error response is written.
func monthFromQuery(c *gin.Context) (types.Month, bool) {
	month, err := types.ParseMonth(c.Query("month"))
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, httputil.ErrInvalidQueryString)
		return types.Month{}, false
	}

	return month, true
}

func validCategory(id int) error {
	if !category.Valid(category.ID(id)) {
		return fmt.Errorf("%w: %d", category.ErrUnmappableCategory, id)
	}

	return nil
}

// userURL returns the URL of a user's resource collection.
func userURL(c *gin.Context, userID uuid.UUID, collection string) string {
	url := fmt.Sprintf("%s/v1/users/%s", c.GetString(string(models.ContextURL)), userID)
	if collection == "" {
		return url
	}

	return fmt.Sprintf("%s/%s", url, collection)
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of resources returned for this request
	Total  int64 `json:"total" example:"827"` // The total amount of resources for this query
	Offset int   `json:"offset" example:"50"` // The offset for the first record returned
	Limit  int   `json:"limit" example:"25"`  // The maximum amount of resources to return for this request
}
