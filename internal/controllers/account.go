package controllers

import (
	"fmt"
	"net/http"

	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/importer"
	"github.com/expensebud/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LinkedAccountLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/accounts/2fd1e5b4-7a63-4a8b-98d3-3b2f6b6f5c1a"`                      // The linked account itself
	Sync     string `json:"sync" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/accounts/2fd1e5b4-7a63-4a8b-98d3-3b2f6b6f5c1a/sync"`                 // Endpoint importing new transactions
	Expenses string `json:"expenses" example:"https://example.com/api/v1/users/3b1e2a6e-5b9b-4c51-a5b2-6f2a4e7a3d09/expenses?account=2fd1e5b4-7a63-4a8b-98d3-3b2f6b6f5c1a"` // Expenses imported from the account
}

// LinkedAccount is the API representation of a linked account.
// It never contains the upstream credentials.
type LinkedAccount struct {
	models.LinkedAccount
	Links LinkedAccountLinks `json:"links"`
}

func newLinkedAccount(c *gin.Context, model models.LinkedAccount) LinkedAccount {
	self := fmt.Sprintf("%s/%s", userURL(c, model.UserID, "accounts"), model.ID)

	return LinkedAccount{
		LinkedAccount: model,
		Links: LinkedAccountLinks{
			Self:     self,
			Sync:     self + "/sync",
			Expenses: fmt.Sprintf("%s?account=%s", userURL(c, model.UserID, "expenses"), model.ID),
		},
	}
}

type LinkedAccountResponse struct {
	Data LinkedAccount `json:"data"`
}

type LinkedAccountListResponse struct {
	Data []LinkedAccount `json:"data"`
}

type ImportResultResponse struct {
	Data importer.ImportResult `json:"data"`
}

// RegisterAccountRoutes registers the routes for linked accounts with
// the RouterGroup that is passed.
func (co *Controller) RegisterAccountRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", httputil.OptionsGet)
		r.GET("", co.GetLinkedAccounts)
	}

	// Linked account with ID
	{
		r.OPTIONS("/:accountId", httputil.OptionsGetDelete)
		r.GET("/:accountId", co.GetLinkedAccount)
		r.DELETE("/:accountId", co.DeleteLinkedAccount)
		r.OPTIONS("/:accountId/sync", httputil.OptionsPost)
		r.POST("/:accountId/sync", co.SyncLinkedAccount)
	}
}

// GetLinkedAccounts returns the user's linked accounts
//
//	@Summary		Get linked accounts
//	@Description	Returns all linked accounts of the user
//	@Tags			Accounts
//	@Produce		json
//	@Success		200		{object}	LinkedAccountListResponse
//	@Failure		500		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/accounts [get]
func (co *Controller) GetLinkedAccounts(c *gin.Context) {
	accounts, err := co.Accounts.List(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	data := make([]LinkedAccount, 0, len(accounts))
	for _, a := range accounts {
		data = append(data, newLinkedAccount(c, a))
	}

	c.JSON(http.StatusOK, LinkedAccountListResponse{Data: data})
}

// GetLinkedAccount returns a specific linked account
//
//	@Summary		Get linked account
//	@Description	Returns a specific linked account
//	@Tags			Accounts
//	@Produce		json
//	@Success		200			{object}	LinkedAccountResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			accountId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/accounts/{accountId} [get]
func (co *Controller) GetLinkedAccount(c *gin.Context) {
	id, ok := pathID(c, "accountId")
	if !ok {
		return
	}

	account, err := co.Accounts.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LinkedAccountResponse{Data: newLinkedAccount(c, account)})
}

// DeleteLinkedAccount unlinks an account
//
//	@Summary		Delete linked account
//	@Description	Deletes a linked account. Expenses imported from it are kept. The upstream credential is revoked asynchronously.
//	@Tags			Accounts
//	@Success		204
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			accountId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/accounts/{accountId} [delete]
func (co *Controller) DeleteLinkedAccount(c *gin.Context) {
	id, ok := pathID(c, "accountId")
	if !ok {
		return
	}

	account, err := co.Accounts.Remove(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	co.revoke(c, account)
	c.Status(http.StatusNoContent)
}

// revoke queues the revocation of the account's upstream credential.
//
// The account is already deleted, so failures are logged only.
func (co *Controller) revoke(c *gin.Context, account models.LinkedAccount) {
	if account.AccessToken == "" {
		return
	}

	err := co.Revoker.Enqueue(c.Request.Context(), account.AccessToken)
	if err != nil {
		log.Error().Err(err).Str("linked_account", account.ID.String()).Msg("could not queue credential revocation")
	}
}

// SyncLinkedAccount imports new transactions
//
//	@Summary		Sync linked account
//	@Description	Fetches the transactions added since the last sync from the provider and imports them as expenses
//	@Tags			Accounts
//	@Produce		json
//	@Success		200			{object}	ImportResultResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		404			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Failure		502			{object}	httputil.HTTPError
//	@Param			userId		path		string	true	"ID formatted as string"
//	@Param			accountId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/accounts/{accountId}/sync [post]
func (co *Controller) SyncLinkedAccount(c *gin.Context) {
	id, ok := pathID(c, "accountId")
	if !ok {
		return
	}

	result, err := co.Syncer.Sync(c.Request.Context(), currentUser(c), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ImportResultResponse{Data: result})
}
