package controllers

import (
	"net/http"
	"strings"

	"github.com/expensebud/backend/internal/httputil"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/gin-gonic/gin"
)

type LinkTokenResponse struct {
	Data upstream.LinkToken `json:"data"`
}

type LinkExchange struct {
	PublicToken string               `json:"publicToken" example:"public-sandbox-b0e2c4ee-a763-4df5-bfe9-46a46bce993d"` // Public token returned by the linking flow
	Institution upstream.Institution `json:"institution"`                                                               // Institution selected in the linking flow
	Account     upstream.Account     `json:"account"`                                                                   // Account selected in the linking flow
}

// RegisterLinkRoutes registers the routes for account linking with
// the RouterGroup that is passed.
func (co *Controller) RegisterLinkRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/token", httputil.OptionsPost)
	r.POST("/token", co.CreateLinkToken)
	r.OPTIONS("/exchange", httputil.OptionsPost)
	r.POST("/exchange", co.ExchangePublicToken)
}

// CreateLinkToken starts linking an account
//
//	@Summary		Create link token
//	@Description	Creates a link token to start the provider's account linking flow
//	@Tags			Link
//	@Produce		json
//	@Success		201		{object}	LinkTokenResponse
//	@Failure		502		{object}	httputil.HTTPError
//	@Param			userId	path		string	true	"ID formatted as string"
//	@Router			/v1/users/{userId}/link/token [post]
func (co *Controller) CreateLinkToken(c *gin.Context) {
	token, err := co.Session.CreateLinkToken(c.Request.Context(), currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LinkTokenResponse{Data: token})
}

// ExchangePublicToken finishes linking an account
//
//	@Summary		Exchange public token
//	@Description	Exchanges the public token from the linking flow and registers the linked account
//	@Tags			Link
//	@Accept			json
//	@Produce		json
//	@Success		201			{object}	LinkedAccountResponse
//	@Failure		400			{object}	httputil.HTTPError
//	@Failure		409			{object}	httputil.HTTPError
//	@Failure		500			{object}	httputil.HTTPError
//	@Failure		502			{object}	httputil.HTTPError
//	@Param			userId		path		string			true	"ID formatted as string"
//	@Param			exchange	body		LinkExchange	true	"Exchange"
//	@Router			/v1/users/{userId}/link/exchange [post]
func (co *Controller) ExchangePublicToken(c *gin.Context) {
	var data LinkExchange
	if err := httputil.BindData(c, &data); err != nil {
		return
	}

	if strings.TrimSpace(data.PublicToken) == "" {
		httputil.NewError(c, http.StatusBadRequest, errPublicTokenEmpty)
		return
	}

	if strings.TrimSpace(data.Account.ID) == "" {
		httputil.NewError(c, http.StatusBadRequest, errAccountIDEmpty)
		return
	}

	account, err := co.Session.ExchangePublicToken(c.Request.Context(), currentUser(c), data.PublicToken, data.Institution, data.Account)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, LinkedAccountResponse{Data: newLinkedAccount(c, account)})
}
