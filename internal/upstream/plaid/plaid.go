// Package plaid implements upstream.Provider with the Plaid API.
package plaid

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/expensebud/backend/internal/upstream"
	plaidsdk "github.com/plaid/plaid-go/v29/plaid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Config configures the Plaid client.
type Config struct {
	ClientID    string
	Secret      string
	Environment string // "sandbox", "production" or a base URL
	RedirectURI string
	ClientName  string
}

// Client is a Plaid API client.
type Client struct {
	api         *plaidsdk.APIClient
	redirectURI string
	clientName  string
}

var _ upstream.Provider = &Client{}

func environment(env string) plaidsdk.Environment {
	switch env {
	case "", "sandbox":
		return plaidsdk.Sandbox
	case "production":
		return plaidsdk.Production
	default:
		return plaidsdk.Environment(env)
	}
}

// New creates a new Plaid client.
func New(config Config) *Client {
	cfg := plaidsdk.NewConfiguration()
	cfg.AddDefaultHeader("PLAID-CLIENT-ID", config.ClientID)
	cfg.AddDefaultHeader("PLAID-SECRET", config.Secret)
	cfg.UseEnvironment(environment(config.Environment))
	cfg.HTTPClient = &http.Client{Timeout: 30 * time.Second}

	clientName := config.ClientName
	if clientName == "" {
		clientName = "expensebud"
	}

	return &Client{
		api:         plaidsdk.NewAPIClient(cfg),
		redirectURI: config.RedirectURI,
		clientName:  clientName,
	}
}

// unavailable wraps an error returned by the Plaid API in upstream.ErrUnavailable.
func unavailable(operation string, err error) error {
	plaidErr, convErr := plaidsdk.ToPlaidError(err)
	if convErr == nil {
		log.Error().Str("operation", operation).Str("code", plaidErr.GetErrorCode()).Str("request_id", plaidErr.GetRequestId()).Msg(plaidErr.GetErrorMessage())
		return fmt.Errorf("%w: %s: %s", upstream.ErrUnavailable, operation, plaidErr.GetErrorMessage())
	}

	log.Error().Str("operation", operation).Err(err).Msg("plaid request failed")
	return fmt.Errorf("%w: %s: %s", upstream.ErrUnavailable, operation, err)
}

func (c *Client) CreateLinkToken(ctx context.Context, clientUserID string) (upstream.LinkToken, error) {
	request := plaidsdk.NewLinkTokenCreateRequest(
		c.clientName,
		"en",
		[]plaidsdk.CountryCode{plaidsdk.COUNTRYCODE_US},
		plaidsdk.LinkTokenCreateRequestUser{ClientUserId: clientUserID},
	)
	request.SetProducts([]plaidsdk.Products{plaidsdk.PRODUCTS_TRANSACTIONS})

	if c.redirectURI != "" {
		request.SetRedirectUri(c.redirectURI)
	}

	response, _, err := c.api.PlaidApi.LinkTokenCreate(ctx).LinkTokenCreateRequest(*request).Execute()
	if err != nil {
		return upstream.LinkToken{}, unavailable("link token create", err)
	}

	return upstream.LinkToken{
		Token:      response.GetLinkToken(),
		Expiration: response.GetExpiration(),
	}, nil
}

func (c *Client) ExchangePublicToken(ctx context.Context, publicToken string) (upstream.Exchange, error) {
	request := plaidsdk.NewItemPublicTokenExchangeRequest(publicToken)

	response, _, err := c.api.PlaidApi.ItemPublicTokenExchange(ctx).ItemPublicTokenExchangeRequest(*request).Execute()
	if err != nil {
		return upstream.Exchange{}, unavailable("public token exchange", err)
	}

	return upstream.Exchange{
		AccessToken: response.GetAccessToken(),
		ItemID:      response.GetItemId(),
	}, nil
}

func (c *Client) SyncTransactions(ctx context.Context, accessToken, cursor string) (upstream.SyncPage, error) {
	request := plaidsdk.NewTransactionsSyncRequest(accessToken)
	request.SetOptions(plaidsdk.TransactionsSyncRequestOptions{
		IncludePersonalFinanceCategory: plaidsdk.PtrBool(true),
	})

	if cursor != "" {
		request.SetCursor(cursor)
	}

	response, _, err := c.api.PlaidApi.TransactionsSync(ctx).TransactionsSyncRequest(*request).Execute()
	if err != nil {
		return upstream.SyncPage{}, unavailable("transactions sync", err)
	}

	added := make([]upstream.Transaction, 0, len(response.GetAdded()))
	for _, t := range response.GetAdded() {
		transaction, err := toTransaction(t)
		if err != nil {
			return upstream.SyncPage{}, err
		}
		added = append(added, transaction)
	}

	return upstream.SyncPage{
		Added:      added,
		NextCursor: response.GetNextCursor(),
		HasMore:    response.GetHasMore(),
	}, nil
}

func (c *Client) RemoveItem(ctx context.Context, accessToken string) error {
	request := plaidsdk.NewItemRemoveRequest(accessToken)

	_, _, err := c.api.PlaidApi.ItemRemove(ctx).ItemRemoveRequest(*request).Execute()
	if err != nil {
		return unavailable("item remove", err)
	}

	return nil
}

// toTransaction converts a Plaid transaction.
//
// Plaid reports the date as YYYY-MM-DD and the amount as a float
// where money leaving the account is positive.
func toTransaction(t plaidsdk.Transaction) (upstream.Transaction, error) {
	date, err := time.Parse(time.DateOnly, t.GetDate())
	if err != nil {
		return upstream.Transaction{}, fmt.Errorf("%w: transaction %s has an invalid date %q", upstream.ErrUnavailable, t.GetTransactionId(), t.GetDate())
	}

	pfc := t.GetPersonalFinanceCategory()

	return upstream.Transaction{
		ID:           t.GetTransactionId(),
		Amount:       decimal.NewFromFloat(t.GetAmount()),
		Date:         date,
		MerchantName: t.GetMerchantName(),
		Name:         t.GetName(),
		Category:     pfc.GetPrimary(),
		AccountID:    t.GetAccountId(),
	}, nil
}
