// Package upstream defines the contract with the financial aggregation
// provider that bank accounts are linked through.
package upstream

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrUnavailable is returned when the provider cannot be reached or
// rejects a request. Calls are not retried.
var ErrUnavailable = errors.New("the upstream provider is unavailable")

// Transaction is a transaction as reported by the provider.
type Transaction struct {
	ID           string          // Unique per provider
	Amount       decimal.Decimal // Signed, outflows are positive
	Date         time.Time
	MerchantName string
	Name         string
	Category     string // Raw provider label, e.g. FOOD_AND_DRINK
	AccountID    string // Provider account the transaction was booked on
}

// Vendor returns the merchant name, or the transaction name if the
// provider did not recognize a merchant.
func (t Transaction) Vendor() string {
	if t.MerchantName != "" {
		return t.MerchantName
	}

	return t.Name
}

// LinkToken is a short lived token the client uses to start the
// provider's account linking flow.
type LinkToken struct {
	Token      string    `json:"linkToken" example:"link-sandbox-af1a0311-da53-4636-b754-dd15cc058176"`
	Expiration time.Time `json:"expiration" example:"2024-03-01T04:00:00Z"`
}

// Exchange is the result of exchanging a public token.
type Exchange struct {
	AccessToken string
	ItemID      string
}

// Institution is the bank the user selected during linking.
type Institution struct {
	ID   string `json:"id" example:"ins_109508"`
	Name string `json:"name" example:"First Platypus Bank"`
}

// Account is the account the user selected during linking.
type Account struct {
	ID   string `json:"id" example:"BxBXxLj1m4HMXBm9WZZmCWVbPjX16EHwv99vp"`
	Name string `json:"name" example:"Plaid Checking"`
}

// SyncPage is one page of added transactions since a cursor.
type SyncPage struct {
	Added      []Transaction
	NextCursor string
	HasMore    bool
}

// Provider is the financial aggregation provider.
//
// All errors returned by implementations wrap ErrUnavailable.
type Provider interface {
	// CreateLinkToken creates a link token for the user.
	CreateLinkToken(ctx context.Context, clientUserID string) (LinkToken, error)

	// ExchangePublicToken exchanges the public token returned by the
	// linking flow for a durable access token.
	ExchangePublicToken(ctx context.Context, publicToken string) (Exchange, error)

	// SyncTransactions returns the transactions added since the cursor.
	// The empty cursor starts at the beginning of the history.
	SyncTransactions(ctx context.Context, accessToken, cursor string) (SyncPage, error)

	// RemoveItem revokes an access token.
	RemoveItem(ctx context.Context, accessToken string) error
}
