// Package link connects bank accounts through the upstream provider.
//
// Linking runs in three steps. CreateLinkToken starts the provider's
// linking flow on the client. The client returns with a public token,
// which ExchangePublicToken trades for a durable access token before
// the linked account is registered. Nothing is persisted before the
// account is registered.
package link

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/expensebud/backend/internal/link")

// AccountStore persists linked accounts.
type AccountStore interface {
	Create(ctx context.Context, account *models.LinkedAccount) error
	FindByUserAndAccountID(ctx context.Context, userID uuid.UUID, accountID string) (*models.LinkedAccount, error)
}

// Session links accounts of users.
type Session struct {
	accounts AccountStore
	provider upstream.Provider
}

func NewSession(accounts AccountStore, provider upstream.Provider) *Session {
	return &Session{
		accounts: accounts,
		provider: provider,
	}
}

// CreateLinkToken creates a link token for the user.
//
// Provider failures are returned as upstream.ErrUnavailable.
func (s *Session) CreateLinkToken(ctx context.Context, userID uuid.UUID) (upstream.LinkToken, error) {
	ctx, span := tracer.Start(ctx, "link.CreateLinkToken", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	token, err := s.provider.CreateLinkToken(ctx, userID.String())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "link token creation failed")
		return upstream.LinkToken{}, err
	}

	return token, nil
}

// ExchangePublicToken exchanges the public token returned by the linking
// flow and registers the linked account.
//
// If the user has already linked the account, models.ErrDuplicateAccount
// is returned without contacting the provider. Provider failures are
// returned as upstream.ErrUnavailable.
func (s *Session) ExchangePublicToken(ctx context.Context, userID uuid.UUID, publicToken string, institution upstream.Institution, account upstream.Account) (models.LinkedAccount, error) {
	ctx, span := tracer.Start(ctx, "link.ExchangePublicToken", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("institution.id", institution.ID),
	))
	defer span.End()

	linked, err := s.exchangePublicToken(ctx, userID, publicToken, institution, account)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "public token exchange failed")
		return models.LinkedAccount{}, err
	}

	log.Ctx(ctx).Info().
		Str("user", userID.String()).
		Str("linked_account", linked.ID.String()).
		Str("institution", institution.Name).
		Msg("linked account")

	return linked, nil
}

func (s *Session) exchangePublicToken(ctx context.Context, userID uuid.UUID, publicToken string, institution upstream.Institution, account upstream.Account) (models.LinkedAccount, error) {
	existing, err := s.accounts.FindByUserAndAccountID(ctx, userID, strings.TrimSpace(account.ID))
	if err != nil {
		return models.LinkedAccount{}, err
	}

	if existing != nil {
		return models.LinkedAccount{}, models.ErrDuplicateAccount
	}

	exchange, err := s.provider.ExchangePublicToken(ctx, publicToken)
	if err != nil {
		return models.LinkedAccount{}, err
	}

	linked := models.LinkedAccount{
		UserID:          userID,
		AccessToken:     exchange.AccessToken,
		ItemID:          exchange.ItemID,
		AccountID:       account.ID,
		InstitutionID:   institution.ID,
		InstitutionName: institution.Name,
		AccountType:     account.Name,
	}

	// A concurrent exchange for the same account fails here
	// with models.ErrDuplicateAccount
	err = s.accounts.Create(ctx, &linked)
	if err != nil {
		return models.LinkedAccount{}, err
	}

	return linked, nil
}

// fingerprint identifies an access token in logs without revealing it.
func fingerprint(accessToken string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(accessToken)))[:12]
}
