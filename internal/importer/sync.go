package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

// SyncAccountStore resolves linked accounts and stores their sync cursor.
type SyncAccountStore interface {
	AccountStore
	GetByID(ctx context.Context, id uuid.UUID) (models.LinkedAccount, error)
	UpdateCursor(ctx context.Context, id uuid.UUID, cursor string) error
}

// ImportHook is called after transactions have been imported.
type ImportHook interface {
	AfterImport(ctx context.Context, userID uuid.UUID, categories []int)
}

// Syncer fetches new transactions of linked accounts from the provider
// and imports them.
//
// Syncs of the same linked account are never run concurrently. A sync
// requested while another one for the same account is running waits
// for it and shares its result.
type Syncer struct {
	accounts SyncAccountStore
	provider upstream.Provider
	pipeline *Pipeline
	hooks    []ImportHook
	group    singleflight.Group
}

func NewSyncer(accounts SyncAccountStore, provider upstream.Provider, pipeline *Pipeline, hooks ...ImportHook) *Syncer {
	return &Syncer{
		accounts: accounts,
		provider: provider,
		pipeline: pipeline,
		hooks:    hooks,
	}
}

// Sync imports all transactions added to the user's linked account
// since the last sync.
func (s *Syncer) Sync(ctx context.Context, userID, linkedAccountID uuid.UUID) (ImportResult, error) {
	key := fmt.Sprintf("%s/%s", userID, linkedAccountID)

	// The running sync is shared by all callers and must not be
	// canceled when the caller that started it goes away
	ch := s.group.DoChan(key, func() (any, error) {
		return s.sync(context.WithoutCancel(ctx), userID, linkedAccountID)
	})

	select {
	case <-ctx.Done():
		return ImportResult{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return ImportResult{}, res.Err
		}

		if res.Shared {
			log.Ctx(ctx).Debug().Str("linked_account", linkedAccountID.String()).Msg("shared result of a running sync")
		}

		return res.Val.(ImportResult), nil
	}
}

// SyncByID syncs a linked account regardless of its owner.
//
// This is only meant for operator tooling where no user is authenticated.
func (s *Syncer) SyncByID(ctx context.Context, linkedAccountID uuid.UUID) (ImportResult, error) {
	account, err := s.accounts.GetByID(ctx, linkedAccountID)
	if err != nil {
		return ImportResult{}, err
	}

	return s.Sync(ctx, account.UserID, account.ID)
}

func (s *Syncer) sync(ctx context.Context, userID, linkedAccountID uuid.UUID) (result ImportResult, err error) {
	ctx, span := tracer.Start(ctx, "importer.Sync", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("linked_account.id", linkedAccountID.String()),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		label := "ok"
		if err != nil {
			label = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, "sync failed")
		}
		syncDuration.WithLabelValues(label).Observe(time.Since(start).Seconds())
	}()

	account, err := s.accounts.Get(ctx, userID, linkedAccountID)
	if err != nil {
		return ImportResult{}, err
	}

	result = newImportResult()
	cursor := account.Cursor

	for {
		page, err := s.provider.SyncTransactions(ctx, account.AccessToken, cursor)
		if err != nil {
			return ImportResult{}, err
		}

		// The provider returns the transactions of all accounts
		// that were linked together with this one
		transactions := make([]upstream.Transaction, 0, len(page.Added))
		for _, t := range page.Added {
			if t.AccountID == account.AccountID {
				transactions = append(transactions, t)
			}
		}

		batch, err := s.pipeline.ImportBatch(ctx, userID, linkedAccountID, transactions)
		if err != nil {
			return ImportResult{}, err
		}
		result.merge(batch)

		// The cursor is only advanced once the page has been imported so that
		// a failed sync is resumed from the last complete page
		cursor = page.NextCursor
		err = s.accounts.UpdateCursor(ctx, account.ID, cursor)
		if err != nil {
			return ImportResult{}, err
		}

		if !page.HasMore {
			break
		}
	}

	if len(result.Created) > 0 {
		for _, hook := range s.hooks {
			hook.AfterImport(ctx, userID, result.Categories())
		}
	}

	return result, nil
}
