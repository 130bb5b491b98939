// Package importer turns upstream transactions into expenses.
//
// An import never creates an expense twice for the same upstream
// transaction and never drops a transaction without reporting it.
package importer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/expensebud/backend/internal/category"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/expensebud/backend/internal/importer")

// ExpenseStore persists imported expenses.
type ExpenseStore interface {
	ExpenseFinder
	Create(ctx context.Context, expense *models.Expense) error
}

// AccountStore resolves linked accounts.
type AccountStore interface {
	Get(ctx context.Context, userID, id uuid.UUID) (models.LinkedAccount, error)
}

// RuleStore lists the match rules of a user ordered by priority.
type RuleStore interface {
	List(ctx context.Context, userID uuid.UUID) ([]models.MatchRule, error)
}

// FailedTransaction is a transaction that could not be imported.
type FailedTransaction struct {
	TransactionID string `json:"transactionId" example:"lPNjeW1nR6CDn5okmGQ6hEpMo4lLNoSrzqDje"`
	RawCategory   string `json:"rawCategory" example:"GENERAL_MERCHANDISE"`
	Reason        string `json:"reason" example:"category does not exist: \"GENERAL_MERCHANDISE\""`
}

// ImportResult is the outcome of an import.
type ImportResult struct {
	Created          []uuid.UUID         `json:"created"`          // IDs of the created expenses
	SkippedDuplicate int                 `json:"skippedDuplicate"` // Number of transactions that had already been imported
	FailedUnmapped   []FailedTransaction `json:"failedUnmapped"`   // Transactions rejected because their category is unknown
	FailedInvalid    []FailedTransaction `json:"failedInvalid"`    // Transactions that cannot be stored as an expense, e.g. with an amount of zero

	categories map[int]struct{}
}

func newImportResult() ImportResult {
	return ImportResult{
		Created:        make([]uuid.UUID, 0),
		FailedUnmapped: make([]FailedTransaction, 0),
		FailedInvalid:  make([]FailedTransaction, 0),
		categories:     make(map[int]struct{}),
	}
}

// Categories returns the IDs of all categories that expenses were created in.
func (r ImportResult) Categories() []int {
	ids := make([]int, 0, len(r.categories))
	for id := range r.categories {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	return ids
}

// merge adds the outcomes of another result.
func (r *ImportResult) merge(other ImportResult) {
	r.Created = append(r.Created, other.Created...)
	r.SkippedDuplicate += other.SkippedDuplicate
	r.FailedUnmapped = append(r.FailedUnmapped, other.FailedUnmapped...)
	r.FailedInvalid = append(r.FailedInvalid, other.FailedInvalid...)

	for id := range other.categories {
		r.categories[id] = struct{}{}
	}
}

// Pipeline imports batches of upstream transactions.
type Pipeline struct {
	expenses ExpenseStore
	accounts AccountStore
	rules    RuleStore
	guard    *DedupGuard
	policy   Policy
}

func NewPipeline(expenses ExpenseStore, accounts AccountStore, rules RuleStore, policy Policy) *Pipeline {
	return &Pipeline{
		expenses: expenses,
		accounts: accounts,
		rules:    rules,
		guard:    NewDedupGuard(expenses),
		policy:   policy,
	}
}

// ImportBatch imports transactions of a linked account as expenses of the user.
//
// Transactions are processed in order. Problems with a single transaction
// are reported in the result and do not stop the import. An error is only
// returned if the linked account does not exist or storage fails, in which
// case the expenses created so far are kept. Importing a batch again
// creates nothing and reports all transactions as skipped.
func (p *Pipeline) ImportBatch(ctx context.Context, userID, linkedAccountID uuid.UUID, transactions []upstream.Transaction) (ImportResult, error) {
	ctx, span := tracer.Start(ctx, "importer.ImportBatch", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("linked_account.id", linkedAccountID.String()),
		attribute.Int("transactions", len(transactions)),
	))
	defer span.End()

	result, err := p.importBatch(ctx, userID, linkedAccountID, transactions)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "import failed")
		return ImportResult{}, err
	}

	span.SetAttributes(
		attribute.Int("created", len(result.Created)),
		attribute.Int("skipped_duplicate", result.SkippedDuplicate),
		attribute.Int("failed_unmapped", len(result.FailedUnmapped)),
		attribute.Int("failed_invalid", len(result.FailedInvalid)),
	)

	log.Ctx(ctx).Info().
		Str("user", userID.String()).
		Str("linked_account", linkedAccountID.String()).
		Int("created", len(result.Created)).
		Int("skipped_duplicate", result.SkippedDuplicate).
		Int("failed_unmapped", len(result.FailedUnmapped)).
		Int("failed_invalid", len(result.FailedInvalid)).
		Msg("imported transactions")

	return result, nil
}

func (p *Pipeline) importBatch(ctx context.Context, userID, linkedAccountID uuid.UUID, transactions []upstream.Transaction) (ImportResult, error) {
	account, err := p.accounts.Get(ctx, userID, linkedAccountID)
	if err != nil {
		return ImportResult{}, err
	}

	rules, err := p.rules.List(ctx, userID)
	if err != nil {
		return ImportResult{}, err
	}

	result := newImportResult()
	for _, transaction := range transactions {
		err := p.importTransaction(ctx, account, rules, transaction, &result)
		if err != nil {
			return ImportResult{}, fmt.Errorf("importing transaction %s: %w", transaction.ID, err)
		}
	}

	return result, nil
}

// importTransaction imports a single transaction and records the outcome.
// Errors returned are systemic.
func (p *Pipeline) importTransaction(ctx context.Context, account models.LinkedAccount, rules []models.MatchRule, transaction upstream.Transaction, result *ImportResult) error {
	failed := func(reason string) FailedTransaction {
		return FailedTransaction{
			TransactionID: transaction.ID,
			RawCategory:   transaction.Category,
			Reason:        reason,
		}
	}

	// Without an ID the expense would be stored as a manual one and
	// created again on every import
	if strings.TrimSpace(transaction.ID) == "" {
		result.FailedInvalid = append(result.FailedInvalid, failed("the transaction has no ID"))
		transactionsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil
	}

	if transaction.AccountID != "" && transaction.AccountID != account.AccountID {
		result.FailedInvalid = append(result.FailedInvalid, failed("the transaction belongs to a different account"))
		transactionsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil
	}

	categoryID, err := p.policy.resolve(transaction.Category)
	if errors.Is(err, category.ErrUnmappableCategory) {
		result.FailedUnmapped = append(result.FailedUnmapped, failed(err.Error()))
		transactionsTotal.WithLabelValues(outcomeUnmappable).Inc()
		return nil
	}

	duplicate, err := p.guard.IsDuplicate(ctx, transaction.ID)
	if err != nil {
		return err
	}

	if duplicate {
		result.SkippedDuplicate++
		transactionsTotal.WithLabelValues(outcomeDuplicate).Inc()
		return nil
	}

	vendor := transaction.Vendor()
	transactionID := transaction.ID
	linkedAccountID := account.ID

	expense := models.Expense{
		UserID:          account.UserID,
		Amount:          transaction.Amount.Abs().Round(2),
		Date:            transaction.Date,
		Vendor:          vendor,
		Description:     &transaction.Name,
		CategoryID:      match(rules, vendor, int(categoryID)),
		TransactionID:   &transactionID,
		LinkedAccountID: &linkedAccountID,
	}

	err = p.expenses.Create(ctx, &expense)
	switch {
	case errors.Is(err, models.ErrDuplicateTransaction):
		// Another import created the expense after the pre-check
		result.SkippedDuplicate++
		transactionsTotal.WithLabelValues(outcomeDuplicate).Inc()
		return nil
	case errors.Is(err, models.ErrExpenseAmountNotPositive), errors.Is(err, models.ErrVendorEmpty):
		result.FailedInvalid = append(result.FailedInvalid, failed(err.Error()))
		transactionsTotal.WithLabelValues(outcomeInvalid).Inc()
		return nil
	case err != nil:
		return err
	}

	result.Created = append(result.Created, expense.ID)
	result.categories[expense.CategoryID] = struct{}{}
	transactionsTotal.WithLabelValues(outcomeCreated).Inc()

	return nil
}
