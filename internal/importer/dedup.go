package importer

import (
	"context"

	"github.com/expensebud/backend/internal/models"
)

// ExpenseFinder looks up imported expenses by their upstream transaction ID.
type ExpenseFinder interface {
	FindByTransactionID(ctx context.Context, transactionID string) (*models.Expense, error)
}

// DedupGuard detects transactions that have already been imported.
//
// The check is an optimization only. The unique index on the upstream
// transaction ID is what guarantees that no transaction is imported twice.
type DedupGuard struct {
	expenses ExpenseFinder
}

func NewDedupGuard(expenses ExpenseFinder) *DedupGuard {
	return &DedupGuard{expenses: expenses}
}

// IsDuplicate reports if an expense for the transaction exists.
func (g *DedupGuard) IsDuplicate(ctx context.Context, transactionID string) (bool, error) {
	expense, err := g.expenses.FindByTransactionID(ctx, transactionID)
	if err != nil {
		return false, err
	}

	return expense != nil, nil
}
