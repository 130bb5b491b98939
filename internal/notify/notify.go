// Package notify informs users when their spending exceeds a budget.
package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/types"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// BudgetAlert is published when the spend in a category exceeds its budget.
type BudgetAlert struct {
	UserID     uuid.UUID       `json:"userId"`
	BudgetID   uuid.UUID       `json:"budgetId"`
	CategoryID int             `json:"categoryId"`
	Month      types.Month     `json:"month"`
	Amount     decimal.Decimal `json:"amount"`
	Spent      decimal.Decimal `json:"spent"`
	Message    string          `json:"message"`
}

// Publisher delivers budget alerts.
type Publisher interface {
	Publish(ctx context.Context, alert BudgetAlert) error
}

// LogPublisher writes budget alerts to the log.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, alert BudgetAlert) error {
	log.Ctx(ctx).Warn().
		Str("user", alert.UserID.String()).
		Str("budget", alert.BudgetID.String()).
		Int("category", alert.CategoryID).
		Str("month", alert.Month.String()).
		Str("amount", alert.Amount.String()).
		Str("spent", alert.Spent.String()).
		Msg(alert.Message)

	return nil
}

// BudgetReader reads budgets together with their spend.
type BudgetReader interface {
	List(ctx context.Context, userID uuid.UUID, categories ...int) ([]models.Budget, error)
	WithSpend(ctx context.Context, budget models.Budget, month types.Month) (store.BudgetWithSpend, error)
}

// Watcher checks budgets after imports and publishes alerts for
// budgets whose spend in the current month exceeds their amount.
type Watcher struct {
	budgets   BudgetReader
	publisher Publisher
	now       func() time.Time
}

func NewWatcher(budgets BudgetReader, publisher Publisher) *Watcher {
	return &Watcher{
		budgets:   budgets,
		publisher: publisher,
		now:       time.Now,
	}
}

// AfterImport checks the user's budgets for the given categories.
//
// Failures are logged and never returned since alerts must not
// fail the import they are triggered by.
func (w *Watcher) AfterImport(ctx context.Context, userID uuid.UUID, categories []int) {
	alerts, err := w.Check(ctx, userID, categories...)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("user", userID.String()).Msg("could not check budgets")
		return
	}

	for _, alert := range alerts {
		if err := w.publisher.Publish(ctx, alert); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("budget", alert.BudgetID.String()).Msg("could not publish budget alert")
		}
	}
}

// Check returns alerts for all of the user's budgets in the given
// categories that are exceeded in the current month.
func (w *Watcher) Check(ctx context.Context, userID uuid.UUID, categories ...int) ([]BudgetAlert, error) {
	if len(categories) == 0 {
		return nil, nil
	}

	budgets, err := w.budgets.List(ctx, userID, categories...)
	if err != nil {
		return nil, err
	}

	month := types.MonthOf(w.now())
	alerts := make([]BudgetAlert, 0)

	for _, budget := range budgets {
		b, err := w.budgets.WithSpend(ctx, budget, month)
		if err != nil {
			return nil, err
		}

		if !b.Spent.GreaterThan(b.Amount) {
			continue
		}

		alerts = append(alerts, BudgetAlert{
			UserID:     userID,
			BudgetID:   b.ID,
			CategoryID: b.CategoryID,
			Month:      month,
			Amount:     b.Amount,
			Spent:      b.Spent,
			Message:    fmt.Sprintf("spent %s of %s budgeted in %s", b.Spent.StringFixed(2), b.Amount.StringFixed(2), month),
		})
	}

	return alerts, nil
}
