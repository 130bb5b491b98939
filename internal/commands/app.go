package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/expensebud/backend/internal/auth"
	"github.com/expensebud/backend/internal/config"
	"github.com/expensebud/backend/internal/controllers"
	"github.com/expensebud/backend/internal/importer"
	"github.com/expensebud/backend/internal/link"
	"github.com/expensebud/backend/internal/models"
	"github.com/expensebud/backend/internal/notify"
	"github.com/expensebud/backend/internal/store"
	"github.com/expensebud/backend/internal/upstream"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"gorm.io/gorm"
)

// openDatabase connects to the database and migrates the schema.
//
// For sqlite, the directory of the database file is created.
func openDatabase(dsn string) (*gorm.DB, error) {
	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
	if !isPostgres && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		path, _, _ := strings.Cut(dsn, "?")

		err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
		if err != nil {
			return nil, fmt.Errorf("creating data directory: %w", err)
		}
	}

	return models.Connect(dsn)
}

func closeDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Error().Err(err).Msg("could not get database connection for closing")
		return
	}

	if err := sqlDB.Close(); err != nil {
		log.Error().Err(err).Msg("could not close database connection")
	}
}

// newPublisher returns the AMQP publisher if a broker is configured.
// Without a broker, budget alerts are only logged.
func newPublisher(cfg config.Config) (notify.Publisher, func(), error) {
	if cfg.AMQPURL == "" {
		log.Info().Msg("AMQP_URL is not set, budget alerts are logged only")
		return notify.LogPublisher{}, func() {}, nil
	}

	publisher, err := notify.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	if err != nil {
		return nil, func() {}, err
	}

	return publisher, func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("could not close message broker connection")
		}
	}, nil
}

// newSyncer wires the import pipeline for a provider.
func newSyncer(cfg config.Config, db *gorm.DB, provider upstream.Provider, publisher notify.Publisher) *importer.Syncer {
	expenses := store.NewExpenses(db)
	accounts := store.NewLinkedAccounts(db)

	pipeline := importer.NewPipeline(expenses, accounts, store.NewMatchRules(db), cfg.ImportPolicy)
	watcher := notify.NewWatcher(store.NewBudgets(db), publisher)

	return importer.NewSyncer(accounts, provider, pipeline, watcher)
}

// newController wires all components the API handlers need.
func newController(cfg config.Config, db *gorm.DB, provider upstream.Provider, publisher notify.Publisher, revoker controllers.Revoker) *controllers.Controller {
	accounts := store.NewLinkedAccounts(db)

	return &controllers.Controller{
		Users:       store.NewUsers(db),
		Expenses:    store.NewExpenses(db),
		Budgets:     store.NewBudgets(db),
		Accounts:    accounts,
		MatchRules:  store.NewMatchRules(db),
		Session:     link.NewSession(accounts, provider),
		Syncer:      newSyncer(cfg, db, provider, publisher),
		Revoker:     revoker,
		Tokens:      auth.NewTokens(cfg.JWTSecret),
		BcryptCost:  cfg.BcryptCost,
		AuthLimiter: rate.NewLimiter(cfg.RateLimit, cfg.RateBurst),
	}
}
