package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/expensebud/backend/internal/category"
	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExpensebudContext string

const (
	ContextURL ExpensebudContext = "expensebud-backend-url"
)

// PostgreSQL error codes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Unique constraints that surface as domain errors.
//
// sqlite reports the columns of the violated index, PostgreSQL reports
// the name of the index. Both are mapped here.
var uniqueConstraints = []struct {
	columns string
	index   string
	err     error
}{
	{"expenses.transaction_id", "idx_expense_transaction", ErrDuplicateTransaction},
	{"linked_accounts.user_id, linked_accounts.account_id", "idx_linked_account_user_account", ErrDuplicateAccount},
	{"budgets.user_id, budgets.category_id", "idx_budget_user_category", ErrBudgetAlreadyExists},
	{"users.username", "idx_user_username", ErrUsernameNotUnique},
}

// Connect opens the database and configures the connection pool.
//
// DSNs starting with postgres:// or postgresql:// use PostgreSQL, everything
// else is treated as the path of a sqlite database.
func Connect(dsn string) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	isPostgres := strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")

	var dialector gorm.Dialector
	if isPostgres {
		log.Debug().Msg("using postgresql database")
		dialector = postgres.Open(dsn)
	} else {
		log.Debug().Str("path", dsn).Msg("using sqlite database")

		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dialector = sqlite.Open(fmt.Sprintf("%s%s_pragma=foreign_keys(1)", dsn, separator))
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// sqlite only supports one writer at a time. With more connections,
	// concurrent imports fail with SQLITE_BUSY.
	if !isPostgres {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = migrate(db)
	if err != nil {
		return nil, err
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func registerCallbacks(db *gorm.DB) error {
	// Query callbacks
	err := db.Callback().Query().After("*").Register("expensebud:after_query", queryCallback)
	if err != nil {
		return err
	}

	// The general callbacks run after the specific ones so that they
	// only see errors that have not been translated
	err = db.Callback().Query().After("expensebud:after_query").Register("expensebud:after_query_general", generalCallback)
	if err != nil {
		return err
	}

	// Create callbacks
	err = db.Callback().Create().After("*").Register("expensebud:after_create", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Create().After("expensebud:after_create").Register("expensebud:after_create_general", generalCallback)
	if err != nil {
		return err
	}

	// Update callbacks
	err = db.Callback().Update().After("*").Register("expensebud:after_update", createUpdateCallback)
	if err != nil {
		return err
	}

	err = db.Callback().Update().After("expensebud:after_update").Register("expensebud:after_update_general", generalCallback)
	if err != nil {
		return err
	}

	// Delete callbacks
	err = db.Callback().Delete().After("*").Register("expensebud:after_delete", createUpdateCallback)
	if err != nil {
		return err
	}

	return db.Callback().Delete().After("expensebud:after_delete").Register("expensebud:after_delete_general", generalCallback)
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db.Statement.Table))
	}
}

// resourceName turns a table name into a human readable resource name,
// e.g. "linked_accounts" becomes "linked account".
func resourceName(table string) string {
	name := strings.ReplaceAll(table, "_", " ")

	// Replace pluralized "ies" with "y"
	match := regexp.MustCompile("ies$")
	name = match.ReplaceAllString(name, "y")

	// Remove plural "s"
	return strings.TrimRight(name, "s")
}

// createUpdateCallback inspects errors returned by the database for create,
// update and delete calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError
	if errors.As(db.Error, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			for _, c := range uniqueConstraints {
				if pgErr.ConstraintName == c.index {
					db.Error = c.err
					return
				}
			}
		case pgForeignKeyViolation:
			db.Error = ErrInvalidReference
		}
		return
	}

	msg := db.Error.Error()
	for _, c := range uniqueConstraints {
		if strings.Contains(msg, fmt.Sprintf("UNIQUE constraint failed: %s", c.columns)) {
			db.Error = c.err
			return
		}
	}

	if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		db.Error = ErrInvalidReference
	}
}

// generalCallback handles unspecified errors.
//
// For these errors, we cannot provide the user with a helpful message.
// Instead, the error is logged and we return a general message to users.
func generalCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	var pgErr *pgconn.PgError

	// "sql: database is closed" is hard-coded in the sql module, see
	// https://cs.opensource.google/go/go/+/master:src/database/sql/sql.go;l=1298;drc=0d018b49e33b1383dc0ae5cc968e800dffeeaf7d
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code
// and seeds the categories.
func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Category{}, User{}, LinkedAccount{}, Expense{}, Budget{}, MatchRule{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	for _, c := range category.All() {
		err = db.Clauses(clause.OnConflict{DoNothing: true}).Create(&Category{ID: int(c.ID), Name: c.Name}).Error
		if err != nil {
			return fmt.Errorf("error seeding category %s: %w", c.Name, err)
		}
	}

	return nil
}
