package models

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	go_sqlite "github.com/glebarez/go-sqlite"
	"github.com/glebarez/sqlite"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

type ContextKey string

const (
	DBContextURL ContextKey = "habitat-fund-url"
)

// PostgresDialect is the name gorm reports for the PostgreSQL dialector.
const PostgresDialect = "postgres"

// Connect opens the SQLite database and configures the connection pool.
func Connect(dsn string) error {
	// Migration with foreign keys disabled since sqlite does not support
	// ALTER COLUMN. Tables are copied, dropped and recreated instead.
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.Close()

	// Now, reconnect with foreign keys enabled
	dsn = fmt.Sprintf("%s?_pragma=foreign_keys(1)", dsn)
	db, err = gorm.Open(sqlite.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err = db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports a single writer. Serializing all access
	// through one connection prevents SQLITE_BUSY errors and makes every
	// transaction a single-writer transaction.
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	return use(db)
}

// ConnectPostgres connects to a PostgreSQL database.
//
// PostgreSQL supports row level locking, so concurrent donations to the
// same habitat are serialized with SELECT ... FOR UPDATE in addition to
// the optimistic version check.
func ConnectPostgres(dsn string) error {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	err = migrate(db)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database object: %w", err)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetMaxOpenConns(10)

	return use(db)
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}
}

// use registers the error callbacks and sets the exported DB variable.
func use(db *gorm.DB) error {
	callbacks := []struct {
		processor interface {
			Register(string, func(*gorm.DB)) error
		}
		name string
		fn   func(*gorm.DB)
	}{
		{db.Callback().Query().After("*"), "habitat_fund:after_query", queryCallback},
		{db.Callback().Query().After("*"), "habitat_fund:after_query_general", generalCallback},
		{db.Callback().Create().After("*"), "habitat_fund:after_create", createUpdateCallback},
		{db.Callback().Create().After("*"), "habitat_fund:after_create_general", generalCallback},
		{db.Callback().Update().After("*"), "habitat_fund:after_update", createUpdateCallback},
		{db.Callback().Update().After("*"), "habitat_fund:after_update_general", generalCallback},
		{db.Callback().Delete().After("*"), "habitat_fund:after_delete_general", generalCallback},
		{db.Callback().Raw().After("*"), "habitat_fund:after_raw_general", generalCallback},
	}

	for _, c := range callbacks {
		err := c.processor.Register(c.name, c.fn)
		if err != nil {
			return err
		}
	}

	DB = db
	return nil
}

// queryCallback replaces the generic "no record" error with a more user
// friendly one
func queryCallback(db *gorm.DB) {
	if errors.Is(db.Error, gorm.ErrRecordNotFound) {
		db.Error = fmt.Errorf("%w %s matching your query", ErrResourceNotFound, resourceName(db.Statement.Table))
	}
}

var pluralIes = regexp.MustCompile("ies$")

// resourceName derives a human readable resource name from a table name.
func resourceName(table string) string {
	name := strings.ReplaceAll(table, "_", " ")
	name = pluralIes.ReplaceAllString(name, "y")
	return strings.TrimSuffix(name, "s")
}

// createUpdateCallback inspects errors returned by the database for create
// and update calls and replaces them with user friendly ones
func createUpdateCallback(db *gorm.DB) {
	if db.Error == nil {
		return
	}

	msg := db.Error.Error()

	// SQLite reports the columns, PostgreSQL the index name
	if strings.Contains(msg, "UNIQUE constraint failed: habitats.name") || strings.Contains(msg, "idx_habitats_name") {
		db.Error = ErrHabitatNameNotUnique
	}

	if strings.Contains(msg, "UNIQUE constraint failed: clients.username") || strings.Contains(msg, "idx_clients_username") {
		db.Error = ErrClientUsernameNotUnique
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

	// "sql: database is closed" is hard-coded in the sql module
	if db.Error.Error() == "sql: database is closed" || reflect.TypeOf(db.Error) == reflect.TypeOf(&go_sqlite.Error{}) || errors.As(db.Error, &pgErr) {
		log.Error().Msgf("%T: %v", db.Error, db.Error.Error())
		db.Error = ErrGeneral
	}
}

// migrate migrates all models to the schema defined in the code.
func migrate(db *gorm.DB) (err error) {
	err = db.AutoMigrate(Habitat{}, Client{}, Animal{}, Donation{}, Allocation{})
	if err != nil {
		return fmt.Errorf("error during DB migration: %w", err)
	}

	return nil
}
