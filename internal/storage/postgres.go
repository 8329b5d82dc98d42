package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/fittrack/fittrack/internal/apierrors"
)

// pgUniqueViolation is the SQLSTATE code Postgres reports for a violated
// unique constraint.
const pgUniqueViolation = "23505"

// Connect initializes the PostgreSQL database connection
func Connect(dsn string, maxConnections int) (*bun.DB, error) {
	if maxConnections <= 0 {
		maxConnections = 10
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	sqldb.SetMaxOpenConns(maxConnections)
	sqldb.SetMaxIdleConns(maxConnections / 2)
	sqldb.SetConnMaxLifetime(time.Hour)

	db := bun.NewDB(sqldb, pgdialect.New())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

// CreateTables creates the tables for the given models if they do not exist.
// There is no migration mechanism beyond this.
func CreateTables(ctx context.Context, db *bun.DB, models ...interface{}) error {
	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create table for model %T: %w", model, err)
		}
	}

	return nil
}

// RunWrite executes fn inside a transaction. On a uniqueness-constraint
// violation the transaction is rolled back and a Conflict carrying conflictMsg
// is returned instead of the driver error. Which constraint fired is not
// distinguished.
func RunWrite(ctx context.Context, db *bun.DB, conflictMsg string, fn func(ctx context.Context, tx bun.Tx) error) error {
	err := db.RunInTx(ctx, &sql.TxOptions{}, fn)
	if err != nil {
		if IsDuplicateKey(err) {
			return apierrors.Conflict(conflictMsg)
		}
		return err
	}
	return nil
}

// IsDuplicateKey reports whether err is a unique-constraint violation
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}

	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) && pgErr.Field('C') == pgUniqueViolation {
		return true
	}

	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
