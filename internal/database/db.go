package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/platformops/connect-dashboard/internal/config"
)

// schema holds the operator audit table. Connected accounts are never stored.
const schema = `
CREATE TABLE IF NOT EXISTS issue_records (
	id            UUID PRIMARY KEY,
	account_id    TEXT NOT NULL,
	issue_type    TEXT NOT NULL,
	status        TEXT NOT NULL,
	error_message TEXT,
	requested_by  TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_issue_records_created_at ON issue_records (created_at DESC);
CREATE INDEX IF NOT EXISTS idx_issue_records_account_id ON issue_records (account_id);
`

type DB struct {
	*sqlx.DB
}

func Connect(databaseURL string) (*DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(config.DBMaxOpenConns)
	db.SetMaxIdleConns(config.DBMaxIdleConns)
	db.SetConnMaxLifetime(config.DBConnMaxLifetime)

	return &DB{db}, nil
}

func (db *DB) Ping(ctx context.Context) error {
	return db.PingContext(ctx)
}

func (db *DB) Close() error {
	return db.DB.Close()
}

// Migrate creates the tables the service needs if they do not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
