package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/platformops/connect-dashboard/internal/model"
)

type IssueRecordRepository interface {
	FindByID(ctx context.Context, id string) (*model.IssueRecord, error)
	FindRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, error)
	FindByAccountID(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error)
	Create(ctx context.Context, params model.CreateIssueRecordParams) (*model.IssueRecord, error)
	Count(ctx context.Context) (int, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type issueRecordRepo struct {
	db sqlxDB
}

// sqlxDB is an interface satisfied by both *sqlx.DB and *sqlx.Tx
type sqlxDB interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func NewIssueRecordRepository(db *sqlx.DB) IssueRecordRepository {
	return &issueRecordRepo{db: db}
}

func (r *issueRecordRepo) FindByID(ctx context.Context, id string) (*model.IssueRecord, error) {
	var record model.IssueRecord
	err := r.db.GetContext(ctx, &record, `
		SELECT * FROM issue_records WHERE id = $1
	`, id)
	return HandleNotFound(&record, err)
}

func (r *issueRecordRepo) FindRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, error) {
	records := []model.IssueRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM issue_records
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRecordRepo) FindByAccountID(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error) {
	records := []model.IssueRecord{}
	err := r.db.SelectContext(ctx, &records, `
		SELECT * FROM issue_records
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, accountID, limit)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *issueRecordRepo) Create(ctx context.Context, params model.CreateIssueRecordParams) (*model.IssueRecord, error) {
	var record model.IssueRecord
	err := r.db.GetContext(ctx, &record, `
		INSERT INTO issue_records (id, account_id, issue_type, status, error_message, requested_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING *
	`, params.ID, params.AccountID, params.IssueType, params.Status, params.ErrorMessage, params.RequestedBy)
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *issueRecordRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM issue_records`)
	return count, err
}

func (r *issueRecordRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM issue_records WHERE created_at < $1
	`, cutoff)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
