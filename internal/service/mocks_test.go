package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/platformops/connect-dashboard/internal/model"
	"github.com/platformops/connect-dashboard/internal/stripe"
)

type mockAccountsAPI struct {
	mock.Mock
}

func (m *mockAccountsAPI) ListAccounts(ctx context.Context, params stripe.ListAccountsParams) (*stripe.AccountList, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.AccountList), args.Error(1)
}

type mockSessionsAPI struct {
	mock.Mock
}

func (m *mockSessionsAPI) CreateAccountSession(ctx context.Context, params stripe.AccountSessionParams) (*stripe.AccountSession, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.AccountSession), args.Error(1)
}

type mockIssuesAPI struct {
	mock.Mock
}

func (m *mockIssuesAPI) Configured() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *mockIssuesAPI) TriggerMerchantIssue(ctx context.Context, accountID, issueType string) (json.RawMessage, error) {
	args := m.Called(ctx, accountID, issueType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type mockIssueRepo struct {
	mock.Mock
}

func (m *mockIssueRepo) FindByID(ctx context.Context, id string) (*model.IssueRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssueRecord), args.Error(1)
}

func (m *mockIssueRepo) FindRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssueRecord), args.Error(1)
}

func (m *mockIssueRepo) FindByAccountID(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssueRecord), args.Error(1)
}

func (m *mockIssueRepo) Create(ctx context.Context, params model.CreateIssueRecordParams) (*model.IssueRecord, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssueRecord), args.Error(1)
}

func (m *mockIssueRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockIssueRepo) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}
