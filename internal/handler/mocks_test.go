package handler

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"github.com/platformops/connect-dashboard/internal/model"
)

type mockDirectory struct {
	mock.Mock
}

func (m *mockDirectory) ListAccounts(ctx context.Context) ([]model.ConnectedAccount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ConnectedAccount), args.Error(1)
}

func (m *mockDirectory) GetAccount(ctx context.Context, id string) (*model.ConnectedAccount, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConnectedAccount), args.Error(1)
}

type mockSessions struct {
	mock.Mock
}

func (m *mockSessions) CreateSession(ctx context.Context, accountID string) (*model.ClientSession, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ClientSession), args.Error(1)
}

type mockIssues struct {
	mock.Mock
}

func (m *mockIssues) TriggerIssue(ctx context.Context, accountID, requestedBy string) (json.RawMessage, error) {
	args := m.Called(ctx, accountID, requestedBy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockIssues) ListRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]model.IssueRecord), args.Int(1), args.Error(2)
}

func (m *mockIssues) ListForAccount(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error) {
	args := m.Called(ctx, accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IssueRecord), args.Error(1)
}

func (m *mockIssues) GetIssue(ctx context.Context, id string) (*model.IssueRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IssueRecord), args.Error(1)
}

func strPtr(s string) *string { return &s }

// policyAccounts is the two-account scenario: acct_1 has not submitted details,
// acct_2 has.
func policyAccounts() []model.ConnectedAccount {
	return []model.ConnectedAccount{
		{ID: "acct_1", DisplayName: strPtr("Pending Co"), DetailsSubmitted: false, CurrentlyDue: []string{"external_account"}, PastDue: []string{}},
		{ID: "acct_2", DisplayName: strPtr("Ready Co"), DetailsSubmitted: true, ChargesEnabled: true, PayoutsEnabled: true, CurrentlyDue: []string{}, PastDue: []string{}},
	}
}
