package service

import (
	"context"
	"encoding/json"
	"errors"

	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/stripe"
)

// Narrow views of the Stripe client, one per service, so tests can substitute them.

type AccountsAPI interface {
	ListAccounts(ctx context.Context, params stripe.ListAccountsParams) (*stripe.AccountList, error)
}

type SessionsAPI interface {
	CreateAccountSession(ctx context.Context, params stripe.AccountSessionParams) (*stripe.AccountSession, error)
}

type IssuesAPI interface {
	Configured() bool
	TriggerMerchantIssue(ctx context.Context, accountID, issueType string) (json.RawMessage, error)
}

const secretKeyMissing = "Stripe secret key not configured"

// providerError maps a Stripe client error onto the application taxonomy. The
// provider's own message is kept when it sent one.
func providerError(err error, fallback string) error {
	if errors.Is(err, stripe.ErrNotConfigured) {
		return apperrors.Config(secretKeyMissing).WithCause(err)
	}

	var apiErr *stripe.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apperrors.Upstream(apiErr.Message, err)
	}
	return apperrors.Upstream(fallback, err)
}
