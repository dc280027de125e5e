package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/config"
	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/model"
	"github.com/platformops/connect-dashboard/internal/stripe"
)

const listAccountsFailed = "Failed to fetch connected accounts"

type AccountService struct {
	api AccountsAPI
}

func NewAccountService(api AccountsAPI) *AccountService {
	return &AccountService{api: api}
}

// ListAccounts walks every page of the provider listing and returns the accounts
// in provider order. A failure on any page discards what was already fetched.
func (s *AccountService) ListAccounts(ctx context.Context) ([]model.ConnectedAccount, error) {
	start := time.Now()
	accounts := make([]model.ConnectedAccount, 0)
	params := stripe.ListAccountsParams{Limit: config.ProviderMaxPageSize}
	pages := 0

	for {
		page, err := s.api.ListAccounts(ctx, params)
		if err != nil {
			log.Error().
				Err(err).
				Int("page", pages+1).
				Int("fetched", len(accounts)).
				Msg("failed to list connected accounts")
			return nil, providerError(err, listAccountsFailed)
		}
		pages++

		for _, acct := range page.Data {
			accounts = append(accounts, toConnectedAccount(acct))
		}

		if !page.HasMore {
			break
		}
		if len(page.Data) == 0 {
			log.Warn().Int("page", pages).Msg("provider reported more accounts but returned an empty page")
			break
		}
		params.StartingAfter = page.Data[len(page.Data)-1].ID
	}

	log.Debug().
		Int("count", len(accounts)).
		Int("pages", pages).
		Dur("elapsed", time.Since(start)).
		Msg("listed connected accounts")

	return accounts, nil
}

// GetAccount resolves one account from the full listing. There is no
// single-account fetch: existence and status come from the same code path.
func (s *AccountService) GetAccount(ctx context.Context, id string) (*model.ConnectedAccount, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	return FindAccount(accounts, id)
}

// FindAccount returns the account with the given id, or a NotFound error.
func FindAccount(accounts []model.ConnectedAccount, id string) (*model.ConnectedAccount, error) {
	for i := range accounts {
		if accounts[i].ID == id {
			account := accounts[i]
			return &account, nil
		}
	}
	return nil, apperrors.NotFound("Account")
}

func toConnectedAccount(acct stripe.Account) model.ConnectedAccount {
	account := model.ConnectedAccount{
		ID:               acct.ID,
		ChargesEnabled:   acct.ChargesEnabled,
		PayoutsEnabled:   acct.PayoutsEnabled,
		DetailsSubmitted: acct.DetailsSubmitted,
		CurrentlyDue:     []string{},
		PastDue:          []string{},
	}

	if acct.BusinessProfile != nil && acct.BusinessProfile.Name != nil && *acct.BusinessProfile.Name != "" {
		name := *acct.BusinessProfile.Name
		account.DisplayName = &name
	}

	if req := acct.Requirements; req != nil {
		if req.CurrentlyDue != nil {
			account.CurrentlyDue = req.CurrentlyDue
		}
		if req.PastDue != nil {
			account.PastDue = req.PastDue
		}
		if req.DisabledReason != nil && *req.DisabledReason != "" {
			reason := *req.DisabledReason
			account.DisabledReason = &reason
		}
	}

	return account
}
