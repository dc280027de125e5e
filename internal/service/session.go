package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/model"
	"github.com/platformops/connect-dashboard/internal/stripe"
)

const createSessionFailed = "Failed to create account session"

// SessionService mints client sessions for the embedded component SDK. It keeps
// no state: the SDK calls back whenever it needs a fresh secret and every call
// mints a new session.
type SessionService struct {
	api SessionsAPI
}

func NewSessionService(api SessionsAPI) *SessionService {
	return &SessionService{api: api}
}

func (s *SessionService) CreateSession(ctx context.Context, accountID string) (*model.ClientSession, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apperrors.MissingRequired("Account ID")
	}

	session, err := s.api.CreateAccountSession(ctx, stripe.AccountSessionParams{
		Account:    accountID,
		Components: model.SessionComponents(),
	})
	if err != nil {
		log.Error().Err(err).Str("accountId", accountID).Msg("failed to create account session")
		return nil, providerError(err, createSessionFailed)
	}

	log.Info().Str("accountId", accountID).Msg("account session created")

	return &model.ClientSession{
		AccountID:         accountID,
		Secret:            session.ClientSecret,
		EnabledComponents: model.SessionComponents(),
	}, nil
}
