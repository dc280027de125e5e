package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/audit"
	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/metrics"
	"github.com/platformops/connect-dashboard/internal/model"
	"github.com/platformops/connect-dashboard/internal/repository"
)

const triggerIssueFailed = "Failed to trigger merchant issue"

// IssueService raises demo merchant issues through the provider's test helper.
// It is a test-mode tool and must only be offered for accounts that have
// submitted their details.
type IssueService struct {
	api       IssuesAPI
	issueRepo repository.IssueRecordRepository
}

// NewIssueService creates the service. issueRepo may be nil, in which case
// attempts are only written to the audit log.
func NewIssueService(api IssuesAPI, issueRepo repository.IssueRecordRepository) *IssueService {
	return &IssueService{
		api:       api,
		issueRepo: issueRepo,
	}
}

// TriggerIssue raises an additional_info issue on accountID and returns the
// provider's response body.
func (s *IssueService) TriggerIssue(ctx context.Context, accountID, requestedBy string) (json.RawMessage, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apperrors.MissingRequired("Account ID")
	}

	if !s.api.Configured() {
		return nil, apperrors.Config(secretKeyMissing)
	}

	data, err := s.api.TriggerMerchantIssue(ctx, accountID, string(model.IssueTypeAdditionalInfo))
	if err != nil {
		appErr := providerError(err, triggerIssueFailed)
		s.record(ctx, accountID, requestedBy, appErr)
		return nil, appErr
	}

	s.record(ctx, accountID, requestedBy, nil)
	return data, nil
}

// ListRecent returns the newest recorded attempts first.
func (s *IssueService) ListRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, int, error) {
	if s.issueRepo == nil {
		return []model.IssueRecord{}, 0, nil
	}

	records, err := s.issueRepo.FindRecent(ctx, limit, offset)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	total, err := s.issueRepo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Database(err)
	}
	return records, total, nil
}

// ListForAccount returns up to limit attempts against one account, newest first.
func (s *IssueService) ListForAccount(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error) {
	accountID = strings.TrimSpace(accountID)
	if accountID == "" {
		return nil, apperrors.MissingRequired("Account ID")
	}
	if s.issueRepo == nil {
		return []model.IssueRecord{}, nil
	}

	records, err := s.issueRepo.FindByAccountID(ctx, accountID, limit)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	return records, nil
}

func (s *IssueService) GetIssue(ctx context.Context, id string) (*model.IssueRecord, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ValidationError("Issue ID must be a UUID")
	}
	if s.issueRepo == nil {
		return nil, apperrors.NotFound("Issue record")
	}

	record, err := s.issueRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apperrors.Database(err)
	}
	if record == nil {
		return nil, apperrors.NotFound("Issue record")
	}
	return record, nil
}

// record writes the attempt to the audit log and, when configured, the issue
// table. Failing to persist never fails the trigger itself.
func (s *IssueService) record(ctx context.Context, accountID, requestedBy string, cause error) {
	status := model.IssueStatusSucceeded
	eventType := audit.EventIssueTriggered
	details := map[string]interface{}{"issue_type": string(model.IssueTypeAdditionalInfo)}

	var errorMessage *string
	if cause != nil {
		status = model.IssueStatusFailed
		eventType = audit.EventIssueRejected
		msg := cause.Error()
		if appErr, ok := apperrors.AsAppError(cause); ok {
			msg = appErr.Message
		}
		errorMessage = &msg
		details["error"] = msg
	}

	metrics.IssuesTriggered.WithLabelValues(string(status)).Inc()
	audit.Log(ctx, audit.Event{
		Type:      eventType,
		AccountID: accountID,
		IP:        requestedBy,
		Details:   details,
	})

	if s.issueRepo == nil {
		return
	}

	_, err := s.issueRepo.Create(ctx, model.CreateIssueRecordParams{
		ID:           uuid.NewString(),
		AccountID:    accountID,
		IssueType:    model.IssueTypeAdditionalInfo,
		Status:       status,
		ErrorMessage: errorMessage,
		RequestedBy:  requestedBy,
	})
	if err != nil {
		log.Error().Err(err).Str("accountId", accountID).Msg("failed to record merchant issue attempt")
	}
}
