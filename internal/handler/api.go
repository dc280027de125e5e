package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/platformops/connect-dashboard/internal/audit"
	"github.com/platformops/connect-dashboard/internal/model"
)

const (
	listAccountsFailed  = "Failed to fetch connected accounts"
	createSessionFailed = "Failed to create account session"
)

type AccountDirectory interface {
	ListAccounts(ctx context.Context) ([]model.ConnectedAccount, error)
}

type SessionMinter interface {
	CreateSession(ctx context.Context, accountID string) (*model.ClientSession, error)
}

type IssueTrigger interface {
	TriggerIssue(ctx context.Context, accountID, requestedBy string) (json.RawMessage, error)
	ListRecent(ctx context.Context, limit, offset int) ([]model.IssueRecord, int, error)
	ListForAccount(ctx context.Context, accountID string, limit int) ([]model.IssueRecord, error)
	GetIssue(ctx context.Context, id string) (*model.IssueRecord, error)
}

type APIHandler struct {
	accounts AccountDirectory
	sessions SessionMinter
	issues   IssueTrigger
	// wraps the trigger route, e.g. with a rate limiter
	triggerMiddleware []func(http.Handler) http.Handler
}

func NewAPIHandler(
	accounts AccountDirectory,
	sessions SessionMinter,
	issues IssueTrigger,
	triggerMiddleware ...func(http.Handler) http.Handler,
) *APIHandler {
	return &APIHandler{
		accounts:          accounts,
		sessions:          sessions,
		issues:            issues,
		triggerMiddleware: triggerMiddleware,
	}
}

func (h *APIHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/accounts", h.ListAccounts)
	r.Post("/session", h.CreateSession)
	r.With(h.triggerMiddleware...).Post("/trigger-issue", h.TriggerIssue)
	r.Get("/issues", h.ListIssues)
	r.Get("/issues/{issueID}", h.GetIssue)

	return r
}

type accountRequest struct {
	AccountID string `json:"accountId"`
}

// decodeAccountID reads {"accountId"}. An unreadable body yields "", which the
// services reject as a missing id.
func decodeAccountID(r *http.Request) string {
	var req accountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Debug().Err(err).Str("path", r.URL.Path).Msg("unreadable request body")
		return ""
	}
	return req.AccountID
}

// GET /api/accounts
func (h *APIHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListAccounts(context.WithoutCancel(r.Context()))
	if err != nil {
		writeGenericError(w, err, listAccountsFailed)
		return
	}

	writeJSON(w, http.StatusOK, accounts)
}

// POST /api/session
// Called by the component SDK whenever it needs a fresh client secret.
func (h *APIHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	accountID := decodeAccountID(r)

	session, err := h.sessions.CreateSession(context.WithoutCancel(r.Context()), accountID)
	if err != nil {
		writeGenericError(w, err, createSessionFailed)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"clientSecret": session.Secret,
	})
}

// POST /api/trigger-issue
// Test-mode only. The provider's rejection message is passed back to the operator.
func (h *APIHandler) TriggerIssue(w http.ResponseWriter, r *http.Request) {
	accountID := decodeAccountID(r)

	data, err := h.issues.TriggerIssue(context.WithoutCancel(r.Context()), accountID, audit.ClientIP(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// GET /api/issues
// With ?accountId= the listing is narrowed to one account and offset is ignored.
func (h *APIHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	p := ParsePagination(r)

	if accountID := r.URL.Query().Get("accountId"); accountID != "" {
		records, err := h.issues.ListForAccount(r.Context(), accountID, p.Limit)
		if err != nil {
			log.Error().Err(err).Str("accountId", accountID).Msg("failed to list issue records for account")
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"items": records,
			"total": len(records),
		})
		return
	}

	records, total, err := h.issues.ListRecent(r.Context(), p.Limit, p.Offset)
	if err != nil {
		log.Error().Err(err).Msg("failed to list issue records")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": records,
		"total": total,
	})
}

// GET /api/issues/{issueID}
func (h *APIHandler) GetIssue(w http.ResponseWriter, r *http.Request) {
	record, err := h.issues.GetIssue(r.Context(), chi.URLParam(r, "issueID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record)
}
