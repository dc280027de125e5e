package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/model"
)

type apiFixture struct {
	accounts *mockDirectory
	sessions *mockSessions
	issues   *mockIssues
	router   http.Handler
}

func newAPIFixture(middleware ...func(http.Handler) http.Handler) *apiFixture {
	f := &apiFixture{
		accounts: new(mockDirectory),
		sessions: new(mockSessions),
		issues:   new(mockIssues),
	}
	f.router = NewAPIHandler(f.accounts, f.sessions, f.issues, middleware...).Routes()
	return f
}

func (f *apiFixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestAPIHandler_ListAccounts(t *testing.T) {
	t.Run("returns the directory", func(t *testing.T) {
		f := newAPIFixture()
		f.accounts.On("ListAccounts", mock.Anything).Return(policyAccounts(), nil)

		rec := f.do(http.MethodGet, "/accounts", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var accounts []model.ConnectedAccount
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
		require.Len(t, accounts, 2)
		assert.Equal(t, "acct_1", accounts[0].ID)
		assert.Contains(t, rec.Body.String(), `"detailsSubmitted":true`)
	})

	t.Run("empty directory is an empty array", func(t *testing.T) {
		f := newAPIFixture()
		f.accounts.On("ListAccounts", mock.Anything).Return([]model.ConnectedAccount{}, nil)

		rec := f.do(http.MethodGet, "/accounts", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("failure hides provider detail", func(t *testing.T) {
		f := newAPIFixture()
		f.accounts.On("ListAccounts", mock.Anything).
			Return(nil, apperrors.Upstream("Invalid API Key provided: sk_test_***", errors.New("401")))

		rec := f.do(http.MethodGet, "/accounts", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Failed to fetch connected accounts", body["error"])
		assert.NotContains(t, rec.Body.String(), "Invalid API Key")
	})

	t.Run("provider call is detached from request cancellation", func(t *testing.T) {
		f := newAPIFixture()
		f.accounts.On("ListAccounts", mock.MatchedBy(func(ctx context.Context) bool {
			return ctx.Done() == nil
		})).Return([]model.ConnectedAccount{}, nil)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		req := httptest.NewRequest(http.MethodGet, "/accounts", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.accounts.AssertExpectations(t)
	})
}

func TestAPIHandler_CreateSession(t *testing.T) {
	t.Run("returns the client secret", func(t *testing.T) {
		f := newAPIFixture()
		f.sessions.On("CreateSession", mock.Anything, "acct_1").
			Return(&model.ClientSession{AccountID: "acct_1", Secret: "sk_test_123"}, nil)

		rec := f.do(http.MethodPost, "/session", `{"accountId":"acct_1"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"clientSecret":"sk_test_123"}`, rec.Body.String())
	})

	t.Run("missing account id is 400", func(t *testing.T) {
		f := newAPIFixture()
		f.sessions.On("CreateSession", mock.Anything, "").
			Return(nil, apperrors.MissingRequired("Account ID"))

		rec := f.do(http.MethodPost, "/session", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Account ID is required", decodeBody(t, rec)["error"])
	})

	t.Run("malformed body counts as missing id", func(t *testing.T) {
		f := newAPIFixture()
		f.sessions.On("CreateSession", mock.Anything, "").
			Return(nil, apperrors.MissingRequired("Account ID"))

		rec := f.do(http.MethodPost, "/session", `{not json`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		f.sessions.AssertExpectations(t)
	})

	t.Run("provider failure is a generic 500", func(t *testing.T) {
		f := newAPIFixture()
		f.sessions.On("CreateSession", mock.Anything, "acct_x").
			Return(nil, apperrors.Upstream("No such account: 'acct_x'", errors.New("400")))

		rec := f.do(http.MethodPost, "/session", `{"accountId":"acct_x"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "Failed to create account session", body["error"])
		assert.Equal(t, string(apperrors.ErrCodeUpstream), body["code"])
	})

	t.Run("missing secret key is a 500", func(t *testing.T) {
		f := newAPIFixture()
		f.sessions.On("CreateSession", mock.Anything, "acct_1").
			Return(nil, apperrors.Config("Stripe secret key not configured"))

		rec := f.do(http.MethodPost, "/session", `{"accountId":"acct_1"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, string(apperrors.ErrCodeConfig), decodeBody(t, rec)["code"])
	})
}

func TestAPIHandler_TriggerIssue(t *testing.T) {
	t.Run("wraps provider body", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("TriggerIssue", mock.Anything, "acct_2", mock.AnythingOfType("string")).
			Return(json.RawMessage(`{"object":"demo.merchant_issue"}`), nil)

		rec := f.do(http.MethodPost, "/trigger-issue", `{"accountId":"acct_2"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true,"data":{"object":"demo.merchant_issue"}}`, rec.Body.String())
	})

	t.Run("passes the caller ip through as requester", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("TriggerIssue", mock.Anything, "acct_2", "203.0.113.7").
			Return(json.RawMessage(`{}`), nil)

		req := httptest.NewRequest(http.MethodPost, "/trigger-issue", bytes.NewBufferString(`{"accountId":"acct_2"}`))
		req.RemoteAddr = "203.0.113.7:51000"
		rec := httptest.NewRecorder()
		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.issues.AssertExpectations(t)
	})

	t.Run("missing account id is 400", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("TriggerIssue", mock.Anything, "", mock.Anything).
			Return(nil, apperrors.MissingRequired("Account ID"))

		rec := f.do(http.MethodPost, "/trigger-issue", `{"accountId":""}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Account ID is required", decodeBody(t, rec)["error"])
	})

	t.Run("upstream message is passed through", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("TriggerIssue", mock.Anything, "acct_1", mock.Anything).
			Return(nil, apperrors.Upstream("This account has not completed onboarding", errors.New("400")))

		rec := f.do(http.MethodPost, "/trigger-issue", `{"accountId":"acct_1"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "This account has not completed onboarding", decodeBody(t, rec)["error"])
	})

	t.Run("missing secret key", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("TriggerIssue", mock.Anything, "acct_2", mock.Anything).
			Return(nil, apperrors.Config("Stripe secret key not configured"))

		rec := f.do(http.MethodPost, "/trigger-issue", `{"accountId":"acct_2"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Stripe secret key not configured", decodeBody(t, rec)["error"])
	})

	t.Run("route middleware is applied", func(t *testing.T) {
		blocked := func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
		}
		f := newAPIFixture(blocked)

		rec := f.do(http.MethodPost, "/trigger-issue", `{"accountId":"acct_2"}`)

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		f.issues.AssertNotCalled(t, "TriggerIssue", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAPIHandler_ListIssues(t *testing.T) {
	t.Run("returns items and total", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("ListRecent", mock.Anything, 10, 5).
			Return([]model.IssueRecord{{ID: "rec-1", AccountID: "acct_2", Status: model.IssueStatusSucceeded}}, 6, nil)

		rec := f.do(http.MethodGet, "/issues?limit=10&offset=5", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(6), body["total"])
		assert.Len(t, body["items"], 1)
	})

	t.Run("database failure is 500", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("ListRecent", mock.Anything, DefaultLimit, 0).
			Return(nil, 0, apperrors.Database(errors.New("boom")))

		rec := f.do(http.MethodGet, "/issues", "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("narrows to one account", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("ListForAccount", mock.Anything, "acct_2", 10).
			Return([]model.IssueRecord{{ID: "rec-2", AccountID: "acct_2"}, {ID: "rec-1", AccountID: "acct_2"}}, nil)

		rec := f.do(http.MethodGet, "/issues?accountId=acct_2&limit=10&offset=5", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, float64(2), body["total"])
		assert.Len(t, body["items"], 2)
		f.issues.AssertNotCalled(t, "ListRecent", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAPIHandler_GetIssue(t *testing.T) {
	id := "5b1f0c8e-3f2a-4c55-9d51-0f2b7a3c9e11"

	t.Run("returns the record", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("GetIssue", mock.Anything, id).
			Return(&model.IssueRecord{ID: id, AccountID: "acct_2", Status: model.IssueStatusSucceeded}, nil)

		rec := f.do(http.MethodGet, "/issues/"+id, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, id, body["id"])
		assert.Equal(t, "acct_2", body["accountId"])
	})

	t.Run("unknown id is 404", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("GetIssue", mock.Anything, id).Return(nil, apperrors.NotFound("Issue record"))

		rec := f.do(http.MethodGet, "/issues/"+id, "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Issue record not found", decodeBody(t, rec)["error"])
	})

	t.Run("malformed id is 400", func(t *testing.T) {
		f := newAPIFixture()
		f.issues.On("GetIssue", mock.Anything, "rec-1").
			Return(nil, apperrors.ValidationError("Issue ID must be a UUID"))

		rec := f.do(http.MethodGet, "/issues/rec-1", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
