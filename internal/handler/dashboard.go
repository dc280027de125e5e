package handler

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	apperrors "github.com/platformops/connect-dashboard/internal/errors"
	"github.com/platformops/connect-dashboard/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageDirectory = "directory"
	pageAccount   = "account"
	pageError     = "error"

	publishableKeyMissing = "Stripe publishable key is not configured"
)

// AccountLookup is the directory plus single-account resolution used by the
// detail page.
type AccountLookup interface {
	AccountDirectory
	GetAccount(ctx context.Context, id string) (*model.ConnectedAccount, error)
}

// DashboardHandler renders the operator pages. Both pages read account data
// from the same full directory listing the API serves.
type DashboardHandler struct {
	accounts       AccountLookup
	publishableKey string
	pages          map[string]*template.Template
}

func NewDashboardHandler(accounts AccountLookup, publishableKey string) (*DashboardHandler, error) {
	pages := make(map[string]*template.Template)
	for _, name := range []string{pageDirectory, pageAccount, pageError} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &DashboardHandler{
		accounts:       accounts,
		publishableKey: publishableKey,
		pages:          pages,
	}, nil
}

func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Directory)
	r.Get("/accounts/{accountID}", h.Account)

	return r
}

// GET /
func (h *DashboardHandler) Directory(w http.ResponseWriter, r *http.Request) {
	data := directoryPage{Title: "Connected Accounts"}

	accounts, err := h.accounts.ListAccounts(context.WithoutCancel(r.Context()))
	if err != nil {
		data.Error = listAccountsFailed
		h.render(w, http.StatusInternalServerError, pageDirectory, data)
		return
	}

	data.Accounts = make([]AccountCard, 0, len(accounts))
	for _, a := range accounts {
		data.Accounts = append(data.Accounts, newAccountCard(a))
	}

	h.render(w, http.StatusOK, pageDirectory, data)
}

// GET /accounts/{accountID}
// Any failure renders the error page; the widgets are never partially shown.
func (h *DashboardHandler) Account(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "accountID")

	account, err := h.accounts.GetAccount(context.WithoutCancel(r.Context()), accountID)
	switch {
	case apperrors.IsCode(err, apperrors.ErrCodeNotFound):
		h.renderError(w, http.StatusNotFound, "Account not found")
		return
	case err != nil:
		h.renderError(w, http.StatusInternalServerError, "Failed to fetch account data")
		return
	}

	if h.publishableKey == "" {
		log.Error().Str("accountId", accountID).Msg("account page requested without a publishable key")
		h.renderError(w, http.StatusInternalServerError, publishableKeyMissing)
		return
	}

	h.render(w, http.StatusOK, pageAccount, accountPage{
		Title:            "Account Details",
		AccountID:        account.ID,
		PublishableKey:   h.publishableKey,
		DetailsSubmitted: account.DetailsSubmitted,
		Widgets:          AccountWidgets,
	})
}

func (h *DashboardHandler) renderError(w http.ResponseWriter, status int, message string) {
	h.render(w, status, pageError, errorPage{Title: "Error", Message: message})
}

func (h *DashboardHandler) render(w http.ResponseWriter, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.pages[page].ExecuteTemplate(&buf, "layout", data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("failed to render page")
		writeError(w, apperrors.Internal("Failed to render page"))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
