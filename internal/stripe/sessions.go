package stripe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/platformops/connect-dashboard/internal/model"
)

type AccountSessionParams struct {
	Account    string
	Components []model.EnabledComponent
}

type AccountSession struct {
	Account      string `json:"account"`
	ClientSecret string `json:"client_secret"`
	ExpiresAt    int64  `json:"expires_at"`
}

// encode flattens the params into Stripe's bracketed form notation, e.g.
// components[payments][features][refund_management]=true.
func (p AccountSessionParams) encode() url.Values {
	form := url.Values{}
	form.Set("account", p.Account)
	for _, component := range p.Components {
		prefix := fmt.Sprintf("components[%s]", component.Name)
		form.Set(prefix+"[enabled]", "true")
		for _, feature := range component.Features {
			form.Set(fmt.Sprintf("%s[features][%s]", prefix, feature), "true")
		}
	}
	return form
}

// CreateAccountSession mints a new account session. Each call creates a new session.
func (c *Client) CreateAccountSession(ctx context.Context, params AccountSessionParams) (*AccountSession, error) {
	var session AccountSession
	if _, err := c.do(ctx, "create_account_session", http.MethodPost, "/v1/account_sessions", params.encode(), &session); err != nil {
		return nil, err
	}
	return &session, nil
}
