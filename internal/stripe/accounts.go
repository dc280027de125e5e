package stripe

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

type BusinessProfile struct {
	Name *string `json:"name"`
}

type Requirements struct {
	CurrentlyDue   []string `json:"currently_due"`
	PastDue        []string `json:"past_due"`
	DisabledReason *string  `json:"disabled_reason"`
}

// Account holds the subset of a Stripe account object the dashboard reads.
type Account struct {
	ID               string           `json:"id"`
	BusinessProfile  *BusinessProfile `json:"business_profile"`
	ChargesEnabled   bool             `json:"charges_enabled"`
	PayoutsEnabled   bool             `json:"payouts_enabled"`
	DetailsSubmitted bool             `json:"details_submitted"`
	Requirements     *Requirements    `json:"requirements"`
}

type AccountList struct {
	Data    []Account `json:"data"`
	HasMore bool      `json:"has_more"`
}

type ListAccountsParams struct {
	Limit         int
	StartingAfter string
}

// ListAccounts fetches a single page of connected accounts.
func (c *Client) ListAccounts(ctx context.Context, params ListAccountsParams) (*AccountList, error) {
	query := url.Values{}
	if params.Limit > 0 {
		query.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.StartingAfter != "" {
		query.Set("starting_after", params.StartingAfter)
	}

	var list AccountList
	if _, err := c.do(ctx, "list_accounts", http.MethodGet, "/v1/accounts", query, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
