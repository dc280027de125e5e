package stripe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// TriggerMerchantIssue asks the test-mode demo helper to raise a merchant issue
// on an account. It only works with test keys. The provider's response body is
// returned as-is.
func (c *Client) TriggerMerchantIssue(ctx context.Context, accountID, issueType string) (json.RawMessage, error) {
	form := url.Values{}
	form.Set("issue_type", issueType)
	form.Set("account", accountID)

	body, err := c.do(ctx, "trigger_merchant_issue", http.MethodPost, "/v1/test_helpers/demo/merchant_issue", form, nil)
	if err != nil {
		return nil, err
	}
	if !json.Valid(body) {
		return json.RawMessage("null"), nil
	}
	return json.RawMessage(body), nil
}
