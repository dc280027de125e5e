package model

// ConnectedAccount is a read-only projection of a provider account. It is
// refetched on every view and never stored.
type ConnectedAccount struct {
	ID               string   `json:"id"`
	DisplayName      *string  `json:"displayName,omitempty"`
	ChargesEnabled   bool     `json:"chargesEnabled"`
	PayoutsEnabled   bool     `json:"payoutsEnabled"`
	DetailsSubmitted bool     `json:"detailsSubmitted"`
	CurrentlyDue     []string `json:"currentlyDue"`
	PastDue          []string `json:"pastDue"`
	DisabledReason   *string  `json:"disabledReason,omitempty"`
}

// Name returns the business profile name, or a placeholder when none is set.
func (a ConnectedAccount) Name() string {
	if a.DisplayName == nil || *a.DisplayName == "" {
		return "Unnamed Account"
	}
	return *a.DisplayName
}

func (a ConnectedAccount) HasCurrentlyDue() bool {
	return len(a.CurrentlyDue) > 0
}

func (a ConnectedAccount) HasPastDue() bool {
	return len(a.PastDue) > 0
}

// CanTriggerIssue reports whether the demo merchant-issue action may be offered.
// The provider rejects it for accounts that have not finished onboarding.
func (a ConnectedAccount) CanTriggerIssue() bool {
	return a.DetailsSubmitted
}
