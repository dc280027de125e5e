package handler

import (
	"github.com/platformops/connect-dashboard/internal/model"
)

// Widget is one embedded component container on the account page. Tag is the
// name the component SDK creates it by.
type Widget struct {
	Tag       string
	Title     string
	MinHeight int
}

// AccountWidgets is the fixed, ordered set hosted on the account page. Each tag
// needs a matching entry in model.SessionComponents().
var AccountWidgets = []Widget{
	{Tag: "notification-banner", Title: "Notification Banner", MinHeight: 60},
	{Tag: "payments", Title: "Payments", MinHeight: 300},
	{Tag: "payouts", Title: "Payouts", MinHeight: 300},
}

const triggerDisabledTooltip = "Merchant issues can only be triggered once the account has submitted its details"

type Badge struct {
	Label     string
	OK        bool
	AriaLabel string
}

type AccountCard struct {
	ID              string
	Name            string
	Badges          []Badge
	DisabledReason  string
	CanTriggerIssue bool
	TriggerTooltip  string
}

func newBadge(label string, ok bool, yes, no string) Badge {
	aria := no
	if ok {
		aria = yes
	}
	return Badge{Label: label, OK: ok, AriaLabel: aria}
}

func newAccountCard(a model.ConnectedAccount) AccountCard {
	card := AccountCard{
		ID:   a.ID,
		Name: a.Name(),
		Badges: []Badge{
			newBadge("Charges Enabled", a.ChargesEnabled, "Charges enabled", "Charges disabled"),
			newBadge("Payouts Enabled", a.PayoutsEnabled, "Payouts enabled", "Payouts disabled"),
			newBadge("Details Submitted", a.DetailsSubmitted, "Details submitted", "Details not submitted"),
			newBadge("Currently Due", !a.HasCurrentlyDue(), "No requirements currently due", "Requirements currently due"),
			newBadge("Past Due", !a.HasPastDue(), "No requirements past due", "Requirements past due"),
		},
		CanTriggerIssue: a.CanTriggerIssue(),
	}
	if a.DisabledReason != nil {
		card.DisabledReason = *a.DisabledReason
	}
	if !card.CanTriggerIssue {
		card.TriggerTooltip = triggerDisabledTooltip
	}
	return card
}

type directoryPage struct {
	Title    string
	Accounts []AccountCard
	Error    string
}

type accountPage struct {
	Title            string
	AccountID        string
	PublishableKey   string
	DetailsSubmitted bool
	Widgets          []Widget
}

type errorPage struct {
	Title   string
	Message string
}
