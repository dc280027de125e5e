package model

// ComponentName identifies an embedded component in an account session.
type ComponentName string

const (
	ComponentNotificationBanner ComponentName = "notification_banner"
	ComponentPayments           ComponentName = "payments"
	ComponentPayouts            ComponentName = "payouts"
)

// FeatureRefundManagement lets the payments component issue refunds.
const FeatureRefundManagement = "refund_management"

// EnabledComponent is one component requested when minting a session, with the
// features switched on for it.
type EnabledComponent struct {
	Name     ComponentName
	Features []string
}

// SessionComponents returns the fixed set every client session is minted with.
// The embedded widgets on the account page depend on exactly this set. Each
// call builds a new slice so callers cannot alter later sessions.
func SessionComponents() []EnabledComponent {
	return []EnabledComponent{
		{Name: ComponentNotificationBanner},
		{Name: ComponentPayments, Features: []string{FeatureRefundManagement}},
		{Name: ComponentPayouts},
	}
}

// ClientSession is a short-lived credential for the embedded component SDK.
// It is handed to the browser and never stored.
type ClientSession struct {
	AccountID         string
	Secret            string
	EnabledComponents []EnabledComponent
}
