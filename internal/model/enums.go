package model

// IssueType is the kind of merchant issue the provider's test helper raises.
type IssueType string

const IssueTypeAdditionalInfo IssueType = "additional_info"

type IssueStatus string

const (
	IssueStatusSucceeded IssueStatus = "succeeded"
	IssueStatusFailed    IssueStatus = "failed"
)
