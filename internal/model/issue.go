package model

import (
	"time"
)

// IssueRecord is the audit entry for one operator request to raise a merchant issue.
type IssueRecord struct {
	ID           string      `db:"id" json:"id"`
	AccountID    string      `db:"account_id" json:"accountId"`
	IssueType    IssueType   `db:"issue_type" json:"issueType"`
	Status       IssueStatus `db:"status" json:"status"`
	ErrorMessage *string     `db:"error_message" json:"errorMessage,omitempty"`
	RequestedBy  string      `db:"requested_by" json:"requestedBy"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}

type CreateIssueRecordParams struct {
	ID           string
	AccountID    string
	IssueType    IssueType
	Status       IssueStatus
	ErrorMessage *string
	RequestedBy  string
}
