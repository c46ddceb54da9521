package models

import (
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestPending       RequestStatus = "Pending"
	RequestHODApproved   RequestStatus = "HODApproved"
	RequestHODRejected   RequestStatus = "HODRejected"
	RequestAdminApproved RequestStatus = "AdminApproved"
	RequestAdminRejected RequestStatus = "AdminRejected"
)

type AssetRequest struct {
	ID               uuid.UUID     `json:"id" db:"id"`
	UserID           uuid.UUID     `json:"user_id" db:"user_id"`
	Username         string        `json:"username" db:"username"`
	AssetCode        string        `json:"asset_code" db:"asset_code"`
	DepartmentID     string        `json:"department_id" db:"department_id"`
	Status           RequestStatus `json:"status" db:"status"`
	RejectionComment *string       `json:"rejection_comment,omitempty" db:"rejection_comment"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at" db:"updated_at"`
}

type IssueStatus string

const (
	IssuePending     IssueStatus = "Pending"
	IssueHODApproved IssueStatus = "HODApproved"
	IssueApproved    IssueStatus = "Approved"
	IssueRejected    IssueStatus = "Rejected"
)

type IssueReport struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	UserID           uuid.UUID   `json:"user_id" db:"user_id"`
	Username         string      `json:"username" db:"username"`
	AssetCode        string      `json:"asset_code" db:"asset_code"`
	DepartmentID     string      `json:"department_id" db:"department_id"`
	Message          string      `json:"message" db:"message"`
	Status           IssueStatus `json:"status" db:"status"`
	RejectionComment *string     `json:"rejection_comment,omitempty" db:"rejection_comment"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at" db:"updated_at"`
}

// WorkflowFilter narrows request and issue listings. Empty fields match everything.
type WorkflowFilter struct {
	Status       string
	DepartmentID string
}

// StatusChange is a compare-and-swap on a workflow record status.
type StatusChange struct {
	ID               uuid.UUID
	From             string
	To               string
	RejectionComment *string
}

type Decision string

const (
	Approve Decision = "approve"
	Reject  Decision = "reject"
)

type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}
