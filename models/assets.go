package models

import (
	"time"

	"github.com/google/uuid"
)

type AssetStatus string

const (
	AssetAvailable        AssetStatus = "Available"
	AssetAssigned         AssetStatus = "Assigned"
	AssetUnderMaintenance AssetStatus = "UnderMaintenance"
)

// Asset status and AssignedTo are written only by the assignment coordinator.
type Asset struct {
	ID           uuid.UUID   `json:"id" db:"id"`
	Code         string      `json:"asset_code" db:"asset_code"`
	Name         string      `json:"name" db:"name"`
	Type         string      `json:"type" db:"type"`
	Brand        string      `json:"brand" db:"brand"`
	Model        string      `json:"model" db:"model"`
	AcquiredOn   *time.Time  `json:"acquired_on,omitempty" db:"acquired_on"`
	DepartmentID string      `json:"department_id" db:"department_id"`
	Status       AssetStatus `json:"status" db:"status"`
	QRCode       string      `json:"qr_code" db:"qr_code"`
	AssignedTo   *Assignee   `json:"assigned_to,omitempty" db:"-"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
}

type Assignee struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
}

type AssetFilter struct {
	Status       string
	Code         string
	DepartmentID string
}

// AssetDetailsUpdate holds the descriptive fields an administrator may change.
type AssetDetailsUpdate struct {
	Name         *string
	Type         *string
	Brand        *string
	Model        *string
	AcquiredOn   *time.Time
	DepartmentID *string
}
