package models

import (
	"time"

	"github.com/google/uuid"
)

// User assignment fields mirror the held asset and are written only by the assignment coordinator.
type User struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	Username       string     `json:"username" db:"username"`
	Email          string     `json:"email" db:"email"`
	PasswordHash   string     `json:"-" db:"password_hash"`
	Role           Role       `json:"role" db:"role"`
	DepartmentID   string     `json:"department_id" db:"department_id"`
	DepartmentName string     `json:"department_name" db:"department_name"`
	AssignedAsset  *string    `json:"assigned_asset" db:"assigned_asset"`
	AssetName      *string    `json:"asset_name" db:"asset_name"`
	AssetModel     *string    `json:"asset_model" db:"asset_model"`
	AssetID        *uuid.UUID `json:"asset_id" db:"asset_id"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

func (u *User) HoldsAsset() bool {
	return u.AssignedAsset != nil && *u.AssignedAsset != ""
}

type UserFilter struct {
	DepartmentID string
	Role         Role
}

// UserAssignment is the user side of an assignment; nil clears it.
type UserAssignment struct {
	AssetCode  string
	AssetName  string
	AssetModel string
	AssetID    uuid.UUID
}
