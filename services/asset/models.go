package assetservice

import "time"

type CreateAssetReq struct {
	AssetCode    string     `json:"asset_code,omitempty" validate:"omitempty,max=64"`
	Name         string     `json:"name" validate:"required"`
	Type         string     `json:"type" validate:"required"`
	Brand        string     `json:"brand" validate:"required"`
	Model        string     `json:"model" validate:"required"`
	AcquiredOn   *time.Time `json:"acquired_on,omitempty"`
	DepartmentID string     `json:"department_id" validate:"required"`
}

// UpdateAssetReq carries descriptive fields only; status and assignee are not accepted here.
type UpdateAssetReq struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1"`
	Type         *string    `json:"type,omitempty" validate:"omitempty,min=1"`
	Brand        *string    `json:"brand,omitempty"`
	Model        *string    `json:"model,omitempty"`
	AcquiredOn   *time.Time `json:"acquired_on,omitempty"`
	DepartmentID *string    `json:"department_id,omitempty" validate:"omitempty,min=1"`
}
