package assignmentservice

type AssignAssetReq struct {
	UserID    string `json:"user_id" validate:"required,uuid"`
	AssetCode string `json:"asset_code" validate:"required"`
	AssetID   string `json:"asset_id" validate:"required,uuid"`
}

type UnassignAssetReq struct {
	UserID string `json:"user_id" validate:"required,uuid"`
}
