package requestservice

import "assetflow/models"

type SubmitRequestReq struct {
	AssetCode string `json:"asset_code" validate:"required"`
}

type DecisionReq struct {
	Decision         models.Decision `json:"decision" validate:"required"`
	RejectionComment *string         `json:"rejection_comment,omitempty"`
}
