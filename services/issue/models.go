package issueservice

import "assetflow/models"

type ReportIssueReq struct {
	AssetCode string `json:"asset_code" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

type DecisionReq struct {
	Decision         models.Decision `json:"decision" validate:"required"`
	RejectionComment *string         `json:"rejection_comment,omitempty"`
}
