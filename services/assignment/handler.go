package assignmentservice

import (
	"assetflow/providers"
	"assetflow/utils"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AssignmentHandler struct {
	Coordinator    Coordinator
	AuthMiddleware providers.AuthMiddlewareService
	Logger         providers.ZapLoggerProvider
}

func NewAssignmentHandler(coordinator Coordinator, auth providers.AuthMiddlewareService, logger providers.ZapLoggerProvider) *AssignmentHandler {
	return &AssignmentHandler{
		Coordinator:    coordinator,
		AuthMiddleware: auth,
		Logger:         logger,
	}
}

func (h *AssignmentHandler) AssignAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req AssignAssetReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		h.Logger.GetLogger().Warn("failed to parse assign request", zap.Error(err))
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	user, err := h.Coordinator.Assign(r.Context(), caller, uuid.MustParse(req.UserID), req.AssetCode, uuid.MustParse(req.AssetID))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "asset assigned successfully", "user": user})
}

func (h *AssignmentHandler) UnassignAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req UnassignAssetReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	user, err := h.Coordinator.Unassign(r.Context(), caller, uuid.MustParse(req.UserID))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "asset unassigned successfully", "user": user})
}
