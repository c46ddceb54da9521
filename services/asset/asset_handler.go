package assetservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AssetHandler struct {
	Service        AssetService
	AuthMiddleware providers.AuthMiddlewareService
	Logger         providers.ZapLoggerProvider
}

func NewAssetHandler(service AssetService, auth providers.AuthMiddlewareService, logger providers.ZapLoggerProvider) *AssetHandler {
	return &AssetHandler{
		Service:        service,
		AuthMiddleware: auth,
		Logger:         logger,
	}
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req CreateAssetReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		h.Logger.GetLogger().Warn("failed to parse asset body", zap.Error(err))
		utils.RespondError(w, http.StatusBadRequest, err, "invalid asset input")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	asset, err := h.Service.CreateAsset(r.Context(), caller, req)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": "asset created successfully", "asset": asset})
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req UpdateAssetReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid asset input")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	asset, err := h.Service.UpdateAsset(r.Context(), caller, chi.URLParam(r, "code"), req)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "asset updated successfully", "asset": asset})
}

func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := h.Service.GetAsset(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, asset)
}

func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	filter := models.AssetFilter{
		Status:       utils.QueryParam(r, "status"),
		Code:         utils.QueryParam(r, "code"),
		DepartmentID: utils.QueryParam(r, "department"),
	}
	assets, err := h.Service.ListAssets(r.Context(), filter)
	if err != nil {
		h.Logger.GetLogger().Error("failed to list assets", zap.Error(err))
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, assets)
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if err := h.Service.DeleteAsset(r.Context(), caller, chi.URLParam(r, "code")); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "asset deleted successfully"})
}
