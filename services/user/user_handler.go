package userservice

import (
	"assetflow/providers"
	"assetflow/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserHandler struct {
	Service        UserService
	AuthMiddleware providers.AuthMiddlewareService
	Logger         providers.ZapLoggerProvider
}

func NewUserHandler(service UserService, auth providers.AuthMiddlewareService, logger providers.ZapLoggerProvider) *UserHandler {
	return &UserHandler{
		Service:        service,
		AuthMiddleware: auth,
		Logger:         logger,
	}
}

func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		h.Logger.GetLogger().Warn("failed to parse login body", zap.Error(err))
		utils.RespondError(w, http.StatusBadRequest, err, "invalid input")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	res, err := h.Service.Login(r.Context(), req)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	w.Header().Set("Authorization", res.AccessToken)
	w.Header().Set("Refresh_token", res.RefreshToken)
	utils.RespondJSON(w, http.StatusOK, res)
}

func (h *UserHandler) FirebaseLogin(w http.ResponseWriter, r *http.Request) {
	var req FirebaseLoginReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid input")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	res, err := h.Service.FirebaseLogin(r.Context(), req.IDToken)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	w.Header().Set("Authorization", res.AccessToken)
	w.Header().Set("Refresh_token", res.RefreshToken)
	utils.RespondJSON(w, http.StatusOK, res)
}

func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req CreateUserReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid input")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	user, err := h.Service.CreateUser(r.Context(), caller, req)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": "user created successfully", "user": user})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	res, err := h.Service.ListUsers(r.Context(), caller, utils.QueryParam(r, "department"))
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, res)
}

func (h *UserHandler) AssignedAsset(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	asset, err := h.Service.AssignedAsset(r.Context(), caller)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	if asset == nil {
		utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "no asset assigned", "asset": nil})
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"asset": asset})
}

func (h *UserHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	res, err := h.Service.Dashboard(r.Context(), caller)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, res)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid user id")
		return
	}
	if err := h.Service.DeleteUser(r.Context(), caller, id); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "user deleted successfully"})
}
