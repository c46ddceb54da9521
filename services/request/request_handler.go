package requestservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type RequestHandler struct {
	Service        RequestService
	AuthMiddleware providers.AuthMiddlewareService
}

func NewRequestHandler(service RequestService, auth providers.AuthMiddlewareService) *RequestHandler {
	return &RequestHandler{
		Service:        service,
		AuthMiddleware: auth,
	}
}

func (h *RequestHandler) SubmitRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req SubmitRequestReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	created, err := h.Service.Submit(r.Context(), caller, req.AssetCode)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": "asset request submitted", "request": created})
}

func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	filter := models.WorkflowFilter{
		Status:       utils.QueryParam(r, "status"),
		DepartmentID: utils.QueryParam(r, "department"),
	}
	requests, err := h.Service.List(r.Context(), caller, filter)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, requests)
}

func (h *RequestHandler) DecideRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request id")
		return
	}

	var req DecisionReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	updated, err := h.Service.Decide(r.Context(), caller, id, req.Decision, req.RejectionComment)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "asset request updated", "request": updated})
}

func (h *RequestHandler) DeleteRequest(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request id")
		return
	}

	if err := h.Service.Delete(r.Context(), caller, id); err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"message": "asset request deleted successfully"})
}
