package issueservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type IssueHandler struct {
	Service        IssueService
	AuthMiddleware providers.AuthMiddlewareService
}

func NewIssueHandler(service IssueService, auth providers.AuthMiddlewareService) *IssueHandler {
	return &IssueHandler{
		Service:        service,
		AuthMiddleware: auth,
	}
}

func (h *IssueHandler) ReportIssue(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req ReportIssueReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	report, err := h.Service.Submit(r.Context(), caller, req.AssetCode, req.Message)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": "issue reported", "report": report})
}

func (h *IssueHandler) ListIssues(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	reports, err := h.Service.List(r.Context(), caller, models.WorkflowFilter{
		Status:       utils.QueryParam(r, "status"),
		DepartmentID: utils.QueryParam(r, "department"),
	})
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, reports)
}

func (h *IssueHandler) DecideIssue(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid issue report id")
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

	report, err := h.Service.Decide(r.Context(), caller, id, req.Decision, req.RejectionComment)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"message": "issue report updated", "report": report})
}
