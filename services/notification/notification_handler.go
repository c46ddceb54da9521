package notificationservice

import (
	"assetflow/providers"
	"assetflow/utils"
	"net/http"
)

type NotificationHandler struct {
	Service        NotificationService
	AuthMiddleware providers.AuthMiddlewareService
}

func NewNotificationHandler(service NotificationService, auth providers.AuthMiddlewareService) *NotificationHandler {
	return &NotificationHandler{
		Service:        service,
		AuthMiddleware: auth,
	}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	notifications, err := h.Service.ListFor(r.Context(), caller)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) SendNotification(w http.ResponseWriter, r *http.Request) {
	caller, err := h.AuthMiddleware.GetIdentityFromContext(r)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}

	var req SendNotificationReq
	if err := utils.ParseJSONBody(r, &req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.RespondAppError(w, err)
		return
	}

	notification, err := h.Service.Send(r.Context(), caller, req.Username, req.Message)
	if err != nil {
		utils.RespondAppError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{"message": "notification created", "notification": notification})
}
