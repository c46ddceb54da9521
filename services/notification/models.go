package notificationservice

type SendNotificationReq struct {
	Username string `json:"username" validate:"required"`
	Message  string `json:"message" validate:"required"`
}
