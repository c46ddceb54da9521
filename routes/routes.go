package routes

import (
	"assetflow/models"
	"assetflow/providers"
	assetservice "assetflow/services/asset"
	assignmentservice "assetflow/services/assignment"
	issueservice "assetflow/services/issue"
	notificationservice "assetflow/services/notification"
	requestservice "assetflow/services/request"
	userservice "assetflow/services/user"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type RouteHandler struct {
	UserHandler         *userservice.UserHandler
	AssetHandler        *assetservice.AssetHandler
	AssignmentHandler   *assignmentservice.AssignmentHandler
	RequestHandler      *requestservice.RequestHandler
	IssueHandler        *issueservice.IssueHandler
	NotificationHandler *notificationservice.NotificationHandler
	AuthMiddleware      providers.AuthMiddlewareService
	Metrics             http.Handler
	QRDir               string
}

func RegisterRoutes(h RouteHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/test", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("connection established..."))
	})
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}
	if h.QRDir != "" {
		r.Handle("/qrcodes/*", http.StripPrefix("/qrcodes/", http.FileServer(http.Dir(h.QRDir))))
	}

	r.Route("/api", func(r chi.Router) {
		//public
		r.Post("/user/login", h.UserHandler.Login)
		r.Post("/v2/user/login", h.UserHandler.FirebaseLogin)

		//protected
		r.Group(func(protected chi.Router) {
			protected.Use(h.AuthMiddleware.JWTAuthMiddleware())

			protected.Get("/users/dashboard", h.UserHandler.Dashboard)
			protected.Get("/assigned-asset", h.UserHandler.AssignedAsset)
			protected.Get("/notifications", h.NotificationHandler.ListNotifications)
			protected.Get("/assets", h.AssetHandler.ListAssets)
			protected.Get("/assets/{code}", h.AssetHandler.GetAsset)

			//requesters
			protected.Group(func(ur chi.Router) {
				ur.Use(h.AuthMiddleware.RequireRole(models.UserRole))
				ur.Post("/asset-requests", h.RequestHandler.SubmitRequest)
				ur.Post("/report-issue", h.IssueHandler.ReportIssue)
			})

			//department heads and admins
			protected.Group(func(rv chi.Router) {
				rv.Use(h.AuthMiddleware.RequireRole(models.DepartmentHeadRole, models.AdministratorRole))

				rv.Post("/notifications", h.NotificationHandler.SendNotification)
				rv.Post("/assign-asset", h.AssignmentHandler.AssignAsset)
				rv.Post("/unassign-asset", h.AssignmentHandler.UnassignAsset)
				rv.Get("/users", h.UserHandler.ListUsers)

				rv.Get("/asset-requests", h.RequestHandler.ListRequests)
				rv.Put("/asset-requests/{id}", h.RequestHandler.DecideRequest)
				rv.Get("/issue-reports", h.IssueHandler.ListIssues)
				rv.Put("/issue-reports/{id}", h.IssueHandler.DecideIssue)
			})

			//admin only
			protected.Group(func(ar chi.Router) {
				ar.Use(h.AuthMiddleware.RequireRole(models.AdministratorRole))

				ar.Post("/assets", h.AssetHandler.CreateAsset)
				ar.Put("/assets/{code}", h.AssetHandler.UpdateAsset)
				ar.Delete("/assets/{code}", h.AssetHandler.DeleteAsset)

				ar.Post("/users", h.UserHandler.CreateUser)
				ar.Delete("/users/{id}", h.UserHandler.DeleteUser)
				ar.Delete("/asset-requests/{id}", h.RequestHandler.DeleteRequest)
			})
		})
	})

	return r
}
