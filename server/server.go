package server

import (
	"assetflow/providers"
	"assetflow/providers/databaseprovider"
	"assetflow/providers/firebaseprovider"
	"assetflow/providers/metricsprovider"
	"assetflow/providers/middlewareprovider"
	"assetflow/providers/qrprovider"
	"assetflow/providers/redisprovider"
	"assetflow/repository"
	"assetflow/repository/memory"
	"assetflow/repository/postgres"
	"assetflow/routes"
	"assetflow/serviceprovider/auth"
	assetservice "assetflow/services/asset"
	assignmentservice "assetflow/services/assignment"
	issueservice "assetflow/services/issue"
	notificationservice "assetflow/services/notification"
	requestservice "assetflow/services/request"
	userservice "assetflow/services/user"
	"context"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Server struct {
	Config      providers.ConfigProvider
	Logger      providers.ZapLoggerProvider
	DB          providers.DBProvider
	Redis       providers.RedisProvider
	Store       repository.Store
	UserService userservice.UserService
	Router      http.Handler
	httpServer  *http.Server
}

// ServerInit wires storage, providers, services and routes. DB is nil on the memory backend.
func ServerInit(cfg providers.ConfigProvider, logger providers.ZapLoggerProvider) (*Server, error) {
	srv := &Server{Config: cfg, Logger: logger}

	switch cfg.GetStorageBackend() {
	case "memory":
		srv.Store = memory.NewStore()
		logger.GetLogger().Warn("using in-memory storage, data is lost on restart")
	default:
		db, err := databaseprovider.NewDBProvider(cfg.GetDatabaseString(), cfg.GetMigrationsDir())
		if err != nil {
			return nil, err
		}
		if err := db.MigrateUp(); err != nil {
			db.Close()
			return nil, err
		}
		srv.DB = db
		srv.Store = postgres.NewStore(db.DB())
	}

	srv.Redis = redisprovider.NewNopProvider()
	if addr := cfg.GetRedisAddr(); addr != "" {
		rdb := redisprovider.NewRedisProvider(addr)
		if err := rdb.Ping(context.Background()); err != nil {
			logger.GetLogger().Warn("redis unavailable, dashboard cache disabled", zap.String("addr", addr), zap.Error(err))
			rdb.Close()
		} else {
			srv.Redis = rdb
		}
	}

	firebase, err := firebaseprovider.NewFirebaseProviderFromFile(cfg.GetFirebaseCredentialsFile())
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialise firebase")
	}

	metrics := metricsprovider.NewPrometheusProvider()
	qr := qrprovider.NewFileQRProvider(cfg.GetQRDir())
	jwt := auth.NewJWTService(cfg.GetJWTSecret(), cfg.GetRefreshSecret())
	middleware := middlewareprovider.NewAuthMiddlewareService(jwt, srv.Store.Users(), logger)

	// services
	coordinator := assignmentservice.NewCoordinator(srv.Store, srv.Redis, metrics, logger)
	notifications := notificationservice.NewNotificationService(srv.Store, logger)
	requestService := requestservice.NewRequestService(srv.Store, coordinator, notifications, metrics, logger)
	issueService := issueservice.NewIssueService(srv.Store, notifications, metrics, logger)
	assetService := assetservice.NewAssetService(srv.Store, coordinator, qr, logger)
	srv.UserService = userservice.NewUserService(srv.Store, coordinator, jwt, firebase, srv.Redis, logger)

	username, password, email := cfg.GetBootstrapAdmin()
	if err := srv.UserService.EnsureAdmin(context.Background(), username, password, email); err != nil {
		return nil, errors.Wrap(err, "failed to bootstrap administrator")
	}

	srv.Router = routes.RegisterRoutes(routes.RouteHandler{
		UserHandler:         userservice.NewUserHandler(srv.UserService, middleware, logger),
		AssetHandler:        assetservice.NewAssetHandler(assetService, middleware, logger),
		AssignmentHandler:   assignmentservice.NewAssignmentHandler(coordinator, middleware, logger),
		RequestHandler:      requestservice.NewRequestHandler(requestService, middleware),
		IssueHandler:        issueservice.NewIssueHandler(issueService, middleware),
		NotificationHandler: notificationservice.NewNotificationHandler(notifications, middleware),
		AuthMiddleware:      middleware,
		Metrics:             metrics.Handler(),
		QRDir:               cfg.GetQRDir(),
	})
	return srv, nil
}

func (s *Server) Start() {
	addr := ":" + s.Config.GetServerPort()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}

	s.Logger.GetLogger().Info("server running", zap.String("addr", addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.Logger.GetLogger().Fatal("server error", zap.Error(err))
	}
}

func (s *Server) Stop() {
	s.Logger.GetLogger().Info("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.Logger.GetLogger().Error("error shutting down server", zap.Error(err))
		}
	}
	if err := s.Redis.Close(); err != nil {
		s.Logger.GetLogger().Error("error closing redis", zap.Error(err))
	}
	if s.DB != nil {
		if err := s.DB.Close(); err != nil {
			s.Logger.GetLogger().Error("error closing DB", zap.Error(err))
		}
	}
	s.Logger.GetLogger().Info("server shutdown complete")
}
