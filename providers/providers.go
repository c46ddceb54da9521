package providers

import (
	"assetflow/models"
	"context"
	"net/http"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type AuthMiddlewareService interface {
	JWTAuthMiddleware() func(http.Handler) http.Handler
	RequireRole(roles ...models.Role) func(http.Handler) http.Handler
	GetIdentityFromContext(r *http.Request) (models.Identity, error)
}

type ConfigProvider interface {
	LoadEnv() error
	GetDatabaseString() string
	GetServerPort() string
	GetStorageBackend() string
	GetMigrationsDir() string
	GetRedisAddr() string
	GetJWTSecret() string
	GetRefreshSecret() string
	GetQRDir() string
	GetFirebaseCredentialsFile() string
	GetBootstrapAdmin() (username, password, email string)
	GetLogMode() string
}

type DBProvider interface {
	DB() *sqlx.DB
	MigrateUp() error
	MigrateDown() error
	Close() error
}

type ZapLoggerProvider interface {
	InitLogger()
	SyncLogger()
	GetLogger() *zap.Logger
}

type RedisProvider interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, keys ...string) error
	Ping(ctx context.Context) error
	Close() error
}

type FirebaseProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*firebaseauth.Token, error)
}

// QRProvider produces the display artifact for an asset and returns an opaque reference to it.
type QRProvider interface {
	Generate(ctx context.Context, assetCode, payload string) (string, error)
	Remove(ctx context.Context, ref string) error
}

type MetricsProvider interface {
	ObserveTransition(workflow, from, to string)
	ObserveAssignment(action string)
	Handler() http.Handler
}
