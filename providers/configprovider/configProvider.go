package configprovider

import (
	"assetflow/providers"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type EnvConfigProvider struct {
	dbUser         string
	dbPassword     string
	dbHost         string
	dbPort         string
	dbName         string
	serverPort     string
	storageBackend string
	migrationsDir  string
	redisAddr      string
	jwtSecret      string
	refreshSecret  string
	qrDir          string
	firebaseFile   string
	adminUsername  string
	adminPassword  string
	adminEmail     string
	logMode        string
}

func NewConfigProvider() providers.ConfigProvider {
	return &EnvConfigProvider{}
}

func (e *EnvConfigProvider) LoadEnv() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not loaded, using system envs")
	}

	e.dbUser = os.Getenv("DB_USER")
	e.dbPassword = os.Getenv("DB_PASSWORD")
	e.dbHost = os.Getenv("DB_HOST")
	e.dbPort = os.Getenv("DB_PORT")
	e.dbName = os.Getenv("DB_NAME")
	e.serverPort = getEnv("SERVER_PORT", "8080")
	e.storageBackend = getEnv("STORAGE_BACKEND", "postgres")
	e.migrationsDir = getEnv("MIGRATIONS_DIR", "file://database/migrations")
	e.redisAddr = os.Getenv("REDIS_ADDR")
	e.jwtSecret = os.Getenv("SECRET_KEY")
	e.refreshSecret = os.Getenv("REFRESH_TOKEN")
	e.qrDir = getEnv("QR_DIR", "public/qrcodes")
	e.firebaseFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")
	e.adminUsername = os.Getenv("ADMIN_USERNAME")
	e.adminPassword = os.Getenv("ADMIN_PASSWORD")
	e.adminEmail = os.Getenv("ADMIN_EMAIL")
	e.logMode = getEnv("LOG_MODE", "development")

	if e.jwtSecret == "" || e.refreshSecret == "" {
		return fmt.Errorf("SECRET_KEY and REFRESH_TOKEN must be set")
	}
	if e.storageBackend != "postgres" && e.storageBackend != "memory" {
		return fmt.Errorf("unsupported STORAGE_BACKEND %q", e.storageBackend)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (e *EnvConfigProvider) GetServerPort() string {
	return e.serverPort
}

func (e *EnvConfigProvider) GetDatabaseString() string {
	return fmt.Sprintf("user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		e.dbUser, e.dbPassword, e.dbHost, e.dbPort, e.dbName)
}

func (e *EnvConfigProvider) GetStorageBackend() string          { return e.storageBackend }
func (e *EnvConfigProvider) GetMigrationsDir() string           { return e.migrationsDir }
func (e *EnvConfigProvider) GetRedisAddr() string               { return e.redisAddr }
func (e *EnvConfigProvider) GetJWTSecret() string               { return e.jwtSecret }
func (e *EnvConfigProvider) GetRefreshSecret() string           { return e.refreshSecret }
func (e *EnvConfigProvider) GetQRDir() string                   { return e.qrDir }
func (e *EnvConfigProvider) GetFirebaseCredentialsFile() string { return e.firebaseFile }

func (e *EnvConfigProvider) GetBootstrapAdmin() (string, string, string) {
	return e.adminUsername, e.adminPassword, e.adminEmail
}

func (e *EnvConfigProvider) GetLogMode() string {
	return e.logMode
}
