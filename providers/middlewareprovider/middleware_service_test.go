package middlewareprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository/memory"
	"assetflow/serviceprovider/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	accessSecret  = "access-secret"
	refreshSecret = "refresh-secret"
)

func expiredAccessToken(t *testing.T, identity models.Identity) string {
	claims := jwt.MapClaims{
		"sub":        identity.UserID,
		"username":   identity.Username,
		"role":       string(identity.Role),
		"department": identity.DepartmentID,
		"typ":        "access",
		"exp":        time.Now().Add(-time.Minute).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(accessSecret))
	require.NoError(t, err)
	return token
}

func TestJWTAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := memory.NewStore()
	user, err := store.Users().Create(context.Background(), models.User{
		Username: "alice", Email: "alice@example.com", Role: models.DepartmentHeadRole, DepartmentID: "eng",
	})
	require.NoError(t, err)

	mockLogger := providers.NewMockZapLoggerProvider(ctrl)
	mockLogger.EXPECT().GetLogger().Return(zap.NewNop()).AnyTimes()

	jwtService := auth.NewJWTService(accessSecret, refreshSecret)
	mw := NewAuthMiddlewareService(jwtService, store.Users(), mockLogger)

	// token still carries the old role, refresh must pick up the directory's role
	stale := models.Identity{UserID: user.ID.String(), Username: "alice", Role: models.UserRole, DepartmentID: "eng"}
	valid, err := jwtService.GenerateJWT(stale)
	require.NoError(t, err)
	refresh, err := jwtService.GenerateRefreshToken(user.ID.String())
	require.NoError(t, err)

	testCases := []struct {
		name               string
		access             string
		refresh            string
		expectedStatusCode int
		expectedRole       models.Role
		expectRotation     bool
	}{
		{name: "missing token", expectedStatusCode: http.StatusUnauthorized},
		{name: "invalid token", access: "bogus", expectedStatusCode: http.StatusUnauthorized},
		{name: "valid token", access: valid, expectedStatusCode: http.StatusOK, expectedRole: models.UserRole},
		{name: "expired without refresh", access: expiredAccessToken(t, stale), expectedStatusCode: http.StatusUnauthorized},
		{name: "expired with bad refresh", access: expiredAccessToken(t, stale), refresh: "bogus", expectedStatusCode: http.StatusUnauthorized},
		{
			name:               "expired with refresh",
			access:             expiredAccessToken(t, stale),
			refresh:            refresh,
			expectedStatusCode: http.StatusOK,
			expectedRole:       models.DepartmentHeadRole,
			expectRotation:     true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var seen models.Identity
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, err := mw.GetIdentityFromContext(r)
				require.NoError(t, err)
				seen = identity
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/assets", nil)
			if tc.access != "" {
				req.Header.Set("Authorization", tc.access)
			}
			if tc.refresh != "" {
				req.Header.Set("refresh_token", tc.refresh)
			}
			rec := httptest.NewRecorder()

			mw.JWTAuthMiddleware()(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.expectedStatusCode == http.StatusOK {
				assert.Equal(t, tc.expectedRole, seen.Role)
			}
			if tc.expectRotation {
				assert.NotEmpty(t, rec.Header().Get("Authorization"))
				assert.NotEmpty(t, rec.Header().Get("Refresh_token"))
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := providers.NewMockZapLoggerProvider(ctrl)
	mw := NewAuthMiddlewareService(auth.NewJWTService(accessSecret, refreshSecret), memory.NewStore().Users(), mockLogger)

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	guarded := mw.RequireRole(models.DepartmentHeadRole, models.AdministratorRole)(ok)

	testCases := []struct {
		name               string
		identity           *models.Identity
		expectedStatusCode int
	}{
		{name: "no identity", expectedStatusCode: http.StatusUnauthorized},
		{name: "user role", identity: &models.Identity{Role: models.UserRole}, expectedStatusCode: http.StatusForbidden},
		{name: "department head", identity: &models.Identity{Role: models.DepartmentHeadRole}, expectedStatusCode: http.StatusOK},
		{name: "administrator", identity: &models.Identity{Role: models.AdministratorRole}, expectedStatusCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tc.identity != nil {
				req = req.WithContext(context.WithValue(req.Context(), identityContextKey, *tc.identity))
			}
			rec := httptest.NewRecorder()

			guarded.ServeHTTP(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
