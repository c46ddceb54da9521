package middlewareprovider

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/serviceprovider/auth"
	"assetflow/utils"
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type contextKey string

const identityContextKey contextKey = "identity_key"

type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
}

type DefaultAuthMiddleware struct {
	jwt    auth.JWTService
	users  UserLookup
	logger providers.ZapLoggerProvider
}

func NewAuthMiddlewareService(jwt auth.JWTService, users UserLookup, logger providers.ZapLoggerProvider) providers.AuthMiddlewareService {
	return &DefaultAuthMiddleware{
		jwt:    jwt,
		users:  users,
		logger: logger,
	}
}

func (a *DefaultAuthMiddleware) JWTAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessToken := r.Header.Get("Authorization")

			if accessToken == "" {
				utils.RespondError(w, http.StatusUnauthorized, models.NewAuthenticationError("missing access token"), "missing access token")
				return
			}

			identity, err := a.jwt.ParseJWT(accessToken)
			if errors.Is(err, auth.ErrTokenExpired) {
				refreshToken := r.Header.Get("refresh_token")
				if refreshToken == "" {
					utils.RespondError(w, http.StatusUnauthorized, models.NewAuthenticationError("missing refresh token"), "access token expired, and refresh token missing")
					return
				}
				identity, err = a.refresh(r.Context(), w, refreshToken)
				if err != nil {
					a.logger.GetLogger().Warn("token refresh failed", zap.Error(err))
					utils.RespondError(w, http.StatusUnauthorized, models.NewAuthenticationError("refresh failed"), "invalid or expired refresh token")
					return
				}
			} else if err != nil {
				utils.RespondError(w, http.StatusUnauthorized, models.NewAuthenticationError("invalid token"), "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), identityContextKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// refresh reloads role and department from the user directory so a role change takes effect
// on the next token rotation, and returns the new tokens in response headers.
func (a *DefaultAuthMiddleware) refresh(ctx context.Context, w http.ResponseWriter, refreshToken string) (models.Identity, error) {
	userID, err := a.jwt.ParseRefreshToken(refreshToken)
	if err != nil {
		return models.Identity{}, err
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return models.Identity{}, err
	}
	user, err := a.users.GetByID(ctx, userUUID)
	if err != nil {
		return models.Identity{}, err
	}

	identity := models.Identity{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
	newAccessToken, err := a.jwt.GenerateJWT(identity)
	if err != nil {
		return models.Identity{}, err
	}
	newRefreshToken, err := a.jwt.GenerateRefreshToken(identity.UserID)
	if err != nil {
		return models.Identity{}, err
	}
	w.Header().Set("Authorization", newAccessToken)
	w.Header().Set("Refresh_token", newRefreshToken)
	return identity, nil
}

func (a *DefaultAuthMiddleware) RequireRole(allowedRoles ...models.Role) func(http.Handler) http.Handler {
	allowed := make(map[models.Role]bool)
	for _, role := range allowedRoles {
		allowed[role] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := a.GetIdentityFromContext(r)
			if err != nil {
				utils.RespondAppError(w, err)
				return
			}
			if !allowed[identity.Role] {
				utils.RespondError(w, http.StatusForbidden, models.NewAuthorizationError("forbidden"), "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (a *DefaultAuthMiddleware) GetIdentityFromContext(r *http.Request) (models.Identity, error) {
	identity, ok := r.Context().Value(identityContextKey).(models.Identity)
	if !ok {
		return models.Identity{}, models.NewAuthenticationError("identity not found in context")
	}
	return identity, nil
}
