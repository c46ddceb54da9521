package auth

import (
	"assetflow/models"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

type JWTService interface {
	GenerateJWT(identity models.Identity) (string, error)
	GenerateRefreshToken(userID string) (string, error)
	ParseJWT(tokenStr string) (models.Identity, error)
	ParseRefreshToken(tokenStr string) (string, error)
}

// ErrTokenExpired lets the middleware fall back to the refresh token.
var ErrTokenExpired = errors.New("invalid or expired token")

type jwtService struct {
	jwtSecret          []byte
	refreshSecret      []byte
	tokenExpiry        time.Duration
	refreshTokenExpiry time.Duration
}

func NewJWTService(secret, refreshSecret string) JWTService {
	return &jwtService{
		jwtSecret:          []byte(secret),
		refreshSecret:      []byte(refreshSecret),
		tokenExpiry:        15 * time.Minute,
		refreshTokenExpiry: 7 * 24 * time.Hour,
	}
}

func (j *jwtService) GenerateJWT(identity models.Identity) (string, error) {
	claims := jwt.MapClaims{
		"sub":        identity.UserID,
		"username":   identity.Username,
		"role":       string(identity.Role),
		"department": identity.DepartmentID,
		"typ":        "access",
		"exp":        time.Now().Add(j.tokenExpiry).Unix(),
		"iat":        time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.jwtSecret)
}

func (j *jwtService) GenerateRefreshToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": "refresh",
		"exp": time.Now().Add(j.refreshTokenExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.refreshSecret)
}

func (j *jwtService) ParseJWT(tokenStr string) (models.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return j.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Identity{}, ErrTokenExpired
		}
		return models.Identity{}, fmt.Errorf("invalid token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "access" {
		return models.Identity{}, errors.New("invalid token claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return models.Identity{}, errors.New("invalid 'sub' claim")
	}
	role, _ := claims["role"].(string)
	if !models.Role(role).Valid() {
		return models.Identity{}, errors.New("invalid 'role' claim")
	}
	username, _ := claims["username"].(string)
	department, _ := claims["department"].(string)

	return models.Identity{
		UserID:       sub,
		Username:     username,
		Role:         models.Role(role),
		DepartmentID: department,
	}, nil
}

func (j *jwtService) ParseRefreshToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return j.refreshSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired refresh token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != "refresh" {
		return "", errors.New("invalid refresh token")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return "", errors.New("invalid 'sub' claim")
	}
	return sub, nil
}
