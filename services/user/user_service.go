package userservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	"assetflow/serviceprovider/auth"
	assignmentservice "assetflow/services/assignment"
	"assetflow/services/policy"
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const dashboardTTL = 5 * time.Minute

type UserService interface {
	CreateUser(ctx context.Context, caller models.Identity, req CreateUserReq) (models.User, error)
	Login(ctx context.Context, req LoginReq) (LoginRes, error)
	FirebaseLogin(ctx context.Context, idToken string) (LoginRes, error)
	ListUsers(ctx context.Context, caller models.Identity, departmentID string) (DepartmentUsers, error)
	AssignedAsset(ctx context.Context, caller models.Identity) (*models.Asset, error)
	Dashboard(ctx context.Context, caller models.Identity) (DashboardRes, error)
	DeleteUser(ctx context.Context, caller models.Identity, id uuid.UUID) error
	// EnsureAdmin creates the bootstrap administrator when no user with that username exists.
	EnsureAdmin(ctx context.Context, username, password, email string) error
}

type userService struct {
	store       repository.Store
	coordinator assignmentservice.Coordinator
	jwt         auth.JWTService
	firebase    providers.FirebaseProvider
	cache       providers.RedisProvider
	logger      providers.ZapLoggerProvider
}

// NewUserService builds the user directory. firebase may be nil when federated login is disabled.
func NewUserService(
	store repository.Store,
	coordinator assignmentservice.Coordinator,
	jwt auth.JWTService,
	firebase providers.FirebaseProvider,
	cache providers.RedisProvider,
	logger providers.ZapLoggerProvider,
) UserService {
	return &userService{
		store:       store,
		coordinator: coordinator,
		jwt:         jwt,
		firebase:    firebase,
		cache:       cache,
		logger:      logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, caller models.Identity, req CreateUserReq) (models.User, error) {
	if err := policy.Authorize(caller, policy.CreateUser); err != nil {
		return models.User{}, err
	}
	if !req.Role.Valid() {
		return models.User{}, models.NewValidationError("unknown role %s", req.Role)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, models.NewInternalError(err, "failed to hash password")
	}

	user, err := s.store.Users().Create(ctx, models.User{
		Username:       strings.TrimSpace(req.Username),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:   string(hash),
		Role:           req.Role,
		DepartmentID:   req.DepartmentID,
		DepartmentName: req.DepartmentName,
	})
	if err != nil {
		return models.User{}, err
	}
	s.logger.GetLogger().Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.String("role", string(user.Role)),
		zap.String("caller", caller.Username))
	return user, nil
}

func (s *userService) Login(ctx context.Context, req LoginReq) (LoginRes, error) {
	user, err := s.store.Users().GetByUsername(ctx, req.Username)
	if err != nil {
		if models.IsKind(err, models.NotFoundErr) {
			return LoginRes{}, models.NewAuthenticationError("invalid username or password")
		}
		return LoginRes{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.GetLogger().Info("login rejected", zap.String("username", req.Username))
		return LoginRes{}, models.NewAuthenticationError("invalid username or password")
	}
	return s.issueTokens(user)
}

func (s *userService) FirebaseLogin(ctx context.Context, idToken string) (LoginRes, error) {
	if s.firebase == nil {
		return LoginRes{}, models.NewPreconditionError("federated login is not configured")
	}
	token, err := s.firebase.VerifyIDToken(ctx, idToken)
	if err != nil {
		s.logger.GetLogger().Warn("firebase token rejected", zap.Error(err))
		return LoginRes{}, models.NewAuthenticationError("invalid id token")
	}
	email, _ := token.Claims["email"].(string)
	if email == "" {
		return LoginRes{}, models.NewAuthenticationError("id token carries no email")
	}

	user, err := s.store.Users().GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if models.IsKind(err, models.NotFoundErr) {
			return LoginRes{}, models.NewAuthenticationError("no account registered for %s", email)
		}
		return LoginRes{}, err
	}
	return s.issueTokens(user)
}

func (s *userService) issueTokens(user models.User) (LoginRes, error) {
	access, err := s.jwt.GenerateJWT(identityOf(user))
	if err != nil {
		return LoginRes{}, models.NewInternalError(err, "failed to generate access token")
	}
	refresh, err := s.jwt.GenerateRefreshToken(user.ID.String())
	if err != nil {
		return LoginRes{}, models.NewInternalError(err, "failed to generate refresh token")
	}
	return LoginRes{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

func identityOf(user models.User) models.Identity {
	return models.Identity{
		UserID:       user.ID.String(),
		Username:     user.Username,
		Role:         user.Role,
		DepartmentID: user.DepartmentID,
	}
}

func (s *userService) ListUsers(ctx context.Context, caller models.Identity, departmentID string) (DepartmentUsers, error) {
	if err := policy.Authorize(caller, policy.ListUsers); err != nil {
		return DepartmentUsers{}, err
	}
	if caller.Role == models.DepartmentHeadRole {
		departmentID = caller.DepartmentID
	}

	heads, err := s.store.Users().List(ctx, models.UserFilter{DepartmentID: departmentID, Role: models.DepartmentHeadRole})
	if err != nil {
		return DepartmentUsers{}, err
	}
	users, err := s.store.Users().List(ctx, models.UserFilter{DepartmentID: departmentID, Role: models.UserRole})
	if err != nil {
		return DepartmentUsers{}, err
	}
	return DepartmentUsers{DepartmentHeads: heads, Users: users}, nil
}

func (s *userService) AssignedAsset(ctx context.Context, caller models.Identity) (*models.Asset, error) {
	user, err := s.callerUser(ctx, caller)
	if err != nil {
		return nil, err
	}
	return s.heldAsset(ctx, user)
}

func (s *userService) heldAsset(ctx context.Context, user models.User) (*models.Asset, error) {
	if !user.HoldsAsset() {
		return nil, nil
	}
	asset, err := s.store.Assets().GetByCode(ctx, *user.AssignedAsset)
	if err != nil {
		if models.IsKind(err, models.NotFoundErr) {
			return nil, nil
		}
		return nil, err
	}
	return &asset, nil
}

func (s *userService) Dashboard(ctx context.Context, caller models.Identity) (DashboardRes, error) {
	userID, err := uuid.Parse(caller.UserID)
	if err != nil {
		return DashboardRes{}, models.NewAuthenticationError("invalid caller identity")
	}
	key := assignmentservice.DashboardCacheKey(userID)

	cached, err := s.cache.Get(ctx, key)
	if err == nil {
		var res DashboardRes
		if jsonErr := jsoniter.UnmarshalFromString(cached, &res); jsonErr == nil {
			return res, nil
		}
		s.logger.GetLogger().Warn("discarding malformed dashboard cache entry", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		s.logger.GetLogger().Warn("dashboard cache read failed", zap.String("key", key), zap.Error(err))
	}

	user, err := s.callerUser(ctx, caller)
	if err != nil {
		return DashboardRes{}, err
	}
	asset, err := s.heldAsset(ctx, user)
	if err != nil {
		return DashboardRes{}, err
	}
	res := DashboardRes{User: user, Asset: asset}

	if payload, err := jsoniter.MarshalToString(res); err == nil {
		if err := s.cache.Set(ctx, key, payload, dashboardTTL); err != nil {
			s.logger.GetLogger().Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return res, nil
}

func (s *userService) callerUser(ctx context.Context, caller models.Identity) (models.User, error) {
	userID, err := uuid.Parse(caller.UserID)
	if err != nil {
		return models.User{}, models.NewAuthenticationError("invalid caller identity")
	}
	return s.store.Users().GetByID(ctx, userID)
}

func (s *userService) DeleteUser(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	if err := policy.Authorize(caller, policy.DeleteUser); err != nil {
		return err
	}

	var deleted models.User
	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		target, err := tx.Users().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if target.Role == models.AdministratorRole && target.ID.String() != caller.UserID {
			return models.NewAuthorizationError("cannot delete another administrator")
		}

		if _, err := s.coordinator.UnassignWithin(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.Requests().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.Issues().DeleteByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.Notifications().DeleteFor(ctx, target.Username); err != nil {
			return err
		}
		deleted = target
		return tx.Users().Delete(ctx, id)
	})
	if err != nil {
		s.logger.GetLogger().Warn("delete user failed", zap.String("user_id", id.String()), zap.Error(err))
		return err
	}

	if err := s.cache.Delete(ctx, assignmentservice.DashboardCacheKey(id)); err != nil {
		s.logger.GetLogger().Warn("failed to drop dashboard cache", zap.String("user_id", id.String()), zap.Error(err))
	}
	s.logger.GetLogger().Info("user deleted",
		zap.String("user_id", id.String()),
		zap.String("username", deleted.Username),
		zap.String("caller", caller.Username))
	return nil
}

func (s *userService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	if username == "" || password == "" {
		return nil
	}
	_, err := s.store.Users().GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !models.IsKind(err, models.NotFoundErr) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "failed to hash bootstrap password")
	}
	_, err = s.store.Users().Create(ctx, models.User{
		Username:     username,
		Email:        strings.ToLower(email),
		PasswordHash: string(hash),
		Role:         models.AdministratorRole,
	})
	if err != nil {
		return err
	}
	s.logger.GetLogger().Info("bootstrap administrator created", zap.String("username", username))
	return nil
}
