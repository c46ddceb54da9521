package userservice

import (
	"context"
	"testing"
	"time"

	"assetflow/models"
	"assetflow/providers"
	"assetflow/providers/loggerprovider"
	"assetflow/providers/metricsprovider"
	"assetflow/providers/redisprovider"
	"assetflow/repository/memory"
	"assetflow/serviceprovider/auth"
	assignmentservice "assetflow/services/assignment"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var root = models.Identity{UserID: uuid.NewString(), Username: "root", Role: models.AdministratorRole}

type fixture struct {
	store       *memory.Store
	coordinator assignmentservice.Coordinator
	jwt         auth.JWTService
	svc         UserService
}

func newFixture(t *testing.T, cache providers.RedisProvider, firebase providers.FirebaseProvider) *fixture {
	t.Helper()
	store := memory.NewStore()
	logger := loggerprovider.NewLogProvider()
	coordinator := assignmentservice.NewCoordinator(store, redisprovider.NewNopProvider(), metricsprovider.NewPrometheusProvider(), logger)
	jwt := auth.NewJWTService("secret", "refresh-secret")
	return &fixture{
		store:       store,
		coordinator: coordinator,
		jwt:         jwt,
		svc:         NewUserService(store, coordinator, jwt, firebase, cache, logger),
	}
}

func (f *fixture) createUser(t *testing.T, username string, role models.Role, department string) models.User {
	t.Helper()
	user, err := f.svc.CreateUser(context.Background(), root, CreateUserReq{
		Username:     username,
		Email:        username + "@example.com",
		Password:     "password1",
		Role:         role,
		DepartmentID: department,
	})
	require.NoError(t, err)
	return user
}

func TestCreateUserAndLogin(t *testing.T) {
	f := newFixture(t, redisprovider.NewNopProvider(), nil)
	ctx := context.Background()

	alice := f.createUser(t, "alice", models.UserRole, "D1")
	assert.NotEqual(t, "password1", alice.PasswordHash)

	_, err := f.svc.CreateUser(ctx, root, CreateUserReq{Username: "alice", Email: "other@example.com", Password: "password1", Role: models.UserRole})
	assert.True(t, models.IsKind(err, models.ConflictErr))

	_, err = f.svc.CreateUser(ctx, models.Identity{Role: models.DepartmentHeadRole}, CreateUserReq{Username: "bob", Role: models.UserRole})
	assert.True(t, models.IsKind(err, models.AuthorizationErr))

	res, err := f.svc.Login(ctx, LoginReq{Username: "alice", Password: "password1"})
	require.NoError(t, err)
	identity, err := f.jwt.ParseJWT(res.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, alice.ID.String(), identity.UserID)
	assert.Equal(t, models.UserRole, identity.Role)
	assert.Equal(t, "D1", identity.DepartmentID)
	assert.NotEmpty(t, res.RefreshToken)

	_, err = f.svc.Login(ctx, LoginReq{Username: "alice", Password: "wrong"})
	assert.True(t, models.IsKind(err, models.AuthenticationErr))
	_, err = f.svc.Login(ctx, LoginReq{Username: "nobody", Password: "password1"})
	assert.True(t, models.IsKind(err, models.AuthenticationErr))
}

func TestFirebaseLogin(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	firebase := providers.NewMockFirebaseProvider(ctrl)
	f := newFixture(t, redisprovider.NewNopProvider(), firebase)
	ctx := context.Background()
	f.createUser(t, "alice", models.UserRole, "D1")

	firebase.EXPECT().VerifyIDToken(gomock.Any(), "good").Return(&firebaseauth.Token{Claims: map[string]interface{}{"email": "Alice@example.com"}}, nil)
	res, err := f.svc.FirebaseLogin(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)

	firebase.EXPECT().VerifyIDToken(gomock.Any(), "stranger").Return(&firebaseauth.Token{Claims: map[string]interface{}{"email": "x@example.com"}}, nil)
	_, err = f.svc.FirebaseLogin(ctx, "stranger")
	assert.True(t, models.IsKind(err, models.AuthenticationErr))

	firebase.EXPECT().VerifyIDToken(gomock.Any(), "bad").Return(nil, errors.New("expired"))
	_, err = f.svc.FirebaseLogin(ctx, "bad")
	assert.True(t, models.IsKind(err, models.AuthenticationErr))

	disabled := newFixture(t, redisprovider.NewNopProvider(), nil)
	_, err = disabled.svc.FirebaseLogin(ctx, "good")
	assert.True(t, models.IsKind(err, models.PreconditionErr))
}

func TestListUsersScopesDepartmentHead(t *testing.T) {
	f := newFixture(t, redisprovider.NewNopProvider(), nil)
	ctx := context.Background()
	f.createUser(t, "alice", models.UserRole, "D1")
	f.createUser(t, "bob", models.UserRole, "D2")
	hod := f.createUser(t, "hod", models.DepartmentHeadRole, "D1")

	res, err := f.svc.ListUsers(ctx, models.Identity{UserID: hod.ID.String(), Role: models.DepartmentHeadRole, DepartmentID: "D1"}, "D2")
	require.NoError(t, err)
	require.Len(t, res.Users, 1)
	assert.Equal(t, "alice", res.Users[0].Username)
	require.Len(t, res.DepartmentHeads, 1)

	res, err = f.svc.ListUsers(ctx, root, "")
	require.NoError(t, err)
	assert.Len(t, res.Users, 2)

	_, err = f.svc.ListUsers(ctx, models.Identity{Role: models.UserRole}, "")
	assert.True(t, models.IsKind(err, models.AuthorizationErr))
}

func TestDeleteUserCascades(t *testing.T) {
	f := newFixture(t, redisprovider.NewNopProvider(), nil)
	ctx := context.Background()
	alice := f.createUser(t, "alice", models.UserRole, "D1")
	asset, err := f.store.Assets().Create(ctx, models.Asset{Code: "A-100", DepartmentID: "D1", Status: models.AssetAvailable})
	require.NoError(t, err)
	_, err = f.coordinator.Assign(ctx, root, alice.ID, "A-100", asset.ID)
	require.NoError(t, err)

	_, err = f.store.Requests().Create(ctx, models.AssetRequest{UserID: alice.ID, Username: "alice", AssetCode: "A-100", Status: models.RequestPending})
	require.NoError(t, err)
	_, err = f.store.Issues().Create(ctx, models.IssueReport{UserID: alice.ID, Username: "alice", AssetCode: "A-100", Message: "x", Status: models.IssuePending})
	require.NoError(t, err)
	_, err = f.store.Notifications().Append(ctx, "alice", "hello")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteUser(ctx, root, alice.ID))

	got, err := f.store.Assets().GetByCode(ctx, "A-100")
	require.NoError(t, err)
	assert.Equal(t, models.AssetAvailable, got.Status)
	assert.Nil(t, got.AssignedTo)

	requests, err := f.store.Requests().List(ctx, models.WorkflowFilter{})
	require.NoError(t, err)
	assert.Empty(t, requests)
	issues, err := f.store.Issues().List(ctx, models.WorkflowFilter{})
	require.NoError(t, err)
	assert.Empty(t, issues)
	notifications, err := f.store.Notifications().ListFor(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, notifications)

	_, err = f.store.Users().GetByID(ctx, alice.ID)
	assert.True(t, models.IsKind(err, models.NotFoundErr))
	assert.True(t, models.IsKind(f.svc.DeleteUser(ctx, root, alice.ID), models.NotFoundErr))
}

func TestDeleteAnotherAdministratorForbidden(t *testing.T) {
	f := newFixture(t, redisprovider.NewNopProvider(), nil)
	other := f.createUser(t, "other-admin", models.AdministratorRole, "")

	err := f.svc.DeleteUser(context.Background(), root, other.ID)
	assert.True(t, models.IsKind(err, models.AuthorizationErr))
	_, err = f.store.Users().GetByID(context.Background(), other.ID)
	assert.NoError(t, err)
}

func TestDashboardUsesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := providers.NewMockRedisProvider(ctrl)
	f := newFixture(t, cache, nil)
	ctx := context.Background()
	alice := f.createUser(t, "alice", models.UserRole, "D1")
	caller := models.Identity{UserID: alice.ID.String(), Username: "alice", Role: models.UserRole}
	key := assignmentservice.DashboardCacheKey(alice.ID)

	cache.EXPECT().Get(gomock.Any(), key).Return("", redis.Nil)
	cache.EXPECT().Set(gomock.Any(), key, gomock.Any(), 5*time.Minute).Return(nil)
	res, err := f.svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "alice", res.User.Username)
	assert.Nil(t, res.Asset)

	cache.EXPECT().Get(gomock.Any(), key).Return(`{"user":{"username":"cached"}}`, nil)
	res, err = f.svc.Dashboard(ctx, caller)
	require.NoError(t, err)
	assert.Equal(t, "cached", res.User.Username)
}

func TestEnsureAdmin(t *testing.T) {
	f := newFixture(t, redisprovider.NewNopProvider(), nil)
	ctx := context.Background()

	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin", "s3cret", "admin@example.com"))
	require.NoError(t, f.svc.EnsureAdmin(ctx, "admin", "other", "admin@example.com"))
	require.NoError(t, f.svc.EnsureAdmin(ctx, "", "", ""))

	admins, err := f.store.Users().List(ctx, models.UserFilter{Role: models.AdministratorRole})
	require.NoError(t, err)
	require.Len(t, admins, 1)

	_, err = f.svc.Login(ctx, LoginReq{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}
