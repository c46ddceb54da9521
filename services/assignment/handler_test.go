package assignmentservice

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetflow/models"
	"assetflow/providers"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAssignAssetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, c := newFixture(t)
	alice := seedUser(t, store, "alice")
	asset := seedAsset(t, store, "A-100")

	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	mockLogger := providers.NewMockZapLoggerProvider(ctrl)
	mockLogger.EXPECT().GetLogger().Return(zap.NewNop()).AnyTimes()
	handler := NewAssignmentHandler(c, mockAuth, mockLogger)

	testCases := []struct {
		name               string
		body               string
		identity           models.Identity
		authErr            error
		expectedStatusCode int
	}{
		{
			name:               "unauthenticated",
			body:               `{}`,
			authErr:            models.NewAuthenticationError("missing identity"),
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "malformed body",
			body:               `{"user_id":`,
			identity:           admin,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "invalid asset id",
			body:               `{"user_id":"` + alice.ID.String() + `","asset_code":"A-100","asset_id":"nope"}`,
			identity:           admin,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "forbidden for user role",
			body:               `{"user_id":"` + alice.ID.String() + `","asset_code":"A-100","asset_id":"` + asset.ID.String() + `"}`,
			identity:           models.Identity{Role: models.UserRole},
			expectedStatusCode: http.StatusForbidden,
		},
		{
			name:               "unknown user",
			body:               `{"user_id":"` + uuid.NewString() + `","asset_code":"A-100","asset_id":"` + asset.ID.String() + `"}`,
			identity:           admin,
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:               "success",
			body:               `{"user_id":"` + alice.ID.String() + `","asset_code":"A-100","asset_id":"` + asset.ID.String() + `"}`,
			identity:           admin,
			expectedStatusCode: http.StatusOK,
		},
		{
			name:               "asset no longer available",
			body:               `{"user_id":"` + alice.ID.String() + `","asset_code":"A-100","asset_id":"` + asset.ID.String() + `"}`,
			identity:           admin,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/assign-asset", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			mockAuth.EXPECT().GetIdentityFromContext(req).Return(tc.identity, tc.authErr)

			handler.AssignAsset(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
	assertConsistent(t, store)
}

func TestUnassignAssetHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store, c := newFixture(t)
	alice := seedUser(t, store, "alice")
	asset := seedAsset(t, store, "A-100")
	_, err := c.Assign(context.Background(), admin, alice.ID, "A-100", asset.ID)
	require.NoError(t, err)

	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	mockLogger := providers.NewMockZapLoggerProvider(ctrl)
	mockLogger.EXPECT().GetLogger().Return(zap.NewNop()).AnyTimes()
	handler := NewAssignmentHandler(c, mockAuth, mockLogger)

	req := httptest.NewRequest(http.MethodPost, "/api/unassign-asset", bytes.NewBufferString(`{"user_id":"`+alice.ID.String()+`"}`))
	rec := httptest.NewRecorder()
	mockAuth.EXPECT().GetIdentityFromContext(req).Return(admin, nil)

	handler.UnassignAsset(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	got, err := store.Assets().GetByCode(context.Background(), "A-100")
	require.NoError(t, err)
	assert.Equal(t, models.AssetAvailable, got.Status)
}
