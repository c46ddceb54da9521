package notificationservice

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetflow/models"
	"assetflow/providers"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotificationsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockNotificationService(ctrl)
	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	handler := NewNotificationHandler(mockService, mockAuth)

	alice := models.Identity{UserID: uuid.NewString(), Username: "alice", Role: models.UserRole}

	t.Run("unauthenticated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
		rec := httptest.NewRecorder()
		mockAuth.EXPECT().GetIdentityFromContext(req).Return(models.Identity{}, models.NewAuthenticationError("missing identity"))

		handler.ListNotifications(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/notifications", nil)
		rec := httptest.NewRecorder()
		mockAuth.EXPECT().GetIdentityFromContext(req).Return(alice, nil)
		mockService.EXPECT().ListFor(gomock.Any(), alice).Return([]models.Notification{
			{ID: uuid.New(), Username: "alice", Message: "newer", CreatedAt: time.Now()},
			{ID: uuid.New(), Username: "alice", Message: "older", CreatedAt: time.Now().Add(-time.Hour)},
		}, nil)

		handler.ListNotifications(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var got []models.Notification
		require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "newer", got[0].Message)
	})
}

func TestSendNotificationHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockNotificationService(ctrl)
	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	handler := NewNotificationHandler(mockService, mockAuth)

	hod := models.Identity{Username: "hod", Role: models.DepartmentHeadRole}

	testCases := []struct {
		name               string
		body               string
		expectServiceCall  bool
		serviceErr         error
		expectedStatusCode int
	}{
		{name: "missing message", body: `{"username":"alice"}`, expectedStatusCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"username":"alice","message":"x","extra":1}`, expectedStatusCode: http.StatusBadRequest},
		{name: "forbidden", body: `{"username":"alice","message":"x"}`, expectServiceCall: true, serviceErr: models.NewAuthorizationError("no"), expectedStatusCode: http.StatusForbidden},
		{name: "created", body: `{"username":"alice","message":"x"}`, expectServiceCall: true, expectedStatusCode: http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/notifications", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			mockAuth.EXPECT().GetIdentityFromContext(req).Return(hod, nil)
			if tc.expectServiceCall {
				mockService.EXPECT().Send(gomock.Any(), hod, "alice", "x").Return(models.Notification{Username: "alice", Message: "x"}, tc.serviceErr)
			}

			handler.SendNotification(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
