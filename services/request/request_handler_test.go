package requestservice

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"assetflow/models"
	"assetflow/providers"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestSubmitRequestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockRequestService(ctrl)
	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	handler := NewRequestHandler(mockService, mockAuth)
	alice := models.Identity{UserID: uuid.NewString(), Username: "alice", Role: models.UserRole, DepartmentID: "D1"}

	testCases := []struct {
		name               string
		body               string
		authErr            error
		expectServiceCall  bool
		serviceErr         error
		expectedStatusCode int
	}{
		{name: "unauthenticated", body: `{"asset_code":"A-100"}`, authErr: models.NewAuthenticationError("no token"), expectedStatusCode: http.StatusUnauthorized},
		{name: "missing asset code", body: `{}`, expectedStatusCode: http.StatusBadRequest},
		{name: "asset unavailable", body: `{"asset_code":"A-100"}`, expectServiceCall: true, serviceErr: models.NewConflictError("asset A-100 is not available in your department"), expectedStatusCode: http.StatusBadRequest},
		{name: "wrong role", body: `{"asset_code":"A-100"}`, expectServiceCall: true, serviceErr: models.NewAuthorizationError("no"), expectedStatusCode: http.StatusForbidden},
		{name: "unknown user", body: `{"asset_code":"A-100"}`, expectServiceCall: true, serviceErr: models.NewNotFoundError("user not found"), expectedStatusCode: http.StatusNotFound},
		{name: "created", body: `{"asset_code":"A-100"}`, expectServiceCall: true, expectedStatusCode: http.StatusCreated},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/asset-requests", bytes.NewBufferString(tc.body))
			rec := httptest.NewRecorder()
			mockAuth.EXPECT().GetIdentityFromContext(req).Return(alice, tc.authErr)
			if tc.expectServiceCall {
				mockService.EXPECT().Submit(gomock.Any(), alice, "A-100").
					Return(models.AssetRequest{ID: uuid.New(), AssetCode: "A-100", Status: models.RequestPending}, tc.serviceErr)
			}

			handler.SubmitRequest(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestDecideRequestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockRequestService(ctrl)
	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	handler := NewRequestHandler(mockService, mockAuth)
	admin := models.Identity{UserID: uuid.NewString(), Username: "root", Role: models.AdministratorRole}
	id := uuid.New()

	testCases := []struct {
		name               string
		pathID             string
		body               string
		expectServiceCall  bool
		serviceErr         error
		expectedStatusCode int
	}{
		{name: "bad id", pathID: "nope", body: `{"decision":"approve"}`, expectedStatusCode: http.StatusBadRequest},
		{name: "missing decision", pathID: id.String(), body: `{}`, expectedStatusCode: http.StatusBadRequest},
		{name: "wrong stage", pathID: id.String(), body: `{"decision":"approve"}`, expectServiceCall: true, serviceErr: models.NewPreconditionError("asset request is Pending, expected HODApproved"), expectedStatusCode: http.StatusBadRequest},
		{name: "missing record", pathID: id.String(), body: `{"decision":"approve"}`, expectServiceCall: true, serviceErr: models.NewNotFoundError("missing"), expectedStatusCode: http.StatusNotFound},
		{name: "approved", pathID: id.String(), body: `{"decision":"approve"}`, expectServiceCall: true, expectedStatusCode: http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/asset-requests/"+tc.pathID, bytes.NewBufferString(tc.body)), "id", tc.pathID)
			rec := httptest.NewRecorder()
			mockAuth.EXPECT().GetIdentityFromContext(req).Return(admin, nil)
			if tc.expectServiceCall {
				mockService.EXPECT().Decide(gomock.Any(), admin, id, models.Approve, gomock.Nil()).
					Return(models.AssetRequest{ID: id, Status: models.RequestAdminApproved}, tc.serviceErr)
			}

			handler.DecideRequest(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}

func TestListAndDeleteRequestHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockRequestService(ctrl)
	mockAuth := providers.NewMockAuthMiddlewareService(ctrl)
	handler := NewRequestHandler(mockService, mockAuth)
	admin := models.Identity{UserID: uuid.NewString(), Username: "root", Role: models.AdministratorRole}

	listReq := httptest.NewRequest(http.MethodGet, "/api/asset-requests?status=all&department=D1", nil)
	rec := httptest.NewRecorder()
	mockAuth.EXPECT().GetIdentityFromContext(listReq).Return(admin, nil)
	mockService.EXPECT().List(gomock.Any(), admin, models.WorkflowFilter{Status: "all", DepartmentID: "D1"}).Return([]models.AssetRequest{}, nil)
	handler.ListRequests(rec, listReq)
	assert.Equal(t, http.StatusOK, rec.Code)

	id := uuid.New()
	delReq := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/asset-requests/"+id.String(), nil), "id", id.String())
	rec = httptest.NewRecorder()
	mockAuth.EXPECT().GetIdentityFromContext(delReq).Return(admin, nil)
	mockService.EXPECT().Delete(gomock.Any(), admin, id).Return(nil)
	handler.DeleteRequest(rec, delReq)
	assert.Equal(t, http.StatusOK, rec.Code)
}
