package assetservice

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"assetflow/models"
	"assetflow/providers"
	"assetflow/providers/loggerprovider"
	"assetflow/providers/metricsprovider"
	"assetflow/providers/qrprovider"
	"assetflow/providers/redisprovider"
	"assetflow/repository/memory"
	assignmentservice "assetflow/services/assignment"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var admin = models.Identity{Username: "root", Role: models.AdministratorRole}

func newService(t *testing.T, qr providers.QRProvider) (*memory.Store, *assetService) {
	t.Helper()
	return newServiceWithCache(t, qr, redisprovider.NewNopProvider())
}

func newServiceWithCache(t *testing.T, qr providers.QRProvider, cache providers.RedisProvider) (*memory.Store, *assetService) {
	t.Helper()
	store := memory.NewStore()
	logger := loggerprovider.NewLogProvider()
	coordinator := assignmentservice.NewCoordinator(store, cache, metricsprovider.NewPrometheusProvider(), logger)
	svc := NewAssetService(store, coordinator, qr, logger).(*assetService)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return store, svc
}

func TestCreateAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	qr := providers.NewMockQRProvider(ctrl)
	_, svc := newService(t, qr)
	ctx := context.Background()

	req := CreateAssetReq{Name: "ThinkPad", Type: "laptop", Brand: "Lenovo", Model: "T14", DepartmentID: "D1"}

	qr.EXPECT().Generate(gomock.Any(), "ASSET-1700000000000", "Asset:ThinkPad,Code:ASSET-1700000000000").Return("/qrcodes/ASSET-1700000000000.png", nil)
	asset, err := svc.CreateAsset(ctx, admin, req)
	require.NoError(t, err)
	assert.Equal(t, "ASSET-1700000000000", asset.Code)
	assert.Equal(t, models.AssetAvailable, asset.Status)
	assert.Equal(t, "/qrcodes/ASSET-1700000000000.png", asset.QRCode)

	// duplicate code is rejected before any image is generated
	req.AssetCode = "ASSET-1700000000000"
	_, err = svc.CreateAsset(ctx, admin, req)
	assert.True(t, models.IsKind(err, models.ConflictErr))

	qr.EXPECT().Generate(gomock.Any(), "B-1", gomock.Any()).Return("", errors.New("disk full"))
	req.AssetCode = "B-1"
	_, err = svc.CreateAsset(ctx, admin, req)
	assert.True(t, models.IsKind(err, models.InternalErr))

	_, err = svc.CreateAsset(ctx, models.Identity{Role: models.DepartmentHeadRole}, req)
	assert.True(t, models.IsKind(err, models.AuthorizationErr))
}

func TestDuplicateCreateKeepsExistingQRCode(t *testing.T) {
	dir := t.TempDir()
	_, svc := newService(t, qrprovider.NewFileQRProvider(dir))
	ctx := context.Background()

	first, err := svc.CreateAsset(ctx, admin, CreateAssetReq{AssetCode: "A-100", Name: "ThinkPad", Type: "laptop"})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(first.QRCode, "/qrcodes/A-100-"))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(first.QRCode)))
	require.NoError(t, err)

	_, err = svc.CreateAsset(ctx, admin, CreateAssetReq{AssetCode: "A-100", Name: "Other", Type: "laptop"})
	assert.True(t, models.IsKind(err, models.ConflictErr))

	stored, err := svc.GetAsset(ctx, "A-100")
	require.NoError(t, err)
	assert.Equal(t, first.QRCode, stored.QRCode)
	_, err = os.Stat(filepath.Join(dir, filepath.Base(stored.QRCode)))
	assert.NoError(t, err, "existing asset's qr image must survive a duplicate create")

	// codes that differ only before a path separator get separate images
	x, err := svc.CreateAsset(ctx, admin, CreateAssetReq{AssetCode: "x/A", Name: "Mouse", Type: "peripheral"})
	require.NoError(t, err)
	y, err := svc.CreateAsset(ctx, admin, CreateAssetReq{AssetCode: "y/A", Name: "Mouse", Type: "peripheral"})
	require.NoError(t, err)
	assert.NotEqual(t, x.QRCode, y.QRCode)

	require.NoError(t, svc.DeleteAsset(ctx, admin, "x/A"))
	_, err = os.Stat(filepath.Join(dir, filepath.Base(y.QRCode)))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, filepath.Base(x.QRCode)))
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestUpdateAssignedAssetRefreshesHolder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	cache := providers.NewMockRedisProvider(ctrl)
	store, svc := newServiceWithCache(t, providers.NewMockQRProvider(ctrl), cache)
	ctx := context.Background()

	alice, err := store.Users().Create(ctx, models.User{Username: "alice", Email: "alice@example.com", Role: models.UserRole, DepartmentID: "D1"})
	require.NoError(t, err)
	asset, err := store.Assets().Create(ctx, models.Asset{Code: "A-100", Name: "ThinkPad", Model: "T14", Status: models.AssetAvailable})
	require.NoError(t, err)

	cache.EXPECT().Delete(gomock.Any(), assignmentservice.DashboardCacheKey(alice.ID)).Return(nil).Times(2)
	_, err = svc.coordinator.Assign(ctx, admin, alice.ID, "A-100", asset.ID)
	require.NoError(t, err)

	name, model := "ThinkPad X1", "Gen 11"
	_, err = svc.UpdateAsset(ctx, admin, "A-100", UpdateAssetReq{Name: &name, Model: &model})
	require.NoError(t, err)

	holder, err := store.Users().GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, holder.HoldsAsset())
	assert.Equal(t, "A-100", *holder.AssignedAsset)
	assert.Equal(t, "ThinkPad X1", *holder.AssetName)
	assert.Equal(t, "Gen 11", *holder.AssetModel)

	// an Available asset has no holder to refresh and no cache entry to drop
	_, err = store.Assets().Create(ctx, models.Asset{Code: "B-200", Name: "Dock", Status: models.AssetAvailable})
	require.NoError(t, err)
	_, err = svc.UpdateAsset(ctx, admin, "B-200", UpdateAssetReq{Name: &name})
	require.NoError(t, err)
}

func TestUpdateAssetKeepsStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	store, svc := newService(t, providers.NewMockQRProvider(ctrl))
	ctx := context.Background()
	_, err := store.Assets().Create(ctx, models.Asset{Code: "A-100", Name: "old", Status: models.AssetAssigned, AssignedTo: &models.Assignee{Username: "alice"}})
	require.NoError(t, err)

	name := "ThinkPad X1"
	asset, err := svc.UpdateAsset(ctx, admin, "A-100", UpdateAssetReq{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "ThinkPad X1", asset.Name)
	assert.Equal(t, models.AssetAssigned, asset.Status)
	assert.Equal(t, "alice", asset.AssignedTo.Username)

	_, err = svc.UpdateAsset(ctx, admin, "A-100", UpdateAssetReq{})
	assert.True(t, models.IsKind(err, models.ValidationErr))
	_, err = svc.UpdateAsset(ctx, admin, "Z-1", UpdateAssetReq{Name: &name})
	assert.True(t, models.IsKind(err, models.NotFoundErr))
}

func TestDeleteAsset(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	qr := providers.NewMockQRProvider(ctrl)
	store, svc := newService(t, qr)
	ctx := context.Background()
	_, err := store.Assets().Create(ctx, models.Asset{Code: "A-100", Status: models.AssetAssigned, QRCode: "/qrcodes/A-100.png"})
	require.NoError(t, err)
	_, err = store.Assets().Create(ctx, models.Asset{Code: "B-200", Status: models.AssetAvailable, QRCode: "/qrcodes/B-200.png"})
	require.NoError(t, err)

	err = svc.DeleteAsset(ctx, admin, "A-100")
	assert.True(t, models.IsKind(err, models.PreconditionErr))
	_, err = store.Assets().GetByCode(ctx, "A-100")
	require.NoError(t, err)

	qr.EXPECT().Remove(gomock.Any(), "/qrcodes/B-200.png").Return(errors.New("already gone"))
	require.NoError(t, svc.DeleteAsset(ctx, admin, "B-200"))
	_, err = store.Assets().GetByCode(ctx, "B-200")
	assert.True(t, models.IsKind(err, models.NotFoundErr))

	assert.True(t, models.IsKind(svc.DeleteAsset(ctx, admin, "B-200"), models.NotFoundErr))
	assert.True(t, models.IsKind(svc.DeleteAsset(ctx, models.Identity{Role: models.UserRole}, "A-100"), models.AuthorizationErr))
}
