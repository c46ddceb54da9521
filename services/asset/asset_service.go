package assetservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	assignmentservice "assetflow/services/assignment"
	"assetflow/services/policy"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

type AssetService interface {
	CreateAsset(ctx context.Context, caller models.Identity, req CreateAssetReq) (models.Asset, error)
	UpdateAsset(ctx context.Context, caller models.Identity, code string, req UpdateAssetReq) (models.Asset, error)
	GetAsset(ctx context.Context, code string) (models.Asset, error)
	ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error)
	DeleteAsset(ctx context.Context, caller models.Identity, code string) error
}

type assetService struct {
	store       repository.Store
	coordinator assignmentservice.Coordinator
	qr          providers.QRProvider
	logger      providers.ZapLoggerProvider
	now         func() time.Time
}

func NewAssetService(store repository.Store, coordinator assignmentservice.Coordinator, qr providers.QRProvider, logger providers.ZapLoggerProvider) AssetService {
	return &assetService{store: store, coordinator: coordinator, qr: qr, logger: logger, now: time.Now}
}

func (s *assetService) CreateAsset(ctx context.Context, caller models.Identity, req CreateAssetReq) (models.Asset, error) {
	if err := policy.Authorize(caller, policy.CreateAsset); err != nil {
		return models.Asset{}, err
	}
	code := strings.TrimSpace(req.AssetCode)
	if code == "" {
		code = fmt.Sprintf("ASSET-%d", s.now().UnixMilli())
	}
	if _, err := s.store.Assets().GetByCode(ctx, code); err == nil {
		return models.Asset{}, models.NewConflictError("asset %s already exists", code)
	} else if !models.IsKind(err, models.NotFoundErr) {
		return models.Asset{}, err
	}

	// the image name is unique per call, so a losing duplicate insert only removes its own file
	qrRef, err := s.qr.Generate(ctx, code, fmt.Sprintf("Asset:%s,Code:%s", req.Name, code))
	if err != nil {
		s.logger.GetLogger().Error("failed to generate qr code", zap.String("asset_code", code), zap.Error(err))
		return models.Asset{}, models.NewInternalError(err, "failed to generate qr code")
	}

	asset, err := s.store.Assets().Create(ctx, models.Asset{
		Code:         code,
		Name:         req.Name,
		Type:         req.Type,
		Brand:        req.Brand,
		Model:        req.Model,
		AcquiredOn:   req.AcquiredOn,
		DepartmentID: req.DepartmentID,
		Status:       models.AssetAvailable,
		QRCode:       qrRef,
	})
	if err != nil {
		s.removeQR(ctx, code, qrRef)
		return models.Asset{}, err
	}

	s.logger.GetLogger().Info("asset created", zap.String("asset_code", asset.Code), zap.String("caller", caller.Username))
	return asset, nil
}

func (s *assetService) UpdateAsset(ctx context.Context, caller models.Identity, code string, req UpdateAssetReq) (models.Asset, error) {
	if err := policy.Authorize(caller, policy.UpdateAsset); err != nil {
		return models.Asset{}, err
	}
	update := models.AssetDetailsUpdate{
		Name:         req.Name,
		Type:         req.Type,
		Brand:        req.Brand,
		Model:        req.Model,
		AcquiredOn:   req.AcquiredOn,
		DepartmentID: req.DepartmentID,
	}
	if update == (models.AssetDetailsUpdate{}) {
		return models.Asset{}, models.NewValidationError("no fields to update")
	}

	var asset models.Asset
	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		if _, err := tx.Assets().LockByCode(ctx, code); err != nil {
			return err
		}
		var err error
		asset, err = tx.Assets().UpdateDetails(ctx, code, update)
		if err != nil {
			return err
		}
		return s.coordinator.RefreshHolderWithin(ctx, tx, asset)
	})
	if err != nil {
		return models.Asset{}, err
	}
	return asset, nil
}

func (s *assetService) GetAsset(ctx context.Context, code string) (models.Asset, error) {
	return s.store.Assets().GetByCode(ctx, code)
}

func (s *assetService) ListAssets(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	return s.store.Assets().List(ctx, filter)
}

func (s *assetService) DeleteAsset(ctx context.Context, caller models.Identity, code string) error {
	if err := policy.Authorize(caller, policy.DeleteAsset); err != nil {
		return err
	}

	var qrRef string
	err := s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		asset, err := tx.Assets().LockByCode(ctx, code)
		if err != nil {
			return err
		}
		if !policy.CanPerform(caller.Role, policy.DeleteAsset, string(asset.Status)) {
			return models.NewPreconditionError("asset %s is %s, only Available assets can be deleted", code, asset.Status)
		}
		qrRef = asset.QRCode
		return tx.Assets().Delete(ctx, code)
	})
	if err != nil {
		return err
	}

	s.removeQR(ctx, code, qrRef)
	s.logger.GetLogger().Info("asset deleted", zap.String("asset_code", code), zap.String("caller", caller.Username))
	return nil
}

func (s *assetService) removeQR(ctx context.Context, code, ref string) {
	if ref == "" {
		return
	}
	if err := s.qr.Remove(ctx, ref); err != nil {
		s.logger.GetLogger().Warn("failed to remove qr code", zap.String("asset_code", code), zap.Error(err))
	}
}
