// Package assignmentservice owns the bidirectional asset/user assignment. Nothing else in
// the module writes asset status, asset assignee or a user's held asset.
package assignmentservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	"assetflow/services/policy"
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	actionAssign   = "assign"
	actionRelease  = "release"
	actionUnassign = "unassign"
)

// DashboardCacheKey is the cache entry holding a user's dashboard.
func DashboardCacheKey(userID uuid.UUID) string {
	return "user:dashboard:" + userID.String()
}

type Coordinator interface {
	Assign(ctx context.Context, caller models.Identity, userID uuid.UUID, assetCode string, assetID uuid.UUID) (models.User, error)
	Unassign(ctx context.Context, caller models.Identity, userID uuid.UUID) (models.User, error)
	// AssignWithin runs inside the caller's transaction. A nil assetID skips the id check.
	AssignWithin(ctx context.Context, tx repository.Store, userID uuid.UUID, assetCode string, assetID uuid.UUID) (models.User, error)
	UnassignWithin(ctx context.Context, tx repository.Store, userID uuid.UUID) (models.User, error)
	// RefreshHolderWithin copies the asset's name and model onto its holder. The asset must
	// already be locked by tx.
	RefreshHolderWithin(ctx context.Context, tx repository.Store, asset models.Asset) error
}

type coordinator struct {
	store   repository.Store
	cache   providers.RedisProvider
	metrics providers.MetricsProvider
	logger  providers.ZapLoggerProvider
}

func NewCoordinator(store repository.Store, cache providers.RedisProvider, metrics providers.MetricsProvider, logger providers.ZapLoggerProvider) Coordinator {
	return &coordinator{
		store:   store,
		cache:   cache,
		metrics: metrics,
		logger:  logger,
	}
}

func (c *coordinator) Assign(ctx context.Context, caller models.Identity, userID uuid.UUID, assetCode string, assetID uuid.UUID) (models.User, error) {
	if err := policy.Authorize(caller, policy.AssignAsset); err != nil {
		return models.User{}, err
	}
	if assetCode == "" || assetID == uuid.Nil {
		return models.User{}, models.NewValidationError("asset code and asset id are required")
	}

	var user models.User
	err := c.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		user, err = c.AssignWithin(ctx, tx, userID, assetCode, assetID)
		return err
	})
	if err != nil {
		c.logger.GetLogger().Warn("assign failed",
			zap.String("user_id", userID.String()),
			zap.String("asset_code", assetCode),
			zap.String("caller", caller.Username),
			zap.Error(err))
		return models.User{}, err
	}
	c.logger.GetLogger().Info("asset assigned",
		zap.String("user_id", userID.String()),
		zap.String("asset_code", assetCode),
		zap.String("caller", caller.Username))
	return user, nil
}

func (c *coordinator) Unassign(ctx context.Context, caller models.Identity, userID uuid.UUID) (models.User, error) {
	if err := policy.Authorize(caller, policy.UnassignAsset); err != nil {
		return models.User{}, err
	}

	var user models.User
	err := c.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		var err error
		user, err = c.UnassignWithin(ctx, tx, userID)
		return err
	})
	if err != nil {
		c.logger.GetLogger().Warn("unassign failed", zap.String("user_id", userID.String()), zap.Error(err))
		return models.User{}, err
	}
	return user, nil
}

func (c *coordinator) AssignWithin(ctx context.Context, tx repository.Store, userID uuid.UUID, assetCode string, assetID uuid.UUID) (models.User, error) {
	user, err := tx.Users().GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	prior := heldCode(user)

	// assets are locked before the user, in code order, so overlapping assignments cannot deadlock
	codes := []string{assetCode}
	if prior != "" && prior != assetCode {
		codes = append(codes, prior)
	}
	sort.Strings(codes)

	locked := make(map[string]models.Asset, len(codes))
	for _, code := range codes {
		asset, err := tx.Assets().LockByCode(ctx, code)
		if err != nil {
			if code == prior && models.IsKind(err, models.NotFoundErr) {
				continue
			}
			return models.User{}, err
		}
		locked[code] = asset
	}

	user, err = tx.Users().LockByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if heldCode(user) != prior {
		return models.User{}, models.NewConflictError("assignment of user %s changed concurrently, retry", user.Username)
	}

	target := locked[assetCode]
	if assetID != uuid.Nil && target.ID != assetID {
		return models.User{}, models.NewValidationError("asset id does not match asset %s", assetCode)
	}
	if target.Status != models.AssetAvailable {
		return models.User{}, models.NewConflictError("asset %s is not available (status %s)", assetCode, target.Status)
	}

	released := false
	if priorAsset, ok := locked[prior]; ok && prior != assetCode && assignedTo(priorAsset, user.ID) {
		if err := tx.Assets().SetAssignment(ctx, prior, models.AssetAvailable, nil); err != nil {
			return models.User{}, err
		}
		released = true
	}

	assignee := &models.Assignee{UserID: user.ID, Username: user.Username}
	if err := tx.Assets().SetAssignment(ctx, assetCode, models.AssetAssigned, assignee); err != nil {
		return models.User{}, err
	}
	if err := tx.Users().SetAssignment(ctx, user.ID, &models.UserAssignment{
		AssetCode:  target.Code,
		AssetName:  target.Name,
		AssetModel: target.Model,
		AssetID:    target.ID,
	}); err != nil {
		return models.User{}, err
	}

	tx.OnCommit(func() {
		if released {
			c.metrics.ObserveAssignment(actionRelease)
		}
		c.metrics.ObserveAssignment(actionAssign)
		c.invalidate(user.ID)
	})
	return tx.Users().GetByID(ctx, user.ID)
}

func (c *coordinator) UnassignWithin(ctx context.Context, tx repository.Store, userID uuid.UUID) (models.User, error) {
	user, err := tx.Users().GetByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	held := heldCode(user)
	if held == "" {
		return user, nil
	}

	asset, err := tx.Assets().LockByCode(ctx, held)
	assetMissing := models.IsKind(err, models.NotFoundErr)
	if err != nil && !assetMissing {
		return models.User{}, err
	}

	user, err = tx.Users().LockByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if heldCode(user) != held {
		return models.User{}, models.NewConflictError("assignment of user %s changed concurrently, retry", user.Username)
	}

	if !assetMissing && assignedTo(asset, user.ID) {
		if err := tx.Assets().SetAssignment(ctx, held, models.AssetAvailable, nil); err != nil {
			return models.User{}, err
		}
	}
	if err := tx.Users().SetAssignment(ctx, user.ID, nil); err != nil {
		return models.User{}, err
	}

	tx.OnCommit(func() {
		c.metrics.ObserveAssignment(actionUnassign)
		c.invalidate(user.ID)
	})
	return tx.Users().GetByID(ctx, user.ID)
}

func (c *coordinator) RefreshHolderWithin(ctx context.Context, tx repository.Store, asset models.Asset) error {
	if asset.Status != models.AssetAssigned || asset.AssignedTo == nil {
		return nil
	}
	user, err := tx.Users().LockByID(ctx, asset.AssignedTo.UserID)
	if models.IsKind(err, models.NotFoundErr) {
		return nil
	}
	if err != nil {
		return err
	}
	if heldCode(user) != asset.Code {
		return nil
	}
	if err := tx.Users().SetAssignment(ctx, user.ID, &models.UserAssignment{
		AssetCode:  asset.Code,
		AssetName:  asset.Name,
		AssetModel: asset.Model,
		AssetID:    asset.ID,
	}); err != nil {
		return err
	}
	tx.OnCommit(func() { c.invalidate(user.ID) })
	return nil
}

func (c *coordinator) invalidate(userID uuid.UUID) {
	if err := c.cache.Delete(context.Background(), DashboardCacheKey(userID)); err != nil {
		c.logger.GetLogger().Warn("failed to invalidate dashboard cache", zap.String("user_id", userID.String()), zap.Error(err))
	}
}

func heldCode(user models.User) string {
	if !user.HoldsAsset() {
		return ""
	}
	return *user.AssignedAsset
}

func assignedTo(asset models.Asset, userID uuid.UUID) bool {
	return asset.Status == models.AssetAssigned && asset.AssignedTo != nil && asset.AssignedTo.UserID == userID
}
