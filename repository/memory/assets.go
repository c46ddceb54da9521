package memory

import (
	"assetflow/models"
	"context"
	"sort"

	"github.com/google/uuid"
)

type assetRepo struct {
	s *Store
}

func (r *assetRepo) Create(ctx context.Context, asset models.Asset) (models.Asset, error) {
	defer r.s.lock()()

	if _, exists := r.s.st.assets[asset.Code]; exists {
		return models.Asset{}, models.NewConflictError("asset code %s already exists", asset.Code)
	}
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	if asset.CreatedAt.IsZero() {
		asset.CreatedAt = r.s.now()
	}
	r.s.st.assets[asset.Code] = asset
	return asset, nil
}

func (r *assetRepo) GetByCode(ctx context.Context, code string) (models.Asset, error) {
	defer r.s.rlock()()

	asset, ok := r.s.st.assets[code]
	if !ok {
		return models.Asset{}, models.NewNotFoundError("asset %s not found", code)
	}
	return asset, nil
}

func (r *assetRepo) LockByCode(ctx context.Context, code string) (models.Asset, error) {
	return r.GetByCode(ctx, code)
}

func (r *assetRepo) List(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	defer r.s.rlock()()

	assets := make([]models.Asset, 0)
	for _, asset := range r.s.st.assets {
		if filter.Status != "" && string(asset.Status) != filter.Status {
			continue
		}
		if filter.Code != "" && asset.Code != filter.Code {
			continue
		}
		if filter.DepartmentID != "" && asset.DepartmentID != filter.DepartmentID {
			continue
		}
		assets = append(assets, asset)
	}
	sort.Slice(assets, func(i, j int) bool {
		if assets[i].CreatedAt.Equal(assets[j].CreatedAt) {
			return assets[i].Code < assets[j].Code
		}
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

func (r *assetRepo) UpdateDetails(ctx context.Context, code string, update models.AssetDetailsUpdate) (models.Asset, error) {
	defer r.s.lock()()

	asset, ok := r.s.st.assets[code]
	if !ok {
		return models.Asset{}, models.NewNotFoundError("asset %s not found", code)
	}
	if update.Name != nil {
		asset.Name = *update.Name
	}
	if update.Type != nil {
		asset.Type = *update.Type
	}
	if update.Brand != nil {
		asset.Brand = *update.Brand
	}
	if update.Model != nil {
		asset.Model = *update.Model
	}
	if update.AcquiredOn != nil {
		acquired := *update.AcquiredOn
		asset.AcquiredOn = &acquired
	}
	if update.DepartmentID != nil {
		asset.DepartmentID = *update.DepartmentID
	}
	r.s.st.assets[code] = asset
	return asset, nil
}

func (r *assetRepo) SetAssignment(ctx context.Context, code string, status models.AssetStatus, assignee *models.Assignee) error {
	defer r.s.lock()()

	asset, ok := r.s.st.assets[code]
	if !ok {
		return models.NewNotFoundError("asset %s not found", code)
	}
	asset.Status = status
	if assignee != nil {
		a := *assignee
		asset.AssignedTo = &a
	} else {
		asset.AssignedTo = nil
	}
	r.s.st.assets[code] = asset
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, code string) error {
	defer r.s.lock()()

	if _, ok := r.s.st.assets[code]; !ok {
		return models.NewNotFoundError("asset %s not found", code)
	}
	delete(r.s.st.assets, code)
	return nil
}
