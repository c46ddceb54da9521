package postgres

import (
	"assetflow/models"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const assetColumns = `id, asset_code, name, type, brand, model, acquired_on, department_id, status, qr_code,
		assigned_to_id, assigned_to_name, created_at`

type assetRow struct {
	models.Asset
	AssignedToID   *uuid.UUID `db:"assigned_to_id"`
	AssignedToName *string    `db:"assigned_to_name"`
}

func (row assetRow) toModel() models.Asset {
	asset := row.Asset
	if row.AssignedToID != nil {
		asset.AssignedTo = &models.Assignee{UserID: *row.AssignedToID}
		if row.AssignedToName != nil {
			asset.AssignedTo.Username = *row.AssignedToName
		}
	}
	return asset
}

type AssetRepository struct {
	q sqlx.ExtContext
}

func (r *AssetRepository) Create(ctx context.Context, asset models.Asset) (models.Asset, error) {
	if asset.ID == uuid.Nil {
		asset.ID = uuid.New()
	}
	var row assetRow
	err := sqlx.GetContext(ctx, r.q, &row, `
		INSERT INTO assets (id, asset_code, name, type, brand, model, acquired_on, department_id, status, qr_code)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING `+assetColumns,
		asset.ID, asset.Code, asset.Name, asset.Type, asset.Brand, asset.Model, asset.AcquiredOn,
		asset.DepartmentID, asset.Status, asset.QRCode)
	if err != nil {
		return models.Asset{}, mapError(err, "asset not found", "failed to insert asset")
	}
	return row.toModel(), nil
}

func (r *AssetRepository) GetByCode(ctx context.Context, code string) (models.Asset, error) {
	return r.get(ctx, code, "")
}

func (r *AssetRepository) LockByCode(ctx context.Context, code string) (models.Asset, error) {
	return r.get(ctx, code, " FOR UPDATE")
}

func (r *AssetRepository) get(ctx context.Context, code, suffix string) (models.Asset, error) {
	var row assetRow
	err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+assetColumns+` FROM assets WHERE asset_code = $1`+suffix, code)
	if err != nil {
		return models.Asset{}, mapError(err, notFoundf("asset %s not found", code), "failed to fetch asset")
	}
	return row.toModel(), nil
}

func (r *AssetRepository) List(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error) {
	rows := []assetRow{}
	err := sqlx.SelectContext(ctx, r.q, &rows, `
		SELECT `+assetColumns+`
		FROM assets
		WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR asset_code = $2)
		AND ($3 = '' OR department_id = $3)
		ORDER BY created_at DESC, asset_code`,
		filter.Status, filter.Code, filter.DepartmentID)
	if err != nil {
		return nil, mapError(err, "asset not found", "failed to fetch assets")
	}
	assets := make([]models.Asset, 0, len(rows))
	for _, row := range rows {
		assets = append(assets, row.toModel())
	}
	return assets, nil
}

func (r *AssetRepository) UpdateDetails(ctx context.Context, code string, update models.AssetDetailsUpdate) (models.Asset, error) {
	updateFields := []string{}
	args := []interface{}{}
	argPos := 1

	add := func(column string, value interface{}) {
		updateFields = append(updateFields, fmt.Sprintf("%s = $%d", column, argPos))
		args = append(args, value)
		argPos++
	}
	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.Type != nil {
		add("type", *update.Type)
	}
	if update.Brand != nil {
		add("brand", *update.Brand)
	}
	if update.Model != nil {
		add("model", *update.Model)
	}
	if update.AcquiredOn != nil {
		add("acquired_on", *update.AcquiredOn)
	}
	if update.DepartmentID != nil {
		add("department_id", *update.DepartmentID)
	}
	if len(updateFields) == 0 {
		return r.GetByCode(ctx, code)
	}

	query := fmt.Sprintf("UPDATE assets SET %s WHERE asset_code = $%d RETURNING %s",
		strings.Join(updateFields, ", "), argPos, assetColumns)
	args = append(args, code)

	var row assetRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, args...); err != nil {
		return models.Asset{}, mapError(err, notFoundf("asset %s not found", code), "failed to update asset")
	}
	return row.toModel(), nil
}

func (r *AssetRepository) SetAssignment(ctx context.Context, code string, status models.AssetStatus, assignee *models.Assignee) error {
	var userID *uuid.UUID
	var username *string
	if assignee != nil {
		userID, username = &assignee.UserID, &assignee.Username
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE assets SET status = $1, assigned_to_id = $2, assigned_to_name = $3
		WHERE asset_code = $4`,
		status, userID, username, code)
	if err != nil {
		return mapError(err, "", "failed to update asset assignment")
	}
	return rowsAffected(res, notFoundf("asset %s not found", code))
}

func (r *AssetRepository) Delete(ctx context.Context, code string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM assets WHERE asset_code = $1`, code)
	if err != nil {
		return mapError(err, "", "failed to delete asset")
	}
	return rowsAffected(res, notFoundf("asset %s not found", code))
}
