package postgres

import (
	"assetflow/models"
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = `id, username, email, password_hash, role, department_id, department_name,
		assigned_asset, asset_name, asset_model, asset_id, created_at`

type UserRepository struct {
	q sqlx.ExtContext
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	var created models.User
	err := sqlx.GetContext(ctx, r.q, &created, `
		INSERT INTO users (id, username, email, password_hash, role, department_id, department_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role, user.DepartmentID, user.DepartmentName)
	if err != nil {
		return models.User{}, mapError(err, "user not found", "failed to insert user")
	}
	return created, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getBy(ctx, "id = $1", id, notFoundf("user %s not found", id))
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.getBy(ctx, "username = $1", username, notFoundf("user %s not found", username))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	return r.getBy(ctx, "email = $1", email, notFoundf("no user registered with %s", email))
}

func (r *UserRepository) LockByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.getBy(ctx, "id = $1 FOR UPDATE", id, notFoundf("user %s not found", id))
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg interface{}, notFoundMsg string) (models.User, error) {
	var user models.User
	err := sqlx.GetContext(ctx, r.q, &user, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if err != nil {
		return models.User{}, mapError(err, notFoundMsg, "failed to fetch user")
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	users := []models.User{}
	err := sqlx.SelectContext(ctx, r.q, &users, `
		SELECT `+userColumns+`
		FROM users
		WHERE ($1 = '' OR department_id = $1)
		AND ($2 = '' OR role = $2)
		ORDER BY username`,
		filter.DepartmentID, string(filter.Role))
	if err != nil {
		return nil, mapError(err, "user not found", "failed to fetch users")
	}
	return users, nil
}

func (r *UserRepository) SetAssignment(ctx context.Context, id uuid.UUID, assignment *models.UserAssignment) error {
	var code, name, model *string
	var assetID *uuid.UUID
	if assignment != nil {
		code, name, model, assetID = &assignment.AssetCode, &assignment.AssetName, &assignment.AssetModel, &assignment.AssetID
	}
	res, err := r.q.ExecContext(ctx, `
		UPDATE users SET assigned_asset = $1, asset_name = $2, asset_model = $3, asset_id = $4
		WHERE id = $5`,
		code, name, model, assetID, id)
	if err != nil {
		return mapError(err, "", "failed to update user assignment")
	}
	return rowsAffected(res, notFoundf("user %s not found", id))
}

func (r *UserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "", "failed to delete user")
	}
	return rowsAffected(res, notFoundf("user %s not found", id))
}
