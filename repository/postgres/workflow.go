package postgres

import (
	"assetflow/models"
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

const requestColumns = `id, user_id, username, asset_code, department_id, status, rejection_comment, created_at, updated_at`

const issueColumns = `id, user_id, username, asset_code, department_id, message, status, rejection_comment, created_at, updated_at`

type RequestRepository struct {
	q sqlx.ExtContext
}

func (r *RequestRepository) Create(ctx context.Context, req models.AssetRequest) (models.AssetRequest, error) {
	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	var created models.AssetRequest
	err := sqlx.GetContext(ctx, r.q, &created, `
		INSERT INTO asset_requests (id, user_id, username, asset_code, department_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+requestColumns,
		req.ID, req.UserID, req.Username, req.AssetCode, req.DepartmentID, req.Status)
	if err != nil {
		return models.AssetRequest{}, mapError(err, "asset request not found", "failed to insert asset request")
	}
	return created, nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (models.AssetRequest, error) {
	var req models.AssetRequest
	err := sqlx.GetContext(ctx, r.q, &req, `SELECT `+requestColumns+` FROM asset_requests WHERE id = $1`, id)
	if err != nil {
		return models.AssetRequest{}, mapError(err, notFoundf("asset request %s not found", id), "failed to fetch asset request")
	}
	return req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter models.WorkflowFilter) ([]models.AssetRequest, error) {
	reqs := []models.AssetRequest{}
	err := sqlx.SelectContext(ctx, r.q, &reqs, `
		SELECT `+requestColumns+`
		FROM asset_requests
		WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR department_id = $2)
		ORDER BY created_at DESC`,
		filter.Status, filter.DepartmentID)
	if err != nil {
		return nil, mapError(err, "asset request not found", "failed to fetch asset requests")
	}
	return reqs, nil
}

// CompareAndSwapStatus relies on the row lock taken by UPDATE: a concurrent writer waits,
// then re-evaluates the status predicate against the committed row and matches nothing.
func (r *RequestRepository) CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.AssetRequest, error) {
	var req models.AssetRequest
	err := sqlx.GetContext(ctx, r.q, &req, `
		UPDATE asset_requests SET status = $1, rejection_comment = $2, updated_at = now()
		WHERE id = $3 AND status = $4
		RETURNING `+requestColumns,
		change.To, change.RejectionComment, change.ID, change.From)
	if err == nil {
		return req, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.AssetRequest{}, mapError(err, "", "failed to update asset request status")
	}
	current, err := r.GetByID(ctx, change.ID)
	if err != nil {
		return models.AssetRequest{}, err
	}
	return models.AssetRequest{}, models.NewPreconditionError("asset request is %s, expected %s", current.Status, change.From)
}

func (r *RequestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM asset_requests WHERE id = $1`, id)
	if err != nil {
		return mapError(err, "", "failed to delete asset request")
	}
	return rowsAffected(res, notFoundf("asset request %s not found", id))
}

func (r *RequestRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM asset_requests WHERE user_id = $1`, userID); err != nil {
		return mapError(err, "", "failed to delete user asset requests")
	}
	return nil
}

type IssueRepository struct {
	q sqlx.ExtContext
}

func (r *IssueRepository) Create(ctx context.Context, report models.IssueReport) (models.IssueReport, error) {
	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	var created models.IssueReport
	err := sqlx.GetContext(ctx, r.q, &created, `
		INSERT INTO issue_reports (id, user_id, username, asset_code, department_id, message, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+issueColumns,
		report.ID, report.UserID, report.Username, report.AssetCode, report.DepartmentID, report.Message, report.Status)
	if err != nil {
		return models.IssueReport{}, mapError(err, "issue report not found", "failed to insert issue report")
	}
	return created, nil
}

func (r *IssueRepository) GetByID(ctx context.Context, id uuid.UUID) (models.IssueReport, error) {
	var report models.IssueReport
	err := sqlx.GetContext(ctx, r.q, &report, `SELECT `+issueColumns+` FROM issue_reports WHERE id = $1`, id)
	if err != nil {
		return models.IssueReport{}, mapError(err, notFoundf("issue report %s not found", id), "failed to fetch issue report")
	}
	return report, nil
}

func (r *IssueRepository) List(ctx context.Context, filter models.WorkflowFilter) ([]models.IssueReport, error) {
	reports := []models.IssueReport{}
	err := sqlx.SelectContext(ctx, r.q, &reports, `
		SELECT `+issueColumns+`
		FROM issue_reports
		WHERE ($1 = '' OR status = $1)
		AND ($2 = '' OR department_id = $2)
		ORDER BY created_at DESC`,
		filter.Status, filter.DepartmentID)
	if err != nil {
		return nil, mapError(err, "issue report not found", "failed to fetch issue reports")
	}
	return reports, nil
}

func (r *IssueRepository) CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.IssueReport, error) {
	var report models.IssueReport
	err := sqlx.GetContext(ctx, r.q, &report, `
		UPDATE issue_reports SET status = $1, rejection_comment = $2, updated_at = now()
		WHERE id = $3 AND status = $4
		RETURNING `+issueColumns,
		change.To, change.RejectionComment, change.ID, change.From)
	if err == nil {
		return report, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.IssueReport{}, mapError(err, "", "failed to update issue report status")
	}
	current, err := r.GetByID(ctx, change.ID)
	if err != nil {
		return models.IssueReport{}, err
	}
	return models.IssueReport{}, models.NewPreconditionError("issue report is %s, expected %s", current.Status, change.From)
}

func (r *IssueRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.q.ExecContext(ctx, `DELETE FROM issue_reports WHERE user_id = $1`, userID); err != nil {
		return mapError(err, "", "failed to delete user issue reports")
	}
	return nil
}
