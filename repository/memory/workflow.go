package memory

import (
	"assetflow/models"
	"context"
	"sort"

	"github.com/google/uuid"
)

func matches(filter models.WorkflowFilter, status, department string) bool {
	if filter.Status != "" && status != filter.Status {
		return false
	}
	if filter.DepartmentID != "" && department != filter.DepartmentID {
		return false
	}
	return true
}

type requestRepo struct {
	s *Store
}

func (r *requestRepo) Create(ctx context.Context, req models.AssetRequest) (models.AssetRequest, error) {
	defer r.s.lock()()

	if req.ID == uuid.Nil {
		req.ID = uuid.New()
	}
	now := r.s.now()
	req.CreatedAt, req.UpdatedAt = now, now
	r.s.st.requests[req.ID] = req
	return req, nil
}

func (r *requestRepo) GetByID(ctx context.Context, id uuid.UUID) (models.AssetRequest, error) {
	defer r.s.rlock()()

	req, ok := r.s.st.requests[id]
	if !ok {
		return models.AssetRequest{}, models.NewNotFoundError("asset request %s not found", id)
	}
	return req, nil
}

func (r *requestRepo) List(ctx context.Context, filter models.WorkflowFilter) ([]models.AssetRequest, error) {
	defer r.s.rlock()()

	out := make([]models.AssetRequest, 0)
	for _, req := range r.s.st.requests {
		if matches(filter, string(req.Status), req.DepartmentID) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *requestRepo) CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.AssetRequest, error) {
	defer r.s.lock()()

	req, ok := r.s.st.requests[change.ID]
	if !ok {
		return models.AssetRequest{}, models.NewNotFoundError("asset request %s not found", change.ID)
	}
	if string(req.Status) != change.From {
		return models.AssetRequest{}, models.NewPreconditionError("asset request is %s, expected %s", req.Status, change.From)
	}
	req.Status = models.RequestStatus(change.To)
	req.RejectionComment = change.RejectionComment
	req.UpdatedAt = r.s.now()
	r.s.st.requests[req.ID] = req
	return req, nil
}

func (r *requestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	defer r.s.lock()()

	if _, ok := r.s.st.requests[id]; !ok {
		return models.NewNotFoundError("asset request %s not found", id)
	}
	delete(r.s.st.requests, id)
	return nil
}

func (r *requestRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	defer r.s.lock()()

	for id, req := range r.s.st.requests {
		if req.UserID == userID {
			delete(r.s.st.requests, id)
		}
	}
	return nil
}

type issueRepo struct {
	s *Store
}

func (r *issueRepo) Create(ctx context.Context, report models.IssueReport) (models.IssueReport, error) {
	defer r.s.lock()()

	if report.ID == uuid.Nil {
		report.ID = uuid.New()
	}
	now := r.s.now()
	report.CreatedAt, report.UpdatedAt = now, now
	r.s.st.issues[report.ID] = report
	return report, nil
}

func (r *issueRepo) GetByID(ctx context.Context, id uuid.UUID) (models.IssueReport, error) {
	defer r.s.rlock()()

	report, ok := r.s.st.issues[id]
	if !ok {
		return models.IssueReport{}, models.NewNotFoundError("issue report %s not found", id)
	}
	return report, nil
}

func (r *issueRepo) List(ctx context.Context, filter models.WorkflowFilter) ([]models.IssueReport, error) {
	defer r.s.rlock()()

	out := make([]models.IssueReport, 0)
	for _, report := range r.s.st.issues {
		if matches(filter, string(report.Status), report.DepartmentID) {
			out = append(out, report)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *issueRepo) CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.IssueReport, error) {
	defer r.s.lock()()

	report, ok := r.s.st.issues[change.ID]
	if !ok {
		return models.IssueReport{}, models.NewNotFoundError("issue report %s not found", change.ID)
	}
	if string(report.Status) != change.From {
		return models.IssueReport{}, models.NewPreconditionError("issue report is %s, expected %s", report.Status, change.From)
	}
	report.Status = models.IssueStatus(change.To)
	report.RejectionComment = change.RejectionComment
	report.UpdatedAt = r.s.now()
	r.s.st.issues[report.ID] = report
	return report, nil
}

func (r *issueRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	defer r.s.lock()()

	for id, report := range r.s.st.issues {
		if report.UserID == userID {
			delete(r.s.st.issues, id)
		}
	}
	return nil
}
