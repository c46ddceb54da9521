package requestservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	assignmentservice "assetflow/services/assignment"
	notificationservice "assetflow/services/notification"
	"assetflow/services/policy"
	"assetflow/services/workflow"
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const workflowName = "asset_request"

var stages = workflow.Stages{
	models.DepartmentHeadRole: {Approve: string(models.RequestHODApproved), Reject: string(models.RequestHODRejected)},
	models.AdministratorRole:  {Approve: string(models.RequestAdminApproved), Reject: string(models.RequestAdminRejected)},
}

type RequestService interface {
	Submit(ctx context.Context, caller models.Identity, assetCode string) (models.AssetRequest, error)
	// Decide dispatches to the stage owned by the caller's role.
	Decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error)
	DepartmentHeadDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error)
	AdminDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error)
	Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error
	List(ctx context.Context, caller models.Identity, filter models.WorkflowFilter) ([]models.AssetRequest, error)
}

type requestService struct {
	store         repository.Store
	coordinator   assignmentservice.Coordinator
	notifications notificationservice.NotificationService
	metrics       providers.MetricsProvider
	logger        providers.ZapLoggerProvider
}

func NewRequestService(
	store repository.Store,
	coordinator assignmentservice.Coordinator,
	notifications notificationservice.NotificationService,
	metrics providers.MetricsProvider,
	logger providers.ZapLoggerProvider,
) RequestService {
	return &requestService{
		store:         store,
		coordinator:   coordinator,
		notifications: notifications,
		metrics:       metrics,
		logger:        logger,
	}
}

func (s *requestService) Submit(ctx context.Context, caller models.Identity, assetCode string) (models.AssetRequest, error) {
	if err := policy.Authorize(caller, policy.SubmitRequest); err != nil {
		return models.AssetRequest{}, err
	}
	if assetCode == "" {
		return models.AssetRequest{}, models.NewValidationError("asset code is required")
	}
	userID, err := uuid.Parse(caller.UserID)
	if err != nil {
		return models.AssetRequest{}, models.NewAuthenticationError("invalid caller identity")
	}

	var created models.AssetRequest
	err = s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		asset, err := tx.Assets().GetByCode(ctx, assetCode)
		if err != nil {
			return err
		}
		if asset.Status != models.AssetAvailable || asset.DepartmentID != user.DepartmentID {
			return models.NewConflictError("asset %s is not available in your department", assetCode)
		}

		created, err = tx.Requests().Create(ctx, models.AssetRequest{
			UserID:       user.ID,
			Username:     user.Username,
			AssetCode:    asset.Code,
			DepartmentID: user.DepartmentID,
			Status:       models.RequestPending,
		})
		if err != nil {
			return err
		}
		if err := s.notifications.NotifyWithin(ctx, tx, user.Username, fmt.Sprintf("Requested asset %s", asset.Code)); err != nil {
			return err
		}
		tx.OnCommit(func() {
			s.metrics.ObserveTransition(workflowName, "", string(models.RequestPending))
		})
		return nil
	})
	if err != nil {
		return models.AssetRequest{}, err
	}

	s.logger.GetLogger().Info("asset request submitted",
		zap.String("request_id", created.ID.String()),
		zap.String("username", created.Username),
		zap.String("asset_code", created.AssetCode))
	s.announce(ctx, created)
	return created, nil
}

// announce tells the department heads and administrators about a new request. Failures are logged only.
func (s *requestService) announce(ctx context.Context, req models.AssetRequest) {
	reviewers, err := workflow.ReviewerUsernames(ctx, s.store.Users(), req.DepartmentID)
	if err != nil {
		s.logger.GetLogger().Warn("failed to resolve request reviewers", zap.String("request_id", req.ID.String()), zap.Error(err))
		return
	}
	s.notifications.Broadcast(ctx, reviewers, fmt.Sprintf("New asset request from %s for %s", req.Username, req.AssetCode))
}

func (s *requestService) Decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error) {
	switch caller.Role {
	case models.DepartmentHeadRole:
		return s.DepartmentHeadDecide(ctx, caller, id, decision, comment)
	case models.AdministratorRole:
		return s.AdminDecide(ctx, caller, id, decision, comment)
	default:
		return models.AssetRequest{}, models.NewAuthorizationError("role %s cannot decide asset requests", caller.Role)
	}
}

func (s *requestService) DepartmentHeadDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error) {
	if caller.Role != models.DepartmentHeadRole {
		return models.AssetRequest{}, models.NewAuthorizationError("only a department head can take the first decision")
	}
	return s.decide(ctx, caller, id, decision, comment)
}

func (s *requestService) AdminDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error) {
	if caller.Role != models.AdministratorRole {
		return models.AssetRequest{}, models.NewAuthorizationError("only an administrator can take the final decision")
	}
	return s.decide(ctx, caller, id, decision, comment)
}

func (s *requestService) decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.AssetRequest, error) {
	if err := policy.Authorize(caller, policy.DecideRequest); err != nil {
		return models.AssetRequest{}, err
	}
	decision, comment, err := workflow.ParseDecision(decision, comment)
	if err != nil {
		return models.AssetRequest{}, err
	}
	to, err := stages.Resolve(caller.Role, decision)
	if err != nil {
		return models.AssetRequest{}, err
	}
	expected := policy.ExpectedState(caller.Role, policy.DecideRequest)

	var updated models.AssetRequest
	err = s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Requests().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if caller.Role == models.DepartmentHeadRole && current.DepartmentID != caller.DepartmentID {
			return models.NewAuthorizationError("asset request %s belongs to another department", id)
		}
		if !policy.CanPerform(caller.Role, policy.DecideRequest, string(current.Status)) {
			return models.NewPreconditionError("asset request is %s, expected %s", current.Status, expected)
		}

		updated, err = tx.Requests().CompareAndSwapStatus(ctx, models.StatusChange{
			ID:               id,
			From:             expected,
			To:               to,
			RejectionComment: comment,
		})
		if err != nil {
			return err
		}

		if updated.Status == models.RequestAdminApproved {
			if _, err := s.coordinator.AssignWithin(ctx, tx, updated.UserID, updated.AssetCode, uuid.Nil); err != nil {
				return err
			}
		}

		if err := s.notifications.NotifyWithin(ctx, tx, updated.Username, decisionMessage(updated, caller.Role)); err != nil {
			return err
		}
		tx.OnCommit(func() {
			s.metrics.ObserveTransition(workflowName, expected, to)
		})
		return nil
	})
	if err != nil {
		s.logger.GetLogger().Warn("asset request decision failed",
			zap.String("request_id", id.String()),
			zap.String("caller", caller.Username),
			zap.String("decision", string(decision)),
			zap.Error(err))
		return models.AssetRequest{}, err
	}

	s.logger.GetLogger().Info("asset request decided",
		zap.String("request_id", id.String()),
		zap.String("caller", caller.Username),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

func decisionMessage(req models.AssetRequest, role models.Role) string {
	switch req.Status {
	case models.RequestHODApproved:
		return fmt.Sprintf("Your asset request for %s has been approved by HOD and forwarded to admin.", req.AssetCode)
	case models.RequestAdminApproved:
		return fmt.Sprintf("Your asset request for %s has been approved by admin.", req.AssetCode)
	default:
		return fmt.Sprintf("Your asset request for %s was rejected by %s. Reason: %s", req.AssetCode, workflow.RejecterLabel(role), *req.RejectionComment)
	}
}

func (s *requestService) Delete(ctx context.Context, caller models.Identity, id uuid.UUID) error {
	if err := policy.Authorize(caller, policy.DeleteRequest); err != nil {
		return err
	}
	if err := s.store.Requests().Delete(ctx, id); err != nil {
		return err
	}
	s.logger.GetLogger().Info("asset request deleted", zap.String("request_id", id.String()), zap.String("caller", caller.Username))
	return nil
}

func (s *requestService) List(ctx context.Context, caller models.Identity, filter models.WorkflowFilter) ([]models.AssetRequest, error) {
	if err := policy.Authorize(caller, policy.ListRequests); err != nil {
		return nil, err
	}
	filter.Status = workflow.ListStatus(filter.Status, policy.ExpectedState(caller.Role, policy.DecideRequest))
	if caller.Role == models.DepartmentHeadRole {
		filter.DepartmentID = caller.DepartmentID
	}
	return s.store.Requests().List(ctx, filter)
}
