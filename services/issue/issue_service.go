package issueservice

import (
	"assetflow/models"
	"assetflow/providers"
	"assetflow/repository"
	notificationservice "assetflow/services/notification"
	"assetflow/services/policy"
	"assetflow/services/workflow"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const workflowName = "issue_report"

var stages = workflow.Stages{
	models.DepartmentHeadRole: {Approve: string(models.IssueHODApproved), Reject: string(models.IssueRejected)},
	models.AdministratorRole:  {Approve: string(models.IssueApproved), Reject: string(models.IssueRejected)},
}

type IssueService interface {
	Submit(ctx context.Context, caller models.Identity, assetCode, message string) (models.IssueReport, error)
	Decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error)
	DepartmentHeadDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error)
	AdminDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error)
	List(ctx context.Context, caller models.Identity, filter models.WorkflowFilter) ([]models.IssueReport, error)
}

type issueService struct {
	store         repository.Store
	notifications notificationservice.NotificationService
	metrics       providers.MetricsProvider
	logger        providers.ZapLoggerProvider
}

func NewIssueService(store repository.Store, notifications notificationservice.NotificationService, metrics providers.MetricsProvider, logger providers.ZapLoggerProvider) IssueService {
	return &issueService{
		store:         store,
		notifications: notifications,
		metrics:       metrics,
		logger:        logger,
	}
}

func (s *issueService) Submit(ctx context.Context, caller models.Identity, assetCode, message string) (models.IssueReport, error) {
	if err := policy.Authorize(caller, policy.SubmitIssue); err != nil {
		return models.IssueReport{}, err
	}
	assetCode, message = strings.TrimSpace(assetCode), strings.TrimSpace(message)
	if assetCode == "" || message == "" {
		return models.IssueReport{}, models.NewValidationError("asset code and message are required")
	}
	userID, err := uuid.Parse(caller.UserID)
	if err != nil {
		return models.IssueReport{}, models.NewAuthenticationError("invalid caller identity")
	}

	var created models.IssueReport
	err = s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		user, err := tx.Users().GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if _, err := tx.Assets().GetByCode(ctx, assetCode); err != nil {
			return err
		}

		created, err = tx.Issues().Create(ctx, models.IssueReport{
			UserID:       user.ID,
			Username:     user.Username,
			AssetCode:    assetCode,
			DepartmentID: user.DepartmentID,
			Message:      message,
			Status:       models.IssuePending,
		})
		if err != nil {
			return err
		}
		if err := s.notifications.NotifyWithin(ctx, tx, user.Username, fmt.Sprintf("Issue reported for asset %s: %s", assetCode, message)); err != nil {
			return err
		}
		tx.OnCommit(func() {
			s.metrics.ObserveTransition(workflowName, "", string(models.IssuePending))
		})
		return nil
	})
	if err != nil {
		return models.IssueReport{}, err
	}

	s.logger.GetLogger().Info("issue reported",
		zap.String("issue_id", created.ID.String()),
		zap.String("username", created.Username),
		zap.String("asset_code", created.AssetCode))

	reviewers, err := workflow.ReviewerUsernames(ctx, s.store.Users(), created.DepartmentID)
	if err != nil {
		s.logger.GetLogger().Warn("failed to resolve issue reviewers", zap.String("issue_id", created.ID.String()), zap.Error(err))
		return created, nil
	}
	s.notifications.Broadcast(ctx, reviewers, fmt.Sprintf("New issue report from %s for %s", created.Username, created.AssetCode))
	return created, nil
}

func (s *issueService) Decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error) {
	switch caller.Role {
	case models.DepartmentHeadRole:
		return s.DepartmentHeadDecide(ctx, caller, id, decision, comment)
	case models.AdministratorRole:
		return s.AdminDecide(ctx, caller, id, decision, comment)
	default:
		return models.IssueReport{}, models.NewAuthorizationError("role %s cannot decide issue reports", caller.Role)
	}
}

func (s *issueService) DepartmentHeadDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error) {
	if caller.Role != models.DepartmentHeadRole {
		return models.IssueReport{}, models.NewAuthorizationError("only a department head can take the first decision")
	}
	return s.decide(ctx, caller, id, decision, comment)
}

func (s *issueService) AdminDecide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error) {
	if caller.Role != models.AdministratorRole {
		return models.IssueReport{}, models.NewAuthorizationError("only an administrator can take the final decision")
	}
	return s.decide(ctx, caller, id, decision, comment)
}

// decide never touches the asset: a reported issue does not change availability.
func (s *issueService) decide(ctx context.Context, caller models.Identity, id uuid.UUID, decision models.Decision, comment *string) (models.IssueReport, error) {
	if err := policy.Authorize(caller, policy.DecideIssue); err != nil {
		return models.IssueReport{}, err
	}
	decision, comment, err := workflow.ParseDecision(decision, comment)
	if err != nil {
		return models.IssueReport{}, err
	}
	to, err := stages.Resolve(caller.Role, decision)
	if err != nil {
		return models.IssueReport{}, err
	}
	expected := policy.ExpectedState(caller.Role, policy.DecideIssue)

	var updated models.IssueReport
	err = s.store.InTx(ctx, func(ctx context.Context, tx repository.Store) error {
		current, err := tx.Issues().GetByID(ctx, id)
		if err != nil {
			return err
		}
		if caller.Role == models.DepartmentHeadRole && current.DepartmentID != caller.DepartmentID {
			return models.NewAuthorizationError("issue report %s belongs to another department", id)
		}
		if !policy.CanPerform(caller.Role, policy.DecideIssue, string(current.Status)) {
			return models.NewPreconditionError("issue report is %s, expected %s", current.Status, expected)
		}

		updated, err = tx.Issues().CompareAndSwapStatus(ctx, models.StatusChange{
			ID:               id,
			From:             expected,
			To:               to,
			RejectionComment: comment,
		})
		if err != nil {
			return err
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
		s.logger.GetLogger().Warn("issue decision failed",
			zap.String("issue_id", id.String()),
			zap.String("caller", caller.Username),
			zap.Error(err))
		return models.IssueReport{}, err
	}

	s.logger.GetLogger().Info("issue decided",
		zap.String("issue_id", id.String()),
		zap.String("caller", caller.Username),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

func decisionMessage(report models.IssueReport, role models.Role) string {
	switch report.Status {
	case models.IssueHODApproved:
		return fmt.Sprintf("Your issue report for asset %s has been approved by HOD and forwarded to admin.", report.AssetCode)
	case models.IssueApproved:
		return fmt.Sprintf("Your issue report for asset %s has been approved by admin. The issue will be resolved soon.", report.AssetCode)
	default:
		return fmt.Sprintf("Your issue report for asset %s was rejected by %s. Reason: %s", report.AssetCode, workflow.RejecterLabel(role), *report.RejectionComment)
	}
}

func (s *issueService) List(ctx context.Context, caller models.Identity, filter models.WorkflowFilter) ([]models.IssueReport, error) {
	if err := policy.Authorize(caller, policy.ListIssues); err != nil {
		return nil, err
	}
	filter.Status = workflow.ListStatus(filter.Status, policy.ExpectedState(caller.Role, policy.DecideIssue))
	if caller.Role == models.DepartmentHeadRole {
		filter.DepartmentID = caller.DepartmentID
	}
	return s.store.Issues().List(ctx, filter)
}
