// Package repository defines the storage abstraction shared by the workflows and the
// assignment coordinator. Backends live in repository/postgres and repository/memory.
package repository

import (
	"assetflow/models"
	"context"

	"github.com/google/uuid"
)

type AssetRepository interface {
	Create(ctx context.Context, asset models.Asset) (models.Asset, error)
	GetByCode(ctx context.Context, code string) (models.Asset, error)
	// LockByCode reads the asset and holds it for the rest of the enclosing transaction.
	LockByCode(ctx context.Context, code string) (models.Asset, error)
	List(ctx context.Context, filter models.AssetFilter) ([]models.Asset, error)
	UpdateDetails(ctx context.Context, code string, update models.AssetDetailsUpdate) (models.Asset, error)
	// SetAssignment writes status and assignee. Only the assignment coordinator calls it.
	SetAssignment(ctx context.Context, code string, status models.AssetStatus, assignee *models.Assignee) error
	Delete(ctx context.Context, code string) error
}

type UserRepository interface {
	Create(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	LockByID(ctx context.Context, id uuid.UUID) (models.User, error)
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	// SetAssignment writes the user's held asset. Only the assignment coordinator calls it.
	SetAssignment(ctx context.Context, id uuid.UUID, assignment *models.UserAssignment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RequestRepository interface {
	Create(ctx context.Context, req models.AssetRequest) (models.AssetRequest, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.AssetRequest, error)
	List(ctx context.Context, filter models.WorkflowFilter) ([]models.AssetRequest, error)
	// CompareAndSwapStatus moves the record only if it is still in change.From.
	CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.AssetRequest, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type IssueRepository interface {
	Create(ctx context.Context, report models.IssueReport) (models.IssueReport, error)
	GetByID(ctx context.Context, id uuid.UUID) (models.IssueReport, error)
	List(ctx context.Context, filter models.WorkflowFilter) ([]models.IssueReport, error)
	CompareAndSwapStatus(ctx context.Context, change models.StatusChange) (models.IssueReport, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}

type NotificationRepository interface {
	Append(ctx context.Context, username, message string) (models.Notification, error)
	// ListFor returns the user's notifications, newest first.
	ListFor(ctx context.Context, username string) ([]models.Notification, error)
	DeleteFor(ctx context.Context, username string) error
}

// Store groups the repositories. A Store handed to an InTx callback is bound to that
// transaction; OnCommit hooks registered on it run only after a successful commit.
type Store interface {
	Assets() AssetRepository
	Users() UserRepository
	Requests() RequestRepository
	Issues() IssueRepository
	Notifications() NotificationRepository
	InTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
	OnCommit(fn func())
}
