package issueservice

import (
	"context"
	"sync"
	"testing"

	"assetflow/models"
	"assetflow/providers/loggerprovider"
	"assetflow/providers/metricsprovider"
	"assetflow/repository/memory"
	notificationservice "assetflow/services/notification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store    *memory.Store
	svc      IssueService
	reporter models.Identity
	hod      models.Identity
	admin    models.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	logger := loggerprovider.NewLogProvider()

	identities := make(map[string]models.Identity)
	for _, u := range []models.User{
		{Username: "alice", Email: "alice@example.com", Role: models.UserRole, DepartmentID: "D1"},
		{Username: "hod", Email: "hod@example.com", Role: models.DepartmentHeadRole, DepartmentID: "D1"},
		{Username: "root", Email: "root@example.com", Role: models.AdministratorRole},
	} {
		created, err := store.Users().Create(ctx, u)
		require.NoError(t, err)
		identities[u.Username] = models.Identity{UserID: created.ID.String(), Username: created.Username, Role: created.Role, DepartmentID: created.DepartmentID}
	}
	_, err := store.Assets().Create(ctx, models.Asset{Code: "A-100", Name: "ThinkPad", DepartmentID: "D1", Status: models.AssetAssigned})
	require.NoError(t, err)

	return &fixture{
		store:    store,
		svc:      NewIssueService(store, notificationservice.NewNotificationService(store, logger), metricsprovider.NewPrometheusProvider(), logger),
		reporter: identities["alice"],
		hod:      identities["hod"],
		admin:    identities["root"],
	}
}

func (f *fixture) latest(t *testing.T, username string) string {
	t.Helper()
	list, err := f.store.Notifications().ListFor(context.Background(), username)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	return list[0].Message
}

func TestIssueApprovalLeavesAssetAlone(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	report, err := f.svc.Submit(ctx, f.reporter, "A-100", "screen flickers")
	require.NoError(t, err)
	assert.Equal(t, models.IssuePending, report.Status)
	assert.Equal(t, "Issue reported for asset A-100: screen flickers", f.latest(t, "alice"))
	assert.Equal(t, "New issue report from alice for A-100", f.latest(t, "hod"))

	report, err = f.svc.Decide(ctx, f.hod, report.ID, models.Approve, nil)
	require.NoError(t, err)
	assert.Equal(t, models.IssueHODApproved, report.Status)
	assert.Equal(t, "Your issue report for asset A-100 has been approved by HOD and forwarded to admin.", f.latest(t, "alice"))

	report, err = f.svc.Decide(ctx, f.admin, report.ID, models.Approve, nil)
	require.NoError(t, err)
	assert.Equal(t, models.IssueApproved, report.Status)
	assert.Equal(t, "Your issue report for asset A-100 has been approved by admin. The issue will be resolved soon.", f.latest(t, "alice"))

	asset, err := f.store.Assets().GetByCode(ctx, "A-100")
	require.NoError(t, err)
	assert.Equal(t, models.AssetAssigned, asset.Status)
}

func TestAdminRejectsWithReason(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	report, err := f.svc.Submit(ctx, f.reporter, "A-100", "battery swollen")
	require.NoError(t, err)
	_, err = f.svc.DepartmentHeadDecide(ctx, f.hod, report.ID, models.Approve, nil)
	require.NoError(t, err)

	_, err = f.svc.AdminDecide(ctx, f.admin, report.ID, models.Reject, nil)
	assert.True(t, models.IsKind(err, models.ValidationErr))

	reason := "parts unavailable"
	report, err = f.svc.AdminDecide(ctx, f.admin, report.ID, models.Reject, &reason)
	require.NoError(t, err)
	assert.Equal(t, models.IssueRejected, report.Status)
	assert.Equal(t, "Your issue report for asset A-100 was rejected by admin. Reason: parts unavailable", f.latest(t, "alice"))

	asset, err := f.store.Assets().GetByCode(ctx, "A-100")
	require.NoError(t, err)
	assert.Equal(t, models.AssetAssigned, asset.Status)
}

func TestIssueStagePreconditions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	report, err := f.svc.Submit(ctx, f.reporter, "A-100", "keyboard")
	require.NoError(t, err)

	_, err = f.svc.AdminDecide(ctx, f.admin, report.ID, models.Approve, nil)
	assert.True(t, models.IsKind(err, models.PreconditionErr))

	reason := "not a defect"
	_, err = f.svc.DepartmentHeadDecide(ctx, f.hod, report.ID, models.Reject, &reason)
	require.NoError(t, err)
	assert.Equal(t, "Your issue report for asset A-100 was rejected by HOD. Reason: not a defect", f.latest(t, "alice"))

	_, err = f.svc.AdminDecide(ctx, f.admin, report.ID, models.Approve, nil)
	assert.True(t, models.IsKind(err, models.PreconditionErr))

	_, err = f.svc.Decide(ctx, f.reporter, report.ID, models.Approve, nil)
	assert.True(t, models.IsKind(err, models.AuthorizationErr))

	_, err = f.svc.Decide(ctx, f.hod, uuid.New(), models.Approve, nil)
	assert.True(t, models.IsKind(err, models.NotFoundErr))
}

func TestConcurrentIssueDecisions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	report, err := f.svc.Submit(ctx, f.reporter, "A-100", "fan noise")
	require.NoError(t, err)
	_, err = f.svc.DepartmentHeadDecide(ctx, f.hod, report.ID, models.Approve, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.AdminDecide(ctx, f.admin, report.ID, models.Approve, nil)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, models.IsKind(err, models.PreconditionErr), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	stored, err := f.store.Issues().GetByID(ctx, report.ID)
	require.NoError(t, err)
	assert.Equal(t, models.IssueApproved, stored.Status)

	list, err := f.store.Notifications().ListFor(ctx, "alice")
	require.NoError(t, err)
	approvals := 0
	for _, n := range list {
		if n.Message == "Your issue report for asset A-100 has been approved by admin. The issue will be resolved soon." {
			approvals++
		}
	}
	assert.Equal(t, 1, approvals)
}

func TestIssueSubmitValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, f.reporter, "A-100", " ")
	assert.True(t, models.IsKind(err, models.ValidationErr))
	_, err = f.svc.Submit(ctx, f.reporter, "Z-999", "missing")
	assert.True(t, models.IsKind(err, models.NotFoundErr))
	_, err = f.svc.Submit(ctx, f.admin, "A-100", "admins do not report")
	assert.True(t, models.IsKind(err, models.AuthorizationErr))

	list, err := f.svc.List(ctx, f.hod, models.WorkflowFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}
