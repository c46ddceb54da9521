// Package policy is the single role matrix consulted by the workflows, the assignment
// coordinator and the registries.
package policy

import "assetflow/models"

type Operation string

const (
	SubmitRequest    Operation = "request.submit"
	DecideRequest    Operation = "request.decide"
	DeleteRequest    Operation = "request.delete"
	ListRequests     Operation = "request.list"
	SubmitIssue      Operation = "issue.submit"
	DecideIssue      Operation = "issue.decide"
	ListIssues       Operation = "issue.list"
	AssignAsset      Operation = "asset.assign"
	UnassignAsset    Operation = "asset.unassign"
	CreateAsset      Operation = "asset.create"
	UpdateAsset      Operation = "asset.update"
	DeleteAsset      Operation = "asset.delete"
	CreateUser       Operation = "user.create"
	DeleteUser       Operation = "user.delete"
	ListUsers        Operation = "user.list"
	SendNotification Operation = "notification.send"
)

// rule grants role the operation while the resource is in state. An empty state means any.
type rule struct {
	role  models.Role
	state string
}

var matrix = map[Operation][]rule{
	SubmitRequest: {{role: models.UserRole}},
	DecideRequest: {
		{role: models.DepartmentHeadRole, state: string(models.RequestPending)},
		{role: models.AdministratorRole, state: string(models.RequestHODApproved)},
	},
	DeleteRequest: {{role: models.AdministratorRole}},
	ListRequests:  {{role: models.DepartmentHeadRole}, {role: models.AdministratorRole}},
	SubmitIssue:   {{role: models.UserRole}},
	DecideIssue: {
		{role: models.DepartmentHeadRole, state: string(models.IssuePending)},
		{role: models.AdministratorRole, state: string(models.IssueHODApproved)},
	},
	ListIssues:       {{role: models.DepartmentHeadRole}, {role: models.AdministratorRole}},
	AssignAsset:      {{role: models.AdministratorRole}, {role: models.DepartmentHeadRole}},
	UnassignAsset:    {{role: models.AdministratorRole}, {role: models.DepartmentHeadRole}},
	CreateAsset:      {{role: models.AdministratorRole}},
	UpdateAsset:      {{role: models.AdministratorRole}},
	DeleteAsset:      {{role: models.AdministratorRole, state: string(models.AssetAvailable)}},
	CreateUser:       {{role: models.AdministratorRole}},
	DeleteUser:       {{role: models.AdministratorRole}},
	ListUsers:        {{role: models.AdministratorRole}, {role: models.DepartmentHeadRole}},
	SendNotification: {{role: models.AdministratorRole}, {role: models.DepartmentHeadRole}},
}

// Permits reports whether role may attempt op at all, regardless of resource state.
func Permits(role models.Role, op Operation) bool {
	for _, r := range matrix[op] {
		if r.role == role {
			return true
		}
	}
	return false
}

// CanPerform reports whether role may apply op to a resource currently in state.
func CanPerform(role models.Role, op Operation, state string) bool {
	for _, r := range matrix[op] {
		if r.role == role && (r.state == "" || r.state == state) {
			return true
		}
	}
	return false
}

// ExpectedState returns the state op requires for role, or "" when any state is accepted.
func ExpectedState(role models.Role, op Operation) string {
	for _, r := range matrix[op] {
		if r.role == role {
			return r.state
		}
	}
	return ""
}

// Authorize returns an AuthorizationError when role may not attempt op.
func Authorize(identity models.Identity, op Operation) error {
	if !Permits(identity.Role, op) {
		return models.NewAuthorizationError("role %s is not allowed to perform %s", identity.Role, op)
	}
	return nil
}
