// Package workflow holds the rules shared by the request and issue approval pipelines:
// decision parsing, stage outcomes and the submission fan-out audience.
package workflow

import (
	"assetflow/models"
	"assetflow/repository"
	"context"
	"strings"
)

// Outcome is the status a stage moves a record to for each decision.
type Outcome struct {
	Approve string
	Reject  string
}

// Stages maps each approval tier to its outcome.
type Stages map[models.Role]Outcome

// Resolve returns the target status for decision taken by role.
func (s Stages) Resolve(role models.Role, decision models.Decision) (string, error) {
	outcome, ok := s[role]
	if !ok {
		return "", models.NewAuthorizationError("role %s cannot decide at any stage", role)
	}
	if decision == models.Approve {
		return outcome.Approve, nil
	}
	return outcome.Reject, nil
}

// ParseDecision checks the decision and returns the trimmed rejection comment.
// A rejection requires a comment; an approval never stores one.
func ParseDecision(decision models.Decision, comment *string) (models.Decision, *string, error) {
	d := models.Decision(strings.ToLower(strings.TrimSpace(string(decision))))
	switch d {
	case models.Approve:
		return d, nil, nil
	case models.Reject:
		if comment == nil || strings.TrimSpace(*comment) == "" {
			return "", nil, models.NewValidationError("rejection comment is required")
		}
		trimmed := strings.TrimSpace(*comment)
		return d, &trimmed, nil
	default:
		return "", nil, models.NewValidationError("decision must be %q or %q", models.Approve, models.Reject)
	}
}

// ReviewerUsernames returns the department heads of departmentID followed by every administrator.
func ReviewerUsernames(ctx context.Context, users repository.UserRepository, departmentID string) ([]string, error) {
	heads, err := users.List(ctx, models.UserFilter{DepartmentID: departmentID, Role: models.DepartmentHeadRole})
	if err != nil {
		return nil, err
	}
	admins, err := users.List(ctx, models.UserFilter{Role: models.AdministratorRole})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(heads)+len(admins))
	for _, u := range heads {
		names = append(names, u.Username)
	}
	for _, u := range admins {
		names = append(names, u.Username)
	}
	return names, nil
}

// ListStatus resolves the status filter for a listing: "all" clears it, empty falls back
// to the status the caller's stage acts on.
func ListStatus(requested, stageDefault string) string {
	switch strings.ToLower(strings.TrimSpace(requested)) {
	case "all":
		return ""
	case "":
		return stageDefault
	default:
		return strings.TrimSpace(requested)
	}
}

// RejecterLabel names the approval tier in user-facing messages.
func RejecterLabel(role models.Role) string {
	if role == models.AdministratorRole {
		return "admin"
	}
	return "HOD"
}
