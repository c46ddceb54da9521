package userservice

import "assetflow/models"

type CreateUserReq struct {
	Username       string      `json:"username" validate:"required,min=3"`
	Email          string      `json:"email" validate:"required,email"`
	Password       string      `json:"password" validate:"required,min=6"`
	Role           models.Role `json:"role" validate:"required,oneof=user departmentHead administrator"`
	DepartmentID   string      `json:"department_id" validate:"required_unless=Role administrator"`
	DepartmentName string      `json:"department_name"`
}

type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type FirebaseLoginReq struct {
	IDToken string `json:"id_token" validate:"required"`
}

type LoginRes struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         models.User `json:"user"`
}

// DepartmentUsers is the department listing split by tier.
type DepartmentUsers struct {
	DepartmentHeads []models.User `json:"hods"`
	Users           []models.User `json:"users"`
}

type DashboardRes struct {
	User  models.User   `json:"user"`
	Asset *models.Asset `json:"asset,omitempty"`
}
