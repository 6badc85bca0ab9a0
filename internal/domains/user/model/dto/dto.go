package dto

import (
	"strings"

	"bookly/internal/domains/user/model"
	"bookly/shared"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	gModel "bookly/shared/model"

	"github.com/google/uuid"
)

// CreateUserRequest adds a staff member to the caller's business.
type CreateUserRequest struct {
	Email    string `json:"email"     validate:"required,email"`
	Password string `json:"password"  validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=2,max=100"`
	Role     string `json:"role"      validate:"omitempty,oneof=owner staff"`
}

func (r *CreateUserRequest) ToModel(businessID, actor, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleStaff
	}

	return model.User{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Email:      strings.ToLower(r.Email),
		Password:   hashedPassword,
		Role:       role,
		FullName:   r.FullName,
		Active:     true,
		Metadata:   gModel.NewMetadata(actor),
	}
}

type UserResponse struct {
	ID          string  `json:"id"`
	BusinessID  string  `json:"business_id"`
	Email       string  `json:"email"`
	Role        string  `json:"role"`
	FullName    string  `json:"full_name"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
	Active      bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.BusinessID = m.BusinessID
	r.Email = m.Email
	r.Role = m.Role
	r.FullName = m.FullName
	r.Active = m.Active
	r.Metadata.FromModel(m.Metadata)

	if m.LastLoginAt != nil {
		lastLogin := m.LastLoginAt.UTC().Format(constant.DateFormat)
		r.LastLoginAt = &lastLogin
	}
}

// UpdateUserRequest is used by owners to manage their team.
type UpdateUserRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
	Role     *string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=owner staff"`
	Active   *bool   `db:"active"    json:"active,omitempty"`
}

// UpdateProfileRequest is used by any user on their own account.
type UpdateProfileRequest struct {
	FullName *string `db:"full_name" json:"full_name,omitempty" validate:"omitempty,min=2,max=100"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
