// file: internals/features/users/user/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"asramaku_backend/internals/features/users/user/model"
)

type CreateUserRequest struct {
	UserName string `json:"user_name" validate:"required,min=3,max=50"`
	Email    string `json:"user_email" validate:"required,email"`
	Password string `json:"user_password" validate:"required,min=8"`
	Role     string `json:"user_role" validate:"required,oneof=admin staff"`
}

type UpdateUserRequest struct {
	UserName *string `json:"user_name" validate:"omitempty,min=3,max=50"`
	Password *string `json:"user_password" validate:"omitempty,min=8"`
	Role     *string `json:"user_role" validate:"omitempty,oneof=admin staff"`
	IsActive *bool   `json:"user_is_active"`
}

type UserResponse struct {
	UserID    uuid.UUID  `json:"user_id"`
	AsramaID  *uuid.UUID `json:"user_asrama_id,omitempty"`
	UserName  string     `json:"user_name"`
	Email     string     `json:"user_email"`
	Role      string     `json:"user_role"`
	IsActive  bool       `json:"user_is_active"`
	CreatedAt time.Time  `json:"user_created_at"`
}

func NewUserResponse(m *model.UserModel) *UserResponse {
	return &UserResponse{
		UserID:    m.UserID,
		AsramaID:  m.UserAsramaID,
		UserName:  m.UserName,
		Email:     m.UserEmail,
		Role:      m.UserRole,
		IsActive:  m.UserIsActive,
		CreatedAt: m.UserCreatedAt,
	}
}
