package dto

import (
	"time"

	"eventorganizer_backend/internals/features/users/user/model"
)

// ============================
// Response DTO
// ============================

type UserDTO struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// ============================
// Request DTO
// ============================

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

// ============================
// Converter
// ============================

func ToUserDTO(u model.UserModel, role string) UserDTO {
	return UserDTO{
		ID:        u.ID.String(),
		UserName:  u.UserName,
		Email:     u.Email,
		Role:      role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}
