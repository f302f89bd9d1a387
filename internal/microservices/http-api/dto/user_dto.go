package dto

import "titlehub/internal/microservices/http-api/models"

// CreateUserRequest: admin payload for POST /users
type CreateUserRequest struct {
	Username  string  `json:"username" binding:"required,max=254"`
	Email     string  `json:"email" binding:"required,email,max=254"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	FirstName string  `json:"first_name" binding:"max=150"`
	LastName  string  `json:"last_name" binding:"max=150"`
	Bio       string  `json:"bio" binding:"max=500"`
}

// UpdateUserRequest: admin payload for PATCH /users/:username (partial)
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty" binding:"omitempty,max=254"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email,max=254"`
	Role      *string `json:"role,omitempty" binding:"omitempty,oneof=user moderator admin"`
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

// UpdateMeRequest: payload for PATCH /users/me; username, email and role are read-only there
type UpdateMeRequest struct {
	FirstName *string `json:"first_name,omitempty" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name,omitempty" binding:"omitempty,max=150"`
	Bio       *string `json:"bio,omitempty" binding:"omitempty,max=500"`
}

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
}

func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
	}
}

func UsersFromModels(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, UserFromModel(&users[i]))
	}
	return out
}
