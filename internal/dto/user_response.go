package dto

import "github.com/404twillCODE/Casino-Session-Tracker/internal/core/domain"

type UserResponse struct {
	UserID       string `json:"userID"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	AuthProvider string `json:"authProvider"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Email:        user.Email,
		Name:         user.Name,
		AuthProvider: string(user.AuthProvider),
	}
}
