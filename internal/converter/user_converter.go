package converter

import (
	"medical-imaging-backend/internal/delivery/dto"
	"medical-imaging-backend/internal/domain/entity"
)

// UserToResponse converts a User entity to its response DTO.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// UsersToResponse converts a slice of User entities.
func UsersToResponse(users []entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, *UserToResponse(&users[i]))
	}
	return out
}
