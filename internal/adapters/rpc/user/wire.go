package user

import "github.com/ZaninaAhlem/ExamMicroservices/internal/domain"

const (
	MethodGetUser     = "user.UserService/GetUser"
	MethodSearchUsers = "user.UserService/SearchUsers"
	MethodCreateUser  = "user.UserService/CreateUser"
	MethodUpdateUser  = "user.UserService/UpdateUser"
	MethodDeleteUser  = "user.UserService/DeleteUser"
)

type GetUserRequest struct {
	UserID int64 `json:"user_id"`
}

type DeleteUserRequest struct {
	UserID int64 `json:"user_id"`
}

type UserRequest struct {
	User *domain.User `json:"user"`
}

type UserResponse struct {
	User *domain.User `json:"user"`
}

// HydratedUserResponse carries a composite read result: the user with its
// order references resolved.
type HydratedUserResponse struct {
	User *domain.HydratedUser `json:"user"`
}

type SearchUsersResponse struct {
	Users []*domain.HydratedUser `json:"users"`
}

type DeleteUserResponse struct{}
