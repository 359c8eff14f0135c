package domain

import (
	"context"
	"errors"

	"github.com/anish-1308/ibilling/pkg/db/pagination"
)

type CreateUserRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	Phone       string   `json:"phone"`
	Role        Role     `json:"role"`
	Password    string   `json:"password"`
	Permissions []string `json:"permissions"`
}

type UpdateUserRequest struct {
	Name        *string   `json:"name"`
	Phone       *string   `json:"phone"`
	Role        *Role     `json:"role"`
	Password    *string   `json:"password"`
	Permissions *[]string `json:"permissions"`
	IsActive    *bool     `json:"is_active"`
}

type ListUserRequest struct {
	pagination.Pagination
	Name string
	Role string
}

type ListUserResponse struct {
	pagination.PageInfo
	Users []User `json:"users"`
}

type Service interface {
	Create(ctx context.Context, req CreateUserRequest, actor string) (User, error)
	Update(ctx context.Context, id string, req UpdateUserRequest, actor string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	List(ctx context.Context, req ListUserRequest) (ListUserResponse, error)
	SoftDelete(ctx context.Context, id string, actor string) error
	// Authenticate checks email + password and returns the active user.
	Authenticate(ctx context.Context, email, password string) (User, error)
}

var (
	ErrInvalidID          = errors.New("invalid_user_id")
	ErrInvalidName        = errors.New("invalid_user_name")
	ErrInvalidEmail       = errors.New("invalid_user_email")
	ErrInvalidRole        = errors.New("invalid_user_role")
	ErrWeakPassword       = errors.New("weak_password")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrEmailTaken         = errors.New("email_already_registered")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrUserInactive       = errors.New("user_inactive")
)
