package domain

import (
	"context"
	"errors"

	"github.com/anish-1308/ibilling/pkg/db/pagination"
)

type CreateCustomerRequest struct {
	Name          string       `json:"name"`
	Phone         string       `json:"phone"`
	Email         string       `json:"email"`
	Fax           string       `json:"fax"`
	Address       string       `json:"address"`
	ContactPerson string       `json:"contact_person"`
	Type          CustomerType `json:"type"`
}

type UpdateCustomerRequest struct {
	Name          *string       `json:"name"`
	Phone         *string       `json:"phone"`
	Email         *string       `json:"email"`
	Fax           *string       `json:"fax"`
	Address       *string       `json:"address"`
	ContactPerson *string       `json:"contact_person"`
	Type          *CustomerType `json:"type"`
}

type ListCustomerRequest struct {
	pagination.Pagination
	Name  string
	Email string
	Type  string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type Service interface {
	Create(ctx context.Context, req CreateCustomerRequest, actor string) (Customer, error)
	Update(ctx context.Context, id string, req UpdateCustomerRequest, actor string) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, req ListCustomerRequest) (ListCustomerResponse, error)
	SoftDelete(ctx context.Context, id string, actor string) error
}

var (
	ErrInvalidID        = errors.New("invalid_customer_id")
	ErrInvalidName      = errors.New("invalid_customer_name")
	ErrInvalidEmail     = errors.New("invalid_customer_email")
	ErrInvalidType      = errors.New("invalid_customer_type")
	ErrCustomerNotFound = errors.New("customer_not_found")
)
