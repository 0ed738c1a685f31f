package gateway

import (
	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
)

// Operation names the unified operations; the names are the ones the query
// surface exposes.
type Operation string

const (
	OpOrder         Operation = "order"
	OpOrders        Operation = "orders"
	OpProduct       Operation = "product"
	OpProducts      Operation = "products"
	OpUser          Operation = "user"
	OpUsers         Operation = "users"
	OpCreateOrder   Operation = "CreateOrder"
	OpUpdateOrder   Operation = "UpdateOrder"
	OpDeleteOrder   Operation = "DeleteOrder"
	OpCreateProduct Operation = "CreateProduct"
	OpUpdateProduct Operation = "UpdateProduct"
	OpDeleteProduct Operation = "DeleteProduct"
	OpCreateUser    Operation = "CreateUser"
	OpUpdateUser    Operation = "UpdateUser"
	OpDeleteUser    Operation = "DeleteUser"
)

// Request is one validated unit of work. Validation runs at the gateway
// boundary, before any backend call, so an invalid request has no partial
// side effects.
type Request interface {
	Validate() error
}

type GetOrderRequest struct {
	ID int64 `json:"id"`
}

func (r *GetOrderRequest) Validate() error { return requireID(r.ID) }

type ListOrdersRequest struct{}

func (r *ListOrdersRequest) Validate() error { return nil }

type CreateOrderRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *CreateOrderRequest) Validate() error {
	return orderFields(r.ID, r.Title, r.Description)
}

type UpdateOrderRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *UpdateOrderRequest) Validate() error {
	return orderFields(r.ID, r.Title, r.Description)
}

type DeleteOrderRequest struct {
	ID int64 `json:"id"`
}

func (r *DeleteOrderRequest) Validate() error { return requireID(r.ID) }

type GetProductRequest struct {
	ID int64 `json:"id"`
}

func (r *GetProductRequest) Validate() error { return requireID(r.ID) }

type ListProductsRequest struct{}

func (r *ListProductsRequest) Validate() error { return nil }

type CreateProductRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *CreateProductRequest) Validate() error {
	return orderFields(r.ID, r.Title, r.Description)
}

type UpdateProductRequest struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (r *UpdateProductRequest) Validate() error {
	return orderFields(r.ID, r.Title, r.Description)
}

type DeleteProductRequest struct {
	ID int64 `json:"id"`
}

func (r *DeleteProductRequest) Validate() error { return requireID(r.ID) }

type GetUserRequest struct {
	ID int64 `json:"id"`
}

func (r *GetUserRequest) Validate() error { return requireID(r.ID) }

type ListUsersRequest struct{}

func (r *ListUsersRequest) Validate() error { return nil }

type CreateUserRequest struct {
	ID       int64   `json:"id"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	Email    string  `json:"email"`
	OrderIDs []int64 `json:"order_ids"`
}

func (r *CreateUserRequest) Validate() error {
	return userFields(r.ID, r.Username, r.Password, r.Email)
}

type UpdateUserRequest struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (r *UpdateUserRequest) Validate() error {
	return userFields(r.ID, r.Username, r.Password, r.Email)
}

type DeleteUserRequest struct {
	ID int64 `json:"id"`
}

func (r *DeleteUserRequest) Validate() error { return requireID(r.ID) }

func requireID(id int64) error {
	if id <= 0 {
		return errors.Wrap(domain.ErrInvalidArgument, "id is required")
	}

	return nil
}

func orderFields(id int64, title, description string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if title == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "title is required")
	}
	if description == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "description is required")
	}

	return nil
}

func userFields(id int64, username, password, email string) error {
	if err := requireID(id); err != nil {
		return err
	}
	if username == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "username is required")
	}
	if password == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "password is required")
	}
	if email == "" {
		return errors.Wrap(domain.ErrInvalidArgument, "email is required")
	}

	return nil
}
