package user

import (
	"context"
	"net/http"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

type Config struct {
	Address    string
	HTTPClient *http.Client
	Tracer     tracing.Tracer
}

// Client is the typed view of the user backend used by the gateway.
type Client interface {
	Get(ctx context.Context, id int64) (*domain.HydratedUser, error)
	Search(ctx context.Context) ([]*domain.HydratedUser, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
}

type client struct {
	caller rpc.Caller
}

func NewClient(config *Config) Client {
	return &client{
		caller: rpc.Caller{
			Address:    config.Address,
			HTTPClient: config.HTTPClient,
			Tracer:     config.Tracer,
		},
	}
}

func (c *client) Get(ctx context.Context, id int64) (*domain.HydratedUser, error) {
	var resp HydratedUserResponse
	if err := c.caller.Call(ctx, MethodGetUser, GetUserRequest{UserID: id}, &resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

func (c *client) Search(ctx context.Context) ([]*domain.HydratedUser, error) {
	var resp SearchUsersResponse
	if err := c.caller.Call(ctx, MethodSearchUsers, struct{}{}, &resp); err != nil {
		return nil, err
	}

	return resp.Users, nil
}

func (c *client) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var resp UserResponse
	if err := c.caller.Call(ctx, MethodCreateUser, UserRequest{User: user}, &resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

func (c *client) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	var resp UserResponse
	if err := c.caller.Call(ctx, MethodUpdateUser, UserRequest{User: user}, &resp); err != nil {
		return nil, err
	}

	return resp.User, nil
}

func (c *client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, MethodDeleteUser, DeleteUserRequest{UserID: id}, nil)
}
