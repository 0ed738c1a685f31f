package order

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

// Client is the typed view of the order backend used by the gateway and by
// the user service's aggregator.
type Client interface {
	Get(ctx context.Context, id int64) (*domain.Order, error)
	Search(ctx context.Context) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
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

func (c *client) Get(ctx context.Context, id int64) (*domain.Order, error) {
	var resp OrderResponse
	if err := c.caller.Call(ctx, MethodGetOrder, GetOrderRequest{OrderID: id}, &resp); err != nil {
		return nil, err
	}

	return resp.Order, nil
}

func (c *client) Search(ctx context.Context) ([]*domain.Order, error) {
	var resp SearchOrdersResponse
	if err := c.caller.Call(ctx, MethodSearchOrders, struct{}{}, &resp); err != nil {
		return nil, err
	}

	return resp.Orders, nil
}

func (c *client) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var resp OrderResponse
	if err := c.caller.Call(ctx, MethodCreateOrder, OrderRequest{Order: order}, &resp); err != nil {
		return nil, err
	}

	return resp.Order, nil
}

func (c *client) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	var resp OrderResponse
	if err := c.caller.Call(ctx, MethodUpdateOrder, OrderRequest{Order: order}, &resp); err != nil {
		return nil, err
	}

	return resp.Order, nil
}

func (c *client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, MethodDeleteOrder, DeleteOrderRequest{OrderID: id}, nil)
}
