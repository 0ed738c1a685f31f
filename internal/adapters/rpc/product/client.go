package product

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

// Client is the typed view of the product backend used by the gateway.
type Client interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	Search(ctx context.Context) ([]*domain.Product, error)
	Create(ctx context.Context, product *domain.Product) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) (*domain.Product, error)
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

func (c *client) Get(ctx context.Context, id int64) (*domain.Product, error) {
	var resp ProductResponse
	if err := c.caller.Call(ctx, MethodGetProduct, GetProductRequest{ProductID: id}, &resp); err != nil {
		return nil, err
	}

	return resp.Product, nil
}

func (c *client) Search(ctx context.Context) ([]*domain.Product, error) {
	var resp SearchProductsResponse
	if err := c.caller.Call(ctx, MethodSearchProducts, struct{}{}, &resp); err != nil {
		return nil, err
	}

	return resp.Products, nil
}

func (c *client) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var resp ProductResponse
	if err := c.caller.Call(ctx, MethodCreateProduct, ProductRequest{Product: product}, &resp); err != nil {
		return nil, err
	}

	return resp.Product, nil
}

func (c *client) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var resp ProductResponse
	if err := c.caller.Call(ctx, MethodUpdateProduct, ProductRequest{Product: product}, &resp); err != nil {
		return nil, err
	}

	return resp.Product, nil
}

func (c *client) Delete(ctx context.Context, id int64) error {
	return c.caller.Call(ctx, MethodDeleteProduct, DeleteProductRequest{ProductID: id}, nil)
}
