// Package gateway is the single front door over the three backends. Every
// inbound operation, REST or query, becomes exactly one backend call;
// composite user reads reach the aggregator through the user backend.
package gateway

import (
	"context"
	"time"

	"github.com/pkg/errors"

	orderClient "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/order"
	productClient "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/product"
	userClient "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/user"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

type Gateway struct {
	orders   orderClient.Client
	products productClient.Client
	users    userClient.Client
	tracer   tracing.Tracer
}

func New(
	orders orderClient.Client,
	products productClient.Client,
	users userClient.Client,
	tracer tracing.Tracer,
) *Gateway {
	return &Gateway{
		orders:   orders,
		products: products,
		users:    users,
		tracer:   tracer,
	}
}

// Dispatch routes one named operation to its backend call. Unknown
// operations and mismatched request types fail before anything is invoked.
func (g *Gateway) Dispatch(ctx context.Context, op Operation, req Request) (interface{}, error) {
	switch op {
	case OpOrder:
		if r, ok := req.(*GetOrderRequest); ok {
			return g.GetOrder(ctx, r)
		}
	case OpOrders:
		if r, ok := req.(*ListOrdersRequest); ok {
			return g.ListOrders(ctx, r)
		}
	case OpCreateOrder:
		if r, ok := req.(*CreateOrderRequest); ok {
			return g.CreateOrder(ctx, r)
		}
	case OpUpdateOrder:
		if r, ok := req.(*UpdateOrderRequest); ok {
			return g.UpdateOrder(ctx, r)
		}
	case OpDeleteOrder:
		if r, ok := req.(*DeleteOrderRequest); ok {
			return nil, g.DeleteOrder(ctx, r)
		}
	case OpProduct:
		if r, ok := req.(*GetProductRequest); ok {
			return g.GetProduct(ctx, r)
		}
	case OpProducts:
		if r, ok := req.(*ListProductsRequest); ok {
			return g.ListProducts(ctx, r)
		}
	case OpCreateProduct:
		if r, ok := req.(*CreateProductRequest); ok {
			return g.CreateProduct(ctx, r)
		}
	case OpUpdateProduct:
		if r, ok := req.(*UpdateProductRequest); ok {
			return g.UpdateProduct(ctx, r)
		}
	case OpDeleteProduct:
		if r, ok := req.(*DeleteProductRequest); ok {
			return nil, g.DeleteProduct(ctx, r)
		}
	case OpUser:
		if r, ok := req.(*GetUserRequest); ok {
			return g.GetUser(ctx, r)
		}
	case OpUsers:
		if r, ok := req.(*ListUsersRequest); ok {
			return g.ListUsers(ctx, r)
		}
	case OpCreateUser:
		if r, ok := req.(*CreateUserRequest); ok {
			return g.CreateUser(ctx, r)
		}
	case OpUpdateUser:
		if r, ok := req.(*UpdateUserRequest); ok {
			return g.UpdateUser(ctx, r)
		}
	case OpDeleteUser:
		if r, ok := req.(*DeleteUserRequest); ok {
			return nil, g.DeleteUser(ctx, r)
		}
	default:
		return nil, errors.Wrapf(domain.ErrUnsupported, "operation %q", op)
	}

	return nil, errors.Wrapf(domain.ErrInvalidArgument, "wrong request type for operation %q", op)
}

func (g *Gateway) GetOrder(ctx context.Context, req *GetOrderRequest) (order *domain.Order, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.order")
	defer span.End()
	defer func(start time.Time) { observe(OpOrder, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.orders.Get(ctx, req.ID)
}

func (g *Gateway) ListOrders(ctx context.Context, req *ListOrdersRequest) (orders []*domain.Order, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.orders")
	defer span.End()
	defer func(start time.Time) { observe(OpOrders, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.orders.Search(ctx)
}

func (g *Gateway) CreateOrder(ctx context.Context, req *CreateOrderRequest) (order *domain.Order, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.CreateOrder")
	defer span.End()
	defer func(start time.Time) { observe(OpCreateOrder, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.orders.Create(ctx, &domain.Order{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
}

func (g *Gateway) UpdateOrder(ctx context.Context, req *UpdateOrderRequest) (order *domain.Order, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.UpdateOrder")
	defer span.End()
	defer func(start time.Time) { observe(OpUpdateOrder, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.orders.Update(ctx, &domain.Order{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
}

func (g *Gateway) DeleteOrder(ctx context.Context, req *DeleteOrderRequest) (err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.DeleteOrder")
	defer span.End()
	defer func(start time.Time) { observe(OpDeleteOrder, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return err
	}

	return g.orders.Delete(ctx, req.ID)
}

func (g *Gateway) GetProduct(ctx context.Context, req *GetProductRequest) (product *domain.Product, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.product")
	defer span.End()
	defer func(start time.Time) { observe(OpProduct, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.products.Get(ctx, req.ID)
}

func (g *Gateway) ListProducts(ctx context.Context, req *ListProductsRequest) (products []*domain.Product, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.products")
	defer span.End()
	defer func(start time.Time) { observe(OpProducts, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.products.Search(ctx)
}

func (g *Gateway) CreateProduct(ctx context.Context, req *CreateProductRequest) (product *domain.Product, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.CreateProduct")
	defer span.End()
	defer func(start time.Time) { observe(OpCreateProduct, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.products.Create(ctx, &domain.Product{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
}

func (g *Gateway) UpdateProduct(ctx context.Context, req *UpdateProductRequest) (product *domain.Product, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.UpdateProduct")
	defer span.End()
	defer func(start time.Time) { observe(OpUpdateProduct, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.products.Update(ctx, &domain.Product{
		ID:          req.ID,
		Title:       req.Title,
		Description: req.Description,
	})
}

func (g *Gateway) DeleteProduct(ctx context.Context, req *DeleteProductRequest) (err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.DeleteProduct")
	defer span.End()
	defer func(start time.Time) { observe(OpDeleteProduct, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return err
	}

	return g.products.Delete(ctx, req.ID)
}

func (g *Gateway) GetUser(ctx context.Context, req *GetUserRequest) (user *domain.HydratedUser, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.user")
	defer span.End()
	defer func(start time.Time) { observe(OpUser, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.users.Get(ctx, req.ID)
}

func (g *Gateway) ListUsers(ctx context.Context, req *ListUsersRequest) (users []*domain.HydratedUser, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.users")
	defer span.End()
	defer func(start time.Time) { observe(OpUsers, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.users.Search(ctx)
}

func (g *Gateway) CreateUser(ctx context.Context, req *CreateUserRequest) (user *domain.User, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.CreateUser")
	defer span.End()
	defer func(start time.Time) { observe(OpCreateUser, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.users.Create(ctx, &domain.User{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		OrderIDs: domain.EncodeOrderIDs(req.OrderIDs),
	})
}

func (g *Gateway) UpdateUser(ctx context.Context, req *UpdateUserRequest) (user *domain.User, err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.UpdateUser")
	defer span.End()
	defer func(start time.Time) { observe(OpUpdateUser, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return nil, err
	}

	return g.users.Update(ctx, &domain.User{
		ID:       req.ID,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
}

func (g *Gateway) DeleteUser(ctx context.Context, req *DeleteUserRequest) (err error) {
	ctx, span := g.tracer.Start(ctx, "internal.gateway.DeleteUser")
	defer span.End()
	defer func(start time.Time) { observe(OpDeleteUser, start, err) }(time.Now())

	if err = req.Validate(); err != nil {
		return err
	}

	return g.users.Delete(ctx, req.ID)
}
