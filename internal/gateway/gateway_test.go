package gateway

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

func newTestTracer(t *testing.T) tracing.Tracer {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	require.NoError(t, err)

	return tracing.NewTracer("test", exporter)
}

// fakeOrderClient records calls; every lookup answers with a fixed order.
type fakeOrderClient struct {
	calls   []string
	created *domain.Order
}

func (f *fakeOrderClient) Get(ctx context.Context, id int64) (*domain.Order, error) {
	f.calls = append(f.calls, "Get")

	return &domain.Order{ID: id, Title: "stub"}, nil
}

func (f *fakeOrderClient) Search(ctx context.Context) ([]*domain.Order, error) {
	f.calls = append(f.calls, "Search")

	return []*domain.Order{{ID: 1, Title: "stub"}}, nil
}

func (f *fakeOrderClient) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	f.calls = append(f.calls, "Create")
	f.created = order

	return order, nil
}

func (f *fakeOrderClient) Update(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	f.calls = append(f.calls, "Update")

	return order, nil
}

func (f *fakeOrderClient) Delete(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")

	return nil
}

type fakeProductClient struct {
	calls []string
}

func (f *fakeProductClient) Get(ctx context.Context, id int64) (*domain.Product, error) {
	f.calls = append(f.calls, "Get")

	return &domain.Product{ID: id, Title: "stub"}, nil
}

func (f *fakeProductClient) Search(ctx context.Context) ([]*domain.Product, error) {
	f.calls = append(f.calls, "Search")

	return nil, nil
}

func (f *fakeProductClient) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.calls = append(f.calls, "Create")

	return product, nil
}

func (f *fakeProductClient) Update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	f.calls = append(f.calls, "Update")

	return product, nil
}

func (f *fakeProductClient) Delete(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")

	return nil
}

type fakeUserClient struct {
	calls   []string
	created *domain.User
}

func (f *fakeUserClient) Get(ctx context.Context, id int64) (*domain.HydratedUser, error) {
	f.calls = append(f.calls, "Get")

	return &domain.HydratedUser{ID: id, Username: "stub"}, nil
}

func (f *fakeUserClient) Search(ctx context.Context) ([]*domain.HydratedUser, error) {
	f.calls = append(f.calls, "Search")

	return nil, nil
}

func (f *fakeUserClient) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.calls = append(f.calls, "Create")
	f.created = user

	return user, nil
}

func (f *fakeUserClient) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	f.calls = append(f.calls, "Update")

	return user, nil
}

func (f *fakeUserClient) Delete(ctx context.Context, id int64) error {
	f.calls = append(f.calls, "Delete")

	return nil
}

func newTestGateway(t *testing.T) (*Gateway, *fakeOrderClient, *fakeProductClient, *fakeUserClient) {
	t.Helper()

	orders := &fakeOrderClient{}
	products := &fakeProductClient{}
	users := &fakeUserClient{}

	return New(orders, products, users, newTestTracer(t)), orders, products, users
}

func TestGateway_GetOrderRoutesToOrderBackend(t *testing.T) {
	gw, orders, products, users := newTestGateway(t)

	order, err := gw.GetOrder(context.Background(), &GetOrderRequest{ID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), order.ID)

	assert.Equal(t, []string{"Get"}, orders.calls)
	assert.Empty(t, products.calls)
	assert.Empty(t, users.calls)
}

func TestGateway_ValidationFailsBeforeBackendCall(t *testing.T) {
	gw, orders, _, users := newTestGateway(t)
	ctx := context.Background()

	_, err := gw.CreateOrder(ctx, &CreateOrderRequest{ID: 1, Description: "no title"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = gw.GetOrder(ctx, &GetOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = gw.CreateUser(ctx, &CreateUserRequest{ID: 1, Username: "alice"})
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	assert.Empty(t, orders.calls)
	assert.Empty(t, users.calls)
}

func TestGateway_CreateUserEncodesReferenceList(t *testing.T) {
	gw, _, _, users := newTestGateway(t)

	_, err := gw.CreateUser(context.Background(), &CreateUserRequest{
		ID:       1,
		Username: "alice",
		Password: "secret",
		Email:    "alice@example.com",
		OrderIDs: []int64{3, 1, 2},
	})
	require.NoError(t, err)

	require.NotNil(t, users.created)
	ids, err := domain.DecodeOrderIDs(users.created.OrderIDs)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestGateway_CreateUserWithoutReferencesStoresEmptyList(t *testing.T) {
	gw, _, _, users := newTestGateway(t)

	_, err := gw.CreateUser(context.Background(), &CreateUserRequest{
		ID:       1,
		Username: "alice",
		Password: "secret",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	require.NotNil(t, users.created)
	ids, err := domain.DecodeOrderIDs(users.created.OrderIDs)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDispatch_RoutesEveryOperation(t *testing.T) {
	gw, orders, products, users := newTestGateway(t)
	ctx := context.Background()

	cases := []struct {
		op  Operation
		req Request
	}{
		{OpOrder, &GetOrderRequest{ID: 1}},
		{OpOrders, &ListOrdersRequest{}},
		{OpCreateOrder, &CreateOrderRequest{ID: 1, Title: "t", Description: "d"}},
		{OpUpdateOrder, &UpdateOrderRequest{ID: 1, Title: "t", Description: "d"}},
		{OpDeleteOrder, &DeleteOrderRequest{ID: 1}},
		{OpProduct, &GetProductRequest{ID: 1}},
		{OpProducts, &ListProductsRequest{}},
		{OpCreateProduct, &CreateProductRequest{ID: 1, Title: "t", Description: "d"}},
		{OpUpdateProduct, &UpdateProductRequest{ID: 1, Title: "t", Description: "d"}},
		{OpDeleteProduct, &DeleteProductRequest{ID: 1}},
		{OpUser, &GetUserRequest{ID: 1}},
		{OpUsers, &ListUsersRequest{}},
		{OpCreateUser, &CreateUserRequest{ID: 1, Username: "u", Password: "p", Email: "e"}},
		{OpUpdateUser, &UpdateUserRequest{ID: 1, Username: "u", Password: "p", Email: "e"}},
		{OpDeleteUser, &DeleteUserRequest{ID: 1}},
	}

	for _, tc := range cases {
		_, err := gw.Dispatch(ctx, tc.op, tc.req)
		assert.NoError(t, err, "operation %s", tc.op)
	}

	assert.Len(t, orders.calls, 5)
	assert.Len(t, products.calls, 5)
	assert.Len(t, users.calls, 5)
}

func TestDispatch_UnknownOperation(t *testing.T) {
	gw, _, _, _ := newTestGateway(t)

	_, err := gw.Dispatch(context.Background(), Operation("frobnicate"), &GetOrderRequest{ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnsupported)
}

func TestDispatch_MismatchedRequestType(t *testing.T) {
	gw, orders, _, _ := newTestGateway(t)

	_, err := gw.Dispatch(context.Background(), OpOrder, &DeleteUserRequest{ID: 1})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	assert.Empty(t, orders.calls)
}
