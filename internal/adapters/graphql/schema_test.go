package graphql

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	gql "github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/queue"
	orderRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/order"
	productRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/product"
	userRepo "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/repository/user"
	orderRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/order"
	productRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/product"
	userRPC "github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc/user"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/gateway"
	orderService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/order"
	productService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/product"
	userService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/user"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

func newTestTracer(t *testing.T) tracing.Tracer {
	t.Helper()

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(io.Discard))
	require.NoError(t, err)

	return tracing.NewTracer("test", exporter)
}

type nopQueue struct{}

func (nopQueue) Publish(string, interface{}) error   { return nil }
func (nopQueue) Consume(string, queue.Handler) error { return nil }
func (nopQueue) Close()                              {}

func newTestSchema(t *testing.T) gql.Schema {
	t.Helper()

	tracer := newTestTracer(t)
	q := nopQueue{}

	orderSvc := orderService.NewService(orderRepo.NewRepository(), tracer, q)
	productSvc := productService.NewService(productRepo.NewRepository(), tracer, q)

	orderTS := httptest.NewServer(orderRPC.NewServer(orderSvc, tracer).Handler())
	t.Cleanup(orderTS.Close)
	productTS := httptest.NewServer(productRPC.NewServer(productSvc, tracer).Handler())
	t.Cleanup(productTS.Close)

	userOrderClient := orderRPC.NewClient(&orderRPC.Config{
		Address:    orderTS.URL,
		HTTPClient: orderTS.Client(),
		Tracer:     tracer,
	})
	userSvc := userService.NewService(userRepo.NewRepository(), userOrderClient, tracer, q, 0, 0)

	userTS := httptest.NewServer(userRPC.NewServer(userSvc, tracer).Handler())
	t.Cleanup(userTS.Close)

	gw := gateway.New(
		orderRPC.NewClient(&orderRPC.Config{
			Address:    orderTS.URL,
			HTTPClient: orderTS.Client(),
			Tracer:     tracer,
		}),
		productRPC.NewClient(&productRPC.Config{
			Address:    productTS.URL,
			HTTPClient: productTS.Client(),
			Tracer:     tracer,
		}),
		userRPC.NewClient(&userRPC.Config{
			Address:    userTS.URL,
			HTTPClient: userTS.Client(),
			Tracer:     tracer,
		}),
		tracer,
	)

	schema, err := NewSchema(gw)
	require.NoError(t, err)

	return schema
}

func execute(t *testing.T, schema gql.Schema, query string) map[string]interface{} {
	t.Helper()

	result := gql.Do(gql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors, "query %s", query)

	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)

	return data
}

func TestSchema_CreateAndQueryOrder(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema,
		`mutation { CreateOrder(id: 1, title: "book", description: "hardcover") { id title } }`)
	created, ok := data["CreateOrder"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "book", created["title"])

	data = execute(t, schema, `{ order(id: 1) { id title description } }`)
	order, ok := data["order"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, order["id"])
	assert.Equal(t, "hardcover", order["description"])
}

func TestSchema_MissingOrderResolvesToNull(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema, `{ order(id: 42) { id title } }`)
	assert.Nil(t, data["order"])
}

func TestSchema_DeleteOrderMutation(t *testing.T) {
	schema := newTestSchema(t)

	execute(t, schema,
		`mutation { CreateOrder(id: 1, title: "book", description: "d") { id } }`)
	data := execute(t, schema, `mutation { DeleteOrder(id: 1) { id } }`)
	deleted, ok := data["DeleteOrder"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 1, deleted["id"])

	data = execute(t, schema, `{ order(id: 1) { id } }`)
	assert.Nil(t, data["order"])
}

func TestSchema_DeleteMissingOrderIsFieldError(t *testing.T) {
	schema := newTestSchema(t)

	result := gql.Do(gql.Params{
		Schema:        schema,
		RequestString: `mutation { DeleteOrder(id: 42) { id } }`,
		Context:       context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}

func TestSchema_UserQueryHydratesReferences(t *testing.T) {
	schema := newTestSchema(t)

	execute(t, schema,
		`mutation { CreateOrder(id: 1, title: "book", description: "d") { id } }`)
	execute(t, schema,
		`mutation { CreateUser(id: 1, username: "alice", password: "secret",
			email: "alice@example.com", order_ids: [1, 999]) { id } }`)

	data := execute(t, schema, `{
		user(id: 1) {
			id
			username
			order_ids
			orders {
				order { id title }
				failure { order_id reason }
			}
		}
	}`)

	user, ok := data["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, []interface{}{1, 999}, user["order_ids"])

	orders, ok := user["orders"].([]interface{})
	require.True(t, ok)
	require.Len(t, orders, 2)

	first, ok := orders[0].(map[string]interface{})
	require.True(t, ok)
	require.NotNil(t, first["order"])
	assert.Nil(t, first["failure"])

	second, ok := orders[1].(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, second["order"])
	failure, ok := second["failure"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 999, failure["order_id"])
	assert.Equal(t, "not_found", failure["reason"])
}

func TestSchema_ProductRoundTrip(t *testing.T) {
	schema := newTestSchema(t)

	execute(t, schema,
		`mutation { CreateProduct(id: 1, title: "lamp", description: "desk lamp") { id } }`)

	data := execute(t, schema, `{ products { id title } }`)
	products, ok := data["products"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 1)
}

func TestSchema_CreateUserEchoesStoredRow(t *testing.T) {
	schema := newTestSchema(t)

	data := execute(t, schema,
		`mutation { CreateUser(id: 1, username: "alice", password: "secret",
			email: "alice@example.com", order_ids: [2]) { id username order_ids } }`)
	created, ok := data["CreateUser"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "alice", created["username"])
	assert.Equal(t, "[2]", created["order_ids"])
}

func TestSchema_InvalidMutationArgumentsAreFieldErrors(t *testing.T) {
	schema := newTestSchema(t)

	result := gql.Do(gql.Params{
		Schema:        schema,
		RequestString: `mutation { CreateOrder(id: 1, title: "", description: "d") { id } }`,
		Context:       context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}
