// Package graphql exposes the unified query surface. One resolver per
// query or mutation field, each mapping to exactly one gateway dispatch.
package graphql

import (
	gql "github.com/graphql-go/graphql"
	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/gateway"
)

var orderType = gql.NewObject(gql.ObjectConfig{
	Name: "Order",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.NewNonNull(gql.Int)},
		"title":       &gql.Field{Type: gql.NewNonNull(gql.String)},
		"description": &gql.Field{Type: gql.NewNonNull(gql.String)},
	},
})

var productType = gql.NewObject(gql.ObjectConfig{
	Name: "Product",
	Fields: gql.Fields{
		"id":          &gql.Field{Type: gql.NewNonNull(gql.Int)},
		"title":       &gql.Field{Type: gql.NewNonNull(gql.String)},
		"description": &gql.Field{Type: gql.NewNonNull(gql.String)},
	},
})

var resolutionFailureType = gql.NewObject(gql.ObjectConfig{
	Name: "ResolutionFailure",
	Fields: gql.Fields{
		"order_id": &gql.Field{Type: gql.NewNonNull(gql.Int)},
		"reason":   &gql.Field{Type: gql.NewNonNull(gql.String)},
	},
})

// orderResultType is one slot of a hydrated reference list: the order, or
// the failure marker left in its position.
var orderResultType = gql.NewObject(gql.ObjectConfig{
	Name: "OrderResult",
	Fields: gql.Fields{
		"order":   &gql.Field{Type: orderType},
		"failure": &gql.Field{Type: resolutionFailureType},
	},
})

var userType = gql.NewObject(gql.ObjectConfig{
	Name: "User",
	Fields: gql.Fields{
		"id":           &gql.Field{Type: gql.NewNonNull(gql.Int)},
		"username":     &gql.Field{Type: gql.NewNonNull(gql.String)},
		"password":     &gql.Field{Type: gql.NewNonNull(gql.String)},
		"email":        &gql.Field{Type: gql.NewNonNull(gql.String)},
		"order_ids":    &gql.Field{Type: gql.NewList(gql.Int)},
		"orders":       &gql.Field{Type: gql.NewList(orderResultType)},
		"orders_error": &gql.Field{Type: gql.String},
	},
})

// createdUserType mirrors the stored row a mutation echoes back, where the
// reference list is still the raw blob.
var createdUserType = gql.NewObject(gql.ObjectConfig{
	Name: "StoredUser",
	Fields: gql.Fields{
		"id":        &gql.Field{Type: gql.NewNonNull(gql.Int)},
		"username":  &gql.Field{Type: gql.NewNonNull(gql.String)},
		"password":  &gql.Field{Type: gql.NewNonNull(gql.String)},
		"email":     &gql.Field{Type: gql.NewNonNull(gql.String)},
		"order_ids": &gql.Field{Type: gql.String},
	},
})

func idArg() gql.FieldConfigArgument {
	return gql.FieldConfigArgument{
		"id": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
	}
}

func entityArgs() gql.FieldConfigArgument {
	return gql.FieldConfigArgument{
		"id":          &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
		"title":       &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
		"description": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
	}
}

func argID(p gql.ResolveParams) int64 {
	id, _ := p.Args["id"].(int)

	return int64(id)
}

func argString(p gql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)

	return s
}

// nullOnNotFound keeps query fields nullable: a miss resolves to null
// instead of a field error. Mutations keep the error.
func nullOnNotFound(result interface{}, err error) (interface{}, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return result, nil
}

// NewSchema builds the query schema over the gateway.
func NewSchema(gw *gateway.Gateway) (gql.Schema, error) {
	queryType := gql.NewObject(gql.ObjectConfig{
		Name: "Query",
		Fields: gql.Fields{
			"order": &gql.Field{
				Type: orderType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return nullOnNotFound(gw.Dispatch(p.Context, gateway.OpOrder,
						&gateway.GetOrderRequest{ID: argID(p)}))
				},
			},
			"orders": &gql.Field{
				Type: gql.NewList(orderType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpOrders, &gateway.ListOrdersRequest{})
				},
			},
			"product": &gql.Field{
				Type: productType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return nullOnNotFound(gw.Dispatch(p.Context, gateway.OpProduct,
						&gateway.GetProductRequest{ID: argID(p)}))
				},
			},
			"products": &gql.Field{
				Type: gql.NewList(productType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpProducts, &gateway.ListProductsRequest{})
				},
			},
			"user": &gql.Field{
				Type: userType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return nullOnNotFound(gw.Dispatch(p.Context, gateway.OpUser,
						&gateway.GetUserRequest{ID: argID(p)}))
				},
			},
			"users": &gql.Field{
				Type: gql.NewList(userType),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpUsers, &gateway.ListUsersRequest{})
				},
			},
		},
	})

	mutationType := gql.NewObject(gql.ObjectConfig{
		Name: "Mutation",
		Fields: gql.Fields{
			"CreateOrder": &gql.Field{
				Type: orderType,
				Args: entityArgs(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpCreateOrder, &gateway.CreateOrderRequest{
						ID:          argID(p),
						Title:       argString(p, "title"),
						Description: argString(p, "description"),
					})
				},
			},
			"UpdateOrder": &gql.Field{
				Type: orderType,
				Args: entityArgs(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpUpdateOrder, &gateway.UpdateOrderRequest{
						ID:          argID(p),
						Title:       argString(p, "title"),
						Description: argString(p, "description"),
					})
				},
			},
			"DeleteOrder": &gql.Field{
				Type: orderType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := argID(p)
					if _, err := gw.Dispatch(p.Context, gateway.OpDeleteOrder,
						&gateway.DeleteOrderRequest{ID: id}); err != nil {
						return nil, err
					}

					return &domain.Order{ID: id}, nil
				},
			},
			"CreateProduct": &gql.Field{
				Type: productType,
				Args: entityArgs(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpCreateProduct, &gateway.CreateProductRequest{
						ID:          argID(p),
						Title:       argString(p, "title"),
						Description: argString(p, "description"),
					})
				},
			},
			"UpdateProduct": &gql.Field{
				Type: productType,
				Args: entityArgs(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpUpdateProduct, &gateway.UpdateProductRequest{
						ID:          argID(p),
						Title:       argString(p, "title"),
						Description: argString(p, "description"),
					})
				},
			},
			"DeleteProduct": &gql.Field{
				Type: productType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := argID(p)
					if _, err := gw.Dispatch(p.Context, gateway.OpDeleteProduct,
						&gateway.DeleteProductRequest{ID: id}); err != nil {
						return nil, err
					}

					return &domain.Product{ID: id}, nil
				},
			},
			"CreateUser": &gql.Field{
				Type: createdUserType,
				Args: gql.FieldConfigArgument{
					"id":        &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
					"username":  &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password":  &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"email":     &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"order_ids": &gql.ArgumentConfig{Type: gql.NewList(gql.Int)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpCreateUser, &gateway.CreateUserRequest{
						ID:       argID(p),
						Username: argString(p, "username"),
						Password: argString(p, "password"),
						Email:    argString(p, "email"),
						OrderIDs: argIDList(p, "order_ids"),
					})
				},
			},
			"UpdateUser": &gql.Field{
				Type: createdUserType,
				Args: gql.FieldConfigArgument{
					"id":       &gql.ArgumentConfig{Type: gql.NewNonNull(gql.Int)},
					"username": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"password": &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
					"email":    &gql.ArgumentConfig{Type: gql.NewNonNull(gql.String)},
				},
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					return gw.Dispatch(p.Context, gateway.OpUpdateUser, &gateway.UpdateUserRequest{
						ID:       argID(p),
						Username: argString(p, "username"),
						Password: argString(p, "password"),
						Email:    argString(p, "email"),
					})
				},
			},
			"DeleteUser": &gql.Field{
				Type: createdUserType,
				Args: idArg(),
				Resolve: func(p gql.ResolveParams) (interface{}, error) {
					id := argID(p)
					if _, err := gw.Dispatch(p.Context, gateway.OpDeleteUser,
						&gateway.DeleteUserRequest{ID: id}); err != nil {
						return nil, err
					}

					return &domain.User{ID: id}, nil
				},
			},
		},
	})

	return gql.NewSchema(gql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

func argIDList(p gql.ResolveParams, name string) []int64 {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}

	ids := make([]int64, 0, len(raw))
	for _, v := range raw {
		if id, ok := v.(int); ok {
			ids = append(ids, int64(id))
		}
	}

	return ids
}
