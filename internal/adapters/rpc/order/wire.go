package order

import "github.com/ZaninaAhlem/ExamMicroservices/internal/domain"

// Method paths keep the shape of the original protobuf contract.
const (
	MethodGetOrder     = "order.OrderService/GetOrder"
	MethodSearchOrders = "order.OrderService/SearchOrders"
	MethodCreateOrder  = "order.OrderService/CreateOrder"
	MethodUpdateOrder  = "order.OrderService/UpdateOrder"
	MethodDeleteOrder  = "order.OrderService/DeleteOrder"
)

type GetOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type DeleteOrderRequest struct {
	OrderID int64 `json:"order_id"`
}

type OrderRequest struct {
	Order *domain.Order `json:"order"`
}

type OrderResponse struct {
	Order *domain.Order `json:"order"`
}

type SearchOrdersResponse struct {
	Orders []*domain.Order `json:"orders"`
}

type DeleteOrderResponse struct{}
