package product

import "github.com/ZaninaAhlem/ExamMicroservices/internal/domain"

const (
	MethodGetProduct     = "product.ProductService/GetProduct"
	MethodSearchProducts = "product.ProductService/SearchProducts"
	MethodCreateProduct  = "product.ProductService/CreateProduct"
	MethodUpdateProduct  = "product.ProductService/UpdateProduct"
	MethodDeleteProduct  = "product.ProductService/DeleteProduct"
)

type GetProductRequest struct {
	ProductID int64 `json:"product_id"`
}

type DeleteProductRequest struct {
	ProductID int64 `json:"product_id"`
}

type ProductRequest struct {
	Product *domain.Product `json:"product"`
}

type ProductResponse struct {
	Product *domain.Product `json:"product"`
}

type SearchProductsResponse struct {
	Products []*domain.Product `json:"products"`
}

type DeleteProductResponse struct{}
