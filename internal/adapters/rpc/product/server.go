package product

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/adapters/rpc"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	productService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/product"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Server exposes the product backend over its remote-procedure boundary.
type Server struct {
	e       *echo.Echo
	service productService.Service
}

func NewServer(service productService.Service, tracer tracing.Tracer) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		e:       e,
		service: service,
	}

	e.HTTPErrorHandler = rpc.NewHTTPErrorHandler()
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.POST("/"+MethodGetProduct, func(c echo.Context) error {
		var req GetProductRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed GetProduct request")
		}

		product, err := s.service.Get(c.Request().Context(), req.ProductID)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, ProductResponse{Product: product})
	})

	e.POST("/"+MethodSearchProducts, func(c echo.Context) error {
		products, err := s.service.Search(c.Request().Context())
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, SearchProductsResponse{Products: products})
	})

	e.POST("/"+MethodCreateProduct, func(c echo.Context) error {
		var req ProductRequest
		if err := c.Bind(&req); err != nil || req.Product == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed CreateProduct request")
		}

		product, err := s.service.Create(c.Request().Context(), req.Product)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, ProductResponse{Product: product})
	})

	e.POST("/"+MethodUpdateProduct, func(c echo.Context) error {
		var req ProductRequest
		if err := c.Bind(&req); err != nil || req.Product == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed UpdateProduct request")
		}

		product, err := s.service.Update(c.Request().Context(), req.Product)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, ProductResponse{Product: product})
	})

	e.POST("/"+MethodDeleteProduct, func(c echo.Context) error {
		var req DeleteProductRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed DeleteProduct request")
		}

		if err := s.service.Delete(c.Request().Context(), req.ProductID); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, DeleteProductResponse{})
	})

	return s
}

func (s *Server) ListenAndServe(port int) error {
	return s.e.Start(fmt.Sprintf(":%d", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

// Handler exposes the underlying handler for in-process serving in tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) Test(req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec.Result()
}
