package order

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
	orderService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/order"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Server exposes the order backend over its remote-procedure boundary.
type Server struct {
	e       *echo.Echo
	service orderService.Service
}

func NewServer(service orderService.Service, tracer tracing.Tracer) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		e:       e,
		service: service,
	}

	e.HTTPErrorHandler = rpc.NewHTTPErrorHandler()
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.POST("/"+MethodGetOrder, func(c echo.Context) error {
		var req GetOrderRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed GetOrder request")
		}

		order, err := s.service.Get(c.Request().Context(), req.OrderID)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, OrderResponse{Order: order})
	})

	e.POST("/"+MethodSearchOrders, func(c echo.Context) error {
		orders, err := s.service.Search(c.Request().Context())
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, SearchOrdersResponse{Orders: orders})
	})

	e.POST("/"+MethodCreateOrder, func(c echo.Context) error {
		var req OrderRequest
		if err := c.Bind(&req); err != nil || req.Order == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed CreateOrder request")
		}

		order, err := s.service.Create(c.Request().Context(), req.Order)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, OrderResponse{Order: order})
	})

	e.POST("/"+MethodUpdateOrder, func(c echo.Context) error {
		var req OrderRequest
		if err := c.Bind(&req); err != nil || req.Order == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed UpdateOrder request")
		}

		order, err := s.service.Update(c.Request().Context(), req.Order)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, OrderResponse{Order: order})
	})

	e.POST("/"+MethodDeleteOrder, func(c echo.Context) error {
		var req DeleteOrderRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed DeleteOrder request")
		}

		if err := s.service.Delete(c.Request().Context(), req.OrderID); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, DeleteOrderResponse{})
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
