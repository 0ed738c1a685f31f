package rest

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/internal/gateway"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Server is the public gateway surface: the REST route table plus the
// query endpoint when one is mounted.
type Server struct {
	e       *echo.Echo
	gateway *gateway.Gateway
}

// NewServer builds the route table. The path shapes (singular POST /order
// next to plural POST /products) are the published API and stay as they
// are.
func NewServer(gw *gateway.Gateway, tracer tracing.Tracer, graphqlHandler echo.HandlerFunc) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		e:       e,
		gateway: gw,
	}

	e.HTTPErrorHandler = customHTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.GET("/orders", func(c echo.Context) error {
		orders, err := s.gateway.ListOrders(c.Request().Context(), &gateway.ListOrdersRequest{})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, orders)
	})

	e.GET("/orders/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		order, err := s.gateway.GetOrder(c.Request().Context(), &gateway.GetOrderRequest{ID: id})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, order)
	})

	e.POST("/order", func(c echo.Context) error {
		var req gateway.CreateOrderRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed order body")
		}

		order, err := s.gateway.CreateOrder(c.Request().Context(), &req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, order)
	})

	e.PUT("/order/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req gateway.UpdateOrderRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed order body")
		}
		req.ID = id

		order, err := s.gateway.UpdateOrder(c.Request().Context(), &req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, order)
	})

	e.DELETE("/order/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := s.gateway.DeleteOrder(c.Request().Context(), &gateway.DeleteOrderRequest{ID: id}); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	e.GET("/products", func(c echo.Context) error {
		products, err := s.gateway.ListProducts(c.Request().Context(), &gateway.ListProductsRequest{})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, products)
	})

	e.GET("/products/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		product, err := s.gateway.GetProduct(c.Request().Context(), &gateway.GetProductRequest{ID: id})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, product)
	})

	e.POST("/products", func(c echo.Context) error {
		var req gateway.CreateProductRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed product body")
		}

		product, err := s.gateway.CreateProduct(c.Request().Context(), &req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, product)
	})

	e.PUT("/product/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		var req gateway.UpdateProductRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed product body")
		}
		req.ID = id

		product, err := s.gateway.UpdateProduct(c.Request().Context(), &req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, product)
	})

	e.DELETE("/product/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := s.gateway.DeleteProduct(c.Request().Context(), &gateway.DeleteProductRequest{ID: id}); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	e.GET("/users", func(c echo.Context) error {
		users, err := s.gateway.ListUsers(c.Request().Context(), &gateway.ListUsersRequest{})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, users)
	})

	e.GET("/users/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		user, err := s.gateway.GetUser(c.Request().Context(), &gateway.GetUserRequest{ID: id})
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, user)
	})

	e.POST("/user", func(c echo.Context) error {
		var req gateway.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed user body")
		}

		user, err := s.gateway.CreateUser(c.Request().Context(), &req)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, user)
	})

	e.DELETE("/user/:id", func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}

		if err := s.gateway.DeleteUser(c.Request().Context(), &gateway.DeleteUserRequest{ID: id}); err != nil {
			return err
		}

		return c.NoContent(http.StatusNoContent)
	})

	if graphqlHandler != nil {
		e.POST("/graphql", graphqlHandler)
	}

	return s
}

func (s *Server) ListenAndServe(port int) error {
	return s.e.Start(fmt.Sprintf(":%d", port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}

func (s *Server) Test(req *http.Request) *http.Response {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	return rec.Result()
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errors.Wrap(domain.ErrInvalidArgument, "id must be an integer")
	}

	return id, nil
}

type ErrorMessageResp struct {
	Message string `json:"message"`
}

func customHTTPErrorHandler(rootError error, c echo.Context) {
	err := findHTTPError(c, rootError)

	if err == nil {
		return
	}

	c.Echo().DefaultHTTPErrorHandler(err, c)
}

// findHTTPError translates domain errors into wire statuses: NotFound 404,
// InvalidArgument 400, AlreadyExists 409, infrastructure failure 500.
// Returns nil once a response has been written.
func findHTTPError(ctx echo.Context, err error) error {
	if err == nil {
		return nil
	}

	var e *echo.HTTPError
	if errors.As(err, &e) {
		return e
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorMessageResp{Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrUnsupported):
		return ctx.JSON(http.StatusBadRequest, ErrorMessageResp{Message: err.Error()})
	case errors.Is(err, domain.ErrAlreadyExists):
		return ctx.JSON(http.StatusConflict, ErrorMessageResp{Message: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrDependencyUnavailable):
		return ctx.JSON(http.StatusInternalServerError, ErrorMessageResp{Message: err.Error()})
	}

	return ctx.JSON(http.StatusInternalServerError, ErrorMessageResp{Message: err.Error()})
}
