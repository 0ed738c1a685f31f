package user

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
	userService "github.com/ZaninaAhlem/ExamMicroservices/internal/services/user"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

// Server exposes the user backend over its remote-procedure boundary.
// GetUser and SearchUsers return hydrated users.
type Server struct {
	e       *echo.Echo
	service userService.Service
}

func NewServer(service userService.Service, tracer tracing.Tracer) *Server {
	e := echo.New()
	e.HideBanner = true

	s := &Server{
		e:       e,
		service: service,
	}

	e.HTTPErrorHandler = rpc.NewHTTPErrorHandler()
	e.Use(middleware.Recover())
	e.Use(echo.WrapMiddleware(tracing.NewTracingMiddleware(tracer)))

	e.POST("/"+MethodGetUser, func(c echo.Context) error {
		var req GetUserRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed GetUser request")
		}

		user, err := s.service.Get(c.Request().Context(), req.UserID)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, HydratedUserResponse{User: user})
	})

	e.POST("/"+MethodSearchUsers, func(c echo.Context) error {
		users, err := s.service.Search(c.Request().Context())
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, SearchUsersResponse{Users: users})
	})

	e.POST("/"+MethodCreateUser, func(c echo.Context) error {
		var req UserRequest
		if err := c.Bind(&req); err != nil || req.User == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed CreateUser request")
		}

		user, err := s.service.Create(c.Request().Context(), req.User)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, UserResponse{User: user})
	})

	e.POST("/"+MethodUpdateUser, func(c echo.Context) error {
		var req UserRequest
		if err := c.Bind(&req); err != nil || req.User == nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed UpdateUser request")
		}

		user, err := s.service.Update(c.Request().Context(), req.User)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, UserResponse{User: user})
	})

	e.POST("/"+MethodDeleteUser, func(c echo.Context) error {
		var req DeleteUserRequest
		if err := c.Bind(&req); err != nil {
			return errors.Wrap(domain.ErrInvalidArgument, "malformed DeleteUser request")
		}

		if err := s.service.Delete(c.Request().Context(), req.UserID); err != nil {
			return err
		}

		return c.JSON(http.StatusOK, DeleteUserResponse{})
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
