// Package rpc carries the wire conventions shared by the three backend
// boundaries: a JSON error envelope with a stable code, an echo error
// handler producing it, and a Caller that issues calls and translates the
// envelope back into domain errors.
package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/domain"
	"github.com/ZaninaAhlem/ExamMicroservices/pkg/tracing"
)

const (
	CodeNotFound         = "not_found"
	CodeAlreadyExists    = "already_exists"
	CodeInvalidArgument  = "invalid_argument"
	CodeStoreUnavailable = "store_unavailable"
	CodeInternal         = "internal"
)

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// NewHTTPErrorHandler maps domain errors onto the wire envelope. Every
// backend server installs it so clients see one error shape.
func NewHTTPErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			_ = c.JSON(httpErr.Code, ErrorResponse{Error: ErrorBody{
				Code:    CodeInternal,
				Message: fmt.Sprintf("%v", httpErr.Message),
			}})

			return
		}

		status, code := classify(err)
		_ = c.JSON(status, ErrorResponse{Error: ErrorBody{
			Code:    code,
			Message: err.Error(),
		}})
	}
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, domain.ErrAlreadyExists):
		return http.StatusConflict, CodeAlreadyExists
	case errors.Is(err, domain.ErrInvalidArgument):
		return http.StatusBadRequest, CodeInvalidArgument
	case errors.Is(err, domain.ErrStoreUnavailable), errors.Is(err, domain.ErrDependencyUnavailable):
		return http.StatusServiceUnavailable, CodeStoreUnavailable
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

// Caller issues one remote-procedure call per invocation: POST the request
// body to <address>/<method>, propagate the trace, decode the reply.
type Caller struct {
	Address    string
	HTTPClient *http.Client
	Tracer     tracing.Tracer
}

// Call invokes method with in as the JSON body and decodes a 200 reply into
// out (which may be nil). Transport failures come back as
// ErrDependencyUnavailable; a deadline hit keeps its context error so the
// caller can tell a slow dependency from a dead one.
func (c *Caller) Call(ctx context.Context, method string, in, out interface{}) error {
	body, err := json.Marshal(in)
	if err != nil {
		return errors.Wrapf(err, "marshal %s request", method)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		fmt.Sprintf("%s/%s", c.Address, method),
		bytes.NewBuffer(body),
	)
	if err != nil {
		return errors.Wrapf(err, "build %s request", method)
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set(echo.HeaderXRequestID, uuid.NewString())

	if c.Tracer != nil {
		c.Tracer.InjectHTTP(ctx, req.Header)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return errors.Wrapf(ctx.Err(), "call %s", method)
		}

		return domain.DependencyUnavailable(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return c.errorFromResponse(method, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return errors.Wrapf(err, "decode %s response", method)
	}

	return nil
}

func (c *Caller) errorFromResponse(method string, resp *http.Response) error {
	var envelope ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return domain.DependencyUnavailable(
			errors.Errorf("call %s: status %d with unreadable body", method, resp.StatusCode))
	}

	switch envelope.Error.Code {
	case CodeNotFound:
		return errors.Wrap(domain.ErrNotFound, envelope.Error.Message)
	case CodeAlreadyExists:
		return errors.Wrap(domain.ErrAlreadyExists, envelope.Error.Message)
	case CodeInvalidArgument:
		return errors.Wrap(domain.ErrInvalidArgument, envelope.Error.Message)
	case CodeStoreUnavailable:
		// The remote backend cannot reach its own store. From this side of
		// the boundary that is a systemic dependency failure.
		return domain.DependencyUnavailable(domain.ErrStoreUnavailable)
	default:
		return errors.Errorf("call %s: %s", method, envelope.Error.Message)
	}
}
