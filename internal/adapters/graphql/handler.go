package graphql

import (
	"net/http"

	gql "github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/ZaninaAhlem/ExamMicroservices/internal/gateway"
)

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewHandler builds the /graphql endpoint. Execution errors travel inside
// the result envelope per the usual query-transport convention; only an
// unreadable request body is an HTTP error.
func NewHandler(gw *gateway.Gateway) (echo.HandlerFunc, error) {
	schema, err := NewSchema(gw)
	if err != nil {
		return nil, err
	}

	return func(c echo.Context) error {
		var req request
		if err := c.Bind(&req); err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed graphql request")
		}

		result := gql.Do(gql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Request().Context(),
		})

		return c.JSON(http.StatusOK, result)
	}, nil
}
