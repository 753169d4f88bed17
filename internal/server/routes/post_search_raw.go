package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/internal/server/middleware"
	"github.com/stelehq/stele/pkg/common"
)

type searchRawRequest struct {
	// Query must yield subject identifiers in a single column. Positional
	// parameters refer to Params by 1-based index.
	Query  string               `json:"query" validate:"required"`
	Params []any                `json:"params"`
	Config *common.SearchConfig `json:"config"`
}

func SearchRawHandler(c echo.Context) error {
	params := new(searchRawRequest)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	cfg := params.Config
	if cfg == nil {
		cfg = &common.SearchConfig{}
	}

	engine := c.(*middleware.AppContext).App.Engine
	ctx := c.Request().Context()

	results, err := engine.SearchRaw(ctx, params.Query, params.Params, cfg)
	if err != nil {
		return searchErrorResponse(c, err)
	}
	defer results.Close()

	graphs := make([]*common.Graph, 0)
	for results.Next() {
		graphs = append(graphs, results.Graph())
	}
	if err := results.Err(); err != nil {
		return searchErrorResponse(c, err)
	}

	return c.JSON(http.StatusOK, searchResponse{Count: cfg.Count, Results: graphs})
}
