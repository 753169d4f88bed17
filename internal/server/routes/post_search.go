package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/internal/server/middleware"
	"github.com/stelehq/stele/pkg/common"
)

type searchRequest struct {
	Terms  []common.SearchTerm  `json:"terms" validate:"required,min=1"`
	Config *common.SearchConfig `json:"config"`
}

type searchResponse struct {
	Count   int64           `json:"count"`
	Results []*common.Graph `json:"results"`
}

func SearchHandler(c echo.Context) error {
	params := new(searchRequest)
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

	results, err := engine.Search(ctx, params.Terms, cfg)
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
