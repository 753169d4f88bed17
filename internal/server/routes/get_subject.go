package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/internal/server/middleware"
	"github.com/stelehq/stele/pkg/common"
)

func GetSubjectHandler(c echo.Context) error {
	type getSubjectParams struct {
		ID             string `param:"id" validate:"required"`
		MetadataMode   string `query:"metadataMode"`
		ParentProperty string `query:"metadataParentProperty"`
	}

	params := new(getSubjectParams)
	if err := c.Bind(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}
	if err := c.Validate(params); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request params"})
	}

	engine := c.(*middleware.AppContext).App.Engine
	ctx := c.Request().Context()

	graph, err := engine.Subject(ctx, params.ID, &common.SearchConfig{
		MetadataMode:           params.MetadataMode,
		MetadataParentProperty: params.ParentProperty,
	})
	if err != nil {
		return searchErrorResponse(c, err)
	}
	if graph.Empty() {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Subject not found"})
	}

	return c.JSON(http.StatusOK, graph)
}
