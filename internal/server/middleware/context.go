package middleware

import (
	"github.com/MicahParks/keyfunc/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"github.com/stelehq/stele/pkg/schema"
	"github.com/stelehq/stele/pkg/search"
	"github.com/stelehq/stele/pkg/store"
)

// App carries the request-independent dependencies of the server.
type App struct {
	DBConn       *pgxpool.Pool
	Store        store.MetadataStore
	Engine       *search.Engine
	Mapping      *schema.Mapping
	Key          *keyfunc.Keyfunc
	MasterAPIKey string
}

type AppContext struct {
	echo.Context
	App *App
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			return next(&AppContext{c, app})
		}
	}
}
