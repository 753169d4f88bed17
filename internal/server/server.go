package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mid "github.com/stelehq/stele/internal/server/middleware"
	"github.com/stelehq/stele/internal/util"
	"github.com/stelehq/stele/pkg/logger"
	"github.com/stelehq/stele/pkg/schema"
	"github.com/stelehq/stele/pkg/search"
	pgxstore "github.com/stelehq/stele/pkg/store/pgx"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/go-playground/validator"
	"github.com/golang-migrate/migrate/v4"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i any) error {
	if err := cv.validator.Struct(i); err != nil {
		return err
	}
	return nil
}

func Init() {
	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}

	var key *keyfunc.Keyfunc
	if authURL := util.GetEnv("AUTH_URL"); authURL != "" {
		k, err := keyfunc.NewDefault([]string{authURL + "/jwks"})
		if err != nil {
			logger.Fatal("Failed to load jwks keys", "err", err)
		}
		key = &k
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	databaseURL := util.GetEnv("DATABASE_URL")
	conn, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		logger.Fatal("Failed to connect to database", "err", err)
	}
	defer conn.Close()
	if err := util.RetryErrWithContext(ctx, 5, conn.Ping); err != nil {
		logger.Fatal("Failed to reach database", "err", err)
	}

	runMigrations(databaseURL)

	mapping := schema.NewMapping(schema.MappingParams{
		IdentifierProperty:    util.GetEnvString("SCHEMA_ID_PROPERTY", ""),
		LabelProperty:         util.GetEnvString("SCHEMA_LABEL_PROPERTY", ""),
		ParentProperty:        util.GetEnvString("SCHEMA_PARENT_PROPERTY", ""),
		AnyIdentifierProperty: util.GetEnvString("SCHEMA_ANYID_PROPERTY", ""),
	})

	st := pgxstore.NewMetadataDBStoreWithConnection(conn, mapping,
		pgxstore.WithMaxConcurrent(int64(util.GetEnvNumeric("SEARCH_MAX_CONCURRENT", pgxstore.DefaultMaxConcurrent))))
	engine := search.New(st, search.WithMapping(mapping))

	app := &mid.App{
		DBConn:       conn,
		Store:        st,
		Engine:       engine,
		Mapping:      mapping,
		Key:          key,
		MasterAPIKey: util.GetEnv("MASTER_API_KEY"),
	}

	e.Use(mid.AppContextMiddleware(app))
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	RegisterRoutes(e)

	go func() {
		port := util.GetEnv("PORT")
		if port == "" {
			port = "8080"
		}
		logger.Info("Starting server", "port", port)
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed shutting down server", "err", err)
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", "err", err)
	}
}

func runMigrations(databaseURL string) {
	dir := util.GetEnvString("MIGRATIONS_DIR", "migrations")
	m, err := migrate.New("file://"+dir, databaseURL)
	if err != nil {
		logger.Fatal("Failed to load migrations", "err", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Fatal("Failed to apply migrations", "err", err)
	}
	logger.Info("Database schema is up to date")
}
