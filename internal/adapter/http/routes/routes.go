package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "taller_web/docs" // swagger spec, generated
	"taller_web/internal/adapter/http/handlers"
	"taller_web/internal/adapter/http/middleware"
	"taller_web/internal/config"
	"taller_web/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Sessions usecase.ISessionUseCase
	Auth     *handlers.AuthHandler
	Orders   *handlers.OrderHandler
	Catalog  *handlers.CatalogHandler
	Workshop *handlers.WorkshopHandler
	Pages    *handlers.PagesHandler
}

// Run starts the server and blocks until SIGINT/SIGTERM, then drains within
// the configured shutdown window.
func Run(cfg config.Config, logger *zap.Logger, h Handlers) error {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	setMiddlewares(router, cfg, logger, h.Sessions)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	addPageRoutes(router, h)
	addAPIRoutes(router, h)

	// Anything unmatched goes back to the login page.
	router.NoRoute(func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/login")
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	logger.Info("Server started", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

func setMiddlewares(router *gin.Engine, cfg config.Config, logger *zap.Logger, sessions usecase.ISessionUseCase) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error("Recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(middleware.CORS())
	router.Use(middleware.SessionFromCookie(sessions, cfg.Session.CookieName))
}
