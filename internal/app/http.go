package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"taskpad/internal/config"
	v1 "taskpad/internal/delivery/http/v1"
	"taskpad/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		globalLogger.Error().
			Any("panic", err).
			Str("path", c.Request.URL.Path).
			Msg("recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			gin.H{"message": "Something went wrong!"})
	}))
	registerRoutes(router)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router *gin.Engine) {
	cfg := config.Global()
	jwtCfg := cfg.JWT

	authService := services.NewAuthService(
		globalLogger,
		globalPostgresPool,
		jwtCfg.Issuer,
		[]byte(jwtCfg.SigningKey),
		jwtCfg.RegisterTokenTTL,
		jwtCfg.LoginTokenTTL,
	)
	taskService := services.NewTaskService(globalLogger, globalPostgresPool)

	secureCookie := cfg.Env == config.EnvProd
	v1Handler := v1.New(globalLogger, authService, taskService, secureCookie)

	v1.RegisterRoutes(router, v1Handler)
}
