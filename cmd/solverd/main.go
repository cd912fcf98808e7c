package main

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/planbeam/solver/pkg/infrastructure/config"
	"github.com/planbeam/solver/pkg/infrastructure/logger"
	"github.com/planbeam/solver/pkg/infrastructure/metrics"
	"github.com/planbeam/solver/pkg/interfaces/rest"
)

func main() {
	appConfig, err := config.Load()
	if err != nil {
		// Can't use the structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting solverd",
		zap.String("environment", appConfig.Server.Env),
		zap.String("port", appConfig.Server.Port))

	metrics.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.BodyLimit(bodyLimit(appConfig.Planning.MaxUploadBytes)))
	e.Use(rest.RequestIDMiddleware)
	e.Use(metrics.MetricsMiddleware())

	rest.NewSolveHandler(appConfig).Register(e)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}

// bodyLimit renders the upload cap in the form echo's BodyLimit
// middleware expects
func bodyLimit(maxBytes int64) string {
	mb := maxBytes / (1 << 20)
	if mb < 1 {
		mb = 1
	}
	return fmt.Sprintf("%dM", mb)
}
