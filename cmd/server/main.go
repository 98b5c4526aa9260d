package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"mumu_delivery/internal/config"
	"mumu_delivery/internal/controllers"
	"mumu_delivery/internal/logger"
	"mumu_delivery/internal/middleware"
	"mumu_delivery/internal/repository"
	"mumu_delivery/internal/routes"
	"mumu_delivery/internal/services"
	"mumu_delivery/internal/session"
)

func main() {
	cfg := config.Load()

	// Initialize structured logging to file
	logger.Setup(cfg.LogFile, cfg.LogLevel)

	db, err := config.InitDB(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("database setup failed")
	}

	store := repository.NewStore(db)
	sessions := session.NewManager(cfg.JWTSecret, cfg.JWTTTL)
	routeSvc := services.NewRouteService(store, cfg.AllowDuplicateAssignments, cfg.Timezone)

	deps := routes.Deps{
		Sessions:  sessions,
		Auth:      controllers.NewAuthController(services.NewAuthService(store, sessions)),
		Routes:    controllers.NewRouteController(routeSvc),
		Locations: controllers.NewLocationController(services.NewLocationService(store, cfg.Timezone)),
		Drivers:   controllers.NewDriverController(routeSvc, services.NewDeliveryService(store, cfg.Timezone)),
	}

	// Request logging shares the rotating log file
	r := routes.SetupRouter(deps, ginlog.SetLogger(ginlog.WithWriter(logger.Output())), gin.Recovery())

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: middleware.EnableCORS(r),
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
	logrus.Info("server exited")
}
