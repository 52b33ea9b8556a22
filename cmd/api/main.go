package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"servicehub/internal/config"
	"servicehub/internal/database"
	"servicehub/internal/modules/realtime"
	"servicehub/internal/pkg/cache"
	jwtsvc "servicehub/internal/pkg/jwt"
	"servicehub/internal/pkg/logger"
	"servicehub/internal/pkg/mq"
	"servicehub/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}

	logger.Setup(cfg.AppEnv, cfg.LogLevel)
	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.WithError(err).Fatal("database connection failed")
	}
	if err := database.Migrate(db); err != nil {
		logrus.WithError(err).Fatal("database migration failed")
	}

	deps := server.Deps{
		DB:          db,
		JWT:         jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL),
		Hub:         realtime.NewHub(),
		CacheTTL:    cfg.CacheTTL,
		CORSOrigins: cfg.CORSAllowedOrigins,
	}
	defer deps.Hub.Close()

	if cfg.RedisURL != "" {
		rc, err := cache.NewRedis(ctx, cfg.RedisURL, "servicehub:")
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, catalog cache disabled")
		} else {
			defer rc.Close()
			deps.Cache = rc
		}
	}

	if cfg.AMQPURL != "" {
		pub, err := mq.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logrus.WithError(err).Warn("rabbitmq unavailable, booking events stay local")
		} else {
			defer pub.Close()
			deps.Publisher = pub
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", cfg.HTTPAddr).Info("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("http server failed")
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("graceful shutdown failed")
	}
}
