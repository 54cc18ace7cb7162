package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/sangamhq/sangam/internal/bootstrap"
	"github.com/sangamhq/sangam/internal/config"
	"github.com/sangamhq/sangam/internal/infra/cache"
	"github.com/sangamhq/sangam/internal/infra/db"
	"github.com/sangamhq/sangam/internal/modules/handler"
	"github.com/sangamhq/sangam/internal/router"
	"github.com/sangamhq/sangam/internal/telemetry"
)

func main() {
	inj := bootstrap.BuildContainer()

	cfg := do.MustInvoke[*config.Config](inj)
	log := do.MustInvoke[*zap.Logger](inj)
	defer log.Sync()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if _, err := telemetry.SetupTracing(cfg); err != nil {
		log.Fatal("failed to set up tracing", zap.Error(err))
	}

	gdb := do.MustInvoke[*gorm.DB](inj)
	rdb := do.MustInvoke[*redis.Client](inj)
	if cfg.Telemetry.Enabled && cfg.Telemetry.OtlpEndpoint != "" {
		if err := db.RegisterOpenTelemetryPlugin(gdb); err != nil {
			log.Warn("failed to instrument gorm", zap.Error(err))
		}
		if err := cache.RegisterOpenTelemetryPlugin(rdb); err != nil {
			log.Warn("failed to instrument redis", zap.Error(err))
		}
	}

	r := router.NewRouter(router.RouterDeps{
		Config:                 cfg,
		DB:                     gdb,
		Log:                    log,
		AuthHandler:            do.MustInvoke[*handler.AuthHandler](inj),
		ProfileHandler:         do.MustInvoke[*handler.ProfileHandler](inj),
		AccessRequestHandler:   do.MustInvoke[*handler.AccessRequestHandler](inj),
		InquiryHandler:         do.MustInvoke[*handler.InquiryHandler](inj),
		PaymentSettingsHandler: do.MustInvoke[*handler.PaymentSettingsHandler](inj),
		AdminHandler:           do.MustInvoke[*handler.AdminHandler](inj),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server listening", zap.String("addr", cfg.Server.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	if err := cache.Close(rdb); err != nil {
		log.Warn("failed to close redis", zap.Error(err))
	}
	if err := telemetry.Shutdown(ctx); err != nil {
		log.Error("failed to shut down tracing", zap.Error(err))
	}
}
