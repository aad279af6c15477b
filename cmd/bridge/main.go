package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-bridge/internal/handler"
	"github.com/noah-isme/attendance-bridge/internal/migrations"
	"github.com/noah-isme/attendance-bridge/internal/repository"
	"github.com/noah-isme/attendance-bridge/internal/seed"
	"github.com/noah-isme/attendance-bridge/internal/server"
	"github.com/noah-isme/attendance-bridge/internal/service"
	"github.com/noah-isme/attendance-bridge/pkg/config"
	"github.com/noah-isme/attendance-bridge/pkg/logger"
	"github.com/noah-isme/attendance-bridge/pkg/store"
)

func main() {
	reset := flag.Bool("reset", false, "wipe the store and reseed (development only)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	st, err := store.Open(cfg.Store)
	if err != nil {
		zlog.Fatal("open store", zap.Error(err))
	}
	defer func() { _ = st.Close() }()

	ctx := context.Background()

	if *reset {
		if cfg.Env == config.EnvProduction {
			zlog.Fatal("refusing to reset the store in production")
		}
		if err := seed.Reset(ctx, st, cfg.Admin, zlog); err != nil {
			zlog.Fatal("reset store", zap.Error(err))
		}
		zlog.Info("store reset complete")
		return
	}

	if err := migrations.NewMigrator(st, zlog).Up(ctx); err != nil {
		zlog.Fatal("apply migrations", zap.Error(err))
	}
	if err := seed.Admin(ctx, st, cfg.Admin, zlog); err != nil {
		zlog.Fatal("seed admin", zap.Error(err))
	}

	validate := validator.New()
	sessions := service.NewSessionRegistry()

	userRepo := repository.NewUserRepository(st)
	sectionRepo := repository.NewSectionRepository(st)
	studentRepo := repository.NewStudentRepository(st)
	attendanceRepo := repository.NewAttendanceRepository(st)

	authSvc := service.NewAuthService(userRepo, sessions, validate, zlog, cfg.Auth)
	sectionSvc := service.NewSectionService(sectionRepo, validate, zlog)
	studentSvc := service.NewStudentService(studentRepo, validate, zlog)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, studentRepo, validate, zlog)
	dashboardSvc := service.NewDashboardService(attendanceRepo, zlog)
	exportSvc := service.NewExportService(attendanceSvc, zlog, cfg.Export)

	metrics := handler.NewMetrics(prometheus.DefaultRegisterer)
	dispatcher := handler.NewDispatcher(zlog, metrics)
	handler.NewAuthHandler(authSvc).Mount(dispatcher)
	handler.NewSectionHandler(sectionSvc).Mount(dispatcher)
	handler.NewStudentHandler(studentSvc).Mount(dispatcher)
	handler.NewAttendanceHandler(attendanceSvc).Mount(dispatcher)
	handler.NewDashboardHandler(dashboardSvc).Mount(dispatcher)
	handler.NewReportHandler(exportSvc).Mount(dispatcher)

	srv := server.New(cfg, dispatcher, zlog)

	go func() {
		zlog.Info("bridge listening", zap.String("addr", srv.Addr), zap.Int("ops", len(dispatcher.Ops())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("shutdown", zap.Error(err))
	}
	zlog.Info("bridge stopped")
}
