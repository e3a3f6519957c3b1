package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotelcore/config"
	"hotelcore/jobs"
	"hotelcore/routes"
	"hotelcore/services"
	"hotelcore/services/lock"
	"hotelcore/services/logger"
	"hotelcore/services/notification"
)

func main() {
	cfg := config.Load()
	log := logger.NewLogger(cfg.Env, logger.ParseLevel(cfg.LogLevel))
	slog.SetDefault(log)

	router, m, c, err := config.InitApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	db, err := config.ConnectDB(cfg, log)
	if err != nil {
		log.Error("failed to connect to db", "error", err)
		os.Exit(1)
	}

	deps := services.Deps{
		DB:        db,
		Logger:    log,
		Location:  cfg.Location(),
		LockWait:  cfg.LockWait,
		CacheTTL:  cfg.CacheTTL,
		TxOptions: cfg.TxOptions(),

		JobTimeout: jobs.ReconcileTimeout,
	}

	// Redis là tùy chọn: có thì dùng khóa phân tán và cache
	rdb, err := config.ConnectRedis(cfg, log)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	if rdb != nil {
		defer rdb.Close()
		deps.Redis = rdb
		releaseHook := lock.WithReleaseHook(func(key string, err error) {
			log.Warn("release lock failed", "key", key, "error", err)
		})
		deps.Locker = lock.NewRedisLocker(rdb, cfg.LockTTL, releaseHook)
		// đối soát chạy tới ReconcileTimeout nên cần khóa sống lâu hơn khóa sức chứa
		deps.JobLocker = lock.NewRedisLocker(rdb, cfg.JobLockTTL(jobs.ReconcileTimeout), releaseHook)
	}

	publishers := notification.MultiPublisher{notification.NewMelodyPublisher(m)}
	kafka, err := config.ConnectKafka(cfg, log)
	if err != nil {
		log.Error("failed to create kafka producer", "error", err)
		os.Exit(1)
	}
	if kafka != nil {
		defer kafka.Close()
		publishers = append(publishers, kafka)
	}
	deps.Publisher = publishers

	inventory := services.NewInventoryService(deps)
	reconciliation := services.NewReconciliationService(deps, inventory)

	config.InitWebSocket(router, m, log)
	routes.SetupRoutes(router, routes.Services{
		Reservations:   services.NewReservationService(deps),
		Blocks:         services.NewBlockBookingService(deps),
		Availability:   services.NewAvailabilityService(deps),
		Inventory:      inventory,
		Reconciliation: reconciliation,
	})

	if _, err := jobs.InitCronJobs(c, cfg.ReconcileCron, reconciliation, log); err != nil {
		log.Error("failed to initialize cron jobs", "error", err)
		os.Exit(1)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// chờ lượt đối soát đang chạy kết thúc
	select {
	case <-c.Stop().Done():
	case <-shutdownCtx.Done():
	}
	if err := m.Close(); err != nil {
		log.Warn("close websocket hub", "error", err)
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
}
