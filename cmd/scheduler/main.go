package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/config"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/database"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/logger"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/report"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/schedule"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/notify"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.IsProduction(), "ledger-scheduler")
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("database connection failed", zap.Error(err))
	}
	if err := repository.Migrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	bookingRepo := repository.NewBookingRepository(db)
	reports := report.NewService(
		bookingRepo,
		repository.NewAvailabilityRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewApartmentRepository(db),
	)

	var locker schedule.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() { _ = rdb.Close() }()
		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			lg.Warn("redis unreachable, ticks will be skipped until it answers", zap.Error(err))
		}
		cancel()
		locker = schedule.NewRedisLocker(rdb, "", lg)
	} else {
		lg.Info("REDIS_ADDR not set, using in-process lock")
	}

	runner := schedule.NewRunner(
		repository.NewScheduleRepository(db),
		reports,
		notify.FromConfig(cfg),
		locker,
		cfg.SchedulerLockTTL,
		lg,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	c := cron.New(cron.WithLogger(cron.PrintfLogger(zap.NewStdLog(lg))))
	if _, err := c.AddFunc(cfg.SchedulerCron, func() {
		tickCtx, cancel := context.WithTimeout(ctx, cfg.SchedulerLockTTL)
		defer cancel()
		if _, err := runner.RunDue(tickCtx, time.Now().UTC()); err != nil {
			lg.Error("scheduler tick failed", zap.Error(err))
		}
	}); err != nil {
		lg.Fatal("invalid SCHEDULER_CRON", zap.String("spec", cfg.SchedulerCron), zap.Error(err))
	}

	c.Start()
	lg.Info("scheduler started", zap.String("cron", cfg.SchedulerCron))

	<-ctx.Done()
	lg.Info("stopping scheduler")
	<-c.Stop().Done()
}
