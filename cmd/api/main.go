package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/config"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/database"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/logger"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/middleware"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/apartment"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/auth"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/booking"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/calendar"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/contract"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/expense"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/payment"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/report"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/modules/schedule"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/notify"
	jwtsvc "github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/pkg/jwt"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/realtime"
	"github.com/Parkersolucoes/apt-rent-ledger-pro-sub000/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	lg, err := logger.New(cfg.IsProduction(), "ledger-api")
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

	userRepo := repository.NewUserRepository(db)
	apartmentRepo := repository.NewApartmentRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	blockRepo := repository.NewAvailabilityRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	contractRepo := repository.NewContractRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	hub := realtime.NewHub(lg)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j))
	apartmentHandler := apartment.NewHandler(apartment.NewService(apartmentRepo))
	bookingHandler := booking.NewHandler(booking.NewService(bookingRepo, blockRepo, apartmentRepo, hub))
	calendarHandler := calendar.NewHandler(calendar.NewService(blockRepo, bookingRepo, apartmentRepo, hub))
	expenseHandler := expense.NewHandler(expense.NewService(expenseRepo))
	contractHandler := contract.NewHandler(contract.NewService(contractRepo, bookingRepo))

	reportService := report.NewService(bookingRepo, blockRepo, expenseRepo, apartmentRepo)
	reportHandler := report.NewHandler(reportService)

	var locker schedule.Locker
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer func() { _ = rdb.Close() }()
		locker = schedule.NewRedisLocker(rdb, "", lg)
	}
	runner := schedule.NewRunner(scheduleRepo, reportService, notify.FromConfig(cfg), locker, cfg.SchedulerLockTTL, lg)
	scheduleHandler := schedule.NewHandler(schedule.NewService(scheduleRepo, runner, cfg.DefaultTimezone))

	var provider payment.LinkProvider
	if cfg.StripeSecretKey != "" {
		provider = payment.NewStripeProvider(cfg.StripeSecretKey, cfg.PaymentSuccessURL, cfg.PaymentCancelURL)
	} else {
		lg.Warn("STRIPE_SECRET_KEY not set, payment links disabled")
	}
	paymentHandler := payment.NewHandler(
		payment.NewService(bookingRepo, provider, cfg.PaymentCurrency, hub, lg),
		cfg.StripeWebhookSecret,
		lg,
	)
	realtimeHandler := realtime.NewHandler(hub, cfg.AllowedOrigins())

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(lg),
		middleware.CORS(cfg.AllowedOrigins()),
		middleware.NewRateLimiter(cfg.RateLimitPerMin, lg).Middleware(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		public := v1.Group("")
		public.Use(middleware.OptionalJWTAuth(j))
		authHandler.RegisterPublicRoutes(public)
		paymentHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			apartmentHandler.RegisterRoutes(protected)
			bookingHandler.RegisterRoutes(protected)
			calendarHandler.RegisterRoutes(protected)
			expenseHandler.RegisterRoutes(protected)
			contractHandler.RegisterRoutes(protected)
			reportHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			realtimeHandler.RegisterRoutes(protected)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		lg.Info("http server listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	lg.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	hub.Close()
	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
