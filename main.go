package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clubhouse/config"
	"clubhouse/cron"
	"clubhouse/database"
	bookingRepo "clubhouse/database/repository/booking"
	memberRepo "clubhouse/database/repository/member"
	statementRepo "clubhouse/database/repository/statement"
	"clubhouse/handlers"
	"clubhouse/middleware"
	"clubhouse/routes"
	"clubhouse/services/billing"
	"clubhouse/services/booking"
	"clubhouse/services/member"
	"clubhouse/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stores struct {
	bookings   bookingRepo.BookingRepository
	members    memberRepo.MemberRepository
	statements statementRepo.StatementRepository
	close      func(context.Context) error
}

func openStores(cfg *config.Config, logger *zap.Logger) (*stores, error) {
	if cfg.StoreDriver == "sqlite" {
		db, err := database.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Info("Using SQLite store", zap.String("path", cfg.SQLitePath))
		return &stores{
			bookings:   bookingRepo.NewSQLiteBookingRepo(db),
			members:    memberRepo.NewSQLiteMemberRepo(db),
			statements: statementRepo.NewSQLiteStatementRepo(db),
			close:      func(context.Context) error { return db.Close() },
		}, nil
	}

	client, err := database.InitDB(cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	return &stores{
		bookings:   bookingRepo.NewMongoBookingRepo(client, cfg.DatabaseName, logger),
		members:    memberRepo.NewMongoMemberRepo(client, cfg.DatabaseName, logger),
		statements: statementRepo.NewMongoStatementRepo(client, cfg.DatabaseName, logger),
		close:      client.Disconnect,
	}, nil
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.GetLogger().Sugar().Fatalf("main: %v", err)
	}
	logger := utils.InitializeLogger(cfg.IsProduction(), cfg.LogLevel)
	defer logger.Sync()

	if !cfg.IsProduction() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	st, err := openStores(cfg, logger)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to open store: %v", err)
	}

	// The slot board works without Redis; it is only a cache.
	var boardCache booking.BoardCache
	health := map[string]utils.Pinger{"store": st.bookings}
	if rdb, err := utils.InitCache(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisCacheDB); err != nil {
		logger.Warn("Redis unavailable, slot board cache disabled", zap.Error(err))
	} else {
		boardCache = booking.NewRedisBoardCache(rdb, cfg.SlotCacheTTL, logger)
		health["redis"] = utils.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
	}

	if cfg.JWTSecret == "" {
		logger.Warn("JWT_SECRET not set, using an insecure development secret")
	}
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	// services.
	memberService := &member.DefaultMemberService{
		Repo:   st.members,
		Tokens: tokens,
		Logger: logger.Named("member"),
	}
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := memberService.EnsureAdmin(seedCtx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		logger.Error("main: failed to seed admin account", zap.Error(err))
	}
	seedCancel()

	windows, _ := cfg.Sessions() // validated by LoadConfig
	policy := booking.DefaultPolicy()
	policy.AlignMinutes = cfg.BookingAlignmentMins
	policy.HourlyRate = cfg.HourlyRate
	bookingService := &booking.DefaultBookingService{
		Repo:        st.bookings,
		Members:     memberService,
		Cache:       boardCache,
		Windows:     windows,
		Granularity: cfg.SlotGranularityMins,
		Policy:      policy,
		Logger:      logger.Named("booking"),
	}

	billingService := &billing.DefaultBillingService{
		Bookings:   st.bookings,
		Statements: st.statements,
		Balances:   memberService,
		Logger:     logger.Named("billing"),
	}

	worker, err := cron.NewStatementWorker(cfg.StatementCron, billingService, logger.Named("cron"))
	if err != nil {
		logger.Sugar().Fatalf("main: %v", err)
	}
	worker.Start()

	monitor := utils.NewHealthMonitor(health)
	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	monitor.Start(monitorCtx, 30*time.Second)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestMetrics(logger))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	handlerBundle := &handlers.HandlerBundle{
		Tokens:   tokens,
		Health:   monitor,
		Members:  handlers.NewMemberHandler(memberService),
		Bookings: handlers.NewBookingHandler(bookingService),
		Admin:    handlers.NewAdminHandler(bookingService, memberService, billingService),
	}
	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.AppPort,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	worker.Stop(ctx)
	stopMonitor()
	if err := st.close(ctx); err != nil {
		logger.Warn("main: failed to close store", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
