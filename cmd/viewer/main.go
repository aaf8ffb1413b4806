package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"hidingbook/internal/cache"
	"hidingbook/internal/client/etherscan"
	"hidingbook/internal/client/rook"
	"hidingbook/internal/config"
	cronrunner "hidingbook/internal/cron"
	"hidingbook/internal/db"
	"hidingbook/internal/handler"
	"hidingbook/internal/logger"
	"hidingbook/internal/metrics"
	gormrepository "hidingbook/internal/repository/gorm"
	"hidingbook/internal/service"
	"hidingbook/internal/snapshot"

	_ "hidingbook/docs"
)

func main() {
	cfgPath := os.Getenv("HB_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("HB_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	metrics.MustRegister()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore := openCacheStore(ctx, cfg.Cache, logger.Named(log, "cache"))
	defer closeStore()
	memo := cache.NewMemo(store, logger.Named(log, "cache"))

	rookClient := rook.NewClient(&http.Client{Timeout: cfg.Upstream.Timeout}, cfg.Upstream.RookBaseURL, cfg.Upstream.HidingBookBaseURL)
	if cfg.Breaker.Enabled {
		rookClient.WithBreaker(rook.BreakerSettings{
			MaxRequests:         cfg.Breaker.MaxRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.Timeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		})
	}

	tokenSvc := &service.TokenService{Source: rookClient, Memo: memo, TTL: cfg.Cache.TTL.Tokens, Logger: logger.Named(log, "tokens")}
	registrySvc := &service.RegistryService{Source: rookClient, Manual: cfg.Registry.Manual, Memo: memo, TTL: cfg.Cache.TTL.Registry}
	orderSvc := &service.OrderService{
		Source:       rookClient,
		Tokens:       tokenSvc,
		Registry:     registrySvc,
		Memo:         memo,
		Logger:       logger.Named(log, "orders"),
		OpenTTL:      cfg.Cache.TTL.OpenOrders,
		HistoryTTL:   cfg.Cache.TTL.History,
		PageSize:     cfg.Upstream.HistoryPageSize,
		MaxPages:     cfg.Upstream.MaxHistoryPages,
		FallbackName: cfg.Registry.FallbackName,
	}
	fillSvc := &service.FillService{Source: rookClient, Tokens: tokenSvc, Registry: registrySvc, Memo: memo, TTL: cfg.Cache.TTL.Fills, Logger: logger.Named(log, "fills")}
	auctionSvc := &service.AuctionService{Source: rookClient, Registry: registrySvc, Memo: memo, TTL: cfg.Cache.TTL.Auctions, Logger: logger.Named(log, "auctions")}
	priceSvc := &service.PriceService{Source: rookClient, Tokens: tokenSvc, Memo: memo, TTL: cfg.Cache.TTL.PriceHistory}

	var balanceSvc *service.BalanceService
	if cfg.Etherscan.APIKey != "" {
		scan := etherscan.NewClient(&http.Client{Timeout: cfg.Etherscan.Timeout}, cfg.Etherscan.BaseURL, cfg.Etherscan.APIKey, cfg.Etherscan.Rate, cfg.Etherscan.Burst)
		balanceSvc = &service.BalanceService{Source: scan, Tokens: tokenSvc, Memo: memo, TTL: cfg.Cache.TTL.Balances}
	} else {
		log.Info("etherscan api key not set, balance lookup disabled")
	}

	dbConn, err := db.Open(ctx, cfg.DB)
	switch {
	case errors.Is(err, db.ErrNotConfigured):
		log.Info("db dsn not set, snapshot archive disabled")
	case err != nil:
		log.Fatal("db open failed", zap.Error(err))
	default:
		defer dbConn.Close()
		if err := db.AutoMigrate(ctx, dbConn); err != nil {
			log.Fatal("auto-migrate failed", zap.Error(err))
		}
	}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(corsMiddleware())
	engine.Use(handler.RequestID())
	engine.Use(handler.AccessLog(logger.Named(log, "http")))

	deps := map[string]handler.Pinger{}
	if dbConn != nil {
		deps["db"] = dbConn
	}
	if p, ok := store.(handler.Pinger); ok {
		deps["cache"] = p
	}
	healthHandler := &handler.HealthHandler{Deps: deps}
	healthHandler.Register(engine)
	handler.RegisterDocs(engine)

	referenceHandler := &handler.ReferenceHandler{Tokens: tokenSvc, Registry: registrySvc}
	referenceHandler.Register(engine)
	orderHandler := &handler.OrderHandler{Orders: orderSvc, Fills: fillSvc, Auctions: auctionSvc}
	orderHandler.Register(engine)
	analyticsHandler := &handler.AnalyticsHandler{Orders: orderSvc}
	analyticsHandler.Register(engine)
	priceHandler := &handler.PriceHandler{Prices: priceSvc, Balances: balanceSvc}
	priceHandler.Register(engine)

	snapshotHandler := &handler.SnapshotHandler{}
	cronRunner := cronrunner.New(logger.Named(log, "cron"), ctx)
	if dbConn != nil {
		repo := gormrepository.New(dbConn.Gorm)
		snapshotHandler.Repo = repo
		if cfg.Snapshot.Enabled {
			job := &snapshot.Job{Orders: orderSvc, Repo: repo, Logger: logger.Named(log, "snapshot")}
			if _, err := cronRunner.Add("depth_snapshot", cfg.Snapshot.Cron, job.Run); err != nil {
				log.Fatal("invalid snapshot cron", zap.String("spec", cfg.Snapshot.Cron), zap.Error(err))
			}
		}
	}
	snapshotHandler.Register(engine)

	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cronRunner.Len() > 0 {
		cronRunner.Start()
		defer cronRunner.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server starting", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		log.Error("server error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}

// openCacheStore returns the redis store when configured and reachable, else
// the in-process store.
func openCacheStore(ctx context.Context, cfg config.CacheConfig, log *zap.Logger) (cache.Store, func()) {
	if !strings.EqualFold(cfg.Backend, "redis") {
		return cache.NewMemoryStore(), func() {}
	}
	rs := cache.NewRedisStore(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, cfg.Redis.Prefix)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rs.Ping(pingCtx); err != nil {
		log.Warn("redis unavailable, falling back to memory cache", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rs.Close()
		return cache.NewMemoryStore(), func() {}
	}
	log.Info("memo cache backed by redis", zap.String("addr", cfg.Redis.Addr))
	return rs, func() { _ = rs.Close() }
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET,OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type,X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
