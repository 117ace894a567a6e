// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"aquafarm-service/internal/config"
	"aquafarm-service/internal/db"
	analyticsHandler "aquafarm-service/internal/handlers/analytics"
	authHandler "aquafarm-service/internal/handlers/auth"
	catalogHandler "aquafarm-service/internal/handlers/catalog"
	pondHandler "aquafarm-service/internal/handlers/pond"
	recordsHandler "aquafarm-service/internal/handlers/records"
	stockHandler "aquafarm-service/internal/handlers/stock"
	subscriptionHandler "aquafarm-service/internal/handlers/subscription"
	"aquafarm-service/internal/middleware"
	"aquafarm-service/internal/notify"
	"aquafarm-service/internal/pkg/jwt"
	"aquafarm-service/internal/repository/postgres"
	analyticsService "aquafarm-service/internal/service/analytics"
	authService "aquafarm-service/internal/service/auth"
	catalogService "aquafarm-service/internal/service/catalog"
	expenseService "aquafarm-service/internal/service/expense"
	pondService "aquafarm-service/internal/service/pond"
	saleService "aquafarm-service/internal/service/sale"
	stockService "aquafarm-service/internal/service/stock"
	subscriptionService "aquafarm-service/internal/service/subscription"
	waterService "aquafarm-service/internal/service/water"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	pool        *pgxpool.Pool
	redisClient *redis.Client
	httpServer  *http.Server
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- Logger -----
	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	s.logger = logger

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	s.pool = pool
	logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	// Visit counters are the only redis consumer; the service runs without
	// them when redis is down.
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		logger.Warn("redis unavailable, visit analytics disabled", zap.Error(err))
		redisClient = nil
	} else {
		logger.Info("connected to Redis")
	}
	s.redisClient = redisClient

	// ----- JWT Manager -----
	jwtManager, err := jwt.NewManager(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to build JWT manager: %w", err)
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)
	couponRepo := postgres.NewCouponRepository(pool)
	inventoryRepo := postgres.NewInventoryRepository(pool)
	feedEventRepo := postgres.NewFeedEventRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	pondRepo := postgres.NewPondRepository(pool)
	waterRepo := postgres.NewWaterRepository(pool)

	// ----- WebSocket Hub -----
	hub := notify.NewHub(jwtManager, logger)

	// ----- Services -----
	authSvc := authService.NewAuthService(userRepo, jwtManager, logger)
	subscriptionSvc := subscriptionService.NewService(userRepo, paymentRepo, catalogRepo, couponRepo, hub, logger)
	catalogSvc := catalogService.NewService(catalogRepo, couponRepo, logger)
	stockSvc := stockService.NewService(inventoryRepo, feedEventRepo, expenseRepo, logger)
	pondSvc := pondService.NewService(pondRepo, userRepo, logger)
	expenseSvc := expenseService.NewService(expenseRepo, logger)
	saleSvc := saleService.NewService(saleRepo, logger)
	waterSvc := waterService.NewService(waterRepo, logger)
	analyticsSvc := analyticsService.NewService(redisClient, logger)

	// ----- Bootstrap admin -----
	if s.cfg.AdminEmail != "" && s.cfg.AdminPassword != "" {
		if err := authSvc.EnsureAdminExists(ctx, s.cfg.AdminEmail, s.cfg.AdminPassword, s.cfg.AdminName); err != nil {
			logger.Error("failed to ensure admin account", zap.Error(err))
		}
	} else {
		logger.Warn("ADMIN_EMAIL/ADMIN_PASSWORD not set, skipping admin bootstrap")
	}

	// ----- Handlers -----
	handlers := &Handlers{
		AuthHandler:         authHandler.NewAuthHandler(authSvc, logger),
		SubscriptionHandler: subscriptionHandler.NewSubscriptionHandler(subscriptionSvc),
		CatalogHandler:      catalogHandler.NewCatalogHandler(catalogSvc),
		StockHandler:        stockHandler.NewStockHandler(stockSvc),
		PondHandler:         pondHandler.NewPondHandler(pondSvc),
		RecordsHandler:      recordsHandler.NewRecordsHandler(expenseSvc, saleSvc, waterSvc),
		AnalyticsHandler:    analyticsHandler.NewAnalyticsHandler(analyticsSvc),
		AnalyticsService:    analyticsSvc,
		Hub:                 hub,
		AuthMiddleware:      middleware.NewAuthMiddleware(jwtManager),
	}

	// ----- Middlewares -----
	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	SetupRouter(s.engine, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	logger.Info("server listening", zap.String("addr", s.cfg.HTTPAddr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and closes storage connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var firstErr error
	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			firstErr = err
		}
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.pool != nil {
		done := make(chan struct{})
		go func() {
			s.pool.Close()
			close(done)
		}()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
		}
	}
	if s.logger != nil {
		s.logger.Sync()
	}
	return firstErr
}
