package handler

import (
	"custodial-wallet/internal/adapter/http/middleware"
	redisStore "custodial-wallet/internal/adapter/storage/redis"
	"custodial-wallet/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	WalletSvc      ports.WalletService
	LedgerSvc      ports.LedgerService
	TransactionSvc ports.TransactionService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies PostgreSQL + Redis)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	// API v1 routes — all JWT-authenticated; tokens are issued by the
	// onboarding service, not here.
	jwtAuth := middleware.JWTAuth(deps.TokenSvc, deps.Logger)
	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.LedgerSvc)
	wallets := v1.Group("/wallets", jwtAuth)
	{
		wallets.POST("", rl("wallets"), walletHandler.CreateWallet)
		wallets.GET("", rl("wallets"), walletHandler.ListWallets)
		wallets.GET("/:id", rl("wallets"), walletHandler.GetWallet)
		wallets.GET("/:id/ledger", rl("ledger"), walletHandler.GetLedger)
		wallets.GET("/:id/audit", rl("ledger"), walletHandler.AuditBalance)
		wallets.PUT("/:id/pin", rl("wallets"), walletHandler.SetPin)
	}

	txHandler := NewTransactionHandler(deps.TransactionSvc)
	transactions := v1.Group("/transactions", jwtAuth)
	{
		transactions.POST("/transfer", rl("transfers"), txHandler.Transfer)
		transactions.POST("/deposit", rl("deposits"), txHandler.Deposit)
		transactions.POST("/withdraw", rl("withdrawals"), txHandler.Withdraw)
		transactions.GET("", rl("wallets"), txHandler.List)
		transactions.GET("/:reference", rl("wallets"), txHandler.GetByReference)
	}

	// --- Back-office routes (admin role required) ---
	adminHandler := NewAdminHandler(deps.TransactionSvc, deps.WalletSvc)
	admin := v1.Group("/admin", jwtAuth, middleware.RequireAdmin())
	{
		admin.POST("/transactions/:reference/reverse", rl("admin"), adminHandler.ReverseTransaction)
		admin.POST("/wallets/:id/freeze", rl("admin"), adminHandler.FreezeWallet)
		admin.POST("/wallets/:id/unfreeze", rl("admin"), adminHandler.UnfreezeWallet)
	}

	return r
}
