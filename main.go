package main

import (
	"log"
	"time"

	"spendly-be/internal/cache"
	"spendly-be/internal/config"
	"spendly-be/internal/controllers"
	"spendly-be/internal/database"
	"spendly-be/internal/jwt"
	"spendly-be/internal/middleware"
	"spendly-be/internal/repository"
	"spendly-be/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run database migrations
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
		cacheClient = nil
	} else {
		log.Println("Connected to Redis cache")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	budgetRepo := repository.NewBudgetRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo)
	categoryService := service.NewCategoryService(categoryRepo, expenseRepo, cacheClient)
	expenseService := service.NewExpenseService(expenseRepo, categoryRepo, cacheClient)
	budgetService := service.NewBudgetService(budgetRepo, expenseRepo, categoryRepo, cacheClient)

	// Initialize controllers
	authController := controllers.NewAuthController(authService, userService)
	userController := controllers.NewUserController(userService)
	categoryController := controllers.NewCategoryController(categoryService)
	expenseController := controllers.NewExpenseController(expenseService)
	budgetController := controllers.NewBudgetController(budgetService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)

	// Create a Gin router
	router := gin.Default()

	// Health check endpoint (no rate limiting)
	router.GET("/health", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(503, gin.H{"status": "unhealthy", "database": "disconnected"})
			return
		}
		c.JSON(200, gin.H{"status": "ok", "database": "connected"})
	})

	// API v1 routes group with general rate limiting
	api := router.Group("/api/v1")
	api.Use(generalRateLimiter.LimitMiddleware())
	{
		// Auth routes with stricter rate limiting
		auth := api.Group("/auth")
		auth.Use(authRateLimiter.LimitMiddleware())
		{
			auth.POST("/register", authController.Register)
			auth.POST("/login", authController.Login)
		}

		// Protected routes - require JWT authentication
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(jwtService, userRepo))
		{
			protected.GET("/auth/me", authController.Me)
			protected.PUT("/users/me", userController.UpdateMe)
			protected.DELETE("/users/me", userController.DeactivateMe)

			protected.GET("/categories", categoryController.List)
			protected.POST("/categories", categoryController.Create)
			protected.GET("/categories/:id", categoryController.Get)
			protected.PUT("/categories/:id", categoryController.Update)
			protected.DELETE("/categories/:id", categoryController.Delete)

			// Summary routes must be registered before the :id routes they
			// would otherwise collide with
			protected.GET("/expenses/summary", expenseController.Summary)
			protected.GET("/expenses/by-category", expenseController.ByCategory)
			protected.GET("/expenses/monthly", expenseController.Monthly)
			protected.GET("/expenses", expenseController.List)
			protected.POST("/expenses", expenseController.Create)
			protected.GET("/expenses/:id", expenseController.Get)
			protected.PUT("/expenses/:id", expenseController.Update)
			protected.DELETE("/expenses/:id", expenseController.Delete)

			protected.GET("/budgets/progress", budgetController.AllProgress)
			protected.GET("/budgets", budgetController.List)
			protected.POST("/budgets", budgetController.Create)
			protected.GET("/budgets/:id", budgetController.Get)
			protected.GET("/budgets/:id/progress", budgetController.Progress)
			protected.PUT("/budgets/:id", budgetController.Update)
			protected.DELETE("/budgets/:id", budgetController.Delete)
		}
	}

	log.Printf("Server starting on http://localhost:%s", cfg.Port)
	router.Run(":" + cfg.Port)
}
