package main

import (
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-pos-api/internal/authz"
	"go-pos-api/internal/handler"
	"go-pos-api/internal/middleware"
	"go-pos-api/internal/model"
	"go-pos-api/internal/repository"
	"go-pos-api/internal/service"
	"go-pos-api/internal/ws"
	"go-pos-api/pkg/apperr"
	"go-pos-api/pkg/config"
	"go-pos-api/pkg/database"
	"go-pos-api/pkg/token"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB(cfg)
	db.AutoMigrate(
		&model.User{},
		&model.Store{},
		&model.Category{},
		&model.Product{},
		&model.ProductImei{},
		&model.Transaction{},
		&model.TransactionItem{},
	)

	// 3. Seed the initial tenant owner
	seedOwner(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	tokens := token.NewManager(
		cfg.AccessTokenSecret, cfg.RefreshTokenSecret,
		cfg.AccessTokenTTL, cfg.RefreshTokenTTL,
	)

	userRepo := repository.NewUserRepo(db)
	storeRepo := repository.NewStoreRepo(db)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)

	engine := authz.NewEngine(repository.NewDirectory(db))

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	storeService := service.NewStoreService(storeRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, db, wsHub)
	transactionService := service.NewTransactionService(transactionRepo, productRepo, storeRepo, db, wsHub)

	authHandler := handler.NewAuthHandler(authService, cfg.RefreshTokenTTL)
	userHandler := handler.NewUserHandler(userService)
	storeHandler := handler.NewStoreHandler(storeService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	transactionHandler := handler.NewTransactionHandler(transactionService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "POS Tenant API v1.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var appErr *apperr.Error
			if errors.As(err, &appErr) {
				return c.Status(appErr.Status).JSON(fiber.Map{"error": appErr.Message})
			}
			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{"error": fiberErr.Message})
			}
			return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
		},
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo, tokens))

	// User Routes
	protected.Get("/users",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceUser),
		userHandler.GetUsers)
	protected.Get("/users/:id",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceUser),
		middleware.RequireUserAccess(engine, middleware.FromParam("id")),
		userHandler.GetUser)
	protected.Post("/users",
		middleware.RequirePermission(authz.ActionCreate, authz.ResourceUser),
		middleware.RequireUserCreateRules(),
		userHandler.CreateUser)
	protected.Put("/users/:id",
		middleware.RequirePermission(authz.ActionUpdate, authz.ResourceUser),
		middleware.RequireUserAccess(engine, middleware.FromParam("id")),
		middleware.RequireUserUpdateRules(),
		userHandler.UpdateUser)
	protected.Delete("/users/:id",
		middleware.RequirePermission(authz.ActionDelete, authz.ResourceUser),
		middleware.RequireUserAccess(engine, middleware.FromParam("id")),
		userHandler.DeleteUser)

	// Store Routes
	protected.Get("/stores",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceStore),
		storeHandler.GetStores)
	protected.Get("/stores/:id",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceStore),
		middleware.RequireStoreAccess(engine, middleware.FromParam("id")),
		storeHandler.GetStore)
	protected.Post("/stores",
		middleware.RequirePermission(authz.ActionCreate, authz.ResourceStore),
		storeHandler.CreateStore)
	protected.Put("/stores/:id",
		middleware.RequirePermission(authz.ActionUpdate, authz.ResourceStore),
		middleware.RequireStoreAccess(engine, middleware.FromParam("id")),
		storeHandler.UpdateStore)
	protected.Delete("/stores/:id",
		middleware.RequirePermission(authz.ActionDelete, authz.ResourceStore),
		middleware.RequireStoreAccess(engine, middleware.FromParam("id")),
		storeHandler.DeleteStore)

	// Category Routes
	protected.Get("/categories",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceCategory),
		middleware.RequireStoreAccess(engine, middleware.FromQuery("store_id")),
		categoryHandler.GetCategories)
	protected.Get("/categories/:id",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceCategory),
		middleware.RequireCategoryAccess(engine, middleware.FromParam("id")),
		categoryHandler.GetCategory)
	protected.Post("/categories",
		middleware.RequirePermission(authz.ActionCreate, authz.ResourceCategory),
		middleware.RequireStoreAccess(engine, middleware.FromBody("store_id")),
		categoryHandler.CreateCategory)
	protected.Put("/categories/:id",
		middleware.RequirePermission(authz.ActionUpdate, authz.ResourceCategory),
		middleware.RequireCategoryAccess(engine, middleware.FromParam("id")),
		categoryHandler.UpdateCategory)
	protected.Delete("/categories/:id",
		middleware.RequirePermission(authz.ActionDelete, authz.ResourceCategory),
		middleware.RequireCategoryAccess(engine, middleware.FromParam("id")),
		categoryHandler.DeleteCategory)

	// Product Routes
	protected.Get("/products",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceProduct),
		middleware.RequireStoreAccess(engine, middleware.FromQuery("store_id")),
		productHandler.GetProducts)
	protected.Get("/products/:id",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceProduct),
		middleware.RequireProductAccess(engine, middleware.FromParam("id")),
		productHandler.GetProduct)
	protected.Post("/products",
		middleware.RequirePermission(authz.ActionCreate, authz.ResourceProduct),
		middleware.RequireStoreAccess(engine, middleware.FromBody("store_id")),
		productHandler.CreateProduct)
	protected.Put("/products/:id",
		middleware.RequirePermission(authz.ActionUpdate, authz.ResourceProduct),
		middleware.RequireProductAccess(engine, middleware.FromParam("id")),
		productHandler.UpdateProduct)
	protected.Delete("/products/:id",
		middleware.RequirePermission(authz.ActionDelete, authz.ResourceProduct),
		middleware.RequireProductAccess(engine, middleware.FromParam("id")),
		productHandler.DeleteProduct)

	// Transaction Routes
	protected.Get("/transactions",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceTransaction),
		transactionHandler.GetTransactions)
	protected.Get("/transactions/:id",
		middleware.RequirePermission(authz.ActionRead, authz.ResourceTransaction),
		middleware.RequireTransactionAccess(engine, middleware.FromParam("id")),
		transactionHandler.GetTransaction)
	protected.Post("/transactions",
		middleware.RequirePermission(authz.ActionCreate, authz.ResourceTransaction),
		middleware.RequireTransactionType(),
		transactionHandler.CreateTransaction)
	protected.Put("/transactions/:id/approve",
		middleware.RequirePermission(authz.ActionUpdate, authz.ResourceTransaction),
		middleware.RequireTransactionAccess(engine, middleware.FromParam("id")),
		transactionHandler.ApproveTransaction)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedOwner creates a default tenant OWNER if the users table is empty
func seedOwner(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	count, err := userRepo.Count()
	if err != nil {
		log.Printf("Warning: failed to count users: %v", err)
		return
	}
	if count > 0 {
		return
	}

	owner := &model.User{
		Name:     "System Owner",
		Username: "owner",
		Role:     model.RoleOwner,
		IsActive: true,
	}
	owner.CreatedBy = "system"
	owner.UpdatedBy = "system"

	password := os.Getenv("SEED_OWNER_PASSWORD")
	if password == "" {
		password = "owner123"
	}
	if err := owner.SetPassword(password); err != nil {
		log.Printf("Warning: failed to hash owner password: %v", err)
		return
	}

	if err := userRepo.Create(owner); err != nil {
		log.Printf("Warning: failed to create owner user: %v", err)
	} else {
		log.Println("Owner user created: owner (change the seed password)")
	}
}
