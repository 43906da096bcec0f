package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-storefront-api/internal/config"
	"go-storefront-api/internal/events"
	"go-storefront-api/internal/handler"
	"go-storefront-api/internal/mailer"
	"go-storefront-api/internal/middleware"
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/search"
	"go-storefront-api/internal/service"
	"go-storefront-api/internal/ws"
	"go-storefront-api/pkg/database"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
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
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{}, &model.Address{},
		&model.Product{}, &model.InventoryMovement{},
		&model.Cart{}, &model.CartItem{},
		&model.Order{}, &model.OrderItem{}, &model.Payment{}, &model.Shipment{},
		&model.Coupon{},
		&model.Review{},
		&model.SupportTicket{}, &model.TicketMessage{},
	)

	// 3. Seed default admin and welcome coupon
	seedDefaults(db)

	// 4. Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
			Debug:            !cfg.IsProduction(),
		}); err != nil {
			log.Printf("Warning: sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// 5. Optional infrastructure. Each of these degrades to a no-op when
	// its backend is not configured.
	wsHub := ws.NewHub()
	go wsHub.Run()

	producer := events.NewProducer(cfg.KafkaBrokers)
	if producer != nil {
		defer producer.Close()
	}

	productIndex, err := search.NewProductIndex(cfg)
	if err != nil {
		log.Printf("Warning: search disabled: %v", err)
	}

	mail := mailer.New(cfg)

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	addressRepo := repository.NewAddressRepo(db)
	productRepo := repository.NewProductRepo(db)
	invRepo := repository.NewInventoryRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	couponRepo := repository.NewCouponRepo(db)
	reviewRepo := repository.NewReviewRepo(db)
	supportRepo := repository.NewSupportRepo(db)

	authService := service.NewAuthService(userRepo)
	addressService := service.NewAddressService(addressRepo)
	productService := service.NewProductService(productRepo, productIndex, producer)
	invService := service.NewInventoryService(productRepo, invRepo, db, wsHub, producer)
	cartService := service.NewCartService(cartRepo, productRepo, db, producer)
	orderService := service.NewOrderService(orderRepo, cartRepo, productRepo, invRepo, couponRepo, addressRepo, userRepo, db, wsHub, producer, mail)
	couponService := service.NewCouponService(couponRepo)
	reviewService := service.NewReviewService(reviewRepo, orderRepo, productRepo)
	supportService := service.NewSupportService(supportRepo)
	dashService := service.NewDashboardService(productRepo, orderRepo, invRepo)
	userService := service.NewUserService(userRepo)

	authHandler := handler.NewAuthHandler(authService)
	addressHandler := handler.NewAddressHandler(addressService)
	productHandler := handler.NewProductHandler(productService)
	invHandler := handler.NewInventoryHandler(invService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	couponHandler := handler.NewCouponHandler(couponService)
	reviewHandler := handler.NewReviewHandler(reviewService)
	supportHandler := handler.NewSupportHandler(supportService)
	dashHandler := handler.NewDashboardHandler(dashService)
	userHandler := handler.NewUserHandler(userService)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Storefront API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS
	if cfg.SentryDSN != "" {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	// 8. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/products", productHandler.List)
	api.Get("/products/search", productHandler.Search)
	api.Get("/products/:id", productHandler.Get)
	api.Get("/products/:id/reviews", reviewHandler.ListByProduct)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Profile
	protected.Get("/me", authHandler.Me)
	protected.Put("/me", authHandler.UpdateProfile)
	protected.Put("/me/password", authHandler.ChangePassword)
	protected.Delete("/me", authHandler.Deactivate)

	// Addresses
	protected.Get("/addresses", addressHandler.List)
	protected.Post("/addresses", addressHandler.Create)
	protected.Put("/addresses/:id", addressHandler.Update)
	protected.Delete("/addresses/:id", addressHandler.Delete)
	protected.Put("/addresses/:id/default", addressHandler.SetDefault)

	// Cart
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:id", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:id", cartHandler.RemoveItem)
	protected.Delete("/cart", cartHandler.Clear)
	protected.Get("/cart/validate", cartHandler.Validate)

	// Orders
	protected.Post("/orders", orderHandler.Create)
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Post("/orders/:id/cancel", orderHandler.Cancel)

	// Reviews
	protected.Post("/products/:id/reviews", reviewHandler.Add)
	protected.Delete("/reviews/:id", reviewHandler.Delete)

	// Support (customer side)
	protected.Post("/support/tickets", supportHandler.CreateTicket)
	protected.Get("/support/tickets", supportHandler.ListMine)
	protected.Get("/support/tickets/:id", supportHandler.Get)
	protected.Post("/support/tickets/:id/messages", supportHandler.Reply)

	// ============ AGENT ROUTES ============
	agent := protected.Group("/agent", middleware.RequireRole(model.RoleSupport, model.RoleAdmin))
	agent.Get("/tickets", supportHandler.ListAll)
	agent.Put("/tickets/:id/status", supportHandler.UpdateStatus)

	// ============ ADMIN ROUTES ============
	admin := protected.Group("/admin", middleware.RequireAdmin())

	admin.Get("/dashboard/stats", dashHandler.Stats)
	admin.Get("/dashboard/stock-movement", dashHandler.StockMovement)

	admin.Post("/products", productHandler.Create)
	admin.Put("/products/:id", productHandler.Update)
	admin.Delete("/products/:id", productHandler.Delete)
	admin.Put("/products/:id/stock", invHandler.AdjustStock)
	admin.Get("/products/:id/movements", invHandler.Movements)

	admin.Get("/orders", orderHandler.ListAll)
	admin.Put("/orders/:id/status", orderHandler.UpdateStatus)

	admin.Get("/users", userHandler.List)
	admin.Put("/users/:id/status", userHandler.SetActive)
	admin.Put("/users/:id/role", userHandler.SetRole)

	admin.Post("/coupons", couponHandler.Create)
	admin.Get("/coupons", couponHandler.List)
	admin.Delete("/coupons/:code", couponHandler.Disable)

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

	// 9. Graceful Shutdown
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

// seedDefaults creates the default admin account and the welcome coupon
// if they don't exist yet.
func seedDefaults(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err != nil {
		admin := &model.User{
			Email:    "admin@example.com",
			FullName: "Administrator",
			Role:     model.RoleAdmin,
			IsActive: true,
		}
		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}
		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("Admin user created: admin@example.com / admin123")
		}
	}

	couponRepo := repository.NewCouponRepo(db)
	if _, err := couponRepo.FindByCode("WELCOME10"); err != nil {
		welcome := &model.Coupon{
			Code:     "WELCOME10",
			Type:     model.CouponPercent,
			Value:    10,
			MaxUses:  1000,
			IsActive: true,
		}
		if err := couponRepo.Create(welcome); err != nil {
			log.Printf("Warning: Failed to seed welcome coupon: %v", err)
		} else {
			log.Println("Welcome coupon created: WELCOME10 (10%% off)")
		}
	}
}
