package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"kasir-backend/internal/handler"
	"kasir-backend/internal/middleware"
	"kasir-backend/internal/model"
	"kasir-backend/internal/repository"
	"kasir-backend/internal/service"
	"kasir-backend/internal/ws"
	"kasir-backend/pkg/database"
	"kasir-backend/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	zapLog := logger.New()
	defer zapLog.Sync()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	db.AutoMigrate(
		&model.Product{},
		&model.StockMovement{},
		&model.MovementLine{},
		&model.Sale{},
		&model.SaleLine{},
		&model.CashierSession{},
		&model.Shift{},
		&model.NumberSequence{},
		&model.User{},
		&model.Privilege{},
		&model.Role{},
	)
	// One OPEN session per user, enforced at the database level so two
	// concurrent open requests cannot both succeed.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_cashier_sessions_open_user
		ON cashier_sessions (user_id) WHERE status = 'OPEN' AND deleted_at IS NULL`)

	// 3. Seed default privileges, roles, and admin user
	seedPrivilegesRolesAndAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	movementRepo := repository.NewMovementRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	sessionRepo := repository.NewSessionRepo(db)
	shiftRepo := repository.NewShiftRepo(db)
	sequenceRepo := repository.NewSequenceRepo(db)
	userRepo := repository.NewUserRepo(db)
	privilegeRepo := repository.NewPrivilegeRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	productService := service.NewProductService(productRepo, wsHub)
	movementService := service.NewMovementService(movementRepo, productRepo, sequenceRepo, db, wsHub, zapLog)
	saleService := service.NewSaleService(saleRepo, productRepo, sessionRepo, sequenceRepo, db, wsHub, zapLog)
	sessionService := service.NewSessionService(sessionRepo, shiftRepo, userRepo, db, wsHub, zapLog)
	shiftService := service.NewShiftService(shiftRepo)
	reportService := service.NewReportService(saleRepo, movementRepo)
	authService := service.NewAuthService(userRepo, wsHub)
	userService := service.NewUserService(userRepo, privilegeRepo, roleRepo)

	productHandler := handler.NewProductHandler(productService)
	movementHandler := handler.NewMovementHandler(movementService)
	saleHandler := handler.NewSaleHandler(saleService)
	sessionHandler := handler.NewSessionHandler(sessionService)
	shiftHandler := handler.NewShiftHandler(shiftService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleRepo)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Kasir Backend v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Logging request
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS

	// Prometheus scrape endpoint
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	// Auth Routes (No authentication required)
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/reset-password", authHandler.ResetPassword)
	auth.Post("/validate-token", authHandler.ValidateToken)
	auth.Post("/heartbeat", middleware.RequireAuth(userRepo), authHandler.Heartbeat) // Heartbeat uses Auth but available to all authenticated

	// ============ PROTECTED ROUTES ============
	// All routes below require authentication
	protected := api.Group("", middleware.RequireAuth(userRepo))

	// Product Routes (with privilege checks)
	protected.Get("/products", productHandler.GetProducts)
	protected.Get("/products/barcode/:barcode", productHandler.GetProductByBarcode)
	protected.Get("/products/:id", productHandler.GetProduct)
	protected.Post("/products", middleware.RequirePrivilege("product:create"), productHandler.CreateProduct)
	protected.Put("/products/:id", middleware.RequirePrivilege("product:update"), productHandler.UpdateProduct)
	protected.Delete("/products/:id", middleware.RequirePrivilege("product:delete"), productHandler.DeleteProduct)

	// Stock Movement Routes (receiving and manual adjustments)
	protected.Get("/product-ins", middleware.RequirePrivilege("movement:view"), movementHandler.ListStockIns)
	protected.Post("/product-ins", middleware.RequirePrivilege("movement:create"), movementHandler.CreateStockIn)
	protected.Get("/product-ins/:id", middleware.RequirePrivilege("movement:view"), movementHandler.GetMovement)
	protected.Put("/product-ins/:id", middleware.RequirePrivilege("movement:update"), movementHandler.UpdateMovement)
	protected.Delete("/product-ins/:id", middleware.RequirePrivilege("movement:delete"), movementHandler.DeleteMovement)
	protected.Get("/product-outs", middleware.RequirePrivilege("movement:view"), movementHandler.ListStockOuts)
	protected.Post("/product-outs", middleware.RequirePrivilege("movement:create"), movementHandler.CreateStockOut)
	protected.Get("/product-outs/:id", middleware.RequirePrivilege("movement:view"), movementHandler.GetMovement)
	protected.Put("/product-outs/:id", middleware.RequirePrivilege("movement:update"), movementHandler.UpdateMovement)
	protected.Delete("/product-outs/:id", middleware.RequirePrivilege("movement:delete"), movementHandler.DeleteMovement)

	// Cashier Session Routes
	protected.Post("/cashier-sessions", middleware.RequirePrivilege("session:open"), sessionHandler.OpenSession)
	protected.Get("/cashier-sessions/current", sessionHandler.GetCurrentSession)
	protected.Get("/cashier-sessions", middleware.RequirePrivilege("session:view"), sessionHandler.GetSessions)
	protected.Get("/cashier-sessions/:id", middleware.RequirePrivilege("session:view"), sessionHandler.GetSession)
	protected.Get("/cashier-sessions/:id/transactions/total", middleware.RequirePrivilege("session:view"), sessionHandler.GetSessionSalesTotal)
	protected.Post("/cashier-sessions/:id/close", middleware.RequirePrivilege("session:close"), sessionHandler.CloseSession)

	// Sale Routes (point of sale)
	protected.Get("/sales", middleware.RequirePrivilege("sale:view"), saleHandler.GetSales)
	protected.Get("/sales/:id", middleware.RequirePrivilege("sale:view"), saleHandler.GetSale)
	protected.Post("/sales", middleware.RequirePrivilege("sale:create"), saleHandler.CommitSale)
	protected.Post("/sales/price-check", middleware.RequirePrivilege("sale:create"), saleHandler.PriceCheck)
	protected.Get("/sales/price-item/:barcode", middleware.RequirePrivilege("sale:create"), saleHandler.PriceItem)

	// Shift Routes (master data)
	protected.Get("/shifts", shiftHandler.GetShifts)
	protected.Get("/shifts/:id", shiftHandler.GetShift)
	protected.Post("/shifts", middleware.RequirePrivilege("shift:create"), shiftHandler.CreateShift)
	protected.Put("/shifts/:id", middleware.RequirePrivilege("shift:update"), shiftHandler.UpdateShift)
	protected.Delete("/shifts/:id", middleware.RequirePrivilege("shift:delete"), shiftHandler.DeleteShift)

	// Report Routes
	protected.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	protected.Get("/dashboard/stock-movement", reportHandler.GetStockMovement)
	protected.Get("/reports/sales/daily", middleware.RequirePrivilege("report:view"), reportHandler.GetDailySales)
	protected.Get("/reports/sales/monthly", middleware.RequirePrivilege("report:view"), reportHandler.GetMonthlySales)
	protected.Get("/reports/sales/by-shift", middleware.RequirePrivilege("report:view"), reportHandler.GetShiftSales)

	// User Management Routes (with privilege checks)
	protected.Get("/users", userHandler.GetUsers)
	protected.Get("/users/:id", userHandler.GetUser)
	protected.Post("/users", middleware.RequirePrivilege("user:create"), userHandler.CreateUser)
	protected.Put("/users/:id", middleware.RequirePrivilege("user:update"), userHandler.UpdateUser)
	protected.Delete("/users/:id", middleware.RequirePrivilege("user:delete"), userHandler.DeleteUser)
	protected.Put("/users/:id/privileges", middleware.RequirePrivilege("user:update_privilege"), userHandler.UpdateUserPrivileges)

	// Role Routes
	protected.Get("/roles", roleHandler.GetRoles)

	// Privileges Route (list all available privileges)
	protected.Get("/privileges", func(c *fiber.Ctx) error {
		privileges, err := privilegeRepo.FindAll()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch privileges"})
		}
		return c.JSON(privileges)
	})

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
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedPrivilegesRolesAndAdmin creates default privileges, roles, and admin user if they don't exist
func seedPrivilegesRolesAndAdmin(db *gorm.DB) {
	privilegeRepo := repository.NewPrivilegeRepo(db)
	userRepo := repository.NewUserRepo(db)
	roleRepo := repository.NewRoleRepo(db)

	// 1. Seed privileges first
	if err := privilegeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed privileges: %v", err)
	}

	// 2. Seed roles
	if err := roleRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: Failed to seed roles: %v", err)
	}

	// 3. Assign privileges to roles
	allPrivileges, _ := privilegeRepo.FindAll()

	// ADMIN gets ALL privileges
	adminRole, err := roleRepo.FindByCode(model.RoleAdmin)
	if err == nil && len(adminRole.Privileges) == 0 {
		db.Model(&adminRole).Association("Privileges").Replace(allPrivileges)
		log.Println("✅ ADMIN role assigned all privileges")
	}

	// MANAGER gets everything except user management
	managerRole, err := roleRepo.FindByCode(model.RoleManager)
	if err == nil && len(managerRole.Privileges) == 0 {
		managerPrivileges := []model.Privilege{}
		for _, p := range allPrivileges {
			if p.Code != "user:create" && p.Code != "user:update" && p.Code != "user:delete" && p.Code != "user:update_privilege" {
				managerPrivileges = append(managerPrivileges, p)
			}
		}
		db.Model(&managerRole).Association("Privileges").Replace(managerPrivileges)
		log.Println("✅ MANAGER role assigned limited privileges")
	}

	// CASHIER gets the point-of-sale subset
	cashierRole, err := roleRepo.FindByCode(model.RoleCashier)
	if err == nil && len(cashierRole.Privileges) == 0 {
		cashierPrivileges, err := privilegeRepo.FindByCodes(model.CashierPrivilegeCodes)
		if err == nil {
			db.Model(&cashierRole).Association("Privileges").Replace(cashierPrivileges)
			log.Println("✅ CASHIER role assigned point-of-sale privileges")
		}
	}

	// 4. Create default admin user with ADMIN role
	_, err = userRepo.FindByEmail("admin@example.com")
	if err != nil {
		adminRole, _ := roleRepo.FindByCode(model.RoleAdmin)

		admin := &model.User{
			Email:       "admin@example.com",
			FullName:    "Administrator",
			PhoneNumber: "",
			RoleID:      &adminRole.ID,
			IsActive:    true,
			Privileges:  adminRole.Privileges,
		}
		admin.CreatedBy = "system"
		admin.UpdatedBy = "system"

		if err := admin.SetPassword("admin123"); err != nil {
			log.Printf("Warning: Failed to hash admin password: %v", err)
			return
		}

		if err := userRepo.Create(admin); err != nil {
			log.Printf("Warning: Failed to create admin user: %v", err)
		} else {
			log.Println("✅ Admin user created: admin@example.com / admin123 (ADMIN)")
		}
	}
}
