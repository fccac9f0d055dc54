package main

import (
	"log"
	"os"

	"inventaris-backend/controllers"
	"inventaris-backend/models"
	"inventaris-backend/routes"
	"inventaris-backend/services"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"
	"gorm.io/gorm"
)

func main() {
	// Инициализация базы данных
	db, err := models.InitDB()
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Автомиграция
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Item{}, &models.Borrowing{}, &models.StockHistory{})

	// Начальные данные
	initDefaultData(db)

	// Создание Fiber приложения
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"message": "Something went wrong!",
				"error":   err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New())

	// CORS настройки
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
	}))

	// Хаб живой ленты активности
	hub := services.NewActivityHub()
	go hub.Run()

	// Сервис движения остатков
	stockService := services.NewStockService(db, hub)

	// Инициализация контроллеров
	authController := controllers.NewAuthController(db)
	itemController := controllers.NewItemController(db, stockService)
	locationController := controllers.NewLocationController(db)
	categoryController := controllers.NewCategoryController(db)
	userController := controllers.NewUserController(db)
	profileController := controllers.NewProfileController(db)
	borrowingController := controllers.NewBorrowingController(db, stockService)
	stockHistoryController := controllers.NewStockHistoryController(db, stockService)
	dashboardController := controllers.NewDashboardController(db)

	// Настройка маршрутов
	routes.SetupAuthRoutes(app, authController)
	routes.SetupItemRoutes(app, itemController)
	routes.SetupLocationRoutes(app, locationController)
	routes.SetupCategoryRoutes(app, categoryController)
	routes.SetupUserRoutes(app, userController)
	routes.SetupProfileRoutes(app, profileController)
	routes.SetupBorrowingRoutes(app, borrowingController)
	routes.SetupStockHistoryRoutes(app, stockHistoryController)
	routes.SetupDashboardRoutes(app, dashboardController)

	// WebSocket маршрут живой ленты
	app.Get("/ws/activity", websocket.New(func(c *websocket.Conn) {
		hub.HandleWebSocket(c)
	}))

	// Общий health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "Inventory Management API is running!",
		})
	})

	// Запуск сервера
	port := os.Getenv("PORT")
	if port == "" {
		port = "6001"
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(app.Listen(":" + port))
}

// initDefaultData создает начальных пользователей, места хранения, категории
// и товары, если база пуста
func initDefaultData(db *gorm.DB) {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 && os.Getenv("SEED") == "" {
		log.Printf("Default data already exists (%d users)", userCount)
		return
	}

	log.Println("Seeding default data...")

	adminPassword, err := utils.HashPassword("password")
	if err != nil {
		log.Printf("Failed to hash default password: %v", err)
		return
	}

	defaultUsers := []models.User{
		{Name: "Admin Utama", Username: "admin", Email: "admin@inventory.com", PasswordHash: adminPassword, Role: models.RoleAdministrator},
		{Name: "Akbar", Username: "akbar", Email: "akbar@inventory.com", PasswordHash: adminPassword, Role: models.RoleAdministrator},
	}
	for _, user := range defaultUsers {
		var existing models.User
		if err := db.Where("username = ?", user.Username).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&user).Error; err != nil {
			log.Printf("Failed to seed user '%s': %v", user.Username, err)
		} else {
			log.Printf("Seeded user: %s", user.Username)
		}
	}

	defaultLocations := []models.Location{
		{Code: "GU-01", Name: "Gudang Utama", Address: "Jl. Industri No. 1, Jakarta", Description: "Lokasi penyimpanan pusat"},
		{Code: "TD-01", Name: "Toko Depan", Address: "Jl. Jenderal Sudirman No. 2", Description: "Display toko"},
	}
	locationIDs := map[string]uint{}
	for _, location := range defaultLocations {
		var existing models.Location
		if err := db.Where("code = ?", location.Code).First(&existing).Error; err == nil {
			locationIDs[location.Code] = existing.ID
			continue
		}
		if err := db.Create(&location).Error; err != nil {
			log.Printf("Failed to seed location '%s': %v", location.Code, err)
			continue
		}
		locationIDs[location.Code] = location.ID
		log.Printf("Seeded location: %s", location.Code)
	}

	defaultCategories := []models.Category{
		{Name: "Elektronik"},
		{Name: "Alat Tulis Kantor"},
	}
	categoryIDs := map[string]uint{}
	for _, category := range defaultCategories {
		var existing models.Category
		if err := db.Where("name = ?", category.Name).First(&existing).Error; err == nil {
			categoryIDs[category.Name] = existing.ID
			continue
		}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Failed to seed category '%s': %v", category.Name, err)
			continue
		}
		categoryIDs[category.Name] = category.ID
		log.Printf("Seeded category: %s", category.Name)
	}

	defaultItems := []models.Item{
		{
			SKU:               "LP-HP-001",
			Barcode:           "123456789012",
			Name:              "Laptop HP Elitebook",
			Description:       "Laptop bisnis dengan performa tinggi.",
			CategoryID:        categoryIDs["Elektronik"],
			DefaultLocationID: locationIDs["GU-01"],
			Unit:              "pcs",
			Stock:             15,
			MinStock:          5,
			Price:             15000000,
			Active:            true,
		},
		{
			SKU:               "KB-LOGI-002",
			Barcode:           "987654321098",
			Name:              "Keyboard Logitech MX",
			Description:       "Keyboard mekanikal untuk profesional.",
			CategoryID:        categoryIDs["Elektronik"],
			DefaultLocationID: locationIDs["TD-01"],
			Unit:              "pcs",
			Stock:             30,
			MinStock:          10,
			Price:             2100000,
			Active:            true,
		},
		{
			SKU:               "PN-STD-001",
			Barcode:           "555555555555",
			Name:              "Pulpen Standard AE7",
			Description:       "Pulpen tinta hitam kualitas terbaik.",
			CategoryID:        categoryIDs["Alat Tulis Kantor"],
			DefaultLocationID: locationIDs["TD-01"],
			Unit:              "pcs",
			Stock:             250,
			MinStock:          50,
			Price:             2500,
			Active:            true,
		},
	}
	for _, item := range defaultItems {
		var existing models.Item
		if err := db.Where("sku = ?", item.SKU).First(&existing).Error; err == nil {
			continue
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("Failed to seed item '%s': %v", item.SKU, err)
		} else {
			log.Printf("Seeded item: %s", item.SKU)
		}
	}

	log.Println("Seeding finished")
}
