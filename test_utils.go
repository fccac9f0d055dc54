package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"

	"inventaris-backend/controllers"
	"inventaris-backend/models"
	"inventaris-backend/routes"
	"inventaris-backend/services"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB создает тестовую базу данных в памяти
func setupTestDB() *gorm.DB {
	db, _ := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	db.AutoMigrate(&models.User{}, &models.Category{}, &models.Location{}, &models.Item{}, &models.Borrowing{}, &models.StockHistory{})
	return db
}

// setupTestApp собирает приложение со всеми маршрутами поверх переданной базы
func setupTestApp(db *gorm.DB) *fiber.App {
	app := fiber.New()

	stockService := services.NewStockService(db, nil)

	routes.SetupAuthRoutes(app, controllers.NewAuthController(db))
	routes.SetupItemRoutes(app, controllers.NewItemController(db, stockService))
	routes.SetupLocationRoutes(app, controllers.NewLocationController(db))
	routes.SetupCategoryRoutes(app, controllers.NewCategoryController(db))
	routes.SetupUserRoutes(app, controllers.NewUserController(db))
	routes.SetupProfileRoutes(app, controllers.NewProfileController(db))
	routes.SetupBorrowingRoutes(app, controllers.NewBorrowingController(db, stockService))
	routes.SetupStockHistoryRoutes(app, controllers.NewStockHistoryController(db, stockService))
	routes.SetupDashboardRoutes(app, controllers.NewDashboardController(db))

	return app
}

// createTestUser создает пользователя с паролем password123 и заданной ролью
func createTestUser(db *gorm.DB, username, role string) models.User {
	hash, _ := utils.HashPassword("password123")
	user := models.User{
		Name:         "Test " + username,
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: hash,
		Role:         role,
	}
	db.Create(&user)
	return user
}

// tokenFor создает JWT токен для пользователя
func tokenFor(user models.User) string {
	token, _ := utils.GenerateJWT(user.ID, user.Role)
	return token
}

// createTestItem создает товар с заданным остатком
func createTestItem(db *gorm.DB, name string, stock int) models.Item {
	item := models.Item{
		SKU:     utils.GenerateSKU(),
		Barcode: utils.GenerateBarcode(),
		Name:    name,
		Unit:    "pcs",
		Stock:   stock,
		Active:  true,
	}
	db.Create(&item)
	return item
}

// jsonRequest собирает HTTP запрос с JSON телом и bearer токеном
func jsonRequest(method, target string, body interface{}, token string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// decodeBody разбирает JSON тело ответа в map
func decodeBody(resp *http.Response) map[string]interface{} {
	var body map[string]interface{}
	json.NewDecoder(resp.Body).Decode(&body)
	return body
}

// countRows возвращает количество строк модели по условию
func countRows(db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	q.Count(&count)
	return count
}

// itemStock перечитывает остаток товара из базы
func itemStock(db *gorm.DB, itemID uint) int {
	var item models.Item
	db.First(&item, itemID)
	return item.Stock
}

// borrowingPath строит путь возврата для выдачи
func borrowingPath(id interface{}) string {
	return fmt.Sprintf("/borrowings/%v/return", id)
}

// itoa форматирует числовой идентификатор для пути
func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
