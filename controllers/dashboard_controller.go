package controllers

import (
	"inventaris-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// DashboardController контроллер сводки для главного экрана
type DashboardController struct {
	DB *gorm.DB
}

// NewDashboardController создает новый экземпляр DashboardController
func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

// categoryCount — количество товаров в категории
type categoryCount struct {
	CategoryID uint   `json:"categoryId"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// locationCount — количество товаров в месте хранения
type locationCount struct {
	LocationID uint   `json:"locationId"`
	Name       string `json:"name"`
	Count      int64  `json:"count"`
}

// GetStats возвращает сводные показатели для дашборда
func (dc *DashboardController) GetStats(c *fiber.Ctx) error {
	var stats struct {
		TotalItems       int64 `json:"totalItems"`
		TotalStock       int64 `json:"totalStock"`
		LowStockItems    int64 `json:"lowStockItems"`
		ActiveBorrowings int64 `json:"activeBorrowings"`
	}

	counts := []error{
		dc.DB.Model(&models.Item{}).Count(&stats.TotalItems).Error,
		dc.DB.Model(&models.Item{}).Select("COALESCE(SUM(stock), 0)").Scan(&stats.TotalStock).Error,
		dc.DB.Model(&models.Item{}).Where("stock <= min_stock").Count(&stats.LowStockItems).Error,
		dc.DB.Model(&models.Borrowing{}).Where("status = ?", models.BorrowingStatusBorrowed).Count(&stats.ActiveBorrowings).Error,
	}
	for _, err := range counts {
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"message": "Error fetching dashboard stats",
				"error":   err.Error(),
			})
		}
	}

	// Распределение товаров по категориям
	var byCategory []categoryCount
	if err := dc.DB.Model(&models.Item{}).
		Select("items.category_id AS category_id, categories.name AS name, COUNT(items.id) AS count").
		Joins("LEFT JOIN categories ON categories.id = items.category_id").
		Group("items.category_id, categories.name").
		Scan(&byCategory).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching dashboard stats",
			"error":   err.Error(),
		})
	}

	// Распределение товаров по местам хранения
	var byLocation []locationCount
	if err := dc.DB.Model(&models.Item{}).
		Select("items.default_location_id AS location_id, locations.name AS name, COUNT(items.id) AS count").
		Joins("LEFT JOIN locations ON locations.id = items.default_location_id").
		Group("items.default_location_id, locations.name").
		Scan(&byLocation).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching dashboard stats",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"totalItems":       stats.TotalItems,
		"totalStock":       stats.TotalStock,
		"lowStockItems":    stats.LowStockItems,
		"activeBorrowings": stats.ActiveBorrowings,
		"itemsByCategory":  byCategory,
		"itemsByLocation":  byLocation,
	})
}
