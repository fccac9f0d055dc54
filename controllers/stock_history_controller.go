package controllers

import (
	"inventaris-backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Количество записей журнала в ответе
const stockHistoryLimit = 20

// StockHistoryController контроллер журнала движения остатков
type StockHistoryController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

// NewStockHistoryController создает новый экземпляр StockHistoryController
func NewStockHistoryController(db *gorm.DB, stock *services.StockService) *StockHistoryController {
	return &StockHistoryController{DB: db, Stock: stock}
}

// GetStockHistory возвращает последние записи журнала, новые первыми
func (sc *StockHistoryController) GetStockHistory(c *fiber.Ctx) error {
	entries, err := sc.Stock.LatestHistory(stockHistoryLimit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching stock history",
			"error":   err.Error(),
		})
	}
	return c.JSON(entries)
}
