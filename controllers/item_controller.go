package controllers

import (
	"errors"
	"strconv"

	"inventaris-backend/models"
	"inventaris-backend/services"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ItemController контроллер для управления товарами
type ItemController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

// NewItemController создает новый экземпляр ItemController
func NewItemController(db *gorm.DB, stock *services.StockService) *ItemController {
	return &ItemController{DB: db, Stock: stock}
}

// CreateItemRequest структура запроса создания товара.
// SKU, штрихкод и дата создания назначаются сервером и от клиента не принимаются.
type CreateItemRequest struct {
	Name              string  `json:"name" validate:"required"`
	Description       string  `json:"description"`
	CategoryID        uint    `json:"categoryId"`
	DefaultLocationID uint    `json:"defaultLocationId"`
	Unit              string  `json:"unit"`
	Stock             int     `json:"stock"`
	MinStock          int     `json:"minStock"`
	Price             float64 `json:"price"`
	Active            *bool   `json:"active"`
}

// UpdateItemRequest структура запроса обновления товара: все поля опциональны.
// Поля id, sku, barcode и createdAt игнорируются даже если присланы.
type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	Description       *string  `json:"description"`
	CategoryID        *uint    `json:"categoryId"`
	DefaultLocationID *uint    `json:"defaultLocationId"`
	Unit              *string  `json:"unit"`
	Stock             *int     `json:"stock"`
	MinStock          *int     `json:"minStock"`
	Price             *float64 `json:"price"`
	Active            *bool    `json:"active"`
}

// AdjustStockRequest структура запроса ручной корректировки остатка
type AdjustStockRequest struct {
	QuantityChange int    `json:"quantityChange" validate:"required"`
	Type           string `json:"type"`
	Reason         string `json:"reason"`
}

// GetItems возвращает список всех товаров, новые первыми
func (ic *ItemController) GetItems(c *fiber.Ctx) error {
	var items []models.Item
	if err := ic.DB.Order("created_at DESC").Find(&items).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching items",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// CreateItem создает товар; SKU и штрихкод генерируются сервером
func (ic *ItemController) CreateItem(c *fiber.Ctx) error {
	var req CreateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Item name is required",
		})
	}
	if req.Stock < 0 || req.MinStock < 0 {
		return c.Status(400).JSON(fiber.Map{
			"message": "Stock cannot be negative",
		})
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	unit := req.Unit
	if unit == "" {
		unit = "pcs"
	}

	item := models.Item{
		SKU:               utils.GenerateSKU(),
		Barcode:           utils.GenerateBarcode(),
		Name:              req.Name,
		Description:       req.Description,
		CategoryID:        req.CategoryID,
		DefaultLocationID: req.DefaultLocationID,
		Unit:              unit,
		Stock:             req.Stock,
		MinStock:          req.MinStock,
		Price:             req.Price,
		Active:            active,
	}

	if err := ic.DB.Create(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating item",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(item)
}

// UpdateItem обновляет товар; идентификаторы и производные поля не изменяются
func (ic *ItemController) UpdateItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var item models.Item
	if err := ic.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating item",
			"error":   err.Error(),
		})
	}

	if req.Name != nil {
		if *req.Name == "" {
			return c.Status(400).JSON(fiber.Map{
				"message": "Item name is required",
			})
		}
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.CategoryID != nil {
		item.CategoryID = *req.CategoryID
	}
	if req.DefaultLocationID != nil {
		item.DefaultLocationID = *req.DefaultLocationID
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return c.Status(400).JSON(fiber.Map{
				"message": "Stock cannot be negative",
			})
		}
		item.Stock = *req.Stock
	}
	if req.MinStock != nil {
		item.MinStock = *req.MinStock
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.Active != nil {
		item.Active = *req.Active
	}

	if err := ic.DB.Save(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating item",
			"error":   err.Error(),
		})
	}

	return c.JSON(item)
}

// DeleteItem удаляет товар. Товар с записями о выдачах или движении остатков
// удалить нельзя — журнал должен оставаться полным.
func (ic *ItemController) DeleteItem(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	var item models.Item
	if err := ic.DB.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting item",
			"error":   err.Error(),
		})
	}

	// Проверяем зависимые записи
	var borrowingCount, historyCount int64
	ic.DB.Model(&models.Borrowing{}).Where("item_id = ?", item.ID).Count(&borrowingCount)
	ic.DB.Model(&models.StockHistory{}).Where("item_id = ?", item.ID).Count(&historyCount)
	if borrowingCount > 0 || historyCount > 0 {
		return c.Status(409).JSON(fiber.Map{
			"message": "Item has borrowing or stock history records and cannot be deleted",
		})
	}

	if err := ic.DB.Delete(&item).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting item",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(204)
}

// AdjustStock применяет ручную корректировку остатка товара
func (ic *ItemController) AdjustStock(c *fiber.Ctx) error {
	itemID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.QuantityChange == 0 {
		return c.Status(400).JSON(fiber.Map{
			"message": "quantityChange must be non-zero",
		})
	}
	historyType := req.Type
	if historyType == "" {
		historyType = models.StockTypeCorrection
	}

	item, entry, err := ic.Stock.Adjust(userID, uint(itemID), req.QuantityChange, historyType, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return c.Status(404).JSON(fiber.Map{
				"message": "Item not found",
			})
		case errors.Is(err, services.ErrNegativeStock), errors.Is(err, services.ErrInsufficientStock):
			return c.Status(409).JSON(fiber.Map{
				"message": "Resulting stock cannot be negative",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error adjusting stock",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"updatedItem": item,
		"newHistory":  entry,
	})
}
