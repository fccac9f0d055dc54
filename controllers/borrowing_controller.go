package controllers

import (
	"errors"
	"strconv"
	"time"

	"inventaris-backend/models"
	"inventaris-backend/services"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BorrowingController контроллер выдач во временное пользование
type BorrowingController struct {
	DB    *gorm.DB
	Stock *services.StockService
}

// NewBorrowingController создает новый экземпляр BorrowingController
func NewBorrowingController(db *gorm.DB, stock *services.StockService) *BorrowingController {
	return &BorrowingController{DB: db, Stock: stock}
}

// CreateBorrowingRequest структура запроса оформления выдачи
type CreateBorrowingRequest struct {
	ItemID             uint   `json:"itemId" validate:"required"`
	BorrowerName       string `json:"borrowerName" validate:"required"`
	BorrowDate         string `json:"borrowDate" validate:"required"`
	ExpectedReturnDate string `json:"expectedReturnDate" validate:"required"`
	Notes              string `json:"notes"`
}

// parseDate принимает дату в формате 2006-01-02 или RFC3339
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// GetBorrowings возвращает список всех выдач, свежие первыми
func (bc *BorrowingController) GetBorrowings(c *fiber.Ctx) error {
	var borrowings []models.Borrowing
	if err := bc.DB.Order("borrow_date DESC").Find(&borrowings).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching borrowings",
			"error":   err.Error(),
		})
	}
	return c.JSON(borrowings)
}

// CreateBorrowing оформляет выдачу одной единицы товара
func (bc *BorrowingController) CreateBorrowing(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req CreateBorrowingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.ItemID == 0 || req.BorrowerName == "" || req.BorrowDate == "" || req.ExpectedReturnDate == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "itemId, borrowerName, borrowDate and expectedReturnDate are required",
		})
	}

	borrowDate, err := parseDate(req.BorrowDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid borrowDate format",
		})
	}
	expectedReturnDate, err := parseDate(req.ExpectedReturnDate)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid expectedReturnDate format",
		})
	}

	borrowing, entry, item, err := bc.Stock.Borrow(userID, req.ItemID, req.BorrowerName, borrowDate, expectedReturnDate, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrItemNotFound):
			return c.Status(404).JSON(fiber.Map{
				"message": "Item not found",
			})
		case errors.Is(err, services.ErrInsufficientStock):
			return c.Status(409).JSON(fiber.Map{
				"message": "Stok tidak mencukupi.",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating borrowing record",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(fiber.Map{
		"newBorrowing": borrowing,
		"newHistory":   entry,
		"updatedItem":  item,
	})
}

// ReturnBorrowing закрывает выдачу и возвращает единицу товара на остаток
func (bc *BorrowingController) ReturnBorrowing(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	borrowingID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid borrowing ID",
		})
	}

	borrowing, entry, item, err := bc.Stock.Return(userID, uint(borrowingID))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrBorrowingNotFound):
			return c.Status(404).JSON(fiber.Map{
				"message": "Borrowing record not found",
			})
		case errors.Is(err, services.ErrAlreadyReturned):
			return c.Status(409).JSON(fiber.Map{
				"message": "Borrowing already returned",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error returning item",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"updatedBorrowing": borrowing,
		"newHistory":       entry,
		"updatedItem":      item,
	})
}
