package controllers

import (
	"errors"
	"strconv"

	"inventaris-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LocationController контроллер для управления местами хранения
type LocationController struct {
	DB *gorm.DB
}

// NewLocationController создает новый экземпляр LocationController
func NewLocationController(db *gorm.DB) *LocationController {
	return &LocationController{DB: db}
}

// LocationRequest структура запроса создания/обновления места хранения
type LocationRequest struct {
	Code        string `json:"code" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

// UpdateLocationRequest частичное обновление: отсутствующие поля не меняются
type UpdateLocationRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Description *string `json:"description"`
}

// GetLocations возвращает список всех мест хранения по имени
func (lc *LocationController) GetLocations(c *fiber.Ctx) error {
	var locations []models.Location
	if err := lc.DB.Order("name ASC").Find(&locations).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching locations",
			"error":   err.Error(),
		})
	}
	return c.JSON(locations)
}

// CreateLocation создает место хранения
func (lc *LocationController) CreateLocation(c *fiber.Ctx) error {
	var req LocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Name == "" || req.Code == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Location name and code are required",
		})
	}

	// Код места хранения уникален
	var existing models.Location
	if err := lc.DB.Where("code = ?", req.Code).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"message": "Location code already exists",
		})
	}

	location := models.Location{
		Code:        req.Code,
		Name:        req.Name,
		Address:     req.Address,
		Description: req.Description,
	}

	if err := lc.DB.Create(&location).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating location",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(location)
}

// UpdateLocation обновляет место хранения
func (lc *LocationController) UpdateLocation(c *fiber.Ctx) error {
	locationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid location ID",
		})
	}

	var req UpdateLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var location models.Location
	if err := lc.DB.First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Location not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating location",
			"error":   err.Error(),
		})
	}

	if req.Name != nil && *req.Name != "" {
		location.Name = *req.Name
	}
	if req.Code != nil && *req.Code != "" && *req.Code != location.Code {
		var existing models.Location
		if err := lc.DB.Where("code = ?", *req.Code).First(&existing).Error; err == nil {
			return c.Status(409).JSON(fiber.Map{
				"message": "Location code already exists",
			})
		}
		location.Code = *req.Code
	}
	if req.Address != nil {
		location.Address = *req.Address
	}
	if req.Description != nil {
		location.Description = *req.Description
	}

	if err := lc.DB.Save(&location).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating location",
			"error":   err.Error(),
		})
	}

	return c.JSON(location)
}

// DeleteLocation удаляет место хранения, если на него не ссылаются товары
func (lc *LocationController) DeleteLocation(c *fiber.Ctx) error {
	locationID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid location ID",
		})
	}

	var location models.Location
	if err := lc.DB.First(&location, locationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Location not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting location",
			"error":   err.Error(),
		})
	}

	// Проверяем зависимые товары
	var itemCount int64
	lc.DB.Model(&models.Item{}).Where("default_location_id = ?", location.ID).Count(&itemCount)
	if itemCount > 0 {
		return c.Status(409).JSON(fiber.Map{
			"message": "Location is referenced by items and cannot be deleted",
		})
	}

	if err := lc.DB.Delete(&location).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting location",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(204)
}
