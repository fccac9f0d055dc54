package controllers

import (
	"encoding/json"
	"errors"
	"strconv"

	"inventaris-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CategoryController контроллер для управления категориями
type CategoryController struct {
	DB *gorm.DB
}

// NewCategoryController создает новый экземпляр CategoryController
func NewCategoryController(db *gorm.DB) *CategoryController {
	return &CategoryController{DB: db}
}

// CategoryRequest структура запроса создания/обновления категории
type CategoryRequest struct {
	Name     string `json:"name" validate:"required"`
	ParentID *uint  `json:"parentId"`
}

// GetCategories возвращает список всех категорий по имени
func (cc *CategoryController) GetCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := cc.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching categories",
			"error":   err.Error(),
		})
	}
	return c.JSON(categories)
}

// validateParentChain проверяет, что родитель существует и цепочка родителей
// не образует цикл после подвешивания категории categoryID под parentID.
// Для новой категории categoryID равен 0.
func (cc *CategoryController) validateParentChain(categoryID uint, parentID uint) error {
	seen := map[uint]bool{}
	current := parentID
	for current != 0 {
		if current == categoryID || seen[current] {
			return errors.New("category parent chain must be acyclic")
		}
		seen[current] = true

		var parent models.Category
		if err := cc.DB.First(&parent, current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("parent category not found")
			}
			return err
		}
		if parent.ParentID == nil {
			break
		}
		current = *parent.ParentID
	}
	return nil
}

// CreateCategory создает категорию
func (cc *CategoryController) CreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Name == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Category name is required",
		})
	}

	if req.ParentID != nil {
		if err := cc.validateParentChain(0, *req.ParentID); err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
	}

	category := models.Category{
		Name:     req.Name,
		ParentID: req.ParentID,
	}

	if err := cc.DB.Create(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating category",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(category)
}

// UpdateCategory обновляет категорию; цепочка родителей остается ацикличной
func (cc *CategoryController) UpdateCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid category ID",
		})
	}

	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	// Различаем отсутствующее поле parentId и явный null:
	// отсутствующее поле не трогает родителя, null отвязывает его
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating category",
			"error":   err.Error(),
		})
	}

	if req.Name != "" {
		category.Name = req.Name
	}
	if _, ok := raw["parentId"]; ok {
		if req.ParentID != nil {
			if err := cc.validateParentChain(category.ID, *req.ParentID); err != nil {
				return c.Status(400).JSON(fiber.Map{
					"message": err.Error(),
				})
			}
		}
		category.ParentID = req.ParentID
	}

	if err := cc.DB.Save(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating category",
			"error":   err.Error(),
		})
	}

	return c.JSON(category)
}

// DeleteCategory удаляет категорию, если у нее нет подкатегорий и товаров
func (cc *CategoryController) DeleteCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid category ID",
		})
	}

	var category models.Category
	if err := cc.DB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "Category not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting category",
			"error":   err.Error(),
		})
	}

	// Проверяем зависимые записи
	var childCount, itemCount int64
	cc.DB.Model(&models.Category{}).Where("parent_id = ?", category.ID).Count(&childCount)
	cc.DB.Model(&models.Item{}).Where("category_id = ?", category.ID).Count(&itemCount)
	if childCount > 0 || itemCount > 0 {
		return c.Status(409).JSON(fiber.Map{
			"message": "Category has child categories or items and cannot be deleted",
		})
	}

	if err := cc.DB.Delete(&category).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting category",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(204)
}
