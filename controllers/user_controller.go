package controllers

import (
	"errors"
	"strconv"

	"inventaris-backend/models"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// UserController контроллер для управления пользователями
type UserController struct {
	DB *gorm.DB
}

// NewUserController создает новый экземпляр UserController
func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// CreateUserRequest структура запроса создания пользователя
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required"`
}

// UpdateUserRequest структура запроса обновления пользователя.
// Пароль меняется только если прислан непустым.
type UpdateUserRequest struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// GetUsers возвращает список всех пользователей по имени (без хэшей паролей)
func (uc *UserController) GetUsers(c *fiber.Ctx) error {
	var users []models.User
	if err := uc.DB.Order("name ASC").Find(&users).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching users",
			"error":   err.Error(),
		})
	}
	return c.JSON(users)
}

// CreateUser создает пользователя; пароль хэшируется до сохранения
func (uc *UserController) CreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Name == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Name, username, email and password are required",
		})
	}
	if !models.IsValidRole(req.Role) {
		return c.Status(400).JSON(fiber.Map{
			"message": "Unknown role",
		})
	}

	// Проверяем уникальность username/email
	var existing models.User
	if err := uc.DB.Where("username = ? OR email = ?", req.Username, req.Email).First(&existing).Error; err == nil {
		return c.Status(409).JSON(fiber.Map{
			"message": "User with this username or email already exists",
		})
	}

	// Хэшируем пароль
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating user",
			"error":   err.Error(),
		})
	}

	user := models.User{
		Name:         req.Name,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         req.Role,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error creating user",
			"error":   err.Error(),
		})
	}

	return c.Status(201).JSON(user)
}

// UpdateUser обновляет пользователя
func (uc *UserController) UpdateUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	var req UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating user",
			"error":   err.Error(),
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Username != "" && req.Username != user.Username {
		var existing models.User
		if err := uc.DB.Where("username = ? AND id <> ?", req.Username, user.ID).First(&existing).Error; err == nil {
			return c.Status(409).JSON(fiber.Map{
				"message": "User with this username already exists",
			})
		}
		user.Username = req.Username
	}
	if req.Email != "" && req.Email != user.Email {
		var existing models.User
		if err := uc.DB.Where("email = ? AND id <> ?", req.Email, user.ID).First(&existing).Error; err == nil {
			return c.Status(409).JSON(fiber.Map{
				"message": "User with this email already exists",
			})
		}
		user.Email = req.Email
	}
	if req.Role != "" {
		if !models.IsValidRole(req.Role) {
			return c.Status(400).JSON(fiber.Map{
				"message": "Unknown role",
			})
		}
		user.Role = req.Role
	}
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"message": "Error updating user",
				"error":   err.Error(),
			})
		}
		user.PasswordHash = hashedPassword
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating user",
			"error":   err.Error(),
		})
	}

	return c.JSON(user)
}

// DeleteUser удаляет пользователя. Пользователя с оформленными выдачами или
// записями журнала удалить нельзя.
func (uc *UserController) DeleteUser(c *fiber.Ctx) error {
	userID, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	var user models.User
	if err := uc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting user",
			"error":   err.Error(),
		})
	}

	// Проверяем зависимые записи
	var borrowingCount, historyCount int64
	uc.DB.Model(&models.Borrowing{}).Where("user_id = ?", user.ID).Count(&borrowingCount)
	uc.DB.Model(&models.StockHistory{}).Where("user_id = ?", user.ID).Count(&historyCount)
	if borrowingCount > 0 || historyCount > 0 {
		return c.Status(409).JSON(fiber.Map{
			"message": "User has borrowing or stock history records and cannot be deleted",
		})
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error deleting user",
			"error":   err.Error(),
		})
	}

	return c.SendStatus(204)
}
