package controllers

import (
	"errors"

	"inventaris-backend/models"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ProfileController контроллер профиля текущего пользователя
type ProfileController struct {
	DB *gorm.DB
}

// NewProfileController создает новый экземпляр ProfileController
func NewProfileController(db *gorm.DB) *ProfileController {
	return &ProfileController{DB: db}
}

// UpdateProfileRequest структура запроса обновления профиля.
// Username и роль из профиля не меняются.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GetProfile возвращает профиль текущего пользователя
func (pc *ProfileController) GetProfile(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error fetching profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(user)
}

// UpdateProfile обновляет имя, email и (опционально) пароль текущего пользователя
func (pc *ProfileController) UpdateProfile(c *fiber.Ctx) error {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		return c.Status(401).JSON(fiber.Map{
			"message": "User not authenticated",
		})
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(404).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating profile",
			"error":   err.Error(),
		})
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		var existing models.User
		if err := pc.DB.Where("email = ? AND id <> ?", req.Email, user.ID).First(&existing).Error; err == nil {
			return c.Status(409).JSON(fiber.Map{
				"message": "User with this email already exists",
			})
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		hashedPassword, err := utils.HashPassword(req.Password)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"message": "Error updating profile",
				"error":   err.Error(),
			})
		}
		user.PasswordHash = hashedPassword
	}

	if err := pc.DB.Save(&user).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error updating profile",
			"error":   err.Error(),
		})
	}

	return c.JSON(user)
}
