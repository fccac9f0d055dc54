package controllers

import (
	"inventaris-backend/models"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// AuthController контроллер для аутентификации
type AuthController struct {
	DB *gorm.DB
}

// NewAuthController создает новый экземпляр AuthController
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

// LoginRequest структура запроса входа
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse структура ответа входа
type LoginResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login обрабатывает вход пользователя и выдает JWT токен
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest

	// Парсим JSON
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
		})
	}

	if req.Username == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Username and password are required",
		})
	}

	// Ищем пользователя по username или email
	var user models.User
	if err := ac.DB.Where("username = ? OR email = ?", req.Username, req.Username).First(&user).Error; err != nil {
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	// Проверяем пароль
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid credentials",
		})
	}

	// Генерируем JWT токен
	token, err := utils.GenerateJWT(user.ID, user.Role)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Error logging in",
			"error":   err.Error(),
		})
	}

	return c.JSON(LoginResponse{
		Token: token,
		User:  user,
	})
}
