package routes

import (
	"inventaris-backend/controllers"

	"github.com/gofiber/fiber/v2"
)

// SetupAuthRoutes настраивает маршруты для аутентификации
func SetupAuthRoutes(app *fiber.App, authController *controllers.AuthController) {
	auth := app.Group("/auth")

	// POST /auth/login - вход пользователя
	auth.Post("/login", authController.Login)
}
