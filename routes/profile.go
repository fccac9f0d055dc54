package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupProfileRoutes настраивает маршруты профиля текущего пользователя
func SetupProfileRoutes(app *fiber.App, profileController *controllers.ProfileController) {
	profile := app.Group("/profile", utils.AuthMiddleware)

	// GET /profile - профиль текущего пользователя
	profile.Get("/", profileController.GetProfile)

	// PUT /profile - обновить профиль текущего пользователя
	profile.Put("/", profileController.UpdateProfile)
}
