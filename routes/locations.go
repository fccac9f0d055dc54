package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupLocationRoutes настраивает маршруты для управления местами хранения
func SetupLocationRoutes(app *fiber.App, locationController *controllers.LocationController) {
	locations := app.Group("/locations", utils.AuthMiddleware)

	// GET /locations - список мест хранения (любая роль)
	locations.Get("/", locationController.GetLocations)

	// POST /locations - создать место хранения
	locations.Post("/", utils.RequirePermission("locations.create"), locationController.CreateLocation)

	// PUT /locations/:id - обновить место хранения
	locations.Put("/:id", utils.RequirePermission("locations.update"), locationController.UpdateLocation)

	// DELETE /locations/:id - удалить место хранения (только администратор)
	locations.Delete("/:id", utils.RequirePermission("locations.delete"), locationController.DeleteLocation)
}
