package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupItemRoutes настраивает маршруты для управления товарами
func SetupItemRoutes(app *fiber.App, itemController *controllers.ItemController) {
	items := app.Group("/items", utils.AuthMiddleware)

	// GET /items - список товаров (любая роль)
	items.Get("/", itemController.GetItems)

	// POST /items - создать товар
	items.Post("/", utils.RequirePermission("items.create"), itemController.CreateItem)

	// PUT /items/:id - обновить товар
	items.Put("/:id", utils.RequirePermission("items.update"), itemController.UpdateItem)

	// DELETE /items/:id - удалить товар (только администратор)
	items.Delete("/:id", utils.RequirePermission("items.delete"), itemController.DeleteItem)

	// POST /items/:id/adjust - ручная корректировка остатка
	items.Post("/:id/adjust", utils.RequirePermission("items.adjust"), itemController.AdjustStock)
}
