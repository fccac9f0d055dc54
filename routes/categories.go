package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupCategoryRoutes настраивает маршруты для управления категориями
func SetupCategoryRoutes(app *fiber.App, categoryController *controllers.CategoryController) {
	categories := app.Group("/categories", utils.AuthMiddleware)

	// GET /categories - список категорий (любая роль)
	categories.Get("/", categoryController.GetCategories)

	// POST /categories - создать категорию
	categories.Post("/", utils.RequirePermission("categories.create"), categoryController.CreateCategory)

	// PUT /categories/:id - обновить категорию
	categories.Put("/:id", utils.RequirePermission("categories.update"), categoryController.UpdateCategory)

	// DELETE /categories/:id - удалить категорию (только администратор)
	categories.Delete("/:id", utils.RequirePermission("categories.delete"), categoryController.DeleteCategory)
}
