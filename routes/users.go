package routes

import (
	"inventaris-backend/controllers"
	"inventaris-backend/utils"

	"github.com/gofiber/fiber/v2"
)

// SetupUserRoutes настраивает маршруты для управления пользователями
// (полностью доступны только администратору)
func SetupUserRoutes(app *fiber.App, userController *controllers.UserController) {
	users := app.Group("/users", utils.AuthMiddleware)

	// GET /users - список пользователей
	users.Get("/", utils.RequirePermission("users.list"), userController.GetUsers)

	// POST /users - создать пользователя
	users.Post("/", utils.RequirePermission("users.create"), userController.CreateUser)

	// PUT /users/:id - обновить пользователя
	users.Put("/:id", utils.RequirePermission("users.update"), userController.UpdateUser)

	// DELETE /users/:id - удалить пользователя
	users.Delete("/:id", utils.RequirePermission("users.delete"), userController.DeleteUser)
}
