package utils

import (
	"inventaris-backend/models"

	"github.com/gofiber/fiber/v2"
)

// Permissions — декларативная таблица прав доступа: операция -> список ролей,
// которым она разрешена. Все проверки ролей проходят только через эту таблицу,
// чтобы права не расползались по отдельным маршрутам.
var Permissions = map[string][]string{
	// Товары
	"items.create": {models.RoleAdministrator, models.RoleInputData},
	"items.update": {models.RoleAdministrator, models.RoleInputData},
	"items.delete": {models.RoleAdministrator},
	"items.adjust": {models.RoleAdministrator, models.RoleInputData},

	// Места хранения
	"locations.create": {models.RoleAdministrator, models.RoleInputData},
	"locations.update": {models.RoleAdministrator, models.RoleInputData},
	"locations.delete": {models.RoleAdministrator},

	// Категории
	"categories.create": {models.RoleAdministrator, models.RoleInputData},
	"categories.update": {models.RoleAdministrator, models.RoleInputData},
	"categories.delete": {models.RoleAdministrator},

	// Пользователи — полностью только администратор
	"users.list":   {models.RoleAdministrator},
	"users.create": {models.RoleAdministrator},
	"users.update": {models.RoleAdministrator},
	"users.delete": {models.RoleAdministrator},

	// Выдачи
	"borrowings.create": {models.RoleAdministrator, models.RoleInputData},
	"borrowings.return": {models.RoleAdministrator, models.RoleInputData},
}

// RequirePermission возвращает middleware, пропускающий запрос только если
// роль из токена входит в список ролей операции. Должен стоять после
// AuthMiddleware.
func RequirePermission(operation string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := CurrentUserRole(c)
		if !ok {
			return c.Status(401).JSON(fiber.Map{
				"message": "Authentication token required",
			})
		}

		allowed, known := Permissions[operation]
		if known {
			for _, r := range allowed {
				if r == role {
					return c.Next()
				}
			}
		}

		// Неизвестная операция тоже запрещена: права выдаются только явно
		return c.Status(403).JSON(fiber.Map{
			"message": "Forbidden: insufficient permissions",
		})
	}
}
