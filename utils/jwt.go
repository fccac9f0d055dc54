package utils

import (
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Claims представляет структуру JWT токена
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

func jwtSecret() string {
	// Получаем секретный ключ из переменной окружения или используем дефолтный
	secretKey := os.Getenv("JWT_SECRET")
	if secretKey == "" {
		secretKey = "inventaris-secret-key-change-in-production"
	}
	return secretKey
}

// GenerateJWT создает JWT токен для пользователя
func GenerateJWT(userID uint, role string) (string, error) {
	// Создаем claims
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)), // Токен действителен 24 часа
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	// Создаем и подписываем токен
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtSecret()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateJWT проверяет и парсит JWT токен
func ValidateJWT(tokenString string) (*Claims, error) {
	// Парсим токен
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем метод подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret()), nil
	})

	if err != nil {
		return nil, err
	}

	// Проверяем валидность токена
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// AuthMiddleware middleware для проверки JWT токена.
// До выполнения обработчика сохраняет user_id и user_role в контексте запроса.
func AuthMiddleware(c *fiber.Ctx) error {
	// Получаем токен из заголовка Authorization
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(401).JSON(fiber.Map{
			"message": "Authentication token required",
		})
	}

	// Проверяем формат Bearer token
	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid authorization header format",
		})
	}

	tokenString := tokenParts[1]

	// Валидируем токен
	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{
			"message": "Invalid or expired token",
		})
	}

	// Сохраняем информацию о пользователе в контексте
	c.Locals("user_id", claims.UserID)
	c.Locals("user_role", claims.Role)

	return c.Next()
}

// CurrentUserID возвращает ID пользователя, сохраненный AuthMiddleware
func CurrentUserID(c *fiber.Ctx) (uint, bool) {
	userID, ok := c.Locals("user_id").(uint)
	return userID, ok
}

// CurrentUserRole возвращает роль пользователя, сохраненную AuthMiddleware
func CurrentUserRole(c *fiber.Ctx) (string, bool) {
	role, ok := c.Locals("user_role").(string)
	return role, ok
}
