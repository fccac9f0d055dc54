package main

import (
	"os"
	"testing"

	"inventaris-backend/models"
	"inventaris-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestLogin(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	createTestUser(db, "admin", models.RoleAdministrator)

	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
	}{
		{
			name:           "Успешный вход по username",
			body:           map[string]interface{}{"username": "admin", "password": "password123"},
			expectedStatus: 200,
		},
		{
			name:           "Успешный вход по email",
			body:           map[string]interface{}{"username": "admin@test.com", "password": "password123"},
			expectedStatus: 200,
		},
		{
			name:           "Неверный пароль",
			body:           map[string]interface{}{"username": "admin", "password": "wrongpassword"},
			expectedStatus: 401,
		},
		{
			name:           "Несуществующий пользователь",
			body:           map[string]interface{}{"username": "nobody", "password": "password123"},
			expectedStatus: 401,
		},
		{
			name:           "Отсутствует пароль",
			body:           map[string]interface{}{"username": "admin"},
			expectedStatus: 400,
		},
		{
			name:           "Пустое тело",
			body:           map[string]interface{}{},
			expectedStatus: 400,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(jsonRequest("POST", "/auth/login", tt.body, ""))
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			body := decodeBody(resp)
			if tt.expectedStatus == 200 {
				assert.NotEmpty(t, body["token"])

				// Пароль не должен попадать в ответ
				user, ok := body["user"].(map[string]interface{})
				assert.True(t, ok)
				assert.NotContains(t, user, "password")
				assert.NotContains(t, user, "passwordHash")
				assert.Equal(t, models.RoleAdministrator, user["role"])
			} else {
				assert.NotEmpty(t, body["message"])
			}
		})
	}
}

func TestLoginTokenIsValid(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	user := createTestUser(db, "admin", models.RoleAdministrator)

	resp, err := app.Test(jsonRequest("POST", "/auth/login", map[string]interface{}{
		"username": "admin",
		"password": "password123",
	}, ""))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(resp)
	token, _ := body["token"].(string)

	claims, err := utils.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleAdministrator, claims.Role)
}

func TestJWTGeneration(t *testing.T) {
	token, err := utils.GenerateJWT(42, models.RoleInputData)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := utils.ValidateJWT(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, models.RoleInputData, claims.Role)
}

func TestJWTInvalidToken(t *testing.T) {
	_, err := utils.ValidateJWT("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	password := "testpassword123"

	// Хэшируем пароль
	hash, err := utils.HashPassword(password)
	assert.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// Проверяем пароль
	assert.True(t, utils.CheckPasswordHash(password, hash))

	// Проверяем неверный пароль
	assert.False(t, utils.CheckPasswordHash("wrongpassword", hash))
}

func TestMain(m *testing.M) {
	// Устанавливаем переменную окружения для JWT
	os.Setenv("JWT_SECRET", "test-secret-key")

	// Запускаем тесты
	code := m.Run()

	// Очищаем
	os.Unsetenv("JWT_SECRET")

	os.Exit(code)
}
