package main

import (
	"testing"

	"inventaris-backend/models"

	"github.com/stretchr/testify/assert"
)

// endpoints, защищенные аутентификацией; используются в матричных тестах
var protectedEndpoints = []struct {
	method string
	path   string
	write  bool // операция изменения (для Viewer должна давать 403)
}{
	{"GET", "/items", false},
	{"POST", "/items", true},
	{"PUT", "/items/1", true},
	{"DELETE", "/items/1", true},
	{"POST", "/items/1/adjust", true},
	{"GET", "/locations", false},
	{"POST", "/locations", true},
	{"PUT", "/locations/1", true},
	{"DELETE", "/locations/1", true},
	{"GET", "/categories", false},
	{"POST", "/categories", true},
	{"PUT", "/categories/1", true},
	{"DELETE", "/categories/1", true},
	{"GET", "/borrowings", false},
	{"POST", "/borrowings", true},
	{"PUT", "/borrowings/1/return", true},
	{"GET", "/stock-history", false},
	{"GET", "/profile", false},
	{"GET", "/dashboard/stats", false},
}

func TestMissingTokenGives401(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)

	for _, ep := range protectedEndpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			// Без токена
			resp, err := app.Test(jsonRequest(ep.method, ep.path, nil, ""))
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)

			// С мусорным токеном
			resp, err = app.Test(jsonRequest(ep.method, ep.path, nil, "garbage-token"))
			assert.NoError(t, err)
			assert.Equal(t, 401, resp.StatusCode)
		})
	}
}

func TestViewerRoleMatrix(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	viewer := createTestUser(db, "viewer", models.RoleViewer)
	createTestItem(db, "Laptop HP Elitebook", 5)

	for _, ep := range protectedEndpoints {
		t.Run(ep.method+" "+ep.path, func(t *testing.T) {
			resp, err := app.Test(jsonRequest(ep.method, ep.path, map[string]interface{}{}, tokenFor(viewer)))
			assert.NoError(t, err)
			if ep.write {
				// Авторизация проверяется до тела обработчика
				assert.Equal(t, 403, resp.StatusCode)
			} else {
				assert.Equal(t, 200, resp.StatusCode)
			}
		})
	}

	// Управление пользователями для Viewer закрыто целиком, включая чтение
	resp, err := app.Test(jsonRequest("GET", "/users", nil, tokenFor(viewer)))
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestInputDataRole(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	operator := createTestUser(db, "operator", models.RoleInputData)
	item := createTestItem(db, "Keyboard Logitech MX", 5)

	// Input Data может создавать товары
	resp, err := app.Test(jsonRequest("POST", "/items", map[string]interface{}{
		"name": "Mouse Logitech M590",
	}, tokenFor(operator)))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// Input Data может оформлять выдачи
	resp, err = app.Test(jsonRequest("POST", "/borrowings", map[string]interface{}{
		"itemId":             item.ID,
		"borrowerName":       "Akbar",
		"borrowDate":         "2024-01-01",
		"expectedReturnDate": "2024-01-08",
	}, tokenFor(operator)))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	// Но не может удалять
	resp, err = app.Test(jsonRequest("DELETE", "/items/"+itoa(item.ID), nil, tokenFor(operator)))
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)

	// И не имеет доступа к пользователям
	resp, err = app.Test(jsonRequest("GET", "/users", nil, tokenFor(operator)))
	assert.NoError(t, err)
	assert.Equal(t, 403, resp.StatusCode)
}

func TestAdministratorRole(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Keyboard Logitech MX", 5)

	// Администратору доступно удаление
	resp, err := app.Test(jsonRequest("DELETE", "/items/"+itoa(item.ID), nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	// И управление пользователями
	resp, err = app.Test(jsonRequest("GET", "/users", nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}
