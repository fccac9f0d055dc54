package main

import (
	"testing"

	"inventaris-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestCreateCategory(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)

	resp, err := app.Test(jsonRequest("POST", "/categories", map[string]interface{}{
		"name": "Elektronik",
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)

	body := decodeBody(resp)
	assert.Equal(t, "Elektronik", body["name"])
	assert.Nil(t, body["parentId"])

	// Без имени
	resp, err = app.Test(jsonRequest("POST", "/categories", map[string]interface{}{}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestCategoryParentChain(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)

	parent := models.Category{Name: "Elektronik"}
	db.Create(&parent)

	// Подкатегория с существующим родителем
	resp, err := app.Test(jsonRequest("POST", "/categories", map[string]interface{}{
		"name":     "Laptop",
		"parentId": parent.ID,
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 201, resp.StatusCode)
	childID := decodeBody(resp)["id"]

	// Несуществующий родитель
	resp, err = app.Test(jsonRequest("POST", "/categories", map[string]interface{}{
		"name":     "Aksesoris",
		"parentId": 9999,
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Цикл: родителя нельзя подвесить под его же подкатегорию
	resp, err = app.Test(jsonRequest("PUT", "/categories/"+itoa(parent.ID), map[string]interface{}{
		"name":     "Elektronik",
		"parentId": childID,
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Категория не может быть родителем самой себя
	resp, err = app.Test(jsonRequest("PUT", "/categories/"+itoa(parent.ID), map[string]interface{}{
		"name":     "Elektronik",
		"parentId": parent.ID,
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)

	// Родитель остался без изменений
	var reloaded models.Category
	db.First(&reloaded, parent.ID)
	assert.Nil(t, reloaded.ParentID)
}

func TestUpdateCategoryPartial(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)

	parent := models.Category{Name: "Elektronik"}
	db.Create(&parent)
	child := models.Category{Name: "Laptop", ParentID: &parent.ID}
	db.Create(&child)

	// Обновление только имени не трогает родителя
	resp, err := app.Test(jsonRequest("PUT", "/categories/"+itoa(child.ID), map[string]interface{}{
		"name": "Laptop Baru",
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var reloaded models.Category
	db.First(&reloaded, child.ID)
	assert.Equal(t, "Laptop Baru", reloaded.Name)
	if assert.NotNil(t, reloaded.ParentID) {
		assert.Equal(t, parent.ID, *reloaded.ParentID)
	}

	// Явный null отвязывает категорию от родителя
	resp, err = app.Test(jsonRequest("PUT", "/categories/"+itoa(child.ID), map[string]interface{}{
		"name":     "Laptop Baru",
		"parentId": nil,
	}, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	db.First(&reloaded, child.ID)
	assert.Nil(t, reloaded.ParentID)
}

func TestDeleteCategoryRestrict(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)

	parent := models.Category{Name: "Elektronik"}
	db.Create(&parent)
	child := models.Category{Name: "Laptop", ParentID: &parent.ID}
	db.Create(&child)

	// Категория с подкатегориями не удаляется
	resp, err := app.Test(jsonRequest("DELETE", "/categories/"+itoa(parent.ID), nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	// Категория с товарами не удаляется
	item := createTestItem(db, "Laptop HP Elitebook", 1)
	db.Model(&item).Update("category_id", child.ID)
	resp, err = app.Test(jsonRequest("DELETE", "/categories/"+itoa(child.ID), nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 409, resp.StatusCode)

	// После удаления товара подкатегория удаляется, затем и родитель
	db.Delete(&item)
	resp, err = app.Test(jsonRequest("DELETE", "/categories/"+itoa(child.ID), nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)

	resp, err = app.Test(jsonRequest("DELETE", "/categories/"+itoa(parent.ID), nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 204, resp.StatusCode)
	assert.Equal(t, int64(0), countRows(db, &models.Category{}, ""))
}
