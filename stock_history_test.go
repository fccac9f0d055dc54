package main

import (
	"encoding/json"
	"testing"

	"inventaris-backend/models"

	"github.com/stretchr/testify/assert"
)

func TestStockHistoryLatestEntries(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Pulpen Standard AE7", 100)

	// Создаем 25 корректировок; в ответ должны попасть только последние 20
	for i := 0; i < 25; i++ {
		change := 1
		if i == 24 {
			change = 3 // последняя корректировка, должна быть первой в ответе
		}
		resp, _ := app.Test(jsonRequest("POST", "/items/"+itoa(item.ID)+"/adjust", map[string]interface{}{
			"quantityChange": change,
			"type":           models.StockTypeReceipt,
			"reason":         "Pembelian",
		}, tokenFor(admin)))
		assert.Equal(t, 200, resp.StatusCode)
	}

	resp, err := app.Test(jsonRequest("GET", "/stock-history", nil, tokenFor(admin)))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Len(t, entries, 20)

	// Новые записи первыми
	first := entries[0]
	assert.Equal(t, float64(3), first["quantityChange"])
	assert.Equal(t, models.StockTypeReceipt, first["type"])
	assert.NotEmpty(t, first["timestamp"])

	// Минимальные данные пользователя и товара присоединены
	user := first["user"].(map[string]interface{})
	assert.Equal(t, "Test admin", user["name"])
	assert.Equal(t, models.RoleAdministrator, user["role"])
	assert.NotContains(t, user, "password")

	relatedItem := first["relatedItem"].(map[string]interface{})
	assert.Equal(t, "Pulpen Standard AE7", relatedItem["name"])
	assert.Equal(t, item.SKU, relatedItem["sku"])

	// Перемещения между локациями не отслеживаются
	assert.Nil(t, first["fromLocation"])
	assert.Nil(t, first["toLocation"])
}

func TestStockHistoryEmpty(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	viewer := createTestUser(db, "viewer", models.RoleViewer)

	resp, err := app.Test(jsonRequest("GET", "/stock-history", nil, tokenFor(viewer)))
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var entries []map[string]interface{}
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Len(t, entries, 0)
}

func TestStockHistoryLedgerInvariant(t *testing.T) {
	db := setupTestDB()
	app := setupTestApp(db)
	admin := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Laptop HP Elitebook", 10)

	// Серия операций: корректировка +5, выдача -1, возврат +1, корректировка -3
	app.Test(jsonRequest("POST", "/items/"+itoa(item.ID)+"/adjust", map[string]interface{}{
		"quantityChange": 5, "type": models.StockTypeReceipt,
	}, tokenFor(admin)))

	resp, _ := app.Test(jsonRequest("POST", "/borrowings", map[string]interface{}{
		"itemId":             item.ID,
		"borrowerName":       "Akbar",
		"borrowDate":         "2024-01-01",
		"expectedReturnDate": "2024-01-08",
	}, tokenFor(admin)))
	borrowingID := decodeBody(resp)["newBorrowing"].(map[string]interface{})["id"]

	app.Test(jsonRequest("PUT", borrowingPath(borrowingID), nil, tokenFor(admin)))

	app.Test(jsonRequest("POST", "/items/"+itoa(item.ID)+"/adjust", map[string]interface{}{
		"quantityChange": -3, "type": models.StockTypeCorrection,
	}, tokenFor(admin)))

	// Инвариант: остаток = начальный остаток + сумма изменений журнала
	var sum int64
	db.Model(&models.StockHistory{}).Where("item_id = ?", item.ID).
		Select("COALESCE(SUM(quantity_change), 0)").Scan(&sum)
	assert.Equal(t, 10+int(sum), itemStock(db, item.ID))
	assert.Equal(t, 12, itemStock(db, item.ID))
}
