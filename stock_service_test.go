package main

import (
	"testing"
	"time"

	"inventaris-backend/models"
	"inventaris-backend/services"

	"github.com/stretchr/testify/assert"
)

func TestStockServiceBorrowAndReturn(t *testing.T) {
	db := setupTestDB()
	stock := services.NewStockService(db, nil)
	user := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Laptop HP Elitebook", 2)

	borrowDate := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	returnDate := borrowDate.AddDate(0, 0, 7)

	borrowing, entry, updated, err := stock.Borrow(user.ID, item.ID, "Akbar", borrowDate, returnDate, "untuk presentasi")
	assert.NoError(t, err)
	assert.Equal(t, models.BorrowingStatusBorrowed, borrowing.Status)
	assert.Equal(t, 1, updated.Stock)
	assert.Equal(t, -1, entry.QuantityChange)
	assert.Equal(t, "Dipinjam oleh Akbar", entry.Reason)
	assert.Equal(t, user.ID, entry.User.ID)
	assert.Equal(t, item.SKU, entry.RelatedItem.SKU)

	returned, entry, updated, err := stock.Return(user.ID, borrowing.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BorrowingStatusReturned, returned.Status)
	assert.NotNil(t, returned.ActualReturnDate)
	assert.Equal(t, 2, updated.Stock)
	assert.Equal(t, 1, entry.QuantityChange)
	assert.Equal(t, "Dikembalikan oleh Akbar", entry.Reason)
}

func TestStockServiceBorrowErrors(t *testing.T) {
	db := setupTestDB()
	stock := services.NewStockService(db, nil)
	user := createTestUser(db, "admin", models.RoleAdministrator)
	empty := createTestItem(db, "Pulpen Standard AE7", 0)

	now := time.Now()

	// Нулевой остаток
	_, _, _, err := stock.Borrow(user.ID, empty.ID, "Akbar", now, now.AddDate(0, 0, 7), "")
	assert.ErrorIs(t, err, services.ErrInsufficientStock)
	assert.Equal(t, 0, itemStock(db, empty.ID))
	assert.Equal(t, int64(0), countRows(db, &models.Borrowing{}, ""))
	assert.Equal(t, int64(0), countRows(db, &models.StockHistory{}, ""))

	// Несуществующий товар
	_, _, _, err = stock.Borrow(user.ID, 9999, "Akbar", now, now.AddDate(0, 0, 7), "")
	assert.ErrorIs(t, err, services.ErrItemNotFound)
}

func TestStockServiceReturnErrors(t *testing.T) {
	db := setupTestDB()
	stock := services.NewStockService(db, nil)
	user := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Laptop HP Elitebook", 1)

	now := time.Now()
	borrowing, _, _, err := stock.Borrow(user.ID, item.ID, "Akbar", now, now.AddDate(0, 0, 7), "")
	assert.NoError(t, err)

	_, _, _, err = stock.Return(user.ID, 9999)
	assert.ErrorIs(t, err, services.ErrBorrowingNotFound)

	_, _, _, err = stock.Return(user.ID, borrowing.ID)
	assert.NoError(t, err)

	// Повторный возврат не проходит и ничего не меняет
	_, _, _, err = stock.Return(user.ID, borrowing.ID)
	assert.ErrorIs(t, err, services.ErrAlreadyReturned)
	assert.Equal(t, 1, itemStock(db, item.ID))
	assert.Equal(t, int64(2), countRows(db, &models.StockHistory{}, ""))
}

func TestStockServiceAdjust(t *testing.T) {
	db := setupTestDB()
	stock := services.NewStockService(db, nil)
	user := createTestUser(db, "admin", models.RoleAdministrator)
	item := createTestItem(db, "Keyboard Logitech MX", 10)

	updated, entry, err := stock.Adjust(user.ID, item.ID, -4, models.StockTypeCorrection, "Koreksi stok opname")
	assert.NoError(t, err)
	assert.Equal(t, 6, updated.Stock)
	assert.Equal(t, -4, entry.QuantityChange)

	// Корректировка ниже нуля отклоняется целиком
	_, _, err = stock.Adjust(user.ID, item.ID, -10, models.StockTypeCorrection, "")
	assert.ErrorIs(t, err, services.ErrNegativeStock)
	assert.Equal(t, 6, itemStock(db, item.ID))
	assert.Equal(t, int64(1), countRows(db, &models.StockHistory{}, ""))
}
