package services

import (
	"errors"
	"time"

	"inventaris-backend/models"

	"gorm.io/gorm"
)

// Ошибки операций движения остатков. Контроллеры различают их через errors.Is
// и выбирают код ответа (404 / 409).
var (
	ErrItemNotFound      = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrBorrowingNotFound = errors.New("borrowing record not found")
	ErrAlreadyReturned   = errors.New("borrowing already returned")
	ErrNegativeStock     = errors.New("resulting stock would be negative")
)

// HistoryUser — минимальные данные пользователя в записи журнала
type HistoryUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// HistoryItemRef — минимальные данные товара в записи журнала
type HistoryItemRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	SKU  string `json:"sku"`
}

// HistoryEntry — запись журнала движения остатков в формате ответа API
type HistoryEntry struct {
	ID             uint           `json:"id"`
	Timestamp      time.Time      `json:"timestamp"`
	User           HistoryUser    `json:"user"`
	Type           string         `json:"type"`
	QuantityChange int            `json:"quantityChange"`
	FromLocation   *string        `json:"fromLocation"` // Перемещения между локациями не отслеживаются
	ToLocation     *string        `json:"toLocation"`
	Reason         string         `json:"reason"`
	RelatedItem    HistoryItemRef `json:"relatedItem"`
}

// NewHistoryEntry собирает запись журнала для ответа API
func NewHistoryEntry(history *models.StockHistory, user *models.User, item *models.Item) *HistoryEntry {
	return &HistoryEntry{
		ID:             history.ID,
		Timestamp:      history.CreatedAt,
		User:           HistoryUser{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		Type:           history.Type,
		QuantityChange: history.QuantityChange,
		Reason:         history.Reason,
		RelatedItem:    HistoryItemRef{ID: item.ID, Name: item.Name, SKU: item.SKU},
	}
}

// StockService выполняет все операции, меняющие остатки. Каждая операция —
// одна транзакция: изменение Item.Stock, запись в журнал и сопутствующие
// строки применяются целиком или не применяются вовсе.
type StockService struct {
	db  *gorm.DB
	hub *ActivityHub
}

// NewStockService создает новый экземпляр StockService.
// hub может быть nil — тогда события не транслируются.
func NewStockService(db *gorm.DB, hub *ActivityHub) *StockService {
	return &StockService{db: db, hub: hub}
}

// applyStockChange изменяет остаток товара внутри транзакции и возвращает
// товар после изменения. Остаток не может стать отрицательным.
func applyStockChange(tx *gorm.DB, itemID uint, change int) (*models.Item, error) {
	var item models.Item
	if err := tx.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if item.Stock+change < 0 {
		if change == -1 {
			return nil, ErrInsufficientStock
		}
		return nil, ErrNegativeStock
	}

	if err := tx.Model(&item).Update("stock", gorm.Expr("stock + ?", change)).Error; err != nil {
		return nil, err
	}

	// Перечитываем строку, чтобы вернуть фактический остаток
	if err := tx.First(&item, itemID).Error; err != nil {
		return nil, err
	}

	return &item, nil
}

// Borrow выдает одну единицу товара: остаток -1, запись Borrowing со статусом
// Dipinjam и запись журнала Dipinjamkan — одной транзакцией
func (s *StockService) Borrow(userID uint, itemID uint, borrowerName string, borrowDate, expectedReturnDate time.Time, notes string) (*models.Borrowing, *HistoryEntry, *models.Item, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, nil, nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Списываем одну единицу
	item, err := applyStockChange(tx, itemID, -1)
	if err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Создаем запись о выдаче
	borrowing := models.Borrowing{
		ItemID:             itemID,
		UserID:             userID,
		BorrowerName:       borrowerName,
		BorrowDate:         borrowDate,
		ExpectedReturnDate: expectedReturnDate,
		Status:             models.BorrowingStatusBorrowed,
		Notes:              notes,
	}
	if err := tx.Create(&borrowing).Error; err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Пишем запись в журнал движения
	history := models.StockHistory{
		ItemID:         itemID,
		UserID:         userID,
		QuantityChange: -1,
		Type:           models.StockTypeLent,
		Reason:         "Dipinjam oleh " + borrowerName,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, nil, nil, err
	}

	entry := NewHistoryEntry(&history, &user, item)
	s.broadcast(entry)

	return &borrowing, entry, item, nil
}

// Return закрывает выдачу: остаток +1, запись журнала Dikembalikan и перевод
// Borrowing в терминальный статус Kembali — одной транзакцией. Повторный
// возврат и возврат несуществующей выдачи не меняют ничего.
func (s *StockService) Return(userID uint, borrowingID uint) (*models.Borrowing, *HistoryEntry, *models.Item, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, nil, nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// Загружаем выдачу и проверяем ее статус
	var borrowing models.Borrowing
	if err := tx.First(&borrowing, borrowingID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, nil, ErrBorrowingNotFound
		}
		return nil, nil, nil, err
	}
	if borrowing.Status == models.BorrowingStatusReturned {
		tx.Rollback()
		return nil, nil, nil, ErrAlreadyReturned
	}

	// Возвращаем единицу на остаток
	item, err := applyStockChange(tx, borrowing.ItemID, 1)
	if err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Пишем запись в журнал движения
	history := models.StockHistory{
		ItemID:         borrowing.ItemID,
		UserID:         userID,
		QuantityChange: 1,
		Type:           models.StockTypeReturned,
		Reason:         "Dikembalikan oleh " + borrowing.BorrowerName,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Переводим выдачу в терминальный статус
	now := time.Now()
	borrowing.Status = models.BorrowingStatusReturned
	borrowing.ActualReturnDate = &now
	if err := tx.Save(&borrowing).Error; err != nil {
		tx.Rollback()
		return nil, nil, nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, nil, nil, err
	}

	entry := NewHistoryEntry(&history, &user, item)
	s.broadcast(entry)

	return &borrowing, entry, item, nil
}

// Adjust применяет ручную корректировку остатка: изменение Item.Stock и
// запись журнала — одной транзакцией
func (s *StockService) Adjust(userID uint, itemID uint, quantityChange int, historyType, reason string) (*models.Item, *HistoryEntry, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, nil, err
	}

	// Начинаем транзакцию
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	item, err := applyStockChange(tx, itemID, quantityChange)
	if err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	history := models.StockHistory{
		ItemID:         itemID,
		UserID:         userID,
		QuantityChange: quantityChange,
		Type:           historyType,
		Reason:         reason,
	}
	if err := tx.Create(&history).Error; err != nil {
		tx.Rollback()
		return nil, nil, err
	}

	// Подтверждаем транзакцию
	if err := tx.Commit().Error; err != nil {
		return nil, nil, err
	}

	entry := NewHistoryEntry(&history, &user, item)
	s.broadcast(entry)

	return item, entry, nil
}

// LatestHistory возвращает последние limit записей журнала, новые первыми,
// вместе с минимальными данными пользователя и товара
func (s *StockService) LatestHistory(limit int) ([]HistoryEntry, error) {
	var rows []models.StockHistory
	if err := s.db.Preload("User").Preload("Item").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(rows))
	for i := range rows {
		row := &rows[i]
		user := row.User
		if user == nil {
			user = &models.User{}
		}
		item := row.Item
		if item == nil {
			item = &models.Item{}
		}
		entries = append(entries, *NewHistoryEntry(row, user, item))
	}

	return entries, nil
}

func (s *StockService) broadcast(entry *HistoryEntry) {
	if s.hub != nil {
		s.hub.BroadcastHistory(entry)
	}
}
