package models

import (
	"time"

	"gorm.io/gorm"
)

// Типы движения остатков в журнале
const (
	StockTypeReceipt    = "Penerimaan"   // Приход товара
	StockTypeCorrection = "Koreksi"      // Ручная корректировка
	StockTypeLent       = "Dipinjamkan"  // Выдано во временное пользование
	StockTypeReturned   = "Dikembalikan" // Возвращено из пользования
	StockTypeSold       = "Dijual"       // Продано
	StockTypeLost       = "Hilang"       // Утеряно
)

// StockHistory представляет запись журнала движения остатков.
// Журнал только дописывается: одна запись на каждое изменение остатка,
// создается в той же транзакции, что и само изменение.
type StockHistory struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ItemID         uint      `json:"itemId" gorm:"index;not null"`
	UserID         uint      `json:"userId" gorm:"index;not null"`
	QuantityChange int       `json:"quantityChange" gorm:"not null"`
	Type           string    `json:"type" gorm:"not null"`
	Reason         string    `json:"reason" gorm:"type:text;default:''"`
	CreatedAt      time.Time `json:"timestamp"`

	// Связи
	Item *Item `json:"-" gorm:"foreignKey:ItemID"`
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate хук для установки времени создания
func (sh *StockHistory) BeforeCreate(tx *gorm.DB) error {
	sh.CreatedAt = time.Now()
	return nil
}
