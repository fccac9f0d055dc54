package models

import (
	"time"

	"gorm.io/gorm"
)

// Item представляет товар на складе.
// Инвариант: Stock всегда >= 0 и равен сумме QuantityChange всех записей
// StockHistory по товару плюс начальный остаток при создании.
type Item struct {
	ID                uint      `json:"id" gorm:"primaryKey"`
	SKU               string    `json:"sku" gorm:"uniqueIndex;not null"`
	Barcode           string    `json:"barcode" gorm:"not null"`
	Name              string    `json:"name" gorm:"not null"`
	Description       string    `json:"description" gorm:"type:text;default:''"`
	CategoryID        uint      `json:"categoryId" gorm:"index"`
	DefaultLocationID uint      `json:"defaultLocationId" gorm:"index"`
	Unit              string    `json:"unit" gorm:"default:'pcs'"`
	Stock             int       `json:"stock" gorm:"not null;default:0"`
	MinStock          int       `json:"minStock" gorm:"not null;default:0"`
	Price             float64   `json:"price" gorm:"not null;default:0"`
	Active            bool      `json:"active" gorm:"default:true"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`

	// Связи
	Category        *Category `json:"-" gorm:"foreignKey:CategoryID"`
	DefaultLocation *Location `json:"-" gorm:"foreignKey:DefaultLocationID"`
}

// BeforeCreate хук для установки времени создания
func (i *Item) BeforeCreate(tx *gorm.DB) error {
	i.CreatedAt = time.Now()
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (i *Item) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}
