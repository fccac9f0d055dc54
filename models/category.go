package models

import (
	"time"

	"gorm.io/gorm"
)

// Category представляет категорию товаров (дерево через ParentID)
type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	ParentID  *uint     `json:"parentId" gorm:"index"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Связи
	Parent *Category `json:"-" gorm:"foreignKey:ParentID"`
}

// BeforeCreate хук для установки времени создания
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (c *Category) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}
