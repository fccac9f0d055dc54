package models

import (
	"time"

	"gorm.io/gorm"
)

// Статусы выдачи. Dipinjam — начальный, Kembali — терминальный,
// других переходов нет.
const (
	BorrowingStatusBorrowed = "Dipinjam"
	BorrowingStatusReturned = "Kembali"
)

// Borrowing представляет выдачу одной единицы товара во временное пользование
type Borrowing struct {
	ID                 uint       `json:"id" gorm:"primaryKey"`
	ItemID             uint       `json:"itemId" gorm:"index;not null"`
	UserID             uint       `json:"userId" gorm:"index;not null"` // Кто оформил выдачу
	BorrowerName       string     `json:"borrowerName" gorm:"not null"`
	BorrowDate         time.Time  `json:"borrowDate" gorm:"not null"`
	ExpectedReturnDate time.Time  `json:"expectedReturnDate" gorm:"not null"`
	ActualReturnDate   *time.Time `json:"actualReturnDate"`
	Status             string     `json:"status" gorm:"not null;default:'Dipinjam'"`
	Notes              string     `json:"notes" gorm:"type:text;default:''"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`

	// Связи
	Item *Item `json:"-" gorm:"foreignKey:ItemID"`
	User *User `json:"-" gorm:"foreignKey:UserID"`
}

// BeforeCreate хук для установки времени создания
func (b *Borrowing) BeforeCreate(tx *gorm.DB) error {
	b.CreatedAt = time.Now()
	b.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (b *Borrowing) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = time.Now()
	return nil
}
