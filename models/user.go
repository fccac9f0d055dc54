package models

import (
	"os"
	"time"

	"gorm.io/driver/postgres"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// Роли пользователей системы
const (
	RoleAdministrator = "Administrator"
	RoleInputData     = "Input Data"
	RoleViewer        = "Viewer"
)

// User представляет учетную запись пользователя системы
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // Скрываем хэш пароля в JSON
	Role         string    `json:"role" gorm:"not null;default:'Viewer'"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// IsValidRole проверяет, что роль входит в набор известных ролей
func IsValidRole(role string) bool {
	switch role {
	case RoleAdministrator, RoleInputData, RoleViewer:
		return true
	}
	return false
}

// InitDB инициализирует подключение к базе данных
func InitDB() (*gorm.DB, error) {
	// Проверяем переменную окружения для выбора базы данных
	databaseURL := os.Getenv("DATABASE_URL")

	if databaseURL != "" {
		// Используем PostgreSQL для продакшена
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return db, nil
	}

	// Используем SQLite для разработки
	db, err := gorm.Open(sqlite.Open("inventaris.db"), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// BeforeCreate хук для установки времени создания
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()
	return nil
}

// BeforeUpdate хук для обновления времени изменения
func (u *User) BeforeUpdate(tx *gorm.DB) error {
	u.UpdatedAt = time.Now()
	return nil
}
