package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Роли пользователей
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// bcryptCost — стоимость хеширования пароля (спецификация требует >= 10)
const bcryptCost = 12

// User представляет пользователя в системе
type User struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Email           string     `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Password        string     `gorm:"type:text;not null" json:"-"`
	FullName        string     `gorm:"size:100;not null" json:"full_name"`
	SecondarySchool string     `gorm:"size:100;default:''" json:"secondary_school,omitempty"`
	SecondaryLevel  string     `gorm:"size:20;default:''" json:"secondary_level,omitempty"`
	Role            string     `gorm:"size:20;not null;default:'user';index" json:"role"` // "user" или "admin"
	RegisteredAt    time.Time  `gorm:"autoCreateTime" json:"registered_at"`
	LastLogin       *time.Time `gorm:"type:timestamp" json:"last_login,omitempty"`

	// Поля блокировки по неудачным попыткам входа присутствуют в схеме,
	// но ни один обработчик их не использует. Защита от brute-force
	// реализована rate-limiter'ом на /login.
	FailedLoginAttempts int        `gorm:"not null;default:0" json:"-"`
	LockedUntil         *time.Time `gorm:"type:timestamp" json:"-"`
}

// TableName определяет имя таблицы для GORM
func (User) TableName() string {
	return "users"
}

// IsAdmin проверяет, имеет ли пользователь роль администратора
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (u *User) BeforeSave(tx *gorm.DB) error {
	if len(u.Password) > 0 && !strings.HasPrefix(u.Password, "$2a$") &&
		!strings.HasPrefix(u.Password, "$2b$") && !strings.HasPrefix(u.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcryptCost)
		if err != nil {
			log.Printf("[User.BeforeSave] Ошибка при хешировании пароля для email=%s: %v", u.Email, err)
			return err
		}
		u.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}
