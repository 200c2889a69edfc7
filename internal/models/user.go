package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the credential store and notification recipient. Password and token
// fields never serialize to API responses.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	Name         string  `gorm:"size:100" json:"name"`
	PasswordHash string  `gorm:"size:100;not null" json:"-"`
	Phone        string  `gorm:"size:20" json:"phone"`
	Address      Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Role         string  `gorm:"size:16;not null;default:'user'" json:"role"`

	EmailVerified          bool   `gorm:"not null;default:false" json:"email_verified"`
	EmailVerificationToken string `gorm:"size:64;index" json:"-"`

	PasswordResetToken   string     `gorm:"size:64;index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SetPassword hashes the plaintext password with bcrypt and stores the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
