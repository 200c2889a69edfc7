package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// User mirrors the columns the bootstrap needs. The API owns the full schema.
type User struct {
	ID            uint   `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;not null"`
	Name          string
	PasswordHash  string `gorm:"not null"`
	Role          string `gorm:"default:'user'"`
	EmailVerified bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func main() {
	email := flag.String("email", "admin@ovenfresh.dev", "Admin email address")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "Administrator", "Admin display name")
	dbPath := flag.String("db", "pizza.sqlite", "Path to the SQLite database file")
	flag.Parse()

	if *password == "" {
		log.Fatal("A password is required: -password <value>")
	}

	db, err := gorm.Open(sqlite.Open(*dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	var existing User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		if existing.Role == "admin" {
			fmt.Printf("Admin already exists: %s (ID: %d)\n", existing.Email, existing.ID)
			return
		}
		if err := db.Model(&existing).Update("role", "admin").Error; err != nil {
			log.Fatal("Failed to promote user:", err)
		}
		fmt.Printf("Promoted existing user to admin: %s (ID: %d)\n", existing.Email, existing.ID)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := User{
		Email:         *email,
		Name:          *name,
		PasswordHash:  string(hash),
		Role:          "admin",
		EmailVerified: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin:", err)
	}

	fmt.Printf("Admin account created: %s (ID: %d)\n", admin.Email, admin.ID)
	fmt.Println("Log in via POST /api/v1/auth/login to obtain a token.")
}
