package db

import (
	"errors" // Sentinel error matching

	"neuroscan_backend/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus"

	"golang.org/x/crypto/bcrypt" // Password hashing for seeded accounts
	"gorm.io/driver/mysql"       // MySQL driver for GORM
	"gorm.io/gorm"               // GORM ORM library
)

// Open connects to MySQL. TranslateError is on so unique-key violations
// surface as gorm.ErrDuplicatedKey and the stores can map them to conflicts.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
}

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	conn, err := Open(dsn) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = conn.AutoMigrate(&domain.User{}, &domain.Result{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.Info("Migration completed.") // Log successful migration
}

// SeedDoctor provisions a doctor account. Doctors cannot self-register, so
// this is the in-band way to create one. Idempotent: an existing email or
// embg is reported and left alone.
func SeedDoctor(dsn, name, surname, email, password, embg string) {
	conn, err := Open(dsn)
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.Fatalf("failed to hash doctor password: %v", err)
	}
	doctor := domain.User{
		Name:     name,
		Surname:  surname,
		Role:     domain.RoleDoctor,
		Email:    email,
		Password: string(hash),
		Embg:     embg,
	}
	if err := conn.Create(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			logrus.Warnf("doctor %s already exists, skipping", email)
			return
		}
		logrus.Fatalf("failed to seed doctor: %v", err)
	}
	logrus.Infof("Seeded doctor account %s", email)
}
