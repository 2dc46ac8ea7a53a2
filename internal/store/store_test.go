package store

import (
	"testing"

	"neuroscan_backend/internal/domain"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a named in-memory SQLite database with the schema migrated.
// Each test passes its own name so databases never bleed into each other.
func newTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := "file:" + name + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.Result{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newUser builds a user with a real bcrypt hash for the given password.
func newUser(t *testing.T, role domain.Role, name, surname, email, password, embg string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &domain.User{
		Name:     name,
		Surname:  surname,
		Role:     role,
		Email:    email,
		Password: string(hash),
		Embg:     embg,
	}
}
