package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered user.
//
// Users are the root of the data model, every transaction and bill
// belongs to exactly one user.
type User struct {
	DefaultModel
	Username     string `json:"username" gorm:"uniqueIndex"`
	Email        string `json:"email" gorm:"uniqueIndex"`
	PasswordHash string `json:"-"`

	// EmailNotifications is stored exactly as set, there is no column
	// default: gorm drops zero-value fields with a default tag from the
	// INSERT, which would turn an opt-out back into an opt-in. The
	// signup flow enables notifications explicitly.
	EmailNotifications bool `json:"emailNotifications"`
}

// BeforeSave trims whitespace and normalizes the email address.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return nil
}

// SetPassword hashes the cleartext password and stores the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// VerifyPassword reports whether the cleartext password matches the
// stored hash. bcrypt compares in constant time.
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
