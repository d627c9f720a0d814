package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"

	"recipebox/pkg/utils"
)

// ErrPasswordHashHidden is returned by every attempt to read a stored password hash.
var ErrPasswordHashHidden = errors.New("password hashes may not be viewed")

// PasswordHash holds a bcrypt hash. It can be written and persisted but never read back
// outside the database driver.
type PasswordHash struct {
	hash string
}

// NewPasswordHash wraps an already computed hash.
func NewPasswordHash(hash string) PasswordHash {
	return PasswordHash{hash: hash}
}

// Reveal always fails.
func (PasswordHash) Reveal() (string, error) {
	return "", ErrPasswordHashHidden
}

// IsSet reports whether a hash has been assigned.
func (p PasswordHash) IsSet() bool {
	return p.hash != ""
}

// Matches compares plain against the stored hash.
func (p PasswordHash) Matches(plain string) bool {
	if p.hash == "" {
		return false
	}
	return utils.CheckPasswordHash(plain, p.hash)
}

func (PasswordHash) String() string {
	return "[hidden]"
}

func (PasswordHash) MarshalJSON() ([]byte, error) {
	return nil, ErrPasswordHashHidden
}

func (PasswordHash) GormDataType() string {
	return "string"
}

// Value implements driver.Valuer.
func (p PasswordHash) Value() (driver.Value, error) {
	return p.hash, nil
}

// Scan implements sql.Scanner.
func (p *PasswordHash) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		p.hash = ""
	case string:
		p.hash = v
	case []byte:
		p.hash = string(v)
	default:
		return fmt.Errorf("unsupported password hash type %T", src)
	}
	return nil
}

type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Username  string       `gorm:"uniqueIndex;not null;size:80" json:"username"`
	Password  PasswordHash `gorm:"column:password_hash;not null;size:255" json:"-"`
	ImageURL  *string      `gorm:"type:text" json:"image_url"`
	Bio       *string      `gorm:"type:text" json:"bio"`
	CreatedAt time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"-"`
}

// SetPassword hashes plain and stores the result. The plain text is not retained.
func (u *User) SetPassword(plain string) error {
	hash, err := utils.HashPassword(plain)
	if err != nil {
		return err
	}
	u.Password = NewPasswordHash(hash)
	return nil
}

// CheckPassword reports whether plain matches the user's stored hash.
func (u *User) CheckPassword(plain string) bool {
	return u.Password.Matches(plain)
}
