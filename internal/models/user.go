package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account on the marketplace.
//
// Password holds the bcrypt digest and is never serialized. Accounts created
// through federated sign-in have no local password; HasPassword tells clients
// which credential flows apply.
type User struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Username    string    `json:"username" gorm:"type:varchar(100)" validate:"required,min=6"`
	Email       string    `json:"email" gorm:"uniqueIndex;type:varchar(255)" validate:"required,email"`
	Password    string    `json:"-" gorm:"type:varchar(255)"`
	Address     string    `json:"address" validate:"required"`
	Phone       string    `json:"phone" validate:"required"`
	HasPassword bool      `json:"has_password" gorm:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// AfterFind derives the capability flag from the stored digest.
func (u *User) AfterFind(tx *gorm.DB) error {
	u.HasPassword = u.Password != ""
	return nil
}
