package models

import "time"

// Favorite is a user's bookmark of a pet. The composite unique index turns a
// duplicate bookmark into a single atomic insert failure instead of a
// check-then-act race.
type Favorite struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PetID     string    `json:"pet_id" gorm:"uniqueIndex:idx_favorite_pet_user;type:varchar(36)" validate:"required"`
	UserID    string    `json:"user_id" gorm:"uniqueIndex:idx_favorite_pet_user;type:varchar(36)"`
	CreatedAt time.Time `json:"created_at"`
}
