package models

import "time"

// Pet age groups, genders and types accepted by the API.
const (
	AgeBaby   = "baby"
	AgeYoung  = "young"
	AgeAdult  = "adult"
	AgeSenior = "senior"

	GenderMale   = "male"
	GenderFemale = "female"

	TypeDog = "dog"
	TypeCat = "cat"
)

// Pet represents an adoptable animal.
//
// Status is true once the pet has been adopted. Request is true while an
// adoption request is pending with the owner.
type Pet struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" validate:"required"`
	Breed     string    `json:"breed" validate:"required"`
	Age       string    `json:"age" validate:"required,oneof=baby young adult senior"`
	Gender    string    `json:"gender" validate:"required,oneof=male female"`
	Color     string    `json:"color" validate:"required"`
	Type      string    `json:"type" validate:"required,oneof=dog cat"`
	Pictures  []string  `json:"pictures" gorm:"serializer:json" validate:"required"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36)"`
	Status    bool      `json:"status"`
	Request   bool      `json:"request"`
	Owner     *User     `json:"Owner,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
