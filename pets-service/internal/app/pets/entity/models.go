package entity

import (
	"fmt"
	"time"
)

// Gender - пол питомца, хранится и отдаётся по имени
type Gender string

const (
	GenderMale    Gender = "MALE"
	GenderFemale  Gender = "FEMALE"
	GenderUnknown Gender = "UNKNOWN"
)

// Genders - полный список допустимых значений, других нет
var Genders = []Gender{GenderMale, GenderFemale, GenderUnknown}

// ParseGender ищет точное совпадение с именем (регистр важен: "male" не подходит)
func ParseGender(name string) (Gender, bool) {
	for _, g := range Genders {
		if string(g) == name {
			return g, true
		}
	}
	return "", false
}

func (g Gender) Valid() bool {
	_, ok := ParseGender(string(g))
	return ok
}

func (g Gender) String() string {
	return string(g)
}

// Pet представляет питомца в магазине
type Pet struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:varchar(63);not null" validate:"required,max=63"`
	Category  string    `json:"category" gorm:"type:varchar(63);not null;index" validate:"required,max=63"`
	Available bool      `json:"available" gorm:"not null"`
	Gender    Gender    `json:"gender" gorm:"type:varchar(16);not null;default:'UNKNOWN'"`
	Birthday  time.Time `json:"birthday" gorm:"type:date;not null"`
}

// TableName указывает имя таблицы для GORM
func (Pet) TableName() string {
	return "pets"
}

func (p *Pet) String() string {
	return fmt.Sprintf("<Pet %s id=[%d]>", p.Name, p.ID)
}

// Типы событий для Kafka
const (
	EventPetCreated   = "PET_CREATED"
	EventPetUpdated   = "PET_UPDATED"
	EventPetPurchased = "PET_PURCHASED"
	EventPetDeleted   = "PET_DELETED"
)

// PetEvent представляет событие изменения питомца для Kafka
type PetEvent struct {
	EventType string    `json:"event_type"`
	PetID     int64     `json:"pet_id"`
	Name      string    `json:"name,omitempty"`
	Category  string    `json:"category,omitempty"`
	Available bool      `json:"available"`
	Gender    Gender    `json:"gender,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewPetEvent собирает событие из текущего состояния питомца
func NewPetEvent(eventType string, pet *Pet) PetEvent {
	return PetEvent{
		EventType: eventType,
		PetID:     pet.ID,
		Name:      pet.Name,
		Category:  pet.Category,
		Available: pet.Available,
		Gender:    pet.Gender,
		Timestamp: time.Now().UTC(),
	}
}
