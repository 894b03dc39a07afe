package repository

import (
	"context"
	"errors"
	"fmt"

	"petshop/pets-service/internal/app/pets/entity"
)

var (
	// ErrPetNotFound - записи с таким id нет
	ErrPetNotFound = errors.New("pet not found")
	// ErrEmptyID - Update вызван для питомца, который ещё не сохранён
	ErrEmptyID = fmt.Errorf("%w: update called with empty id", entity.ErrInvalidPet)
	// ErrPetNotAvailable - питомец уже продан (или удалён) к моменту покупки
	ErrPetNotAvailable = errors.New("pet not available")
)

// PetRepository - хранилище питомцев.
// Find возвращает (nil, nil) если питомца нет, FindOrFail - ErrPetNotFound.
// Purchase атомарно снимает available, только если он был true
type PetRepository interface {
	Create(ctx context.Context, pet *entity.Pet) error
	Update(ctx context.Context, pet *entity.Pet) error
	Delete(ctx context.Context, id int64) error
	Purchase(ctx context.Context, id int64) error
	Find(ctx context.Context, id int64) (*entity.Pet, error)
	FindOrFail(ctx context.Context, id int64) (*entity.Pet, error)
	All(ctx context.Context) ([]entity.Pet, error)
	FindByCategory(ctx context.Context, category string) ([]entity.Pet, error)
	FindByName(ctx context.Context, name string) ([]entity.Pet, error)
	FindByAvailability(ctx context.Context, available bool) ([]entity.Pet, error)
	FindByGender(ctx context.Context, gender entity.Gender) ([]entity.Pet, error)
	CountByAvailability(ctx context.Context) (map[bool]int64, error)
}
