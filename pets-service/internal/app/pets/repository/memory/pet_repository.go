package memory

import (
	"context"
	"sort"
	"sync"

	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pets-service/internal/app/pets/repository"
)

var _ repository.PetRepository = (*PetRepository)(nil)

// PetRepository - хранилище в памяти, включается через DATABASE_URI=memory://
// Используется для локального запуска и в тестах хендлеров
type PetRepository struct {
	mu     sync.RWMutex
	pets   map[int64]entity.Pet
	nextID int64
}

func NewPetRepository() *PetRepository {
	return &PetRepository{
		pets: map[int64]entity.Pet{},
	}
}

// Create выдаёт следующий id, переданный id игнорируется
func (r *PetRepository) Create(_ context.Context, pet *entity.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	pet.ID = r.nextID
	r.pets[pet.ID] = *pet
	return nil
}

func (r *PetRepository) Update(_ context.Context, pet *entity.Pet) error {
	if pet.ID == 0 {
		return repository.ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[pet.ID]; !ok {
		return repository.ErrPetNotFound
	}
	r.pets[pet.ID] = *pet
	return nil
}

func (r *PetRepository) Purchase(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pet, ok := r.pets[id]
	if !ok || !pet.Available {
		return repository.ErrPetNotAvailable
	}
	pet.Available = false
	r.pets[id] = pet
	return nil
}

func (r *PetRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pets[id]; !ok {
		return repository.ErrPetNotFound
	}
	delete(r.pets, id)
	return nil
}

func (r *PetRepository) Find(_ context.Context, id int64) (*entity.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.pets[id]
	if !ok {
		return nil, nil
	}
	return &pet, nil
}

func (r *PetRepository) FindOrFail(ctx context.Context, id int64) (*entity.Pet, error) {
	pet, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, repository.ErrPetNotFound
	}
	return pet, nil
}

func (r *PetRepository) All(_ context.Context) ([]entity.Pet, error) {
	return r.filter(func(entity.Pet) bool { return true }), nil
}

func (r *PetRepository) FindByCategory(_ context.Context, category string) ([]entity.Pet, error) {
	return r.filter(func(p entity.Pet) bool { return p.Category == category }), nil
}

func (r *PetRepository) FindByName(_ context.Context, name string) ([]entity.Pet, error) {
	return r.filter(func(p entity.Pet) bool { return p.Name == name }), nil
}

func (r *PetRepository) FindByAvailability(_ context.Context, available bool) ([]entity.Pet, error) {
	return r.filter(func(p entity.Pet) bool { return p.Available == available }), nil
}

func (r *PetRepository) FindByGender(_ context.Context, gender entity.Gender) ([]entity.Pet, error) {
	return r.filter(func(p entity.Pet) bool { return p.Gender == gender }), nil
}

func (r *PetRepository) CountByAvailability(_ context.Context) (map[bool]int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := map[bool]int64{true: 0, false: 0}
	for _, pet := range r.pets {
		counts[pet.Available]++
	}
	return counts, nil
}

// Clear удаляет все записи и сбрасывает счётчик id
func (r *PetRepository) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pets = map[int64]entity.Pet{}
	r.nextID = 0
}

// filter возвращает копии подходящих записей, отсортированные по id
func (r *PetRepository) filter(match func(entity.Pet) bool) []entity.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]entity.Pet, 0, len(r.pets))
	for _, pet := range r.pets {
		if match(pet) {
			list = append(list, pet)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
