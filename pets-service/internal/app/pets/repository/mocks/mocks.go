package mocks

import (
	"context"

	"petshop/pets-service/internal/app/pets/entity"

	"github.com/stretchr/testify/mock"
)

// MockPetRepository мок для PetRepository
type MockPetRepository struct {
	mock.Mock
}

func (m *MockPetRepository) Create(ctx context.Context, pet *entity.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) Update(ctx context.Context, pet *entity.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPetRepository) Find(ctx context.Context, id int64) (*entity.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pet), args.Error(1)
}

func (m *MockPetRepository) Purchase(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPetRepository) FindOrFail(ctx context.Context, id int64) (*entity.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pet), args.Error(1)
}

func (m *MockPetRepository) All(ctx context.Context) ([]entity.Pet, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByCategory(ctx context.Context, category string) ([]entity.Pet, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByName(ctx context.Context, name string) ([]entity.Pet, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByAvailability(ctx context.Context, available bool) ([]entity.Pet, error) {
	args := m.Called(ctx, available)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pet), args.Error(1)
}

func (m *MockPetRepository) FindByGender(ctx context.Context, gender entity.Gender) ([]entity.Pet, error) {
	args := m.Called(ctx, gender)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pet), args.Error(1)
}

func (m *MockPetRepository) CountByAvailability(ctx context.Context) (map[bool]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[bool]int64), args.Error(1)
}

// MockPetCache мок для PetCache
type MockPetCache struct {
	mock.Mock
}

func (m *MockPetCache) GetPet(ctx context.Context, id int64) (*entity.Pet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pet), args.Error(1)
}

func (m *MockPetCache) SetPet(ctx context.Context, pet *entity.Pet) error {
	args := m.Called(ctx, pet)
	return args.Error(0)
}

func (m *MockPetCache) DeletePet(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPetCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockMessagePublisher мок для MessagePublisher (Kafka)
type MockMessagePublisher struct {
	mock.Mock
}

func (m *MockMessagePublisher) PublishMessage(ctx context.Context, key string, value []byte) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *MockMessagePublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
