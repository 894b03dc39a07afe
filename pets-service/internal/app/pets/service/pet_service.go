package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pets-service/internal/app/pets/repository"
	"petshop/pets-service/internal/app/pets/util"
	"petshop/pkg/logger"
	"petshop/pkg/metrics"
)

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrPetNotFound     = errors.New("pet not found")
	ErrPetNotAvailable = errors.New("pet not available")
)

// publishTimeout ограничивает ожидание Kafka внутри запроса
const publishTimeout = 3 * time.Second

// PetService обрабатывает бизнес-логику магазина питомцев
// Координирует работу репозитория, Redis кеша и Kafka producer
type PetService struct {
	repo      repository.PetRepository
	cache     util.PetCache
	publisher util.MessagePublisher
}

// NewPetService создает новый сервис с внедрением зависимостей
// Вместо выключенных Redis/Kafka передаются util.NopCache / util.NopPublisher
func NewPetService(
	repo repository.PetRepository,
	cache util.PetCache,
	publisher util.MessagePublisher,
) *PetService {
	return &PetService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
	}
}

// ListPets применяет не более одного фильтра: category > name > available > gender
func (s *PetService) ListPets(ctx context.Context, query entity.PetQuery) ([]entity.Pet, error) {
	var (
		pets []entity.Pet
		err  error
	)

	switch {
	case query.Category != "":
		pets, err = s.repo.FindByCategory(ctx, query.Category)
	case query.Name != "":
		pets, err = s.repo.FindByName(ctx, query.Name)
	case query.Available != nil:
		pets, err = s.repo.FindByAvailability(ctx, *query.Available)
	case query.Gender != nil:
		pets, err = s.repo.FindByGender(ctx, *query.Gender)
	default:
		pets, err = s.repo.All(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}

	logger.Info().Int("count", len(pets)).Msg("Returning pets")
	return pets, nil
}

// GetPet читает питомца через кеш, при промахе идёт в базу и кладёт результат в кеш
func (s *PetService) GetPet(ctx context.Context, id int64) (*entity.Pet, error) {
	cached, err := s.cache.GetPet(ctx, id)
	if err != nil {
		logger.Warn().Err(err).Int64("id", id).Msg("Failed to read pet from cache")
	}
	if cached != nil {
		return cached, nil
	}

	pet, err := s.findPet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.SetPet(ctx, pet); err != nil {
		logger.Warn().Err(err).Int64("id", id).Msg("Failed to cache pet")
	}

	return pet, nil
}

// CreatePet проверяет тело запроса и сохраняет нового питомца
// Ошибки валидации оборачивают entity.ErrInvalidPet
func (s *PetService) CreatePet(ctx context.Context, data any) (*entity.Pet, error) {
	pet := &entity.Pet{}
	if err := pet.Deserialize(data); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("failed to create pet: %w", err)
	}

	metrics.PetsCreated.Inc()
	logger.Info().Int64("id", pet.ID).Str("name", pet.Name).Msg("Pet created")

	s.publishEvent(ctx, entity.EventPetCreated, pet)
	return pet, nil
}

// UpdatePet заменяет все поля существующего питомца, id не меняется
// Сначала проверяется существование (404), потом тело запроса (400)
func (s *PetService) UpdatePet(ctx context.Context, id int64, data any) (*entity.Pet, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := pet.Deserialize(data); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, pet); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to update pet: %w", err)
	}

	s.invalidate(ctx, id)
	logger.Info().Int64("id", id).Msg("Pet updated")

	s.publishEvent(ctx, entity.EventPetUpdated, pet)
	return pet, nil
}

// DeletePet удаляет питомца; отсутствие питомца не ошибка
func (s *PetService) DeletePet(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			logger.Debug().Int64("id", id).Msg("Pet already absent")
			return nil
		}
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	s.invalidate(ctx, id)
	logger.Info().Int64("id", id).Msg("Pet deleted")

	s.publishEvent(ctx, entity.EventPetDeleted, &entity.Pet{ID: id})
	return nil
}

// PurchasePet переводит доступного питомца в available=false
// Проигравшая гонку покупка получает ErrPetNotAvailable
func (s *PetService) PurchasePet(ctx context.Context, id int64) (*entity.Pet, error) {
	pet, err := s.findPet(ctx, id)
	if err != nil {
		return nil, err
	}

	if !pet.Available {
		metrics.PetsPurchased.WithLabelValues("not_available").Inc()
		return nil, ErrPetNotAvailable
	}

	if err := s.repo.Purchase(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPetNotAvailable) {
			metrics.PetsPurchased.WithLabelValues("not_available").Inc()
			return nil, ErrPetNotAvailable
		}
		return nil, fmt.Errorf("failed to purchase pet: %w", err)
	}
	pet.Available = false

	metrics.PetsPurchased.WithLabelValues("success").Inc()
	s.invalidate(ctx, id)
	logger.Info().Int64("id", id).Str("name", pet.Name).Msg("Pet purchased")

	s.publishEvent(ctx, entity.EventPetPurchased, pet)
	return pet, nil
}

// RefreshInventory пересчитывает gauge pets_inventory
func (s *PetService) RefreshInventory(ctx context.Context) error {
	counts, err := s.repo.CountByAvailability(ctx)
	if err != nil {
		return fmt.Errorf("failed to count pets: %w", err)
	}

	metrics.SetInventory(counts)
	logger.Debug().Int64("available", counts[true]).Int64("unavailable", counts[false]).Msg("Inventory refreshed")
	return nil
}

// findPet переводит repository.ErrPetNotFound в ErrPetNotFound сервиса
func (s *PetService) findPet(ctx context.Context, id int64) (*entity.Pet, error) {
	pet, err := s.repo.FindOrFail(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPetNotFound) {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}
	return pet, nil
}

func (s *PetService) invalidate(ctx context.Context, id int64) {
	if err := s.cache.DeletePet(ctx, id); err != nil {
		// Данные уже сохранены, проблемы с кешем не критичны
		logger.Warn().Err(err).Int64("id", id).Msg("Failed to invalidate pet cache")
	}
}

// publishEvent отправляет событие в Kafka, ошибки только логируются
func (s *PetService) publishEvent(ctx context.Context, eventType string, pet *entity.Pet) {
	payload, err := json.Marshal(entity.NewPetEvent(eventType, pet))
	if err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Msg("Failed to marshal pet event")
		return
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(pet.ID, 10), payload); err != nil {
		logger.Warn().Err(err).Str("event_type", eventType).Int64("id", pet.ID).Msg("Failed to publish pet event")
	}
}
