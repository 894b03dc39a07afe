package repository

import (
	"context"
	"errors"
	"fmt"

	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pkg/logger"
	"petshop/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	metricsService = "pets-service"
	petsTable      = "pets"
)

// Коды ошибок PostgreSQL, которые означают плохие данные, а не сбой БД
var dataErrorCodes = map[string]bool{
	"22001": true, // string_data_right_truncation
	"22007": true, // invalid_datetime_format
	"23502": true, // not_null_violation
	"23514": true, // check_violation
}

type petRepository struct {
	db *gorm.DB
}

// NewPetRepository создает репозиторий питомцев поверх GORM (PostgreSQL)
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

// Create сохраняет нового питомца, id выдаёт база
func (r *petRepository) Create(ctx context.Context, pet *entity.Pet) error {
	logger.Info().Str("name", pet.Name).Msg("Creating pet")
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpInsert, petsTable)
	defer timer.ObserveDuration()

	// id должен быть пустым, чтобы база сгенерировала следующий
	pet.ID = 0
	if err := r.db.WithContext(ctx).Create(pet).Error; err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpInsert)
		return fmt.Errorf("failed to create pet: %w", translateError(err))
	}

	return nil
}

// Update сохраняет все поля питомца, id не меняется
func (r *petRepository) Update(ctx context.Context, pet *entity.Pet) error {
	logger.Info().Int64("id", pet.ID).Str("name", pet.Name).Msg("Saving pet")
	if pet.ID == 0 {
		return ErrEmptyID
	}

	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, petsTable)
	defer timer.ObserveDuration()

	// map, а не struct: GORM пропускает zero values в struct, а available=false должен записаться
	result := r.db.WithContext(ctx).
		Model(&entity.Pet{}).
		Where("id = ?", pet.ID).
		Updates(map[string]interface{}{
			"name":      pet.Name,
			"category":  pet.Category,
			"available": pet.Available,
			"gender":    string(pet.Gender),
			"birthday":  pet.Birthday,
		})

	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpUpdate)
		return fmt.Errorf("failed to update pet: %w", translateError(result.Error))
	}

	if result.RowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// Purchase переводит available в false одним UPDATE с условием available = true,
// так что из двух одновременных покупок проходит только одна
func (r *petRepository) Purchase(ctx context.Context, id int64) error {
	logger.Info().Int64("id", id).Msg("Purchasing pet")
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpUpdate, petsTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).
		Model(&entity.Pet{}).
		Where("id = ? AND available = ?", id, true).
		Update("available", false)

	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpUpdate)
		return fmt.Errorf("failed to purchase pet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrPetNotAvailable
	}

	return nil
}

// Delete удаляет питомца по id
func (r *petRepository) Delete(ctx context.Context, id int64) error {
	logger.Info().Int64("id", id).Msg("Deleting pet")
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpDelete, petsTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Pet{}, "id = ?", id)
	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete pet: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// Find ищет питомца по id, (nil, nil) если не найден
func (r *petRepository) Find(ctx context.Context, id int64) (*entity.Pet, error) {
	logger.Debug().Int64("id", id).Msg("Processing lookup")
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, petsTable)
	defer timer.ObserveDuration()

	var pet entity.Pet
	result := r.db.WithContext(ctx).First(&pet, "id = ?", id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get pet: %w", result.Error)
	}

	return &pet, nil
}

// FindOrFail как Find, но возвращает ErrPetNotFound
func (r *petRepository) FindOrFail(ctx context.Context, id int64) (*entity.Pet, error) {
	pet, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if pet == nil {
		return nil, ErrPetNotFound
	}
	return pet, nil
}

func (r *petRepository) All(ctx context.Context) ([]entity.Pet, error) {
	logger.Debug().Msg("Processing all pets")
	return r.findWhere(ctx, nil)
}

func (r *petRepository) FindByCategory(ctx context.Context, category string) ([]entity.Pet, error) {
	logger.Debug().Str("category", category).Msg("Processing category query")
	return r.findWhere(ctx, map[string]interface{}{"category": category})
}

func (r *petRepository) FindByName(ctx context.Context, name string) ([]entity.Pet, error) {
	logger.Debug().Str("name", name).Msg("Processing name query")
	return r.findWhere(ctx, map[string]interface{}{"name": name})
}

func (r *petRepository) FindByAvailability(ctx context.Context, available bool) ([]entity.Pet, error) {
	logger.Debug().Bool("available", available).Msg("Processing available query")
	return r.findWhere(ctx, map[string]interface{}{"available": available})
}

func (r *petRepository) FindByGender(ctx context.Context, gender entity.Gender) ([]entity.Pet, error) {
	logger.Debug().Str("gender", gender.String()).Msg("Processing gender query")
	return r.findWhere(ctx, map[string]interface{}{"gender": string(gender)})
}

// CountByAvailability считает питомцев по доступности (для gauge pets_inventory)
func (r *petRepository) CountByAvailability(ctx context.Context) (map[bool]int64, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, petsTable)
	defer timer.ObserveDuration()

	var rows []struct {
		Available bool
		Count     int64
	}
	result := r.db.WithContext(ctx).
		Model(&entity.Pet{}).
		Select("available, count(*) AS count").
		Group("available").
		Scan(&rows)

	if result.Error != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to count pets: %w", result.Error)
	}

	counts := map[bool]int64{true: 0, false: 0}
	for _, row := range rows {
		counts[row.Available] = row.Count
	}
	return counts, nil
}

// findWhere выполняет точное совпадение по колонкам, сортировка по id
func (r *petRepository) findWhere(ctx context.Context, conditions map[string]interface{}) ([]entity.Pet, error) {
	timer := metrics.NewDbTimer(metricsService, metrics.DbOpSelect, petsTable)
	defer timer.ObserveDuration()

	query := r.db.WithContext(ctx)
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}

	var pets []entity.Pet
	if err := query.Order("id").Find(&pets).Error; err != nil {
		metrics.RecordDbError(metricsService, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to query pets: %w", err)
	}

	return pets, nil
}

// translateError превращает нарушения ограничений PostgreSQL в ошибку валидации
func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && dataErrorCodes[pgErr.Code] {
		return fmt.Errorf("%w: %s", entity.ErrInvalidPet, pgErr.Message)
	}
	return err
}
