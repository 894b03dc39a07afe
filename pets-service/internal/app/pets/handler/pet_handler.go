package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"petshop/pets-service/internal/app/pets/entity"
	"petshop/pets-service/internal/app/pets/service"
	"petshop/pkg/logger"

	"github.com/gin-gonic/gin"
)

const (
	jsonContentType = "application/json"
	serviceName     = "Pet Demo REST API Service"
	serviceVersion  = "1.0"
	petsPath        = "/pets"
	internalMessage = "An internal error occurred"
)

// PetHandler обрабатывает HTTP запросы для питомцев с использованием Gin
type PetHandler struct {
	petService service.PetServiceInterface
}

// NewPetHandler создает новый обработчик питомцев
func NewPetHandler(petService service.PetServiceInterface) *PetHandler {
	return &PetHandler{petService: petService}
}

// Health обрабатывает GET /health
func (h *PetHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, entity.HealthResponse{
		Status:  http.StatusOK,
		Message: "Healthy",
	})
}

// Index обрабатывает GET /
func (h *PetHandler) Index(c *gin.Context) {
	logger.Info().Msg("Request for Root URL")
	c.JSON(http.StatusOK, entity.IndexResponse{
		Name:    serviceName,
		Version: serviceVersion,
		Paths:   petsPath,
	})
}

// ListPets обрабатывает GET /pets
// Из нескольких фильтров применяется один: category > name > available > gender
func (h *PetHandler) ListPets(c *gin.Context) {
	query := entity.PetQuery{
		Category: c.Query("category"),
		Name:     c.Query("name"),
	}

	if available := c.Query("available"); available != "" {
		value := isTruthy(available)
		query.Available = &value
	}

	// gender разбирается только если он единственный фильтр
	genderName := c.Query("gender")
	if genderName != "" && query.Category == "" && query.Name == "" && query.Available == nil {
		gender, ok := entity.ParseGender(strings.ToUpper(genderName))
		if !ok {
			respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid gender: %s", genderName))
			return
		}
		query.Gender = &gender
	}

	pets, err := h.petService.ListPets(c.Request.Context(), query)
	if err != nil {
		h.handleError(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, entity.SerializePets(pets))
}

// GetPet обрабатывает GET /pets/:id
func (h *PetHandler) GetPet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pet, err := h.petService.GetPet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, id)
		return
	}

	logger.Info().Int64("id", id).Str("name", pet.Name).Msg("Returning pet")
	c.JSON(http.StatusOK, pet.Serialize())
}

// CreatePet обрабатывает POST /pets
// Отвечает 201 и заголовком Location на созданного питомца
func (h *PetHandler) CreatePet(c *gin.Context) {
	if !checkContentType(c, jsonContentType) {
		return
	}

	pet, err := h.petService.CreatePet(c.Request.Context(), readBody(c))
	if err != nil {
		h.handleError(c, err, 0)
		return
	}

	c.Header("Location", fmt.Sprintf("%s/%d", petsPath, pet.ID))
	c.JSON(http.StatusCreated, pet.Serialize())
}

// UpdatePet обрабатывает PUT /pets/:id
// Битый id - 404 раньше проверки Content-Type
func (h *PetHandler) UpdatePet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if !checkContentType(c, jsonContentType) {
		return
	}

	pet, err := h.petService.UpdatePet(c.Request.Context(), id, readBody(c))
	if err != nil {
		h.handleError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, pet.Serialize())
}

// DeletePet обрабатывает DELETE /pets/:id
// Всегда 204, даже если питомца не было
func (h *PetHandler) DeletePet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.petService.DeletePet(c.Request.Context(), id); err != nil {
		h.handleError(c, err, id)
		return
	}

	c.Status(http.StatusNoContent)
}

// PurchasePet обрабатывает PUT /pets/:id/purchase
func (h *PetHandler) PurchasePet(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	pet, err := h.petService.PurchasePet(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err, id)
		return
	}

	c.JSON(http.StatusOK, pet.Serialize())
}

// handleError переводит ошибки сервиса в HTTP статусы
func (h *PetHandler) handleError(c *gin.Context, err error, id int64) {
	switch {
	case errors.Is(err, entity.ErrInvalidPet):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPetNotFound):
		respondError(c, http.StatusNotFound, fmt.Sprintf("Pet with id '%d' was not found.", id))
	case errors.Is(err, service.ErrPetNotAvailable):
		respondError(c, http.StatusConflict, fmt.Sprintf("Pet with id '%d' is not available.", id))
	default:
		// Детали ошибки хранилища клиенту не отдаём
		_ = c.Error(err)
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		respondError(c, http.StatusInternalServerError, internalMessage)
	}
}

// parseID разбирает :id; нечисловой или отрицательный id - 404, как несовпавший маршрут
func parseID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 63)
	if err != nil {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Pet with id '%s' was not found.", raw))
		return 0, false
	}
	return int64(id), true
}

// checkContentType требует точного совпадения заголовка Content-Type
func checkContentType(c *gin.Context, contentType string) bool {
	header := c.GetHeader("Content-Type")
	if header == "" {
		logger.Error().Msg("No Content-Type specified.")
		respondError(c, http.StatusUnsupportedMediaType, "Content-Type must be "+contentType)
		return false
	}

	if header != contentType {
		logger.Error().Str("content_type", header).Msg("Invalid Content-Type")
		respondError(c, http.StatusUnsupportedMediaType, "Content-Type must be "+contentType)
		return false
	}

	return true
}

// readBody декодирует JSON тело в map/slice/значение
// Пустое или битое тело превращается в nil, дальше это ошибка валидации
func readBody(c *gin.Context) any {
	var data any
	if err := c.ShouldBindJSON(&data); err != nil {
		logger.Debug().Err(err).Msg("Failed to decode request body")
		return nil
	}
	return data
}

func isTruthy(value string) bool {
	switch strings.ToLower(value) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, entity.ErrorResponse{
		Status:  status,
		Error:   http.StatusText(status),
		Message: message,
	})
}
