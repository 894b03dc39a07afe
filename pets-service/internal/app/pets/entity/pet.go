package entity

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат birthday (ISO-8601, только дата)
const DateLayout = "2006-01-02"

// ErrInvalidPet оборачивает все ошибки валидации входных данных
var ErrInvalidPet = errors.New("invalid pet")

// Порядок важен: первым сообщаем о первом отсутствующем поле
var requiredFields = []string{"name", "category", "available", "gender", "birthday"}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Serialize возвращает представление питомца для ответа API
func (p *Pet) Serialize() PetResponse {
	return PetResponse{
		ID:        p.ID,
		Name:      p.Name,
		Category:  p.Category,
		Available: p.Available,
		Gender:    p.Gender.String(),
		Birthday:  p.Birthday.Format(DateLayout),
	}
}

// Deserialize заполняет поля питомца из декодированного JSON тела запроса.
// data должен быть объектом (map[string]any); ID никогда не берётся из входных данных.
// При ошибке питомец не изменяется.
func (p *Pet) Deserialize(data any) error {
	fields, ok := data.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: body of request contained bad or no data", ErrInvalidPet)
	}

	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidPet, key)
		}
	}

	name, err := stringField(fields, "name")
	if err != nil {
		return err
	}
	category, err := stringField(fields, "category")
	if err != nil {
		return err
	}

	// "true" строкой не принимаем, только настоящий bool
	available, ok := fields["available"].(bool)
	if !ok {
		return fmt.Errorf("%w: invalid type for boolean [available]: %s", ErrInvalidPet, jsonType(fields["available"]))
	}

	genderName, _ := fields["gender"].(string)
	gender, ok := ParseGender(genderName)
	if !ok {
		return fmt.Errorf("%w: invalid attribute: %v", ErrInvalidPet, fields["gender"])
	}

	birthdayStr, ok := fields["birthday"].(string)
	if !ok {
		return fmt.Errorf("%w: invalid birthday: %v", ErrInvalidPet, fields["birthday"])
	}
	birthday, err := time.Parse(DateLayout, birthdayStr)
	if err != nil {
		return fmt.Errorf("%w: invalid birthday: %s", ErrInvalidPet, birthdayStr)
	}

	candidate := Pet{
		ID:        p.ID,
		Name:      name,
		Category:  category,
		Available: available,
		Gender:    gender,
		Birthday:  birthday,
	}
	if err := validate.Struct(candidate); err != nil {
		return formatValidationError(err)
	}

	*p = candidate
	return nil
}

func stringField(fields map[string]any, key string) (string, error) {
	value, ok := fields[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: invalid type for string [%s]: %s", ErrInvalidPet, key, jsonType(fields[key]))
	}
	return value, nil
}

// jsonType называет тип значения так, как он выглядел в JSON
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}

func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrInvalidPet, fe.Field())
		case "max":
			return fmt.Errorf("%w: %s must be at most %s characters", ErrInvalidPet, fe.Field(), fe.Param())
		default:
			return fmt.Errorf("%w: %s is %s", ErrInvalidPet, fe.Field(), fe.Tag())
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidPet, err)
}
