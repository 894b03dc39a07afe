package entity

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPetData() map[string]any {
	return map[string]any{
		"name":      "Fido",
		"category":  "dog",
		"available": true,
		"gender":    "MALE",
		"birthday":  "2020-01-01",
	}
}

func decode(t *testing.T, body string) any {
	t.Helper()
	var data any
	require.NoError(t, json.Unmarshal([]byte(body), &data))
	return data
}

// ==================== Gender ====================

func TestParseGender(t *testing.T) {
	for _, g := range Genders {
		parsed, ok := ParseGender(string(g))
		assert.True(t, ok)
		assert.Equal(t, g, parsed)
	}

	for _, name := range []string{"male", "Female", "unknown", "", "OTHER"} {
		_, ok := ParseGender(name)
		assert.False(t, ok, name)
	}
}

func TestGender_Valid(t *testing.T) {
	assert.True(t, GenderFemale.Valid())
	assert.False(t, Gender("female").Valid())
}

// ==================== Serialize ====================

func TestPet_Serialize(t *testing.T) {
	pet := &Pet{
		ID:        7,
		Name:      "Kitty",
		Category:  "cat",
		Available: false,
		Gender:    GenderFemale,
		Birthday:  time.Date(2019, time.March, 5, 0, 0, 0, 0, time.UTC),
	}

	got := pet.Serialize()

	assert.Equal(t, PetResponse{
		ID:        7,
		Name:      "Kitty",
		Category:  "cat",
		Available: false,
		Gender:    "FEMALE",
		Birthday:  "2019-03-05",
	}, got)

	body, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"Kitty","category":"cat","available":false,"gender":"FEMALE","birthday":"2019-03-05"}`, string(body))
}

func TestSerializePets_EmptyIsArray(t *testing.T) {
	body, err := json.Marshal(SerializePets(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(body))
}

// ==================== Deserialize ====================

func TestPet_Deserialize_Success(t *testing.T) {
	var pet Pet

	err := pet.Deserialize(validPetData())

	require.NoError(t, err)
	assert.Equal(t, "Fido", pet.Name)
	assert.Equal(t, "dog", pet.Category)
	assert.True(t, pet.Available)
	assert.Equal(t, GenderMale, pet.Gender)
	assert.Equal(t, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), pet.Birthday)
	assert.Zero(t, pet.ID)
}

func TestPet_Deserialize_IgnoresClientID(t *testing.T) {
	pet := Pet{ID: 42}
	data := validPetData()
	data["id"] = float64(999)

	require.NoError(t, pet.Deserialize(data))

	assert.Equal(t, int64(42), pet.ID)
}

func TestPet_Deserialize_RoundTrip(t *testing.T) {
	original := &Pet{
		ID:        3,
		Name:      "Rex",
		Category:  "dog",
		Available: true,
		Gender:    GenderUnknown,
		Birthday:  time.Date(2018, time.December, 31, 0, 0, 0, 0, time.UTC),
	}

	body, err := json.Marshal(original.Serialize())
	require.NoError(t, err)

	var restored Pet
	require.NoError(t, restored.Deserialize(decode(t, string(body))))

	assert.Equal(t, original.Name, restored.Name)
	assert.Equal(t, original.Category, restored.Category)
	assert.Equal(t, original.Available, restored.Available)
	assert.Equal(t, original.Gender, restored.Gender)
	assert.Equal(t, original.Birthday, restored.Birthday)
	assert.Zero(t, restored.ID)
}

func TestPet_Deserialize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    func() any
		message string
	}{
		{
			name:    "nil body",
			data:    func() any { return nil },
			message: "body of request contained bad or no data",
		},
		{
			name:    "raw string",
			data:    func() any { return "this is not a pet" },
			message: "body of request contained bad or no data",
		},
		{
			name:    "array",
			data:    func() any { return []any{validPetData()} },
			message: "body of request contained bad or no data",
		},
		{
			name: "missing name",
			data: func() any {
				d := validPetData()
				delete(d, "name")
				return d
			},
			message: "missing name",
		},
		{
			name: "missing available",
			data: func() any {
				d := validPetData()
				delete(d, "available")
				return d
			},
			message: "missing available",
		},
		{
			name: "missing key wins over bad boolean",
			data: func() any {
				d := validPetData()
				d["available"] = "true"
				delete(d, "birthday")
				return d
			},
			message: "missing birthday",
		},
		{
			name: "stringly typed boolean",
			data: func() any {
				d := validPetData()
				d["available"] = "true"
				return d
			},
			message: "invalid type for boolean [available]: string",
		},
		{
			name: "null boolean",
			data: func() any {
				d := validPetData()
				d["available"] = nil
				return d
			},
			message: "invalid type for boolean [available]: null",
		},
		{
			name: "lower case gender",
			data: func() any {
				d := validPetData()
				d["gender"] = "male"
				return d
			},
			message: "invalid attribute: male",
		},
		{
			name: "unknown gender",
			data: func() any {
				d := validPetData()
				d["gender"] = "OTHER"
				return d
			},
			message: "invalid attribute: OTHER",
		},
		{
			name: "bad birthday",
			data: func() any {
				d := validPetData()
				d["birthday"] = "01/01/2020"
				return d
			},
			message: "invalid birthday",
		},
		{
			name: "numeric name",
			data: func() any {
				d := validPetData()
				d["name"] = float64(12)
				return d
			},
			message: "invalid type for string [name]: number",
		},
		{
			name: "empty category",
			data: func() any {
				d := validPetData()
				d["category"] = ""
				return d
			},
			message: "category is required",
		},
		{
			name: "name too long",
			data: func() any {
				d := validPetData()
				d["name"] = strings.Repeat("x", 64)
				return d
			},
			message: "name must be at most 63 characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pet := Pet{ID: 5, Name: "Unchanged"}

			err := pet.Deserialize(tt.data())

			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPet)
			assert.Contains(t, err.Error(), tt.message)
			assert.Equal(t, "Unchanged", pet.Name)
		})
	}
}
