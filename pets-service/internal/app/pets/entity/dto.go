package entity

// PetResponse - сериализованный питомец (birthday в формате YYYY-MM-DD)
type PetResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	Available bool   `json:"available"`
	Gender    string `json:"gender"`
	Birthday  string `json:"birthday"`
}

// PetQuery - фильтры списка питомцев из query string.
// Применяется не более одного фильтра: category > name > available > gender
type PetQuery struct {
	Category  string
	Name      string
	Available *bool
	Gender    *Gender
}

// SerializePets сериализует список, пустой список отдаётся как [] а не null
func SerializePets(pets []Pet) []PetResponse {
	results := make([]PetResponse, 0, len(pets))
	for i := range pets {
		results = append(results, pets[i].Serialize())
	}
	return results
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type IndexResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Paths   string `json:"paths"`
}
