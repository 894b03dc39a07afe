package util

import (
	"context"

	"petshop/pets-service/internal/app/pets/entity"
)

// PetCache интерфейс кеша питомцев по id
// GetPet возвращает (nil, nil) при промахе
type PetCache interface {
	GetPet(ctx context.Context, id int64) (*entity.Pet, error)
	SetPet(ctx context.Context, pet *entity.Pet) error
	DeletePet(ctx context.Context, id int64) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
