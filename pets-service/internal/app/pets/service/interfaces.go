package service

import (
	"context"

	"petshop/pets-service/internal/app/pets/entity"
)

type PetServiceInterface interface {
	ListPets(ctx context.Context, query entity.PetQuery) ([]entity.Pet, error)
	GetPet(ctx context.Context, id int64) (*entity.Pet, error)
	CreatePet(ctx context.Context, data any) (*entity.Pet, error)
	UpdatePet(ctx context.Context, id int64, data any) (*entity.Pet, error)
	DeletePet(ctx context.Context, id int64) error
	PurchasePet(ctx context.Context, id int64) (*entity.Pet, error)
}

// InventoryRefresher используется cron задачей processor
type InventoryRefresher interface {
	RefreshInventory(ctx context.Context) error
}
