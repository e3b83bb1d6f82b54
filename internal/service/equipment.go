package service

import (
	"context"

	"pujcovna-backend/internal/domain"
	"pujcovna-backend/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int32) (*domain.Equipment, error) {
	return s.equipmentRepo.GetByID(ctx, id)
}

func (s *equipmentService) CreateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipmentRepo.Create(ctx, eq)
}

func (s *equipmentService) UpdateEquipment(ctx context.Context, eq *domain.Equipment) error {
	if err := validateEquipment(eq); err != nil {
		return err
	}
	return s.equipmentRepo.Update(ctx, eq)
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int32) error {
	return s.equipmentRepo.Delete(ctx, id)
}

func (s *equipmentService) ReorderEquipment(ctx context.Context, orders []domain.SortOrderUpdate) error {
	return s.equipmentRepo.UpdateSortOrders(ctx, orders)
}

func validateEquipment(eq *domain.Equipment) error {
	if eq.Name == "" {
		return &domain.ValidationError{Field: "name", Message: "name is required"}
	}
	if eq.ImageURL == "" {
		return &domain.ValidationError{Field: "imageUrl", Message: "image is required"}
	}
	if len(eq.Categories) == 0 {
		return &domain.ValidationError{Field: "categories", Message: "at least one category is required"}
	}
	if eq.Price1To3Days < 0 || eq.Price4To7Days < 0 || eq.Price8PlusDays < 0 {
		return &domain.ValidationError{Field: "price", Message: "prices must be non-negative"}
	}
	if eq.Deposit < 0 {
		return &domain.ValidationError{Field: "deposit", Message: "deposit must be non-negative"}
	}
	if eq.Stock < 0 {
		return &domain.ValidationError{Field: "stock", Message: "stock must be non-negative"}
	}
	return nil
}
