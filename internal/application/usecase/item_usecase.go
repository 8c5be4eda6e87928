package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ssilapps/billbook-api/internal/application/dto"
	"github.com/ssilapps/billbook-api/internal/domain"
	"github.com/ssilapps/billbook-api/internal/domain/entity"
	"github.com/ssilapps/billbook-api/internal/domain/repository"
	"github.com/ssilapps/billbook-api/pkg/money"
)

// defaultUnit matches the rental-billing origin of the catalogue, where
// most items are charged per month.
const defaultUnit = "Month"

// ItemUseCase manages the billing catalogue.
type ItemUseCase struct {
	itemRepo repository.ItemRepository
}

// NewItemUseCase builds the use case.
func NewItemUseCase(itemRepo repository.ItemRepository) *ItemUseCase {
	return &ItemUseCase{itemRepo: itemRepo}
}

// CreateItem adds a catalogue item.
func (uc *ItemUseCase) CreateItem(ctx context.Context, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	now := time.Now()
	item := &entity.Item{
		ID:           uuid.New().String(),
		Name:         in.Name,
		HSNCode:      in.HSNCode,
		Unit:         itemUnit(in.Unit),
		SaleRate:     in.SaleRate,
		PurchaseRate: in.PurchaseRate,
		GSTRate:      in.GSTRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.itemRepo.Create(item); err != nil {
		return nil, err
	}
	return itemResponse(item), nil
}

// UpdateItem edits a catalogue item. Existing invoice lines keep the rate
// they were billed at; only future drafts see the new one.
func (uc *ItemUseCase) UpdateItem(ctx context.Context, id string, in dto.ItemRequest) (*dto.ItemResponse, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	existing, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrNotFound
	}
	item := *existing
	item.Name = in.Name
	item.HSNCode = in.HSNCode
	item.Unit = itemUnit(in.Unit)
	item.SaleRate = in.SaleRate
	item.PurchaseRate = in.PurchaseRate
	item.GSTRate = in.GSTRate
	item.UpdatedAt = time.Now()
	if err := uc.itemRepo.Update(&item); err != nil {
		return nil, err
	}
	return itemResponse(&item), nil
}

// DeleteItem removes a catalogue item. Invoice lines copied its fields at
// billing time, so history is unaffected.
func (uc *ItemUseCase) DeleteItem(ctx context.Context, id string) error {
	existing, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}
	return uc.itemRepo.Delete(id)
}

// GetItem returns one catalogue item.
func (uc *ItemUseCase) GetItem(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return itemResponse(item), nil
}

// ListItems returns the full catalogue.
func (uc *ItemUseCase) ListItems(ctx context.Context) ([]*dto.ItemResponse, error) {
	items, err := uc.itemRepo.List()
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, itemResponse(item))
	}
	return out, nil
}

func validateItem(in dto.ItemRequest) error {
	if in.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if err := money.RequireNonNegative("saleRate", in.SaleRate); err != nil {
		return err
	}
	if err := money.RequireNonNegative("purchaseRate", in.PurchaseRate); err != nil {
		return err
	}
	if in.GSTRate.IsNegative() {
		return fmt.Errorf("%w: gstRate cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

func itemUnit(unit string) string {
	if unit == "" {
		return defaultUnit
	}
	return unit
}

func itemResponse(i *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:           i.ID,
		Name:         i.Name,
		HSNCode:      i.HSNCode,
		Unit:         i.Unit,
		SaleRate:     i.SaleRate,
		PurchaseRate: i.PurchaseRate,
		GSTRate:      i.GSTRate,
	}
}
