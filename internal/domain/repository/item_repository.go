package repository

import "github.com/ssilapps/billbook-api/internal/domain/entity"

// ItemRepository persists catalogue items.
type ItemRepository interface {
	Create(item *entity.Item) error
	Update(item *entity.Item) error
	Delete(id string) error
	GetByID(id string) (*entity.Item, error)
	List() ([]*entity.Item, error)
}
