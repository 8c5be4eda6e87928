package repository

import "github.com/ssilapps/billbook-api/internal/domain/entity"

// PartyRepository persists trading parties.
type PartyRepository interface {
	Create(party *entity.Party) error
	Update(party *entity.Party) error
	Delete(id string) error
	GetByID(id string) (*entity.Party, error)
	List() ([]*entity.Party, error)
}
