package repository

import "github.com/ssilapps/billbook-api/internal/domain/entity"

// UserRepository persists API users.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
