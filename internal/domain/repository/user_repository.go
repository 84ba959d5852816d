package repository

import "github.com/threadkeep/threadstock-api/internal/domain/entity"

// UserRepository define el puerto de usuarios (respaldo del colaborador
// externo de roles; el núcleo solo recibe el rol ya resuelto).
type UserRepository interface {
	Create(user *entity.User) error
	// FindByUsername devuelve nil (sin error) si no existe.
	FindByUsername(username string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
	List() ([]*entity.User, error)
}
