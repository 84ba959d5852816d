package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicateKey          = errors.New("ya existe una línea con esa clave SKU")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrWrongState            = errors.New("la solicitud no está en un estado válido para esta acción")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrAlreadyReverted       = errors.New("el evento ya fue revertido")
	ErrRevertNotRevertible   = errors.New("un evento REVERT no puede revertirse")
	ErrMissingComment        = errors.New("el motivo OTHER requiere un comentario")
)
