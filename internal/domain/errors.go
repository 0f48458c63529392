package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrStorage      = errors.New("almacenamiento de imagen")
	ErrPersistence  = errors.New("persistencia")
)
