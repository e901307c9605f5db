package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrMissingCompany    = errors.New("company_id requerido")
	ErrTooManyVariants   = errors.New("la composición genera demasiadas variantes")
	ErrUnsupportedFormat = errors.New("formato de exportación no soportado")
)
