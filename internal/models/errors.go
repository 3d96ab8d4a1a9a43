package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indica que la entidad referenciada no existe en el store
	ErrNotFound = errors.New("not found")

	// ErrStoreUnavailable indica que no hay conexión con la base de datos
	ErrStoreUnavailable = errors.New("database unavailable")
)

// ValidationError representa un error de validación sobre un campo concreto
type ValidationError struct {
	Field      string
	Constraint string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Invalid construye un ValidationError
func Invalid(field, constraint, message string) *ValidationError {
	return &ValidationError{Field: field, Constraint: constraint, Message: message}
}

// IsValidation devuelve el ValidationError contenido en err, si existe
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
