package service

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the service layer. Handlers map these onto
// HTTP status codes; everything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserDisabled       = errors.New("user disabled")
	ErrWeakPassword       = errors.New("password does not meet the policy")
)

// DuplicateNumeroError reports an attempt to create a remision whose
// document number already exists.
type DuplicateNumeroError struct {
	Numero string
}

func (e *DuplicateNumeroError) Error() string {
	return fmt.Sprintf("ya existe una remisión con el número %q", e.Numero)
}

// DuplicatePiezaError reports an exact (marca, folio) collision inside
// one remision. The message carries both tokens so clients can surface
// it verbatim to the scanning operator.
type DuplicatePiezaError struct {
	Marca string
	Folio string
}

func (e *DuplicatePiezaError) Error() string {
	return fmt.Sprintf("ya existe una pieza con marca %q y folio %q en este pre-embarque", e.Marca, e.Folio)
}

// DuplicateLoteError reports a batch whose exact range token was
// already registered for the same marca.
type DuplicateLoteError struct {
	Marca string
	Rango string
}

func (e *DuplicateLoteError) Error() string {
	return fmt.Sprintf("ya existe un lote con marca %q y rango de folios %q en este pre-embarque", e.Marca, e.Rango)
}

// FolioConflictError reports the first folio inside a requested batch
// range that already exists as an individual registration.
type FolioConflictError struct {
	Marca string
	Folio string
}

func (e *FolioConflictError) Error() string {
	return fmt.Sprintf("el folio %q de la marca %q ya está registrado individualmente en este pre-embarque", e.Folio, e.Marca)
}
