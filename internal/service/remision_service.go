package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/remitrack/internal/constants"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/repository"
)

// RemisionService owns the shipment document lifecycle and the
// pre-staging header attached to it.
type RemisionService struct {
	remisionRepo repository.RemisionRepository
	infoRepo     repository.PreembarqueInfoRepository
}

// NewRemisionService creates the remision service.
func NewRemisionService(
	remisionRepo repository.RemisionRepository,
	infoRepo repository.PreembarqueInfoRepository,
) *RemisionService {
	return &RemisionService{
		remisionRepo: remisionRepo,
		infoRepo:     infoRepo,
	}
}

// CreateRemisionInput carries a new document.
type CreateRemisionInput struct {
	NumeroRemision string
	Cliente        string
	Observaciones  string
}

// ListRemisionesInput carries list filters.
type ListRemisionesInput struct {
	Page     int
	PageSize int
	Estado   string
	Search   string
}

// PreembarqueInfoInput is a partial update of the pre-staging header.
// Nil fields keep their current value.
type PreembarqueInfoInput struct {
	SupervisorObra *string
	Operador       *string
	Telefono       *string
	PlacasCamion   *string
	Transportista  *string
	Barrotes       *string
}

var validEstados = map[string]bool{
	constants.RemisionStatusPendiente: true,
	constants.RemisionStatusEmbarcada: true,
	constants.RemisionStatusEntregada: true,
}

// Create registers a new remision in estado pendiente. The document
// number is unique across the system.
func (s *RemisionService) Create(input CreateRemisionInput) (*models.Remision, error) {
	numero := strings.TrimSpace(input.NumeroRemision)
	if numero == "" {
		return nil, fmt.Errorf("%w: numero_remision is required", ErrInvalidInput)
	}
	cliente := strings.TrimSpace(input.Cliente)
	if cliente == "" {
		return nil, fmt.Errorf("%w: cliente is required", ErrInvalidInput)
	}

	existing, err := s.remisionRepo.FindByNumero(numero)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateNumeroError{Numero: numero}
	}

	remision := &models.Remision{
		NumeroRemision: numero,
		Cliente:        cliente,
		Estado:         constants.RemisionStatusPendiente,
		Observaciones:  strings.TrimSpace(input.Observaciones),
		FechaCreacion:  time.Now(),
	}
	if err := s.remisionRepo.Create(remision); err != nil {
		return nil, err
	}
	return remision, nil
}

// List returns remisiones newest first with optional estado and text
// filters.
func (s *RemisionService) List(input ListRemisionesInput) ([]models.Remision, int64, error) {
	if input.Estado != "" && !validEstados[input.Estado] {
		return nil, 0, fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, input.Estado)
	}
	return s.remisionRepo.List(repository.RemisionListFilter{
		Page:     input.Page,
		PageSize: input.PageSize,
		Estado:   input.Estado,
		Search:   strings.TrimSpace(input.Search),
	})
}

// Get returns one remision without its pieces.
func (s *RemisionService) Get(id uint) (*models.Remision, error) {
	remision, err := s.remisionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	return remision, nil
}

// GetWithPiezas returns one remision with its registrations in scan
// order.
func (s *RemisionService) GetWithPiezas(id uint) (*models.Remision, error) {
	remision, err := s.remisionRepo.GetByIDWithPiezas(id)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	return remision, nil
}

// UpdateEstado moves a remision through pendiente / embarcada /
// entregada.
func (s *RemisionService) UpdateEstado(id uint, estado string) (*models.Remision, error) {
	if !validEstados[estado] {
		return nil, fmt.Errorf("%w: unknown estado %q", ErrInvalidInput, estado)
	}
	remision, err := s.remisionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	if err := s.remisionRepo.UpdateEstado(id, estado); err != nil {
		return nil, err
	}
	remision.Estado = estado
	return remision, nil
}

// UpdateObservaciones replaces the free-text notes.
func (s *RemisionService) UpdateObservaciones(id uint, observaciones string) (*models.Remision, error) {
	remision, err := s.remisionRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	if err := s.remisionRepo.UpdateObservaciones(id, observaciones); err != nil {
		return nil, err
	}
	remision.Observaciones = observaciones
	return remision, nil
}

// GetPreembarqueInfo returns the pre-staging header or nil when none
// has been captured yet.
func (s *RemisionService) GetPreembarqueInfo(remisionID uint) (*models.PreembarqueInfo, error) {
	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	return s.infoRepo.GetByRemisionID(remisionID)
}

// UpsertPreembarqueInfo merges the provided fields into the remision's
// pre-staging header, creating it on first write. Each field can be
// set independently; omitted fields survive the update.
func (s *RemisionService) UpsertPreembarqueInfo(remisionID uint, input PreembarqueInfoInput) (*models.PreembarqueInfo, error) {
	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}

	info, err := s.infoRepo.GetByRemisionID(remisionID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		info = &models.PreembarqueInfo{RemisionID: remisionID}
	}

	applyStringField(&info.SupervisorObra, input.SupervisorObra)
	applyStringField(&info.Operador, input.Operador)
	applyStringField(&info.Telefono, input.Telefono)
	applyStringField(&info.PlacasCamion, input.PlacasCamion)
	applyStringField(&info.Transportista, input.Transportista)
	applyStringField(&info.Barrotes, input.Barrotes)

	if err := s.infoRepo.Upsert(info); err != nil {
		return nil, err
	}
	return s.infoRepo.GetByRemisionID(remisionID)
}

func applyStringField(dst *string, src *string) {
	if src != nil {
		*dst = strings.TrimSpace(*src)
	}
}
