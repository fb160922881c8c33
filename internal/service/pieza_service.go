package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/remitrack/internal/logger"
	"github.com/remitrack/internal/models"
	"github.com/remitrack/internal/queue"
	"github.com/remitrack/internal/repository"
)

// PiezaService owns piece registration: individual scans, batch ranges,
// edits and removals. Every path that can collide with an existing
// registration checks before writing so a double scan never lands twice.
type PiezaService struct {
	piezaRepo    repository.PiezaRepository
	remisionRepo repository.RemisionRepository
	queueClient  *queue.Client
}

// NewPiezaService creates the piece registry service.
func NewPiezaService(
	piezaRepo repository.PiezaRepository,
	remisionRepo repository.RemisionRepository,
	queueClient *queue.Client,
) *PiezaService {
	return &PiezaService{
		piezaRepo:    piezaRepo,
		remisionRepo: remisionRepo,
		queueClient:  queueClient,
	}
}

// RegisterPiezaInput carries one individual registration.
type RegisterPiezaInput struct {
	Marca    string
	Cantidad int
	Folio    *string
}

// RegisterLoteInput carries one batch range registration.
type RegisterLoteInput struct {
	Marca       string
	FolioInicio int
	FolioFin    int
}

// UpdatePiezaInput carries an edit to an existing registration. The
// quantity is taken as given, never re-derived from the folio token.
type UpdatePiezaInput struct {
	Marca    string
	Cantidad int
	Folio    *string
}

// RegisterPieza registers one piece on a remision. A (marca, folio)
// pair that already exists in the same remision is rejected; pieces
// without folio are never treated as duplicates of each other.
func (s *PiezaService) RegisterPieza(remisionID uint, input RegisterPiezaInput) (*models.PiezaEmbarcada, error) {
	marca := strings.TrimSpace(input.Marca)
	if marca == "" {
		return nil, fmt.Errorf("%w: marca is required", ErrInvalidInput)
	}
	cantidad := input.Cantidad
	if cantidad < 1 {
		cantidad = 1
	}

	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}

	folio := normalizeFolio(input.Folio)
	if folio != nil {
		existing, err := s.piezaRepo.FindByMarcaFolio(remisionID, marca, *folio)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &DuplicatePiezaError{Marca: marca, Folio: *folio}
		}
	}

	pieza := &models.PiezaEmbarcada{
		RemisionID:        remisionID,
		Marca:             marca,
		Cantidad:          cantidad,
		Folio:             folio,
		TimestampRegistro: time.Now(),
	}
	if err := s.piezaRepo.Create(pieza); err != nil {
		return nil, err
	}

	s.scheduleRecount(remisionID)
	return pieza, nil
}

// RegisterLote registers a consecutive folio range as a single row
// whose folio holds the "inicio-fin" token and whose quantity is the
// range width. The whole range is validated before anything is
// written: first the exact range token, then every folio in ascending
// order against individual registrations. The first conflict aborts
// the batch.
func (s *PiezaService) RegisterLote(remisionID uint, input RegisterLoteInput) (*models.PiezaEmbarcada, error) {
	marca := strings.TrimSpace(input.Marca)
	if marca == "" {
		return nil, fmt.Errorf("%w: marca is required", ErrInvalidInput)
	}
	if input.FolioInicio < 1 || input.FolioFin < input.FolioInicio {
		return nil, fmt.Errorf("%w: folio range must satisfy 1 <= inicio <= fin", ErrInvalidInput)
	}

	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}

	rango := fmt.Sprintf("%d-%d", input.FolioInicio, input.FolioFin)
	existing, err := s.piezaRepo.FindByMarcaFolio(remisionID, marca, rango)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &DuplicateLoteError{Marca: marca, Rango: rango}
	}

	for folio := input.FolioInicio; folio <= input.FolioFin; folio++ {
		token := strconv.Itoa(folio)
		existing, err := s.piezaRepo.FindByMarcaFolio(remisionID, marca, token)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, &FolioConflictError{Marca: marca, Folio: token}
		}
	}

	pieza := &models.PiezaEmbarcada{
		RemisionID:        remisionID,
		Marca:             marca,
		Cantidad:          input.FolioFin - input.FolioInicio + 1,
		Folio:             &rango,
		TimestampRegistro: time.Now(),
	}
	if err := s.piezaRepo.Create(pieza); err != nil {
		return nil, err
	}

	s.scheduleRecount(remisionID)
	return pieza, nil
}

// ListByRemision returns a remision's registrations in scan order.
func (s *PiezaService) ListByRemision(remisionID uint) ([]models.PiezaEmbarcada, error) {
	remision, err := s.remisionRepo.GetByID(remisionID)
	if err != nil {
		return nil, err
	}
	if remision == nil {
		return nil, ErrNotFound
	}
	return s.piezaRepo.ListByRemision(remisionID)
}

// UpdatePieza edits a registration in place. The duplicate check
// excludes the row being edited, so re-saving a piece with its own
// (marca, folio) is not a conflict.
func (s *PiezaService) UpdatePieza(piezaID uint, input UpdatePiezaInput) (*models.PiezaEmbarcada, error) {
	marca := strings.TrimSpace(input.Marca)
	if marca == "" {
		return nil, fmt.Errorf("%w: marca is required", ErrInvalidInput)
	}
	if input.Cantidad < 1 {
		return nil, fmt.Errorf("%w: cantidad must be positive", ErrInvalidInput)
	}

	pieza, err := s.piezaRepo.GetByID(piezaID)
	if err != nil {
		return nil, err
	}
	if pieza == nil {
		return nil, ErrNotFound
	}

	folio := normalizeFolio(input.Folio)
	if folio != nil {
		other, err := s.piezaRepo.FindOtherByMarcaFolio(pieza.RemisionID, marca, *folio, piezaID)
		if err != nil {
			return nil, err
		}
		if other != nil {
			return nil, &DuplicatePiezaError{Marca: marca, Folio: *folio}
		}
	}

	pieza.Marca = marca
	pieza.Cantidad = input.Cantidad
	pieza.Folio = folio
	if err := s.piezaRepo.Update(pieza); err != nil {
		return nil, err
	}

	s.scheduleRecount(pieza.RemisionID)
	return pieza, nil
}

// DeletePieza removes a registration. Deleting an id that does not
// exist reports ErrNotFound instead of succeeding silently.
func (s *PiezaService) DeletePieza(piezaID uint) error {
	pieza, err := s.piezaRepo.GetByID(piezaID)
	if err != nil {
		return err
	}
	if pieza == nil {
		return ErrNotFound
	}

	rows, err := s.piezaRepo.Delete(piezaID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	s.scheduleRecount(pieza.RemisionID)
	return nil
}

// RecountPiezas recomputes the remision's cached total from its rows.
// Called by the queue worker and used inline when the queue is off.
func (s *PiezaService) RecountPiezas(remisionID uint) error {
	total, err := s.piezaRepo.SumCantidad(remisionID)
	if err != nil {
		return err
	}
	return s.remisionRepo.UpdateTotalPiezas(remisionID, total)
}

// scheduleRecount refreshes total_piezas after a mutation. The cached
// total is eventually consistent: with the queue enabled it catches up
// when the worker runs, without it the recount happens inline.
func (s *PiezaService) scheduleRecount(remisionID uint) {
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueRemisionRecount(queue.RemisionRecountPayload{RemisionID: remisionID})
		if err == nil {
			return
		}
		logger.Warnw("pieza_recount_enqueue_failed", "remision_id", remisionID, "error", err)
	}
	if err := s.RecountPiezas(remisionID); err != nil {
		logger.Warnw("pieza_recount_failed", "remision_id", remisionID, "error", err)
	}
}

// normalizeFolio trims the folio and maps empty to absent.
func normalizeFolio(folio *string) *string {
	if folio == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*folio)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
