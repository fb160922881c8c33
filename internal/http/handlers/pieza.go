package handlers

import (
	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/service"

	"github.com/gin-gonic/gin"
)

type registerPiezaRequest struct {
	Marca    string  `json:"marca" binding:"required"`
	Cantidad int     `json:"cantidad"`
	Folio    *string `json:"folio"`
}

type registerLoteRequest struct {
	Marca       string `json:"marca" binding:"required"`
	FolioInicio int    `json:"folio_inicio" binding:"required"`
	FolioFin    int    `json:"folio_fin" binding:"required"`
}

type updatePiezaRequest struct {
	Marca    string  `json:"marca" binding:"required"`
	Cantidad int     `json:"cantidad" binding:"required"`
	Folio    *string `json:"folio"`
}

// ListPiezas returns a remision's registrations in scan order.
func (h *Handler) ListPiezas(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	piezas, err := h.PiezaService.ListByRemision(remisionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, piezas)
}

// RegisterPieza registers one scanned piece.
func (h *Handler) RegisterPieza(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req registerPiezaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	pieza, err := h.PiezaService.RegisterPieza(remisionID, service.RegisterPiezaInput{
		Marca:    req.Marca,
		Cantidad: req.Cantidad,
		Folio:    req.Folio,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("pieza_registered", "remision_id", remisionID, "pieza_id", pieza.ID, "marca", pieza.Marca)
	response.Success(c, pieza)
}

// RegisterLote registers a consecutive folio range as one entry.
func (h *Handler) RegisterLote(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req registerLoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}
	if req.FolioInicio < 1 || req.FolioFin < req.FolioInicio {
		response.BadRequest(c, "el rango de folios debe cumplir 1 <= inicio <= fin")
		return
	}

	pieza, err := h.PiezaService.RegisterLote(remisionID, service.RegisterLoteInput{
		Marca:       req.Marca,
		FolioInicio: req.FolioInicio,
		FolioFin:    req.FolioFin,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("lote_registered",
		"remision_id", remisionID,
		"pieza_id", pieza.ID,
		"marca", pieza.Marca,
		"cantidad", pieza.Cantidad,
	)
	response.Success(c, pieza)
}

// UpdatePieza edits one registration in place.
func (h *Handler) UpdatePieza(c *gin.Context) {
	piezaID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updatePiezaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	pieza, err := h.PiezaService.UpdatePieza(piezaID, service.UpdatePiezaInput{
		Marca:    req.Marca,
		Cantidad: req.Cantidad,
		Folio:    req.Folio,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, pieza)
}

// DeletePieza removes one registration.
func (h *Handler) DeletePieza(c *gin.Context) {
	piezaID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.PiezaService.DeletePieza(piezaID); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("pieza_deleted", "pieza_id", piezaID)
	response.Success(c, nil)
}
