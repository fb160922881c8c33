package handlers

import (
	"strconv"

	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/service"

	"github.com/gin-gonic/gin"
)

type createRemisionRequest struct {
	NumeroRemision string `json:"numero_remision" binding:"required"`
	Cliente        string `json:"cliente" binding:"required"`
	Observaciones  string `json:"observaciones"`
}

type updateEstadoRequest struct {
	Estado string `json:"estado" binding:"required"`
}

type updateObservacionesRequest struct {
	Observaciones string `json:"observaciones"`
}

type preembarqueInfoRequest struct {
	SupervisorObra *string `json:"supervisor_obra"`
	Operador       *string `json:"operador"`
	Telefono       *string `json:"telefono"`
	PlacasCamion   *string `json:"placas_camion"`
	Transportista  *string `json:"transportista"`
	Barrotes       *string `json:"barrotes"`
}

// ListRemisiones returns documents newest first with optional filters.
func (h *Handler) ListRemisiones(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	remisiones, total, err := h.RemisionService.List(service.ListRemisionesInput{
		Page:     page,
		PageSize: pageSize,
		Estado:   c.Query("estado"),
		Search:   c.Query("search"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	totalPage := (total + int64(pageSize) - 1) / int64(pageSize)
	response.SuccessWithPage(c, remisiones, response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	})
}

// CreateRemision registers a new shipment document.
func (h *Handler) CreateRemision(c *gin.Context) {
	var req createRemisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	remision, err := h.RemisionService.Create(service.CreateRemisionInput{
		NumeroRemision: req.NumeroRemision,
		Cliente:        req.Cliente,
		Observaciones:  req.Observaciones,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("remision_created", "remision_id", remision.ID, "numero", remision.NumeroRemision)
	response.Success(c, remision)
}

// GetRemision returns one document with its registrations.
func (h *Handler) GetRemision(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	remision, err := h.RemisionService.GetWithPiezas(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, remision)
}

// UpdateRemisionEstado transitions a document's estado.
func (h *Handler) UpdateRemisionEstado(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateEstadoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	remision, err := h.RemisionService.UpdateEstado(id, req.Estado)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("remision_estado_updated", "remision_id", id, "estado", req.Estado)
	response.Success(c, remision)
}

// UpdateRemisionObservaciones replaces the free-text notes.
func (h *Handler) UpdateRemisionObservaciones(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateObservacionesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	remision, err := h.RemisionService.UpdateObservaciones(id, req.Observaciones)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, remision)
}

// GetPreembarqueInfo returns the pre-staging header, null when none.
func (h *Handler) GetPreembarqueInfo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	info, err := h.RemisionService.GetPreembarqueInfo(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, info)
}

// UpsertPreembarqueInfo merges the provided header fields.
func (h *Handler) UpsertPreembarqueInfo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req preembarqueInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	info, err := h.RemisionService.UpsertPreembarqueInfo(id, service.PreembarqueInfoInput{
		SupervisorObra: req.SupervisorObra,
		Operador:       req.Operador,
		Telefono:       req.Telefono,
		PlacasCamion:   req.PlacasCamion,
		Transportista:  req.Transportista,
		Barrotes:       req.Barrotes,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, info)
}
