package handlers

import (
	"errors"

	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/service"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto the response envelope.
// Duplicate and conflict errors carry their own message so the scanner
// operator sees exactly which marca and folio collided.
func respondServiceError(c *gin.Context, err error) {
	var dupPieza *service.DuplicatePiezaError
	var dupLote *service.DuplicateLoteError
	var folioConflict *service.FolioConflictError
	var dupNumero *service.DuplicateNumeroError

	switch {
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "recurso no encontrado")
	case errors.As(err, &dupPieza):
		response.Error(c, response.CodeConflict, dupPieza.Error())
	case errors.As(err, &dupLote):
		response.Error(c, response.CodeConflict, dupLote.Error())
	case errors.As(err, &folioConflict):
		response.Error(c, response.CodeConflict, folioConflict.Error())
	case errors.As(err, &dupNumero):
		response.Error(c, response.CodeConflict, dupNumero.Error())
	case errors.Is(err, service.ErrEmailTaken):
		response.Error(c, response.CodeConflict, "el correo ya está registrado")
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "credenciales inválidas")
	case errors.Is(err, service.ErrUserDisabled):
		response.Error(c, response.CodeForbidden, "cuenta deshabilitada")
	case errors.Is(err, service.ErrWeakPassword):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrInvalidInput):
		response.BadRequest(c, err.Error())
	default:
		requestLog(c).Warnw("handler_internal_error", "path", c.FullPath(), "error", err)
		response.Error(c, response.CodeInternal, "error interno")
	}
}
