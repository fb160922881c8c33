package handlers

import (
	"strconv"

	"github.com/remitrack/internal/http/response"
	"github.com/remitrack/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getUserID reads the authenticated user id the JWT middleware stored.
func getUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, "no autorizado")
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			response.BadRequest(c, "usuario inválido")
			return 0, false
		}
		return uint(v), true
	default:
		response.Error(c, response.CodeInternal, "usuario inválido")
		return 0, false
	}
}

// pathID parses a numeric :param, answering the request on failure.
func pathID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "identificador inválido")
		return 0, false
	}
	return uint(id), true
}

// requestLog returns a logger carrying the request id.
func requestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}
