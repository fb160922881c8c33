package handlers

import (
	"github.com/remitrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates an operator account.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	user, err := h.AuthService.Register(req.Email, req.Password, req.FullName)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("user_registered", "user_id", user.ID, "email", user.Email)
	response.Success(c, user)
}

// Login authenticates and returns a JWT.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("user_logged_in", "user_id", user.ID)
	response.Success(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, ok := getUserID(c)
	if !ok {
		return
	}
	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "recurso no encontrado")
		return
	}
	response.Success(c, user)
}
