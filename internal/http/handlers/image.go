package handlers

import (
	"github.com/remitrack/internal/http/response"

	"github.com/gin-gonic/gin"
)

type updateImageRequest struct {
	Description string `json:"description"`
}

// ListImages returns a remision's evidence photos, newest first.
func (h *Handler) ListImages(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	images, err := h.ImageService.ListByRemision(remisionID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, images)
}

// UploadImage stores one evidence photo against the remision.
func (h *Handler) UploadImage(c *gin.Context) {
	remisionID, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "archivo requerido")
		return
	}

	image, err := h.ImageService.Upload(remisionID, file, c.PostForm("description"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("image_uploaded", "remision_id", remisionID, "image_id", image.ID)
	response.Success(c, image)
}

// UpdateImage replaces a photo's caption.
func (h *Handler) UpdateImage(c *gin.Context) {
	imageID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "parámetros inválidos")
		return
	}

	image, err := h.ImageService.UpdateDescription(imageID, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, image)
}

// DeleteImage removes a photo record and schedules file cleanup.
func (h *Handler) DeleteImage(c *gin.Context) {
	imageID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.ImageService.Delete(imageID); err != nil {
		respondServiceError(c, err)
		return
	}
	requestLog(c).Infow("image_deleted", "image_id", imageID)
	response.Success(c, nil)
}
