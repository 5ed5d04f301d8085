package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/application/media"
)

// MediaHandler emite URLs prefirmadas; por aquí nunca pasan bytes de media.
type MediaHandler struct {
	uc *media.UseCase
}

// NewMediaHandler construye el handler.
func NewMediaHandler(uc *media.UseCase) *MediaHandler {
	return &MediaHandler{uc: uc}
}

// Presign godoc
// @Summary      Emitir URL prefirmada de subida o descarga
// @Tags         media
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PresignRequest  true  "Key, content type y operación"
// @Success      200   {object}  dto.PresignResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/media/presign [post]
func (h *MediaHandler) Presign(c *fiber.Ctx) error {
	var in dto.PresignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Key == "" || (in.Operation != "upload" && in.Operation != "download") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "key y operation (upload|download) son requeridos"})
	}
	out, err := h.uc.Presign(c.Context(), in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
