package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/application/usecase"
)

// ProgramHandler maneja lecturas de Program. Los programs no se crean ni
// borran por esta superficie: nacen y mueren con su Batch 1:1.
type ProgramHandler struct {
	uc *usecase.ProgramUseCase
}

// NewProgramHandler construye el handler.
func NewProgramHandler(uc *usecase.ProgramUseCase) *ProgramHandler {
	return &ProgramHandler{uc: uc}
}

// GetByID godoc
// @Summary      Obtener program por ID
// @Tags         programs
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del program"
// @Success      200  {object}  dto.ProgramResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/programs/{id} [get]
func (h *ProgramHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "program no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar programs de la organización del token
// @Tags         programs
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProgramListResponse
// @Router       /api/programs [get]
func (h *ProgramHandler) List(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "org_id requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.uc.ListByOrganization(c.Context(), orgID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}
