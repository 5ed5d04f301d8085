package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/academia-pro/internal/application/batches"
	"github.com/tu-usuario/academia-pro/internal/application/dto"
	"github.com/tu-usuario/academia-pro/internal/application/enrollment"
	"github.com/tu-usuario/academia-pro/internal/application/labs"
	"github.com/tu-usuario/academia-pro/internal/application/usecase"
	batchrules "github.com/tu-usuario/academia-pro/internal/domain/batch"
)

// BatchHandler maneja el ciclo de vida de batches y sus sub-recursos de
// matrícula y laboratorio.
type BatchHandler struct {
	manager    *batches.Manager
	reconciler *enrollment.Reconciler
	bulk       *enrollment.BulkRunner
	enrollQ    *usecase.EnrollmentQueryUseCase
	labsUC     *labs.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(
	manager *batches.Manager,
	reconciler *enrollment.Reconciler,
	bulk *enrollment.BulkRunner,
	enrollQ *usecase.EnrollmentQueryUseCase,
	labsUC *labs.UseCase,
) *BatchHandler {
	return &BatchHandler{manager: manager, reconciler: reconciler, bulk: bulk, enrollQ: enrollQ, labsUC: labsUC}
}

// Create godoc
// @Summary      Crear batch (y su Program 1:1)
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Configuración del batch"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" || in.OrganizationID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name y organization_id son requeridos"})
	}
	out, err := h.manager.Create(c.Context(), GetRole(c), in)
	if err != nil {
		return writeBatchError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar batch (configuración completa)
// @Tags         batches
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del batch"
// @Param        body  body  dto.UpdateBatchRequest  true  "Estado propuesto completo"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	out, err := h.manager.Update(c.Context(), GetRole(c), id, in)
	if err != nil {
		return writeBatchError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener batch por ID
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del batch"
// @Success      200  {object}  dto.BatchResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [get]
func (h *BatchHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.manager.GetByID(c.Context(), id)
	if err != nil {
		return writeDomainError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "batch no encontrado"})
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar batches de la organización del token
// @Tags         batches
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BatchListResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	orgID := GetOrgID(c)
	if orgID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "org_id requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.manager.ListByOrganization(c.Context(), orgID, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// Enroll godoc
// @Summary      Matrícula atómica: todas las filas o ninguna
// @Tags         enrollments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del batch"
// @Param        body  body  dto.EnrollRequest  true  "Filas a matricular"
// @Success      200   {object}  dto.ReconcileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/enroll [post]
func (h *BatchHandler) Enroll(c *fiber.Ctx) error {
	id := c.Params("id")
	orgID := GetOrgID(c)
	var in dto.EnrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows no puede estar vacío"})
	}
	res, err := h.reconciler.Reconcile(c.Context(), id, orgID, in.Rows)
	if err != nil {
		return writeEnrollError(c, err)
	}
	return c.JSON(dto.ReconcileResponse{Processed: res.Processed, Enrolled: res.Enrolled})
}

// BulkEnroll godoc
// @Summary      Matrícula best-effort: éxito parcial fila a fila
// @Tags         enrollments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del batch"
// @Param        body  body  dto.EnrollRequest  true  "Filas a matricular"
// @Success      200   {object}  dto.BulkEnrollResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/enroll/bulk [post]
func (h *BatchHandler) BulkEnroll(c *fiber.Ctx) error {
	id := c.Params("id")
	orgID := GetOrgID(c)
	var in dto.EnrollRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if len(in.Rows) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rows no puede estar vacío"})
	}
	res, err := h.bulk.BulkEnroll(c.Context(), id, orgID, in.Rows)
	if err != nil {
		return writeEnrollError(c, err)
	}
	out := dto.BulkEnrollResponse{
		Success:  res.Success,
		Failed:   res.Failed,
		NewUsers: res.NewUsers,
		Existing: res.Existing,
	}
	for _, f := range res.Failures {
		out.Failures = append(out.Failures, f.String())
	}
	return c.JSON(out)
}

// ListEnrollments godoc
// @Summary      Listar matrículas de un batch
// @Tags         enrollments
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del batch"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.EnrollmentListResponse
// @Router       /api/batches/{id}/enrollments [get]
func (h *BatchHandler) ListEnrollments(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	limit, offset := pageParams(c)
	out, err := h.enrollQ.ListByBatch(c.Context(), id, limit, offset)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.JSON(out)
}

// StartLabSession godoc
// @Summary      Aprovisionar sesión de laboratorio para un batch
// @Tags         labs
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del batch"
// @Param        body  body  dto.StartLabSessionRequest  true  "Blueprint y duración"
// @Success      201   {object}  dto.LabSessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/labs/sessions [post]
func (h *BatchHandler) StartLabSession(c *fiber.Ctx) error {
	id := c.Params("id")
	orgID := GetOrgID(c)
	var in dto.StartLabSessionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.BlueprintID == "" || in.DurationMinutes <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "blueprint_id y duration_minutes son requeridos"})
	}
	out, err := h.labsUC.StartSession(c.Context(), id, orgID, in)
	if err != nil {
		return writeDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// writeBatchError mapea el rechazo del validador de configuración (Kind
// como Code verificable por máquina) antes de caer en los sentinelas.
func writeBatchError(c *fiber.Ctx, err error) error {
	var rerr *batchrules.RuleError
	if errors.As(err, &rerr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: rerr.Kind, Message: rerr.Reason})
	}
	return writeDomainError(c, err)
}

// writeEnrollError mapea los errores tipados de matrícula con el detalle
// por fila que el caller necesita para corregir y reenviar.
func writeEnrollError(c *fiber.Ctx, err error) error {
	var verr *enrollment.ValidationError
	if errors.As(err, &verr) {
		details := make([]string, 0, len(verr.Issues))
		for _, i := range verr.Issues {
			details = append(details, i.String())
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION_FAILED",
			Message: "ninguna fila fue procesada",
			Details: details,
		})
	}
	var cerr *enrollment.ConflictError
	if errors.As(err, &cerr) {
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "CROSS_ORG_CONFLICT",
			Message: "emails ya ligados a otra organización",
			Details: cerr.Emails,
		})
	}
	return writeDomainError(c, err)
}
