package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/academia-pro/internal/application/auth"
	"github.com/tu-usuario/academia-pro/internal/application/batches"
	"github.com/tu-usuario/academia-pro/internal/application/enrollment"
	"github.com/tu-usuario/academia-pro/internal/application/labs"
	"github.com/tu-usuario/academia-pro/internal/application/media"
	"github.com/tu-usuario/academia-pro/internal/application/usecase"
	"github.com/tu-usuario/academia-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	OrganizationUC *usecase.OrganizationUseCase
	UserUC         *usecase.UserUseCase
	ProgramUC      *usecase.ProgramUseCase
	EnrollmentUC   *usecase.EnrollmentQueryUseCase
	BatchManager   *batches.Manager
	Reconciler     *enrollment.Reconciler
	BulkRunner     *enrollment.BulkRunner
	LabsUC         *labs.UseCase
	MediaUC        *media.UseCase
	AuthUC         *auth.AuthUseCase
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Organizations (protegido; solo plataforma puede crear tenants)
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Post("/", RequireRole(entity.RoleSuperAdmin), orgHandler.Create)
	orgs.Get("/", orgHandler.List)
	orgs.Get("/:id", orgHandler.GetByID)

	// Users (protegido)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC, deps.EnrollmentUC)
	users.Post("/", RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin), userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin), userHandler.Update)
	users.Get("/:id/enrollments", userHandler.ListEnrollments)

	// Programs (protegido, solo lectura: nacen con su batch)
	programs := protected.Group("/programs")
	programHandler := NewProgramHandler(deps.ProgramUC)
	programs.Get("/", programHandler.List)
	programs.Get("/:id", programHandler.GetByID)

	// Batches + matrícula + labs (protegido)
	batchGroup := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchManager, deps.Reconciler, deps.BulkRunner, deps.EnrollmentUC, deps.LabsUC)
	batchGroup.Post("/", batchHandler.Create)
	batchGroup.Get("/", batchHandler.List)
	batchGroup.Get("/:id", batchHandler.GetByID)
	batchGroup.Put("/:id", batchHandler.Update)
	batchGroup.Post("/:id/enroll", RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin), batchHandler.Enroll)
	batchGroup.Post("/:id/enroll/bulk", RequireRole(entity.RoleSuperAdmin, entity.RoleOrgAdmin), batchHandler.BulkEnroll)
	batchGroup.Get("/:id/enrollments", batchHandler.ListEnrollments)
	batchGroup.Post("/:id/labs/sessions", batchHandler.StartLabSession)

	// Media (protegido)
	mediaGroup := protected.Group("/media")
	mediaHandler := NewMediaHandler(deps.MediaUC)
	mediaGroup.Post("/presign", mediaHandler.Presign)
}
