package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/academia-pro/internal/application/auth"
	"github.com/tu-usuario/academia-pro/internal/application/authz"
	"github.com/tu-usuario/academia-pro/internal/application/batches"
	"github.com/tu-usuario/academia-pro/internal/application/enrollment"
	applabs "github.com/tu-usuario/academia-pro/internal/application/labs"
	appmedia "github.com/tu-usuario/academia-pro/internal/application/media"
	"github.com/tu-usuario/academia-pro/internal/application/usecase"
	infralabs "github.com/tu-usuario/academia-pro/internal/infrastructure/labs"
	inframedia "github.com/tu-usuario/academia-pro/internal/infrastructure/media"
	"github.com/tu-usuario/academia-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/academia-pro/internal/interfaces/http"
	"github.com/tu-usuario/academia-pro/pkg/config"
	"github.com/tu-usuario/academia-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   "info",
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones de esquema")
	}

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	programRepo := postgres.NewProgramRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	enrollRepo := postgres.NewEnrollmentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	gate := authz.NewRoleGate()

	orgUC := usecase.NewOrganizationUseCase(orgRepo)
	userUC := usecase.NewUserUseCase(userRepo, orgRepo)
	programUC := usecase.NewProgramUseCase(programRepo)
	enrollQueryUC := usecase.NewEnrollmentQueryUseCase(enrollRepo)

	batchManager := batches.NewManager(gate, orgRepo, userRepo, programRepo, batchRepo, log.Zerolog())
	reconciler := enrollment.NewReconciler(txRunner, userRepo, batchRepo, log.Zerolog())
	bulkRunner := enrollment.NewBulkRunner(userRepo, enrollRepo, batchRepo, log.Zerolog())

	labsClient := infralabs.NewHTTPClient(cfg.Labs.BaseURL, cfg.Labs.Token)
	labsUC := applabs.NewUseCase(labsClient, batchRepo)

	signer := inframedia.NewLocalSigner(cfg.Media.BaseURL, cfg.Media.SigningSecret)
	mediaUC := appmedia.NewUseCase(signer, time.Duration(cfg.Media.TTLMinutes)*time.Minute)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Academia Pro API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		OrganizationUC: orgUC,
		UserUC:         userUC,
		ProgramUC:      programUC,
		EnrollmentUC:   enrollQueryUC,
		BatchManager:   batchManager,
		Reconciler:     reconciler,
		BulkRunner:     bulkRunner,
		LabsUC:         labsUC,
		MediaUC:        mediaUC,
		AuthUC:         authUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
