// @title                       Sahil ERP API
// @version                     1.0
// @description                 Capa de orquestación del ERP de Sahil Garments: sesión, bootstrap de acceso, caché de consultas y módulos del dashboard.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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

	_ "github.com/jhoicas/sahil-erp/docs"
	"github.com/jhoicas/sahil-erp/internal/application/actor"
	"github.com/jhoicas/sahil-erp/internal/application/auth"
	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/bootstrap"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/queries"
	"github.com/jhoicas/sahil-erp/internal/application/query"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
	"github.com/jhoicas/sahil-erp/internal/application/session"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/domain/repository"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/export"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/sahil-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/redisstore"
	"github.com/jhoicas/sahil-erp/internal/infrastructure/remote"
	httpRouter "github.com/jhoicas/sahil-erp/internal/interfaces/http"
	"github.com/jhoicas/sahil-erp/pkg/config"
	"github.com/jhoicas/sahil-erp/pkg/logger"
)

// actorSource lo implementan postgres.Store, remote.Client y memory.Store.
type actorSource interface {
	For(principal string) backend.Backend
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if cfg.JWT.Secret == "" {
		panic("cargar configuración: JWT_SECRET requerido")
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.Mode).
		Msg("iniciando aplicación")

	ctx := context.Background()

	// Backend de registros e identidades según BACKEND_MODE.
	var (
		source     actorSource
		identities repository.IdentityRepository
	)
	switch cfg.Backend.Mode {
	case config.BackendModePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
		source = postgres.NewStore(pool)
		identities = postgres.NewIdentityRepository(pool)

	case config.BackendModeRemote:
		client := remote.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, log.Component("remote"))
		if err := client.Ping(ctx); err != nil {
			// El gateway puede arrancar después; las sesiones verán el fallo como NETWORK.
			log.Warn().Err(err).Str("url", cfg.Backend.URL).Msg("backend remoto no responde")
		}
		source = client
		// Las credenciales se guardan localmente; con DATABASE_URL se persisten.
		if cfg.DB.DatabaseURL != "" {
			pool, err := postgres.NewPool(ctx, cfg.DB)
			if err != nil {
				log.Fatal().Err(err).Msg("conexión a PostgreSQL")
			}
			defer pool.Close()
			if err := postgres.EnsureSchema(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("esquema PostgreSQL")
			}
			identities = postgres.NewIdentityRepository(pool)
		} else {
			identities = memory.NewIdentities()
		}

	default:
		log.Warn().Msg("backend en memoria: los datos se pierden al reiniciar")
		source = memory.NewStore()
		identities = memory.NewIdentities()
	}

	// Almacén de sesiones: Redis si está configurado.
	var sessions repository.SessionStore
	if cfg.Redis.Addr != "" {
		rs, err := redisstore.NewRedisStore(ctx, redisstore.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rs.Close()
		sessions = rs
	} else {
		sessions = redisstore.NewMemoryStore()
	}

	table := polling.NewTable(polling.ParseGating(cfg.Polling.Gating), polling.DefaultRules())
	workspaces := session.NewManager(func(_ context.Context, id actor.Identity) (backend.Backend, error) {
		return source.For(id.Principal), nil
	}, table, queries.Config{
		Tiers: query.Tiers{
			Short:  cfg.Query.StaleShort,
			Medium: cfg.Query.StaleMedium,
			Long:   cfg.Query.StaleLong,
		},
		Retry: cfg.Query.Retry,
	}, log.Component("session"))

	authUC := auth.NewAuthUseCase(identities, sessions, workspaces, auth.JWTConfig{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL(),
		Issuer: cfg.JWT.Issuer,
	}, log.Component("auth"))
	reapCtx, stopReaper := context.WithCancel(ctx)
	defer stopReaper()
	go authUC.RunReaper(reapCtx, cfg.JWT.ReapEvery)

	shell := bootstrap.NewShell(cfg.Access.SecondaryAdminEmails, log.Component("bootstrap"))

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.Issuer{
		Name:    cfg.Company.Name,
		GSTIN:   cfg.Company.GSTIN,
		Address: cfg.Company.Address,
		Phone:   cfg.Company.Phone,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sahil ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":     "ok",
			"service":    cfg.App.Name,
			"backend":    cfg.Backend.Mode,
			"workspaces": workspaces.Len(),
		})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		Shell:         shell,
		CreateInvoice: billing.NewCreateInvoiceUseCase(log.Component("billing")),
		InvoicePDF:    billing.NewPDFUseCase(pdfGenerator),
		Summary:       reports.NewSummaryUseCase(),
		Replenishment: reports.NewReplenishmentUseCase(),
		Export:        reports.NewExportUseCase(export.NewXLSXWriter(), export.NewCSVWriter()),
		Labels:        reports.NewLabelUseCase(pdfGenerator),
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
	stopReaper()
	workspaces.CloseAll()

	log.Info().Msg("aplicación detenida")
}
