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

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/alerts"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/auth"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/notify"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/payment"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/reports"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/repository"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/cache"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/mail"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/memory"
	infrapdf "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/pdf"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/infrastructure/postgres"
	httpRouter "github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/interfaces/http"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/config"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	var (
		store    repository.Store
		txRunner repository.TxRunner
	)
	switch cfg.Storage.Driver {
	case "memory":
		db := memory.New()
		store, txRunner = db.Store(), db
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		store, txRunner = postgres.NewStore(pool), postgres.NewTxRunner(pool)
	}

	// Enfriamiento de alertas: Redis si está configurado (compartido entre réplicas), si no en memoria.
	var cooldown alerts.Cooldown = cache.NewMemoryCooldown(nil)
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		cooldown = cache.NewRedisCooldown(client)
	}

	var sender notify.Sender = mail.NewLogSender(log.Component("mail"))
	if cfg.SMTP.Host != "" {
		sender = mail.NewSMTPSender(cfg.SMTP, cfg.Mail.From)
	}
	mailer := notify.NewMailer(sender, cfg.Mail.FallbackAddress, log.Component("notify"))

	alertSvc := alerts.NewService(txRunner, store, cooldown, mailer, alerts.Config{
		Threshold: cfg.Alerts.Threshold,
		Cooldown:  cfg.Alerts.Cooldown,
	}, log.Component("alerts"))

	issuer := billing.NewIssuer(billing.Config{
		TaxRate:       cfg.Billing.TaxRate,
		Currency:      cfg.Billing.Currency,
		PaymentMethod: cfg.Billing.PaymentMethod,
		Prefix:        cfg.Billing.InvoicePrefix,
	})

	catalogSvc := catalog.NewService(txRunner, store, inventory.NewProvisioner(), log.Component("catalog"))
	inventoryUC := inventory.NewUseCase(txRunner, store, alertSvc, log.Component("inventory"))
	cartSvc := cart.NewService(txRunner, store, alertSvc, log.Component("cart"))
	paymentSvc := payment.NewService(txRunner, store, issuer, alertSvc, mailer, log.Component("payment"))
	reportSvc := reports.NewService(txRunner, store, log.Component("reports"))
	invoiceUC := billing.NewUseCase(store, infrapdf.NewMarotoPDFGenerator(), cfg.App.Name)
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		RefreshExpMinutes: cfg.JWT.RefreshExpiration,
		Issuer:            cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en http://localhost:<port>/docs cuando existe docs/swagger.json
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		Catalog:   catalogSvc,
		Inventory: inventoryUC,
		Cart:      cartSvc,
		Payment:   paymentSvc,
		Alerts:    alertSvc,
		Reports:   reportSvc,
		Invoices:  invoiceUC,
		JWTSecret: cfg.JWT.Secret,
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
}
