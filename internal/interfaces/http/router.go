package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/alerts"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/auth"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/billing"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/cart"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/catalog"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/inventory"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/payment"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/application/reports"
	"github.com/Arciniegas-C-L/Proyecto-Formativo-sub000/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	Catalog   *catalog.Service
	Inventory *inventory.UseCase
	Cart      *cart.Service
	Payment   *payment.Service
	Alerts    *alerts.Service
	Reports   *reports.Service
	Invoices  *billing.UseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	authMW := AuthMiddleware(deps.JWTSecret)
	adminOnly := RequireRole(entity.RoleAdmin)

	authHandler := NewAuthHandler(deps.AuthUC)
	catalogHandler := NewCatalogHandler(deps.Catalog)
	productHandler := NewProductHandler(deps.Catalog)
	inventoryHandler := NewInventoryHandler(deps.Inventory, deps.Alerts)
	cartHandler := NewCartHandler(deps.Cart)
	paymentHandler := NewPaymentHandler(deps.Payment)
	reportHandler := NewReportHandler(deps.Reports)
	invoiceHandler := NewInvoiceHandler(deps.Invoices)

	// Auth (público)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/token", authHandler.Token)
	authGroup.Post("/token/refresh", authHandler.Refresh)

	// Webhook de la pasarela (público, idempotente)
	api.Post("/webhooks/payments", paymentHandler.Webhook)

	// Catálogo: lectura pública, escritura solo admin
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", authMW, adminOnly, catalogHandler.CreateCategory)
	api.Get("/subcategories", catalogHandler.ListSubcategories)
	api.Post("/subcategories", authMW, adminOnly, catalogHandler.CreateSubcategory)
	api.Put("/subcategories/:id", authMW, adminOnly, catalogHandler.UpdateSubcategory)
	api.Get("/size-groups", catalogHandler.ListSizeGroups)
	api.Post("/size-groups", authMW, adminOnly, catalogHandler.CreateSizeGroup)
	api.Post("/size-groups/:id/sizes", authMW, adminOnly, catalogHandler.CreateSize)

	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.GetByID)
	api.Post("/products", authMW, adminOnly, productHandler.Create)
	api.Get("/products/:id/inventory", authMW, adminOnly, inventoryHandler.ListByProduct)

	// Inventario (admin)
	api.Put("/inventory/:id", authMW, adminOnly, inventoryHandler.Adjust)
	api.Get("/stock-alerts", authMW, adminOnly, inventoryHandler.ListAlerts)

	// Carritos (protegido; el servicio verifica el dueño)
	carts := api.Group("/carts", authMW)
	carts.Post("/", cartHandler.Create)
	carts.Get("/:id", cartHandler.Get)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Delete("/:id/items/:itemId", cartHandler.RemoveItem)
	carts.Post("/:id/states", cartHandler.ChangeState)
	carts.Get("/:id/states", cartHandler.History)
	carts.Post("/:id/checkout", cartHandler.Checkout)

	// Pedidos
	orders := api.Group("/orders", authMW)
	orders.Get("/:id", cartHandler.GetOrder)
	orders.Post("/:id/confirm", adminOnly, inventoryHandler.ConfirmOrder)
	orders.Get("/:id/invoice", adminOnly, invoiceHandler.GetByOrder)

	// Facturas y reportes (admin)
	invoices := api.Group("/invoices", authMW, adminOnly)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.PDF)

	reportsGroup := api.Group("/reports", authMW, adminOnly)
	reportsGroup.Post("/sales", reportHandler.BuildSales)
	reportsGroup.Get("/:id", reportHandler.Get)
}
