package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sahil-erp/internal/application/auth"
	"github.com/jhoicas/sahil-erp/internal/application/billing"
	"github.com/jhoicas/sahil-erp/internal/application/bootstrap"
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/application/reports"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	Shell         *bootstrap.Shell
	CreateInvoice *billing.CreateInvoiceUseCase
	InvoicePDF    *billing.PDFUseCase
	Summary       *reports.SummaryUseCase
	Replenishment *reports.ReplenishmentUseCase
	Export        *reports.ExportUseCase
	Labels        *reports.LabelUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/status", authHandler.Status)

	// Rutas con sesión (Bearer Token): disponibles en cualquier estado del bootstrap.
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)

	bootstrapHandler := NewBootstrapHandler(deps.Shell)
	protected.Get("/bootstrap", bootstrapHandler.Bootstrap)
	protected.Post("/bootstrap/retry", bootstrapHandler.Retry)
	protected.Get("/profile", bootstrapHandler.Profile)
	protected.Get("/profile/access", bootstrapHandler.Access)
	protected.Put("/profile", bootstrapHandler.SaveProfile)
	protected.Post("/profile/approval", bootstrapHandler.RequestApproval)

	pollingHandler := NewPollingHandler()
	protected.Get("/polling", pollingHandler.Get)
	protected.Post("/polling/enable", pollingHandler.Enable)
	protected.Post("/polling/disable", pollingHandler.Disable)
	protected.Put("/polling/module", pollingHandler.SetModule)

	// Dashboard (sesión activa)
	active := protected.Group("/", RequireActive(deps.Shell))

	dashboardHandler := NewDashboardHandler()
	active.Get("/dashboard/stats", dashboardHandler.Stats)
	notifications := active.Group("/notifications")
	notifications.Get("/", dashboardHandler.Notifications)
	notifications.Post("/", dashboardHandler.CreateNotification)
	notifications.Put("/:id/read", dashboardHandler.MarkNotificationRead)
	notifications.Delete("/:id", dashboardHandler.DeleteNotification)

	// Users (sólo admin principal)
	users := active.Group("/users", RequireModuleAccess(polling.ModuleUsers))
	userHandler := NewUserHandler()
	users.Get("/", userHandler.List)
	users.Get("/approvals", userHandler.Approvals)
	users.Put("/:principal/approval", userHandler.SetApproval)
	users.Put("/:principal/role", userHandler.AssignRole)

	// Products: lectura para cualquier sesión activa (pedidos y facturas los necesitan),
	// escritura sólo con el módulo de inventario.
	products := active.Group("/products")
	productHandler := NewProductHandler()
	canEditInventory := RequireModuleAccess(polling.ModuleInventory)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", canEditInventory, productHandler.Create)
	products.Put("/:id", canEditInventory, productHandler.Update)
	products.Delete("/:id", canEditInventory, productHandler.Delete)
	products.Post("/:id/stock", canEditInventory, productHandler.AdjustStock)

	// Inventory movements
	inventory := active.Group("/inventory", canEditInventory)
	inventoryHandler := NewInventoryHandler()
	inventory.Get("/records", inventoryHandler.ListRecords)
	inventory.Post("/records", inventoryHandler.CreateRecord)
	inventory.Delete("/records/:id", inventoryHandler.DeleteRecord)

	// Customers: lectura libre, escritura desde pedidos o facturas.
	customers := active.Group("/customers")
	customerHandler := NewCustomerHandler()
	canEditCustomers := RequireModuleAccess(polling.ModuleOrders, polling.ModuleInvoices)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Post("/", canEditCustomers, customerHandler.Create)
	customers.Put("/:id", canEditCustomers, customerHandler.Update)
	customers.Delete("/:id", canEditCustomers, customerHandler.Delete)

	// Orders
	orders := active.Group("/orders", RequireModuleAccess(polling.ModuleOrders))
	orderHandler := NewOrderHandler()
	orders.Get("/", orderHandler.List)
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id/status", orderHandler.UpdateStatus)
	orders.Delete("/:id", orderHandler.Delete)

	// Invoices
	invoices := active.Group("/invoices", RequireModuleAccess(polling.ModuleInvoices))
	invoiceHandler := NewInvoiceHandler(deps.CreateInvoice, deps.InvoicePDF)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Get("/:id/pdf", invoiceHandler.GetPDF)
	invoices.Put("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Delete("/:id", invoiceHandler.Delete)

	// Reports
	reportsGroup := active.Group("/reports", RequireModuleAccess(polling.ModuleReports))
	reportHandler := NewReportHandler(deps.Replenishment, deps.Export)
	reportsGroup.Get("/replenishment", reportHandler.Replenishment)
	reportsGroup.Get("/export/:kind", reportHandler.Export)
	reportsGroup.Get("/entries", reportHandler.ListEntries)
	reportsGroup.Post("/entries", reportHandler.CreateEntry)
	reportsGroup.Delete("/entries/:id", reportHandler.DeleteEntry)

	// Analytics
	analytics := active.Group("/analytics", RequireModuleAccess(polling.ModuleAnalytics))
	analyticsHandler := NewAnalyticsHandler(deps.Summary)
	analytics.Get("/summary", analyticsHandler.Summary)
	analytics.Get("/profit-loss", analyticsHandler.ProfitLoss)

	// Barcode
	barcode := active.Group("/barcode", RequireModuleAccess(polling.ModuleBarcode))
	barcodeHandler := NewBarcodeHandler(deps.Labels)
	barcode.Get("/lookup/:code", productHandler.ByBarcode)
	barcode.Post("/labels", barcodeHandler.Labels)
}
