// Package backend define el cliente tipado del servicio remoto del ERP.
// Todo lo demás (caché, shell de arranque, handlers) llama a través de esta interfaz.
package backend

import (
	"context"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// Backend operaciones remotas disponibles para la identidad que invoca (el "caller").
// Los registros únicos inexistentes se devuelven como (nil, nil).
type Backend interface {
	ProfileAPI
	ProductAPI
	CustomerAPI
	OrderAPI
	InvoiceAPI
	InventoryAPI
	NotificationAPI
	DataEntryAPI
	ReportAPI
}

// ProfileAPI perfil, administración y aprobaciones.
type ProfileAPI interface {
	GetCallerUserProfile(ctx context.Context) (*entity.UserProfile, error)
	SaveCallerUserProfile(ctx context.Context, profile entity.UserProfile) error
	GetBootstrapState(ctx context.Context) (*entity.BootstrapState, error)
	IsCallerAdmin(ctx context.Context) (bool, error)
	IsCallerApproved(ctx context.Context) (bool, error)
	RequestApproval(ctx context.Context) error
	ListApprovals(ctx context.Context) ([]entity.UserApprovalInfo, error)
	SetApproval(ctx context.Context, principal, status string) error
	ListUserProfiles(ctx context.Context) ([]entity.UserProfileEntry, error)
	AssignAppRole(ctx context.Context, principal, role string) error
}

// ProductAPI catálogo e inventario de productos.
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]entity.Product, error)
	GetProduct(ctx context.Context, id string) (*entity.Product, error)
	GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error)
	UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error)
	ListLowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error)
}

// CustomerAPI clientes.
type CustomerAPI interface {
	ListCustomers(ctx context.Context) ([]entity.Customer, error)
	GetCustomer(ctx context.Context, id string) (*entity.Customer, error)
	CreateCustomer(ctx context.Context, c entity.Customer) (*entity.Customer, error)
	UpdateCustomer(ctx context.Context, c entity.Customer) (*entity.Customer, error)
	DeleteCustomer(ctx context.Context, id string) error
}

// OrderAPI pedidos.
type OrderAPI interface {
	ListOrders(ctx context.Context) ([]entity.Order, error)
	GetOrder(ctx context.Context, id string) (*entity.Order, error)
	CreateOrder(ctx context.Context, o entity.Order) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id, status string) error
	DeleteOrder(ctx context.Context, id string) error
}

// InvoiceAPI facturas.
type InvoiceAPI interface {
	ListInvoices(ctx context.Context) ([]entity.Invoice, error)
	GetInvoice(ctx context.Context, id string) (*entity.Invoice, error)
	CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id, status string) error
	DeleteInvoice(ctx context.Context, id string) error
}

// InventoryAPI movimientos de inventario.
type InventoryAPI interface {
	ListInventoryRecords(ctx context.Context) ([]entity.InventoryRecord, error)
	CreateInventoryRecord(ctx context.Context, r entity.InventoryRecord) (*entity.InventoryRecord, error)
	DeleteInventoryRecord(ctx context.Context, id string) error
}

// NotificationAPI notificaciones del caller.
type NotificationAPI interface {
	ListNotifications(ctx context.Context) ([]entity.Notification, error)
	CreateNotification(ctx context.Context, n entity.Notification) (*entity.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	DeleteNotification(ctx context.Context, id string) error
}

// DataEntryAPI registros libres.
type DataEntryAPI interface {
	ListDataEntries(ctx context.Context) ([]entity.DataEntry, error)
	CreateDataEntry(ctx context.Context, e entity.DataEntry) (*entity.DataEntry, error)
	DeleteDataEntry(ctx context.Context, id string) error
}

// ReportAPI indicadores agregados.
type ReportAPI interface {
	GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error)
	GetProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error)
}
