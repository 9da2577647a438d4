package remote

import (
	"context"
	"time"

	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

var _ backend.Backend = (*caller)(nil)

type caller struct {
	c         *Client
	principal string
}

// ── Perfil y aprobaciones ─────────────────────────────────────────────────────

func (c *caller) GetCallerUserProfile(ctx context.Context) (*entity.UserProfile, error) {
	return call[*entity.UserProfile](ctx, c, "getCallerUserProfile")
}

func (c *caller) SaveCallerUserProfile(ctx context.Context, profile entity.UserProfile) error {
	return exec(ctx, c, "saveCallerUserProfile", profile)
}

func (c *caller) GetBootstrapState(ctx context.Context) (*entity.BootstrapState, error) {
	return call[*entity.BootstrapState](ctx, c, "getBootstrapState")
}

func (c *caller) IsCallerAdmin(ctx context.Context) (bool, error) {
	return call[bool](ctx, c, "isCallerAdmin")
}

func (c *caller) IsCallerApproved(ctx context.Context) (bool, error) {
	return call[bool](ctx, c, "isCallerApproved")
}

func (c *caller) RequestApproval(ctx context.Context) error {
	return exec(ctx, c, "requestApproval")
}

func (c *caller) ListApprovals(ctx context.Context) ([]entity.UserApprovalInfo, error) {
	return list[entity.UserApprovalInfo](ctx, c, "listApprovals")
}

func (c *caller) SetApproval(ctx context.Context, principal, status string) error {
	return exec(ctx, c, "setApproval", principal, status)
}

func (c *caller) ListUserProfiles(ctx context.Context) ([]entity.UserProfileEntry, error) {
	return list[entity.UserProfileEntry](ctx, c, "listUserProfiles")
}

func (c *caller) AssignAppRole(ctx context.Context, principal, role string) error {
	return exec(ctx, c, "assignCallerUserRole", principal, role)
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (c *caller) ListProducts(ctx context.Context) ([]entity.Product, error) {
	return list[entity.Product](ctx, c, "getAllProducts")
}

func (c *caller) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	return call[*entity.Product](ctx, c, "getProduct", id)
}

func (c *caller) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	return call[*entity.Product](ctx, c, "getProductByBarcode", barcode)
}

func (c *caller) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	return call[*entity.Product](ctx, c, "createProduct", p)
}

func (c *caller) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	return call[*entity.Product](ctx, c, "updateProduct", p)
}

func (c *caller) DeleteProduct(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteProduct", id)
}

func (c *caller) AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error) {
	return call[*entity.Product](ctx, c, "adjustStock", productID, delta)
}

func (c *caller) ListLowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error) {
	return list[entity.Product](ctx, c, "getLowStockProducts", threshold)
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (c *caller) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	return list[entity.Customer](ctx, c, "getAllCustomers")
}

func (c *caller) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	return call[*entity.Customer](ctx, c, "getCustomer", id)
}

func (c *caller) CreateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	return call[*entity.Customer](ctx, c, "createCustomer", cu)
}

func (c *caller) UpdateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	return call[*entity.Customer](ctx, c, "updateCustomer", cu)
}

func (c *caller) DeleteCustomer(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteCustomer", id)
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func (c *caller) ListOrders(ctx context.Context) ([]entity.Order, error) {
	return list[entity.Order](ctx, c, "getAllOrders")
}

func (c *caller) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	return call[*entity.Order](ctx, c, "getOrder", id)
}

func (c *caller) CreateOrder(ctx context.Context, o entity.Order) (*entity.Order, error) {
	return call[*entity.Order](ctx, c, "createOrder", o)
}

func (c *caller) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return exec(ctx, c, "updateOrderStatus", id, status)
}

func (c *caller) DeleteOrder(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteOrder", id)
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func (c *caller) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return list[entity.Invoice](ctx, c, "getAllInvoices")
}

func (c *caller) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	return call[*entity.Invoice](ctx, c, "getInvoice", id)
}

func (c *caller) CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error) {
	return call[*entity.Invoice](ctx, c, "createInvoice", inv)
}

func (c *caller) UpdateInvoiceStatus(ctx context.Context, id, status string) error {
	return exec(ctx, c, "updateInvoiceStatus", id, status)
}

func (c *caller) DeleteInvoice(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteInvoice", id)
}

// ── Inventario, notificaciones, registros ─────────────────────────────────────

func (c *caller) ListInventoryRecords(ctx context.Context) ([]entity.InventoryRecord, error) {
	return list[entity.InventoryRecord](ctx, c, "getAllInventoryRecords")
}

func (c *caller) CreateInventoryRecord(ctx context.Context, r entity.InventoryRecord) (*entity.InventoryRecord, error) {
	return call[*entity.InventoryRecord](ctx, c, "createInventoryRecord", r)
}

func (c *caller) DeleteInventoryRecord(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteInventoryRecord", id)
}

func (c *caller) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	return list[entity.Notification](ctx, c, "getAllNotifications")
}

func (c *caller) CreateNotification(ctx context.Context, n entity.Notification) (*entity.Notification, error) {
	return call[*entity.Notification](ctx, c, "createNotification", n)
}

func (c *caller) MarkNotificationRead(ctx context.Context, id string) error {
	return exec(ctx, c, "markNotificationAsRead", id)
}

func (c *caller) DeleteNotification(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteNotification", id)
}

func (c *caller) ListDataEntries(ctx context.Context) ([]entity.DataEntry, error) {
	return list[entity.DataEntry](ctx, c, "getAllDataEntries")
}

func (c *caller) CreateDataEntry(ctx context.Context, e entity.DataEntry) (*entity.DataEntry, error) {
	return call[*entity.DataEntry](ctx, c, "createDataEntry", e)
}

func (c *caller) DeleteDataEntry(ctx context.Context, id string) error {
	return exec(ctx, c, "deleteDataEntry", id)
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (c *caller) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	return call[*entity.DashboardStats](ctx, c, "getDashboardStats")
}

func (c *caller) GetProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error) {
	return call[*entity.ProfitLoss](ctx, c, "getProfitLossReport", from.UTC(), to.UTC())
}
