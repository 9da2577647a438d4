package queries

import (
	"context"
	"time"

	"github.com/jhoicas/sahil-erp/internal/application/query"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// ── Perfil y aprobaciones ─────────────────────────────────────────────────────

func (q *Queries) BootstrapState(ctx context.Context) (*entity.BootstrapState, error) {
	return value(ctx, q, KeyBootstrapState, query.TierShort, func(ctx context.Context, b backend.Backend) (*entity.BootstrapState, error) {
		return b.GetBootstrapState(ctx)
	})
}

// RefetchBootstrapState vuelve a pedir el estado agrupado aunque el cacheado siga fresco.
func (q *Queries) RefetchBootstrapState(ctx context.Context) (*entity.BootstrapState, error) {
	b, ok := q.actors.Actor()
	if !ok {
		return nil, nil
	}
	return query.Refetch(ctx, q.cache, q.opts(KeyBootstrapState, query.TierShort), func(ctx context.Context) (*entity.BootstrapState, error) {
		return b.GetBootstrapState(ctx)
	})
}

// SeedBootstrap copia el estado agrupado a las claves individuales para que las
// lecturas posteriores no vuelvan al backend.
func (q *Queries) SeedBootstrap(st *entity.BootstrapState) {
	if st == nil {
		return
	}
	q.cache.SetQueryData(KeyCurrentUserProfile, st.Profile)
	q.cache.SetQueryData(KeyIsCallerAdmin, st.IsAdmin)
	q.cache.SetQueryData(KeyIsCallerApproved, st.IsApproved)
}

func (q *Queries) CurrentUserProfile(ctx context.Context) (*entity.UserProfile, error) {
	return value(ctx, q, KeyCurrentUserProfile, query.TierMedium, func(ctx context.Context, b backend.Backend) (*entity.UserProfile, error) {
		return b.GetCallerUserProfile(ctx)
	})
}

func (q *Queries) IsCallerAdmin(ctx context.Context) (bool, error) {
	return value(ctx, q, KeyIsCallerAdmin, query.TierLong, func(ctx context.Context, b backend.Backend) (bool, error) {
		return b.IsCallerAdmin(ctx)
	})
}

func (q *Queries) IsCallerApproved(ctx context.Context) (bool, error) {
	return value(ctx, q, KeyIsCallerApproved, query.TierShort, func(ctx context.Context, b backend.Backend) (bool, error) {
		return b.IsCallerApproved(ctx)
	})
}

func (q *Queries) Approvals(ctx context.Context) ([]entity.UserApprovalInfo, error) {
	return list(ctx, q, KeyApprovals, query.TierShort, func(ctx context.Context, b backend.Backend) ([]entity.UserApprovalInfo, error) {
		return b.ListApprovals(ctx)
	})
}

func (q *Queries) Users(ctx context.Context) ([]entity.UserProfileEntry, error) {
	return list(ctx, q, KeyUsers, query.TierLong, func(ctx context.Context, b backend.Backend) ([]entity.UserProfileEntry, error) {
		return b.ListUserProfiles(ctx)
	})
}

func (q *Queries) SaveProfile(ctx context.Context, p entity.UserProfile) error {
	return exec(ctx, q, MutSaveProfile, func(ctx context.Context, b backend.Backend) error {
		return b.SaveCallerUserProfile(ctx, p)
	})
}

func (q *Queries) RequestApproval(ctx context.Context) error {
	return exec(ctx, q, MutRequestApproval, func(ctx context.Context, b backend.Backend) error {
		return b.RequestApproval(ctx)
	})
}

func (q *Queries) SetApproval(ctx context.Context, principal, status string) error {
	return exec(ctx, q, MutSetApproval, func(ctx context.Context, b backend.Backend) error {
		return b.SetApproval(ctx, principal, status)
	})
}

func (q *Queries) AssignAppRole(ctx context.Context, principal, role string) error {
	return exec(ctx, q, MutAssignAppRole, func(ctx context.Context, b backend.Backend) error {
		return b.AssignAppRole(ctx, principal, role)
	})
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (q *Queries) Products(ctx context.Context) ([]entity.Product, error) {
	return list(ctx, q, KeyProducts, query.TierMedium, func(ctx context.Context, b backend.Backend) ([]entity.Product, error) {
		return b.ListProducts(ctx)
	})
}

func (q *Queries) Product(ctx context.Context, id string) (*entity.Product, error) {
	return value(ctx, q, productKey(id), query.TierMedium, func(ctx context.Context, b backend.Backend) (*entity.Product, error) {
		return b.GetProduct(ctx, id)
	})
}

func (q *Queries) ProductByBarcode(ctx context.Context, code string) (*entity.Product, error) {
	return value(ctx, q, barcodeKey(code), query.TierShort, func(ctx context.Context, b backend.Backend) (*entity.Product, error) {
		return b.GetProductByBarcode(ctx, code)
	})
}

func (q *Queries) LowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error) {
	return list(ctx, q, lowStockKey(threshold), query.TierShort, func(ctx context.Context, b backend.Backend) ([]entity.Product, error) {
		return b.ListLowStockProducts(ctx, threshold)
	})
}

func (q *Queries) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	return mutate(ctx, q, MutCreateProduct, func(ctx context.Context, b backend.Backend) (*entity.Product, error) {
		return b.CreateProduct(ctx, p)
	})
}

func (q *Queries) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	return mutate(ctx, q, MutUpdateProduct, func(ctx context.Context, b backend.Backend) (*entity.Product, error) {
		return b.UpdateProduct(ctx, p)
	})
}

func (q *Queries) DeleteProduct(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteProduct, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteProduct(ctx, id)
	})
}

func (q *Queries) AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error) {
	return mutate(ctx, q, MutAdjustStock, func(ctx context.Context, b backend.Backend) (*entity.Product, error) {
		return b.AdjustStock(ctx, productID, delta)
	})
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (q *Queries) Customers(ctx context.Context) ([]entity.Customer, error) {
	return list(ctx, q, KeyCustomers, query.TierLong, func(ctx context.Context, b backend.Backend) ([]entity.Customer, error) {
		return b.ListCustomers(ctx)
	})
}

func (q *Queries) Customer(ctx context.Context, id string) (*entity.Customer, error) {
	return value(ctx, q, customerKey(id), query.TierLong, func(ctx context.Context, b backend.Backend) (*entity.Customer, error) {
		return b.GetCustomer(ctx, id)
	})
}

func (q *Queries) CreateCustomer(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	return mutate(ctx, q, MutCreateCustomer, func(ctx context.Context, b backend.Backend) (*entity.Customer, error) {
		return b.CreateCustomer(ctx, c)
	})
}

func (q *Queries) UpdateCustomer(ctx context.Context, c entity.Customer) (*entity.Customer, error) {
	return mutate(ctx, q, MutUpdateCustomer, func(ctx context.Context, b backend.Backend) (*entity.Customer, error) {
		return b.UpdateCustomer(ctx, c)
	})
}

func (q *Queries) DeleteCustomer(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteCustomer, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteCustomer(ctx, id)
	})
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func (q *Queries) Orders(ctx context.Context) ([]entity.Order, error) {
	return list(ctx, q, KeyOrders, query.TierShort, func(ctx context.Context, b backend.Backend) ([]entity.Order, error) {
		return b.ListOrders(ctx)
	})
}

func (q *Queries) Order(ctx context.Context, id string) (*entity.Order, error) {
	return value(ctx, q, orderKey(id), query.TierShort, func(ctx context.Context, b backend.Backend) (*entity.Order, error) {
		return b.GetOrder(ctx, id)
	})
}

func (q *Queries) CreateOrder(ctx context.Context, o entity.Order) (*entity.Order, error) {
	return mutate(ctx, q, MutCreateOrder, func(ctx context.Context, b backend.Backend) (*entity.Order, error) {
		return b.CreateOrder(ctx, o)
	})
}

func (q *Queries) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return exec(ctx, q, MutUpdateOrderStatus, func(ctx context.Context, b backend.Backend) error {
		return b.UpdateOrderStatus(ctx, id, status)
	})
}

func (q *Queries) DeleteOrder(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteOrder, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteOrder(ctx, id)
	})
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func (q *Queries) Invoices(ctx context.Context) ([]entity.Invoice, error) {
	return list(ctx, q, KeyInvoices, query.TierMedium, func(ctx context.Context, b backend.Backend) ([]entity.Invoice, error) {
		return b.ListInvoices(ctx)
	})
}

func (q *Queries) Invoice(ctx context.Context, id string) (*entity.Invoice, error) {
	return value(ctx, q, invoiceKey(id), query.TierMedium, func(ctx context.Context, b backend.Backend) (*entity.Invoice, error) {
		return b.GetInvoice(ctx, id)
	})
}

func (q *Queries) CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error) {
	return mutate(ctx, q, MutCreateInvoice, func(ctx context.Context, b backend.Backend) (*entity.Invoice, error) {
		return b.CreateInvoice(ctx, inv)
	})
}

func (q *Queries) UpdateInvoiceStatus(ctx context.Context, id, status string) error {
	return exec(ctx, q, MutUpdateInvoiceStatus, func(ctx context.Context, b backend.Backend) error {
		return b.UpdateInvoiceStatus(ctx, id, status)
	})
}

func (q *Queries) DeleteInvoice(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteInvoice, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteInvoice(ctx, id)
	})
}

// ── Inventario ────────────────────────────────────────────────────────────────

func (q *Queries) InventoryRecords(ctx context.Context) ([]entity.InventoryRecord, error) {
	return list(ctx, q, KeyInventoryRecords, query.TierMedium, func(ctx context.Context, b backend.Backend) ([]entity.InventoryRecord, error) {
		return b.ListInventoryRecords(ctx)
	})
}

func (q *Queries) CreateInventoryRecord(ctx context.Context, r entity.InventoryRecord) (*entity.InventoryRecord, error) {
	return mutate(ctx, q, MutCreateInventoryRecord, func(ctx context.Context, b backend.Backend) (*entity.InventoryRecord, error) {
		return b.CreateInventoryRecord(ctx, r)
	})
}

func (q *Queries) DeleteInventoryRecord(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteInventoryRecord, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteInventoryRecord(ctx, id)
	})
}

// ── Notificaciones y registros ────────────────────────────────────────────────

func (q *Queries) Notifications(ctx context.Context) ([]entity.Notification, error) {
	return list(ctx, q, KeyNotifications, query.TierShort, func(ctx context.Context, b backend.Backend) ([]entity.Notification, error) {
		return b.ListNotifications(ctx)
	})
}

func (q *Queries) CreateNotification(ctx context.Context, n entity.Notification) (*entity.Notification, error) {
	return mutate(ctx, q, MutCreateNotification, func(ctx context.Context, b backend.Backend) (*entity.Notification, error) {
		return b.CreateNotification(ctx, n)
	})
}

func (q *Queries) MarkNotificationRead(ctx context.Context, id string) error {
	return exec(ctx, q, MutMarkNotificationRead, func(ctx context.Context, b backend.Backend) error {
		return b.MarkNotificationRead(ctx, id)
	})
}

func (q *Queries) DeleteNotification(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteNotification, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteNotification(ctx, id)
	})
}

func (q *Queries) DataEntries(ctx context.Context) ([]entity.DataEntry, error) {
	return list(ctx, q, KeyDataEntries, query.TierLong, func(ctx context.Context, b backend.Backend) ([]entity.DataEntry, error) {
		return b.ListDataEntries(ctx)
	})
}

func (q *Queries) CreateDataEntry(ctx context.Context, e entity.DataEntry) (*entity.DataEntry, error) {
	return mutate(ctx, q, MutCreateDataEntry, func(ctx context.Context, b backend.Backend) (*entity.DataEntry, error) {
		return b.CreateDataEntry(ctx, e)
	})
}

func (q *Queries) DeleteDataEntry(ctx context.Context, id string) error {
	return exec(ctx, q, MutDeleteDataEntry, func(ctx context.Context, b backend.Backend) error {
		return b.DeleteDataEntry(ctx, id)
	})
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (q *Queries) DashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	return value(ctx, q, KeyDashboardStats, query.TierMedium, func(ctx context.Context, b backend.Backend) (*entity.DashboardStats, error) {
		return b.GetDashboardStats(ctx)
	})
}

func (q *Queries) ProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error) {
	return value(ctx, q, profitLossKey(from, to), query.TierLong, func(ctx context.Context, b backend.Backend) (*entity.ProfitLoss, error) {
		return b.GetProfitLoss(ctx, from, to)
	})
}
