// Package memory implementa backend.Backend en memoria: modo demo y dobles de test.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sahil-erp/internal/domain"
	"github.com/jhoicas/sahil-erp/internal/domain/backend"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// Store estado compartido por todos los callers.
type Store struct {
	mu            sync.Mutex
	profiles      map[string]entity.UserProfile
	approvals     map[string]string
	products      map[string]entity.Product
	customers     map[string]entity.Customer
	orders        map[string]entity.Order
	invoices      map[string]entity.Invoice
	records       map[string]entity.InventoryRecord
	notifications map[string]entity.Notification
	entries       map[string]entity.DataEntry

	calls    map[string]int
	failures map[string]error
	now      func() time.Time
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		profiles:      make(map[string]entity.UserProfile),
		approvals:     make(map[string]string),
		products:      make(map[string]entity.Product),
		customers:     make(map[string]entity.Customer),
		orders:        make(map[string]entity.Order),
		invoices:      make(map[string]entity.Invoice),
		records:       make(map[string]entity.InventoryRecord),
		notifications: make(map[string]entity.Notification),
		entries:       make(map[string]entity.DataEntry),
		calls:         make(map[string]int),
		failures:      make(map[string]error),
		now:           time.Now,
	}
}

// For devuelve el backend visto por principal.
func (s *Store) For(principal string) backend.Backend {
	return &caller{s: s, principal: principal}
}

// Calls número de invocaciones de method.
func (s *Store) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// FailNext hace que la próxima llamada a method devuelva err.
func (s *Store) FailNext(method string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[method] = err
}

// enter registra la llamada y devuelve el fallo programado, si lo hay. Requiere s.mu.
func (s *Store) enter(method string) error {
	s.calls[method]++
	if err, ok := s.failures[method]; ok {
		delete(s.failures, method)
		return err
	}
	return nil
}

var _ backend.Backend = (*caller)(nil)

type caller struct {
	s         *Store
	principal string
}

func (c *caller) lock(method string) (func(), error) {
	c.s.mu.Lock()
	if err := c.s.enter(method); err != nil {
		c.s.mu.Unlock()
		return func() {}, err
	}
	return c.s.mu.Unlock, nil
}

func (c *caller) isAdmin() bool {
	p, ok := c.s.profiles[c.principal]
	return ok && p.AppRole == entity.RoleAdmin
}

func (c *caller) requireAdmin() error {
	if !c.isAdmin() {
		return &domain.RemoteError{Code: domain.CodeUnauthorized, Message: "Unauthorized: only admins can perform this action"}
	}
	return nil
}

func notFound(what, id string) error {
	return &domain.RemoteError{Code: domain.CodeNotFound, Message: fmt.Sprintf("%s %s not found", what, id)}
}

// ── Perfil y aprobaciones ─────────────────────────────────────────────────────

func (c *caller) GetCallerUserProfile(ctx context.Context) (*entity.UserProfile, error) {
	unlock, err := c.lock("GetCallerUserProfile")
	defer unlock()
	if err != nil {
		return nil, err
	}
	p, ok := c.s.profiles[c.principal]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// SaveCallerUserProfile el primer perfil del sistema queda como admin principal y aprobado.
func (c *caller) SaveCallerUserProfile(ctx context.Context, profile entity.UserProfile) error {
	unlock, err := c.lock("SaveCallerUserProfile")
	defer unlock()
	if err != nil {
		return err
	}
	if profile.Name == "" {
		return &domain.RemoteError{Code: domain.CodeValidation, Message: "name is required"}
	}
	existing, had := c.s.profiles[c.principal]
	switch {
	case len(c.s.profiles) == 0:
		profile.AppRole = entity.RoleAdmin
		c.s.approvals[c.principal] = entity.ApprovalApproved
	case had:
		profile.AppRole = existing.AppRole // el rol sólo lo cambia un admin
	default:
		profile.AppRole = entity.RoleUser
	}
	c.s.profiles[c.principal] = profile
	return nil
}

func (c *caller) GetBootstrapState(ctx context.Context) (*entity.BootstrapState, error) {
	unlock, err := c.lock("GetBootstrapState")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := &entity.BootstrapState{
		IsAdmin:        c.isAdmin(),
		ApprovalStatus: c.s.approvals[c.principal],
	}
	out.IsApproved = out.ApprovalStatus == entity.ApprovalApproved
	if p, ok := c.s.profiles[c.principal]; ok {
		out.Profile = &p
	}
	return out, nil
}

func (c *caller) IsCallerAdmin(ctx context.Context) (bool, error) {
	unlock, err := c.lock("IsCallerAdmin")
	defer unlock()
	if err != nil {
		return false, err
	}
	return c.isAdmin(), nil
}

func (c *caller) IsCallerApproved(ctx context.Context) (bool, error) {
	unlock, err := c.lock("IsCallerApproved")
	defer unlock()
	if err != nil {
		return false, err
	}
	return c.s.approvals[c.principal] == entity.ApprovalApproved, nil
}

func (c *caller) RequestApproval(ctx context.Context) error {
	unlock, err := c.lock("RequestApproval")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.approvals[c.principal]; !ok {
		c.s.approvals[c.principal] = entity.ApprovalPending
	}
	return nil
}

func (c *caller) ListApprovals(ctx context.Context) ([]entity.UserApprovalInfo, error) {
	unlock, err := c.lock("ListApprovals")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	out := make([]entity.UserApprovalInfo, 0, len(c.s.approvals))
	for p, st := range c.s.approvals {
		out = append(out, entity.UserApprovalInfo{Principal: p, Status: st})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out, nil
}

func (c *caller) SetApproval(ctx context.Context, principal, status string) error {
	unlock, err := c.lock("SetApproval")
	defer unlock()
	if err != nil {
		return err
	}
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !entity.ValidApprovalStatus(status) {
		return &domain.RemoteError{Code: domain.CodeValidation, Message: "invalid approval status " + status}
	}
	c.s.approvals[principal] = status
	return nil
}

func (c *caller) ListUserProfiles(ctx context.Context) ([]entity.UserProfileEntry, error) {
	unlock, err := c.lock("ListUserProfiles")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if err := c.requireAdmin(); err != nil {
		return nil, err
	}
	out := make([]entity.UserProfileEntry, 0, len(c.s.profiles))
	for p, prof := range c.s.profiles {
		out = append(out, entity.UserProfileEntry{Principal: p, Profile: prof})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Principal < out[j].Principal })
	return out, nil
}

func (c *caller) AssignAppRole(ctx context.Context, principal, role string) error {
	unlock, err := c.lock("AssignAppRole")
	defer unlock()
	if err != nil {
		return err
	}
	if err := c.requireAdmin(); err != nil {
		return err
	}
	if !entity.ValidRole(role) {
		return &domain.RemoteError{Code: domain.CodeValidation, Message: "invalid role " + role}
	}
	p, ok := c.s.profiles[principal]
	if !ok {
		return notFound("user", principal)
	}
	p.AppRole = role
	c.s.profiles[principal] = p
	return nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

func (c *caller) ListProducts(ctx context.Context) ([]entity.Product, error) {
	unlock, err := c.lock("ListProducts")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(c.s.products))
	for _, p := range c.s.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *caller) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	unlock, err := c.lock("GetProduct")
	defer unlock()
	if err != nil {
		return nil, err
	}
	p, ok := c.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (c *caller) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	unlock, err := c.lock("GetProductByBarcode")
	defer unlock()
	if err != nil {
		return nil, err
	}
	for _, p := range c.s.products {
		if p.Barcode == barcode {
			return &p, nil
		}
	}
	return nil, nil
}

func (c *caller) CreateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	unlock, err := c.lock("CreateProduct")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if p.StockLevel < 0 {
		return nil, &domain.RemoteError{Code: domain.CodeValidation, Message: "stock level must be >= 0"}
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if _, dup := c.s.products[p.ID]; dup {
		return nil, &domain.RemoteError{Code: domain.CodeConflict, Message: "product " + p.ID + " already exists"}
	}
	now := c.s.now()
	p.CreatedAt, p.UpdatedAt = now, now
	c.s.products[p.ID] = p
	return &p, nil
}

func (c *caller) UpdateProduct(ctx context.Context, p entity.Product) (*entity.Product, error) {
	unlock, err := c.lock("UpdateProduct")
	defer unlock()
	if err != nil {
		return nil, err
	}
	old, ok := c.s.products[p.ID]
	if !ok {
		return nil, notFound("product", p.ID)
	}
	if p.StockLevel < 0 {
		return nil, &domain.RemoteError{Code: domain.CodeValidation, Message: "stock level must be >= 0"}
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = c.s.now()
	c.s.products[p.ID] = p
	return &p, nil
}

func (c *caller) DeleteProduct(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteProduct")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.products[id]; !ok {
		return notFound("product", id)
	}
	delete(c.s.products, id)
	return nil
}

// AdjustStock suma delta al stock; nunca deja el stock por debajo de cero.
func (c *caller) AdjustStock(ctx context.Context, productID string, delta int64) (*entity.Product, error) {
	unlock, err := c.lock("AdjustStock")
	defer unlock()
	if err != nil {
		return nil, err
	}
	p, ok := c.s.products[productID]
	if !ok {
		return nil, notFound("product", productID)
	}
	if p.StockLevel+delta < 0 {
		return nil, &domain.RemoteError{
			Code:    domain.CodeInsufficientStock,
			Message: fmt.Sprintf("insufficient stock for %s: available %d, requested %d", p.Name, p.StockLevel, -delta),
		}
	}
	p.StockLevel += delta
	p.UpdatedAt = c.s.now()
	c.s.products[productID] = p
	id := uuid.NewString()
	c.s.records[id] = entity.InventoryRecord{
		ID: id, ProductID: productID, QuantityChange: delta,
		Reason: "stock adjustment", RecordedBy: c.principal, CreatedAt: p.UpdatedAt,
	}
	return &p, nil
}

// ListLowStockProducts threshold <= 0 usa el punto de reorden de cada producto.
func (c *caller) ListLowStockProducts(ctx context.Context, threshold int64) ([]entity.Product, error) {
	unlock, err := c.lock("ListLowStockProducts")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0)
	for _, p := range c.s.products {
		if (threshold > 0 && p.StockLevel <= threshold) || (threshold <= 0 && p.IsLowStock()) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StockLevel < out[j].StockLevel })
	return out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (c *caller) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	unlock, err := c.lock("ListCustomers")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Customer, 0, len(c.s.customers))
	for _, cu := range c.s.customers {
		out = append(out, cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (c *caller) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	unlock, err := c.lock("GetCustomer")
	defer unlock()
	if err != nil {
		return nil, err
	}
	cu, ok := c.s.customers[id]
	if !ok {
		return nil, nil
	}
	return &cu, nil
}

func (c *caller) CreateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	unlock, err := c.lock("CreateCustomer")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if cu.ID == "" {
		cu.ID = uuid.NewString()
	}
	now := c.s.now()
	cu.CreatedAt, cu.UpdatedAt = now, now
	c.s.customers[cu.ID] = cu
	return &cu, nil
}

func (c *caller) UpdateCustomer(ctx context.Context, cu entity.Customer) (*entity.Customer, error) {
	unlock, err := c.lock("UpdateCustomer")
	defer unlock()
	if err != nil {
		return nil, err
	}
	old, ok := c.s.customers[cu.ID]
	if !ok {
		return nil, notFound("customer", cu.ID)
	}
	cu.CreatedAt = old.CreatedAt
	cu.UpdatedAt = c.s.now()
	c.s.customers[cu.ID] = cu
	return &cu, nil
}

func (c *caller) DeleteCustomer(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteCustomer")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.customers[id]; !ok {
		return notFound("customer", id)
	}
	delete(c.s.customers, id)
	return nil
}

// ── Pedidos ───────────────────────────────────────────────────────────────────

func (c *caller) ListOrders(ctx context.Context) ([]entity.Order, error) {
	unlock, err := c.lock("ListOrders")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(c.s.orders))
	for _, o := range c.s.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c *caller) GetOrder(ctx context.Context, id string) (*entity.Order, error) {
	unlock, err := c.lock("GetOrder")
	defer unlock()
	if err != nil {
		return nil, err
	}
	o, ok := c.s.orders[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (c *caller) CreateOrder(ctx context.Context, o entity.Order) (*entity.Order, error) {
	unlock, err := c.lock("CreateOrder")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := c.s.customers[o.CustomerID]; !ok {
		return nil, notFound("customer", o.CustomerID)
	}
	total := decimal.Zero
	for _, it := range o.Items {
		if _, ok := c.s.products[it.ProductID]; !ok {
			return nil, notFound("product", it.ProductID)
		}
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity)))
	}
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.Status == "" {
		o.Status = entity.OrderStatusPending
	}
	o.Total = total
	o.CreatedBy = c.principal
	now := c.s.now()
	o.CreatedAt, o.UpdatedAt = now, now
	c.s.orders[o.ID] = o
	return &o, nil
}

func (c *caller) UpdateOrderStatus(ctx context.Context, id, status string) error {
	unlock, err := c.lock("UpdateOrderStatus")
	defer unlock()
	if err != nil {
		return err
	}
	o, ok := c.s.orders[id]
	if !ok {
		return notFound("order", id)
	}
	o.Status = status
	o.UpdatedAt = c.s.now()
	c.s.orders[id] = o
	return nil
}

func (c *caller) DeleteOrder(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteOrder")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.orders[id]; !ok {
		return notFound("order", id)
	}
	delete(c.s.orders, id)
	return nil
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func (c *caller) ListInvoices(ctx context.Context) ([]entity.Invoice, error) {
	unlock, err := c.lock("ListInvoices")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Invoice, 0, len(c.s.invoices))
	for _, inv := range c.s.invoices {
		out = append(out, inv)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c *caller) GetInvoice(ctx context.Context, id string) (*entity.Invoice, error) {
	unlock, err := c.lock("GetInvoice")
	defer unlock()
	if err != nil {
		return nil, err
	}
	inv, ok := c.s.invoices[id]
	if !ok {
		return nil, nil
	}
	return &inv, nil
}

func (c *caller) CreateInvoice(ctx context.Context, inv entity.Invoice) (*entity.Invoice, error) {
	unlock, err := c.lock("CreateInvoice")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if _, ok := c.s.customers[inv.CustomerID]; !ok {
		return nil, notFound("customer", inv.CustomerID)
	}
	if inv.ID == "" {
		inv.ID = fmt.Sprintf("INV-%05d", len(c.s.invoices)+1)
	}
	if inv.Status == "" {
		inv.Status = entity.InvoiceStatusDraft
	}
	inv.CreatedBy = c.principal
	now := c.s.now()
	inv.CreatedAt, inv.UpdatedAt = now, now
	c.s.invoices[inv.ID] = inv
	return &inv, nil
}

func (c *caller) UpdateInvoiceStatus(ctx context.Context, id, status string) error {
	unlock, err := c.lock("UpdateInvoiceStatus")
	defer unlock()
	if err != nil {
		return err
	}
	inv, ok := c.s.invoices[id]
	if !ok {
		return notFound("invoice", id)
	}
	inv.Status = status
	inv.UpdatedAt = c.s.now()
	c.s.invoices[id] = inv
	return nil
}

func (c *caller) DeleteInvoice(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteInvoice")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.invoices[id]; !ok {
		return notFound("invoice", id)
	}
	delete(c.s.invoices, id)
	return nil
}

// ── Inventario, notificaciones, registros ─────────────────────────────────────

func (c *caller) ListInventoryRecords(ctx context.Context) ([]entity.InventoryRecord, error) {
	unlock, err := c.lock("ListInventoryRecords")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.InventoryRecord, 0, len(c.s.records))
	for _, r := range c.s.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c *caller) CreateInventoryRecord(ctx context.Context, r entity.InventoryRecord) (*entity.InventoryRecord, error) {
	unlock, err := c.lock("CreateInventoryRecord")
	defer unlock()
	if err != nil {
		return nil, err
	}
	p, ok := c.s.products[r.ProductID]
	if !ok {
		return nil, notFound("product", r.ProductID)
	}
	if p.StockLevel+r.QuantityChange < 0 {
		return nil, &domain.RemoteError{
			Code:    domain.CodeInsufficientStock,
			Message: fmt.Sprintf("insufficient stock for %s: available %d, requested %d", p.Name, p.StockLevel, -r.QuantityChange),
		}
	}
	p.StockLevel += r.QuantityChange
	c.s.products[p.ID] = p
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.RecordedBy = c.principal
	r.CreatedAt = c.s.now()
	c.s.records[r.ID] = r
	return &r, nil
}

func (c *caller) DeleteInventoryRecord(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteInventoryRecord")
	defer unlock()
	if err != nil {
		return err
	}
	if _, ok := c.s.records[id]; !ok {
		return notFound("inventory record", id)
	}
	delete(c.s.records, id)
	return nil
}

func (c *caller) ListNotifications(ctx context.Context) ([]entity.Notification, error) {
	unlock, err := c.lock("ListNotifications")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.Notification, 0)
	for _, n := range c.s.notifications {
		if n.Recipient == "" || n.Recipient == c.principal {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c *caller) CreateNotification(ctx context.Context, n entity.Notification) (*entity.Notification, error) {
	unlock, err := c.lock("CreateNotification")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = c.s.now()
	c.s.notifications[n.ID] = n
	return &n, nil
}

func (c *caller) MarkNotificationRead(ctx context.Context, id string) error {
	unlock, err := c.lock("MarkNotificationRead")
	defer unlock()
	if err != nil {
		return err
	}
	n, ok := c.s.notifications[id]
	if !ok {
		return notFound("notification", id)
	}
	n.Read = true
	c.s.notifications[id] = n
	return nil
}

func (c *caller) DeleteNotification(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteNotification")
	defer unlock()
	if err != nil {
		return err
	}
	delete(c.s.notifications, id)
	return nil
}

func (c *caller) ListDataEntries(ctx context.Context) ([]entity.DataEntry, error) {
	unlock, err := c.lock("ListDataEntries")
	defer unlock()
	if err != nil {
		return nil, err
	}
	out := make([]entity.DataEntry, 0, len(c.s.entries))
	for _, e := range c.s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (c *caller) CreateDataEntry(ctx context.Context, e entity.DataEntry) (*entity.DataEntry, error) {
	unlock, err := c.lock("CreateDataEntry")
	defer unlock()
	if err != nil {
		return nil, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedBy = c.principal
	e.CreatedAt = c.s.now()
	c.s.entries[e.ID] = e
	return &e, nil
}

func (c *caller) DeleteDataEntry(ctx context.Context, id string) error {
	unlock, err := c.lock("DeleteDataEntry")
	defer unlock()
	if err != nil {
		return err
	}
	delete(c.s.entries, id)
	return nil
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func (c *caller) GetDashboardStats(ctx context.Context) (*entity.DashboardStats, error) {
	unlock, err := c.lock("GetDashboardStats")
	defer unlock()
	if err != nil {
		return nil, err
	}
	st := &entity.DashboardStats{
		TotalProducts:  int64(len(c.s.products)),
		TotalCustomers: int64(len(c.s.customers)),
		TotalOrders:    int64(len(c.s.orders)),
		TotalInvoices:  int64(len(c.s.invoices)),
		Revenue:        decimal.Zero,
		InventoryValue: decimal.Zero,
	}
	for _, p := range c.s.products {
		if p.IsLowStock() {
			st.LowStockCount++
		}
		st.InventoryValue = st.InventoryValue.Add(p.CostPrice.Mul(decimal.NewFromInt(p.StockLevel)))
	}
	for _, o := range c.s.orders {
		if o.Status == entity.OrderStatusPending {
			st.PendingOrders++
		}
	}
	for _, inv := range c.s.invoices {
		if inv.Status == entity.InvoiceStatusPaid {
			st.Revenue = st.Revenue.Add(inv.Total)
		} else {
			st.UnpaidInvoices++
		}
	}
	return st, nil
}

func (c *caller) GetProfitLoss(ctx context.Context, from, to time.Time) (*entity.ProfitLoss, error) {
	unlock, err := c.lock("GetProfitLoss")
	defer unlock()
	if err != nil {
		return nil, err
	}
	pl := &entity.ProfitLoss{From: from, To: to, Revenue: decimal.Zero, Tax: decimal.Zero, CostOfGoods: decimal.Zero}
	for _, inv := range c.s.invoices {
		if inv.Status != entity.InvoiceStatusPaid || inv.CreatedAt.Before(from) || !inv.CreatedAt.Before(to) {
			continue
		}
		pl.Revenue = pl.Revenue.Add(inv.Subtotal)
		pl.Tax = pl.Tax.Add(inv.Tax)
		for _, it := range inv.Items {
			if p, ok := c.s.products[it.ProductID]; ok {
				pl.CostOfGoods = pl.CostOfGoods.Add(p.CostPrice.Mul(decimal.NewFromInt(it.Quantity)))
			}
		}
	}
	pl.GrossProfit = pl.Revenue.Sub(pl.CostOfGoods)
	return pl, nil
}
