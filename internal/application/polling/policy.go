// Package polling decide si el refresco en segundo plano debe correr y para qué módulo.
package polling

import "sync"

// Module pestaña del dashboard.
type Module string

const (
	ModuleNone      Module = ""
	ModuleDashboard Module = "dashboard"
	ModuleInventory Module = "inventory"
	ModuleOrders    Module = "orders"
	ModuleInvoices  Module = "invoices"
	ModuleUsers     Module = "users"
	ModuleReports   Module = "reports"
	ModuleBarcode   Module = "barcode"
	ModuleAnalytics Module = "analytics"
)

// Modules todos los módulos conocidos.
var Modules = []Module{
	ModuleDashboard, ModuleInventory, ModuleOrders, ModuleInvoices,
	ModuleUsers, ModuleReports, ModuleBarcode, ModuleAnalytics,
}

// ParseModule valida un nombre de módulo.
func ParseModule(s string) (Module, bool) {
	for _, m := range Modules {
		if string(m) == s {
			return m, true
		}
	}
	return ModuleNone, false
}

// Policy foto inmutable del estado de polling.
type Policy struct {
	IsActive     bool   `json:"isActive"`
	ActiveModule Module `json:"activeModule"`
}

// Controller estado de polling de una sesión. Ninguna operación bloquea ni falla;
// cada cambio se notifica a los suscriptores.
type Controller struct {
	mu     sync.Mutex
	policy Policy
	subs   map[int]chan struct{}
	nextID int
}

// NewController crea un controller inactivo y sin módulo.
func NewController() *Controller {
	return &Controller{subs: make(map[int]chan struct{})}
}

// EnablePolling se llama al montar el dashboard.
func (c *Controller) EnablePolling() {
	c.update(func(p *Policy) { p.IsActive = true })
}

// DisablePolling se llama al desmontar el dashboard.
func (c *Controller) DisablePolling() {
	c.update(func(p *Policy) { p.IsActive = false })
}

// SetActiveModule registra la pestaña visible.
func (c *Controller) SetActiveModule(m Module) {
	c.update(func(p *Policy) { p.ActiveModule = m })
}

// Policy devuelve el estado actual.
func (c *Controller) Policy() Policy {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.policy
}

// Subscribe devuelve un canal que recibe una señal tras cada cambio. Las señales se
// coalescen: el canal tiene buffer 1 y quien lee debe consultar Policy().
func (c *Controller) Subscribe() (<-chan struct{}, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextID
	c.nextID++
	ch := make(chan struct{}, 1)
	c.subs[id] = ch
	return ch, func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

func (c *Controller) update(fn func(p *Policy)) {
	c.mu.Lock()
	before := c.policy
	fn(&c.policy)
	changed := before != c.policy
	var targets []chan struct{}
	if changed {
		targets = make([]chan struct{}, 0, len(c.subs))
		for _, ch := range c.subs {
			targets = append(targets, ch)
		}
	}
	c.mu.Unlock()

	for _, ch := range targets {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
