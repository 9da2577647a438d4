package polling

import "time"

// Entity conjunto de datos consultable que puede refrescarse por intervalo.
type Entity string

const (
	EntityProducts         Entity = "products"
	EntityLowStock         Entity = "lowStock"
	EntityCustomers        Entity = "customers"
	EntityOrders           Entity = "orders"
	EntityInvoices         Entity = "invoices"
	EntityInventoryRecords Entity = "inventoryRecords"
	EntityNotifications    Entity = "notifications"
	EntityDataEntries      Entity = "dataEntries"
	EntityApprovals        Entity = "approvals"
	EntityUsers            Entity = "users"
	EntityStats            Entity = "stats"
)

// Gating granularidad del filtro de polling.
type Gating int

const (
	// GatingPerModule sólo refresca las entidades del módulo visible.
	GatingPerModule Gating = iota
	// GatingGlobal refresca todo mientras el dashboard esté montado.
	GatingGlobal
)

// ParseGating "module" | "global"; cualquier otro valor cae en GatingPerModule.
func ParseGating(s string) Gating {
	if s == "global" {
		return GatingGlobal
	}
	return GatingPerModule
}

// Rule intervalo de una entidad y los módulos en los que se refresca.
// Modules vacío = en cualquier módulo.
type Rule struct {
	Interval time.Duration
	Modules  []Module
}

// Table tabla declarativa (entidad, módulo) → intervalo.
type Table struct {
	gating Gating
	rules  map[Entity]Rule
}

// NewTable construye una tabla con las reglas dadas.
func NewTable(gating Gating, rules map[Entity]Rule) *Table {
	cp := make(map[Entity]Rule, len(rules))
	for e, r := range rules {
		cp[e] = r
	}
	return &Table{gating: gating, rules: cp}
}

// DefaultRules intervalos por defecto del dashboard.
func DefaultRules() map[Entity]Rule {
	return map[Entity]Rule{
		EntityProducts:         {Interval: 30 * time.Second, Modules: []Module{ModuleDashboard, ModuleInventory, ModuleBarcode, ModuleOrders}},
		EntityLowStock:         {Interval: 30 * time.Second, Modules: []Module{ModuleDashboard, ModuleInventory}},
		EntityCustomers:        {Interval: 60 * time.Second, Modules: []Module{ModuleOrders, ModuleInvoices}},
		EntityOrders:           {Interval: 15 * time.Second, Modules: []Module{ModuleDashboard, ModuleOrders}},
		EntityInvoices:         {Interval: 30 * time.Second, Modules: []Module{ModuleDashboard, ModuleInvoices}},
		EntityInventoryRecords: {Interval: 30 * time.Second, Modules: []Module{ModuleInventory}},
		EntityNotifications:    {Interval: 10 * time.Second},
		EntityDataEntries:      {Interval: 60 * time.Second, Modules: []Module{ModuleReports}},
		EntityApprovals:        {Interval: 15 * time.Second, Modules: []Module{ModuleUsers}},
		EntityUsers:            {Interval: 60 * time.Second, Modules: []Module{ModuleUsers}},
		EntityStats:            {Interval: 30 * time.Second, Modules: []Module{ModuleDashboard, ModuleAnalytics, ModuleReports}},
	}
}

// Interval intervalo de refresco de e bajo la política p; 0 significa no refrescar.
func (t *Table) Interval(p Policy, e Entity) time.Duration {
	if !p.IsActive {
		return 0
	}
	rule, ok := t.rules[e]
	if !ok || rule.Interval <= 0 {
		return 0
	}
	if t.gating == GatingGlobal || len(rule.Modules) == 0 {
		return rule.Interval
	}
	for _, m := range rule.Modules {
		if m == p.ActiveModule {
			return rule.Interval
		}
	}
	return 0
}

// Entities entidades con regla en la tabla.
func (t *Table) Entities() []Entity {
	out := make([]Entity, 0, len(t.rules))
	for e := range t.rules {
		out = append(out, e)
	}
	return out
}
