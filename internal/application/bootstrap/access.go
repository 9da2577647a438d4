package bootstrap

import (
	"github.com/jhoicas/sahil-erp/internal/application/polling"
	"github.com/jhoicas/sahil-erp/internal/domain/entity"
)

// moduleRoles roles con acceso a cada módulo. Dashboard no figura: es de todos.
var moduleRoles = map[polling.Module][]string{
	polling.ModuleUsers:     {entity.RoleAdmin},
	polling.ModuleInventory: {entity.RoleAdmin, entity.RoleInventoryManager},
	polling.ModuleBarcode:   {entity.RoleAdmin, entity.RoleInventoryManager},
	polling.ModuleInvoices:  {entity.RoleAdmin, entity.RoleSales, entity.RoleAccountant},
	polling.ModuleOrders:    {entity.RoleAdmin, entity.RoleSales, entity.RoleInventoryManager},
	polling.ModuleReports:   {entity.RoleAdmin, entity.RoleAccountant},
	polling.ModuleAnalytics: {entity.RoleAdmin, entity.RoleAccountant},
}

// Access banderas de acceso de la identidad.
type Access struct {
	IsAdmin    bool
	IsApproved bool
	// IsSecondaryAdmin ve todo como admin salvo la gestión de usuarios.
	IsSecondaryAdmin bool
	CanManageUsers   bool
	Role             string
}

// NewAccess calcula el acceso a partir del estado del backend.
func NewAccess(st *entity.BootstrapState, secondary bool) Access {
	a := Access{IsSecondaryAdmin: secondary}
	if st == nil {
		return a
	}
	a.IsAdmin = st.IsAdmin
	a.IsApproved = st.IsApproved
	if st.Profile != nil {
		a.Role = st.Profile.AppRole
	}
	if a.IsAdmin {
		a.Role = entity.RoleAdmin
	}
	a.CanManageUsers = a.IsAdmin && !secondary
	return a
}

// CanAccess informa si el módulo m está disponible.
func (a Access) CanAccess(m polling.Module) bool {
	if m == polling.ModuleDashboard {
		return true
	}
	if m == polling.ModuleUsers {
		return a.CanManageUsers
	}
	if a.IsAdmin || a.IsSecondaryAdmin {
		return true
	}
	for _, r := range moduleRoles[m] {
		if r == a.Role {
			return true
		}
	}
	return false
}

// Modules módulos disponibles, en el orden del menú.
func (a Access) Modules() []polling.Module {
	out := make([]polling.Module, 0, len(polling.Modules))
	for _, m := range polling.Modules {
		if a.CanAccess(m) {
			out = append(out, m)
		}
	}
	return out
}
