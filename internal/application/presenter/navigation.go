package presenter

import (
	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/access"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

var moduleLabels = map[entity.Module]string{
	entity.ModulePOS:           "POS",
	entity.ModuleInventory:     "Inventory",
	entity.ModuleSales:         "Sales & CRM",
	entity.ModulePurchase:      "Purchase",
	entity.ModuleHR:            "HR & Payroll",
	entity.ModuleAccounting:    "Accounting",
	entity.ModuleManufacturing: "Manufacturing",
	entity.ModuleAssets:        "Fixed Assets",
	entity.ModuleActivityLogs:  "Activity Logs",
	entity.ModuleSettings:      "Settings",
}

// ModuleLabel etiqueta de la pestaña de un módulo.
func ModuleLabel(m entity.Module) string {
	if l, ok := moduleLabels[m]; ok {
		return l
	}
	return string(m)
}

// Navigation pestañas del dashboard: Dashboard, módulos de plan visibles, Subscription y
// después los siempre activos visibles.
func Navigation(visible entity.ModuleSet) []dto.NavItem {
	items := []dto.NavItem{{Key: "dashboard", Label: "Dashboard", Path: access.PathCustomerDashboard}}
	for _, m := range visible.Sorted() {
		if m.IsAlwaysOn() {
			continue
		}
		items = append(items, dto.NavItem{Key: string(m), Label: ModuleLabel(m), Path: access.ModulePath(m)})
	}
	items = append(items, dto.NavItem{Key: "subscription", Label: "Subscription", Path: access.PathSubscription})
	for _, m := range entity.AlwaysOn {
		if visible.Has(m) {
			items = append(items, dto.NavItem{Key: string(m), Label: ModuleLabel(m), Path: access.ModulePath(m)})
		}
	}
	return items
}

// ModuleKeys identificadores de los módulos visibles, en orden de catálogo.
func ModuleKeys(visible entity.ModuleSet) []string {
	out := make([]string, 0, len(visible))
	for _, m := range visible.Sorted() {
		out = append(out, string(m))
	}
	return out
}
