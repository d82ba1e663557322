package entity

import (
	"sort"
	"strings"
	"time"
)

// Module área funcional habilitable por plan.
type Module string

const (
	ModulePOS           Module = "pos"
	ModuleInventory     Module = "inventory"
	ModuleSales         Module = "sales"
	ModulePurchase      Module = "purchase"
	ModuleHR            Module = "hr"
	ModuleAccounting    Module = "accounting"
	ModuleManufacturing Module = "manufacturing"
	ModuleAssets        Module = "assets"

	// Siempre activos, visibles solo para rol admin (o sin rol).
	ModuleActivityLogs Module = "activity_logs"
	ModuleSettings     Module = "settings"
)

// Catalog módulos de plan en el orden de las pestañas del dashboard.
var Catalog = []Module{
	ModulePOS, ModuleInventory, ModuleSales, ModulePurchase,
	ModuleHR, ModuleAccounting, ModuleManufacturing, ModuleAssets,
}

// AlwaysOn módulos presentes en todo snapshot sin importar el plan.
var AlwaysOn = []Module{ModuleActivityLogs, ModuleSettings}

// order posición de cada módulo para listados estables.
var order = func() map[Module]int {
	m := make(map[Module]int, len(Catalog)+len(AlwaysOn))
	for i, mod := range append(append([]Module{}, Catalog...), AlwaysOn...) {
		m[mod] = i
	}
	return m
}()

// ParseModule normaliza un identificador del backend; ok=false si no pertenece al catálogo.
func ParseModule(s string) (Module, bool) {
	m := Module(strings.ToLower(strings.TrimSpace(s)))
	_, ok := order[m]
	return m, ok
}

// IsAlwaysOn informa si el módulo es de los siempre activos.
func (m Module) IsAlwaysOn() bool {
	return m == ModuleActivityLogs || m == ModuleSettings
}

// ModuleSet conjunto de módulos.
type ModuleSet map[Module]struct{}

// NewModuleSet construye un conjunto desde módulos.
func NewModuleSet(mods ...Module) ModuleSet {
	s := make(ModuleSet, len(mods))
	for _, m := range mods {
		s[m] = struct{}{}
	}
	return s
}

// ModuleSetFromStrings ignora identificadores fuera del catálogo.
func ModuleSetFromStrings(ids []string) ModuleSet {
	s := make(ModuleSet, len(ids))
	for _, id := range ids {
		if m, ok := ParseModule(id); ok {
			s[m] = struct{}{}
		}
	}
	return s
}

// Has informa pertenencia.
func (s ModuleSet) Has(m Module) bool {
	_, ok := s[m]
	return ok
}

// Intersect devuelve los módulos presentes en ambos conjuntos.
func (s ModuleSet) Intersect(o ModuleSet) ModuleSet {
	out := make(ModuleSet)
	for m := range s {
		if o.Has(m) {
			out[m] = struct{}{}
		}
	}
	return out
}

// Sorted devuelve los módulos en orden de catálogo.
func (s ModuleSet) Sorted() []Module {
	out := make([]Module, 0, len(s))
	for m := range s {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return order[out[i]] < order[out[j]] })
	return out
}

// LimitKind recurso con techo por plan.
type LimitKind string

const (
	LimitUsers               LimitKind = "users"
	LimitBranches            LimitKind = "branches"
	LimitWarehouses          LimitKind = "warehouses"
	LimitMonthlyTransactions LimitKind = "monthly_transactions"
)

// Unlimited centinela de límite sin techo.
const Unlimited = -1

// Limits techos por recurso.
type Limits map[LimitKind]int

// Allows informa si se puede usar una unidad más del recurso. Sin límite declarado = permitido.
func (l Limits) Allows(kind LimitKind, used int) bool {
	ceiling, ok := l[kind]
	if !ok || ceiling == Unlimited {
		return true
	}
	return used < ceiling
}

// Snapshot lo que el tenant puede usar ahora mismo. Solo vive en memoria.
type Snapshot struct {
	EnabledModules ModuleSet
	Limits         Limits
	Subscription   *Subscription // nil si la carga falló o la sesión no tiene suscripción
	FetchedAt      time.Time
	Err            error // ErrEntitlementFetch / ErrAuth cuando la carga falló
}

// Failed informa si la carga falló (el snapshot queda cerrado).
func (s Snapshot) Failed() bool { return s.Err != nil }
