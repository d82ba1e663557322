package presenter

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/erp-portal/internal/application/dto"
	"github.com/jhoicas/erp-portal/internal/domain/entity"
)

// UnlimitedLabel texto para límites sin techo.
const UnlimitedLabel = "Unlimited"

var limitLabels = map[entity.LimitKind]string{
	entity.LimitUsers:               "Users",
	entity.LimitBranches:            "Branches",
	entity.LimitWarehouses:          "Warehouses",
	entity.LimitMonthlyTransactions: "Transactions",
}

var knownLimits = []entity.LimitKind{
	entity.LimitUsers, entity.LimitBranches, entity.LimitWarehouses, entity.LimitMonthlyTransactions,
}

// LimitLabels límites del plan con etiqueta y valor legibles: primero los conocidos,
// luego cualquier otro en orden alfabético.
func LimitLabels(limits entity.Limits) []dto.LimitView {
	p := message.NewPrinter(language.English)
	title := cases.Title(language.English)

	out := make([]dto.LimitView, 0, len(limits))
	add := func(kind entity.LimitKind, v int) {
		label, ok := limitLabels[kind]
		if !ok {
			label = title.String(strings.ReplaceAll(string(kind), "_", " "))
		}
		text := UnlimitedLabel
		if v != entity.Unlimited {
			text = p.Sprintf("%d", v)
		}
		out = append(out, dto.LimitView{Kind: string(kind), Label: label, Value: v, Text: text})
	}

	for _, k := range knownLimits {
		if v, ok := limits[k]; ok {
			add(k, v)
		}
	}
	extra := make([]string, 0)
	for k := range limits {
		if _, known := limitLabels[k]; !known {
			extra = append(extra, string(k))
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		add(entity.LimitKind(k), limits[entity.LimitKind(k)])
	}
	return out
}
