package handlers

import (
	"myshop/internal/domain"
)

var stepLabels = map[string]map[string]string{
	"id": {
		"collect_basics":   "Mengumpulkan informasi dasar",
		"find_logo":        "Mencari logo toko",
		"catalog_products": "Mengkatalogkan produk",
		"gather_photos":    "Mengumpulkan foto",
	},
}

// localizeSteps returns a copy of steps with labels in locale. Steps without a
// translation keep their default label.
func localizeSteps(steps []domain.Step, locale string) []domain.Step {
	out := make([]domain.Step, len(steps))
	copy(out, steps)
	labels, ok := stepLabels[locale]
	if !ok {
		return out
	}
	for i := range out {
		if label, ok := labels[out[i].ID]; ok {
			out[i].Label = label
		}
	}
	return out
}
