// Package forecast computes client-side stockout estimates and reorder
// urgency from raw inventory figures. It is the degradation path for when
// the ML forecasting service has no answer for an ingredient.
package forecast

import (
	"math"

	"github.com/mkino/larder/pkg/model"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// usageOf picks the usage window for an item: the 7-day average when
// available, otherwise the 28-day one. Returns 0 when neither exists.
func usageOf(item model.InventoryItem) float64 {
	if item.AvgDailyUsage7d != nil {
		return *item.AvgDailyUsage7d
	}
	if item.AvgDailyUsage28d != nil {
		return *item.AvgDailyUsage28d
	}
	return 0
}

// Fallback produces one low-confidence prediction per inventory item. Items
// with zero or unknown usage get a nil DaysUntilStockout, never a
// divide-by-zero artifact. It always returns one record per input item.
func Fallback(items []model.InventoryItem) []model.Prediction {
	preds := make([]model.Prediction, 0, len(items))

	for _, item := range items {
		usage := usageOf(item)
		available := item.InventoryEnd + item.OnOrderQty

		var days *float64
		if usage > 0 {
			d := round2(available / usage)
			days = &d
		}

		preds = append(preds, model.Prediction{
			IngredientID:      item.IngredientID,
			IngredientName:    item.IngredientName,
			CurrentInventory:  item.InventoryEnd,
			OnOrderQty:        item.OnOrderQty,
			AvgDailyUsage:     usage,
			DaysUntilStockout: days,
			Confidence:        model.ConfidenceLow,
		})
	}

	return preds
}
