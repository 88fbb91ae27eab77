package forecast

import (
	"context"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/utils/logging"
)

// Entry is one surfaced ingredient of the reorder report.
type Entry struct {
	IngredientID      int64
	IngredientName    string
	Unit              string
	Stock             float64
	OnOrderQty        float64
	DaysUntilStockout *float64
	Confidence        string
	Tier              model.UrgencyTier
}

// BuildReport merges inventory with predictions, preferring an ML forecast
// with a usable days-until-stockout and falling back to the locally computed
// estimate otherwise, then classifies, filters and sorts. Sort is ascending
// tier priority with original inventory order preserved on ties.
func BuildReport(items []model.InventoryItem, preds []model.Prediction, timeframe int) []Entry {
	byID := make(map[int64]model.Prediction, len(preds))
	for _, p := range preds {
		existing, ok := byID[p.IngredientID]
		if !ok || (existing.DaysUntilStockout == nil && p.DaysUntilStockout != nil) {
			byID[p.IngredientID] = p
		}
	}

	fallback := Fallback(items)
	fallbackByID := make(map[int64]model.Prediction, len(fallback))
	for _, p := range fallback {
		fallbackByID[p.IngredientID] = p
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		pred, ok := byID[item.IngredientID]
		if !ok || pred.DaysUntilStockout == nil {
			pred = fallbackByID[item.IngredientID]
		}

		if !Surfaced(item.InventoryEnd, pred.DaysUntilStockout, timeframe) {
			continue
		}

		tier := Classify(item.InventoryEnd, pred.DaysUntilStockout, timeframe)
		if tier == model.TierOK {
			continue
		}

		entries = append(entries, Entry{
			IngredientID:      item.IngredientID,
			IngredientName:    item.IngredientName,
			Unit:              item.Unit,
			Stock:             item.InventoryEnd,
			OnOrderQty:        item.OnOrderQty,
			DaysUntilStockout: pred.DaysUntilStockout,
			Confidence:        pred.Confidence,
			Tier:              tier,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Tier.Priority() < entries[j].Tier.Priority()
	})

	return entries
}

// Report fetches inventory and predictions, then builds the reorder report
// for the given timeframe. A failed prediction fetch degrades to fallback
// estimates only; a failed inventory fetch is a hard error.
func Report(ctx context.Context, api adapter.InventoryAPI, timeframe int) ([]Entry, error) {
	if err := ValidateTimeframe(timeframe); err != nil {
		return nil, err
	}

	items, err := api.GetInventory(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch inventory")
	}

	preds, err := api.GetPredictions(ctx)
	if err != nil {
		logging.From(ctx).Warn("prediction fetch failed, using fallback only", "error", err)
		preds = nil
	}

	return BuildReport(items, preds, timeframe), nil
}
