package forecast_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/mkino/larder/pkg/adapter"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/usecase/forecast"
)

func TestBuildReport(t *testing.T) {
	items := []model.InventoryItem{
		{IngredientID: 1, IngredientName: "Tomato", InventoryEnd: 20, AvgDailyUsage7d: f64(2)},
		{IngredientID: 2, IngredientName: "Basil", InventoryEnd: 4, AvgDailyUsage7d: f64(2)},
		{IngredientID: 3, IngredientName: "Flour", InventoryEnd: 0, AvgDailyUsage7d: f64(1)},
		{IngredientID: 4, IngredientName: "Salt", InventoryEnd: 100, AvgDailyUsage7d: f64(0.1)},
	}
	preds := []model.Prediction{
		// ML forecast overrides the local estimate for Tomato
		{IngredientID: 1, IngredientName: "Tomato", DaysUntilStockout: f64(3), Confidence: model.ConfidenceHigh},
		// null ML days falls back to the local estimate for Basil (4/2 = 2)
		{IngredientID: 2, IngredientName: "Basil", DaysUntilStockout: nil, Confidence: model.ConfidenceHigh},
	}

	entries := forecast.BuildReport(items, preds, 7)

	// Salt has 1000 days left and is not surfaced
	gt.A(t, entries).Length(3)

	// ascending priority: OUT_OF_STOCK, then URGENT x2 in inventory order
	gt.V(t, entries[0].IngredientName).Equal("Flour")
	gt.V(t, entries[0].Tier).Equal(model.TierOutOfStock)

	gt.V(t, entries[1].IngredientName).Equal("Tomato")
	gt.V(t, entries[1].Tier).Equal(model.TierUrgent)
	gt.V(t, entries[1].Confidence).Equal(model.ConfidenceHigh)

	gt.V(t, entries[2].IngredientName).Equal("Basil")
	gt.V(t, entries[2].Tier).Equal(model.TierUrgent)
	gt.V(t, entries[2].Confidence).Equal(model.ConfidenceLow)
	gt.N(t, *entries[2].DaysUntilStockout).Equal(2)
}

// stubAPI overrides only the calls the report needs; anything else panics.
type stubAPI struct {
	adapter.InventoryAPI
	items    []model.InventoryItem
	itemsErr error
	preds    []model.Prediction
	predsErr error
}

func (s *stubAPI) GetInventory(ctx context.Context) ([]model.InventoryItem, error) {
	return s.items, s.itemsErr
}

func (s *stubAPI) GetPredictions(ctx context.Context) ([]model.Prediction, error) {
	return s.preds, s.predsErr
}

func TestReportDegradesWithoutPredictions(t *testing.T) {
	api := &stubAPI{
		items: []model.InventoryItem{
			{IngredientID: 1, IngredientName: "Tomato", InventoryEnd: 4, AvgDailyUsage7d: f64(2)},
		},
		predsErr: goerr.New("prediction service down"),
	}

	entries := gt.R1(forecast.Report(context.Background(), api, 7)).NoError(t)
	gt.A(t, entries).Length(1)
	gt.V(t, entries[0].Confidence).Equal(model.ConfidenceLow)
}

func TestReportInventoryFailureIsFatal(t *testing.T) {
	api := &stubAPI{itemsErr: goerr.New("api down")}
	_, err := forecast.Report(context.Background(), api, 7)
	gt.Error(t, err)
}

func TestReportRejectsBadTimeframe(t *testing.T) {
	_, err := forecast.Report(context.Background(), &stubAPI{}, 10)
	gt.Error(t, err)
}
