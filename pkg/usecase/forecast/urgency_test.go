package forecast_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mkino/larder/pkg/model"
	"github.com/mkino/larder/pkg/usecase/forecast"
)

func TestBuffer(t *testing.T) {
	tests := []struct {
		timeframe int
		expected  int
	}{
		{1, 2},
		{3, 2},
		{7, 2},
		{14, 2},
		{30, 6},
	}

	for _, tt := range tests {
		gt.N(t, forecast.Buffer(tt.timeframe)).Equal(tt.expected)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		stock     float64
		days      *float64
		timeframe int
		expected  model.UrgencyTier
	}{
		{
			name:      "zero stock is out of stock regardless of prediction",
			stock:     0,
			days:      f64(100),
			timeframe: 7,
			expected:  model.TierOutOfStock,
		},
		{
			name:      "negative predicted days is out of stock",
			stock:     5,
			days:      f64(-1),
			timeframe: 7,
			expected:  model.TierOutOfStock,
		},
		{
			name:      "shortfall of 5 is urgent",
			stock:     5,
			days:      f64(2),
			timeframe: 7,
			expected:  model.TierUrgent,
		},
		{
			name:      "shortfall of exactly 4 is urgent",
			stock:     5,
			days:      f64(3),
			timeframe: 7,
			expected:  model.TierUrgent,
		},
		{
			name:      "shortfall of exactly 2 needs reorder",
			stock:     5,
			days:      f64(5),
			timeframe: 7,
			expected:  model.TierNeedsReorder,
		},
		{
			name:      "shortfall of 1 plans reorder",
			stock:     5,
			days:      f64(6),
			timeframe: 7,
			expected:  model.TierPlanReorder,
		},
		{
			name:      "negative shortfall with prediction monitors",
			stock:     5,
			days:      f64(9),
			timeframe: 7,
			expected:  model.TierMonitor,
		},
		{
			name:      "no prediction and stocked is ok",
			stock:     5,
			days:      nil,
			timeframe: 7,
			expected:  model.TierOK,
		},
		{
			name:      "no prediction but empty is out of stock",
			stock:     0,
			days:      nil,
			timeframe: 7,
			expected:  model.TierOutOfStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := forecast.Classify(tt.stock, tt.days, tt.timeframe)
			gt.V(t, got).Equal(tt.expected)

			// pure function: stable under repetition
			gt.V(t, forecast.Classify(tt.stock, tt.days, tt.timeframe)).Equal(got)
		})
	}
}

func TestSurfaced(t *testing.T) {
	// buffer for T=7 is 2, so the cutoff is 9 days
	gt.True(t, forecast.Surfaced(5, f64(9), 7))
	gt.False(t, forecast.Surfaced(5, f64(9.5), 7))
	gt.True(t, forecast.Surfaced(0, nil, 7))
	gt.False(t, forecast.Surfaced(5, nil, 7))
}

func TestValidateTimeframe(t *testing.T) {
	for _, days := range []int{1, 3, 7, 14, 30} {
		gt.NoError(t, forecast.ValidateTimeframe(days))
	}
	gt.Error(t, forecast.ValidateTimeframe(0))
	gt.Error(t, forecast.ValidateTimeframe(10))
}

func TestTierPriority(t *testing.T) {
	order := []model.UrgencyTier{
		model.TierOutOfStock,
		model.TierUrgent,
		model.TierNeedsReorder,
		model.TierPlanReorder,
		model.TierMonitor,
		model.TierOK,
	}
	for i := 1; i < len(order); i++ {
		gt.True(t, order[i-1].Priority() < order[i].Priority())
	}
}
