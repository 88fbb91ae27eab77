package forecast

import (
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mkino/larder/pkg/model"
)

// Timeframes supported by the reorder report, in days.
var Timeframes = []int{1, 3, 7, 14, 30}

// ValidateTimeframe checks that the requested horizon is a supported value.
func ValidateTimeframe(days int) error {
	for _, t := range Timeframes {
		if days == t {
			return nil
		}
	}
	return goerr.New("unsupported timeframe", goerr.Value("days", days))
}

// Buffer is the extra slack added to the timeframe when deciding whether an
// ingredient is surfaced at all: max(2, floor(T*0.2)).
func Buffer(timeframe int) int {
	b := int(math.Floor(float64(timeframe) * 0.2))
	if b < 2 {
		return 2
	}
	return b
}

// Surfaced reports whether an ingredient appears in the reorder report for
// the given timeframe.
func Surfaced(stock float64, daysUntilStockout *float64, timeframe int) bool {
	if stock <= 0 {
		return true
	}
	if daysUntilStockout == nil {
		return false
	}
	return *daysUntilStockout <= float64(timeframe+Buffer(timeframe))
}

// Classify assigns the urgency tier for one ingredient. It is a pure
// function of its three inputs; the boundary values are fixed product
// thresholds.
func Classify(stock float64, daysUntilStockout *float64, timeframe int) model.UrgencyTier {
	if stock <= 0 {
		return model.TierOutOfStock
	}
	if daysUntilStockout == nil {
		return model.TierOK
	}
	if *daysUntilStockout <= 0 {
		return model.TierOutOfStock
	}

	shortfall := float64(timeframe) - *daysUntilStockout
	switch {
	case shortfall >= 4:
		return model.TierUrgent
	case shortfall >= 2:
		return model.TierNeedsReorder
	case shortfall > 0:
		return model.TierPlanReorder
	default:
		return model.TierMonitor
	}
}
