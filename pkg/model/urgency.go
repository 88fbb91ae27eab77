package model

// UrgencyTier is a derived classification of how soon an ingredient needs
// reordering. It is recomputed on every report and never stored.
type UrgencyTier string

const (
	TierOutOfStock   UrgencyTier = "OUT_OF_STOCK"
	TierUrgent       UrgencyTier = "URGENT"
	TierNeedsReorder UrgencyTier = "NEEDS_REORDER"
	TierPlanReorder  UrgencyTier = "PLAN_REORDER"
	TierMonitor      UrgencyTier = "MONITOR"
	TierOK           UrgencyTier = "OK"
)

// Priority returns the sort rank of the tier. Lower sorts first.
func (t UrgencyTier) Priority() int {
	switch t {
	case TierOutOfStock:
		return 1
	case TierUrgent:
		return 2
	case TierNeedsReorder:
		return 3
	case TierPlanReorder:
		return 4
	case TierMonitor:
		return 5
	default:
		return 6
	}
}
