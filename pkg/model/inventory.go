package model

// Ingredient is a row of the master ingredient catalog.
type Ingredient struct {
	IngredientID   int64   `json:"ingredient_id"`
	IngredientName string  `json:"ingredient_name"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category,omitempty"`
	UnitCost       float64 `json:"unit_cost,omitempty"`
	ShelfLifeDays  *int    `json:"shelf_life_days,omitempty"`
}

// RestaurantIngredient links a catalog ingredient to a restaurant with its
// reorder settings.
type RestaurantIngredient struct {
	RestaurantID    int64 `json:"restaurant_id"`
	IngredientID    int64 `json:"ingredient_id"`
	LeadTimeDays    int   `json:"lead_time_days"`
	SafetyStockDays int   `json:"safety_stock_days"`
	IsActive        bool  `json:"is_active"`
}

// InventoryItem is the latest daily snapshot for one ingredient. Quantities
// are non-negative; usage averages are per day and nil when the window has
// no data yet.
type InventoryItem struct {
	IngredientID     int64    `json:"ingredient_id"`
	IngredientName   string   `json:"ingredient_name"`
	Unit             string   `json:"unit"`
	LogDate          string   `json:"log_date"`
	InventoryStart   float64  `json:"inventory_start"`
	QtyUsed          float64  `json:"qty_used"`
	InventoryEnd     float64  `json:"inventory_end"`
	OnOrderQty       float64  `json:"on_order_qty"`
	AvgDailyUsage7d  *float64 `json:"avg_daily_usage_7d"`
	AvgDailyUsage28d *float64 `json:"avg_daily_usage_28d"`
}

// MenuItem is a dish on the menu.
type MenuItem struct {
	MenuItemID int64   `json:"menu_item_id"`
	ItemName   string  `json:"item_name"`
	Price      float64 `json:"price"`
	IsActive   bool    `json:"is_active"`
}

// MenuItemIngredient is one recipe line of a menu item.
type MenuItemIngredient struct {
	MenuItemID   int64   `json:"menu_item_id"`
	IngredientID int64   `json:"ingredient_id"`
	QtyPerItem   float64 `json:"qty_per_item"`
}

// Prediction confidence markers. ML-sourced forecasts are "high", locally
// computed fallback estimates are "low".
const (
	ConfidenceHigh = "high"
	ConfidenceLow  = "low"
)

// Prediction is a days-until-stockout forecast for one ingredient.
// DaysUntilStockout is nil when usage is zero or unknown; it must never be a
// divide-by-zero artifact.
type Prediction struct {
	IngredientID      int64    `json:"ingredient_id"`
	IngredientName    string   `json:"ingredient_name"`
	CurrentInventory  float64  `json:"current_inventory"`
	OnOrderQty        float64  `json:"on_order_qty"`
	AvgDailyUsage     float64  `json:"avg_daily_usage"`
	DaysUntilStockout *float64 `json:"days_until_stockout"`
	Confidence        string   `json:"confidence"`
}

// RestockResult is the data API's answer to a restock call.
type RestockResult struct {
	IngredientID int64   `json:"ingredient_id"`
	RestockQty   float64 `json:"restock_qty"`
	InventoryEnd float64 `json:"inventory_end"`
}
