package models

// DashboardSummary is the read model behind the landing dashboard.
type DashboardSummary struct {
	InventoryCount int             `json:"inventoryCount"`
	WasteCount     int             `json:"wasteCount"`
	ExpiringCount  int             `json:"expiringCount"`
	LowStockCount  int             `json:"lowStockCount"`
	ExpiringItems  []InventoryItem `json:"expiringItems"`
	LowStockItems  []InventoryItem `json:"lowStockItems"`
}

// WasteBreakdown groups waste quantity by reason over a trailing window.
type WasteBreakdown struct {
	WindowDays       int                `json:"windowDays"`
	ByReason         map[string]float64 `json:"byReason"`
	TotalWaste       float64            `json:"totalWaste"`
	TotalConsumption float64            `json:"totalConsumption"`
}

// DailyQuantity is one day of actual or predicted usage.
type DailyQuantity struct {
	Date     string  `json:"date"` // YYYY-MM-DD
	Quantity float64 `json:"quantity"`
}

// ItemForecast pairs the recent actuals with the flat forward prediction.
type ItemForecast struct {
	ItemID    string          `json:"itemId"`
	ItemName  string          `json:"itemName"`
	Unit      string          `json:"unit"`
	Actuals   []DailyQuantity `json:"actuals"`
	Predicted []DailyQuantity `json:"predicted"`
}
