package service

import (
	"context"
	"time"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

// Reports exposes the read models behind the dashboard, the waste report and
// the forecast page. Pure read side: nothing here writes.
type Reports struct {
	ledger   *Ledger
	recorder *Recorder
	now      func() time.Time
}

// NewReports wires the report queries to the ledger and recorder.
func NewReports(ledger *Ledger, recorder *Recorder) *Reports {
	return &Reports{ledger: ledger, recorder: recorder, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (r *Reports) SetClock(now func() time.Time) { r.now = now }

// DashboardSummary gathers the landing-page counts. The three underlying
// queries stand or fall together: the first failure aborts the whole summary,
// there is no partial result.
func (r *Reports) DashboardSummary(ctx context.Context) (*models.DashboardSummary, error) {
	items, err := r.ledger.ListItems(ctx, ListFilter{Kind: ListAll})
	if err != nil {
		return nil, err
	}
	expiring, err := r.ledger.ListItems(ctx, ListFilter{Kind: ListExpiring})
	if err != nil {
		return nil, err
	}
	waste, err := r.recorder.ListWaste(ctx, EventQuery{})
	if err != nil {
		return nil, err
	}

	var lowStock []models.InventoryItem
	for _, item := range items {
		if IsLowStock(item) {
			lowStock = append(lowStock, item)
		}
	}

	return &models.DashboardSummary{
		InventoryCount: len(items),
		WasteCount:     len(waste),
		ExpiringCount:  len(expiring),
		LowStockCount:  len(lowStock),
		ExpiringItems:  expiring,
		LowStockItems:  lowStock,
	}, nil
}

// WasteBreakdown totals waste quantity per reason over the trailing window,
// alongside total consumption for the same window. windowDays <= 0 defaults
// to 30.
func (r *Reports) WasteBreakdown(ctx context.Context, windowDays int) (*models.WasteBreakdown, error) {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	since := r.now().UTC().AddDate(0, 0, -windowDays)

	waste, err := r.recorder.ListWaste(ctx, EventQuery{Since: since})
	if err != nil {
		return nil, err
	}
	consumption, err := r.recorder.ListConsumption(ctx, EventQuery{Since: since})
	if err != nil {
		return nil, err
	}

	breakdown := &models.WasteBreakdown{
		WindowDays: windowDays,
		ByReason:   make(map[string]float64),
	}
	for _, e := range waste {
		breakdown.ByReason[e.Reason] += e.Quantity
		breakdown.TotalWaste += e.Quantity
	}
	for _, e := range consumption {
		breakdown.TotalConsumption += e.Quantity
	}
	return breakdown, nil
}

// ForecastFor returns the item's last seven days of actual consumption plus
// a seven-day flat forecast computed from the trailing 30-day window.
func (r *Reports) ForecastFor(ctx context.Context, itemID string) (*models.ItemForecast, error) {
	item, err := r.ledger.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()
	entries, err := r.recorder.ListConsumption(ctx, EventQuery{
		ItemID:    itemID,
		Since:     now.AddDate(0, 0, -DefaultWindowDays),
		Ascending: true,
	})
	if err != nil {
		return nil, err
	}

	grouped := GroupConsumptionByDay(entries)

	actuals := make([]models.DailyQuantity, 0, DefaultHorizonDays)
	for _, day := range LastNDays(now, DefaultHorizonDays) {
		actuals = append(actuals, models.DailyQuantity{Date: day, Quantity: grouped[day]})
	}

	predicted := make([]models.DailyQuantity, 0, DefaultHorizonDays)
	forecast := Forecast(grouped, DefaultHorizonDays)
	for i, day := range NextNDays(now, DefaultHorizonDays) {
		predicted = append(predicted, models.DailyQuantity{Date: day, Quantity: forecast[i]})
	}

	return &models.ItemForecast{
		ItemID:    item.ID,
		ItemName:  item.Name,
		Unit:      item.Unit,
		Actuals:   actuals,
		Predicted: predicted,
	}, nil
}
