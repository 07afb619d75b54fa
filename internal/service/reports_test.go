package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshtrack/freshtrack-golang/internal/models"
)

func newTestReports(t *testing.T) (*Reports, *Recorder, *Ledger) {
	t.Helper()
	recorder, ledger := newTestRecorder(t)
	reports := NewReports(ledger, recorder)
	reports.SetClock(func() time.Time { return testNow })
	return reports, recorder, ledger
}

func TestDashboardSummary(t *testing.T) {
	reports, recorder, ledger := newTestReports(t)
	ctx := context.Background()

	// expiring within 3 days of 2024-03-15, and low on stock (dairy < 2)
	urgent := validItem()
	urgent.Name = "urgent"
	urgent.Quantity = 1
	urgent.PurchaseDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	urgent.ExpiryDate = time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	_, err := ledger.CreateItem(ctx, urgent)
	require.NoError(t, err)

	fine := validItem()
	fine.Name = "fine"
	fine.Quantity = 10
	fine.PurchaseDate = time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	fine.ExpiryDate = time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC)
	item, err := ledger.CreateItem(ctx, fine)
	require.NoError(t, err)

	_, err = recorder.RecordWaste(ctx, WasteInput{ItemID: item.ID, Quantity: 1, Reason: models.WasteSpoiled})
	require.NoError(t, err)

	summary, err := reports.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.InventoryCount)
	assert.Equal(t, 1, summary.WasteCount)
	assert.Equal(t, 1, summary.ExpiringCount)
	assert.Equal(t, 1, summary.LowStockCount)
	require.Len(t, summary.ExpiringItems, 1)
	assert.Equal(t, "urgent", summary.ExpiringItems[0].Name)
	require.Len(t, summary.LowStockItems, 1)
	assert.Equal(t, "urgent", summary.LowStockItems[0].Name)
}

func TestWasteBreakdown(t *testing.T) {
	reports, recorder, ledger := newTestReports(t)
	ctx := context.Background()

	item := createItemWithQuantity(t, ledger, 100)

	mkWaste := func(qty float64, reason string, daysAgo int) {
		_, err := recorder.RecordWaste(ctx, WasteInput{
			ItemID:   item.ID,
			Quantity: qty,
			Reason:   reason,
			Date:     testNow.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}
	mkWaste(2, models.WasteExpired, 1)
	mkWaste(1, models.WasteExpired, 5)
	mkWaste(4, models.WasteSpoiled, 10)
	mkWaste(8, models.WasteDamaged, 40) // outside the 30-day window

	_, err := recorder.RecordConsumption(ctx, ConsumptionInput{
		ItemID:   item.ID,
		Quantity: 6,
		Date:     testNow.AddDate(0, 0, -2),
	})
	require.NoError(t, err)

	breakdown, err := reports.WasteBreakdown(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, breakdown.WindowDays)
	assert.Equal(t, 3.0, breakdown.ByReason[models.WasteExpired])
	assert.Equal(t, 4.0, breakdown.ByReason[models.WasteSpoiled])
	_, present := breakdown.ByReason[models.WasteDamaged]
	assert.False(t, present, "entries outside the window are excluded")
	assert.Equal(t, 7.0, breakdown.TotalWaste)
	assert.Equal(t, 6.0, breakdown.TotalConsumption)
}

func TestForecastForFlatPrediction(t *testing.T) {
	reports, recorder, ledger := newTestReports(t)
	ctx := context.Background()

	item := createItemWithQuantity(t, ledger, 100)

	consumptions := map[int]float64{2: 2, 3: 4, 5: 3} // days ago -> quantity
	for daysAgo, qty := range consumptions {
		_, err := recorder.RecordConsumption(ctx, ConsumptionInput{
			ItemID:   item.ID,
			Quantity: qty,
			Date:     testNow.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}

	forecast, err := reports.ForecastFor(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, forecast.ItemID)
	assert.Equal(t, item.Name, forecast.ItemName)

	require.Len(t, forecast.Predicted, 7)
	for _, p := range forecast.Predicted {
		assert.Equal(t, 3.0, p.Quantity, "flat mean of (2+4+3)/3")
	}

	require.Len(t, forecast.Actuals, 7)
	byDay := make(map[string]float64)
	for _, a := range forecast.Actuals {
		byDay[a.Date] = a.Quantity
	}
	assert.Equal(t, 2.0, byDay["2024-03-13"])
	assert.Equal(t, 4.0, byDay["2024-03-12"])
	assert.Equal(t, 0.0, byDay["2024-03-14"], "days without history read as zero")
}

func TestForecastForSparseHistoryIsZero(t *testing.T) {
	reports, recorder, ledger := newTestReports(t)
	ctx := context.Background()

	item := createItemWithQuantity(t, ledger, 100)

	for _, daysAgo := range []int{1, 2} {
		_, err := recorder.RecordConsumption(ctx, ConsumptionInput{
			ItemID:   item.ID,
			Quantity: 5,
			Date:     testNow.AddDate(0, 0, -daysAgo),
		})
		require.NoError(t, err)
	}

	forecast, err := reports.ForecastFor(ctx, item.ID)
	require.NoError(t, err)
	for _, p := range forecast.Predicted {
		assert.Equal(t, 0.0, p.Quantity, "fewer than 3 days of history predicts zero")
	}
}

func TestForecastForUnknownItem(t *testing.T) {
	reports, _, _ := newTestReports(t)

	_, err := reports.ForecastFor(context.Background(), "missing")
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
