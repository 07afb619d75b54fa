package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

var testNow = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func newTestLedger(t *testing.T) (*Ledger, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mem.SetClock(func() time.Time { return testNow })
	ledger := NewLedger(mem)
	ledger.SetClock(func() time.Time { return testNow })
	return ledger, mem
}

func validItem() CreateItemInput {
	return CreateItemInput{
		OwnerID:      "owner-1",
		Name:         "Milk",
		Quantity:     2,
		Unit:         models.UnitL,
		Category:     models.CategoryDairy,
		PurchaseDate: time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC),
		ExpiryDate:   time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateItem(t *testing.T) {
	ledger, _ := newTestLedger(t)

	item, err := ledger.CreateItem(context.Background(), validItem())
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Milk", item.Name)
	assert.Equal(t, 2.0, item.Quantity)
	assert.Equal(t, models.CategoryDairy, item.Category)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestCreateItemValidation(t *testing.T) {
	ledger, _ := newTestLedger(t)

	tests := []struct {
		name   string
		mutate func(*CreateItemInput)
	}{
		{"missing name", func(in *CreateItemInput) { in.Name = "" }},
		{"negative quantity", func(in *CreateItemInput) { in.Quantity = -1 }},
		{"unknown unit", func(in *CreateItemInput) { in.Unit = "barrels" }},
		{"unknown category", func(in *CreateItemInput) { in.Category = "electronics" }},
		{"expiry before purchase", func(in *CreateItemInput) {
			in.ExpiryDate = in.PurchaseDate.AddDate(0, 0, -1)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validItem()
			tt.mutate(&in)
			_, err := ledger.CreateItem(context.Background(), in)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestCreateItemDerivesExpiryFromShelfLife(t *testing.T) {
	ledger, _ := newTestLedger(t)

	in := validItem()
	in.Category = models.CategoryMeat
	in.PurchaseDate = time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	in.ExpiryDate = time.Time{}

	item, err := ledger.CreateItem(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 4, 0, 0, 0, 0, time.UTC), item.ExpiryDate)
}

func TestCreateItemDefaultsPurchaseDateToToday(t *testing.T) {
	ledger, _ := newTestLedger(t)

	in := validItem()
	in.PurchaseDate = time.Time{}
	in.ExpiryDate = time.Time{}

	item, err := ledger.CreateItem(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, store.NormalizeTime(testNow), item.PurchaseDate)
	// dairy shelf life is 7 days
	assert.Equal(t, store.NormalizeTime(testNow).AddDate(0, 0, 7), item.ExpiryDate)
}

func TestUpdateItem(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := ledger.CreateItem(ctx, validItem())
	require.NoError(t, err)

	newName := "Whole Milk"
	newQty := 3.5
	updated, err := ledger.UpdateItem(ctx, item.ID, UpdateItemInput{Name: &newName, Quantity: &newQty})
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk", updated.Name)
	assert.Equal(t, 3.5, updated.Quantity)
	assert.Equal(t, item.Unit, updated.Unit, "unchanged fields survive")
}

func TestUpdateItemValidation(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := ledger.CreateItem(ctx, validItem())
	require.NoError(t, err)

	bad := -2.0
	_, err = ledger.UpdateItem(ctx, item.ID, UpdateItemInput{Quantity: &bad})
	var vErr *ValidationError
	assert.ErrorAs(t, err, &vErr)

	early := item.PurchaseDate.AddDate(0, 0, -1)
	_, err = ledger.UpdateItem(ctx, item.ID, UpdateItemInput{ExpiryDate: &early})
	assert.ErrorAs(t, err, &vErr)
}

func TestUpdateItemNotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	name := "x"
	_, err := ledger.UpdateItem(context.Background(), "missing", UpdateItemInput{Name: &name})
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestDeleteItemIsUnconditional(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := ledger.CreateItem(ctx, validItem())
	require.NoError(t, err)

	require.NoError(t, ledger.DeleteItem(ctx, item.ID))
	require.NoError(t, ledger.DeleteItem(ctx, item.ID), "deleting twice is not an error")

	_, err = ledger.GetItem(ctx, item.ID)
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestListItemsOrderedByExpiry(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	mk := func(name string, expiry time.Time, shared bool) {
		in := validItem()
		in.Name = name
		in.PurchaseDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		in.ExpiryDate = expiry
		in.SharingAvailable = shared
		_, err := ledger.CreateItem(ctx, in)
		require.NoError(t, err)
	}
	mk("late", time.Date(2024, 3, 25, 0, 0, 0, 0, time.UTC), false)
	mk("soon", time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), true)
	mk("mid", time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC), false)

	items, err := ledger.ListItems(ctx, ListFilter{Kind: ListAll})
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, []string{"soon", "mid", "late"},
		[]string{items[0].Name, items[1].Name, items[2].Name})
}

func TestListItemsExpiringWindow(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	mk := func(name string, expiry time.Time) {
		in := validItem()
		in.Name = name
		in.PurchaseDate = time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		in.ExpiryDate = expiry
		_, err := ledger.CreateItem(ctx, in)
		require.NoError(t, err)
	}
	// now is 2024-03-15; default window is [today, today+3]
	mk("today", time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	mk("edge", time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC))
	mk("outside", time.Date(2024, 3, 19, 0, 0, 0, 0, time.UTC))
	mk("past", time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))

	items, err := ledger.ListItems(ctx, ListFilter{Kind: ListExpiring})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "today", items[0].Name)
	assert.Equal(t, "edge", items[1].Name)
}

func TestListItemsSharingFilter(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	in := validItem()
	in.Name = "shared"
	in.SharingAvailable = true
	_, err := ledger.CreateItem(ctx, in)
	require.NoError(t, err)

	in2 := validItem()
	in2.Name = "private"
	_, err = ledger.CreateItem(ctx, in2)
	require.NoError(t, err)

	items, err := ledger.ListItems(ctx, ListFilter{Kind: ListSharing})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "shared", items[0].Name)
}

func TestUpdateItemRejectsZeroDates(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	item, err := ledger.CreateItem(ctx, validItem())
	require.NoError(t, err)

	var vErr *ValidationError
	zero := time.Time{}
	_, err = ledger.UpdateItem(ctx, item.ID, UpdateItemInput{PurchaseDate: &zero})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "purchaseDate", vErr.Field)

	_, err = ledger.UpdateItem(ctx, item.ID, UpdateItemInput{ExpiryDate: &zero})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "expiryDate", vErr.Field)

	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.PurchaseDate, current.PurchaseDate, "rejected update leaves dates unchanged")
	assert.Equal(t, item.ExpiryDate, current.ExpiryDate)
}

func TestDecrementQuantityKeepsInvariant(t *testing.T) {
	ledger, _ := newTestLedger(t)
	ctx := context.Background()

	in := validItem()
	in.Quantity = 5
	item, err := ledger.CreateItem(ctx, in)
	require.NoError(t, err)

	after, err := ledger.DecrementQuantity(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, after.Quantity)

	_, err = ledger.DecrementQuantity(ctx, item.ID, 3)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)

	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, current.Quantity, "failed decrement leaves quantity unchanged")
}

// contendedStore simulates a concurrent writer snatching the row between the
// read and the conditional update. failures < 0 means every attempt loses.
type contendedStore struct {
	store.Adapter
	failures int
	calls    int
}

func (c *contendedStore) UpdateWhere(ctx context.Context, collection, id string, patch store.Document, conds []store.Filter) error {
	c.calls++
	if c.failures != 0 {
		if c.failures > 0 {
			c.failures--
		}
		return store.ErrConditionFailed
	}
	return c.Adapter.UpdateWhere(ctx, collection, id, patch, conds)
}

func TestDecrementQuantityRetriesAfterLostRace(t *testing.T) {
	mem := store.NewMemory()
	mem.SetClock(func() time.Time { return testNow })
	contended := &contendedStore{Adapter: mem, failures: 1}
	ledger := NewLedger(contended)
	ledger.SetClock(func() time.Time { return testNow })
	ctx := context.Background()

	in := validItem()
	in.Quantity = 5
	item, err := ledger.CreateItem(ctx, in)
	require.NoError(t, err)

	after, err := ledger.DecrementQuantity(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 2.0, after.Quantity)
	assert.Equal(t, 2, contended.calls, "one lost attempt plus the winning retry")

	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2.0, current.Quantity)
}

func TestDecrementQuantityConflictWhenRetriesExhausted(t *testing.T) {
	mem := store.NewMemory()
	mem.SetClock(func() time.Time { return testNow })
	contended := &contendedStore{Adapter: mem, failures: -1}
	ledger := NewLedger(contended)
	ledger.SetClock(func() time.Time { return testNow })
	ctx := context.Background()

	in := validItem()
	in.Quantity = 5
	item, err := ledger.CreateItem(ctx, in)
	require.NoError(t, err)

	_, err = ledger.DecrementQuantity(ctx, item.ID, 3)
	var cErr *ConflictError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, 3, contended.calls, "gives up after the bounded retries")

	current, err := ledger.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5.0, current.Quantity, "conflict leaves quantity unchanged")
}
