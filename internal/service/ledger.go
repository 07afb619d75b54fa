package service

import (
	"context"
	"errors"
	"time"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

// Ledger owns inventory item records and the quantity >= 0 invariant.
type Ledger struct {
	store store.Adapter
	now   func() time.Time
}

// NewLedger wires the ledger to a store adapter.
func NewLedger(st store.Adapter) *Ledger {
	return &Ledger{store: st, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (l *Ledger) SetClock(now func() time.Time) { l.now = now }

// CreateItemInput carries the fields accepted when registering an item. A
// zero PurchaseDate defaults to today; a zero ExpiryDate is derived from the
// category shelf life.
type CreateItemInput struct {
	OwnerID          string
	Name             string
	Quantity         float64
	Unit             string
	Category         string
	PurchaseDate     time.Time
	ExpiryDate       time.Time
	Notes            string
	SharingAvailable bool
}

// UpdateItemInput is a partial update; nil fields are left untouched.
type UpdateItemInput struct {
	Name             *string
	Quantity         *float64
	Unit             *string
	Category         *string
	PurchaseDate     *time.Time
	ExpiryDate       *time.Time
	Notes            *string
	SharingAvailable *bool
}

// Which slice of the inventory a list call returns.
type ListKind string

const (
	ListAll      ListKind = "all"
	ListExpiring ListKind = "expiring"
	ListSharing  ListKind = "sharing"
)

// DefaultExpiringWindowDays is the dashboard's "expiring soon" horizon.
const DefaultExpiringWindowDays = 3

// ListFilter selects and parametrizes a ListKind.
type ListFilter struct {
	Kind       ListKind
	WithinDays int // only for ListExpiring; 0 means DefaultExpiringWindowDays
}

// CreateItem validates the input, derives a missing expiry date from the
// category shelf life, and stores the new item. Returns the stored item.
func (l *Ledger) CreateItem(ctx context.Context, in CreateItemInput) (*models.InventoryItem, error) {
	if in.Name == "" {
		return nil, &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Quantity < 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if !models.ValidUnit(in.Unit) {
		return nil, &ValidationError{Field: "unit", Reason: "unknown unit"}
	}
	if !models.ValidCategory(in.Category) {
		return nil, &ValidationError{Field: "category", Reason: "unknown category"}
	}

	purchase := in.PurchaseDate
	if purchase.IsZero() {
		purchase = l.now()
	}
	purchase = store.NormalizeTime(purchase)

	expiry := in.ExpiryDate
	if expiry.IsZero() {
		expiry = CalculateExpiryDate(purchase, in.Category)
	}
	expiry = store.NormalizeTime(expiry)

	if expiry.Before(purchase) {
		return nil, &ValidationError{Field: "expiryDate", Reason: "must not be before purchase date"}
	}

	item := models.InventoryItem{
		OwnerID:          in.OwnerID,
		Name:             in.Name,
		Quantity:         in.Quantity,
		Unit:             in.Unit,
		Category:         in.Category,
		PurchaseDate:     purchase,
		ExpiryDate:       expiry,
		Notes:            in.Notes,
		SharingAvailable: in.SharingAvailable,
	}
	doc, err := store.ToDocument(item)
	if err != nil {
		return nil, &StoreError{Op: "create item", Err: err}
	}
	id, err := l.store.Create(ctx, colInventory, doc)
	if err != nil {
		return nil, &StoreError{Op: "create item", Err: err}
	}
	return l.GetItem(ctx, id)
}

// GetItem fetches a single item by id.
func (l *Ledger) GetItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	doc, err := l.store.Get(ctx, colInventory, id)
	if err != nil {
		return nil, wrapStore("get item", colInventory, id, err)
	}
	var item models.InventoryItem
	if err := store.Decode(doc, &item); err != nil {
		return nil, &StoreError{Op: "get item", Err: err}
	}
	return &item, nil
}

// UpdateItem applies a partial edit, re-validating every changed field plus
// the purchase/expiry ordering of the merged result.
func (l *Ledger) UpdateItem(ctx context.Context, id string, in UpdateItemInput) (*models.InventoryItem, error) {
	current, err := l.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := store.Document{}
	merged := *current

	if in.Name != nil {
		if *in.Name == "" {
			return nil, &ValidationError{Field: "name", Reason: "is required"}
		}
		merged.Name = *in.Name
		patch["name"] = *in.Name
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, &ValidationError{Field: "quantity", Reason: "must not be negative"}
		}
		merged.Quantity = *in.Quantity
		patch["quantity"] = *in.Quantity
	}
	if in.Unit != nil {
		if !models.ValidUnit(*in.Unit) {
			return nil, &ValidationError{Field: "unit", Reason: "unknown unit"}
		}
		merged.Unit = *in.Unit
		patch["unit"] = *in.Unit
	}
	if in.Category != nil {
		if !models.ValidCategory(*in.Category) {
			return nil, &ValidationError{Field: "category", Reason: "unknown category"}
		}
		merged.Category = *in.Category
		patch["category"] = *in.Category
	}
	if in.PurchaseDate != nil {
		// An empty date input parses to the zero time; unlike CreateItem there
		// is no "default to today" here, so it must be an explicit valid date.
		if in.PurchaseDate.IsZero() {
			return nil, &ValidationError{Field: "purchaseDate", Reason: "must be a valid date"}
		}
		merged.PurchaseDate = store.NormalizeTime(*in.PurchaseDate)
		patch["purchaseDate"] = store.TimeValue(*in.PurchaseDate)
	}
	if in.ExpiryDate != nil {
		if in.ExpiryDate.IsZero() {
			return nil, &ValidationError{Field: "expiryDate", Reason: "must be a valid date"}
		}
		merged.ExpiryDate = store.NormalizeTime(*in.ExpiryDate)
		patch["expiryDate"] = store.TimeValue(*in.ExpiryDate)
	}
	if in.Notes != nil {
		merged.Notes = *in.Notes
		patch["notes"] = *in.Notes
	}
	if in.SharingAvailable != nil {
		merged.SharingAvailable = *in.SharingAvailable
		patch["sharingAvailable"] = *in.SharingAvailable
	}

	if merged.ExpiryDate.Before(merged.PurchaseDate) {
		return nil, &ValidationError{Field: "expiryDate", Reason: "must not be before purchase date"}
	}
	if len(patch) == 0 {
		return current, nil
	}

	if err := l.store.Update(ctx, colInventory, id, patch); err != nil {
		return nil, wrapStore("update item", colInventory, id, err)
	}
	return l.GetItem(ctx, id)
}

// DeleteItem removes the record unconditionally. Historical consumption,
// waste and sharing documents keep their snapshots and are unaffected.
func (l *Ledger) DeleteItem(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, colInventory, id); err != nil {
		return &StoreError{Op: "delete item", Err: err}
	}
	return nil
}

// ListItems returns items matching the filter, ordered by expiry date
// ascending.
func (l *Ledger) ListItems(ctx context.Context, f ListFilter) ([]models.InventoryItem, error) {
	var filters []store.Filter
	switch f.Kind {
	case ListAll, "":
	case ListExpiring:
		days := f.WithinDays
		if days <= 0 {
			days = DefaultExpiringWindowDays
		}
		today := midnight(l.now().UTC())
		filters = append(filters,
			store.Filter{Field: "expiryDate", Op: store.OpGte, Value: store.TimeValue(today)},
			store.Filter{Field: "expiryDate", Op: store.OpLte, Value: store.TimeValue(today.AddDate(0, 0, days))},
		)
	case ListSharing:
		filters = append(filters, store.Filter{Field: "sharingAvailable", Op: store.OpEq, Value: true})
	default:
		return nil, &ValidationError{Field: "filter", Reason: "unknown list filter"}
	}

	docs, err := l.store.Query(ctx, colInventory, filters, &store.Order{Field: "expiryDate"})
	if err != nil {
		return nil, &StoreError{Op: "list items", Err: err}
	}
	items := make([]models.InventoryItem, 0, len(docs))
	for _, doc := range docs {
		var item models.InventoryItem
		if err := store.Decode(doc, &item); err != nil {
			return nil, &StoreError{Op: "list items", Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

// casAttempts bounds how often a decrement retries after losing a
// compare-and-swap to a concurrent depletion.
const casAttempts = 3

// DecrementQuantity atomically takes qty off an item's quantity. The check
// and the write are one conditional update, so two concurrent depletions can
// never drive the quantity negative; the losing writer re-reads and retries.
func (l *Ledger) DecrementQuantity(ctx context.Context, id string, qty float64) (*models.InventoryItem, error) {
	for attempt := 0; attempt < casAttempts; attempt++ {
		item, err := l.GetItem(ctx, id)
		if err != nil {
			return nil, err
		}
		if qty > item.Quantity {
			return nil, &ValidationError{Field: "quantity", Reason: "exceeds available quantity"}
		}

		err = l.store.UpdateWhere(ctx, colInventory, id,
			store.Document{"quantity": item.Quantity - qty},
			[]store.Filter{{Field: "quantity", Op: store.OpEq, Value: item.Quantity}},
		)
		if err == nil {
			item.Quantity -= qty
			return item, nil
		}
		if errors.Is(err, store.ErrConditionFailed) {
			continue
		}
		return nil, wrapStore("decrement quantity", colInventory, id, err)
	}
	return nil, &ConflictError{Op: "decrement quantity"}
}
