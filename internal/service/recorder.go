package service

import (
	"context"
	"log"
	"time"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

// Recorder appends consumption and waste entries and decrements the source
// item through the ledger. Entries are append-only; nothing here ever updates
// or deletes history.
type Recorder struct {
	store  store.Adapter
	ledger *Ledger
	now    func() time.Time
}

// NewRecorder wires the recorder to the store and the inventory ledger.
func NewRecorder(st store.Adapter, ledger *Ledger) *Recorder {
	return &Recorder{store: st, ledger: ledger, now: time.Now}
}

// SetClock overrides the time source, for tests.
func (r *Recorder) SetClock(now func() time.Time) { r.now = now }

// ConsumptionInput carries a consumption to record. A zero Date defaults to
// now.
type ConsumptionInput struct {
	ItemID   string
	Quantity float64
	Date     time.Time
	Notes    string
}

// WasteInput carries a waste disposal to record.
type WasteInput struct {
	ItemID   string
	Quantity float64
	Reason   string
	Date     time.Time
	Notes    string
}

// EventQuery bounds and orders an event listing.
type EventQuery struct {
	ItemID    string    // empty matches all items
	Since     time.Time // zero means unbounded
	Ascending bool      // default newest first
}

// RecordConsumption validates the quantity against the live item, appends a
// consumption entry with a name/unit snapshot, then decrements the item. The
// decrement is a conditional update; if it ultimately fails the appended
// entry is removed again on a best-effort basis.
func (r *Recorder) RecordConsumption(ctx context.Context, in ConsumptionInput) (*models.ConsumptionEntry, error) {
	item, err := r.validate(ctx, in.ItemID, in.Quantity)
	if err != nil {
		return nil, err
	}

	entry := models.ConsumptionEntry{
		ItemID:          item.ID,
		ItemName:        item.Name,
		Unit:            item.Unit,
		Quantity:        in.Quantity,
		ConsumptionDate: r.eventDate(in.Date),
		Notes:           in.Notes,
	}
	doc, err := store.ToDocument(entry)
	if err != nil {
		return nil, &StoreError{Op: "record consumption", Err: err}
	}
	id, err := r.store.Create(ctx, colConsumption, doc)
	if err != nil {
		return nil, &StoreError{Op: "record consumption", Err: err}
	}
	entry.ID = id

	if _, err := r.ledger.DecrementQuantity(ctx, in.ItemID, in.Quantity); err != nil {
		// Keep the ledger authoritative: a failed decrement must not leave a
		// phantom history entry behind.
		if derr := r.store.Delete(ctx, colConsumption, id); derr != nil {
			log.Printf("WARNING: orphaned consumption entry %s after rejected decrement: %v", id, derr)
		}
		return nil, err
	}
	return &entry, nil
}

// RecordWaste is the waste-side twin of RecordConsumption; it additionally
// validates the reason. Waste decrements inventory exactly like consumption.
func (r *Recorder) RecordWaste(ctx context.Context, in WasteInput) (*models.WasteEntry, error) {
	if !models.ValidWasteReason(in.Reason) {
		return nil, &ValidationError{Field: "reason", Reason: "unknown waste reason"}
	}
	item, err := r.validate(ctx, in.ItemID, in.Quantity)
	if err != nil {
		return nil, err
	}

	entry := models.WasteEntry{
		ItemID:       item.ID,
		ItemName:     item.Name,
		Unit:         item.Unit,
		Quantity:     in.Quantity,
		Reason:       in.Reason,
		DisposalDate: r.eventDate(in.Date),
		Notes:        in.Notes,
	}
	doc, err := store.ToDocument(entry)
	if err != nil {
		return nil, &StoreError{Op: "record waste", Err: err}
	}
	id, err := r.store.Create(ctx, colWaste, doc)
	if err != nil {
		return nil, &StoreError{Op: "record waste", Err: err}
	}
	entry.ID = id

	if _, err := r.ledger.DecrementQuantity(ctx, in.ItemID, in.Quantity); err != nil {
		if derr := r.store.Delete(ctx, colWaste, id); derr != nil {
			log.Printf("WARNING: orphaned waste entry %s after rejected decrement: %v", id, derr)
		}
		return nil, err
	}
	return &entry, nil
}

// ListConsumption returns consumption entries matching the query, ordered by
// consumption date.
func (r *Recorder) ListConsumption(ctx context.Context, q EventQuery) ([]models.ConsumptionEntry, error) {
	docs, err := r.queryEvents(ctx, colConsumption, "consumptionDate", q)
	if err != nil {
		return nil, err
	}
	entries := make([]models.ConsumptionEntry, 0, len(docs))
	for _, doc := range docs {
		var e models.ConsumptionEntry
		if err := store.Decode(doc, &e); err != nil {
			return nil, &StoreError{Op: "list consumption", Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// ListWaste returns waste entries matching the query, ordered by disposal
// date.
func (r *Recorder) ListWaste(ctx context.Context, q EventQuery) ([]models.WasteEntry, error) {
	docs, err := r.queryEvents(ctx, colWaste, "disposalDate", q)
	if err != nil {
		return nil, err
	}
	entries := make([]models.WasteEntry, 0, len(docs))
	for _, doc := range docs {
		var e models.WasteEntry
		if err := store.Decode(doc, &e); err != nil {
			return nil, &StoreError{Op: "list waste", Err: err}
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (r *Recorder) queryEvents(ctx context.Context, collection, dateField string, q EventQuery) ([]store.Document, error) {
	var filters []store.Filter
	if q.ItemID != "" {
		filters = append(filters, store.Filter{Field: "itemId", Op: store.OpEq, Value: q.ItemID})
	}
	if !q.Since.IsZero() {
		filters = append(filters, store.Filter{Field: dateField, Op: store.OpGte, Value: store.TimeValue(q.Since)})
	}
	docs, err := r.store.Query(ctx, collection, filters, &store.Order{Field: dateField, Desc: !q.Ascending})
	if err != nil {
		return nil, &StoreError{Op: "list " + collection, Err: err}
	}
	return docs, nil
}

// validate fetches the item and applies the depletion quantity rules shared
// by both event kinds.
func (r *Recorder) validate(ctx context.Context, itemID string, qty float64) (*models.InventoryItem, error) {
	if itemID == "" {
		return nil, &ValidationError{Field: "itemId", Reason: "is required"}
	}
	if qty <= 0 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	item, err := r.ledger.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if qty > item.Quantity {
		return nil, &ValidationError{Field: "quantity", Reason: "exceeds available quantity"}
	}
	return item, nil
}

func (r *Recorder) eventDate(d time.Time) time.Time {
	if d.IsZero() {
		d = r.now()
	}
	return store.NormalizeTime(d)
}
