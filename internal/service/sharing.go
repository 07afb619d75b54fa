package service

import (
	"context"
	"fmt"

	"github.com/freshtrack/freshtrack-golang/internal/models"
	"github.com/freshtrack/freshtrack-golang/internal/store"
)

// SharingScope controls whose shared items the matcher surfaces.
// ScopeMarketplace is the observed behavior (every account sees every shared
// item); ScopeOwner restricts the listing to the caller's own records.
// Whether the open marketplace is intended is still an open product question,
// hence the switch lives in configuration.
type SharingScope string

const (
	ScopeMarketplace SharingScope = "marketplace"
	ScopeOwner       SharingScope = "owner"
)

// Matcher lists shareable inventory and records sharing requests.
type Matcher struct {
	store store.Adapter
	scope SharingScope
}

// NewMatcher wires the matcher; an empty scope defaults to marketplace.
func NewMatcher(st store.Adapter, scope SharingScope) *Matcher {
	if scope == "" {
		scope = ScopeMarketplace
	}
	return &Matcher{store: st, scope: scope}
}

// ListAvailable returns items flagged sharingAvailable, ordered by expiry
// date ascending. Under ScopeOwner the listing is limited to the caller.
func (m *Matcher) ListAvailable(ctx context.Context, caller models.Identity) ([]models.InventoryItem, error) {
	filters := []store.Filter{
		{Field: "sharingAvailable", Op: store.OpEq, Value: true},
	}
	if m.scope == ScopeOwner {
		filters = append(filters, store.Filter{Field: "ownerId", Op: store.OpEq, Value: caller.ID})
	}

	docs, err := m.store.Query(ctx, colInventory, filters, &store.Order{Field: "expiryDate"})
	if err != nil {
		return nil, &StoreError{Op: "list shared items", Err: err}
	}
	items := make([]models.InventoryItem, 0, len(docs))
	for _, doc := range docs {
		var item models.InventoryItem
		if err := store.Decode(doc, &item); err != nil {
			return nil, &StoreError{Op: "list shared items", Err: err}
		}
		items = append(items, item)
	}
	return items, nil
}

// RequestItem records a sharing request for the given item, snapshotting the
// item's current name, quantity, unit and expiry. The source item is not
// mutated: a request does not reserve stock.
func (m *Matcher) RequestItem(ctx context.Context, itemID string, requester models.Identity, notes string) (*models.SharingRequest, error) {
	doc, err := m.store.Get(ctx, colInventory, itemID)
	if err != nil {
		return nil, wrapStore("request shared item", colInventory, itemID, err)
	}
	var item models.InventoryItem
	if err := store.Decode(doc, &item); err != nil {
		return nil, &StoreError{Op: "request shared item", Err: err}
	}
	if !item.SharingAvailable {
		return nil, &ValidationError{Field: "itemId", Reason: "item is not available for sharing"}
	}

	if notes == "" {
		notes = fmt.Sprintf("Request from %s", requester.Email)
	}
	req := models.SharingRequest{
		ItemID:        item.ID,
		ItemName:      item.Name,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		ExpiryDate:    item.ExpiryDate,
		Status:        models.SharingRequested,
		RequesterID:   requester.ID,
		RequesterName: requester.Email,
		Notes:         notes,
	}
	reqDoc, err := store.ToDocument(req)
	if err != nil {
		return nil, &StoreError{Op: "request shared item", Err: err}
	}
	id, err := m.store.Create(ctx, colSharing, reqDoc)
	if err != nil {
		return nil, &StoreError{Op: "request shared item", Err: err}
	}
	req.ID = id
	return &req, nil
}

// ListRequests returns all sharing requests, newest first.
func (m *Matcher) ListRequests(ctx context.Context) ([]models.SharingRequest, error) {
	docs, err := m.store.Query(ctx, colSharing, nil, &store.Order{Field: "createdAt", Desc: true})
	if err != nil {
		return nil, &StoreError{Op: "list sharing requests", Err: err}
	}
	reqs := make([]models.SharingRequest, 0, len(docs))
	for _, doc := range docs {
		var r models.SharingRequest
		if err := store.Decode(doc, &r); err != nil {
			return nil, &StoreError{Op: "list sharing requests", Err: err}
		}
		reqs = append(reqs, r)
	}
	return reqs, nil
}
