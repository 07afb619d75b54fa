package models

import "time"

// Reasons a waste entry can carry.
const (
	WasteExpired        = "expired"
	WasteSpoiled        = "spoiled"
	WasteOverproduction = "overproduction"
	WasteDamaged        = "damaged"
	WasteQuality        = "quality"
	WasteOther          = "other"
)

var validWasteReasons = map[string]bool{
	WasteExpired: true, WasteSpoiled: true, WasteOverproduction: true,
	WasteDamaged: true, WasteQuality: true, WasteOther: true,
}

// ValidWasteReason reports whether r is a known waste reason.
func ValidWasteReason(r string) bool { return validWasteReasons[r] }

// ConsumptionEntry is a document in the 'consumption' collection. ItemName
// and Unit are snapshots taken when the entry is recorded; they are never
// re-derived from the live item, so history survives item edits and deletes.
type ConsumptionEntry struct {
	ID              string    `json:"id,omitempty"`
	ItemID          string    `json:"itemId"`
	ItemName        string    `json:"itemName"`
	Unit            string    `json:"unit"`
	Quantity        float64   `json:"quantity"`
	ConsumptionDate time.Time `json:"consumptionDate"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WasteEntry is a document in the 'waste' collection. Same snapshot rules as
// ConsumptionEntry.
type WasteEntry struct {
	ID           string    `json:"id,omitempty"`
	ItemID       string    `json:"itemId"`
	ItemName     string    `json:"itemName"`
	Unit         string    `json:"unit"`
	Quantity     float64   `json:"quantity"`
	Reason       string    `json:"reason"`
	DisposalDate time.Time `json:"disposalDate"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
