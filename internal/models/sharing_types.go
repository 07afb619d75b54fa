package models

import "time"

// Sharing request states. Only 'requested' is produced today; accept/decline
// transitions are not part of the current workflow.
const (
	SharingRequested = "requested"
	SharingAccepted  = "accepted"
	SharingDeclined  = "declined"
)

// SharingRequest is a document in the 'sharing' collection. Item fields are
// snapshots of the shared item at request time; a request does not reserve
// stock.
type SharingRequest struct {
	ID            string    `json:"id,omitempty"`
	ItemID        string    `json:"itemId"`
	ItemName      string    `json:"itemName"`
	Quantity      float64   `json:"quantity"`
	Unit          string    `json:"unit"`
	ExpiryDate    time.Time `json:"expiryDate"`
	Status        string    `json:"status"`
	RequesterID   string    `json:"requesterId"`
	RequesterName string    `json:"requesterName"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
