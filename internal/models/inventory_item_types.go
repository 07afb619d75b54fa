package models

import "time"

// Units an item quantity can be measured in.
const (
	UnitKg   = "kg"
	UnitG    = "g"
	UnitL    = "l"
	UnitMl   = "ml"
	UnitPcs  = "pcs"
	UnitBox  = "box"
	UnitPack = "pack"
)

// Food categories. The category drives the default shelf life when no expiry
// date is supplied.
const (
	CategoryDairy    = "dairy"
	CategoryMeat     = "meat"
	CategorySeafood  = "seafood"
	CategoryProduce  = "produce"
	CategoryBakery   = "bakery"
	CategoryGrocery  = "grocery"
	CategoryFrozen   = "frozen"
	CategoryPrepared = "prepared"
	CategoryBeverage = "beverage"
	CategoryOther    = "other"
)

var validUnits = map[string]bool{
	UnitKg: true, UnitG: true, UnitL: true, UnitMl: true,
	UnitPcs: true, UnitBox: true, UnitPack: true,
}

var validCategories = map[string]bool{
	CategoryDairy: true, CategoryMeat: true, CategorySeafood: true,
	CategoryProduce: true, CategoryBakery: true, CategoryGrocery: true,
	CategoryFrozen: true, CategoryPrepared: true, CategoryBeverage: true,
	CategoryOther: true,
}

// ValidUnit reports whether u is a known measurement unit.
func ValidUnit(u string) bool { return validUnits[u] }

// ValidCategory reports whether c is a known food category.
func ValidCategory(c string) bool { return validCategories[c] }

// InventoryItem is a document in the 'inventory' collection.
type InventoryItem struct {
	ID               string    `json:"id,omitempty"`
	OwnerID          string    `json:"ownerId"`
	Name             string    `json:"name"`
	Quantity         float64   `json:"quantity"`
	Unit             string    `json:"unit"`
	Category         string    `json:"category"`
	PurchaseDate     time.Time `json:"purchaseDate"`
	ExpiryDate       time.Time `json:"expiryDate"`
	Notes            string    `json:"notes,omitempty"`
	SharingAvailable bool      `json:"sharingAvailable"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}
