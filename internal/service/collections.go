package service

// Collection names, matching the original data layout.
const (
	colInventory   = "inventory"
	colConsumption = "consumption"
	colWaste       = "waste"
	colSharing     = "sharing"
	colUsers       = "users"
)
