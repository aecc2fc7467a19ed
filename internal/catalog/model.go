package catalog

import "time"

// Product is a slot in the machine: a named item with a unit cost, the number
// of units left, and the seller who listed it.
type Product struct {
	ID        string
	Name      string
	Stock     int64
	UnitCost  int64
	SellerID  string
	CreatedAt time.Time
}
