package account

import "time"

// Roles assignable at registration. Buyers insert coins and purchase, sellers
// list products.
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
)

// Account represents a registered machine user. Deposit holds the coins a
// buyer has inserted and not yet spent, in the smallest currency unit.
type Account struct {
	ID           string
	Username     string
	Role         string
	PasswordHash []byte
	Deposit      int64
	CreatedAt    time.Time
}
