package money

// Coins lists every coin denomination the machine dispenses, largest first.
// The order matters: MakeChange walks it greedily and the resulting coin
// sequence is part of the purchase receipt contract.
var Coins = []int64{100, 50, 20, 10, 5}

// SmallestCoin is the finest granularity of any price or balance.
const SmallestCoin = 5

// ValidDeposit reports whether amount is an accepted coin insert. Zero is
// allowed as a no-op deposit.
func ValidDeposit(amount int64) bool {
	if amount == 0 {
		return true
	}
	for _, coin := range Coins {
		if amount == coin {
			return true
		}
	}
	return false
}

// MakeChange breaks amount into coins, largest denomination first. Balances
// and prices are always multiples of the smallest coin, so the returned coins
// sum to amount exactly. MakeChange(0) returns an empty slice.
func MakeChange(amount int64) []int64 {
	change := []int64{}
	for _, coin := range Coins {
		for amount >= coin {
			change = append(change, coin)
			amount -= coin
		}
	}
	return change
}
