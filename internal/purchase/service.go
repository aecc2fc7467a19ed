package purchase

import (
	"context"
	"fmt"

	"github.com/vendomat/vendomat/internal/money"
	"github.com/vendomat/vendomat/internal/notification"
)

// Receipt is handed back to the buyer after a successful purchase. It is never
// stored. Change lists the refunded coins largest first; the whole deposit is
// consumed by a purchase, so what was not spent comes back here rather than
// staying on the account.
type Receipt struct {
	TotalSpent int64
	Product    string
	Change     []int64
}

// Service executes purchases against the transactional store.
type Service struct {
	store    Store
	notifier notification.Notifier
}

// NewService builds a purchase service instance.
func NewService(store Store, notifier notification.Notifier) *Service {
	return &Service{store: store, notifier: notifier}
}

// Input captures the data needed to buy a product.
type Input struct {
	ProductID string
	BuyerID   string
	Amount    int64
}

// Purchase applies the buy transition and converts the unspent remainder of
// the buyer's deposit into coins.
func (s *Service) Purchase(ctx context.Context, input Input) (Receipt, error) {
	out, err := s.store.Buy(ctx, input.ProductID, input.BuyerID, input.Amount)
	if err != nil {
		return Receipt{}, err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindProductSold,
			Destination: out.SellerID,
			Body:        fmt.Sprintf("Sold %d x %s for %d", input.Amount, out.ProductName, out.TotalSpent),
		})
	}

	return Receipt{
		TotalSpent: out.TotalSpent,
		Product:    out.ProductName,
		Change:     money.MakeChange(out.Remainder),
	}, nil
}
