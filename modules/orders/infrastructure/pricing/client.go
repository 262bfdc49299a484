// Package pricing calls the food service over the broker to price the
// items of an order.
package pricing

import (
	"context"
	"errors"
	"fmt"

	"github.com/MohammadDAlil0/scase-food-go/internal/platform/broker"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/application/commands"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// SubjectPricedItems is the request/reply subject the food service
// answers with the priced line items of an order.
const SubjectPricedItems = "food.order.items"

const defaultCurrency = "USD"

type itemsRequest struct {
	OrderID string `json:"orderId"`
}

type itemReply struct {
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Currency string `json:"currency,omitempty"`
}

// Client implements commands.PricingService over the broker.
type Client struct {
	conn *broker.Conn
}

func NewClient(conn *broker.Conn) *Client {
	return &Client{conn: conn}
}

// PricedItems requests the priced lines for an order. Broker failures map
// onto the order domain's upstream errors so callers can tell a retryable
// timeout from a missing service.
func (c *Client) PricedItems(ctx context.Context, orderID types.OrderID) ([]commands.PricedItem, error) {
	var replies []itemReply
	err := c.conn.Request(ctx, SubjectPricedItems, itemsRequest{OrderID: orderID.String()}, &replies)
	switch {
	case errors.Is(err, broker.ErrTimeout):
		return nil, fmt.Errorf("%w: %s", domain.ErrPricingTimeout, orderID)
	case errors.Is(err, broker.ErrUnavailable):
		return nil, fmt.Errorf("%w: %s", domain.ErrPricingUnavailable, orderID)
	case err != nil:
		return nil, fmt.Errorf("pricing order %s: %w", orderID, err)
	}

	items := make([]commands.PricedItem, 0, len(replies))
	for _, reply := range replies {
		currency := reply.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		price, err := types.NewMoney(reply.Price, currency)
		if err != nil {
			return nil, fmt.Errorf("pricing order %s: bad line item %q: %w", orderID, reply.Name, err)
		}
		items = append(items, commands.PricedItem{Name: reply.Name, Price: price})
	}
	return items, nil
}

// Compile-time interface check.
var _ commands.PricingService = (*Client)(nil)
