// Package domain contains business entities and rules for orders.
package domain

import (
	"time"

	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

// Order is the aggregate root for the order bounded context.
//
// contributionSnapshot is the contributor's counter value as observed when
// the order was created. It is captured once and never refreshed: a later
// shift can only complete this order while the contributor's live counter
// still equals the snapshot, which is what ties a paid order to exactly
// one shift.
type Order struct {
	id                   types.OrderID
	createdBy            types.UserID
	contributorID        types.UserID
	contributionSnapshot int64
	description          string
	totalPrice           types.Money
	status               Status
	createdAt            time.Time
	updatedAt            time.Time
}

// NewOrder creates an order placed by createdBy and fulfilled by the
// contributor, snapshotting the contributor's current counter value.
// Orders start unpaid and unpriced.
func NewOrder(createdBy, contributorID types.UserID, description string, contributionSnapshot int64) *Order {
	now := time.Now().UTC()
	return &Order{
		id:                   types.NewOrderID(),
		createdBy:            createdBy,
		contributorID:        contributorID,
		contributionSnapshot: contributionSnapshot,
		description:          description,
		status:               StatusUnpaid,
		createdAt:            now,
		updatedAt:            now,
	}
}

// Reconstitute rebuilds an order from persistence.
func Reconstitute(
	id types.OrderID,
	createdBy, contributorID types.UserID,
	contributionSnapshot int64,
	description string,
	totalPrice types.Money,
	status Status,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                   id,
		createdBy:            createdBy,
		contributorID:        contributorID,
		contributionSnapshot: contributionSnapshot,
		description:          description,
		totalPrice:           totalPrice,
		status:               status,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

// Getters

func (o *Order) ID() types.OrderID            { return o.id }
func (o *Order) CreatedBy() types.UserID      { return o.createdBy }
func (o *Order) ContributorID() types.UserID  { return o.contributorID }
func (o *Order) ContributionSnapshot() int64  { return o.contributionSnapshot }
func (o *Order) Description() string          { return o.description }
func (o *Order) TotalPrice() types.Money      { return o.totalPrice }
func (o *Order) Status() Status               { return o.status }
func (o *Order) CreatedAt() time.Time         { return o.createdAt }
func (o *Order) UpdatedAt() time.Time         { return o.updatedAt }

// Business methods

// SetTotal records the priced total computed at submission and re-affirms
// the unpaid status. Pricing happens exactly once per submission; a DONE
// order can no longer be re-submitted.
func (o *Order) SetTotal(total types.Money) error {
	if o.status == StatusDone {
		return ErrOrderCompleted
	}
	o.totalPrice = total
	o.status = StatusUnpaid
	o.updatedAt = time.Now().UTC()
	return nil
}

// TogglePayment flips the order between paid and unpaid. This is the
// administrative correction channel. Orders that already reached DONE are
// immutable - completion never regresses.
func (o *Order) TogglePayment() error {
	if o.status == StatusDone {
		return ErrOrderCompleted
	}
	if o.status == StatusPaid {
		o.status = StatusUnpaid
	} else {
		o.status = StatusPaid
	}
	o.updatedAt = time.Now().UTC()
	return nil
}

// Complete marks a paid order as done. Only the shift-end bulk completion
// reaches this transition.
func (o *Order) Complete() error {
	if o.status == StatusDone {
		return ErrOrderCompleted
	}
	if o.status != StatusPaid {
		return ErrOrderNotPaid
	}
	o.status = StatusDone
	o.updatedAt = time.Now().UTC()
	return nil
}

// IsPaid reports whether the order is currently paid (and not yet done).
func (o *Order) IsPaid() bool {
	return o.status == StatusPaid
}
