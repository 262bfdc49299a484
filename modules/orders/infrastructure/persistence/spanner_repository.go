package persistence

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	platformspanner "github.com/MohammadDAlil0/scase-food-go/internal/platform/spanner"
	"github.com/MohammadDAlil0/scase-food-go/modules/orders/domain"
	"github.com/MohammadDAlil0/scase-food-go/modules/shared/types"
)

var orderColumns = []string{
	"OrderID", "CreatedBy", "ContributorID", "ContributionSnapshot",
	"Description", "TotalAmount", "TotalCurrency", "Status", "CreatedAt", "UpdatedAt",
}

// SpannerRepository implements OrderRepository using Cloud Spanner.
type SpannerRepository struct {
	client *spanner.Client
}

func NewSpannerRepository(client *spanner.Client) *SpannerRepository {
	return &SpannerRepository{client: client}
}

// Compile-time interface check.
var _ domain.OrderRepository = (*SpannerRepository)(nil)

func (r *SpannerRepository) Save(ctx context.Context, order *domain.Order) error {
	var totalAmount spanner.NullInt64
	var totalCurrency spanner.NullString
	if !order.TotalPrice().IsZero() {
		totalAmount = spanner.NullInt64{Int64: order.TotalPrice().Amount(), Valid: true}
		totalCurrency = spanner.NullString{StringVal: order.TotalPrice().Currency(), Valid: true}
	}

	mutations := []*spanner.Mutation{
		spanner.InsertOrUpdate("Orders", orderColumns,
			[]interface{}{
				order.ID().String(),
				order.CreatedBy().String(),
				order.ContributorID().String(),
				order.ContributionSnapshot(),
				order.Description(),
				totalAmount,
				totalCurrency,
				order.Status().String(),
				order.CreatedAt(),
				order.UpdatedAt(),
			},
		),
	}

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		return tx.BufferWrite(mutations)
	}

	_, err := r.client.Apply(ctx, mutations)
	if err != nil {
		return fmt.Errorf("failed to save order: %w", err)
	}
	return nil
}

func (r *SpannerRepository) FindByID(ctx context.Context, id types.OrderID) (*domain.Order, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		rtx = r.client.Single()
	}

	row, err := rtx.ReadRow(ctx, "Orders", spanner.Key{id.String()}, orderColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to read order: %w", err)
	}

	return scanOrder(row)
}

func (r *SpannerRepository) ListByCreator(ctx context.Context, createdBy types.UserID) ([]*domain.Order, error) {
	rtx, ok := platformspanner.ReadTransactionFromContext(ctx)
	if !ok {
		roTx := r.client.ReadOnlyTransaction()
		defer roTx.Close()
		rtx = roTx
	}

	stmt := spanner.Statement{
		SQL: `SELECT OrderID, CreatedBy, ContributorID, ContributionSnapshot, Description, TotalAmount, TotalCurrency, Status, CreatedAt, UpdatedAt
		      FROM Orders@{FORCE_INDEX=OrdersByCreator}
		      WHERE CreatedBy = @createdBy
		      ORDER BY CreatedAt`,
		Params: map[string]interface{}{"createdBy": createdBy.String()},
	}

	iter := rtx.Query(ctx, stmt)
	defer iter.Stop()

	var orders []*domain.Order
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to query orders: %w", err)
		}
		order, err := scanOrder(row)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// CompleteMatching is a single DML statement so the bulk transition and
// the caller's counter increment commit or roll back together.
func (r *SpannerRepository) CompleteMatching(ctx context.Context, contributor types.UserID, snapshot int64) (int64, error) {
	stmt := spanner.Statement{
		SQL: `UPDATE Orders SET Status = @done, UpdatedAt = PENDING_COMMIT_TIMESTAMP()
		      WHERE ContributorID = @contributor
		        AND ContributionSnapshot = @snapshot
		        AND Status = @paid`,
		Params: map[string]interface{}{
			"done":        domain.StatusDone.String(),
			"contributor": contributor.String(),
			"snapshot":    snapshot,
			"paid":        domain.StatusPaid.String(),
		},
	}

	if tx, ok := platformspanner.ReadWriteTxFromContext(ctx); ok {
		affected, err := tx.Update(ctx, stmt)
		if err != nil {
			return 0, fmt.Errorf("failed to complete orders: %w", err)
		}
		return affected, nil
	}

	var affected int64
	_, err := r.client.ReadWriteTransaction(ctx, func(ctx context.Context, tx *spanner.ReadWriteTransaction) error {
		var err error
		affected, err = tx.Update(ctx, stmt)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to complete orders: %w", err)
	}
	return affected, nil
}

func scanOrder(row *spanner.Row) (*domain.Order, error) {
	var (
		orderID, createdBy, contributorID, description, status string
		contributionSnapshot                                   int64
		totalAmount                                            spanner.NullInt64
		totalCurrency                                          spanner.NullString
		createdAt, updatedAt                                   time.Time
	)
	if err := row.Columns(&orderID, &createdBy, &contributorID, &contributionSnapshot,
		&description, &totalAmount, &totalCurrency, &status, &createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan order: %w", err)
	}

	id, err := types.ParseOrderID(orderID)
	if err != nil {
		return nil, fmt.Errorf("stored order has invalid ID %q: %w", orderID, err)
	}
	creator, err := types.ParseUserID(createdBy)
	if err != nil {
		return nil, fmt.Errorf("stored order %s has invalid creator: %w", orderID, err)
	}
	contributor, err := types.ParseUserID(contributorID)
	if err != nil {
		return nil, fmt.Errorf("stored order %s has invalid contributor: %w", orderID, err)
	}

	var totalPrice types.Money
	if totalAmount.Valid && totalCurrency.Valid {
		totalPrice, err = types.NewMoney(totalAmount.Int64, totalCurrency.StringVal)
		if err != nil {
			return nil, fmt.Errorf("stored order %s has invalid total: %w", orderID, err)
		}
	}

	return domain.Reconstitute(
		id,
		creator,
		contributor,
		contributionSnapshot,
		description,
		totalPrice,
		domain.Status(status),
		createdAt,
		updatedAt,
	), nil
}
