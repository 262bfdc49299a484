package spanner

import (
	"context"

	"cloud.google.com/go/spanner"
)

// txKey is the context key for storing Spanner transactions.
type txKey struct{}

// ReadContext is the read surface shared by Spanner read-write and
// read-only transactions. Repositories use it so the same query code
// runs inside either kind of transaction.
type ReadContext interface {
	ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error)
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

func withReadWriteTx(ctx context.Context, tx *spanner.ReadWriteTransaction) (context.Context, error) {
	if _, ok := ctx.Value(txKey{}).(ReadContext); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

func withReadOnlyTx(ctx context.Context, tx *spanner.ReadOnlyTransaction) (context.Context, error) {
	if _, ok := ctx.Value(txKey{}).(ReadContext); ok {
		return nil, ErrNestedTransaction
	}
	return context.WithValue(ctx, txKey{}, tx), nil
}

// ReadWriteTxFromContext extracts a Spanner ReadWriteTransaction from context.
// Returns (nil, false) if no read-write transaction is present.
func ReadWriteTxFromContext(ctx context.Context) (*spanner.ReadWriteTransaction, bool) {
	tx, ok := ctx.Value(txKey{}).(*spanner.ReadWriteTransaction)
	return tx, ok
}

// ReadTransactionFromContext extracts the read surface of whichever
// transaction is in the context, read-write or read-only.
// Returns (nil, false) if no transaction is present.
func ReadTransactionFromContext(ctx context.Context) (ReadContext, bool) {
	tx, ok := ctx.Value(txKey{}).(ReadContext)
	return tx, ok
}
