package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is what repositories run statements against: the pool, or the
// transaction opened by TxManager.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txState is the open transaction of a RunInTx call together with the hooks
// waiting for its commit.
type txState struct {
	tx    pgx.Tx
	hooks *commitHooks
}

type txStateKey struct{}

func withTxState(ctx context.Context, st *txState) context.Context {
	return context.WithValue(ctx, txStateKey{}, st)
}

func txStateFromCtx(ctx context.Context) (*txState, bool) {
	st, ok := ctx.Value(txStateKey{}).(*txState)
	return st, ok
}

// QuerierFromCtx returns the transaction carried by ctx, or pool outside of one.
func QuerierFromCtx(ctx context.Context, pool *pgxpool.Pool) Querier {
	if st, ok := txStateFromCtx(ctx); ok {
		return st.tx
	}
	return pool
}
