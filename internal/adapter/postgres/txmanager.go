package postgres

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TxManager runs functions inside a single database transaction carried in
// the context. Repositories pick it up through QuerierFromCtx.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTx runs fn in a Read Committed transaction. A call made from inside
// another RunInTx joins the outer transaction, so only the outermost call
// commits. Commit hooks registered through AfterCommit run after a successful
// commit and are dropped when fn fails or panics.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, joined := txStateFromCtx(ctx); joined {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	st := &txState{tx: tx, hooks: &commitHooks{}}
	committed := false
	defer func() {
		if committed {
			return
		}
		// The caller's ctx may already be cancelled; the rollback must still reach the server.
		_ = tx.Rollback(context.WithoutCancel(ctx))
	}()

	if err := fn(withTxState(ctx, st)); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return errors.Join(err, fmt.Errorf("rollback tx: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	committed = true

	st.hooks.run(context.WithoutCancel(ctx))
	return nil
}

// AfterCommit registers fn to run once the transaction carried by ctx has
// committed. Without a transaction in ctx, fn runs immediately.
// Hooks run in registration order and never affect the commit outcome.
func AfterCommit(ctx context.Context, fn func(ctx context.Context)) {
	if st, ok := txStateFromCtx(ctx); ok {
		st.hooks.add(fn)
		return
	}
	fn(ctx)
}

type commitHooks struct {
	mu  sync.Mutex
	fns []func(ctx context.Context)
}

func (h *commitHooks) add(fn func(ctx context.Context)) {
	h.mu.Lock()
	h.fns = append(h.fns, fn)
	h.mu.Unlock()
}

func (h *commitHooks) run(ctx context.Context) {
	h.mu.Lock()
	fns := h.fns
	h.fns = nil
	h.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
