// Package repokit is the surface SQL repos are written against
package repokit

import (
	"context"
	"errors"
	"fmt"

	"mvpauth/internal/platform/store"
)

type (
	// Queryer runs statements, a pool or an open transaction
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner
	// Row is a single result row
	Row = store.Row
	// Rows is a result set
	Rows = store.Rows
	// CommandTag reports what a write touched
	CommandTag = store.CommandTag
)

// Binder builds a repo over a Queryer, so the same repo runs inside or outside a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a constructor to Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds b to q and panics when q is nil, that is a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind on a nil Queryer")
	}
	return b.Bind(q)
}

// ErrNoTx is returned by WithTx without a runner
var ErrNoTx = errors.New("repokit: no transaction runner")

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	if tx == nil {
		return ErrNoTx
	}
	return tx.Tx(ctx, fn)
}

// MustGuard panics when st cannot reach its backends, for use at boot
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard: %w", err))
	}
}
