package application

import (
	"context"
	"errors"
	"fmt"
)

// UnitOfWork scopes a task write and its outbox rows to one transaction.
// Begin returns the context that carries the transaction; repositories pick it
// up from there.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UnitOfWorkFunc runs inside the transaction context returned by Begin.
type UnitOfWorkFunc func(txCtx context.Context) error

// WithUnitOfWork runs fn in a transaction. It commits when fn succeeds and
// rolls back when fn fails or panics. A failed rollback is joined to fn's
// error so neither is lost.
func WithUnitOfWork(ctx context.Context, uow UnitOfWork, fn UnitOfWorkFunc) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = uow.Rollback(txCtx)
			panic(r)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := uow.Rollback(txCtx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := uow.Commit(txCtx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
