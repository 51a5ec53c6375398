package ddd

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/zhenyu888/ddd-event/listener"
)

type TransactionPropagation int8

const (
	PropagationRequired    = iota // 支持当前事务，如果当前没有事务，就新建一个事务
	PropagationRequiresNew        // 新建事务，如果当前存在事务，把当前事务挂起，两个事务互不影响
	PropagationNested             // 支持当前事务，如果当前事务存在，则执行一个嵌套事务，如果当前没有事务，就新建一个事务
	PropagationNever              // 以非事务方式执行，如果当前存在事务，直接返回错误
)

func isPropagationSupport(propagation TransactionPropagation) bool {
	switch propagation {
	case PropagationRequired:
		return true
	case PropagationRequiresNew:
		return true
	case PropagationNested:
		return true
	case PropagationNever:
		return true
	}
	return false
}

func defaultPropagation() TransactionPropagation {
	return PropagationRequired
}

var (
	ErrNotInTransaction = errors.New("not in transaction, can't commit")
	ErrInTransaction    = errors.New("never propagation should not in transaction")
)

type TransactionContext struct {
	ctx    context.Context
	tx     *gorm.DB
	parent *TransactionContext
	hooks  *transactionHooks
}

// TxHook runs after a transaction has finished. ctx no longer carries the
// transaction.
type TxHook func(ctx context.Context)

// transactionHooks is shared by a root transaction and all its sessions.
type transactionHooks struct {
	commit   listener.Event1[context.Context]
	rollback listener.Event1[context.Context]
	finished bool
}

func newTransactionHooks() *transactionHooks {
	return &transactionHooks{
		commit:   *listener.NewEvent1[context.Context](listener.WithMode(listener.Deferred)),
		rollback: *listener.NewEvent1[context.Context](listener.WithMode(listener.Deferred)),
	}
}

func (h *transactionHooks) fire(ctx context.Context, committed bool) {
	if h.finished {
		return
	}
	h.finished = true
	defer func() {
		h.commit.RemoveAll()
		h.rollback.RemoveAll()
	}()
	if committed {
		h.commit.Invoke(ctx)
	} else {
		h.rollback.Invoke(ctx)
	}
}

func (c *TransactionContext) Deadline() (deadline time.Time, ok bool) {
	return c.ctx.Deadline()
}

func (c *TransactionContext) Done() <-chan struct{} {
	return c.ctx.Done()
}

func (c *TransactionContext) Err() error {
	return c.ctx.Err()
}

func (c *TransactionContext) Value(key interface{}) interface{} {
	return c.ctx.Value(key)
}

func (c *TransactionContext) IsRoot() bool {
	return c.parent == nil
}

func (c *TransactionContext) Ctx() context.Context {
	return c.ctx
}

func (c *TransactionContext) TxDB() *gorm.DB {
	return c.tx
}

func (c *TransactionContext) TxError() error {
	if c.tx != nil {
		return c.tx.Error
	}
	return nil
}

// InTransaction reports whether c carries a transaction that has not
// committed or rolled back yet.
func (c *TransactionContext) InTransaction() bool {
	if c.tx == nil || (c.hooks != nil && c.hooks.finished) {
		return false
	}
	committer, ok := c.tx.Statement.ConnPool.(gorm.TxCommitter)
	return ok && committer != nil
}

func (c *TransactionContext) Session(config *gorm.Session) *TransactionContext {
	return &TransactionContext{
		ctx:    c.ctx,
		tx:     c.tx.Session(config),
		parent: c,
		hooks:  c.hooks,
	}
}

// OnCommit registers fn to run once the root transaction has committed.
// Hooks run in registration order. Registering after the transaction has
// finished, from a running hook included, fails with ErrNotInTransaction.
func (c *TransactionContext) OnCommit(fn TxHook) (listener.Handle[func(context.Context)], error) {
	if !c.InTransaction() || c.hooks == nil {
		return listener.Handle[func(context.Context)]{}, ErrNotInTransaction
	}
	return c.hooks.commit.On(fn), nil
}

// OnRollback registers fn to run once the root transaction has rolled back.
func (c *TransactionContext) OnRollback(fn TxHook) (listener.Handle[func(context.Context)], error) {
	if !c.InTransaction() || c.hooks == nil {
		return listener.Handle[func(context.Context)]{}, ErrNotInTransaction
	}
	return c.hooks.rollback.On(fn), nil
}

// RemoveHook unregisters a commit or rollback hook.
func (c *TransactionContext) RemoveHook(h listener.Handle[func(context.Context)]) {
	if c.hooks == nil {
		return
	}
	if !c.hooks.commit.Remove(h) {
		c.hooks.rollback.Remove(h)
	}
}

func (c *TransactionContext) Rollback() {
	if c.InTransaction() {
		c.tx.Rollback()
		if c.hooks != nil {
			c.hooks.fire(c.ctx, false)
		}
	}
}

func (c *TransactionContext) Commit() error {
	if !c.InTransaction() {
		return ErrNotInTransaction
	}
	if c.IsRoot() {
		if err := c.tx.Commit().Error; err != nil {
			return err
		}
		if c.hooks != nil {
			c.hooks.fire(c.ctx, true)
		}
	}
	return nil
}

// AfterCommit runs fn after the transaction carried by ctx commits, or
// right away when ctx carries no transaction.
func AfterCommit(ctx context.Context, fn TxHook) {
	if txCtx, ok := ctx.(*TransactionContext); ok {
		if _, err := txCtx.OnCommit(fn); err == nil {
			return
		}
		ctx = txCtx.Ctx()
	}
	fn(ctx)
}

type TransactionManager struct {
	factory DBFactory
}

var TransactionManagerName = "ddd:core:TransactionManager"

func NewTransactionManager(factory DBFactory) *TransactionManager {
	rlt := LoadOrStoreComponent(&TransactionManager{}, func() interface{} {
		return &TransactionManager{factory: factory}
	})
	return rlt.(*TransactionManager)
}

func (m *TransactionManager) Name() string {
	return TransactionManagerName
}

func (m *TransactionManager) lookupDB(ctx context.Context) (*gorm.DB, error) {
	if txCtx, ok := ctx.(*TransactionContext); ok {
		if txCtx.InTransaction() {
			return txCtx.tx, nil
		}
		ctx = txCtx.Ctx()
	}
	return m.lookupNewDB(ctx)
}

func (m *TransactionManager) lookupNewDB(ctx context.Context) (*gorm.DB, error) {
	return m.factory.LookupDB(ctx)
}

func (m *TransactionManager) Transaction(ctx context.Context, bizFn func(txCtx context.Context) error, propagations ...TransactionPropagation) error {
	propagation := defaultPropagation()
	if len(propagations) > 0 && isPropagationSupport(propagations[0]) {
		propagation = propagations[0]
	}
	switch propagation {
	case PropagationNever:
		return m.withNeverPropagation(ctx, bizFn)
	case PropagationNested:
		return m.withNestedPropagation(ctx, bizFn)
	case PropagationRequired:
		return m.withRequiredPropagation(ctx, bizFn)
	case PropagationRequiresNew:
		return m.withRequiresNewPropagation(ctx, bizFn)
	}
	panic("not support propagation")
}

func (m *TransactionManager) withNeverPropagation(ctx context.Context, bizFn func(txCtx context.Context) error) error {
	if txCtx, ok := ctx.(*TransactionContext); ok && txCtx.InTransaction() {
		return ErrInTransaction
	}
	return bizFn(ctx)
}

func (m *TransactionManager) withNestedPropagation(ctx context.Context, bizFn func(txCtx context.Context) error) error {
	var err error
	if txCtx, ok := ctx.(*TransactionContext); ok && txCtx.InTransaction() {
		panicked := true
		db := txCtx.TxDB()
		if !db.DisableNestedTransaction {
			err = db.SavePoint(fmt.Sprintf("sp%p", bizFn)).Error
			defer func() {
				// Make sure to rollback when panic, Block error or Commit error
				if panicked || err != nil {
					db.RollbackTo(fmt.Sprintf("sp%p", bizFn))
				}
			}()
		}
		if err == nil {
			err = bizFn(txCtx.Session(&gorm.Session{}))
		}
		panicked = false
	} else {
		err = m.withRequiredPropagation(ctx, bizFn)
	}
	return err
}

func (m *TransactionManager) withRequiredPropagation(ctx context.Context, bizFn func(txCtx context.Context) error) error {
	var err error
	panicked := true
	if txCtx, ok := ctx.(*TransactionContext); ok && txCtx.InTransaction() {
		defer func() {
			if panicked || err != nil {
				txCtx.Rollback()
			}
		}()
		err = bizFn(txCtx.Session(&gorm.Session{}))
	} else {
		var db *gorm.DB
		db, err = m.lookupDB(ctx)
		if err != nil {
			return err
		}
		if !ok {
			txCtx = &TransactionContext{
				ctx:   ctx,
				tx:    db.Begin(),
				hooks: newTransactionHooks(),
			}
		} else {
			txCtx.tx = db.Begin()
			txCtx.hooks = newTransactionHooks()
		}
		defer func() {
			if panicked || err != nil {
				txCtx.Rollback()
			}
		}()
		if err = txCtx.TxError(); err == nil {
			err = bizFn(txCtx)
		}

		if err == nil {
			err = txCtx.Commit()
		}
	}
	panicked = false
	return err
}

func (m *TransactionManager) withRequiresNewPropagation(ctx context.Context, bizFn func(txCtx context.Context) error) error {
	panicked := true
	var pureCtx context.Context
	if txCtx, ok := ctx.(*TransactionContext); ok {
		pureCtx = txCtx.Ctx()
	} else {
		pureCtx = ctx
	}
	db, err := m.lookupNewDB(pureCtx)
	if err != nil {
		return err
	}
	txCtx := &TransactionContext{
		ctx:   pureCtx,
		tx:    db.Begin(),
		hooks: newTransactionHooks(),
	}
	defer func() {
		if panicked || err != nil {
			txCtx.Rollback()
		}
	}()
	if err = txCtx.TxError(); err == nil {
		err = bizFn(txCtx)
	}

	if err == nil {
		err = txCtx.Commit()
	}
	panicked = false
	return err
}
