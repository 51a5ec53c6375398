package ddd

import (
	"context"
	"fmt"
	"reflect"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/zhenyu888/ddd-event/apperr"
	"github.com/zhenyu888/ddd-event/funcs"
)

type Repository interface {
	NextIdentify(context.Context) (int64, error)
	Save(context.Context, Aggregate) error
	Find(context.Context, int64) (Aggregate, error)
	FindNonNil(context.Context, int64) (Aggregate, error)
	Remove(context.Context, Aggregate) error
}

type RepositoryManager struct {
	pub   DomainEventPublisher
	idGen IdGenerator
}

var RepositoryManagerName = "ddd:core:RepositoryManager"

func NewRepositoryManager(pub DomainEventPublisher, idGen IdGenerator) *RepositoryManager {
	rlt := LoadOrStoreComponent(&RepositoryManager{}, func() interface{} {
		return &RepositoryManager{pub: pub, idGen: idGen}
	})
	return rlt.(*RepositoryManager)
}

func (r *RepositoryManager) Name() string {
	return RepositoryManagerName
}

func (r *RepositoryManager) NextIdentify(ctx context.Context) (int64, error) {
	return r.idGen.Gen(ctx)
}

// AroundSave persists agg with doSave, then publishes the domain events the
// aggregate raised, in the order they were raised. Events stay queued on
// the aggregate when saving fails.
func (r *RepositoryManager) AroundSave(ctx context.Context, agg Aggregate, doSave func() error) error {
	r.AssertPointer(agg)
	if err := doSave(); err != nil {
		return err
	}
	root, ok := agg.(AggregateRoot)
	if !ok {
		return nil
	}
	events := append([]DomainEvent(nil), root.Events()...)
	root.ClearEvents()
	for _, event := range events {
		if err := r.pub.Publish(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (r *RepositoryManager) AroundFind(ctx context.Context, doFind func() (Aggregate, error)) (Aggregate, error) {
	return doFind()
}

func (r *RepositoryManager) AroundRemove(ctx context.Context, agg Aggregate, doRemove func() error) error {
	r.AssertPointer(agg)
	return doRemove()
}

func (r *RepositoryManager) NonNil(agg Aggregate, err error) error {
	if err != nil {
		return err
	}
	if isNilAggregate(agg) || agg.AggregateId() <= 0 {
		notFound := fmt.Sprintf("%s not found", funcs.ReflectValueName(agg))
		return apperr.ErrNotFound(notFound, "aggregate", funcs.ReflectValueName(agg))
	}
	return nil
}

func isNilAggregate(agg Aggregate) bool {
	if agg == nil {
		return true
	}
	v := reflect.ValueOf(agg)
	return v.Kind() == reflect.Ptr && v.IsNil()
}

func (r *RepositoryManager) AssertPointer(agg Aggregate) {
	if reflect.TypeOf(agg).Kind() != reflect.Ptr {
		panic("Aggregate param should be a pointer")
	}
}

func (r *RepositoryManager) AssertType(x, y interface{}) {
	if !funcs.TypeEqual(x, y) {
		panic(fmt.Sprintf("%s can not convert to %s", funcs.ReflectValueName(x), funcs.ReflectValueName(y)))
	}
}

type DBRepository interface {
	Repository
	GetDB(ctx context.Context) *gorm.DB
	GetWriteDB(ctx context.Context) *gorm.DB
}

// DBFactory 用来获取一个 *gorm.DB
type DBFactory interface {
	// LookupDB 自动选择主从，详细参考dbresolver
	LookupDB(context.Context) (*gorm.DB, error)
	// LookupWriteDB 强制获取写DB
	LookupWriteDB(context.Context) (*gorm.DB, error)
}

type AggregateExporter func() Aggregate

type DBRepositoryManager struct {
	*RepositoryManager
	dbFactory DBFactory
	exporter  AggregateExporter
}

func NewDBRepositoryManager(manager *RepositoryManager, factory DBFactory, exporter AggregateExporter) *DBRepositoryManager {
	return &DBRepositoryManager{
		RepositoryManager: manager,
		dbFactory:         factory,
		exporter:          exporter,
	}
}

func (r *DBRepositoryManager) GetDB(ctx context.Context) *gorm.DB {
	if txCtx, ok := ctx.(*TransactionContext); ok && txCtx.InTransaction() {
		return txCtx.TxDB()
	}
	db, _ := r.dbFactory.LookupDB(ctx)
	return db
}

func (r *DBRepositoryManager) GetWriteDB(ctx context.Context) *gorm.DB {
	if txCtx, ok := ctx.(*TransactionContext); ok && txCtx.InTransaction() {
		return txCtx.TxDB()
	}
	db, _ := r.dbFactory.LookupWriteDB(ctx)
	return db
}

func (r *DBRepositoryManager) Save(ctx context.Context, aggregate Aggregate) error {
	r.AssertType(aggregate, r.exporter())
	return r.AroundSave(ctx, aggregate, func() error {
		db := r.GetWriteDB(ctx)
		if err := db.Clauses(clause.OnConflict{UpdateAll: true}).Create(aggregate).Error; err != nil {
			return apperr.ErrDBFail(err, "save "+funcs.ReflectValueName(aggregate))
		}
		return nil
	})
}

func (r *DBRepositoryManager) Remove(ctx context.Context, aggregate Aggregate) error {
	r.AssertType(aggregate, r.exporter())
	return r.AroundRemove(ctx, aggregate, func() error {
		db := r.GetWriteDB(ctx)
		if err := db.Delete(aggregate).Error; err != nil {
			return apperr.ErrDBFail(err, "remove "+funcs.ReflectValueName(aggregate))
		}
		return nil
	})
}

func (r *DBRepositoryManager) Find(ctx context.Context, id int64) (Aggregate, error) {
	return r.AroundFind(ctx, func() (Aggregate, error) {
		db := r.GetDB(ctx)
		rlt := r.exporter()
		if err := db.Limit(1).Find(rlt, id).Error; err != nil {
			return nil, apperr.ErrDBFail(err, "find "+funcs.ReflectValueName(rlt))
		}
		if rlt.AggregateId() <= 0 {
			return nil, nil
		}
		return rlt, nil
	})
}

func (r *DBRepositoryManager) FindNonNil(ctx context.Context, id int64) (Aggregate, error) {
	rlt, err := r.Find(ctx, id)
	if err == nil && rlt == nil {
		notFound := fmt.Sprintf("%s not found", funcs.ReflectValueName(r.exporter()))
		return nil, apperr.ErrNotFound(notFound, "id", id)
	}
	return rlt, err
}
