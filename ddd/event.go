package ddd

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/zhenyu888/ddd-event/ebus"
)

type DomainEvent interface {
	fmt.Stringer
	GetEventId() string
	GetOccurredOn() int64
}

type DomainEventSetter interface {
	SetEventId(string)
	SetOccurredOn(int64)
}

type DomainEventPublisher interface {
	Publish(context.Context, DomainEvent) error
}

var (
	DomainEventPublisherName = "ddd:core:DomainEventPublisher"
	topic                    = "ddd:domain_event_topic"
)

func NewDomainEventPublisher() DomainEventPublisher {
	rlt := LoadOrStoreComponent(&ebusPublisher{}, func() interface{} {
		return &ebusPublisher{}
	})
	return rlt.(DomainEventPublisher)
}

type ebusPublisher struct{}

func (p *ebusPublisher) Name() string {
	return DomainEventPublisherName
}

// Publish delivers event to every domain event subscriber. Publishing
// before anyone subscribed is not an error.
func (p *ebusPublisher) Publish(ctx context.Context, event DomainEvent) error {
	err := ebus.Post(ctx, topic, event)
	if errors.Is(err, ebus.ErrTopicNotFound) {
		return nil
	}
	return err
}

type DomainEventSubscriber func(context.Context, DomainEvent)

type dddEventHandler struct {
	id    string
	fn    DomainEventSubscriber
	async bool
}

func (e *dddEventHandler) Identifier() string {
	return e.id
}

func (e *dddEventHandler) OnEvent(ctx context.Context, event interface{}) {
	if e.async {
		// 异步事件去除事务
		if txCtx, ok := ctx.(*TransactionContext); ok {
			ctx = txCtx.Ctx()
		}
	}
	e.fn(ctx, event.(DomainEvent))
}

// RegisterAsyncEventSubscriber subscribes fn to every published domain
// event; async subscribers of one publish run concurrently, outside any
// transaction. Panics if id is already subscribed.
func RegisterAsyncEventSubscriber(id string, subscriber DomainEventSubscriber) {
	if err := ebus.RegisterAsync(&dddEventHandler{
		id:    id,
		fn:    subscriber,
		async: true,
	}, topic); err != nil {
		panic(err)
	}
}

// RegisterSyncEventSubscriber subscribes fn to every published domain
// event; sync subscribers run in registration order on the publishing
// goroutine, inside the caller's transaction. Panics if id is already
// subscribed.
func RegisterSyncEventSubscriber(id string, subscriber DomainEventSubscriber) {
	if err := ebus.Register(&dddEventHandler{
		id:    id,
		fn:    subscriber,
		async: false,
	}, topic); err != nil {
		panic(err)
	}
}

// UnregisterEventSubscriber removes the subscriber registered under id, sync
// or async. Unknown ids are ignored.
func UnregisterEventSubscriber(id string) {
	ebus.Unregister(&dddEventHandler{id: id}, topic)
}
