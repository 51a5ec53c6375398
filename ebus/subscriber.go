package ebus

import (
	"context"
	"fmt"
	"sync"

	"github.com/zhenyu888/ddd-event/listener"
)

type (
	SyncFunc  func(ctx context.Context, event interface{})
	AsyncFunc func(ctx context.Context, event interface{}) error
)

// Subscribers is what one Post delivers to: the subscribers of a topic at
// the moment the event was posted.
type Subscribers struct {
	Sync  listener.Snapshot[SyncFunc]
	Async listener.Snapshot[AsyncFunc]
}

func (s Subscribers) Len() int {
	return s.Sync.Len() + s.Async.Len()
}

// SubscriberRegistry holds the subscribers of one topic. Its listener sets
// are only touched under lock; subscriber code always runs outside it, so
// subscribers may register or unregister while an event is delivered.
type SubscriberRegistry struct {
	sync  *listener.Set[SyncFunc]
	async *listener.Set[AsyncFunc]
	lock  sync.Mutex
}

func NewSubscriberRegistry(opt ...listener.Option) *SubscriberRegistry {
	return &SubscriberRegistry{
		sync:  listener.New[SyncFunc](opt...),
		async: listener.New[AsyncFunc](opt...),
	}
}

// GetSubscribers snapshots the subscribers of the topic.
func (s *SubscriberRegistry) GetSubscribers() Subscribers {
	s.lock.Lock()
	defer s.lock.Unlock()

	return Subscribers{
		Sync:  s.sync.Prepare(),
		Async: s.async.Prepare(),
	}
}

func (s *SubscriberRegistry) Register(handler EventHandler, async bool) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	syncHandle, asyncHandle := newSyncSubscriber(handler), newAsyncSubscriber(handler)
	if s.sync.Contains(syncHandle) || s.async.Contains(asyncHandle) {
		return ErrSubscriberAlreadyRegistered
	}
	if async {
		s.async.Add(asyncHandle)
	} else {
		s.sync.Add(syncHandle)
	}
	return nil
}

func (s *SubscriberRegistry) Unregister(handler EventHandler) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.sync.Remove(newSyncSubscriber(handler)) {
		s.async.Remove(newAsyncSubscriber(handler))
	}
}

func (s *SubscriberRegistry) Count() int {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.sync.Count() + s.async.Count()
}

func subscriberIdentifier(handler EventHandler) string {
	return fmt.Sprintf("subscriber-%s", handler.Identifier())
}

func filtered(handler EventHandler, event interface{}) bool {
	if f, ok := handler.(EventFilter); ok {
		return f.Filter(event)
	}
	return false
}

func newSyncSubscriber(handler EventHandler) listener.Handle[SyncFunc] {
	return listener.Keyed(subscriberIdentifier(handler), SyncFunc(func(ctx context.Context, event interface{}) {
		if filtered(handler, event) {
			return
		}
		handler.OnEvent(ctx, event)
	}))
}

func newAsyncSubscriber(handler EventHandler) listener.Handle[AsyncFunc] {
	return listener.Keyed(subscriberIdentifier(handler), AsyncFunc(func(ctx context.Context, event interface{}) error {
		if filtered(handler, event) {
			return nil
		}
		if h, ok := handler.(FallibleEventHandler); ok {
			return h.HandleEvent(ctx, event)
		}
		handler.OnEvent(ctx, event)
		return nil
	}))
}
