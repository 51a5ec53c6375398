// Package ebus is a topic-keyed event bus. Each topic keeps its
// subscribers in listener sets; a Post delivers to the subscribers the
// topic had when the event was posted.
package ebus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/zhenyu888/ddd-event/apperr"
	"github.com/zhenyu888/ddd-event/funcs"
)

type EBus interface {
	Post(ctx context.Context, topic string, event interface{}) error
	Register(handler EventHandler, topic ...string) error
	RegisterAsync(handler EventHandler, topic ...string) error
	Unregister(handler EventHandler, topic ...string)
}

type EventHandler interface {
	Identifier() string
	OnEvent(ctx context.Context, event interface{})
}

// FallibleEventHandler may be implemented by handlers registered with
// RegisterAsync; HandleEvent is then called instead of OnEvent and its
// error is reported by the dispatcher.
type FallibleEventHandler interface {
	EventHandler
	HandleEvent(ctx context.Context, event interface{}) error
}

// EventFilter may be implemented by handlers; returning true skips the
// event for that handler.
type EventFilter interface {
	Filter(event interface{}) bool
}

type bus struct {
	opts   *Options
	topics map[string]*SubscriberRegistry
	lock   sync.RWMutex
}

func NewEBus(opt ...Option) EBus {
	return &bus{
		opts:   buildOptions(opt...),
		topics: make(map[string]*SubscriberRegistry),
	}
}

func (b *bus) loadRegistry(topic string) (*SubscriberRegistry, bool) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	r, ok := b.topics[topic]
	return r, ok
}

func (b *bus) loadOrStoreRegistry(topic string) *SubscriberRegistry {
	if v, ok := b.loadRegistry(topic); ok {
		return v
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if v, ok := b.topics[topic]; ok {
		return v
	}
	registry := NewSubscriberRegistry(b.opts.listenerOptions()...)
	b.topics[topic] = registry
	return registry
}

func (b *bus) Post(ctx context.Context, topic string, event interface{}) error {
	registry, ok := b.loadRegistry(topic)
	if !ok {
		return errors.Wrap(ErrTopicNotFound, topic)
	}
	subscribers := registry.GetSubscribers()
	b.opts.logger.Debug("post event",
		slog.String("topic", topic),
		slog.String("event", eventName(event)),
		slog.Int("subscribers", subscribers.Len()))
	if err := b.opts.dispatcher.Dispatch(ctx, event, subscribers); err != nil {
		return apperr.ErrDispatchFail(err, topic)
	}
	return nil
}

func (b *bus) Register(handler EventHandler, topics ...string) error {
	return b.register(handler, false, topics)
}

func (b *bus) RegisterAsync(handler EventHandler, topics ...string) error {
	return b.register(handler, true, topics)
}

func (b *bus) register(handler EventHandler, async bool, topics []string) error {
	if len(topics) == 0 {
		return ErrRegisterTopicNotSet
	}
	for _, topic := range topics {
		subscribers := b.loadOrStoreRegistry(topic)
		if err := subscribers.Register(handler, async); err != nil {
			return apperr.ErrSubscribeFail(err, handler.Identifier()).With("topic", topic)
		}
	}
	return nil
}

func (b *bus) Unregister(handler EventHandler, topics ...string) {
	for _, topic := range topics {
		if subscribers, ok := b.loadRegistry(topic); ok {
			subscribers.Unregister(handler)
		}
	}
}

func eventName(event interface{}) string {
	if s, ok := event.(fmt.Stringer); ok {
		return s.String()
	}
	return funcs.ReflectValueName(event)
}

var (
	defaultBus EBus
	once       sync.Once
)

func getDefaultBus() EBus {
	once.Do(func() {
		defaultBus = NewEBus()
	})
	return defaultBus
}

func Post(ctx context.Context, topic string, event interface{}) error {
	return getDefaultBus().Post(ctx, topic, event)
}

func Register(handler EventHandler, topic ...string) error {
	return getDefaultBus().Register(handler, topic...)
}

func RegisterAsync(handler EventHandler, topic ...string) error {
	return getDefaultBus().RegisterAsync(handler, topic...)
}

func Unregister(handler EventHandler, topic ...string) {
	getDefaultBus().Unregister(handler, topic...)
}
