package ddd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Aggregate interface {
	AggregateId() int64
}

type AggregateRoot interface {
	Aggregate
	IsZero(aggregate Aggregate) bool
	// RaiseEvent 发布领域事件
	RaiseEvent(event DomainEvent)
	// Events 获取所有的领域事件
	Events() []DomainEvent
	// ClearEvents 清空所有领域事件
	ClearEvents()
}

// AggregateManager is embedded by aggregate roots to queue the domain
// events they raise until a repository saves them.
type AggregateManager struct {
	events []DomainEvent
}

func (a *AggregateManager) IsZero(aggregate Aggregate) bool {
	return aggregate.AggregateId() <= 0
}

func (a *AggregateManager) RaiseEvent(event DomainEvent) {
	if setter, ok := event.(DomainEventSetter); ok {
		if event.GetEventId() == "" {
			setter.SetEventId(fmt.Sprintf("DomainEvent:%s", uuid.NewString()))
		}
		if event.GetOccurredOn() <= 0 {
			setter.SetOccurredOn(time.Now().Unix())
		}
	}
	a.events = append(a.events, event)
}

func (a *AggregateManager) Events() []DomainEvent {
	return a.events
}

func (a *AggregateManager) ClearEvents() {
	if len(a.events) == 0 {
		return
	}
	for idx := range a.events {
		a.events[idx] = nil
	}
	a.events = nil
}

type Entity interface {
	Identifier() int64
}

// MixModel is the gorm model embedded by persisted aggregates.
type MixModel struct {
	Id         int64     `gorm:"primaryKey"`
	CreateTime time.Time `gorm:"autoCreateTime"`
	UpdateTime time.Time `gorm:"autoUpdateTime"`
}

func (a *MixModel) AggregateId() int64 {
	return a.Id
}

func (a *MixModel) Identifier() int64 {
	return a.Id
}
