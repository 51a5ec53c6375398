package ddd

import (
	"sync"

	"github.com/zhenyu888/ddd-event/funcs"
)

// Component is a singleton held by the container, e.g. a publisher or a
// repository manager.
type Component interface {
	Name() string
}

var (
	componentMap  = make(map[string]interface{})
	componentLock sync.Mutex
)

// LoadOrStoreComponent 用来保证一个组件是单例的
//
// constructFn runs at most once per component name and is called without
// the container lock held, so it may load other components.
func LoadOrStoreComponent(c interface{}, constructFn func() interface{}) interface{} {
	name := componentName(c)
	if component, ok := LoadComponent(name); ok {
		return component
	}

	lock := constructLock(name)
	lock.Lock()
	defer lock.Unlock()

	if component, ok := LoadComponent(name); ok {
		return component
	}
	component := constructFn()

	componentLock.Lock()
	componentMap[name] = component
	componentLock.Unlock()
	return component
}

func LoadComponent(c interface{}) (interface{}, bool) {
	name := componentName(c)
	componentLock.Lock()
	defer componentLock.Unlock()
	rlt, ok := componentMap[name]
	return rlt, ok
}

func MustLoadComponent(c interface{}) interface{} {
	rlt, ok := LoadComponent(c)
	if !ok {
		panic("component not found: " + componentName(c))
	}
	return rlt
}

var constructLocks sync.Map

func constructLock(name string) *sync.Mutex {
	lock, _ := constructLocks.LoadOrStore(name, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// componentName keys the container: a string is used as is, a Component
// by its Name, anything else by its type name.
func componentName(c interface{}) string {
	switch v := c.(type) {
	case string:
		return v
	case Component:
		return v.Name()
	}
	return funcs.ReflectValueName(c)
}
