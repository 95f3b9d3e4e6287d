package cartstore

import (
	"slices"
	"sync"
)

// observers is the change signal: a list of callbacks with no payload.
type observers struct {
	mu   sync.Mutex
	list []*observer
}

type observer struct {
	fn func()
}

func (o *observers) add(fn func()) (remove func()) {
	obs := &observer{fn: fn}

	o.mu.Lock()
	o.list = append(o.list, obs)
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()

			o.list = slices.DeleteFunc(o.list, func(x *observer) bool { return x == obs })
		})
	}
}

// broadcast calls every observer registered at the time of the call, in
// registration order. Observers may subscribe or unsubscribe re-entrantly.
func (o *observers) broadcast() {
	o.mu.Lock()
	snapshot := slices.Clone(o.list)
	o.mu.Unlock()

	for _, obs := range snapshot {
		obs.fn()
	}
}
