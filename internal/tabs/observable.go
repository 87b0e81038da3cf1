// Package tabs implements the tab synchronization engine: a paged set of
// independently scrollable lists kept in sync with a shared collapsible header
// and a tab strip. It owns no rendering; a front end feeds it scroll, pager and
// layout events and renders the state it derives.
//
// All methods are expected to run on a single UI goroutine (the bubbletea
// Update loop in pkg/tabview). Nothing here takes locks.
package tabs

// Readable is the read side of a Value. Consumers get a Readable so that every
// field keeps exactly one writer.
type Readable[T comparable] interface {
	Get() T
	Subscribe(fn func(prev, next T)) (cancel func())
}

// Value is an observable cell. Subscribers run synchronously, in subscription
// order, whenever Set stores a different value.
type Value[T comparable] struct {
	v      T
	subs   []subscriber[T]
	nextID int
}

type subscriber[T comparable] struct {
	id int
	fn func(prev, next T)
}

// NewValue creates a Value holding v.
func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{v: v}
}

// Get returns the current value.
func (c *Value[T]) Get() T {
	return c.v
}

// Set stores next and notifies subscribers. Returns false when next equals the
// current value (no notification).
func (c *Value[T]) Set(next T) bool {
	if c.v == next {
		return false
	}
	prev := c.v
	c.v = next
	// Copy so subscribers may cancel themselves while being notified.
	subs := make([]subscriber[T], len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		s.fn(prev, next)
	}
	return true
}

// Subscribe registers fn and returns a function that removes it.
func (c *Value[T]) Subscribe(fn func(prev, next T)) func() {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber[T]{id: id, fn: fn})
	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// Subscribers returns how many subscribers are registered.
func (c *Value[T]) Subscribers() int {
	return len(c.subs)
}
