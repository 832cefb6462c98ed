package store

import "github.com/arthur-debert/nanoboard/types"

// Change describes one applied mutation.
type Change struct {
	Prev   *types.State
	Next   *types.State
	Result Result
}

// ChangeFunc receives changes after they are committed and persisted.
type ChangeFunc func(Change)

type subscription struct {
	id int
	fn ChangeFunc
}

// Subscribe registers fn to be called after every applied mutation, in
// registration order. The returned function removes the subscription.
//
// Changes are delivered one at a time in commit order, even when
// mutations run on several goroutines: each Change.Prev is the Next of the
// change before it. A listener may therefore run on another mutating
// goroutine, and a mutation can return before its own change has been
// delivered. Listeners run outside the store lock and may call back into
// the store.
func (s *Store) Subscribe(fn ChangeFunc) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextSubID++
	id := s.nextSubID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// enqueue queues change for delivery. It runs under the write lock, so
// the queue is in commit order.
func (s *Store) enqueue(change Change) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if len(s.subs) > 0 {
		s.queue = append(s.queue, change)
	}
}

// dispatch delivers queued changes unless another goroutine already is;
// that goroutine drains the queue before it stops.
func (s *Store) dispatch() {
	s.subMu.Lock()
	if s.dispatching {
		s.subMu.Unlock()
		return
	}
	s.dispatching = true
	for len(s.queue) > 0 {
		change := s.queue[0]
		s.queue = s.queue[1:]
		subs := s.subs
		s.subMu.Unlock()

		for _, sub := range subs {
			sub.fn(change)
		}

		s.subMu.Lock()
	}
	s.queue = nil
	s.dispatching = false
	s.subMu.Unlock()
}
