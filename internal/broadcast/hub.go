// Package broadcast implements a replay-last snapshot hub: every
// subscriber receives the latest published value immediately, then each
// subsequent value in publish order.
package broadcast

import "sync/atomic"

// Hub fans a stream of full collection snapshots out to subscribers.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable
// state (subscriber set + latest value). Public methods communicate with
// this loop through channels, so no mutexes are required.
type Hub[T any] struct {
	subscribeCh   chan chan T
	unsubscribeCh chan chan T
	publishCh     chan T
	latestReqCh   chan chan T
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// subscriberBuffer bounds how far a slow subscriber may lag before old
// snapshots are discarded in favor of newer ones.
const subscriberBuffer = 16

// NewHub creates a hub whose replay value starts at initial.
func NewHub[T any](initial T) *Hub[T] {
	h := &Hub[T]{
		subscribeCh:   make(chan chan T),
		unsubscribeCh: make(chan chan T),
		publishCh:     make(chan T, 256),
		latestReqCh:   make(chan chan T),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go h.run(initial)
	return h
}

func (h *Hub[T]) run(latest T) {
	defer close(h.stopped)

	subs := make(map[chan T]struct{})

	// send delivers v without ever blocking the loop: when a subscriber
	// buffer is full the oldest pending snapshot is discarded, so a lagging
	// subscriber always converges to the latest value.
	send := func(ch chan T, v T) {
		for {
			select {
			case ch <- v:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	}

	for {
		select {
		case <-h.stopCh:
			for ch := range subs {
				close(ch)
			}
			return

		case ch := <-h.subscribeCh:
			subs[ch] = struct{}{}
			send(ch, latest)

		case ch := <-h.unsubscribeCh:
			if _, ok := subs[ch]; ok {
				delete(subs, ch)
				close(ch)
			}

		case v := <-h.publishCh:
			latest = v
			for ch := range subs {
				send(ch, v)
			}

		case resp := <-h.latestReqCh:
			resp <- latest

		case resp := <-h.countReqCh:
			resp <- len(subs)
		}
	}
}

// Close stops the hub loop and closes all subscriber channels.
func (h *Hub[T]) Close() {
	if h.closed.CompareAndSwap(false, true) {
		close(h.stopCh)
	}
	<-h.stopped
}

// Subscribe registers a new subscriber. The returned channel carries the
// latest value first, then every published value in order.
func (h *Hub[T]) Subscribe() chan T {
	ch := make(chan T, subscriberBuffer)
	if h.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case h.subscribeCh <- ch:
	case <-h.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (h *Hub[T]) Unsubscribe(ch chan T) {
	if h.closed.Load() {
		return
	}
	select {
	case h.unsubscribeCh <- ch:
	case <-h.stopped:
	}
}

// Publish replaces the latest value and fans it out to all subscribers.
func (h *Hub[T]) Publish(v T) {
	if h.closed.Load() {
		return
	}
	select {
	case h.publishCh <- v:
	case <-h.stopped:
	}
}

// Latest returns the current replay value.
func (h *Hub[T]) Latest() T {
	var zero T
	if h.closed.Load() {
		return zero
	}

	resp := make(chan T, 1)
	select {
	case h.latestReqCh <- resp:
	case <-h.stopped:
		return zero
	}

	select {
	case v := <-resp:
		return v
	case <-h.stopped:
		return zero
	}
}

// SubscriberCount returns the number of registered subscribers.
func (h *Hub[T]) SubscriberCount() int {
	if h.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case h.countReqCh <- resp:
	case <-h.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-h.stopped:
		return 0
	}
}
