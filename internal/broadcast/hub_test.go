package broadcast

import (
	"testing"
	"time"
)

func recv[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for value")
		panic("unreachable")
	}
}

func TestSubscribeReplaysLatest(t *testing.T) {
	h := NewHub(42)
	defer h.Close()

	ch := h.Subscribe()
	if got := recv(t, ch); got != 42 {
		t.Fatalf("expected initial replay 42, got %d", got)
	}

	h.Publish(7)
	if got := recv(t, ch); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}

	// A late subscriber sees only the newest value.
	late := h.Subscribe()
	if got := recv(t, late); got != 7 {
		t.Fatalf("expected late replay 7, got %d", got)
	}
}

func TestPublishOrder(t *testing.T) {
	h := NewHub(0)
	defer h.Close()

	ch := h.Subscribe()
	recv(t, ch)

	for i := 1; i <= 5; i++ {
		h.Publish(i)
	}
	for i := 1; i <= 5; i++ {
		if got := recv(t, ch); got != i {
			t.Fatalf("expected %d in order, got %d", i, got)
		}
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	h := NewHub("")
	defer h.Close()

	ch := h.Subscribe()
	recv(t, ch)
	if h.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber")
	}

	h.Unsubscribe(ch)
	if h.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers after unsubscribe")
	}

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected closed channel")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for channel close")
	}
}

func TestLaggingSubscriberConverges(t *testing.T) {
	h := NewHub(0)
	defer h.Close()

	ch := h.Subscribe()

	// Publish far more values than the subscriber buffer holds without
	// reading any of them.
	last := 0
	for i := 1; i <= subscriberBuffer*4; i++ {
		h.Publish(i)
		last = i
	}

	// Settle so the loop has drained its publish queue.
	if got := h.Latest(); got != last {
		t.Fatalf("expected latest %d, got %d", last, got)
	}

	// Draining the subscriber must eventually yield the final value; older
	// snapshots may have been discarded but never reordered.
	prev := -1
	var got int
	for {
		select {
		case got = <-ch:
			if got <= prev {
				t.Fatalf("values out of order: %d after %d", got, prev)
			}
			prev = got
		case <-time.After(100 * time.Millisecond):
			if prev != last {
				t.Fatalf("expected to converge on %d, last seen %d", last, prev)
			}
			return
		}
	}
}

func TestCloseStopsEverything(t *testing.T) {
	h := NewHub(1)
	ch := h.Subscribe()
	recv(t, ch)

	h.Close()

	select {
	case _, ok := <-ch:
		if ok {
			t.Fatal("expected subscriber channel closed")
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for close")
	}

	// Operations after close are safe no-ops.
	h.Publish(2)
	if got := h.Latest(); got != 0 {
		t.Fatalf("expected zero value after close, got %d", got)
	}
	if h.SubscriberCount() != 0 {
		t.Fatal("expected no subscribers after close")
	}

	post := h.Subscribe()
	if _, ok := <-post; ok {
		t.Fatal("expected subscribe after close to return a closed channel")
	}

	// Double close must not panic.
	h.Close()
}
