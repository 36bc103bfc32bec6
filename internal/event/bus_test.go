package event

import (
	"sync"
	"testing"
)

func TestBus_Subscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("test.event", func(e Event) {
		called = true
	})

	if id == 0 {
		t.Error("Subscribe should return a non-zero id")
	}
	if called {
		t.Error("Handler should not be called until an event is published")
	}
}

func TestBus_Publish(t *testing.T) {
	bus := NewBus()

	var receivedEvent Event
	bus.Subscribe(TypeEditFinished, func(e Event) {
		receivedEvent = e
	})

	bus.Publish(NewEditFinishedEvent("/tmp/extedit-1", "edited text"))

	if receivedEvent == nil {
		t.Fatal("Handler should have received the event")
	}

	finished, ok := receivedEvent.(EditFinishedEvent)
	if !ok {
		t.Fatalf("Expected EditFinishedEvent, got %T", receivedEvent)
	}
	if finished.Text != "edited text" {
		t.Errorf("Expected text 'edited text', got %q", finished.Text)
	}
}

func TestBus_PublishMultipleHandlers(t *testing.T) {
	bus := NewBus()

	callCount := 0
	bus.Subscribe("test.event", func(e Event) {
		callCount++
	})
	bus.Subscribe("test.event", func(e Event) {
		callCount++
	})

	bus.Publish(newBaseEvent("test.event"))

	if callCount != 2 {
		t.Errorf("Expected both handlers to be called, got %d calls", callCount)
	}
}

func TestBus_PublishNoMatchingHandlers(t *testing.T) {
	bus := NewBus()

	bus.Subscribe("other.event", func(e Event) {
		t.Error("Handler should not be called for non-matching event type")
	})

	// This should not panic or call the handler
	bus.Publish(newBaseEvent("test.event"))
}

func TestBus_SubscribeAll(t *testing.T) {
	bus := NewBus()

	var events []string
	bus.SubscribeAll(func(e Event) {
		events = append(events, e.EventType())
	})

	bus.Publish(NewFileUpdatedEvent("/tmp/f", "a"))
	bus.Publish(NewFileUpdatedEvent("/tmp/f", "ab"))
	bus.Publish(NewEditFinishedEvent("/tmp/f", "abc"))

	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}

	expected := []string{TypeFileUpdated, TypeFileUpdated, TypeEditFinished}
	for i, e := range expected {
		if events[i] != e {
			t.Errorf("Expected event %d to be '%s', got '%s'", i, e, events[i])
		}
	}
}

func TestBus_SpecificHandlersBeforeWildcard(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.SubscribeAll(func(e Event) {
		order = append(order, "wildcard")
	})
	bus.Subscribe("test.event", func(e Event) {
		order = append(order, "specific")
	})

	bus.Publish(newBaseEvent("test.event"))

	if len(order) != 2 || order[0] != "specific" || order[1] != "wildcard" {
		t.Errorf("delivery order = %v, want [specific wildcard]", order)
	}
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	called := false
	id := bus.Subscribe("test.event", func(e Event) {
		called = true
	})

	if !bus.Unsubscribe(id) {
		t.Error("Unsubscribe should return true when the subscription exists")
	}

	bus.Publish(newBaseEvent("test.event"))

	if called {
		t.Error("Handler should not be called after unsubscribing")
	}
}

func TestBus_UnsubscribeNonExistent(t *testing.T) {
	bus := NewBus()

	if bus.Unsubscribe(42) {
		t.Error("Unsubscribe should return false for an unknown id")
	}
}

func TestBus_UnsubscribeFromHandler(t *testing.T) {
	bus := NewBus()

	// One-shot subscription: the handler removes itself on first delivery,
	// the pattern the CLI uses to wait for the end of a cycle.
	calls := 0
	var id uint64
	id = bus.Subscribe("test.event", func(e Event) {
		calls++
		bus.Unsubscribe(id)
	})

	bus.Publish(newBaseEvent("test.event"))
	bus.Publish(newBaseEvent("test.event"))

	if calls != 1 {
		t.Errorf("Expected exactly one call for a one-shot handler, got %d", calls)
	}
}

func TestBus_HandlerPanicRecovery(t *testing.T) {
	bus := NewBus()

	calls := 0
	bus.Subscribe("test.event", func(e Event) {
		calls++
		panic("handler panic")
	})
	bus.Subscribe("test.event", func(e Event) {
		calls++
	})

	// Should not panic
	bus.Publish(newBaseEvent("test.event"))

	if calls != 2 {
		t.Errorf("Expected both handlers to be called despite panic, got %d calls", calls)
	}
}

func TestBus_ConcurrentPublish(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	calls := 0
	bus.Subscribe("test.event", func(e Event) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for range 100 {
		wg.Go(func() {
			bus.Publish(newBaseEvent("test.event"))
		})
	}
	wg.Wait()

	if calls != 100 {
		t.Errorf("Expected 100 calls, got %d", calls)
	}
}

func TestAbortEvent_Fields(t *testing.T) {
	e := NewEditAbortedEvent("/tmp/f", AbortExitCode, 1)

	if e.EventType() != TypeEditAborted {
		t.Errorf("EventType() = %q, want %q", e.EventType(), TypeEditAborted)
	}
	if e.Reason != AbortExitCode {
		t.Errorf("Reason = %q, want %q", e.Reason, AbortExitCode)
	}
	if e.ExitCode != 1 {
		t.Errorf("ExitCode = %d, want 1", e.ExitCode)
	}
	if e.Timestamp().IsZero() {
		t.Error("Timestamp should be set")
	}
}
