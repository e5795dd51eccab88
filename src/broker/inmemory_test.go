package broker

import (
	"context"
	"errors"
	"testing"
)

func TestInMemoryBroker_Publish(t *testing.T) {
	b := NewInMemoryBroker()
	ctx := context.Background()

	if err := b.Publish(ctx, "events", "run-1", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := b.Publish(ctx, "events", "run-2", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if err := b.Publish(ctx, "other", "x", nil); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	msgs := b.Messages("events")
	if len(msgs) != 2 {
		t.Fatalf("len(Messages) = %d, want 2", len(msgs))
	}
	if msgs[0].Key != "run-1" || string(msgs[1].Value) != `{"a":2}` {
		t.Errorf("messages out of order: %+v", msgs)
	}
	if len(b.Messages("missing")) != 0 {
		t.Error("Messages(missing) should be empty")
	}
}

func TestInMemoryBroker_Closed(t *testing.T) {
	b := NewInMemoryBroker()
	b.Close()

	err := b.Publish(context.Background(), "events", "k", nil)
	if !errors.Is(err, ErrClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrClosed", err)
	}
}

func TestInMemoryBroker_CancelledContext(t *testing.T) {
	b := NewInMemoryBroker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := b.Publish(ctx, "events", "k", nil); err == nil {
		t.Error("Publish() with cancelled context should fail")
	}
	if len(b.Messages("events")) != 0 {
		t.Error("no message should be recorded")
	}
}

func TestNewRedpandaBroker_RequiresBrokers(t *testing.T) {
	if _, err := NewRedpandaBroker(nil); err == nil {
		t.Error("NewRedpandaBroker(nil) expected error")
	}
}
