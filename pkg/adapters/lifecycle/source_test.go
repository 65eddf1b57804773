package lifecycle_test

import (
	"context"
	"testing"
	"time"

	adapter "github.com/inkpress/inkpress/pkg/adapters/lifecycle"
	"github.com/inkpress/inkpress/pkg/core"
)

func TestBridgeForwardsEvents(t *testing.T) {
	in := make(chan core.Event, 1)
	src := adapter.NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	want := core.Event{Type: core.EventModify, ID: "a", Timestamp: 1}
	in <- want

	select {
	case got := <-src.Events():
		if got.String() != want.String() {
			t.Errorf("expected %q, got %q", want.String(), got.String())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for bridged event")
	}
}

func TestBridgeClosesOnInputClose(t *testing.T) {
	in := make(chan core.Event)
	src := adapter.NewSource(in)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := src.Start(ctx); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	close(in)

	select {
	case _, ok := <-src.Events():
		if ok {
			t.Error("expected closed channel")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for close")
	}
}
