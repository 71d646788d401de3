package output

import (
	"context"
	"testing"
	"time"

	"github.com/mobil-koeln/placepicker/internal/testutil"
)

func TestSignalContext(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := SignalContext(parent)
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("context should not be done initially")
	case <-time.After(10 * time.Millisecond):
	}

	cancelParent()

	select {
	case <-ctx.Done():
		testutil.AssertErrorIs(t, ctx.Err(), context.Canceled)
	case <-time.After(100 * time.Millisecond):
		t.Error("context should follow its parent")
	}
}

func TestSignalContext_Stop(t *testing.T) {
	ctx, stop := SignalContext(context.Background())
	stop()

	select {
	case <-ctx.Done():
	case <-time.After(100 * time.Millisecond):
		t.Error("stop should cancel the context")
	}
}
