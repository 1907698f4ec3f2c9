package reqid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %d from context, got %d ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestNestedContextKeepsInnermost(t *testing.T) {
	outer, _ := NewContext(context.Background())
	inner, id := NewContext(outer)
	if got, _ := FromContext(inner); got != id {
		t.Fatalf("expected inner id %d, got %d", id, got)
	}
}

func TestEnsure(t *testing.T) {
	ctx, id := NewContext(context.Background())
	same, got := Ensure(ctx)
	if same != ctx || got != id {
		t.Fatalf("expected existing id %d to be kept, got %d", id, got)
	}

	fresh, got := Ensure(context.Background())
	if want, ok := FromContext(fresh); !ok || want != got {
		t.Fatalf("expected attached id %d, got %d ok=%v", got, want, ok)
	}
}
