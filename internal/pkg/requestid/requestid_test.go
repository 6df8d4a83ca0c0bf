package requestid

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestFrom(t *testing.T) {
	if got := From(With(context.Background(), "req-1")); got != "req-1" {
		t.Fatalf("expected stored id, got %q", got)
	}

	got := From(context.Background())
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a generated uuid, got %q", got)
	}

	if ctx := With(context.Background(), ""); ctx.Value(ctxKey{}) != nil {
		t.Fatalf("empty id must not be stored")
	}
}
