package testfixtures

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestClock(t *testing.T) {
	t.Parallel()

	c := NewClock(time.Time{})
	if !c.Now().Equal(ReferenceTime()) {
		t.Fatalf("expected reference time, got %v", c.Now())
	}
	if got := c.Advance(time.Hour); !got.Equal(ReferenceTime().Add(time.Hour)) {
		t.Fatalf("expected advanced time, got %v", got)
	}

	var nilClock *Clock
	if nilClock.NowFunc() == nil {
		t.Fatal("expected a fallback time source")
	}
}

func TestIDsAreValidUUIDs(t *testing.T) {
	t.Parallel()

	g := NewIDGenerator()
	first, second := g.Next(), g.Next()
	if first == second {
		t.Fatal("expected distinct ids")
	}
	for _, id := range []string{first, second, UUID(42)} {
		if _, err := uuid.Parse(id); err != nil {
			t.Fatalf("expected %q to parse as uuid: %v", id, err)
		}
	}
}
