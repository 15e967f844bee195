package echo

import (
	"bytes"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	if DefaultConfig().Delay != 300*time.Millisecond {
		t.Errorf("Delay = %v, want 300ms", DefaultConfig().Delay)
	}
}

func TestQueue_NothingDueBeforeDelay(t *testing.T) {
	q := NewQueue(300 * time.Millisecond)
	base := time.Now()

	q.Push([]byte{0x90, 60, 100}, base)

	if got := q.Due(base.Add(299 * time.Millisecond)); got != nil {
		t.Errorf("Due before the delay = %v, want none", got)
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1", q.Len())
	}
}

func TestQueue_ReleasesAfterDelay(t *testing.T) {
	q := NewQueue(300 * time.Millisecond)
	base := time.Now()
	msg := []byte{0x90, 60, 100}

	q.Push(msg, base)

	got := q.Due(base.Add(300 * time.Millisecond))
	if len(got) != 1 || !bytes.Equal(got[0], msg) {
		t.Fatalf("Due = %v, want [%v]", got, msg)
	}
	if q.Len() != 0 {
		t.Errorf("Len after release = %d, want 0", q.Len())
	}
}

func TestQueue_PreservesArrivalOrder(t *testing.T) {
	q := NewQueue(100 * time.Millisecond)
	base := time.Now()

	first := []byte{0x90, 60, 100}
	second := []byte{0x80, 60, 0}
	q.Push(first, base)
	q.Push(second, base.Add(10*time.Millisecond))

	got := q.Due(base.Add(200 * time.Millisecond))
	if len(got) != 2 {
		t.Fatalf("Due returned %d messages, want 2", len(got))
	}
	if !bytes.Equal(got[0], first) || !bytes.Equal(got[1], second) {
		t.Errorf("Due = %v, want [%v %v]", got, first, second)
	}
}

func TestQueue_PartialRelease(t *testing.T) {
	q := NewQueue(100 * time.Millisecond)
	base := time.Now()

	q.Push([]byte{0x90, 60, 100}, base)
	q.Push([]byte{0x90, 64, 100}, base.Add(50*time.Millisecond))

	got := q.Due(base.Add(120 * time.Millisecond))
	if len(got) != 1 {
		t.Fatalf("Due returned %d messages, want only the first", len(got))
	}
	if q.Len() != 1 {
		t.Errorf("Len = %d, want 1 still pending", q.Len())
	}
}

func TestQueue_CopiesData(t *testing.T) {
	q := NewQueue(0)
	base := time.Now()

	msg := []byte{0x90, 60, 100}
	q.Push(msg, base)
	msg[1] = 0

	got := q.Due(base)
	if len(got) != 1 || got[0][1] != 60 {
		t.Error("queued message should not alias the caller's slice")
	}
}
