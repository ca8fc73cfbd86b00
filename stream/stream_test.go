package stream

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStream_Collect(t *testing.T) {
	s := Of(1, 2, 3)
	values, err := s.Collect()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(values) != 3 {
		t.Fatalf("Expected 3 values, got %d", len(values))
	}
	for i, expect := range []int{1, 2, 3} {
		if values[i] != expect {
			t.Errorf("Expected value %d at position %d, got %d", expect, i, values[i])
		}
	}
}

func TestStream_CloseOnce(t *testing.T) {
	s := New[string]()
	if !s.Close() {
		t.Errorf("Expected first Close to take effect")
	}
	if s.Close() {
		t.Errorf("Expected second Close to be ignored")
	}
	if s.Fail(errors.New("late")) {
		t.Errorf("Expected Fail after Close to be ignored")
	}
	if s.Err() != nil {
		t.Errorf("Expected no terminal error, got %v", s.Err())
	}
	if !s.Closed() {
		t.Errorf("Expected stream to be closed")
	}
}

func TestStream_FailOnce(t *testing.T) {
	s := New[string]()
	terminal := errors.New("broken")
	if !s.Fail(terminal) {
		t.Errorf("Expected first Fail to take effect")
	}
	if s.Fail(errors.New("other")) {
		t.Errorf("Expected second Fail to be ignored")
	}
	if s.Close() {
		t.Errorf("Expected Close after Fail to be ignored")
	}
	if s.Err() != terminal {
		t.Errorf("Expected terminal error to be preserved, got %v", s.Err())
	}
	if _, err := s.Collect(); err != terminal {
		t.Errorf("Expected Collect to surface the terminal error, got %v", err)
	}
}

func TestStream_Subscribe(t *testing.T) {
	s := New[int](WithBuffer(4))
	var seen []int
	done := make(chan struct{})
	s.Subscribe(func(value int) {
		seen = append(seen, value)
	}, func() {
		close(done)
	})
	for i := 1; i <= 4; i++ {
		s.Emit(i)
	}
	s.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Subscription did not complete")
	}
	if len(seen) != 4 {
		t.Fatalf("Expected 4 values, got %d", len(seen))
	}
	for i, value := range seen {
		if value != i+1 {
			t.Errorf("Expected value %d at position %d, got %d", i+1, i, value)
		}
	}
}

func TestDeferred_ResolveOnce(t *testing.T) {
	d := NewDeferred[int]()
	if _, _, ok := d.Settled(); ok {
		t.Errorf("Expected deferred to be unsettled")
	}
	if !d.Resolve(42) {
		t.Errorf("Expected first Resolve to take effect")
	}
	if d.Resolve(7) {
		t.Errorf("Expected second Resolve to be ignored")
	}
	if d.Reject(errors.New("late")) {
		t.Errorf("Expected Reject after Resolve to be ignored")
	}
	value, err := d.Wait(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if value != 42 {
		t.Errorf("Expected 42, got %d", value)
	}
}

func TestDeferred_Reject(t *testing.T) {
	d := NewDeferred[int]()
	terminal := errors.New("failed")
	if !d.Reject(terminal) {
		t.Errorf("Expected first Reject to take effect")
	}
	if d.Resolve(1) {
		t.Errorf("Expected Resolve after Reject to be ignored")
	}
	if _, err := d.Wait(context.Background()); err != terminal {
		t.Errorf("Expected terminal error to be preserved, got %v", err)
	}
}

func TestDeferred_WaitContext(t *testing.T) {
	d := NewDeferred[int]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := d.Wait(ctx); err != context.Canceled {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
