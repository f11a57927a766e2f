package dynamo

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"normal", State{1.0, 2.0, 3.0, 4.0}, true},
		{"with NaN", State{1.0, math.NaN()}, false},
		{"with +Inf", State{1.0, math.Inf(1)}, false},
		{"with -Inf", State{1.0, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_CloneIndependent(t *testing.T) {
	src := State{1, 2, 3, 4}
	c := src.Clone()
	c[0] = 99
	if src[0] == 99 {
		t.Error("Clone did not create independent copy")
	}
}

func TestState_Norm(t *testing.T) {
	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm = %v, want 5", got)
	}
}

func TestIntegrationError(t *testing.T) {
	err := &IntegrationError{Step: 150, Time: 1.5, Wrapped: ErrStepTooSmall}
	expected := "step 150 (t=1.5000): dynamo: adaptive timestep below minimum"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrStepTooSmall) {
		t.Error("expected errors.Is to match wrapped sentinel")
	}
}

func TestInvalidParameter(t *testing.T) {
	err := InvalidParameter("gravity", -1, "must be positive")
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestParallelFor_CoversRange(t *testing.T) {
	for _, n := range []int{0, 1, 7, 100, 1001} {
		var hits int64
		seen := make([]int32, n)
		ParallelFor(n, 8, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&seen[i], 1)
				atomic.AddInt64(&hits, 1)
			}
		})
		if int(hits) != n {
			t.Errorf("n=%d: visited %d items", n, hits)
		}
		for i, c := range seen {
			if c != 1 {
				t.Errorf("n=%d: index %d visited %d times", n, i, c)
			}
		}
	}
}

func TestRunAll_FirstErrorByIndex(t *testing.T) {
	errLow := errors.New("low")
	err := RunAll(context.Background(), 50, 4, func(i int) error {
		switch i {
		case 7:
			return errLow
		case 30:
			return errors.New("high")
		}
		return nil
	})
	if !errors.Is(err, errLow) {
		t.Errorf("expected error of lowest index, got %v", err)
	}
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int64
	err := RunAll(ctx, 20, 4, func(i int) error {
		atomic.AddInt64(&calls, 1)
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if calls != 0 {
		t.Errorf("expected no calls after cancellation, got %d", calls)
	}
}
