package mapsim

import (
	"errors"
	"testing"
)

func testFrames(delays ...int) []*Frame {
	frames := make([]*Frame, len(delays))
	for i, d := range delays {
		frames[i] = &Frame{Width: 32, Height: 32, Delay: d}
	}
	return frames
}

func TestSequenceHoldsFrameUntilDelayElapses(t *testing.T) {
	frames := testFrames(100, 50, 80)
	seq, err := NewSequence(frames...)
	if err != nil {
		t.Fatalf("NewSequence: %v", err)
	}
	seq.Start(0)

	for _, now := range []int64{0, 1, 50, 100} {
		if got := seq.Current(now); got != frames[0] {
			t.Fatalf("Current(%d) returned frame %p, want first frame", now, got)
		}
	}
	if got := seq.Current(101); got != frames[1] {
		t.Fatalf("Current(101) should advance to the second frame")
	}
	if seq.State.Cursor != 1 {
		t.Errorf("Cursor = %d, want 1", seq.State.Cursor)
	}
	if seq.State.LastAdvance != 101 {
		t.Errorf("LastAdvance = %d, want 101", seq.State.LastAdvance)
	}
}

func TestSequenceWrapsToFirstFrame(t *testing.T) {
	frames := testFrames(10, 10)
	seq, _ := NewSequence(frames...)
	seq.Start(0)

	if got := seq.Current(11); got != frames[1] {
		t.Fatal("expected second frame at t=11")
	}
	if got := seq.Current(22); got != frames[0] {
		t.Fatal("expected wrap to first frame at t=22")
	}
	if seq.State.Cursor != 0 {
		t.Errorf("Cursor = %d, want 0 after wrap", seq.State.Cursor)
	}
}

func TestSequenceAdvancesAtMostOneFrame(t *testing.T) {
	frames := testFrames(10, 10, 10, 10)
	seq, _ := NewSequence(frames...)
	seq.Start(0)

	if got := seq.Current(10_000); got != frames[1] {
		t.Fatal("a long gap should still advance exactly one frame")
	}
	if got := seq.Current(10_000); got != frames[1] {
		t.Fatal("a second call at the same instant must not advance")
	}
}

func TestStaticSequenceNeverAdvances(t *testing.T) {
	f := &Frame{Width: 8, Height: 8, Delay: 1}
	seq := NewStaticSequence(f)
	if !seq.Static() {
		t.Fatal("Static() = false")
	}
	for _, now := range []int64{0, 5, 1_000_000} {
		if got := seq.Current(now); got != f {
			t.Fatalf("Current(%d) did not return the static frame", now)
		}
	}
	if seq.State != (SequenceState{}) {
		t.Errorf("static sequence state changed: %+v", seq.State)
	}
}

func TestNewSequenceRejectsEmpty(t *testing.T) {
	_, err := NewSequence()
	if !errors.Is(err, ErrNoFrames) {
		t.Fatalf("err = %v, want ErrNoFrames", err)
	}
}

func TestNewSequenceRejectsNilFrame(t *testing.T) {
	if _, err := NewSequence(&Frame{}, nil); err == nil {
		t.Fatal("expected error for nil frame")
	}
}

func TestStepSequence(t *testing.T) {
	st := SequenceState{Cursor: 2, LastAdvance: 10}

	if stepSequence(&st, 5, 3, 15) {
		t.Fatal("elapsed equal to delay must not advance")
	}
	if !stepSequence(&st, 5, 3, 16) {
		t.Fatal("elapsed past delay should advance")
	}
	if st.Cursor != 0 || st.LastAdvance != 16 {
		t.Errorf("state = %+v, want {Cursor:0 LastAdvance:16}", st)
	}
}

func TestManualClockIsMonotonic(t *testing.T) {
	var c ManualClock
	c.Advance(100)
	c.Advance(-50)
	if c.Now() != 100 {
		t.Errorf("Now = %d, want 100", c.Now())
	}
	c.Set(40)
	if c.Now() != 100 {
		t.Errorf("Set backwards moved clock to %d", c.Now())
	}
	c.Set(250)
	if c.Now() != 250 {
		t.Errorf("Now = %d, want 250", c.Now())
	}
}

func TestSystemClockStartsNearZero(t *testing.T) {
	c := NewSystemClock()
	if now := c.Now(); now < 0 || now > 1000 {
		t.Errorf("Now = %d, want close to 0", now)
	}
}
