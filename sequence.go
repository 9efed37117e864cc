package mapsim

import "errors"

// ErrNoFrames is returned when a sequence is built from an empty frame list.
var ErrNoFrames = errors.New("mapsim: sequence needs at least one frame")

// SequenceState is the mutable part of a Sequence: which frame is showing and
// when it started showing.
type SequenceState struct {
	Cursor      int
	LastAdvance int64 // ms timestamp of the last cursor change
}

// Sequence is a time-driven cursor over one or more frames.
type Sequence struct {
	frames []*Frame
	static bool
	State  SequenceState
}

// NewSequence builds an animated sequence. The frames are shared, not copied.
func NewSequence(frames ...*Frame) (*Sequence, error) {
	if len(frames) == 0 {
		return nil, ErrNoFrames
	}
	for _, f := range frames {
		if f == nil {
			return nil, errors.New("mapsim: sequence frame is nil")
		}
	}
	return &Sequence{frames: frames}, nil
}

// NewStaticSequence builds a single-frame sequence that never advances.
// Unlike NewSequence it accepts a nil frame: Current then returns nil and a
// layer holding the sequence draws nothing, which serves as a placeholder
// until the frame is loaded.
func NewStaticSequence(frame *Frame) *Sequence {
	return &Sequence{frames: []*Frame{frame}, static: true}
}

// Start marks now as the moment the current frame appeared.
func (s *Sequence) Start(now int64) {
	s.State.LastAdvance = now
}

// Static reports whether the sequence holds a single non-animated frame.
func (s *Sequence) Static() bool {
	return s.static
}

// Len returns the number of frames.
func (s *Sequence) Len() int {
	return len(s.frames)
}

// Frame returns the frame at index i.
func (s *Sequence) Frame(i int) *Frame {
	return s.frames[i]
}

// Current returns the frame to show at time now, advancing the cursor by at
// most one position when the showing frame's delay has elapsed.
func (s *Sequence) Current(now int64) *Frame {
	if s.static {
		return s.frames[0]
	}
	stepSequence(&s.State, s.frames[s.State.Cursor].Delay, len(s.frames), now)
	return s.frames[s.State.Cursor]
}

// stepSequence advances st by one frame if more than delay ms have passed
// since its last advance. It never skips frames, so a slowly polled
// sequence plays slower instead of dropping frames. Reports whether the
// cursor moved.
func stepSequence(st *SequenceState, delay, count int, now int64) bool {
	if now-st.LastAdvance <= int64(delay) {
		return false
	}
	st.Cursor++
	if st.Cursor >= count {
		st.Cursor = 0
	}
	st.LastAdvance = now
	return true
}
