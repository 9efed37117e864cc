package mapsim

import "strings"

// MotionPolicy selects how a background layer repeats and drifts. Values
// follow the authoring format's numbering.
type MotionPolicy uint8

const (
	PolicyRegular                  MotionPolicy = iota // single draw
	PolicyHorizontalTiling                             // repeat along X
	PolicyVerticalTiling                               // repeat along Y
	PolicyHVTiling                                     // repeat along both axes
	PolicyHorizontalMoving                             // repeat along X, drift along X
	PolicyVerticalMoving                               // repeat along Y, drift along Y
	PolicyHorizontalMovingHVTiling                     // repeat along both, drift along X
	PolicyVerticalMovingHVTiling                       // repeat along both, drift along Y
)

// TileShape is the repetition half of a MotionPolicy.
type TileShape uint8

const (
	ShapeNone       TileShape = iota // one copy
	ShapeHorizontal                  // one row of copies
	ShapeVertical                    // one column of copies
	ShapeBoth                        // a full grid of copies
)

// Axis names a drift direction.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX
	AxisY
)

var policyNames = [...]string{
	"Regular",
	"HorizontalTiling",
	"VerticalTiling",
	"HVTiling",
	"HorizontalMoving",
	"VerticalMoving",
	"HorizontalMovingHVTiling",
	"VerticalMovingHVTiling",
}

// String returns the policy's authoring name. Unknown values print as
// Regular since that is how they render.
func (p MotionPolicy) String() string {
	if int(p) < len(policyNames) {
		return policyNames[p]
	}
	return policyNames[PolicyRegular]
}

// Known reports whether p is one of the eight defined policies.
func (p MotionPolicy) Known() bool {
	return int(p) < len(policyNames)
}

// ParsePolicy looks a policy up by name, case-insensitively.
func ParsePolicy(name string) (MotionPolicy, bool) {
	for i, n := range policyNames {
		if strings.EqualFold(n, name) {
			return MotionPolicy(i), true
		}
	}
	return PolicyRegular, false
}

// Shape returns the repetition shape of the policy.
func (p MotionPolicy) Shape() TileShape {
	switch p {
	case PolicyHorizontalTiling, PolicyHorizontalMoving:
		return ShapeHorizontal
	case PolicyVerticalTiling, PolicyVerticalMoving:
		return ShapeVertical
	case PolicyHVTiling, PolicyHorizontalMovingHVTiling, PolicyVerticalMovingHVTiling:
		return ShapeBoth
	default:
		return ShapeNone
	}
}

// DriftAxis returns the axis the policy drifts along, if any.
func (p MotionPolicy) DriftAxis() Axis {
	switch p {
	case PolicyHorizontalMoving, PolicyHorizontalMovingHVTiling:
		return AxisX
	case PolicyVerticalMoving, PolicyVerticalMovingHVTiling:
		return AxisY
	default:
		return AxisNone
	}
}

// tileJob carries everything one tiling pass needs. All values are screen
// pixels.
type tileJob struct {
	x, y          int // base position
	periodX       int
	periodY       int
	width, height int // frame size
	viewW, viewH  int
}

// tileAxis emits base, then steps left by period while a copy still reaches
// past 0, then steps right by period while a copy still starts before limit.
// Copies on the far side of the viewport are skipped arithmetically, so a
// base far off-screen costs O(limit/period) draws, not O(|base|/period).
// period must be positive.
func tileAxis(base, period, size, limit int, emit func(int)) {
	emit(base)

	// First k >= 1 with base-k*period < limit.
	k := 1
	if base-limit >= 0 {
		k = (base-limit)/period + 1
	}
	for c := base - k*period; c+size > 0; c -= period {
		emit(c)
	}

	// First k >= 1 with base+k*period+size > 0.
	k = 1
	if -base-size >= 0 {
		k = (-base-size)/period + 1
	}
	for c := base + k*period; c < limit; c += period {
		emit(c)
	}
}

// emitTiles runs one tiling pass for shape and reports the number of
// positions emitted. A tiled axis with a non-positive period degrades to a
// single draw at the base position.
func emitTiles(shape TileShape, j tileJob, emit func(x, y int)) int {
	n := 0
	count := func(x, y int) {
		n++
		emit(x, y)
	}

	switch shape {
	case ShapeHorizontal:
		if j.periodX <= 0 {
			break
		}
		tileAxis(j.x, j.periodX, j.width, j.viewW, func(x int) { count(x, j.y) })
		return n
	case ShapeVertical:
		if j.periodY <= 0 {
			break
		}
		tileAxis(j.y, j.periodY, j.height, j.viewH, func(y int) { count(j.x, y) })
		return n
	case ShapeBoth:
		if j.periodX <= 0 || j.periodY <= 0 {
			break
		}
		tileAxis(j.x, j.periodX, j.width, j.viewW, func(x int) {
			tileAxis(j.y, j.periodY, j.height, j.viewH, func(y int) { count(x, y) })
		})
		return n
	}

	count(j.x, j.y)
	return n
}
