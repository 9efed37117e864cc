package mapsim

import "math"

// driftDivisor scales ratio*ms into pixels. A ratio of 200 drifts one pixel
// per millisecond.
const driftDivisor = 200.0

// Drift integrates elapsed time into a sub-pixel shift along one axis,
// wrapped to the tiling period.
type Drift struct {
	Shift    float64
	LastTick int64 // ms timestamp of the last Advance

	// negative is set while the unwrapped shift is below zero, i.e. Shift
	// stands for Shift-period. Offset rounds toward zero on that value.
	negative bool
}

// Offset returns the shift truncated toward zero, as applied to draw origins.
// A negative drift truncates its signed value, which for the wrapped Shift
// means rounding up; the result may then equal the period, which tiles the
// same as 0.
func (d *Drift) Offset() int {
	if d.negative {
		return int(math.Ceil(d.Shift))
	}
	return int(d.Shift)
}

// Advance adds ratio*elapsed/200 to the shift and wraps it into
// [0, period). A non-positive period leaves the shift untouched.
func (d *Drift) Advance(now int64, ratio, period int) {
	elapsed := now - d.LastTick
	d.LastTick = now
	if period <= 0 {
		return
	}
	p := float64(period)
	signed := d.Shift
	if d.negative && signed != 0 {
		signed -= p
	}
	signed += float64(ratio) * float64(elapsed) / driftDivisor
	signed = math.Mod(signed, p)

	d.negative = signed < 0
	d.Shift = signed
	if d.Shift < 0 {
		d.Shift += p
	}
	if d.Shift >= p {
		d.Shift = 0
		d.negative = false
	}
}
