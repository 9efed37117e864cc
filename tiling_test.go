package mapsim

import (
	"reflect"
	"sort"
	"testing"
)

type point struct{ x, y int }

func collectTiles(shape TileShape, j tileJob) []point {
	var pts []point
	n := emitTiles(shape, j, func(x, y int) { pts = append(pts, point{x, y}) })
	if n != len(pts) {
		panic("emitTiles count mismatch")
	}
	return pts
}

func TestHorizontalTilingThirteenDraws(t *testing.T) {
	pts := collectTiles(ShapeHorizontal, tileJob{
		periodX: 64, periodY: 64, width: 64, height: 64, viewW: 800, viewH: 600,
	})
	if len(pts) != 13 {
		t.Fatalf("draws = %d, want 13", len(pts))
	}
	xs := make([]int, len(pts))
	for i, p := range pts {
		xs[i] = p.x
		if p.y != 0 {
			t.Errorf("tile %d at y=%d, want 0", i, p.y)
		}
	}
	sort.Ints(xs)
	for i, x := range xs {
		if x != i*64 {
			t.Errorf("xs[%d] = %d, want %d", i, x, i*64)
		}
	}
}

func TestTileAxisOrder(t *testing.T) {
	var got []int
	tileAxis(100, 64, 64, 300, func(c int) { got = append(got, c) })
	want := []int{100, 36, -28, 164, 228, 292}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestVerticalTilingCoversViewport(t *testing.T) {
	pts := collectTiles(ShapeVertical, tileJob{
		x: 17, y: 250, periodX: 0, periodY: 100, width: 50, height: 100, viewW: 800, viewH: 600,
	})
	ys := make([]int, len(pts))
	for i, p := range pts {
		ys[i] = p.y
		if p.x != 17 {
			t.Errorf("tile %d at x=%d, want 17", i, p.x)
		}
	}
	sort.Ints(ys)
	want := []int{-50, 50, 150, 250, 350, 450, 550}
	if !reflect.DeepEqual(ys, want) {
		t.Errorf("ys = %v, want %v", ys, want)
	}
}

func TestHVTilingGrid(t *testing.T) {
	pts := collectTiles(ShapeBoth, tileJob{
		periodX: 64, periodY: 64, width: 64, height: 64, viewW: 800, viewH: 600,
	})
	// 13 columns (0..768) x 10 rows (0..576).
	if len(pts) != 130 {
		t.Fatalf("draws = %d, want 130", len(pts))
	}
	seen := make(map[point]bool)
	for _, p := range pts {
		if seen[p] {
			t.Fatalf("duplicate tile at %v", p)
		}
		seen[p] = true
	}
	for col := 0; col < 13; col++ {
		for row := 0; row < 10; row++ {
			if !seen[point{col * 64, row * 64}] {
				t.Errorf("missing tile at (%d, %d)", col*64, row*64)
			}
		}
	}
}

// visibleXs returns the sorted x positions of tiles that touch [0, viewW).
func visibleXs(pts []point, width, viewW int) []int {
	var xs []int
	for _, p := range pts {
		if p.x+width > 0 && p.x < viewW {
			xs = append(xs, p.x)
		}
	}
	sort.Ints(xs)
	return xs
}

func TestTilingCoverageProperty(t *testing.T) {
	const viewW = 800
	var bases []int
	for b := -1000; b <= 1800; b += 37 {
		bases = append(bases, b)
	}
	bases = append(bases, -20000, -20001, -19937, 20000, 20400, 20401, 123457)

	for _, period := range []int{1, 16, 64, 100, 333} {
		for _, extra := range []int{0, 7} {
			width := period + extra
			for _, base := range bases {
				pts := collectTiles(ShapeHorizontal, tileJob{
					x: base, periodX: period, periodY: 1, width: width, height: 1, viewW: viewW, viewH: 1,
				})
				if max := viewW/period + width/period + 3; len(pts) > max {
					t.Fatalf("p=%d w=%d base=%d: %d draws, want at most %d", period, width, base, len(pts), max)
				}
				if pts[0].x != base {
					t.Fatalf("p=%d w=%d base=%d: first tile at %d, want base", period, width, base, pts[0].x)
				}

				xs := visibleXs(pts, width, viewW)
				if len(xs) == 0 {
					t.Fatalf("p=%d w=%d base=%d: no visible tiles", period, width, base)
				}
				if xs[0] > 0 {
					t.Fatalf("p=%d w=%d base=%d: leftmost tile starts at %d, leaves a gap at 0", period, width, base, xs[0])
				}
				if last := xs[len(xs)-1]; last+width < viewW {
					t.Fatalf("p=%d w=%d base=%d: rightmost tile ends at %d, before %d", period, width, base, last+width, viewW)
				}
				for i := 1; i < len(xs); i++ {
					if gap := xs[i] - xs[i-1]; gap > width {
						t.Fatalf("p=%d w=%d base=%d: gap %d between tiles", period, width, base, gap)
					}
				}
				for _, x := range xs {
					if d := x - base; d%period != 0 {
						t.Fatalf("p=%d w=%d base=%d: tile at %d is off the period grid", period, width, base, x)
					}
				}
			}
		}
	}
}

func TestTilingFarBaseStaysBounded(t *testing.T) {
	pts := collectTiles(ShapeHorizontal, tileJob{
		x: 20400, periodX: 64, width: 64, height: 64, viewW: 800, viewH: 600,
	})
	// base itself plus the 13 visible columns at -16, 48, ..., 752.
	if len(pts) > 15 {
		t.Errorf("horizontal draws = %d, want at most 15", len(pts))
	}
	if got := len(visibleXs(pts, 64, 800)); got != 13 {
		t.Errorf("visible columns = %d, want 13", got)
	}

	pts = collectTiles(ShapeBoth, tileJob{
		x: 20400, y: 20300, periodX: 64, periodY: 64, width: 64, height: 64, viewW: 800, viewH: 600,
	})
	if len(pts) > 15*13 {
		t.Errorf("grid draws = %d, want at most %d", len(pts), 15*13)
	}
	visible := 0
	for _, p := range pts {
		if p.x+64 > 0 && p.x < 800 && p.y+64 > 0 && p.y < 600 {
			visible++
		}
	}
	// 13 columns x 11 rows.
	if visible != 143 {
		t.Errorf("visible grid tiles = %d, want 143", visible)
	}

	pts = collectTiles(ShapeVertical, tileJob{
		y: -20000, periodY: 100, width: 64, height: 100, viewW: 800, viewH: 600,
	})
	if len(pts) > 600/100+3 {
		t.Errorf("vertical draws = %d, want at most %d", len(pts), 600/100+3)
	}
}

func TestTilingNonPositivePeriodDrawsOnce(t *testing.T) {
	cases := []struct {
		name  string
		shape TileShape
		job   tileJob
	}{
		{"horizontal", ShapeHorizontal, tileJob{x: 5, y: 6, viewW: 800, viewH: 600}},
		{"vertical", ShapeVertical, tileJob{x: 5, y: 6, periodX: 64, viewW: 800, viewH: 600}},
		{"both missing y", ShapeBoth, tileJob{x: 5, y: 6, periodX: 64, width: 64, viewW: 800, viewH: 600}},
		{"negative", ShapeHorizontal, tileJob{x: 5, y: 6, periodX: -4, width: 10, viewW: 800, viewH: 600}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pts := collectTiles(tc.shape, tc.job)
			if len(pts) != 1 || pts[0] != (point{5, 6}) {
				t.Errorf("tiles = %v, want single draw at (5, 6)", pts)
			}
		})
	}
}

func TestShapeNoneDrawsOnce(t *testing.T) {
	pts := collectTiles(ShapeNone, tileJob{x: -3, y: 9, periodX: 1, periodY: 1, width: 1, height: 1, viewW: 800, viewH: 600})
	if len(pts) != 1 || pts[0] != (point{-3, 9}) {
		t.Errorf("tiles = %v, want single draw at (-3, 9)", pts)
	}
}

func TestPolicyDecomposition(t *testing.T) {
	cases := []struct {
		p     MotionPolicy
		shape TileShape
		axis  Axis
	}{
		{PolicyRegular, ShapeNone, AxisNone},
		{PolicyHorizontalTiling, ShapeHorizontal, AxisNone},
		{PolicyVerticalTiling, ShapeVertical, AxisNone},
		{PolicyHVTiling, ShapeBoth, AxisNone},
		{PolicyHorizontalMoving, ShapeHorizontal, AxisX},
		{PolicyVerticalMoving, ShapeVertical, AxisY},
		{PolicyHorizontalMovingHVTiling, ShapeBoth, AxisX},
		{PolicyVerticalMovingHVTiling, ShapeBoth, AxisY},
		{MotionPolicy(42), ShapeNone, AxisNone},
	}
	for _, tc := range cases {
		if got := tc.p.Shape(); got != tc.shape {
			t.Errorf("%v.Shape() = %d, want %d", tc.p, got, tc.shape)
		}
		if got := tc.p.DriftAxis(); got != tc.axis {
			t.Errorf("%v.DriftAxis() = %d, want %d", tc.p, got, tc.axis)
		}
	}
}

func TestPolicyNames(t *testing.T) {
	for i := 0; i < 8; i++ {
		p := MotionPolicy(i)
		got, ok := ParsePolicy(p.String())
		if !ok || got != p {
			t.Errorf("ParsePolicy(%q) = %v, %v", p.String(), got, ok)
		}
		if !p.Known() {
			t.Errorf("%v.Known() = false", p)
		}
	}
	if got, ok := ParsePolicy("hvtiling"); !ok || got != PolicyHVTiling {
		t.Errorf("case-insensitive lookup failed: %v, %v", got, ok)
	}
	if _, ok := ParsePolicy("Diagonal"); ok {
		t.Error("ParsePolicy accepted an unknown name")
	}
	if MotionPolicy(9).Known() {
		t.Error("MotionPolicy(9).Known() = true")
	}
	if MotionPolicy(9).String() != "Regular" {
		t.Errorf("unknown policy String = %q, want Regular", MotionPolicy(9).String())
	}
}
