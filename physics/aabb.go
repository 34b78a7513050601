package physics

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// axisTolerance absorbs float error when a box rests exactly on a face.
const axisTolerance = 1e-9

type aabb struct {
	Min, Max r3.Vec
}

func boxAt(center, half r3.Vec) aabb {
	return aabb{Min: r3.Sub(center, half), Max: r3.Add(center, half)}
}

func (b aabb) expand(d float64) aabb {
	e := r3.Vec{X: d, Y: d, Z: d}
	return aabb{Min: r3.Sub(b.Min, e), Max: r3.Add(b.Max, e)}
}

func intersects(a, b aabb) bool {
	return a.Min.X < b.Max.X &&
		a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y &&
		a.Max.Y > b.Min.Y &&
		a.Min.Z < b.Max.Z &&
		a.Max.Z > b.Min.Z
}

type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

func component(v r3.Vec, a axis) float64 {
	switch a {
	case axisX:
		return v.X
	case axisY:
		return v.Y
	}
	return v.Z
}

func withComponent(v r3.Vec, a axis, f float64) r3.Vec {
	switch a {
	case axisX:
		v.X = f
	case axisY:
		v.Y = f
	default:
		v.Z = f
	}
	return v
}

// overlapsAcross reports whether a and b overlap on both axes other than a.
func overlapsAcross(a, b aabb, along axis) bool {
	for _, o := range [...]axis{axisX, axisY, axisZ} {
		if o == along {
			continue
		}
		if component(a.Min, o) >= component(b.Max, o)-axisTolerance ||
			component(a.Max, o) <= component(b.Min, o)+axisTolerance {
			return false
		}
	}
	return true
}

// sweepAxis clamps a move of delta along one axis so box stops at the first
// fixed face in its path. It reports whether the move was shortened.
func sweepAxis(box aabb, along axis, delta float64, fixed []fixedBody) (float64, bool) {
	if math.Abs(delta) <= axisTolerance {
		return delta, false
	}
	allowed := delta
	for _, f := range fixed {
		if !overlapsAcross(box, f.box, along) {
			continue
		}
		if delta > 0 {
			face := component(f.box.Min, along)
			edge := component(box.Max, along)
			if face < edge-axisTolerance {
				continue
			}
			if c := face - edge; c < allowed {
				allowed = math.Max(c, 0)
			}
		} else {
			face := component(f.box.Max, along)
			edge := component(box.Min, along)
			if face > edge+axisTolerance {
				continue
			}
			if c := face - edge; c > allowed {
				allowed = math.Min(c, 0)
			}
		}
	}
	return allowed, math.Abs(allowed-delta) > axisTolerance
}
