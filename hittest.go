package poncho

import "math"

// Footprint is the size a node actually rendered this frame plus its resolved
// pivot, all in the node's local units. It only lives for the duration of one
// node visit: render produces it and the hit test consumes it.
type Footprint struct {
	Width, Height  float64
	PivotX, PivotY float64
}

// Empty reports whether nothing was rendered. Empty footprints are never hit.
func (f Footprint) Empty() bool {
	return f.Width == 0 || f.Height == 0
}

// Bounds returns the footprint rectangle in local space, offset by the pivot.
func (f Footprint) Bounds() Rect {
	return Rect{X: -f.PivotX, Y: -f.PivotY, Width: f.Width, Height: f.Height}
}

// resolvePivot converts a node's pivot fields into footprint pixels.
func resolvePivot(n *Node, w, h float64) (px, py float64) {
	if n.PivotMode == PivotNormalized {
		return n.PivotX * w, n.PivotY * h
	}
	return n.PivotX, n.PivotY
}

// Corner indices before sorting. Opposite corners sum to 3.
const (
	cornerTL = iota
	cornerTR
	cornerBL
	cornerBR
)

// quadCorners transforms the four corners of a footprint into screen space and
// returns them sorted by Y, then X. The order does not depend on rotation,
// scale sign or flips.
//
// At right angles rounding leaves near-ties (cos 90 is about 6e-17), and the
// plain sort can then place two adjacent corners in slots 1 and 2. After the
// sort, slots 0 and 3 are forced to be opposite corners so that slots 1 and 2
// always form the diagonal.
func quadCorners(m [6]float64, fp Footprint) [4]Vec2 {
	left, top := -fp.PivotX, -fp.PivotY
	right, bottom := fp.Width-fp.PivotX, fp.Height-fp.PivotY

	var v [4]Vec2
	v[cornerTL].X, v[cornerTL].Y = transformPoint(m, left, top)
	v[cornerTR].X, v[cornerTR].Y = transformPoint(m, right, top)
	v[cornerBL].X, v[cornerBL].Y = transformPoint(m, left, bottom)
	v[cornerBR].X, v[cornerBR].Y = transformPoint(m, right, bottom)

	idx := [4]int{cornerTL, cornerTR, cornerBL, cornerBR}

	// Insertion sort: four elements, zero allocations.
	for i := 1; i < len(idx); i++ {
		key := idx[i]
		j := i - 1
		for j >= 0 && cornerLess(v[key], v[idx[j]]) {
			idx[j+1] = idx[j]
			j--
		}
		idx[j+1] = key
	}

	switch {
	case idx[0]+idx[3] == 3:
	case idx[0]+idx[1] == 3:
		idx[1], idx[3] = idx[3], idx[1]
	default:
		idx[2], idx[3] = idx[3], idx[2]
	}

	return [4]Vec2{v[idx[0]], v[idx[1]], v[idx[2]], v[idx[3]]}
}

// cornerLess orders points by Y ascending, then X ascending.
func cornerLess(p, q Vec2) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// quadContains reports whether the screen-space point (x, y) lies inside the
// footprint quad mapped through m.
//
// The sorted corners are split into triangles (0,1,2) and (2,1,3). Corners 1
// and 2 are always opposite vertices of the parallelogram, so the two
// triangles share its diagonal and tile it exactly. Any other split can leave
// gaps along the shared edge.
func quadContains(m [6]float64, fp Footprint, x, y float64) bool {
	if fp.Empty() {
		return false
	}
	v := quadCorners(m, fp)
	p := Vec2{x, y}
	return pointInTriangle(p, v[0], v[1], v[2]) || pointInTriangle(p, v[2], v[1], v[3])
}

// edgeEpsilon scales a triangle's doubled area into the tolerance under which
// an edge sign counts as zero.
const edgeEpsilon = 1e-9

// pointInTriangle tests p against triangle abc with three edge signs. The
// point is inside when the signs never disagree, which accepts either winding.
// Edge points count as inside, including points that rounding pushes a hair
// off the edge. Degenerate (zero-area) triangles contain nothing.
func pointInTriangle(p, a, b, c Vec2) bool {
	area := edgeSign(a, b, c)
	if area == 0 {
		return false
	}
	tol := edgeEpsilon * math.Abs(area)
	d1 := snapZero(edgeSign(p, a, b), tol)
	d2 := snapZero(edgeSign(p, b, c), tol)
	d3 := snapZero(edgeSign(p, c, a), tol)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

func snapZero(v, tol float64) float64 {
	if math.Abs(v) <= tol {
		return 0
	}
	return v
}

// edgeSign is the cross product (a-c) x (b-c).
func edgeSign(a, b, c Vec2) float64 {
	return (a.X-c.X)*(b.Y-c.Y) - (b.X-c.X)*(a.Y-c.Y)
}
