package poncho

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// localTransform computes the local affine matrix from the node's transform
// properties. Returns [a, b, c, d, tx, ty].
//
// Composition order is fixed:
//
//	Scale(ScaleX, ScaleY) -> RotateZ(Rotation) -> Translate(X, Y)
//
// Rotation is in degrees, clockwise-positive on a Y-down screen. There is no
// shear term, so every footprint maps to a parallelogram.
func localTransform(n *Node) [6]float64 {
	sin, cos := math.Sincos(n.Rotation * math.Pi / 180)
	return [6]float64{
		n.ScaleX * cos,
		n.ScaleX * sin,
		-n.ScaleY * sin,
		n.ScaleY * cos,
		n.X,
		n.Y,
	}
}

// composeTransform returns the node's cumulative matrix: its local transform
// followed by the parent's cumulative transform.
func composeTransform(n *Node, parent [6]float64) [6]float64 {
	return multiplyAffine(parent, localTransform(n))
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// translationOf returns the translation component of an affine matrix.
func translationOf(m [6]float64) (x, y float64) {
	return m[4], m[5]
}

// --- Transform property setters ---

// SetPosition sets the node's local X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetScale sets the node's ScaleX and ScaleY.
func (n *Node) SetScale(sx, sy float64) {
	n.ScaleX = sx
	n.ScaleY = sy
}

// SetRotation sets the node's rotation in degrees.
func (n *Node) SetRotation(deg float64) {
	n.Rotation = deg
}

// SetPivot sets the node's pivot and how it is interpreted.
func (n *Node) SetPivot(px, py float64, mode PivotMode) {
	n.PivotX = px
	n.PivotY = py
	n.PivotMode = mode
}

// --- Coordinate conversion ---

// WorldMatrix recomputes this node's cumulative transform by walking its
// ancestors from the root down. Nothing is cached on the node; the matrix
// reflects the tree as it is at the time of the call.
func (n *Node) WorldMatrix() [6]float64 {
	var chain [debugMaxTreeDepth]*Node
	path := chain[:0]
	for p := n; p != nil; p = p.Parent {
		path = append(path, p)
	}
	m := identityTransform
	for i := len(path) - 1; i >= 0; i-- {
		m = composeTransform(path[i], m)
	}
	return m
}

// GlobalToLocal converts a screen-space point to this node's local coordinate space.
func (n *Node) GlobalToLocal(gx, gy float64) (lx, ly float64) {
	return transformPoint(invertAffine(n.WorldMatrix()), gx, gy)
}

// LocalToGlobal converts a local-space point to screen space.
func (n *Node) LocalToGlobal(lx, ly float64) (gx, gy float64) {
	return transformPoint(n.WorldMatrix(), lx, ly)
}
