package poncho

// Renderer is the draw collaborator used by the frame walk. The walk computes
// every footprint itself; a Renderer only puts pixels on screen. Both calls
// receive the node's cumulative matrix and the composed tint.
type Renderer interface {
	// DrawImage draws img's region with its top-left corner at
	// (-fp.PivotX, -fp.PivotY) in the local space described by m.
	DrawImage(img *Image, m [6]float64, fp Footprint, tint Color)
	// DrawText draws a laid-out text field. When tf.ClipOverflow is set the
	// output must be clipped to the fp.Width x fp.Height box.
	DrawText(tf *TextField, m [6]float64, fp Footprint, tint Color)
}

// hitResult is the best hit target found so far, with the cumulative matrix
// it was hit under.
type hitResult struct {
	node   *Node
	matrix [6]float64
}

// walker holds the per-frame inputs to the fused render and hit-test pass.
type walker struct {
	renderer Renderer
	x, y     float64 // pointer in screen space
	stats    *debugStats
}

// walk renders n and its subtree depth-first, back to front, and threads the
// current best hit through the traversal. A node whose footprint contains the
// pointer unconditionally replaces any earlier hit, so the last match in paint
// order (the front-most node) wins.
//
// eligible is false when an ancestor disabled MouseChildren.
func (w *walker) walk(n *Node, parent [6]float64, parentTint Color, eligible bool, hit hitResult) hitResult {
	if !n.Visible {
		return hit
	}
	if w.stats != nil {
		w.stats.nodesVisited++
	}

	m := composeTransform(n, parent)
	tint := parentTint.mul(n.Color)
	tint.A *= n.Alpha

	var fp Footprint
	switch n.Type {
	case NodeTypeSprite:
		fp = spriteFootprint(n)
		if !fp.Empty() {
			w.draw()
			if w.renderer != nil {
				w.renderer.DrawImage(n.Image, m, fp, tint)
			}
		}
	case NodeTypeText:
		_, fp = textFootprint(n)
		if !fp.Empty() {
			w.draw()
			if w.renderer != nil {
				w.renderer.DrawText(n.Text, m, fp, tint.mul(n.Text.Format.color()))
			}
		}
		// NodeTypeContainer renders nothing and has no footprint.
	}

	if !fp.Empty() && eligible && n.MouseEnabled {
		if w.stats != nil {
			w.stats.hitTests++
		}
		if quadContains(m, fp, w.x, w.y) {
			hit = hitResult{node: n, matrix: m}
		}
	}

	if !n.isContainer() {
		return hit
	}
	childEligible := eligible && n.MouseChildren
	for i := 0; i < len(n.children); i++ {
		hit = w.walk(n.children[i], m, tint, childEligible, hit)
	}
	return hit
}

func (w *walker) draw() {
	if w.stats != nil {
		w.stats.draws++
	}
}

// HitTest finds the front-most node under the screen-space point (x, y)
// without drawing anything. It runs the same walk as a frame, so the result
// always matches what the next frame would resolve.
func (s *Scene) HitTest(x, y float64) *Node {
	w := walker{x: x, y: y}
	return w.walk(s.root, identityTransform, ColorWhite, true, hitResult{}).node
}
