package poncho

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to four float64 fields of a node together. Build one
// with TweenPosition, TweenScale, TweenRotation, TweenAlpha or TweenColor and
// either hand it to Scene.AddTween or call Update yourself each frame.
// A group stops as soon as its node is disposed.
type TweenGroup struct {
	tweens [4]*gween.Tween
	fields [4]*float64
	count  int
	target *Node

	// OnComplete, if set, runs once when every tween has finished.
	OnComplete func()
	Done       bool
}

// tweenField pairs a node field with the value it animates to.
type tweenField struct {
	field *float64
	to    float64
}

// mustTweenTarget panics on a nil node before any of its fields are taken.
func mustTweenTarget(node *Node) {
	if node == nil {
		panic("poncho: tween on nil node")
	}
}

func newTweenGroup(node *Node, duration float32, fn ease.TweenFunc, fields ...tweenField) *TweenGroup {
	if fn == nil {
		fn = ease.Linear
	}
	g := &TweenGroup{target: node, count: len(fields)}
	for i, f := range fields {
		g.tweens[i] = gween.New(float32(*f.field), float32(f.to), duration, fn)
		g.fields[i] = f.field
	}
	return g
}

// Update advances all tweens by dt seconds and writes the values to the node.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target.IsDisposed() {
		g.Done = true
		return
	}

	finished := true
	for i := 0; i < g.count; i++ {
		v, ok := g.tweens[i].Update(dt)
		*g.fields[i] = float64(v)
		finished = finished && ok
	}
	if finished {
		g.Done = true
		if g.OnComplete != nil {
			g.OnComplete()
		}
	}
}

// Stop halts the group where it is. OnComplete is not called.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// TweenPosition animates node.X and node.Y.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	mustTweenTarget(node)
	return newTweenGroup(node, duration, fn,
		tweenField{&node.X, toX},
		tweenField{&node.Y, toY})
}

// TweenScale animates node.ScaleX and node.ScaleY.
func TweenScale(node *Node, toSX, toSY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	mustTweenTarget(node)
	return newTweenGroup(node, duration, fn,
		tweenField{&node.ScaleX, toSX},
		tweenField{&node.ScaleY, toSY})
}

// TweenRotation animates node.Rotation, in degrees.
func TweenRotation(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	mustTweenTarget(node)
	return newTweenGroup(node, duration, fn, tweenField{&node.Rotation, to})
}

// TweenAlpha animates node.Alpha.
func TweenAlpha(node *Node, to float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	mustTweenTarget(node)
	return newTweenGroup(node, duration, fn, tweenField{&node.Alpha, to})
}

// TweenColor animates all four components of node.Color.
func TweenColor(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	mustTweenTarget(node)
	return newTweenGroup(node, duration, fn,
		tweenField{&node.Color.R, to.R},
		tweenField{&node.Color.G, to.G},
		tweenField{&node.Color.B, to.B},
		tweenField{&node.Color.A, to.A})
}
