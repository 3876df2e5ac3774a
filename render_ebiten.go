package poncho

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// ebitenRenderer draws onto an Ebitengine screen image.
type ebitenRenderer struct {
	target *ebiten.Image
}

// NewEbitenRenderer returns a Renderer that draws onto target.
func NewEbitenRenderer(target *ebiten.Image) Renderer {
	return &ebitenRenderer{target: target}
}

// geoM builds the draw matrix: shift by -pivot, then apply m.
func geoM(m [6]float64, fp Footprint) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-fp.PivotX, -fp.PivotY)
	var world ebiten.GeoM
	world.SetElement(0, 0, m[0])
	world.SetElement(1, 0, m[1])
	world.SetElement(0, 1, m[2])
	world.SetElement(1, 1, m[3])
	world.SetElement(0, 2, m[4])
	world.SetElement(1, 2, m[5])
	g.Concat(world)
	return g
}

// applyTint premultiplies the tint into the color scale.
func applyTint(cs *ebiten.ColorScale, c Color) {
	cs.Scale(float32(c.R*c.A), float32(c.G*c.A), float32(c.B*c.A), float32(c.A))
}

func (r *ebitenRenderer) DrawImage(img *Image, m [6]float64, fp Footprint, tint Color) {
	if !img.Loaded() || tint.A <= 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m, fp)
	applyTint(&op.ColorScale, tint)
	r.target.DrawImage(img.region(), &op)
}

func (r *ebitenRenderer) DrawText(tf *TextField, m [6]float64, fp Footprint, tint Color) {
	if tint.A <= 0 {
		return
	}
	src := renderTextCache(tf)
	if src == nil {
		return
	}
	if tf.ClipOverflow {
		b := src.Bounds()
		cw := min(b.Dx(), int(math.Ceil(fp.Width)))
		ch := min(b.Dy(), int(math.Ceil(fp.Height)))
		if cw <= 0 || ch <= 0 {
			return
		}
		src = src.SubImage(image.Rect(0, 0, cw, ch)).(*ebiten.Image)
	}
	var op ebiten.DrawImageOptions
	op.GeoM = geoM(m, fp)
	applyTint(&op.ColorScale, tint)
	r.target.DrawImage(src, &op)
}

// renderTextCache renders the laid-out text into the field's cached image,
// re-rendering only when the layout inputs change. Returns nil when the font
// cannot draw.
func renderTextCache(tf *TextField) *ebiten.Image {
	l := tf.update()
	f := tf.Format.Font
	if f == nil || f.Face() == nil || l.text == "" {
		return nil
	}
	if tf.cacheImage != nil && tf.cacheKey == l.key {
		return tf.cacheImage
	}

	w := int(math.Ceil(l.measured.X)) + 1
	h := int(math.Ceil(l.measured.Y)) + 1
	if tf.cacheImage != nil {
		b := tf.cacheImage.Bounds()
		if b.Dx() != w || b.Dy() != h {
			tf.cacheImage.Deallocate()
			tf.cacheImage = ebiten.NewImage(w, h)
		} else {
			tf.cacheImage.Clear()
		}
	} else {
		tf.cacheImage = ebiten.NewImage(w, h)
	}

	// Glyphs are drawn white; color comes from the tint at draw time.
	op := &text.DrawOptions{}
	op.LineSpacing = f.LineHeight()
	text.Draw(tf.cacheImage, l.text, f.Face(), op)
	tf.cacheKey = l.key
	return tf.cacheImage
}
