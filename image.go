package poncho

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
)

// ImageRect is a pixel sub-region of a texture.
type ImageRect struct {
	X, Y          int
	Width, Height int
}

// Image is a drawable region of a texture with a default pivot. Several
// Images may share one Source (atlas-style sub-rects).
type Image struct {
	Name   string
	Source *ebiten.Image
	Rect   ImageRect // zero value means the whole source
	Pivot  Vec2      // default absolute pivot for sprites created from this image
}

// NewImage wraps a whole texture as an Image with a (0, 0) pivot.
func NewImage(name string, src *ebiten.Image) *Image {
	img := &Image{Name: name, Source: src}
	if src != nil {
		b := src.Bounds()
		img.Rect = ImageRect{X: b.Min.X, Y: b.Min.Y, Width: b.Dx(), Height: b.Dy()}
	}
	return img
}

// Loaded reports whether the image has a usable texture.
func (img *Image) Loaded() bool {
	return img != nil && img.Source != nil
}

// Release drops the image's texture. The image then reports not loaded and
// sprites using it are neither drawn nor hit. The texture itself is left to
// its owner, since other Images may share it.
func (img *Image) Release() {
	img.Source = nil
}

// Size returns the pixel dimensions of the image region.
func (img *Image) Size() (w, h int) {
	if !img.Loaded() {
		return 0, 0
	}
	if img.Rect.Width > 0 && img.Rect.Height > 0 {
		return img.Rect.Width, img.Rect.Height
	}
	b := img.Source.Bounds()
	return b.Dx(), b.Dy()
}

// region returns the drawable sub-image for this Image.
func (img *Image) region() *ebiten.Image {
	if img.Rect.Width <= 0 || img.Rect.Height <= 0 {
		return img.Source
	}
	r := image.Rect(img.Rect.X, img.Rect.Y, img.Rect.X+img.Rect.Width, img.Rect.Y+img.Rect.Height)
	return img.Source.SubImage(r).(*ebiten.Image)
}

// spriteFootprint returns the footprint for a sprite node: the image's pixel
// size and the node's resolved pivot. A missing or unloaded image yields an
// empty footprint.
func spriteFootprint(n *Node) Footprint {
	w, h := n.Image.Size()
	if w == 0 || h == 0 {
		return Footprint{}
	}
	fw, fh := float64(w), float64(h)
	px, py := resolvePivot(n, fw, fh)
	return Footprint{Width: fw, Height: fh, PivotX: px, PivotY: py}
}
