package poncho

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Font is the interface for text measurement and drawing.
type Font interface {
	MeasureString(text string) (width, height float64)
	LineHeight() float64
	// Face returns the face used to draw glyphs, or nil if the font can only
	// measure.
	Face() text.Face
}

// --- TTFFont ---

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("poncho: failed to parse TTF data: %w", err)
	}
	return newTTFFont(source, size), nil
}

// newTTFFont creates a sized font from an already parsed face source.
func newTTFFont(source *text.GoTextFaceSource, size float64) *TTFFont {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &TTFFont{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() text.Face {
	return f.face
}

// --- FaceFont ---

// FaceFont adapts any golang.org/x/image font.Face, such as the bitmap faces
// in basicfont, to the Font interface.
type FaceFont struct {
	face *text.GoXFace
	lh   float64
}

// NewFaceFont wraps a font.Face.
func NewFaceFont(face font.Face) *FaceFont {
	m := face.Metrics()
	return &FaceFont{
		face: text.NewGoXFace(face),
		lh:   float64(m.Height.Ceil()),
	}
}

// MeasureString returns the width and height of the rendered text.
func (f *FaceFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *FaceFont) LineHeight() float64 {
	return f.lh
}

// Face returns the wrapped face.
func (f *FaceFont) Face() text.Face {
	return f.face
}

var defaultFont *FaceFont

// DefaultFont returns a 7x13 fixed-width bitmap font that needs no assets.
func DefaultFont() Font {
	if defaultFont == nil {
		defaultFont = NewFaceFont(basicfont.Face7x13)
	}
	return defaultFont
}

// --- TextFormat ---

// TextFormat pairs a font with a text color.
type TextFormat struct {
	Font  Font
	Color Color // zero value draws white
}

// NewTextFormat returns a white TextFormat for f.
func NewTextFormat(f Font) TextFormat {
	return TextFormat{Font: f, Color: ColorWhite}
}

func (tf TextFormat) color() Color {
	if tf.Color == (Color{}) {
		return ColorWhite
	}
	return tf.Color
}

// --- TextField ---

// TextField holds text content, formatting flags, and cached layout state.
type TextField struct {
	Content string
	Format  TextFormat

	Multiline    bool    // false strips line breaks from Content
	WordWrap     bool    // wrap words at Width (multiline only)
	ClipOverflow bool    // footprint is Width x Height and drawing is clipped to it
	Width        float64 // wrap and clip width
	Height       float64 // clip height

	layout textLayout

	// Render cache owned by the ebiten renderer.
	cacheImage *ebiten.Image
	cacheKey   textLayoutKey
}

// textLayoutKey captures every input that affects layout.
type textLayoutKey struct {
	content   string
	font      Font
	multiline bool
	wrap      bool
	clip      bool
	width     float64
	height    float64
}

// textLayout is the laid-out text: final string with line breaks and the
// measured (or clip-box) size.
type textLayout struct {
	key      textLayoutKey
	valid    bool
	text     string
	measured Vec2
	size     Vec2
}

func (tf *TextField) layoutKey() textLayoutKey {
	return textLayoutKey{
		content:   tf.Content,
		font:      tf.Format.Font,
		multiline: tf.Multiline,
		wrap:      tf.WordWrap,
		clip:      tf.ClipOverflow,
		width:     tf.Width,
		height:    tf.Height,
	}
}

// Layout returns the text as it will be drawn (with wrap line breaks) and the
// footprint size. Empty or whitespace-only content, or a missing font, lays
// out to an empty string with zero size.
func (tf *TextField) Layout() (string, float64, float64) {
	l := tf.update()
	return l.text, l.size.X, l.size.Y
}

// update recomputes the cached layout if any input changed.
func (tf *TextField) update() *textLayout {
	key := tf.layoutKey()
	if tf.layout.valid && tf.layout.key == key {
		return &tf.layout
	}
	tf.layout = textLayout{key: key, valid: true}

	f := tf.Format.Font
	if f == nil || strings.TrimSpace(tf.Content) == "" {
		return &tf.layout
	}

	s := tf.Content
	if !tf.Multiline {
		s = strings.NewReplacer("\r", "", "\n", "").Replace(s)
	} else {
		s = strings.ReplaceAll(s, "\r\n", "\n")
		s = strings.ReplaceAll(s, "\r", "\n")
		if tf.WordWrap && tf.Width > 0 {
			s = wrapText(f, s, tf.Width)
		}
	}
	tf.layout.text = s

	w, h := f.MeasureString(s)
	tf.layout.measured = Vec2{w, h}
	if tf.ClipOverflow {
		tf.layout.size = Vec2{tf.Width, tf.Height}
	} else {
		tf.layout.size = tf.layout.measured
	}
	return &tf.layout
}

// release frees the render cache.
func (tf *TextField) release() {
	if tf.cacheImage != nil {
		tf.cacheImage.Deallocate()
		tf.cacheImage = nil
	}
	tf.cacheKey = textLayoutKey{}
}

// wrapText greedily packs space-delimited words into lines no wider than
// maxW. A word that would push the line past maxW starts a new line. A word
// wider than maxW on its own still gets a line to itself. Existing line
// breaks are kept.
func wrapText(f Font, s string, maxW float64) string {
	spaceW, _ := f.MeasureString(" ")

	var b strings.Builder
	b.Grow(len(s) + 8)
	for pi, para := range strings.Split(s, "\n") {
		if pi > 0 {
			b.WriteByte('\n')
		}
		var lineW float64
		empty := true
		for _, word := range strings.Split(para, " ") {
			wordW, _ := f.MeasureString(word)
			if !empty && lineW+spaceW+wordW > maxW {
				b.WriteByte('\n')
				lineW = 0
				empty = true
			}
			if !empty {
				b.WriteByte(' ')
				lineW += spaceW
			}
			b.WriteString(word)
			lineW += wordW
			empty = false
		}
	}
	return b.String()
}

// textFootprint lays out a text node and returns its footprint.
func textFootprint(n *Node) (*textLayout, Footprint) {
	if n.Text == nil {
		return nil, Footprint{}
	}
	l := n.Text.update()
	if l.size.X == 0 || l.size.Y == 0 {
		return l, Footprint{}
	}
	px, py := resolvePivot(n, l.size.X, l.size.Y)
	return l, Footprint{Width: l.size.X, Height: l.size.Y, PivotX: px, PivotY: py}
}
