package poncho

import (
	"fmt"
	"strconv"
	"strings"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when a draw call is submitted.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// mul returns the component-wise product of c and o.
func (c Color) mul(o Color) Color {
	return Color{c.R * o.R, c.G * o.G, c.B * o.B, c.A * o.A}
}

// ColorFromHex converts a 0xRRGGBB value into an opaque Color.
func ColorFromHex(rgb uint32) Color {
	return Color{
		R: float64((rgb>>16)&0xff) / 255,
		G: float64((rgb>>8)&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" (the leading '#' is optional).
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("poncho: invalid color %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("poncho: invalid color %q: %w", s, err)
	}
	if len(h) == 6 {
		return ColorFromHex(uint32(v)), nil
	}
	c := ColorFromHex(uint32(v >> 8))
	c.A = float64(v&0xff) / 255
	return c, nil
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and pivots
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an Image; may also hold children
	NodeTypeText                      // renders a TextField; never holds children
)

// String returns a lowercase name for the node type.
func (t NodeType) String() string {
	switch t {
	case NodeTypeContainer:
		return "container"
	case NodeTypeSprite:
		return "sprite"
	case NodeTypeText:
		return "text"
	default:
		return "unknown"
	}
}

// PivotMode selects how Node.PivotX and Node.PivotY are interpreted.
type PivotMode uint8

const (
	PivotAbsolute   PivotMode = iota // pivot in footprint pixels
	PivotNormalized                  // pivot as a 0..1 fraction of the footprint
)

// EventType identifies a kind of pointer event.
type EventType uint8

const (
	EventPointerDown  EventType = iota // a button was pressed over a stable target
	EventPointerUp                     // a button was released over a stable target
	EventClick                         // press and release on the same stable target
	EventPointerEnter                  // the pointer moved onto a node
	EventPointerLeave                  // the pointer moved off a node
	EventWheel                         // the scroll accumulator changed over a stable target
)

// String returns a lowercase name for the event type.
func (t EventType) String() string {
	switch t {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerUp:
		return "pointer-up"
	case EventClick:
		return "click"
	case EventPointerEnter:
		return "pointer-enter"
	case EventPointerLeave:
		return "pointer-leave"
	case EventWheel:
		return "wheel"
	default:
		return "unknown"
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)

	mouseButtonCount = 3
)

// String returns a lowercase name for the button.
func (b MouseButton) String() string {
	switch b {
	case MouseButtonLeft:
		return "left"
	case MouseButtonRight:
		return "right"
	case MouseButtonMiddle:
		return "middle"
	default:
		return "unknown"
	}
}

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)
