package poncho

import (
	"fmt"
	"time"
)

// fpsRefresh is how often the readout text is rebuilt.
const fpsRefresh = 500 * time.Millisecond

// NewFPSText creates a text node that shows the scene clock's FPS. The node is
// refreshed from Scene.Update and ignores the mouse. Add it wherever it should
// appear in the display list, usually last under the root.
func NewFPSText(s *Scene, format TextFormat) *Node {
	if format.Font == nil {
		format.Font = DefaultFont()
	}
	n := NewText("fps", "FPS: --", format)
	n.SetPivot(0, 0, PivotNormalized)
	n.MouseEnabled = false

	var since time.Duration
	var handle UpdateHandle
	handle = s.OnUpdate(func(dt time.Duration) {
		if n.IsDisposed() {
			handle.Remove()
			return
		}
		since += dt
		if since < fpsRefresh {
			return
		}
		since = 0
		n.Text.Content = formatFPS(s.clock.FPS())
	})
	return n
}

func formatFPS(fps float64) string {
	return fmt.Sprintf("FPS: %.1f", fps)
}
