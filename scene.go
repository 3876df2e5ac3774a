package poncho

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scene is the top-level object that owns the stage (root node), input state,
// event bus, clock, and per-frame buffers.
//
// A Scene is single-threaded. Tree mutations must happen between frames, from
// Update callbacks or event listeners, never during a Draw walk.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	// ClearColor fills the screen before each frame when its alpha is non-zero.
	ClearColor Color

	// Input & events
	source      InputSource
	input       pointerDispatcher
	bus         EventBus
	frameEvents []Event
	injectQueue []syntheticPointerEvent
	scrollBias  float64

	// Timing & per-frame subscribers
	clock      Clock
	start      time.Time
	now        func() time.Duration
	updates    []updateHandler
	nextSub    uint32
	updateFunc func() error
	tweens     []*TweenGroup
	mixer      *Mixer

	// Automation
	testRunner       *TestRunner
	exitOnScriptDone bool
	screenshotQueue  []string
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
}

// updateHandler is a subscriber called once per Update.
type updateHandler struct {
	id uint32
	fn func(dt time.Duration)
}

// UpdateHandle allows removing an Update subscriber.
type UpdateHandle struct {
	id    uint32
	scene *Scene
}

// NewScene creates a new scene with a pre-created stage container and
// Ebitengine mouse input.
func NewScene() *Scene {
	s := &Scene{
		root:          NewContainer("stage"),
		source:        &EbitenInput{},
		clock:         NewClock(defaultFPSInterval),
		ScreenshotDir: "screenshots",
	}
	s.start = time.Now()
	s.now = func() time.Duration { return time.Since(s.start) }
	return s
}

// Root returns the scene's stage node.
func (s *Scene) Root() *Node {
	return s.root
}

// Clock returns the scene clock, advanced once per Update.
func (s *Scene) Clock() *Clock {
	return &s.clock
}

// SetInputSource replaces the pointer input source. Passing nil restores
// Ebitengine mouse input.
func (s *Scene) SetInputSource(src InputSource) {
	if src == nil {
		src = &EbitenInput{}
	}
	s.source = src
}

// SetMixer attaches an audio mixer that is advanced from Update.
func (s *Scene) SetMixer(m *Mixer) {
	s.mixer = m
}

// Mixer returns the attached audio mixer, or nil.
func (s *Scene) Mixer() *Mixer {
	return s.mixer
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame stats are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply. Only valid
// with a single Scene; multiple Scenes with differing debug modes will
// reflect whichever called SetDebugMode last.
var globalDebug bool

// OnUpdate subscribes fn to be called once per Update with the frame delta.
func (s *Scene) OnUpdate(fn func(dt time.Duration)) UpdateHandle {
	if fn == nil {
		panic("poncho: nil update handler")
	}
	s.nextSub++
	s.updates = append(s.updates, updateHandler{id: s.nextSub, fn: fn})
	return UpdateHandle{id: s.nextSub, scene: s}
}

// Remove unsubscribes the handler. It is safe to call from inside a handler.
func (h UpdateHandle) Remove() {
	if h.scene == nil {
		return
	}
	for i := range h.scene.updates {
		if h.scene.updates[i].id == h.id {
			h.scene.updates[i].fn = nil
			return
		}
	}
}

// SetUpdateFunc sets the per-tick game logic callback used by Run. A non-nil
// error returned from fn stops the game loop.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// AddTween registers a tween group to be advanced from Update. Finished
// groups are dropped automatically.
func (s *Scene) AddTween(g *TweenGroup) {
	if g != nil {
		s.tweens = append(s.tweens, g)
	}
}

// Update advances the clock, the test runner, tweens, audio, and Update
// subscribers. It does not touch the display list walk; that happens in Draw.
func (s *Scene) Update() {
	s.clock.Tick(s.now())
	dt := s.clock.Delta()

	if s.testRunner != nil {
		s.testRunner.step(s)
	}

	// Groups added from OnComplete start next frame.
	running := len(s.tweens)
	for i := 0; i < running; i++ {
		s.tweens[i].Update(float32(dt.Seconds()))
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(s.tweens); i++ {
		s.tweens[i] = nil
	}
	s.tweens = live

	if s.mixer != nil {
		s.mixer.Update(s.clock.Time())
	}

	// Handlers added during the loop run next frame; removed ones are
	// compacted afterwards.
	n := len(s.updates)
	for i := 0; i < n; i++ {
		if fn := s.updates[i].fn; fn != nil {
			fn(dt)
		}
	}
	keep := s.updates[:0]
	for _, u := range s.updates {
		if u.fn != nil {
			keep = append(keep, u)
		}
	}
	for i := len(keep); i < len(s.updates); i++ {
		s.updates[i] = updateHandler{}
	}
	s.updates = keep
}

// Draw samples pointer input, renders the display list onto screen, resolves
// the pointer target in the same pass, and dispatches pointer events.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(color.NRGBA{
			R: uint8(s.ClearColor.R * 255),
			G: uint8(s.ClearColor.G * 255),
			B: uint8(s.ClearColor.B * 255),
			A: uint8(s.ClearColor.A * 255),
		})
	}
	s.DrawTo(NewEbitenRenderer(screen))
	s.flushScreenshots(screen)
}

// DrawTo runs one frame against r using the next injected or polled pointer
// snapshot.
func (s *Scene) DrawTo(r Renderer) {
	s.Frame(r, s.pollInput())
}

// Frame runs one complete frame against an arbitrary renderer: sample the
// pointer, walk the stage (render and hit test fused), then dispatch events.
// Draw calls Frame; hosts that are not Ebitengine games call it directly.
func (s *Scene) Frame(r Renderer, snap PointerSnapshot) {
	var stats debugStats
	var t0 time.Time
	var sp *debugStats
	if s.debug {
		sp = &stats
		t0 = time.Now()
	}

	s.frameEvents = s.frameEvents[:0]
	s.input.sample(snap)

	w := walker{renderer: r, x: snap.X, y: snap.Y, stats: sp}
	hit := w.walk(s.root, identityTransform, ColorWhite, true, hitResult{})

	if s.debug {
		stats.walkTime = time.Since(t0)
		t0 = time.Now()
	}

	s.input.resolve(hit, s.emit)

	if s.debug {
		stats.dispatchTime = time.Since(t0)
		stats.events = len(s.frameEvents)
		s.debugLog(stats)
	}
}
