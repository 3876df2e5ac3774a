// Package poncho is a retained-mode 2D display list for [Ebitengine].
//
// Poncho keeps a tree of display objects (containers, sprites and text
// fields) and, once per frame, walks it depth-first to draw every visible
// node and to find the front-most node under the pointer in the same pass.
// Pointer state changes between frames are turned into enter, leave, down,
// up, click and wheel events.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	scene := poncho.NewScene()
//	// ... add nodes ...
//	poncho.Run(scene, poncho.RunConfig{
//		Title: "My Game", Width: 640, Height: 480,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *poncho.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// Hosts that are not Ebitengine games call [Scene.Frame] with their own
// [Renderer] and a [PointerSnapshot] per frame.
//
// # Display list
//
// Every display object is a [Node]. Nodes form a tree rooted at
// [Scene.Root]; children are painted in order, so later siblings appear in
// front. Children inherit their parent's transform, color and alpha.
//
//	ui := poncho.NewContainer("ui")
//	scene.Root().AddChild(ui)
//
//	hero := poncho.NewSprite("hero", img)
//	hero.X, hero.Y = 100, 50
//	hero.Rotation = 30 // degrees, clockwise
//	ui.AddChild(hero)
//
// Transforms are never cached: the world matrix of every node is rebuilt
// from its ancestors during the walk, so moving a node needs no dirty flags.
//
// # Events
//
// Listeners are registered on the scene's [EventBus], keyed by node:
//
//	scene.On(hero, poncho.EventClick, func(e poncho.Event) {
//		fmt.Println("clicked at", e.LocalX, e.LocalY)
//	})
//
// A click is a press followed by a release of the same button while the
// same node stays under the pointer. [Node.MouseEnabled] removes a node from
// hit testing and [Node.MouseChildren] does the same for its whole subtree.
// Events are also collected per frame in [Scene.FrameEvents] and, for nodes
// with an entity ID, forwarded to an [EntityStore] (see poncho/ecs for a
// [Donburi] adapter).
//
// # Supporting pieces
//
// [Library] loads textures, TexturePacker atlases, TTF fonts and WAV sounds
// by content name. [Mixer] plays music and sound effects with crossfades.
// [TweenGroup] animates node fields via [gween], and [TestRunner] replays
// scripted input and captures screenshots.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package poncho
