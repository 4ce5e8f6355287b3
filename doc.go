// Package worldview schedules and composes rendering for camera-navigable 2D
// canvases on [Ebitengine].
//
// A [Viewport] owns a [Camera], a tree of scenes and the key and mouse
// controllers that move the camera. A [TimingBelt] drives it: each frame runs
// three phases, tick, paint and render, but only when some unit raised its
// schedule signal since the last frame. Idle canvases cost nothing.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	surface := worldview.NewEbitenSurface(800, 600)
//	vp := worldview.NewViewport(surface)
//	vp.SetBackground(worldview.ColorBackground)
//	vp.AddCameraControls()
//
//	labels := worldview.NewLabelSet()
//	scene := worldview.NewScene(surface, worldview.WithLabels(labels))
//	scene.OnPaint = func(time.Duration) bool {
//		labels.Clear()
//		labels.Draw("origin", 0, 0, 24, 4, worldview.ColorBlack)
//		return false
//	}
//	vp.Scenes().AddToFront(scene)
//
//	worldview.Run(vp, worldview.RunConfig{Title: "Map", Width: 800, Height: 600})
//
// For full control, build a [Game] with [NewGame] and pass it to
// [ebiten.RunGame] yourself, or call [TimingBelt.Cycle] from your own loop.
//
// # Renderables
//
// Every unit implements some subset of [Scheduler], [Ticker], [Painter],
// [Renderer] and [Unmounter]. A return value of true from Tick, Paint or
// Render means "more work pending". [Scene] assembles a renderable from hook
// functions, [SceneList] composes renderables and [Viewport] sits on top.
//
// Each unit has exactly one parent listener, a [Signal]. Composites wire a
// child's signal when it is added and clear it when it is removed.
//
// # Input
//
// [KeyControllers] and [MouseControllers] dispatch first-responder style: the
// most recently added controller sees each event first, and the first to
// consume it stops propagation. [EbitenInput] polls Ebitengine each frame and
// can replay injected events for automated tests.
//
// # Labels
//
// [LabelSet] declutters text labels: candidates are sorted largest first,
// hidden below their scale threshold, measured, and drawn only if they do not
// overlap a label already accepted by the [Occluder].
//
// # Configuration
//
// [Config] is loaded from TOML with [LoadConfig]. Run `worldview config
// default` to print the defaults. A [ConfigWatcher] delivers edits to a
// running program; apply them on the game goroutine with [Game.Post] and
// [Viewport.SetConfig].
//
// [Game.Screenshot] saves the next presented frame as PNG, TIFF or BMP,
// named after the camera state it shows.
//
// [Ebitengine]: https://ebitengine.org
package worldview
