// Package mapsim renders a scrolling, layered 2D map scene for [Ebitengine]:
// animated sprites placed in the world, and parallax backgrounds that tile
// across the viewport and optionally drift on their own.
//
// # Quick start
//
//	clock := mapsim.NewSystemClock()
//	scene := mapsim.NewScene(mapsim.NewCamera(800, 600), clock)
//
//	sky := mapsim.NewBackgroundLayer("sky", mapsim.BackgroundConfig{
//		RatioX: 20, Policy: mapsim.PolicyHorizontalMoving, Alpha: 255,
//	}, mapsim.NewStaticSequence(skyFrame))
//	scene.Add(sky)
//
//	mapsim.Run(scene, mapsim.RunConfig{Title: "Map"})
//
// For full control, implement [ebiten.Game] yourself and call [Scene.Update]
// and [Scene.Draw], or render onto any [Surface] with [Scene.Render].
//
// # Timing
//
// All timing reads an injected [Clock] in milliseconds. [Sequence] advances
// at most one frame per call once the showing frame's delay has passed.
// [Drift] accumulates ratio*elapsed/200 pixels, wrapped to the tiling period.
//
// # Backgrounds
//
// A background's [MotionPolicy] combines a tiling shape (none, horizontal,
// vertical, both) with an optional drift axis. Screen position follows
//
//	pos = ratio*(shift - center + half)/100 + anchor + origin + half
//
// with integer division truncating toward zero, where half is half of the
// camera's reference viewport.
//
// VerticalMovingHVTiling drifts along Y by default. Maps made with older
// tools expect it to step the X accumulator with the Y period instead and
// never move vertically; that behavior is off unless
// [Scene.LegacyVerticalHVDrift] is set (viewer config key
// render.legacyVerticalHVDrift).
//
// # Scene files
//
// [LoadScene] builds a scene from YAML. Frames are resolved by name through
// a [FrameProvider], such as an [Atlas] or the assets package's directory
// library. [Scene.Import] merges more layers in, asking a [ReplacePrompt]
// about name clashes.
//
// # Scripts and screenshots
//
// A [ScriptRunner] attached with [Scene.SetScript] pans, scrolls, fades and
// captures the scene unattended. [Scene.Screenshot] writes the next drawn
// frame to ScreenshotDir as a PNG.
//
// [Ebitengine]: https://ebitengine.org
package mapsim
