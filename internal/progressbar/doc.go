// Package progressbar implements an output-only progress indicator widget.
//
// A Progressbar tracks an integer position inside an inclusive range
// [min, max], moves it in steps of a configurable resolution and never lets
// it leave the range: every mutator clamps. The bar can animate itself by
// scheduling a periodic increment on the toolkit's cooperative timer
// facility, and it paints itself through a replaceable Renderer. Two
// renderers are built in: a flat fill (DrawStd) and a tiled image fill
// (DrawImage).
//
// Mutators never redraw on their own; call Redraw once the batch of changes
// is complete. Auto-advance ticks do redraw.
//
// The package is not safe for concurrent use. All calls, timer callbacks
// included, must come from the goroutine that advances the timer facility.
package progressbar
