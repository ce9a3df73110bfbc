// Package gauge turns a resolved view-model and a viewport into a scene:
// one ring and one centered label.
//
// # Geometry
//
// Both viewport dimensions are floored to [MinViewportSize] first. With
// side = min(width, height) and s the stroke fraction:
//
//	radius      = side / (1 + s) / 2 - 1
//	strokeWidth = s * radius * 2
//	fontSize    = side * (1 - s - 0.02) / 2
//
// The label baseline sits fontSize/3 below the viewport center.
//
// # Stroke color
//
// [StrokeColor] interpolates per RGB channel between the target colors:
// values at or below min render minColor, values at mid render midColor,
// values at or above max render maxColor, and values in between blend the
// two adjacent colors linearly.
package gauge
