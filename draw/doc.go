// Package draw rasterizes lines and rectangles onto a monochrome [Canvas].
//
// All drawing is integer only and can only switch pixels on. Shapes that do
// not fit the canvas are silently skipped; use the Try variants to learn about
// rejected shapes.
package draw
