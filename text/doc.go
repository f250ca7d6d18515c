// Package text draws characters onto a monochrome canvas.
//
// The built-in font is 5×7 pixels, covers printable ASCII and uses a cell of
// 6 pixels wide per character. Characters outside of the table render as a
// hollow box.
//
// Any [golang.org/x/image/font.Face] can be drawn with [DrawFace], including
// TrueType fonts loaded with [LoadTrueType].
package text
