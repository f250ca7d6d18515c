// Package pixel implements the page packed monochrome framebuffer used by
// SH1106 and SSD1306 class OLED controllers.
//
// The [Framebuffer] is compatible with Go's native [image.Image] and
// [draw.Image] interfaces, so it can be used as the destination of
// [image/draw] and [golang.org/x/image/font] operations.
package pixel
