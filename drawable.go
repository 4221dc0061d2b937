package quill

import "github.com/quillpdf/quill/style"

// Point is a page-space coordinate in points, origin at the page's
// bottom-left per the PDF coordinate convention.
type Point struct {
	X, Y float64
}

// Stroke describes a path's outline paint.
type Stroke struct {
	Color style.Color
	Width float64
}

// FillPaint describes a path's interior paint.
type FillPaint struct {
	Color style.Color
}

// Drawable is one absolutely positioned shape or text block on a Page
// (spec §6).
type Drawable interface {
	isDrawable()
}

// Line draws a straight stroke from A to B.
type Line struct {
	A, B   Point
	Stroke Stroke
}

func (Line) isDrawable() {}

// Rect draws an axis-aligned rectangle with optional fill and/or stroke.
type Rect struct {
	Origin      Point
	Width       float64
	Height      float64
	Fill        *FillPaint
	Stroke      *Stroke
}

func (Rect) isDrawable() {}

// Ellipse draws an ellipse centered at Center with the given radii.
type Ellipse struct {
	Center Point
	RX, RY float64
	Fill   *FillPaint
	Stroke *Stroke
}

func (Ellipse) isDrawable() {}

// TextBox draws styled text at a fixed origin, laid out as a single
// paragraph within Width (0 means unbounded: lines break only at explicit
// newlines).
type TextBox struct {
	Origin Point
	Width  float64
	Spans  style.Span
	Style  style.Style
	Align  Align
}

func (TextBox) isDrawable() {}
