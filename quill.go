// Package quill turns a declarative description of pages and styled text
// into a valid PDF document. The hard engineering — shaping, Knuth-Plass
// line breaking with hyphenation, column/page filling with orphan/widow
// control, TrueType subsetting, and the PDF object graph itself — lives in
// the font, atom, layout, frame and pdf subpackages; this package is the
// declarative surface that wires them together.
package quill

import "github.com/quillpdf/quill/style"

// Document is an ordered sequence of page templates plus the style every
// Span resolves against when it doesn't override a property itself.
type Document struct {
	Content []PageTemplate
	Style   style.Style
}

// NewDocument returns an empty Document using base as its root style.
func NewDocument(base style.Style) *Document {
	return &Document{Style: base}
}

// AddPage appends a fixed, absolutely-positioned page.
func (d *Document) AddPage(p Page) *Document {
	d.Content = append(d.Content, p)
	return d
}

// AddAutoPage appends a flowing, auto-paginated page.
func (d *Document) AddAutoPage(p AutoPage) *Document {
	d.Content = append(d.Content, p)
	return d
}

// PageTemplate is either a Page (absolutely positioned drawables) or an
// AutoPage (flowing Blocks reduced to lines by the layout/frame pipeline).
type PageTemplate interface {
	isPageTemplate()
}

// Margin gives a page's four inset distances, in points.
type Margin struct {
	Top, Right, Bottom, Left float64
}

// Uniform returns a Margin with all four sides equal to v.
func Uniform(v float64) Margin { return Margin{Top: v, Right: v, Bottom: v, Left: v} }

// Column is one frame template on a page: origin plus extent.
type Column struct {
	X, Y, Width, Height float64
}

// Page is a page with absolutely positioned drawables and, optionally,
// column templates. An AutoPage flows content into the first column only;
// further columns are not filled.
type Page struct {
	Drawables []Drawable
	Size      style.PageSize
	Rotation  int // one of 0, 90, 180, 270
	Margin    Margin
	Columns   []Column
}

func (Page) isPageTemplate() {}

// DefaultColumns returns a single column filling the page within Margin.
func (p Page) DefaultColumns() []Column {
	if len(p.Columns) > 0 {
		return p.Columns
	}
	return []Column{{
		X:      p.Margin.Left,
		Y:      p.Margin.Top,
		Width:  p.Size.Width - p.Margin.Left - p.Margin.Right,
		Height: p.Size.Height - p.Margin.Top - p.Margin.Bottom,
	}}
}

// AutoPage flows Blocks across one or more physical pages produced by
// Template, per spec §6 ("a page template is either a Page value or a
// function (page_index) -> Page").
type AutoPage struct {
	Blocks   []Block
	Template PageProvider
}

func (AutoPage) isPageTemplate() {}

// PageProvider is the tagged variant spec §9 calls for: a callable page
// template is either a fixed Page or a function of the physical page
// index within this AutoPage (0-based).
type PageProvider struct {
	static *Page
	fn     func(pageIndex int) Page
}

// Static wraps a single Page used for every physical page an AutoPage
// spans.
func Static(p Page) PageProvider { return PageProvider{static: &p} }

// Func wraps a page-index-dependent template, e.g. to vary margins on a
// cover page.
func Func(f func(pageIndex int) Page) PageProvider { return PageProvider{fn: f} }

// At resolves the template for the given 0-based physical page index.
func (p PageProvider) At(index int) Page {
	if p.fn != nil {
		return p.fn(index)
	}
	return *p.static
}

// Align selects a paragraph's horizontal text alignment.
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
	AlignJustify
)
