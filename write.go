package quill

import (
	"fmt"
	"io"
	"math"

	"github.com/quillpdf/quill/atom"
	"github.com/quillpdf/quill/content"
	qfont "github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/frame"
	"github.com/quillpdf/quill/layout"
	"github.com/quillpdf/quill/pdf"
	"github.com/quillpdf/quill/quillerr"
	"github.com/quillpdf/quill/style"
)

// physicalPage is one fully rendered page: its content-stream bytes and
// the page geometry needed to build its /MediaBox and /Rotate entries.
type physicalPage struct {
	content  []byte
	size     style.PageSize
	rotation int
}

// Write renders doc as a complete PDF-1.7 file to w. Page content is built
// first, registering every rendered codepoint; the font registry is then
// frozen and font resources are subset and emitted once, after the pages
// (spec §3 Lifecycle, §4.5, §4.6).
func Write(doc *Document, w io.Writer) error {
	base := doc.Style
	if base.Font == nil {
		f, _ := qfont.NewStandard14(qfont.Helvetica)
		base = base.Override(style.Style{Font: f})
	}
	if base.Size == 0 {
		base = base.Override(style.Style{Size: 12})
	}
	if base.LineSpacing == 0 {
		base = base.Override(style.Style{LineSpacing: 1.25})
	}

	if base.Size < 0 {
		return fmt.Errorf("quill: negative font size %g: %w", base.Size, quillerr.ErrInputShape)
	}

	reg := qfont.NewRegistry()
	var pages []physicalPage

	for _, pt := range doc.Content {
		switch v := pt.(type) {
		case Page:
			if err := validatePage(v); err != nil {
				return err
			}
			pages = append(pages, renderFixedPage(v, base, reg))
		case AutoPage:
			if err := validatePage(v.Template.At(0)); err != nil {
				return err
			}
			pages = append(pages, renderAutoPage(v, base, reg)...)
		default:
			return fmt.Errorf("quill: unknown page template type %T", pt)
		}
	}
	if len(pages) == 0 {
		// an empty document still yields one blank A4 page
		pages = append(pages, physicalPage{size: style.PageSizeA4})
	}

	pw := pdf.NewWriter(w)
	if err := pw.Begin(); err != nil {
		return err
	}

	catalogRef := pw.NewRef()
	pagesRef := pw.NewRef()

	plans := planFontObjects(pw, reg.Freeze())
	fontsDict := pdf.NewDict()
	for _, p := range plans {
		fontsDict.Set(pdf.Name(p.entry.Name), p.primary)
	}
	resources := pdf.NewDict().Set("Font", fontsDict)

	pageRefs := make([]pdf.Ref, len(pages))
	contentRefs := make([]pdf.Ref, len(pages))
	for i := range pages {
		pageRefs[i] = pw.NewRef()
		contentRefs[i] = pw.NewRef()
	}

	for i, p := range pages {
		if err := pw.EmitStream(contentRefs[i], pdf.NewDict(), p.content, true); err != nil {
			return err
		}
		pageDict := pdf.NewDict().
			Set("Type", pdf.Name("Page")).
			Set("Parent", pagesRef).
			Set("Resources", resources).
			Set("MediaBox", pdf.NewArray(pdf.Integer(0), pdf.Integer(0), pdf.Real(p.size.Width), pdf.Real(p.size.Height))).
			Set("Contents", contentRefs[i])
		if p.rotation != 0 {
			pageDict.Set("Rotate", pdf.Integer(p.rotation))
		}
		if err := pw.Emit(pageRefs[i], pageDict); err != nil {
			return err
		}
	}

	if err := emitFontObjects(pw, plans); err != nil {
		return err
	}

	kids := pdf.NewArray()
	for _, r := range pageRefs {
		kids.Append(r)
	}
	pagesDict := pdf.NewDict().
		Set("Type", pdf.Name("Pages")).
		Set("Kids", kids).
		Set("Count", pdf.Integer(len(pageRefs)))
	if err := pw.Emit(pagesRef, pagesDict); err != nil {
		return err
	}

	catalogDict := pdf.NewDict().
		Set("Type", pdf.Name("Catalog")).
		Set("Pages", pagesRef)
	if err := pw.Emit(catalogRef, catalogDict); err != nil {
		return err
	}

	return pw.Close(catalogRef)
}

func validatePage(p Page) error {
	switch p.Rotation {
	case 0, 90, 180, 270:
	default:
		return fmt.Errorf("quill: page rotation %d not one of 0/90/180/270: %w", p.Rotation, quillerr.ErrInputShape)
	}
	if p.Size.Width <= 0 || p.Size.Height <= 0 {
		return fmt.Errorf("quill: page size %g x %g must be positive: %w", p.Size.Width, p.Size.Height, quillerr.ErrInputShape)
	}
	return nil
}

// Write renders d to w; the method form of the package-level Write.
func (d *Document) Write(w io.Writer) error { return Write(d, w) }

// chunkWriter adapts a chunk callback to io.Writer. The chunk is only
// valid for the duration of the call.
type chunkWriter struct {
	fn func(chunk []byte) error
}

func (w chunkWriter) Write(p []byte) (int, error) {
	if err := w.fn(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WritePages renders d, handing output bytes to fn chunk by chunk as
// they are produced, so the caller drains at its own pace (spec §5). fn
// returning an error aborts the write.
func (d *Document) WritePages(fn func(chunk []byte) error) error {
	return Write(d, chunkWriter{fn: fn})
}

// fontPlan is one registry entry plus the object ids reserved for it; ids
// are allocated before any page is emitted so page Resources can point at
// fonts whose objects are written last.
type fontPlan struct {
	entry   qfont.Entry
	primary pdf.Ref // the ref /Font resources name

	// embedded fonts only
	fontFile   pdf.Ref
	toUnicode  pdf.Ref
	descriptor pdf.Ref
	descendant pdf.Ref
}

func planFontObjects(pw *pdf.Writer, entries []qfont.Entry) []fontPlan {
	plans := make([]fontPlan, 0, len(entries))
	for _, e := range entries {
		p := fontPlan{entry: e}
		if e.Font.IsEmbedded() {
			p.fontFile = pw.NewRef()
			p.toUnicode = pw.NewRef()
			p.descriptor = pw.NewRef()
			p.descendant = pw.NewRef()
		}
		p.primary = pw.NewRef()
		plans = append(plans, p)
	}
	return plans
}

func emitFontObjects(pw *pdf.Writer, plans []fontPlan) error {
	for _, p := range plans {
		if !p.entry.Font.IsEmbedded() {
			if err := pw.Emit(p.primary, pdf.Standard14FontObject(p.entry.Font.Name())); err != nil {
				return err
			}
			continue
		}
		if err := emitEmbeddedFont(pw, p); err != nil {
			return err
		}
	}
	return nil
}

func emitEmbeddedFont(pw *pdf.Writer, p fontPlan) error {
	embedded, ok := p.entry.Font.(*qfont.Embedded)
	if !ok {
		return fmt.Errorf("quill: embedded font handle of unexpected type %T", p.entry.Font)
	}
	used := make(map[rune]struct{}, len(p.entry.Runes))
	for _, r := range p.entry.Runes {
		used[r] = struct{}{}
	}
	subset, err := embedded.BuildSubset(used)
	if err != nil {
		return err
	}

	ffDict := pdf.NewDict().Set("Length1", pdf.Integer(len(subset.Data)))
	if err := pw.EmitStream(p.fontFile, ffDict, subset.Data, true); err != nil {
		return err
	}

	cmapEntries := make([]pdf.CIDToUnicodeEntry, 0, len(subset.CIDOf))
	widths := make([]pdf.CIDWidth, 0, len(subset.CIDOf))
	for r, cid := range subset.CIDOf {
		cmapEntries = append(cmapEntries, pdf.CIDToUnicodeEntry{CID: cid, Rune: r})
		widths = append(widths, pdf.CIDWidth{CID: cid, Width: embedded.AdvanceWidth(r) * 1000})
	}
	if err := pw.EmitStream(p.toUnicode, pdf.NewDict(), pdf.ToUnicodeCMap(cmapEntries), true); err != nil {
		return err
	}

	d := embedded.Descriptor()
	baseFont := qfont.MakeSubsetName(p.entry.Font.Name(), subset.Tag)
	type0Dict, descendantDict, descriptorDict := pdf.CompositeFontObject(
		baseFont,
		pdf.FontDescriptor{
			Ascent:      d.Ascent,
			Descent:     d.Descent,
			CapHeight:   d.CapHeight,
			BBox:        d.BBox,
			ItalicAngle: d.ItalicAngle,
			StemV:       d.StemV,
			Flags:       d.Flags,
		},
		pdf.CIDWidthsArray(widths),
		p.descriptor, p.descendant, p.fontFile, p.toUnicode)

	if err := pw.Emit(p.descriptor, descriptorDict); err != nil {
		return err
	}
	if err := pw.Emit(p.descendant, descendantDict); err != nil {
		return err
	}
	return pw.Emit(p.primary, type0Dict)
}

// flowKind distinguishes the two Block variants once reduced to lines a
// frame can place.
type flowKind int

const (
	flowKindParagraph flowKind = iota
	flowKindRule
)

// flowUnit is a Block reduced to the lines frame.Fill operates on, plus
// the rendering metadata frame.PlacedLine alone doesn't carry (alignment,
// line spacing, or — for a Rule — the stroke to draw instead of text).
type flowUnit struct {
	kind         flowKind
	lines        []layout.Line
	leading      float64
	spacing      float64
	align        Align
	avoidOrphans bool
	rule         Rule
}

func buildFlowUnit(blk Block, base style.Style, reg *qfont.Registry, width float64) flowUnit {
	switch v := blk.(type) {
	case Paragraph:
		st := base.Override(v.Style)
		runs := style.Flatten(st, v.Spans)
		stream := atom.BuildParagraph(runs, reg, v.Align == AlignJustify)
		if v.Indent > 0 {
			// a rigid empty box at stream start: the breaker sees the
			// first line's reduced measure, the renderer sees blank space
			stream = append([]atom.Atom{atom.FixedBox(v.Indent)}, stream...)
		}
		stream = append(stream, atom.ParagraphEnd()...)
		var lines []layout.Line
		if v.Optimal {
			lines = layout.Break(stream, width)
		} else {
			lines = layout.Greedy(stream, width)
		}
		return flowUnit{
			kind:         flowKindParagraph,
			lines:        lines,
			leading:      st.Size * st.LineSpacing,
			spacing:      st.LineSpacing,
			align:        v.Align,
			avoidOrphans: v.AvoidOrphans,
		}
	case Rule:
		return flowUnit{kind: flowKindRule, lines: []layout.Line{{}}, leading: v.Margin*2 + v.StrokeWidth, rule: v}
	default:
		return flowUnit{kind: flowKindParagraph}
	}
}

// renderAutoPage flows ap.Blocks through the layout/frame pipeline and
// renders each resulting Frame as one physical page. Column geometry is
// taken from the first physical page's default column and held constant
// across every page this AutoPage spans; a template that varies column
// width per page would need re-breaking per page, which quill does not
// do (documented simplification).
func renderAutoPage(ap AutoPage, base style.Style, reg *qfont.Registry) []physicalPage {
	if len(ap.Blocks) == 0 {
		return nil
	}
	firstPage := ap.Template.At(0)
	firstCol := firstPage.DefaultColumns()[0]

	units := make([]flowUnit, len(ap.Blocks))
	paragraphs := make([]frame.Paragraph, len(ap.Blocks))
	for i, blk := range ap.Blocks {
		units[i] = buildFlowUnit(blk, base, reg, firstCol.Width)
		paragraphs[i] = frame.Paragraph{
			Lines:        units[i].lines,
			Leading:      units[i].leading,
			AvoidOrphans: units[i].avoidOrphans,
		}
	}

	frames := frame.Fill(paragraphs, firstCol.Height)
	rendered := make([]physicalPage, len(frames))
	progress := make([]int, len(units))
	fonts := reg.Fonts()

	for fi, fr := range frames {
		page := ap.Template.At(fi)
		col := page.DefaultColumns()[0]
		b := content.NewBuilder()

		for _, pl := range fr.Lines {
			u := units[pl.Paragraph]
			progress[pl.Paragraph]++
			isLast := progress[pl.Paragraph] == len(u.lines)

			if u.kind == flowKindRule {
				y := page.Size.Height - col.Y - pl.Y - u.rule.Margin - u.rule.StrokeWidth/2
				b.PushState()
				b.SetStrokeColor(u.rule.StrokeColor.R, u.rule.StrokeColor.G, u.rule.StrokeColor.B)
				b.SetLineWidth(u.rule.StrokeWidth)
				b.MoveTo(col.X, y)
				b.LineTo(col.X+col.Width, y)
				b.Stroke()
				b.PopState()
				continue
			}

			align := effectiveAlign(u.align, isLast)
			baselineY := page.Size.Height - col.Y - pl.Y - baselineDrop(fonts, pl.Line, u)
			renderLine(b, fonts, pl.Line, align, col.X, baselineY, col.Width)
		}

		rendered[fi] = physicalPage{content: b.Bytes(), size: page.Size, rotation: page.Rotation}
	}
	return rendered
}

// baselineDrop is the distance from a line's top to its baseline: the
// maximum ascent across the line's glyphs scaled by the paragraph's line
// spacing (spec §3 "Line"), with a leading-proportional fallback for
// lines carrying no glyphs.
func baselineDrop(fonts map[string]qfont.Font, line layout.Line, u flowUnit) float64 {
	var maxAscent float64
	for _, a := range line.Atoms {
		box, ok := a.(atom.Box)
		if !ok {
			continue
		}
		for _, g := range box.Glyphs {
			if f := fonts[g.FontName]; f != nil {
				if asc := f.Ascent() * g.FontSize; asc > maxAscent {
					maxAscent = asc
				}
			}
		}
	}
	if maxAscent == 0 {
		return u.leading * 0.8
	}
	return maxAscent * u.spacing
}

func renderFixedPage(p Page, base style.Style, reg *qfont.Registry) physicalPage {
	b := content.NewBuilder()
	for _, d := range p.Drawables {
		renderDrawable(b, d, base, reg)
	}
	return physicalPage{content: b.Bytes(), size: p.Size, rotation: p.Rotation}
}

func renderDrawable(b *content.Builder, d Drawable, base style.Style, reg *qfont.Registry) {
	switch v := d.(type) {
	case Line:
		b.PushState()
		b.SetStrokeColor(v.Stroke.Color.R, v.Stroke.Color.G, v.Stroke.Color.B)
		b.SetLineWidth(v.Stroke.Width)
		b.MoveTo(v.A.X, v.A.Y)
		b.LineTo(v.B.X, v.B.Y)
		b.Stroke()
		b.PopState()
	case Rect:
		b.PushState()
		if v.Fill != nil {
			b.SetFillColor(v.Fill.Color.R, v.Fill.Color.G, v.Fill.Color.B)
		}
		if v.Stroke != nil {
			b.SetStrokeColor(v.Stroke.Color.R, v.Stroke.Color.G, v.Stroke.Color.B)
			b.SetLineWidth(v.Stroke.Width)
		}
		b.Rect(v.Origin.X, v.Origin.Y, v.Width, v.Height)
		paintPath(b, v.Fill != nil, v.Stroke != nil)
		b.PopState()
	case Ellipse:
		b.PushState()
		if v.Fill != nil {
			b.SetFillColor(v.Fill.Color.R, v.Fill.Color.G, v.Fill.Color.B)
		}
		if v.Stroke != nil {
			b.SetStrokeColor(v.Stroke.Color.R, v.Stroke.Color.G, v.Stroke.Color.B)
			b.SetLineWidth(v.Stroke.Width)
		}
		drawEllipsePath(b, v.Center.X, v.Center.Y, v.RX, v.RY)
		paintPath(b, v.Fill != nil, v.Stroke != nil)
		b.PopState()
	case TextBox:
		renderTextBox(b, v, base, reg)
	}
}

func paintPath(b *content.Builder, fill, stroke bool) {
	switch {
	case fill && stroke:
		b.FillStroke()
	case fill:
		b.Fill()
	case stroke:
		b.Stroke()
	default:
		b.EndPath()
	}
}

// kappa is the cubic-Bézier control-point factor that best approximates a
// quarter circle of radius 1.
const kappa = 0.5522847498

func drawEllipsePath(b *content.Builder, cx, cy, rx, ry float64) {
	b.MoveTo(cx+rx, cy)
	b.BezierTo(cx+rx, cy+ry*kappa, cx+rx*kappa, cy+ry, cx, cy+ry)
	b.BezierTo(cx-rx*kappa, cy+ry, cx-rx, cy+ry*kappa, cx-rx, cy)
	b.BezierTo(cx-rx, cy-ry*kappa, cx-rx*kappa, cy-ry, cx, cy-ry)
	b.BezierTo(cx+rx*kappa, cy-ry, cx+rx, cy-ry*kappa, cx+rx, cy)
	b.ClosePath()
}

func renderTextBox(b *content.Builder, tb TextBox, base style.Style, reg *qfont.Registry) {
	st := base.Override(tb.Style)
	runs := style.Flatten(st, tb.Spans)
	stream := atom.BuildParagraph(runs, reg, tb.Align == AlignJustify)
	stream = append(stream, atom.ParagraphEnd()...)

	width := tb.Width
	if width <= 0 {
		width = math.Inf(1)
	}
	lines := layout.Greedy(stream, width)

	fonts := reg.Fonts()
	leading := st.Size * st.LineSpacing
	y := tb.Origin.Y
	for i, line := range lines {
		align := effectiveAlign(tb.Align, i == len(lines)-1)
		target := tb.Width
		if target <= 0 {
			target = line.NaturalWidth()
		}
		renderLine(b, fonts, line, align, tb.Origin.X, y, target)
		y -= leading
	}
}
