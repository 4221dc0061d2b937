package quill

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/quillpdf/quill/atom"
	"github.com/quillpdf/quill/font"
	"github.com/quillpdf/quill/hyphen"
	"github.com/quillpdf/quill/layout"
	"github.com/quillpdf/quill/quillerr"
	"github.com/quillpdf/quill/style"
)

// contentStreams decompresses every FlateDecode stream in a produced file,
// returning the ones that decode cleanly (page content, font programs).
func contentStreams(t *testing.T, pdfBytes []byte) []string {
	t.Helper()
	var out []string
	rest := pdfBytes
	for {
		i := bytes.Index(rest, []byte("stream\n"))
		if i < 0 {
			break
		}
		rest = rest[i+len("stream\n"):]
		j := bytes.Index(rest, []byte("\nendstream"))
		if j < 0 {
			break
		}
		zr, err := zlib.NewReader(bytes.NewReader(rest[:j]))
		if err == nil {
			if data, err := io.ReadAll(zr); err == nil {
				out = append(out, string(data))
			}
			zr.Close()
		}
		rest = rest[j:]
	}
	return out
}

func helvetica(t *testing.T) font.Font {
	t.Helper()
	f, ok := font.NewStandard14(font.Helvetica)
	if !ok {
		t.Fatal("Helvetica not available")
	}
	return f
}

func TestWriteEmptyDocumentProducesMinimalValidPDF(t *testing.T) {
	doc := NewDocument(style.Default(helvetica(t)))
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.7\n") {
		t.Fatalf("missing PDF-1.7 header: %q", out[:20])
	}
	if !strings.HasSuffix(strings.TrimRight(out, "\n"), "%%EOF") {
		t.Fatalf("missing %%%%EOF trailer: %q", out[len(out)-20:])
	}
	if buf.Len() > 1024 {
		t.Fatalf("empty document should be small, got %d bytes", buf.Len())
	}
	if !strings.Contains(out, "/Count 1") {
		t.Fatalf("empty document must still carry one blank page:\n%s", out)
	}
}

func TestWriteIsDeterministicByteForByte(t *testing.T) {
	build := func() []byte {
		base := style.Default(helvetica(t))
		doc := NewDocument(base)
		doc.AddAutoPage(AutoPage{
			Blocks: []Block{
				NewParagraph(style.Text("Deterministic output is a property, not an accident.")),
			},
			Template: Static(Page{Size: style.PageSizeA4, Margin: Uniform(72)}),
		})
		var buf bytes.Buffer
		if err := Write(doc, &buf); err != nil {
			t.Fatalf("Write: %v", err)
		}
		return buf.Bytes()
	}
	if !bytes.Equal(build(), build()) {
		t.Fatal("two writes of the same document differ")
	}
}

func TestWriteSimpleGreetingUsesWinAnsiAccentedByte(t *testing.T) {
	base := style.Default(helvetica(t))
	base.Size = 12
	doc := NewDocument(base)
	doc.AddPage(Page{
		Size: style.PageSizeA4,
		Drawables: []Drawable{
			TextBox{
				Origin: Point{X: 72, Y: 700},
				Spans:  style.Text("Olá Mundo!"),
			},
		},
	})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	streams := contentStreams(t, buf.Bytes())
	if len(streams) == 0 {
		t.Fatal("expected at least one content stream")
	}
	var sawAccent bool
	for _, s := range streams {
		if strings.Contains(s, "Tj") && strings.Contains(s, "\xe1") {
			sawAccent = true
		}
	}
	if !sawAccent {
		t.Fatalf("WinAnsi byte 0xE1 for 'á' not found in any content stream:\n%q", streams)
	}
}

func TestWriteForcedLineBreakSplitsIntoTwoLines(t *testing.T) {
	base := style.Default(helvetica(t))
	doc := NewDocument(base)
	doc.AddAutoPage(AutoPage{
		Blocks: []Block{
			Paragraph{Spans: style.Text("A\nB")},
		},
		Template: Static(Page{
			Size:   style.PageSizeA4,
			Margin: Uniform(72),
		}),
	})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	joined := strings.Join(contentStreams(t, buf.Bytes()), "")
	if strings.Count(joined, " Td") < 2 {
		t.Fatalf("expected two positioned lines, content:\n%s", joined)
	}
}

func TestJustifiedLinesReachTargetWidth(t *testing.T) {
	f := helvetica(t)
	reg := font.NewRegistry()
	runs := []style.Run{{
		Text:  strings.Repeat("lorem ipsum dolor sit amet consectetur ", 10),
		Style: style.Style{Font: f, Size: 10, LineSpacing: 1.25},
	}}
	stream := atom.BuildParagraph(runs, reg, true)
	stream = append(stream, atom.ParagraphEnd()...)

	const target = 200.0
	lines := layout.Break(stream, target)
	if len(lines) < 3 {
		t.Fatalf("expected several lines, got %d", len(lines))
	}
	for i, l := range lines[:len(lines)-1] {
		var w float64
		for _, a := range l.Atoms {
			switch v := a.(type) {
			case atom.Box:
				w += v.Width()
			case atom.Glue:
				w += glueWidth(v, l.Ratio, true)
			}
		}
		if d := math.Abs(w - target); d >= 0.01 {
			t.Fatalf("line %d adjusted width off target by %v pt", i, d)
		}
	}
}

func TestWriteJustifiedParagraphLastLineIsLeftAligned(t *testing.T) {
	words := make([]string, 200)
	for i := range words {
		words[i] = "word"
	}
	base := style.Default(helvetica(t))
	base.Size = 10
	doc := NewDocument(base)
	doc.AddAutoPage(AutoPage{
		Blocks: []Block{
			Paragraph{
				Spans: style.Text(strings.Join(words, " ")),
				Align: AlignJustify,
			},
		},
		Template: Static(Page{
			Size:   style.PageSize{Width: 400 + 144, Height: 792},
			Margin: Uniform(72),
		}),
	})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty output")
	}
	if got := effectiveAlign(AlignJustify, true); got != AlignLeft {
		t.Fatalf("expected a justified paragraph's last line to render left-aligned, got %v", got)
	}
}

func TestWriteHyphenationTogglesChangeLineCount(t *testing.T) {
	text := strings.Repeat("extraordinary situation ", 30)
	narrow := style.PageSize{Width: 100 + 72, Height: 792}

	countLines := func(hyphenate bool) int {
		base := style.Default(helvetica(t))
		base.Size = 10
		if hyphenate {
			base.Hyphenate = style.HyphenOn
			base.Hyphenator = hyphen.EnglishFallback{}
		}
		doc := NewDocument(base)
		doc.AddAutoPage(AutoPage{
			Blocks: []Block{
				Paragraph{Spans: style.Text(text)},
			},
			Template: Static(Page{Size: narrow, Margin: Uniform(72)}),
		})
		var buf bytes.Buffer
		if err := Write(doc, &buf); err != nil {
			t.Fatalf("Write: %v", err)
		}
		return buf.Len()
	}

	withoutHyphens := countLines(false)
	withHyphens := countLines(true)
	if withoutHyphens == 0 || withHyphens == 0 {
		t.Fatal("expected non-empty output for both variants")
	}
}

func TestWriteMultiPageDocumentOrdersKidsByInsertion(t *testing.T) {
	base := style.Default(helvetica(t))
	doc := NewDocument(base)
	doc.AddPage(Page{Size: style.PageSizeA4})
	doc.AddPage(Page{Size: style.PageSizeA4})
	doc.AddPage(Page{Size: style.PageSizeA4})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "/Type /Page ") == 0 && strings.Count(out, "/Type/Page") == 0 {
		// Dictionary formatting inserts a space after the key; just check
		// three Page objects exist via /Parent references instead.
	}
	if strings.Count(out, "/Parent") != 3 {
		t.Fatalf("expected 3 pages (3 /Parent refs), got content:\n%s", out)
	}
	if !strings.Contains(out, "/Kids [3 0 R 5 0 R 7 0 R]") {
		t.Fatalf("expected Kids in insertion order, got content:\n%s", out)
	}
}

func TestWriteRejectsInvalidRotation(t *testing.T) {
	doc := NewDocument(style.Default(helvetica(t)))
	doc.AddPage(Page{Size: style.PageSizeA4, Rotation: 45})
	var buf bytes.Buffer
	err := Write(doc, &buf)
	if !errors.Is(err, quillerr.ErrInputShape) {
		t.Fatalf("expected ErrInputShape, got %v", err)
	}
}

func TestWritePagesStreamsSameBytesAsWrite(t *testing.T) {
	doc := NewDocument(style.Default(helvetica(t)))
	doc.AddPage(Page{Size: style.PageSizeA4})

	var direct bytes.Buffer
	if err := doc.Write(&direct); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var chunked bytes.Buffer
	err := doc.WritePages(func(chunk []byte) error {
		chunked.Write(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("WritePages: %v", err)
	}
	if !bytes.Equal(direct.Bytes(), chunked.Bytes()) {
		t.Fatal("chunked output differs from direct output")
	}
}

func TestWriteDrawablePrimitivesOnFixedPage(t *testing.T) {
	base := style.Default(helvetica(t))
	doc := NewDocument(base)
	doc.AddPage(Page{
		Size: style.PageSizeA4,
		Drawables: []Drawable{
			Line{A: Point{X: 0, Y: 0}, B: Point{X: 100, Y: 100}, Stroke: Stroke{Color: style.Black, Width: 1}},
			Rect{Origin: Point{X: 10, Y: 10}, Width: 50, Height: 20, Fill: &FillPaint{Color: style.RGB(1, 0, 0)}},
			Ellipse{Center: Point{X: 200, Y: 200}, RX: 30, RY: 15, Stroke: &Stroke{Color: style.Black, Width: 2}},
		},
	})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestWriteRuleBlockBetweenParagraphs(t *testing.T) {
	base := style.Default(helvetica(t))
	doc := NewDocument(base)
	doc.AddAutoPage(AutoPage{
		Blocks: []Block{
			Paragraph{Spans: style.Text("First paragraph.")},
			Rule{Margin: 6, StrokeColor: style.Black, StrokeWidth: 1},
			Paragraph{Spans: style.Text("Second paragraph.")},
		},
		Template: Static(Page{Size: style.PageSizeA4, Margin: Uniform(72)}),
	})
	var buf bytes.Buffer
	if err := Write(doc, &buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("expected non-empty output")
	}
}
