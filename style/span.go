package style

// Span is a node in the styled-text tree a Paragraph is built from: either
// a Leaf carrying literal text, or a Node that applies a Style fragment to
// a list of child Spans (spec §3 "Span").
type Span struct {
	text     string
	style    Style
	children []Span
}

// Text returns a leaf Span holding s verbatim.
func Text(s string) Span {
	return Span{text: s}
}

// Styled wraps children under the style fragment st, to be merged into
// whatever Style is in effect where this Span appears.
func Styled(st Style, children ...Span) Span {
	return Span{style: st, children: children}
}

// Run is a flattened, fully-resolved piece of text: a contiguous string
// together with the Style it renders in.
type Run struct {
	Text  string
	Style Style
}

// Flatten walks the Span tree under base, resolving each Leaf's effective
// Style by right-biased override along its ancestor chain, and returns the
// sequence of (text, style) runs in document order.
func Flatten(base Style, root Span) []Run {
	var out []Run
	flattenInto(base, root, &out)
	return out
}

func flattenInto(inherited Style, s Span, out *[]Run) {
	effective := inherited.Override(s.style)
	if len(s.children) == 0 {
		if s.text != "" {
			*out = append(*out, Run{Text: s.text, Style: effective})
		}
		return
	}
	for _, child := range s.children {
		flattenInto(effective, child, out)
	}
}
