// Package frame arranges already-broken paragraph lines into fixed-height
// frames (columns or pages), applying orphan/widow control so a paragraph
// never leaves a single line stranded at the bottom of one frame or the
// top of the next (spec §4.4).
package frame

import "github.com/quillpdf/quill/layout"

// Paragraph is one laid-out paragraph: its lines (already broken by
// layout.Break or layout.Greedy), the vertical distance between
// consecutive baselines, and whether orphan/widow control applies when
// the paragraph straddles a frame boundary.
type Paragraph struct {
	Lines        []layout.Line
	Leading      float64
	AvoidOrphans bool
}

// PlacedLine is one line positioned within a Frame, at Y points from the
// frame's top.
type PlacedLine struct {
	Paragraph int
	Line      layout.Line
	Y         float64
}

// Frame is one filled column or page: its placed lines and the cumulative
// height consumed.
type Frame struct {
	Lines  []PlacedLine
	Height float64
}

func (f *Frame) remaining(capacity float64) float64 { return capacity - f.Height }

// Fill arranges paragraphs into frames of the given capacity (height in
// points), applying orphan/widow control: a frame never ends with a
// paragraph's first line alone (an orphan) nor begins the next frame with
// a paragraph's last line alone (a widow), whenever avoiding that is
// possible without overflowing an otherwise-empty frame.
func Fill(paragraphs []Paragraph, capacity float64) []Frame {
	var frames []Frame
	current := Frame{}

	for pi, p := range paragraphs {
		placeParagraph(pi, p, capacity, &frames, &current)
	}
	if len(current.Lines) > 0 {
		frames = append(frames, current)
	}
	return frames
}

func placeParagraph(pi int, p Paragraph, capacity float64, frames *[]Frame, current *Frame) {
	i := 0
	for i < len(p.Lines) {
		remaining := current.remaining(capacity)
		fit := 0
		if p.Leading > 0 {
			fit = int(remaining / p.Leading)
		}
		left := len(p.Lines) - i

		if fit <= 0 {
			if len(current.Lines) == 0 {
				fit = 1 // an empty frame always takes at least one line, however tall
			} else {
				*frames = append(*frames, *current)
				*current = Frame{}
				continue
			}
		}
		if fit > left {
			fit = left
		}

		// Orphan control: never start a paragraph with only its first line
		// at the bottom of a non-empty frame.
		if p.AvoidOrphans && i == 0 && fit == 1 && left > 1 && len(current.Lines) > 0 {
			*frames = append(*frames, *current)
			*current = Frame{}
			continue
		}

		// Widow control: never leave exactly one of the paragraph's lines
		// to start the next frame. Prefer pulling a second line back; if
		// that itself would create an orphan (fit would drop to 1 on a
		// frame that already has other content), push the whole remaining
		// span to a fresh frame instead.
		if remainAfter := left - fit; p.AvoidOrphans && remainAfter == 1 {
			switch {
			case fit > 2:
				fit--
			case i == 0 && len(current.Lines) > 0:
				*frames = append(*frames, *current)
				*current = Frame{}
				continue
			}
		}

		y := current.Height
		for j := 0; j < fit; j++ {
			current.Lines = append(current.Lines, PlacedLine{Paragraph: pi, Line: p.Lines[i+j], Y: y})
			y += p.Leading
			current.Height += p.Leading
		}
		i += fit

		if i < len(p.Lines) {
			*frames = append(*frames, *current)
			*current = Frame{}
		}
	}
}
