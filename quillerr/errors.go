// Package quillerr defines the error taxonomy shared across quill's
// components. Every hard error returned by the library wraps one of these
// sentinels so callers can classify failures with errors.Is.
package quillerr

import "errors"

var (
	// ErrInputShape marks a structurally invalid declarative input: a
	// negative font size, an unknown Standard14 tag, a malformed span
	// tree. Raised at the boundary; fatal to the Write call.
	ErrInputShape = errors.New("quill: invalid input shape")

	// ErrFontParse marks a malformed TrueType file: a missing required
	// table or inconsistent offsets. Raised on first use of that font.
	ErrFontParse = errors.New("quill: font parse error")

	// ErrWriteIO marks a failed write to the output sink. Once returned,
	// the writer that produced it is poisoned.
	ErrWriteIO = errors.New("quill: write I/O error")

	// ErrInternalState marks a writer API used out of its required
	// sequence — a programming error, not a data error.
	ErrInternalState = errors.New("quill: internal state error")
)
