package pdf

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"fmt"
	"io"

	"github.com/quillpdf/quill/quillerr"
	"github.com/quillpdf/quill/quilllog"
)

// writerState is the Writer's explicit state machine per spec §4.6: any
// call made in a non-matching state is a fatal programming error
// (quillerr.ErrInternalState), not a soft/data error.
type writerState int

const (
	stateOpen writerState = iota
	stateWritingHeader
	stateWritingObjects
	stateWritingXRef
	stateClosed
)

type xrefEntry struct {
	offset int64
}

// Writer streams a PDF file to a sink in a single pass. Object ids are
// allocated up front with NewRef so that cyclic references (a Pages node
// and its child Page objects) can be wired before either side's content is
// ready; Emit writes an object's content only once it is known, recording
// the byte offset at that instant.
type Writer struct {
	sink io.Writer
	buf  *bufio.Writer
	pos  int64

	state  writerState
	nextID int
	xref   map[int]xrefEntry

	poisoned bool
}

// NewWriter wraps sink. The writer starts in the Open state.
func NewWriter(sink io.Writer) *Writer {
	return &Writer{
		sink: sink,
		buf:  bufio.NewWriter(sink),
		xref: map[int]xrefEntry{},
	}
}

func (w *Writer) fail(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, quillerr.ErrInternalState)...)
}

// NewRef reserves the next object id without requiring its content.
func (w *Writer) NewRef() Ref {
	w.nextID++
	return Ref{Num: w.nextID}
}

// Begin writes the PDF header and transitions Open -> WritingObjects.
func (w *Writer) Begin() error {
	if w.state != stateOpen {
		return w.fail("pdf: Begin called in state %d", w.state)
	}
	w.state = stateWritingHeader
	if err := w.write("%PDF-1.7\n%\xe2\xe3\xcf\xd3\n"); err != nil {
		return err
	}
	w.state = stateWritingObjects
	return nil
}

func (w *Writer) write(s string) error {
	if w.poisoned {
		return fmt.Errorf("pdf: writer poisoned by previous error: %w", quillerr.ErrWriteIO)
	}
	n, err := w.buf.WriteString(s)
	w.pos += int64(n)
	if err != nil {
		w.poisoned = true
		quilllog.Log.Debug("pdf: write failed: %v", err)
		return fmt.Errorf("pdf: write failed: %w", quillerr.ErrWriteIO)
	}
	return nil
}

func (w *Writer) writeBytes(b []byte) error {
	if w.poisoned {
		return fmt.Errorf("pdf: writer poisoned by previous error: %w", quillerr.ErrWriteIO)
	}
	n, err := w.buf.Write(b)
	w.pos += int64(n)
	if err != nil {
		w.poisoned = true
		return fmt.Errorf("pdf: write failed: %w", quillerr.ErrWriteIO)
	}
	return nil
}

// Emit writes an indirect object (ref N 0 obj ... endobj) at the current
// stream position and records that position in the cross-reference table.
func (w *Writer) Emit(ref Ref, obj Object) error {
	if w.state != stateWritingObjects {
		return w.fail("pdf: Emit called in state %d", w.state)
	}
	w.xref[ref.Num] = xrefEntry{offset: w.pos}
	if err := w.write(fmt.Sprintf("%d 0 obj\n", ref.Num)); err != nil {
		return err
	}
	if err := w.write(obj.WriteString()); err != nil {
		return err
	}
	return w.write("\nendobj\n")
}

// EmitStream writes an indirect stream object. If compress is true, Data is
// zlib-compressed and /Filter /FlateDecode plus /Length are set on dict
// before anything is written — streams are buffered in memory until their
// compressed length is known, then flushed (spec §4.6.3).
func (w *Writer) EmitStream(ref Ref, dict *Dictionary, data []byte, compress bool) error {
	if w.state != stateWritingObjects {
		return w.fail("pdf: EmitStream called in state %d", w.state)
	}
	payload := data
	if compress {
		var buf bytes.Buffer
		zw := zlib.NewWriter(&buf)
		if _, err := zw.Write(data); err != nil {
			return fmt.Errorf("pdf: flate compress: %w", quillerr.ErrWriteIO)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("pdf: flate compress: %w", quillerr.ErrWriteIO)
		}
		payload = buf.Bytes()
		dict.Set("Filter", Name("FlateDecode"))
	}
	dict.Set("Length", Integer(len(payload)))

	w.xref[ref.Num] = xrefEntry{offset: w.pos}
	if err := w.write(fmt.Sprintf("%d 0 obj\n", ref.Num)); err != nil {
		return err
	}
	if err := w.write(dict.WriteString()); err != nil {
		return err
	}
	if err := w.write("\nstream\n"); err != nil {
		return err
	}
	if err := w.writeBytes(payload); err != nil {
		return err
	}
	return w.write("\nendstream\nendobj\n")
}

// Close writes the cross-reference table, trailer, startxref and %%EOF,
// then transitions to Closed. root is the Catalog's ref; size is the
// object count (highest allocated id + 1, matching the free-list head).
func (w *Writer) Close(root Ref) error {
	if w.state != stateWritingObjects {
		return w.fail("pdf: Close called in state %d", w.state)
	}
	w.state = stateWritingXRef

	xrefStart := w.pos
	size := w.nextID + 1
	if err := w.write(fmt.Sprintf("xref\n0 %d\n", size)); err != nil {
		return err
	}
	if err := w.write("0000000000 65535 f \n"); err != nil {
		return err
	}
	for num := 1; num < size; num++ {
		entry, ok := w.xref[num]
		if !ok {
			if err := w.write("0000000000 00000 f \n"); err != nil {
				return err
			}
			continue
		}
		if err := w.write(fmt.Sprintf("%010d 00000 n \n", entry.offset)); err != nil {
			return err
		}
	}

	trailer := NewDict()
	trailer.Set("Size", Integer(size))
	trailer.Set("Root", root)
	if err := w.write("trailer\n"); err != nil {
		return err
	}
	if err := w.write(trailer.WriteString()); err != nil {
		return err
	}
	if err := w.write(fmt.Sprintf("\nstartxref\n%d\n%%%%EOF", xrefStart)); err != nil {
		return err
	}

	w.state = stateClosed
	if w.poisoned {
		return fmt.Errorf("pdf: close after write failure: %w", quillerr.ErrWriteIO)
	}
	return w.buf.Flush()
}
