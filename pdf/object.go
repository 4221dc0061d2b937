// Package pdf implements the indirect-object model and streaming writer
// that backs quill's PDF emission: primitive PDF objects, a cross-reference
// table builder, and a single-pass serializer. It does not parse existing
// PDF files — quill only produces documents.
package pdf

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Object is the interface every PDF primitive implements.
type Object interface {
	// WriteString renders the primitive exactly as it appears in the file.
	WriteString() string
}

// Bool is the PDF boolean primitive.
type Bool bool

func (b Bool) WriteString() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer is the PDF integer numeric primitive.
type Integer int64

func (i Integer) WriteString() string { return strconv.FormatInt(int64(i), 10) }

// Real is the PDF real numeric primitive. Per spec, values are emitted with
// at most 4 fractional digits, trailing zeros trimmed, and -0 normalized to 0.
type Real float64

func (r Real) WriteString() string { return FormatNumber(float64(r)) }

// FormatNumber renders a float the way a PDF content stream or object value
// requires: at most 4 fractional digits, no trailing zeros or dangling dot,
// and never "-0".
func FormatNumber(v float64) string {
	if math.Abs(v) < 5e-5 {
		return "0"
	}
	s := strconv.FormatFloat(v, 'f', 4, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

// Name is the PDF name primitive, e.g. /Type.
type Name string

func (n Name) WriteString() string {
	var b strings.Builder
	b.WriteByte('/')
	for i := 0; i < len(n); i++ {
		c := n[i]
		if c <= 0x20 || c >= 0x7f || c == '#' || strings.IndexByte("()<>[]{}/%", c) >= 0 {
			fmt.Fprintf(&b, "#%02x", c)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// String is the PDF string primitive, written either in literal "(...)"
// form with byte-level escaping, or in hex "<...>" form.
type String struct {
	Val   string
	IsHex bool
}

// NewString returns a literal string object.
func NewString(s string) String { return String{Val: s} }

// NewHexString returns a hex string object, the form CID-keyed show-text
// operands use.
func NewHexString(s string) String { return String{Val: s, IsHex: true} }

func (s String) WriteString() string {
	if s.IsHex {
		return "<" + hex.EncodeToString([]byte(s.Val)) + ">"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < len(s.Val); i++ {
		c := s.Val[i]
		switch c {
		case '(', ')', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte(')')
	return b.String()
}

// Null is the PDF null primitive.
type Null struct{}

func (Null) WriteString() string { return "null" }

// Ref is an object id reserved ahead of content being ready. Pages and their
// parent Pages node may reference each other cyclically; both sides hold a
// Ref before either is emitted (see Writer.NewRef).
type Ref struct {
	Num int
}

func (r Ref) WriteString() string { return fmt.Sprintf("%d 0 R", r.Num) }

// Array is the PDF array primitive.
type Array struct {
	items []Object
}

func NewArray(items ...Object) *Array { return &Array{items: items} }

func (a *Array) Append(o Object) *Array { a.items = append(a.items, o); return a }
func (a *Array) Len() int               { return len(a.items) }
func (a *Array) Items() []Object        { return a.items }

func (a *Array) WriteString() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, o := range a.items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(o.WriteString())
	}
	b.WriteByte(']')
	return b.String()
}

// Dictionary is the PDF dictionary primitive. Insertion order is preserved
// so emitted files are deterministic (P4).
type Dictionary struct {
	keys []Name
	vals map[Name]Object
}

// NewDict returns an empty dictionary.
func NewDict() *Dictionary {
	return &Dictionary{vals: map[Name]Object{}}
}

// Set assigns key to value, preserving first-insertion order on update.
func (d *Dictionary) Set(key Name, value Object) *Dictionary {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.vals[key] = value
	return d
}

// Get returns the value for key, or nil.
func (d *Dictionary) Get(key Name) Object { return d.vals[key] }

// Keys returns the dictionary's keys in insertion order.
func (d *Dictionary) Keys() []Name { return d.keys }

func (d *Dictionary) WriteString() string {
	var b strings.Builder
	b.WriteString("<<")
	for _, k := range d.keys {
		b.WriteByte(' ')
		b.WriteString(k.WriteString())
		b.WriteByte(' ')
		b.WriteString(d.vals[k].WriteString())
	}
	b.WriteString(" >>")
	return b.String()
}
