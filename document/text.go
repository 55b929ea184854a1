package document

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arloliu/bdoc/format"
)

// String renders the document in the text grammar accepted by the parser:
//
//	{"name": "bdoc", "count": 3, "big": NumberLong(5000000000), "at": Datetime(1000000)}
//
// Int64 values are wrapped in NumberLong and integral doubles keep a
// fractional part so the parser's number narrowing picks the stored types.
// Parsing the result yields a byte-identical document as long as every array
// names its elements "0", "1", ...; arrays are rendered as lists, so other
// element names are not kept.
func (d Document) String() string {
	var sb strings.Builder
	sb.Grow(d.TotalSize() * 2)
	writeDocumentText(&sb, d, false)

	return sb.String()
}

// String renders the array in the text grammar, as a bracketed list.
func (a Array) String() string {
	var sb strings.Builder
	sb.Grow(a.TotalSize() * 2)
	writeDocumentText(&sb, a.Document, true)

	return sb.String()
}

// String renders the field as `"name": value`.
func (f Field) String() string {
	if f.IsEOO() {
		return "EOO"
	}

	var sb strings.Builder
	writeQuoted(&sb, f.RawName())
	sb.WriteString(": ")
	writeValueText(&sb, f)

	return sb.String()
}

// ValueString renders only the value of the field in the text grammar.
func (f Field) ValueString() string {
	var sb strings.Builder
	writeValueText(&sb, f)

	return sb.String()
}

func writeDocumentText(sb *strings.Builder, d Document, array bool) {
	open, closing := byte('{'), byte('}')
	if array {
		open, closing = '[', ']'
	}

	sb.WriteByte(open)
	for i, f := range d.All() {
		if i > 0 {
			sb.WriteString(", ")
		}
		if !array {
			writeQuoted(sb, f.RawName())
			sb.WriteString(": ")
		}
		writeValueText(sb, f)
	}
	sb.WriteByte(closing)
}

func writeValueText(sb *strings.Builder, f Field) {
	var scratch [32]byte

	switch f.Type() {
	case format.TypeDouble:
		writeDouble(sb, f.Double())
	case format.TypeString:
		writeQuoted(sb, f.RawString())
	case format.TypeObject:
		writeDocumentText(sb, f.embedded(), false)
	case format.TypeArray:
		writeDocumentText(sb, f.embedded(), true)
	case format.TypeBoolean:
		sb.WriteString(strconv.FormatBool(f.Bool()))
	case format.TypeNull:
		sb.WriteString("null")
	case format.TypeInt32:
		sb.Write(strconv.AppendInt(scratch[:0], int64(f.Int32()), 10))
	case format.TypeDatetime:
		sb.WriteString("Datetime(")
		sb.Write(strconv.AppendInt(scratch[:0], f.Datetime().Micros(), 10))
		sb.WriteByte(')')
	case format.TypeInt64:
		sb.WriteString("NumberLong(")
		sb.Write(strconv.AppendInt(scratch[:0], f.Int64(), 10))
		sb.WriteByte(')')
	default:
		sb.WriteString(f.Type().String())
	}
}

func writeDouble(sb *strings.Builder, v float64) {
	switch {
	case math.IsNaN(v):
		sb.WriteString("NaN")
		return
	case math.IsInf(v, 1):
		sb.WriteString("Infinity")
		return
	case math.IsInf(v, -1):
		sb.WriteString("-Infinity")
		return
	}

	var scratch [32]byte
	out := strconv.AppendFloat(scratch[:0], v, 'g', -1, 64)
	sb.Write(out)
	if !strings.ContainsAny(string(out), ".eE") {
		sb.WriteString(".0")
	}
}

const hexDigits = "0123456789abcdef"

// writeQuoted writes s as a double-quoted string using the escapes the
// parser understands. Bytes that are not valid UTF-8 are written as is.
func writeQuoted(sb *strings.Builder, s []byte) {
	sb.WriteByte('"')
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			_, size := utf8.DecodeRune(s[i:])
			sb.Write(s[i : i+size])
			i += size

			continue
		}

		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if c < 0x20 {
				sb.WriteString(`\u00`)
				sb.WriteByte(hexDigits[c>>4])
				sb.WriteByte(hexDigits[c&0xf])
			} else {
				sb.WriteByte(c)
			}
		}
		i++
	}
	sb.WriteByte('"')
}

// Dump renders the document structure for debugging, one field per line with
// its offset, type, name, size and value. Embedded documents are indented.
//
//	document (24 bytes)
//	  @4    Int32    "a" 7 bytes: 1
//	  @11   Object   "b" 12 bytes
//	    @4    Boolean  "c" 4 bytes: true
func (d Document) Dump() string {
	var sb strings.Builder
	sb.WriteString("document (")
	sb.WriteString(strconv.Itoa(d.TotalSize()))
	sb.WriteString(" bytes)\n")
	dumpFields(&sb, d, 1)

	return sb.String()
}

func dumpFields(sb *strings.Builder, d Document, depth int) {
	indent := strings.Repeat("  ", depth)
	for f := range d.Fields() {
		sb.WriteString(indent)
		sb.WriteString(padRight("@"+strconv.Itoa(f.Offset()), 6))
		sb.WriteString(padRight(f.Type().String(), 9))
		writeQuoted(sb, f.RawName())
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(f.Size()))
		sb.WriteString(" bytes")

		if f.Type().IsEmbedded() {
			sb.WriteByte('\n')
			dumpFields(sb, f.embedded(), depth+1)

			continue
		}
		sb.WriteString(": ")
		writeValueText(sb, f)
		sb.WriteByte('\n')
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s + " "
	}

	return s + strings.Repeat(" ", width-len(s))
}
