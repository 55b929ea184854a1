// Package parser converts the bdoc text grammar into binary documents.
//
// The grammar is JSON with single-quoted strings, unquoted field names and a
// few typed literals:
//
//	value  ::= object | array | string | true | false | null | undefined
//	         | NaN | Infinity | -Infinity
//	         | Datetime '(' integer | string ')'
//	         | NumberInt '(' integer ')'
//	         | NumberLong '(' integer ')'
//	         | number
//	object ::= '{' '}' | '{' pair (',' pair)* '}'
//	array  ::= '[' ']' | '[' value (',' value)* ']'
//	pair   ::= field ':' value
//	field  ::= quotedString | [A-Za-z$_][A-Za-z0-9$_]*
//
// The root must be an object or an array. A root array becomes a document
// whose fields are named "0", "1", ...
//
// Numbers without a fraction or exponent become Int32 when they fit, then
// Int64, then Double. Numbers with a fraction or exponent become Double.
// Datetime takes microseconds since the Unix epoch, or a quoted timestamp
// such as "2024-05-01 12:00:00" which is read in UTC unless it carries an
// offset.
//
// The parser writes straight into a document.Builder while it scans; there is
// no intermediate tree. It stops at the first error.
package parser

import (
	"math"
	"strconv"

	"github.com/buger/jsonparser"
	"github.com/cockroachdb/errors"
	"github.com/golang-module/carbon/v2"

	"github.com/arloliu/bdoc/document"
	"github.com/arloliu/bdoc/errs"
	"github.com/arloliu/bdoc/internal/collision"
	"github.com/arloliu/bdoc/internal/options"
	"github.com/arloliu/bdoc/internal/pool"
)

// Parse parses input into a new document.
//
// Parameters:
//   - input: Text in the bdoc grammar; it is read, never retained
//   - opts: Optional parser configuration
//
// Returns:
//   - document.Document: The parsed document
//   - error: A *ParseError (matching errs.ErrFailedToParse) or an invalid option error
func Parse(input []byte, opts ...Option) (document.Document, error) {
	b := document.NewBuilder()
	if err := ParseInto(input, b, opts...); err != nil {
		return document.Document{}, err
	}

	return b.Done(), nil
}

// ParseString is like Parse for string input.
func ParseString(input string, opts ...Option) (document.Document, error) {
	return Parse([]byte(input), opts...)
}

// ParseInto parses input and appends the root's fields to b.
//
// The builder is not finished, so callers may append more fields before
// calling Done. On error b holds the fields parsed before the failure.
func ParseInto(input []byte, b *document.Builder, opts ...Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	p := &parser{
		input:   input,
		cfg:     cfg,
		scratch: pool.GetScratchBuffer(),
	}
	defer pool.PutScratchBuffer(p.scratch)

	return p.parse(b)
}

type parser struct {
	input   []byte
	pos     int
	depth   int
	cfg     *config
	scratch *pool.ByteBuffer

	// one name tracker per open object, indexed by depth
	trackers []*collision.Tracker
}

func (p *parser) parse(b *document.Builder) error {
	var err error
	switch {
	case p.advance("{"):
		err = p.parseObject(b)
	case p.advance("["):
		err = p.parseArray(b)
	default:
		return p.errorf("Expecting { or [")
	}
	if err != nil {
		return err
	}

	p.skipSpace()
	if p.pos < len(p.input) {
		return p.errorf("Unexpected trailing input")
	}

	return nil
}

// errorf reports msg at the next non-whitespace byte.
func (p *parser) errorf(msg string) error {
	p.skipSpace()
	return newParseError(msg, p.input, p.pos)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && isSpace(p.input[p.pos]) {
		p.pos++
	}
}

// peekByte returns the next non-whitespace byte without consuming it.
func (p *parser) peekByte() (byte, bool) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return 0, false
	}

	return p.input[p.pos], true
}

// advance consumes token if it is the next non-whitespace text. On mismatch
// the position is left where it was.
func (p *parser) advance(token string) bool {
	pos := p.pos
	for pos < len(p.input) && isSpace(p.input[pos]) {
		pos++
	}
	if len(p.input)-pos < len(token) || string(p.input[pos:pos+len(token)]) != token {
		return false
	}
	p.pos = pos + len(token)

	return true
}

func (p *parser) enter() error {
	if p.depth >= p.cfg.maxDepth {
		return p.errorf("Exceeded maximum nesting depth of " + strconv.Itoa(p.cfg.maxDepth))
	}
	p.depth++

	return nil
}

func (p *parser) leave() {
	p.depth--
}

// parseObject parses the members of an object whose '{' has been consumed.
func (p *parser) parseObject(b *document.Builder) error {
	if p.advance("}") {
		return nil
	}

	var names *collision.Tracker
	if p.cfg.rejectDuplicates {
		names = p.tracker()
	}

	for {
		start := p.pos
		name, err := p.parseFieldName()
		if err != nil {
			return err
		}
		if names != nil {
			if err := names.Track(name); err != nil {
				p.pos = start
				return errors.Mark(p.errorf("Duplicate field name "+strconv.Quote(name)), errs.ErrDuplicateFieldName)
			}
		}

		if !p.advance(":") {
			return p.errorf("Expecting :")
		}
		if err := p.parseValue(name, b); err != nil {
			return err
		}

		if p.advance(",") {
			continue
		}
		if p.advance("}") {
			return nil
		}

		return p.errorf("Expecting } or ,")
	}
}

// tracker returns the name tracker for the object at the current depth,
// emptied of names left by a previous sibling.
func (p *parser) tracker() *collision.Tracker {
	for len(p.trackers) <= p.depth {
		p.trackers = append(p.trackers, collision.NewTracker())
	}
	t := p.trackers[p.depth]
	t.Reset()

	return t
}

// parseArray parses the elements of an array whose '[' has been consumed.
func (p *parser) parseArray(b *document.Builder) error {
	if p.advance("]") {
		return nil
	}

	for i := 0; ; i++ {
		if err := p.parseValue(strconv.Itoa(i), b); err != nil {
			return err
		}

		if p.advance(",") {
			continue
		}
		if p.advance("]") {
			return nil
		}

		return p.errorf("Expecting ] or ,")
	}
}

func isFieldStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '$' || c == '_'
}

func isFieldChar(c byte) bool {
	return isFieldStart(c) || (c >= '0' && c <= '9')
}

func (p *parser) parseFieldName() (string, error) {
	c, ok := p.peekByte()
	if !ok {
		return "", p.errorf("Expecting field name")
	}

	if c == '"' || c == '\'' {
		start := p.pos
		raw, err := p.parseQuoted()
		if err != nil {
			return "", err
		}
		if len(raw) == 0 {
			p.pos = start
			return "", p.errorf("Field name must not be empty")
		}
		for _, ch := range raw {
			if ch == 0 {
				p.pos = start
				return "", p.errorf("Field name must not contain NUL")
			}
		}

		return string(raw), nil
	}

	if !isFieldStart(c) {
		return "", p.errorf("First character in field must be [A-Za-z$_]")
	}
	start := p.pos
	p.pos++
	for p.pos < len(p.input) && isFieldChar(p.input[p.pos]) {
		p.pos++
	}

	return string(p.input[start:p.pos]), nil
}

// parseQuoted parses a single- or double-quoted string at the current
// position and returns its unescaped bytes. The result lives in the scratch
// buffer and is only valid until the next call.
func (p *parser) parseQuoted() ([]byte, error) {
	quote := p.input[p.pos]
	p.pos++
	p.scratch.Reset()

	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == quote:
			p.pos++
			return p.scratch.Bytes(), nil

		case c == '\\':
			if p.pos+1 >= len(p.input) {
				p.pos = len(p.input)
				return nil, p.errorf("Unexpected end of input")
			}
			if err := p.parseEscape(); err != nil {
				return nil, err
			}

		default:
			p.scratch.AppendByte(c)
			p.pos++
		}
	}

	return nil, p.errorf("Unexpected end of input")
}

// parseEscape decodes the escape sequence at the current position.
func (p *parser) parseEscape() error {
	e := p.input[p.pos+1]
	switch e {
	case 'b':
		p.scratch.AppendByte('\b')
	case 'f':
		p.scratch.AppendByte('\f')
	case 'n':
		p.scratch.AppendByte('\n')
	case 'r':
		p.scratch.AppendByte('\r')
	case 't':
		p.scratch.AppendByte('\t')
	case 'u':
		if p.cfg.unicodeEscapes {
			return p.parseUnicodeEscape()
		}
		p.scratch.AppendByte(e)
	default:
		// \" \\ \/ \' and unknown escapes all stand for the escaped byte.
		p.scratch.AppendByte(e)
	}
	p.pos += 2

	return nil
}

const (
	highSurrogateFirst = 0xD800
	highSurrogateLast  = 0xDBFF
	unicodeEscapeLen   = len(`\uXXXX`)
)

func (p *parser) parseUnicodeEscape() error {
	if len(p.input)-p.pos < unicodeEscapeLen {
		return p.errorf(`Invalid \u escape`)
	}

	n := unicodeEscapeLen
	code, err := strconv.ParseUint(string(p.input[p.pos+2:p.pos+unicodeEscapeLen]), 16, 32)
	if err != nil {
		return p.errorf(`Invalid \u escape`)
	}
	if code >= highSurrogateFirst && code <= highSurrogateLast {
		n = min(2*unicodeEscapeLen, len(p.input)-p.pos)
	}

	var out [2 * unicodeEscapeLen]byte
	decoded, err := jsonparser.Unescape(p.input[p.pos:p.pos+n], out[:])
	if err != nil {
		return p.errorf(`Invalid \u escape`)
	}
	p.scratch.AppendBytes(decoded)
	p.pos += n

	return nil
}

func (p *parser) parseValue(name string, b *document.Builder) error {
	c, ok := p.peekByte()
	if !ok {
		return p.errorf("Expecting a value")
	}

	switch c {
	case '{':
		return p.parseEmbedded(name, b, false)
	case '[':
		return p.parseEmbedded(name, b, true)
	case '"', '\'':
		s, err := p.parseQuoted()
		if err != nil {
			return err
		}
		b.AppendStringBytes(name, s)

		return nil
	}

	switch {
	case p.advance("true"):
		b.AppendBool(name, true)
	case p.advance("false"):
		b.AppendBool(name, false)
	case p.advance("null"), p.advance("undefined"):
		b.AppendNull(name)
	case p.advance("NaN"):
		b.AppendDouble(name, math.NaN())
	case p.advance("Infinity"):
		b.AppendDouble(name, math.Inf(1))
	case p.advance("-Infinity"):
		b.AppendDouble(name, math.Inf(-1))
	case p.advance("Datetime"):
		return p.parseDatetime(name, b)
	case p.advance("NumberInt"):
		v, err := p.parseWrappedInteger(32)
		if err != nil {
			return err
		}
		b.AppendInt32(name, int32(v))
	case p.advance("NumberLong"):
		v, err := p.parseWrappedInteger(64)
		if err != nil {
			return err
		}
		b.AppendInt64(name, v)
	default:
		return p.parseNumber(name, b)
	}

	return nil
}

// parseEmbedded builds the object or array opening at the current position in
// a pooled sub-builder and splices the finished bytes into b.
func (p *parser) parseEmbedded(name string, b *document.Builder, array bool) error {
	if err := p.enter(); err != nil {
		return err
	}
	defer p.leave()
	p.pos++

	sub := document.NewBuilder(document.WithPooledBuffer(true))
	defer sub.Discard()

	var err error
	if array {
		err = p.parseArray(sub)
	} else {
		err = p.parseObject(sub)
	}
	if err != nil {
		return err
	}

	sub.DoneFast()
	if array {
		b.AppendArrayBytes(name, sub.Bytes())
	} else {
		b.AppendObjectBytes(name, sub.Bytes())
	}

	return nil
}

func (p *parser) parseDatetime(name string, b *document.Builder) error {
	if !p.advance("(") {
		return p.errorf("Expecting (")
	}

	c, ok := p.peekByte()
	if !ok {
		return p.errorf("Expecting Datetime value")
	}

	var micros int64
	if c == '"' || c == '\'' {
		start := p.pos
		text, err := p.parseQuoted()
		if err != nil {
			return err
		}
		ts := carbon.Parse(string(text), "UTC")
		if ts.Error != nil {
			p.pos = start
			return p.errorf("Invalid Datetime text")
		}
		micros = ts.ToStdTime().UnixMicro()
	} else {
		v, err := p.parseInteger(64)
		if err != nil {
			return err
		}
		micros = v
	}

	if !p.advance(")") {
		return p.errorf("Expecting )")
	}
	b.AppendDatetime(name, document.Datetime(micros))

	return nil
}

// parseWrappedInteger parses '(' integer ')' after NumberInt or NumberLong.
func (p *parser) parseWrappedInteger(bitSize int) (int64, error) {
	if !p.advance("(") {
		return 0, p.errorf("Expecting (")
	}
	v, err := p.parseInteger(bitSize)
	if err != nil {
		return 0, err
	}
	if !p.advance(")") {
		return 0, p.errorf("Expecting )")
	}

	return v, nil
}

// scanInteger advances over an optionally signed run of digits and returns
// the number of digits seen.
func (p *parser) scanInteger() int {
	if p.pos < len(p.input) && (p.input[p.pos] == '-' || p.input[p.pos] == '+') {
		p.pos++
	}

	return p.scanDigits()
}

func (p *parser) scanDigits() int {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}

	return p.pos - start
}

func (p *parser) parseInteger(bitSize int) (int64, error) {
	p.skipSpace()
	start := p.pos
	if p.scanInteger() == 0 {
		p.pos = start
		return 0, p.errorf("Expecting an integer")
	}

	v, err := strconv.ParseInt(string(p.input[start:p.pos]), 10, bitSize)
	if err != nil {
		p.pos = start
		return 0, p.errorf("Integer out of range")
	}

	return v, nil
}

func (p *parser) parseNumber(name string, b *document.Builder) error {
	p.skipSpace()
	start := p.pos
	if p.pos < len(p.input) && p.input[p.pos] == '-' {
		p.pos++
	}
	if p.scanDigits() == 0 {
		p.pos = start
		return p.errorf("Expecting a value")
	}

	isFloat := false
	if p.pos < len(p.input) && p.input[p.pos] == '.' {
		isFloat = true
		p.pos++
		p.scanDigits()
	}
	if p.pos < len(p.input) && (p.input[p.pos] == 'e' || p.input[p.pos] == 'E') {
		isFloat = true
		p.pos++
		if p.scanInteger() == 0 {
			return p.errorf("Expecting exponent digits")
		}
	}

	text := string(p.input[start:p.pos])
	if !isFloat {
		if v, err := strconv.ParseInt(text, 10, 64); err == nil {
			if v >= math.MinInt32 && v <= math.MaxInt32 {
				b.AppendInt32(name, int32(v))
			} else {
				b.AppendInt64(name, v)
			}

			return nil
		}
	}

	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		p.pos = start
		return p.errorf("Number out of range")
	}
	b.AppendDouble(name, v)

	return nil
}
