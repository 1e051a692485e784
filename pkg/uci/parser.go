package uci

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// commentMarker starts a full-line comment.
const commentMarker = '#'

// Import parses configuration text from r into a new package and makes
// it resident, replacing any prior package of the same name. The name
// argument is the fallback used when the text carries no package
// statement.
//
// Import is atomic with respect to the context: on a parse or read
// failure no partially built package becomes visible and the resident
// set is exactly as it was before the call.
func (c *Context) Import(r io.Reader, name string) (*Package, error) {
	if name != "" && !ValidName(name) {
		return nil, c.fail(errors.Wrapf(ErrInvalid, "bad package name %q", name))
	}

	p := &Package{name: name}
	ps := &parseState{pkg: p}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ps.line++
		if err := ps.parseLine(scanner.Text()); err != nil {
			return nil, c.fail(err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, c.fail(errors.Wrapf(ErrIO, "reading %q: %v", name, err))
	}
	if p.name == "" {
		return nil, c.fail(errors.Wrap(ErrInvalid, "config carries no package name and no fallback was given"))
	}

	c.adopt(p)
	c.lastErr = nil
	return p, nil
}

// parseState tracks the package and section under construction plus
// the position information used for diagnostics.
type parseState struct {
	pkg  *Package
	sec  *Section
	line int
}

func (ps *parseState) errAt(at int, reason string) error {
	return &ParseError{
		Name:   ps.pkg.name,
		Line:   ps.line,
		Byte:   at,
		Reason: reason,
	}
}

func (ps *parseState) parseLine(text string) error {
	trimmed := strings.TrimLeft(text, " \t\r")
	if trimmed == "" || trimmed[0] == commentMarker {
		return nil
	}

	lx := &lexer{src: text}
	cmd, at, _, err := lx.next()
	if err != nil {
		return ps.errAt(at, err.Error())
	}

	switch cmd {
	case "package":
		return ps.parsePackage(lx)
	case "config":
		return ps.parseConfig(lx)
	case "option":
		return ps.parseOption(lx)
	default:
		return ps.errAt(at, "invalid command")
	}
}

// requireEOL fails when unconsumed tokens remain on the line.
func (ps *parseState) requireEOL(lx *lexer) error {
	_, at, ok, err := lx.next()
	if err != nil {
		return ps.errAt(at, err.Error())
	}
	if ok {
		return ps.errAt(at, "too many arguments")
	}
	return nil
}

func (ps *parseState) parsePackage(lx *lexer) error {
	name, at, ok, err := lx.next()
	if err != nil {
		return ps.errAt(at, err.Error())
	}
	if !ok {
		return ps.errAt(lx.pos, "missing package name")
	}
	if !ValidName(name) {
		return ps.errAt(at, "invalid package name")
	}
	if len(ps.pkg.sections) > 0 {
		return ps.errAt(at, "package statement after config")
	}
	if err := ps.requireEOL(lx); err != nil {
		return err
	}
	ps.pkg.name = name
	return nil
}

func (ps *parseState) parseConfig(lx *lexer) error {
	typ, at, ok, err := lx.next()
	if err != nil {
		return ps.errAt(at, err.Error())
	}
	if !ok {
		return ps.errAt(lx.pos, "missing section type")
	}
	if !ValidName(typ) {
		return ps.errAt(at, "invalid section type")
	}

	name, nameAt, named, err := lx.next()
	if err != nil {
		return ps.errAt(nameAt, err.Error())
	}
	if named {
		if !ValidName(name) {
			return ps.errAt(nameAt, "invalid section name")
		}
		if err := ps.requireEOL(lx); err != nil {
			return err
		}
		// Redeclaring a named section continues it rather than
		// creating a duplicate sibling.
		if existing := ps.pkg.Section(name); existing != nil {
			ps.sec = existing
			return nil
		}
		ps.sec = ps.pkg.newSection(typ, name)
		return nil
	}

	ps.sec = ps.pkg.newSection(typ, "")
	return nil
}

func (ps *parseState) parseOption(lx *lexer) error {
	name, at, ok, err := lx.next()
	if err != nil {
		return ps.errAt(at, err.Error())
	}
	if !ok {
		return ps.errAt(lx.pos, "missing option name")
	}
	if !ValidName(name) {
		return ps.errAt(at, "invalid option name")
	}

	value, valAt, ok, err := lx.next()
	if err != nil {
		return ps.errAt(valAt, err.Error())
	}
	if !ok {
		return ps.errAt(lx.pos, "missing option value")
	}
	if err := ps.requireEOL(lx); err != nil {
		return err
	}
	if ps.sec == nil {
		return ps.errAt(at, "option without section")
	}

	// Re-setting an option inside one config block overwrites it.
	if existing := ps.sec.Option(name); existing != nil {
		existing.value = value
		return nil
	}
	ps.sec.newOption(name, value)
	return nil
}

// lexer splits one line into whitespace-separated tokens. A token may
// mix bare and quoted segments; inside quotes the matching quote
// character and the backslash are escapable with a backslash.
type lexer struct {
	src string
	pos int
}

var errUnterminated = errors.New("unterminated quote")

// next returns the next token and the byte offset it starts at. ok is
// false at end of line.
func (lx *lexer) next() (tok string, start int, ok bool, err error) {
	for lx.pos < len(lx.src) && isSpace(lx.src[lx.pos]) {
		lx.pos++
	}
	if lx.pos >= len(lx.src) {
		return "", lx.pos, false, nil
	}

	start = lx.pos
	var b strings.Builder
	for lx.pos < len(lx.src) && !isSpace(lx.src[lx.pos]) {
		ch := lx.src[lx.pos]
		if ch == '\'' || ch == '"' {
			if err := lx.quoted(ch, &b); err != nil {
				return "", start, false, err
			}
			continue
		}
		b.WriteByte(ch)
		lx.pos++
	}
	return b.String(), start, true, nil
}

// quoted consumes a quote-delimited segment, appending its unescaped
// content to b. lx.pos is on the opening quote on entry and past the
// closing quote on return.
func (lx *lexer) quoted(quote byte, b *strings.Builder) error {
	lx.pos++ // opening quote
	for lx.pos < len(lx.src) {
		ch := lx.src[lx.pos]
		switch {
		case ch == quote:
			lx.pos++
			return nil
		case ch == '\\' && lx.pos+1 < len(lx.src) &&
			(lx.src[lx.pos+1] == quote || lx.src[lx.pos+1] == '\\'):
			b.WriteByte(lx.src[lx.pos+1])
			lx.pos += 2
		default:
			b.WriteByte(ch)
			lx.pos++
		}
	}
	return errUnterminated
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r'
}
