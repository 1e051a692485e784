package uci

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
)

// Export writes the canonical text form of pkg to w. A nil pkg exports
// every resident package in context order. Values are always quoted on
// output regardless of how the source text quoted them, so exporting
// is a normalization: re-importing an export yields a structurally
// equal package, and exporting that again is byte-identical.
func (c *Context) Export(w io.Writer, pkg *Package) error {
	bw := bufio.NewWriter(w)
	if pkg != nil {
		writePackage(bw, pkg)
	} else {
		for _, p := range c.packages {
			writePackage(bw, p)
		}
	}
	if err := bw.Flush(); err != nil {
		return c.fail(errors.Wrapf(ErrIO, "exporting: %v", err))
	}
	c.lastErr = nil
	return nil
}

func writePackage(w *bufio.Writer, p *Package) {
	fmt.Fprintf(w, "package %s\n\n", quote(p.name))
	for _, s := range p.sections {
		if s.anonymous {
			fmt.Fprintf(w, "config %s\n", s.typ)
		} else {
			fmt.Fprintf(w, "config %s %s\n", s.typ, quote(s.name))
		}
		for _, o := range s.options {
			fmt.Fprintf(w, "\toption %s %s\n", o.name, quote(o.value))
		}
		w.WriteByte('\n')
	}
}

// quote wraps v in single quotes, escaping embedded quote characters
// and backslashes so the parser reads back the exact value.
func quote(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 2)
	b.WriteByte('\'')
	for i := 0; i < len(v); i++ {
		if v[i] == '\'' || v[i] == '\\' {
			b.WriteByte('\\')
		}
		b.WriteByte(v[i])
	}
	b.WriteByte('\'')
	return b.String()
}
