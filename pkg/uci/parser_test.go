package uci

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
)

func mustImport(t *testing.T, c *Context, text, name string) *Package {
	t.Helper()
	p, err := c.Import(strings.NewReader(text), name)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	return p
}

func TestImport_Basic(t *testing.T) {
	c := New()
	text := "package 'net'\n" +
		"config 'interface' 'lan'\n" +
		"option 'ifname' 'eth0'\n"

	p := mustImport(t, c, text, "")

	if p.Name() != "net" {
		t.Errorf("package name = %q, want %q", p.Name(), "net")
	}
	sec := p.Section("lan")
	if sec == nil {
		t.Fatal("section lan not found")
	}
	if sec.Type() != "interface" {
		t.Errorf("section type = %q, want %q", sec.Type(), "interface")
	}
	if sec.Anonymous() {
		t.Error("named section reported as anonymous")
	}

	got, err := c.LookupValue("net.lan.ifname")
	if err != nil {
		t.Fatalf("LookupValue() error = %v", err)
	}
	if got != "eth0" {
		t.Errorf("LookupValue() = %q, want %q", got, "eth0")
	}
}

func TestImport_PackageStatementWinsOverFallback(t *testing.T) {
	c := New()
	p := mustImport(t, c, "package 'net'\nconfig system main\n", "other")

	if p.Name() != "net" {
		t.Errorf("package name = %q, want %q", p.Name(), "net")
	}
	if _, err := c.Get("net"); err != nil {
		t.Errorf("Get(net) error = %v", err)
	}
	if _, err := c.Get("other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(other) error = %v, want ErrNotFound", err)
	}
}

func TestImport_FallbackName(t *testing.T) {
	c := New()
	p := mustImport(t, c, "config wifi-device radio0\n", "wireless")

	if p.Name() != "wireless" {
		t.Errorf("package name = %q, want %q", p.Name(), "wireless")
	}
}

func TestImport_NoNameAnywhere(t *testing.T) {
	c := New()
	_, err := c.Import(strings.NewReader("config system main\n"), "")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Import() error = %v, want ErrInvalid", err)
	}
}

func TestImport_BadFallbackName(t *testing.T) {
	c := New()
	_, err := c.Import(strings.NewReader("config system main\n"), "a.b")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Import() error = %v, want ErrInvalid", err)
	}
}

func TestImport_AnonymousSections(t *testing.T) {
	c := New()
	text := "config 'rule'\n" +
		"option 'target' 'ACCEPT'\n" +
		"config 'rule'\n" +
		"option 'target' 'DROP'\n"

	p := mustImport(t, c, text, "firewall")

	secs := p.Sections()
	if len(secs) != 2 {
		t.Fatalf("got %d sections, want 2", len(secs))
	}
	if secs[0].Name() == secs[1].Name() {
		t.Errorf("anonymous sections share name %q", secs[0].Name())
	}
	for i, want := range []string{"cfg0", "cfg1"} {
		if secs[i].Name() != want {
			t.Errorf("section %d name = %q, want %q", i, secs[i].Name(), want)
		}
		if !secs[i].Anonymous() {
			t.Errorf("section %d not marked anonymous", i)
		}
	}

	// Generated identifiers are addressable like ordinary names.
	got, err := c.LookupValue("firewall.cfg1.target")
	if err != nil {
		t.Fatalf("LookupValue() error = %v", err)
	}
	if got != "DROP" {
		t.Errorf("LookupValue() = %q, want %q", got, "DROP")
	}
}

func TestImport_Quoting(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"single quotes", "option v 'hello world'", "hello world"},
		{"double quotes", `option v "hello world"`, "hello world"},
		{"bare value", "option v eth0", "eth0"},
		{"mixed segments", "option v ab'cd ef'gh", "abcd efgh"},
		{"escaped quote", `option v 'it\'s'`, "it's"},
		{"escaped backslash", `option v 'a\\b'`, `a\b`},
		{"single inside double", `option v "don't"`, "don't"},
		{"empty value", "option v ''", ""},
		{"tabs between tokens", "option\tv\t'x'", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			p := mustImport(t, c, "config t s\n"+tt.line+"\n", "pkg")
			o := p.Section("s").Option("v")
			if o == nil {
				t.Fatal("option v not found")
			}
			if o.Value() != tt.want {
				t.Errorf("value = %q, want %q", o.Value(), tt.want)
			}
		})
	}
}

func TestImport_CommentsAndBlankLines(t *testing.T) {
	c := New()
	text := "# leading comment\n" +
		"\n" +
		"package net\n" +
		"   # indented comment, it's ignored whole\n" +
		"config interface lan\n" +
		"\t# comment with an unbalanced ' quote\n" +
		"option ifname eth0\n"

	p := mustImport(t, c, text, "")

	if got := len(p.Sections()); got != 1 {
		t.Fatalf("got %d sections, want 1", got)
	}
	if o := p.Section("lan").Option("ifname"); o == nil || o.Value() != "eth0" {
		t.Errorf("ifname = %v, want eth0", o)
	}
}

func TestImport_DuplicateNamedSectionContinues(t *testing.T) {
	c := New()
	text := "config interface lan\n" +
		"option ifname eth0\n" +
		"config interface lan\n" +
		"option proto static\n" +
		"option ifname eth1\n"

	p := mustImport(t, c, text, "net")

	if got := len(p.Sections()); got != 1 {
		t.Fatalf("got %d sections, want 1", got)
	}
	sec := p.Section("lan")
	if got := len(sec.Options()); got != 2 {
		t.Fatalf("got %d options, want 2", got)
	}
	// The re-declared option overwrote the first value in place.
	if got := sec.Options()[0].Value(); got != "eth1" {
		t.Errorf("ifname = %q, want %q", got, "eth1")
	}
	if got := sec.Option("proto").Value(); got != "static" {
		t.Errorf("proto = %q, want %q", got, "static")
	}
}

func TestImport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantReason string
		wantLine   int
	}{
		{"invalid command", "foo bar\n", "invalid command", 1},
		{"missing package name", "package\n", "missing package name", 1},
		{"invalid package name", "package 'a.b'\n", "invalid package name", 1},
		{"package after config", "config t s\npackage net\n", "package statement after config", 2},
		{"missing section type", "config\n", "missing section type", 1},
		{"invalid section type", "config 'a b' s\n", "invalid section type", 1},
		{"invalid section name", "config t 'a b'\n", "invalid section name", 1},
		{"too many config args", "config t s extra\n", "too many arguments", 1},
		{"missing option name", "config t s\noption\n", "missing option name", 2},
		{"invalid option name", "config t s\noption 'a b' v\n", "invalid option name", 2},
		{"missing option value", "config t s\noption ifname\n", "missing option value", 2},
		{"too many option args", "config t s\noption a b c\n", "too many arguments", 2},
		{"option without section", "option a b\n", "option without section", 1},
		{"unterminated quote", "config t s\noption a 'unclosed\n", "unterminated quote", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			_, err := c.Import(strings.NewReader(tt.text), "pkg")
			if err == nil {
				t.Fatal("Import() succeeded, want error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("error %v does not match ErrParse", err)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %v does not unwrap to *ParseError", err)
			}
			if pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
			if !strings.Contains(pe.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", pe.Reason, tt.wantReason)
			}
		})
	}
}

func TestImport_ErrorByteOffset(t *testing.T) {
	c := New()
	_, err := c.Import(strings.NewReader("option addr 10.0.0.1\n"), "pkg")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error %v does not unwrap to *ParseError", err)
	}
	// The diagnostic points at the option name token.
	if pe.Byte != 7 {
		t.Errorf("Byte = %d, want 7", pe.Byte)
	}
}

func TestImport_Atomic(t *testing.T) {
	c := New()
	mustImport(t, c, "config interface lan\noption ifname eth0\n", "net")

	// A failed re-import must leave the prior package untouched.
	bad := "config interface lan\noption ifname eth1\noption dns\n"
	if _, err := c.Import(strings.NewReader(bad), "net"); !errors.Is(err, ErrParse) {
		t.Fatalf("Import() error = %v, want ErrParse", err)
	}

	got, err := c.LookupValue("net.lan.ifname")
	if err != nil {
		t.Fatalf("LookupValue() error = %v", err)
	}
	if got != "eth0" {
		t.Errorf("ifname after failed import = %q, want %q", got, "eth0")
	}
}

func TestImport_FailureLeavesNothingResident(t *testing.T) {
	c := New()
	bad := "package net\nconfig interface lan\noption dns\n"
	if _, err := c.Import(strings.NewReader(bad), ""); err == nil {
		t.Fatal("Import() succeeded, want error")
	}
	if got := c.Names(); len(got) != 0 {
		t.Errorf("resident packages after failed import = %v, want none", got)
	}
}

func TestParseError_Message(t *testing.T) {
	e := &ParseError{Name: "net", Line: 3, Byte: 7, Reason: "invalid command"}

	want := "net: invalid command at line 3, byte 7"
	if got := e.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(e, ErrParse) {
		t.Error("ParseError does not match ErrParse")
	}
}
