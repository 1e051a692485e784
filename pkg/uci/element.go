package uci

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind identifies the concrete type of a tree element.
type Kind int

const (
	KindPackage Kind = iota
	KindSection
	KindOption
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPackage:
		return "package"
	case KindSection:
		return "section"
	case KindOption:
		return "option"
	default:
		return "unknown"
	}
}

// Element is the identity shared by all tree nodes. Concrete types are
// [*Package], [*Section] and [*Option]; convert with [ToPackage],
// [ToSection] and [ToOption], which fail instead of panicking on a
// kind mismatch.
type Element interface {
	Kind() Kind
	Name() string
}

// ToPackage converts e to a *Package.
func ToPackage(e Element) (*Package, error) {
	p, ok := e.(*Package)
	if !ok {
		return nil, castError(e, KindPackage)
	}
	return p, nil
}

// ToSection converts e to a *Section.
func ToSection(e Element) (*Section, error) {
	s, ok := e.(*Section)
	if !ok {
		return nil, castError(e, KindSection)
	}
	return s, nil
}

// ToOption converts e to an *Option.
func ToOption(e Element) (*Option, error) {
	o, ok := e.(*Option)
	if !ok {
		return nil, castError(e, KindOption)
	}
	return o, nil
}

func castError(e Element, want Kind) error {
	if e == nil {
		return errors.Wrap(ErrInvalid, "nil element")
	}
	return errors.Wrapf(ErrTypeMismatch, "cannot convert %s %q to %s", e.Kind(), e.Name(), want)
}

// Package is the root of one configuration namespace. It owns its
// sections in insertion order and carries the journal of unreverted,
// uncommitted mutations.
type Package struct {
	name string
	ctx  *Context

	sections []*Section
	history  []journalEntry

	// nextID mints anonymous section identifiers. It only ever
	// increases, so retired identifiers are never reissued.
	nextID int
}

// Kind returns KindPackage.
func (p *Package) Kind() Kind { return KindPackage }

// Name returns the package name.
func (p *Package) Name() string { return p.name }

// Sections returns the sections in insertion order. The returned slice
// is a snapshot: removing elements (including the current one) while
// ranging over it does not disturb the traversal.
func (p *Package) Sections() []*Section {
	out := make([]*Section, len(p.sections))
	copy(out, p.sections)
	return out
}

// Section returns the named section, or nil if absent. Anonymous
// sections are addressable by their generated identifier.
func (p *Package) Section(name string) *Section {
	for _, s := range p.sections {
		if s.name == name {
			return s
		}
	}
	return nil
}

// attach appends s to the section list without touching the journal.
func (p *Package) attach(s *Section) {
	s.pkg = p
	p.sections = append(p.sections, s)
}

// insert places s at index i, clamping to the current list bounds.
func (p *Package) insert(s *Section, i int) {
	if i < 0 || i > len(p.sections) {
		i = len(p.sections)
	}
	s.pkg = p
	p.sections = append(p.sections, nil)
	copy(p.sections[i+1:], p.sections[i:])
	p.sections[i] = s
}

// detach removes s from the section list and clears its parent link.
// It returns the index s occupied, or -1 if s was not attached.
func (p *Package) detach(s *Section) int {
	for i, cur := range p.sections {
		if cur == s {
			p.sections = append(p.sections[:i], p.sections[i+1:]...)
			s.pkg = nil
			return i
		}
	}
	return -1
}

// mintAnonymousName returns the next generated section identifier.
// Identifiers are never reused, even after the section that held one
// is removed.
func (p *Package) mintAnonymousName() string {
	name := fmt.Sprintf("cfg%d", p.nextID)
	p.nextID++
	return name
}

// newSection builds a section without journaling. Used by the parser
// and by the journaled mutators.
func (p *Package) newSection(typ, name string) *Section {
	s := &Section{typ: typ, name: name}
	if name == "" {
		s.name = p.mintAnonymousName()
		s.anonymous = true
	}
	p.attach(s)
	return s
}

// Section is a named or anonymous group of options tagged with a
// section type. The type string is opaque to the engine.
type Section struct {
	pkg *Package

	typ       string
	name      string
	anonymous bool

	options []*Option
}

// Kind returns KindSection.
func (s *Section) Kind() Kind { return KindSection }

// Name returns the section name. For anonymous sections this is the
// generated identifier.
func (s *Section) Name() string { return s.name }

// Type returns the section type string.
func (s *Section) Type() string { return s.typ }

// Anonymous reports whether the section was created without a name.
func (s *Section) Anonymous() bool { return s.anonymous }

// Package returns the owning package, or nil for a detached section.
func (s *Section) Package() *Package { return s.pkg }

// Options returns the options in insertion order. The returned slice
// is a snapshot; see [Package.Sections].
func (s *Section) Options() []*Option {
	out := make([]*Option, len(s.options))
	copy(out, s.options)
	return out
}

// Option returns the named option, or nil if absent.
func (s *Section) Option(name string) *Option {
	for _, o := range s.options {
		if o.name == name {
			return o
		}
	}
	return nil
}

func (s *Section) attach(o *Option) {
	o.sec = s
	s.options = append(s.options, o)
}

func (s *Section) insert(o *Option, i int) {
	if i < 0 || i > len(s.options) {
		i = len(s.options)
	}
	o.sec = s
	s.options = append(s.options, nil)
	copy(s.options[i+1:], s.options[i:])
	s.options[i] = o
}

func (s *Section) detach(o *Option) int {
	for i, cur := range s.options {
		if cur == o {
			s.options = append(s.options[:i], s.options[i+1:]...)
			o.sec = nil
			return i
		}
	}
	return -1
}

func (s *Section) newOption(name, value string) *Option {
	o := &Option{name: name, value: value}
	s.attach(o)
	return o
}

// deepCopy clones the section and its options. The clone is detached.
func (s *Section) deepCopy() *Section {
	cp := &Section{typ: s.typ, name: s.name, anonymous: s.anonymous}
	for _, o := range s.options {
		cp.attach(&Option{name: o.name, value: o.value})
	}
	return cp
}

// Option is a single name/value entry. The value is an opaque string.
type Option struct {
	sec *Section

	name  string
	value string
}

// Kind returns KindOption.
func (o *Option) Kind() Kind { return KindOption }

// Name returns the option name.
func (o *Option) Name() string { return o.name }

// Value returns the option value.
func (o *Option) Value() string { return o.value }

// Section returns the owning section, or nil for a detached option.
func (o *Option) Section() *Section { return o.sec }

// ValidName reports whether s is acceptable as a package, section or
// option name: non-empty and limited to letters, digits, '_' and '-'.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}
