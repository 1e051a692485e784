package uci

import (
	"github.com/cockroachdb/errors"
)

// Command tags a journal entry with the mutation it records.
type Command int

const (
	// CmdAdd records the creation of a section or option. Its inverse
	// is removal of the referenced element.
	CmdAdd Command = iota

	// CmdRemove records the removal of a section or option, together
	// with a deep snapshot of the removed subtree and its position
	// among its former siblings.
	CmdRemove

	// CmdChange records the overwrite of an option value, together
	// with the prior value.
	CmdChange
)

// String returns the lowercase command name.
func (c Command) String() string {
	switch c {
	case CmdAdd:
		return "add"
	case CmdRemove:
		return "remove"
	case CmdChange:
		return "change"
	default:
		return "unknown"
	}
}

// journalEntry is one reversible mutation record. The payload is a
// tagged variant: prior holds the overwritten value for CmdChange,
// removed holds the detached subtree snapshot for CmdRemove, and
// CmdAdd needs only the element path.
type journalEntry struct {
	cmd Command

	// Path of the affected element. option is empty for section-level
	// entries.
	section string
	option  string

	// CmdChange: the value before the overwrite, copied by value.
	prior string

	// CmdRemove: deep snapshot of the removed element and the index it
	// occupied among its siblings.
	removedSec *Section
	removedOpt *Option
	index      int
}

// ChangeRecord is the read-only view of a journal entry exposed to
// tooling (the `changes` CLI verb and tests).
type ChangeRecord struct {
	Cmd     Command
	Section string
	Option  string

	// Value is the prior value for CmdChange entries and the removed
	// option's value for option-level CmdRemove entries.
	Value string
}

// AddSection creates a new section and journals the addition. An empty
// name creates an anonymous section with a generated identifier.
// Creating a named section whose name is already taken fails with
// ErrInvalid; section types must be valid names.
func (p *Package) AddSection(typ, name string) (*Section, error) {
	if !ValidName(typ) {
		return nil, errors.Wrapf(ErrInvalid, "bad section type %q", typ)
	}
	if name != "" {
		if !ValidName(name) {
			return nil, errors.Wrapf(ErrInvalid, "bad section name %q", name)
		}
		if p.Section(name) != nil {
			return nil, errors.Wrapf(ErrInvalid, "duplicate section %q", name)
		}
	}
	s := p.newSection(typ, name)
	p.history = append(p.history, journalEntry{
		cmd:     CmdAdd,
		section: s.name,
	})
	return s, nil
}

// DeleteSection removes the named section and its options, journaling
// a deep snapshot so the subtree can be restored on revert.
func (p *Package) DeleteSection(name string) error {
	s := p.Section(name)
	if s == nil {
		return errors.Wrapf(ErrNotFound, "section %q", name)
	}
	snap := s.deepCopy()
	idx := p.detach(s)
	p.history = append(p.history, journalEntry{
		cmd:        CmdRemove,
		section:    name,
		removedSec: snap,
		index:      idx,
	})
	return nil
}

// Set creates or overwrites the named option and journals the
// mutation: an addition for a new option, a change carrying the prior
// value for an overwrite.
func (s *Section) Set(name, value string) (*Option, error) {
	if s.pkg == nil {
		return nil, errors.Wrap(ErrInvalid, "section is detached")
	}
	if !ValidName(name) {
		return nil, errors.Wrapf(ErrInvalid, "bad option name %q", name)
	}
	if o := s.Option(name); o != nil {
		s.pkg.history = append(s.pkg.history, journalEntry{
			cmd:     CmdChange,
			section: s.name,
			option:  name,
			prior:   o.value,
		})
		o.value = value
		return o, nil
	}
	o := s.newOption(name, value)
	s.pkg.history = append(s.pkg.history, journalEntry{
		cmd:     CmdAdd,
		section: s.name,
		option:  name,
	})
	return o, nil
}

// Delete removes the named option, journaling its value and position.
func (s *Section) Delete(name string) error {
	if s.pkg == nil {
		return errors.Wrap(ErrInvalid, "section is detached")
	}
	o := s.Option(name)
	if o == nil {
		return errors.Wrapf(ErrNotFound, "option %q", name)
	}
	snap := &Option{name: o.name, value: o.value}
	idx := s.detach(o)
	s.pkg.history = append(s.pkg.history, journalEntry{
		cmd:        CmdRemove,
		section:    s.name,
		option:     name,
		removedOpt: snap,
		index:      idx,
	})
	return nil
}

// Revert undoes the n most recent journaled mutations in LIFO order.
// n <= 0 reverts the whole journal. Reverting an empty journal is a
// no-op. Removed elements are reinserted at their recorded position
// when it still fits the current sibling list, otherwise appended.
func (p *Package) Revert(n int) error {
	if n <= 0 || n > len(p.history) {
		n = len(p.history)
	}
	for i := 0; i < n; i++ {
		e := p.history[len(p.history)-1]
		if err := p.applyInverse(e); err != nil {
			return err
		}
		p.history = p.history[:len(p.history)-1]
	}
	return nil
}

// applyInverse undoes a single journal entry against the live tree.
func (p *Package) applyInverse(e journalEntry) error {
	switch e.cmd {
	case CmdAdd:
		s := p.Section(e.section)
		if s == nil {
			return errors.Wrapf(ErrUnknown, "journal refers to missing section %q", e.section)
		}
		if e.option == "" {
			p.detach(s)
			return nil
		}
		o := s.Option(e.option)
		if o == nil {
			return errors.Wrapf(ErrUnknown, "journal refers to missing option %s.%s", e.section, e.option)
		}
		s.detach(o)
		return nil

	case CmdRemove:
		if e.removedSec != nil {
			p.insert(e.removedSec.deepCopy(), e.index)
			return nil
		}
		s := p.Section(e.section)
		if s == nil {
			return errors.Wrapf(ErrUnknown, "journal refers to missing section %q", e.section)
		}
		s.insert(&Option{name: e.removedOpt.name, value: e.removedOpt.value}, e.index)
		return nil

	case CmdChange:
		s := p.Section(e.section)
		if s == nil {
			return errors.Wrapf(ErrUnknown, "journal refers to missing section %q", e.section)
		}
		o := s.Option(e.option)
		if o == nil {
			return errors.Wrapf(ErrUnknown, "journal refers to missing option %s.%s", e.section, e.option)
		}
		o.value = e.prior
		return nil

	default:
		return errors.Wrapf(ErrUnknown, "journal entry with command %d", int(e.cmd))
	}
}

// Commit discards the journal without touching the live tree, fixing
// the current state as the new baseline.
func (p *Package) Commit() {
	p.history = nil
}

// Changes returns the journal in append order, oldest first.
func (p *Package) Changes() []ChangeRecord {
	out := make([]ChangeRecord, 0, len(p.history))
	for _, e := range p.history {
		rec := ChangeRecord{
			Cmd:     e.cmd,
			Section: e.section,
			Option:  e.option,
		}
		switch e.cmd {
		case CmdChange:
			rec.Value = e.prior
		case CmdRemove:
			if e.removedOpt != nil {
				rec.Value = e.removedOpt.value
			}
		}
		out = append(out, rec)
	}
	return out
}
