package visit

import (
	"reflect"

	"github.com/sghaida/typevisit/typelist"
)

type slot struct {
	action Action
	bound  bool
	// pos is the action's position in the supplied list, kept for duplicate diagnostics.
	pos int
}

// Table maps every member of a TypeList to an optional Action, indexed by the
// member's ordinal. It is immutable once built.
type Table struct {
	list  typelist.TypeList
	slots []slot
}

// Entry is a read-only view of one Table slot.
type Entry struct {
	Index int
	Type  reflect.Type
	Bound bool
	ByRef bool
	// Action is the bound function signature, empty when unbound.
	Action string
}

// NewTable builds a Table from actions supplied in any order and any subset of
// list. Placement is decided by each action's argument type, so permuting
// actions yields an identical Table.
//
// Actions are checked in the order given and the first failure is returned:
//   - InvalidActionError for nil, non-func, non-unary or variadic actions
//   - UnsupportedActionTypeError if the argument type is not in list
//   - DuplicateActionTypeError if two actions accept the same type
func NewTable(list typelist.TypeList, actions ...Action) (*Table, error) {
	t := &Table{list: list, slots: make([]slot, list.Len())}
	for pos, a := range actions {
		if err := t.assign(pos, a); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (t *Table) assign(pos int, a Action) error {
	if err := a.validate(pos); err != nil {
		return err
	}
	res := typelist.Search(t.list, typelist.Is(a.arg))
	if !res.Found {
		return UnsupportedActionTypeError{Position: pos, Type: a.arg, Action: a.sig, List: t.list}
	}
	s := &t.slots[res.Index]
	if s.bound {
		return DuplicateActionTypeError{Type: a.arg, First: s.pos, Second: pos}
	}
	*s = slot{action: a, bound: true, pos: pos}
	return nil
}

// lookup finds typ's slot; ok is false when typ is not a member.
func (t *Table) lookup(typ reflect.Type) (s slot, ok bool) {
	res := typelist.Search(t.list, typelist.Is(typ))
	if !res.Found {
		return slot{}, false
	}
	return t.slots[res.Index], true
}

// Len returns the number of slots, equal to the TypeList length.
func (t *Table) Len() int { return len(t.slots) }

// List returns the TypeList the table was built for.
func (t *Table) List() typelist.TypeList { return t.list }

// Bound reports whether an action is registered for typ.
func (t *Table) Bound(typ reflect.Type) bool {
	s, ok := t.lookup(typ)
	return ok && s.bound
}

// Entries returns one Entry per slot in TypeList order.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.slots))
	for i, s := range t.slots {
		e := Entry{Index: i, Type: t.list.At(i), Bound: s.bound}
		if s.bound {
			e.ByRef = s.action.byRef
			e.Action = s.action.sig
		}
		out[i] = e
	}
	return out
}
