package level

import (
	"sort"
	"strings"
)

// EntitySet is a set of entities keyed by identity.
type EntitySet map[EntityID]*Entity

// Add inserts e, replacing any entry with the same id.
func (s EntitySet) Add(e *Entity) { s[e.ID()] = e }

// Has reports whether an entity with e's id is in the set.
func (s EntitySet) Has(e *Entity) bool {
	_, ok := s[e.ID()]
	return ok
}

// Len returns the set size.
func (s EntitySet) Len() int { return len(s) }

// HasKind reports whether any member is of kind k.
func (s EntitySet) HasKind(k Kind) bool {
	for _, e := range s {
		if e.Kind() == k {
			return true
		}
	}
	return false
}

// Sorted returns the members ordered by id.
func (s EntitySet) Sorted() []*Entity {
	out := make([]*Entity, 0, len(s))
	for _, e := range s {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Events records what happened during one turn resolution. It is attached to
// the board the turn produced and is never copied to clones.
type Events struct {
	Moved    EntitySet
	Crushed  EntitySet
	Killed   EntitySet
	Consumed EntitySet
	Colored  EntitySet
	Turned   EntitySet
}

// NewEvents returns an empty record.
func NewEvents() *Events {
	return &Events{
		Moved:    EntitySet{},
		Crushed:  EntitySet{},
		Killed:   EntitySet{},
		Consumed: EntitySet{},
		Colored:  EntitySet{},
		Turned:   EntitySet{},
	}
}

// Empty reports whether nothing happened.
func (ev *Events) Empty() bool {
	return ev.Moved.Len()+ev.Crushed.Len()+ev.Killed.Len()+
		ev.Consumed.Len()+ev.Colored.Len()+ev.Turned.Len() == 0
}

// String lists the non-empty sets, e.g. "moved=[player#1(red)] turned=[...]".
func (ev *Events) String() string {
	groups := []struct {
		name string
		set  EntitySet
	}{
		{"moved", ev.Moved},
		{"crushed", ev.Crushed},
		{"killed", ev.Killed},
		{"consumed", ev.Consumed},
		{"colored", ev.Colored},
		{"turned", ev.Turned},
	}

	var parts []string
	for _, g := range groups {
		if g.set.Len() == 0 {
			continue
		}
		names := make([]string, 0, g.set.Len())
		for _, e := range g.set.Sorted() {
			names = append(names, e.String())
		}
		parts = append(parts, g.name+"=["+strings.Join(names, " ")+"]")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, " ")
}
