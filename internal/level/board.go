// Package level implements the puzzle rules: colored entities on a sparse
// grid, the per-turn resolver, the history chain and the level codec.
//
// A Board is mutated only through Add, Remove and Move. Turns never touch the
// board they are given; Next clones it and mutates the clone, which links
// back to its predecessor through Prev.
package level

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/knightmare/internal/core"
)

// Placed pairs an entity with the cell it occupies.
type Placed struct {
	Entity *Entity
	Pos    core.Point
}

// Board is the state of a level at one instant.
type Board struct {
	Name string
	Step int

	bounds *core.Rect
	cells  map[core.Point][]*Entity
	prev   *Board
	events *Events
}

// NewBoard creates an empty, unbounded board.
func NewBoard(name string) *Board {
	return &Board{
		Name:   name,
		cells:  make(map[core.Point][]*Entity),
		events: NewEvents(),
	}
}

// Bounds returns the fixed bounds, if set.
func (b *Board) Bounds() (core.Rect, bool) {
	if b.bounds == nil {
		return core.Rect{}, false
	}
	return *b.bounds, true
}

// SetBounds fixes the board bounds. Bounds are immutable once set.
func (b *Board) SetBounds(r core.Rect) error {
	if b.bounds != nil {
		return fmt.Errorf("set bounds %+v: %w", r, ErrBoundsAlreadySet)
	}
	b.bounds = &r
	return nil
}

// Area returns the bounds when set, otherwise the smallest rectangle holding
// every occupied cell.
func (b *Board) Area() core.Rect {
	if b.bounds != nil {
		return *b.bounds
	}
	return core.RectContaining(b.points())
}

// CacheBounds fixes the bounds to the occupied extent. It does nothing when
// bounds are already set or the board is empty.
func (b *Board) CacheBounds() {
	if b.bounds != nil || len(b.cells) == 0 {
		return
	}
	r := core.RectContaining(b.points())
	b.bounds = &r
}

// InBounds reports whether p is inside the bounds. Unbounded boards contain
// every cell.
func (b *Board) InBounds(p core.Point) bool {
	return b.bounds == nil || b.bounds.Contains(p)
}

// Add places e on top of the stack at p. It always checks bounds; only the
// turn resolver may place entities outside them, through add.
func (b *Board) Add(p core.Point, e *Entity) error {
	return b.add(p, e, false)
}

func (b *Board) add(p core.Point, e *Entity, ignoreBounds bool) error {
	if !ignoreBounds && !b.InBounds(p) {
		return fmt.Errorf("add %s at %s: %w", e, p, ErrOutOfBounds)
	}
	b.cells[p] = append(b.cells[p], e)
	return nil
}

// Remove takes e off the cell p, dropping the cell once it is empty.
func (b *Board) Remove(p core.Point, e *Entity) error {
	stack := b.cells[p]
	for i, other := range stack {
		if other.ID() != e.ID() {
			continue
		}
		if len(stack) == 1 {
			delete(b.cells, p)
			return nil
		}
		b.cells[p] = append(stack[:i:i], stack[i+1:]...)
		return nil
	}
	return fmt.Errorf("remove %s at %s: %w", e, p, ErrNotPresent)
}

// Move relocates e from one cell to another and records it as moved.
// Moving to the same cell is a no-op.
func (b *Board) Move(from, to core.Point, e *Entity) error {
	return b.move(from, to, e, false)
}

func (b *Board) move(from, to core.Point, e *Entity, ignoreBounds bool) error {
	if from == to {
		return nil
	}
	if !ignoreBounds && !b.InBounds(to) {
		return fmt.Errorf("move %s to %s: %w", e, to, ErrOutOfBounds)
	}
	if err := b.Remove(from, e); err != nil {
		return err
	}
	if err := b.add(to, e, ignoreBounds); err != nil {
		return err
	}
	b.events.Moved.Add(e)
	return nil
}

// points returns the occupied cells in row-major order.
func (b *Board) points() []core.Point {
	pts := make([]core.Point, 0, len(b.cells))
	for p := range b.cells {
		pts = append(pts, p)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].Less(pts[j]) })
	return pts
}

// EntitiesAt returns a copy of the stack at p, bottom first.
func (b *Board) EntitiesAt(p core.Point) []*Entity {
	stack := b.cells[p]
	if len(stack) == 0 {
		return nil
	}
	out := make([]*Entity, len(stack))
	copy(out, stack)
	return out
}

// All returns every entity with its position, row-major then stack order.
func (b *Board) All() []Placed {
	var out []Placed
	for _, p := range b.points() {
		for _, e := range b.cells[p] {
			out = append(out, Placed{Entity: e, Pos: p})
		}
	}
	return out
}

// EntitiesOfKind returns every entity of the given kinds with its position.
func (b *Board) EntitiesOfKind(kinds ...Kind) []Placed {
	var out []Placed
	for _, pl := range b.All() {
		if hasKind(kinds, pl.Entity.Kind()) {
			out = append(out, pl)
		}
	}
	return out
}

// CoordsOfKind returns each cell holding at least one entity of the given
// kinds, once, in row-major order.
func (b *Board) CoordsOfKind(kinds ...Kind) []core.Point {
	var out []core.Point
	for _, p := range b.points() {
		for _, e := range b.cells[p] {
			if hasKind(kinds, e.Kind()) {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

func hasKind(kinds []Kind, k Kind) bool {
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

// Find returns the position of the entity with the given id.
func (b *Board) Find(id EntityID) (core.Point, bool) {
	for p, stack := range b.cells {
		for _, e := range stack {
			if e.ID() == id {
				return p, true
			}
		}
	}
	return core.Point{}, false
}

// Count returns the number of entities on the board.
func (b *Board) Count() int {
	n := 0
	for _, stack := range b.cells {
		n += len(stack)
	}
	return n
}

// IsSolid reports whether p blocks every mover: the cell is outside the
// bounds or holds any solid entity.
func (b *Board) IsSolid(p core.Point) bool {
	if !b.InBounds(p) {
		return true
	}
	for _, e := range b.cells[p] {
		if e.IsSolid() {
			return true
		}
	}
	return false
}

// IsSolidFor reports whether p blocks a mover of color c. Cells outside the
// bounds are always solid.
func (b *Board) IsSolidFor(p core.Point, c Color) bool {
	if !b.InBounds(p) {
		return true
	}
	for _, e := range b.cells[p] {
		if e.IsSolid() && CanInteract(c, e.Color()) {
			return true
		}
	}
	return false
}

// IsPushableFor reports whether a pusher of color c could displace the
// contents of p: nothing there is solid, immovable and interacting with c.
func (b *Board) IsPushableFor(p core.Point, c Color) bool {
	if !b.InBounds(p) {
		return false
	}
	for _, e := range b.cells[p] {
		if e.IsSolid() && !e.IsPushable() && CanInteract(c, e.Color()) {
			return false
		}
	}
	return true
}

// PlayerAlive reports whether any player remains.
func (b *Board) PlayerAlive() bool {
	return len(b.EntitiesOfKind(KindPlayer)) > 0
}

// PlayerColor returns the color of the first player, or white if none.
func (b *Board) PlayerColor() Color {
	if players := b.EntitiesOfKind(KindPlayer); len(players) > 0 {
		return players[0].Entity.Color()
	}
	return ColorWhite
}

// EnemiesRemaining returns the number of enemies on the board.
func (b *Board) EnemiesRemaining() int {
	return len(b.EntitiesOfKind(KindEnemy))
}

// IsSuccess reports whether every enemy is gone.
func (b *Board) IsSuccess() bool {
	return b.EnemiesRemaining() == 0
}

// Prev returns the board this one was resolved from, or nil at the root.
func (b *Board) Prev() *Board { return b.prev }

// Initial walks the history chain back to its root.
func (b *Board) Initial() *Board {
	cur := b
	for cur.prev != nil {
		cur = cur.prev
	}
	return cur
}

// Events returns what happened in the turn that produced this board.
func (b *Board) Events() *Events { return b.events }

// Clone returns an independent copy with the same name, step, bounds and
// predecessor. Entities keep their ids. The event record starts empty.
func (b *Board) Clone() *Board {
	c := &Board{
		Name:   b.Name,
		Step:   b.Step,
		cells:  make(map[core.Point][]*Entity, len(b.cells)),
		prev:   b.prev,
		events: NewEvents(),
	}
	if b.bounds != nil {
		r := *b.bounds
		c.bounds = &r
	}
	for p, stack := range b.cells {
		cs := make([]*Entity, len(stack))
		for i, e := range stack {
			cs[i] = e.Copy()
		}
		c.cells[p] = cs
	}
	return c
}

// String renders the board area using the codec token layout, one row per line.
func (b *Board) String() string {
	return joinRows(encodeRows(b, nil))
}
