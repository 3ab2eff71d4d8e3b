package level

import (
	"fmt"
	"sort"

	"github.com/vovakirdan/knightmare/internal/core"
)

// Next resolves one turn in which the player steps in dir (core.Zero skips).
// The receiver is never modified: the result is a clone whose Prev is b,
// whose Step is one higher and whose Events describe the turn.
//
// A blocked player still turns to face dir, and enemies act either way.
// Errors are invariant violations; the caller should keep b.
func (b *Board) Next(dir core.Point) (*Board, error) {
	if !dir.IsCanonical() {
		return nil, fmt.Errorf("next %s: %w", dir, ErrInvalidDirection)
	}

	next := b.Clone()
	next.prev = b
	next.Step = b.Step + 1

	if _, err := next.movePlayers(dir); err != nil {
		return nil, err
	}
	if err := next.removeCrushed(); err != nil {
		return nil, err
	}
	next.turnEnemies()
	if err := next.collide(false); err != nil {
		return nil, err
	}
	if err := next.moveEnemies(); err != nil {
		return nil, err
	}
	if err := next.collide(true); err != nil {
		return nil, err
	}
	return next, nil
}

// movePlayers steps every player in dir, pushing when the way is solid.
// It reports whether any player moved; a skip counts as success.
func (b *Board) movePlayers(dir core.Point) (bool, error) {
	moved := dir.IsZero()
	if !moved {
		for _, pl := range b.EntitiesOfKind(KindPlayer) {
			p := pl.Entity
			// An earlier player may have pushed this one.
			pos, ok := b.Find(p.ID())
			if !ok {
				continue
			}
			dest := pos.Add(dir)
			if b.IsSolidFor(dest, p.Color()) {
				ok, err := b.push(dest, dir, p.Color())
				if err != nil {
					return false, err
				}
				if !ok {
					continue
				}
			}
			if err := b.Move(pos, dest, p); err != nil {
				return false, err
			}
			moved = true
		}
	}

	for _, pl := range b.EntitiesOfKind(KindPlayer) {
		if p := pl.Entity; p.Direction() != dir {
			p.SetDirection(dir)
			b.events.Turned.Add(p)
		}
	}
	return moved, nil
}

// push makes room for a mover of color c entering cell start along dir and
// reports whether it may enter. Solid contents are pushed only when the cell
// beyond can take them, recursively, so a whole line shifts at once.
// Crushable entities may be shoved past the bounds; removeCrushed disposes
// of them.
func (b *Board) push(start, dir core.Point, c Color) (bool, error) {
	dest := start.Add(dir)

	if !b.IsSolidFor(start, c) {
		var shove []*Entity
		for _, e := range b.EntitiesAt(start) {
			if !e.IsPushable() || !CanInteract(c, e.Color()) {
				continue
			}
			if !e.IsCrushable() && !b.InBounds(dest) {
				return false, nil
			}
			shove = append(shove, e)
		}
		for _, e := range shove {
			if err := b.move(start, dest, e, e.IsCrushable()); err != nil {
				return false, err
			}
		}
		return true, nil
	}

	if !b.IsPushableFor(start, c) {
		return false, nil
	}

	solids := make(map[Color]struct{})
	var blocker Color
	for _, e := range b.EntitiesAt(start) {
		if e.IsSolid() {
			solids[e.Color()] = struct{}{}
			blocker = e.Color()
		}
	}
	if len(solids) != 1 {
		return false, fmt.Errorf("push into %s: %w", start, ErrMixedColors)
	}

	ok, err := b.push(dest, dir, blocker)
	if err != nil || !ok {
		return false, err
	}
	for _, e := range b.EntitiesAt(start) {
		if e.IsPushable() && CanInteract(c, e.Color()) {
			if err := b.Move(start, dest, e); err != nil {
				return false, err
			}
		}
	}
	return true, nil
}

// removeCrushed deletes crushable entities that share a cell with a
// differently colored solid or lie outside the bounds.
func (b *Board) removeCrushed() error {
	var crushed []Placed
	for _, pl := range b.All() {
		e := pl.Entity
		if !e.IsCrushable() {
			continue
		}
		if !b.InBounds(pl.Pos) {
			crushed = append(crushed, pl)
			continue
		}
		for _, other := range b.cells[pl.Pos] {
			if other.ID() != e.ID() && other.IsSolid() && other.Color() != e.Color() {
				crushed = append(crushed, pl)
				break
			}
		}
	}

	for _, pl := range crushed {
		if err := b.Remove(pl.Pos, pl.Entity); err != nil {
			return err
		}
		b.events.Crushed.Add(pl.Entity)
		b.events.Killed.Add(pl.Entity)
	}
	return nil
}

// turnEnemies reverses every enemy facing a cell that is solid for it.
func (b *Board) turnEnemies() {
	for _, pl := range b.EntitiesOfKind(KindEnemy) {
		e := pl.Entity
		if !b.IsSolidFor(pl.Pos.Add(e.Direction()), e.Color()) {
			continue
		}
		if d := e.Direction().Neg(); d != e.Direction() {
			e.SetDirection(d)
			b.events.Turned.Add(e)
		}
	}
}

// moveEnemies steps every enemy whose next cell is open for its color.
func (b *Board) moveEnemies() error {
	for _, pl := range b.EntitiesOfKind(KindEnemy) {
		e := pl.Entity
		dest := pl.Pos.Add(e.Direction())
		if b.IsSolidFor(dest, e.Color()) {
			continue
		}
		if err := b.Move(pl.Pos, dest, e); err != nil {
			return err
		}
	}
	return nil
}

// collide resolves players, enemies and potions sharing a cell: potions
// recolor whoever stands on them, then a player meeting an enemy of another
// color dies. Before enemies move only head-on meetings kill.
func (b *Board) collide(enemiesMoved bool) error {
	for _, pos := range b.CoordsOfKind(KindPlayer, KindEnemy, KindPotion) {
		stack := b.cells[pos]
		players := ofKind(stack, KindPlayer)
		enemies := ofKind(stack, KindEnemy)
		potions := ofKind(stack, KindPotion)

		usedPotion := false
		for _, e := range append(append([]*Entity{}, players...), enemies...) {
			orig := e.Color()
			origPotion := false
			for _, pot := range potions {
				if e.Color() != pot.Color() {
					e.color = pot.Color()
					b.events.Colored.Add(e)
					usedPotion = true
				}
				if pot.Color() == orig {
					origPotion = true
				}
			}
			// A potion of the entity's own color cancels recoloring.
			if e.Color() != orig && origPotion {
				e.color = orig
			}
		}

		if usedPotion {
			for _, pot := range potions {
				if err := b.Remove(pos, pot); err != nil {
					return err
				}
				b.events.Consumed.Add(pot)
			}
		}

		for _, p := range players {
			for _, e := range enemies {
				if p.Color() == e.Color() {
					continue
				}
				if enemiesMoved || p.Direction().Add(e.Direction()).IsZero() {
					if err := b.Remove(pos, p); err != nil {
						return err
					}
					b.events.Killed.Add(p)
					break
				}
			}
		}
	}
	return nil
}

// ofKind filters a cell stack by kind, sorted by color with stack order
// breaking ties.
func ofKind(stack []*Entity, k Kind) []*Entity {
	var out []*Entity
	for _, e := range stack {
		if e.Kind() == k {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Color() < out[j].Color() })
	return out
}
