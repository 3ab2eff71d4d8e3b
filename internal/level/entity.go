package level

import (
	"fmt"

	"github.com/vovakirdan/knightmare/internal/core"
)

// EntityID is the identity of an entity. Two entities are the same entity
// exactly when their ids match; field values never matter.
type EntityID uint64

// Kind is the closed set of entity kinds.
type Kind int

const (
	KindPlayer Kind = iota
	KindWall
	KindBox
	KindEnemy
	KindPotion
	KindSnake
	kindCount
)

// Capabilities are the fixed rule flags of a kind.
type Capabilities struct {
	Solid     bool // blocks movers of an interacting color
	Pushable  bool // can be displaced by a push
	Crushable bool // destroyed against a differing solid or outside the board
}

var kindCaps = [kindCount]Capabilities{
	KindPlayer: {Solid: false, Pushable: true, Crushable: false},
	KindWall:   {Solid: true, Pushable: false, Crushable: false},
	KindBox:    {Solid: true, Pushable: true, Crushable: false},
	KindEnemy:  {Solid: false, Pushable: true, Crushable: true},
	KindPotion: {Solid: false, Pushable: true, Crushable: true},
	KindSnake:  {Solid: true, Pushable: true, Crushable: false},
}

var kindNames = [kindCount]string{
	KindPlayer: "player",
	KindWall:   "wall",
	KindBox:    "box",
	KindEnemy:  "enemy",
	KindPotion: "potion",
	KindSnake:  "snake",
}

// Caps returns the capability flags of the kind.
func (k Kind) Caps() Capabilities {
	if k < 0 || k >= kindCount {
		return Capabilities{}
	}
	return kindCaps[k]
}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || k >= kindCount {
		return fmt.Sprintf("kind(%d)", int(k))
	}
	return kindNames[k]
}

// Walker is the movement subtype of an enemy, derived from its direction.
type Walker int

const (
	WalkerNone Walker = iota // not an enemy
	WalkerStationary
	WalkerHorizontal
	WalkerVertical
)

// String returns the walker name.
func (w Walker) String() string {
	switch w {
	case WalkerStationary:
		return "stationary"
	case WalkerHorizontal:
		return "horizontal"
	case WalkerVertical:
		return "vertical"
	default:
		return "none"
	}
}

// Default facings for new entities.
var (
	defaultDirection    = core.Down
	defaultArtDirection = core.Pt(1, 1)
)

// Entity is a colored game object occupying one board cell.
type Entity struct {
	id     EntityID
	kind   Kind
	color  Color
	dir    core.Point
	artDir core.Point
}

// ID returns the entity identity.
func (e *Entity) ID() EntityID { return e.id }

// Kind returns the entity kind.
func (e *Entity) Kind() Kind { return e.kind }

// Color returns the current color.
func (e *Entity) Color() Color { return e.color }

// Direction returns the movement direction (meaningful for enemies).
func (e *Entity) Direction() core.Point { return e.dir }

// ArtDirection returns the cosmetic facing used by renderers.
func (e *Entity) ArtDirection() core.Point { return e.artDir }

// SetDirection updates the movement direction. The art direction only
// changes on the axes where d is non-zero, so a vertical bounce keeps the
// horizontal facing.
func (e *Entity) SetDirection(d core.Point) {
	e.dir = d
	if d.X != 0 {
		e.artDir.X = d.X
	}
	if d.Y != 0 {
		e.artDir.Y = d.Y
	}
}

func (e *Entity) IsSolid() bool     { return e.kind.Caps().Solid }
func (e *Entity) IsPushable() bool  { return e.kind.Caps().Pushable }
func (e *Entity) IsCrushable() bool { return e.kind.Caps().Crushable }
func (e *Entity) IsWall() bool      { return e.kind == KindWall }
func (e *Entity) IsBox() bool       { return e.kind == KindBox }

// Walker returns the enemy movement subtype, or WalkerNone for non-enemies.
func (e *Entity) Walker() Walker {
	if e.kind != KindEnemy {
		return WalkerNone
	}
	switch {
	case e.dir.IsZero():
		return WalkerStationary
	case e.dir.Y == 0:
		return WalkerHorizontal
	default:
		return WalkerVertical
	}
}

// Copy returns an independent value with the same identity.
func (e *Entity) Copy() *Entity {
	c := *e
	return &c
}

// String implements fmt.Stringer.
func (e *Entity) String() string {
	if e.kind == KindEnemy {
		return fmt.Sprintf("%s#%d(%s, %s)", e.kind, e.id, e.color, e.dir)
	}
	return fmt.Sprintf("%s#%d(%s)", e.kind, e.id, e.color)
}

// Factory creates entities with unique ids. Each board family should share
// one factory; it is not safe for concurrent use.
type Factory struct {
	next EntityID
}

// NewFactory returns a factory whose first id is 1.
func NewFactory() *Factory {
	return &Factory{next: 1}
}

func (f *Factory) make(kind Kind, c Color, dir core.Point) *Entity {
	if f.next == 0 {
		f.next = 1
	}
	e := &Entity{id: f.next, kind: kind, color: c, dir: dir, artDir: defaultArtDirection}
	f.next++
	return e
}

// New creates an entity of any kind. Enemies require a canonical direction;
// every other kind ignores dir and faces down.
func (f *Factory) New(kind Kind, c Color, dir core.Point) (*Entity, error) {
	switch {
	case kind == KindEnemy:
		return f.Enemy(c, dir)
	case kind < 0 || kind >= kindCount:
		return nil, fmt.Errorf("%w: %d", ErrUnknownEntityKind, int(kind))
	default:
		return f.make(kind, c, defaultDirection), nil
	}
}

// Player creates a player.
func (f *Factory) Player(c Color) *Entity { return f.make(KindPlayer, c, defaultDirection) }

// Wall creates a wall. Walls are usually white.
func (f *Factory) Wall(c Color) *Entity { return f.make(KindWall, c, defaultDirection) }

// Box creates a box. Boxes are usually brown.
func (f *Factory) Box(c Color) *Entity { return f.make(KindBox, c, defaultDirection) }

// Potion creates a potion. Potions are usually pink.
func (f *Factory) Potion(c Color) *Entity { return f.make(KindPotion, c, defaultDirection) }

// Snake creates a snake. Snakes are usually yellow.
func (f *Factory) Snake(c Color) *Entity { return f.make(KindSnake, c, defaultDirection) }

// Enemy creates an enemy walking in dir, which must be one of the five
// canonical vectors.
func (f *Factory) Enemy(c Color, dir core.Point) (*Entity, error) {
	if !dir.IsCanonical() {
		return nil, fmt.Errorf("enemy %s: %w %s", c, ErrInvalidDirection, dir)
	}
	e := f.make(KindEnemy, c, dir)
	e.SetDirection(dir)
	return e, nil
}
