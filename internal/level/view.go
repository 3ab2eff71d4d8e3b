package level

// viewPriority ranks kinds so the most important entity of a stack is shown.
var viewPriority = map[Kind]int{
	KindPlayer: 5,
	KindEnemy:  4,
	KindSnake:  3,
	KindBox:    2,
	KindPotion: 1,
	KindWall:   0,
}

// Topmost returns the entity a view should show for a cell stack, or nil for
// an empty cell. Players win over enemies, enemies over everything else; ties
// keep insertion order.
func Topmost(stack []*Entity) *Entity {
	var top *Entity
	for _, e := range stack {
		if top == nil || viewPriority[e.Kind()] > viewPriority[top.Kind()] {
			top = e
		}
	}
	return top
}

// Token returns the two character level token for e, or a blank token when e
// is nil or has no token.
func Token(e *Entity) string {
	if e == nil {
		return blankToken
	}
	var prefix byte
	switch e.Kind() {
	case KindPlayer:
		prefix = prefixPlay
	case KindWall:
		prefix = prefixWall
	case KindBox:
		prefix = prefixBox
	case KindPotion:
		prefix = prefixPot
	case KindSnake:
		prefix = prefixSnake
	case KindEnemy:
		for p, dir := range enemyPrefixes {
			if dir == e.Direction() {
				prefix = p
				break
			}
		}
	}
	if prefix == 0 {
		return blankToken
	}
	return string(prefix) + string(rune('0'+int(e.Color().Clamp())))
}
