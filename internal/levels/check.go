package levels

import (
	"fmt"

	"github.com/vovakirdan/knightmare/internal/level"
)

// Problem is an authoring issue found in a level.
type Problem struct {
	File    string
	Level   string
	Message string
	Fatal   bool // the level cannot be played as intended
}

func (p Problem) String() string {
	sev := "warning"
	if p.Fatal {
		sev = "error"
	}
	if p.File != "" {
		return fmt.Sprintf("%s (%s): %s: %s", p.Level, p.File, sev, p.Message)
	}
	return fmt.Sprintf("%s: %s: %s", p.Level, sev, p.Message)
}

// Check reports authoring problems of a single level: a missing or doubled
// player, no enemies, stacked cells the codec cannot save, and boards that do
// not survive an encode/decode round trip.
func Check(l Level) []Problem {
	b := l.Board
	var out []Problem
	report := func(fatal bool, format string, args ...any) {
		out = append(out, Problem{File: l.File, Level: l.Name(), Message: fmt.Sprintf(format, args...), Fatal: fatal})
	}

	switch n := len(b.EntitiesOfKind(level.KindPlayer)); {
	case n == 0:
		report(true, "no player")
	case n > 1:
		report(false, "%d players move in lockstep", n)
	}
	if b.EnemiesRemaining() == 0 {
		report(true, "no enemies, the level is won by any move")
	}

	seen := make(map[string]bool)
	for _, pl := range b.All() {
		key := pl.Pos.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		if n := len(b.EntitiesAt(pl.Pos)); n > 1 {
			report(false, "cell %s holds %d entities, only the first is saved", pl.Pos, n)
		}
	}

	codec := level.NewCodec(level.NewFactory(), nil)
	first := codec.Encode(b)
	decoded, err := codec.Decode(first)
	if err != nil {
		report(true, "encoded level does not decode: %v", err)
		return out
	}
	second := codec.Encode(decoded)
	if len(first.Data) != len(second.Data) {
		report(true, "round trip changed the row count from %d to %d", len(first.Data), len(second.Data))
		return out
	}
	for i := range first.Data {
		if first.Data[i] != second.Data[i] {
			report(true, "round trip changed row %d: %q became %q", i, first.Data[i], second.Data[i])
		}
	}
	return out
}

// CheckPack checks every level of p in order.
func CheckPack(p *Pack) []Problem {
	var out []Problem
	for _, l := range p.Levels() {
		out = append(out, Check(l)...)
	}
	return out
}
