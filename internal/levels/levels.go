// Package levels loads ordered level packs from a file system. The built-in
// pack is embedded in the binary; a directory of JSON files can replace it.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/knightmare/internal/level"
)

//go:embed data/*.json
var embedded embed.FS

// ErrNoLevels is returned when a pack holds no loadable level.
var ErrNoLevels = errors.New("levels: no levels found")

// Embedded returns the built-in level pack.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		// The embed directive guarantees the directory exists.
		panic(err)
	}
	return sub
}

// Level is one entry of a pack.
type Level struct {
	File  string       // source file name, empty for generated levels
	Board *level.Board // initial board; never mutated, clone before playing
}

// Name returns the level name.
func (l Level) Name() string {
	return l.Board.Name
}

// Pack is an ordered list of levels with unique names.
type Pack struct {
	levels []Level
	byName map[string]int
}

// NewPack builds a pack from boards in order. Later duplicates of a name are
// dropped; Loader.Load logs them before they get here.
func NewPack(lvls []Level) *Pack {
	p := &Pack{byName: make(map[string]int, len(lvls))}
	for _, l := range lvls {
		if _, dup := p.byName[l.Name()]; dup {
			continue
		}
		p.byName[l.Name()] = len(p.levels)
		p.levels = append(p.levels, l)
	}
	return p
}

// Len returns the number of levels.
func (p *Pack) Len() int { return len(p.levels) }

// At returns the level at index i.
func (p *Pack) At(i int) Level { return p.levels[i] }

// Levels returns the levels in order.
func (p *Pack) Levels() []Level {
	out := make([]Level, len(p.levels))
	copy(out, p.levels)
	return out
}

// IndexOf returns the index of the named level, or -1.
func (p *Pack) IndexOf(name string) int {
	if i, ok := p.byName[name]; ok {
		return i
	}
	return -1
}

// ByName returns the named level.
func (p *Pack) ByName(name string) (Level, bool) {
	i := p.IndexOf(name)
	if i < 0 {
		return Level{}, false
	}
	return p.levels[i], true
}

// Loader reads every *.json file at the root of FS in sorted filename order.
type Loader struct {
	FS     fs.FS
	Codec  *level.Codec
	Logger *log.Logger
}

// NewLoader creates a loader. A nil codec gets a fresh factory and logger.
func NewLoader(fsys fs.FS, codec *level.Codec, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if codec == nil {
		codec = level.NewCodec(level.NewFactory(), logger)
	}
	return &Loader{FS: fsys, Codec: codec, Logger: logger}
}

// Load decodes every level file. A file that fails to load is logged and
// skipped; only an empty result is an error.
func (l *Loader) Load() (*Pack, error) {
	files, err := l.Files()
	if err != nil {
		return nil, err
	}

	var lvls []Level
	seen := make(map[string]string, len(files))
	for _, name := range files {
		b, err := l.LoadFile(name)
		if err != nil {
			l.Logger.Error("failed to load level", "file", name, "error", err)
			continue
		}
		lvl := Level{File: name, Board: b}
		if first, dup := seen[lvl.Name()]; dup {
			l.Logger.Warn("duplicate level name", "name", lvl.Name(), "file", name, "first", first)
			continue
		}
		seen[lvl.Name()] = name
		l.Logger.Debug("loaded level", "name", lvl.Name(), "file", name)
		lvls = append(lvls, lvl)
	}

	if len(lvls) == 0 {
		return nil, ErrNoLevels
	}
	return NewPack(lvls), nil
}

// Files lists the level files in load order.
func (l *Loader) Files() ([]string, error) {
	entries, err := fs.ReadDir(l.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(path.Ext(e.Name()), ".json") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

// LoadFile decodes a single level file. Levels without a name are named
// after their file.
func (l *Loader) LoadFile(name string) (*level.Board, error) {
	data, err := fs.ReadFile(l.FS, name)
	if err != nil {
		return nil, fmt.Errorf("levels: cannot read %s: %w", name, err)
	}
	b, err := l.Codec.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	if b.Name == "" {
		b.Name = strings.TrimSuffix(name, path.Ext(name))
	}
	return b, nil
}

// Fake generates a pack of n random boards for debugging the front-ends.
func Fake(f *level.Factory, rng *rand.Rand, n int) *Pack {
	lvls := make([]Level, 0, n)
	for i := 0; i < n; i++ {
		lvls = append(lvls, Level{Board: level.RandomBoard(f, rng, 13, 7)})
	}
	return NewPack(lvls)
}
