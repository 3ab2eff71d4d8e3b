package game

import (
	"fmt"
	"sync"

	"github.com/vovakirdan/knightmare/internal/levels"
)

// ProgressStore persists the best step count per profile and level.
type ProgressStore interface {
	// BestSteps returns the stored minimum, if any.
	BestSteps(profile, levelName string) (int, bool, error)
	// RecordCompletion stores steps when it beats the stored minimum and
	// reports whether it did.
	RecordCompletion(profile, levelName string, steps int) (bool, error)
	// Completions returns every stored minimum for the profile.
	Completions(profile string) (map[string]int, error)
}

// LevelProgress summarizes one level for a profile.
type LevelProgress struct {
	Index     int
	Name      string
	Enemies   int
	BestSteps int // zero when not completed
	Completed bool
}

// Campaign is a level pack played by one profile.
type Campaign struct {
	pack    *levels.Pack
	store   ProgressStore
	profile string
}

// NewCampaign creates a campaign. A nil store keeps progress in memory.
func NewCampaign(pack *levels.Pack, store ProgressStore, profile string) *Campaign {
	if store == nil {
		store = NewMemoryProgress()
	}
	return &Campaign{pack: pack, store: store, profile: profile}
}

// Pack returns the level pack.
func (c *Campaign) Pack() *levels.Pack { return c.pack }

// Profile returns the save profile name.
func (c *Campaign) Profile() string { return c.profile }

// Start opens a session on level i.
func (c *Campaign) Start(i int) (*Session, error) {
	if i < 0 || i >= c.pack.Len() {
		return nil, fmt.Errorf("game: level index %d out of range [0, %d)", i, c.pack.Len())
	}
	return NewSession(c.pack.At(i).Board), nil
}

// Complete records a win of the named level in steps turns.
func (c *Campaign) Complete(name string, steps int) (bool, error) {
	return c.store.RecordCompletion(c.profile, name, steps)
}

// Best returns the stored minimum step count of the named level.
func (c *Campaign) Best(name string) (int, bool, error) {
	return c.store.BestSteps(c.profile, name)
}

// Next returns the index after the named level, or false after the last one.
func (c *Campaign) Next(name string) (int, bool) {
	i := c.pack.IndexOf(name)
	if i < 0 || i+1 >= c.pack.Len() {
		return 0, false
	}
	return i + 1, true
}

// Progress lists every level with its completion state, in pack order.
func (c *Campaign) Progress() ([]LevelProgress, error) {
	done, err := c.store.Completions(c.profile)
	if err != nil {
		return nil, err
	}

	out := make([]LevelProgress, 0, c.pack.Len())
	for i, l := range c.pack.Levels() {
		best, ok := done[l.Name()]
		out = append(out, LevelProgress{
			Index:     i,
			Name:      l.Name(),
			Enemies:   l.Board.EnemiesRemaining(),
			BestSteps: best,
			Completed: ok,
		})
	}
	return out, nil
}

// TotalSteps sums every stored best step count of the profile, including
// levels no longer in the pack.
func (c *Campaign) TotalSteps() (int, error) {
	done, err := c.store.Completions(c.profile)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, steps := range done {
		total += steps
	}
	return total, nil
}

// AllComplete reports whether every level of the pack has been completed.
func (c *Campaign) AllComplete() (bool, error) {
	done, err := c.store.Completions(c.profile)
	if err != nil {
		return false, err
	}
	for _, l := range c.pack.Levels() {
		if _, ok := done[l.Name()]; !ok {
			return false, nil
		}
	}
	return true, nil
}

// FirstIncomplete returns the index of the first level not yet completed,
// or 0 when everything is done.
func (c *Campaign) FirstIncomplete() int {
	progress, err := c.Progress()
	if err != nil {
		return 0
	}
	for _, p := range progress {
		if !p.Completed {
			return p.Index
		}
	}
	return 0
}

// MemoryProgress is an in-memory ProgressStore, used when no database is
// available.
type MemoryProgress struct {
	mu   sync.Mutex
	best map[string]map[string]int
}

// NewMemoryProgress creates an empty store.
func NewMemoryProgress() *MemoryProgress {
	return &MemoryProgress{best: make(map[string]map[string]int)}
}

func (m *MemoryProgress) BestSteps(profile, levelName string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	steps, ok := m.best[profile][levelName]
	return steps, ok, nil
}

func (m *MemoryProgress) RecordCompletion(profile, levelName string, steps int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	levels, ok := m.best[profile]
	if !ok {
		levels = make(map[string]int)
		m.best[profile] = levels
	}
	if prev, ok := levels[levelName]; ok && prev <= steps {
		return false, nil
	}
	levels[levelName] = steps
	return true, nil
}

func (m *MemoryProgress) Completions(profile string) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.best[profile]))
	for name, steps := range m.best[profile] {
		out[name] = steps
	}
	return out, nil
}
