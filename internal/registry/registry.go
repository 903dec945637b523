// Package registry maps game ids to catalog descriptors and factories.
// The platform asks the registry for a game by id; ids without a working
// implementation resolve to a placeholder so the shell never dead-ends.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/vovakirdan/arcade-hub/internal/core"
)

var (
	// ErrUnknownGame is returned when an id is not in the catalog.
	ErrUnknownGame = errors.New("registry: unknown game")
	// ErrComingSoon is returned for catalog entries without an implementation.
	ErrComingSoon = errors.New("registry: game not available yet")
)

// Game is the contract every arcade game implements.
// Games hold pure logic; the platform owns input mapping, timing and rendering.
type Game interface {
	// ID returns the catalog id, e.g. "snake".
	ID() string

	// Title returns a human-readable name.
	Title() string

	// Reset starts a fresh play session. The game keeps rep for the whole
	// session and reports ScoreUpdate(0) before returning.
	Reset(cfg core.RuntimeConfig, rep core.Reporter)

	// Step advances the simulation by one platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into a pre-cleared screen.
	Render(dst *core.Screen)

	// State returns score and status flags.
	State() core.GameState
}

// Exiter is implemented by games that report something when the player
// leaves the game screen.
type Exiter interface {
	Exit()
}

// Factory creates a new game instance.
type Factory func() Game

// Descriptor is a catalog entry.
type Descriptor struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	MetricLabel string `json:"metricLabel"`
	Playable    bool   `json:"playable"`
}

// Registry is an ordered catalog of games.
// It is safe for concurrent use.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	descriptors map[string]Descriptor
	factories   map[string]Factory
	fallback    func(Descriptor) Factory
}

// New creates an empty registry. fallback builds the factory used for ids
// without an implementation; it may be nil.
func New(fallback func(Descriptor) Factory) *Registry {
	return &Registry{
		descriptors: make(map[string]Descriptor),
		factories:   make(map[string]Factory),
		fallback:    fallback,
	}
}

// Add appends a catalog entry. A nil factory marks the entry as coming soon.
// Panics if the id is already present.
func (r *Registry) Add(d Descriptor, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.descriptors[d.ID]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", d.ID))
	}
	d.Playable = f != nil
	r.order = append(r.order, d.ID)
	r.descriptors[d.ID] = d
	if f != nil {
		r.factories[d.ID] = f
	}
}

// List returns descriptors in catalog order.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descriptors[id])
	}
	return out
}

// IDs returns the ids in catalog order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Lookup returns the descriptor for id.
func (r *Registry) Lookup(id string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	return d, ok
}

// Resolve returns the factory for id and whether id has a real implementation.
// Catalog entries without one, and unknown ids, get the placeholder factory.
func (r *Registry) Resolve(id string) (Factory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if f, ok := r.factories[id]; ok {
		return f, true
	}
	d, known := r.descriptors[id]
	if !known {
		d = Descriptor{ID: id, Title: "Unknown game", Icon: "?"}
	}
	if r.fallback == nil {
		return nil, false
	}
	return r.fallback(d), false
}

// Create instantiates a playable game.
func (r *Registry) Create(id string) (Game, error) {
	if f, ok := r.Resolve(id); ok {
		return f(), nil
	}
	if _, known := r.Lookup(id); known {
		return nil, fmt.Errorf("%w: %q", ErrComingSoon, id)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownGame, id)
}
