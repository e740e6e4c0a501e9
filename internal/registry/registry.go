// Package registry provides a global registry for display backends.
// Backends register themselves in init() functions, allowing the CLI
// to discover and start them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gridsnake/internal/config"
	"github.com/vovakirdan/gridsnake/internal/device"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

// Backend hosts the board on some terminal surface.
// Backends only move pixels and keys; the game runs in the engine.
type Backend interface {
	// ID returns a unique identifier used on the command line (e.g., "tui").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run shows the session until the player quits or ctx is done.
	Run(ctx context.Context, s *Session) error
}

// Session is everything a backend needs to host one game.
type Session struct {
	Config     config.Config
	Controller *snake.Controller   // Read-only use: HUD and status line
	Display    *device.Framebuffer // Written by the engine's render task
	Keypad     *device.Keypad      // Backends press pins here
	Lamps      *device.LampBank    // Score lamps, read back for display
	BestScore  int
	Logger     *log.Logger

	// Start runs the engine until ctx is done. Backends call it once,
	// usually in its own goroutine, and cancel ctx on quit.
	Start func(ctx context.Context) error
}

// BackendInfo contains metadata about a registered backend.
type BackendInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new backend instance.
type Factory func() Backend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a backend factory to the registry.
// Typically called from a backend's init() function.
// Panics if a backend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: backend %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance
	titles[id] = f().Title()
}

// List returns information about all registered backends, sorted by ID.
func List() []BackendInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]BackendInfo, 0, len(factories))
	for id := range factories {
		result = append(result, BackendInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a backend by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Backend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown backend %q", id)
	}

	return f(), nil
}

// Exists checks if a backend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
