// Package resources caches textures shared between rooms and locations.
//
// Textures are reference counted through scopes. A scope belongs to one owner
// (a loaded location, the campaign's tables) and releases everything it
// acquired at once. Released textures stay cached until CleanUnused.
package resources

import (
	"fmt"
	"sort"
	"sync"

	"chosenoffset.com/burrow/internal/render"
)

// TextureSource hands out textures by file path.
type TextureSource interface {
	Texture(path string) (render.Image, error)
}

type entry struct {
	img  render.Image
	refs int
}

// Manager is the texture cache.
type Manager struct {
	loader render.ResourceLoader

	mu       sync.Mutex
	textures map[string]*entry
}

// NewManager creates a cache loading through loader.
func NewManager(loader render.ResourceLoader) *Manager {
	return &Manager{
		loader:   loader,
		textures: make(map[string]*entry),
	}
}

// acquire returns the cached texture for path, loading it on first use, and
// takes a reference.
func (m *Manager) acquire(path string) (render.Image, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.textures[path]; ok {
		e.refs++
		return e.img, nil
	}
	img, err := m.loader.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture %s: %w", path, err)
	}
	m.textures[path] = &entry{img: img, refs: 1}
	return img, nil
}

func (m *Manager) release(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.textures[path]; ok && e.refs > 0 {
		e.refs--
	}
}

// CleanUnused disposes every cached texture nobody references and returns
// how many were dropped.
func (m *Manager) CleanUnused() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for path, e := range m.textures {
		if e.refs == 0 {
			e.img.Dispose()
			delete(m.textures, path)
			n++
		}
	}
	return n
}

// RefCount returns the number of references held on path.
func (m *Manager) RefCount(path string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.textures[path]; ok {
		return e.refs
	}
	return 0
}

// Cached lists the cached texture paths in sorted order.
func (m *Manager) Cached() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	paths := make([]string, 0, len(m.textures))
	for path := range m.textures {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// NewScope creates an empty scope drawing from the cache.
func (m *Manager) NewScope() *Scope {
	return &Scope{mgr: m, held: make(map[string]int)}
}

// Scope tracks the textures acquired by one owner.
type Scope struct {
	mgr  *Manager
	held map[string]int
}

// Texture implements TextureSource.
func (s *Scope) Texture(path string) (render.Image, error) {
	img, err := s.mgr.acquire(path)
	if err != nil {
		return nil, err
	}
	s.held[path]++
	return img, nil
}

// Held returns the number of distinct textures in the scope.
func (s *Scope) Held() int {
	return len(s.held)
}

// Release drops every reference taken through the scope. The scope stays
// usable afterwards.
func (s *Scope) Release() {
	for path, n := range s.held {
		for i := 0; i < n; i++ {
			s.mgr.release(path)
		}
	}
	s.held = make(map[string]int)
}
