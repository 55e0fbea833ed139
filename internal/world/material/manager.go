package material

import (
	"fmt"

	"chosenoffset.com/burrow/internal/jsonfile"
)

// Manager holds the two material tables. Solids are looked up for the first
// symbol of a cell, everything else for the remaining symbols.
type Manager struct {
	solids map[byte]Material
	others map[byte]Material
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		solids: make(map[byte]Material),
		others: make(map[byte]Material),
	}
}

type tablesNode struct {
	Solids map[string]*materialNode `json:"solids"`
	Other  map[string]*materialNode `json:"other"`
}

// Load replaces the tables with the contents of a materials file.
func (m *Manager) Load(path string) error {
	var root tablesNode
	if err := jsonfile.Load(path, &root); err != nil {
		return err
	}
	if root.Solids == nil {
		return fmt.Errorf("%s: %w", path, jsonfile.Missing("solids"))
	}
	if root.Other == nil {
		return fmt.Errorf("%s: %w", path, jsonfile.Missing("other"))
	}

	solids, err := buildTable(root.Solids, true)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	others, err := buildTable(root.Other, false)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	m.solids = solids
	m.others = others
	return nil
}

func buildTable(nodes map[string]*materialNode, solids bool) (map[byte]Material, error) {
	table := make(map[byte]Material, len(nodes))
	for key, node := range nodes {
		if node == nil {
			return nil, fmt.Errorf("material %q is null", key)
		}
		mat, err := node.toMaterial(key)
		if err != nil {
			return nil, err
		}
		if solids != (mat.Type == Solid) {
			return nil, fmt.Errorf("material %q: type %s does not belong in this table", key, mat.Type)
		}
		table[mat.Symbol] = mat
	}
	return table, nil
}

// Add registers a material in the table matching its type.
func (m *Manager) Add(mat Material) {
	if mat.Type == Solid {
		m.solids[mat.Symbol] = mat
		return
	}
	m.others[mat.Symbol] = mat
}

// Solid returns the solid material for symbol.
func (m *Manager) Solid(symbol byte) (Material, bool) {
	mat, ok := m.solids[symbol]
	return mat, ok
}

// Other returns the non-solid material for symbol.
func (m *Manager) Other(symbol byte) (Material, bool) {
	mat, ok := m.others[symbol]
	return mat, ok
}

// Each calls fn for every material, solids first.
func (m *Manager) Each(fn func(Material)) {
	for _, mat := range m.solids {
		fn(mat)
	}
	for _, mat := range m.others {
		fn(mat)
	}
}

// Len returns the number of materials in both tables.
func (m *Manager) Len() int {
	return len(m.solids) + len(m.others)
}
