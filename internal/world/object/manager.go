package object

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"chosenoffset.com/burrow/internal/jsonfile"
	"chosenoffset.com/burrow/internal/render"
	"chosenoffset.com/burrow/internal/resources"
)

var (
	// ErrUnknownObject reports a placement naming an undefined object.
	ErrUnknownObject = errors.New("unknown back object")
	// ErrBadVariant reports an explicit variant the object does not have.
	ErrBadVariant = errors.New("variant out of range")
)

// Manager holds the back object definitions.
type Manager struct {
	dir     string
	objects map[string]BackObject
	holes   map[string]BackHoleObject
}

// NewManager creates an empty manager resolving textures inside dir.
func NewManager(dir string) *Manager {
	return &Manager{
		dir:     dir,
		objects: make(map[string]BackObject),
		holes:   make(map[string]BackHoleObject),
	}
}

type objectsNode struct {
	BackObjs  map[string]backObjectNode `json:"back_objs"`
	BackHoles map[string]backHoleNode   `json:"back_holes"`
}

// Load replaces the definitions with the contents of an objects file.
func (m *Manager) Load(path string) error {
	var root objectsNode
	if err := jsonfile.Load(path, &root); err != nil {
		return err
	}
	if root.BackObjs == nil {
		return fmt.Errorf("%s: %w", path, jsonfile.Missing("back_objs"))
	}
	if root.BackHoles == nil {
		return fmt.Errorf("%s: %w", path, jsonfile.Missing("back_holes"))
	}

	objects := make(map[string]BackObject, len(root.BackObjs))
	for id, node := range root.BackObjs {
		obj, err := node.toObject(id)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		objects[id] = obj
	}
	holes := make(map[string]BackHoleObject, len(root.BackHoles))
	for id, node := range root.BackHoles {
		hole, err := node.toObject(id)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		holes[id] = hole
	}
	m.objects = objects
	m.holes = holes
	return nil
}

// Dir returns the texture directory.
func (m *Manager) Dir() string {
	return m.dir
}

// AddBackObject registers a back object definition.
func (m *Manager) AddBackObject(id string, obj BackObject) {
	m.objects[id] = obj
}

// AddBackHole registers a back hole definition.
func (m *Manager) AddBackHole(id string, hole BackHoleObject) {
	m.holes[id] = hole
}

// BackObject returns the definition for id.
func (m *Manager) BackObject(id string) (BackObject, bool) {
	obj, ok := m.objects[id]
	return obj, ok
}

// BackHole returns the hole definition for id.
func (m *Manager) BackHole(id string) (BackHoleObject, bool) {
	hole, ok := m.holes[id]
	return hole, ok
}

// TexturePaths lists every texture file the definitions refer to.
func (m *Manager) TexturePaths() []string {
	var paths []string
	for id, obj := range m.objects {
		for v := 0; v < obj.MainCount; v++ {
			paths = append(paths, texturePath(m.dir, id, v, mainSuffix))
		}
		for v := 0; v < obj.LightCount; v++ {
			paths = append(paths, texturePath(m.dir, id, v, lightSuffix))
		}
	}
	for id, hole := range m.holes {
		for v := 0; v < hole.Count; v++ {
			paths = append(paths, texturePath(m.dir, id, v, mainSuffix))
			paths = append(paths, texturePath(m.dir, id, v, holeSuffix))
		}
	}
	return paths
}

func pickVariant(requested, count int, rng *rand.Rand) (int, error) {
	if requested < 0 {
		return rng.IntN(count), nil
	}
	if requested >= count {
		return 0, fmt.Errorf("%w: %d of %d", ErrBadVariant, requested, count)
	}
	return requested, nil
}

// SetupBackSprites creates the sprites of a back object placement. Either
// returned sprite may be nil when the chosen variant lacks that texture.
func (m *Manager) SetupBackSprites(p Placement, lights LightState, textures resources.TextureSource, rng *rand.Rand) (main, light *render.Sprite, err error) {
	obj, ok := m.objects[p.ID]
	if !ok {
		return nil, nil, fmt.Errorf("%w %q", ErrUnknownObject, p.ID)
	}
	variant, err := pickVariant(p.Variant, obj.Variants(), rng)
	if err != nil {
		return nil, nil, fmt.Errorf("back object %q: %w", p.ID, err)
	}

	lit := variant < obj.LightCount
	switch lights {
	case LightsOff:
		lit = false
	case LightsDefault:
		lit = lit && rng.IntN(2) == 0
	}

	if variant < obj.MainCount {
		img, err := textures.Texture(texturePath(m.dir, p.ID, variant, mainSuffix))
		if err != nil {
			return nil, nil, err
		}
		main = render.NewSprite(img, obj.Offset.X+float64(p.Coords.X), obj.Offset.Y+float64(p.Coords.Y))
		if !lit {
			main.Tint = DimColor
		}
	}
	if lit {
		img, err := textures.Texture(texturePath(m.dir, p.ID, variant, lightSuffix))
		if err != nil {
			return nil, nil, err
		}
		light = render.NewSprite(img, obj.OffsetLight.X+float64(p.Coords.X), obj.OffsetLight.Y+float64(p.Coords.Y))
	}
	return main, light, nil
}

// SetupHoleSprites creates the main and hole sprites of a back hole placement
// and reports whether the main texture uses overlay blending.
func (m *Manager) SetupHoleSprites(p Placement, textures resources.TextureSource, rng *rand.Rand) (main, hole *render.Sprite, blend bool, err error) {
	def, ok := m.holes[p.ID]
	if !ok {
		return nil, nil, false, fmt.Errorf("%w %q", ErrUnknownObject, p.ID)
	}
	variant, err := pickVariant(p.Variant, def.Count, rng)
	if err != nil {
		return nil, nil, false, fmt.Errorf("back hole %q: %w", p.ID, err)
	}

	x := def.Offset.X + float64(p.Coords.X)
	y := def.Offset.Y + float64(p.Coords.Y)

	img, err := textures.Texture(texturePath(m.dir, p.ID, variant, mainSuffix))
	if err != nil {
		return nil, nil, false, err
	}
	main = render.NewSprite(img, x, y)
	main.Tint = DimColor

	img, err = textures.Texture(texturePath(m.dir, p.ID, variant, holeSuffix))
	if err != nil {
		return nil, nil, false, err
	}
	hole = render.NewSprite(img, x, y)
	return main, hole, def.Blend, nil
}
